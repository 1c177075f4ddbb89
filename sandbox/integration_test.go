//go:build linux || darwin

package sandbox

import (
	"bytes"
	"io"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/creack/pty"
)

// TestSandboxedShellDeniesReadOutsideAllowList builds the sandboxtest helper
// and runs a shell under it with a PTY, the same way a user would drive an
// interactive program through a sandboxed terminal session. A path outside
// the allow-list must not be readable once the helper has called Lock.
func TestSandboxedShellDeniesReadOutsideAllowList(t *testing.T) {
	binPath := t.TempDir() + "/sandboxtest"
	build := exec.Command("go", "build", "-o", binPath, "../cmd/sandboxtest")
	build.Stdout = os.Stdout
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		t.Fatalf("failed to build sandboxtest: %v", err)
	}

	secret := t.TempDir() + "/secret"
	if err := os.WriteFile(secret, []byte("do-not-read-me"), 0o600); err != nil {
		t.Fatalf("failed to create secret file: %v", err)
	}

	cmd := exec.Command(binPath, "--read", "/bin", "--read", "/usr/bin", "--exec", "/bin/sh", "sh")
	cmd.Env = append(os.Environ(), "PS1=READY$ ")

	ptmx, err := pty.Start(cmd)
	if err != nil {
		t.Fatalf("failed to start sandboxed shell: %v", err)
	}
	defer func() {
		_ = ptmx.Close()
	}()

	var output bytes.Buffer
	done := make(chan struct{})
	go func() {
		_, _ = io.Copy(&output, ptmx)
		close(done)
	}()

	time.Sleep(500 * time.Millisecond)
	_, _ = ptmx.Write([]byte("cat " + secret + "\n"))
	time.Sleep(500 * time.Millisecond)
	_, _ = ptmx.Write([]byte("exit\n"))

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		_ = cmd.Process.Kill()
		t.Fatal("command timed out")
	}
	_ = cmd.Wait()

	out := output.String()
	if strings.Contains(out, "do-not-read-me") {
		t.Errorf("secret file was readable inside the sandbox:\n%s", out)
	}
}
