package sandbox

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandUserPathTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		t.Skip("no home directory available")
	}
	if got := ExpandUserPath("~"); got != home {
		t.Errorf("ExpandUserPath(~) = %q, want %q", got, home)
	}
	want := filepath.Join(home, "project")
	if got := ExpandUserPath("~/project"); got != want {
		t.Errorf("ExpandUserPath(~/project) = %q, want %q", got, want)
	}
}

func TestExpandUserPathAbsoluteUnchanged(t *testing.T) {
	if got := ExpandUserPath("/usr/bin"); got != "/usr/bin" {
		t.Errorf("ExpandUserPath(/usr/bin) = %q, want unchanged", got)
	}
}

func TestExpandUserPathRelative(t *testing.T) {
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	want := filepath.Join(cwd, "sub", "dir")
	if got := ExpandUserPath("sub/dir"); got != want {
		t.Errorf("ExpandUserPath(sub/dir) = %q, want %q", got, want)
	}
}
