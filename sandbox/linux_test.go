//go:build linux

package sandbox

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFilepathCanonicalizeRegularPath(t *testing.T) {
	tmpDir := t.TempDir()
	filePath := filepath.Join(tmpDir, "config")
	if err := os.WriteFile(filePath, []byte("x"), 0o600); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	got, err := filepathCanonicalize(filePath)
	if err != nil {
		t.Fatalf("filepathCanonicalize(%q) error: %v", filePath, err)
	}
	if got != filePath {
		t.Fatalf("expected %q, got %q", filePath, got)
	}
}

func TestFilepathCanonicalizeSymlink(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "target")
	if err := os.WriteFile(target, []byte("x"), 0o600); err != nil {
		t.Fatalf("failed to create target: %v", err)
	}
	link := filepath.Join(tmpDir, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Fatalf("failed to create symlink: %v", err)
	}

	got, err := filepathCanonicalize(link)
	if err != nil {
		t.Fatalf("filepathCanonicalize(%q) error: %v", link, err)
	}
	if got != target {
		t.Fatalf("expected resolved target %q, got %q", target, got)
	}
}

func TestFilepathCanonicalizeSymlinkedAncestor(t *testing.T) {
	tmpDir := t.TempDir()
	realDir := filepath.Join(tmpDir, "real")
	if err := os.Mkdir(realDir, 0o755); err != nil {
		t.Fatalf("failed to create real dir: %v", err)
	}
	file := filepath.Join(realDir, "subdir", "file")
	if err := os.Mkdir(filepath.Join(realDir, "subdir"), 0o755); err != nil {
		t.Fatalf("failed to create subdir: %v", err)
	}
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	linkedDir := filepath.Join(tmpDir, "linked")
	if err := os.Symlink(realDir, linkedDir); err != nil {
		t.Fatalf("failed to create symlink: %v", err)
	}

	// Only the ancestor component ("linked") is a symlink; the leaf itself
	// ("subdir/file") is a plain path under it.
	pathThroughLink := filepath.Join(linkedDir, "subdir", "file")
	got, err := filepathCanonicalize(pathThroughLink)
	if err != nil {
		t.Fatalf("filepathCanonicalize(%q) error: %v", pathThroughLink, err)
	}
	if got != file {
		t.Fatalf("expected ancestor symlink to resolve to %q, got %q", file, got)
	}
}

func TestFilepathCanonicalizeBrokenSymlink(t *testing.T) {
	tmpDir := t.TempDir()
	link := filepath.Join(tmpDir, "link")
	if err := os.Symlink(filepath.Join(tmpDir, "missing"), link); err != nil {
		t.Fatalf("failed to create symlink: %v", err)
	}

	if got, err := filepathCanonicalize(link); err == nil {
		t.Fatalf("expected broken symlink to fail canonicalization, got %q", got)
	}
}

func TestAddExceptionRejectsMissingPath(t *testing.T) {
	sb := &LinuxSandbox{mounts: make(map[string]mountAttrFlags)}
	err := sb.AddException(Read("/this/path/does/not/exist/hopefully"))
	if err == nil {
		t.Fatal("expected AddException to reject a nonexistent path")
	}
	var invalidPathErr *InvalidPathError
	if !asInvalidPathError(err, &invalidPathErr) {
		t.Fatalf("expected *InvalidPathError, got %T: %v", err, err)
	}
}

func asInvalidPathError(err error, target **InvalidPathError) bool {
	if e, ok := err.(*InvalidPathError); ok {
		*target = e
		return true
	}
	return false
}

func TestAddExceptionDefaultFlags(t *testing.T) {
	tmpDir := t.TempDir()
	sb := &LinuxSandbox{mounts: make(map[string]mountAttrFlags)}
	if err := sb.AddException(Read(tmpDir)); err != nil {
		t.Fatalf("AddException: %v", err)
	}
	flags, ok := sb.mounts[tmpDir]
	if !ok {
		t.Fatalf("expected %q to be tracked", tmpDir)
	}
	if flags != defaultMountFlags {
		t.Errorf("flags = %v, want %v", flags, defaultMountFlags)
	}
}

func TestAddExceptionWriteAndReadClearsRDONLY(t *testing.T) {
	tmpDir := t.TempDir()
	sb := &LinuxSandbox{mounts: make(map[string]mountAttrFlags)}
	if err := sb.AddException(WriteAndRead(tmpDir)); err != nil {
		t.Fatalf("AddException: %v", err)
	}
	flags := sb.mounts[tmpDir]
	if flags&mountAttrRDONLY != 0 {
		t.Errorf("expected RDONLY cleared, flags = %v", flags)
	}
	if flags&mountAttrNOEXEC == 0 {
		t.Errorf("expected NOEXEC to remain set, flags = %v", flags)
	}
}

func TestAddExceptionExecuteAndReadClearsNOEXEC(t *testing.T) {
	tmpDir := t.TempDir()
	sb := &LinuxSandbox{mounts: make(map[string]mountAttrFlags)}
	if err := sb.AddException(ExecuteAndRead(tmpDir)); err != nil {
		t.Fatalf("AddException: %v", err)
	}
	flags := sb.mounts[tmpDir]
	if flags&mountAttrNOEXEC != 0 {
		t.Errorf("expected NOEXEC cleared, flags = %v", flags)
	}
	if flags&mountAttrRDONLY == 0 {
		t.Errorf("expected RDONLY to remain set, flags = %v", flags)
	}
}

func TestAddExceptionEnvironmentDeduplicates(t *testing.T) {
	sb := &LinuxSandbox{mounts: make(map[string]mountAttrFlags)}
	if err := sb.AddException(Environment("PATH")); err != nil {
		t.Fatalf("AddException: %v", err)
	}
	if err := sb.AddException(Environment("PATH")); err != nil {
		t.Fatalf("AddException: %v", err)
	}
	if len(sb.envKeep) != 1 {
		t.Errorf("envKeep = %v, want a single PATH entry", sb.envKeep)
	}
}

func TestAddExceptionNetworkingAndFullEnvironment(t *testing.T) {
	sb := &LinuxSandbox{mounts: make(map[string]mountAttrFlags)}
	if err := sb.AddException(Networking()); err != nil {
		t.Fatalf("AddException: %v", err)
	}
	if !sb.allowNetworking {
		t.Error("expected allowNetworking to be true")
	}
	if err := sb.AddException(FullEnvironment()); err != nil {
		t.Fatalf("AddException: %v", err)
	}
	if !sb.fullEnv {
		t.Error("expected fullEnv to be true")
	}
}
