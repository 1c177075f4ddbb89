package sandbox

import "testing"

func TestExistingPathsFiltersMissing(t *testing.T) {
	tmpDir := t.TempDir()
	in := []string{tmpDir, "/this/path/does/not/exist/hopefully"}
	got := ExistingPaths(in)
	if len(got) != 1 || got[0] != tmpDir {
		t.Errorf("ExistingPaths(%v) = %v, want [%q]", in, got, tmpDir)
	}
}

func TestDefaultReadablePathsNonEmpty(t *testing.T) {
	if len(DefaultReadablePaths()) == 0 {
		t.Error("DefaultReadablePaths returned no entries")
	}
}
