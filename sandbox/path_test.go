package sandbox

import "testing"

func TestAbsolutePath(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"already absolute", "/usr/bin", "/usr/bin"},
		{"trailing slash preserved", "/usr/bin/", "/usr/bin/"},
		{"double leading slash preserved", "//usr/bin", "//usr/bin"},
		{"triple leading slash collapses", "///usr/bin", "/usr/bin"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := absolutePath(tc.in)
			if err != nil {
				t.Fatalf("absolutePath(%q) error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("absolutePath(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizePath(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"/a/b/c", "/a/b/c"},
		{"/a/./b", "/a/b"},
		{"/a/b/../c", "/a/c"},
		{"/..", "/"},
		{"/a/..", "/"},
		{"/", "/"},
		{"//a//b", "/a/b"},
	}
	for _, tc := range cases {
		got := normalizePath(tc.in)
		if got != tc.want {
			t.Errorf("normalizePath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPathHasSymlinkNoSymlink(t *testing.T) {
	dir := t.TempDir()
	if pathHasSymlink(dir) {
		t.Errorf("pathHasSymlink(%q) = true, want false for a plain directory", dir)
	}
}
