//go:build linux

package sandbox

import (
	"os"
	"path/filepath"
	"strings"
)

// copyTree walks src component by component (skipping the leading root
// separator) and, for each component joined onto a growing destination
// path, creates either a directory or an empty regular file with the
// source node's permission bits if the destination does not already exist.
// Existing destinations are left untouched.
//
// This manufactures mount points, nothing more: no file contents are ever
// copied. Using a stdlib recursive-copy helper here would be wrong by
// construction — it would duplicate file contents this backend must never
// read off the host into the sandbox root.
func copyTree(src, dst string) error {
	rel := strings.TrimPrefix(src, "/")
	components := strings.Split(rel, "/")

	srcSub := "/"
	dstSub := dst
	for _, comp := range components {
		if comp == "" {
			continue
		}
		srcSub = filepath.Join(srcSub, comp)
		dstSub = filepath.Join(dstSub, comp)

		if _, err := os.Lstat(dstSub); err == nil {
			continue // destination already exists, leave it alone
		}

		info, err := os.Lstat(srcSub)
		if err != nil {
			return &IOError{Op: "lstat " + srcSub, Err: err}
		}

		if info.IsDir() {
			if err := os.Mkdir(dstSub, info.Mode().Perm()); err != nil && !os.IsExist(err) {
				return &IOError{Op: "mkdir " + dstSub, Err: err}
			}
		} else {
			f, err := os.OpenFile(dstSub, os.O_CREATE|os.O_EXCL, info.Mode().Perm())
			if err != nil {
				if os.IsExist(err) {
					continue
				}
				return &IOError{Op: "create " + dstSub, Err: err}
			}
			f.Close()
		}
		if err := os.Chmod(dstSub, info.Mode().Perm()); err != nil {
			return &IOError{Op: "chmod " + dstSub, Err: err}
		}
	}
	return nil
}

// createSymlink recreates, under root, a symlink standing in for
// symlinkPath (an absolute host path whose prefix contained a symlink) and
// pointing at target — preserving the caller's view of a symlinked
// allow-list entry even though only the link's canonical destination was
// bind-mounted. Skips entirely if the mirrored path already exists (a
// parent bind mount already covers it).
func createSymlink(root, symlinkPath, target string) error {
	dst := filepath.Join(root, strings.TrimPrefix(symlinkPath, "/"))
	if _, err := os.Lstat(dst); err == nil {
		return nil
	}

	parent := filepath.Dir(symlinkPath)
	if parent != "" && parent != "." {
		if err := copyTree(parent, root); err != nil {
			return err
		}
	}
	if err := os.Symlink(target, dst); err != nil {
		return &IOError{Op: "symlink " + dst, Err: err}
	}
	return nil
}
