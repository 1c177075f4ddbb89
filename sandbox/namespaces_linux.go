//go:build linux

package sandbox

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// newRoot is the well-known host path the Linux backend pivots into. Fixed
// rather than configurable, matching the original implementation's
// NEW_ROOT constant — a caller-chosen root would complicate the
// already-load-bearing operation ordering in Lock for no benefit.
const newRoot = "/tmp/birdcage-root"

// createUserNamespace unshares a user namespace (optionally combined with
// extraFlags, e.g. unix.CLONE_NEWNET) and maps childUID/childGID inside the
// new namespace to the caller's euid/egid as observed just before the
// unshare. That parent id is re-read on every call rather than threaded
// through from an earlier call: once the first user namespace is active,
// the process's apparent euid/egid is whatever that namespace mapped it to
// (typically 0), not the original host id, so a stale host id written here
// would name a parent id outside the enclosing namespace's mapped range and
// the kernel would reject the write with EINVAL. The setgroups write must
// precede the gid_map write — the kernel rejects a gid_map write from a
// process whose setgroups is still "allow" unless the mapped gid is the
// caller's own, so "deny" is written unconditionally first.
func createUserNamespace(childUID, childGID, extraFlags int) error {
	parentUID, parentGID := currentEUIDGID()

	if err := unix.Unshare(unix.CLONE_NEWUSER | extraFlags); err != nil {
		return &IOError{Op: "unshare(CLONE_NEWUSER)", Err: err}
	}

	if err := writeProcSelf("setgroups", []byte("deny")); err != nil {
		return err
	}
	uidMap := fmt.Sprintf("%d %d 1\n", childUID, parentUID)
	if err := writeProcSelf("uid_map", []byte(uidMap)); err != nil {
		return err
	}
	gidMap := fmt.Sprintf("%d %d 1\n", childGID, parentGID)
	if err := writeProcSelf("gid_map", []byte(gidMap)); err != nil {
		return err
	}
	return nil
}

func writeProcSelf(name string, data []byte) error {
	path := "/proc/self/" + name
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return &IOError{Op: "open " + path, Err: err}
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		return &IOError{Op: "write " + path, Err: err}
	}
	return nil
}

func mountTmpfs(target string) error {
	if err := unix.Mount("tmpfs", target, "tmpfs", 0, ""); err != nil {
		return &IOError{Op: "mount tmpfs at " + target, Err: err}
	}
	return nil
}

// bindMount creates a full-permission recursive bind mount. Restriction is
// applied afterward via updateMountAttr — mount(2) cannot set MNT_RDONLY on
// the initial bind in one step on most kernels, so the two-phase
// bind-then-restrict sequence from the original is preserved.
func bindMount(src, dst string) error {
	if err := unix.Mount(src, dst, "", unix.MS_BIND|unix.MS_REC, ""); err != nil {
		return &IOError{Op: fmt.Sprintf("bind mount %s -> %s", src, dst), Err: err}
	}
	return nil
}

// updateMountAttr recursively applies attr_set flags to the mount at path
// via mount_setattr(2).
func updateMountAttr(path string, attrSet mountAttrFlags) error {
	attr := unix.MountAttr{
		Attr_set: uint64(attrSet),
	}
	if err := unix.MountSetattr(unix.AT_FDCWD, path, unix.AT_RECURSIVE, &attr); err != nil {
		return &IOError{Op: "mount_setattr " + path, Err: err}
	}
	return nil
}

func denyMountPropagation() error {
	if err := unix.Mount("", "/", "", unix.MS_PRIVATE|unix.MS_REC, ""); err != nil {
		return &IOError{Op: "make / private", Err: err}
	}
	return nil
}

func bindMountProc(target string) error {
	if err := os.MkdirAll(target, 0755); err != nil {
		return &IOError{Op: "mkdir " + target, Err: err}
	}
	if err := unix.Mount("/proc", target, "", unix.MS_BIND|unix.MS_REC, ""); err != nil {
		return &IOError{Op: "bind mount /proc", Err: err}
	}
	return nil
}

// pivotRootSelf swaps / with newRoot (both arguments intentionally equal,
// per spec, so the prior root ends up stacked at newRoot ready to be
// unmounted), then restores the working directory if it still resolves
// under the new tree, falling back to "/" otherwise. The cwd save/restore
// dance is not load-bearing for confinement, but a process whose cwd
// silently becomes unreadable after Lock is a sharp edge worth avoiding.
func pivotRootSelf() error {
	prevCwd, cwdErr := os.Getwd()

	if err := unix.PivotRoot(newRoot, newRoot); err != nil {
		return &IOError{Op: "pivot_root", Err: err}
	}
	if err := unix.Unmount("/", unix.MNT_DETACH); err != nil {
		return &IOError{Op: "umount old root", Err: err}
	}
	if err := denyMountPropagation(); err != nil {
		return err
	}

	if cwdErr == nil {
		if err := os.Chdir(prevCwd); err == nil {
			return nil
		}
	}
	return os.Chdir("/")
}

// applyNoNewPrivs sets PR_SET_NO_NEW_PRIVS, redundant with the NOSUID mount
// flag applied to every bind mount but cheap defense in depth.
func applyNoNewPrivs() error {
	if err := unix.Prctl(unix.PR_SET_NO_NEW_PRIVS, 1, 0, 0, 0); err != nil {
		return &IOError{Op: "prctl(PR_SET_NO_NEW_PRIVS)", Err: err}
	}
	return nil
}

func currentEUIDGID() (int, int) {
	return unix.Geteuid(), unix.Getegid()
}
