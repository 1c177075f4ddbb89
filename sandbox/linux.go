//go:build linux

package sandbox

import (
	"os"
	"sort"
	"strings"

	"golang.org/x/sys/unix"
)

// LinuxSandbox composes user, mount, and network namespaces with a
// read-only deny-by-default filesystem view, a seccomp filter, and
// no_new_privs. See spec §4.2 for the full algorithm this implements.
type LinuxSandbox struct {
	mounts          map[string]mountAttrFlags
	envKeep         []string
	allowNetworking bool
	fullEnv         bool
}

// New constructs an empty Linux sandbox builder.
func New() (Sandbox, error) {
	return &LinuxSandbox{
		mounts: make(map[string]mountAttrFlags),
	}, nil
}

// AddException validates e's path (if any) against the host filesystem and
// folds it into the builder's state. Adding the same or an equivalent
// exception more than once is indistinguishable from adding it once: the
// clear-only promotion rule below is idempotent regardless of call order.
func (s *LinuxSandbox) AddException(e Exception) error {
	if e.hasPath() {
		if _, err := os.Stat(e.path); err != nil {
			return &InvalidPathError{Path: e.path, Err: err}
		}
	}

	switch e.kind {
	case kindRead, kindWriteAndRead, kindExecuteAndRead:
		// Stored exactly as given, uncanonicalized: canonicalization happens
		// once, over the whole allow-list, during Lock's mount-namespace
		// construction (spec §4.2.2 step 4) — not here. A path added twice
		// under different spellings that resolve to the same target is
		// merged there into one mount whose flags keep only the bits both
		// entries still have.
		cur, ok := s.mounts[e.path]
		if !ok {
			cur = defaultMountFlags
		}
		s.mounts[e.path] = cur &^ clearedBy(e.kind)
	case kindEnvironment:
		if !containsString(s.envKeep, e.key) {
			s.envKeep = append(s.envKeep, e.key)
		}
	case kindFullEnvironment:
		s.fullEnv = true
	case kindNetworking:
		s.allowNetworking = true
	}
	return nil
}

// resolveSymlinks resolves every component of path, not just its leaf,
// mirroring Rust's path.canonicalize(). Each component is checked for a
// symlink in turn as the resolved prefix is built up, so a link in an
// intermediate ancestor (e.g. "/bin/subdir" where only "/bin" is a link) is
// followed just as readily as a leaf link. Used instead of
// filepath.EvalSymlinks so callers keep full control over how a missing
// component is reported: a nonexistent component is left unresolved here
// and only surfaces as an error once filepathCanonicalize stats the result.
func resolveSymlinks(path string) (string, error) {
	rel := strings.TrimPrefix(path, "/")
	resolved := "/"
	for _, comp := range strings.Split(rel, "/") {
		if comp == "" {
			continue
		}
		candidate := normalizePath(resolved + "/" + comp)

		target, err := os.Readlink(candidate)
		if err != nil {
			resolved = candidate
			continue
		}
		if !strings.HasPrefix(target, "/") {
			target = normalizePath(parentOf(candidate) + "/" + target)
		}
		target, err = resolveSymlinks(target)
		if err != nil {
			return "", err
		}
		resolved = target
	}
	return resolved, nil
}

func parentOf(path string) string {
	idx := strings.LastIndex(path, "/")
	if idx <= 0 {
		return "/"
	}
	return path[:idx]
}

// Lock performs the fixed six-step sequence from spec §4.2.1. The ordering
// is load-bearing and must not be reordered.
func (s *LinuxSandbox) Lock() error {
	if !s.fullEnv {
		restrictEnvVariables(s.envKeep)
	}

	// Captured once, before any namespace is entered: this is the only point
	// at which "the host euid/egid" is well defined. Every createUserNamespace
	// call below re-reads the *current* euid/egid itself for the mapping's
	// parent side; hostUID/hostGID are only ever used as the desired child id
	// for the final call, which is the one that must land the process back
	// at its original host identity.
	hostUID, hostGID := currentEUIDGID()

	if !s.allowNetworking {
		if err := createUserNamespace(0, 0, unix.CLONE_NEWNET); err != nil {
			return err
		}
	}

	if err := s.createMountNamespace(); err != nil {
		return err
	}

	// Third user namespace: maps the process back to its original host
	// euid/egid and clears the abstract Unix-socket namespace inherited from
	// the parent. Mandatory even when networking is permitted.
	if err := createUserNamespace(hostUID, hostGID, 0); err != nil {
		return err
	}

	if err := applySeccomp(); err != nil {
		return err
	}

	if err := applyNoNewPrivs(); err != nil {
		return err
	}

	return nil
}

type symlinkRequest struct {
	path   string // pre-canonicalization absolute+normalized form
	target string // canonical target
}

// createMountNamespace builds the fresh root at newRoot, populates it with
// exactly the allowed subtrees, and pivots into it. See spec §4.2.2.
func (s *LinuxSandbox) createMountNamespace() error {
	if err := createUserNamespace(0, 0, unix.CLONE_NEWNS); err != nil {
		return err
	}

	if err := os.MkdirAll(newRoot, 0755); err != nil {
		return &IOError{Op: "mkdir " + newRoot, Err: err}
	}
	if err := mountTmpfs(newRoot); err != nil {
		return err
	}

	type entry struct {
		path  string
		flags mountAttrFlags
	}
	var entries []entry
	var symlinks []symlinkRequest
	entryIndex := make(map[string]int)

	for rawPath, flags := range s.mounts {
		abs, err := absolutePath(rawPath)
		if err != nil {
			continue // canonicalization failure: silently dropped, per spec
		}
		hadSymlink := pathHasSymlink(abs)
		canonical, err := filepathCanonicalize(abs)
		if err != nil {
			continue
		}
		if hadSymlink {
			symlinks = append(symlinks, symlinkRequest{
				path:   normalizePath(abs),
				target: canonical,
			})
		}
		if i, ok := entryIndex[canonical]; ok {
			entries[i].flags &= flags
			continue
		}
		entryIndex[canonical] = len(entries)
		entries = append(entries, entry{path: canonical, flags: flags})
	}

	sort.Slice(entries, func(i, j int) bool {
		ci := componentCount(entries[i].path)
		cj := componentCount(entries[j].path)
		if ci != cj {
			return ci < cj
		}
		if entries[i].path != entries[j].path {
			return entries[i].path < entries[j].path
		}
		return entries[i].flags < entries[j].flags
	})

	for _, e := range entries {
		dst := joinUnderRoot(newRoot, e.path)
		if err := copyTree(e.path, newRoot); err != nil {
			return err
		}
		if err := bindMount(e.path, dst); err != nil {
			return err
		}
		if err := updateMountAttr(dst, e.flags|mountAttrNOSUID); err != nil {
			return err
		}
	}

	for _, req := range symlinks {
		if err := createSymlink(newRoot, req.path, req.target); err != nil {
			return err
		}
	}

	if err := bindMountProc(joinUnderRoot(newRoot, "/proc")); err != nil {
		return err
	}

	return pivotRootSelf()
}

func joinUnderRoot(root, path string) string {
	return root + strings.TrimSuffix(path, "/")
}

func componentCount(path string) int {
	n := 0
	for _, c := range strings.Split(path, "/") {
		if c != "" {
			n++
		}
	}
	return n
}

// filepathCanonicalize resolves path to an absolute, symlink-free form,
// failing if any component does not exist. Applied once, at Lock time, to
// the whole allow-list (spec §4.2.2 step 4).
func filepathCanonicalize(path string) (string, error) {
	resolved, err := resolveSymlinks(path)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(resolved); err != nil {
		return "", err
	}
	return normalizePath(resolved), nil
}
