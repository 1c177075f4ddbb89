package sandbox

import (
	"os"
	"path/filepath"
	"strings"
)

// absolutePath makes a POSIX path absolute without resolving symlinks and
// without otherwise changing its semantics. Ported from the same rules
// Rust's (then-unstable) std::path::absolute follows: a leading "//" is
// preserved (POSIX leaves its interpretation implementation-defined), three
// or more leading slashes collapse to one, and a trailing slash is kept so
// callers can still detect "resolves to a directory" without a stat.
//
// filepath.Abs is not used here: it shells out to os.Getwd correctly, but
// it runs the path through filepath.Clean, which collapses "//" and drops
// the trailing slash this function must preserve.
func absolutePath(path string) (string, error) {
	trimmed := strings.TrimPrefix(path, "./")
	if trimmed == "." {
		trimmed = ""
	}

	var base string
	if filepath.IsAbs(path) {
		if strings.HasPrefix(path, "//") && !strings.HasPrefix(path, "///") {
			base = "//"
			trimmed = strings.TrimPrefix(trimmed, "/")
		} else {
			base = ""
		}
	} else {
		cwd, err := os.Getwd()
		if err != nil {
			return "", &IOError{Op: "getwd", Err: err}
		}
		base = cwd
	}

	joined := joinRaw(base, trimmed)
	if strings.HasSuffix(path, "/") && !strings.HasSuffix(joined, "/") {
		joined += "/"
	}
	return joined, nil
}

// joinRaw concatenates base and rel with exactly one separating slash,
// without invoking filepath.Clean (which would undo the leading-slash
// handling absolutePath just performed).
func joinRaw(base, rel string) string {
	if rel == "" {
		return base
	}
	if base == "" {
		return "/" + strings.TrimLeft(rel, "/")
	}
	if strings.HasSuffix(base, "/") {
		return base + strings.TrimPrefix(rel, "/")
	}
	return base + "/" + strings.TrimPrefix(rel, "/")
}

// normalizePath collapses "." components and pops one component per "..",
// without following symlinks. "/" is preserved as root; a ".." at the root
// is a no-op rather than an error, matching path/filepath.Clean's behavior
// for absolute paths (but, unlike Clean, this function is only ever given
// already-absolute input by its callers in this package).
func normalizePath(path string) string {
	isAbs := strings.HasPrefix(path, "/")
	parts := strings.Split(path, "/")

	var out []string
	for _, p := range parts {
		switch p {
		case "", ".":
			continue
		case "..":
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		default:
			out = append(out, p)
		}
	}

	joined := strings.Join(out, "/")
	if isAbs {
		return "/" + joined
	}
	return joined
}

// pathHasSymlink reports whether any ancestor of path (path itself
// included) is a symlink. Used to decide whether a canonicalized allow-list
// entry needs a synthesized symlink recreated under the sandbox root to
// preserve the caller's original view of it.
func pathHasSymlink(path string) bool {
	for {
		if _, err := os.Readlink(path); err == nil {
			return true
		}
		parent := filepath.Dir(path)
		if parent == path {
			return false
		}
		path = parent
	}
}
