package sandbox

import (
	"os"
	"path/filepath"
)

// SensitiveFiles names per-project files that commonly carry secrets or can
// redirect command execution (shell init files, git hooks config, MCP
// server manifests). A WriteAndRead exception granted on a project
// directory implicitly covers these; callers that want to keep them
// read-only despite an otherwise-writable tree should grant the directory
// with WriteAndRead and then layer a narrower Read exception on each of
// these names individually — the Linux backend's allow-list is a flat map
// keyed by path, so the more specific entry wins regardless of add order.
var SensitiveFiles = []string{
	".gitconfig",
	".gitmodules",
	".bashrc",
	".bash_profile",
	".zshrc",
	".zprofile",
	".profile",
	".mcp.json",
}

// SensitiveDirectories names per-project directories with the same
// property as SensitiveFiles.
var SensitiveDirectories = []string{
	".vscode",
	".idea",
	".git/hooks",
}

// DefaultReadablePaths returns the system paths a sandboxed process
// typically needs read access to just to start up and resolve dynamic
// libraries, locale data, and DNS/TLS configuration: the base OS
// directories plus, when $HOME is set, the well-known install directories
// of common language version managers. Runtimes like Node.js load modules
// out of these directories at startup, not just their bin/ subdirectory, so
// the full directory is listed rather than only its executable.
func DefaultReadablePaths() []string {
	home, _ := os.UserHomeDir()

	paths := []string{
		"/bin",
		"/sbin",
		"/usr",
		"/lib",
		"/lib64",
		"/etc",
		"/proc",
		"/sys",
		"/dev",
		"/System",
		"/Library",
		"/private/etc",
		"/private/var/db",
		"/opt",
		"/run",
		"/tmp",
		"/private/tmp",
		"/usr/local",
		"/opt/homebrew",
		"/nix",
	}

	if home != "" {
		paths = append(paths,
			filepath.Join(home, ".nvm"),
			filepath.Join(home, ".fnm"),
			filepath.Join(home, ".volta"),
			filepath.Join(home, ".pyenv"),
			filepath.Join(home, ".rbenv"),
			filepath.Join(home, ".cargo/bin"),
			filepath.Join(home, ".rustup"),
			filepath.Join(home, "go/bin"),
			filepath.Join(home, ".local/bin"),
		)
	}

	return paths
}

// ExistingPaths filters paths down to the ones that exist on the current
// host, so callers can feed DefaultReadablePaths straight into a loop of
// AddException(Read(...)) calls without AddException rejecting an entry
// that happens not to exist on a given machine.
func ExistingPaths(paths []string) []string {
	var out []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			out = append(out, p)
		}
	}
	return out
}
