package sandbox

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandUserPath expands a leading "~" and resolves "./"/"../" against the
// current working directory before a caller passes the result to Read,
// WriteAndRead, or ExecuteAndRead. The exception constructors themselves
// take the path exactly as given — this is a convenience for callers
// building exceptions out of user-supplied configuration (a path typed into
// a config file, say) rather than something AddException does implicitly.
func ExpandUserPath(path string) string {
	home, _ := os.UserHomeDir()
	cwd, _ := os.Getwd()

	switch {
	case path == "~":
		return home
	case strings.HasPrefix(path, "~/"):
		return filepath.Join(home, path[2:])
	case strings.HasPrefix(path, "./"), strings.HasPrefix(path, "../"):
		abs, err := filepath.Abs(filepath.Join(cwd, path))
		if err != nil {
			return path
		}
		return abs
	case !filepath.IsAbs(path):
		abs, err := filepath.Abs(filepath.Join(cwd, path))
		if err != nil {
			return path
		}
		return abs
	default:
		return path
	}
}
