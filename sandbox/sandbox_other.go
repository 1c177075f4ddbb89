//go:build !linux && !darwin

package sandbox

import "fmt"

// otherSandbox is the build-tag-selected stand-in for every platform this
// module has no backend for. It satisfies the Sandbox interface so New
// always returns a usable value or a clear error, never a nil interface —
// the same three-way split pattern as flavour-fence's linux_stub.go and
// ehrlich-b-wingthing's fallback.go.
type otherSandbox struct{}

// New reports that no backend exists for the running platform. There is no
// best-effort fallback: a sandbox that silently enforces nothing is worse
// than one that refuses to pretend.
func New() (Sandbox, error) {
	return otherSandbox{}, fmt.Errorf("sandbox: no backend available on this platform")
}

func (otherSandbox) AddException(Exception) error {
	return fmt.Errorf("sandbox: no backend available on this platform")
}

func (otherSandbox) Lock() error {
	return fmt.Errorf("sandbox: no backend available on this platform")
}
