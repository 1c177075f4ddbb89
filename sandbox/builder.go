package sandbox

// Sandbox is the policy builder contract both backends implement. A value
// is created empty (Linux) or seeded with the default profile (macOS),
// mutated exclusively through AddException, and consumed by Lock. No value
// escapes Lock: on success the calling process is confined for the rest of
// its lifetime, on failure the process is in an indeterminate
// partially-confined state and must terminate rather than continue.
type Sandbox interface {
	// AddException validates e (its path, if any, must exist on the host)
	// and folds it into the builder's state. Returns InvalidPathError if
	// validation fails; the builder is left unchanged.
	AddException(Exception) error

	// Lock consumes the builder and confines the current process. Must be
	// called from a single-threaded process before any additional OS
	// threads are spawned.
	Lock() error
}
