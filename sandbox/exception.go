package sandbox

// kind tags the six closed variants of Exception. Modeled as a small enum
// rather than an interface hierarchy, since the vocabulary is fixed and
// never grows at the call site.
type kind int

const (
	kindRead kind = iota
	kindWriteAndRead
	kindExecuteAndRead
	kindEnvironment
	kindFullEnvironment
	kindNetworking
)

// Exception is one item in a sandbox policy: a named allowance against the
// implicit deny-all baseline. Construct one with Read, WriteAndRead,
// ExecuteAndRead, Environment, FullEnvironment, or Networking.
type Exception struct {
	kind kind
	path string // set for Read, WriteAndRead, ExecuteAndRead
	key  string // set for Environment
}

// Read grants read access to the filesystem subtree rooted at path.
func Read(path string) Exception {
	return Exception{kind: kindRead, path: path}
}

// WriteAndRead grants read and write access to the filesystem subtree
// rooted at path.
func WriteAndRead(path string) Exception {
	return Exception{kind: kindWriteAndRead, path: path}
}

// ExecuteAndRead grants read and execute access to the filesystem subtree
// rooted at path.
func ExecuteAndRead(path string) Exception {
	return Exception{kind: kindExecuteAndRead, path: path}
}

// Environment preserves the named environment variable across the
// environment purge that Lock performs.
func Environment(key string) Exception {
	return Exception{kind: kindEnvironment, key: key}
}

// FullEnvironment suppresses the environment purge entirely: every variable
// present before Lock remains observable after it.
func FullEnvironment() Exception {
	return Exception{kind: kindFullEnvironment}
}

// Networking permits network access. Without it, Lock on the Linux backend
// moves the process into a new, empty network namespace: no host network
// interface is reachable from it, but socket creation itself is not
// blocked.
func Networking() Exception {
	return Exception{kind: kindNetworking}
}

// hasPath reports whether e is one of the three path-bearing variants,
// which must be validated against the host filesystem before being folded
// into builder state.
func (e Exception) hasPath() bool {
	switch e.kind {
	case kindRead, kindWriteAndRead, kindExecuteAndRead:
		return true
	default:
		return false
	}
}
