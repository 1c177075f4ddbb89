// Package sandbox confines the calling process to a restricted view of the
// filesystem, environment, and network.
//
// A caller builds a policy by constructing a Sandbox with New, declaring a
// list of Exceptions against an implicit deny-all baseline, and finally
// calling Lock. Lock is terminal: on success the current process is placed
// into an irrevocable confined state for the remainder of its lifetime; on
// failure the process may be partially confined and must not continue
// running untrusted code. The sandbox never forks or spawns children —
// confinement is self-applied.
//
// Lock must be called from a single-threaded process before any additional
// OS threads are spawned. On Linux, entering a new user namespace is
// rejected by the kernel once a process has more than one thread, and this
// package does not work around that restriction.
package sandbox
