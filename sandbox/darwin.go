//go:build darwin

package sandbox

import (
	"fmt"
	"path/filepath"
	"strings"
)

// seatbeltPreamble is the fixed program every profile begins with: version
// 1, import the platform's own system.sb, deny everything by default, then
// grant the small set of intra-process primitives every process needs
// regardless of policy (Mach/IPC, signals to the caller's own other
// processes, fork, sysctls, syscalls, metadata reads, and the stock network
// subsystem). Preserved verbatim from the original — spec §9 notes that
// tightening this default allow-list is a deliberate tradeoff out of scope
// for a faithful reimplementation.
const seatbeltPreamble = `(version 1)
(import "system.sb")
(deny default)
(allow mach*)
(allow ipc*)
(allow signal (target others))
(allow process-fork)
(allow sysctl*)
(allow system*)
(allow file-read-metadata)
(system-network)
`

// MacSandbox synthesizes a Seatbelt S-expression profile from the declared
// exceptions and activates it via sandbox_init at Lock time.
type MacSandbox struct {
	profile []byte
	envKeep []string
	fullEnv bool
}

// New constructs a macOS sandbox builder seeded with the default profile.
func New() (Sandbox, error) {
	return &MacSandbox{
		profile: []byte(seatbeltPreamble),
	}, nil
}

// AddException validates e's path (if any) and appends its clause(s) to
// the profile. Per spec §3's append-only invariant, every clause is
// assembled into a scratch buffer first; the profile itself is only
// extended once assembly succeeds in full, so a mid-serialization failure
// never leaves it partially written.
func (s *MacSandbox) AddException(e Exception) error {
	switch e.kind {
	case kindRead:
		scratch, err := appendReadClause(nil, e.path)
		if err != nil {
			return err
		}
		s.profile = append(s.profile, scratch...)
	case kindWriteAndRead:
		scratch, err := appendReadClause(nil, e.path)
		if err != nil {
			return err
		}
		scratch, err = appendClause(scratch, "file-write*", e.path)
		if err != nil {
			return err
		}
		s.profile = append(s.profile, scratch...)
	case kindExecuteAndRead:
		scratch, err := appendReadClause(nil, e.path)
		if err != nil {
			return err
		}
		scratch, err = appendClause(scratch, "process-exec", e.path)
		if err != nil {
			return err
		}
		s.profile = append(s.profile, scratch...)
	case kindEnvironment:
		if !containsString(s.envKeep, e.key) {
			s.envKeep = append(s.envKeep, e.key)
		}
	case kindFullEnvironment:
		s.fullEnv = true
	case kindNetworking:
		s.profile = append(s.profile, []byte("(allow network*)\n")...)
	}
	return nil
}

func appendReadClause(scratch []byte, path string) ([]byte, error) {
	return appendClause(scratch, "file-read*", path)
}

// appendClause escapes path and appends `(allow <op> (subpath "<path>"))\n`
// to scratch, returning the extended buffer. Canonicalization failure is
// reported as InvalidPathError and scratch is returned unmodified by the
// caller (nothing has been committed to the real profile yet).
func appendClause(scratch []byte, op, path string) ([]byte, error) {
	escaped, err := escapePath(path)
	if err != nil {
		return scratch, err
	}
	line := fmt.Sprintf("(allow %s (subpath %s))\n", op, escaped)
	return append(scratch, []byte(line)...), nil
}

// escapePath canonicalizes path via the platform filesystem API (Seatbelt's
// subpath forbids relative paths), strips any trailing "/" except for the
// root itself, backslash-escapes embedded '"' and '\', and wraps the result
// in double quotes.
func escapePath(path string) (string, error) {
	canonical, err := filepath.Abs(path)
	if err != nil {
		return "", &InvalidPathError{Path: path, Err: err}
	}
	canonical, err = filepath.EvalSymlinks(canonical)
	if err != nil {
		return "", &InvalidPathError{Path: path, Err: err}
	}

	for len(canonical) > 1 && strings.HasSuffix(canonical, "/") {
		canonical = strings.TrimSuffix(canonical, "/")
	}

	canonical = strings.ReplaceAll(canonical, `\`, `\\`)
	canonical = strings.ReplaceAll(canonical, `"`, `\"`)

	return `"` + canonical + `"`, nil
}

// Lock purges the environment (unless FullEnvironment was requested) and
// hands the assembled profile to sandbox_init.
func (s *MacSandbox) Lock() error {
	if !s.fullEnv {
		restrictEnvVariables(s.envKeep)
	}
	return activateProfile(s.profile)
}
