// Command sandboxtest is a small harness used by the package's PTY-driven
// integration tests. It builds a sandbox policy from repeated flags, calls
// Lock, and then execs the remaining arguments in place — it never forks,
// matching the library's self-applied confinement model.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"github.com/Use-Tusk/birdcage/sandbox"
)

type stringList []string

func (s *stringList) String() string { return fmt.Sprint([]string(*s)) }
func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	var reads, writes, execs, envs stringList
	var networking, fullEnv bool

	flag.Var(&reads, "read", "grant read access to a path (repeatable)")
	flag.Var(&writes, "write", "grant read+write access to a path (repeatable)")
	flag.Var(&execs, "exec", "grant read+execute access to a path (repeatable)")
	flag.Var(&envs, "env", "preserve an environment variable across Lock (repeatable)")
	flag.BoolVar(&networking, "net", false, "permit network access")
	flag.BoolVar(&fullEnv, "full-env", false, "skip the environment purge entirely")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "sandboxtest: missing command to exec")
		os.Exit(2)
	}

	sb, err := sandbox.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "sandboxtest: %v\n", err)
		os.Exit(1)
	}

	for _, p := range reads {
		if err := sb.AddException(sandbox.Read(p)); err != nil {
			fmt.Fprintf(os.Stderr, "sandboxtest: read %s: %v\n", p, err)
			os.Exit(1)
		}
	}
	for _, p := range writes {
		if err := sb.AddException(sandbox.WriteAndRead(p)); err != nil {
			fmt.Fprintf(os.Stderr, "sandboxtest: write %s: %v\n", p, err)
			os.Exit(1)
		}
	}
	for _, p := range execs {
		if err := sb.AddException(sandbox.ExecuteAndRead(p)); err != nil {
			fmt.Fprintf(os.Stderr, "sandboxtest: exec %s: %v\n", p, err)
			os.Exit(1)
		}
	}
	for _, k := range envs {
		if err := sb.AddException(sandbox.Environment(k)); err != nil {
			fmt.Fprintf(os.Stderr, "sandboxtest: env %s: %v\n", k, err)
			os.Exit(1)
		}
	}
	if networking {
		_ = sb.AddException(sandbox.Networking())
	}
	if fullEnv {
		_ = sb.AddException(sandbox.FullEnvironment())
	}

	if err := sb.Lock(); err != nil {
		fmt.Fprintf(os.Stderr, "sandboxtest: lock: %v\n", err)
		os.Exit(1)
	}

	bin, err := exec.LookPath(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "sandboxtest: %v\n", err)
		os.Exit(1)
	}

	if err := syscall.Exec(bin, args, os.Environ()); err != nil {
		fmt.Fprintf(os.Stderr, "sandboxtest: exec: %v\n", err)
		os.Exit(1)
	}
}
