//go:build linux

package sandbox

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// deniedSyscalls is the fixed, statically known denylist applied at Lock
// time. It must at minimum block syscalls that could re-mount,
// re-namespace, or install a new filter in a way that would relax the
// confinement Lock just established; ptrace is included because it would
// otherwise let a sandboxed process attach to and manipulate another
// process still running with the same or fewer restrictions.
var deniedSyscalls = []uint32{
	unix.SYS_MOUNT,
	unix.SYS_UMOUNT2,
	unix.SYS_PIVOT_ROOT,
	unix.SYS_UNSHARE,
	unix.SYS_SETNS,
	unix.SYS_PTRACE,
	unix.SYS_REBOOT,
	unix.SYS_KEXEC_LOAD,
	unix.SYS_INIT_MODULE,
	unix.SYS_FINIT_MODULE,
	unix.SYS_DELETE_MODULE,
	unix.SYS_SWAPON,
	unix.SYS_SWAPOFF,
}

const (
	seccompRetAllow = 0x7fff0000
	seccompRetErrno = 0x00050000
	// SECCOMP_SET_MODE_FILTER, from linux/seccomp.h.
	seccompSetModeFilter = 1
)

// buildSeccompFilter assembles a classic BPF program: load the syscall
// number, compare it against each denied syscall with a jump to the deny
// return, and fall through to an allow return otherwise.
func buildSeccompFilter() []unix.SockFilter {
	prog := make([]unix.SockFilter, 0, len(deniedSyscalls)+2)

	// Load syscall number (seccomp_data.nr, offset 0) into the accumulator.
	prog = append(prog, unix.SockFilter{
		Code: unix.BPF_LD | unix.BPF_W | unix.BPF_ABS,
		K:    0,
	})

	n := len(deniedSyscalls)
	for i, nr := range deniedSyscalls {
		// A match jumps past every remaining comparison plus the allow
		// return, landing on the deny return right after it.
		jumpToDeny := uint8(n - i)
		prog = append(prog, unix.SockFilter{
			Code: unix.BPF_JMP | unix.BPF_JEQ | unix.BPF_K,
			Jt:   jumpToDeny,
			Jf:   0,
			K:    nr,
		})
	}

	prog = append(prog, unix.SockFilter{
		Code: unix.BPF_RET | unix.BPF_K,
		K:    seccompRetAllow,
	})
	prog = append(prog, unix.SockFilter{
		Code: unix.BPF_RET | unix.BPF_K,
		K:    seccompRetErrno | uint32(unix.EPERM),
	})

	return prog
}

// applySeccomp installs the BPF filter built by buildSeccompFilter. Install
// failure must fail Lock closed — a sandbox whose seccomp filter silently
// didn't take is not a sandbox.
func applySeccomp() error {
	prog := buildSeccompFilter()

	fprog := unix.SockFprog{
		Len:    uint16(len(prog)),
		Filter: &prog[0],
	}

	if _, _, errno := unix.RawSyscall(unix.SYS_SECCOMP,
		seccompSetModeFilter, 0, uintptr(unsafe.Pointer(&fprog))); errno != 0 {
		return &IOError{Op: "seccomp(SECCOMP_SET_MODE_FILTER)", Err: errno}
	}
	return nil
}
