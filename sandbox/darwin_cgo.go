//go:build darwin

package sandbox

/*
#cgo LDFLAGS: -lSystem

#include <stdlib.h>

extern int sandbox_init(const char *profile, uint64_t flags, char **errorbuf);
extern void sandbox_free_error(char *errorbuf);
*/
import "C"
import "unsafe"

// activateProfile hands profile to the platform's sandbox_init, the same
// primitive original_source's macos.rs binds via its own extern "C" block.
// No Go example in this module's surrounding corpus calls sandbox_init
// directly (they all shell out to the sandbox-exec binary instead), but
// that CLI can only confine a child it execs, never the calling process
// itself, so a direct cgo binding is unavoidable here.
func activateProfile(profile []byte) error {
	cProfile := C.CString(string(profile))
	defer C.free(unsafe.Pointer(cProfile))

	var cErr *C.char
	rc := C.sandbox_init(cProfile, 0, &cErr)
	if rc != 0 {
		msg := "sandbox_init failed"
		if cErr != nil {
			msg = C.GoString(cErr)
			C.sandbox_free_error(cErr)
		}
		return &ActivationFailedError{Message: msg}
	}
	return nil
}
