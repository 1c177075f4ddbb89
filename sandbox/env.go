package sandbox

import "os"

func containsString(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

// restrictEnvVariables clears the process environment except for the names
// in keep. Its contract is the only thing either backend relies on: after
// it returns, no environment variable outside keep is observable to the
// current process or any child it later spawns. The mechanics of purging
// and selectively repopulating the environment are straightforward enough
// that this package owns them directly rather than treating it as a true
// external collaborator.
func restrictEnvVariables(keep []string) {
	preserved := make(map[string]string, len(keep))
	for _, k := range keep {
		if v, ok := os.LookupEnv(k); ok {
			preserved[k] = v
		}
	}
	os.Clearenv()
	for k, v := range preserved {
		os.Setenv(k, v)
	}
}
