//go:build !(darwin || linux || freebsd || windows)

package native

import "github.com/astroveda/sweph-runtime/errors"

// openLibrary is unavailable on platforms without dlopen support; the
// loader records the failure and moves on to its remaining strategies.
func openLibrary(path string) (*Library, error) {
	return nil, errors.New(errors.PhaseLoad, errors.KindUnsupportedPlatform).
		Detail("dynamic library loading not supported on this platform").
		Build()
}
