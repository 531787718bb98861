//go:build darwin || linux || freebsd

package native

import (
	"github.com/ebitengine/purego"

	"github.com/astroveda/sweph-runtime/errors"
)

// openLibrary dlopens the engine at path and binds its entry points.
func openLibrary(path string) (*Library, error) {
	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindNotFound, err, path)
	}
	return bindEntryPoints(path, handle), nil
}
