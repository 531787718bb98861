//go:build windows

package native

import (
	"golang.org/x/sys/windows"

	"github.com/astroveda/sweph-runtime/errors"
)

// openLibrary loads the engine DLL at path and binds its entry points.
func openLibrary(path string) (*Library, error) {
	handle, err := windows.LoadLibrary(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindNotFound, err, path)
	}
	return bindEntryPoints(path, uintptr(handle)), nil
}
