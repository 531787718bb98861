//go:build darwin || linux || freebsd || windows

package native

import "github.com/ebitengine/purego"

// bindEntryPoints registers the engine entry points against an opened
// library handle. The handle must stay valid for the life of the process.
func bindEntryPoints(path string, handle uintptr) *Library {
	lib := &Library{path: path}
	purego.RegisterLibFunc(&lib.calcUT, handle, "swe_calc_ut")
	purego.RegisterLibFunc(&lib.riseTrans, handle, "swe_rise_trans")
	purego.RegisterLibFunc(&lib.azalt, handle, "swe_azalt")
	purego.RegisterLibFunc(&lib.setSidMode, handle, "swe_set_sid_mode")
	purego.RegisterLibFunc(&lib.ayanamsaUT, handle, "swe_get_ayanamsa_ut")
	purego.RegisterLibFunc(&lib.julday, handle, "swe_julday")
	purego.RegisterLibFunc(&lib.setEphe, handle, "swe_set_ephe_path")
	purego.RegisterLibFunc(&lib.version, handle, "swe_version")
	purego.RegisterLibFunc(&lib.closeFn, handle, "swe_close")
	return lib
}
