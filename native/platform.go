package native

import (
	"os"
	"path/filepath"
	"runtime"
)

// supportedPlatforms lists the platform keys prebuilt engine binaries ship
// for. Off-list keys still run the full strategy search; the list only
// sharpens the final diagnostic.
var supportedPlatforms = []string{
	"linux-amd64",
	"linux-arm64",
	"darwin-amd64",
	"darwin-arm64",
	"windows-amd64",
}

// loaderOSes lists the operating systems with an openLibrary implementation
// (dlopen on unix-likes, LoadLibrary on windows). Every supported platform
// key must use one of these; the stub build otherwise fails each strategy
// with an unsupported-platform error.
var loaderOSes = []string{"linux", "darwin", "freebsd", "windows"}

// EnvLibraryDir names the environment variable pointing at a directory
// holding the engine library for installed consumers.
const EnvLibraryDir = "SWEPH_LIBRARY_DIR"

// PlatformKey returns the {operatingSystem}-{architecture} key used to
// select a prebuilt binary.
func PlatformKey() string {
	return runtime.GOOS + "-" + runtime.GOARCH
}

// libraryFileName returns the platform's conventional engine library name.
func libraryFileName() string {
	switch runtime.GOOS {
	case "windows":
		return "swe.dll"
	case "darwin":
		return "libswe.dylib"
	default:
		return "libswe.so"
	}
}

// fallbackLibraryName is the optional last-resort dependency tried after
// every prebuilt and locally built candidate has failed.
func fallbackLibraryName() string {
	switch runtime.GOOS {
	case "windows":
		return "swe-fallback.dll"
	case "darwin":
		return "libswe-fallback.dylib"
	default:
		return "libswe-fallback.so"
	}
}

// candidate is one loading strategy in search order.
type candidate struct {
	strategy string
	path     string
}

// candidates builds the ordered strategy list for the current platform.
func candidates(cfg Config) []candidate {
	key := PlatformKey()
	name := libraryFileName()

	var out []candidate
	if cfg.LibraryPath != "" {
		out = append(out, candidate{strategy: "configured", path: cfg.LibraryPath})
	}
	if dir := os.Getenv(EnvLibraryDir); dir != "" {
		out = append(out, candidate{strategy: "env-dir", path: filepath.Join(dir, name)})
	}
	out = append(out,
		candidate{strategy: "prebuilt", path: filepath.Join("prebuilt", key, name)},
		candidate{strategy: "dependency-tree", path: filepath.Join("lib", key, name)},
		candidate{strategy: "system", path: name},
		candidate{strategy: "local-build", path: filepath.Join("build", name)},
		candidate{strategy: "fallback-library", path: fallbackLibraryName()},
	)
	return out
}
