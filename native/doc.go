// Package native loads the ephemeris engine as a process-hosted shared
// library and implements the Adapter contract over its C entry points.
//
// Resolution runs a tiered search: an explicitly configured library path,
// an environment-provided library directory, prebuilt binaries keyed by
// {os}-{arch}, the system loader's default search, a locally built
// variant, and finally one optional fallback library. Every failed
// strategy is recorded; if nothing loads, the caller receives a single
// ResolutionError listing each attempt, the platform key, and the
// officially supported platforms.
//
// An off-list platform key is not fatal up front - a locally built or
// fallback library may still work - so the search always runs to
// completion before failing.
package native
