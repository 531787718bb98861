package swephruntime

import "context"

// Adapter is the operation contract every backend implements.
//
// Flags are opaque bitmasks: the contract carries them unchanged and never
// interprets astronomical flag semantics. Operations the engine can fail
// return a typed error (see the errors package); a rise/set/transit event
// that does not occur is a valid non-error outcome, reported through
// RiseTransResult.Valid.
type Adapter interface {
	// CalcPosition computes the ecliptic position of a body for the given
	// day number (Julian day, universal time).
	CalcPosition(dayNumber float64, body Body, flags CalcFlag) (CalcResult, error)

	// RiseTransit searches for the next rise, set or meridian transit of a
	// body after dayNumber as seen from geo. starName is only consulted for
	// fixed-star searches and is otherwise empty.
	RiseTransit(dayNumber float64, body Body, starName string, epheFlags CalcFlag,
		event RiseFlag, geo GeoPosition, pressure, temperature float64) (RiseTransResult, error)

	// AzAlt converts ecliptic or equatorial coordinates to the horizontal
	// system for an observer at geo.
	AzAlt(dayNumber float64, conv ConvertFlag, geo GeoPosition,
		pressure, temperature float64, in EclipticInput) (AzAltResult, error)

	// SetSiderealMode selects the ayanamsa used by sidereal calculations.
	// This mutates global engine state; callers running concurrent
	// calculations under different modes must serialize externally.
	SetSiderealMode(mode SiderealMode, t0, ayanT0 float64) error

	// Ayanamsa returns the ayanamsa value for the given day number under
	// the currently configured sidereal mode.
	Ayanamsa(dayNumber float64) (float64, error)

	// DayNumber converts a calendar date to a Julian day number.
	DayNumber(year, month, day int, hourFraction float64, cal CalendarFlag) (float64, error)

	// SetEphemerisPath points the engine at its data files. Global state,
	// same serialization caveat as SetSiderealMode.
	SetEphemerisPath(path string) error

	// Version reports the wrapped engine's version string.
	Version() (string, error)

	// Close releases the backend handle. After Close the adapter must not
	// be used; a new handle is obtained from the loader.
	Close(ctx context.Context) error
}
