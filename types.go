package swephruntime

// CalcResult is the position of a body: three coordinates and their speeds.
// Depending on the flags passed to CalcPosition the coordinates are
// ecliptic (longitude/latitude/distance) or equatorial (RA/decl/distance).
type CalcResult struct {
	Longitude      float64
	Latitude       float64
	Distance       float64
	LongitudeSpeed float64
	LatitudeSpeed  float64
	DistanceSpeed  float64
}

// RiseTransResult is the outcome of a rise/set/transit search.
// Valid is false when the event does not occur for the given day and
// location (polar day or night); that is not an error.
type RiseTransResult struct {
	Time  float64
	Flag  int32
	Valid bool
}

// AzAltResult is a position in the horizontal coordinate system.
type AzAltResult struct {
	Azimuth          float64
	TrueAltitude     float64
	ApparentAltitude float64
}

// GeoPosition is an observer location. Longitude east-positive in degrees,
// latitude north-positive in degrees, altitude in meters above sea level.
type GeoPosition struct {
	Longitude float64
	Latitude  float64
	Altitude  float64
}

// EclipticInput is the coordinate triple fed to AzAlt.
type EclipticInput struct {
	Longitude float64
	Latitude  float64
	Distance  float64
}
