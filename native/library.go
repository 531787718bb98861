package native

import (
	"context"

	swephruntime "github.com/astroveda/sweph-runtime"
	"github.com/astroveda/sweph-runtime/errors"
)

const serrBufSize = 256

// Engine return code for a rise/set/transit event that does not occur.
const retNoEvent = -2

// Library is a loaded engine shared library. One live Library serves the
// whole process; it is read-only after construction apart from the explicit
// global-mode setters.
type Library struct {
	path string

	calcUT     func(tjd float64, ipl, iflag int32, xx []float64, serr []byte) int32
	riseTrans  func(tjd float64, ipl int32, star string, epheflag, rsmi int32, geopos []float64, atpress, attemp float64, tret []float64, serr []byte) int32
	azalt      func(tjd float64, calcFlag int32, geopos []float64, atpress, attemp float64, xin, xaz []float64)
	setSidMode func(mode int32, t0, ayanT0 float64)
	ayanamsaUT func(tjd float64) float64
	julday     func(year, month, day int32, hour float64, gregflag int32) float64
	setEphe    func(path string)
	version    func(buf []byte) string
	closeFn    func()
}

var _ swephruntime.Adapter = (*Library)(nil)

// Path returns the filesystem path the library was loaded from.
func (l *Library) Path() string {
	return l.path
}

func cstr(buf []byte) string {
	for i, b := range buf {
		if b == 0 {
			return string(buf[:i])
		}
	}
	return string(buf)
}

// CalcPosition computes an ecliptic position in the native engine.
func (l *Library) CalcPosition(dayNumber float64, body swephruntime.Body, flags swephruntime.CalcFlag) (swephruntime.CalcResult, error) {
	xx := make([]float64, 6)
	serr := make([]byte, serrBufSize)

	if ret := l.calcUT(dayNumber, int32(body), int32(flags), xx, serr); ret < 0 {
		return swephruntime.CalcResult{}, errors.Engine(errors.PhaseCalc, "swe_calc_ut", cstr(serr))
	}

	return swephruntime.CalcResult{
		Longitude:      xx[0],
		Latitude:       xx[1],
		Distance:       xx[2],
		LongitudeSpeed: xx[3],
		LatitudeSpeed:  xx[4],
		DistanceSpeed:  xx[5],
	}, nil
}

// RiseTransit searches for the next rise, set or transit event.
func (l *Library) RiseTransit(dayNumber float64, body swephruntime.Body, starName string,
	epheFlags swephruntime.CalcFlag, event swephruntime.RiseFlag, geo swephruntime.GeoPosition,
	pressure, temperature float64) (swephruntime.RiseTransResult, error) {

	geopos := []float64{geo.Longitude, geo.Latitude, geo.Altitude}
	tret := make([]float64, 8)
	serr := make([]byte, serrBufSize)

	ret := l.riseTrans(dayNumber, int32(body), starName, int32(epheFlags), int32(event),
		geopos, pressure, temperature, tret, serr)
	if ret == retNoEvent {
		return swephruntime.RiseTransResult{Flag: ret, Valid: false}, nil
	}
	if ret < 0 {
		return swephruntime.RiseTransResult{}, errors.Engine(errors.PhaseCalc, "swe_rise_trans", cstr(serr))
	}

	return swephruntime.RiseTransResult{Time: tret[0], Flag: ret, Valid: true}, nil
}

// AzAlt converts coordinates to the horizontal system.
func (l *Library) AzAlt(dayNumber float64, conv swephruntime.ConvertFlag, geo swephruntime.GeoPosition,
	pressure, temperature float64, in swephruntime.EclipticInput) (swephruntime.AzAltResult, error) {

	geopos := []float64{geo.Longitude, geo.Latitude, geo.Altitude}
	xin := []float64{in.Longitude, in.Latitude, in.Distance}
	xaz := make([]float64, 3)

	l.azalt(dayNumber, int32(conv), geopos, pressure, temperature, xin, xaz)

	return swephruntime.AzAltResult{
		Azimuth:          xaz[0],
		TrueAltitude:     xaz[1],
		ApparentAltitude: xaz[2],
	}, nil
}

// SetSiderealMode selects the engine's ayanamsa.
func (l *Library) SetSiderealMode(mode swephruntime.SiderealMode, t0, ayanT0 float64) error {
	l.setSidMode(int32(mode), t0, ayanT0)
	return nil
}

// Ayanamsa returns the sidereal offset for the given day number.
func (l *Library) Ayanamsa(dayNumber float64) (float64, error) {
	return l.ayanamsaUT(dayNumber), nil
}

// DayNumber converts a calendar date to a Julian day number.
func (l *Library) DayNumber(year, month, day int, hourFraction float64, cal swephruntime.CalendarFlag) (float64, error) {
	return l.julday(int32(year), int32(month), int32(day), hourFraction, int32(cal)), nil
}

// SetEphemerisPath points the engine at its data files.
func (l *Library) SetEphemerisPath(path string) error {
	l.setEphe(path)
	return nil
}

// Version reports the engine's version string.
func (l *Library) Version() (string, error) {
	buf := make([]byte, 64)
	return l.version(buf), nil
}

// Close releases engine-held file handles. The library mapping itself stays
// for the life of the process; dynamic unloading is not supported.
func (l *Library) Close(ctx context.Context) error {
	if l.closeFn != nil {
		l.closeFn()
	}
	return nil
}
