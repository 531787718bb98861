package wasm

import (
	"context"
	stderrors "errors"
	"math"

	swephruntime "github.com/astroveda/sweph-runtime"
	"github.com/astroveda/sweph-runtime/errors"
)

// Exported engine entry points. Names resolve with the underscore fallback
// in lookupExport.
const (
	fnCalcUT      = "swe_calc_ut"
	fnRiseTrans   = "swe_rise_trans"
	fnAzAlt       = "swe_azalt"
	fnSetSidMode  = "swe_set_sid_mode"
	fnAyanamsaUT  = "swe_get_ayanamsa_ut"
	fnJulday      = "swe_julday"
	fnSetEphePath = "swe_set_ephe_path"
	fnVersion     = "swe_version"
)

// engineExports lists every entry point resolved when a module is loaded.
var engineExports = []string{
	fnCalcUT,
	fnRiseTrans,
	fnAzAlt,
	fnSetSidMode,
	fnAyanamsaUT,
	fnJulday,
	fnSetEphePath,
	fnVersion,
}

// Scratch buffer sizes. Every double occupies one 8-byte slot at
// base + index*8.
const (
	errBufSize           = 256
	calcResultDoubles    = 6
	transitResultDoubles = 8
	azAltDoubles         = 3
	versionBufSize       = 64
)

// Engine return code for a rise/set/transit event that does not occur
// (circumpolar body, polar day or night). A valid non-error outcome.
const retNoEvent = -2

// errVoidResult reports an export that returned no value where the engine
// ABI requires one.
var errVoidResult = stderrors.New("engine function returned no value")

// engine is the surface the adapter needs from a loaded module. Satisfied
// by guestModule; tests substitute a scripted fake.
type engine interface {
	Call(name string, args ...uint64) ([]uint64, error)
	Memory() swephruntime.Memory
	Allocator() swephruntime.Allocator
	Close(ctx context.Context) error
}

// Adapter implements the swephruntime.Adapter contract over a sandboxed
// engine module. Scratch buffers are per-call, never shared, but the module
// instance itself executes single-threaded: callers serialize calls on one
// Adapter and use the pool package for parallel calculations.
type Adapter struct {
	mod engine
}

func newAdapter(mod engine) *Adapter {
	return &Adapter{mod: mod}
}

var _ swephruntime.Adapter = (*Adapter)(nil)

func encodeI32(v int32) uint64   { return uint64(uint32(v)) }
func encodeF64(v float64) uint64 { return math.Float64bits(v) }
func decodeI32(v uint64) int32   { return int32(uint32(v)) }
func decodeF64(v uint64) float64 { return math.Float64frombits(v) }

// CalcPosition computes an ecliptic position in the guest engine.
func (a *Adapter) CalcPosition(dayNumber float64, body swephruntime.Body, flags swephruntime.CalcFlag) (swephruntime.CalcResult, error) {
	var zero swephruntime.CalcResult

	alloc := a.mod.Allocator()
	list := NewAllocationList()
	defer list.FreeAndRelease(alloc)

	resPtr, err := list.Alloc(alloc, calcResultDoubles*8)
	if err != nil {
		return zero, errors.Wrap(errors.PhaseMarshal, errors.KindAllocation, err, "result buffer")
	}
	errPtr, err := list.Alloc(alloc, errBufSize)
	if err != nil {
		return zero, errors.Wrap(errors.PhaseMarshal, errors.KindAllocation, err, "error buffer")
	}

	results, err := a.mod.Call(fnCalcUT,
		encodeF64(dayNumber), encodeI32(int32(body)), encodeI32(int32(flags)),
		uint64(resPtr), uint64(errPtr))
	if err != nil {
		return zero, errors.Wrap(errors.PhaseCalc, errors.KindEngine, err, fnCalcUT)
	}

	if len(results) == 0 {
		return zero, errors.DecodeFailed(fnCalcUT, errVoidResult)
	}
	if decodeI32(results[0]) < 0 {
		return zero, errors.Engine(errors.PhaseCalc, fnCalcUT, a.readEngineError(errPtr))
	}

	xx, err := a.readDoubles(resPtr, calcResultDoubles)
	if err != nil {
		return zero, errors.DecodeFailed(fnCalcUT, err)
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
func (a *Adapter) RiseTransit(dayNumber float64, body swephruntime.Body, starName string,
	epheFlags swephruntime.CalcFlag, event swephruntime.RiseFlag, geo swephruntime.GeoPosition,
	pressure, temperature float64) (swephruntime.RiseTransResult, error) {

	var zero swephruntime.RiseTransResult

	alloc := a.mod.Allocator()
	list := NewAllocationList()
	defer list.FreeAndRelease(alloc)

	starPtr, err := a.writeCString(list, starName)
	if err != nil {
		return zero, errors.Wrap(errors.PhaseMarshal, errors.KindAllocation, err, "star name buffer")
	}
	geoPtr, err := a.writeDoubles(list, []float64{geo.Longitude, geo.Latitude, geo.Altitude})
	if err != nil {
		return zero, errors.Wrap(errors.PhaseMarshal, errors.KindAllocation, err, "geoposition buffer")
	}
	tretPtr, err := list.Alloc(alloc, transitResultDoubles*8)
	if err != nil {
		return zero, errors.Wrap(errors.PhaseMarshal, errors.KindAllocation, err, "transit buffer")
	}
	errPtr, err := list.Alloc(alloc, errBufSize)
	if err != nil {
		return zero, errors.Wrap(errors.PhaseMarshal, errors.KindAllocation, err, "error buffer")
	}

	results, err := a.mod.Call(fnRiseTrans,
		encodeF64(dayNumber), encodeI32(int32(body)), uint64(starPtr),
		encodeI32(int32(epheFlags)), encodeI32(int32(event)), uint64(geoPtr),
		encodeF64(pressure), encodeF64(temperature), uint64(tretPtr), uint64(errPtr))
	if err != nil {
		return zero, errors.Wrap(errors.PhaseCalc, errors.KindEngine, err, fnRiseTrans)
	}

	if len(results) == 0 {
		return zero, errors.DecodeFailed(fnRiseTrans, errVoidResult)
	}
	ret := decodeI32(results[0])
	if ret == retNoEvent {
		// Polar day or night: absence of the event, not an error.
		return swephruntime.RiseTransResult{Flag: ret, Valid: false}, nil
	}
	if ret < 0 {
		return zero, errors.Engine(errors.PhaseCalc, fnRiseTrans, a.readEngineError(errPtr))
	}

	when, err := a.mod.Memory().ReadF64(tretPtr)
	if err != nil {
		return zero, errors.DecodeFailed(fnRiseTrans, err)
	}

	return swephruntime.RiseTransResult{Time: when, Flag: ret, Valid: true}, nil
}

// AzAlt converts coordinates to the horizontal system. Marshaling failures
// surface as errors rather than the historical all-zero sentinel.
func (a *Adapter) AzAlt(dayNumber float64, conv swephruntime.ConvertFlag, geo swephruntime.GeoPosition,
	pressure, temperature float64, in swephruntime.EclipticInput) (swephruntime.AzAltResult, error) {

	var zero swephruntime.AzAltResult

	alloc := a.mod.Allocator()
	list := NewAllocationList()
	defer list.FreeAndRelease(alloc)

	geoPtr, err := a.writeDoubles(list, []float64{geo.Longitude, geo.Latitude, geo.Altitude})
	if err != nil {
		return zero, errors.Wrap(errors.PhaseMarshal, errors.KindAllocation, err, "geoposition buffer")
	}
	inPtr, err := a.writeDoubles(list, []float64{in.Longitude, in.Latitude, in.Distance})
	if err != nil {
		return zero, errors.Wrap(errors.PhaseMarshal, errors.KindAllocation, err, "ecliptic input buffer")
	}
	outPtr, err := list.Alloc(alloc, azAltDoubles*8)
	if err != nil {
		return zero, errors.Wrap(errors.PhaseMarshal, errors.KindAllocation, err, "result buffer")
	}

	_, err = a.mod.Call(fnAzAlt,
		encodeF64(dayNumber), encodeI32(int32(conv)), uint64(geoPtr),
		encodeF64(pressure), encodeF64(temperature), uint64(inPtr), uint64(outPtr))
	if err != nil {
		return zero, errors.Wrap(errors.PhaseCalc, errors.KindEngine, err, fnAzAlt)
	}

	xaz, err := a.readDoubles(outPtr, azAltDoubles)
	if err != nil {
		return zero, errors.DecodeFailed(fnAzAlt, err)
	}

	return swephruntime.AzAltResult{
		Azimuth:          xaz[0],
		TrueAltitude:     xaz[1],
		ApparentAltitude: xaz[2],
	}, nil
}

// SetSiderealMode selects the engine's ayanamsa. Scalar-only call, no
// scratch buffers.
func (a *Adapter) SetSiderealMode(mode swephruntime.SiderealMode, t0, ayanT0 float64) error {
	_, err := a.mod.Call(fnSetSidMode, encodeI32(int32(mode)), encodeF64(t0), encodeF64(ayanT0))
	if err != nil {
		return errors.Wrap(errors.PhaseCalc, errors.KindEngine, err, fnSetSidMode)
	}
	return nil
}

// Ayanamsa returns the sidereal offset for the given day number.
func (a *Adapter) Ayanamsa(dayNumber float64) (float64, error) {
	results, err := a.mod.Call(fnAyanamsaUT, encodeF64(dayNumber))
	if err != nil {
		return 0, errors.Wrap(errors.PhaseCalc, errors.KindEngine, err, fnAyanamsaUT)
	}
	if len(results) == 0 {
		return 0, errors.DecodeFailed(fnAyanamsaUT, errVoidResult)
	}
	return decodeF64(results[0]), nil
}

// DayNumber converts a calendar date to a Julian day number.
func (a *Adapter) DayNumber(year, month, day int, hourFraction float64, cal swephruntime.CalendarFlag) (float64, error) {
	results, err := a.mod.Call(fnJulday,
		encodeI32(int32(year)), encodeI32(int32(month)), encodeI32(int32(day)),
		encodeF64(hourFraction), encodeI32(int32(cal)))
	if err != nil {
		return 0, errors.Wrap(errors.PhaseCalc, errors.KindEngine, err, fnJulday)
	}
	if len(results) == 0 {
		return 0, errors.DecodeFailed(fnJulday, errVoidResult)
	}
	return decodeF64(results[0]), nil
}

// SetEphemerisPath points the engine at its data files.
func (a *Adapter) SetEphemerisPath(path string) error {
	alloc := a.mod.Allocator()
	list := NewAllocationList()
	defer list.FreeAndRelease(alloc)

	pathPtr, err := a.writeCString(list, path)
	if err != nil {
		return errors.Wrap(errors.PhaseMarshal, errors.KindAllocation, err, "path buffer")
	}

	if _, err := a.mod.Call(fnSetEphePath, uint64(pathPtr)); err != nil {
		return errors.Wrap(errors.PhaseCalc, errors.KindEngine, err, fnSetEphePath)
	}
	return nil
}

// Version reports the wrapped engine's version string.
func (a *Adapter) Version() (string, error) {
	alloc := a.mod.Allocator()
	list := NewAllocationList()
	defer list.FreeAndRelease(alloc)

	bufPtr, err := list.Alloc(alloc, versionBufSize)
	if err != nil {
		return "", errors.Wrap(errors.PhaseMarshal, errors.KindAllocation, err, "version buffer")
	}

	results, err := a.mod.Call(fnVersion, uint64(bufPtr))
	if err != nil {
		return "", errors.Wrap(errors.PhaseCalc, errors.KindEngine, err, fnVersion)
	}

	// The engine returns its input buffer; trust the returned pointer when
	// present, the scratch buffer otherwise.
	ptr := bufPtr
	if len(results) > 0 && uint32(results[0]) != 0 {
		ptr = uint32(results[0])
	}

	version, err := a.readCString(ptr, versionBufSize)
	if err != nil {
		return "", errors.DecodeFailed(fnVersion, err)
	}
	return version, nil
}

// Close releases the module instance.
func (a *Adapter) Close(ctx context.Context) error {
	return a.mod.Close(ctx)
}

// writeDoubles allocates a buffer for vals and writes each at an 8-byte slot.
func (a *Adapter) writeDoubles(list *AllocationList, vals []float64) (uint32, error) {
	base, err := list.Alloc(a.mod.Allocator(), uint32(len(vals))*8)
	if err != nil {
		return 0, err
	}
	mem := a.mod.Memory()
	for i, v := range vals {
		if err := mem.WriteF64(base+uint32(i)*8, v); err != nil {
			return 0, err
		}
	}
	return base, nil
}

// readDoubles reads n doubles from consecutive 8-byte slots at ptr.
func (a *Adapter) readDoubles(ptr uint32, n int) ([]float64, error) {
	mem := a.mod.Memory()
	out := make([]float64, n)
	for i := range out {
		v, err := mem.ReadF64(ptr + uint32(i)*8)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// writeCString allocates and writes a NUL-terminated UTF-8 buffer.
func (a *Adapter) writeCString(list *AllocationList, s string) (uint32, error) {
	buf := append([]byte(s), 0)
	ptr, err := list.Alloc(a.mod.Allocator(), uint32(len(buf)))
	if err != nil {
		return 0, err
	}
	if err := a.mod.Memory().Write(ptr, buf); err != nil {
		return 0, err
	}
	return ptr, nil
}

// readCString reads up to max bytes at ptr and cuts at the first NUL.
func (a *Adapter) readCString(ptr uint32, max uint32) (string, error) {
	data, err := a.mod.Memory().Read(ptr, max)
	if err != nil {
		return "", err
	}
	for i, b := range data {
		if b == 0 {
			return string(data[:i]), nil
		}
	}
	return string(data), nil
}

// readEngineError decodes the engine diagnostic buffer. Best effort: a
// decode failure here must not mask the engine error itself.
func (a *Adapter) readEngineError(errPtr uint32) string {
	msg, err := a.readCString(errPtr, errBufSize)
	if err != nil {
		return "engine reported failure (diagnostic unreadable)"
	}
	if msg == "" {
		return "engine reported failure"
	}
	return msg
}
