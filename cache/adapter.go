package cache

import (
	"context"
	"time"

	swephruntime "github.com/astroveda/sweph-runtime"
)

// Adapter memoizes results of an inner adapter. Only successful results
// are cached; errors always reach the caller and leave the cache
// unpopulated for that key.
type Adapter struct {
	inner swephruntime.Adapter
	cache *Cache[any]
}

var _ swephruntime.Adapter = (*Adapter)(nil)

// NewAdapter wraps inner with a fresh cache.
func NewAdapter(inner swephruntime.Adapter, capacity int, ttl time.Duration) *Adapter {
	return &Adapter{
		inner: inner,
		cache: New[any](capacity, ttl),
	}
}

// Cache exposes the underlying cache for pooling and configuration.
func (a *Adapter) Cache() *Cache[any] {
	return a.cache
}

// Inner returns the wrapped adapter.
func (a *Adapter) Inner() swephruntime.Adapter {
	return a.inner
}

func (a *Adapter) CalcPosition(dayNumber float64, body swephruntime.Body, flags swephruntime.CalcFlag) (swephruntime.CalcResult, error) {
	key := Key("calc", dayNumber, formatI32(int32(body)), formatI32(int32(flags)))
	if v, ok := a.cache.Get(key); ok {
		return v.(swephruntime.CalcResult), nil
	}

	res, err := a.inner.CalcPosition(dayNumber, body, flags)
	if err != nil {
		return res, err
	}
	a.cache.Set(key, res)
	return res, nil
}

func (a *Adapter) RiseTransit(dayNumber float64, body swephruntime.Body, starName string,
	epheFlags swephruntime.CalcFlag, event swephruntime.RiseFlag, geo swephruntime.GeoPosition,
	pressure, temperature float64) (swephruntime.RiseTransResult, error) {

	key := Key("risetrans", dayNumber,
		formatI32(int32(body)), starName, formatI32(int32(epheFlags)), formatI32(int32(event)),
		formatF64(geo.Longitude), formatF64(geo.Latitude), formatF64(geo.Altitude),
		formatF64(pressure), formatF64(temperature))
	if v, ok := a.cache.Get(key); ok {
		return v.(swephruntime.RiseTransResult), nil
	}

	res, err := a.inner.RiseTransit(dayNumber, body, starName, epheFlags, event, geo, pressure, temperature)
	if err != nil {
		return res, err
	}
	a.cache.Set(key, res)
	return res, nil
}

func (a *Adapter) AzAlt(dayNumber float64, conv swephruntime.ConvertFlag, geo swephruntime.GeoPosition,
	pressure, temperature float64, in swephruntime.EclipticInput) (swephruntime.AzAltResult, error) {

	key := Key("azalt", dayNumber,
		formatI32(int32(conv)),
		formatF64(geo.Longitude), formatF64(geo.Latitude), formatF64(geo.Altitude),
		formatF64(pressure), formatF64(temperature),
		formatF64(in.Longitude), formatF64(in.Latitude), formatF64(in.Distance))
	if v, ok := a.cache.Get(key); ok {
		return v.(swephruntime.AzAltResult), nil
	}

	res, err := a.inner.AzAlt(dayNumber, conv, geo, pressure, temperature, in)
	if err != nil {
		return res, err
	}
	a.cache.Set(key, res)
	return res, nil
}

// SetSiderealMode changes global engine mode, so every cached result is
// invalidated before the call returns.
func (a *Adapter) SetSiderealMode(mode swephruntime.SiderealMode, t0, ayanT0 float64) error {
	if err := a.inner.SetSiderealMode(mode, t0, ayanT0); err != nil {
		return err
	}
	a.cache.Clear()
	return nil
}

func (a *Adapter) Ayanamsa(dayNumber float64) (float64, error) {
	key := Key("ayanamsa", dayNumber)
	if v, ok := a.cache.Get(key); ok {
		return v.(float64), nil
	}

	res, err := a.inner.Ayanamsa(dayNumber)
	if err != nil {
		return res, err
	}
	a.cache.Set(key, res)
	return res, nil
}

func (a *Adapter) DayNumber(year, month, day int, hourFraction float64, cal swephruntime.CalendarFlag) (float64, error) {
	key := Key("julday", 0,
		formatI32(int32(year)), formatI32(int32(month)), formatI32(int32(day)),
		formatF64(hourFraction), formatI32(int32(cal)))
	if v, ok := a.cache.Get(key); ok {
		return v.(float64), nil
	}

	res, err := a.inner.DayNumber(year, month, day, hourFraction, cal)
	if err != nil {
		return res, err
	}
	a.cache.Set(key, res)
	return res, nil
}

// SetEphemerisPath changes which data files back calculations, so cached
// results are invalidated.
func (a *Adapter) SetEphemerisPath(path string) error {
	if err := a.inner.SetEphemerisPath(path); err != nil {
		return err
	}
	a.cache.Clear()
	return nil
}

func (a *Adapter) Version() (string, error) {
	return a.inner.Version()
}

func (a *Adapter) Close(ctx context.Context) error {
	a.cache.Clear()
	return a.inner.Close(ctx)
}
