package swephruntime

// Engine constants, duplicated locally so neither backend needs the native
// engine's headers at compile time. Values match the wrapped engine and are
// carried through unchanged.

// Body identifies a celestial body.
type Body int32

const (
	BodyEclNut   Body = -1
	BodySun      Body = 0
	BodyMoon     Body = 1
	BodyMercury  Body = 2
	BodyVenus    Body = 3
	BodyMars     Body = 4
	BodyJupiter  Body = 5
	BodySaturn   Body = 6
	BodyUranus   Body = 7
	BodyNeptune  Body = 8
	BodyPluto    Body = 9
	BodyMeanNode Body = 10
	BodyTrueNode Body = 11
	BodyMeanApog Body = 12
	BodyOscuApog Body = 13
	BodyEarth    Body = 14
	BodyChiron   Body = 15
)

// CalendarFlag selects the calendar system for DayNumber.
type CalendarFlag int32

const (
	CalJulian    CalendarFlag = 0
	CalGregorian CalendarFlag = 1
)

// CalcFlag is the opaque calculation bitmask passed through to the engine.
type CalcFlag int32

const (
	FlagJPLEph     CalcFlag = 1
	FlagSwissEph   CalcFlag = 2
	FlagMoshier    CalcFlag = 4
	FlagHelio      CalcFlag = 8
	FlagSpeed      CalcFlag = 256
	FlagEquatorial CalcFlag = 2048
	FlagXYZ        CalcFlag = 4096
	FlagRadians    CalcFlag = 8192
	FlagSidereal   CalcFlag = 65536
)

// SiderealMode selects the ayanamsa reference system.
type SiderealMode int32

const (
	SidmFaganBradley      SiderealMode = 0
	SidmLahiri            SiderealMode = 1
	SidmDeluce            SiderealMode = 2
	SidmRaman             SiderealMode = 3
	SidmKrishnamurti      SiderealMode = 5
	SidmYukteshwar        SiderealMode = 7
	SidmJNBhasin          SiderealMode = 8
	SidmSassanian         SiderealMode = 16
	SidmGalCent0Sag       SiderealMode = 17
	SidmJ2000             SiderealMode = 18
	SidmJ1900             SiderealMode = 19
	SidmB1950             SiderealMode = 20
	SidmTrueCitra         SiderealMode = 27
	SidmTrueRevati        SiderealMode = 28
	SidmTruePushya        SiderealMode = 29
	SidmLahiri1940        SiderealMode = 43
	SidmLahiriVP285       SiderealMode = 44
	SidmKrishnamurtiVP291 SiderealMode = 45
)

// RiseFlag selects the event kind for RiseTransit and carries the optional
// calculation bits (disc center, no refraction, ...).
type RiseFlag int32

const (
	EventRise         RiseFlag = 1
	EventSet          RiseFlag = 2
	EventMeridianT    RiseFlag = 4
	EventMeridianIT   RiseFlag = 8
	BitDiscCenter     RiseFlag = 256
	BitNoRefraction   RiseFlag = 512
	BitCivilTwilight  RiseFlag = 1024
	BitNauticTwilight RiseFlag = 2048
	BitAstroTwilight  RiseFlag = 4096
	BitDiscBottom     RiseFlag = 8192
)

// ConvertFlag selects the input coordinate system for AzAlt.
type ConvertFlag int32

const (
	Ecl2Hor ConvertFlag = 0
	Equ2Hor ConvertFlag = 1
)
