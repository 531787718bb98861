package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/term"

	swephruntime "github.com/astroveda/sweph-runtime"
	"github.com/astroveda/sweph-runtime/cache"
	"github.com/astroveda/sweph-runtime/hostenv"
	"github.com/astroveda/sweph-runtime/native"
	"github.com/astroveda/sweph-runtime/wasm"
)

func main() {
	var (
		backend     = flag.String("backend", "native", "Backend to use: native or wasm")
		wasmFile    = flag.String("wasm", "", "Path to the engine wasm module (backend=wasm)")
		libPath     = flag.String("lib", "", "Path to the native engine library (backend=native)")
		ephePath    = flag.String("ephe", "", "Ephemeris data directory")
		bodyArg     = flag.String("body", "sun", "Body name or number")
		jd          = flag.Float64("jd", 0, "Julian day number (UT)")
		date        = flag.String("date", "", "UT date, YYYY-MM-DD or YYYY-MM-DDTHH:MM")
		rise        = flag.String("rise", "", "Rise/set event: rise, set or transit")
		geoArg      = flag.String("geo", "", "Observer position: lat,lon[,alt]")
		list        = flag.Bool("list", false, "List supported bodies and exit")
		showVersion = flag.Bool("version", false, "Print the engine version and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		native.SetLogger(logger.Named("native"))
		wasm.SetLogger(logger.Named("wasm"))
	}

	if *list {
		for _, name := range sortedBodyNames() {
			fmt.Printf("%3d  %s\n", int(bodyNames[name]), name)
		}
		return
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: -i requires a terminal")
			os.Exit(1)
		}
		if err := runInteractive(*backend, *wasmFile, *libPath, *ephePath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*backend, *wasmFile, *libPath, *ephePath, *bodyArg, *jd, *date, *rise, *geoArg, *showVersion); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openAdapter resolves a backend and wraps it with a result cache when the
// detected environment wants one.
func openAdapter(backend, wasmFile, libPath, ephePath string) (swephruntime.Adapter, error) {
	ctx := context.Background()
	env := hostenv.Detect()

	var adapter swephruntime.Adapter
	switch backend {
	case "native":
		loader := native.NewLoader(native.Config{
			LibraryPath:  libPath,
			RetainHandle: env.RetainHandle,
		})
		lib, err := loader.Load(ctx)
		if err != nil {
			return nil, err
		}
		adapter = lib

	case "wasm":
		if wasmFile == "" {
			return nil, fmt.Errorf("backend=wasm requires -wasm <file>")
		}
		rt, err := wasm.NewRuntime(ctx, wasm.Config{ModulePath: wasmFile})
		if err != nil {
			return nil, err
		}
		adapter, err = rt.Load(ctx)
		if err != nil {
			rt.Close(ctx)
			return nil, err
		}

	default:
		return nil, fmt.Errorf("unknown backend %q (want native or wasm)", backend)
	}

	if ephePath != "" {
		if err := adapter.SetEphemerisPath(ephePath); err != nil {
			return nil, err
		}
	}

	if env.ResultCache {
		adapter = cache.NewAdapter(adapter, 0, 0)
	}
	return adapter, nil
}

func run(backend, wasmFile, libPath, ephePath, bodyArg string, jd float64, date, rise, geoArg string, showVersion bool) error {
	adapter, err := openAdapter(backend, wasmFile, libPath, ephePath)
	if err != nil {
		return err
	}
	defer adapter.Close(context.Background())

	version, err := adapter.Version()
	if err != nil {
		return err
	}
	fmt.Printf("Engine: %s (%s backend)\n", version, backend)
	if showVersion {
		return nil
	}

	body, ok := parseBody(bodyArg)
	if !ok {
		return fmt.Errorf("unknown body %q (see -list)", bodyArg)
	}

	dayNumber, err := resolveDayNumber(adapter, jd, date)
	if err != nil {
		return err
	}
	fmt.Printf("Julian day: %.6f UT\n", dayNumber)

	if rise != "" {
		return printRiseSet(adapter, dayNumber, body, rise, geoArg)
	}

	res, err := adapter.CalcPosition(dayNumber, body, swephruntime.FlagSwissEph|swephruntime.FlagSpeed)
	if err != nil {
		return err
	}
	fmt.Printf("\n%s\n", bodyArg)
	fmt.Printf("  longitude: %12.6f°  (speed %+.6f°/day)\n", res.Longitude, res.LongitudeSpeed)
	fmt.Printf("  latitude:  %12.6f°  (speed %+.6f°/day)\n", res.Latitude, res.LatitudeSpeed)
	fmt.Printf("  distance:  %12.6f AU (speed %+.6f AU/day)\n", res.Distance, res.DistanceSpeed)
	return nil
}

func printRiseSet(adapter swephruntime.Adapter, dayNumber float64, body swephruntime.Body, event, geoArg string) error {
	var ev swephruntime.RiseFlag
	switch event {
	case "rise":
		ev = swephruntime.EventRise
	case "set":
		ev = swephruntime.EventSet
	case "transit":
		ev = swephruntime.EventMeridianT
	default:
		return fmt.Errorf("unknown event %q (want rise, set or transit)", event)
	}

	geo, err := parseGeo(geoArg)
	if err != nil {
		return err
	}

	res, err := adapter.RiseTransit(dayNumber, body, "", swephruntime.FlagSwissEph, ev, geo, 1013.25, 15)
	if err != nil {
		return err
	}
	if !res.Valid {
		fmt.Printf("\nNo %s event at this latitude and date (polar day or night).\n", event)
		return nil
	}
	fmt.Printf("\n%s: JD %.6f UT\n", event, res.Time)
	return nil
}

// resolveDayNumber picks the explicit -jd value, converts -date through the
// engine, or defaults to the current UT instant.
func resolveDayNumber(adapter swephruntime.Adapter, jd float64, date string) (float64, error) {
	if jd != 0 {
		return jd, nil
	}

	t := time.Now().UTC()
	if date != "" {
		parsed, err := parseDate(date)
		if err != nil {
			return 0, err
		}
		t = parsed
	}

	hourFraction := float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600
	return adapter.DayNumber(t.Year(), int(t.Month()), t.Day(), hourFraction, swephruntime.CalGregorian)
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse date %q (want YYYY-MM-DD or YYYY-MM-DDTHH:MM)", s)
}

func parseGeo(s string) (swephruntime.GeoPosition, error) {
	if s == "" {
		return swephruntime.GeoPosition{}, fmt.Errorf("rise/set needs -geo lat,lon[,alt]")
	}
	parts := strings.Split(s, ",")
	if len(parts) < 2 || len(parts) > 3 {
		return swephruntime.GeoPosition{}, fmt.Errorf("cannot parse -geo %q (want lat,lon[,alt])", s)
	}

	vals := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return swephruntime.GeoPosition{}, fmt.Errorf("cannot parse -geo component %q: %w", p, err)
		}
		vals[i] = v
	}

	geo := swephruntime.GeoPosition{Latitude: vals[0], Longitude: vals[1]}
	if len(vals) == 3 {
		geo.Altitude = vals[2]
	}
	return geo, nil
}
