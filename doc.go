// Package swephruntime provides a backend-neutral bridge to the Swiss
// Ephemeris computation engine.
//
// Calculation code talks to one Adapter contract; the concrete backend is
// either a process-hosted native shared library or a sandboxed WebAssembly
// module. The library owns backend resolution, single-flight loading,
// linear-memory marshaling for the sandboxed backend, result caching, and
// instance pooling for short-lived execution contexts.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	swephruntime/        Root package with the Adapter contract, value types,
//	                     engine constants, and Memory/Allocator interfaces
//	├── native/          Native shared-library loader (tiered search, dlopen)
//	├── wasm/            Sandboxed wazero backend and marshaling protocol
//	├── cache/           Bounded FIFO+TTL result cache and caching adapter
//	├── pool/            Bounded instance pool for serverless reuse
//	├── hostenv/         Serverless environment detection boundary
//	└── errors/          Structured error types for diagnostics
//
// # Quick Start
//
// Load the sandboxed backend and compute a position:
//
//	rt, err := wasm.NewRuntime(ctx, wasm.Config{ModulePath: "sweph.wasm"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer rt.Close(ctx)
//
//	adapter, err := rt.Load(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	jd, _ := adapter.DayNumber(2024, 3, 21, 12.0, swephruntime.CalGregorian)
//	res, err := adapter.CalcPosition(jd, swephruntime.BodySun, swephruntime.FlagSwissEph|swephruntime.FlagSpeed)
//	fmt.Println(res.Longitude)
//
// # Backends
//
// Both backends implement the same Adapter contract and are interchangeable
// above the loading layer. They compute independently; results agree to
// astronomical precision but are not bit-identical.
//
// # Concurrency
//
// Loaders are safe for concurrent use: all callers of a not-yet-loaded
// backend share one in-flight load and observe the same handle or the same
// aggregated failure. A loaded adapter is not: the engine executes
// single-threaded and holds global state (sidereal mode, ephemeris path),
// so calls on one adapter must be serialized. Parallel callers acquire
// separate instances from the pool package instead.
package swephruntime
