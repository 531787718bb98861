// Package wasm implements the Adapter contract over a sandboxed WebAssembly
// build of the ephemeris engine, executed with wazero.
//
// The engine module exposes a flat set of exported functions operating on
// its linear memory. Every call that exchanges structured data marshals
// through per-call scratch buffers: a 256-byte error buffer, a fixed-size
// result buffer of IEEE-754 doubles, and NUL-terminated UTF-8 buffers for
// string arguments. Buffers are tracked in an AllocationList and freed
// unconditionally, including on error paths - the module has no garbage
// collector for its linear memory, so a leaked allocation is permanent for
// the life of the instance.
//
// A Runtime loads its module exactly once; concurrent first loads share one
// in-flight load and observe the same adapter or the same failure.
package wasm
