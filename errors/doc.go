// Package errors provides structured error types for the sweph-runtime library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type carries a detail message and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseMarshal, errors.KindAllocation).
//		Detail("allocate result buffer").
//		Cause(allocErr).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Engine(errors.PhaseCalc, "swe_calc_ut", serr)
//	err := errors.AllocationFailed(errors.PhaseMarshal, 256)
//
// Backend resolution failures are aggregated into a ResolutionError that
// records every attempted strategy, the platform key, and the officially
// supported platform list.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
