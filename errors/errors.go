package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseResolve Phase = "resolve" // backend strategy search
	PhaseLoad    Phase = "load"    // module/library loading
	PhaseMarshal Phase = "marshal" // linear-memory encode/decode
	PhaseCalc    Phase = "calc"    // engine calculation
	PhasePool    Phase = "pool"    // instance pool operations
)

// Kind categorizes the error
type Kind string

const (
	KindUnsupportedPlatform Kind = "unsupported_platform"
	KindAllocation          Kind = "allocation"
	KindEngine              Kind = "engine"
	KindDecode              Kind = "decode"
	KindNotFound            Kind = "not_found"
	KindNotInitialized      Kind = "not_initialized"
	KindInvalidInput        Kind = "invalid_input"
	KindExhausted           Kind = "exhausted"
	KindClosed              Kind = "closed"
)

// Error is the structured error type used throughout the library
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Op     string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Op != "" {
		b.WriteString(" in ")
		b.WriteString(e.Op)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying cause for errors.Is/As chains
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches another *Error by Phase and Kind. Zero fields on the target
// act as wildcards, so errors.Is(err, &Error{Kind: KindEngine}) matches any
// engine error regardless of phase.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase != "" && t.Phase != e.Phase {
		return false
	}
	if t.Kind != "" && t.Kind != e.Kind {
		return false
	}
	return true
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Op sets the operation name (engine entry point or component)
func (b *Builder) Op(op string) *Builder {
	b.err.Op = op
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Engine creates a calculation error carrying the engine's diagnostic string.
// The diagnostic passes through unchanged from the wrapped engine.
func Engine(phase Phase, op, diagnostic string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindEngine,
		Op:     op,
		Detail: diagnostic,
	}
}

// AllocationFailed creates an allocation failure error
func AllocationFailed(phase Phase, size uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAllocation,
		Detail: fmt.Sprintf("failed to allocate %d bytes", size),
	}
}

// DecodeFailed creates a linear-memory decode error
func DecodeFailed(op string, cause error) *Error {
	return &Error{
		Phase: PhaseMarshal,
		Kind:  KindDecode,
		Op:    op,
		Cause: cause,
	}
}

// NotInitialized creates a not-initialized error for a missing handle
func NotInitialized(phase Phase, component string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotInitialized,
		Detail: fmt.Sprintf("%s not initialized", component),
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Exhausted creates a pool-exhausted error
func Exhausted(detail string) *Error {
	return &Error{
		Phase:  PhasePool,
		Kind:   KindExhausted,
		Detail: detail,
	}
}

// Closed creates an error for operations on a closed handle or pool
func Closed(phase Phase, component string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindClosed,
		Detail: fmt.Sprintf("%s is closed", component),
	}
}

// Load creates a module loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidInput,
		Detail: detail,
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
