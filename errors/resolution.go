package errors

import (
	"fmt"
	"strings"
)

// Attempt records one failed loading strategy during backend resolution.
type Attempt struct {
	Err      error
	Strategy string
	Path     string
}

// ResolutionError is returned when no backend could be loaded. It aggregates
// every attempted strategy so the caller sees the full search in one
// diagnostic instead of only the last failure.
type ResolutionError struct {
	PlatformKey   string
	SupportedKeys []string
	Attempts      []Attempt
}

// NewResolutionError creates an aggregated resolution failure.
func NewResolutionError(platformKey string, supported []string, attempts []Attempt) *ResolutionError {
	return &ResolutionError{
		PlatformKey:   platformKey,
		SupportedKeys: supported,
		Attempts:      attempts,
	}
}

func (e *ResolutionError) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("[resolve] no backend could be loaded for platform %q", e.PlatformKey))

	if len(e.Attempts) > 0 {
		b.WriteString(fmt.Sprintf("; %d strateg", len(e.Attempts)))
		if len(e.Attempts) == 1 {
			b.WriteString("y")
		} else {
			b.WriteString("ies")
		}
		b.WriteString(" attempted:")
		for _, a := range e.Attempts {
			b.WriteString("\n  ")
			b.WriteString(a.Strategy)
			if a.Path != "" {
				b.WriteString(" (")
				b.WriteString(a.Path)
				b.WriteByte(')')
			}
			b.WriteString(": ")
			if a.Err != nil {
				b.WriteString(a.Err.Error())
			} else {
				b.WriteString("failed")
			}
		}
	}

	if len(e.SupportedKeys) > 0 {
		b.WriteString("\nofficially supported platforms: ")
		b.WriteString(strings.Join(e.SupportedKeys, ", "))
	}

	return b.String()
}

// Is reports whether target matches this error type
func (e *ResolutionError) Is(target error) bool {
	_, ok := target.(*ResolutionError)
	return ok
}

// Supported reports whether the platform key that failed to resolve is on
// the officially supported list. An off-list key is not fatal during the
// search; it only sharpens the final diagnostic.
func (e *ResolutionError) Supported() bool {
	for _, k := range e.SupportedKeys {
		if k == e.PlatformKey {
			return true
		}
	}
	return false
}
