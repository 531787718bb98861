package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestError_Format(t *testing.T) {
	err := New(PhaseCalc, KindEngine).
		Op("swe_calc_ut").
		Detail("illegal planet number -5").
		Build()

	got := err.Error()
	want := "[calc] engine in swe_calc_ut: illegal planet number -5"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestError_FormatWithCause(t *testing.T) {
	cause := stderrors.New("read out of bounds")
	err := DecodeFailed("swe_azalt", cause)

	got := err.Error()
	if !strings.Contains(got, "[marshal] decode") {
		t.Errorf("missing phase/kind prefix: %q", got)
	}
	if !strings.Contains(got, "caused by: read out of bounds") {
		t.Errorf("missing cause: %q", got)
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := stderrors.New("boom")
	err := Wrap(PhaseLoad, KindInvalidInput, cause, "load module")

	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to reach the cause through Unwrap")
	}
}

func TestError_IsMatchesPhaseAndKind(t *testing.T) {
	err := Engine(PhaseCalc, "swe_rise_trans", "no data")

	if !stderrors.Is(err, &Error{Phase: PhaseCalc, Kind: KindEngine}) {
		t.Error("exact phase+kind should match")
	}
	if !stderrors.Is(err, &Error{Kind: KindEngine}) {
		t.Error("kind-only target should act as wildcard")
	}
	if stderrors.Is(err, &Error{Kind: KindAllocation}) {
		t.Error("different kind must not match")
	}
	if stderrors.Is(err, &Error{Phase: PhaseMarshal, Kind: KindEngine}) {
		t.Error("different phase must not match")
	}
}

func TestResolutionError_Format(t *testing.T) {
	err := NewResolutionError("plan9-386",
		[]string{"linux-amd64", "darwin-arm64"},
		[]Attempt{
			{Strategy: "prebuilt", Path: "prebuilt/plan9-386/libswe.so", Err: stderrors.New("no such file")},
			{Strategy: "local-build", Path: "build/libswe.so", Err: stderrors.New("no such file")},
			{Strategy: "fallback-library", Err: stderrors.New("not installed")},
		})

	got := err.Error()
	for _, want := range []string{
		`platform "plan9-386"`,
		"3 strategies attempted",
		"prebuilt (prebuilt/plan9-386/libswe.so): no such file",
		"fallback-library: not installed",
		"officially supported platforms: linux-amd64, darwin-arm64",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("diagnostic missing %q:\n%s", want, got)
		}
	}
}

func TestResolutionError_Supported(t *testing.T) {
	err := NewResolutionError("linux-amd64", []string{"linux-amd64"}, nil)
	if !err.Supported() {
		t.Error("linux-amd64 should be on the supported list")
	}

	err = NewResolutionError("plan9-386", []string{"linux-amd64"}, nil)
	if err.Supported() {
		t.Error("plan9-386 should not be on the supported list")
	}
}

func TestResolutionError_Is(t *testing.T) {
	err := NewResolutionError("linux-amd64", nil, nil)
	if !stderrors.Is(err, &ResolutionError{}) {
		t.Error("expected errors.Is to match ResolutionError by type")
	}
}
