package wasm

import (
	"context"
	stderrors "errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/astroveda/sweph-runtime/errors"
)

func TestRuntime_LoadWithoutModule(t *testing.T) {
	ctx := context.Background()
	rt, err := NewRuntime(ctx, Config{})
	if err != nil {
		t.Fatalf("NewRuntime: %v", err)
	}
	defer rt.Close(ctx)

	if _, err := rt.Load(ctx); err == nil {
		t.Fatal("expected error when no module bytes or path configured")
	}
}

func TestRuntime_LoadMissingFile(t *testing.T) {
	ctx := context.Background()
	rt, err := NewRuntime(ctx, Config{ModulePath: "testdata/does-not-exist.wasm"})
	if err != nil {
		t.Fatalf("NewRuntime: %v", err)
	}
	defer rt.Close(ctx)

	_, err = rt.Load(ctx)
	if err == nil {
		t.Fatal("expected error for missing module file")
	}
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseLoad}) {
		t.Errorf("expected load-phase error, got %v", err)
	}
}

func TestRuntime_LoadAfterClose(t *testing.T) {
	ctx := context.Background()
	rt, err := NewRuntime(ctx, Config{})
	if err != nil {
		t.Fatalf("NewRuntime: %v", err)
	}
	if err := rt.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if _, err := rt.Load(ctx); !stderrors.Is(err, &errors.Error{Kind: errors.KindClosed}) {
		t.Errorf("expected closed error, got %v", err)
	}
}

func TestRuntime_LoadSingleFlight(t *testing.T) {
	ctx := context.Background()
	rt, err := NewRuntime(ctx, Config{ModuleBytes: []byte{0x00, 0x61, 0x73, 0x6d}})
	if err != nil {
		t.Fatalf("NewRuntime: %v", err)
	}
	defer rt.Close(ctx)

	var instantiations atomic.Int32
	release := make(chan struct{})
	shared := newAdapter(newFakeEngine())
	rt.instantiate = func(ctx context.Context, moduleBytes []byte) (*Adapter, error) {
		instantiations.Add(1)
		<-release
		return shared, nil
	}

	const callers = 16
	var wg sync.WaitGroup
	results := make([]*Adapter, callers)
	errs := make([]error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = rt.Load(ctx)
		}(i)
	}

	close(release)
	wg.Wait()

	if got := instantiations.Load(); got != 1 {
		t.Errorf("instantiation ran %d times, want 1", got)
	}
	for i := 0; i < callers; i++ {
		if errs[i] != nil {
			t.Fatalf("caller %d: %v", i, errs[i])
		}
		if results[i] != shared {
			t.Errorf("caller %d observed a different adapter", i)
		}
	}
}

func TestRuntime_ResetWithoutLoad(t *testing.T) {
	ctx := context.Background()
	rt, err := NewRuntime(ctx, Config{})
	if err != nil {
		t.Fatalf("NewRuntime: %v", err)
	}
	defer rt.Close(ctx)

	if err := rt.Reset(ctx); err != nil {
		t.Fatalf("Reset on empty runtime: %v", err)
	}
}
