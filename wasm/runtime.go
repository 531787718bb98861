package wasm

import (
	"context"
	"os"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/astroveda/sweph-runtime/errors"
)

// Config holds configuration for Runtime creation.
type Config struct {
	// ModuleBytes is the compiled engine module. Takes precedence over
	// ModulePath when set.
	ModuleBytes []byte

	// ModulePath is the filesystem location of the engine module.
	ModulePath string

	// MemoryLimitPages caps guest memory in 64KB pages. 0 means the
	// wazero default.
	MemoryLimitPages uint32
}

// Runtime owns the wazero runtime and the single engine module instance.
// Load is idempotent: the module is compiled and instantiated once, and all
// concurrent first loads share one in-flight attempt.
type Runtime struct {
	cfg     Config
	runtime wazero.Runtime
	sf      singleflight.Group

	// instantiate compiles and instantiates the module bytes. Tests
	// substitute a counting stub.
	instantiate func(ctx context.Context, moduleBytes []byte) (*Adapter, error)

	mu      sync.RWMutex
	adapter *Adapter
	closed  bool
}

// NewRuntime creates a runtime. No module is loaded until Load.
func NewRuntime(ctx context.Context, cfg Config) (*Runtime, error) {
	runtimeCfg := wazero.NewRuntimeConfig()
	if cfg.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
	}

	r := wazero.NewRuntimeWithConfig(ctx, runtimeCfg)
	wasi_snapshot_preview1.MustInstantiate(ctx, r)

	rt := &Runtime{cfg: cfg, runtime: r}
	rt.instantiate = rt.instantiateModule
	return rt, nil
}

// Load resolves the engine adapter, instantiating the module on first use.
// Safe for concurrent use: exactly one load sequence runs regardless of how
// many callers arrive before it completes, and every caller observes the
// same adapter or the same failure.
func (r *Runtime) Load(ctx context.Context) (*Adapter, error) {
	r.mu.RLock()
	if r.closed {
		r.mu.RUnlock()
		return nil, errors.Closed(errors.PhaseLoad, "wasm runtime")
	}
	if a := r.adapter; a != nil {
		r.mu.RUnlock()
		return a, nil
	}
	r.mu.RUnlock()

	v, err, _ := r.sf.Do("load", func() (any, error) {
		r.mu.RLock()
		if a := r.adapter; a != nil {
			r.mu.RUnlock()
			return a, nil
		}
		r.mu.RUnlock()

		a, err := r.load(ctx)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.adapter = a
		r.mu.Unlock()
		return a, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Adapter), nil
}

func (r *Runtime) load(ctx context.Context) (*Adapter, error) {
	bytes := r.cfg.ModuleBytes
	if bytes == nil {
		if r.cfg.ModulePath == "" {
			return nil, errors.InvalidInput(errors.PhaseLoad, "no module bytes or path configured")
		}
		data, err := os.ReadFile(r.cfg.ModulePath)
		if err != nil {
			return nil, errors.Load("read module file", err)
		}
		bytes = data
	}
	return r.instantiate(ctx, bytes)
}

func (r *Runtime) instantiateModule(ctx context.Context, bytes []byte) (*Adapter, error) {
	compiled, err := r.runtime.CompileModule(ctx, bytes)
	if err != nil {
		return nil, errors.Load("compile module", err)
	}

	instance, err := r.runtime.InstantiateModule(ctx, compiled,
		wazero.NewModuleConfig().WithName("sweph").WithStartFunctions("_initialize", "_start"))
	if err != nil {
		return nil, errors.Load("instantiate module", err)
	}

	mod, err := newGuestModule(instance)
	if err != nil {
		_ = instance.Close(ctx)
		return nil, err
	}

	Logger().Info("engine module loaded",
		zap.String("path", r.cfg.ModulePath),
		zap.Int("size", len(bytes)))

	return newAdapter(mod), nil
}

// Reset discards the current adapter so the next Load instantiates a fresh
// module. Intended for tests and explicit handle recycling.
func (r *Runtime) Reset(ctx context.Context) error {
	r.mu.Lock()
	a := r.adapter
	r.adapter = nil
	r.mu.Unlock()

	if a != nil {
		return a.Close(ctx)
	}
	return nil
}

// Close releases the runtime and any loaded module.
func (r *Runtime) Close(ctx context.Context) error {
	r.mu.Lock()
	r.closed = true
	r.adapter = nil
	r.mu.Unlock()
	return r.runtime.Close(ctx)
}
