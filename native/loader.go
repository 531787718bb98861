package native

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/astroveda/sweph-runtime/errors"
)

// Config holds loader configuration. Environment detection lives in the
// hostenv package; this struct is explicit input only.
type Config struct {
	// LibraryPath, when set, is tried before every other strategy.
	LibraryPath string

	// RetainHandle keeps the resolved library cached across Load calls.
	// Off by default in short-lived serverless contexts: repeated loads
	// cost latency but bound per-container memory growth under high
	// concurrency. Callers needing retention opt in explicitly.
	RetainHandle bool
}

// Loader resolves a working native engine library. Concurrent Load calls
// share one in-flight search regardless of the retention setting.
type Loader struct {
	cfg  Config
	open func(path string) (*Library, error)
	sf   singleflight.Group

	mu  sync.RWMutex
	lib *Library
}

// NewLoader creates a loader. No search runs until Load.
func NewLoader(cfg Config) *Loader {
	return &Loader{cfg: cfg, open: openLibrary}
}

// Load resolves the engine library, trying every strategy in order and
// returning the first that loads. All strategies are attempted even on an
// officially unsupported platform, since a locally built or fallback
// library may still work; the platform key is only reported if everything
// fails.
func (l *Loader) Load(ctx context.Context) (*Library, error) {
	if l.cfg.RetainHandle {
		l.mu.RLock()
		if lib := l.lib; lib != nil {
			l.mu.RUnlock()
			return lib, nil
		}
		l.mu.RUnlock()
	}

	v, err, _ := l.sf.Do("load", func() (any, error) {
		if l.cfg.RetainHandle {
			l.mu.RLock()
			if lib := l.lib; lib != nil {
				l.mu.RUnlock()
				return lib, nil
			}
			l.mu.RUnlock()
		}

		lib, err := l.search()
		if err != nil {
			return nil, err
		}

		if l.cfg.RetainHandle {
			l.mu.Lock()
			l.lib = lib
			l.mu.Unlock()
		}
		return lib, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Library), nil
}

func (l *Loader) search() (*Library, error) {
	var attempts []errors.Attempt

	for _, c := range candidates(l.cfg) {
		lib, err := l.open(c.path)
		if err == nil {
			Logger().Info("native engine loaded",
				zap.String("strategy", c.strategy),
				zap.String("path", c.path))
			return lib, nil
		}
		attempts = append(attempts, errors.Attempt{
			Strategy: c.strategy,
			Path:     c.path,
			Err:      err,
		})
	}

	err := errors.NewResolutionError(PlatformKey(), supportedPlatforms, attempts)
	Logger().Warn("native engine resolution failed",
		zap.String("platform", PlatformKey()),
		zap.Int("attempts", len(attempts)))
	return nil, err
}

// Reset drops a retained library so the next Load searches again.
func (l *Loader) Reset() {
	l.mu.Lock()
	l.lib = nil
	l.mu.Unlock()
}
