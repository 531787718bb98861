package pool

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	swephruntime "github.com/astroveda/sweph-runtime"
	"github.com/astroveda/sweph-runtime/cache"
	"github.com/astroveda/sweph-runtime/errors"
)

// Defaults; any positive values are valid.
const (
	DefaultMaxSize        = 4
	DefaultAcquireTimeout = 5 * time.Second
)

// Factory constructs a backend adapter for a new pooled instance.
type Factory func(ctx context.Context) (swephruntime.Adapter, error)

// Instance is one backend+cache bundle. Ownership transfers to the caller
// between Acquire and Release.
type Instance struct {
	Adapter *cache.Adapter
}

// Config holds pool configuration.
type Config struct {
	// MaxSize bounds the number of live instances. 0 selects the default.
	MaxSize int

	// AcquireTimeout bounds how long Acquire waits on an exhausted pool
	// before failing. 0 selects the default.
	AcquireTimeout time.Duration

	// CacheCapacity and CacheTTL configure each instance's result cache.
	// Zero values select the cache package defaults.
	CacheCapacity int
	CacheTTL      time.Duration
}

// Pool maintains idle instances up to a maximum size.
type Pool struct {
	cfg     Config
	factory Factory
	idle    chan *Instance
	tokens  chan struct{}

	mu     sync.Mutex
	closed bool
}

// New creates a pool. No instance is constructed until Acquire.
func New(cfg Config, factory Factory) *Pool {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = DefaultMaxSize
	}
	if cfg.AcquireTimeout <= 0 {
		cfg.AcquireTimeout = DefaultAcquireTimeout
	}
	return &Pool{
		cfg:     cfg,
		factory: factory,
		idle:    make(chan *Instance, cfg.MaxSize),
		tokens:  make(chan struct{}, cfg.MaxSize),
	}
}

// Acquire returns an instance, preferring idle ones. On an exhausted pool
// it waits for a release until the context is done or the acquire timeout
// elapses, then fails with an exhaustion error rather than growing past
// the bound.
func (p *Pool) Acquire(ctx context.Context) (*Instance, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, errors.Closed(errors.PhasePool, "instance pool")
	}
	p.mu.Unlock()

	select {
	case inst := <-p.idle:
		return inst, nil
	default:
	}

	// Under the bound: construct a new instance, holding a token for its
	// lifetime.
	select {
	case p.tokens <- struct{}{}:
		adapter, err := p.factory(ctx)
		if err != nil {
			<-p.tokens
			return nil, err
		}
		Logger().Debug("pool instance constructed", zap.Int("max", p.cfg.MaxSize))
		return &Instance{Adapter: cache.NewAdapter(adapter, p.cfg.CacheCapacity, p.cfg.CacheTTL)}, nil
	default:
	}

	timer := time.NewTimer(p.cfg.AcquireTimeout)
	defer timer.Stop()

	select {
	case inst := <-p.idle:
		return inst, nil
	case <-ctx.Done():
		return nil, errors.Wrap(errors.PhasePool, errors.KindExhausted, ctx.Err(), "acquire canceled")
	case <-timer.C:
		return nil, errors.Exhausted("no instance released within acquire timeout")
	}
}

// Release returns an instance to the pool. The instance's cache is cleared
// first; its adapter handle is never reset. If the idle list is full the
// instance is dropped and closed instead of growing the pool.
func (p *Pool) Release(inst *Instance) {
	if inst == nil {
		return
	}

	inst.Adapter.Cache().Clear()

	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()

	if !closed {
		select {
		case p.idle <- inst:
			return
		default:
		}
	}

	// Full or closed: drop the instance and give its token back.
	p.drop(inst)
}

func (p *Pool) drop(inst *Instance) {
	select {
	case <-p.tokens:
	default:
	}
	if err := inst.Adapter.Close(context.Background()); err != nil {
		Logger().Warn("close dropped pool instance", zap.Error(err))
	}
}

// Close drops every idle instance and fails subsequent Acquires. Borrowed
// instances are dropped when released.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	for {
		select {
		case inst := <-p.idle:
			p.drop(inst)
		default:
			return
		}
	}
}

// IdleLen reports the number of instances currently idle.
func (p *Pool) IdleLen() int {
	return len(p.idle)
}
