package pool

import (
	"context"
	stderrors "errors"
	"sync/atomic"
	"testing"
	"time"

	swephruntime "github.com/astroveda/sweph-runtime"
	"github.com/astroveda/sweph-runtime/cache"
	"github.com/astroveda/sweph-runtime/errors"
)

// stubAdapter is a minimal backend whose construction and closing are
// observable.
type stubAdapter struct {
	closed atomic.Bool
}

func (s *stubAdapter) CalcPosition(dayNumber float64, body swephruntime.Body, flags swephruntime.CalcFlag) (swephruntime.CalcResult, error) {
	return swephruntime.CalcResult{Longitude: dayNumber}, nil
}

func (s *stubAdapter) RiseTransit(dayNumber float64, body swephruntime.Body, starName string,
	epheFlags swephruntime.CalcFlag, event swephruntime.RiseFlag, geo swephruntime.GeoPosition,
	pressure, temperature float64) (swephruntime.RiseTransResult, error) {
	return swephruntime.RiseTransResult{Time: dayNumber, Valid: true}, nil
}

func (s *stubAdapter) AzAlt(dayNumber float64, conv swephruntime.ConvertFlag, geo swephruntime.GeoPosition,
	pressure, temperature float64, in swephruntime.EclipticInput) (swephruntime.AzAltResult, error) {
	return swephruntime.AzAltResult{}, nil
}

func (s *stubAdapter) SetSiderealMode(mode swephruntime.SiderealMode, t0, ayanT0 float64) error {
	return nil
}

func (s *stubAdapter) Ayanamsa(dayNumber float64) (float64, error) { return 24, nil }

func (s *stubAdapter) DayNumber(year, month, day int, hourFraction float64, cal swephruntime.CalendarFlag) (float64, error) {
	return 2460000.5, nil
}

func (s *stubAdapter) SetEphemerisPath(path string) error { return nil }
func (s *stubAdapter) Version() (string, error)           { return "2.10.03", nil }

func (s *stubAdapter) Close(ctx context.Context) error {
	s.closed.Store(true)
	return nil
}

func countingFactory(n *atomic.Int32) Factory {
	return func(ctx context.Context) (swephruntime.Adapter, error) {
		n.Add(1)
		return &stubAdapter{}, nil
	}
}

func TestPool_AcquireReusesReleasedInstance(t *testing.T) {
	var built atomic.Int32
	p := New(Config{MaxSize: 2}, countingFactory(&built))
	defer p.Close()

	first, err := p.Acquire(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	p.Release(first)

	second, err := p.Acquire(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if second != first {
		t.Error("acquire after release should hand back the idle instance")
	}
	if built.Load() != 1 {
		t.Errorf("factory ran %d times, want 1", built.Load())
	}
}

func TestPool_BoundNeverExceeded(t *testing.T) {
	var built atomic.Int32
	p := New(Config{MaxSize: 3, AcquireTimeout: 20 * time.Millisecond}, countingFactory(&built))
	defer p.Close()

	var held []*Instance
	for i := 0; i < 3; i++ {
		inst, err := p.Acquire(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		held = append(held, inst)
	}

	if _, err := p.Acquire(context.Background()); !stderrors.Is(err, &errors.Error{Kind: errors.KindExhausted}) {
		t.Fatalf("acquire past the bound = %v, want an exhausted error", err)
	}
	if built.Load() != 3 {
		t.Errorf("factory ran %d times, want 3", built.Load())
	}

	for _, inst := range held {
		p.Release(inst)
	}
}

func TestPool_AcquireWaitsForRelease(t *testing.T) {
	var built atomic.Int32
	p := New(Config{MaxSize: 1, AcquireTimeout: time.Second}, countingFactory(&built))
	defer p.Close()

	inst, err := p.Acquire(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	go func() {
		time.Sleep(10 * time.Millisecond)
		p.Release(inst)
	}()

	got, err := p.Acquire(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got != inst {
		t.Error("waiter should receive the released instance")
	}
	if built.Load() != 1 {
		t.Errorf("factory ran %d times, want 1", built.Load())
	}
}

func TestPool_AcquireHonorsContextCancellation(t *testing.T) {
	p := New(Config{MaxSize: 1, AcquireTimeout: time.Minute}, countingFactory(new(atomic.Int32)))
	defer p.Close()

	inst, err := p.Acquire(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer p.Release(inst)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := p.Acquire(ctx); !stderrors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("canceled acquire = %v, want a deadline error in the chain", err)
	}
}

func TestPool_ReleaseClearsCache(t *testing.T) {
	p := New(Config{MaxSize: 1}, countingFactory(new(atomic.Int32)))
	defer p.Close()

	inst, err := p.Acquire(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := inst.Adapter.CalcPosition(2460000.5, swephruntime.BodySun, swephruntime.FlagSwissEph); err != nil {
		t.Fatal(err)
	}
	if inst.Adapter.Cache().Len() == 0 {
		t.Fatal("expected a cached entry before release")
	}

	p.Release(inst)

	again, err := p.Acquire(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if again.Adapter.Cache().Len() != 0 {
		t.Error("release must clear the instance cache")
	}
}

func TestPool_FactoryErrorFreesSlot(t *testing.T) {
	fail := true
	p := New(Config{MaxSize: 1, AcquireTimeout: 20 * time.Millisecond}, func(ctx context.Context) (swephruntime.Adapter, error) {
		if fail {
			return nil, errors.Load("no module configured", nil)
		}
		return &stubAdapter{}, nil
	})
	defer p.Close()

	if _, err := p.Acquire(context.Background()); err == nil {
		t.Fatal("expected factory error")
	}

	// The failed construction must not consume a slot permanently.
	fail = false
	if _, err := p.Acquire(context.Background()); err != nil {
		t.Fatalf("acquire after factory recovery: %v", err)
	}
}

func TestPool_CloseDropsIdleAndFailsAcquire(t *testing.T) {
	p := New(Config{MaxSize: 2}, countingFactory(new(atomic.Int32)))

	inst, err := p.Acquire(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	stub := inst.Adapter.Inner().(*stubAdapter)
	p.Release(inst)

	p.Close()

	if !stub.closed.Load() {
		t.Error("closing the pool must close idle instances")
	}
	if _, err := p.Acquire(context.Background()); !stderrors.Is(err, &errors.Error{Kind: errors.KindClosed}) {
		t.Fatalf("acquire on closed pool = %v, want a closed error", err)
	}
}

func TestPool_ReleaseIntoFullIdleListDrops(t *testing.T) {
	p := New(Config{MaxSize: 1}, countingFactory(new(atomic.Int32)))
	defer p.Close()

	inst, err := p.Acquire(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	p.Release(inst) // fills the single idle slot

	stray := &Instance{Adapter: cache.NewAdapter(&stubAdapter{}, 0, 0)}
	p.Release(stray)

	if p.IdleLen() != 1 {
		t.Errorf("IdleLen = %d, want 1: the pool must not grow past its bound", p.IdleLen())
	}
	if !stray.Adapter.Inner().(*stubAdapter).closed.Load() {
		t.Error("an instance released into a full idle list must be closed")
	}
}

func TestPool_ReleaseAfterCloseDropsInstance(t *testing.T) {
	p := New(Config{MaxSize: 1}, countingFactory(new(atomic.Int32)))

	inst, err := p.Acquire(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	stub := inst.Adapter.Inner().(*stubAdapter)

	p.Close()
	p.Release(inst)

	if !stub.closed.Load() {
		t.Error("release into a closed pool must drop and close the instance")
	}
	if p.IdleLen() != 0 {
		t.Errorf("IdleLen = %d, want 0", p.IdleLen())
	}
}
