package engine

import (
	"context"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/akinfelami/pico-mdr/status"
)

// StepFunc performs one frame of work; a non-nil error ends the loop
type StepFunc func(ctx context.Context) error

// FrameLoop runs a step on a fixed budget, sleeping only the time left after the work
// An overrun yields immediately instead of sleeping, so a slow frame never locks the task up
type FrameLoop struct {
	name   string
	budget time.Duration
	clock  TimeProvider

	statFrames   *atomic.Int64
	statOverruns *atomic.Int64
	statFrameMs  *status.AtomicFloat
}

// NewFrameLoop creates a loop whose metrics are keyed by the frames/overruns/ms names
func NewFrameLoop(name string, budget time.Duration, clock TimeProvider, reg *status.Registry, framesKey, overrunsKey, msKey string) *FrameLoop {
	if clock == nil {
		clock = NewMonotonicTimeProvider()
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	l := &FrameLoop{
		name:         name,
		budget:       budget,
		clock:        clock,
		statFrames:   reg.Ints.Get(framesKey),
		statOverruns: reg.Ints.Get(overrunsKey),
	}
	if msKey != "" {
		l.statFrameMs = reg.Floats.Get(msKey)
	}
	return l
}

// Name returns the task name
func (l *FrameLoop) Name() string {
	return l.name
}

// Budget returns the frame period
func (l *FrameLoop) Budget() time.Duration {
	return l.budget
}

// Remaining returns the budget left after the work that started at begin
func Remaining(budget time.Duration, begin, now time.Time) time.Duration {
	return budget - now.Sub(begin)
}

// Frame runs one step and returns the time left in the budget
func (l *FrameLoop) Frame(ctx context.Context, step StepFunc) (time.Duration, error) {
	begin := l.clock.Now()
	if err := step(ctx); err != nil {
		return 0, err
	}
	now := l.clock.Now()
	l.statFrames.Add(1)
	if l.statFrameMs != nil {
		l.statFrameMs.Smooth(float64(now.Sub(begin).Microseconds())/1000, 0.1)
	}
	rem := Remaining(l.budget, begin, now)
	if rem <= 0 {
		l.statOverruns.Add(1)
	}
	return rem, nil
}

// Run loops until ctx ends or step fails; returns nil on cancellation
func (l *FrameLoop) Run(ctx context.Context, step StepFunc) error {
	timer := time.NewTimer(l.budget)
	defer timer.Stop()

	for {
		if ctx.Err() != nil {
			return nil
		}

		rem, err := l.Frame(ctx, step)
		if err != nil {
			return err
		}

		if rem <= 0 {
			runtime.Gosched()
			continue
		}

		timer.Reset(rem)
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}
	}
}

// Hold sleeps for d unless ctx ends first
func Hold(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
