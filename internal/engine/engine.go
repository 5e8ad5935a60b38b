// Package engine drives the refresh pipeline on a single clock.
package engine

import (
	"context"
	"sync"
	"time"
)

// Interval bounds; SetInterval clamps into this range.
const (
	MinInterval = 200 * time.Millisecond
	MaxInterval = 60 * time.Second
)

// ClampInterval forces d into [MinInterval, MaxInterval].
func ClampInterval(d time.Duration) time.Duration {
	if d < MinInterval {
		return MinInterval
	}
	if d > MaxInterval {
		return MaxInterval
	}
	return d
}

// Engine runs a tick callback periodically on one dedicated goroutine.
// The timer is re-armed only after the callback returns, so a tick that
// overruns the interval delays the next one; ticks never queue or
// overlap. Callback failures are the callback's problem: the engine
// never stops itself.
type Engine struct {
	tick func()

	mu       sync.Mutex
	interval time.Duration
	cancel   context.CancelFunc
	done     chan struct{}
	reload   chan time.Duration
}

// New returns a stopped engine; the interval is clamped.
func New(interval time.Duration, tick func()) *Engine {
	return &Engine{
		tick:     tick,
		interval: ClampInterval(interval),
		reload:   make(chan time.Duration, 1),
	}
}

// Start begins ticking; idempotent.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.done = make(chan struct{})
	go e.run(ctx, e.interval, e.done)
}

// Stop halts ticking and waits for an in-flight tick to finish;
// idempotent. Nothing in flight is aborted.
func (e *Engine) Stop() {
	e.mu.Lock()
	cancel, done := e.cancel, e.done
	e.cancel = nil
	e.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// SetInterval clamps and stores the interval; if running, the schedule
// is swapped without dropping the running state.
func (e *Engine) SetInterval(d time.Duration) {
	d = ClampInterval(d)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.interval = d
	if e.cancel == nil {
		return
	}
	// Latest value wins; drain a pending reload before replacing it.
	select {
	case <-e.reload:
	default:
	}
	e.reload <- d
}

// Interval returns the current (clamped) interval.
func (e *Engine) Interval() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.interval
}

// Running reports whether the engine is ticking.
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cancel != nil
}

func (e *Engine) run(ctx context.Context, interval time.Duration, done chan struct{}) {
	defer close(done)
	timer := time.NewTimer(interval)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case interval = <-e.reload:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(interval)
		case <-timer.C:
			e.tick()
			timer.Reset(interval)
		}
	}
}
