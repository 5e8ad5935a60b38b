// Package collector holds the per-domain delta/decode collectors. Each
// collector owns its previous-sample state, is refreshed only from the
// engine's worker goroutine, and publishes its latest typed sample into
// a guarded cell that the aggregator reads.
package collector

import "sync"

// Collector is one metric domain's refresh entry point.
type Collector interface {
	Name() string
	Refresh()
}

// Cell is a mutex-guarded latest-value holder. The mutex exists for the
// ping subsystem, which rewrites one field of the network sample from
// its own goroutine.
type Cell[T any] struct {
	mu  sync.Mutex
	val T
	set bool
}

// Store replaces the value.
func (c *Cell[T]) Store(v T) {
	c.mu.Lock()
	c.val = v
	c.set = true
	c.mu.Unlock()
}

// Load returns the value and whether one was ever stored.
func (c *Cell[T]) Load() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.val, c.set
}

// Modify applies fn to the current value (zero if unset) under the lock
// and stores the result.
func (c *Cell[T]) Modify(fn func(T) T) {
	c.mu.Lock()
	c.val = fn(c.val)
	c.set = true
	c.mu.Unlock()
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func percent(used, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return clampPercent(used / total * 100)
}
