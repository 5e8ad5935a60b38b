package collector

import (
	"pulsemon/internal/model"
	"pulsemon/internal/sysquery"
)

// MemorySource supplies virtual-memory and swap statistics.
type MemorySource interface {
	VM() (sysquery.VMStat, error)
	Swap() (used, total uint64, err error)
}

// Memory derives occupancy and pressure from single-shot page counts.
type Memory struct {
	src    MemorySource
	latest Cell[model.MemorySample]
}

func NewMemory(src MemorySource) *Memory { return &Memory{src: src} }

func (c *Memory) Name() string { return "memory" }

func (c *Memory) Latest() (model.MemorySample, bool) { return c.latest.Load() }

// Refresh publishes occupancy and pressure. A failed query publishes an
// all-zero sample at level normal: unknown, not alarming.
func (c *Memory) Refresh() {
	vm, err := c.src.VM()
	if err != nil {
		c.latest.Store(model.MemorySample{PressureLevel: model.PressureNormal})
		return
	}
	swapUsed, swapTotal, err := c.src.Swap()
	if err != nil {
		swapUsed, swapTotal = 0, 0
	}

	used := vm.Active + vm.Inactive + vm.Wired + vm.Compressed
	total := used + vm.Free

	s := model.MemorySample{
		Used:       used,
		Total:      total,
		Wired:      vm.Wired,
		Compressed: vm.Compressed,
		SwapUsed:   swapUsed,
		SwapTotal:  swapTotal,
	}
	if total > 0 {
		s.UsedPercent = percent(float64(used), float64(total))
		// Swap counts toward pressure so the figure tracks system-level
		// strain rather than raw physical occupancy.
		s.PressurePercent = clampPercent(float64(used+swapUsed) / float64(total) * 100)
	}
	s.PressureLevel = model.PressureLevelFor(s.PressurePercent)
	c.latest.Store(s)
}
