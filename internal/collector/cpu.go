package collector

import (
	"pulsemon/internal/model"
	"pulsemon/internal/sysquery"
)

// CPUSource supplies tick counters, topology and load averages.
type CPUSource interface {
	Ticks() ([]sysquery.CoreTicks, error)
	Topology() sysquery.Topology
	LoadAvg() (l1, l5, l15 float64)
}

// TempSource reads a package temperature via ordered candidate keys.
type TempSource interface {
	Temperature(keys ...string) (float64, bool)
}

// CPU converts cumulative per-core tick counters into usage percentages.
type CPU struct {
	src      CPUSource
	temp     TempSource // nil when the sensor service is out of reach
	tempKeys []string

	prev   []sysquery.CoreTicks
	latest Cell[model.CPUSample]
}

// NewCPU returns a cold CPU collector; temp may be nil.
func NewCPU(src CPUSource, temp TempSource, tempKeys []string) *CPU {
	return &CPU{src: src, temp: temp, tempKeys: tempKeys}
}

func (c *CPU) Name() string { return "cpu" }

// Latest returns the most recent sample.
func (c *CPU) Latest() (model.CPUSample, bool) { return c.latest.Load() }

// Refresh reads the counters and publishes a sample. The first sample
// (and any sample after a core-count change) uses the instantaneous
// snapshot formula; warm samples use clamped deltas. A failed tick
// query degrades to zero usage with topology, frequency, load and
// temperature intact.
func (c *CPU) Refresh() {
	topo := c.src.Topology()
	s := model.CPUSample{
		PerfCores:    topo.PerfCores,
		EffCores:     topo.EffCores,
		FrequencyMHz: topo.FrequencyMHz,
	}
	s.Load1, s.Load5, s.Load15 = c.src.LoadAvg()
	if c.temp != nil {
		if t, ok := c.temp.Temperature(c.tempKeys...); ok {
			s.TempC = t
		}
	}

	ticks, err := c.src.Ticks()
	if err != nil || len(ticks) == 0 {
		s.CoreCount = len(c.prev)
		c.latest.Store(s)
		return
	}
	s.CoreCount = len(ticks)

	perCore := make([]float64, len(ticks))
	var usedSum, totalSum, userSum, sysSum float64

	if len(c.prev) == len(ticks) {
		// Delta mode.
		for i, cur := range ticks {
			p := c.prev[i]
			du := cur.User - p.User
			ds := cur.System - p.System
			dn := cur.Nice - p.Nice
			di := cur.Idle - p.Idle
			used := du + ds + dn
			total := used + di
			if total > 0 {
				perCore[i] = clampPercent(used / total * 100)
			}
			usedSum += used
			totalSum += total
			userSum += du
			sysSum += ds
		}
	} else {
		// Snapshot mode: no baseline, or the topology changed.
		for i, cur := range ticks {
			used := cur.User + cur.System + cur.Nice
			total := used + cur.Idle
			if total > 0 {
				perCore[i] = clampPercent(used / total * 100)
			}
			usedSum += used
			totalSum += total
			userSum += cur.User
			sysSum += cur.System
		}
	}

	// Overall percentages come from summed deltas (or summed raw ticks),
	// not from averaging per-core percentages.
	if totalSum > 0 {
		s.TotalPercent = clampPercent(usedSum / totalSum * 100)
		s.UserPercent = clampPercent(userSum / totalSum * 100)
		s.SystemPercent = clampPercent(sysSum / totalSum * 100)
	}

	s.PerfCorePercent = groupMean(perCore, 0, topo.PerfCores)
	s.EffCorePercent = groupMean(perCore, topo.PerfCores, topo.PerfCores+topo.EffCores)

	// The per-core list appears once a previous tick exists.
	if c.prev != nil {
		s.PerCore = perCore
	}
	c.prev = ticks
	c.latest.Store(s)
}

// groupMean averages values[lo:hi), clamped to the slice bounds.
func groupMean(values []float64, lo, hi int) float64 {
	if lo < 0 {
		lo = 0
	}
	if hi > len(values) {
		hi = len(values)
	}
	if hi <= lo {
		return 0
	}
	var sum float64
	for _, v := range values[lo:hi] {
		sum += v
	}
	return sum / float64(hi-lo)
}
