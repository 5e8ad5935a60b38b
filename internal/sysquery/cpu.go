// Package sysquery wraps the individual OS and hardware queries the
// collectors consume. Each accessor performs exactly one query and
// returns raw values or a no-data result; delta state lives upstream
// in the collectors.
package sysquery

import (
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/load"
)

// CoreTicks is one core's cumulative scheduler tick counters.
type CoreTicks struct {
	User   float64
	System float64
	Idle   float64
	Nice   float64
}

// Topology describes the core layout and nominal frequency.
type Topology struct {
	PerfCores    int
	EffCores     int
	FrequencyMHz float64
}

// CPU reads per-core tick counters and topology from the kernel.
type CPU struct{}

// Ticks returns cumulative per-core tick counters.
func (CPU) Ticks() ([]CoreTicks, error) {
	times, err := cpu.Times(true)
	if err != nil {
		return nil, err
	}
	out := make([]CoreTicks, len(times))
	for i, t := range times {
		out[i] = CoreTicks{User: t.User, System: t.System, Idle: t.Idle, Nice: t.Nice}
	}
	return out, nil
}

// Topology returns the core grouping and nominal frequency. The kernel
// interface exposes no performance/efficiency split here, so both group
// counts stay 0 (single performance level); frequency is 0 when the
// platform does not report it.
func (CPU) Topology() Topology {
	var topo Topology
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		topo.FrequencyMHz = infos[0].Mhz
	}
	return topo
}

// LoadAvg returns the 1/5/15 minute load averages, zeros on failure.
func (CPU) LoadAvg() (l1, l5, l15 float64) {
	avg, err := load.Avg()
	if err != nil {
		return 0, 0, 0
	}
	return avg.Load1, avg.Load5, avg.Load15
}
