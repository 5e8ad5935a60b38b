package collector

import (
	"errors"
	"testing"

	"pulsemon/internal/sysquery"
)

type fakeCPUSource struct {
	ticks []sysquery.CoreTicks
	err   error
	topo  sysquery.Topology
	load  [3]float64
}

func (f *fakeCPUSource) Ticks() ([]sysquery.CoreTicks, error) { return f.ticks, f.err }
func (f *fakeCPUSource) Topology() sysquery.Topology          { return f.topo }
func (f *fakeCPUSource) LoadAvg() (float64, float64, float64) {
	return f.load[0], f.load[1], f.load[2]
}

type fakeTemp struct {
	value float64
	ok    bool
}

func (f fakeTemp) Temperature(keys ...string) (float64, bool) { return f.value, f.ok }

func TestCPUFirstSampleUsesSnapshotFormula(t *testing.T) {
	src := &fakeCPUSource{
		ticks: []sysquery.CoreTicks{{User: 100, System: 50, Idle: 800, Nice: 50}},
		topo:  sysquery.Topology{FrequencyMHz: 2400},
	}
	c := NewCPU(src, nil, nil)
	c.Refresh()

	s, ok := c.Latest()
	if !ok {
		t.Fatal("no sample published")
	}
	// (100+50+50)/(100+50+800+50) = 20%
	if s.TotalPercent != 20 {
		t.Errorf("TotalPercent = %v; want 20", s.TotalPercent)
	}
	if len(s.PerCore) != 0 {
		t.Errorf("PerCore on first sample = %v; want empty", s.PerCore)
	}
	if s.CoreCount != 1 {
		t.Errorf("CoreCount = %d; want 1", s.CoreCount)
	}
	if s.FrequencyMHz != 2400 {
		t.Errorf("FrequencyMHz = %v; want 2400", s.FrequencyMHz)
	}
}

func TestCPUWarmSampleUsesDeltaFormula(t *testing.T) {
	src := &fakeCPUSource{
		ticks: []sysquery.CoreTicks{{User: 100, System: 50, Idle: 800, Nice: 0}},
	}
	c := NewCPU(src, nil, nil)
	c.Refresh()

	src.ticks = []sysquery.CoreTicks{{User: 120, System: 60, Idle: 820, Nice: 0}}
	c.Refresh()

	s, _ := c.Latest()
	// usedDelta = 20+10+0 = 30, totalDelta = 30+20 = 50 -> 60%
	if s.TotalPercent != 60 {
		t.Errorf("TotalPercent = %v; want 60", s.TotalPercent)
	}
	if s.UserPercent != 40 { // 20/50
		t.Errorf("UserPercent = %v; want 40", s.UserPercent)
	}
	if s.SystemPercent != 20 { // 10/50
		t.Errorf("SystemPercent = %v; want 20", s.SystemPercent)
	}
	if len(s.PerCore) != 1 || s.PerCore[0] != 60 {
		t.Errorf("PerCore = %v; want [60]", s.PerCore)
	}
}

func TestCPUTopologyChangeForcesSnapshot(t *testing.T) {
	src := &fakeCPUSource{
		ticks: []sysquery.CoreTicks{
			{User: 100, System: 0, Idle: 100, Nice: 0},
			{User: 100, System: 0, Idle: 100, Nice: 0},
		},
	}
	c := NewCPU(src, nil, nil)
	c.Refresh()

	// One core disappears; deltas against the old tuple would be
	// nonsense, so the snapshot formula applies to the raw ticks.
	src.ticks = []sysquery.CoreTicks{{User: 300, System: 0, Idle: 100, Nice: 0}}
	c.Refresh()

	s, _ := c.Latest()
	if s.TotalPercent != 75 { // 300/400 raw, not a delta
		t.Errorf("TotalPercent after topology change = %v; want 75", s.TotalPercent)
	}
	if s.CoreCount != 1 {
		t.Errorf("CoreCount = %d; want 1", s.CoreCount)
	}
	if len(s.PerCore) != 1 {
		t.Errorf("PerCore = %v; want one entry", s.PerCore)
	}
}

func TestCPUZeroTotalDeltaIsZeroUsage(t *testing.T) {
	ticks := []sysquery.CoreTicks{{User: 10, System: 10, Idle: 10, Nice: 0}}
	src := &fakeCPUSource{ticks: ticks}
	c := NewCPU(src, nil, nil)
	c.Refresh()
	c.Refresh() // identical counters: every delta is 0

	s, _ := c.Latest()
	if s.TotalPercent != 0 {
		t.Errorf("TotalPercent = %v; want 0 when totalDelta is 0", s.TotalPercent)
	}
	if s.PerCore[0] != 0 {
		t.Errorf("PerCore[0] = %v; want 0", s.PerCore[0])
	}
}

func TestCPUPerfEffGroupMeans(t *testing.T) {
	src := &fakeCPUSource{
		ticks: []sysquery.CoreTicks{
			{User: 80, Idle: 20}, // 80%
			{User: 40, Idle: 60}, // 40%
			{User: 20, Idle: 80}, // 20%
			{User: 10, Idle: 90}, // 10%
		},
		topo: sysquery.Topology{PerfCores: 2, EffCores: 2},
	}
	c := NewCPU(src, nil, nil)
	c.Refresh() // snapshot mode; group means still apply

	s, _ := c.Latest()
	if s.PerfCorePercent != 60 { // (80+40)/2
		t.Errorf("PerfCorePercent = %v; want 60", s.PerfCorePercent)
	}
	if s.EffCorePercent != 15 { // (20+10)/2
		t.Errorf("EffCorePercent = %v; want 15", s.EffCorePercent)
	}
}

func TestCPUQueryFailureDegradesGracefully(t *testing.T) {
	src := &fakeCPUSource{
		err:  errors.New("host_processor_info failed"),
		topo: sysquery.Topology{FrequencyMHz: 3200},
		load: [3]float64{1.5, 1.0, 0.5},
	}
	c := NewCPU(src, fakeTemp{value: 55, ok: true}, []string{"TC0P"})
	c.Refresh()

	s, ok := c.Latest()
	if !ok {
		t.Fatal("no sample published on query failure")
	}
	if s.TotalPercent != 0 || s.UserPercent != 0 || s.SystemPercent != 0 {
		t.Errorf("usage = %v/%v/%v; want zeros", s.TotalPercent, s.UserPercent, s.SystemPercent)
	}
	if s.FrequencyMHz != 3200 {
		t.Errorf("FrequencyMHz = %v; want 3200", s.FrequencyMHz)
	}
	if s.TempC != 55 {
		t.Errorf("TempC = %v; want 55", s.TempC)
	}
	if s.Load1 != 1.5 {
		t.Errorf("Load1 = %v; want 1.5", s.Load1)
	}
}

func TestCPUPercentagesStayInBounds(t *testing.T) {
	// A counter that goes backwards must not push usage out of [0,100].
	src := &fakeCPUSource{
		ticks: []sysquery.CoreTicks{{User: 1000, System: 0, Idle: 1000, Nice: 0}},
	}
	c := NewCPU(src, nil, nil)
	c.Refresh()

	src.ticks = []sysquery.CoreTicks{{User: 900, System: 0, Idle: 1500, Nice: 0}}
	c.Refresh()

	s, _ := c.Latest()
	for i, v := range s.PerCore {
		if v < 0 || v > 100 {
			t.Errorf("PerCore[%d] = %v; want within [0,100]", i, v)
		}
	}
	if s.TotalPercent < 0 || s.TotalPercent > 100 {
		t.Errorf("TotalPercent = %v; want within [0,100]", s.TotalPercent)
	}
}
