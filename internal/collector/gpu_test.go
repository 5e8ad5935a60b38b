package collector

import (
	"testing"

	"pulsemon/internal/sysquery"
)

type fakeGPUSource struct {
	info sysquery.GPUInfo
	ok   bool
}

func (f *fakeGPUSource) Read() (sysquery.GPUInfo, bool) { return f.info, f.ok }

func TestGPUAbsentPublishesNothing(t *testing.T) {
	c := NewGPU(&fakeGPUSource{ok: false}, nil, nil)
	c.Refresh()
	if _, ok := c.Latest(); ok {
		t.Error("sample published with no GPU present")
	}
}

func TestGPUPrefersSensorTemperature(t *testing.T) {
	src := &fakeGPUSource{
		info: sysquery.GPUInfo{Name: "RTX 4070", UtilPercent: 63, FrequencyMHz: 1920, TempC: 71},
		ok:   true,
	}
	c := NewGPU(src, fakeTemp{value: 68.5, ok: true}, []string{"TG0P"})
	c.Refresh()

	s, _ := c.Latest()
	if s.TempC != 68.5 {
		t.Errorf("TempC = %v; want the sensor-protocol reading 68.5", s.TempC)
	}
	if s.UtilPercent != 63 || s.FrequencyMHz != 1920 {
		t.Errorf("sample = %+v", s)
	}
}

func TestGPUFallsBackToRegistryTemperature(t *testing.T) {
	src := &fakeGPUSource{info: sysquery.GPUInfo{TempC: 71}, ok: true}
	c := NewGPU(src, fakeTemp{ok: false}, []string{"TG0P"})
	c.Refresh()

	s, _ := c.Latest()
	if s.TempC != 71 {
		t.Errorf("TempC = %v; want the registry reading 71", s.TempC)
	}
}

func TestGPUFPSMergeKeepsRegistryFields(t *testing.T) {
	src := &fakeGPUSource{
		info: sysquery.GPUInfo{Name: "RTX 4070", UtilPercent: 40, FrequencyMHz: 1800},
		ok:   true,
	}
	c := NewGPU(src, nil, nil)
	c.Refresh()

	c.RecordFPS(119.88)

	s, _ := c.Latest()
	if s.FPS != 119.88 {
		t.Errorf("FPS = %v; want 119.88", s.FPS)
	}
	if s.UtilPercent != 40 || s.FrequencyMHz != 1800 {
		t.Errorf("registry fields disturbed by FPS merge: %+v", s)
	}
}

func TestGPUFPSSurvivesRefresh(t *testing.T) {
	src := &fakeGPUSource{info: sysquery.GPUInfo{UtilPercent: 10}, ok: true}
	c := NewGPU(src, nil, nil)
	c.Refresh()
	c.RecordFPS(60)

	// The registry never produces a refresh rate; the merged value must
	// outlive later refreshes.
	src.info.UtilPercent = 90
	c.Refresh()

	s, _ := c.Latest()
	if s.FPS != 60 {
		t.Errorf("FPS = %v; want 60 carried across the refresh", s.FPS)
	}
	if s.UtilPercent != 90 {
		t.Errorf("UtilPercent = %v; want 90 from the new refresh", s.UtilPercent)
	}
}

func TestGPUUtilizationClamped(t *testing.T) {
	src := &fakeGPUSource{info: sysquery.GPUInfo{UtilPercent: 250}, ok: true}
	c := NewGPU(src, nil, nil)
	c.Refresh()

	s, _ := c.Latest()
	if s.UtilPercent != 100 {
		t.Errorf("UtilPercent = %v; want clamped 100", s.UtilPercent)
	}
}
