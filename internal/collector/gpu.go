package collector

import (
	"pulsemon/internal/model"
	"pulsemon/internal/sysquery"
)

// GPUSource reads the first device from the performance registry.
type GPUSource interface {
	Read() (sysquery.GPUInfo, bool)
}

// GPU republishes the registry snapshot, preferring a sensor-protocol
// temperature when one of the candidate keys answers. FPS is supplied
// by the external display sampler and merged into the latest sample via
// RecordFPS, never computed here.
type GPU struct {
	src      GPUSource
	temp     TempSource // nil when the sensor service is out of reach
	tempKeys []string

	latest Cell[model.GPUSample]
}

func NewGPU(src GPUSource, temp TempSource, tempKeys []string) *GPU {
	return &GPU{src: src, temp: temp, tempKeys: tempKeys}
}

func (c *GPU) Name() string { return "gpu" }

func (c *GPU) Latest() (model.GPUSample, bool) { return c.latest.Load() }

func (c *GPU) Refresh() {
	info, ok := c.src.Read()
	if !ok {
		return
	}
	s := model.GPUSample{
		Name:         info.Name,
		UtilPercent:  clampPercent(info.UtilPercent),
		FrequencyMHz: info.FrequencyMHz,
		TempC:        info.TempC,
	}
	if c.temp != nil {
		if t, ok := c.temp.Temperature(c.tempKeys...); ok {
			s.TempC = t
		}
	}

	// Carry the last display-refresh rate forward; the registry never
	// produces one.
	c.latest.Modify(func(prev model.GPUSample) model.GPUSample {
		s.FPS = prev.FPS
		return s
	})
}

// RecordFPS merges an externally sampled display-refresh rate into the
// current latest sample, leaving every registry field untouched.
func (c *GPU) RecordFPS(fps float64) {
	c.latest.Modify(func(cur model.GPUSample) model.GPUSample {
		cur.FPS = fps
		return cur
	})
}
