package sysquery

import (
	"log"
	"sync"

	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

// GPUInfo is one device's performance-registry snapshot.
type GPUInfo struct {
	Name         string
	UtilPercent  float64
	FrequencyMHz float64
	TempC        float64
}

// GPU reads the first device from the NVML performance registry.
// Initialization is lazy and failure is remembered so an absent driver
// costs one probe, not one per tick.
type GPU struct {
	mu     sync.Mutex
	inited bool
	failed bool
}

// Clock candidates, tried in order until one answers.
var clockCandidates = []nvml.ClockType{nvml.CLOCK_GRAPHICS, nvml.CLOCK_SM}

func (g *GPU) ensure() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.inited {
		return true
	}
	if g.failed {
		return false
	}
	if ret := nvml.Init(); ret != nvml.SUCCESS {
		g.failed = true
		log.Printf("gpu: nvml unavailable: %s", nvml.ErrorString(ret))
		return false
	}
	g.inited = true
	return true
}

// Read returns the first GPU's utilization, clock and temperature;
// ok is false when no device is present.
func (g *GPU) Read() (GPUInfo, bool) {
	if !g.ensure() {
		return GPUInfo{}, false
	}
	count, ret := nvml.DeviceGetCount()
	if ret != nvml.SUCCESS || count == 0 {
		return GPUInfo{}, false
	}
	dev, ret := nvml.DeviceGetHandleByIndex(0)
	if ret != nvml.SUCCESS {
		return GPUInfo{}, false
	}

	var info GPUInfo
	info.Name, _ = dev.GetName()
	if util, ret := dev.GetUtilizationRates(); ret == nvml.SUCCESS {
		info.UtilPercent = clampPercent(float64(util.Gpu))
	}
	for _, ct := range clockCandidates {
		if clock, ret := dev.GetClockInfo(ct); ret == nvml.SUCCESS {
			info.FrequencyMHz = float64(clock)
			break
		}
	}
	if temp, ret := dev.GetTemperature(nvml.TEMPERATURE_GPU); ret == nvml.SUCCESS {
		info.TempC = float64(temp)
	}
	return info, true
}

// Close shuts NVML down if it was initialized.
func (g *GPU) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.inited {
		nvml.Shutdown()
		g.inited = false
	}
}
