package sysquery

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// BatteryInfo is the decoded descriptor of one power source.
type BatteryInfo struct {
	Percent          float64
	Health           string
	CycleCount       int
	Charging         bool
	ChargeRateWatts  float64
	MinutesRemaining int
}

// Battery reads the first enumerated power source from sysfs.
type Battery struct {
	// Root is the power-supply class directory; the sysfs default when empty.
	Root string
}

func (b Battery) root() string {
	if b.Root == "" {
		return "/sys/class/power_supply"
	}
	return b.Root
}

// Read returns the first battery's descriptor; ok is false when no
// battery is enumerated.
func (b Battery) Read() (BatteryInfo, bool) {
	dirs, _ := filepath.Glob(filepath.Join(b.root(), "BAT*"))
	for _, dir := range dirs {
		if info, ok := b.readOne(dir); ok {
			return info, true
		}
	}
	return BatteryInfo{}, false
}

func (b Battery) readOne(dir string) (BatteryInfo, bool) {
	// charge_* on charge-counter batteries, energy_* on the rest.
	now, nowOK := readUint(filepath.Join(dir, "charge_now"))
	full, fullOK := readUint(filepath.Join(dir, "energy_full"))
	if nowOK {
		full, fullOK = readUint(filepath.Join(dir, "charge_full"))
	} else {
		now, nowOK = readUint(filepath.Join(dir, "energy_now"))
	}
	if !nowOK && !fullOK {
		return BatteryInfo{}, false
	}

	var info BatteryInfo
	if fullOK && full > 0 {
		info.Percent = clampPercent(float64(now) / float64(full) * 100)
	}

	status := readString(filepath.Join(dir, "status"))
	info.Charging = status == "Charging"

	info.Health = readString(filepath.Join(dir, "health"))
	if info.Health == "" {
		info.Health = readString(filepath.Join(dir, "capacity_level"))
	}
	if cycles, ok := readUint(filepath.Join(dir, "cycle_count")); ok {
		info.CycleCount = int(cycles)
	}

	var watts float64
	if power, ok := readUint(filepath.Join(dir, "power_now")); ok {
		watts = float64(power) / 1e6
	}
	if info.Charging {
		info.ChargeRateWatts = watts
	} else {
		info.ChargeRateWatts = -watts
	}

	info.MinutesRemaining = b.minutesRemaining(dir, info.Charging, now, full, watts)
	return info, true
}

func (b Battery) minutesRemaining(dir string, charging bool, now, full uint64, watts float64) int {
	name := "time_to_empty_now"
	if charging {
		name = "time_to_full_now"
	}
	if secs, ok := readUint(filepath.Join(dir, name)); ok && secs > 0 {
		return int(secs / 60)
	}
	// Derive from energy and draw when the kernel gives no estimate.
	if watts <= 0 {
		return 0
	}
	remaining := float64(now)
	if charging {
		if full <= now {
			return 0
		}
		remaining = float64(full - now)
	}
	return int(remaining / 1e6 / watts * 60)
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

func readString(path string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

func readUint(path string) (uint64, bool) {
	s := readString(path)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
