package model

import "time"

// PressureLevel grades memory pressure into the three UI buckets.
type PressureLevel int

const (
	PressureNormal PressureLevel = iota
	PressureWarning
	PressureCritical
)

func (l PressureLevel) String() string {
	switch l {
	case PressureWarning:
		return "warning"
	case PressureCritical:
		return "critical"
	default:
		return "normal"
	}
}

// PressureLevelFor buckets a pressure percentage: <60 normal,
// [60,80) warning, >=80 critical.
func PressureLevelFor(pct float64) PressureLevel {
	switch {
	case pct >= 80:
		return PressureCritical
	case pct >= 60:
		return PressureWarning
	default:
		return PressureNormal
	}
}

// CPUSample aggregates CPU usage for one tick. Percent fields are 0-100.
// PerCore is empty on the very first sample, before any delta baseline exists.
type CPUSample struct {
	TotalPercent  float64   `json:"total_percent"`
	UserPercent   float64   `json:"user_percent"`
	SystemPercent float64   `json:"system_percent"`
	PerCore       []float64 `json:"per_core,omitempty"`

	// Performance/efficiency core aggregates; counts are 0 on
	// topologies with a single performance level.
	PerfCorePercent float64 `json:"perf_core_percent"`
	EffCorePercent  float64 `json:"eff_core_percent"`
	PerfCores       int     `json:"perf_cores"`
	EffCores        int     `json:"eff_cores"`
	CoreCount       int     `json:"core_count"`

	FrequencyMHz float64 `json:"frequency_mhz"` // 0 when the platform does not expose it
	TempC        float64 `json:"temp_c"`        // 0 when no package sensor answered

	Load1  float64 `json:"load_1"`
	Load5  float64 `json:"load_5"`
	Load15 float64 `json:"load_15"`
}

// MemorySample captures RAM and swap occupancy in bytes.
type MemorySample struct {
	Used       uint64 `json:"used"`
	Total      uint64 `json:"total"`
	Wired      uint64 `json:"wired"`
	Compressed uint64 `json:"compressed"`
	SwapUsed   uint64 `json:"swap_used"`
	SwapTotal  uint64 `json:"swap_total"`

	UsedPercent float64 `json:"used_percent"`

	// PressurePercent folds swap into occupancy:
	// min(100, (used+swapUsed)/total*100).
	PressurePercent float64       `json:"pressure_percent"`
	PressureLevel   PressureLevel `json:"pressure_level"`
}

// DiskSample holds root-volume occupancy and rolling throughput.
type DiskSample struct {
	Used        uint64  `json:"used"`
	Total       uint64  `json:"total"`
	UsedPercent float64 `json:"used_percent"`
	ReadBps     float64 `json:"read_bps"`
	WriteBps    float64 `json:"write_bps"`
}

// InterfaceRate is one interface's throughput over the last tick.
type InterfaceRate struct {
	Name    string  `json:"name"`
	RecvBps float64 `json:"recv_bps"`
	SendBps float64 `json:"send_bps"`
}

// NetworkSample aggregates per-interface throughput, the last successful
// ping round-trip, and the resolved primary address. RecvBps/SendBps are
// always the sums of the PerInterface rates for the same tick.
type NetworkSample struct {
	RecvBps      float64         `json:"recv_bps"`
	SendBps      float64         `json:"send_bps"`
	PerInterface []InterfaceRate `json:"per_interface,omitempty"`
	PingMillis   float64         `json:"ping_millis,omitempty"` // <=0 means no reading yet
	LocalAddress string          `json:"local_address,omitempty"`
}

// BatterySample describes the first enumerated power source.
type BatterySample struct {
	Percent          float64 `json:"percent"`
	Health           string  `json:"health,omitempty"`
	CycleCount       int     `json:"cycle_count"`
	Charging         bool    `json:"charging"`
	ChargeRateWatts  float64 `json:"charge_rate_watts"` // negative while discharging
	MinutesRemaining int     `json:"minutes_remaining"` // to-full when charging, to-empty otherwise; 0 unknown
}

// GPUSample is the first GPU's utilization snapshot.
type GPUSample struct {
	Name         string  `json:"name"`
	UtilPercent  float64 `json:"util_percent"`
	FrequencyMHz float64 `json:"frequency_mhz"`
	TempC        float64 `json:"temp_c"`
	FPS          float64 `json:"fps,omitempty"` // merged in externally by the display sampler
}

// Reading is one named sensor value (degrees C for thermal keys, RPM for fans).
type Reading struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// SensorSample lists thermal and fan readings. Slices are empty, not nil,
// when the subsystem answered but no key produced a valid value; total
// unavailability is reported by the capability probe instead.
type SensorSample struct {
	Temps []Reading `json:"temps"`
	Fans  []Reading `json:"fans"`
}

// HostInfo is static identification read once at startup.
type HostInfo struct {
	Hostname string `json:"hostname"`
	Platform string `json:"platform"`
}

// Snapshot is the immutable aggregate handed to subscribers. CPU, Memory
// and Disk are always present; the pointer domains are nil until their
// collector produced a sample or when the hardware is absent.
type Snapshot struct {
	Timestamp time.Time     `json:"timestamp"`
	Interval  time.Duration `json:"interval"`

	CPU    CPUSample    `json:"cpu"`
	Memory MemorySample `json:"memory"`
	Disk   DiskSample   `json:"disk"`

	GPU     *GPUSample     `json:"gpu,omitempty"`
	Network *NetworkSample `json:"network,omitempty"`
	Battery *BatterySample `json:"battery,omitempty"`
	Sensors *SensorSample  `json:"sensors,omitempty"`
}
