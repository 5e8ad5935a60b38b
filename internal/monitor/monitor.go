// Package monitor wires the collectors, refresh engine and ping
// subsystem together and publishes immutable snapshots to subscribers.
package monitor

import (
	"sync"
	"time"

	"pulsemon/internal/collector"
	"pulsemon/internal/config"
	"pulsemon/internal/engine"
	"pulsemon/internal/model"
	"pulsemon/internal/ping"
	"pulsemon/internal/smc"
	"pulsemon/internal/sysquery"
)

// Capability hint strings surfaced to the presentation layer.
const (
	HintNoBattery          = "no battery detected"
	HintSensorsUnavailable = "sensors unavailable"
)

// Capabilities reports which optional domains the host exposes.
type Capabilities struct {
	Battery     bool
	Sensors     bool
	BatteryHint string // set when Battery is false
	SensorHint  string // set when Sensors is false
}

const subscriberBuffer = 8

// Monitor owns the refresh pipeline. All collector refreshes run on the
// engine's goroutine; the pinger merges into the network collector's
// latest cell from its own goroutine; subscribers receive snapshots by
// value in publication order.
type Monitor struct {
	cfg  config.Config
	host model.HostInfo

	engine *engine.Engine
	pinger *ping.Pinger

	cpu     *collector.CPU
	memory  *collector.Memory
	disk    *collector.Disk
	network *collector.Network
	gpu     *collector.GPU     // nil when disabled
	battery *collector.Battery // nil when disabled
	sensors *collector.Sensors // nil when disabled
	order   []collector.Collector

	gpuAcc       *sysquery.GPU
	batterySrc   collector.BatterySource
	sensorClient *smc.Client

	history *model.History

	subMu sync.Mutex
	subs  []chan model.Snapshot
}

// New builds a monitor against the live system.
func New(cfg config.Config) *Monitor {
	cfg.Normalize()
	m := &Monitor{
		cfg:     cfg,
		history: model.NewHistory(cfg.HistorySize),
	}
	m.host.Hostname, m.host.Platform = sysquery.HostInfo()

	var temp collector.TempSource
	if cfg.EnableSensors {
		m.sensorClient = smc.NewClient(cfg.SensorDevice)
		temp = m.sensorClient
	}

	m.cpu = collector.NewCPU(sysquery.CPU{}, temp, smc.CPUTempKeys)
	m.memory = collector.NewMemory(sysquery.Memory{})
	m.disk = collector.NewDisk(sysquery.Disk{Path: cfg.DiskPath})
	m.network = collector.NewNetwork(sysquery.Net{})
	m.order = []collector.Collector{m.cpu, m.memory, m.disk, m.network}

	if cfg.EnableGPU {
		m.gpuAcc = &sysquery.GPU{}
		m.gpu = collector.NewGPU(m.gpuAcc, temp, smc.GPUTempKeys)
		m.order = append(m.order, m.gpu)
	}
	if cfg.EnableBattery {
		src := sysquery.Battery{}
		m.batterySrc = src
		m.battery = collector.NewBattery(src)
		m.order = append(m.order, m.battery)
	}
	if cfg.EnableSensors {
		m.sensors = collector.NewSensors(m.sensorClient)
		m.order = append(m.order, m.sensors)
	}

	m.engine = engine.New(cfg.Interval, m.tick)
	m.pinger = ping.New(cfg.PingHost, cfg.PingPeriod, cfg.PingTimeout, m.network.RecordPing)
	return m
}

// Start begins ticking and probing; idempotent. A restart clears the
// throughput baselines so the first tick reports 0/0 rather than a rate
// averaged over the stopped gap.
func (m *Monitor) Start() {
	if !m.engine.Running() {
		m.disk.ResetBaseline()
		m.network.ResetBaseline()
	}
	m.engine.Start()
	m.pinger.Start()
}

// Stop halts the engine and pinger, waiting for in-flight work;
// idempotent.
func (m *Monitor) Stop() {
	m.engine.Stop()
	m.pinger.Stop()
}

// Close stops everything and releases the GPU registry handle.
func (m *Monitor) Close() {
	m.Stop()
	if m.gpuAcc != nil {
		m.gpuAcc.Close()
	}
}

// SetInterval reschedules the refresh clock; clamped to 200ms..60s.
func (m *Monitor) SetInterval(d time.Duration) { m.engine.SetInterval(d) }

// Interval returns the active refresh interval.
func (m *Monitor) Interval() time.Duration { return m.engine.Interval() }

// SetPingTarget changes the ping host; empty disables probing.
func (m *Monitor) SetPingTarget(host string) { m.pinger.SetHost(host) }

// RecordFPS merges a display-refresh rate from an external sampler into
// the GPU domain's latest sample. No-op when GPU sampling is disabled.
func (m *Monitor) RecordFPS(fps float64) {
	if m.gpu != nil {
		m.gpu.RecordFPS(fps)
	}
}

// Host returns the static host identification.
func (m *Monitor) Host() model.HostInfo { return m.host }

// History returns the retained snapshot window, oldest first.
func (m *Monitor) History() []model.Snapshot { return m.history.Values() }

// Subscribe returns a channel receiving every published snapshot in
// order, plus a cancel func that stops delivery and releases the
// subscription. A subscriber that falls behind loses its oldest pending
// snapshot rather than stalling the refresh worker.
func (m *Monitor) Subscribe() (<-chan model.Snapshot, func()) {
	ch := make(chan model.Snapshot, subscriberBuffer)
	m.subMu.Lock()
	m.subs = append(m.subs, ch)
	m.subMu.Unlock()
	cancel := func() {
		m.subMu.Lock()
		defer m.subMu.Unlock()
		for i, c := range m.subs {
			if c == ch {
				m.subs = append(m.subs[:i], m.subs[i+1:]...)
				return
			}
		}
	}
	return ch, cancel
}

// Capabilities probes battery presence and sensor-service reachability.
// Re-invokable at any time.
func (m *Monitor) Capabilities() Capabilities {
	var caps Capabilities
	if m.batterySrc != nil {
		_, caps.Battery = m.batterySrc.Read()
	}
	if !caps.Battery {
		caps.BatteryHint = HintNoBattery
	}
	if m.sensorClient != nil {
		caps.Sensors = m.sensorClient.Reachable()
	}
	if !caps.Sensors {
		caps.SensorHint = HintSensorsUnavailable
	}
	return caps
}

// tick runs one full refresh pass and publishes the tick-final
// snapshot. Collectors absorb their own failures, so the pass always
// completes.
func (m *Monitor) tick() {
	for _, c := range m.order {
		c.Refresh()
	}
	snap := m.assemble()
	m.history.Push(snap)
	m.publish(snap)
}

// assemble reads every latest cell once, so the result is
// self-consistent for the tick that just finished.
func (m *Monitor) assemble() model.Snapshot {
	snap := model.Snapshot{
		Timestamp: time.Now(),
		Interval:  m.engine.Interval(),
	}
	if s, ok := m.cpu.Latest(); ok {
		snap.CPU = s
	}
	if s, ok := m.memory.Latest(); ok {
		snap.Memory = s
	}
	if s, ok := m.disk.Latest(); ok {
		snap.Disk = s
	}
	if s, ok := m.network.Latest(); ok {
		snap.Network = &s
	}
	if m.gpu != nil {
		if s, ok := m.gpu.Latest(); ok {
			snap.GPU = &s
		}
	}
	if m.battery != nil {
		if s, ok := m.battery.Latest(); ok {
			snap.Battery = &s
		}
	}
	if m.sensors != nil {
		if s, ok := m.sensors.Latest(); ok {
			snap.Sensors = &s
		}
	}
	return snap
}

func (m *Monitor) publish(s model.Snapshot) {
	m.subMu.Lock()
	defer m.subMu.Unlock()
	for _, ch := range m.subs {
		select {
		case ch <- s:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- s:
			default:
			}
		}
	}
}
