package collector

import (
	"time"

	"pulsemon/internal/model"
	"pulsemon/internal/sysquery"
)

// NetSource enumerates per-interface counters and the primary address.
type NetSource interface {
	Counters() ([]sysquery.InterfaceCounters, error)
	PrimaryAddress() string
}

// Network computes per-interface throughput deltas keyed by interface
// name. The ping subsystem merges round-trip results into the latest
// sample from its own goroutine via RecordPing.
type Network struct {
	src NetSource
	now func() time.Time

	prev   map[string]sysquery.InterfaceCounters
	prevAt time.Time

	latest Cell[model.NetworkSample]
}

func NewNetwork(src NetSource) *Network {
	return &Network{src: src, now: time.Now}
}

func (c *Network) Name() string { return "network" }

func (c *Network) Latest() (model.NetworkSample, bool) { return c.latest.Load() }

// ResetBaseline discards the previous counter map so every interface is
// a first sighting on the next refresh. Called when the refresh clock
// restarts; the latest sample (and its ping value) is untouched.
func (c *Network) ResetBaseline() {
	c.prev = nil
	c.prevAt = time.Time{}
}

// Refresh computes rates against the stored previous counter map. An
// interface seen for the first time contributes 0/0 this tick.
// Aggregate rates are the sums of the published per-interface rates, so
// the two always agree.
func (c *Network) Refresh() {
	var s model.NetworkSample
	s.LocalAddress = c.src.PrimaryAddress()

	counters, err := c.src.Counters()
	if err == nil {
		now := c.now()
		dt := now.Sub(c.prevAt).Seconds()
		if dt <= 0 {
			dt = 1
		}
		next := make(map[string]sysquery.InterfaceCounters, len(counters))
		for _, cur := range counters {
			rate := model.InterfaceRate{Name: cur.Name}
			if prev, ok := c.prev[cur.Name]; ok {
				if cur.Recv > prev.Recv {
					rate.RecvBps = float64(cur.Recv-prev.Recv) / dt
				}
				if cur.Sent > prev.Sent {
					rate.SendBps = float64(cur.Sent-prev.Sent) / dt
				}
			}
			next[cur.Name] = cur
			s.PerInterface = append(s.PerInterface, rate)
			s.RecvBps += rate.RecvBps
			s.SendBps += rate.SendBps
		}
		c.prev = next
		c.prevAt = now
	}

	// Carry the last successful round-trip forward; failed probes never
	// clear it.
	c.latest.Modify(func(prev model.NetworkSample) model.NetworkSample {
		s.PingMillis = prev.PingMillis
		return s
	})
}

// RecordPing merges a successful probe into the current latest sample,
// leaving every throughput field untouched.
func (c *Network) RecordPing(rtt time.Duration) {
	c.latest.Modify(func(cur model.NetworkSample) model.NetworkSample {
		cur.PingMillis = float64(rtt) / float64(time.Millisecond)
		return cur
	})
}
