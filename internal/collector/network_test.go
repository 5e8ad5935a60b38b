package collector

import (
	"errors"
	"testing"
	"time"

	"pulsemon/internal/sysquery"
)

type fakeNetSource struct {
	counters []sysquery.InterfaceCounters
	err      error
	addr     string
}

func (f *fakeNetSource) Counters() ([]sysquery.InterfaceCounters, error) {
	return f.counters, f.err
}
func (f *fakeNetSource) PrimaryAddress() string { return f.addr }

func TestNetworkFirstSightingIsZero(t *testing.T) {
	src := &fakeNetSource{
		counters: []sysquery.InterfaceCounters{{Name: "en0", Recv: 1000, Sent: 2000}},
		addr:     "192.168.1.10",
	}
	c := NewNetwork(src)
	c.now = stepClock(time.Second)
	c.Refresh()

	s, ok := c.Latest()
	if !ok {
		t.Fatal("no sample published")
	}
	if s.RecvBps != 0 || s.SendBps != 0 {
		t.Errorf("first-tick rates = %v/%v; want 0/0", s.RecvBps, s.SendBps)
	}
	if len(s.PerInterface) != 1 || s.PerInterface[0].Name != "en0" {
		t.Errorf("PerInterface = %v; want one en0 entry", s.PerInterface)
	}
	if s.LocalAddress != "192.168.1.10" {
		t.Errorf("LocalAddress = %q; want 192.168.1.10", s.LocalAddress)
	}
}

func TestNetworkAggregateEqualsInterfaceSum(t *testing.T) {
	src := &fakeNetSource{
		counters: []sysquery.InterfaceCounters{
			{Name: "en0", Recv: 1000, Sent: 500},
			{Name: "en1", Recv: 4000, Sent: 100},
		},
	}
	c := NewNetwork(src)
	c.now = stepClock(time.Second)
	c.Refresh()

	src.counters = []sysquery.InterfaceCounters{
		{Name: "en0", Recv: 3000, Sent: 900},
		{Name: "en1", Recv: 4096, Sent: 100},
	}
	c.Refresh()

	s, _ := c.Latest()
	var recvSum, sendSum float64
	for _, r := range s.PerInterface {
		recvSum += r.RecvBps
		sendSum += r.SendBps
	}
	if s.RecvBps != recvSum || s.SendBps != sendSum {
		t.Errorf("aggregate = %v/%v; per-interface sums = %v/%v", s.RecvBps, s.SendBps, recvSum, sendSum)
	}
	if s.RecvBps != 2096 { // (3000-1000)+(4096-4000) over 1s
		t.Errorf("RecvBps = %v; want 2096", s.RecvBps)
	}
	if s.SendBps != 400 {
		t.Errorf("SendBps = %v; want 400", s.SendBps)
	}
}

func TestNetworkCounterDecreaseClampsToZero(t *testing.T) {
	src := &fakeNetSource{
		counters: []sysquery.InterfaceCounters{{Name: "en0", Recv: 5000, Sent: 5000}},
	}
	c := NewNetwork(src)
	c.now = stepClock(time.Second)
	c.Refresh()

	src.counters = []sysquery.InterfaceCounters{{Name: "en0", Recv: 100, Sent: 6000}}
	c.Refresh()

	s, _ := c.Latest()
	if s.PerInterface[0].RecvBps != 0 {
		t.Errorf("RecvBps = %v; want 0 after counter decrease", s.PerInterface[0].RecvBps)
	}
	if s.PerInterface[0].SendBps != 1000 {
		t.Errorf("SendBps = %v; want 1000", s.PerInterface[0].SendBps)
	}
}

func TestNetworkResetBaselineZeroesNextTick(t *testing.T) {
	src := &fakeNetSource{
		counters: []sysquery.InterfaceCounters{{Name: "en0", Recv: 1000, Sent: 1000}},
	}
	c := NewNetwork(src)
	c.now = stepClock(time.Second)
	c.Refresh()
	c.RecordPing(5 * time.Millisecond)

	// Restart: every interface becomes a first sighting again, but the
	// last round-trip survives.
	c.ResetBaseline()
	src.counters = []sysquery.InterfaceCounters{{Name: "en0", Recv: 900_000, Sent: 900_000}}
	c.Refresh()

	s, _ := c.Latest()
	if s.RecvBps != 0 || s.SendBps != 0 {
		t.Errorf("first tick after reset = %v/%v; want 0/0", s.RecvBps, s.SendBps)
	}
	if s.PingMillis != 5 {
		t.Errorf("PingMillis = %v; want 5 kept across the reset", s.PingMillis)
	}
}

func TestNetworkStalePingPersists(t *testing.T) {
	src := &fakeNetSource{
		counters: []sysquery.InterfaceCounters{{Name: "en0", Recv: 1, Sent: 1}},
	}
	c := NewNetwork(src)
	c.now = stepClock(time.Second)
	c.Refresh()

	// Tick N-1: the probe succeeds at 12ms.
	c.RecordPing(12 * time.Millisecond)

	// Tick N: the probe times out and performs no update; the refresh
	// must carry the stale value forward.
	c.Refresh()
	c.Refresh()

	s, _ := c.Latest()
	if s.PingMillis != 12 {
		t.Errorf("PingMillis = %v; want stale 12 to persist", s.PingMillis)
	}
}

func TestNetworkPingMergeKeepsThroughput(t *testing.T) {
	src := &fakeNetSource{
		counters: []sysquery.InterfaceCounters{{Name: "en0", Recv: 0, Sent: 0}},
	}
	c := NewNetwork(src)
	c.now = stepClock(time.Second)
	c.Refresh()

	src.counters = []sysquery.InterfaceCounters{{Name: "en0", Recv: 1024, Sent: 0}}
	c.Refresh()

	c.RecordPing(7 * time.Millisecond)

	s, _ := c.Latest()
	if s.PingMillis != 7 {
		t.Errorf("PingMillis = %v; want 7", s.PingMillis)
	}
	if s.RecvBps != 1024 {
		t.Errorf("RecvBps = %v; want 1024 untouched by the ping merge", s.RecvBps)
	}
}

func TestNetworkQueryFailureKeepsPreviousBaseline(t *testing.T) {
	src := &fakeNetSource{
		counters: []sysquery.InterfaceCounters{{Name: "en0", Recv: 1000, Sent: 0}},
	}
	c := NewNetwork(src)
	clock := stepClock(time.Second)
	c.now = clock
	c.Refresh()

	src.err = errors.New("getifaddrs failed")
	c.Refresh()

	s, _ := c.Latest()
	if len(s.PerInterface) != 0 {
		t.Errorf("PerInterface on failed query = %v; want empty", s.PerInterface)
	}

	// Recovery: the old baseline still applies.
	src.err = nil
	src.counters = []sysquery.InterfaceCounters{{Name: "en0", Recv: 3000, Sent: 0}}
	c.Refresh()

	s, _ = c.Latest()
	if s.RecvBps <= 0 {
		t.Errorf("RecvBps after recovery = %v; want positive", s.RecvBps)
	}
}
