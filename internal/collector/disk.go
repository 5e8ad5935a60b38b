package collector

import (
	"time"

	"pulsemon/internal/model"
)

// DiskSource supplies volume capacity and cumulative I/O byte totals.
type DiskSource interface {
	Usage() (total, free uint64, err error)
	IOTotals() (read, write uint64, err error)
}

// Disk tracks root-volume occupancy and rolling read/write throughput.
type Disk struct {
	src DiskSource
	now func() time.Time

	warm      bool
	prevRead  uint64
	prevWrite uint64
	prevAt    time.Time

	latest Cell[model.DiskSample]
}

func NewDisk(src DiskSource) *Disk {
	return &Disk{src: src, now: time.Now}
}

func (c *Disk) Name() string { return "disk" }

func (c *Disk) Latest() (model.DiskSample, bool) { return c.latest.Load() }

// ResetBaseline discards the previous counters so the next refresh
// reports 0/0 instead of a rate averaged over a stopped gap. Called
// when the refresh clock restarts.
func (c *Disk) ResetBaseline() {
	c.warm = false
	c.prevRead, c.prevWrite = 0, 0
	c.prevAt = time.Time{}
}

// Refresh publishes occupancy plus throughput over the elapsed tick.
// The first tick after (re)start has no baseline and reports 0/0; a
// counter that shrinks (device hot-unplug) yields a zero delta, never a
// negative or wrapped one.
func (c *Disk) Refresh() {
	var s model.DiskSample
	if total, free, err := c.src.Usage(); err == nil {
		s.Total = total
		if total > free {
			s.Used = total - free
		}
		s.UsedPercent = percent(float64(s.Used), float64(total))
	}

	read, write, err := c.src.IOTotals()
	if err == nil {
		now := c.now()
		if c.warm {
			dt := now.Sub(c.prevAt).Seconds()
			if dt <= 0 {
				dt = 1
			}
			if read > c.prevRead {
				s.ReadBps = float64(read-c.prevRead) / dt
			}
			if write > c.prevWrite {
				s.WriteBps = float64(write-c.prevWrite) / dt
			}
		}
		c.prevRead, c.prevWrite, c.prevAt, c.warm = read, write, now, true
	}
	c.latest.Store(s)
}
