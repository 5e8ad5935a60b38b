package sysquery

import (
	"strings"

	"github.com/shirou/gopsutil/v3/disk"
)

// Disk reads root-volume capacity and cumulative block-device I/O counters.
type Disk struct {
	// Path is the volume to report capacity for; "/" when empty.
	Path string
}

func (d Disk) path() string {
	if d.Path == "" {
		return "/"
	}
	return d.Path
}

// Usage returns the volume's total and available bytes.
func (d Disk) Usage() (total, free uint64, err error) {
	u, err := disk.Usage(d.path())
	if err != nil {
		return 0, 0, err
	}
	return u.Total, u.Free, nil
}

// IOTotals sums cumulative read/write bytes across all block devices,
// skipping loop devices.
func (d Disk) IOTotals() (read, write uint64, err error) {
	counters, err := disk.IOCounters()
	if err != nil {
		return 0, 0, err
	}
	for name, st := range counters {
		if strings.HasPrefix(name, "loop") {
			continue
		}
		read += st.ReadBytes
		write += st.WriteBytes
	}
	return read, write, nil
}
