package sysquery

import "github.com/shirou/gopsutil/v3/mem"

// VMStat holds virtual-memory page statistics converted to bytes.
type VMStat struct {
	Free       uint64
	Active     uint64
	Inactive   uint64
	Wired      uint64
	Compressed uint64
}

// Memory reads virtual-memory and swap statistics.
type Memory struct{}

// VM returns the page statistics in bytes. Compressed stays 0 on
// platforms without a compressor.
func (Memory) VM() (VMStat, error) {
	v, err := mem.VirtualMemory()
	if err != nil {
		return VMStat{}, err
	}
	return VMStat{
		Free:     v.Free,
		Active:   v.Active,
		Inactive: v.Inactive,
		Wired:    v.Wired,
	}, nil
}

// Swap returns swap used/total in bytes.
func (Memory) Swap() (used, total uint64, err error) {
	s, err := mem.SwapMemory()
	if err != nil {
		return 0, 0, err
	}
	return s.Used, s.Total, nil
}
