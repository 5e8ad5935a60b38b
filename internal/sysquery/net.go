package sysquery

import (
	"strings"

	"github.com/shirou/gopsutil/v3/net"
)

// InterfaceCounters is one interface's cumulative byte counters.
type InterfaceCounters struct {
	Name string
	Recv uint64
	Sent uint64
}

// Net enumerates link-layer interface counters and addresses.
type Net struct{}

// Counters returns per-interface cumulative received/sent bytes,
// skipping loopback.
func (Net) Counters() ([]InterfaceCounters, error) {
	stats, err := net.IOCounters(true)
	if err != nil {
		return nil, err
	}
	out := make([]InterfaceCounters, 0, len(stats))
	for _, st := range stats {
		if st.Name == "lo" || st.Name == "lo0" {
			continue
		}
		out = append(out, InterfaceCounters{Name: st.Name, Recv: st.BytesRecv, Sent: st.BytesSent})
	}
	return out, nil
}

// PrimaryAddress returns the first non-loopback IPv4 address, or "".
func (Net) PrimaryAddress() string {
	ifaces, err := net.Interfaces()
	if err != nil {
		return ""
	}
	for _, iface := range ifaces {
		if iface.Name == "lo" || iface.Name == "lo0" || len(iface.Addrs) == 0 {
			continue
		}
		for _, addr := range iface.Addrs {
			ip := addr.Addr
			if idx := strings.Index(ip, "/"); idx != -1 {
				ip = ip[:idx]
			}
			if ip == "" || ip == "127.0.0.1" || strings.Contains(ip, ":") {
				continue
			}
			return ip
		}
	}
	return ""
}
