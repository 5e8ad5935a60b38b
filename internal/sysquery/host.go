package sysquery

import (
	"fmt"
	"os"

	"github.com/shirou/gopsutil/v3/host"
)

// HostInfo returns the hostname and a platform description, best effort.
func HostInfo() (hostname, platform string) {
	hostname, _ = os.Hostname()
	if info, err := host.Info(); err == nil {
		platform = fmt.Sprintf("%s %s", info.Platform, info.PlatformVersion)
	}
	return hostname, platform
}
