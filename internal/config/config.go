// Package config carries the runtime knobs for pulsemon.
package config

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"pulsemon/internal/engine"
)

// Config holds the refresh and ping settings plus feature switches.
type Config struct {
	Interval    time.Duration
	PingHost    string // empty disables the ping subsystem
	PingPeriod  time.Duration
	PingTimeout time.Duration
	HistorySize int

	EnableGPU     bool
	EnableBattery bool
	EnableSensors bool

	SensorDevice string
	DiskPath     string
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Interval:      time.Second,
		PingHost:      "",
		PingPeriod:    10 * time.Second,
		PingTimeout:   2 * time.Second,
		HistorySize:   120,
		EnableGPU:     true,
		EnableBattery: true,
		EnableSensors: true,
		SensorDevice:  "",
		DiskPath:      "/",
	}
}

// BindFlags attaches the shared flags to a command.
func (c *Config) BindFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.DurationVar(&c.Interval, "interval", c.Interval, "refresh interval (clamped to 200ms..60s)")
	flags.StringVar(&c.PingHost, "ping-host", c.PingHost, "ping target host (empty disables ping)")
	flags.DurationVar(&c.PingPeriod, "ping-period", c.PingPeriod, "ping probe period")
	flags.DurationVar(&c.PingTimeout, "ping-timeout", c.PingTimeout, "ping probe timeout")
	flags.IntVar(&c.HistorySize, "history", c.HistorySize, "in-memory snapshot window size")
	flags.BoolVar(&c.EnableGPU, "gpu", c.EnableGPU, "enable GPU sampling")
	flags.BoolVar(&c.EnableBattery, "battery", c.EnableBattery, "enable battery sampling")
	flags.BoolVar(&c.EnableSensors, "sensors", c.EnableSensors, "enable thermal/fan sampling")
	flags.StringVar(&c.SensorDevice, "sensor-device", c.SensorDevice, "thermal service device path")
}

// ApplyEnv lets the environment override flag defaults.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("PULSEMON_INTERVAL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.Interval = parsed
		} else if parsed, err2 := time.ParseDuration(v + "s"); err2 == nil {
			c.Interval = parsed
		}
	}
	if v := os.Getenv("PULSEMON_PING_HOST"); v != "" {
		c.PingHost = v
	}
	if v := os.Getenv("PULSEMON_GPU"); v == "0" {
		c.EnableGPU = false
	}
	if v := os.Getenv("PULSEMON_SENSORS"); v == "0" {
		c.EnableSensors = false
	}
}

// Normalize clamps everything into its allowed range.
func (c *Config) Normalize() {
	c.Interval = engine.ClampInterval(c.Interval)
	if c.PingPeriod <= 0 {
		c.PingPeriod = 10 * time.Second
	}
	if c.PingTimeout <= 0 || c.PingTimeout > c.PingPeriod {
		c.PingTimeout = c.PingPeriod / 2
	}
	if c.HistorySize < 1 {
		c.HistorySize = 1
	}
	if c.DiskPath == "" {
		c.DiskPath = "/"
	}
}
