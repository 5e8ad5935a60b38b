package collector

import (
	"pulsemon/internal/model"
	"pulsemon/internal/sysquery"
)

// BatterySource reads the first enumerated power source.
type BatterySource interface {
	Read() (sysquery.BatteryInfo, bool)
}

// Battery republishes the power-source descriptor. With no battery the
// cell stays unset and the domain is absent from snapshots.
type Battery struct {
	src    BatterySource
	latest Cell[model.BatterySample]
}

func NewBattery(src BatterySource) *Battery { return &Battery{src: src} }

func (c *Battery) Name() string { return "battery" }

func (c *Battery) Latest() (model.BatterySample, bool) { return c.latest.Load() }

func (c *Battery) Refresh() {
	info, ok := c.src.Read()
	if !ok {
		return
	}
	c.latest.Store(model.BatterySample{
		Percent:          clampPercent(info.Percent),
		Health:           info.Health,
		CycleCount:       info.CycleCount,
		Charging:         info.Charging,
		ChargeRateWatts:  info.ChargeRateWatts,
		MinutesRemaining: info.MinutesRemaining,
	})
}
