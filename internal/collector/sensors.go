package collector

import "pulsemon/internal/model"

// SensorSource reads the thermal and fan key groups. A nil slice means
// the service connection could not be opened; an empty one means it
// answered but no key decoded.
type SensorSource interface {
	Temperatures() []model.Reading
	Fans() []model.Reading
}

// Sensors republishes thermal and fan readings. Total unavailability
// leaves the cell unset; the capability probe owns the explanation.
type Sensors struct {
	src    SensorSource
	latest Cell[model.SensorSample]
}

func NewSensors(src SensorSource) *Sensors { return &Sensors{src: src} }

func (c *Sensors) Name() string { return "sensors" }

func (c *Sensors) Latest() (model.SensorSample, bool) { return c.latest.Load() }

func (c *Sensors) Refresh() {
	temps := c.src.Temperatures()
	fans := c.src.Fans()
	if temps == nil && fans == nil {
		return
	}
	if temps == nil {
		temps = []model.Reading{}
	}
	if fans == nil {
		fans = []model.Reading{}
	}
	c.latest.Store(model.SensorSample{Temps: temps, Fans: fans})
}
