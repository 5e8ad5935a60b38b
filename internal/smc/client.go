package smc

import (
	"pulsemon/internal/model"
)

// KeyName pairs a sensor key with its display name.
type KeyName struct {
	Key  string
	Name string
}

// ThermalKeys are the known temperature registers.
var ThermalKeys = []KeyName{
	{"TC0P", "CPU Package"},
	{"TC0D", "CPU Diode"},
	{"TG0P", "GPU"},
	{"TG0D", "GPU Diode"},
	{"TB0T", "Battery"},
	{"TM0P", "Memory"},
	{"TN0P", "Northbridge"},
}

// FanKeys are the known fan registers.
var FanKeys = []KeyName{
	{"F0Ac", "Fan 0"},
	{"F0Mn", "Fan 0 Min"},
	{"F1Ac", "Fan 1"},
	{"F1Mn", "Fan 1 Min"},
}

// Candidate key lists for package temperatures, tried in order.
var (
	CPUTempKeys = []string{"TC0P", "TC0D"}
	GPUTempKeys = []string{"TG0P", "TG0D", "TCGC"}
)

// Client reads sensor key groups, opening one connection per group.
type Client struct {
	Open OpenFunc
}

// NewClient returns a client against the given device path.
func NewClient(device string) *Client {
	if device == "" {
		device = DefaultDevice
	}
	return &Client{Open: func() (Conn, error) { return OpenDevice(device) }}
}

// Temperatures reads the thermal key group. A nil result means the
// service was unreachable; an empty one means no key answered.
func (c *Client) Temperatures() []model.Reading {
	return c.readGroup(ThermalKeys, DecodeSP78)
}

// Fans reads the fan key group.
func (c *Client) Fans() []model.Reading {
	return c.readGroup(FanKeys, DecodeFPE2)
}

// Temperature tries keys in order over one connection and returns the
// first valid sp78 reading.
func (c *Client) Temperature(keys ...string) (float64, bool) {
	conn, err := c.Open()
	if err != nil {
		return 0, false
	}
	defer conn.Close()
	for _, key := range keys {
		raw, err := readKey(conn, key)
		if err != nil {
			continue
		}
		if v, ok := DecodeSP78(raw); ok {
			return v, true
		}
	}
	return 0, false
}

// Reachable reports whether the service connection can be opened.
func (c *Client) Reachable() bool {
	conn, err := c.Open()
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

func (c *Client) readGroup(keys []KeyName, dec Decoder) []model.Reading {
	conn, err := c.Open()
	if err != nil {
		return nil
	}
	defer conn.Close()
	out := make([]model.Reading, 0, len(keys))
	for _, kn := range keys {
		raw, err := readKey(conn, kn.Key)
		if err != nil {
			continue
		}
		if v, ok := dec(raw); ok {
			out = append(out, model.Reading{Name: kn.Name, Value: v})
		}
	}
	return out
}

func readKey(conn Conn, key string) (uint16, error) {
	req, err := EncodeReadRequest(key)
	if err != nil {
		return 0, err
	}
	resp, err := conn.Exchange(req)
	if err != nil {
		return 0, err
	}
	return RawValue(resp), nil
}
