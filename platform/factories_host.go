//go:build !rp2040 && !rp2350

package platform

import (
	"errors"
	"sync"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
	"tinygo.org/x/drivers"
)

var (
	hostOnce sync.Once
	hostErr  error
)

func initHost() error {
	hostOnce.Do(func() {
		_, hostErr = host.Init()
	})
	return hostErr
}

// OpenI2C opens a host I2C bus by periph name; "" selects the first
// available bus. periph's i2c.Bus satisfies drivers.I2C directly.
func OpenI2C(name string) (drivers.I2C, error) {
	if err := initHost(); err != nil {
		return nil, err
	}
	b, err := i2creg.Open(name)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// StatusPin resolves a named host GPIO (e.g. "GPIO17") as an output pin.
func StatusPin(name string) (Pin, error) {
	if err := initHost(); err != nil {
		return nil, err
	}
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, errors.New("platform: no such pin: " + name)
	}
	return &hostPin{p: p}, nil
}

type hostPin struct {
	p     gpio.PinIO
	level bool
}

func (h *hostPin) ConfigureOutput(initial bool) error {
	h.level = initial
	return h.p.Out(gpio.Level(initial))
}

func (h *hostPin) Set(level bool) {
	h.level = level
	_ = h.p.Out(gpio.Level(level))
}

func (h *hostPin) Toggle() { h.Set(!h.level) }
