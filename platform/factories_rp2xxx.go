//go:build rp2040 || rp2350

package platform

import (
	"errors"
	"strconv"

	"machine"

	"tinygo.org/x/drivers"
)

// OpenI2C configures i2c0 or i2c1 with board-default pins at 400 kHz;
// "" selects i2c0.
func OpenI2C(name string) (drivers.I2C, error) {
	switch name {
	case "", "i2c0":
		b := machine.I2C0
		err := b.Configure(machine.I2CConfig{
			Frequency: 400 * machine.KHz,
			SDA:       machine.I2C0_SDA_PIN,
			SCL:       machine.I2C0_SCL_PIN,
		})
		return b, err
	case "i2c1":
		b := machine.I2C1
		err := b.Configure(machine.I2CConfig{
			Frequency: 400 * machine.KHz,
			SDA:       machine.I2C1_SDA_PIN,
			SCL:       machine.I2C1_SCL_PIN,
		})
		return b, err
	}
	return nil, errors.New("platform: unknown i2c bus: " + name)
}

// StatusPin maps a logical GP number ("25") straight to machine.Pin, matching
// Pico numbering.
func StatusPin(name string) (Pin, error) {
	n, err := strconv.Atoi(name)
	if err != nil || n < 0 || n > 28 {
		return nil, errors.New("platform: bad pin: " + name)
	}
	return &rp2Pin{p: machine.Pin(n)}, nil
}

type rp2Pin struct {
	p machine.Pin
}

func (r *rp2Pin) ConfigureOutput(initial bool) error {
	r.p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	r.p.Set(initial)
	return nil
}

func (r *rp2Pin) Set(level bool) { r.p.Set(level) }

func (r *rp2Pin) Toggle() {
	if r.p.Get() {
		r.p.Low()
	} else {
		r.p.High()
	}
}
