// Package lp5817 provides a driver for the TI LP5817 three-channel LED
// intensity controller, used here to drive a single RGB indicator.
//
// Bring-up is a fixed register sequence (chip enable, current limits, output
// enable, all channels dark) latched into active hardware state by a final
// UPDATE command write. The sequence deliberately continues past individual
// write failures and reports an aggregate result: the chip is left partially
// configured rather than retried or rolled back.
//
// NOTE: the board routes the chip outputs as OUT0=green, OUT1=blue, OUT2=red.
// SetColor applies that remap. Do not "correct" it to the datasheet ordering;
// the swap is in the copper.
package lp5817

import (
	"errors"
	"strconv"

	"tinygo.org/x/drivers"
)

// Registers.
const (
	regChipEnable  = 0x00
	regMaxCurrent  = 0x01
	regOutEnable   = 0x02
	regUpdate      = 0x0f
	regDotCurrent0 = 0x14
	regDotCurrent1 = 0x15
	regDotCurrent2 = 0x16
	regIntensity0  = 0x18 // OUT0: green
	regIntensity1  = 0x19 // OUT1: blue
	regIntensity2  = 0x1a // OUT2: red
)

// Command values.
const (
	cmdChipEnable = 0x01
	cmdMaxCurrent = 0x01
	cmdOutEnable  = 0x07
	cmdUpdate     = 0x55
)

// dotCurrent is the relative current trim applied to each channel during
// Configure.
var dotCurrent = [3]uint8{128, 128, 128}

// ErrNotReady is returned by Configure when no bus endpoint is bound. No
// writes are issued in that case.
var ErrNotReady = errors.New("lp5817: bus not ready")

// IncompleteError is the aggregate result of a bring-up where one or more
// register writes failed. All remaining writes were still issued; the chip
// may be partially configured and partially usable.
type IncompleteError struct {
	Failed int // number of register writes that failed
}

func (e *IncompleteError) Error() string {
	return "lp5817: bring-up incomplete, " + strconv.Itoa(e.Failed) + " write(s) failed"
}

// Device wraps an I2C connection to an LP5817 controller.
type Device struct {
	bus  drivers.I2C
	addr uint16
	w    [2]byte // reuse buffer to avoid allocations
}

// New creates a new LP5817 connection. The I2C bus must already be
// configured, and the device address is fixed by board wiring. This function
// only creates the Device object; it does not touch the chip.
func New(bus drivers.I2C, addr uint16) *Device {
	return &Device{bus: bus, addr: addr}
}

// Configure brings the chip from reset into a programmable, output-enabled
// state: chip enable, chip-level max current, per-channel dot current,
// output enable, all channels to zero, then the UPDATE latch. Ten register
// writes, always in that order, always all attempted. The return value is
// nil or *IncompleteError; inspect Failed for how much of the sequence took.
func (d *Device) Configure() error {
	if d.bus == nil {
		return ErrNotReady
	}

	failed := 0
	if err := d.writeReg(regChipEnable, cmdChipEnable); err != nil {
		failed++
	}
	if err := d.writeReg(regMaxCurrent, cmdMaxCurrent); err != nil {
		failed++
	}
	for i := uint8(0); i < 3; i++ {
		if err := d.writeReg(regDotCurrent0+i, dotCurrent[i]); err != nil {
			failed++
		}
	}
	if err := d.writeReg(regOutEnable, cmdOutEnable); err != nil {
		failed++
	}

	n, _ := d.setChannels(0, 0, 0)
	failed += n

	// UPDATE must be written last; it latches everything above.
	if err := d.writeReg(regUpdate, cmdUpdate); err != nil {
		failed++
	}

	if failed > 0 {
		return &IncompleteError{Failed: failed}
	}
	return nil
}

// SetColor writes one 8-bit intensity per channel, always in the order red,
// green, blue, with the board remap applied. Values pass through unscaled;
// the full 0–255 domain is valid. All three writes are issued even when an
// earlier one fails; the first error is returned.
func (d *Device) SetColor(r, g, b uint8) error {
	_, err := d.setChannels(r, g, b)
	return err
}

// setChannels issues the three intensity writes and reports how many failed
// along with the first error.
func (d *Device) setChannels(r, g, b uint8) (failed int, first error) {
	for _, wr := range [3][2]uint8{
		{regIntensity2, r}, // logical red lands on OUT2
		{regIntensity0, g}, // logical green lands on OUT0
		{regIntensity1, b}, // logical blue lands on OUT1
	} {
		if err := d.writeReg(wr[0], wr[1]); err != nil {
			failed++
			if first == nil {
				first = err
			}
		}
	}
	return failed, first
}

func (d *Device) writeReg(reg, val uint8) error {
	d.w[0], d.w[1] = reg, val
	return d.bus.Tx(d.addr, d.w[:], nil)
}
