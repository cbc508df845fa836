// Package platform supplies board access for the demo programs: the I2C bus
// the LP5817 hangs off and plain output pins for status LEDs. Host builds go
// through periph.io; RP2 builds use the machine package. The indicator
// library itself never imports this package.
package platform

// Pin is a digital output pin.
type Pin interface {
	ConfigureOutput(initial bool) error
	Set(level bool)
	Toggle()
}
