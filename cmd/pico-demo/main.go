//go:build rp2040

// Command pico-demo runs the RGB indicator demo on a Raspberry Pi Pico with
// the LP5817 on i2c0. Progress is printed to the console and mirrored on
// uart0 so a bare board without USB can still be watched.
package main

import (
	"context"
	"machine"
	"strconv"
	"time"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"

	"rgbindicator-go/drivers/lp5817"
	"rgbindicator-go/indicator"
	"rgbindicator-go/platform"
)

// Board wiring.
const (
	rgbAddr   = 0x2c // LP5817 address, set by the board
	hxrqstPin = "16"
	statusPin = "25" // onboard LED
	loopDelay = 250 * time.Millisecond
)

var (
	red   = indicator.RGB{R: 100}
	green = indicator.RGB{G: 100}
	blue  = indicator.RGB{B: 100}
)

// out mirrors console prints to uart0.
type out struct {
	u *uartx.UART
}

func (o *out) println(a ...string) {
	line := ""
	for i, s := range a {
		if i > 0 {
			line += " "
		}
		line += s
	}
	println(line)
	if o.u != nil {
		_, _ = o.u.Write([]byte(line + "\r\n"))
	}
}

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)

	con := &out{u: uartx.UART0}
	_ = con.u.Configure(uartx.UARTConfig{
		BaudRate: 115200,
		TX:       machine.UART0_TX_PIN,
		RX:       machine.UART0_RX_PIN,
	})
	con.println("pico-demo: boot")

	bus, err := platform.OpenI2C("i2c0")
	if err != nil {
		con.println("pico-demo: FAIL: i2c:", err.Error())
		return
	}
	hxrqst, err := platform.StatusPin(hxrqstPin)
	if err != nil {
		con.println("pico-demo: FAIL:", err.Error())
		return
	}
	status, err := platform.StatusPin(statusPin)
	if err != nil {
		con.println("pico-demo: FAIL:", err.Error())
		return
	}
	_ = hxrqst.ConfigureOutput(true)
	_ = status.ConfigureOutput(true)

	ind := indicator.New(lp5817.New(bus, rgbAddr))
	if err := ind.Start(context.Background()); err != nil {
		con.println("pico-demo: bring-up incomplete:", err.Error())
	}

	con.println("pico-demo: color sweep")
	for _, c := range []indicator.RGB{red, green, blue} {
		ind.SetColor(c)
		time.Sleep(time.Second)
	}
	ind.Off()

	con.println("pico-demo: counted flash, 3 red pulses")
	ind.Flash(red, 100*time.Millisecond, 200*time.Millisecond, 3)
	for ind.IsBusy() {
		time.Sleep(loopDelay)
	}

	con.println("pico-demo: continuous green flash")
	ind.FlashContinuous(green, 50*time.Millisecond, 50*time.Millisecond)

	loops := 0
	for {
		hxrqst.Toggle()
		status.Toggle()
		loops++
		con.println("loops:", strconv.Itoa(loops))
		time.Sleep(loopDelay)
	}
}
