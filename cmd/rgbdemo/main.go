// Command rgbdemo exercises the RGB indicator from a host board (e.g. a
// Raspberry Pi with the LP5817 on I2C): a solid color sweep, a counted
// flash, then a continuous flash, while toggling two status pins and
// printing a loop counter.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"rgbindicator-go/drivers/lp5817"
	"rgbindicator-go/indicator"
	"rgbindicator-go/platform"
)

const loopDelay = 250 * time.Millisecond

var (
	busName = flag.String("bus", "", "periph I2C bus name (empty = first available)")
	addr    = flag.Uint("addr", 0, "LP5817 I2C address (required, set by board wiring)")
	hxPin   = flag.String("hxrqst", "GPIO17", "host-request status pin")
	pgPin   = flag.String("pwrgood", "GPIO27", "power-good status pin")
)

var (
	red   = indicator.RGB{R: 100}
	green = indicator.RGB{G: 100}
	blue  = indicator.RGB{B: 100}
)

func main() {
	flag.Parse()
	if *addr == 0 {
		log.Fatal("rgbdemo: -addr is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	bus, err := platform.OpenI2C(*busName)
	if err != nil {
		log.Fatalf("rgbdemo: open i2c: %v", err)
	}
	hxrqst, err := platform.StatusPin(*hxPin)
	if err != nil {
		log.Fatalf("rgbdemo: %v", err)
	}
	pwrgood, err := platform.StatusPin(*pgPin)
	if err != nil {
		log.Fatalf("rgbdemo: %v", err)
	}
	if err := hxrqst.ConfigureOutput(true); err != nil {
		log.Fatalf("rgbdemo: configure hxrqst: %v", err)
	}
	if err := pwrgood.ConfigureOutput(true); err != nil {
		log.Fatalf("rgbdemo: configure pwrgood: %v", err)
	}

	ind := indicator.New(lp5817.New(bus, uint16(*addr)))
	if err := ind.Start(ctx); err != nil {
		// Partial configuration is accepted; keep going and see what lights.
		log.Printf("rgbdemo: bring-up incomplete: %v", err)
	}

	log.Print("rgbdemo: color sweep")
	for _, c := range []indicator.RGB{red, green, blue} {
		ind.SetColor(c)
		sleep(ctx, time.Second)
	}
	ind.Off()

	log.Print("rgbdemo: counted flash, 3 red pulses")
	ind.Flash(red, 100*time.Millisecond, 200*time.Millisecond, 3)
	for ind.IsBusy() && ctx.Err() == nil {
		sleep(ctx, loopDelay)
	}

	log.Print("rgbdemo: continuous green flash, interrupt to stop")
	ind.FlashContinuous(green, 50*time.Millisecond, 50*time.Millisecond)

	loops := 0
	tick := time.NewTicker(loopDelay)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			ind.Cancel()
			log.Printf("rgbdemo: done after %d loops, drops=%d writeErrs=%d",
				loops, ind.Drops(), ind.WriteErrs())
			return
		case <-tick.C:
			hxrqst.Toggle()
			pwrgood.Toggle()
			loops++
			log.Printf("loops: %d busy=%v", loops, ind.IsBusy())
		}
	}
}

func sleep(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
