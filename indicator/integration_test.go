package indicator

import (
	"context"
	"sync"
	"testing"
	"time"

	"rgbindicator-go/drivers/lp5817"
)

// txBus is a thread-safe drivers.I2C fake: the flash worker writes from its
// own goroutine.
type txBus struct {
	mu     sync.Mutex
	writes [][2]uint8
}

func (b *txBus) Tx(addr uint16, w, r []byte) error {
	b.mu.Lock()
	b.writes = append(b.writes, [2]uint8{w[0], w[1]})
	b.mu.Unlock()
	return nil
}

func (b *txBus) snapshot() [][2]uint8 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([][2]uint8(nil), b.writes...)
}

// TestIndicator_DrivesLP5817 runs a counted flash over the real driver and
// checks the register traffic end to end: bring-up, then strictly
// alternating intensity groups with the board remap intact.
func TestIndicator_DrivesLP5817(t *testing.T) {
	bus := &txBus{}
	dev := lp5817.New(bus, 0x2c)
	ind, mt := newTestIndicator(dev)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := ind.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}

	const bringUp = 10 // chip-en, max-current, dot ×3, out-en, zero color ×3, update

	ind.Flash(RGB{R: 255}, 10*time.Millisecond, 10*time.Millisecond, 2)
	mt.mustFire(t) // on -> off
	mt.mustFire(t) // off -> on
	mt.mustFire(t) // on -> idle
	waitIdle(t, ind)

	got := bus.snapshot()
	// Bring-up plus four color groups of three writes each.
	if len(got) != bringUp+4*3 {
		t.Fatalf("got %d writes, want %d: %#v", len(got), bringUp+4*3, got)
	}
	want := [][2]uint8{
		{0x1a, 255}, {0x18, 0}, {0x19, 0}, // on: red lands on INTENSITY2
		{0x1a, 0}, {0x18, 0}, {0x19, 0}, // off
		{0x1a, 255}, {0x18, 0}, {0x19, 0}, // on
		{0x1a, 0}, {0x18, 0}, {0x19, 0}, // off
	}
	for i, w := range want {
		if got[bringUp+i] != w {
			t.Fatalf("write %d: got {%#02x %#02x}, want {%#02x %#02x}",
				bringUp+i, got[bringUp+i][0], got[bringUp+i][1], w[0], w[1])
		}
	}
}
