package lp5817

import (
	"errors"
	"testing"
)

// recordI2C implements drivers.I2C and records every register write, failed
// ones included. failOn makes writes to a given register return an error.
type recordI2C struct {
	addr   uint16
	writes [][2]uint8
	failOn map[uint8]error
}

func (r *recordI2C) Tx(addr uint16, w, rd []byte) error {
	r.addr = addr
	if len(w) != 2 || len(rd) != 0 {
		return errors.New("unexpected transaction shape")
	}
	r.writes = append(r.writes, [2]uint8{w[0], w[1]})
	if err := r.failOn[w[0]]; err != nil {
		return err
	}
	return nil
}

func expectWrites(t *testing.T, got, want [][2]uint8) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d writes, want %d: %#v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("write %d: got {%#02x %#02x}, want {%#02x %#02x}",
				i, got[i][0], got[i][1], want[i][0], want[i][1])
		}
	}
}

var bringUpSequence = [][2]uint8{
	{regChipEnable, cmdChipEnable},
	{regMaxCurrent, cmdMaxCurrent},
	{regDotCurrent0, 128},
	{regDotCurrent1, 128},
	{regDotCurrent2, 128},
	{regOutEnable, cmdOutEnable},
	{regIntensity2, 0}, // red channel, zeroed
	{regIntensity0, 0}, // green
	{regIntensity1, 0}, // blue
	{regUpdate, cmdUpdate},
}

func TestConfigure_BringUpSequence(t *testing.T) {
	bus := &recordI2C{}
	d := New(bus, 0x2c)

	if err := d.Configure(); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if bus.addr != 0x2c {
		t.Fatalf("wrong address: %#x", bus.addr)
	}
	expectWrites(t, bus.writes, bringUpSequence)
}

func TestConfigure_ContinuesPastFailures(t *testing.T) {
	bus := &recordI2C{failOn: map[uint8]error{
		regDotCurrent1: errors.New("nak"),
		regOutEnable:   errors.New("nak"),
	}}
	d := New(bus, 0x2c)

	err := d.Configure()
	var inc *IncompleteError
	if !errors.As(err, &inc) {
		t.Fatalf("want *IncompleteError, got %v", err)
	}
	if inc.Failed != 2 {
		t.Fatalf("Failed = %d, want 2", inc.Failed)
	}
	// Every write is still attempted, in order, UPDATE last.
	expectWrites(t, bus.writes, bringUpSequence)
}

func TestConfigure_NoBus(t *testing.T) {
	d := New(nil, 0x2c)
	if err := d.Configure(); err != ErrNotReady {
		t.Fatalf("want ErrNotReady, got %v", err)
	}
}

func TestSetColor_ChannelRemap(t *testing.T) {
	bus := &recordI2C{}
	d := New(bus, 0x2c)

	if err := d.SetColor(1, 2, 3); err != nil {
		t.Fatalf("SetColor: %v", err)
	}
	expectWrites(t, bus.writes, [][2]uint8{
		{regIntensity2, 1},
		{regIntensity0, 2},
		{regIntensity1, 3},
	})
}

func TestSetColor_ContinuesPastFailure(t *testing.T) {
	nak := errors.New("nak")
	bus := &recordI2C{failOn: map[uint8]error{regIntensity2: nak}}
	d := New(bus, 0x2c)

	if err := d.SetColor(10, 20, 30); err != nak {
		t.Fatalf("want first write error, got %v", err)
	}
	// Green and blue are still written after red fails.
	expectWrites(t, bus.writes, [][2]uint8{
		{regIntensity2, 10},
		{regIntensity0, 20},
		{regIntensity1, 30},
	})
}
