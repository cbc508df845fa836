// Package indicator drives a tri-color LED through a bus-attached intensity
// controller and sequences timed flash patterns (solid color, counted flash,
// continuous flash, cancellation) without blocking the caller for the length
// of the sequence.
//
// The flash scheduler splits work across two contexts. The timer expiry
// callback is treated as a constrained context: it performs no state
// mutation and no bus I/O, only a non-blocking handoff into a single-slot
// tick queue. One worker goroutine consumes ticks and is the sole mutator of
// sequence state while a sequence runs. Facade calls share the same mutex,
// so the three channel writes of one color change always land as one group.
package indicator

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Controller is the chip-facing surface the indicator drives. Implemented by
// *lp5817.Device.
type Controller interface {
	// Configure brings the chip into an output-enabled state. Partial
	// configuration is reported, not rolled back.
	Configure() error
	// SetColor writes one 8-bit intensity per channel, unscaled.
	SetColor(r, g, b uint8) error
}

// RGB holds one 8-bit intensity per channel. Values pass through to the
// controller unscaled; there is no enforced relationship to perceptual
// brightness.
type RGB struct {
	R, G, B uint8
}

type phase uint8

const (
	phaseIdle phase = iota
	phaseOn
	phaseOff
)

// Timer is the single-shot flash timer. Reset arms it for one expiry; Stop
// guarantees no further expiries once it returns. Production code uses the
// wall clock; tests fire expiries by hand.
type Timer interface {
	Reset(d time.Duration)
	Stop()
}

// TimerFactory builds a stopped Timer whose expiries call expire. The expire
// callback runs in the timer's own context and must not block.
type TimerFactory func(expire func()) Timer

// Config controls non-hardware behaviour. All fields are optional.
type Config struct {
	// NewTimer defaults to a time.AfterFunc-backed timer.
	NewTimer TimerFactory
}

// Indicator is one RGB indicator instance. Construct with New; no ambient
// global instance exists. The zero value is not usable.
type Indicator struct {
	ctrl Controller

	mu        sync.Mutex
	phase     phase
	pixels    RGB // color shown during the ON phase of the active sequence
	asked     uint8
	performed uint8
	onDur     time.Duration
	offDur    time.Duration
	timer     Timer

	ticks   chan struct{} // timer context -> worker, capacity 1
	stopped chan struct{}

	drops     uint32 // expiries coalesced while a tick was already pending
	writeErrs uint32 // color writes that failed and were swallowed
}

// New binds the indicator to its controller. It does not touch the chip;
// call Start.
func New(ctrl Controller, cfgs ...Config) *Indicator {
	ind := &Indicator{
		ctrl:    ctrl,
		ticks:   make(chan struct{}, 1),
		stopped: make(chan struct{}),
	}
	nt := TimerFactory(newWallTimer)
	if len(cfgs) > 0 && cfgs[0].NewTimer != nil {
		nt = cfgs[0].NewTimer
	}
	ind.timer = nt(ind.timerExpiry)
	return ind
}

// Start runs the controller bring-up and launches the flash worker, which
// exits when ctx is cancelled. A bring-up failure is logged and returned,
// but the worker still runs: the chip accepts partial configuration and the
// caller decides whether to carry on.
func (ind *Indicator) Start(ctx context.Context) error {
	err := ind.ctrl.Configure()
	if err != nil {
		println("Error: indicator: controller bring-up:", err.Error())
	}
	go ind.run(ctx)
	return err
}

// SetColor displays a solid color. The write happens synchronously on the
// caller's goroutine.
func (ind *Indicator) SetColor(c RGB) {
	ind.mu.Lock()
	ind.write(c)
	ind.mu.Unlock()
}

// SetColorFromPixels is SetColor with the channels spelled out.
func (ind *Indicator) SetColorFromPixels(r, g, b uint8) {
	ind.SetColor(RGB{R: r, G: g, B: b})
}

// Off turns the indicator off, unless a flash sequence is active: then it
// issues no write at all, so a solid-color request never fights the
// scheduler. Cancel first to stop a sequence.
func (ind *Indicator) Off() {
	ind.mu.Lock()
	if ind.phase == phaseIdle {
		ind.write(RGB{})
	}
	ind.mu.Unlock()
}

// Flash starts a flash sequence: count ON pulses of onDur, separated by
// offDur, beginning with an immediate ON write. count == 0 flashes
// continuously until Cancel. Flash returns as soon as the sequence is armed.
//
// Callers must not start a new sequence while IsBusy reports true; Cancel
// the running one first.
func (ind *Indicator) Flash(c RGB, onDur, offDur time.Duration, count uint8) {
	ind.mu.Lock()
	ind.pixels = c
	ind.onDur = onDur
	ind.offDur = offDur
	ind.asked = count // ON pulses; 0 = continuous
	ind.performed = 0
	ind.write(c)
	ind.timer.Reset(onDur)
	ind.phase = phaseOn
	ind.mu.Unlock()
}

// FlashContinuous flashes until Cancel.
func (ind *Indicator) FlashContinuous(c RGB, onDur, offDur time.Duration) {
	ind.Flash(c, onDur, offDur, 0)
}

// Cancel stops any flash sequence and turns the indicator off. Once Cancel
// returns the timer produces no further expiries, but one tick queued before
// the stop may still reach the worker; it is discarded against the idle
// phase, so at most one stale execution occurs and it issues no writes.
func (ind *Indicator) Cancel() {
	ind.mu.Lock()
	ind.timer.Stop()
	ind.phase = phaseIdle
	ind.asked = 0
	ind.performed = 0
	ind.onDur = 0
	ind.offDur = 0
	ind.write(RGB{})
	ind.mu.Unlock()
}

// IsBusy reports whether a flash sequence is underway, counted or
// continuous. It is advisory: the worker may retire the sequence right after
// it returns.
func (ind *Indicator) IsBusy() bool {
	ind.mu.Lock()
	busy := ind.phase != phaseIdle
	ind.mu.Unlock()
	return busy
}

// Drops returns how many timer expiries were coalesced because a tick was
// already pending.
func (ind *Indicator) Drops() uint32 { return atomic.LoadUint32(&ind.drops) }

// WriteErrs returns how many color writes failed and were swallowed.
func (ind *Indicator) WriteErrs() uint32 { return atomic.LoadUint32(&ind.writeErrs) }

// write issues one color change with the state lock held. Failures are
// counted and logged, never escalated: there is no way to report a dropped
// write mid-sequence and no retry.
func (ind *Indicator) write(c RGB) {
	if err := ind.ctrl.SetColor(c.R, c.G, c.B); err != nil {
		atomic.AddUint32(&ind.writeErrs, 1)
		println("Error: indicator: color write failed:", err.Error())
	}
}
