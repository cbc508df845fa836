package indicator

import (
	"context"
	"sync/atomic"
	"time"
)

// timerExpiry runs in the timer's callback context. It mutates no state and
// touches no bus: it only hands off to the worker. An expiry arriving while
// a tick is already pending is coalesced.
func (ind *Indicator) timerExpiry() {
	select {
	case ind.ticks <- struct{}{}:
	default:
		atomic.AddUint32(&ind.drops, 1)
	}
}

// run is the flash worker loop: the sole consumer of ticks and the sole
// mutator of sequence state during an active sequence.
func (ind *Indicator) run(ctx context.Context) {
	defer close(ind.stopped)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ind.ticks:
			ind.step()
		}
	}
}

// step performs one phase transition. Within a sequence, ON and OFF writes
// strictly alternate and performed only increases.
func (ind *Indicator) step() {
	ind.mu.Lock()
	defer ind.mu.Unlock()

	switch ind.phase {
	case phaseOn:
		// ON pulse finished: go dark and decide whether the sequence is done.
		ind.write(RGB{})
		ind.performed++
		if ind.performed < ind.asked || ind.asked == 0 {
			ind.timer.Reset(ind.offDur)
			ind.phase = phaseOff
		} else {
			ind.asked = 0
			ind.performed = 0
			ind.onDur = 0
			ind.offDur = 0
			ind.phase = phaseIdle
		}
	case phaseOff:
		// Same guard as the ON exit: continuous sequences (asked == 0)
		// re-enter the ON phase here too.
		if ind.performed < ind.asked || ind.asked == 0 {
			ind.write(ind.pixels)
			ind.timer.Reset(ind.onDur)
			ind.phase = phaseOn
		}
	default:
		// Stale tick from a timer stopped by Cancel. Discard.
	}
}

// newWallTimer returns a stopped single-shot timer backed by time.AfterFunc.
// The expiry runs on the runtime's timer goroutine, which is exactly the
// constrained context timerExpiry is written for.
func newWallTimer(expire func()) Timer {
	t := time.AfterFunc(time.Hour, expire)
	t.Stop()
	return wallTimer{t: t}
}

type wallTimer struct{ t *time.Timer }

func (w wallTimer) Reset(d time.Duration) { w.t.Reset(d) }
func (w wallTimer) Stop()                 { w.t.Stop() }
