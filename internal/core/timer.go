package core

import "time"

// Throttle gates work to a steady rate against a caller-supplied clock.
// Frame callbacks hand in a monotonic timestamp, so the throttle never reads
// the wall clock itself and stays deterministic under test.
type Throttle struct {
	step   time.Duration
	last   time.Duration
	primed bool
}

// NewThrottle constructs a Throttle allowing rate events per second.
func NewThrottle(rate int) *Throttle {
	t := &Throttle{}
	t.SetRate(rate)
	return t
}

// SetRate changes the allowed rate. Non-positive rates fall back to 30.
func (t *Throttle) SetRate(rate int) {
	if rate <= 0 {
		rate = 30
	}
	t.step = time.Second / time.Duration(rate)
}

// Step returns the minimum spacing between two permitted events.
func (t *Throttle) Step() time.Duration { return t.step }

// Ready reports whether work may run at now. The first call always passes.
func (t *Throttle) Ready(now time.Duration) bool {
	if t.primed && now-t.last < t.step {
		return false
	}
	t.last = now
	t.primed = true
	return true
}

// Reset forgets the last permitted timestamp.
func (t *Throttle) Reset() {
	t.last = 0
	t.primed = false
}

// Debounce fires once after input has been quiet for a fixed period.
type Debounce struct {
	quiet   time.Duration
	last    time.Duration
	pending bool
}

// NewDebounce constructs a Debounce with the given quiet period.
func NewDebounce(quiet time.Duration) *Debounce {
	if quiet < 0 {
		quiet = 0
	}
	return &Debounce{quiet: quiet}
}

// Poke records an input at now and restarts the quiet period.
func (d *Debounce) Poke(now time.Duration) {
	d.last = now
	d.pending = true
}

// Pending reports whether a poke is waiting to fire.
func (d *Debounce) Pending() bool { return d.pending }

// Due reports whether the quiet period has elapsed since the last poke. A true
// result consumes the pending poke.
func (d *Debounce) Due(now time.Duration) bool {
	if !d.pending || now-d.last < d.quiet {
		return false
	}
	d.pending = false
	return true
}

// Cancel drops any pending poke.
func (d *Debounce) Cancel() { d.pending = false }
