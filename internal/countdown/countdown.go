// Package countdown provides a wall-clock countdown that is advanced by
// explicit ticks and may be re-armed from inside its own expiry callback.
package countdown

import "time"

// Countdown tracks a single armed expiry. It is not safe for concurrent
// use; callers serialise access.
type Countdown struct {
	clock    Clock
	onExpire func()

	duration   time.Duration
	expiry     time.Time
	remaining  time.Duration
	running    bool
	generation uint64
}

// New creates an unarmed countdown. onExpire may be nil.
func New(clock Clock, onExpire func()) *Countdown {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Countdown{clock: clock, onExpire: onExpire}
}

// Arm replaces any previous countdown with one of length d.
func (c *Countdown) Arm(d time.Duration, autoStart bool) {
	if d < 0 {
		d = 0
	}
	c.generation++
	c.duration = d
	c.remaining = d
	c.running = false
	c.expiry = time.Time{}
	if autoStart {
		c.Start()
	}
}

// ArmUntil replaces any previous countdown with one that expires at expiry.
func (c *Countdown) ArmUntil(expiry time.Time, autoStart bool) {
	c.Arm(expiry.Sub(c.clock.Now()), autoStart)
}

// Start begins counting down from the remaining duration.
// It returns false if the countdown is already running or has nothing left.
func (c *Countdown) Start() bool {
	if c.running || c.remaining <= 0 {
		return false
	}
	c.running = true
	c.expiry = c.clock.Now().Add(c.remaining)
	return true
}

// Pause halts the countdown and keeps the exact remaining duration.
// If the expiry has already passed without a Tick, Pause fires the expiry
// instead and returns false, so a countdown never pauses at zero.
func (c *Countdown) Pause() bool {
	if !c.running {
		return false
	}
	remaining := c.remainingAt(c.clock.Now())
	if remaining <= 0 {
		c.Tick()
		return false
	}
	c.remaining = remaining
	c.running = false
	c.expiry = time.Time{}
	return true
}

// Resume restarts a paused countdown from the remaining duration.
func (c *Countdown) Resume() bool {
	return c.Start()
}

// Tick recomputes the remaining time from the wall-clock expiry. When the
// expiry has been reached while running, the countdown stops at zero and
// onExpire runs exactly once. Tick does not touch the countdown after the
// callback returns, so the callback may call Arm.
func (c *Countdown) Tick() {
	if !c.running {
		return
	}
	now := c.clock.Now()
	c.remaining = c.remainingAt(now)
	if c.remaining > 0 {
		return
	}
	c.running = false
	c.remaining = 0
	c.expiry = time.Time{}
	if c.onExpire != nil {
		c.onExpire()
	}
}

func (c *Countdown) remainingAt(now time.Time) time.Duration {
	if !c.running {
		return c.remaining
	}
	left := c.expiry.Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

// Remaining returns the time left as of now.
func (c *Countdown) Remaining() time.Duration {
	return c.remainingAt(c.clock.Now())
}

// SecondsRemaining returns the time left rounded up to whole seconds.
func (c *Countdown) SecondsRemaining() int {
	return int((c.Remaining() + time.Second - 1) / time.Second)
}

// Running reports whether the countdown is ticking.
func (c *Countdown) Running() bool { return c.running }

// Duration returns the length the countdown was last armed with.
func (c *Countdown) Duration() time.Duration { return c.duration }

// Generation increments on every Arm.
func (c *Countdown) Generation() uint64 { return c.generation }
