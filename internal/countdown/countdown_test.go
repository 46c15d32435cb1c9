package countdown

import (
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

func TestCountdown_ArmIdle(t *testing.T) {
	clock := newFakeClock()
	c := New(clock, nil)

	c.Arm(time.Minute, false)
	clock.Advance(10 * time.Second)
	c.Tick()

	if c.Running() {
		t.Error("armed countdown should not run without autoStart")
	}
	if got := c.Remaining(); got != time.Minute {
		t.Errorf("Remaining() = %v, want %v", got, time.Minute)
	}
	if got := c.Duration(); got != time.Minute {
		t.Errorf("Duration() = %v, want %v", got, time.Minute)
	}
}

func TestCountdown_ExpiresOnce(t *testing.T) {
	clock := newFakeClock()
	fired := 0
	c := New(clock, func() { fired++ })

	c.Arm(3*time.Second, true)
	for i := 0; i < 10; i++ {
		clock.Advance(time.Second)
		c.Tick()
	}

	if fired != 1 {
		t.Errorf("onExpire fired %d times, want 1", fired)
	}
	if c.Running() {
		t.Error("countdown should stop after expiry")
	}
	if got := c.Remaining(); got != 0 {
		t.Errorf("Remaining() = %v, want 0", got)
	}
}

func TestCountdown_NoDrift(t *testing.T) {
	clock := newFakeClock()
	c := New(clock, nil)

	c.Arm(time.Minute, true)
	clock.Advance(1500 * time.Millisecond)
	c.Tick()
	clock.Advance(1500 * time.Millisecond)
	c.Tick()

	if got := c.Remaining(); got != 57*time.Second {
		t.Errorf("Remaining() = %v, want %v", got, 57*time.Second)
	}
	if got := c.SecondsRemaining(); got != 57 {
		t.Errorf("SecondsRemaining() = %v, want 57", got)
	}
}

func TestCountdown_PauseResumePreservesRemaining(t *testing.T) {
	clock := newFakeClock()
	c := New(clock, nil)

	c.Arm(time.Minute, true)
	clock.Advance(12*time.Second + 300*time.Millisecond)

	if !c.Pause() {
		t.Fatal("Pause() = false, want true")
	}
	before := c.Remaining()
	if c.Pause() {
		t.Error("second Pause() should be a no-op")
	}

	clock.Advance(time.Hour)
	c.Tick()
	if got := c.Remaining(); got != before {
		t.Errorf("Remaining() while paused = %v, want %v", got, before)
	}

	if !c.Resume() {
		t.Fatal("Resume() = false, want true")
	}
	if got := c.Remaining(); got != before {
		t.Errorf("Remaining() after resume = %v, want %v", got, before)
	}
	if c.Resume() {
		t.Error("Resume() while running should be a no-op")
	}
}

func TestCountdown_PauseAfterDeadlineExpires(t *testing.T) {
	clock := newFakeClock()
	fired := 0
	c := New(clock, func() { fired++ })

	c.Arm(time.Minute, true)
	clock.Advance(time.Minute + 300*time.Millisecond)

	if c.Pause() {
		t.Error("Pause() past the deadline = true, want false")
	}
	if fired != 1 {
		t.Errorf("onExpire calls = %d, want 1", fired)
	}
	if c.Running() {
		t.Error("countdown should have stopped at expiry")
	}
	if got := c.Remaining(); got != 0 {
		t.Errorf("Remaining() = %v, want 0", got)
	}

	c.Tick()
	if fired != 1 {
		t.Errorf("onExpire calls after Tick = %d, want 1", fired)
	}
}

func TestCountdown_RearmFromCallback(t *testing.T) {
	clock := newFakeClock()
	var c *Countdown
	fired := 0
	c = New(clock, func() {
		fired++
		c.Arm(2*time.Second, true)
	})

	c.Arm(time.Second, true)
	gen := c.Generation()

	clock.Advance(time.Second)
	c.Tick()

	if fired != 1 {
		t.Fatalf("onExpire fired %d times, want 1", fired)
	}
	if !c.Running() {
		t.Error("countdown re-armed in callback should be running")
	}
	if got := c.Remaining(); got != 2*time.Second {
		t.Errorf("Remaining() = %v, want %v", got, 2*time.Second)
	}
	if c.Generation() != gen+1 {
		t.Errorf("Generation() = %v, want %v", c.Generation(), gen+1)
	}

	clock.Advance(time.Second)
	c.Tick()
	if fired != 1 {
		t.Errorf("re-armed countdown fired early: %d", fired)
	}
	clock.Advance(time.Second)
	c.Tick()
	if fired != 2 {
		t.Errorf("onExpire fired %d times, want 2", fired)
	}
}

func TestCountdown_RearmSupersedesPending(t *testing.T) {
	clock := newFakeClock()
	fired := 0
	c := New(clock, func() { fired++ })

	c.Arm(time.Second, true)
	c.Arm(time.Minute, false)

	clock.Advance(5 * time.Second)
	c.Tick()

	if fired != 0 {
		t.Errorf("superseded countdown fired %d times", fired)
	}
	if got := c.Remaining(); got != time.Minute {
		t.Errorf("Remaining() = %v, want %v", got, time.Minute)
	}
}

func TestCountdown_ArmUntil(t *testing.T) {
	clock := newFakeClock()
	c := New(clock, nil)

	c.ArmUntil(clock.Now().Add(90*time.Second), false)
	if got := c.Duration(); got != 90*time.Second {
		t.Errorf("Duration() = %v, want %v", got, 90*time.Second)
	}

	c.ArmUntil(clock.Now().Add(-time.Second), true)
	if c.Running() {
		t.Error("countdown armed in the past should not start")
	}
}

func TestCountdown_StartWithNothingLeft(t *testing.T) {
	c := New(newFakeClock(), nil)
	if c.Start() {
		t.Error("Start() on unarmed countdown should be a no-op")
	}
}
