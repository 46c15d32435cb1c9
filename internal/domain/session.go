package domain

import (
	"fmt"
	"time"
)

// Snapshot captures the session at a point in time for display.
type Snapshot struct {
	SessionID      string
	Mode           Mode
	Phase          Phase
	CompletedCount int
	Goal           int
	Remaining      time.Duration
	Duration       time.Duration
	Settings       Settings
	Timestamp      time.Time
}

// IsPaused returns true if the countdown was explicitly paused.
func (s Snapshot) IsPaused() bool {
	return s.Phase == PhasePaused
}

// IsRunning returns true if the countdown is ticking.
func (s Snapshot) IsRunning() bool {
	return s.Phase == PhaseRunning
}

// CanStart returns true if Start would begin the countdown.
func (s Snapshot) CanStart() bool {
	return s.Phase == PhaseIdle
}

// RemainingSeconds returns the remaining time rounded up to whole seconds.
func (s Snapshot) RemainingSeconds() int {
	return int((s.Remaining + time.Second - 1) / time.Second)
}

// Progress returns the completion percentage of the current phase (0.0 to 1.0).
func (s Snapshot) Progress() float64 {
	if s.Phase == PhaseDone {
		return 1
	}
	if s.Duration <= 0 {
		return 0
	}
	progress := float64(s.Duration-s.Remaining) / float64(s.Duration)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

// FormatClock formats a duration as MM:SS, rounding partial seconds up.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
