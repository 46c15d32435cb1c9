package domain

import (
	"testing"
	"time"
)

func TestModeOf(t *testing.T) {
	tests := []struct {
		state State
		want  Mode
	}{
		{Idle{Mode: ModeWork}, ModeWork},
		{Running{Mode: ModeBreak}, ModeBreak},
		{Paused{Mode: ModeBreak, Remaining: time.Minute}, ModeBreak},
		{Done{}, ModeDone},
	}

	for _, tt := range tests {
		t.Run(string(tt.state.Phase()), func(t *testing.T) {
			if got := ModeOf(tt.state); got != tt.want {
				t.Errorf("ModeOf(%#v) = %v, want %v", tt.state, got, tt.want)
			}
		})
	}
}

func TestState_Phase(t *testing.T) {
	tests := []struct {
		state State
		want  Phase
	}{
		{Idle{Mode: ModeWork}, PhaseIdle},
		{Running{Mode: ModeWork}, PhaseRunning},
		{Paused{Mode: ModeWork}, PhasePaused},
		{Done{}, PhaseDone},
	}

	for _, tt := range tests {
		if got := tt.state.Phase(); got != tt.want {
			t.Errorf("Phase() = %v, want %v", got, tt.want)
		}
	}
}

func TestGetPhaseLabel(t *testing.T) {
	if got := GetPhaseLabel(PhaseIdle); got != "Ready" {
		t.Errorf("GetPhaseLabel(idle) = %v, want Ready", got)
	}
	if got := GetPhaseLabel(Phase("bogus")); got != "Unknown" {
		t.Errorf("GetPhaseLabel(bogus) = %v, want Unknown", got)
	}
}
