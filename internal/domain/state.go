package domain

import "time"

// Phase is the run state of the countdown within a mode.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseRunning Phase = "running"
	PhasePaused  Phase = "paused"
	PhaseDone    Phase = "done"
)

// State is the session run state. It is one of Idle, Running, Paused or Done,
// so combinations such as a paused finished session cannot be expressed.
type State interface {
	Phase() Phase
	isState()
}

// Idle is an armed countdown that has not been started since it was armed.
type Idle struct {
	Mode Mode
}

// Running is a countdown that is ticking.
type Running struct {
	Mode Mode
}

// Paused is a countdown halted by the user with time left on it.
type Paused struct {
	Mode      Mode
	Remaining time.Duration
}

// Done is the terminal state reached when the goal is met.
type Done struct{}

func (Idle) Phase() Phase    { return PhaseIdle }
func (Running) Phase() Phase { return PhaseRunning }
func (Paused) Phase() Phase  { return PhasePaused }
func (Done) Phase() Phase    { return PhaseDone }

func (Idle) isState()    {}
func (Running) isState() {}
func (Paused) isState()  {}
func (Done) isState()    {}

// ModeOf returns the mode a state belongs to.
func ModeOf(s State) Mode {
	switch st := s.(type) {
	case Idle:
		return st.Mode
	case Running:
		return st.Mode
	case Paused:
		return st.Mode
	default:
		return ModeDone
	}
}

// GetPhaseLabel returns a human-readable label for the phase.
func GetPhaseLabel(p Phase) string {
	switch p {
	case PhaseIdle:
		return "Ready"
	case PhaseRunning:
		return "Running"
	case PhasePaused:
		return "Paused"
	case PhaseDone:
		return "Done"
	default:
		return "Unknown"
	}
}
