package ports

import (
	"context"

	"github.com/xvierd/pomodoro-timer/internal/domain"
)

// TimerCommand represents a user action during timer operation.
type TimerCommand string

const (
	// CmdToggle starts, pauses or resumes depending on the current phase.
	CmdToggle TimerCommand = "toggle"

	// CmdStart starts an idle timer.
	CmdStart TimerCommand = "start"

	// CmdPause pauses the timer.
	CmdPause TimerCommand = "pause"

	// CmdResume resumes a paused timer.
	CmdResume TimerCommand = "resume"

	// CmdReset returns the session to the first work phase.
	CmdReset TimerCommand = "reset"

	// CmdCycleNotification switches between sound and desktop notifications.
	CmdCycleNotification TimerCommand = "cycle_notification"

	// CmdCycleBGM switches to the next background audio mode.
	CmdCycleBGM TimerCommand = "cycle_bgm"

	// CmdToggleAutoStart flips the auto-start setting.
	CmdToggleAutoStart TimerCommand = "toggle_autostart"

	// CmdQuit exits the application.
	CmdQuit TimerCommand = "quit"
)

// Timer is the combined interface for TUI timer operations.
// This is a driving port (called by the application layer).
type Timer interface {
	// Run starts the timer interface and blocks until completion.
	Run(ctx context.Context, initial domain.Snapshot) error

	// UpdateState pushes a snapshot to a running interface so transitions
	// show without waiting for the next poll.
	UpdateState(snap domain.Snapshot)

	// SetFetchState sets a function that returns the current snapshot.
	// It is called on each tick to refresh the display.
	SetFetchState(fetch func() domain.Snapshot)

	// SetCommandCallback sets a function to call when commands are received.
	SetCommandCallback(callback func(cmd TimerCommand) error)

	// SetBranch sets the git branch shown in the header.
	SetBranch(branch string)
}
