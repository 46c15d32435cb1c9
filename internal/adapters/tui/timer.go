package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/xvierd/pomodoro-timer/internal/config"
	"github.com/xvierd/pomodoro-timer/internal/domain"
	"github.com/xvierd/pomodoro-timer/internal/ports"
)

// Timer implements the ports.Timer interface using Bubbletea.
type Timer struct {
	program     *tea.Program
	theme       *config.ThemeConfig
	mu          sync.RWMutex
	branch      string
	fetchState  func() domain.Snapshot
	cmdCallback func(cmd ports.TimerCommand) error
}

// NewTimer creates a new TUI timer adapter.
func NewTimer(theme *config.ThemeConfig) *Timer {
	return &Timer{theme: theme}
}

// Run starts the timer interface and blocks until the user quits or ctx ends.
func (t *Timer) Run(ctx context.Context, initial domain.Snapshot) error {
	t.mu.Lock()
	model := NewModel(initial, t.theme)
	model.fetchState = t.fetchState
	model.commandCallback = t.cmdCallback
	model.branch = t.branch
	t.program = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	program := t.program
	t.mu.Unlock()

	_, err := program.Run()
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// SetFetchState sets the function polled on every tick.
func (t *Timer) SetFetchState(fetch func() domain.Snapshot) {
	t.mu.Lock()
	t.fetchState = fetch
	t.mu.Unlock()
}

// SetCommandCallback sets a function to call when commands are received.
// The callback should return an error if the command fails.
func (t *Timer) SetCommandCallback(callback func(cmd ports.TimerCommand) error) {
	t.mu.Lock()
	t.cmdCallback = callback
	t.mu.Unlock()
}

// SetBranch sets the git branch shown in the title.
func (t *Timer) SetBranch(branch string) {
	t.mu.Lock()
	t.branch = branch
	t.mu.Unlock()
}

// UpdateState pushes a snapshot to a running interface.
func (t *Timer) UpdateState(snap domain.Snapshot) {
	t.mu.RLock()
	program := t.program
	t.mu.RUnlock()

	if program != nil {
		program.Send(snap)
	}
}

// Ensure Timer implements ports.Timer.
var _ ports.Timer = (*Timer)(nil)

// FormatStatus renders a snapshot as one plain line for logs and
// non-interactive output.
func FormatStatus(snap domain.Snapshot) string {
	var b strings.Builder
	if snap.Phase == domain.PhaseDone {
		fmt.Fprintf(&b, "Done: %d/%d pomodoros", snap.CompletedCount, snap.Goal)
		return b.String()
	}
	fmt.Fprintf(&b, "%s %s  %s  %d/%d",
		snap.Mode.Label(),
		strings.ToLower(domain.GetPhaseLabel(snap.Phase)),
		domain.FormatClock(snap.Remaining),
		snap.CompletedCount,
		snap.Goal,
	)
	return b.String()
}
