// Package notification provides sound and desktop notifications.
package notification

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gen2brain/beeep"

	"github.com/xvierd/pomodoro-timer/internal/config"
	"github.com/xvierd/pomodoro-timer/internal/domain"
	"github.com/xvierd/pomodoro-timer/internal/ports"
)

// Notifier announces transitions with a beep or a desktop notification.
// Delivery happens on a background goroutine. A delivery method that fails
// once is treated as denied and is not tried again.
type Notifier struct {
	cfg    *config.NotificationConfig
	logger *slog.Logger

	beep   func() error
	notify func(title, message string) error

	mu      sync.Mutex
	allowed bool
	denied  map[domain.NotificationMode]bool
	pending sync.WaitGroup
}

// Ensure Notifier implements ports.Notifier.
var _ ports.Notifier = (*Notifier)(nil)

// New creates a new notifier with the given configuration.
func New(cfg *config.NotificationConfig, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		cfg:    cfg,
		logger: logger,
		beep: func() error {
			return beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration)
		},
		notify: func(title, message string) error {
			return beeep.Notify(title, message, "")
		},
		allowed: true,
		denied:  make(map[domain.NotificationMode]bool),
	}
}

// IsEnabled returns true if notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	return n.cfg != nil && n.cfg.Enabled
}

// RequestPermission reports whether notifications may be delivered.
// There is no OS prompt for terminal programs, so this reflects config.
func (n *Notifier) RequestPermission(ctx context.Context) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.allowed = n.IsEnabled()
	return n.allowed
}

// Notify announces the transition. Suppressed notifications return nil.
func (n *Notifier) Notify(mode domain.NotificationMode, transition domain.Mode) error {
	if _, err := domain.ValidateNotificationMode(string(mode)); err != nil {
		return err
	}

	n.mu.Lock()
	suppressed := !n.allowed || !n.IsEnabled() || n.denied[mode]
	n.mu.Unlock()
	if suppressed {
		return nil
	}

	title, message := Message(transition)
	n.pending.Add(1)
	go func() {
		defer n.pending.Done()
		var err error
		if mode == domain.NotificationDesktop {
			err = n.notify(title, message)
		} else {
			err = n.beep()
		}
		if err != nil {
			n.mu.Lock()
			n.denied[mode] = true
			n.mu.Unlock()
			n.logger.Debug("notification failed, disabling", "mode", mode, "error", err)
		}
	}()
	return nil
}

// Wait blocks until in-flight notifications have been delivered.
func (n *Notifier) Wait() {
	n.pending.Wait()
}

// Message returns the desktop notification title and body for a transition.
func Message(transition domain.Mode) (title, message string) {
	switch transition {
	case domain.ModeWork:
		return "Break is over", "Time to focus on the next pomodoro."
	case domain.ModeBreak:
		return "Pomodoro complete", "Take a short break."
	case domain.ModeDone:
		return "Goal reached", "You completed all of today's pomodoros."
	default:
		return "Pomodoro", fmt.Sprintf("Switched to %s.", transition)
	}
}
