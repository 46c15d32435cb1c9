// Package ports defines the interfaces (driven and driving ports)
// for the pomodoro timer following hexagonal architecture principles.
// These interfaces define the contracts between the domain layer and
// external infrastructure.
package ports

import (
	"context"

	"github.com/xvierd/pomodoro-timer/internal/domain"
)

// SettingsStore persists the settings blob under a single key.
// This is a driven port (implemented by adapters).
type SettingsStore interface {
	// Load returns the stored settings, or nil if none were saved.
	// Invalid fields in a stored record are replaced by their defaults.
	Load(ctx context.Context) (*domain.Settings, error)

	// Save replaces the stored settings.
	Save(ctx context.Context, settings domain.Settings) error

	// Close releases the underlying storage.
	Close() error
}

// Notifier announces mode transitions.
// This is a driven port (implemented by adapters).
type Notifier interface {
	// RequestPermission is called once at startup. It reports whether
	// notifications can be delivered.
	RequestPermission(ctx context.Context) bool

	// Notify announces that the session moved to transition.
	Notify(mode domain.NotificationMode, transition domain.Mode) error
}

// BackgroundAudio plays looping noise during work phases.
// Play and Stop are idempotent and Play(BGMOff) is equivalent to Stop.
type BackgroundAudio interface {
	Play(mode domain.BGMMode) error
	Stop() error
	Close() error
}
