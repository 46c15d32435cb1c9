package ports

import (
	"context"

	"github.com/xvierd/pomodoro-timer/internal/domain"
)

// MCPHandler defines the interface for MCP server operations.
// This is a driving port (called by the application layer).
type MCPHandler interface {
	// Start begins serving MCP requests.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the server.
	Stop() error

	// IsRunning returns true if the server is active.
	IsRunning() bool
}

// MCPStateProvider exposes the timer to the MCP server.
// This is a driven port (implemented by services layer).
type MCPStateProvider interface {
	// Snapshot returns the current session snapshot.
	Snapshot() domain.Snapshot

	// Start, Pause, Resume and Reset report false when the command
	// is not valid in the current state.
	Start(ctx context.Context) (domain.Snapshot, bool)
	Pause(ctx context.Context) (domain.Snapshot, bool)
	Resume(ctx context.Context) (domain.Snapshot, bool)
	Reset(ctx context.Context) (domain.Snapshot, bool)

	// Settings returns the active settings.
	Settings() domain.Settings

	// UpdateSettings persists and applies new settings, resetting the session.
	UpdateSettings(ctx context.Context, settings domain.Settings) (domain.Snapshot, error)
}
