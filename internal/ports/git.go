package ports

import (
	"context"
)

// GitDetector defines the interface for git context detection.
// This is a driven port (implemented by adapters).
type GitDetector interface {
	// Branch returns the checked out branch of the repository containing dir.
	Branch(ctx context.Context, dir string) (string, error)

	// IsAvailable checks if git is available in the system.
	IsAvailable() bool
}
