package storage

import (
	"context"
	"log/slog"

	"github.com/xvierd/pomodoro-timer/internal/domain"
	"github.com/xvierd/pomodoro-timer/internal/ports"
)

// SettingsKey is the single key the settings blob lives under.
const SettingsKey = "pomodoro-settings"

// SettingsStore implements ports.SettingsStore on the kv table.
type SettingsStore struct {
	*sqliteStorage
}

// Ensure SettingsStore implements ports.SettingsStore.
var _ ports.SettingsStore = (*SettingsStore)(nil)

// New opens the settings store at dbPath.
func New(dbPath string, logger *slog.Logger) (*SettingsStore, error) {
	s, err := open(dbPath, logger)
	if err != nil {
		return nil, err
	}
	return &SettingsStore{sqliteStorage: s}, nil
}

// NewMemory creates a new in-memory settings store for testing.
func NewMemory() (*SettingsStore, error) {
	return New(":memory:", nil)
}

// Load returns the stored settings, or nil if none were saved. Fields that
// are missing or invalid in the stored record fall back to their defaults,
// and a record that cannot be parsed at all yields the default settings.
func (s *SettingsStore) Load(ctx context.Context) (*domain.Settings, error) {
	blob, ok, err := s.get(ctx, SettingsKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	record, err := domain.DecodeSettingsRecord([]byte(blob))
	if err != nil {
		s.logger.Debug("stored settings unreadable, using defaults", "error", err)
		defaults := domain.DefaultSettings()
		return &defaults, nil
	}

	settings, substituted := record.Settings()
	if len(substituted) > 0 {
		s.logger.Debug("substituted default settings", "fields", substituted, "version", record.Version)
	}
	return &settings, nil
}

// Save replaces the stored settings.
func (s *SettingsStore) Save(ctx context.Context, settings domain.Settings) error {
	blob, err := domain.EncodeSettingsRecord(settings)
	if err != nil {
		return err
	}
	return s.put(ctx, SettingsKey, string(blob))
}

// Clear removes the stored settings. It returns domain.ErrSettingsNotFound
// if nothing was stored.
func (s *SettingsStore) Clear(ctx context.Context) error {
	existed, err := s.delete(ctx, SettingsKey)
	if err != nil {
		return err
	}
	if !existed {
		return domain.ErrSettingsNotFound
	}
	return nil
}
