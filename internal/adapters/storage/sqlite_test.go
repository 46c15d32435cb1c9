package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/xvierd/pomodoro-timer/internal/domain"
)

func TestNewMemory(t *testing.T) {
	store, err := NewMemory()
	if err != nil {
		t.Fatalf("NewMemory() error = %v", err)
	}
	defer func() { _ = store.Close() }()

	if store == nil {
		t.Error("NewMemory() returned nil store")
	}
}

func TestSettingsStore_LoadAbsent(t *testing.T) {
	store, err := NewMemory()
	if err != nil {
		t.Fatalf("NewMemory() error = %v", err)
	}
	defer func() { _ = store.Close() }()

	got, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != nil {
		t.Errorf("Load() = %+v, want nil", got)
	}
}

func TestSettingsStore_SaveAndLoad(t *testing.T) {
	store, err := NewMemory()
	if err != nil {
		t.Fatalf("NewMemory() error = %v", err)
	}
	defer func() { _ = store.Close() }()
	ctx := context.Background()

	settings := domain.DefaultSettings()
	settings.WorkDurationMinutes = 45
	settings.AutoStart = true
	settings.BGMMode = domain.BGMBrown

	t.Run("save", func(t *testing.T) {
		if err := store.Save(ctx, settings); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	})

	t.Run("load", func(t *testing.T) {
		got, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if got == nil || *got != settings {
			t.Errorf("Load() = %+v, want %+v", got, settings)
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		settings.GoalPomodoros = 9
		if err := store.Save(ctx, settings); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		got, _ := store.Load(ctx)
		if got == nil || got.GoalPomodoros != 9 {
			t.Errorf("Load() = %+v, want goal 9", got)
		}
	})

	t.Run("clear", func(t *testing.T) {
		if err := store.Clear(ctx); err != nil {
			t.Fatalf("Clear() error = %v", err)
		}
		got, _ := store.Load(ctx)
		if got != nil {
			t.Errorf("Load() after Clear = %+v, want nil", got)
		}
	})

	t.Run("clear when empty", func(t *testing.T) {
		if err := store.Clear(ctx); !errors.Is(err, domain.ErrSettingsNotFound) {
			t.Errorf("Clear() error = %v, want %v", err, domain.ErrSettingsNotFound)
		}
	})
}

func TestSettingsStore_PartiallyInvalidRecord(t *testing.T) {
	store, err := NewMemory()
	if err != nil {
		t.Fatalf("NewMemory() error = %v", err)
	}
	defer func() { _ = store.Close() }()
	ctx := context.Background()

	blob := `{"version":1,"work_duration_minutes":0,"break_duration_minutes":12,"bgm_mode":"rain"}`
	if err := store.put(ctx, SettingsKey, blob); err != nil {
		t.Fatalf("put() error = %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	defaults := domain.DefaultSettings()
	if got.WorkDurationMinutes != defaults.WorkDurationMinutes {
		t.Errorf("WorkDurationMinutes = %v, want default", got.WorkDurationMinutes)
	}
	if got.BreakDurationMinutes != 12 {
		t.Errorf("BreakDurationMinutes = %v, want 12", got.BreakDurationMinutes)
	}
	if got.BGMMode != defaults.BGMMode {
		t.Errorf("BGMMode = %v, want default", got.BGMMode)
	}
}

func TestSettingsStore_CorruptRecord(t *testing.T) {
	store, err := NewMemory()
	if err != nil {
		t.Fatalf("NewMemory() error = %v", err)
	}
	defer func() { _ = store.Close() }()
	ctx := context.Background()

	if err := store.put(ctx, SettingsKey, "{{{ not json"); err != nil {
		t.Fatalf("put() error = %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got == nil || *got != domain.DefaultSettings() {
		t.Errorf("Load() = %+v, want defaults", got)
	}
}

func TestSettingsStore_FilePersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.db")
	ctx := context.Background()

	store, err := New(path, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	settings := domain.DefaultSettings()
	settings.NotificationMode = domain.NotificationDesktop
	if err := store.Save(ctx, settings); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	_ = store.Close()

	reopened, err := New(path, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() { _ = reopened.Close() }()

	got, err := reopened.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got == nil || got.NotificationMode != domain.NotificationDesktop {
		t.Errorf("Load() = %+v, want desktop notifications", got)
	}
}
