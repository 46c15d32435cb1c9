package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/xvierd/pomodoro-timer/internal/domain"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

type notification struct {
	mode       domain.NotificationMode
	transition domain.Mode
}

type recordingNotifier struct {
	mu        sync.Mutex
	sent      []notification
	permitted bool
	asked     int
}

func (n *recordingNotifier) RequestPermission(ctx context.Context) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.asked++
	return n.permitted
}

func (n *recordingNotifier) Notify(mode domain.NotificationMode, transition domain.Mode) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification{mode, transition})
	return nil
}

func (n *recordingNotifier) transitions() []domain.Mode {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]domain.Mode, 0, len(n.sent))
	for _, s := range n.sent {
		out = append(out, s.transition)
	}
	return out
}

type recordingAudio struct {
	mu      sync.Mutex
	playing domain.BGMMode
	plays   int
}

func (a *recordingAudio) Play(mode domain.BGMMode) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if mode == domain.BGMOff {
		a.playing = domain.BGMOff
		return nil
	}
	a.playing = mode
	a.plays++
	return nil
}

func (a *recordingAudio) Stop() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.playing = domain.BGMOff
	return nil
}

func (a *recordingAudio) Close() error { return a.Stop() }

func (a *recordingAudio) current() domain.BGMMode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.playing
}

type memoryStore struct {
	settings *domain.Settings
	saveErr  error
	loadErr  error
	saves    int
}

func (s *memoryStore) Load(ctx context.Context) (*domain.Settings, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.settings, nil
}

func (s *memoryStore) Save(ctx context.Context, settings domain.Settings) error {
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.settings = &settings
	return nil
}

func (s *memoryStore) Close() error { return nil }

var errDiskFull = errors.New("disk full")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// oneMinute returns settings with one minute phases.
func oneMinute(goal int, autoStart bool) domain.Settings {
	s := domain.DefaultSettings()
	s.WorkDurationMinutes = 1
	s.BreakDurationMinutes = 1
	s.GoalPomodoros = goal
	s.AutoStart = autoStart
	return s
}
