package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/xvierd/pomodoro-timer/internal/countdown"
	"github.com/xvierd/pomodoro-timer/internal/domain"
	"github.com/xvierd/pomodoro-timer/internal/ports"
)

// DefaultTickInterval is how often Run advances the countdown.
const DefaultTickInterval = time.Second

// TimerOptions configures a TimerService.
type TimerOptions struct {
	Clock        countdown.Clock
	TickInterval time.Duration
	Logger       *slog.Logger
}

// TimerService serialises every trigger onto a SessionMachine and
// publishes snapshots. It is safe for concurrent use.
type TimerService struct {
	mu       sync.Mutex
	machine  *SessionMachine
	store    ports.SettingsStore
	notifier ports.Notifier
	interval time.Duration
	logger   *slog.Logger

	subscribers []chan domain.Snapshot
	last        publishKey
	closed      bool
}

type publishKey struct {
	sessionID string
	phase     domain.Phase
	mode      domain.Mode
	completed int
	seconds   int
}

// NewTimerService creates a timer service with default settings.
// Call Init to load persisted settings.
func NewTimerService(store ports.SettingsStore, notifier ports.Notifier, audio ports.BackgroundAudio, opts TimerOptions) *TimerService {
	if opts.TickInterval <= 0 {
		opts.TickInterval = DefaultTickInterval
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &TimerService{
		machine:  NewSessionMachine(domain.DefaultSettings(), opts.Clock, notifier, audio, opts.Logger),
		store:    store,
		notifier: notifier,
		interval: opts.TickInterval,
		logger:   opts.Logger,
	}
}

// Init loads persisted settings and asks the notifier for permission.
// Missing or unreadable settings fall back to the defaults.
func (s *TimerService) Init(ctx context.Context) {
	settings := domain.DefaultSettings()
	if s.store != nil {
		loaded, err := s.store.Load(ctx)
		switch {
		case err != nil:
			s.logger.Debug("using default settings", "error", err)
		case loaded == nil:
			s.logger.Debug("no stored settings, using defaults")
		default:
			settings = *loaded
		}
	}

	s.mu.Lock()
	if err := s.machine.UpdateSettings(settings); err != nil {
		s.logger.Debug("stored settings rejected, using defaults", "error", err)
	}
	s.mu.Unlock()

	if s.notifier != nil && !s.notifier.RequestPermission(ctx) {
		s.logger.Debug("notifications unavailable")
	}
	s.publish(true)
}

// Run ticks the countdown until ctx is cancelled.
func (s *TimerService) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.Tick()
		}
	}
}

// Tick advances the countdown once.
func (s *TimerService) Tick() {
	s.mu.Lock()
	s.machine.Tick()
	s.mu.Unlock()
	s.publish(false)
}

// Start starts an idle phase.
func (s *TimerService) Start(ctx context.Context) (domain.Snapshot, bool) {
	return s.apply(s.machine.Start)
}

// Pause pauses a running phase.
func (s *TimerService) Pause(ctx context.Context) (domain.Snapshot, bool) {
	return s.apply(s.machine.Pause)
}

// Resume resumes a paused phase.
func (s *TimerService) Resume(ctx context.Context) (domain.Snapshot, bool) {
	return s.apply(s.machine.Resume)
}

// Reset restarts the session at the first work phase.
func (s *TimerService) Reset(ctx context.Context) (domain.Snapshot, bool) {
	return s.apply(s.machine.Reset)
}

// Toggle starts, pauses or resumes depending on the current phase.
func (s *TimerService) Toggle(ctx context.Context) (domain.Snapshot, bool) {
	return s.apply(func() bool {
		switch s.machine.State().(type) {
		case domain.Idle:
			return s.machine.Start()
		case domain.Running:
			return s.machine.Pause()
		case domain.Paused:
			return s.machine.Resume()
		default:
			return false
		}
	})
}

func (s *TimerService) apply(op func() bool) (domain.Snapshot, bool) {
	s.mu.Lock()
	ok := op()
	snap := s.machine.Snapshot()
	s.mu.Unlock()
	if ok {
		s.publish(true)
	}
	return snap, ok
}

// Settings returns the active settings.
func (s *TimerService) Settings() domain.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.Settings()
}

// UpdateSettings validates, persists and applies settings, then resets the
// session. A store failure is returned, but the settings are still applied.
func (s *TimerService) UpdateSettings(ctx context.Context, settings domain.Settings) (domain.Snapshot, error) {
	if err := settings.Validate(); err != nil {
		return s.Snapshot(), err
	}

	var saveErr error
	if s.store != nil {
		if err := s.store.Save(ctx, settings); err != nil {
			s.logger.Warn("failed to persist settings", "error", err)
			saveErr = fmt.Errorf("failed to save settings: %w", err)
		}
	}

	s.mu.Lock()
	err := s.machine.UpdateSettings(settings)
	snap := s.machine.Snapshot()
	s.mu.Unlock()
	if err != nil {
		return snap, err
	}

	s.publish(true)
	return snap, saveErr
}

// Execute runs a TUI command against the timer.
func (s *TimerService) Execute(ctx context.Context, cmd ports.TimerCommand) (domain.Snapshot, error) {
	switch cmd {
	case ports.CmdToggle:
		snap, _ := s.Toggle(ctx)
		return snap, nil
	case ports.CmdStart:
		snap, _ := s.Start(ctx)
		return snap, nil
	case ports.CmdPause:
		snap, _ := s.Pause(ctx)
		return snap, nil
	case ports.CmdResume:
		snap, _ := s.Resume(ctx)
		return snap, nil
	case ports.CmdReset:
		snap, _ := s.Reset(ctx)
		return snap, nil
	case ports.CmdCycleNotification:
		settings := s.Settings()
		settings.NotificationMode = settings.NotificationMode.Next()
		return s.UpdateSettings(ctx, settings)
	case ports.CmdCycleBGM:
		settings := s.Settings()
		settings.BGMMode = settings.BGMMode.Next()
		return s.UpdateSettings(ctx, settings)
	case ports.CmdToggleAutoStart:
		settings := s.Settings()
		settings.AutoStart = !settings.AutoStart
		return s.UpdateSettings(ctx, settings)
	case ports.CmdQuit:
		return s.Snapshot(), nil
	default:
		return s.Snapshot(), fmt.Errorf("unknown command %q", cmd)
	}
}

// Snapshot returns the current session.
func (s *TimerService) Snapshot() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.Snapshot()
}

// Subscribe returns a channel that receives a snapshot whenever the phase,
// mode, count or displayed second changes. Slow subscribers miss updates.
func (s *TimerService) Subscribe(buffer int) <-chan domain.Snapshot {
	ch := make(chan domain.Snapshot, buffer)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		close(ch)
		return ch
	}
	s.subscribers = append(s.subscribers, ch)
	return ch
}

func (s *TimerService) publish(force bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	snap := s.machine.Snapshot()
	key := publishKey{
		sessionID: snap.SessionID,
		phase:     snap.Phase,
		mode:      snap.Mode,
		completed: snap.CompletedCount,
		seconds:   snap.RemainingSeconds(),
	}
	if !force && key == s.last {
		return
	}
	s.last = key

	for _, ch := range s.subscribers {
		select {
		case ch <- snap:
		default:
		}
	}
}

// Close stops background audio and closes subscriber channels.
func (s *TimerService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.machine.Close()
	for _, ch := range s.subscribers {
		close(ch)
	}
	s.subscribers = nil
}

var _ ports.MCPStateProvider = (*TimerService)(nil)
