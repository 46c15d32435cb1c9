package services

import (
	"log/slog"
	"time"

	"github.com/xvierd/pomodoro-timer/internal/countdown"
	"github.com/xvierd/pomodoro-timer/internal/domain"
	"github.com/xvierd/pomodoro-timer/internal/ports"
)

// SessionMachine drives the work/break/done cycle. It owns the session
// state and the single countdown, and calls the notification and audio
// sinks after each transition. It is not safe for concurrent use.
type SessionMachine struct {
	settings  domain.Settings
	state     domain.State
	completed int
	sessionID string

	countdown *countdown.Countdown
	clock     countdown.Clock
	notifier  ports.Notifier
	audio     ports.BackgroundAudio
	logger    *slog.Logger
}

// NewSessionMachine creates a machine in the idle work phase with the full
// work duration armed. notifier and audio may be nil.
func NewSessionMachine(settings domain.Settings, clock countdown.Clock, notifier ports.Notifier, audio ports.BackgroundAudio, logger *slog.Logger) *SessionMachine {
	if clock == nil {
		clock = countdown.SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	m := &SessionMachine{
		settings: settings,
		clock:    clock,
		notifier: notifier,
		audio:    audio,
		logger:   logger,
	}
	m.countdown = countdown.New(clock, m.expire)
	m.reset()
	return m
}

// Start begins the armed countdown. It is only valid from Idle.
func (m *SessionMachine) Start() bool {
	idle, ok := m.state.(domain.Idle)
	if !ok || !m.countdown.Start() {
		return false
	}
	m.state = domain.Running{Mode: idle.Mode}
	if idle.Mode == domain.ModeWork {
		m.playAudio()
	}
	m.logTransition("started")
	return true
}

// Pause halts a running countdown, keeping its remaining time.
func (m *SessionMachine) Pause() bool {
	running, ok := m.state.(domain.Running)
	if !ok || !m.countdown.Pause() {
		return false
	}
	m.state = domain.Paused{Mode: running.Mode, Remaining: m.countdown.Remaining()}
	m.stopAudio()
	m.logTransition("paused")
	return true
}

// Resume continues a paused countdown from where it stopped.
func (m *SessionMachine) Resume() bool {
	paused, ok := m.state.(domain.Paused)
	if !ok || !m.countdown.Resume() {
		return false
	}
	m.state = domain.Running{Mode: paused.Mode}
	if paused.Mode == domain.ModeWork {
		m.playAudio()
	}
	m.logTransition("resumed")
	return true
}

// Reset returns to an unstarted first work phase. It is valid in any state.
func (m *SessionMachine) Reset() bool {
	m.reset()
	m.logTransition("reset")
	return true
}

func (m *SessionMachine) reset() {
	m.state = domain.Idle{Mode: domain.ModeWork}
	m.completed = 0
	m.sessionID = domain.NewSessionID()
	m.stopAudio()
	m.countdown.Arm(domain.ResolveDuration(domain.ModeWork, m.settings), false)
}

// UpdateSettings replaces the settings and resets the session.
func (m *SessionMachine) UpdateSettings(settings domain.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	m.settings = settings
	m.Reset()
	return nil
}

// Settings returns the active settings.
func (m *SessionMachine) Settings() domain.Settings {
	return m.settings
}

// Tick advances the countdown, firing the expiry transition when due.
func (m *SessionMachine) Tick() {
	m.countdown.Tick()
}

// expire runs from inside Countdown.Tick when a running phase reaches zero.
func (m *SessionMachine) expire() {
	running, ok := m.state.(domain.Running)
	if !ok {
		return
	}

	isWork := running.Mode == domain.ModeWork
	completed := m.completed
	if isWork {
		completed++
	}

	next := domain.ModeWork
	switch {
	case isWork && completed >= m.settings.GoalPomodoros:
		next = domain.ModeDone
	case isWork:
		next = domain.ModeBreak
	}

	m.completed = completed
	if next == domain.ModeDone {
		m.state = domain.Done{}
	} else {
		autoStart := m.settings.AutoStart
		m.countdown.Arm(domain.ResolveDuration(next, m.settings), autoStart)
		if autoStart {
			m.state = domain.Running{Mode: next}
		} else {
			m.state = domain.Idle{Mode: next}
		}
	}

	if next == domain.ModeWork && m.settings.AutoStart {
		m.playAudio()
	} else {
		m.stopAudio()
	}

	m.logTransition("expired")
	m.notify(next)
}

// Snapshot returns the current session for display.
func (m *SessionMachine) Snapshot() domain.Snapshot {
	snap := domain.Snapshot{
		SessionID:      m.sessionID,
		Mode:           domain.ModeOf(m.state),
		Phase:          m.state.Phase(),
		CompletedCount: m.completed,
		Goal:           m.settings.GoalPomodoros,
		Settings:       m.settings,
		Timestamp:      m.clock.Now(),
	}
	if _, done := m.state.(domain.Done); !done {
		snap.Remaining = m.countdown.Remaining()
		snap.Duration = m.countdown.Duration()
	}
	return snap
}

// State returns the current run state.
func (m *SessionMachine) State() domain.State {
	return m.state
}

// Close stops background audio.
func (m *SessionMachine) Close() {
	m.stopAudio()
}

func (m *SessionMachine) playAudio() {
	if m.audio == nil {
		return
	}
	if err := m.audio.Play(m.settings.BGMMode); err != nil {
		m.logger.Debug("background audio failed", "mode", m.settings.BGMMode, "error", err)
	}
}

func (m *SessionMachine) stopAudio() {
	if m.audio == nil {
		return
	}
	if err := m.audio.Stop(); err != nil {
		m.logger.Debug("failed to stop background audio", "error", err)
	}
}

func (m *SessionMachine) notify(transition domain.Mode) {
	if m.notifier == nil {
		return
	}
	if err := m.notifier.Notify(m.settings.NotificationMode, transition); err != nil {
		m.logger.Debug("notification suppressed", "transition", transition, "error", err)
	}
}

func (m *SessionMachine) logTransition(event string) {
	m.logger.Info(event,
		"session_id", m.sessionID,
		"mode", domain.ModeOf(m.state),
		"phase", m.state.Phase(),
		"completed", m.completed,
		"remaining", m.countdown.Remaining().Round(time.Second),
	)
}
