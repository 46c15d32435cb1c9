// Package domain contains the core entities of the pomodoro timer.
// These types describe settings, modes and session state and are
// independent of any external frameworks or infrastructure.
package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Common domain errors.
var (
	ErrInvalidSettings         = errors.New("invalid settings")
	ErrInvalidMode             = errors.New("invalid mode")
	ErrInvalidNotificationMode = errors.New("invalid notification mode")
	ErrInvalidBGMMode          = errors.New("invalid background audio mode")
	ErrUnknownSettingKey       = errors.New("unknown setting key")
	ErrSettingsNotFound        = errors.New("settings not found")
)

// Settings holds the user-configurable timer settings.
type Settings struct {
	WorkDurationMinutes  int
	BreakDurationMinutes int
	GoalPomodoros        int
	AutoStart            bool
	NotificationMode     NotificationMode
	BGMMode              BGMMode
}

// DefaultSettings returns the standard pomodoro settings.
func DefaultSettings() Settings {
	return Settings{
		WorkDurationMinutes:  25,
		BreakDurationMinutes: 5,
		GoalPomodoros:        4,
		AutoStart:            false,
		NotificationMode:     NotificationSound,
		BGMMode:              BGMOff,
	}
}

// Validate checks that durations and goal are positive and enums are known.
func (s Settings) Validate() error {
	if s.WorkDurationMinutes <= 0 {
		return fmt.Errorf("%w: work duration must be positive, got %d", ErrInvalidSettings, s.WorkDurationMinutes)
	}
	if s.BreakDurationMinutes <= 0 {
		return fmt.Errorf("%w: break duration must be positive, got %d", ErrInvalidSettings, s.BreakDurationMinutes)
	}
	if s.GoalPomodoros <= 0 {
		return fmt.Errorf("%w: goal must be positive, got %d", ErrInvalidSettings, s.GoalPomodoros)
	}
	if _, err := ValidateNotificationMode(string(s.NotificationMode)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	if _, err := ValidateBGMMode(string(s.BGMMode)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	return nil
}

// ResolveDuration returns the countdown length for a mode.
// Done has no countdown and resolves to zero.
func ResolveDuration(mode Mode, s Settings) time.Duration {
	switch mode {
	case ModeWork:
		return time.Duration(s.WorkDurationMinutes) * time.Minute
	case ModeBreak:
		return time.Duration(s.BreakDurationMinutes) * time.Minute
	default:
		return 0
	}
}

// ResolveSeconds is ResolveDuration in whole seconds.
func ResolveSeconds(mode Mode, s Settings) int {
	return int(ResolveDuration(mode, s) / time.Second)
}

// Setting keys as they appear in the persisted record and on the command line.
const (
	KeyWorkDuration     = "work_duration_minutes"
	KeyBreakDuration    = "break_duration_minutes"
	KeyGoalPomodoros    = "goal_pomodoros"
	KeyAutoStart        = "auto_start"
	KeyNotificationMode = "notification_mode"
	KeyBGMMode          = "bgm_mode"
)

// SettingKeys lists every settable key.
var SettingKeys = []string{
	KeyWorkDuration,
	KeyBreakDuration,
	KeyGoalPomodoros,
	KeyAutoStart,
	KeyNotificationMode,
	KeyBGMMode,
}

// Set parses value and assigns it to the field named by key.
// The result is not validated as a whole; call Validate afterwards.
func (s *Settings) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case KeyWorkDuration, KeyBreakDuration, KeyGoalPomodoros:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: %s must be a positive integer, got %q", ErrInvalidSettings, key, value)
		}
		switch key {
		case KeyWorkDuration:
			s.WorkDurationMinutes = n
		case KeyBreakDuration:
			s.BreakDurationMinutes = n
		default:
			s.GoalPomodoros = n
		}
	case KeyAutoStart:
		b, err := parseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidSettings, key, err)
		}
		s.AutoStart = b
	case KeyNotificationMode:
		n, err := ValidateNotificationMode(value)
		if err != nil {
			return err
		}
		s.NotificationMode = n
	case KeyBGMMode:
		b, err := ValidateBGMMode(value)
		if err != nil {
			return err
		}
		s.BGMMode = b
	default:
		return fmt.Errorf("%w %q", ErrUnknownSettingKey, key)
	}
	return nil
}

// Get returns the string form of the field named by key.
func (s Settings) Get(key string) (string, error) {
	switch key {
	case KeyWorkDuration:
		return strconv.Itoa(s.WorkDurationMinutes), nil
	case KeyBreakDuration:
		return strconv.Itoa(s.BreakDurationMinutes), nil
	case KeyGoalPomodoros:
		return strconv.Itoa(s.GoalPomodoros), nil
	case KeyAutoStart:
		return strconv.FormatBool(s.AutoStart), nil
	case KeyNotificationMode:
		return string(s.NotificationMode), nil
	case KeyBGMMode:
		return string(s.BGMMode), nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownSettingKey, key)
	}
}

func parseBool(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "on", "yes", "y":
		return true, nil
	case "off", "no", "n":
		return false, nil
	}
	return strconv.ParseBool(value)
}
