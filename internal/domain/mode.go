package domain

import "fmt"

// Mode is the phase of the pomodoro cycle.
type Mode string

const (
	ModeWork  Mode = "work"
	ModeBreak Mode = "break"
	ModeDone  Mode = "done"
)

// ValidModes lists all supported mode values.
var ValidModes = []Mode{ModeWork, ModeBreak, ModeDone}

// ValidateMode checks if a string is a valid mode.
func ValidateMode(s string) (Mode, error) {
	m := Mode(s)
	for _, valid := range ValidModes {
		if m == valid {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w %q: must be one of work, break, done", ErrInvalidMode, s)
}

// Label returns a human-readable label.
func (m Mode) Label() string {
	switch m {
	case ModeWork:
		return "Work"
	case ModeBreak:
		return "Break"
	case ModeDone:
		return "Done"
	default:
		return "Unknown"
	}
}

// NotificationMode selects how transitions are announced.
type NotificationMode string

const (
	NotificationSound   NotificationMode = "sound"
	NotificationDesktop NotificationMode = "desktop"
)

// ValidNotificationModes lists all supported notification modes.
var ValidNotificationModes = []NotificationMode{NotificationSound, NotificationDesktop}

// ValidateNotificationMode checks if a string is a valid notification mode.
func ValidateNotificationMode(s string) (NotificationMode, error) {
	n := NotificationMode(s)
	for _, valid := range ValidNotificationModes {
		if n == valid {
			return n, nil
		}
	}
	return "", fmt.Errorf("%w %q: must be one of sound, desktop", ErrInvalidNotificationMode, s)
}

// Next cycles to the following notification mode.
func (n NotificationMode) Next() NotificationMode {
	if n == NotificationSound {
		return NotificationDesktop
	}
	return NotificationSound
}

// BGMMode selects the background noise played during work phases.
type BGMMode string

const (
	BGMOff   BGMMode = "off"
	BGMWhite BGMMode = "white"
	BGMPink  BGMMode = "pink"
	BGMBrown BGMMode = "brown"
)

// ValidBGMModes lists all supported background audio modes in cycle order.
var ValidBGMModes = []BGMMode{BGMOff, BGMWhite, BGMPink, BGMBrown}

// ValidateBGMMode checks if a string is a valid background audio mode.
func ValidateBGMMode(s string) (BGMMode, error) {
	b := BGMMode(s)
	for _, valid := range ValidBGMModes {
		if b == valid {
			return b, nil
		}
	}
	return "", fmt.Errorf("%w %q: must be one of off, white, pink, brown", ErrInvalidBGMMode, s)
}

// Next cycles to the following background audio mode.
func (b BGMMode) Next() BGMMode {
	for i, valid := range ValidBGMModes {
		if b == valid {
			return ValidBGMModes[(i+1)%len(ValidBGMModes)]
		}
	}
	return BGMOff
}

// Label returns a human-readable label.
func (b BGMMode) Label() string {
	switch b {
	case BGMWhite:
		return "White noise"
	case BGMPink:
		return "Pink noise"
	case BGMBrown:
		return "Brown noise"
	default:
		return "Off"
	}
}
