package domain

import (
	"encoding/json"
	"fmt"
)

// SettingsSchemaVersion is the version written by SettingsRecord.
const SettingsSchemaVersion = 1

// SettingsRecord is the persisted form of Settings.
// Every field is optional so a partially valid record still decodes.
type SettingsRecord struct {
	Version              int     `json:"version" yaml:"version"`
	WorkDurationMinutes  *int    `json:"work_duration_minutes,omitempty" yaml:"work_duration_minutes,omitempty"`
	BreakDurationMinutes *int    `json:"break_duration_minutes,omitempty" yaml:"break_duration_minutes,omitempty"`
	GoalPomodoros        *int    `json:"goal_pomodoros,omitempty" yaml:"goal_pomodoros,omitempty"`
	AutoStart            *bool   `json:"auto_start,omitempty" yaml:"auto_start,omitempty"`
	NotificationMode     *string `json:"notification_mode,omitempty" yaml:"notification_mode,omitempty"`
	BGMMode              *string `json:"bgm_mode,omitempty" yaml:"bgm_mode,omitempty"`
}

// Record converts settings to their persisted form.
func (s Settings) Record() SettingsRecord {
	work := s.WorkDurationMinutes
	brk := s.BreakDurationMinutes
	goal := s.GoalPomodoros
	auto := s.AutoStart
	notif := string(s.NotificationMode)
	bgm := string(s.BGMMode)
	return SettingsRecord{
		Version:              SettingsSchemaVersion,
		WorkDurationMinutes:  &work,
		BreakDurationMinutes: &brk,
		GoalPomodoros:        &goal,
		AutoStart:            &auto,
		NotificationMode:     &notif,
		BGMMode:              &bgm,
	}
}

// Settings converts the record back, substituting the default for each
// missing or invalid field. The keys of substituted fields are returned.
func (r SettingsRecord) Settings() (Settings, []string) {
	s := DefaultSettings()
	var substituted []string

	if r.WorkDurationMinutes != nil && *r.WorkDurationMinutes > 0 {
		s.WorkDurationMinutes = *r.WorkDurationMinutes
	} else {
		substituted = append(substituted, KeyWorkDuration)
	}
	if r.BreakDurationMinutes != nil && *r.BreakDurationMinutes > 0 {
		s.BreakDurationMinutes = *r.BreakDurationMinutes
	} else {
		substituted = append(substituted, KeyBreakDuration)
	}
	if r.GoalPomodoros != nil && *r.GoalPomodoros > 0 {
		s.GoalPomodoros = *r.GoalPomodoros
	} else {
		substituted = append(substituted, KeyGoalPomodoros)
	}
	if r.AutoStart != nil {
		s.AutoStart = *r.AutoStart
	} else {
		substituted = append(substituted, KeyAutoStart)
	}
	if n, err := validateOptional(r.NotificationMode, ValidateNotificationMode); err == nil {
		s.NotificationMode = n
	} else {
		substituted = append(substituted, KeyNotificationMode)
	}
	if b, err := validateOptional(r.BGMMode, ValidateBGMMode); err == nil {
		s.BGMMode = b
	} else {
		substituted = append(substituted, KeyBGMMode)
	}

	return s, substituted
}

func validateOptional[T any](v *string, validate func(string) (T, error)) (T, error) {
	if v == nil {
		var zero T
		return zero, ErrInvalidSettings
	}
	return validate(*v)
}

// DecodeSettingsRecord parses a JSON settings blob field by field.
// A field with the wrong JSON type is left unset instead of failing the
// whole record. Only a blob that is not a JSON object is an error.
func DecodeSettingsRecord(data []byte) (SettingsRecord, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return SettingsRecord{}, fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}

	var r SettingsRecord
	_ = json.Unmarshal(raw["version"], &r.Version)
	r.WorkDurationMinutes = decodeField[int](raw, KeyWorkDuration)
	r.BreakDurationMinutes = decodeField[int](raw, KeyBreakDuration)
	r.GoalPomodoros = decodeField[int](raw, KeyGoalPomodoros)
	r.AutoStart = decodeField[bool](raw, KeyAutoStart)
	r.NotificationMode = decodeField[string](raw, KeyNotificationMode)
	r.BGMMode = decodeField[string](raw, KeyBGMMode)
	return r, nil
}

func decodeField[T any](raw map[string]json.RawMessage, key string) *T {
	msg, ok := raw[key]
	if !ok {
		return nil
	}
	var v T
	if err := json.Unmarshal(msg, &v); err != nil {
		return nil
	}
	return &v
}

// EncodeSettingsRecord serialises settings as a versioned JSON blob.
func EncodeSettingsRecord(s Settings) ([]byte, error) {
	data, err := json.Marshal(s.Record())
	if err != nil {
		return nil, fmt.Errorf("failed to encode settings: %w", err)
	}
	return data, nil
}
