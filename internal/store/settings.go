package store

import (
	"encoding/json"
	"fmt"
)

const settingsKey = "settings"

// Settings is the locally persisted preferences blob.
type Settings struct {
	DisplayName        string `json:"displayName"`
	Email              string `json:"email"`
	EmailNotifications bool   `json:"emailNotifications"`
	WeeklyReport       bool   `json:"weeklyReport"`
	Theme              string `json:"theme"` // light, dark, auto
	AutoSave           bool   `json:"autoSave"`
}

func DefaultSettings() Settings {
	return Settings{
		DisplayName:        "Developer",
		EmailNotifications: true,
		WeeklyReport:       true,
		Theme:              "dark",
		AutoSave:           true,
	}
}

// LoadSettings returns the saved settings, falling back to defaults when
// nothing has been saved yet.
func (s *Store) LoadSettings() (Settings, error) {
	raw, ok, err := s.getValue(settingsKey)
	if err != nil {
		return DefaultSettings(), err
	}
	if !ok {
		return DefaultSettings(), nil
	}
	var st Settings
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		return DefaultSettings(), fmt.Errorf("decode settings: %w", err)
	}
	return st, nil
}

func (s *Store) SaveSettings(st Settings) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return s.setValue(settingsKey, string(data))
}
