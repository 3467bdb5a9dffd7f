package config

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
)

// Settings represents all application configuration
type Settings struct {
	Variables   map[string]string `json:"variables"`
	Preferences Preferences       `json:"preferences"`
}

// Preferences are the dashboard defaults a user can change at runtime.
type Preferences struct {
	DefaultMetric   string `json:"defaultMetric"`
	TopProducts     int    `json:"topProducts"`
	MovingAverage   bool   `json:"movingAverage"`
	MovingAvgWindow int    `json:"movingAvgWindow"`
}

// DefaultSettings returns settings with sensible defaults
func DefaultSettings() *Settings {
	return &Settings{
		Variables: map[string]string{
			"SUPERSTORE_FILE": "Sample - Superstore.xlsx",
			"PORT":            "8080",
			"STATE_CODES_URL": "",
		},
		Preferences: Preferences{
			DefaultMetric:   "Sales",
			TopProducts:     10,
			MovingAverage:   false,
			MovingAvgWindow: 3,
		},
	}
}

// LoadSettings loads settings from ${STORELENS_DIR}/settings.json
func LoadSettings() (*Settings, error) {
	dir := os.Getenv("STORELENS_DIR")
	if dir == "" {
		return nil, fmt.Errorf("STORELENS_DIR environment variable not set")
	}

	settingsPath := filepath.Join(dir, "settings.json")

	// Create default settings if the file doesn't exist yet
	if _, err := os.Stat(settingsPath); os.IsNotExist(err) {
		settings := DefaultSettings()
		if err := SaveSettings(settings); err != nil {
			return nil, fmt.Errorf("failed to create default settings: %w", err)
		}
		return settings, nil
	}

	data, err := ioutil.ReadFile(settingsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}

	// Backfill preferences a hand-edited file may have zeroed out
	if settings.Preferences.TopProducts <= 0 {
		settings.Preferences.TopProducts = 10
	}
	if settings.Preferences.MovingAvgWindow <= 0 {
		settings.Preferences.MovingAvgWindow = 3
	}
	if settings.Preferences.DefaultMetric == "" {
		settings.Preferences.DefaultMetric = "Sales"
	}

	return &settings, nil
}

// SaveSettings saves settings to ${STORELENS_DIR}/settings.json
func SaveSettings(settings *Settings) error {
	dir := os.Getenv("STORELENS_DIR")
	if dir == "" {
		return fmt.Errorf("STORELENS_DIR environment variable not set")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create STORELENS_DIR: %w", err)
	}

	settingsPath := filepath.Join(dir, "settings.json")

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := ioutil.WriteFile(settingsPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}

// GetVariableValue retrieves a variable from settings, letting the
// environment override the file and expanding any $VARS in the value.
func (s *Settings) GetVariableValue(key string) string {
	if env := os.Getenv(key); env != "" {
		return env
	}
	if val, exists := s.Variables[key]; exists {
		return os.ExpandEnv(val)
	}
	return ""
}
