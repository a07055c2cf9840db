// Package settings loads tool settings: built-in defaults overlaid with an
// optional user settings.yaml.
package settings

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnvSettingsPath overrides the settings file location when set.
const EnvSettingsPath = "CANVASLOGS_SETTINGS"

// GetEffectiveSettings returns the effective settings (defaults overlaid with
// file overrides if any). If anything goes wrong reading or parsing the file,
// it returns defaults.
func GetEffectiveSettings() Settings {
	settings := defaultSettings
	path, err := settingsFilePath()
	if err != nil {
		return settings
	}
	if _, err := os.Stat(path); err != nil {
		// no file or other stat error -> return defaults
		return settings
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return settings
	}
	// Unmarshalling into a pre-filled struct only touches keys present in
	// the file, which gives us the overlay semantics for free.
	if err := yaml.Unmarshal(b, &settings); err != nil {
		return defaultSettings
	}
	return sanitize(settings)
}

// Defaults returns a copy of the built-in defaults.
func Defaults() Settings {
	return defaultSettings
}

// sanitize rejects override values that would break the run, falling back to
// the default for that field.
func sanitize(s Settings) Settings {
	if s.DisplayTimezone == "" {
		s.DisplayTimezone = defaultSettings.DisplayTimezone
	}
	if s.ProviderTimeoutSeconds <= 0 {
		s.ProviderTimeoutSeconds = defaultSettings.ProviderTimeoutSeconds
	}
	if s.CourtesyPauseMillis < 0 {
		s.CourtesyPauseMillis = defaultSettings.CourtesyPauseMillis
	}
	if s.IPInfoBaseURL == "" {
		s.IPInfoBaseURL = defaultSettings.IPInfoBaseURL
	}
	if s.IPWhoBaseURL == "" {
		s.IPWhoBaseURL = defaultSettings.IPWhoBaseURL
	}
	if len(s.ColumnRoles.IP) == 0 {
		s.ColumnRoles.IP = defaultSettings.ColumnRoles.IP
	}
	if len(s.ColumnRoles.Course) == 0 {
		s.ColumnRoles.Course = defaultSettings.ColumnRoles.Course
	}
	if len(s.ColumnRoles.Assignment) == 0 {
		s.ColumnRoles.Assignment = defaultSettings.ColumnRoles.Assignment
	}
	if len(s.ColumnRoles.SubmittedAt) == 0 {
		s.ColumnRoles.SubmittedAt = defaultSettings.ColumnRoles.SubmittedAt
	}
	return s
}

// settingsFilePath returns the settings file location: the env override if
// set, otherwise <user config dir>/canvaslogs/settings.yaml.
func settingsFilePath() (string, error) {
	if p := os.Getenv(EnvSettingsPath); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "canvaslogs", "settings.yaml"), nil
}
