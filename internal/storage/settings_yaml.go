package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pomodoro/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	WorkSeconds       int   `yaml:"work_seconds"`
	ShortBreakSeconds int   `yaml:"short_break_seconds"`
	LongBreakSeconds  int   `yaml:"long_break_seconds"`
	Notifications     *bool `yaml:"notifications,omitempty"`
	Bell              *bool `yaml:"bell,omitempty"`
}

// LoadSettings reads user preferences from the per-user config directory.
// If the config file does not exist, default settings are returned.
func LoadSettings(appName string) (preferences.Settings, error) {
	configPath, err := ResolveConfigPath(appName)
	if err != nil {
		return preferences.DefaultSettings(), err
	}
	return LoadSettingsFile(configPath)
}

// LoadSettingsFile reads user preferences from path.
func LoadSettingsFile(path string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to the per-user config directory.
func SaveSettings(appName string, settings preferences.Settings) error {
	configPath, err := ResolveConfigPath(appName)
	if err != nil {
		return err
	}
	return SaveSettingsFile(configPath, settings)
}

// SaveSettingsFile writes user preferences to path.
func SaveSettingsFile(path string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	notifications := settings.Notifications
	bell := settings.Bell
	fileData := yamlSettings{
		WorkSeconds:       int(settings.Work / time.Second),
		ShortBreakSeconds: int(settings.ShortBreak / time.Second),
		LongBreakSeconds:  int(settings.LongBreak / time.Second),
		Notifications:     &notifications,
		Bell:              &bell,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

// ResolveConfigPath returns the settings file location for appName.
func ResolveConfigPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.WorkSeconds > 0 {
		settings.Work = time.Duration(fileData.WorkSeconds) * time.Second
	}
	if fileData.ShortBreakSeconds > 0 {
		settings.ShortBreak = time.Duration(fileData.ShortBreakSeconds) * time.Second
	}
	if fileData.LongBreakSeconds > 0 {
		settings.LongBreak = time.Duration(fileData.LongBreakSeconds) * time.Second
	}

	if fileData.Notifications != nil {
		settings.Notifications = *fileData.Notifications
	}
	if fileData.Bell != nil {
		settings.Bell = *fileData.Bell
	}
}
