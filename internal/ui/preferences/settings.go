package preferences

import (
	"time"

	"pomodoro/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	Work       time.Duration
	ShortBreak time.Duration
	LongBreak  time.Duration

	Notifications bool
	Bell          bool
}

// DefaultSettings returns default settings for the timer.
func DefaultSettings() Settings {
	config := model.DefaultCycleConfig()
	return Settings{
		Work:          config.Work,
		ShortBreak:    config.ShortBreak,
		LongBreak:     config.LongBreak,
		Notifications: true,
		Bell:          false,
	}
}

// CycleConfig converts settings to the engine configuration.
func (settings Settings) CycleConfig() model.CycleConfig {
	return model.CycleConfig{
		Work:       settings.Work,
		ShortBreak: settings.ShortBreak,
		LongBreak:  settings.LongBreak,
	}
}
