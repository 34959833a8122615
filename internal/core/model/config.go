package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDuration indicates a configured interval shorter than one second.
var ErrInvalidDuration = errors.New("duration must be at least one second")

// ConfigurationError reports which configured duration was rejected.
type ConfigurationError struct {
	Field string
	Value time.Duration
}

func (err *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %v", err.Field, err.Value, ErrInvalidDuration)
}

func (err *ConfigurationError) Unwrap() error {
	return ErrInvalidDuration
}

// CycleConfig contains the interval lengths of a Pomodoro cycle.
// Durations are counted in whole seconds; fractions are dropped.
type CycleConfig struct {
	Work       time.Duration
	ShortBreak time.Duration
	LongBreak  time.Duration
}

// DefaultCycleConfig returns the classic 25/5/30 minute schedule.
func DefaultCycleConfig() CycleConfig {
	return CycleConfig{
		Work:       25 * time.Minute,
		ShortBreak: 5 * time.Minute,
		LongBreak:  30 * time.Minute,
	}
}

// Validate rejects any interval shorter than one second.
func (config CycleConfig) Validate() error {
	fields := []struct {
		name  string
		value time.Duration
	}{
		{"work duration", config.Work},
		{"short break duration", config.ShortBreak},
		{"long break duration", config.LongBreak},
	}
	for _, field := range fields {
		if field.value < time.Second {
			return &ConfigurationError{Field: field.name, Value: field.value}
		}
	}
	return nil
}

// Seconds returns the three intervals as whole seconds.
func (config CycleConfig) Seconds() (work, shortBreak, longBreak int) {
	return int(config.Work / time.Second),
		int(config.ShortBreak / time.Second),
		int(config.LongBreak / time.Second)
}
