package model

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCycleConfigIsValid(t *testing.T) {
	config := DefaultCycleConfig()
	require.NoError(t, config.Validate())

	work, shortBreak, longBreak := config.Seconds()
	assert.Equal(t, 1500, work)
	assert.Equal(t, 300, shortBreak)
	assert.Equal(t, 1800, longBreak)
}

func TestValidateRejectsShortDurations(t *testing.T) {
	tests := []struct {
		name   string
		config CycleConfig
		field  string
	}{
		{"zero work", CycleConfig{Work: 0, ShortBreak: time.Minute, LongBreak: time.Minute}, "work duration"},
		{"negative short", CycleConfig{Work: time.Minute, ShortBreak: -time.Second, LongBreak: time.Minute}, "short break duration"},
		{"sub-second long", CycleConfig{Work: time.Minute, ShortBreak: time.Minute, LongBreak: 500 * time.Millisecond}, "long break duration"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidDuration))

			var configErr *ConfigurationError
			require.True(t, errors.As(err, &configErr))
			assert.Equal(t, tt.field, configErr.Field)
		})
	}
}

func TestSecondsTruncatesFractions(t *testing.T) {
	config := CycleConfig{Work: 1500*time.Second + 900*time.Millisecond, ShortBreak: time.Second, LongBreak: 2 * time.Second}
	work, shortBreak, longBreak := config.Seconds()
	assert.Equal(t, 1500, work)
	assert.Equal(t, 1, shortBreak)
	assert.Equal(t, 2, longBreak)
}
