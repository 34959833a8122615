package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pomodoro/internal/core/cycle"
	"pomodoro/internal/core/model"
	"pomodoro/internal/storage"
	"pomodoro/internal/ui/preferences"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetFlags(t *testing.T) {
	t.Helper()
	configFile, workFlag, shortFlag, longFlag, ticks = "", 0, 0, 0, 0
	t.Cleanup(func() {
		configFile, workFlag, shortFlag, longFlag, ticks = "", 0, 0, 0, 0
	})
}

func TestLoadSettingsAppliesOverrides(t *testing.T) {
	resetFlags(t)
	configFile = filepath.Join(t.TempDir(), "settings.yaml")
	stored := preferences.DefaultSettings()
	stored.Work = 40 * time.Minute
	require.NoError(t, storage.SaveSettingsFile(configFile, stored))

	shortFlag = 2 * time.Minute
	settings, err := loadSettings()
	require.NoError(t, err)
	assert.Equal(t, 40*time.Minute, settings.Work)
	assert.Equal(t, 2*time.Minute, settings.ShortBreak)
	assert.Equal(t, stored.LongBreak, settings.LongBreak)
}

func TestLoadSettingsRejectsInvalidOverride(t *testing.T) {
	resetFlags(t)
	configFile = filepath.Join(t.TempDir(), "missing.yaml")
	workFlag = 100 * time.Millisecond

	_, err := loadSettings()
	assert.ErrorIs(t, err, model.ErrInvalidDuration)
}

func TestSimulateRunsToTerminal(t *testing.T) {
	var out bytes.Buffer
	config := model.CycleConfig{Work: 3 * time.Second, ShortBreak: time.Second, LongBreak: 2 * time.Second}
	require.NoError(t, simulate(&out, config, 0))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	// One start alert, one alert per transition (9 work ends, 9 break ends), one summary.
	require.Len(t, lines, 1+18+1)
	assert.Contains(t, lines[0], "start_of_work")
	assert.Contains(t, lines[1], "short_break")
	assert.Contains(t, lines[9], "long_break")
	assert.Contains(t, lines[17], "long_break")
	assert.Equal(t, "after 38 ticks: Work 00:03, cycle 9/9 (done)", lines[len(lines)-1])
}

func TestSimulateStopsAfterTicks(t *testing.T) {
	var out bytes.Buffer
	config := model.CycleConfig{Work: 1500 * time.Second, ShortBreak: 300 * time.Second, LongBreak: 900 * time.Second}
	require.NoError(t, simulate(&out, config, 1500))

	assert.Contains(t, out.String(), "tick   1500  end_of_work    short_break  cycle 0")
	assert.Contains(t, out.String(), "after 1500 ticks: Short break 05:00, cycle 0/9")
}

func TestSimulateRejectsInvalidConfig(t *testing.T) {
	err := simulate(&bytes.Buffer{}, model.CycleConfig{}, 10)
	assert.ErrorIs(t, err, model.ErrInvalidDuration)
}

func TestTrayIcon(t *testing.T) {
	assert.Equal(t, "idle.svg", trayIcon(cycle.State{Phase: cycle.PhaseShortBreak}))
	assert.Equal(t, "break.svg", trayIcon(cycle.State{Phase: cycle.PhaseLongBreak, Running: true}))
	assert.Equal(t, "work.svg", trayIcon(cycle.State{Phase: cycle.PhaseWork, Running: true}))
}

func TestRootCommandHasSubcommands(t *testing.T) {
	root := newRootCommand()
	var names []string
	for _, sub := range root.Commands() {
		names = append(names, sub.Name())
	}
	assert.Contains(t, names, "tui")
	assert.Contains(t, names, "simulate")
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
}
