package main

import (
	"os"

	"pomodoro/internal/alert"
	"pomodoro/internal/core/cycle"
	"pomodoro/internal/tui"

	"github.com/spf13/cobra"
)

func runTerminal(cmd *cobra.Command, _ []string) error {
	logger := newLogger()
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	engine, err := cycle.New(settings.CycleConfig())
	if err != nil {
		return err
	}

	// The terminal owns stdout, so the bell is the only alert available.
	var player alert.Player
	if settings.Bell {
		player = alert.BellPlayer{Out: os.Stdout}
	}

	return tui.Run(cmd.Context(), engine, tui.Options{
		Player: player,
		Logger: logger,
	})
}
