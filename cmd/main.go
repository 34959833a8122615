package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"pomodoro/internal/storage"
	"pomodoro/internal/ui/preferences"

	"github.com/spf13/cobra"
)

const appName = "RelojPomodoro"

var (
	configFile string
	workFlag   time.Duration
	shortFlag  time.Duration
	longFlag   time.Duration
	verbose    bool
	ticks      int
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "pomodoro",
		Short:        "pomodoro timer with work and break cycles",
		SilenceUsage: true,
		RunE:         runDesktop,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "settings file (yaml), defaults to the user config dir")
	flags.DurationVar(&workFlag, "work", 0, "work interval, e.g. 25m")
	flags.DurationVar(&shortFlag, "short", 0, "short break interval, e.g. 5m")
	flags.DurationVar(&longFlag, "long", 0, "long break interval, e.g. 30m")
	flags.BoolVar(&verbose, "verbose", false, "debug logging")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run the timer in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runTerminal,
	}

	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "drive a timer headless and print every phase alert",
		Args:  cobra.NoArgs,
		RunE:  runSimulate,
	}
	simulateCmd.Flags().IntVar(&ticks, "ticks", 0, "ticks to run (0 runs until all cycles are done)")

	rootCmd.AddCommand(tuiCmd, simulateCmd)
	return rootCmd
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadSettings reads the settings file and applies command-line overrides.
func loadSettings() (preferences.Settings, error) {
	var (
		settings preferences.Settings
		err      error
	)
	if configFile != "" {
		settings, err = storage.LoadSettingsFile(configFile)
	} else {
		settings, err = storage.LoadSettings(appName)
	}
	if err != nil {
		return settings, fmt.Errorf("load settings: %w", err)
	}
	applyOverrides(&settings)
	if err := settings.CycleConfig().Validate(); err != nil {
		return settings, err
	}
	return settings, nil
}

func applyOverrides(settings *preferences.Settings) {
	if workFlag != 0 {
		settings.Work = workFlag
	}
	if shortFlag != 0 {
		settings.ShortBreak = shortFlag
	}
	if longFlag != 0 {
		settings.LongBreak = longFlag
	}
}

func saveSettings(settings preferences.Settings) error {
	if configFile != "" {
		return storage.SaveSettingsFile(configFile, settings)
	}
	return storage.SaveSettings(appName, settings)
}
