package main

import (
	"fmt"
	"io"

	"pomodoro/internal/core/cycle"
	"pomodoro/internal/core/model"
	"pomodoro/internal/ui/presenter"

	"github.com/spf13/cobra"
)

func runSimulate(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	return simulate(cmd.OutOrStdout(), settings.CycleConfig(), ticks)
}

// simulate starts a fresh engine and ticks it without a clock, printing
// every alert. maxTicks <= 0 runs until the engine stops on its own.
func simulate(out io.Writer, config model.CycleConfig, maxTicks int) error {
	engine, err := cycle.New(config)
	if err != nil {
		return err
	}

	engine.Start()
	printAlerts(out, 0, engine.Alerts())

	tick := 0
	for engine.Running() && (maxTicks <= 0 || tick < maxTicks) {
		engine.Tick()
		tick++
		printAlerts(out, tick, engine.Alerts())
	}

	fmt.Fprintf(out, "after %d ticks: %s\n", tick, presenter.StatusLine(engine.Snapshot()))
	return nil
}

func printAlerts(out io.Writer, tick int, alerts []cycle.PhaseAlert) {
	for _, phaseAlert := range alerts {
		fmt.Fprintf(out, "tick %6d  %-13s  %-11s  cycle %d\n",
			tick, phaseAlert.Kind, phaseAlert.Phase, phaseAlert.Cycles)
	}
}
