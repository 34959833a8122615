package main

import (
	"context"
	"errors"
	"os"
	"sync"

	"pomodoro/internal/alert"
	"pomodoro/internal/core/cycle"
	"pomodoro/internal/core/timekeeper"
	"pomodoro/internal/platform"
	"pomodoro/internal/ui/preferences"
	"pomodoro/internal/ui/presenter"
	"pomodoro/internal/ui/tray"
	"pomodoro/internal/ui/watch"
	"pomodoro/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/spf13/cobra"
)

func runDesktop(cmd *cobra.Command, _ []string) error {
	logger := newLogger()

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			if activateErr := platform.ActivateRunning(appName); activateErr != nil {
				logger.Warn("activate running instance", "error", activateErr)
			}
			logger.Info("already running, showing existing timer")
			return nil
		}
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	settings, err := loadSettings()
	if err != nil {
		return err
	}

	keeper, err := timekeeper.New(settings.CycleConfig(), timekeeper.Config{})
	if err != nil {
		return err
	}
	defer keeper.Close()

	fyneApp := app.NewWithID("com.relojpomodoro.app")
	fyneApp.SetIcon(resources.MustIcon(resources.IconIdle))

	player := &settingsPlayer{}
	player.Apply(settings, fyneApp)

	watchWindow := watch.New(fyneApp)
	watchWindow.SetOnToggle(keeper.Toggle)
	watchWindow.SetOnReset(keeper.Reset)

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		if err := keeper.UpdateConfig(updated.CycleConfig()); err != nil {
			logger.Warn("rejected settings", "error", err)
			return
		}
		player.Apply(updated, fyneApp)
		if err := saveSettings(updated); err != nil {
			logger.Warn("save settings", "error", err)
		}
	})

	var trayManager *tray.Manager
	desktopApp, hasTray := fyneApp.(desktop.App)
	if hasTray {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow:        watchWindow.Show,
			OnPreferences: prefsWindow.Show,
			OnToggle:      keeper.Toggle,
			OnReset:       keeper.Reset,
			OnQuit:        fyneApp.Quit,
		})
		desktopApp.SetSystemTrayIcon(resources.MustIcon(resources.IconIdle))
		watchWindow.SetCloseIntercept(watchWindow.Hide)
	} else {
		logger.Debug("system tray unsupported on this platform")
	}

	lastIcon := resources.IconIdle
	render := func(state cycle.State) {
		watchWindow.Render(presenter.Render(state))
		if trayManager == nil {
			return
		}
		trayManager.SetStatus(presenter.Summary(state))
		trayManager.SetRunning(state.Running, state.Terminal)
		if icon := trayIcon(state); icon != lastIcon {
			lastIcon = icon
			desktopApp.SetSystemTrayIcon(resources.MustIcon(icon))
		}
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	dispatcher := &alert.Dispatcher{
		Player: player,
		Logger: logger,
		OnEvent: func(event timekeeper.Event) {
			if event.Type == timekeeper.EventAlert {
				return
			}
			fyne.Do(func() {
				render(event.State)
			})
		},
	}
	go dispatcher.Run(ctx, keeper.Subscribe(16))

	guard.Serve(func() {
		fyne.Do(watchWindow.Show)
	})

	keeper.Run()
	render(keeper.Snapshot())
	watchWindow.Show()
	fyneApp.Run()
	return nil
}

func trayIcon(state cycle.State) string {
	switch {
	case !state.Running:
		return resources.IconIdle
	case state.Phase.IsBreak():
		return resources.IconBreak
	default:
		return resources.IconWork
	}
}

// settingsPlayer plays alerts through whichever players the current
// settings enable.
type settingsPlayer struct {
	mu      sync.Mutex
	players alert.Multi
}

func (player *settingsPlayer) Apply(settings preferences.Settings, notifier alert.Notifier) {
	var players alert.Multi
	if settings.Notifications {
		players = append(players, alert.NotificationPlayer{Notifier: notifier})
	}
	if settings.Bell {
		players = append(players, alert.BellPlayer{Out: os.Stdout})
	}
	player.mu.Lock()
	player.players = players
	player.mu.Unlock()
}

func (player *settingsPlayer) Play(ctx context.Context, phaseAlert cycle.PhaseAlert) error {
	player.mu.Lock()
	players := player.players
	player.mu.Unlock()
	return players.Play(ctx, phaseAlert)
}
