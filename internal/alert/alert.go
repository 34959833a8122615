// Package alert turns engine phase alerts into user-facing signals.
package alert

import (
	"context"
	"errors"
	"fmt"
	"io"

	"pomodoro/internal/core/cycle"

	"fyne.io/fyne/v2"
)

// Player reacts to a single phase alert.
type Player interface {
	Play(ctx context.Context, alert cycle.PhaseAlert) error
}

// PlayerFunc adapts a function to Player.
type PlayerFunc func(ctx context.Context, alert cycle.PhaseAlert) error

// Play calls fn.
func (fn PlayerFunc) Play(ctx context.Context, alert cycle.PhaseAlert) error {
	return fn(ctx, alert)
}

// Notifier sends desktop notifications. fyne.App satisfies it.
type Notifier interface {
	SendNotification(notification *fyne.Notification)
}

// NotificationPlayer shows a desktop notification for each alert.
type NotificationPlayer struct {
	Notifier Notifier
}

// Play sends the notification for alert.
func (player NotificationPlayer) Play(ctx context.Context, alert cycle.PhaseAlert) error {
	if player.Notifier == nil {
		return errors.New("notification player: no notifier")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	title, body := Message(alert)
	player.Notifier.SendNotification(fyne.NewNotification(title, body))
	return nil
}

// BellPlayer rings the terminal bell.
type BellPlayer struct {
	Out io.Writer
}

// Play writes the BEL control character.
func (player BellPlayer) Play(ctx context.Context, _ cycle.PhaseAlert) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := io.WriteString(player.Out, "\a"); err != nil {
		return fmt.Errorf("ring bell: %w", err)
	}
	return nil
}

// Multi plays every player in order and joins their errors.
type Multi []Player

// Play runs each player even when an earlier one fails.
func (players Multi) Play(ctx context.Context, alert cycle.PhaseAlert) error {
	var errs []error
	for _, player := range players {
		if err := player.Play(ctx, alert); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Message returns the notification title and body for alert.
func Message(alert cycle.PhaseAlert) (title, body string) {
	switch {
	case alert.Kind == cycle.AlertStartOfWork && alert.Trigger == cycle.TriggerStart:
		return "Focus", "Work interval started."
	case alert.Kind == cycle.AlertStartOfWork:
		return "Back to work", fmt.Sprintf("Break over. %d of %d cycles done.", alert.Cycles, cycle.MaxCycles)
	case alert.Trigger == cycle.TriggerStart:
		return "Break", "Break resumed."
	case alert.Phase == cycle.PhaseLongBreak:
		return "Long break", "Great streak. Take a longer rest."
	default:
		return "Break", "Work interval finished. Take a short rest."
	}
}
