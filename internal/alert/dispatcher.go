package alert

import (
	"context"
	"log/slog"
	"time"

	"pomodoro/internal/core/timekeeper"
)

const defaultPlayTimeout = 5 * time.Second

// Dispatcher plays the alerts published by a TimeKeeper. Player failures
// are logged and never reach the engine.
type Dispatcher struct {
	Player  Player
	Logger  *slog.Logger
	Timeout time.Duration
	// OnEvent, when set, receives every event after alerts are played.
	OnEvent func(timekeeper.Event)
}

// Run consumes events until the channel closes or ctx is cancelled.
func (dispatcher *Dispatcher) Run(ctx context.Context, events <-chan timekeeper.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if event.Type == timekeeper.EventAlert {
				dispatcher.play(ctx, event)
			}
			if dispatcher.OnEvent != nil {
				dispatcher.OnEvent(event)
			}
		}
	}
}

func (dispatcher *Dispatcher) play(ctx context.Context, event timekeeper.Event) {
	if dispatcher.Player == nil {
		return
	}
	timeout := dispatcher.Timeout
	if timeout <= 0 {
		timeout = defaultPlayTimeout
	}
	playCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := dispatcher.Player.Play(playCtx, event.Alert); err != nil {
		dispatcher.logger().Warn("alert playback failed",
			"kind", event.Alert.Kind.String(),
			"phase", event.Alert.Phase.String(),
			"error", err)
	}
}

func (dispatcher *Dispatcher) logger() *slog.Logger {
	if dispatcher.Logger != nil {
		return dispatcher.Logger
	}
	return slog.Default()
}
