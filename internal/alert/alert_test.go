package alert

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"pomodoro/internal/core/cycle"
	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timekeeper"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	sent []*fyne.Notification
}

func (notifier *recordingNotifier) SendNotification(notification *fyne.Notification) {
	notifier.sent = append(notifier.sent, notification)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed")
}

func TestNotificationPlayer(t *testing.T) {
	notifier := &recordingNotifier{}
	player := NotificationPlayer{Notifier: notifier}

	err := player.Play(context.Background(), cycle.PhaseAlert{Kind: cycle.AlertEndOfWork, Phase: cycle.PhaseLongBreak, Trigger: cycle.TriggerTransition})
	require.NoError(t, err)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "Long break", notifier.sent[0].Title)

	assert.Error(t, NotificationPlayer{}.Play(context.Background(), cycle.PhaseAlert{}))
}

func TestNotificationPlayerHonoursCancelledContext(t *testing.T) {
	notifier := &recordingNotifier{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NotificationPlayer{Notifier: notifier}.Play(ctx, cycle.PhaseAlert{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, notifier.sent)
}

func TestBellPlayer(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, BellPlayer{Out: &out}.Play(context.Background(), cycle.PhaseAlert{}))
	assert.Equal(t, "\a", out.String())

	assert.Error(t, BellPlayer{Out: failingWriter{}}.Play(context.Background(), cycle.PhaseAlert{}))
}

func TestMultiPlaysEveryPlayer(t *testing.T) {
	first := errors.New("first")
	calls := 0
	players := Multi{
		PlayerFunc(func(context.Context, cycle.PhaseAlert) error { calls++; return first }),
		PlayerFunc(func(context.Context, cycle.PhaseAlert) error { calls++; return nil }),
	}

	err := players.Play(context.Background(), cycle.PhaseAlert{})
	assert.ErrorIs(t, err, first)
	assert.Equal(t, 2, calls)
	assert.NoError(t, Multi{}.Play(context.Background(), cycle.PhaseAlert{}))
}

func TestMessage(t *testing.T) {
	tests := []struct {
		alert cycle.PhaseAlert
		title string
	}{
		{cycle.PhaseAlert{Kind: cycle.AlertStartOfWork, Trigger: cycle.TriggerStart}, "Focus"},
		{cycle.PhaseAlert{Kind: cycle.AlertStartOfWork, Trigger: cycle.TriggerTransition, Cycles: 2}, "Back to work"},
		{cycle.PhaseAlert{Kind: cycle.AlertEndOfWork, Trigger: cycle.TriggerStart, Phase: cycle.PhaseShortBreak}, "Break"},
		{cycle.PhaseAlert{Kind: cycle.AlertEndOfWork, Trigger: cycle.TriggerTransition, Phase: cycle.PhaseShortBreak}, "Break"},
	}
	for _, tt := range tests {
		title, body := Message(tt.alert)
		assert.Equal(t, tt.title, title)
		assert.NotEmpty(t, body)
	}

	_, body := Message(cycle.PhaseAlert{Kind: cycle.AlertStartOfWork, Trigger: cycle.TriggerTransition, Cycles: 2})
	assert.Contains(t, body, "2 of 9")
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (buffer *syncBuffer) Write(p []byte) (int, error) {
	buffer.mu.Lock()
	defer buffer.mu.Unlock()
	return buffer.buf.Write(p)
}

func (buffer *syncBuffer) String() string {
	buffer.mu.Lock()
	defer buffer.mu.Unlock()
	return buffer.buf.String()
}

func TestDispatcherIsolatesPlayerFailures(t *testing.T) {
	keeper, err := timekeeper.New(model.CycleConfig{Work: 2 * time.Second, ShortBreak: time.Second, LongBreak: time.Second}, timekeeper.Config{})
	require.NoError(t, err)
	events := keeper.Subscribe(16)

	var logs syncBuffer
	var mu sync.Mutex
	var seen []timekeeper.EventType
	dispatcher := &Dispatcher{
		Player: PlayerFunc(func(context.Context, cycle.PhaseAlert) error {
			return errors.New("speaker unplugged")
		}),
		Logger: slog.New(slog.NewTextHandler(&logs, nil)),
		OnEvent: func(event timekeeper.Event) {
			mu.Lock()
			seen = append(seen, event.Type)
			mu.Unlock()
		},
	}

	done := make(chan struct{})
	go func() {
		dispatcher.Run(context.Background(), events)
		close(done)
	}()

	keeper.Start()
	keeper.Step(time.Now())
	keeper.Step(time.Now())
	keeper.Close()
	<-done

	assert.Contains(t, logs.String(), "speaker unplugged")
	state := keeper.Snapshot()
	assert.True(t, state.Running)
	assert.Equal(t, cycle.PhaseShortBreak, state.Phase)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []timekeeper.EventType{
		timekeeper.EventAlert, timekeeper.EventStateChange,
		timekeeper.EventProgress,
		timekeeper.EventAlert, timekeeper.EventStateChange,
	}, seen)
}

func TestDispatcherStopsOnContextCancel(t *testing.T) {
	events := make(chan timekeeper.Event)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		(&Dispatcher{}).Run(ctx, events)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("dispatcher did not stop")
	}
}
