// Package timekeeper drives a cycle engine from a real periodic clock and
// fans its state out to observers.
package timekeeper

import (
	"sync"
	"time"

	"pomodoro/internal/core/cycle"
	"pomodoro/internal/core/model"
)

// pendingLimit caps the state changes held back for a slow observer.
// Alerts are always held.
const pendingLimit = 256

// Config contains runtime options for TimeKeeper.
type Config struct {
	TickInterval time.Duration
}

// TimeKeeper serializes commands and clock ticks onto one cycle engine.
type TimeKeeper struct {
	mu      sync.Mutex
	engine  *cycle.Engine
	options Config
	events  []*observer
	stopCh  chan struct{}
	rearmCh chan struct{}
	looping bool
	closed  bool
}

// observer is one subscriber channel plus the events that did not fit in
// its buffer. Held events are delivered in order before anything newer.
type observer struct {
	ch      chan Event
	pending []Event
}

// New creates a TimeKeeper with the provided configuration.
func New(config model.CycleConfig, options Config) (*TimeKeeper, error) {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	engine, err := cycle.New(config)
	if err != nil {
		return nil, err
	}
	return &TimeKeeper{
		engine:  engine,
		options: options,
		stopCh:  make(chan struct{}),
		rearmCh: make(chan struct{}, 1),
	}, nil
}

// Subscribe registers a new observer channel.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.mu.Lock()
	if keeper.closed {
		close(ch)
	} else {
		keeper.events = append(keeper.events, &observer{ch: ch})
	}
	keeper.mu.Unlock()
	return ch
}

// Run launches the ticking loop.
func (keeper *TimeKeeper) Run() {
	keeper.mu.Lock()
	if keeper.looping || keeper.closed {
		keeper.mu.Unlock()
		return
	}
	keeper.looping = true
	keeper.mu.Unlock()

	go keeper.loop()
}

// Close terminates the ticking loop and closes observers.
func (keeper *TimeKeeper) Close() {
	keeper.mu.Lock()
	if keeper.closed {
		keeper.mu.Unlock()
		return
	}
	keeper.closed = true
	close(keeper.stopCh)
	events := keeper.events
	keeper.events = nil
	keeper.mu.Unlock()

	for _, obs := range events {
		close(obs.ch)
	}
}

// Start begins or resumes the countdown.
func (keeper *TimeKeeper) Start() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.startLocked()
}

// Pause freezes the countdown.
func (keeper *TimeKeeper) Pause() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.pauseLocked()
}

// Toggle pauses a running countdown and starts a stopped one.
func (keeper *TimeKeeper) Toggle() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.engine.Running() {
		keeper.pauseLocked()
		return
	}
	keeper.startLocked()
}

func (keeper *TimeKeeper) startLocked() {
	if keeper.engine.Running() || keeper.engine.Terminal() {
		return
	}
	keeper.engine.Start()
	keeper.rearm()
	keeper.publishLocked(EventStateChange, time.Now())
}

func (keeper *TimeKeeper) pauseLocked() {
	if !keeper.engine.Running() {
		return
	}
	keeper.engine.Pause()
	keeper.publishLocked(EventStateChange, time.Now())
}

// Reset stops the countdown and returns to the first work interval.
func (keeper *TimeKeeper) Reset() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.engine.Reset()
	keeper.publishLocked(EventStateChange, time.Now())
}

// UpdateConfig replaces the engine with one built from config. The
// countdown restarts from the first work interval.
func (keeper *TimeKeeper) UpdateConfig(config model.CycleConfig) error {
	engine, err := cycle.New(config)
	if err != nil {
		return err
	}
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.engine = engine
	keeper.publishLocked(EventStateChange, time.Now())
	return nil
}

// Snapshot returns the current engine state.
func (keeper *TimeKeeper) Snapshot() cycle.State {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.engine.Snapshot()
}

// Config returns the durations the current engine runs with.
func (keeper *TimeKeeper) Config() model.CycleConfig {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.engine.Config()
}

// Step advances the engine by one tick. It also retries delivery of held
// events, so a lagging observer catches up even after the countdown stops.
func (keeper *TimeKeeper) Step(now time.Time) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.flushLocked()
	if !keeper.engine.Running() {
		return
	}

	phase := keeper.engine.Phase()
	keeper.engine.Tick()

	eventType := EventProgress
	if keeper.engine.Phase() != phase || !keeper.engine.Running() {
		eventType = EventStateChange
	}
	keeper.publishLocked(eventType, now)
}

func (keeper *TimeKeeper) loop() {
	ticker := time.NewTicker(keeper.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-keeper.stopCh:
			return
		case <-keeper.rearmCh:
			ticker.Reset(keeper.options.TickInterval)
		case tickTime := <-ticker.C:
			keeper.Step(tickTime)
		}
	}
}

func (keeper *TimeKeeper) rearm() {
	select {
	case keeper.rearmCh <- struct{}{}:
	default:
	}
}

// publishLocked emits queued alerts first, then the state event.
func (keeper *TimeKeeper) publishLocked(eventType EventType, now time.Time) {
	state := keeper.engine.Snapshot()
	for _, alert := range keeper.engine.Alerts() {
		keeper.emitLocked(Event{
			Type:  EventAlert,
			State: state,
			Alert: alert,
			At:    now,
		})
	}
	keeper.emitLocked(Event{
		Type:  eventType,
		State: state,
		At:    now,
	})
}

// emitLocked never blocks. Progress events are dropped for a full observer;
// alerts and state changes are held until it has room.
func (keeper *TimeKeeper) emitLocked(event Event) {
	for _, obs := range keeper.events {
		if obs.flush() {
			select {
			case obs.ch <- event:
				continue
			default:
			}
		}
		switch event.Type {
		case EventAlert:
			obs.pending = append(obs.pending, event)
		case EventStateChange:
			if len(obs.pending) < pendingLimit {
				obs.pending = append(obs.pending, event)
			}
		}
	}
}

func (keeper *TimeKeeper) flushLocked() {
	for _, obs := range keeper.events {
		obs.flush()
	}
}

// flush sends held events until the buffer fills and reports whether
// nothing is left held.
func (obs *observer) flush() bool {
	for len(obs.pending) > 0 {
		select {
		case obs.ch <- obs.pending[0]:
			obs.pending[0] = Event{}
			obs.pending = obs.pending[1:]
		default:
			return false
		}
	}
	obs.pending = nil
	return true
}
