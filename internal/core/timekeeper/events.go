package timekeeper

import (
	"time"

	"pomodoro/internal/core/cycle"
)

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventProgress    EventType = "progress"
	EventAlert       EventType = "alert"
)

// Event represents a TimeKeeper update for observers.
type Event struct {
	Type  EventType
	State cycle.State
	// Alert is set for EventAlert only.
	Alert cycle.PhaseAlert
	At    time.Time
}
