// Package cycle implements the Pomodoro cycle state machine.
//
// The engine is advanced one second per Tick by an external clock and
// answers Start, Pause and Reset commands. It never performs I/O: alerts
// for the audio or haptic collaborator are queued and drained with Alerts.
// An Engine is not safe for concurrent use.
package cycle

import (
	"pomodoro/internal/core/model"
)

// MaxCycles is the completed round trip count at which the engine stops.
const MaxCycles = 9

// Engine owns all countdown and cycle state.
type Engine struct {
	config     model.CycleConfig
	work       int
	shortBreak int
	longBreak  int

	phase     Phase
	remaining int
	cycles    int
	running   bool

	alerts []PhaseAlert
}

// New validates the configuration and returns an idle engine.
func New(config model.CycleConfig) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	engine := &Engine{config: config}
	engine.work, engine.shortBreak, engine.longBreak = config.Seconds()
	engine.restore()
	return engine, nil
}

// Start resumes the countdown and queues an alert for the current phase.
// It does nothing while running or once the engine is terminal.
func (engine *Engine) Start() {
	if engine.running || engine.Terminal() {
		return
	}
	engine.running = true

	kind := AlertStartOfWork
	if engine.phase.IsBreak() {
		kind = AlertEndOfWork
	}
	engine.emit(kind, TriggerStart)
}

// Pause stops the countdown.
func (engine *Engine) Pause() {
	engine.running = false
}

// Reset stops the countdown and returns to the first work interval.
func (engine *Engine) Reset() {
	engine.Pause()
	engine.restore()
}

// Tick advances the countdown by one second. An interval of N seconds
// expires on its Nth tick, which also performs the phase transition.
func (engine *Engine) Tick() {
	if !engine.running {
		return
	}
	if engine.remaining > 0 {
		engine.remaining--
		if engine.remaining > 0 {
			return
		}
	}
	engine.transition()
}

// transition moves from an expired interval to the next one.
func (engine *Engine) transition() {
	var kind AlertKind
	if engine.phase == PhaseWork {
		engine.phase = PhaseShortBreak
		engine.remaining = engine.shortBreak
		kind = AlertEndOfWork
	} else {
		engine.phase = PhaseWork
		if engine.cycles < MaxCycles {
			engine.cycles++
		}
		engine.remaining = engine.work
		kind = AlertStartOfWork
	}

	// Long breaks follow the work interval run after the 4th and 8th round trip.
	if engine.phase.IsBreak() && (engine.cycles == 4 || engine.cycles == 8) {
		engine.phase = PhaseLongBreak
		engine.remaining = engine.longBreak
	}

	if engine.cycles == MaxCycles {
		engine.running = false
	}
	engine.emit(kind, TriggerTransition)
}

func (engine *Engine) restore() {
	engine.phase = PhaseWork
	engine.remaining = engine.work
	engine.cycles = 0
}

func (engine *Engine) emit(kind AlertKind, trigger Trigger) {
	engine.alerts = append(engine.alerts, PhaseAlert{
		Kind:    kind,
		Trigger: trigger,
		Phase:   engine.phase,
		Cycles:  engine.cycles,
	})
}

// Alerts drains queued alerts in emission order.
func (engine *Engine) Alerts() []PhaseAlert {
	alerts := engine.alerts
	engine.alerts = nil
	return alerts
}

// Config returns the configuration the engine was built with.
func (engine *Engine) Config() model.CycleConfig {
	return engine.config
}

// Phase returns the current interval kind.
func (engine *Engine) Phase() Phase {
	return engine.phase
}

// Remaining returns the seconds left in the current interval.
func (engine *Engine) Remaining() int {
	return engine.remaining
}

// Cycles returns the number of completed work/break round trips.
func (engine *Engine) Cycles() int {
	return engine.cycles
}

// Running reports whether the countdown is active.
func (engine *Engine) Running() bool {
	return engine.running
}

// Terminal reports whether the engine has saturated at MaxCycles.
func (engine *Engine) Terminal() bool {
	return engine.cycles == MaxCycles
}

// IntervalDuration returns the full length of the current interval in seconds.
func (engine *Engine) IntervalDuration() int {
	switch engine.phase {
	case PhaseLongBreak:
		return engine.longBreak
	case PhaseShortBreak:
		return engine.shortBreak
	default:
		return engine.work
	}
}

// Progress returns the elapsed fraction of the current interval in [0, 1].
func (engine *Engine) Progress() float64 {
	total := engine.IntervalDuration()
	if total <= 0 {
		return 0
	}
	progress := float64(total-engine.remaining) / float64(total)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

// Snapshot captures the observable state.
func (engine *Engine) Snapshot() State {
	return State{
		Phase:     engine.phase,
		Remaining: engine.remaining,
		Cycles:    engine.cycles,
		Running:   engine.running,
		Terminal:  engine.Terminal(),
		Progress:  engine.Progress(),
		Interval:  engine.IntervalDuration(),
		Fresh: !engine.running && engine.phase == PhaseWork &&
			engine.cycles == 0 && engine.remaining == engine.work,
	}
}
