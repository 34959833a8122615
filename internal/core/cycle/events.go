package cycle

// Phase identifies the interval currently counting down.
type Phase int

const (
	PhaseWork Phase = iota
	PhaseShortBreak
	PhaseLongBreak
)

func (phase Phase) String() string {
	switch phase {
	case PhaseWork:
		return "work"
	case PhaseShortBreak:
		return "short_break"
	case PhaseLongBreak:
		return "long_break"
	default:
		return "unknown"
	}
}

// IsBreak reports whether the phase is a short or long break.
func (phase Phase) IsBreak() bool {
	return phase == PhaseShortBreak || phase == PhaseLongBreak
}

// AlertKind is the signal an audio or haptic collaborator reacts to.
type AlertKind int

const (
	AlertStartOfWork AlertKind = iota
	AlertEndOfWork
)

func (kind AlertKind) String() string {
	if kind == AlertEndOfWork {
		return "end_of_work"
	}
	return "start_of_work"
}

// Trigger records what produced an alert.
type Trigger int

const (
	// TriggerStart is a Start command beginning or resuming a session.
	TriggerStart Trigger = iota
	// TriggerTransition is an interval expiring on a tick.
	TriggerTransition
)

// PhaseAlert is queued by the engine for the alerting collaborator.
type PhaseAlert struct {
	Kind    AlertKind
	Trigger Trigger
	Phase   Phase
	Cycles  int
}

// RunState is the coarse run state of the engine.
type RunState int

const (
	RunIdle RunState = iota
	RunRunning
	RunPaused
	RunTerminal
)

func (state RunState) String() string {
	switch state {
	case RunRunning:
		return "running"
	case RunPaused:
		return "paused"
	case RunTerminal:
		return "terminal"
	default:
		return "idle"
	}
}

// State is a read-only snapshot of the engine.
type State struct {
	Phase     Phase
	Remaining int
	Cycles    int
	Running   bool
	Terminal  bool
	Progress  float64
	// Interval is the full length of the current interval in seconds.
	Interval int
	// Fresh is true while the engine sits untouched in its initial state.
	Fresh bool
}

// RunState folds the snapshot into Idle, Running, Paused or Terminal.
func (state State) RunState() RunState {
	switch {
	case state.Terminal:
		return RunTerminal
	case state.Running:
		return RunRunning
	case state.Fresh:
		return RunIdle
	default:
		return RunPaused
	}
}
