package countdown

import "time"

// State represents the current countdown mode.
type State string

const (
	StateIdle      State = "idle"
	StateRunning   State = "running"
	StatePaused    State = "paused"
	StateCompleted State = "completed"
)

// EventType defines the type of engine event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventProgress    EventType = "progress"
	EventCompleted   EventType = "completed"
	EventDurationSet EventType = "duration_set"
)

// Snapshot is an immutable copy of the engine state.
type Snapshot struct {
	EngineID         string
	State            State
	RemainingSeconds int
	// Target is zero unless the countdown is running.
	Target time.Time
}

// Event represents an engine update for observers.
type Event struct {
	Snapshot
	Type EventType
	At   time.Time
}
