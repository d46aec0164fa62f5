package countdown

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"countdown/internal/core/model"

	"github.com/google/uuid"
)

var (
	// ErrInvalidDuration indicates a non-numeric, out-of-range or non-positive duration.
	ErrInvalidDuration = errors.New("invalid duration")
	// ErrRunning indicates the duration cannot change while the countdown runs.
	ErrRunning = errors.New("countdown is running")
	// ErrClosed indicates the engine has been closed.
	ErrClosed = errors.New("engine closed")
)

// Options contains collaborators for the Engine.
type Options struct {
	Clock  Clock
	Logger *slog.Logger
}

// Engine is a countdown state machine.
// Remaining time is recomputed from a fixed deadline on every tick.
type Engine struct {
	mu         sync.Mutex
	id         string
	config     model.TimerConfig
	clock      Clock
	logger     *slog.Logger
	state      State
	remaining  int
	target     time.Time
	generation uint64
	stopCh     chan struct{}
	events     []chan Event
	closed     bool
}

// New creates an idle Engine with nothing left on the clock.
func New(config model.TimerConfig, options Options) *Engine {
	config.TickInterval = model.ClampTickInterval(config.TickInterval)
	if options.Clock == nil {
		options.Clock = SystemClock
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}

	id := uuid.NewString()
	return &Engine{
		id:     id,
		config: config,
		clock:  options.Clock,
		logger: options.Logger.With("engine_id", id),
		state:  StateIdle,
	}
}

// ID returns the engine instance identifier.
func (engine *Engine) ID() string {
	return engine.id
}

// Subscribe registers a new observer channel.
// Progress events are dropped when the channel is full; other events
// replace the oldest queued event.
func (engine *Engine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	engine.mu.Lock()
	if engine.closed {
		engine.mu.Unlock()
		close(ch)
		return ch
	}
	engine.events = append(engine.events, ch)
	engine.mu.Unlock()
	return ch
}

// Snapshot returns a copy of the current state.
func (engine *Engine) Snapshot() Snapshot {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.snapshotLocked()
}

// State returns the current state.
func (engine *Engine) State() State {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.state
}

// RemainingSeconds returns the last computed remaining time.
func (engine *Engine) RemainingSeconds() int {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.remaining
}

// UpdateConfig replaces the runtime configuration.
// A running countdown switches to the new cadence immediately.
func (engine *Engine) UpdateConfig(config model.TimerConfig) {
	config.TickInterval = model.ClampTickInterval(config.TickInterval)

	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed || engine.config == config {
		return
	}
	engine.config = config
	if engine.state == StateRunning {
		engine.startCadenceLocked()
	}
}

// SetDuration applies a new countdown length.
// The duration is either applied whole or rejected.
func (engine *Engine) SetDuration(hours, minutes, seconds int) error {
	duration := model.Duration{Hours: hours, Minutes: minutes, Seconds: seconds}
	if err := ValidateDuration(duration); err != nil {
		return err
	}

	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed {
		return ErrClosed
	}
	if engine.state == StateRunning {
		return fmt.Errorf("set duration: %w", ErrRunning)
	}

	engine.remaining = duration.Total()
	engine.emitLocked(EventDurationSet, engine.clock.Now())
	return nil
}

// Start begins a countdown, or resumes a paused one.
// Calling Start while running does nothing.
func (engine *Engine) Start() error {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed {
		return ErrClosed
	}
	if engine.state == StateRunning {
		return nil
	}
	if engine.remaining <= 0 {
		return fmt.Errorf("start: %w: nothing left on the clock", ErrInvalidDuration)
	}

	now := engine.clock.Now()
	engine.target = now.Add(time.Duration(engine.remaining) * time.Second)
	engine.transitionLocked(StateRunning, now)
	engine.startCadenceLocked()
	return nil
}

// Pause freezes a running countdown.
func (engine *Engine) Pause() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.state != StateRunning {
		return
	}
	engine.stopCadenceLocked()
	engine.target = time.Time{}
	engine.transitionLocked(StatePaused, engine.clock.Now())
}

// Reset clears the clock and returns to idle from any state.
func (engine *Engine) Reset() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.stopCadenceLocked()
	engine.remaining = 0
	engine.target = time.Time{}
	engine.transitionLocked(StateIdle, engine.clock.Now())
}

// Close stops the cadence and closes observers.
func (engine *Engine) Close() {
	engine.mu.Lock()
	if engine.closed {
		engine.mu.Unlock()
		return
	}
	engine.closed = true
	engine.stopCadenceLocked()
	events := engine.events
	engine.events = nil
	engine.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (engine *Engine) startCadenceLocked() {
	engine.stopCadenceLocked()
	engine.generation++
	stopCh := make(chan struct{})
	engine.stopCh = stopCh
	go engine.run(engine.generation, stopCh, engine.config.TickInterval)
}

func (engine *Engine) stopCadenceLocked() {
	if engine.stopCh != nil {
		close(engine.stopCh)
		engine.stopCh = nil
	}
	engine.generation++
}

func (engine *Engine) run(generation uint64, stopCh <-chan struct{}, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !engine.tick(generation) {
				return
			}
		}
	}
}

// tick recomputes the remaining time from the deadline.
// It reports whether the cadence should keep going.
func (engine *Engine) tick(generation uint64) bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.state != StateRunning || engine.generation != generation {
		return false
	}

	now := engine.clock.Now()
	remaining := secondsUntil(engine.target, now)
	if remaining > engine.remaining {
		remaining = engine.remaining
	}
	engine.remaining = remaining

	if remaining > 0 {
		engine.emitLocked(EventProgress, now)
		return true
	}

	engine.stopCadenceLocked()
	engine.target = time.Time{}
	engine.transitionLocked(StateCompleted, now)
	engine.emitLocked(EventCompleted, now)
	return false
}

func (engine *Engine) transitionLocked(state State, now time.Time) {
	previous := engine.state
	engine.state = state
	engine.logger.Debug("countdown state changed",
		"from", previous,
		"to", state,
		"remaining", engine.remaining,
	)
	engine.emitLocked(EventStateChange, now)
}

func (engine *Engine) snapshotLocked() Snapshot {
	return Snapshot{
		EngineID:         engine.id,
		State:            engine.state,
		RemainingSeconds: engine.remaining,
		Target:           engine.target,
	}
}

func (engine *Engine) emitLocked(eventType EventType, now time.Time) {
	event := Event{
		Snapshot: engine.snapshotLocked(),
		Type:     eventType,
		At:       now,
	}
	for _, ch := range engine.events {
		select {
		case ch <- event:
			continue
		default:
		}
		if eventType == EventProgress {
			continue
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- event:
		default:
			engine.logger.Warn("dropped countdown event", "type", eventType)
		}
	}
}

func secondsUntil(target, now time.Time) int {
	seconds := math.Round(target.Sub(now).Seconds())
	if seconds <= 0 {
		return 0
	}
	return int(seconds)
}
