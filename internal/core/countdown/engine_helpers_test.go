package countdown

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"countdown/internal/core/model"
)

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (clock *manualClock) Now() time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.now
}

func (clock *manualClock) Advance(delta time.Duration) {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	clock.now = clock.now.Add(delta)
}

func (clock *manualClock) Set(now time.Time) {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	clock.now = now
}

// newTestEngine uses the slowest cadence so the background ticker rarely
// fires during a test; tests drive ticks through forceTick.
func newTestEngine(t *testing.T) (*Engine, *manualClock) {
	t.Helper()
	clock := newManualClock()
	engine := New(model.TimerConfig{TickInterval: model.MaxTickInterval}, Options{
		Clock:  clock,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	t.Cleanup(engine.Close)
	return engine, clock
}

func (engine *Engine) forceTick() bool {
	engine.mu.Lock()
	generation := engine.generation
	engine.mu.Unlock()
	return engine.tick(generation)
}

func drain(events <-chan Event) []Event {
	var drained []Event
	for {
		select {
		case event, ok := <-events:
			if !ok {
				return drained
			}
			drained = append(drained, event)
		default:
			return drained
		}
	}
}

func countType(events []Event, eventType EventType) int {
	count := 0
	for _, event := range events {
		if event.Type == eventType {
			count++
		}
	}
	return count
}
