package animation

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Range defines a duration range with random sampling.
type Range struct {
	Min time.Duration
	Max time.Duration
}

// Random returns a random duration within the range.
func (value Range) Random(rng *rand.Rand) time.Duration {
	if value.Max <= value.Min {
		return value.Min
	}
	delta := value.Max - value.Min
	return value.Min + time.Duration(rng.Int63n(int64(delta)))
}

// Config contains flash timing values.
type Config struct {
	On  Range
	Off Range
	// Duration bounds the whole flash; zero flashes until stopped.
	Duration time.Duration
}

// Engine alternates a highlight on and off, e.g. on the clock face when a
// countdown completes.
type Engine struct {
	mu        sync.Mutex
	config    Config
	highlight func(bool)
	cancel    context.CancelFunc
	done      chan struct{}
	rng       *rand.Rand
}

// New creates a new animation engine.
func New(config Config, highlight func(bool)) *Engine {
	return &Engine{
		config:    config,
		highlight: highlight,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Flash starts flashing, replacing any flash already running.
// The highlight is always switched off when the flash ends.
func (engine *Engine) Flash(ctx context.Context) {
	engine.Stop()

	engine.mu.Lock()
	config := engine.config
	var runCtx context.Context
	var cancel context.CancelFunc
	if config.Duration > 0 {
		runCtx, cancel = context.WithTimeout(ctx, config.Duration)
	} else {
		runCtx, cancel = context.WithCancel(ctx)
	}
	done := make(chan struct{})
	engine.cancel = cancel
	engine.done = done
	engine.mu.Unlock()

	go func() {
		defer close(done)
		defer engine.highlight(false)
		engine.run(runCtx, config)
	}()
}

// Stop terminates any active flash and waits for the highlight to clear.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	cancel := engine.cancel
	done := engine.done
	engine.cancel = nil
	engine.done = nil
	engine.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (engine *Engine) run(ctx context.Context, config Config) {
	for {
		engine.highlight(true)
		if !sleepWithContext(ctx, engine.random(config.On)) {
			return
		}
		engine.highlight(false)
		if !sleepWithContext(ctx, engine.random(config.Off)) {
			return
		}
	}
}

func (engine *Engine) random(value Range) time.Duration {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return value.Random(engine.rng)
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
