package model

import "time"

const (
	MinTickInterval     = 10 * time.Millisecond
	MaxTickInterval     = time.Second
	DefaultTickInterval = 100 * time.Millisecond
)

// QuickSetMinutes lists the one-click durations offered by the front ends.
var QuickSetMinutes = []int{1, 2, 3, 5, 10, 15, 20, 25, 30}

// InitialDuration is the value pre-filled in the duration fields.
var InitialDuration = Duration{Minutes: 15}

// Duration is a countdown length split into clock fields.
type Duration struct {
	Hours   int
	Minutes int
	Seconds int
}

// Total returns the duration in whole seconds.
func (duration Duration) Total() int {
	return duration.Hours*3600 + duration.Minutes*60 + duration.Seconds
}

// DurationFromSeconds splits a second count into clock fields.
func DurationFromSeconds(total int) Duration {
	if total < 0 {
		total = 0
	}
	return Duration{
		Hours:   total / 3600,
		Minutes: (total % 3600) / 60,
		Seconds: total % 60,
	}
}

// TimerConfig contains runtime settings for the countdown engine.
type TimerConfig struct {
	TickInterval time.Duration
}

// ClampTickInterval keeps a tick interval inside the supported cadence.
func ClampTickInterval(interval time.Duration) time.Duration {
	if interval <= 0 {
		return DefaultTickInterval
	}
	if interval < MinTickInterval {
		return MinTickInterval
	}
	if interval > MaxTickInterval {
		return MaxTickInterval
	}
	return interval
}
