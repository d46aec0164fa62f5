package animation

import "time"

// DefaultConfig returns the completion flash timings.
func DefaultConfig() Config {
	return Config{
		On: Range{
			Min: 350 * time.Millisecond,
			Max: 450 * time.Millisecond,
		},
		Off: Range{
			Min: 250 * time.Millisecond,
			Max: 300 * time.Millisecond,
		},
		Duration: 6 * time.Second,
	}
}
