package preferences

import (
	"time"

	"countdown/internal/core/model"
)

// Layout selects how the timer window arranges its controls.
type Layout string

const (
	// LayoutFull keeps the control panel visible.
	LayoutFull Layout = "full"
	// LayoutCompact shows only the clock until the pointer hovers it.
	LayoutCompact Layout = "compact"
)

// ParseLayout returns the layout for a stored value, falling back to full.
func ParseLayout(value string) Layout {
	if Layout(value) == LayoutCompact {
		return LayoutCompact
	}
	return LayoutFull
}

// Settings defines editable user preferences.
// Timer durations are never persisted.
type Settings struct {
	Layout       Layout
	TickInterval time.Duration

	SoundEnabled  bool
	NotifyEnabled bool
	FlashEnabled  bool
	Autostart     bool
}

// DefaultSettings returns default settings for Countdown.
func DefaultSettings() Settings {
	return Settings{
		Layout:        LayoutCompact,
		TickInterval:  model.DefaultTickInterval,
		SoundEnabled:  true,
		NotifyEnabled: true,
		FlashEnabled:  true,
		Autostart:     false,
	}
}

// TimerConfig converts settings to the engine configuration.
func (settings Settings) TimerConfig() model.TimerConfig {
	return model.TimerConfig{
		TickInterval: model.ClampTickInterval(settings.TickInterval),
	}
}
