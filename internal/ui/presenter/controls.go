package presenter

import "countdown/internal/core/countdown"

// Controls describes which buttons are usable in a state.
type Controls struct {
	StartEnabled bool
	StartLabel   string
	PauseEnabled bool
	ResetEnabled bool
}

// ControlsFor maps an engine state onto button enablement.
func ControlsFor(state countdown.State) Controls {
	switch state {
	case countdown.StateRunning:
		return Controls{StartEnabled: false, StartLabel: "Start", PauseEnabled: true, ResetEnabled: true}
	case countdown.StatePaused:
		return Controls{StartEnabled: true, StartLabel: "Resume", PauseEnabled: false, ResetEnabled: true}
	default:
		return Controls{StartEnabled: true, StartLabel: "Start", PauseEnabled: false, ResetEnabled: true}
	}
}
