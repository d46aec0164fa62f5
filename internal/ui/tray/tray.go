package tray

import (
	"fmt"
	"strconv"

	"countdown/internal/core/countdown"
	"countdown/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnToggle      func()
	OnReset       func()
	OnQuickSet    func(minutes int)
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app        desktop.App
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
	resetItem  *fyne.MenuItem
	quickItem  *fyne.MenuItem
	callbacks  Callbacks
	status     string
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Status: idle", nil)
	manager.statusItem.Disabled = true

	manager.toggleItem = fyne.NewMenuItem(ToggleLabel(countdown.StateIdle), func() {
		if manager.callbacks.OnToggle != nil {
			manager.callbacks.OnToggle()
		}
	})

	manager.resetItem = fyne.NewMenuItem("Reset", func() {
		if manager.callbacks.OnReset != nil {
			manager.callbacks.OnReset()
		}
	})

	quickItems := make([]*fyne.MenuItem, 0, len(model.QuickSetMinutes))
	for _, minutes := range model.QuickSetMinutes {
		minutes := minutes
		quickItems = append(quickItems, fyne.NewMenuItem(strconv.Itoa(minutes)+" minutes", func() {
			if manager.callbacks.OnQuickSet != nil {
				manager.callbacks.OnQuickSet(minutes)
			}
		}))
	}
	manager.quickItem = fyne.NewMenuItem("Quick set", nil)
	manager.quickItem.ChildMenu = fyne.NewMenu("", quickItems...)

	manager.SetSnapshot(countdown.Snapshot{State: countdown.StateIdle})
	return manager
}

// SetSnapshot mirrors the engine state into the menu.
func (manager *Manager) SetSnapshot(snapshot countdown.Snapshot) {
	status := StatusLabel(snapshot)
	if status == manager.status {
		return
	}
	manager.status = status
	manager.statusItem.Label = status
	manager.toggleItem.Label = ToggleLabel(snapshot.State)
	manager.resetItem.Disabled = snapshot.State == countdown.StateIdle && snapshot.RemainingSeconds == 0
	manager.refreshMenu()
}

// Status returns the current status line.
func (manager *Manager) Status() string {
	return manager.status
}

// StatusLabel renders the tray status line for a snapshot.
func StatusLabel(snapshot countdown.Snapshot) string {
	return fmt.Sprintf("Status: %s (%s)", countdown.FormatClock(snapshot.RemainingSeconds), snapshot.State)
}

// ToggleLabel names the start/pause menu action for a state.
func ToggleLabel(state countdown.State) string {
	switch state {
	case countdown.StateRunning:
		return "Pause"
	case countdown.StatePaused:
		return "Resume"
	default:
		return "Start"
	}
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu("Countdown",
		manager.statusItem,
		fyne.NewMenuItem("Show timer", func() {
			if manager.callbacks.OnShow != nil {
				manager.callbacks.OnShow()
			}
		}),
		manager.toggleItem,
		manager.resetItem,
		manager.quickItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", func() {
			if manager.callbacks.OnPreferences != nil {
				manager.callbacks.OnPreferences()
			}
		}),
		fyne.NewMenuItem("Quit", func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	))
}
