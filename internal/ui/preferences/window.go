package preferences

import (
	"strconv"
	"time"

	"countdown/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window      fyne.Window
	settings    Settings
	onSave      func(Settings)
	layoutGroup *widget.RadioGroup
	tickEntry   *widget.Entry
	sound       *widget.Check
	notify      *widget.Check
	flash       *widget.Check
	autostart   *widget.Check
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Countdown Settings")

	layoutGroup := widget.NewRadioGroup([]string{string(LayoutCompact), string(LayoutFull)}, nil)
	layoutGroup.Horizontal = true
	tickEntry := widget.NewEntry()
	sound := widget.NewCheck("Play a chime when time is up", nil)
	notify := widget.NewCheck("Show a desktop notification", nil)
	flash := widget.NewCheck("Flash the clock", nil)
	autostart := widget.NewCheck("Launch at login", nil)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Display", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		layoutGroup,
		container.NewHBox(widget.NewLabel("Refresh every"), tickEntry, widget.NewLabel("ms")),
		widget.NewLabelWithStyle("When time is up", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		sound,
		notify,
		flash,
		widget.NewLabelWithStyle("System", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		autostart,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(360, 340))
	window.SetCloseIntercept(window.Hide)

	prefs := &Window{
		window:      window,
		onSave:      onSave,
		layoutGroup: layoutGroup,
		tickEntry:   tickEntry,
		sound:       sound,
		notify:      notify,
		flash:       flash,
		autostart:   autostart,
	}
	prefs.UpdateSettings(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	}

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.layoutGroup.SetSelected(string(settings.Layout))
	prefs.tickEntry.SetText(strconv.Itoa(int(settings.TickInterval / time.Millisecond)))
	prefs.sound.SetChecked(settings.SoundEnabled)
	prefs.notify.SetChecked(settings.NotifyEnabled)
	prefs.flash.SetChecked(settings.FlashEnabled)
	prefs.autostart.SetChecked(settings.Autostart)
}

func (prefs *Window) handleSave() {
	settings := prefs.collect()
	prefs.UpdateSettings(settings)
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func (prefs *Window) collect() Settings {
	settings := prefs.settings
	settings.Layout = ParseLayout(prefs.layoutGroup.Selected)
	if millis, ok := parsePositiveInt(prefs.tickEntry.Text); ok {
		settings.TickInterval = model.ClampTickInterval(time.Duration(millis) * time.Millisecond)
	}
	settings.SoundEnabled = prefs.sound.Checked
	settings.NotifyEnabled = prefs.notify.Checked
	settings.FlashEnabled = prefs.flash.Checked
	settings.Autostart = prefs.autostart.Checked
	return settings
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
