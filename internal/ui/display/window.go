package display

import (
	"context"
	"errors"
	"image/color"
	"strconv"

	"countdown/internal/core/countdown"
	"countdown/internal/core/model"
	"countdown/internal/ui/animation"
	"countdown/internal/ui/preferences"
	"countdown/internal/ui/presenter"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// Config defines the window arrangement.
type Config struct {
	Layout       preferences.Layout
	FlashEnabled bool
}

// Callbacks defines window action handlers.
type Callbacks struct {
	OnStart         func(presenter.Fields)
	OnPause         func()
	OnReset         func()
	OnQuickSet      func(minutes int)
	OnFieldsChanged func(presenter.Fields)
	OnClose         func()
}

const (
	windowWidth    = float32(300)
	compactHeight  = float32(80)
	expandedHeight = float32(260)
	clockTextSize  = float32(36)
	aboutText      = "Countdown\n\nA small always-on-top countdown timer."
)

var (
	clockColor          = color.NRGBA{R: 230, G: 30, B: 30, A: 255}
	clockHighlightColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	backgroundColor     = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	highlightBackground = color.NRGBA{R: 150, G: 0, B: 0, A: 255}
)

// Window is the countdown widget. It implements presenter.View.
type Window struct {
	window     fyne.Window
	config     Config
	callbacks  Callbacks
	background *canvas.Rectangle
	clock      *canvas.Text
	panel      *fyne.Container
	hours      *widget.Select
	minutes    *widget.Select
	seconds    *widget.Select
	start      *widget.Button
	pause      *widget.Button
	reset      *widget.Button
	quick      []*widget.Button
	flasher    *animation.Engine
	syncing    bool
	controls   presenter.Controls
}

// New creates the countdown window.
func New(app fyne.App, config Config, callbacks Callbacks) *Window {
	window := app.NewWindow("Countdown")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	display := &Window{
		window:     window,
		config:     config,
		callbacks:  callbacks,
		background: canvas.NewRectangle(backgroundColor),
	}

	display.clock = canvas.NewText(countdown.FormatClock(0), clockColor)
	display.clock.Alignment = fyne.TextAlignCenter
	display.clock.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	display.clock.TextSize = clockTextSize

	display.hours = widget.NewSelect(numberOptions(23), func(string) { display.fieldsChanged() })
	display.minutes = widget.NewSelect(numberOptions(59), func(string) { display.fieldsChanged() })
	display.seconds = widget.NewSelect(numberOptions(59), func(string) { display.fieldsChanged() })

	display.start = widget.NewButton("Start", func() {
		display.stopFlash()
		if display.callbacks.OnStart != nil {
			display.callbacks.OnStart(display.fields())
		}
	})
	display.pause = widget.NewButton("Pause", func() {
		if display.callbacks.OnPause != nil {
			display.callbacks.OnPause()
		}
	})
	display.pause.Disable()
	display.reset = widget.NewButton("Reset", func() {
		display.stopFlash()
		if display.callbacks.OnReset != nil {
			display.callbacks.OnReset()
		}
	})
	about := widget.NewButton("About", func() {
		dialog.ShowInformation("About", aboutText, display.window)
	})
	closeButton := widget.NewButton("Close", func() {
		if display.callbacks.OnClose != nil {
			display.callbacks.OnClose()
			return
		}
		display.window.Close()
	})

	quick := make([]fyne.CanvasObject, 0, len(model.QuickSetMinutes))
	for _, minutes := range model.QuickSetMinutes {
		minutes := minutes
		button := widget.NewButton(strconv.Itoa(minutes)+" min", func() {
			display.stopFlash()
			if display.callbacks.OnQuickSet != nil {
				display.callbacks.OnQuickSet(minutes)
			}
		})
		display.quick = append(display.quick, button)
		quick = append(quick, button)
	}

	fieldsRow := container.NewHBox(
		widget.NewLabel("h"), display.hours,
		widget.NewLabel("m"), display.minutes,
		widget.NewLabel("s"), display.seconds,
	)
	controlRow := container.NewGridWithColumns(4, display.start, display.pause, display.reset, about)
	display.panel = container.NewVBox(
		fieldsRow,
		container.NewGridWithColumns(3, quick...),
		controlRow,
		closeButton,
	)

	clockArea := newHoverArea(container.NewStack(display.background, display.clock), display.showPanel, display.togglePanel)
	window.SetContent(container.NewBorder(clockArea, nil, nil, nil, display.panel))

	display.flasher = animation.New(animation.DefaultConfig(), func(on bool) {
		fyne.Do(func() {
			display.setHighlightUnsafe(on)
		})
	})

	display.setFieldsUnsafe(presenter.FieldsFor(model.InitialDuration))
	display.applyLayoutUnsafe()
	window.SetOnClosed(display.stopFlash)
	return display
}

// Window returns the underlying fyne window.
func (display *Window) Window() fyne.Window {
	return display.window
}

// Show displays the window on top of other windows.
func (display *Window) Show() {
	display.window.Show()
	display.window.RequestFocus()
	display.applyTopmost()
}

// Hide hides the window.
func (display *Window) Hide() {
	display.window.Hide()
}

// UpdateConfig applies new preferences.
func (display *Window) UpdateConfig(config Config) {
	display.config = config
	if !config.FlashEnabled {
		display.stopFlash()
	}
	display.applyLayoutUnsafe()
}

// SetClock implements presenter.View.
func (display *Window) SetClock(text string) {
	fyne.Do(func() {
		display.setClockUnsafe(text)
	})
}

// SetControls implements presenter.View.
func (display *Window) SetControls(controls presenter.Controls) {
	fyne.Do(func() {
		display.applyControlsUnsafe(controls)
	})
}

// SetFields implements presenter.View.
func (display *Window) SetFields(fields presenter.Fields) {
	fyne.Do(func() {
		display.setFieldsUnsafe(fields)
	})
}

// ShowError implements presenter.View.
func (display *Window) ShowError(err error) {
	message := presenter.ErrorMessage(err)
	fyne.Do(func() {
		dialog.ShowError(errors.New(message), display.window)
	})
}

// ShowCompleted implements presenter.View.
func (display *Window) ShowCompleted() {
	fyne.Do(func() {
		if display.config.FlashEnabled {
			display.flasher.Flash(context.Background())
		}
		display.Show()
		dialog.ShowInformation("Countdown", "Time is up!", display.window)
	})
}

func (display *Window) setClockUnsafe(text string) {
	display.clock.Text = text
	display.clock.Refresh()
}

func (display *Window) applyControlsUnsafe(controls presenter.Controls) {
	if controls == display.controls {
		return
	}
	previous := display.controls
	display.controls = controls

	display.start.SetText(controls.StartLabel)
	setEnabled(display.start, controls.StartEnabled)
	setEnabled(display.pause, controls.PauseEnabled)
	setEnabled(display.reset, controls.ResetEnabled)

	if display.config.Layout == preferences.LayoutCompact && controls.PauseEnabled && !previous.PauseEnabled {
		display.hidePanel()
	}
}

func (display *Window) setFieldsUnsafe(fields presenter.Fields) {
	display.syncing = true
	defer func() { display.syncing = false }()
	display.hours.SetSelected(fields.Hours)
	display.minutes.SetSelected(fields.Minutes)
	display.seconds.SetSelected(fields.Seconds)
}

func (display *Window) fields() presenter.Fields {
	return presenter.Fields{
		Hours:   display.hours.Selected,
		Minutes: display.minutes.Selected,
		Seconds: display.seconds.Selected,
	}
}

func (display *Window) fieldsChanged() {
	if display.syncing || display.callbacks.OnFieldsChanged == nil {
		return
	}
	display.callbacks.OnFieldsChanged(display.fields())
}

func (display *Window) setHighlightUnsafe(on bool) {
	if on {
		display.background.FillColor = highlightBackground
		display.clock.Color = clockHighlightColor
	} else {
		display.background.FillColor = backgroundColor
		display.clock.Color = clockColor
	}
	display.background.Refresh()
	display.clock.Refresh()
}

func (display *Window) stopFlash() {
	display.flasher.Stop()
}

func (display *Window) applyLayoutUnsafe() {
	if display.config.Layout == preferences.LayoutCompact {
		display.hidePanel()
		return
	}
	display.showPanel()
}

func (display *Window) showPanel() {
	display.panel.Show()
	display.window.Resize(fyne.NewSize(windowWidth, expandedHeight))
}

func (display *Window) hidePanel() {
	if display.config.Layout != preferences.LayoutCompact {
		return
	}
	display.panel.Hide()
	display.window.Resize(fyne.NewSize(windowWidth, compactHeight))
}

func (display *Window) togglePanel() {
	if display.panel.Visible() {
		display.hidePanel()
		return
	}
	display.showPanel()
}

func setEnabled(button *widget.Button, enabled bool) {
	if enabled {
		button.Enable()
		return
	}
	button.Disable()
}

func numberOptions(max int) []string {
	options := make([]string, 0, max+1)
	for value := 0; value <= max; value++ {
		options = append(options, strconv.Itoa(value))
	}
	return options
}
