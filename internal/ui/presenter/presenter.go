// Package presenter translates user actions into engine calls and engine
// events into view updates. It has no toolkit dependency so the desktop
// widget and the terminal front end share it.
package presenter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"countdown/internal/core/countdown"
	"countdown/internal/core/model"
	"countdown/internal/notify"
)

// Engine is the part of the countdown engine driven by the presenter.
type Engine interface {
	SetDuration(hours, minutes, seconds int) error
	Start() error
	Pause()
	Reset()
	Snapshot() countdown.Snapshot
}

// View renders presenter output. Implementations must be safe to call from
// the event goroutine.
type View interface {
	SetClock(text string)
	SetControls(controls Controls)
	SetFields(fields Fields)
	ShowError(err error)
	ShowCompleted()
}

// Fields holds the raw text of the duration inputs.
type Fields struct {
	Hours   string
	Minutes string
	Seconds string
}

// FieldsFor renders a duration into input text.
func FieldsFor(duration model.Duration) Fields {
	return Fields{
		Hours:   strconv.Itoa(duration.Hours),
		Minutes: strconv.Itoa(duration.Minutes),
		Seconds: strconv.Itoa(duration.Seconds),
	}
}

// Parse converts the fields into a duration.
func (fields Fields) Parse() (model.Duration, error) {
	return countdown.ParseFields(fields.Hours, fields.Minutes, fields.Seconds)
}

// Completion is the notification sent when a countdown reaches zero.
var Completion = notify.Notification{
	Title: "Countdown",
	Body:  "Time is up!",
}

// Presenter binds an engine to a view.
type Presenter struct {
	engine   Engine
	view     View
	notifier notify.Notifier
	logger   *slog.Logger

	mu     sync.Mutex
	fields Fields
	clock  string
}

// New creates a presenter with the initial duration pre-filled.
func New(engine Engine, view View, notifier notify.Notifier, logger *slog.Logger) *Presenter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Presenter{
		engine:   engine,
		view:     view,
		notifier: notifier,
		logger:   logger,
		fields:   FieldsFor(model.InitialDuration),
	}
}

// Fields returns the current input text.
func (presenter *Presenter) Fields() Fields {
	presenter.mu.Lock()
	defer presenter.mu.Unlock()
	return presenter.fields
}

// SetFields records edited input text without touching the engine.
func (presenter *Presenter) SetFields(fields Fields) {
	presenter.mu.Lock()
	presenter.fields = fields
	presenter.mu.Unlock()
}

// Refresh renders the current engine state and fields.
func (presenter *Presenter) Refresh() {
	presenter.view.SetFields(presenter.Fields())
	presenter.render(presenter.engine.Snapshot())
}

// Apply parses fields and sets them as the engine duration.
func (presenter *Presenter) Apply(fields Fields) error {
	presenter.SetFields(fields)
	duration, err := fields.Parse()
	if err == nil {
		err = presenter.engine.SetDuration(duration.Hours, duration.Minutes, duration.Seconds)
	}
	if err != nil {
		presenter.view.ShowError(err)
		return err
	}
	return nil
}

// Start resumes a paused countdown, or applies fields and starts a new one.
// It does nothing while a countdown is running.
func (presenter *Presenter) Start(fields Fields) error {
	switch presenter.engine.Snapshot().State {
	case countdown.StateRunning:
		presenter.SetFields(fields)
		return nil
	case countdown.StatePaused:
		return presenter.start()
	}
	if err := presenter.Apply(fields); err != nil {
		return err
	}
	return presenter.start()
}

// Toggle pauses a running countdown and starts anything else.
func (presenter *Presenter) Toggle() error {
	if presenter.engine.Snapshot().State == countdown.StateRunning {
		presenter.Pause()
		return nil
	}
	return presenter.Start(presenter.Fields())
}

// Pause freezes the countdown.
func (presenter *Presenter) Pause() {
	presenter.engine.Pause()
}

// Reset clears the countdown.
func (presenter *Presenter) Reset() {
	presenter.engine.Reset()
}

// QuickSet fills the fields with a whole number of minutes and, unless a
// countdown is running, applies it.
func (presenter *Presenter) QuickSet(minutes int) error {
	fields := FieldsFor(model.Duration{Minutes: minutes})
	if minutes >= 60 {
		fields = FieldsFor(model.DurationFromSeconds(minutes * 60))
	}
	presenter.SetFields(fields)
	presenter.view.SetFields(fields)

	if presenter.engine.Snapshot().State == countdown.StateRunning {
		presenter.logger.Debug("quick set deferred while running", "minutes", minutes)
		return nil
	}
	return presenter.Apply(fields)
}

// Run renders engine events until the channel closes or ctx is done.
func (presenter *Presenter) Run(ctx context.Context, events <-chan countdown.Event) {
	countdown.Dispatch(ctx, events, countdown.Handlers{
		OnSnapshot:  presenter.render,
		OnCompleted: presenter.complete,
	})
}

func (presenter *Presenter) start() error {
	if err := presenter.engine.Start(); err != nil {
		presenter.view.ShowError(err)
		return err
	}
	return nil
}

func (presenter *Presenter) render(snapshot countdown.Snapshot) {
	text := countdown.FormatClock(snapshot.RemainingSeconds)
	presenter.mu.Lock()
	changed := text != presenter.clock
	presenter.clock = text
	presenter.mu.Unlock()

	if changed {
		presenter.view.SetClock(text)
	}
	presenter.view.SetControls(ControlsFor(snapshot.State))
}

func (presenter *Presenter) complete() {
	presenter.view.ShowCompleted()
	if presenter.notifier == nil {
		return
	}
	if err := presenter.notifier.Notify(Completion); err != nil {
		presenter.logger.Warn("completion notification failed", "error", err)
	}
}

// ErrorMessage returns the text shown to the user for a rejected action.
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, countdown.ErrInvalidDuration):
		return fmt.Sprintf("Please enter a valid countdown time (%v).", err)
	case errors.Is(err, countdown.ErrRunning):
		return "Pause or reset the countdown before changing its length."
	default:
		return err.Error()
	}
}
