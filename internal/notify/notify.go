// Package notify delivers the completion notification of a countdown.
package notify

import "errors"

// Notification contains the text shown or announced when a countdown ends.
type Notification struct {
	Title string
	Body  string
}

// Notifier delivers a notification.
type Notifier interface {
	Notify(notification Notification) error
}

// Func adapts a function to the Notifier interface.
type Func func(notification Notification) error

// Notify calls the function.
func (fn Func) Notify(notification Notification) error {
	return fn(notification)
}

// Multi fans a notification out to every notifier and joins their errors.
type Multi []Notifier

// Notify delivers the notification to all notifiers.
func (notifiers Multi) Notify(notification Notification) error {
	var errs []error
	for _, notifier := range notifiers {
		if notifier == nil {
			continue
		}
		if err := notifier.Notify(notification); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// When delivers only while enabled reports true.
// It lets a preference switch a notifier on and off at runtime.
func When(enabled func() bool, notifier Notifier) Notifier {
	return Func(func(notification Notification) error {
		if enabled != nil && !enabled() {
			return nil
		}
		return notifier.Notify(notification)
	})
}
