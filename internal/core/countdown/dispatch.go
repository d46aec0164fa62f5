package countdown

import "context"

// Handlers maps engine events onto observer callbacks. Nil handlers are skipped.
type Handlers struct {
	// OnSnapshot receives every event's snapshot before the specific handler.
	OnSnapshot     func(Snapshot)
	OnProgress     func(remainingSeconds int)
	OnStateChanged func(state State)
	OnCompleted    func()
	OnDurationSet  func(remainingSeconds int)
}

// Dispatch delivers events to handlers until the channel closes or ctx is done.
func Dispatch(ctx context.Context, events <-chan Event, handlers Handlers) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			handlers.handle(event)
		}
	}
}

func (handlers Handlers) handle(event Event) {
	if handlers.OnSnapshot != nil {
		handlers.OnSnapshot(event.Snapshot)
	}
	switch event.Type {
	case EventProgress:
		if handlers.OnProgress != nil {
			handlers.OnProgress(event.RemainingSeconds)
		}
	case EventStateChange:
		if handlers.OnStateChanged != nil {
			handlers.OnStateChanged(event.State)
		}
	case EventCompleted:
		if handlers.OnCompleted != nil {
			handlers.OnCompleted()
		}
	case EventDurationSet:
		if handlers.OnDurationSet != nil {
			handlers.OnDurationSet(event.RemainingSeconds)
		}
	}
}
