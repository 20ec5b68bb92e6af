package graphics

import (
	"fmt"

	"github.com/richinsley/gosprite/input"
)

// EventKind tags an Event.
type EventKind int

const (
	EventOther EventKind = iota
	EventClose
	EventKeyPress
	EventKeyRelease
)

// Event is one window or keyboard event.
type Event struct {
	Kind EventKind
	Key  input.Key
}

func CloseEvent() Event            { return Event{Kind: EventClose} }
func KeyPress(k input.Key) Event   { return Event{Kind: EventKeyPress, Key: k} }
func KeyRelease(k input.Key) Event { return Event{Kind: EventKeyRelease, Key: k} }
func OtherEvent() Event            { return Event{Kind: EventOther} }

// Phase reports the key phase of a press or release event.
func (e Event) Phase() (input.Phase, bool) {
	switch e.Kind {
	case EventKeyPress:
		return input.Pressed, true
	case EventKeyRelease:
		return input.Released, true
	}
	return 0, false
}

// Quits reports whether the event ends the frame loop: a close request or
// an escape key press.
func (e Event) Quits() bool {
	return e.Kind == EventClose || (e.Kind == EventKeyPress && e.Key == input.KeyEscape)
}

func (e Event) String() string {
	switch e.Kind {
	case EventClose:
		return "close"
	case EventKeyPress:
		return fmt.Sprintf("press(%v)", e.Key)
	case EventKeyRelease:
		return fmt.Sprintf("release(%v)", e.Key)
	}
	return "other"
}
