// Package pointer models abstract press/move/release input and the two
// window-level shared resources built on it: the exclusive pointer grab and
// the outside-press filter.
package pointer

import (
	"fmt"
	"time"
)

type Kind uint8

const (
	Press Kind = iota + 1
	Move
	Release
	// Cancel is delivered to a handler that loses the gesture to someone
	// else (a stealing parent or a new grab holder).
	Cancel
)

func (k Kind) String() string {
	switch k {
	case Press:
		return "press"
	case Move:
		return "move"
	case Release:
		return "release"
	case Cancel:
		return "cancel"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

type Button uint8

const (
	ButtonNone Button = iota
	ButtonPrimary
	ButtonSecondary
	ButtonTertiary
)

type Event struct {
	Kind     Kind
	Position Point
	Button   Button
	// Device distinguishes concurrent pointers (mouse vs touch points).
	Device int
	Time   time.Time
}

func (e Event) String() string {
	return fmt.Sprintf("%s@%v btn=%d dev=%d", e.Kind, e.Position, e.Button, e.Device)
}

// At returns a copy of e relocated to p with the given kind. Used when a
// handler synthesizes a press while taking over a gesture.
func (e Event) At(kind Kind, p Point) Event {
	e.Kind = kind
	e.Position = p
	return e
}

// Handler receives pointer events. Returning false from a press means the
// handler declined the gesture and the dispatcher keeps looking.
type Handler interface {
	HandlePointer(ev Event) bool
}

type HandlerFunc func(ev Event) bool

func (f HandlerFunc) HandlePointer(ev Event) bool { return f(ev) }
