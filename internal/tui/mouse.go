package tui

import (
	"swipelist/internal/pointer"

	tea "github.com/charmbracelet/bubbletea"
)

// listOrigin maps terminal cells to list coordinates: top is the screen row
// of the list's first visible line and offset the viewport's scroll.
type listOrigin struct {
	top    int
	offset int
}

// toList returns the centre of the cell under msg in list coordinates.
// Centres keep cell column 0 off the view's left edge.
func (o listOrigin) toList(x, y int) pointer.Point {
	return pointer.Pt(float64(x)+0.5, float64(y-o.top+o.offset)+0.5)
}

func isWheel(msg tea.MouseMsg) (delta int, ok bool) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return -1, true
	case tea.MouseButtonWheelDown:
		return 1, true
	}
	return 0, false
}

// pointerEvent translates a Bubble Tea mouse message. Only the left button
// drives row gestures; motion is forwarded whatever the button state so a
// release outside the terminal still ends the gesture on the next event.
func pointerEvent(msg tea.MouseMsg, o listOrigin) (pointer.Event, bool) {
	ev := pointer.Event{Position: o.toList(msg.X, msg.Y), Button: pointer.ButtonPrimary}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return pointer.Event{}, false
		}
		ev.Kind = pointer.Press
	case tea.MouseActionMotion:
		ev.Kind = pointer.Move
	case tea.MouseActionRelease:
		ev.Kind = pointer.Release
	default:
		return pointer.Event{}, false
	}
	return ev, true
}
