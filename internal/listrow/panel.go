package listrow

import "swipelist/internal/pointer"

type SwipeStatus uint8

const (
	SwipeStarted SwipeStatus = iota + 1
	SwipeUpdated
	SwipeFinished
)

func (s SwipeStatus) String() string {
	switch s {
	case SwipeStarted:
		return "started"
	case SwipeUpdated:
		return "updated"
	case SwipeFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// SwipeEvent is handed to the panel on every swipe step. Content holds the
// content offset the row computed; the panel may rewrite it.
type SwipeEvent struct {
	Status  SwipeStatus
	To      pointer.Point
	From    pointer.Point
	Content pointer.Point
}

// ActionPanel is the pluggable visual for a row's action area, drag handle
// and expansion chrome. A resolved style instance that does not implement
// it is discarded.
type ActionPanel interface {
	Bind(r *Row)
}

// SwipeHandler clamps or overrides content positions during a swipe.
type SwipeHandler interface {
	OnSwipeEvent(ev *SwipeEvent)
}

// Rebounder animates swiped content back to rest and calls done when the
// animation completes. done must be called exactly once.
type Rebounder interface {
	OnRebound(r *Row, done func())
}

// DragHandleProvider declares where a drag may start, in row-local
// coordinates. ok=false means the whole row is a handle.
type DragHandleProvider interface {
	DragHandleRegion() (region pointer.Rect, ok bool)
}

// ActionLocator maps a position (view coordinates) inside an open row to
// the revealed action drawn there.
type ActionLocator interface {
	ActionAt(p pointer.Point) *Action
}

// Releaser is called when a panel instance is torn down with its row.
type Releaser interface {
	Release()
}

// StyleResolver resolves a style document to a panel instance, or nil.
type StyleResolver interface {
	Resolve(name, version string) any
}

type StyleResolverFunc func(name, version string) any

func (f StyleResolverFunc) Resolve(name, version string) any { return f(name, version) }

// panelArena owns the panel instances of one view, keyed by row identity.
// Instances are built on first need and dropped together with their row.
type panelArena struct {
	byRow map[string]any
}

func (a *panelArena) get(id string) (any, bool) {
	p, ok := a.byRow[id]
	return p, ok
}

func (a *panelArena) ensure(id string, build func() any) any {
	if p, ok := a.byRow[id]; ok {
		return p
	}
	p := build()
	if p == nil {
		return nil
	}
	if a.byRow == nil {
		a.byRow = map[string]any{}
	}
	a.byRow[id] = p
	return p
}

func (a *panelArena) release(id string) {
	p, ok := a.byRow[id]
	if !ok {
		return
	}
	delete(a.byRow, id)
	if rel, ok := p.(Releaser); ok {
		rel.Release()
	}
}

func (a *panelArena) len() int { return len(a.byRow) }
