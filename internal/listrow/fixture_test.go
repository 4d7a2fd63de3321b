package listrow

import (
	"testing"

	"swipelist/internal/pointer"
	"swipelist/internal/theme"
)

// recPanel is a minimal action panel that records what the row tells it.
// It zeroes offsets towards sides without actions and, unless keepOpen is
// set, rebounds the row when a swipe finishes.
type recPanel struct {
	row      *Row
	events   []SwipeEvent
	rebounds int
	keepOpen bool
	// holdRebound defers the rebound completion until finish is called.
	holdRebound bool
	pendingDone func()
	handle      *pointer.Rect
	action      *Action
	released    bool
}

func (p *recPanel) Bind(r *Row) { p.row = r }

func (p *recPanel) OnSwipeEvent(ev *SwipeEvent) {
	if ev.Content.X > 0 && p.row.LeadingActions() == nil {
		ev.Content.X = 0
	}
	if ev.Content.X < 0 && p.row.TrailingActions() == nil {
		ev.Content.X = 0
	}
	p.events = append(p.events, *ev)
	if ev.Status == SwipeFinished && !p.keepOpen {
		p.row.SnapOut()
	}
}

func (p *recPanel) OnRebound(r *Row, done func()) {
	p.rebounds++
	r.SetContentOffset(pointer.Point{})
	if p.holdRebound {
		p.pendingDone = done
		return
	}
	done()
}

func (p *recPanel) finish() {
	if d := p.pendingDone; d != nil {
		p.pendingDone = nil
		d()
	}
}

func (p *recPanel) DragHandleRegion() (pointer.Rect, bool) {
	if p.handle == nil {
		return pointer.Rect{}, false
	}
	return *p.handle, true
}

func (p *recPanel) ActionAt(pointer.Point) *Action { return p.action }

func (p *recPanel) Release() { p.released = true }

func (p *recPanel) statuses() []SwipeStatus {
	out := make([]SwipeStatus, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Status)
	}
	return out
}

type fixture struct {
	t      *testing.T
	sched  *ManualScheduler
	theme  *theme.Context
	c      *Coordinator
	// setup customises each panel as it is created.
	setup func(p *recPanel)
	built int
}

const gridUnit = 8.0

// rowHeight is the height of every fixture row; row i spans y in
// [i*rowHeight, (i+1)*rowHeight).
const rowHeight = 10.0

func newFixture(t *testing.T, flags ExpansionFlags) *fixture {
	t.Helper()
	f := &fixture{t: t, sched: &ManualScheduler{}, theme: theme.NewContext(nil)}
	f.theme.SetUnits(theme.Units{GridUnit: gridUnit})
	f.c = NewCoordinator("view", Options{
		Scheduler:      f.sched,
		Theme:          f.theme,
		ExpansionFlags: flags,
		Styles: StyleResolverFunc(func(name, version string) any {
			p := &recPanel{}
			if f.setup != nil {
				f.setup(p)
			}
			f.built++
			return p
		}),
	})
	return f
}

func (f *fixture) row(i int) *Row {
	r := NewRow(RowOptions{})
	r.SetIndex(i)
	r.SetBounds(pointer.R(0, float64(i)*rowHeight, 100, float64(i+1)*rowHeight))
	r.Attach(f.c)
	return r
}

// trailingRow returns a row with a single trailing action.
func (f *fixture) trailingRow(i int) *Row {
	r := f.row(i)
	r.SetTrailingActions(NewActions(NewAction("Delete", "delete")))
	return r
}

func (f *fixture) panel(r *Row) *recPanel {
	f.t.Helper()
	p, ok := r.Panel().(*recPanel)
	if !ok {
		f.t.Fatalf("expected row %d to have a resolved recPanel; got %T", r.Index(), r.Panel())
	}
	return p
}

func (f *fixture) send(kind pointer.Kind, x, y float64) bool {
	return f.c.Dispatcher().Dispatch(pointer.Event{Kind: kind, Position: pointer.Pt(x, y), Button: pointer.ButtonPrimary})
}

func (f *fixture) press(x, y float64) bool   { return f.send(pointer.Press, x, y) }
func (f *fixture) move(x, y float64) bool    { return f.send(pointer.Move, x, y) }
func (f *fixture) release(x, y float64) bool { return f.send(pointer.Release, x, y) }

// holders counts registered rows holding the grab.
func (f *fixture) holders() int {
	n := 0
	for _, r := range f.c.Rows() {
		if r.HoldsGrab() {
			n++
		}
	}
	return n
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
