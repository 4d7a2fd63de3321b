package listrow

import (
	"fmt"
	"time"

	"swipelist/internal/pointer"
	"swipelist/internal/theme"
)

const (
	ExpandDuration = 160 * time.Millisecond
	DropDuration   = 120 * time.Millisecond
)

// Attach registers the row with c, detaching it from any previous
// coordinator first. The panel of a re-parented row is torn down and
// resolved again from the new view on next need.
func (r *Row) Attach(c *Coordinator) {
	if r.destroyed || r.coord == c {
		return
	}
	if r.coord != nil {
		r.detach()
	}
	if c == nil {
		return
	}
	r.coord = c
	c.register(r)
	if c.theme != nil {
		r.unitsCancel = c.theme.Bus.Subscribe(theme.TopicUnits, func(any) { r.emitChanged() })
	}
	r.emitChanged()
}

// Destroy ends any gesture in flight, releases the grab and the outside
// press filter, and deregisters the row. Destroy is idempotent.
func (r *Row) Destroy() {
	if r.destroyed {
		return
	}
	r.detach()
	r.destroyed = true
}

func (r *Row) Destroyed() bool { return r.destroyed }

func (r *Row) detach() {
	c := r.coord
	if c == nil {
		return
	}
	r.cancelGesture()
	if r.swipeActive || r.snapping || r.contentOffset.X != 0 {
		r.finishSnapOut()
	}
	if e := &r.expansion; e.running {
		e.stop()
		e.running = false
		e.stop = nil
	}
	r.animating = 0
	r.pending = nil
	r.leading.disconnect(r)
	r.trailing.disconnect(r)
	c.disp.Filters.Remove(r)
	c.disp.Grab.Release(r)
	c.deregister(r)
	r.teardownPanel()
	if r.unitsCancel != nil {
		r.unitsCancel()
		r.unitsCancel = nil
	}
	r.expansion.expanded = false
	r.expansion.state = ExpansionCollapsed
	r.expansion.progress = 0
	r.coord = nil
}

// ensurePanel resolves the row's panel on first need. A wrong-typed style
// is dropped with a warning and gesture-dependent features stay disabled.
func (r *Row) ensurePanel() bool {
	switch r.panelState {
	case panelReady:
		return true
	case panelInvalid:
		return false
	}
	c := r.coord
	if c == nil || c.styles == nil {
		return false
	}
	name, version := c.styleName()
	inst := c.arena.ensure(r.id, func() any { return c.styles.Resolve(name, version) })
	p, ok := inst.(ActionPanel)
	if !ok {
		c.arena.release(r.id)
		r.panelState = panelInvalid
		r.warnOnce("panel-type", "style did not resolve to an action panel; swipe, drag and expansion visuals disabled",
			"style", name, "version", version, "type", fmt.Sprintf("%T", inst))
		return false
	}
	r.panel = p
	r.panelState = panelReady
	p.Bind(r)
	return true
}

func (r *Row) teardownPanel() {
	if r.coord != nil {
		r.coord.arena.release(r.id)
	}
	r.panel = nil
	r.panelState = panelUnresolved
}

// SnapOut closes an open row. The panel animates the content back and the
// row becomes Idle once the animation reports completion.
func (r *Row) SnapOut() {
	if r.snapping || (!r.swipeActive && r.contentOffset.X == 0) {
		return
	}
	r.stopLongPress()
	r.stopScrollWatch()
	r.g.locked = false
	r.snapping = true
	r.animating++

	finished := false
	done := func() {
		if finished {
			return
		}
		finished = true
		r.finishSnapOut()
		r.endAnimation()
	}
	if rb, ok := r.panel.(Rebounder); ok {
		rb.OnRebound(r, done)
		return
	}
	if r.panelState == panelReady {
		r.warnOnce("panel-rebound", "panel does not implement rebound; content snaps back instantly")
	}
	done()
}

func (r *Row) finishSnapOut() {
	r.snapping = false
	r.swipeActive = false
	r.highlighted = false
	r.leading.disconnect(r)
	r.trailing.disconnect(r)
	if r.coord != nil {
		r.coord.disp.Filters.Remove(r)
	}
	r.releaseGrab()
	if r.contentOffset != (pointer.Point{}) {
		r.contentOffset = pointer.Point{}
		for _, fn := range r.contentMoved {
			fn(r, r.contentOffset)
		}
	}
	r.emitChanged()
}

// Scheduler is the coordinator's scheduler; panels animate with it.
func (r *Row) Scheduler() Scheduler { return r.scheduler() }

func (r *Row) scheduler() Scheduler {
	if r.coord == nil {
		return nil
	}
	return r.coord.sched
}

// endAnimation leaves the animating sub-state and replays a gesture that
// arrived meanwhile.
func (r *Row) endAnimation() {
	if r.animating > 0 {
		r.animating--
	}
	if r.animating > 0 || r.pending == nil || r.destroyed {
		return
	}
	p := r.pending
	r.pending = nil
	r.HandlePointer(p.press)
	if p.hasMove {
		r.HandlePointer(p.move)
	}
}

type ExpansionState uint8

const (
	ExpansionCollapsed ExpansionState = iota
	ExpansionExpanding
	ExpansionExpanded
	ExpansionCollapsing
)

func (s ExpansionState) String() string {
	switch s {
	case ExpansionExpanding:
		return "expanding"
	case ExpansionExpanded:
		return "expanded"
	case ExpansionCollapsing:
		return "collapsing"
	default:
		return "collapsed"
	}
}

// Expansion is the row's expandable detail region.
type Expansion struct {
	row      *Row
	expanded bool
	height   float64
	state    ExpansionState
	progress float64

	running bool
	stop    func()
}

// Expanded is the logical expansion flag. It flips immediately; State
// reports Collapsed only once the collapse animation has completed.
func (e *Expansion) Expanded() bool { return e.expanded }

func (e *Expansion) State() ExpansionState { return e.state }

// Progress is 0 when collapsed and 1 when fully expanded.
func (e *Expansion) Progress() float64 { return e.progress }

func (e *Expansion) Height() float64 { return e.height }

func (e *Expansion) SetHeight(h float64) {
	if h < 0 {
		h = 0
	}
	e.height = h
	e.row.emitChanged()
}

// SetExpanded requests expansion through the row's coordinator so the
// exclusivity policy applies.
func (e *Expansion) SetExpanded(on bool) {
	r := e.row
	if r.coord == nil {
		r.applyExpanded(on)
		return
	}
	if on {
		r.coord.RequestExpand(r.index, r)
	} else {
		r.coord.RequestCollapse(r.index)
	}
}

// applyExpanded is the coordinator's broadcast into the row.
func (r *Row) applyExpanded(on bool) {
	e := &r.expansion
	if e.expanded == on {
		return
	}
	e.expanded = on
	target := 0.0
	if on {
		r.ensurePanel()
		e.state = ExpansionExpanding
		target = 1
		if r.swipeActive && (r.coord == nil || r.coord.flags&UnlockExpanded == 0) {
			r.SnapOut()
		}
	} else {
		e.state = ExpansionCollapsing
	}

	if e.running {
		e.stop()
		e.running = false
		e.stop = nil
		r.animating--
	}
	e.running = true
	r.animating++
	start := e.progress
	stop := Animate(r.scheduler(), ExpandDuration,
		func(t float64) {
			e.progress = start + (target-start)*t
			r.emitChanged()
		},
		func() {
			if !e.running {
				return
			}
			e.running = false
			e.stop = nil
			e.progress = target
			if target == 1 {
				e.state = ExpansionExpanded
			} else {
				e.state = ExpansionCollapsed
			}
			r.emitChanged()
			r.endAnimation()
		})
	if e.running {
		e.stop = stop
	}
	r.emitChanged()
}
