package listrow

import (
	"math"

	"swipelist/internal/pointer"
)

// gesture is the per-row recognizer state for the current press.
type gesture struct {
	pressedPos pointer.Point
	lastPos    pointer.Point
	// locked is set once horizontal travel committed the press to a swipe.
	locked        bool
	suppressClick bool
	timer         Timer
	scrollCancel  func()

	// child is the content child that accepted the press, until stolen.
	child       pointer.Handler
	childOrigin pointer.Point
}

// pendingGesture is a press that arrived while the row was animating.
type pendingGesture struct {
	press   pointer.Event
	move    pointer.Event
	hasMove bool
}

// HandlePointer implements pointer.Handler.
func (r *Row) HandlePointer(ev pointer.Event) bool {
	if r.destroyed {
		return false
	}
	switch ev.Kind {
	case pointer.Press:
		return r.onPress(ev)
	case pointer.Move:
		return r.onMove(ev)
	case pointer.Release:
		return r.onRelease(ev)
	case pointer.Cancel:
		r.cancelGesture()
		return true
	}
	return false
}

// GrabCancelled implements pointer.Owner. Losing the grab mid-gesture ends
// the gesture as if the pointer had been released where it last was.
func (r *Row) GrabCancelled() {
	switch {
	case r.dragging:
		r.endDrag()
	case r.g.locked:
		r.finishSwipe(r.g.lastPos)
	default:
		r.cancelGesture()
	}
}

func (r *Row) onPress(ev pointer.Event) bool {
	if r.animating > 0 {
		r.pending = &pendingGesture{press: ev}
		return true
	}
	if r.coord != nil && r.coord.dragMode {
		return r.pressDrag(ev)
	}
	if r.coord != nil && r.coord.viewBounds.OnHorizontalEdge(ev.Position) {
		return false
	}
	if r.content != nil {
		if child := r.content.ChildAt(ev.Position); child != nil && child.HandlePointer(ev) {
			r.g.child = child
			r.g.childOrigin = ev.Position
			return true
		}
	}
	return r.press(ev)
}

// press highlights the row and arms the long-press timer.
func (r *Row) press(ev pointer.Event) bool {
	if !r.eligible() {
		return false
	}
	r.g.locked = false
	r.g.suppressClick = false
	r.g.pressedPos = ev.Position
	r.g.lastPos = ev.Position
	r.highlighted = true
	r.ensurePanel()
	r.acquireGrab()
	r.stopLongPress()
	if r.coord != nil && r.coord.sched != nil {
		r.g.timer = r.coord.sched.AfterFunc(r.longPressInterval(), r.onLongPress)
	}
	if r.g.scrollCancel != nil {
		r.g.scrollCancel()
	}
	r.g.scrollCancel = func() {}
	if r.coord != nil {
		r.g.scrollCancel = r.coord.scroll.OnScrollStart(r.onAncestorScroll)
	}
	r.emitChanged()
	return true
}

func (r *Row) onMove(ev pointer.Event) bool {
	if p := r.pending; p != nil {
		p.move = ev
		p.hasMove = true
		return true
	}
	if r.dragging {
		r.moveDrag(ev.Position)
		return true
	}
	if r.g.child != nil {
		d := ev.Position.Sub(r.g.childOrigin)
		if math.Abs(d.X) <= r.threshold() {
			return r.g.child.HandlePointer(ev)
		}
		// Take the gesture over from the child: cancel it, press where the
		// pointer is now and replay the move against the child's origin.
		child, origin := r.g.child, r.g.childOrigin
		r.g.child = nil
		child.HandlePointer(ev.At(pointer.Cancel, ev.Position))
		if !r.press(ev.At(pointer.Press, ev.Position)) {
			return false
		}
		r.g.pressedPos = origin
		r.g.lastPos = origin
		r.move(ev.Position)
		return true
	}
	if !r.highlighted && !r.g.locked {
		return false
	}
	r.move(ev.Position)
	return true
}

func (r *Row) move(pos pointer.Point) {
	if r.g.locked {
		r.updateSwipe(SwipeUpdated, pos)
		return
	}
	d := pos.Sub(r.g.pressedPos)
	thr := r.threshold()
	switch {
	case math.Abs(d.X) > thr:
		if r.canSwipe(d.X) {
			r.lockSwipe(pos)
			return
		}
		r.passThrough()
	case math.Abs(d.Y) > thr:
		r.passThrough()
	}
}

// canSwipe reports whether horizontal travel dx may commit to a swipe.
func (r *Row) canSwipe(dx float64) bool {
	if r.coord != nil {
		if r.coord.dragMode {
			return false
		}
		if r.expansion.expanded && r.coord.flags&UnlockExpanded == 0 {
			return false
		}
	}
	if !r.ensurePanel() {
		return false
	}
	if r.swipeActive {
		// Already open: any direction moves the content, the panel clamps.
		return true
	}
	if dx > 0 {
		return r.leading != nil
	}
	return r.trailing != nil
}

func (r *Row) lockSwipe(pos pointer.Point) {
	r.g.locked = true
	r.stopLongPress()
	r.stopScrollWatch()
	if !r.swipeActive {
		r.swipeActive = true
		r.leading.connect(r)
		if r.trailing != r.leading {
			r.trailing.connect(r)
		}
		if r.coord != nil {
			r.coord.disp.Filters.Install(r, r.outsidePress)
		}
	}
	r.updateSwipe(SwipeStarted, r.g.pressedPos)
	r.updateSwipe(SwipeUpdated, pos)
}

func (r *Row) updateSwipe(status SwipeStatus, to pointer.Point) {
	from := r.g.lastPos
	ev := SwipeEvent{
		Status:  status,
		To:      to,
		From:    from,
		Content: pointer.Point{X: r.contentOffset.X + (to.X - from.X), Y: r.contentOffset.Y},
	}
	if h, ok := r.panel.(SwipeHandler); ok {
		h.OnSwipeEvent(&ev)
	} else {
		r.warnOnce("panel-swipe", "panel does not handle swipe events; content follows the pointer unclamped")
	}
	r.g.lastPos = to
	if r.snapping || !r.swipeActive {
		// The panel started a rebound from inside the handler; it owns the
		// content offset from here on.
		return
	}
	r.SetContentOffset(ev.Content)
}

// passThrough hands the gesture back to the ancestor: no swipe, no click.
func (r *Row) passThrough() {
	r.cancelGesture()
	if !r.swipeActive && r.contentOffset.X != 0 {
		r.SetContentOffset(pointer.Point{})
	}
}

func (r *Row) onRelease(ev pointer.Event) bool {
	if r.pending != nil {
		r.pending = nil
		return true
	}
	if r.dragging {
		r.moveDrag(ev.Position)
		r.endDrag()
		return true
	}
	if child := r.g.child; child != nil {
		r.g.child = nil
		return child.HandlePointer(ev)
	}
	r.stopLongPress()
	r.stopScrollWatch()

	switch {
	case r.g.locked:
		r.finishSwipe(ev.Position)
		return true
	case r.swipeActive:
		// A tap on an open row triggers the action under the pointer, if
		// any, and closes the row.
		r.highlighted = false
		r.releaseGrab()
		if loc, ok := r.panel.(ActionLocator); ok {
			if a := loc.ActionAt(ev.Position); a != nil {
				a.triggerFrom(r)
			}
		}
		r.SnapOut()
		return true
	case r.highlighted:
		suppressed := r.g.suppressClick
		r.g.suppressClick = false
		if !suppressed {
			r.click()
		}
		r.rebound()
		return true
	}
	return false
}

func (r *Row) finishSwipe(pos pointer.Point) {
	r.updateSwipe(SwipeFinished, pos)
	r.g.locked = false
	r.highlighted = false
	r.releaseGrab()
	if r.contentOffset.X == 0 && !r.snapping {
		r.finishSnapOut()
	}
	r.emitChanged()
}

func (r *Row) click() {
	if r.coord != nil && r.coord.selectMode {
		r.coord.ToggleSelected(r.index)
	}
	for _, fn := range r.clicked {
		fn(r)
	}
	if r.main != nil {
		r.main.triggerFrom(r)
	}
}

// rebound returns an unswiped row to Idle.
func (r *Row) rebound() {
	r.highlighted = false
	r.releaseGrab()
	if r.contentOffset.X != 0 {
		r.SnapOut()
		return
	}
	r.emitChanged()
}

func (r *Row) onLongPress() {
	r.g.timer = nil
	if r.destroyed || !r.highlighted || r.g.locked || r.swipeActive {
		return
	}
	r.g.suppressClick = true
	for _, fn := range r.pressAndHold {
		fn(r)
	}
}

func (r *Row) onAncestorScroll() {
	if r.g.locked || r.dragging {
		return
	}
	r.cancelGesture()
}

// cancelGesture drops an uncommitted press without click or long-press.
func (r *Row) cancelGesture() {
	r.pending = nil
	r.stopLongPress()
	r.stopScrollWatch()
	if child := r.g.child; child != nil {
		r.g.child = nil
		child.HandlePointer(pointer.Event{Kind: pointer.Cancel, Position: r.g.childOrigin})
	}
	if r.dragging {
		r.endDrag()
	}
	wasLocked := r.g.locked
	r.g.locked = false
	r.g.suppressClick = false
	changed := r.highlighted
	r.highlighted = false
	r.releaseGrab()
	if wasLocked && r.contentOffset.X == 0 {
		r.finishSnapOut()
	}
	if changed {
		r.emitChanged()
	}
}

func (r *Row) stopLongPress() {
	if r.g.timer != nil {
		r.g.timer.Stop()
		r.g.timer = nil
	}
}

func (r *Row) stopScrollWatch() {
	if r.g.scrollCancel != nil {
		r.g.scrollCancel()
		r.g.scrollCancel = nil
	}
}

func (r *Row) outsidePress(ev pointer.Event) {
	if r.bounds.Contains(ev.Position) {
		return
	}
	r.SnapOut()
}

func (r *Row) acquireGrab() {
	if r.coord != nil {
		r.coord.disp.Grab.Acquire(r)
	}
}

func (r *Row) releaseGrab() {
	if r.coord != nil {
		r.coord.disp.Grab.Release(r)
	}
}

// HoldsGrab reports whether the row currently captures the pointer.
func (r *Row) HoldsGrab() bool {
	return r.coord != nil && r.coord.disp.Grab.HeldBy(r)
}
