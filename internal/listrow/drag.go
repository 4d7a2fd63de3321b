package listrow

import (
	"swipelist/internal/pointer"
)

type DragStatus uint8

const (
	DragStarted DragStatus = iota + 1
	DragMoving
	DragDropped
)

func (s DragStatus) String() string {
	switch s {
	case DragStarted:
		return "started"
	case DragMoving:
		return "moving"
	case DragDropped:
		return "dropped"
	default:
		return "unknown"
	}
}

// DragSession is the transient reorder intent of one dragged row. The
// coordinator never moves model data itself; consumers act on Moving (live
// reorder) or Dropped.
//
// On Started a consumer may narrow MinIndex/MaxIndex. On Moving it may set
// Accept=false to defer the model change until Dropped; From then stays at
// the original index while To keeps tracking the pointer.
type DragSession struct {
	Status   DragStatus
	From     int
	To       int
	MinIndex int
	MaxIndex int
	Accept   bool

	row    *Row
	anchor float64
}

// Row is the row being dragged.
func (s *DragSession) Row() *Row { return s.row }

// DragSession returns the active session, if any.
func (c *Coordinator) DragSession() *DragSession { return c.drag }

func (c *Coordinator) DragMode() bool { return c.dragMode }

// EnterDragMode disables swiping for every row of the view and closes rows
// that are swiped open.
func (c *Coordinator) EnterDragMode() {
	if c.dragMode {
		return
	}
	c.dragMode = true
	for _, r := range c.Rows() {
		if r.g.locked || r.highlighted {
			r.cancelGesture()
		}
		if r.swipeActive || r.contentOffset.X != 0 {
			r.SnapOut()
		}
	}
	c.publish(Change{Kind: ChangeDragMode, Index: -1})
	c.broadcast()
}

// LeaveDragMode drops any session in flight.
func (c *Coordinator) LeaveDragMode() {
	if !c.dragMode {
		return
	}
	if s := c.drag; s != nil {
		s.row.endDrag()
	}
	c.dragMode = false
	c.publish(Change{Kind: ChangeDragMode, Index: -1})
	c.broadcast()
}

func (c *Coordinator) beginDrag(r *Row, pos pointer.Point) *DragSession {
	if c.drag != nil {
		return nil
	}
	s := &DragSession{
		Status:   DragStarted,
		From:     r.index,
		To:       r.index,
		MinIndex: 0,
		MaxIndex: c.count() - 1,
		Accept:   true,
		row:      r,
		anchor:   pos.Y - r.bounds.Min.Y,
	}
	if s.MaxIndex < r.index {
		s.MaxIndex = r.index
	}
	c.drag = s
	c.bus.Publish(topicDrag, s)
	if s.MinIndex > s.MaxIndex {
		s.MinIndex, s.MaxIndex = s.MaxIndex, s.MinIndex
	}
	return s
}

// updateDrag computes the target index for pointer y: rows above From are
// passed once the pointer is above their vertical midpoint, rows below once
// it is below theirs.
func (c *Coordinator) updateDrag(r *Row, pos pointer.Point) {
	s := c.drag
	if s == nil || s.row != r {
		return
	}
	to := s.From
	for _, x := range c.rows {
		if x == r {
			continue
		}
		i, mid := x.index, x.bounds.MidY()
		switch {
		case i < s.From && pos.Y < mid && i < to:
			to = i
		case i > s.From && pos.Y > mid && i > to:
			to = i
		}
	}
	if to < s.MinIndex {
		to = s.MinIndex
	}
	if to > s.MaxIndex {
		to = s.MaxIndex
	}
	if to == s.To {
		return
	}
	s.To = to
	s.Status = DragMoving
	s.Accept = true
	c.bus.Publish(topicDrag, s)
	if s.Accept {
		s.From = s.To
	}
}

func (c *Coordinator) endDrag(r *Row) {
	s := c.drag
	if s == nil || s.row != r {
		return
	}
	s.Status = DragDropped
	c.drag = nil
	c.bus.Publish(topicDrag, s)
}

// pressDrag starts a drag when the press lands on the panel's drag handle,
// or anywhere on the row when the panel declares none.
func (r *Row) pressDrag(ev pointer.Event) bool {
	c := r.coord
	if c.drag != nil {
		return false
	}
	if !r.ensurePanel() {
		return false
	}
	if hp, ok := r.panel.(DragHandleProvider); ok {
		if region, ok := hp.DragHandleRegion(); ok {
			if !region.Translate(r.bounds.Min).Contains(ev.Position) {
				return false
			}
		}
	} else {
		r.warnOnce("panel-drag-handle", "panel declares no drag handle; the whole row drags")
	}
	if c.beginDrag(r, ev.Position) == nil {
		return false
	}
	r.dragging = true
	r.dragOffset = 0
	r.g.lastPos = ev.Position
	r.acquireGrab()
	r.emitChanged()
	return true
}

func (r *Row) moveDrag(pos pointer.Point) {
	s := r.coord.drag
	if !r.dragging || s == nil {
		return
	}
	r.g.lastPos = pos
	r.dragOffset = pos.Y - r.bounds.Min.Y - s.anchor
	r.coord.updateDrag(r, pos)
	r.emitChanged()
}

// endDrag drops the session and settles the dragged row back to offset 0.
func (r *Row) endDrag() {
	if !r.dragging {
		return
	}
	r.dragging = false
	r.releaseGrab()
	if r.coord != nil {
		r.coord.endDrag(r)
	}
	if r.dragOffset == 0 {
		r.emitChanged()
		return
	}
	start := r.dragOffset
	r.animating++
	Animate(r.scheduler(), DropDuration,
		func(t float64) {
			r.dragOffset = start * (1 - t)
			r.emitChanged()
		},
		func() {
			r.dragOffset = 0
			r.emitChanged()
			r.endAnimation()
		})
}
