package listrow

import (
	"sync"
	"time"

	"swipelist/internal/notify"
	"swipelist/internal/pointer"
	"swipelist/internal/theme"
)

const (
	topicChange notify.Topic = "listrow.change"
	topicDrag   notify.Topic = "listrow.drag"
)

// Options configures a Coordinator. Zero values get defaults.
type Options struct {
	Scheduler  Scheduler
	Theme      *theme.Context
	Styles     StyleResolver
	Dispatcher *pointer.Dispatcher
	Scrollable *Scrollable

	SwipeThresholdUnits float64
	LongPress           time.Duration
	ExpansionFlags      ExpansionFlags
}

type ChangeKind uint8

const (
	ChangeSelectMode ChangeKind = iota + 1
	ChangeSelection
	ChangeDragMode
	ChangeExpanded
	ChangeCollapsed
	ChangeExpansionFlags
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeSelectMode:
		return "select-mode"
	case ChangeSelection:
		return "selection"
	case ChangeDragMode:
		return "drag-mode"
	case ChangeExpanded:
		return "expanded"
	case ChangeCollapsed:
		return "collapsed"
	case ChangeExpansionFlags:
		return "expansion-flags"
	default:
		return "unknown"
	}
}

// Change describes one coordinator state change. Index is -1 when the
// change is not about a single row.
type Change struct {
	Kind  ChangeKind
	Index int
}

// Coordinator is the per-view controller for cross-row state: selection,
// drag mode and the drag session, and the expansion registry. It never
// owns rows; rows register and deregister themselves.
type Coordinator struct {
	owner any
	views *Views
	opts  Options

	sched  Scheduler
	theme  *theme.Context
	styles StyleResolver
	disp   *pointer.Dispatcher
	scroll *Scrollable
	bus    *notify.Bus

	viewBounds pointer.Rect
	rows       []*Row
	modelCount int

	selectMode bool
	selected   map[int]struct{}

	dragMode bool
	drag     *DragSession

	flags     ExpansionFlags
	expansion expansionRegistry

	arena panelArena
}

func NewCoordinator(owner any, opts Options) *Coordinator {
	c := &Coordinator{
		owner:      owner,
		opts:       opts,
		sched:      opts.Scheduler,
		theme:      opts.Theme,
		styles:     opts.Styles,
		disp:       opts.Dispatcher,
		scroll:     opts.Scrollable,
		bus:        notify.New(),
		modelCount: -1,
		selected:   map[int]struct{}{},
	}
	if c.theme == nil {
		c.theme = theme.NewContext(nil)
	}
	if c.disp == nil {
		c.disp = &pointer.Dispatcher{}
	}
	if c.scroll == nil {
		c.scroll = NewScrollable()
	}
	c.flags = normalizeFlags(opts.ExpansionFlags)
	return c
}

func (c *Coordinator) Owner() any                      { return c.owner }
func (c *Coordinator) Dispatcher() *pointer.Dispatcher { return c.disp }
func (c *Coordinator) Scrollable() *Scrollable         { return c.scroll }
func (c *Coordinator) Theme() *theme.Context           { return c.theme }

// SetViewBounds records the view's geometry; presses exactly on its
// horizontal edges are left to edge-scroll gestures.
func (c *Coordinator) SetViewBounds(b pointer.Rect) { c.viewBounds = b }

// Rows returns the registered rows in registration order.
func (c *Coordinator) Rows() []*Row { return append([]*Row(nil), c.rows...) }

// RowAt returns the registered row with the given index.
func (c *Coordinator) RowAt(i int) *Row {
	for _, r := range c.rows {
		if r.index == i {
			return r
		}
	}
	return nil
}

// Reindex assigns indices from sibling order.
func (c *Coordinator) Reindex(order []*Row) {
	for i, r := range order {
		if r != nil && r.coord == c {
			r.SetIndex(i)
		}
	}
}

// OnChange subscribes to coordinator changes.
func (c *Coordinator) OnChange(fn func(Change)) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	return c.bus.Subscribe(topicChange, func(p any) { fn(p.(Change)) })
}

// OnDragUpdated subscribes to drag session events (the dragUpdated signal).
// Handlers may set MinIndex/MaxIndex on Started and Accept on Moving.
func (c *Coordinator) OnDragUpdated(fn func(*DragSession)) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	return c.bus.Subscribe(topicDrag, func(p any) { fn(p.(*DragSession)) })
}

func (c *Coordinator) publish(ch Change) {
	c.bus.Publish(topicChange, ch)
}

// broadcast lets every registered row refresh its derived state.
func (c *Coordinator) broadcast() {
	for _, r := range append([]*Row(nil), c.rows...) {
		r.emitChanged()
	}
}

func (c *Coordinator) register(r *Row) {
	for _, x := range c.rows {
		if x == r {
			return
		}
	}
	c.rows = append(c.rows, r)
	c.disp.Add(r)
}

func (c *Coordinator) deregister(r *Row) {
	for i, x := range c.rows {
		if x == r {
			c.rows = append(c.rows[:i], c.rows[i+1:]...)
			break
		}
	}
	c.disp.Remove(r)
	if c.drag != nil && c.drag.row == r {
		c.endDrag(r)
	}
	if _, ok := c.selected[r.index]; ok {
		delete(c.selected, r.index)
		c.publish(Change{Kind: ChangeSelection, Index: r.index})
	}
	// The row may have been renumbered since it expanded, so match by ref.
	removed := false
	for _, i := range c.expansion.allIndices() {
		if c.expansion.entries[i].ref == RowRef(r) {
			c.expansion.remove(i)
			c.publish(Change{Kind: ChangeCollapsed, Index: i})
			removed = true
		}
	}
	if removed {
		c.syncOutsideFilter()
	}
}

func (c *Coordinator) styleName() (string, string) {
	return c.theme.Style()
}

// SetModelCount revalidates index bookkeeping after the model changed
// size: selection and expansion entries past the end, and expansion
// entries whose row moved, are dropped.
func (c *Coordinator) SetModelCount(n int) {
	if n < 0 {
		n = -1
	}
	c.modelCount = n
	if n < 0 {
		return
	}
	selChanged := false
	for i := range c.selected {
		if i >= n {
			delete(c.selected, i)
			selChanged = true
		}
	}
	if selChanged {
		c.publish(Change{Kind: ChangeSelection, Index: -1})
	}
	for _, i := range c.expansion.allIndices() {
		e := c.expansion.entries[i]
		if i >= n || e.ref.Index() != i {
			c.collapse(i)
		}
	}
	c.syncOutsideFilter()
	c.broadcast()
}

func (c *Coordinator) ModelCount() int { return c.modelCount }

func (c *Coordinator) count() int {
	if c.modelCount >= 0 {
		return c.modelCount
	}
	n := 0
	for _, r := range c.rows {
		if r.index+1 > n {
			n = r.index + 1
		}
	}
	return n
}

// AdjustIndices renumbers selection and expansion after a model edit:
// delta > 0 inserts delta rows at from, delta < 0 removes -delta rows
// starting at from.
func (c *Coordinator) AdjustIndices(from, delta int) {
	if delta == 0 {
		return
	}
	shift := func(i int) (int, bool) {
		if i < from {
			return i, true
		}
		if delta < 0 && i < from-delta {
			return 0, false
		}
		return i + delta, true
	}

	sel := make(map[int]struct{}, len(c.selected))
	for i := range c.selected {
		if j, ok := shift(i); ok {
			sel[j] = struct{}{}
		}
	}
	c.selected = sel

	entries := make(map[int]expansionEntry, len(c.expansion.entries))
	for i, e := range c.expansion.entries {
		if j, ok := shift(i); ok {
			entries[j] = e
		}
	}
	c.expansion.entries = entries
	if c.modelCount >= 0 {
		c.modelCount += delta
		if c.modelCount < 0 {
			c.modelCount = 0
		}
	}
	c.publish(Change{Kind: ChangeSelection, Index: -1})
	c.syncOutsideFilter()
	c.broadcast()
}

// MoveIndex renumbers selection and expansion after the model moved the
// entry at from to to.
func (c *Coordinator) MoveIndex(from, to int) {
	if from == to || from < 0 || to < 0 {
		return
	}
	remap := func(i int) int {
		switch {
		case i == from:
			return to
		case from < to && i > from && i <= to:
			return i - 1
		case to < from && i >= to && i < from:
			return i + 1
		}
		return i
	}
	sel := make(map[int]struct{}, len(c.selected))
	for i := range c.selected {
		sel[remap(i)] = struct{}{}
	}
	c.selected = sel
	entries := make(map[int]expansionEntry, len(c.expansion.entries))
	for i, e := range c.expansion.entries {
		entries[remap(i)] = e
	}
	c.expansion.entries = entries
	c.publish(Change{Kind: ChangeSelection, Index: -1})
	c.syncOutsideFilter()
	c.broadcast()
}

// Views hands out one Coordinator per container, created on first access.
type Views struct {
	mu      sync.Mutex
	opts    Options
	byOwner map[any]*Coordinator
}

func NewViews(opts Options) *Views {
	return &Views{opts: opts, byOwner: map[any]*Coordinator{}}
}

func (v *Views) For(owner any) *Coordinator {
	v.mu.Lock()
	defer v.mu.Unlock()
	if c, ok := v.byOwner[owner]; ok {
		return c
	}
	c := NewCoordinator(owner, v.opts)
	c.views = v
	v.byOwner[owner] = c
	return c
}

// Drop forgets the coordinator of owner, destroying rows still attached.
func (v *Views) Drop(owner any) {
	v.mu.Lock()
	c, ok := v.byOwner[owner]
	delete(v.byOwner, owner)
	v.mu.Unlock()
	if !ok {
		return
	}
	for _, r := range c.Rows() {
		r.Destroy()
	}
}
