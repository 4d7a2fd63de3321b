package listrow

import (
	"sort"

	"swipelist/internal/pointer"
)

// ExpansionFlags tune the coordinator's expansion policy.
type ExpansionFlags uint8

const (
	// Exclusive keeps at most one row expanded.
	Exclusive ExpansionFlags = 1 << iota
	// UnlockExpanded allows swiping expanded rows.
	UnlockExpanded
	// CollapseOnOutsidePress collapses expanded rows when a press lands
	// outside all of them. Implies Exclusive.
	CollapseOnOutsidePress
)

func normalizeFlags(f ExpansionFlags) ExpansionFlags {
	if f&CollapseOnOutsidePress != 0 {
		f |= Exclusive
	}
	return f
}

func (f ExpansionFlags) String() string {
	if f == 0 {
		return "none"
	}
	s := ""
	add := func(name string) {
		if s != "" {
			s += "|"
		}
		s += name
	}
	if f&Exclusive != 0 {
		add("exclusive")
	}
	if f&UnlockExpanded != 0 {
		add("unlock-expanded")
	}
	if f&CollapseOnOutsidePress != 0 {
		add("collapse-on-outside-press")
	}
	return s
}

// RowRef is what the expansion registry keeps for an expanded index.
type RowRef interface {
	Index() int
	Bounds() pointer.Rect
}

// expansionObserver is implemented by refs that render expansion state.
type expansionObserver interface {
	applyExpanded(on bool)
}

type expansionEntry struct {
	ref RowRef
	seq uint64
}

// expansionRegistry maps model index to the row expanded at that index.
// An entry whose ref reports a different index is stale and is treated as
// absent by lookups.
type expansionRegistry struct {
	entries map[int]expansionEntry
	seq     uint64
}

func (x *expansionRegistry) set(i int, ref RowRef) {
	if x.entries == nil {
		x.entries = map[int]expansionEntry{}
	}
	x.seq++
	x.entries[i] = expansionEntry{ref: ref, seq: x.seq}
}

func (x *expansionRegistry) remove(i int) (RowRef, bool) {
	e, ok := x.entries[i]
	if !ok {
		return nil, false
	}
	delete(x.entries, i)
	return e.ref, true
}

func (x *expansionRegistry) lookup(i int) RowRef {
	e, ok := x.entries[i]
	if !ok || e.ref.Index() != i {
		return nil
	}
	return e.ref
}

// allIndices includes stale entries.
func (x *expansionRegistry) allIndices() []int {
	out := make([]int, 0, len(x.entries))
	for i := range x.entries {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

func (x *expansionRegistry) indices() []int {
	out := make([]int, 0, len(x.entries))
	for i, e := range x.entries {
		if e.ref.Index() == i {
			out = append(out, i)
		}
	}
	sort.Ints(out)
	return out
}

// latest returns the most recently expanded live index, or -1.
func (x *expansionRegistry) latest() int {
	best, idx := uint64(0), -1
	for i, e := range x.entries {
		if e.ref.Index() == i && e.seq > best {
			best, idx = e.seq, i
		}
	}
	return idx
}

// ExpansionFlags returns the current policy flags.
func (c *Coordinator) ExpansionFlags() ExpansionFlags { return c.flags }

// SetExpansionFlags changes the policy. Turning Exclusive on while several
// rows are expanded keeps the most recently expanded one. Turning
// UnlockExpanded off closes expanded rows that are swiped open.
func (c *Coordinator) SetExpansionFlags(f ExpansionFlags) {
	f = normalizeFlags(f)
	old := c.flags
	if old == f {
		return
	}
	c.flags = f
	if f&Exclusive != 0 && old&Exclusive == 0 {
		keep := c.expansion.latest()
		for _, i := range c.expansion.allIndices() {
			if i != keep {
				c.collapse(i)
			}
		}
	}
	if f&UnlockExpanded == 0 && old&UnlockExpanded != 0 {
		for _, r := range c.Rows() {
			if r.expansion.expanded && r.swipeActive {
				r.SnapOut()
			}
		}
	}
	c.publish(Change{Kind: ChangeExpansionFlags, Index: -1})
	c.syncOutsideFilter()
	c.broadcast()
}

// RequestExpand records ref as expanded at index. Under Exclusive every
// other expanded index collapses first, in ascending order, each with its
// own change notification.
func (c *Coordinator) RequestExpand(index int, ref RowRef) {
	if ref == nil || index < 0 {
		return
	}
	if e, ok := c.expansion.entries[index]; ok {
		if e.ref == ref {
			return
		}
		c.collapse(index)
	}
	if c.flags&Exclusive != 0 {
		for _, i := range c.expansion.allIndices() {
			if i != index {
				c.collapse(i)
			}
		}
	}
	c.expansion.set(index, ref)
	c.publish(Change{Kind: ChangeExpanded, Index: index})
	if o, ok := ref.(expansionObserver); ok {
		o.applyExpanded(true)
	}
	c.syncOutsideFilter()
}

// RequestCollapse collapses the row expanded at index, if any.
func (c *Coordinator) RequestCollapse(index int) {
	if c.collapse(index) {
		c.syncOutsideFilter()
	}
}

// CollapseAll collapses every expanded row in ascending index order.
func (c *Coordinator) CollapseAll() {
	for _, i := range c.expansion.allIndices() {
		c.collapse(i)
	}
	c.syncOutsideFilter()
}

func (c *Coordinator) collapse(index int) bool {
	ref, ok := c.expansion.remove(index)
	if !ok {
		return false
	}
	c.publish(Change{Kind: ChangeCollapsed, Index: index})
	if o, ok := ref.(expansionObserver); ok {
		o.applyExpanded(false)
	}
	return true
}

// IsExpanded reports whether a live entry exists for index.
func (c *Coordinator) IsExpanded(index int) bool { return c.expansion.lookup(index) != nil }

// ExpandedRow returns the ref expanded at index; stale entries yield nil.
func (c *Coordinator) ExpandedRow(index int) RowRef { return c.expansion.lookup(index) }

// ExpandedIndices lists expanded indices in ascending order.
func (c *Coordinator) ExpandedIndices() []int { return c.expansion.indices() }

// OutsidePressAt collapses all expanded rows when CollapseOnOutsidePress is
// set and pos is outside every expanded row. It reports whether anything
// collapsed.
func (c *Coordinator) OutsidePressAt(pos pointer.Point) bool {
	if c.flags&CollapseOnOutsidePress == 0 || len(c.expansion.entries) == 0 {
		return false
	}
	for i, e := range c.expansion.entries {
		if e.ref.Index() == i && e.ref.Bounds().Contains(pos) {
			return false
		}
	}
	c.CollapseAll()
	return true
}

// syncOutsideFilter keeps the coordinator's press filter installed exactly
// while CollapseOnOutsidePress applies to at least one expanded row.
func (c *Coordinator) syncOutsideFilter() {
	if c.flags&CollapseOnOutsidePress != 0 && len(c.expansion.entries) > 0 {
		c.disp.Filters.Install(c, func(ev pointer.Event) { c.OutsidePressAt(ev.Position) })
		return
	}
	c.disp.Filters.Remove(c)
}
