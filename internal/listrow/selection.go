package listrow

import "sort"

func (c *Coordinator) SelectMode() bool { return c.selectMode }

// EnterSelectMode turns on multi-selection. Clicks on rows then toggle
// their selection. Any open row closes.
func (c *Coordinator) EnterSelectMode() {
	if c.selectMode {
		return
	}
	c.selectMode = true
	for _, r := range c.Rows() {
		if r.swipeActive {
			r.SnapOut()
		}
	}
	c.publish(Change{Kind: ChangeSelectMode, Index: -1})
	c.broadcast()
}

// LeaveSelectMode turns multi-selection off. The selected indices are kept
// so a consumer can still act on them.
func (c *Coordinator) LeaveSelectMode() {
	if !c.selectMode {
		return
	}
	c.selectMode = false
	c.publish(Change{Kind: ChangeSelectMode, Index: -1})
	c.broadcast()
}

// ToggleSelected flips the selection of index. Toggling twice restores the
// original set. It is a no-op outside select mode.
func (c *Coordinator) ToggleSelected(index int) {
	if !c.selectMode || index < 0 {
		return
	}
	if _, ok := c.selected[index]; ok {
		delete(c.selected, index)
	} else {
		c.selected[index] = struct{}{}
	}
	c.publish(Change{Kind: ChangeSelection, Index: index})
	c.broadcast()
}

// IsSelected reports whether index is selected. Indices past the known
// model count are never selected.
func (c *Coordinator) IsSelected(index int) bool {
	if index < 0 || (c.modelCount >= 0 && index >= c.modelCount) {
		return false
	}
	_, ok := c.selected[index]
	return ok
}

// SelectedIndices returns the selection in ascending order.
func (c *Coordinator) SelectedIndices() []int {
	out := make([]int, 0, len(c.selected))
	for i := range c.selected {
		if c.IsSelected(i) {
			out = append(out, i)
		}
	}
	sort.Ints(out)
	return out
}

// SetSelectedIndices replaces the selection. Negative and duplicate
// indices are ignored.
func (c *Coordinator) SetSelectedIndices(indices []int) {
	sel := make(map[int]struct{}, len(indices))
	for _, i := range indices {
		if i >= 0 {
			sel[i] = struct{}{}
		}
	}
	c.selected = sel
	c.publish(Change{Kind: ChangeSelection, Index: -1})
	c.broadcast()
}

func (c *Coordinator) ClearSelection() {
	if len(c.selected) == 0 {
		return
	}
	c.SetSelectedIndices(nil)
}
