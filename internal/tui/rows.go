package tui

import (
	"context"
	"math"

	"swipelist/internal/listrow"
	"swipelist/internal/model"
	"swipelist/internal/pointer"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m *Model) newRow() *listrow.Row {
	r := listrow.NewRow(listrow.RowOptions{})
	r.SetLeadingActions(m.leading)
	r.SetTrailingActions(m.trailing)
	r.SetMainAction(m.openAct)
	r.OnClicked(func(r *listrow.Row) { m.focus = r.Index() })
	r.OnPressAndHold(func(r *listrow.Row) {
		m.focus = r.Index()
		if !m.coord.SelectMode() {
			m.coord.EnterSelectMode()
		}
		if !m.coord.IsSelected(r.Index()) {
			m.coord.ToggleSelected(r.Index())
		}
	})
	r.Attach(m.coord)
	return r
}

// setEntries replaces the list wholesale, reusing rows of entries that
// survive. Index-keyed selection and expansion cannot follow an arbitrary
// reorder, so both are re-validated against the new count.
func (m *Model) setEntries(es []model.Entry) {
	byID := make(map[string]*listrow.Row, len(m.rows))
	for i, r := range m.rows {
		byID[m.entries[i].ID] = r
	}
	rows := make([]*listrow.Row, len(es))
	for i, e := range es {
		if r, ok := byID[e.ID]; ok {
			rows[i] = r
			delete(byID, e.ID)
			continue
		}
		rows[i] = m.newRow()
	}
	for _, r := range byID {
		r.Destroy()
	}
	m.entries, m.rows = es, rows
	m.coord.Reindex(rows)
	m.coord.SetModelCount(len(es))
	m.focus = max(0, min(m.focus, len(es)-1))
}

func (m *Model) appendEntry(e model.Entry) {
	m.entries = append(m.entries, e)
	r := m.newRow()
	m.rows = append(m.rows, r)
	r.SetIndex(len(m.rows) - 1)
	m.coord.SetModelCount(len(m.entries))
}

func (m *Model) removeEntry(id string) {
	i := m.indexOf(id)
	if i < 0 {
		return
	}
	m.rows[i].Destroy()
	m.entries = append(m.entries[:i], m.entries[i+1:]...)
	m.rows = append(m.rows[:i], m.rows[i+1:]...)
	m.coord.AdjustIndices(i, -1)
	m.coord.Reindex(m.rows)
	m.coord.SetModelCount(len(m.entries))
	m.focus = max(0, min(m.focus, len(m.entries)-1))
}

func (m *Model) indexOf(id string) int {
	for i, e := range m.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (m *Model) sameOrder(es []model.Entry) bool {
	if len(es) != len(m.entries) {
		return false
	}
	for i := range es {
		if es[i].ID != m.entries[i].ID {
			return false
		}
	}
	return true
}

// moveEntry moves the entry (and its row) at from to to.
func (m *Model) moveEntry(from, to int) {
	if from == to || !m.validIndex(from) || !m.validIndex(to) {
		return
	}
	e, r := m.entries[from], m.rows[from]
	m.entries = append(m.entries[:from], m.entries[from+1:]...)
	m.rows = append(m.rows[:from], m.rows[from+1:]...)
	m.entries = append(m.entries[:to], append([]model.Entry{e}, m.entries[to:]...)...)
	m.rows = append(m.rows[:to], append([]*listrow.Row{r}, m.rows[to:]...)...)
	m.coord.MoveIndex(from, to)
	m.coord.Reindex(m.rows)
	if m.focus == from {
		m.focus = to
	}
}

// onDrag reorders live while the pointer moves and persists the final
// position on drop.
func (m *Model) onDrag(s *listrow.DragSession) {
	switch s.Status {
	case listrow.DragStarted:
		m.dragFrom = s.From
	case listrow.DragMoving:
		m.moveEntry(s.From, s.To)
		m.layout()
	case listrow.DragDropped:
		from := m.dragFrom
		m.dragFrom = -1
		r := s.Row()
		if r == nil || r.Destroyed() || from == r.Index() {
			return
		}
		i := r.Index()
		if !m.validIndex(i) {
			return
		}
		m.cmds = append(m.cmds, m.moveCmd(m.entries[i].ID, i))
	}
}

// layout assigns each row its bounds in list coordinates: one line for the
// title plus the visible share of the expanded body.
func (m *Model) layout() {
	y := 0.0
	w := float64(m.width)
	for i, r := range m.rows {
		lines := m.bodyLines(i)
		x := r.Expansion()
		if x.Height() != float64(len(lines)) {
			x.SetHeight(float64(len(lines)))
		}
		h := 1 + visibleBodyLines(x.Progress(), len(lines))
		r.SetBounds(pointer.R(0, y, w, y+float64(h)))
		y += float64(h)
	}
}

func visibleBodyLines(progress float64, n int) int {
	return int(math.Round(progress * float64(n)))
}

func (m *Model) listHeight() int {
	h := m.height - headerHeight - lipgloss.Height(m.help.View(m.keys))
	return max(h, 1)
}

// ensureVisible scrolls the viewport so row i is on screen.
func (m *Model) ensureVisible(i int) {
	if !m.validIndex(i) {
		return
	}
	b := m.rows[i].Bounds()
	top, bottom := int(b.Min.Y), int(b.Max.Y)
	switch {
	case top < m.vp.YOffset:
		m.vp.SetYOffset(top)
	case bottom > m.vp.YOffset+m.vp.Height:
		m.vp.SetYOffset(bottom - m.vp.Height)
	}
}

// refresh lays the rows out and re-renders the viewport content.
func (m *Model) refresh() {
	m.layout()
	m.vp.Width = m.width
	m.vp.Height = m.listHeight()
	off := m.vp.YOffset
	m.vp.SetContent(m.renderList())
	m.vp.SetYOffset(off)
	m.coord.SetViewBounds(pointer.R(0, float64(m.vp.YOffset), float64(m.width), float64(m.vp.YOffset+m.vp.Height)))
}

func (m *Model) loadCmd() tea.Cmd {
	st := m.store
	ctx := m.ctx
	return func() tea.Msg {
		es, err := st.List(ctx)
		if err != nil {
			return errMsg{err}
		}
		vs, err := st.LoadViewState()
		if err != nil {
			return errMsg{err}
		}
		return entriesLoadedMsg{entries: es, state: vs}
	}
}

func (m *Model) addCmd(title, body string) tea.Cmd {
	st, ctx := m.store, m.ctx
	return func() tea.Msg {
		e, err := st.Add(ctx, title, body)
		if err != nil {
			return errMsg{err}
		}
		return entryAddedMsg{entry: e}
	}
}

func (m *Model) editCmd(e model.Entry, title, body string) tea.Cmd {
	st := m.store
	return m.updateCmd(e.ID, func(ctx context.Context) error { return st.Edit(ctx, e.ID, title, body) })
}

func (m *Model) setDoneCmd(e model.Entry, done bool) tea.Cmd {
	st := m.store
	return m.updateCmd(e.ID, func(ctx context.Context) error { return st.SetDone(ctx, e.ID, done) })
}

// updateCmd runs write and reports the entry as stored afterwards.
func (m *Model) updateCmd(id string, write func(context.Context) error) tea.Cmd {
	st, ctx := m.store, m.ctx
	return func() tea.Msg {
		if err := write(ctx); err != nil {
			return errMsg{err}
		}
		e, err := st.Get(ctx, id)
		if err != nil {
			return errMsg{err}
		}
		return entryUpdatedMsg{entry: e}
	}
}

func (m *Model) deleteCmd(id string) tea.Cmd {
	st, ctx := m.store, m.ctx
	return func() tea.Msg {
		if err := st.Delete(ctx, id); err != nil {
			return errMsg{err}
		}
		return entryDeletedMsg{id: id}
	}
}

func (m *Model) moveCmd(id string, index int) tea.Cmd {
	st, ctx := m.store, m.ctx
	return func() tea.Msg {
		order, err := st.Move(ctx, id, index)
		if err != nil {
			return errMsg{err}
		}
		return entriesMovedMsg{id: id, order: order}
	}
}
