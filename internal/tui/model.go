package tui

import (
	"context"
	"fmt"
	"time"

	"swipelist/internal/config"
	"swipelist/internal/listrow"
	"swipelist/internal/model"
	"swipelist/internal/notify"
	"swipelist/internal/panel"
	"swipelist/internal/store"
	"swipelist/internal/theme"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	headerHeight = 1
	// scrollSettle is how long after the last wheel event the list counts
	// as still scrolling.
	scrollSettle = 200 * time.Millisecond
	wheelStep    = 3
)

type (
	entriesLoadedMsg struct {
		entries []model.Entry
		state   *model.ViewState
	}
	entryAddedMsg   struct{ entry model.Entry }
	entryUpdatedMsg struct{ entry model.Entry }
	entryDeletedMsg struct{ id string }
	entriesMovedMsg struct {
		id    string
		order []model.Entry
	}
	errMsg   struct{ err error }
	applyMsg struct{ fn func() }
)

// Model is the list screen. It owns the list coordinator and one row per
// entry; rows[i] always shows entries[i] and has index i.
type Model struct {
	ctx   context.Context
	store store.Store
	cfg   config.Config

	theme  *theme.Context
	sched  *teaScheduler
	coord  *listrow.Coordinator
	styles *panel.Registry

	entries []model.Entry
	rows    []*listrow.Row
	loaded  bool

	leading   *listrow.Actions
	trailing  *listrow.Actions
	doneAct   *listrow.Action
	deleteAct *listrow.Action
	editAct   *listrow.Action
	openAct   *listrow.Action

	keys keyMap
	help help.Model
	vp   viewport.Model

	width  int
	height int
	focus  int

	editor *editor
	status string

	dragFrom   int
	scrollEnd  listrow.Timer
	stateDirty bool
	cmds       []tea.Cmd
}

// New builds the list screen for st. Entries are loaded by Init.
func New(ctx context.Context, st store.Store, cfg config.Config) *Model {
	bus := notify.New()
	tctx := theme.NewContext(bus)
	tctx.SetUnits(theme.Units{GridUnit: cfg.Theme.GridUnit})
	tctx.SetStyle(cfg.Theme.Name, cfg.Theme.Version)

	m := &Model{
		ctx:      ctx,
		store:    st,
		cfg:      cfg,
		theme:    tctx,
		sched:    newTeaScheduler(),
		styles:   panel.NewRegistry(),
		keys:     defaultKeyMap(),
		help:     help.New(),
		vp:       viewport.New(0, 0),
		dragFrom: -1,
	}
	m.registerStyles()
	m.coord = listrow.NewCoordinator(m, listrow.Options{
		Scheduler:           m.sched,
		Theme:               tctx,
		Styles:              m.styles,
		SwipeThresholdUnits: cfg.Gesture.SwipeThresholdUnits,
		LongPress:           cfg.Gesture.LongPress(),
		ExpansionFlags:      flagsFromConfig(cfg.Expansion),
	})
	m.coord.OnChange(func(listrow.Change) { m.stateDirty = true })
	m.coord.OnDragUpdated(m.onDrag)
	m.buildActions()
	return m
}

func flagsFromConfig(c config.ExpansionConfig) listrow.ExpansionFlags {
	var f listrow.ExpansionFlags
	if c.Exclusive {
		f |= listrow.Exclusive
	}
	if c.UnlockExpanded {
		f |= listrow.UnlockExpanded
	}
	if c.CollapseOnOutsidePress {
		f |= listrow.CollapseOnOutsidePress
	}
	return f
}

// registerStyles makes the default swipe panel available under the
// configured style name for every version the app knows.
func (m *Model) registerStyles() {
	name := m.cfg.Theme.Name
	for _, v := range []string{"1.0", "1.3"} {
		if err := m.styles.Register(name, v, func() any { return panel.NewSwipe() }); err != nil {
			log.Warnw("register panel style", "name", name, "version", v, "err", err)
		}
	}
}

func (m *Model) buildActions() {
	m.doneAct = listrow.NewAction("Done", "select")
	m.deleteAct = listrow.NewAction("Delete", "delete")
	m.editAct = listrow.NewAction("Edit", "edit")
	m.openAct = listrow.NewAction("Open", "go-next")

	m.leading = listrow.NewActions(m.doneAct)
	m.trailing = listrow.NewActions(m.deleteAct, m.editAct)
	m.leading.SetOwner(m)
	m.trailing.SetOwner(m)

	m.doneAct.OnTriggered(m.withEntry(func(i int, e model.Entry) {
		m.cmds = append(m.cmds, m.setDoneCmd(e, !e.Done))
	}))
	m.deleteAct.OnTriggered(m.withEntry(func(i int, e model.Entry) {
		m.cmds = append(m.cmds, m.deleteCmd(e.ID))
	}))
	m.editAct.OnTriggered(m.withEntry(func(i int, e model.Entry) {
		m.focus = i
		m.editor = newEditor(editEntry, e, m.width)
	}))
	m.openAct.OnTriggered(m.withEntry(func(i int, e model.Entry) {
		if m.coord.SelectMode() {
			return
		}
		m.toggleExpanded(i)
	}))
}

// withEntry adapts an action observer; the payload is the row index.
func (m *Model) withEntry(fn func(i int, e model.Entry)) func(any) {
	return func(p any) {
		i, ok := p.(int)
		if !ok || i < 0 || i >= len(m.entries) {
			log.Warnw("action payload does not name an entry", "payload", p)
			return
		}
		fn(i, m.entries[i])
	}
}

func (m *Model) Init() tea.Cmd {
	return m.loadCmd()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	return m, tea.Batch(cmd, m.sched.drain())
}

// update handles msg and returns the commands it produced, without the
// scheduler's ticks.
func (m *Model) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width

	case timerMsg:
		m.sched.fire(msg.id)

	case applyMsg:
		if msg.fn != nil {
			msg.fn()
		}

	case tea.MouseMsg:
		if m.editor == nil {
			m.handleMouse(msg)
		}

	case tea.KeyMsg:
		if m.editor != nil {
			cmd = m.updateEditor(msg)
		} else {
			cmd = m.handleKey(msg)
		}

	case entriesLoadedMsg:
		m.setEntries(msg.entries)
		m.restoreViewState(msg.state)
		m.loaded = true

	case entryAddedMsg:
		m.appendEntry(msg.entry)
		m.focus = len(m.entries) - 1
		m.status = fmt.Sprintf("added %s", msg.entry.ID)

	case entryUpdatedMsg:
		if i := m.indexOf(msg.entry.ID); i >= 0 {
			m.entries[i] = msg.entry
		}

	case entryDeletedMsg:
		m.removeEntry(msg.id)
		m.status = fmt.Sprintf("deleted %s", msg.id)

	case entriesMovedMsg:
		if !m.sameOrder(msg.order) {
			log.Warnw("list order diverged from the store; reloading", "moved", msg.id)
			cmd = m.loadCmd()
		}

	case errMsg:
		m.status = msg.err.Error()
		log.Errorw("store operation failed", "err", msg.err)
	}

	m.refresh()
	m.saveViewStateIfDirty()
	cmds := append(m.cmds, cmd)
	m.cmds = nil
	return tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.stateDirty = true
		m.saveViewStateIfDirty()
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		m.moveFocus(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveFocus(1)
	case key.Matches(msg, m.keys.Expand):
		m.toggleExpanded(m.focus)
	case key.Matches(msg, m.keys.Select):
		if m.coord.SelectMode() {
			m.coord.LeaveSelectMode()
		} else {
			m.coord.EnterSelectMode()
		}
	case key.Matches(msg, m.keys.Toggle):
		if m.coord.SelectMode() && m.validIndex(m.focus) {
			m.coord.ToggleSelected(m.focus)
		}
	case key.Matches(msg, m.keys.Drag):
		if m.coord.DragMode() {
			m.coord.LeaveDragMode()
		} else {
			m.coord.EnterDragMode()
		}
	case key.Matches(msg, m.keys.Exclusive):
		f := m.coord.ExpansionFlags()
		if f&listrow.Exclusive != 0 {
			f &^= listrow.Exclusive | listrow.CollapseOnOutsidePress
		} else {
			f |= listrow.Exclusive
		}
		m.coord.SetExpansionFlags(f)
	case key.Matches(msg, m.keys.Add):
		m.editor = newEditor(editAdd, model.Entry{}, m.width)
		return m.editor.focusCmd()
	case key.Matches(msg, m.keys.Edit):
		if m.validIndex(m.focus) {
			m.editor = newEditor(editEntry, m.entries[m.focus], m.width)
			return m.editor.focusCmd()
		}
	case key.Matches(msg, m.keys.Done):
		if m.validIndex(m.focus) {
			e := m.entries[m.focus]
			return m.setDoneCmd(e, !e.Done)
		}
	case key.Matches(msg, m.keys.Delete):
		return m.deleteTargets()
	}
	return nil
}

// deleteTargets deletes the selection in select mode, else the focused entry.
func (m *Model) deleteTargets() tea.Cmd {
	var ids []string
	if m.coord.SelectMode() {
		for _, i := range m.coord.SelectedIndices() {
			if m.validIndex(i) {
				ids = append(ids, m.entries[i].ID)
			}
		}
	} else if m.validIndex(m.focus) {
		ids = append(ids, m.entries[m.focus].ID)
	}
	cmds := make([]tea.Cmd, 0, len(ids))
	for _, id := range ids {
		cmds = append(cmds, m.deleteCmd(id))
	}
	return tea.Batch(cmds...)
}

func (m *Model) updateEditor(msg tea.KeyMsg) tea.Cmd {
	res, cmd := m.editor.update(msg)
	switch res {
	case editorCancelled:
		m.editor = nil
	case editorSaved:
		ed := m.editor
		m.editor = nil
		title, body := ed.values()
		if ed.mode == editAdd {
			return m.addCmd(title, body)
		}
		return m.editCmd(ed.entry, title, body)
	}
	return cmd
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if delta, ok := isWheel(msg); ok {
		m.scroll(delta * wheelStep)
		return
	}
	ev, ok := pointerEvent(msg, m.origin())
	if !ok {
		return
	}
	ev.Time = time.Now()
	m.coord.Dispatcher().Dispatch(ev)
}

func (m *Model) origin() listOrigin {
	return listOrigin{top: headerHeight, offset: m.vp.YOffset}
}

// scroll moves the viewport and cancels row gestures that have not
// committed yet.
func (m *Model) scroll(lines int) {
	sc := m.coord.Scrollable()
	sc.BeginScroll()
	m.vp.SetYOffset(m.vp.YOffset + lines)
	if m.scrollEnd != nil {
		m.scrollEnd.Stop()
	}
	m.scrollEnd = m.sched.AfterFunc(scrollSettle, func() {
		m.scrollEnd = nil
		sc.EndScroll()
	})
	m.stateDirty = true
}

func (m *Model) validIndex(i int) bool { return i >= 0 && i < len(m.entries) }

func (m *Model) moveFocus(d int) {
	if len(m.entries) == 0 {
		m.focus = 0
		return
	}
	m.focus = max(0, min(len(m.entries)-1, m.focus+d))
	m.ensureVisible(m.focus)
}

func (m *Model) toggleExpanded(i int) {
	if !m.validIndex(i) {
		return
	}
	x := m.rows[i].Expansion()
	x.SetExpanded(!x.Expanded())
}

func (m *Model) saveViewStateIfDirty() {
	if !m.stateDirty || !m.loaded {
		return
	}
	m.stateDirty = false
	if err := m.store.SaveViewState(m.viewState()); err != nil {
		log.Warnw("save view state", "err", err)
	}
}

func (m *Model) viewState() *model.ViewState {
	st := &model.ViewState{Version: 1, ScrollOffset: m.vp.YOffset}
	for _, i := range m.coord.SelectedIndices() {
		if m.validIndex(i) {
			st.SelectedIDs = append(st.SelectedIDs, m.entries[i].ID)
		}
	}
	for _, i := range m.coord.ExpandedIndices() {
		if m.validIndex(i) {
			st.ExpandedIDs = append(st.ExpandedIDs, m.entries[i].ID)
		}
	}
	f := m.coord.ExpansionFlags()
	st.Exclusive = f&listrow.Exclusive != 0
	st.UnlockExpanded = f&listrow.UnlockExpanded != 0
	st.CollapseOnOutsidePress = f&listrow.CollapseOnOutsidePress != 0
	return st
}

func (m *Model) restoreViewState(st *model.ViewState) {
	if st == nil || !st.Saved {
		return
	}
	var f listrow.ExpansionFlags
	if st.Exclusive {
		f |= listrow.Exclusive
	}
	if st.UnlockExpanded {
		f |= listrow.UnlockExpanded
	}
	if st.CollapseOnOutsidePress {
		f |= listrow.CollapseOnOutsidePress
	}
	m.coord.SetExpansionFlags(f)

	var sel []int
	for _, id := range st.SelectedIDs {
		if i := m.indexOf(id); i >= 0 {
			sel = append(sel, i)
		}
	}
	m.coord.SetSelectedIndices(sel)
	for _, id := range st.ExpandedIDs {
		if i := m.indexOf(id); i >= 0 {
			m.rows[i].Expansion().SetExpanded(true)
		}
	}
	m.refresh()
	m.vp.SetYOffset(st.ScrollOffset)
}
