package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"swipelist/internal/config"
	"swipelist/internal/listrow"
	"swipelist/internal/model"
	"swipelist/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func testConfig() config.Config {
	return config.Config{
		Gesture:   config.GestureConfig{SwipeThresholdUnits: 1.5, LongPressMs: 500},
		Expansion: config.ExpansionConfig{Exclusive: true},
		Theme:     config.ThemeConfig{GridUnit: 1, Name: "Ambiance", Version: "1.3"},
	}
}

func newTestModel(t *testing.T, titles ...string) (*Model, store.Store) {
	t.Helper()
	ctx := context.Background()
	st := store.Store{Dir: filepath.Join(t.TempDir(), "entries")}
	if err := st.Init(ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}
	for _, title := range titles {
		if _, err := st.Add(ctx, title, ""); err != nil {
			t.Fatalf("Add %s: %v", title, err)
		}
	}
	m := New(ctx, st, testConfig())
	send(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	runCmd(t, m, m.Init())
	if !m.loaded || len(m.entries) != len(titles) {
		t.Fatalf("expected %d loaded entries; got %d (loaded=%v)", len(titles), len(m.entries), m.loaded)
	}
	return m, st
}

// send feeds msg to the model and runs the commands it returns. Scheduler
// ticks are never run; tests fire timers with flushTimers.
func send(t *testing.T, m *Model, msg tea.Msg) {
	t.Helper()
	runCmd(t, m, m.update(msg))
}

func runCmd(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case nil, tea.QuitMsg:
	case tea.BatchMsg:
		for _, c := range msg {
			runCmd(t, m, c)
		}
	default:
		send(t, m, msg)
	}
}

// flushTimers fires armed timers in arming order until none are left.
func flushTimers(t *testing.T, m *Model) {
	t.Helper()
	for n := 0; m.sched.pending() > 0; n++ {
		if n > 1000 {
			t.Fatalf("timers keep re-arming")
		}
		var next uint64
		for id := range m.sched.timers {
			if next == 0 || id < next {
				next = id
			}
		}
		send(t, m, timerMsg{id: next})
	}
	m.sched.drain()
}

func keyPress(t *testing.T, m *Model, s string) {
	t.Helper()
	send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func mouse(t *testing.T, m *Model, action tea.MouseAction, x, y int) {
	t.Helper()
	send(t, m, tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft})
}

func storedTitles(t *testing.T, st store.Store) []string {
	t.Helper()
	es, err := st.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.Title
	}
	return out
}

func swipeOpen(t *testing.T, m *Model) {
	t.Helper()
	mouse(t, m, tea.MouseActionPress, 40, 1)
	mouse(t, m, tea.MouseActionMotion, 20, 1)
	mouse(t, m, tea.MouseActionRelease, 20, 1)
	flushTimers(t, m)
}

func TestModel_SwipeRevealsTrailingActions(t *testing.T) {
	m, _ := newTestModel(t, "alpha", "beta")
	swipeOpen(t, m)

	if got := m.rows[0].ContentOffset().X; got != -20 {
		t.Fatalf("expected the row to settle open at -20; got %v", got)
	}
	view := m.View()
	if !strings.Contains(view, "Delete") || !strings.Contains(view, "Edit") {
		t.Fatalf("expected the trailing actions in the view; got:\n%s", view)
	}
	if m.rows[1].ContentOffset().X != 0 {
		t.Fatalf("expected the second row to stay closed")
	}
}

func TestModel_TapOnRevealedDeleteRemovesEntry(t *testing.T) {
	m, st := newTestModel(t, "alpha", "beta")
	swipeOpen(t, m)

	// Delete occupies columns 60-69 of the open row.
	mouse(t, m, tea.MouseActionPress, 65, 1)
	mouse(t, m, tea.MouseActionRelease, 65, 1)
	flushTimers(t, m)

	if got := storedTitles(t, st); len(got) != 1 || got[0] != "beta" {
		t.Fatalf("expected only beta to remain in the store; got %v", got)
	}
	if len(m.rows) != 1 || m.entries[0].Title != "beta" || m.rows[0].Index() != 0 {
		t.Fatalf("expected the list to drop the deleted row; got %d rows", len(m.rows))
	}
}

func TestModel_SelectionIsPersisted(t *testing.T) {
	m, st := newTestModel(t, "alpha", "beta")
	keyPress(t, m, "s")
	keyPress(t, m, "j")
	keyPress(t, m, " ")

	if !m.coord.SelectMode() || !m.coord.IsSelected(1) || m.coord.IsSelected(0) {
		t.Fatalf("expected only row 1 selected in select mode; got %v", m.coord.SelectedIndices())
	}
	vs, err := st.LoadViewState()
	if err != nil {
		t.Fatalf("LoadViewState: %v", err)
	}
	if len(vs.SelectedIDs) != 1 || vs.SelectedIDs[0] != m.entries[1].ID {
		t.Fatalf("expected the selected ID on disk; got %v", vs.SelectedIDs)
	}
	if !strings.Contains(m.View(), "[x]") {
		t.Fatalf("expected a checked box in the view")
	}
}

func TestModel_ExclusiveToggle(t *testing.T) {
	m, st := newTestModel(t, "alpha")
	if m.coord.ExpansionFlags()&listrow.Exclusive == 0 {
		t.Fatalf("expected exclusive from config")
	}
	keyPress(t, m, "x")
	if m.coord.ExpansionFlags()&listrow.Exclusive != 0 {
		t.Fatalf("expected x to turn exclusive off")
	}
	vs, err := st.LoadViewState()
	if err != nil {
		t.Fatalf("LoadViewState: %v", err)
	}
	if !vs.Saved || vs.Exclusive {
		t.Fatalf("expected a saved non-exclusive view state; got %+v", vs)
	}
}

func TestModel_ExpandShowsBody(t *testing.T) {
	m, _ := newTestModel(t, "alpha", "beta")
	keyPress(t, m, "e")
	flushTimers(t, m)

	if !m.coord.IsExpanded(0) {
		t.Fatalf("expected row 0 expanded")
	}
	if !strings.Contains(m.View(), "(no details)") {
		t.Fatalf("expected the empty body placeholder in the view")
	}
	if b := m.rows[1].Bounds(); b.Min.Y != 2 {
		t.Fatalf("expected row 1 pushed down by the body line; got %v", b)
	}
}

func TestModel_DragReorderPersists(t *testing.T) {
	m, st := newTestModel(t, "a", "b", "c")
	keyPress(t, m, "d")
	if !m.coord.DragMode() {
		t.Fatalf("expected drag mode")
	}

	mouse(t, m, tea.MouseActionPress, 78, 1)
	if !m.rows[0].Dragging() {
		t.Fatalf("expected the handle press to start a drag")
	}
	mouse(t, m, tea.MouseActionMotion, 78, 3)
	mouse(t, m, tea.MouseActionRelease, 78, 3)
	flushTimers(t, m)

	if got := storedTitles(t, st); strings.Join(got, ",") != "b,a,c" {
		t.Fatalf("expected stored order b,a,c; got %v", got)
	}
	for i, want := range []string{"b", "a", "c"} {
		if m.entries[i].Title != want || m.rows[i].Index() != i {
			t.Fatalf("expected %s at %d; got %s (row index %d)", want, i, m.entries[i].Title, m.rows[i].Index())
		}
	}
}

func TestModel_DragPressOffHandleIsIgnored(t *testing.T) {
	m, _ := newTestModel(t, "a", "b")
	keyPress(t, m, "d")
	mouse(t, m, tea.MouseActionPress, 10, 1)
	if m.rows[0].Dragging() || m.coord.DragSession() != nil {
		t.Fatalf("expected no drag from outside the handle")
	}
}

func TestModel_WheelCancelsPendingPress(t *testing.T) {
	m, _ := newTestModel(t, "alpha", "beta")
	mouse(t, m, tea.MouseActionPress, 40, 1)
	if !m.rows[0].Highlighted() {
		t.Fatalf("expected the press to highlight the row")
	}
	send(t, m, tea.MouseMsg{X: 40, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	if m.rows[0].Highlighted() {
		t.Fatalf("expected scrolling to cancel the press")
	}
	flushTimers(t, m)
	if m.coord.Scrollable().Scrolling() {
		t.Fatalf("expected scrolling to settle")
	}
}

func TestModel_RestoresSavedViewState(t *testing.T) {
	m, st := newTestModel(t, "alpha", "beta")
	err := st.SaveViewState(&model.ViewState{
		Version:     1,
		SelectedIDs: []string{m.entries[1].ID},
		ExpandedIDs: []string{m.entries[0].ID},
	})
	if err != nil {
		t.Fatalf("SaveViewState: %v", err)
	}

	m2 := New(context.Background(), st, testConfig())
	send(t, m2, tea.WindowSizeMsg{Width: 80, Height: 24})
	runCmd(t, m2, m2.Init())
	flushTimers(t, m2)

	if !m2.coord.IsSelected(1) || m2.coord.IsSelected(0) {
		t.Fatalf("expected row 1 selected; got %v", m2.coord.SelectedIndices())
	}
	if !m2.coord.IsExpanded(0) {
		t.Fatalf("expected row 0 expanded")
	}
	if m2.coord.ExpansionFlags()&listrow.Exclusive != 0 {
		t.Fatalf("expected the saved flags to replace the configured ones")
	}
}
