package tui

import (
	"swipelist/internal/model"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type editMode int

const (
	editAdd editMode = iota
	editEntry
)

type editorResult int

const (
	editorOpen editorResult = iota
	editorSaved
	editorCancelled
)

// editor is the modal for adding or editing an entry: a title line and a
// markdown body. Tab switches fields, ctrl+s saves, esc cancels.
type editor struct {
	mode      editMode
	entry     model.Entry
	title     textinput.Model
	body      textarea.Model
	focusBody bool
}

func newEditor(mode editMode, e model.Entry, width int) *editor {
	ti := textinput.New()
	ti.Placeholder = "Title"
	ti.Prompt = "Title: "
	ti.CharLimit = 200
	ti.SetValue(e.Title)
	ti.Focus()

	ta := textarea.New()
	ta.Placeholder = "Details (markdown)"
	// bubbles v0.20 defaults to a small limit.
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetWidth(max(width-4, 20))
	ta.SetHeight(8)
	ta.SetValue(e.Body)
	ta.Blur()

	return &editor{mode: mode, entry: e, title: ti, body: ta}
}

func (e *editor) focusCmd() tea.Cmd { return textinput.Blink }

func (e *editor) values() (title, body string) {
	return e.title.Value(), e.body.Value()
}

func (e *editor) update(msg tea.KeyMsg) (editorResult, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return editorCancelled, nil
	case "ctrl+s":
		return editorSaved, nil
	case "enter":
		if !e.focusBody {
			return editorSaved, nil
		}
	case "tab", "shift+tab":
		e.focusBody = !e.focusBody
		if e.focusBody {
			e.title.Blur()
			return editorOpen, e.body.Focus()
		}
		e.body.Blur()
		return editorOpen, e.title.Focus()
	}
	var cmd tea.Cmd
	if e.focusBody {
		e.body, cmd = e.body.Update(msg)
	} else {
		e.title, cmd = e.title.Update(msg)
	}
	return editorOpen, cmd
}

var editorFrame = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)

func (e *editor) view(width, height int) string {
	heading := "New entry"
	if e.mode == editEntry {
		heading = "Edit " + e.entry.ID
	}
	hint := lipgloss.NewStyle().Faint(true).Render("tab: switch field · enter/ctrl+s: save · esc: cancel")
	box := editorFrame.Width(max(width-2, 20)).Render(
		lipgloss.JoinVertical(lipgloss.Left, headerStyle.Render(heading), e.title.View(), "", e.body.View(), hint),
	)
	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, box)
}
