package tui

import (
	"fmt"
	"math"
	"strings"

	"swipelist/internal/listrow"
	"swipelist/internal/panel"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const (
	handleGlyph = "≡"
	bodyIndent  = 4
)

type bodyCacheEntry struct {
	body  string
	width int
	lines []string
}

var bodyCache = map[string]bodyCacheEntry{}

// bodyLines is the rendered body of entry i, at least one line.
func (m *Model) bodyLines(i int) []string {
	e := m.entries[i]
	width := max(m.width-bodyIndent, 10)
	if c, ok := bodyCache[e.ID]; ok && c.body == e.Body && c.width == width {
		return c.lines
	}
	out := renderBody(e.Body, width)
	lines := []string{lipgloss.NewStyle().Faint(true).Render("(no details)")}
	if out != "" {
		lines = strings.Split(out, "\n")
	}
	bodyCache[e.ID] = bodyCacheEntry{body: e.Body, width: width, lines: lines}
	return lines
}

func (m *Model) renderList() string {
	if len(m.rows) == 0 {
		return lipgloss.NewStyle().Faint(true).Render("  No entries. Press a to add one.")
	}
	var b strings.Builder
	for i := range m.rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(m.renderRow(i))
	}
	return b.String()
}

func (m *Model) renderRow(i int) string {
	r, e := m.rows[i], m.entries[i]
	pal := m.theme.Palette()
	w := max(m.width, 1)

	bg := r.Color()
	switch {
	case r.Selected():
		bg = pal.Selected
	case r.Highlighted() || r.Dragging():
		bg = r.HighlightColor()
	}
	base := lipgloss.NewStyle().Background(bg).Foreground(pal.Foreground)

	gutter := "  "
	if i == m.focus {
		gutter = "› "
	}
	var mark string
	if m.coord.SelectMode() {
		mark = "[ ] "
		if r.Selected() {
			mark = "[x] "
		}
	}
	check := "○ "
	if e.Done {
		check = "✓ "
	}
	prefix := gutter + mark + check

	sw, _ := r.Panel().(*panel.Swipe)
	handle := ""
	if m.coord.DragMode() {
		handle = " " + handleGlyph + " "
		if sw != nil {
			handle = " " + sw.Handle(handleGlyph) + " "
		}
	}
	avail := max(w-xansi.StringWidth(prefix)-xansi.StringWidth(handle), 0)
	title := xansi.Truncate(e.Title, avail, "…")
	titleStyle := base
	if e.Done {
		titleStyle = titleStyle.Strikethrough(true).Faint(true)
	}
	pad := strings.Repeat(" ", max(avail-xansi.StringWidth(title), 0))
	line := base.Render(prefix) + titleStyle.Render(title) + base.Render(pad) + base.Render(handle)
	line = shiftLine(line, w, r.ContentOffset().X, sw)

	lines := []string{line}
	if n := visibleBodyLines(r.Expansion().Progress(), int(r.Expansion().Height())); n > 0 {
		body := m.bodyLines(i)
		indent := strings.Repeat(" ", bodyIndent)
		for _, l := range body[:min(n, len(body))] {
			lines = append(lines, xansi.Truncate(indent+l, w, ""))
		}
	}
	return strings.Join(lines, "\n")
}

// shiftLine displaces a w-cell line by the swipe offset and fills the
// uncovered side with the panel's revealed actions.
func shiftLine(line string, w int, offset float64, sw *panel.Swipe) string {
	off := int(math.Round(offset))
	if off == 0 {
		return line
	}
	off = max(-w, min(w, off))
	n := off
	if n < 0 {
		n = -n
	}
	strip := strings.Repeat(" ", n)
	if sw != nil {
		if s, _ := sw.Revealed(); xansi.StringWidth(s) == n {
			strip = s
		}
	}
	if off < 0 {
		return xansi.Cut(line, n, w) + strip
	}
	return strip + xansi.Cut(line, 0, w-n)
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	badgeStyle  = lipgloss.NewStyle().Reverse(true).Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Faint(true)
)

func (m *Model) header() string {
	parts := []string{headerStyle.Render(fmt.Sprintf("swipelist · %d", len(m.entries)))}
	if m.coord.SelectMode() {
		parts = append(parts, badgeStyle.Render(fmt.Sprintf("select %d", len(m.coord.SelectedIndices()))))
	}
	if m.coord.DragMode() {
		parts = append(parts, badgeStyle.Render("drag"))
	}
	if m.coord.ExpansionFlags()&listrow.Exclusive != 0 {
		parts = append(parts, badgeStyle.Render("exclusive"))
	}
	if m.status != "" {
		parts = append(parts, statusStyle.Render(m.status))
	}
	return xansi.Truncate(strings.Join(parts, " "), max(m.width, 1), "…")
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.editor != nil {
		return m.editor.view(m.width, m.height)
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.header(), m.vp.View(), m.help.View(m.keys))
}
