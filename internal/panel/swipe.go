package panel

import (
	"math"
	"strings"
	"time"

	"swipelist/internal/listrow"
	"swipelist/internal/pointer"
	"swipelist/internal/theme"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const (
	// DefaultSnapRatio is the share of the action extent a released swipe
	// must cover to stay open.
	DefaultSnapRatio = 0.5
	// DefaultActionUnits is the width of one revealed action in grid units.
	DefaultActionUnits = 10.0
	// DefaultHandleUnits is the width of the drag handle at the row's end.
	DefaultHandleUnits = 3.0

	ReboundDuration = 120 * time.Millisecond
)

// Swipe is the default action panel: it reveals leading actions on the
// left and trailing actions on the right, clamps the content to the width
// of the revealed actions and settles the row open or closed on release.
type Swipe struct {
	SnapRatio   float64
	ActionUnits float64
	HandleUnits float64

	// LeadingRegions and TrailingRegions trigger an action on release when
	// the swipe covered the matching share of the row width.
	LeadingRegions  *Regions
	TrailingRegions *Regions

	row     *listrow.Row
	units   theme.Units
	palette theme.Palette
	styles  swipeStyles
	cancels []func()
	stop    func()

	origin      pointer.Point
	startOffset float64
}

type swipeStyles struct {
	leading  lipgloss.Style
	trailing lipgloss.Style
	handle   lipgloss.Style
}

func NewSwipe() *Swipe {
	s := &Swipe{
		SnapRatio:   DefaultSnapRatio,
		ActionUnits: DefaultActionUnits,
		HandleUnits: DefaultHandleUnits,
		units:       theme.Units{GridUnit: theme.DefaultGridUnit},
		palette:     theme.DefaultPalette(),
	}
	s.restyle()
	return s
}

// Bind implements listrow.ActionPanel.
func (s *Swipe) Bind(r *listrow.Row) {
	s.row = r
	c := r.Coordinator()
	if c == nil || c.Theme() == nil {
		return
	}
	ctx := c.Theme()
	s.units = ctx.Units()
	s.palette = ctx.Palette()
	s.restyle()
	s.cancels = append(s.cancels,
		ctx.Bus.Subscribe(theme.TopicPalette, func(p any) {
			if pal, ok := p.(theme.Palette); ok {
				s.palette = pal
				s.restyle()
			}
		}),
		ctx.Bus.Subscribe(theme.TopicUnits, func(p any) {
			if u, ok := p.(theme.Units); ok {
				s.units = u
			}
		}),
	)
}

func (s *Swipe) restyle() {
	fg := s.palette.PanelForeground
	s.styles = swipeStyles{
		leading:  lipgloss.NewStyle().Background(s.palette.LeadingPanel).Foreground(fg).Bold(true),
		trailing: lipgloss.NewStyle().Background(s.palette.TrailingPanel).Foreground(fg).Bold(true),
		handle:   lipgloss.NewStyle().Foreground(s.palette.Muted),
	}
}

func (s *Swipe) actionWidth() float64 {
	u := s.ActionUnits
	if u <= 0 {
		u = DefaultActionUnits
	}
	return s.units.Dp(u)
}

// Extents returns how far the content may move right (leading) and left
// (trailing). A side without actions has no extent.
func (s *Swipe) Extents() (leading, trailing float64) {
	if s.row == nil {
		return 0, 0
	}
	w := s.actionWidth()
	return float64(s.row.LeadingActions().Len()) * w, float64(s.row.TrailingActions().Len()) * w
}

// OnSwipeEvent implements listrow.SwipeHandler.
func (s *Swipe) OnSwipeEvent(ev *listrow.SwipeEvent) {
	if ev.Status == listrow.SwipeStarted {
		s.stopAnimation()
		s.origin = ev.To
		s.startOffset = s.row.ContentOffset().X
	}
	lead, trail := s.Extents()
	x := math.Max(-trail, math.Min(lead, ev.Content.X))
	ev.Content.X = x
	if ev.Status != listrow.SwipeFinished {
		return
	}

	raw := s.startOffset + (ev.To.X - s.origin.X)
	if width := s.row.Bounds().Dx(); width > 0 && raw != 0 {
		regions := s.TrailingRegions
		if raw > 0 {
			regions = s.LeadingRegions
		}
		if reg, ok := regions.Match(math.Abs(raw) / width); ok && reg.Action != nil {
			s.row.TriggerAction(reg.Action)
			s.row.SnapOut()
			return
		}
	}

	ext := trail
	if x > 0 {
		ext = lead
	}
	ratio := s.SnapRatio
	if ratio <= 0 {
		ratio = DefaultSnapRatio
	}
	if ext <= 0 || math.Abs(x) < ratio*ext {
		s.row.SnapOut()
		return
	}
	target := math.Copysign(ext, x)
	sched := s.row.Scheduler()
	if sched == nil {
		ev.Content.X = target
		return
	}
	from, r := x, s.row
	s.stop = listrow.Animate(sched, ReboundDuration, func(t float64) {
		r.SetContentOffset(pointer.Point{X: from + (target-from)*t})
	}, func() { s.stop = nil })
}

// OnRebound implements listrow.Rebounder.
func (s *Swipe) OnRebound(r *listrow.Row, done func()) {
	s.stopAnimation()
	from := r.ContentOffset().X
	if from == 0 {
		done()
		return
	}
	s.stop = listrow.Animate(r.Scheduler(), ReboundDuration, func(t float64) {
		r.SetContentOffset(pointer.Point{X: from * (1 - t)})
	}, func() {
		s.stop = nil
		done()
	})
}

func (s *Swipe) stopAnimation() {
	if s.stop != nil {
		s.stop()
		s.stop = nil
	}
}

// ActionAt implements listrow.ActionLocator.
func (s *Swipe) ActionAt(p pointer.Point) *listrow.Action {
	if s.row == nil {
		return nil
	}
	b := s.row.Bounds()
	off := s.row.ContentOffset().X
	w := s.actionWidth()
	if w <= 0 || !b.Contains(p) {
		return nil
	}
	switch {
	case off > 0 && p.X < b.Min.X+off:
		return s.row.LeadingActions().At(int((p.X - b.Min.X) / w))
	case off < 0 && p.X >= b.Max.X+off:
		return s.row.TrailingActions().At(int((p.X - (b.Max.X + off)) / w))
	}
	return nil
}

// DragHandleRegion implements listrow.DragHandleProvider: a strip at the
// right end of the row.
func (s *Swipe) DragHandleRegion() (pointer.Rect, bool) {
	if s.row == nil {
		return pointer.Rect{}, false
	}
	b := s.row.Bounds()
	w := s.units.Dp(s.HandleUnits)
	if w <= 0 || w > b.Dx() {
		return pointer.Rect{}, false
	}
	return pointer.R(b.Dx()-w, 0, b.Dx(), b.Dy()), true
}

// Release implements listrow.Releaser.
func (s *Swipe) Release() {
	s.stopAnimation()
	for _, c := range s.cancels {
		c()
	}
	s.cancels = nil
	s.row = nil
}

// Revealed renders the strip uncovered by the current content offset, and
// whether it sits on the left (leading) side. The strip is width cells wide.
func (s *Swipe) Revealed() (strip string, leading bool) {
	if s.row == nil {
		return "", false
	}
	off := s.row.ContentOffset().X
	width := int(math.Round(math.Abs(off)))
	if width <= 0 {
		return "", off > 0
	}
	cell := int(math.Round(s.actionWidth()))
	if cell < 1 {
		cell = 1
	}
	if off > 0 {
		return s.renderActions(s.row.LeadingActions(), s.styles.leading, cell, width, true), true
	}
	return s.renderActions(s.row.TrailingActions(), s.styles.trailing, cell, width, false), false
}

func (s *Swipe) renderActions(a *listrow.Actions, st lipgloss.Style, cell, width int, leading bool) string {
	var b strings.Builder
	for _, act := range a.Items() {
		label := act.Text
		if xansi.StringWidth(label) > cell-2 {
			label = xansi.Cut(label, 0, max(cell-2, 0))
		}
		item := st.Width(cell).Align(lipgloss.Center)
		if act.Disabled {
			item = item.Faint(true)
		}
		b.WriteString(item.Render(label))
	}
	full := b.String()
	if pad := width - xansi.StringWidth(full); pad > 0 {
		fill := st.Render(strings.Repeat(" ", pad))
		if leading {
			full += fill
		} else {
			full = fill + full
		}
	}
	if leading {
		return xansi.Cut(full, 0, width)
	}
	total := xansi.StringWidth(full)
	return xansi.Cut(full, total-width, total)
}

// Handle renders the drag handle glyph.
func (s *Swipe) Handle(glyph string) string {
	return s.styles.handle.Render(glyph)
}
