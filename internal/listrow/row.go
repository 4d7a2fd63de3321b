package listrow

import (
	"time"

	"swipelist/internal/pointer"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

const (
	// DefaultSwipeThresholdUnits is the horizontal distance, in grid units,
	// a press must travel before it commits to a swipe.
	DefaultSwipeThresholdUnits = 1.5
	DefaultLongPress           = 500 * time.Millisecond
)

// Content is the row's content slot. ChildAt returns the interactive child
// under p, if any; such a child gets the first chance at a press.
type Content interface {
	ChildAt(p pointer.Point) pointer.Handler
}

type State uint8

const (
	StateIdle State = iota
	StateHighlighted
	StateSwiping
	StateDragging
)

func (s State) String() string {
	switch s {
	case StateHighlighted:
		return "highlighted"
	case StateSwiping:
		return "swiping"
	case StateDragging:
		return "dragging"
	default:
		return "idle"
	}
}

type Divider struct {
	Visible     bool
	LeftMargin  float64
	RightMargin float64
	Color       lipgloss.TerminalColor
}

type panelState uint8

const (
	panelUnresolved panelState = iota
	panelReady
	panelInvalid
)

type RowOptions struct {
	Content             Content
	SwipeThresholdUnits float64
	LongPress           time.Duration
}

// Row is one interactive list entry. All methods must be called on the
// event loop that dispatches pointer events.
type Row struct {
	id    string
	index int
	coord *Coordinator

	bounds    pointer.Rect
	content   Content
	divider   Divider
	expansion Expansion

	leading  *Actions
	trailing *Actions
	main     *Action

	color          lipgloss.TerminalColor
	highlightColor lipgloss.TerminalColor

	thresholdUnits float64
	longPress      time.Duration
	unitsCancel    func()

	highlighted   bool
	swipeActive   bool
	snapping      bool
	dragging      bool
	contentOffset pointer.Point
	dragOffset    float64

	g         gesture
	animating int
	pending   *pendingGesture

	panel      ActionPanel
	panelState panelState

	clicked      []func(*Row)
	pressAndHold []func(*Row)
	changed      []func(*Row)
	contentMoved []func(*Row, pointer.Point)

	warned    map[string]bool
	destroyed bool
}

func NewRow(opts RowOptions) *Row {
	r := &Row{
		id:             uuid.NewString(),
		content:        opts.Content,
		thresholdUnits: opts.SwipeThresholdUnits,
		longPress:      opts.LongPress,
		divider:        Divider{Visible: true},
	}
	r.expansion.row = r
	return r
}

// ID is the row's identity; it keys the row's panel instance.
func (r *Row) ID() string { return r.id }

func (r *Row) Index() int { return r.index }

// SetIndex records the model-provided index of the row. Coordinator
// bookkeeping keyed by the old index is not renumbered here; see
// Coordinator.AdjustIndices.
func (r *Row) SetIndex(i int) {
	if r.index == i {
		return
	}
	r.index = i
	r.emitChanged()
}

func (r *Row) Bounds() pointer.Rect { return r.bounds }

// SetBounds places the row in view coordinates.
func (r *Row) SetBounds(b pointer.Rect) { r.bounds = b }

func (r *Row) ContentItem() Content { return r.content }

func (r *Row) Divider() Divider { return r.divider }

func (r *Row) SetDivider(d Divider) {
	r.divider = d
	r.emitChanged()
}

func (r *Row) Expansion() *Expansion { return &r.expansion }

func (r *Row) Color() lipgloss.TerminalColor {
	if r.color != nil {
		return r.color
	}
	if r.coord != nil && r.coord.theme != nil {
		return r.coord.theme.Palette().Background
	}
	return lipgloss.NoColor{}
}

func (r *Row) SetColor(c lipgloss.TerminalColor) { r.color = c; r.emitChanged() }

func (r *Row) HighlightColor() lipgloss.TerminalColor {
	if r.highlightColor != nil {
		return r.highlightColor
	}
	if r.coord != nil && r.coord.theme != nil {
		return r.coord.theme.Palette().Highlight
	}
	return lipgloss.NoColor{}
}

func (r *Row) SetHighlightColor(c lipgloss.TerminalColor) { r.highlightColor = c; r.emitChanged() }

func (r *Row) LeadingActions() *Actions  { return r.leading }
func (r *Row) TrailingActions() *Actions { return r.trailing }
func (r *Row) MainAction() *Action       { return r.main }

// SetLeadingActions assigns the actions revealed by a rightward swipe. A
// container owned by another row is rejected and the previous assignment
// stays in place.
func (r *Row) SetLeadingActions(a *Actions) bool {
	if !r.acceptActions(a, "leading") {
		return false
	}
	if r.leading != a {
		r.leading.disconnect(r)
		r.leading = a
		r.emitChanged()
	}
	return true
}

func (r *Row) SetTrailingActions(a *Actions) bool {
	if !r.acceptActions(a, "trailing") {
		return false
	}
	if r.trailing != a {
		r.trailing.disconnect(r)
		r.trailing = a
		r.emitChanged()
	}
	return true
}

func (r *Row) acceptActions(a *Actions, side string) bool {
	if a == nil {
		return true
	}
	if owner, ok := a.owner.(*Row); ok && owner != r {
		r.warnOnce("actions-owner-"+side, "actions container is owned by another row; assignment ignored", "side", side, "owner", owner.index)
		return false
	}
	return true
}

func (r *Row) SetMainAction(a *Action) { r.main = a; r.emitChanged() }

// SwipeThresholdUnits is the swipe lock distance in grid units.
func (r *Row) SwipeThresholdUnits() float64 {
	if r.thresholdUnits > 0 {
		return r.thresholdUnits
	}
	if r.coord != nil && r.coord.opts.SwipeThresholdUnits > 0 {
		return r.coord.opts.SwipeThresholdUnits
	}
	return DefaultSwipeThresholdUnits
}

func (r *Row) SetSwipeThresholdUnits(u float64) { r.thresholdUnits = u }

// threshold is the lock distance in view coordinates.
func (r *Row) threshold() float64 {
	u := r.SwipeThresholdUnits()
	if r.coord != nil && r.coord.theme != nil {
		return r.coord.theme.Units().Dp(u)
	}
	return u
}

func (r *Row) longPressInterval() time.Duration {
	if r.longPress > 0 {
		return r.longPress
	}
	if r.coord != nil && r.coord.opts.LongPress > 0 {
		return r.coord.opts.LongPress
	}
	return DefaultLongPress
}

func (r *Row) Highlighted() bool { return r.highlighted }

// Swiped reports whether the content is displaced by a swipe. It is never
// true while the content offset is zero.
func (r *Row) Swiped() bool { return r.swipeActive && r.contentOffset.X != 0 }

func (r *Row) Dragging() bool { return r.dragging }

// DragOffset is the vertical displacement of a row being dragged.
func (r *Row) DragOffset() float64 { return r.dragOffset }

func (r *Row) ContentOffset() pointer.Point { return r.contentOffset }

// SetContentOffset moves the content. Panels call this while animating.
func (r *Row) SetContentOffset(p pointer.Point) {
	if r.dragging {
		p.X = 0
	}
	if r.contentOffset == p {
		return
	}
	r.contentOffset = p
	for _, fn := range r.contentMoved {
		fn(r, p)
	}
	r.emitChanged()
}

func (r *Row) State() State {
	switch {
	case r.dragging:
		return StateDragging
	case r.swipeActive:
		return StateSwiping
	case r.highlighted:
		return StateHighlighted
	default:
		return StateIdle
	}
}

// Animating reports whether a settle animation is running; gestures on the
// row are coalesced until it completes.
func (r *Row) Animating() bool { return r.animating > 0 }

func (r *Row) Selected() bool {
	return r.coord != nil && r.coord.IsSelected(r.index)
}

// SetSelected adds or removes the row from the coordinator's selection.
// It is a no-op outside select mode.
func (r *Row) SetSelected(on bool) {
	if r.coord == nil || !r.coord.selectMode {
		return
	}
	if r.coord.IsSelected(r.index) != on {
		r.coord.ToggleSelected(r.index)
	}
}

func (r *Row) SelectMode() bool { return r.coord != nil && r.coord.SelectMode() }
func (r *Row) DragMode() bool   { return r.coord != nil && r.coord.DragMode() }

// Panel returns the row's panel instance if one has been resolved.
func (r *Row) Panel() ActionPanel { return r.panel }

// PanelResolved reports whether the panel was instantiated. It stays false
// until the row is first highlighted, swiped, dragged or expanded.
func (r *Row) PanelResolved() bool { return r.panelState == panelReady }

func (r *Row) Coordinator() *Coordinator { return r.coord }

// AttachedViewItems returns the coordinator attached to owner. A nil owner,
// or the owner of the row's own coordinator, yields the row's coordinator.
func (r *Row) AttachedViewItems(owner any) *Coordinator {
	if r.coord == nil {
		return nil
	}
	if owner == nil || owner == r.coord.owner {
		return r.coord
	}
	if r.coord.views != nil {
		return r.coord.views.For(owner)
	}
	return nil
}

func (r *Row) OnClicked(fn func(*Row)) {
	if fn != nil {
		r.clicked = append(r.clicked, fn)
	}
}

func (r *Row) OnPressAndHold(fn func(*Row)) {
	if fn != nil {
		r.pressAndHold = append(r.pressAndHold, fn)
	}
}

// OnContentMoved is notified whenever the content offset changes.
func (r *Row) OnContentMoved(fn func(*Row, pointer.Point)) {
	if fn != nil {
		r.contentMoved = append(r.contentMoved, fn)
	}
}

// OnChanged is notified after any visible state change.
func (r *Row) OnChanged(fn func(*Row)) {
	if fn != nil {
		r.changed = append(r.changed, fn)
	}
}

func (r *Row) emitChanged() {
	for _, fn := range r.changed {
		fn(r)
	}
}

// eligible reports whether a press should highlight the row.
func (r *Row) eligible() bool {
	return r.leading != nil || r.trailing != nil || r.main != nil ||
		len(r.clicked) > 0 || len(r.pressAndHold) > 0
}
