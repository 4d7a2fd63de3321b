package panel

import (
	"strings"
	"testing"

	"swipelist/internal/listrow"
	"swipelist/internal/pointer"
	"swipelist/internal/theme"

	xansi "github.com/charmbracelet/x/ansi"
)

func TestRegistry_ResolveVersions(t *testing.T) {
	reg := NewRegistry()
	for _, v := range []string{"1.3", "1.1", "2.0"} {
		v := v
		if err := reg.Register("Ambiance", v, func() any { return v }); err != nil {
			t.Fatalf("register %s: %v", v, err)
		}
	}
	cases := []struct {
		want    string
		version string
	}{
		{"1.3", "1.3"},
		{"1.3", "1.4"},
		{"1.1", "1.2"},
		{"", "1.0"},
		{"2.0", "2.5"},
		{"", "3.0"},
	}
	for _, tc := range cases {
		got := reg.Resolve("Ambiance", tc.version)
		if tc.want == "" {
			if got != nil {
				t.Fatalf("expected nil for %s; got %v", tc.version, got)
			}
			continue
		}
		if got != tc.want {
			t.Fatalf("expected %s for request %s; got %v", tc.want, tc.version, got)
		}
	}
	if reg.Resolve("Unknown", "1.3") != nil {
		t.Fatalf("expected unknown style to resolve to nil")
	}
	if got := strings.Join(reg.Versions("Ambiance"), ","); got != "1.1,1.3,2.0" {
		t.Fatalf("expected sorted versions; got %s", got)
	}
	if err := reg.Register("Ambiance", "one", func() any { return nil }); err == nil {
		t.Fatalf("expected an invalid version to be rejected")
	}
}

func TestRegions_FirstDeclaredWins(t *testing.T) {
	a := listrow.NewAction("A", "")
	b := listrow.NewAction("B", "")
	rs := NewRegions(
		Region{From: 0.2, To: 0.6, Action: a},
		Region{From: 0.4, To: 0.8, Action: b},
		Region{From: 0.9, To: 0.9},
	)
	if rs.Len() != 2 {
		t.Fatalf("expected the empty region dropped; got %d", rs.Len())
	}
	if r, ok := rs.Match(0.5); !ok || r.Action != a {
		t.Fatalf("expected the first declared region at 0.5")
	}
	if r, ok := rs.Match(0.7); !ok || r.Action != b {
		t.Fatalf("expected the second region at 0.7")
	}
	if _, ok := rs.Match(0.9); ok {
		t.Fatalf("expected no region at 0.9")
	}
	var none *Regions
	if _, ok := none.Match(0.5); ok {
		t.Fatalf("expected nil regions to match nothing")
	}
}

type swipeFixture struct {
	sched *listrow.ManualScheduler
	ctx   *theme.Context
	c     *listrow.Coordinator
	row   *listrow.Row
	panel *Swipe
	edit  *listrow.Action
	del   *listrow.Action
}

func newSwipeFixture(t *testing.T, setup func(*Swipe)) *swipeFixture {
	t.Helper()
	f := &swipeFixture{sched: &listrow.ManualScheduler{}, ctx: theme.NewContext(nil)}
	reg := NewRegistry()
	if err := reg.Register("Ambiance", "1.3", func() any {
		f.panel = NewSwipe()
		if setup != nil {
			setup(f.panel)
		}
		return f.panel
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	f.c = listrow.NewCoordinator("view", listrow.Options{Scheduler: f.sched, Theme: f.ctx, Styles: reg})
	f.edit = listrow.NewAction("Edit", "edit")
	f.del = listrow.NewAction("Delete", "delete")
	f.row = listrow.NewRow(listrow.RowOptions{})
	f.row.SetBounds(pointer.R(0, 0, 80, 1))
	f.row.SetTrailingActions(listrow.NewActions(f.edit, f.del))
	f.row.Attach(f.c)
	return f
}

func (f *swipeFixture) send(kind pointer.Kind, x float64) {
	f.c.Dispatcher().Dispatch(pointer.Event{Kind: kind, Position: pointer.Pt(x, 0)})
}

func (f *swipeFixture) swipe(from, to float64) {
	f.send(pointer.Press, from)
	f.send(pointer.Move, to)
	f.send(pointer.Release, to)
}

func TestSwipe_ClampsToTrailingExtent(t *testing.T) {
	f := newSwipeFixture(t, nil)
	f.send(pointer.Press, 70)
	f.send(pointer.Move, 20)
	if got := f.row.ContentOffset().X; got != -20 {
		t.Fatalf("expected content clamped to -20; got %v", got)
	}
	lead, trail := f.panel.Extents()
	if lead != 0 || trail != 20 {
		t.Fatalf("expected extents 0/20; got %v/%v", lead, trail)
	}
}

func TestSwipe_SnapsOpenPastRatio(t *testing.T) {
	f := newSwipeFixture(t, nil)
	f.swipe(60, 48)
	f.sched.Flush()
	if got := f.row.ContentOffset().X; got != -20 {
		t.Fatalf("expected the row to snap fully open; got %v", got)
	}
	if !f.row.Swiped() {
		t.Fatalf("expected the row to report swiped")
	}
}

func TestSwipe_ReboundsBelowRatio(t *testing.T) {
	f := newSwipeFixture(t, nil)
	f.swipe(60, 55)
	if !f.row.Animating() {
		t.Fatalf("expected a rebound animation")
	}
	f.sched.Flush()
	if f.row.ContentOffset().X != 0 || f.row.State() != listrow.StateIdle {
		t.Fatalf("expected the row back at rest; got %v %s", f.row.ContentOffset(), f.row.State())
	}
}

func TestSwipe_TapTriggersRevealedAction(t *testing.T) {
	f := newSwipeFixture(t, nil)
	var got []any
	f.del.OnTriggered(func(v any) { got = append(got, v) })
	f.row.SetIndex(7)
	f.swipe(60, 40)
	f.sched.Flush()

	if a := f.panel.ActionAt(pointer.Pt(65, 0)); a != f.edit {
		t.Fatalf("expected Edit at x=65; got %v", a)
	}
	if a := f.panel.ActionAt(pointer.Pt(30, 0)); a != nil {
		t.Fatalf("expected no action over the content; got %v", a)
	}
	f.send(pointer.Press, 75)
	f.send(pointer.Release, 75)
	f.sched.Flush()
	if len(got) != 1 || got[0] != 7 {
		t.Fatalf("expected Delete triggered with index 7; got %v", got)
	}
	if f.row.Swiped() {
		t.Fatalf("expected the row to close after the tap")
	}
}

func TestSwipe_FullSwipeRegionTriggers(t *testing.T) {
	var del *listrow.Action
	f := newSwipeFixture(t, func(s *Swipe) {
		s.TrailingRegions = NewRegions(Region{From: 0.5, To: 2, Action: del})
	})
	del = f.del
	fired := 0
	f.del.OnTriggered(func(any) { fired++ })

	f.swipe(70, 20)
	f.sched.Flush()
	if fired != 1 {
		t.Fatalf("expected the full swipe to trigger once; got %d", fired)
	}
	if f.row.Swiped() {
		t.Fatalf("expected the row to close after a full swipe")
	}
}

func TestSwipe_DragHandleAtRowEnd(t *testing.T) {
	f := newSwipeFixture(t, nil)
	f.send(pointer.Press, 40)
	f.send(pointer.Release, 40)
	region, ok := f.panel.DragHandleRegion()
	if !ok || region != pointer.R(77, 0, 80, 1) {
		t.Fatalf("expected handle 77..80; got %v %v", region, ok)
	}
}

func TestSwipe_RevealedStripWidth(t *testing.T) {
	f := newSwipeFixture(t, nil)
	f.swipe(60, 40)
	f.sched.Flush()
	strip, leading := f.panel.Revealed()
	if leading {
		t.Fatalf("expected a trailing strip")
	}
	if w := xansi.StringWidth(strip); w != 20 {
		t.Fatalf("expected strip width 20; got %d", w)
	}
	if !strings.Contains(xansi.Strip(strip), "Delete") {
		t.Fatalf("expected the strip to show Delete; got %q", strip)
	}
}

func TestSwipe_ReleaseUnsubscribes(t *testing.T) {
	f := newSwipeFixture(t, nil)
	f.send(pointer.Press, 40)
	f.send(pointer.Release, 40)
	if f.ctx.Bus.Subscribers(theme.TopicPalette) != 1 {
		t.Fatalf("expected the panel to follow palette changes")
	}
	pal := theme.DefaultPalette()
	pal.TrailingPanel = pal.LeadingPanel
	f.ctx.SetPalette(pal)
	if f.panel.palette.TrailingPanel != pal.LeadingPanel {
		t.Fatalf("expected the palette change to reach the panel")
	}
	f.row.Destroy()
	if f.ctx.Bus.Subscribers(theme.TopicPalette) != 0 {
		t.Fatalf("expected release to unsubscribe")
	}
}
