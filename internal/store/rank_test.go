package store

import (
	"testing"
	"time"

	"swipelist/internal/model"
)

func TestRankBetween_Ordering(t *testing.T) {
	cases := [][2]string{
		{"", ""},
		{"", "1"},
		{"a", "b"},
		{"az", "b"},
		{"h", "i0"},
		{"0", ""},
		{"zz", ""},
	}
	for _, c := range cases {
		r, err := RankBetween(c[0], c[1])
		if err != nil {
			t.Fatalf("RankBetween(%q, %q): %v", c[0], c[1], err)
		}
		if c[0] != "" && !(c[0] < r) {
			t.Fatalf("expected %q < %q", c[0], r)
		}
		if c[1] != "" && !(r < c[1]) {
			t.Fatalf("expected %q < %q", r, c[1])
		}
	}
}

func TestRankBetween_PrefixAdjacent_NoSpace(t *testing.T) {
	if _, err := RankBetween("y", "y0"); err == nil {
		t.Fatalf("expected no space between y and y0")
	}
	if _, err := RankBetween("", "0"); err == nil {
		t.Fatalf("expected no space below 0")
	}
}

func TestRankBetween_RejectsBadBounds(t *testing.T) {
	if _, err := RankBetween("b", "a"); err == nil {
		t.Fatalf("expected out-of-order bounds to fail")
	}
	if _, err := RankBetween("A!", ""); err == nil {
		t.Fatalf("expected invalid characters to fail")
	}
}

func TestRankBetweenUnique_SkipsTaken(t *testing.T) {
	first, _ := RankBetween("a", "c")
	r, err := rankBetweenUnique(map[string]bool{first: true}, "a", "c")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if r == first || !("a" < r && r < "c") {
		t.Fatalf("expected a fresh rank between a and c; got %q", r)
	}
}

func entriesAt(ranks ...string) []model.Entry {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]model.Entry, len(ranks))
	for i, r := range ranks {
		out[i] = model.Entry{ID: string(rune('a' + i)), Rank: r, CreatedAt: now.Add(time.Duration(i) * time.Second)}
	}
	return out
}

func applyPlan(es []model.Entry, p movePlan) []string {
	for i := range es {
		if r, ok := p.ranks[es[i].ID]; ok {
			es[i].Rank = r
		}
	}
	SortEntries(es)
	ids := make([]string, len(es))
	for i, e := range es {
		ids[i] = e.ID
	}
	return ids
}

func sameIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestPlanMove_FastPathTouchesOnlyMoved(t *testing.T) {
	es := entriesAt("b", "d", "f", "h")
	p, err := planMove(es, "a", 2)
	if err != nil {
		t.Fatalf("planMove: %v", err)
	}
	if len(p.ranks) != 1 {
		t.Fatalf("expected one rank change; got %v", p.ranks)
	}
	if got := applyPlan(es, p); !sameIDs(got, []string{"b", "c", "a", "d"}) {
		t.Fatalf("unexpected order %v", got)
	}
}

func TestPlanMove_NoOp(t *testing.T) {
	es := entriesAt("b", "d", "f")
	p, err := planMove(es, "b", 1)
	if err != nil {
		t.Fatalf("planMove: %v", err)
	}
	if len(p.ranks) != 0 {
		t.Fatalf("expected no changes; got %v", p.ranks)
	}
}

func TestPlanMove_PrefixAdjacentBoundsRebalance(t *testing.T) {
	// Sorted: c(h), a(y), b(y0). Moving c between a and b has no room.
	es := entriesAt("y", "y0", "h")
	p, err := planMove(es, "c", 1)
	if err != nil {
		t.Fatalf("planMove: %v", err)
	}
	if got := applyPlan(es, p); !sameIDs(got, []string{"a", "c", "b"}) {
		t.Fatalf("expected a, c, b; got %v", got)
	}
}

func TestPlanMove_DuplicateRanks(t *testing.T) {
	es := entriesAt("m", "m", "m", "m")
	p, err := planMove(es, "d", 0)
	if err != nil {
		t.Fatalf("planMove: %v", err)
	}
	if got := applyPlan(es, p); !sameIDs(got, []string{"d", "a", "b", "c"}) {
		t.Fatalf("expected d first; got %v", got)
	}
}

func TestPlanMove_UnknownID(t *testing.T) {
	if _, err := planMove(entriesAt("a"), "zz", 0); !IsNotFound(err) {
		t.Fatalf("expected not found; got %v", err)
	}
}
