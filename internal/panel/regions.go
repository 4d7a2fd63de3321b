package panel

import (
	"swipelist/internal/listrow"
)

// Region binds an action to a band [From, To) of swipe ratio, where the
// ratio is the swiped distance over the row width.
type Region struct {
	From, To float64
	Action   *listrow.Action
}

func (r Region) contains(ratio float64) bool { return r.From <= ratio && ratio < r.To }

func (r Region) overlaps(o Region) bool { return r.From < o.To && o.From < r.To }

// Regions is an ordered list of swipe regions. When declarations overlap,
// the earliest declared region wins.
type Regions struct {
	list []Region
}

// NewRegions keeps regions in declaration order. Empty or inverted regions
// are dropped and overlaps are logged.
func NewRegions(rs ...Region) *Regions {
	out := &Regions{}
	for _, r := range rs {
		if r.To <= r.From {
			log.Warnw("ignoring empty swipe region", "from", r.From, "to", r.To)
			continue
		}
		for i, prev := range out.list {
			if prev.overlaps(r) {
				log.Warnw("swipe regions overlap; the earlier declaration wins",
					"region", len(out.list), "overlaps", i, "from", r.From, "to", r.To)
			}
		}
		out.list = append(out.list, r)
	}
	return out
}

func (rs *Regions) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.list)
}

// Match returns the first declared region containing ratio.
func (rs *Regions) Match(ratio float64) (Region, bool) {
	if rs == nil {
		return Region{}, false
	}
	for _, r := range rs.list {
		if r.contains(ratio) {
			return r, true
		}
	}
	return Region{}, false
}
