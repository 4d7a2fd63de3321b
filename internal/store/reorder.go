package store

import (
	"errors"
	"sort"

	"swipelist/internal/model"
)

// SortEntries orders entries by rank, then creation time, then ID. Entries
// without a rank sort by creation time alone.
func SortEntries(es []model.Entry) {
	sort.SliceStable(es, func(i, j int) bool { return entryLess(es[i], es[j]) })
}

func entryLess(a, b model.Entry) bool {
	ra, rb := normRank(a.Rank), normRank(b.Rank)
	if ra != "" && rb != "" && ra != rb {
		return ra < rb
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

// movePlan is the outcome of planning a move: new ranks for the entries
// that change, and the final order.
type movePlan struct {
	ranks map[string]string
	order []model.Entry
}

// planMove computes rank updates that place entry id at index to, where to
// counts positions in the list with the entry removed. Only the moved entry
// is re-ranked when its new neighbours leave room; otherwise the smallest
// window around it whose outer neighbours are ordered is rewritten.
func planMove(es []model.Entry, id string, to int) (movePlan, error) {
	cur := append([]model.Entry(nil), es...)
	SortEntries(cur)

	from := -1
	for i := range cur {
		if cur[i].ID == id {
			from = i
			break
		}
	}
	if from < 0 {
		return movePlan{}, notFoundError{id: id}
	}
	moved := cur[from]
	rest := append(append([]model.Entry(nil), cur[:from]...), cur[from+1:]...)
	to = max(0, min(to, len(rest)))

	order := make([]model.Entry, 0, len(cur))
	order = append(order, rest[:to]...)
	order = append(order, moved)
	order = append(order, rest[to:]...)
	plan := movePlan{ranks: map[string]string{}, order: order}
	if to == from {
		return plan, nil
	}

	lo, hi := to, to
	for !boundsOrdered(order, lo, hi) {
		// Moving up displaces later neighbours, so grow to the right first.
		switch {
		case hi+1 < len(order) && (to < from || lo == 0):
			hi++
		case lo > 0:
			lo--
		default:
			return movePlan{}, errors.New("no valid rank window")
		}
	}

	taken := map[string]bool{}
	for i, e := range order {
		if i < lo || i > hi {
			taken[normRank(e.Rank)] = true
		}
	}
	lower, upper := outerRanks(order, lo, hi)
	for i := lo; i <= hi; i++ {
		r, err := rankBetweenUnique(taken, lower, upper)
		if err != nil {
			return movePlan{}, err
		}
		taken[r] = true
		if normRank(order[i].Rank) != r {
			plan.ranks[order[i].ID] = r
			order[i].Rank = r
		}
		lower = r
	}
	return plan, nil
}

func outerRanks(order []model.Entry, lo, hi int) (lower, upper string) {
	if lo > 0 {
		lower = normRank(order[lo-1].Rank)
	}
	if hi+1 < len(order) {
		upper = normRank(order[hi+1].Rank)
	}
	return lower, upper
}

// boundsOrdered reports whether the ranks just outside [lo, hi] leave room
// for new ranks inside it.
func boundsOrdered(order []model.Entry, lo, hi int) bool {
	lower, upper := outerRanks(order, lo, hi)
	if upper == "" {
		return true
	}
	if lower >= upper {
		return false
	}
	_, err := RankBetween(lower, upper)
	return err == nil
}
