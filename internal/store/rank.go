package store

import (
	"errors"
	"strings"
)

// Ranks are lowercase base36 strings ordered lexicographically. A new rank
// is always found strictly between two neighbours by taking a midpoint digit,
// extending the string when the neighbours are adjacent.

const (
	rankAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	rankBase     = len(rankAlphabet)
	maxRankLen   = 256
)

var errNoRankSpace = errors.New("no space between ranks")

func normRank(r string) string { return strings.ToLower(strings.TrimSpace(r)) }

func rankDigit(c byte) (int, bool) {
	i := strings.IndexByte(rankAlphabet, c)
	return i, i >= 0
}

func validRank(r string) bool {
	for i := 0; i < len(r); i++ {
		if _, ok := rankDigit(r[i]); !ok {
			return false
		}
	}
	return true
}

// RankBetween returns a rank strictly between lo and hi. An empty lo has no
// lower bound; an empty hi has no upper bound.
func RankBetween(lo, hi string) (string, error) {
	lo, hi = normRank(lo), normRank(hi)
	if !validRank(lo) || !validRank(hi) {
		return "", errors.New("invalid rank character")
	}
	if lo != "" && hi != "" && lo >= hi {
		return "", errors.New("rank bounds out of order: " + lo + " >= " + hi)
	}

	open := hi == ""
	out := make([]byte, 0, len(lo)+1)
	for i := 0; i < maxRankLen; i++ {
		dl := 0
		if i < len(lo) {
			dl, _ = rankDigit(lo[i])
		}
		dh := rankBase
		if !open {
			if i >= len(hi) {
				// out equals hi here; every extension sorts after it.
				return "", errNoRankSpace
			}
			dh, _ = rankDigit(hi[i])
		}
		switch {
		case dl == dh:
			out = append(out, rankAlphabet[dl])
		case dh-dl > 1:
			out = append(out, rankAlphabet[dl+(dh-dl)/2])
			return string(out), nil
		default:
			// Adjacent digits: keep lo's digit; out is now below hi whatever follows.
			out = append(out, rankAlphabet[dl])
			open = true
		}
	}
	return "", errNoRankSpace
}

func RankAfter(lo string) (string, error) { return RankBetween(lo, "") }

// rankBetweenUnique returns a rank between lo and hi that is not in taken.
func rankBetweenUnique(taken map[string]bool, lo, hi string) (string, error) {
	cur := normRank(lo)
	for i := 0; i < maxRankLen; i++ {
		r, err := RankBetween(cur, hi)
		if err != nil {
			return "", err
		}
		if !taken[r] {
			return r, nil
		}
		cur = r
	}
	return "", errors.New("unable to find a unique rank")
}
