package numline

import (
	"sort"

	"github.com/vlsicore/mzrouter/tile"
)

// NumberLine is a sorted set of int64 coordinates, sentineled at
// tile.MinCoord and tile.MaxCoord so Bracket always has a lower and upper
// neighbor to return, even for a query outside every inserted coordinate.
type NumberLine struct {
	values []int64 // sorted, deduplicated, always starts/ends with the sentinels
}

// New returns an empty NumberLine seeded with the MIN/MAX sentinels.
func New() *NumberLine {
	return &NumberLine{values: []int64{tile.MinCoord, tile.MaxCoord}}
}

// Insert adds x to the line. Inserting an already-present coordinate is a
// no-op (the set stays deduplicated).
func (n *NumberLine) Insert(x int64) {
	i := sort.Search(len(n.values), func(i int) bool { return n.values[i] >= x })
	if i < len(n.values) && n.values[i] == x {
		return
	}
	n.values = append(n.values, 0)
	copy(n.values[i+1:], n.values[i:])
	n.values[i] = x
}

// Bracket returns the pair of adjacent entries (lo, hi) such that
// lo <= x <= hi and no inserted coordinate lies strictly between them. If x
// itself was inserted, lo == x == hi.
func (n *NumberLine) Bracket(x int64) (lo, hi int64) {
	i := sort.Search(len(n.values), func(i int) bool { return n.values[i] >= x })
	if i < len(n.values) && n.values[i] == x {
		return x, x
	}
	// i is the index of the first value > x (or len(values), impossible
	// given the MAX sentinel); i-1 is always valid given the MIN sentinel.
	return n.values[i-1], n.values[i]
}

// Contains reports whether x was explicitly inserted (distinct from being
// merely bracketed by two other coordinates).
func (n *NumberLine) Contains(x int64) bool {
	lo, hi := n.Bracket(x)
	return lo == x && hi == x
}

// Values returns the inserted coordinates in ascending order, excluding the
// MIN/MAX sentinels. The returned slice is owned by the caller.
func (n *NumberLine) Values() []int64 {
	if len(n.values) <= 2 {
		return nil
	}
	out := make([]int64, len(n.values)-2)
	copy(out, n.values[1:len(n.values)-1])
	return out
}

// Len returns the number of explicitly inserted coordinates.
func (n *NumberLine) Len() int { return len(n.Values()) }

// MinBound returns the sentinel lower bound shared by every NumberLine.
func MinBound() int64 { return tile.MinCoord }

// MaxBound returns the sentinel upper bound shared by every NumberLine.
func MaxBound() int64 { return tile.MaxCoord }
