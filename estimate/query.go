package estimate

import (
	"sort"

	"github.com/vlsicore/mzrouter/patharena"
	"github.com/vlsicore/mzrouter/tile"
)

// EstimatedCost returns the admissible lower-bound cost-to-go from p
// from p: locate p's grid cell via
// binary search on each axis, evaluate every stored estimator, and return
// the minimum. Returns patharena.CostMax when p lies outside the plane's
// universe or every estimator saturates, signalling the search away from
// an unreachable region.
func (pl *Plane) EstimatedCost(p tile.Point) int64 {
	i := locateAxis(pl.xs, p.X)
	j := locateAxis(pl.ys, p.Y)
	if i < 0 || j < 0 {
		return patharena.CostMax
	}
	c := pl.cellAt(i, j)
	if len(c.estimators) == 0 {
		return patharena.CostMax
	}
	best := patharena.CostMax
	for _, e := range c.estimators {
		v := e.Eval(p)
		if v < best {
			best = v
		}
	}
	return best
}

// locateAxis returns the index i such that lines[i] <= x < lines[i+1], or
// -1 if x lies outside [lines[0], lines[len-1]).
func locateAxis(lines []int64, x int64) int {
	if x < lines[0] || x >= lines[len(lines)-1] {
		return -1
	}
	i := sort.Search(len(lines), func(k int) bool { return lines[k] > x }) - 1
	if i < 0 || i >= len(lines)-1 {
		return -1
	}
	return i
}
