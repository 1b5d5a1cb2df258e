package extend

import (
	"github.com/vlsicore/mzrouter/hintplane"
	"github.com/vlsicore/mzrouter/patharena"
	"github.com/vlsicore/mzrouter/tile"
)

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

func segmentLength(from, to tile.Point, horizontal bool) int64 {
	if horizontal {
		return abs64(to.X - from.X)
	}
	return abs64(to.Y - from.Y)
}

// segmentCost prices one extension leg: h_cost/v_cost, swapped
// under ROTINSIDE, and replaced outright by over_cost when the segment
// was stopped by an ALIGNOTHER reason (crossing a differently-tagged
// active layer at that point).
func segmentCost(ec *Context, layer string, from, to tile.Point, horizontal, inRotate, overLayer bool) int64 {
	rl := ec.Style.Layers[layer]
	length := segmentLength(from, to, horizontal)
	rate := rl.CostFor(horizontal, inRotate)
	if overLayer {
		rate = rl.OverCost
	}
	return patharena.MulSat(length, rate)
}

// jogCost is charged once whenever the new
// segment's orientation differs from the path's previous orientation on
// the same layer (a path's very first segment, Orient==Start, never
// jogs).
func jogCost(ec *Context, layer string, prevOrient, newOrient patharena.Orientation) int64 {
	if prevOrient == patharena.Start || prevOrient == newOrient {
		return 0
	}
	return ec.Style.Layers[layer].JogCost
}

// hintCost integrates the magnet-hint surcharge. Because scanDirection
// never steps past another plane's own tile boundary, the hint plane's
// marked/unmarked state cannot change strictly between from and to — so
// the segment is either wholly inside a magnet-hint tile or wholly
// outside it, and the cost is simply (segment length) x hint_cost when
// inside, tested at the segment's midpoint.
func hintCost(ec *Context, layer string, from, to tile.Point, horizontal bool) int64 {
	rl := ec.Style.Layers[layer]
	if rl.HintCost == 0 {
		return 0
	}
	plane := ec.Hints.HHint
	if !horizontal {
		plane = ec.Hints.VHint
	}
	mid := tile.Point{X: (from.X + to.X) / 2, Y: (from.Y + to.Y) / 2}
	if _, marked := hintplane.Lookup(plane, mid); !marked {
		return 0
	}
	return patharena.MulSat(segmentLength(from, to, horizontal), rl.HintCost)
}
