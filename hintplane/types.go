package hintplane

import (
	"github.com/vlsicore/mzrouter/tile"
)

// marked is the sentinel tile.Type used to flag a painted region on any of
// the five planes here. These planes never need more than a binary
// present/absent distinction per plane — which plane a query hits already
// tells the caller which of MAGNET/FENCE/ROTATE it found — so they reuse
// the shared Type lattice's top value rather than define a parallel one.
const marked = tile.Blocked

// Planes holds the five global flattened planes. H and V versions
// of hint and rotate exist so extenders can answer "next hint/rotate tile
// in direction X" without re-deriving strips on every query; a single
// fence plane suffices because fence is translated into blockage
// rectangles by the blockage builder rather than consulted directly by
// extenders.
type Planes struct {
	HHint   *tile.Plane
	VHint   *tile.Plane
	HFence  *tile.Plane
	HRotate *tile.Plane
	VRotate *tile.Plane
}

// Lookup reports whether pt lies inside a marked region of p, and if so
// the bounds of that region. The extenders' hint cost uses only the
// inside/outside answer; it does not use the bounds to measure distance
// to a magnet edge.
func Lookup(p *tile.Plane, pt tile.Point) (tile.Rect, bool) {
	id, err := p.PointLocate(pt)
	if err != nil {
		return tile.Rect{}, false
	}
	t := p.Tile(id)
	if t.Type != marked {
		return tile.Rect{}, false
	}
	return t.Rect, true
}
