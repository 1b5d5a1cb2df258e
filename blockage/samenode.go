package blockage

import (
	"github.com/vlsicore/mzrouter/celldb"
	"github.com/vlsicore/mzrouter/tile"
)

// cornerTrimmedRegion returns two overlapping rectangles: r inflated on
// the left and bottom by ext, with the ext×ext square at the tile's own
// upper-right corner excluded (a wire landing there would DRC against r's
// own top or right edge). Used for both the SAMENODE region (ext = w-1)
// and the DEST_AREA region (ext = w).
func cornerTrimmedRegion(r tile.Rect, ext int64) [2]tile.Rect {
	left := tile.Rect{X0: r.X0 - ext, Y0: r.Y0 - ext, X1: r.X1 - ext, Y1: r.Y1}
	bottom := tile.Rect{X0: r.X0 - ext, Y0: r.Y0 - ext, X1: r.X1, Y1: r.Y1 - ext}
	return [2]tile.Rect{left, bottom}
}

var (
	maxTable   = tile.NewMaxTable()
	blockTable = tile.NewBlockTable()
)

// paintBoth paints rect with typ into both of e's blockage planes, clipping
// to the builder's universe first (a painted tile's bloat/spacing inflation
// can push the result outside the build area).
func (b *Builder) paintBoth(e *routeEntry, rect tile.Rect, typ tile.Type) error {
	return b.paintBothTable(e, rect, typ, maxTable)
}

// paintBlocked paints a spacing-derived BLOCKED rectangle: the block table
// keeps SAMENODE (and what was derived from it) in place, so a wire may
// still land on same-node geometry inside another tile's spacing ring.
func (b *Builder) paintBlocked(e *routeEntry, rect tile.Rect) error {
	return b.paintBothTable(e, rect, tile.Blocked, blockTable)
}

func (b *Builder) paintBothTable(e *routeEntry, rect tile.Rect, typ tile.Type, table tile.Table) error {
	rect = b.universe.Intersect(rect)
	if rect.Empty() {
		return nil
	}
	if err := e.h.Paint(rect, typ, table, true); err != nil {
		return err
	}
	return e.v.Paint(rect, typ, table, false)
}

// processPaintedTile runs the SAMENODE and BLOCKED passes for one
// database tile, across every active route-type and contact type.
func (b *Builder) processPaintedTile(t celldb.PaintedTile) error {
	for _, e := range b.entries {
		if _, interacts := e.rt.BloatFor(t.Type); !interacts {
			continue
		}
		region := cornerTrimmedRegion(t.Rect, e.rt.Width-1)
		for _, r := range region {
			if err := b.paintBoth(e, r, tile.SameNode); err != nil {
				return err
			}
		}
	}

	for _, e := range b.entries {
		_, interacts := e.rt.BloatFor(t.Type)
		if !interacts {
			continue
		}
		w := e.rt.Width
		spacing, _ := e.rt.SpacingFor(t.Type)
		blocked := t.Rect.Inflate(spacing+w-1, spacing+w-1, spacing, spacing)

		if b.blockedSkipsSameNode(e, blocked) {
			continue
		}
		if err := b.paintBlocked(e, blocked); err != nil {
			return err
		}
	}
	return nil
}

// blockedSkipsSameNode reports whether painting blocked onto e's planes
// must be skipped because the hint point (rect's lower-left corner) already
// lies in a SAMENODE region — e's own, or, for contact route-types, either
// residue layer's.
func (b *Builder) blockedSkipsSameNode(e *routeEntry, blocked tile.Rect) bool {
	clipped := b.universe.Intersect(blocked)
	if clipped.Empty() {
		return true
	}
	hint := tile.Point{X: clipped.X0, Y: clipped.Y0}

	if b.isSameNode(e.h, hint) {
		return true
	}
	if !e.isContact {
		return false
	}
	for _, residue := range e.residues {
		if re, ok := b.entries[residue]; ok && b.isSameNode(re.h, hint) {
			return true
		}
	}
	return false
}

func (b *Builder) isSameNode(p *tile.Plane, pt tile.Point) bool {
	id, err := p.PointLocate(pt)
	if err != nil {
		return false
	}
	return p.Tile(id).Type == tile.SameNode
}
