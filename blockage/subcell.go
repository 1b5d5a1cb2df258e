package blockage

import (
	"github.com/vlsicore/mzrouter/celldb"
	"github.com/vlsicore/mzrouter/tile"
)

// processSubcells runs the subcell pass over area: every unexpanded
// subcell not marked as the destination contributes a BLOCKED rectangle
// equal to its bounding box on every active route-type and contact;
// destination subcells instead contribute a SAMENODE rectangle, making
// their footprint reachable the way a destination terminal's own geometry
// is (step 1's SAMENODE pass only covers painted tiles, not subcells).
func (b *Builder) processSubcells(area tile.Rect) error {
	var innerErr error
	cb := func(s celldb.Subcell) bool {
		typ := tile.Blocked
		if s.IsDestination {
			typ = tile.SameNode
		}
		for _, e := range b.entries {
			if err := b.paintBoth(e, s.Rect, typ); err != nil {
				innerErr = err
				return false
			}
		}
		return true
	}
	if err := b.db.Subcells(area, cb); err != nil {
		return err
	}
	return innerErr
}
