package blockage

import (
	"fmt"

	"github.com/vlsicore/mzrouter/tile"
)

// processDestinationArea runs the destination-area pass over area: for each
// destination shape, the route-type matching the shape's layer gets a
// DEST_AREA region trimmed from the shape's upper-right corner by its
// width on each side, following cornerTrimmedRegion's SAMENODE geometry.
func (b *Builder) processDestinationArea(area tile.Rect) error {
	for _, shape := range b.destShapes {
		if !shape.Rect.Intersects(area) {
			continue
		}
		e, ok := b.entries[shape.Layer]
		if !ok {
			return fmt.Errorf("blockage: destination shape on undeclared layer %q", shape.Layer)
		}
		region := cornerTrimmedRegion(shape.Rect, e.rt.Width)
		for _, r := range region {
			if err := b.paintBoth(e, r, tile.DestArea); err != nil {
				return err
			}
		}
	}
	return nil
}
