package blockage

import (
	"github.com/vlsicore/mzrouter/tile"
)

// processFence runs the fence pass over area: every marked tile of
// the flattened fence plane blocks all active layers and contacts,
// regardless of bloat, with a rectangle equal to the fence tile's bounds
// inflated left/bottom by w-1 (no spacing term — a fence is not a database
// geometry tile and has no per-tile-type spacing entry).
func (b *Builder) processFence(area tile.Rect) error {
	if b.hints == nil {
		return nil
	}
	var fenceErr error
	pred := func(t tile.Type) bool { return t == tile.Blocked } // hintplane's "marked" sentinel
	cb := func(id tile.ID, r tile.Rect, _ tile.Type) bool {
		for _, e := range b.entries {
			blocked := r.Inflate(e.rt.Width-1, e.rt.Width-1, 0, 0)
			if err := b.paintBoth(e, blocked, tile.Blocked); err != nil {
				fenceErr = err
				return false
			}
		}
		return true
	}
	if err := b.hints.HFence.AreaEnumerate(area, pred, cb); err != nil {
		return err
	}
	return fenceErr
}
