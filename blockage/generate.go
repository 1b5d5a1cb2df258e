package blockage

import (
	"context"

	"github.com/vlsicore/mzrouter/celldb"
	"github.com/vlsicore/mzrouter/tile"
)

// Generate populates every active route-type's and contact's blockage
// planes over area (expanded by the context radius), running the
// SAMENODE, BLOCKED, subcell, fence,
// destination-area, and walk-generation passes in that order.
// Calling Generate twice over overlapping areas is safe: every paint
// is idempotent under its table, so re-painting an already-current region
// converges to the same result.
func (b *Builder) Generate(ctx context.Context, area tile.Rect) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	expanded := area.Inflate(b.contextRadius, b.contextRadius, b.contextRadius, b.contextRadius)
	expanded = b.universe.Intersect(expanded)
	if expanded.Empty() {
		return nil
	}

	if err := b.processGeometry(ctx, expanded); err != nil {
		return err
	}
	if err := b.processSubcells(expanded); err != nil {
		return err
	}
	if err := b.processFence(expanded); err != nil {
		return err
	}
	if err := b.processDestinationArea(expanded); err != nil {
		return err
	}
	if err := b.flushPendingWalks(); err != nil {
		return err
	}
	if err := b.generateWalks(expanded); err != nil {
		return err
	}
	if err := b.flushPendingWalks(); err != nil {
		return err
	}

	b.markInbounds(expanded)
	if b.hasGen {
		b.generated = unionRect(b.generated, expanded)
	} else {
		b.generated = expanded
		b.hasGen = true
	}
	return nil
}

// processGeometry runs the SAMENODE and BLOCKED passes over every painted database
// tile intersecting area.
func (b *Builder) processGeometry(ctx context.Context, area tile.Rect) error {
	var innerErr error
	cb := func(t celldb.PaintedTile) bool {
		if ctx.Err() != nil {
			innerErr = ctx.Err()
			return false
		}
		if err := b.processPaintedTile(t); err != nil {
			innerErr = err
			return false
		}
		return true
	}
	if err := b.db.Iterate(area, cb); err != nil {
		return err
	}
	return innerErr
}

// markInbounds paints area INBOUNDS on the bounds plane, so a subsequent
// EnsureGenerated call recognises it need not regenerate this region.
func (b *Builder) markInbounds(area tile.Rect) {
	_ = b.bounds.Paint(area, inbounds, maxTable, true)
}

// EnsureGenerated checks whether pt lies in an already-INBOUNDS region; if
// not, it extends the generation frontier by 2*boundsIncrement around pt
// (double the configured increment, so the next step will not
// immediately retrigger) and regenerates over the enlarged area.
func (b *Builder) EnsureGenerated(ctx context.Context, pt tile.Point) error {
	if b.isInbounds(pt) {
		return nil
	}
	grow := 2 * b.boundsIncrement
	want := tile.Rect{X0: pt.X - grow, Y0: pt.Y - grow, X1: pt.X + grow, Y1: pt.Y + grow}
	if b.hasGen {
		want = unionRect(b.generated, want)
	}
	return b.Generate(ctx, want)
}

// GeneratedBounds returns the rectangle over which blockage has been
// produced at least once, and whether anything has been generated yet. The
// extenders use its edges as BOUNDS candidates.
func (b *Builder) GeneratedBounds() (tile.Rect, bool) {
	return b.generated, b.hasGen
}

func (b *Builder) isInbounds(pt tile.Point) bool {
	id, err := b.bounds.PointLocate(pt)
	if err != nil {
		return false
	}
	return b.bounds.Tile(id).Type == inbounds
}

func unionRect(a, c tile.Rect) tile.Rect {
	return tile.Rect{
		X0: minI64(a.X0, c.X0),
		Y0: minI64(a.Y0, c.Y0),
		X1: maxI64(a.X1, c.X1),
		Y1: maxI64(a.Y1, c.Y1),
	}
}

func minI64(a, c int64) int64 {
	if a < c {
		return a
	}
	return c
}

func maxI64(a, c int64) int64 {
	if a > c {
		return a
	}
	return c
}

// ClearCache discards every generated blockage/bounds plane and resets the
// builder to its freshly constructed state, the "cache-clearing entry
// point for a caller that does not want blockage to persist across
// routing calls against the same cell database.
func (b *Builder) ClearCache() error {
	for _, e := range b.entries {
		h, v, err := newPlanePair(b.universe, e.name)
		if err != nil {
			return err
		}
		e.h, e.v = h, v
	}
	bounds, err := tile.NewPlane(b.universe, tile.Identity{Kind: tile.KindBounds, Name: "bounds"})
	if err != nil {
		return err
	}
	b.bounds = bounds
	b.hasGen = false
	b.generated = tile.Rect{}
	b.pending = nil
	return nil
}
