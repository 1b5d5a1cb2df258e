package hintplane

import (
	"github.com/vlsicore/mzrouter/celldb"
	"github.com/vlsicore/mzrouter/tile"
)

// Build walks db's annotations once (only top-cell annotations when topOnly
// is set, the style file's "top hints only" mode) and paints them into a
// fresh set of five global planes covering universe.
func Build(db celldb.CellDB, universe tile.Rect, topOnly bool) (*Planes, error) {
	planes, err := newPlanes(universe)
	if err != nil {
		return nil, err
	}

	table := tile.NewMaxTable()
	var paintErr error
	cb := func(a celldb.Annotation) bool {
		if paintErr = paintAnnotation(planes, table, universe, a); paintErr != nil {
			return false
		}
		return true
	}
	if err := db.Annotations(universe, topOnly, cb); err != nil {
		return nil, err
	}
	if paintErr != nil {
		return nil, paintErr
	}
	return planes, nil
}

func newPlanes(universe tile.Rect) (*Planes, error) {
	mk := func(name string) (*tile.Plane, error) {
		return tile.NewPlane(universe, tile.Identity{Kind: tile.KindHintFenceRotate, Name: name})
	}
	hHint, err := mk("H-hint")
	if err != nil {
		return nil, err
	}
	vHint, err := mk("V-hint")
	if err != nil {
		return nil, err
	}
	hFence, err := mk("H-fence")
	if err != nil {
		return nil, err
	}
	hRotate, err := mk("H-rotate")
	if err != nil {
		return nil, err
	}
	vRotate, err := mk("V-rotate")
	if err != nil {
		return nil, err
	}
	return &Planes{HHint: hHint, VHint: vHint, HFence: hFence, HRotate: hRotate, VRotate: vRotate}, nil
}

func paintAnnotation(p *Planes, table tile.Table, universe tile.Rect, a celldb.Annotation) error {
	rect := universe.Intersect(a.Rect)
	if rect.Empty() && a.Kind != celldb.Fence {
		return nil // annotation lies entirely outside the build area
	}

	switch a.Kind {
	case celldb.Magnet:
		if err := p.HHint.Paint(rect, marked, table, true); err != nil {
			return err
		}
		return p.VHint.Paint(rect, marked, table, false)

	case celldb.Rotate:
		if err := p.HRotate.Paint(rect, marked, table, true); err != nil {
			return err
		}
		return p.VRotate.Paint(rect, marked, table, false)

	case celldb.Fence:
		return paintFence(p, table, universe, a)
	}
	return nil
}

// paintFence paints a's rectangle directly into the fence plane, or — when
// Outside is set — paints the complement of a's rectangle within universe,
// since an "outside fence" excludes routing everywhere except inside it
// (the blockage builder consumes this plane; which region counts as
// fenced is decided here, once, at flatten time).
func paintFence(p *Planes, table tile.Table, universe tile.Rect, a celldb.Annotation) error {
	if !a.Outside {
		rect := universe.Intersect(a.Rect)
		if rect.Empty() {
			return nil
		}
		return p.HFence.Paint(rect, marked, table, true)
	}
	for _, band := range complementBands(universe, a.Rect) {
		if band.Empty() {
			continue
		}
		if err := p.HFence.Paint(band, marked, table, true); err != nil {
			return err
		}
	}
	return nil
}

// complementBands returns up to four rectangles that, together with the
// intersection of inner and outer, exactly partition outer — the same
// mondrian decomposition tile.Paint uses internally, exposed here because
// an outside-fence needs the complement computed before painting rather
// than as a side effect of painting.
func complementBands(outer, inner tile.Rect) [4]tile.Rect {
	ov := outer.Intersect(inner)
	if ov.Empty() {
		return [4]tile.Rect{outer}
	}
	return [4]tile.Rect{
		{X0: outer.X0, Y0: outer.Y0, X1: ov.X0, Y1: outer.Y1},
		{X0: ov.X1, Y0: outer.Y0, X1: outer.X1, Y1: outer.Y1},
		{X0: ov.X0, Y0: outer.Y0, X1: ov.X1, Y1: ov.Y0},
		{X0: ov.X0, Y0: ov.Y1, X1: ov.X1, Y1: outer.Y1},
	}
}
