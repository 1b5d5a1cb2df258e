package estimate

import (
	"context"
	"sort"

	"github.com/vlsicore/mzrouter/celldb"
	"github.com/vlsicore/mzrouter/hintplane"
	"github.com/vlsicore/mzrouter/patharena"
	"github.com/vlsicore/mzrouter/style"
	"github.com/vlsicore/mzrouter/tile"
)

// Build constructs the estimation plane end to end: grid decomposition,
// cost assignment, tile-corner Dijkstra, and estimator construction with
// domination pruning.
func Build(ctx context.Context, st *style.Style, db celldb.CellDB, hints *hintplane.Planes, universe tile.Rect, destShapes []celldb.Shape) (*Plane, error) {
	solidRects, destRects, err := gatherSolidAndDest(st, db, hints, universe, destShapes)
	if err != nil {
		return nil, err
	}

	xs := collectLines(universe.X0, universe.X1, solidRects, destRects, true)
	ys := collectLines(universe.Y0, universe.Y1, solidRects, destRects, false)

	p := &Plane{xs: xs, ys: ys, nx: len(xs) - 1, ny: len(ys) - 1}
	p.cells = make([]cell, p.nx*p.ny)

	minH, minV := minActiveCosts(st)
	for j := 0; j < p.ny; j++ {
		for i := 0; i < p.nx; i++ {
			r := p.rectOf(i, j)
			c := p.cellAt(i, j)
			switch classify(r, solidRects, destRects) {
			case catDest:
				c.hc, c.vc = 0, 0
			case catSolid:
				c.hc, c.vc = patharena.CostMax, patharena.CostMax
			default:
				c.hc, c.vc = minH, minV
			}
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cost0 := dijkstra(ctx, p)
	if cost0 == nil {
		return nil, ctx.Err()
	}

	for j := 0; j < p.ny; j++ {
		for i := 0; i < p.nx; i++ {
			p.compileEstimators(i, j, cost0)
		}
	}
	p.prune()

	return p, nil
}

// gatherSolidAndDest collects the rectangles that become EST_SUBCELL/
// EST_FENCE (merged here as "solid", since both carry the same INT_MAX
// cost category) and EST_DEST.
func gatherSolidAndDest(st *style.Style, db celldb.CellDB, hints *hintplane.Planes, universe tile.Rect, destShapes []celldb.Shape) (solid, dest []tile.Rect, err error) {
	if subcellsForbiddenEverywhere(st) {
		cbErr := db.Subcells(universe, func(s celldb.Subcell) bool {
			solid = append(solid, s.Rect)
			return true
		})
		if cbErr != nil {
			return nil, nil, cbErr
		}
	}

	if hints != nil {
		areaErr := hints.HFence.AreaEnumerate(universe, tile.Any, func(id tile.ID, r tile.Rect, t tile.Type) bool {
			if t == tile.Blocked { // hintplane's "marked" sentinel
				solid = append(solid, r)
			}
			return true
		})
		if areaErr != nil {
			return nil, nil, areaErr
		}
	}

	for _, shape := range destShapes {
		dest = append(dest, universe.Intersect(shape.Rect))
	}
	return solid, dest, nil
}

// subcellsForbiddenEverywhere reports whether every active route-type
// declares a negative (no-interaction) spacing entry against
// celldb.SubcellTileType, the gate for treating subcells as solid.
func subcellsForbiddenEverywhere(st *style.Style) bool {
	for _, name := range st.ActiveLayers() {
		rt := st.Types[name]
		if d, ok := rt.Spacing[celldb.SubcellTileType]; ok && d >= 0 {
			return false
		}
	}
	return true
}

// minActiveCosts returns the minimum per-direction cost across every
// active route-layer, the free-space cell cost.
func minActiveCosts(st *style.Style) (h, v int64) {
	h, v = patharena.CostMax, patharena.CostMax
	seen := map[string]bool{}
	for _, name := range st.ActiveLayers() {
		layerName := st.Types[name].Layer
		if seen[layerName] {
			continue
		}
		seen[layerName] = true
		rl, ok := st.Layers[layerName]
		if !ok {
			continue
		}
		if rl.HCost < h {
			h = rl.HCost
		}
		if rl.VCost < v {
			v = rl.VCost
		}
	}
	if len(seen) == 0 {
		h, v = 0, 0
	}
	return h, v
}

// collectLines builds the sorted, deduplicated set of grid-line
// coordinates on one axis: the universe bounds plus every solid/dest
// rectangle's edges on that axis (the corner-extension cuts, implemented
// directly as a uniform grid — see this package's doc.go).
func collectLines(lo, hi int64, solid, dest []tile.Rect, xAxis bool) []int64 {
	set := map[int64]bool{lo: true, hi: true}
	add := func(rects []tile.Rect) {
		for _, r := range rects {
			if xAxis {
				set[r.X0] = true
				set[r.X1] = true
			} else {
				set[r.Y0] = true
				set[r.Y1] = true
			}
		}
	}
	add(solid)
	add(dest)
	out := make([]int64, 0, len(set))
	for v := range set {
		if v >= lo && v <= hi {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// classify returns the category of the grid cell spanning r: catDest wins
// over catSolid when both rect lists overlap (a destination carved out of
// an otherwise-solid subcell is still reachable).
func classify(r tile.Rect, solid, dest []tile.Rect) category {
	center := tile.Point{X: (r.X0 + r.X1) / 2, Y: (r.Y0 + r.Y1) / 2}
	for _, d := range dest {
		if d.Contains(center) {
			return catDest
		}
	}
	for _, s := range solid {
		if s.Contains(center) {
			return catSolid
		}
	}
	return catSpace
}
