package extend

import (
	"context"
	"errors"
	"fmt"

	"github.com/vlsicore/mzrouter/hintplane"
	"github.com/vlsicore/mzrouter/tile"
)

// candidate is one plane's proposed stopping coordinate along the travel
// axis, paired with the reason it would contribute if chosen.
type candidate struct {
	coord  int64
	reason Reason
}

// tileEdgeCandidate returns the next edge (in the direction of travel) of
// pl's tiling from pt: the next point at which pl's strip structure
// changes. This is the "blockage-plane strip ends, narrows, or widens"
// test behind the JOG/ALIGNOTHER/CONTACT/HINT/ROTBEFORE reasons.
// For the decreasing directions a point sitting exactly on its tile's own
// left/bottom edge (tiles own those edges) must probe the adjacent tile,
// or the candidate would be the zero-distance edge underfoot.
func tileEdgeCandidate(pl *tile.Plane, pt tile.Point, dir Direction) (int64, error) {
	id, err := pl.PointLocate(pt)
	if err != nil {
		return 0, err
	}
	r := pl.Tile(id).Rect
	switch dir {
	case DirRight:
		return r.X1, nil
	case DirLeft:
		if pt.X > r.X0 {
			return r.X0, nil
		}
		prev, err := pl.PointLocate(tile.Point{X: r.X0 - 1, Y: pt.Y})
		if err != nil {
			return 0, err
		}
		return pl.Tile(prev).Rect.X0, nil
	case DirUp:
		return r.Y1, nil
	default:
		if pt.Y > r.Y0 {
			return r.Y0, nil
		}
		prev, err := pl.PointLocate(tile.Point{X: pt.X, Y: r.Y0 - 1})
		if err != nil {
			return 0, err
		}
		return pl.Tile(prev).Rect.Y0, nil
	}
}

// scanDirection is the shared core of the four directional extenders:
// find the nearest interesting point from pt along dir on layer. It
// returns the chosen point, the union of every reason that contributed
// that coordinate, the tile type the current layer's own plane reports at
// the new point, and ok=false when no plane offers a candidate strictly
// ahead of pt (the universe edge in that direction) or when the landing
// tile is outright BLOCKED (the direction is a dead end from here).
func scanDirection(ctx context.Context, ec *Context, layer string, pt tile.Point, dir Direction) (tile.Point, Reason, tile.Type, bool, error) {
	h, v, ok := ec.Blocks.Plane(layer)
	if !ok {
		return tile.Point{}, 0, 0, false, fmt.Errorf("extend: unknown route layer %q", layer)
	}
	// Travel consults the plane whose strips run perpendicular to the
	// direction of motion: moving horizontally, every vertical-strip
	// boundary is a coordinate where the passage structure changes at some
	// y, which is exactly the "strip ends, narrows, or widens" jog test.
	// (This is why each route-type carries both an H and a V plane.)
	own := v
	if !dir.horizontal() {
		own = h
	}

	if err := ec.Blocks.EnsureGenerated(ctx, pt); err != nil {
		return tile.Point{}, 0, 0, false, err
	}

	var cands []candidate
	addPlane := func(pl *tile.Plane, r Reason) {
		if pl == nil {
			return
		}
		edge, err := tileEdgeCandidate(pl, pt, dir)
		if err != nil {
			return
		}
		cands = append(cands, candidate{edge, r})
	}

	addPlane(own, Jog)
	for _, name := range ec.Style.ActiveLayers() {
		if name == layer {
			continue
		}
		oh, ov, ok := ec.Blocks.Plane(name)
		if !ok {
			continue
		}
		op := ov
		if !dir.horizontal() {
			op = oh
		}
		addPlane(op, AlignOther)
	}
	for _, rc := range ec.Style.ContactsOn(layer) {
		ch, cv, ok := ec.Blocks.Plane(rc.Name)
		if !ok {
			continue
		}
		cp := cv
		if !dir.horizontal() {
			cp = ch
		}
		addPlane(cp, Contact)
	}

	hintPlane, rotatePlane := ec.Hints.VHint, ec.Hints.VRotate
	if !dir.horizontal() {
		hintPlane, rotatePlane = ec.Hints.HHint, ec.Hints.HRotate
	}
	addPlane(hintPlane, Hint)
	addPlane(rotatePlane, RotBefore)

	if dir.horizontal() {
		lo, hi := ec.DestX.Bracket(pt.X + dir.sign())
		if dir.sign() > 0 && hi < tile.MaxCoord {
			cands = append(cands, candidate{hi, AlignGoal})
		} else if dir.sign() < 0 && lo > tile.MinCoord {
			cands = append(cands, candidate{lo, AlignGoal})
		}
	} else {
		lo, hi := ec.DestY.Bracket(pt.Y + dir.sign())
		if dir.sign() > 0 && hi < tile.MaxCoord {
			cands = append(cands, candidate{hi, AlignGoal})
		} else if dir.sign() < 0 && lo > tile.MinCoord {
			cands = append(cands, candidate{lo, AlignGoal})
		}
	}

	if genRect, ok := ec.Blocks.GeneratedBounds(); ok {
		switch dir {
		case DirRight:
			cands = append(cands, candidate{genRect.X1, Bounds})
		case DirLeft:
			cands = append(cands, candidate{genRect.X0, Bounds})
		case DirUp:
			cands = append(cands, candidate{genRect.Y1, Bounds})
		case DirDown:
			cands = append(cands, candidate{genRect.Y0, Bounds})
		}
	}

	cur := pt.X
	if !dir.horizontal() {
		cur = pt.Y
	}
	sign := dir.sign()

	var best int64
	var mask Reason
	haveBest := false
	for _, c := range cands {
		delta := (c.coord - cur) * sign
		if delta <= 0 {
			continue
		}
		if !haveBest {
			best, mask, haveBest = c.coord, c.reason, true
			continue
		}
		bestDelta := (best - cur) * sign
		switch {
		case delta < bestDelta:
			best, mask = c.coord, c.reason
		case delta == bestDelta:
			mask |= c.reason
		}
	}
	if !haveBest {
		return tile.Point{}, 0, 0, false, nil
	}

	newPt := pt
	if dir.horizontal() {
		newPt.X = best
	} else {
		newPt.Y = best
	}

	if mask.Has(Bounds) {
		if err := ec.Blocks.EnsureGenerated(ctx, newPt); err != nil {
			return tile.Point{}, 0, 0, false, err
		}
	}

	id, err := own.PointLocate(newPt)
	if err != nil {
		if errors.Is(err, tile.ErrOutOfUniverse) {
			// The nearest candidate sits on the universe edge; there is
			// nothing to extend onto past it.
			return tile.Point{}, 0, 0, false, nil
		}
		return tile.Point{}, 0, 0, false, err
	}
	landingType := own.Tile(id).Type
	if landingType == tile.Blocked {
		return tile.Point{}, 0, 0, false, nil
	}

	switch {
	case landingType == tile.DestArea:
		mask |= Done
	case landingType.IsWalk():
		mask |= Walk
	case landingType == tile.ContactWalkAboveLR || landingType == tile.ContactWalkBelowLR:
		mask |= WalkLRC
	case landingType == tile.ContactWalkAboveUD || landingType == tile.ContactWalkBelowUD:
		mask |= WalkUDC
	}

	if _, inside := hintplane.Lookup(rotatePlane, newPt); inside {
		mask |= RotInside
	}

	return newPt, mask, landingType, true, nil
}
