package tile

// maxWalkSteps bounds the neighbor-walk fast path before falling back to a
// linear scan. Real corner-stitching converges in O(sqrt(distance)) hops;
// this bound exists only so a bug in split/merge neighbor repair degrades
// to a slow-but-correct answer instead of an infinite loop.
const maxWalkSteps = 4096

// PointLocate returns the tile containing p, per the half-open ownership
// convention (a tile owns its left and bottom edges but not its right and
// top edges). It starts the neighbor walk from the plane's last-located
// tile, the hint that amortizes repeated nearby queries.
func (p *Plane) PointLocate(pt Point) (ID, error) {
	if !p.universe.Contains(pt) {
		return NoID, ErrOutOfUniverse
	}
	start := p.hint
	if start == NoID || start >= ID(len(p.slab)) || p.slab[start].free {
		start = p.firstLiveID()
	}
	id, ok := p.walkFrom(start, pt)
	if !ok {
		id = p.bruteForceLocate(pt)
	}
	p.hint = id
	return id, nil
}

func (p *Plane) firstLiveID() ID {
	for i := 1; i < len(p.slab); i++ {
		if !p.slab[i].free {
			return ID(i)
		}
	}
	return NoID
}

// walkFrom follows neighbor links from id toward pt. It returns ok=false if
// it exhausts maxWalkSteps or hits a NoID neighbor without having arrived,
// signalling the caller to fall back to bruteForceLocate.
func (p *Plane) walkFrom(id ID, pt Point) (ID, bool) {
	if id == NoID {
		return NoID, false
	}
	for steps := 0; steps < maxWalkSteps; steps++ {
		t := &p.slab[id]
		switch {
		case pt.X < t.Rect.X0:
			if t.LB == NoID {
				return NoID, false
			}
			id = t.LB
		case pt.X >= t.Rect.X1:
			if t.TR == NoID {
				return NoID, false
			}
			id = t.TR
		case pt.Y < t.Rect.Y0:
			if t.BR == NoID {
				return NoID, false
			}
			id = t.BR
		case pt.Y >= t.Rect.Y1:
			if t.TL == NoID {
				return NoID, false
			}
			id = t.TL
		default:
			return id, true
		}
	}
	return NoID, false
}

// bruteForceLocate scans every live tile for one containing pt. It is the
// ground truth used both as a fallback and to recompute neighbor links
// after a mutation; see DESIGN.md's "tile" entry for why this plane trades
// asymptotic elegance for an implementation that is easy to verify correct.
func (p *Plane) bruteForceLocate(pt Point) ID {
	for i := 1; i < len(p.slab); i++ {
		t := &p.slab[i]
		if !t.free && t.Rect.Contains(pt) {
			return ID(i)
		}
	}
	return NoID
}

// repairNeighbors recomputes id's four neighbor links by point-locating the
// coordinates just outside each of its own edges. Called after any split or
// merge touching id or its fringe; see tile/paint.go.
func (p *Plane) repairNeighbors(id ID) {
	t := p.slab[id].Rect
	p.slab[id].LB = p.neighborOrSelf(id, Point{X: t.X0 - 1, Y: t.Y0})
	p.slab[id].TR = p.neighborOrSelf(id, Point{X: t.X1, Y: t.Y0})
	p.slab[id].BR = p.neighborOrSelf(id, Point{X: t.X0, Y: t.Y0 - 1})
	p.slab[id].TL = p.neighborOrSelf(id, Point{X: t.X0, Y: t.Y1})
}

// neighborOrSelf point-locates probe via brute force (the plane may be in
// an inconsistent fast-path state mid-repair) and returns NoID if probe
// falls outside the universe or resolves back to id itself.
func (p *Plane) neighborOrSelf(id ID, probe Point) ID {
	if !p.universe.Contains(probe) {
		return NoID
	}
	n := p.bruteForceLocate(probe)
	if n == id {
		return NoID
	}
	return n
}
