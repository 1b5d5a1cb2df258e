package tile

// Table is a painting table: Table[newType][old]
// is the type a tile of type old becomes when newType is painted over it.
// The caller-supplied table must be monotone: for hi > lo,
// Table[hi][Table[lo][t]] == Table[hi][t] for every t. Validate checks this.
type Table [NumTypes][NumTypes]Type

// NewMaxTable returns the default painting table: the numerically larger
// type always wins, which trivially satisfies the monotonicity contract
// (max is associative and idempotent), so higher-numbered types strictly
// win.
func NewMaxTable() Table {
	var t Table
	for newT := 0; newT < NumTypes; newT++ {
		for old := 0; old < NumTypes; old++ {
			if Type(newT) > Type(old) {
				t[newT][old] = Type(newT)
			} else {
				t[newT][old] = Type(old)
			}
		}
	}
	return t
}

// NewBlockTable returns the painting table the blockage builder uses for
// spacing-derived BLOCKED paints: max-wins, except that Blocked leaves
// SAMENODE, the walk types, and DEST_AREA in place. SAMENODE survives so
// a wire may still land on same-node geometry inside another tile's
// spacing ring. Walks and DEST_AREA survive because they only ever exist
// where a SAMENODE or SPACE region already survived the same blocked
// paint once; repainting the same blockage over them must converge to
// the same plane, not erode it. Blocked still wins over SPACE and
// SAMENODE_BLOCK, so a hard obstacle stays an obstacle.
func NewBlockTable() Table {
	t := NewMaxTable()
	for _, keep := range []Type{SameNode, ContactWalkAboveLR, ContactWalkBelowLR, ContactWalkAboveUD, ContactWalkBelowUD, WalkLeft, WalkRight, WalkTop, WalkBottom, DestArea} {
		t[Blocked][keep] = keep
	}
	return t
}

// Validate checks the monotonicity contract and returns ErrBadPaintTable
// on the first violation found.
func (t Table) Validate() error {
	for hi := 0; hi < NumTypes; hi++ {
		for lo := 0; lo < NumTypes; lo++ {
			if hi <= lo {
				continue
			}
			for old := 0; old < NumTypes; old++ {
				left := t[hi][t[lo][old]]
				right := t[hi][old]
				if left != right {
					return ErrBadPaintTable
				}
			}
		}
	}
	return nil
}

// Apply returns the type a tile of type old becomes when newType is
// painted over it, via the table.
func (t Table) Apply(newType, old Type) Type {
	return t[newType][old]
}

// Paint replaces, for every tile intersecting area, its type with
// table.Apply(newType, oldType), splitting and merging tiles as needed to
// keep the tiling maximal along the plane's strip direction (horizontal
// for horizontal is true, vertical otherwise). Painting the same area with
// the same type twice is a no-op the second time, because Apply
// returns the already-painted type and the tile is skipped unchanged.
func (p *Plane) Paint(area Rect, newType Type, table Table, horizontal bool) error {
	if area.Empty() {
		return ErrEmptyRect
	}
	if !p.universe.Contains(Point{area.X0, area.Y0}) || area.X1 > p.universe.X1 || area.Y1 > p.universe.Y1 {
		return ErrOutOfUniverse
	}

	victims := p.areaEnumerateIDs(area)
	changed := false
	for _, v := range victims {
		if p.slab[v].free {
			continue // already consumed by an earlier split in this same pass
		}
		old := p.slab[v].Type
		nt := table.Apply(newType, old)
		if nt == old {
			continue
		}
		r := p.slab[v].Rect
		ov := r.Intersect(area)
		if ov.Empty() {
			continue
		}
		changed = true
		if ov == r {
			p.slab[v].Type = nt
			continue
		}
		p.splitAndRepaint(v, ov, nt)
	}

	if changed {
		p.mergePass(horizontal)
		p.repairAll()
	}
	return nil
}

// splitAndRepaint replaces the tile at id (whose rect is r) with the
// mondrian decomposition of r around ov: ov itself (repainted to nt) plus
// up to four remainder pieces retaining the original type.
func (p *Plane) splitAndRepaint(id ID, ov Rect, nt Type) {
	r := p.slab[id].Rect
	old := p.slab[id].Type

	remainders := mondrianRemainders(r, ov)

	// Reuse id's slot for the inner (repainted) piece; allocate fresh slots
	// for the remainders. Neighbor links are left stale here and fixed in
	// one pass by repairAll after the whole Paint call finishes.
	p.slab[id].Rect = ov
	p.slab[id].Type = nt

	for _, rem := range remainders {
		if rem.Empty() {
			continue
		}
		p.alloc(Tile{Rect: rem, Type: old, LB: NoID, BR: NoID, TR: NoID, TL: NoID})
	}
}

// mondrianRemainders returns the up-to-four rectangles that, together with
// inner, exactly partition outer: left full-height strip, right full-height
// strip, and bottom/top strips spanning only inner's X-range.
func mondrianRemainders(outer, inner Rect) [4]Rect {
	return [4]Rect{
		{X0: outer.X0, Y0: outer.Y0, X1: inner.X0, Y1: outer.Y1},  // left
		{X0: inner.X1, Y0: outer.Y0, X1: outer.X1, Y1: outer.Y1},  // right
		{X0: inner.X0, Y0: outer.Y0, X1: inner.X1, Y1: inner.Y0},  // bottom-middle
		{X0: inner.X0, Y0: inner.Y1, X1: inner.X1, Y1: outer.Y1},  // top-middle
	}
}

// areaEnumerateIDs returns every live tile ID intersecting area, in slab
// order, via a brute-force scan. Paint uses this directly; the public
// AreaEnumerate (enumerate.go) adds predicate filtering and early abort.
func (p *Plane) areaEnumerateIDs(area Rect) []ID {
	var out []ID
	for i := 1; i < len(p.slab); i++ {
		t := &p.slab[i]
		if !t.free && t.Rect.Intersects(area) {
			out = append(out, ID(i))
		}
	}
	return out
}

// mergePass repeatedly merges adjacent, same-type tiles that together form
// a valid maximal strip, until a full scan finds nothing left to merge.
// horizontal planes merge left-right; vertical planes merge top-bottom,
// keeping each plane maximal along its strip direction.
func (p *Plane) mergePass(horizontal bool) {
	for {
		merged := false
		for i := 1; i < len(p.slab); i++ {
			a := &p.slab[i]
			if a.free {
				continue
			}
			for j := i + 1; j < len(p.slab); j++ {
				b := &p.slab[j]
				if b.free || b.Type != a.Type {
					continue
				}
				if u, ok := mergeableUnion(a.Rect, b.Rect, horizontal); ok {
					a.Rect = u
					p.release(ID(j))
					merged = true
				}
			}
		}
		if !merged {
			return
		}
	}
}

// mergeableUnion returns the union rectangle of r1 and r2 if they are
// flush-adjacent along the plane's strip direction and share the same span
// on the perpendicular axis.
func mergeableUnion(r1, r2 Rect, horizontal bool) (Rect, bool) {
	if horizontal {
		if r1.Y0 == r2.Y0 && r1.Y1 == r2.Y1 {
			if r1.X1 == r2.X0 {
				return Rect{r1.X0, r1.Y0, r2.X1, r1.Y1}, true
			}
			if r2.X1 == r1.X0 {
				return Rect{r2.X0, r1.Y0, r1.X1, r1.Y1}, true
			}
		}
		return Rect{}, false
	}
	if r1.X0 == r2.X0 && r1.X1 == r2.X1 {
		if r1.Y1 == r2.Y0 {
			return Rect{r1.X0, r1.Y0, r1.X1, r2.Y1}, true
		}
		if r2.Y1 == r1.Y0 {
			return Rect{r1.X0, r2.Y0, r1.X1, r1.Y1}, true
		}
	}
	return Rect{}, false
}

// repairAll recomputes neighbor links for every live tile. Called once at
// the end of Paint rather than incrementally per split/merge, trading the
// classic algorithm's O(sqrt(n)) incremental repair for an O(n) pass that
// is trivially easy to verify against the neighbor-link invariant.
func (p *Plane) repairAll() {
	for i := 1; i < len(p.slab); i++ {
		if !p.slab[i].free {
			p.repairNeighbors(ID(i))
		}
	}
	p.hint = p.firstLiveID()
}
