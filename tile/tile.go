package tile

// ID indexes a Tile within a Plane's slab. The zero value is never a valid
// live tile (slot 0 is reserved and never used); NoID is the
// canonical "no such neighbor" value and also ends the free list.
type ID int32

// NoID marks the absence of a neighbor (used only at the outer fringe of
// the infinite boundary tiles, which otherwise always have a real neighbor).
const NoID ID = -1

// Tile is one rectangle of a Plane's tiling: its bounds, its type, and its
// four corner-stitch neighbor links.
//
//   - LB (lower-left): the neighbor consulted when a query point lies to
//     the left of the tile (x < X0).
//   - BR (bottom-right): the neighbor consulted when a query point lies
//     below the tile (y < Y0).
//   - TR (top-right/upper-right): the neighbor consulted when a query point
//     lies to the right of the tile (x >= X1).
//   - TL (top-left): the neighbor consulted when a query point lies above
//     the tile (y >= Y1).
//
// free is true for slab slots on the Plane's free list; such tiles carry no
// meaningful Rect/Type and are only reachable via Plane.free.
type Tile struct {
	Rect Rect
	Type Type

	LB, BR, TR, TL ID

	free     bool
	freeNext ID
}

// Plane is a corner-stitched tiling of a rectangular universe, plus an
// identity used for diagnostics. All tiles are owned by exactly one Plane;
// there is no shared ownership and no reference counting.
type Plane struct {
	Identity Identity

	universe Rect
	slab     []Tile
	freeHead ID

	// hint is the last tile returned by PointLocate/Paint, used to seed the
	// next neighbor walk the way a real corner-stitched plane amortizes
	// repeated nearby queries.
	hint ID
}

// NewPlane creates a Plane whose universe is exactly universe, initially a
// single Space tile, surrounded conceptually (not physically allocated) by
// the infinite boundary: queries for points outside universe return
// ErrOutOfUniverse rather than a sentinel tile, since mzrouter always
// clips its bounding rectangle before building a plane.
func NewPlane(universe Rect, id Identity) (*Plane, error) {
	if universe.Empty() {
		return nil, ErrEmptyRect
	}
	p := &Plane{
		Identity: id,
		universe: universe,
		slab:     make([]Tile, 1, 64), // slot 0 reserved, never a live tile
		freeHead: NoID,
	}
	root := Tile{Rect: universe, Type: Space, LB: NoID, BR: NoID, TR: NoID, TL: NoID}
	p.slab = append(p.slab, root)
	p.hint = ID(len(p.slab) - 1)
	return p, nil
}

// Universe returns the plane's coordinate universe.
func (p *Plane) Universe() Rect { return p.universe }

// Tile returns the Tile at id. The caller must not retain the returned
// pointer across a mutating call (Paint may reallocate the slab).
func (p *Plane) Tile(id ID) *Tile {
	return &p.slab[id]
}

// alloc returns a fresh ID for t, reusing a free-list slot if one exists.
func (p *Plane) alloc(t Tile) ID {
	t.free = false
	if p.freeHead != NoID {
		id := p.freeHead
		p.freeHead = p.slab[id].freeNext
		p.slab[id] = t
		return id
	}
	p.slab = append(p.slab, t)
	return ID(len(p.slab) - 1)
}

// release returns id to the free list. Callers must have already unlinked
// every neighbor reference to id before calling release.
func (p *Plane) release(id ID) {
	p.slab[id] = Tile{free: true, freeNext: p.freeHead}
	p.freeHead = id
	if p.hint == id {
		p.hint = NoID
	}
}

// Count returns the number of live tiles, for tests and diagnostics.
func (p *Plane) Count() int {
	n := 0
	for i := 1; i < len(p.slab); i++ {
		if !p.slab[i].free {
			n++
		}
	}
	return n
}
