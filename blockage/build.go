package blockage

import (
	"github.com/vlsicore/mzrouter/celldb"
	"github.com/vlsicore/mzrouter/hintplane"
	"github.com/vlsicore/mzrouter/style"
	"github.com/vlsicore/mzrouter/tile"
)

// NewBuilder allocates a fresh blockage plane pair for every active layer
// and active contact in st, plus the bounds plane, all over universe. The
// planes start empty (all SPACE / GENBLOCK); call EnsureGenerated to
// populate a region before querying it. destShapes are the caller's
// destination terminals.
func NewBuilder(st *style.Style, db celldb.CellDB, hints *hintplane.Planes, universe tile.Rect, destShapes []celldb.Shape) (*Builder, error) {
	b := &Builder{
		style:      st,
		db:         db,
		hints:      hints,
		universe:   universe,
		entries:    make(map[string]*routeEntry),
		destShapes: destShapes,
	}

	w := widestActiveWidth(st)
	b.contextRadius = maxSpacing(st) + w

	b.boundsIncrement = st.BoundsIncrement
	if b.boundsIncrement < 0 {
		b.boundsIncrement = w * defaultBoundsIncrementFactor
	}
	b.maxWalkLength = st.MaxWalkLength
	if b.maxWalkLength < 0 {
		b.maxWalkLength = w * defaultMaxWalkFactor
	}

	for _, name := range st.ActiveLayers() {
		rt := st.Types[name]
		h, v, err := newPlanePair(universe, name)
		if err != nil {
			return nil, err
		}
		b.entries[name] = &routeEntry{name: name, rt: rt, h: h, v: v}
	}

	for _, name := range st.ActiveContacts() {
		rc := st.Contacts[name]
		h, v, err := newPlanePair(universe, name)
		if err != nil {
			return nil, err
		}
		rtCopy := rc.RT
		b.entries[name] = &routeEntry{
			name:      name,
			rt:        &rtCopy,
			h:         h,
			v:         v,
			isContact: true,
			residues:  [2]string{rc.Layer1, rc.Layer2},
		}
	}

	bounds, err := tile.NewPlane(universe, tile.Identity{Kind: tile.KindBounds, Name: "bounds"})
	if err != nil {
		return nil, err
	}
	b.bounds = bounds

	return b, nil
}

func newPlanePair(universe tile.Rect, name string) (h, v *tile.Plane, err error) {
	h, err = tile.NewPlane(universe, tile.Identity{Kind: tile.KindBlockageH, RouteType: name, Name: "blockage"})
	if err != nil {
		return nil, nil, err
	}
	v, err = tile.NewPlane(universe, tile.Identity{Kind: tile.KindBlockageV, RouteType: name, Name: "blockage"})
	if err != nil {
		return nil, nil, err
	}
	return h, v, nil
}
