package walkcomplete

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vlsicore/mzrouter/blockage"
	"github.com/vlsicore/mzrouter/celldb"
	"github.com/vlsicore/mzrouter/extend"
	"github.com/vlsicore/mzrouter/hintplane"
	"github.com/vlsicore/mzrouter/numline"
	"github.com/vlsicore/mzrouter/patharena"
	"github.com/vlsicore/mzrouter/style"
	"github.com/vlsicore/mzrouter/tile"
)

func walkStyle() *style.Style {
	return &style.Style{
		Layers: map[string]*style.RouteLayer{
			"m1": {Name: "m1", HCost: 1, VCost: 1, JogCost: 5},
			"m2": {Name: "m2", HCost: 1, VCost: 1, JogCost: 5},
		},
		Types: map[string]*style.RouteType{
			"m1": {Layer: "m1", Width: 1, Active: true, Bloat: map[celldb.TileType]int64{}, Spacing: map[celldb.TileType]int64{}},
			"m2": {Layer: "m2", Width: 1, Active: true, Bloat: map[celldb.TileType]int64{}, Spacing: map[celldb.TileType]int64{}},
		},
		Contacts: map[string]*style.RouteContact{
			"via12": {
				Name: "via12", Layer1: "m1", Layer2: "m2", Cost: 3, Active: true,
				RT: style.RouteType{Width: 1, Active: true, Bloat: map[celldb.TileType]int64{}, Spacing: map[celldb.TileType]int64{}},
			},
		},
	}
}

// paintPair paints rect with typ on both orientations of the named
// route-entry's planes, standing in for the blockage builder's own
// destination-area and walk passes so each test controls exactly what the
// completer sees.
func paintPair(t *testing.T, b *blockage.Builder, name string, rect tile.Rect, typ tile.Type) {
	t.Helper()
	h, v, ok := b.Plane(name)
	require.True(t, ok)
	table := tile.NewMaxTable()
	require.NoError(t, h.Paint(rect, typ, table, true))
	require.NoError(t, v.Paint(rect, typ, table, false))
}

func walkContext(t *testing.T) (*extend.Context, *blockage.Builder) {
	t.Helper()
	st := walkStyle()
	db := celldb.NewMemDB(nil, nil)
	universe := tile.Rect{X0: -50, Y0: -50, X1: 50, Y1: 50}
	hints, err := hintplane.Build(db, universe, false)
	require.NoError(t, err)
	b, err := blockage.NewBuilder(st, db, hints, universe, nil)
	require.NoError(t, err)
	ec := &extend.Context{Style: st, Blocks: b, Hints: hints, DestX: numline.New(), DestY: numline.New()}
	return ec, b
}

func TestCompleteDirectionalWalkLeft(t *testing.T) {
	ec, b := walkContext(t)
	paintPair(t, b, "m1", tile.Rect{X0: 10, Y0: 0, X1: 12, Y1: 2}, tile.DestArea)
	paintPair(t, b, "m1", tile.Rect{X0: 6, Y0: 0, X1: 10, Y1: 2}, tile.WalkLeft)

	a := patharena.New(16)
	id := a.Alloc(patharena.PathRecord{
		Point:      tile.Point{X: 7, Y: 1},
		RouteLayer: "m1",
		Orient:     patharena.Horizontal,
		Cost:       20,
		Mask:       patharena.WalkLeft,
		Back:       patharena.NoPath,
	})

	succ, ok, err := Complete(context.Background(), ec, a, id)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, patharena.Complete, succ.Mask)
	require.Equal(t, tile.Point{X: 10, Y: 1}, succ.Point)
	require.Equal(t, patharena.Horizontal, succ.Orient)
	require.Equal(t, int64(23), succ.Cost) // 20 + 3 units at h_cost 1, no jog

	h, _, found := b.Plane("m1")
	require.True(t, found)
	lid, err := h.PointLocate(succ.Point)
	require.NoError(t, err)
	require.Equal(t, tile.DestArea, h.Tile(lid).Type)
}

func TestCompleteDirectionalWalkUpChargesJog(t *testing.T) {
	ec, b := walkContext(t)
	paintPair(t, b, "m1", tile.Rect{X0: 0, Y0: -5, X1: 2, Y1: -2}, tile.DestArea)
	paintPair(t, b, "m1", tile.Rect{X0: 0, Y0: -2, X1: 2, Y1: 3}, tile.WalkTop)

	a := patharena.New(16)
	id := a.Alloc(patharena.PathRecord{
		Point:      tile.Point{X: 1, Y: 1},
		RouteLayer: "m1",
		Orient:     patharena.Horizontal,
		Cost:       0,
		Mask:       patharena.WalkUp,
		Back:       patharena.NoPath,
	})

	succ, ok, err := Complete(context.Background(), ec, a, id)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, tile.Point{X: 1, Y: -3}, succ.Point) // walk tile Y0-1
	require.Equal(t, patharena.Vertical, succ.Orient)
	// 4 units down at v_cost 1 plus the H->V jog.
	require.Equal(t, int64(9), succ.Cost)
}

func TestCompleteContactWalkTakesFirstFit(t *testing.T) {
	ec, b := walkContext(t)
	ec.Style.Contacts["via12b"] = &style.RouteContact{
		Name: "via12b", Layer1: "m1", Layer2: "m2", Cost: 1, Active: true,
		RT: style.RouteType{Width: 1, Active: true, Bloat: map[celldb.TileType]int64{}, Spacing: map[celldb.TileType]int64{}},
	}
	// The new contact needs its own plane pair; rebuild the builder so
	// NewBuilder sees it.
	db := celldb.NewMemDB(nil, nil)
	universe := tile.Rect{X0: -50, Y0: -50, X1: 50, Y1: 50}
	hints, err := hintplane.Build(db, universe, false)
	require.NoError(t, err)
	b, err = blockage.NewBuilder(ec.Style, db, hints, universe, nil)
	require.NoError(t, err)
	ec.Blocks = b

	paintPair(t, b, "m2", tile.Rect{X0: 0, Y0: 0, X1: 4, Y1: 4}, tile.DestArea)

	a := patharena.New(16)
	id := a.Alloc(patharena.PathRecord{
		Point:      tile.Point{X: 2, Y: 2},
		RouteLayer: "m1",
		Orient:     patharena.Start,
		Cost:       10,
		Mask:       patharena.WalkLRContact,
		Back:       patharena.NoPath,
	})

	succ, ok, err := Complete(context.Background(), ec, a, id)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, patharena.Complete, succ.Mask)
	require.Equal(t, "m2", succ.RouteLayer)
	require.Equal(t, patharena.ContactLR, succ.Orient)
	// Both vias fit; the first in sorted contact order wins even though
	// via12b would be cheaper.
	require.Equal(t, "via12", succ.LastContactName)
	require.Equal(t, int64(13), succ.Cost)
}

func TestCompleteContactWalkSkipsNonFittingForNext(t *testing.T) {
	ec, b := walkContext(t)
	// Make via12 unplaceable at the walk point by blocking its own plane
	// there; the scan must fall through to via12b.
	ec.Style.Contacts["via12b"] = &style.RouteContact{
		Name: "via12b", Layer1: "m1", Layer2: "m2", Cost: 1, Active: true,
		RT: style.RouteType{Width: 1, Active: true, Bloat: map[celldb.TileType]int64{}, Spacing: map[celldb.TileType]int64{}},
	}
	db := celldb.NewMemDB(nil, nil)
	universe := tile.Rect{X0: -50, Y0: -50, X1: 50, Y1: 50}
	hints, err := hintplane.Build(db, universe, false)
	require.NoError(t, err)
	b, err = blockage.NewBuilder(ec.Style, db, hints, universe, nil)
	require.NoError(t, err)
	ec.Blocks = b

	paintPair(t, b, "m2", tile.Rect{X0: 0, Y0: 0, X1: 4, Y1: 4}, tile.DestArea)
	paintPair(t, b, "via12", tile.Rect{X0: 0, Y0: 0, X1: 4, Y1: 4}, tile.Blocked)

	a := patharena.New(16)
	id := a.Alloc(patharena.PathRecord{
		Point:      tile.Point{X: 2, Y: 2},
		RouteLayer: "m1",
		Orient:     patharena.Start,
		Cost:       10,
		Mask:       patharena.WalkLRContact,
		Back:       patharena.NoPath,
	})

	succ, ok, err := Complete(context.Background(), ec, a, id)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "via12b", succ.LastContactName)
	require.Equal(t, int64(11), succ.Cost)
}

// Stacked contacts: a path on m1 drops via12 onto an m2 contact-walk
// tile, and completion drops via23 at the same point into the m3
// destination area. Each constituent contact's fit is verified at the
// point: via12 by the contact extender, via23 by the completer.
func TestStackedContactsCompleteThroughMiddleLayer(t *testing.T) {
	st := walkStyle()
	st.Layers["m3"] = &style.RouteLayer{Name: "m3", HCost: 1, VCost: 1, JogCost: 5}
	st.Types["m3"] = &style.RouteType{Layer: "m3", Width: 1, Active: true, Bloat: map[celldb.TileType]int64{}, Spacing: map[celldb.TileType]int64{}}
	st.Contacts["via23"] = &style.RouteContact{
		Name: "via23", Layer1: "m2", Layer2: "m3", Cost: 2, Active: true,
		RT: style.RouteType{Width: 1, Active: true, Bloat: map[celldb.TileType]int64{}, Spacing: map[celldb.TileType]int64{}},
	}

	db := celldb.NewMemDB(nil, nil)
	universe := tile.Rect{X0: -50, Y0: -50, X1: 50, Y1: 50}
	hints, err := hintplane.Build(db, universe, false)
	require.NoError(t, err)
	b, err := blockage.NewBuilder(st, db, hints, universe, nil)
	require.NoError(t, err)
	ec := &extend.Context{Style: st, Blocks: b, Hints: hints, DestX: numline.New(), DestY: numline.New()}

	paintPair(t, b, "m3", tile.Rect{X0: 28, Y0: 28, X1: 34, Y1: 34}, tile.DestArea)
	paintPair(t, b, "m2", tile.Rect{X0: 28, Y0: 28, X1: 34, Y1: 34}, tile.ContactWalkAboveLR)

	a := patharena.New(16)
	seed := a.Alloc(patharena.PathRecord{
		Point:      tile.Point{X: 30, Y: 30},
		RouteLayer: "m1",
		Orient:     patharena.Start,
		Mask:       patharena.LRContacts,
		Back:       patharena.NoPath,
	})

	// First hop: the contact extender drops via12 and lands on m2's
	// contact-walk tile, so the successor carries exactly the walk mask.
	succs, err := extend.ExtendContact(context.Background(), ec, a, seed, true)
	require.NoError(t, err)
	require.Len(t, succs, 1)
	require.Equal(t, "m2", succs[0].RouteLayer)
	require.Equal(t, patharena.WalkLRContact, succs[0].Mask)
	require.Equal(t, "via12", succs[0].LastContactName)
	mid := a.Alloc(succs[0])

	// Second hop: completion drops via23 at the same point into m3.
	done, ok, err := Complete(context.Background(), ec, a, mid)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, patharena.Complete, done.Mask)
	require.Equal(t, "m3", done.RouteLayer)
	require.Equal(t, "via23", done.LastContactName)
	require.Equal(t, tile.Point{X: 30, Y: 30}, done.Point)
	// via12 (3) + via23 (2) on a zero-cost seed.
	require.Equal(t, int64(5), done.Cost)
}

func TestCompleteContactWalkNoDestinationUnderneath(t *testing.T) {
	ec, _ := walkContext(t)

	a := patharena.New(16)
	id := a.Alloc(patharena.PathRecord{
		Point:      tile.Point{X: 2, Y: 2},
		RouteLayer: "m1",
		Orient:     patharena.Start,
		Mask:       patharena.WalkLRContact,
		Back:       patharena.NoPath,
	})

	_, ok, err := Complete(context.Background(), ec, a, id)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCompleteRejectsNonWalkMask(t *testing.T) {
	ec, _ := walkContext(t)
	a := patharena.New(16)
	id := a.Alloc(patharena.PathRecord{
		Point:      tile.Point{X: 0, Y: 0},
		RouteLayer: "m1",
		Mask:       patharena.Right,
		Back:       patharena.NoPath,
	})

	_, _, err := Complete(context.Background(), ec, a, id)
	require.ErrorIs(t, err, ErrNotAWalk)
}
