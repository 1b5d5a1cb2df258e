package blockage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vlsicore/mzrouter/blockage"
	"github.com/vlsicore/mzrouter/celldb"
	"github.com/vlsicore/mzrouter/hintplane"
	"github.com/vlsicore/mzrouter/style"
	"github.com/vlsicore/mzrouter/tile"
)

func geomStyle() *style.Style {
	return &style.Style{
		Layers: map[string]*style.RouteLayer{
			"m1": {Name: "m1", HCost: 1, VCost: 1},
		},
		Types: map[string]*style.RouteType{
			"m1": {
				Layer: "m1", Width: 1, Active: true,
				Bloat:   map[celldb.TileType]int64{"geom": 0},
				Spacing: map[celldb.TileType]int64{"geom": 1},
			},
		},
		Contacts: map[string]*style.RouteContact{},
	}
}

func typeAt(t *testing.T, p *tile.Plane, pt tile.Point) tile.Type {
	t.Helper()
	id, err := p.PointLocate(pt)
	require.NoError(t, err)
	return p.Tile(id).Type
}

func TestGenerateSameNodeAndBlockedRing(t *testing.T) {
	st := geomStyle()
	db := celldb.NewMemDB([]celldb.PaintedTile{
		{Rect: tile.Rect{X0: 10, Y0: 10, X1: 14, Y1: 14}, Type: "geom"},
	}, nil)
	universe := tile.Rect{X0: 0, Y0: 0, X1: 40, Y1: 40}
	hints, err := hintplane.Build(db, universe, false)
	require.NoError(t, err)
	b, err := blockage.NewBuilder(st, db, hints, universe, nil)
	require.NoError(t, err)
	require.NoError(t, b.Generate(context.Background(), universe))

	h, v, ok := b.Plane("m1")
	require.True(t, ok)

	// With width 1 the SAMENODE region is the tile itself; the spacing-1
	// ring around it is BLOCKED on both strip planes.
	require.Equal(t, tile.SameNode, typeAt(t, h, tile.Point{X: 11, Y: 11}))
	require.Equal(t, tile.SameNode, typeAt(t, v, tile.Point{X: 11, Y: 11}))
	require.Equal(t, tile.Blocked, typeAt(t, h, tile.Point{X: 9, Y: 9}))
	require.Equal(t, tile.Blocked, typeAt(t, h, tile.Point{X: 14, Y: 12}))
	require.Equal(t, tile.Space, typeAt(t, h, tile.Point{X: 30, Y: 30}))
}

func TestGenerateDestinationAreaAndWalks(t *testing.T) {
	st := geomStyle()
	st.MaxWalkLength = -1 // auto; the literal's zero value would make every walk strip empty
	db := celldb.NewMemDB([]celldb.PaintedTile{
		{Rect: tile.Rect{X0: 20, Y0: 20, X1: 24, Y1: 24}, Type: "geom"},
	}, nil)
	universe := tile.Rect{X0: 0, Y0: 0, X1: 40, Y1: 40}
	hints, err := hintplane.Build(db, universe, false)
	require.NoError(t, err)

	dests := []celldb.Shape{{Rect: tile.Rect{X0: 20, Y0: 20, X1: 22, Y1: 22}, Layer: "m1"}}
	b, err := blockage.NewBuilder(st, db, hints, universe, dests)
	require.NoError(t, err)
	require.NoError(t, b.Generate(context.Background(), universe))

	h, _, ok := b.Plane("m1")
	require.True(t, ok)

	// The corner-trimmed destination region sits down/left of the shape.
	require.Equal(t, tile.DestArea, typeAt(t, h, tile.Point{X: 20, Y: 20}))

	// SAMENODE geometry abutting the destination area's right edge must
	// have produced a directional walk there.
	walks := 0
	err = h.AreaEnumerate(universe, func(ty tile.Type) bool { return ty.IsWalk() }, func(_ tile.ID, r tile.Rect, ty tile.Type) bool {
		walks++
		return true
	})
	require.NoError(t, err)
	require.Greater(t, walks, 0)
}

func TestEnsureGeneratedGrowsBounds(t *testing.T) {
	st := geomStyle()
	db := celldb.NewMemDB(nil, nil)
	universe := tile.Rect{X0: 0, Y0: 0, X1: 200, Y1: 200}
	hints, err := hintplane.Build(db, universe, false)
	require.NoError(t, err)
	b, err := blockage.NewBuilder(st, db, hints, universe, nil)
	require.NoError(t, err)

	_, ok := b.GeneratedBounds()
	require.False(t, ok)

	require.NoError(t, b.EnsureGenerated(context.Background(), tile.Point{X: 5, Y: 5}))
	r1, ok := b.GeneratedBounds()
	require.True(t, ok)
	require.True(t, r1.Contains(tile.Point{X: 5, Y: 5}))
	require.False(t, r1.Contains(tile.Point{X: 150, Y: 150}))

	require.NoError(t, b.EnsureGenerated(context.Background(), tile.Point{X: 150, Y: 150}))
	r2, ok := b.GeneratedBounds()
	require.True(t, ok)
	require.True(t, r2.Contains(tile.Point{X: 150, Y: 150}))
	require.True(t, r2.Contains(tile.Point{X: 5, Y: 5}), "bounds only ever grow")
}

func TestRegenerateAfterClearIsEquivalent(t *testing.T) {
	st := geomStyle()
	db := celldb.NewMemDB([]celldb.PaintedTile{
		{Rect: tile.Rect{X0: 10, Y0: 10, X1: 14, Y1: 14}, Type: "geom"},
	}, nil)
	universe := tile.Rect{X0: 0, Y0: 0, X1: 40, Y1: 40}
	hints, err := hintplane.Build(db, universe, false)
	require.NoError(t, err)
	dests := []celldb.Shape{{Rect: tile.Rect{X0: 30, Y0: 30, X1: 32, Y1: 32}, Layer: "m1"}}
	b, err := blockage.NewBuilder(st, db, hints, universe, dests)
	require.NoError(t, err)

	samples := []tile.Point{
		{X: 11, Y: 11}, {X: 9, Y: 9}, {X: 30, Y: 30}, {X: 5, Y: 35}, {X: 14, Y: 12},
	}

	require.NoError(t, b.Generate(context.Background(), universe))
	h1, _, _ := b.Plane("m1")
	var before []tile.Type
	for _, p := range samples {
		before = append(before, typeAt(t, h1, p))
	}

	require.NoError(t, b.ClearCache())
	require.NoError(t, b.Generate(context.Background(), universe))
	h2, _, _ := b.Plane("m1")
	for i, p := range samples {
		require.Equal(t, before[i], typeAt(t, h2, p), "sample %d at %+v", i, p)
	}
}

// Repainting the same area twice without clearing must also converge.
func TestGenerateTwiceIsIdempotent(t *testing.T) {
	st := geomStyle()
	db := celldb.NewMemDB([]celldb.PaintedTile{
		{Rect: tile.Rect{X0: 10, Y0: 10, X1: 14, Y1: 14}, Type: "geom"},
	}, nil)
	universe := tile.Rect{X0: 0, Y0: 0, X1: 40, Y1: 40}
	hints, err := hintplane.Build(db, universe, false)
	require.NoError(t, err)
	dests := []celldb.Shape{{Rect: tile.Rect{X0: 30, Y0: 30, X1: 32, Y1: 32}, Layer: "m1"}}
	b, err := blockage.NewBuilder(st, db, hints, universe, dests)
	require.NoError(t, err)

	require.NoError(t, b.Generate(context.Background(), universe))
	h, _, _ := b.Plane("m1")
	samples := []tile.Point{{X: 11, Y: 11}, {X: 9, Y: 9}, {X: 30, Y: 30}, {X: 20, Y: 20}}
	var before []tile.Type
	for _, p := range samples {
		before = append(before, typeAt(t, h, p))
	}

	require.NoError(t, b.Generate(context.Background(), universe))
	for i, p := range samples {
		require.Equal(t, before[i], typeAt(t, h, p))
	}
}
