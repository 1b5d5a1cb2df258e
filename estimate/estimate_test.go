package estimate_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vlsicore/mzrouter/celldb"
	"github.com/vlsicore/mzrouter/estimate"
	"github.com/vlsicore/mzrouter/hintplane"
	"github.com/vlsicore/mzrouter/patharena"
	"github.com/vlsicore/mzrouter/style"
	"github.com/vlsicore/mzrouter/tile"
)

func simpleStyle() *style.Style {
	return &style.Style{
		Layers: map[string]*style.RouteLayer{
			"m1": {Name: "m1", HCost: 1, VCost: 1},
		},
		Types: map[string]*style.RouteType{
			"m1": {Layer: "m1", Width: 1, Active: true, Bloat: map[celldb.TileType]int64{}, Spacing: map[celldb.TileType]int64{}},
		},
		Contacts: map[string]*style.RouteContact{},
	}
}

func TestEstimatedCostDecreasesTowardDestination(t *testing.T) {
	st := simpleStyle()
	db := celldb.NewMemDB(nil, nil)
	universe := tile.Rect{X0: -20, Y0: -20, X1: 20, Y1: 20}
	hints, err := hintplane.Build(db, universe, false)
	require.NoError(t, err)

	dest := []celldb.Shape{{Rect: tile.Rect{X0: 8, Y0: -1, X1: 10, Y1: 1}, Layer: "m1"}}

	plane, err := estimate.Build(context.Background(), st, db, hints, universe, dest)
	require.NoError(t, err)

	near := plane.EstimatedCost(tile.Point{X: 9, Y: 0})
	mid := plane.EstimatedCost(tile.Point{X: 0, Y: 0})
	far := plane.EstimatedCost(tile.Point{X: -15, Y: 0})

	require.LessOrEqual(t, near, mid)
	require.Less(t, mid, far)
}

func TestEstimatedCostOutsideUniverse(t *testing.T) {
	st := simpleStyle()
	db := celldb.NewMemDB(nil, nil)
	universe := tile.Rect{X0: 0, Y0: 0, X1: 10, Y1: 10}
	hints, err := hintplane.Build(db, universe, false)
	require.NoError(t, err)

	dest := []celldb.Shape{{Rect: tile.Rect{X0: 5, Y0: 5, X1: 6, Y1: 6}, Layer: "m1"}}
	plane, err := estimate.Build(context.Background(), st, db, hints, universe, dest)
	require.NoError(t, err)

	require.Equal(t, patharena.CostMax, plane.EstimatedCost(tile.Point{X: 100, Y: 100}))
}
