package patharena

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vlsicore/mzrouter/tile"
)

func TestArena_ReconstructWalksBackChain(t *testing.T) {
	a := New(4)
	seed := a.Alloc(PathRecord{Point: tile.Point{X: 0, Y: 0}, RouteLayer: "m1", Orient: Start, Back: NoPath})
	mid := a.Alloc(PathRecord{Point: tile.Point{X: 5, Y: 0}, RouteLayer: "m1", Orient: Horizontal, Cost: 5, Back: seed})
	tip := a.Alloc(PathRecord{Point: tile.Point{X: 5, Y: 5}, RouteLayer: "m1", Orient: Vertical, Cost: 10, Back: mid})

	path := a.Reconstruct(tip)
	require.Len(t, path, 3)
	require.Equal(t, tile.Point{X: 5, Y: 5}, path[0].Point)
	require.Equal(t, tile.Point{X: 5, Y: 0}, path[1].Point)
	require.Equal(t, tile.Point{X: 0, Y: 0}, path[2].Point)
}

func TestArena_ResetReclaimsSlab(t *testing.T) {
	a := New(4)
	a.Alloc(PathRecord{})
	a.Alloc(PathRecord{})
	require.Equal(t, 2, a.Len())
	a.Reset()
	require.Equal(t, 0, a.Len())
}

func TestPointHash_KeepsMinimumCost(t *testing.T) {
	a := New(4)
	h := NewPointHash()

	expensive := a.Alloc(PathRecord{Point: tile.Point{X: 1, Y: 1}, RouteLayer: "m1", Orient: Horizontal, Cost: 20})
	require.True(t, h.Offer(a, expensive))

	cheaper := a.Alloc(PathRecord{Point: tile.Point{X: 1, Y: 1}, RouteLayer: "m1", Orient: Horizontal, Cost: 5})
	require.True(t, h.Offer(a, cheaper))

	worse := a.Alloc(PathRecord{Point: tile.Point{X: 1, Y: 1}, RouteLayer: "m1", Orient: Horizontal, Cost: 9})
	require.False(t, h.Offer(a, worse))

	cost, ok := h.BestCost(KeyOf(a.Get(cheaper)))
	require.True(t, ok)
	require.Equal(t, int64(5), cost)
}

func TestPointHash_OrientationIsPartOfKey(t *testing.T) {
	a := New(4)
	h := NewPointHash()

	hArrival := a.Alloc(PathRecord{Point: tile.Point{X: 3, Y: 3}, RouteLayer: "m1", Orient: Horizontal, Cost: 5})
	vArrival := a.Alloc(PathRecord{Point: tile.Point{X: 3, Y: 3}, RouteLayer: "m1", Orient: Vertical, Cost: 5})
	require.True(t, h.Offer(a, hArrival))
	require.True(t, h.Offer(a, vArrival))
	require.Equal(t, 2, h.Len())
}

func TestCostMax_Saturates(t *testing.T) {
	require.Equal(t, CostMax, AddSat(CostMax, 1))
	require.Equal(t, CostMax, AddSat(CostMax-1, 2))
	require.Equal(t, int64(30), AddSat(10, 20))
	require.Equal(t, CostMax, MulSat(CostMax, 2))
	require.Equal(t, int64(200), MulSat(20, 10))
}
