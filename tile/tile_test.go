package tile

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustPlane(t *testing.T, u Rect) *Plane {
	t.Helper()
	p, err := NewPlane(u, Identity{Kind: KindBlockageH, Name: "test"})
	require.NoError(t, err)
	return p
}

func TestNewPlane_SingleSpaceTile(t *testing.T) {
	p := mustPlane(t, Rect{0, 0, 100, 100})
	require.Equal(t, 1, p.Count())
	id, err := p.PointLocate(Point{50, 50})
	require.NoError(t, err)
	require.Equal(t, Space, p.Tile(id).Type)
}

func TestPaint_SplitAndLocate(t *testing.T) {
	p := mustPlane(t, Rect{0, 0, 100, 100})
	table := NewMaxTable()
	require.NoError(t, table.Validate())

	require.NoError(t, p.Paint(Rect{20, 20, 40, 40}, Blocked, table, true))

	id, err := p.PointLocate(Point{30, 30})
	require.NoError(t, err)
	require.Equal(t, Blocked, p.Tile(id).Type)

	id, err = p.PointLocate(Point{0, 0})
	require.NoError(t, err)
	require.Equal(t, Space, p.Tile(id).Type)

	id, err = p.PointLocate(Point{99, 99})
	require.NoError(t, err)
	require.Equal(t, Space, p.Tile(id).Type)
}

func TestPaint_IdempotentRepaint(t *testing.T) {
	p := mustPlane(t, Rect{0, 0, 100, 100})
	table := NewMaxTable()

	require.NoError(t, p.Paint(Rect{10, 10, 50, 50}, SameNode, table, true))
	before := snapshot(p)

	require.NoError(t, p.Paint(Rect{10, 10, 50, 50}, SameNode, table, true))
	after := snapshot(p)

	require.Equal(t, before, after, "repainting the same area with the same type must be a no-op")
}

func TestPaint_HorizontalStripsStayMaximal(t *testing.T) {
	p := mustPlane(t, Rect{0, 0, 100, 10})
	table := NewMaxTable()

	require.NoError(t, p.Paint(Rect{0, 0, 40, 10}, Blocked, table, true))
	require.NoError(t, p.Paint(Rect{40, 0, 100, 10}, Blocked, table, true))

	// Two adjacent BLOCKED paints covering the full strip must merge into
	// one maximal tile, not remain as two abutting tiles of the same type.
	blockedCount := 0
	err := p.AreaEnumerate(p.Universe(), Is(Blocked), func(id ID, r Rect, ty Type) bool {
		blockedCount++
		require.Equal(t, Rect{0, 0, 100, 10}, r)
		return true
	})
	require.NoError(t, err)
	require.Equal(t, 1, blockedCount)
}

func TestAreaEnumerate_EarlyAbort(t *testing.T) {
	p := mustPlane(t, Rect{0, 0, 100, 100})
	table := NewMaxTable()
	require.NoError(t, p.Paint(Rect{0, 0, 10, 100}, Blocked, table, true))
	require.NoError(t, p.Paint(Rect{20, 0, 30, 100}, Blocked, table, true))

	visited := 0
	err := p.AreaEnumerate(p.Universe(), Any, func(ID, Rect, Type) bool {
		visited++
		return false
	})
	require.NoError(t, err)
	require.Equal(t, 1, visited)
}

func TestDefaultTable_Monotone(t *testing.T) {
	require.NoError(t, NewMaxTable().Validate())
}

func TestBlockTable_PreservesSameNodeAndWalks(t *testing.T) {
	p := mustPlane(t, Rect{0, 0, 100, 100})
	max := NewMaxTable()
	block := NewBlockTable()

	require.NoError(t, p.Paint(Rect{10, 10, 30, 30}, SameNode, max, true))
	require.NoError(t, p.Paint(Rect{30, 10, 40, 30}, WalkRight, max, true))
	require.NoError(t, p.Paint(Rect{0, 0, 100, 100}, Blocked, block, true))

	id, err := p.PointLocate(Point{20, 20})
	require.NoError(t, err)
	require.Equal(t, SameNode, p.Tile(id).Type)

	id, err = p.PointLocate(Point{35, 20})
	require.NoError(t, err)
	require.Equal(t, WalkRight, p.Tile(id).Type)

	id, err = p.PointLocate(Point{70, 70})
	require.NoError(t, err)
	require.Equal(t, Blocked, p.Tile(id).Type)
}

func TestWalkPaintWinsOverSameNode(t *testing.T) {
	p := mustPlane(t, Rect{0, 0, 50, 50})
	table := NewMaxTable()
	require.NoError(t, p.Paint(Rect{0, 0, 50, 50}, SameNode, table, true))
	require.NoError(t, p.Paint(Rect{10, 10, 20, 20}, WalkTop, table, true))

	id, err := p.PointLocate(Point{15, 15})
	require.NoError(t, err)
	require.Equal(t, WalkTop, p.Tile(id).Type)
}

func TestPlaneInvariant_PartitionsUniverse(t *testing.T) {
	p := mustPlane(t, Rect{0, 0, 64, 64})
	table := NewMaxTable()
	require.NoError(t, p.Paint(Rect{10, 10, 20, 20}, SameNode, table, true))
	require.NoError(t, p.Paint(Rect{30, 5, 50, 58}, Blocked, table, true))

	var area int64
	err := p.AreaEnumerate(p.Universe(), Any, func(id ID, r Rect, ty Type) bool {
		area += (r.X1 - r.X0) * (r.Y1 - r.Y0)
		return true
	})
	require.NoError(t, err)
	u := p.Universe()
	require.Equal(t, (u.X1-u.X0)*(u.Y1-u.Y0), area, "tile rectangles must partition the universe with no gaps or overlaps")
}

// snapshot captures every live (rect,type) pair for equality comparisons in
// idempotence tests; order-independent since Paint's merge pass is
// deterministic only up to slab layout, not up to paint-call history.
func snapshot(p *Plane) map[Rect]Type {
	out := make(map[Rect]Type)
	_ = p.AreaEnumerate(p.Universe(), Any, func(id ID, r Rect, ty Type) bool {
		out[r] = ty
		return true
	})
	return out
}
