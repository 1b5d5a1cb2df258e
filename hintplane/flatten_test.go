package hintplane

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vlsicore/mzrouter/celldb"
	"github.com/vlsicore/mzrouter/tile"
)

const fixtureYAML = `
annotations:
  - rect: [0, 0, 20, 20]
    kind: magnet
    top: true
  - rect: [40, 40, 60, 60]
    kind: rotate
    top: true
  - rect: [70, 70, 90, 90]
    kind: fence
    top: false
`

func TestBuild_PaintsMagnetAndRotate(t *testing.T) {
	db, err := celldb.LoadFixtureYAML(strings.NewReader(fixtureYAML))
	require.NoError(t, err)

	universe := tile.Rect{X0: -1000, Y0: -1000, X1: 1000, Y1: 1000}
	planes, err := Build(db, universe, false)
	require.NoError(t, err)

	rect, ok := Lookup(planes.HHint, tile.Point{X: 10, Y: 10})
	require.True(t, ok)
	require.Equal(t, tile.Rect{X0: 0, Y0: 0, X1: 20, Y1: 20}, rect)

	_, ok = Lookup(planes.HHint, tile.Point{X: 500, Y: 500})
	require.False(t, ok)

	_, ok = Lookup(planes.HRotate, tile.Point{X: 50, Y: 50})
	require.True(t, ok)
	_, ok = Lookup(planes.VRotate, tile.Point{X: 50, Y: 50})
	require.True(t, ok)
}

func TestBuild_TopOnlyFiltersNonTopAnnotations(t *testing.T) {
	db, err := celldb.LoadFixtureYAML(strings.NewReader(fixtureYAML))
	require.NoError(t, err)

	universe := tile.Rect{X0: -1000, Y0: -1000, X1: 1000, Y1: 1000}
	planes, err := Build(db, universe, true)
	require.NoError(t, err)

	// The fence annotation is not marked top: true, so under topOnly=true
	// it must never reach the fence plane.
	_, ok := Lookup(planes.HFence, tile.Point{X: 80, Y: 80})
	require.False(t, ok)

	_, ok = Lookup(planes.HHint, tile.Point{X: 10, Y: 10})
	require.True(t, ok)
}

func TestBuild_InsideFence(t *testing.T) {
	db, err := celldb.LoadFixtureYAML(strings.NewReader(fixtureYAML))
	require.NoError(t, err)

	universe := tile.Rect{X0: -1000, Y0: -1000, X1: 1000, Y1: 1000}
	planes, err := Build(db, universe, false)
	require.NoError(t, err)

	rect, ok := Lookup(planes.HFence, tile.Point{X: 80, Y: 80})
	require.True(t, ok)
	require.Equal(t, tile.Rect{X0: 70, Y0: 70, X1: 90, Y1: 90}, rect)

	_, ok = Lookup(planes.HFence, tile.Point{X: 500, Y: 500})
	require.False(t, ok)
}

func TestBuild_OutsideFenceBlocksComplement(t *testing.T) {
	db, err := celldb.LoadFixtureYAML(strings.NewReader(`
annotations:
  - rect: [-10, -10, 10, 10]
    kind: fence
    outside: true
`))
	require.NoError(t, err)

	universe := tile.Rect{X0: -100, Y0: -100, X1: 100, Y1: 100}
	planes, err := Build(db, universe, false)
	require.NoError(t, err)

	// Inside the fenced rectangle: not marked (routing is allowed there).
	_, ok := Lookup(planes.HFence, tile.Point{X: 0, Y: 0})
	require.False(t, ok)

	// Outside it: marked, since "outside" excludes routing from everywhere
	// but the named rectangle.
	_, ok = Lookup(planes.HFence, tile.Point{X: 50, Y: 50})
	require.True(t, ok)
	_, ok = Lookup(planes.HFence, tile.Point{X: -50, Y: -50})
	require.True(t, ok)
}
