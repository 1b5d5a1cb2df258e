package estimate

import (
	"github.com/vlsicore/mzrouter/patharena"
	"github.com/vlsicore/mzrouter/tile"
)

// category distinguishes the three per-cell cost regimes: free space, a
// solid obstacle (an unexpanded subcell or a fence region), or a
// destination area.
type category int8

const (
	catSpace category = iota
	catSolid
	catDest
)

// cell is one grid cell of the decomposition: its category-derived
// per-direction cost and the estimators compiled for it.
type cell struct {
	hc, vc     int64
	estimators []Estimator
}

// Estimator is one linear lower bound:
// cost(x,y) = |x-x0|*hc + |y-y0|*vc + c0.
type Estimator struct {
	X0, Y0 int64
	HC, VC int64
	C0     int64
}

// Eval evaluates the estimator at p.
func (e Estimator) Eval(p tile.Point) int64 {
	dx := abs64(p.X - e.X0)
	dy := abs64(p.Y - e.Y0)
	return patharena.AddSat(patharena.AddSat(patharena.MulSat(dx, e.HC), patharena.MulSat(dy, e.VC)), e.C0)
}

func abs64(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}

// Plane is the estimation plane: a uniform grid (the result of extending
// every solid/destination rectangle's corners in all four directions)
// with compiled, pruned estimators per cell.
type Plane struct {
	xs, ys []int64 // sorted grid lines, len(xs) == nx+1, len(ys) == ny+1
	nx, ny int
	cells  []cell // row-major, cells[j*nx+i] is the cell spanning [xs[i],xs[i+1])x[ys[j],ys[j+1])
}

func (p *Plane) cellAt(i, j int) *cell { return &p.cells[j*p.nx+i] }

func (p *Plane) rectOf(i, j int) tile.Rect {
	return tile.Rect{X0: p.xs[i], Y0: p.ys[j], X1: p.xs[i+1], Y1: p.ys[j+1]}
}
