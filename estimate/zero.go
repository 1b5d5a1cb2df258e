package estimate

import "github.com/vlsicore/mzrouter/tile"

// Zero returns a degenerate estimation plane that reports 0 everywhere:
// the plane used when the style file sets estimate 0, turning the windowed
// search into a pure accumulated-cost search. One cell spanning the whole
// universe with a single zero-coefficient estimator keeps EstimatedCost's
// query path identical to the built case.
func Zero(universe tile.Rect) *Plane {
	p := &Plane{
		xs: []int64{universe.X0, universe.X1},
		ys: []int64{universe.Y0, universe.Y1},
		nx: 1,
		ny: 1,
	}
	p.cells = []cell{{
		estimators: []Estimator{{X0: universe.X0, Y0: universe.Y0}},
	}}
	return p
}
