package estimate

import "github.com/vlsicore/mzrouter/patharena"

// compileEstimators builds the estimator set for cell (i,j): one per
// reachable corner plus straight-shot estimators for
// any cardinal direction with an unobstructed ray to an EST_DEST cell.
func (p *Plane) compileEstimators(i, j int, cost0 []int64) {
	c := p.cellAt(i, j)
	if c.hc == patharena.CostMax && c.vc == patharena.CostMax {
		return // solid tiles are never queried for an estimate
	}

	corners := [4][2]int{{i, j}, {i + 1, j}, {i, j + 1}, {i + 1, j + 1}}
	for _, co := range corners {
		v := p.vid(co[0], co[1])
		if cost0[v] >= patharena.CostMax {
			continue
		}
		c.estimators = append(c.estimators, Estimator{
			X0: p.xs[co[0]], Y0: p.ys[co[1]],
			HC: c.hc, VC: c.vc, C0: cost0[v],
		})
	}

	p.straightShot(i, j, c, true, 1)
	p.straightShot(i, j, c, true, -1)
	p.straightShot(i, j, c, false, 1)
	p.straightShot(i, j, c, false, -1)
}

// straightShot scans from cell (i,j) along the given axis/sign for an
// unobstructed run of SPACE cells ending in a DEST cell, and if found
// adds a floating-origin estimator charging only for travel along that
// axis.
func (p *Plane) straightShot(i, j int, c *cell, horizontalAxis bool, sign int) {
	if horizontalAxis {
		k := i + sign
		for k >= 0 && k < p.nx {
			n := p.cellAt(k, j)
			if n.hc == patharena.CostMax && n.vc == patharena.CostMax {
				return
			}
			if n.hc == 0 && n.vc == 0 {
				x0 := p.xs[k]
				if sign > 0 {
					x0 = p.xs[k]
				} else {
					x0 = p.xs[k+1]
				}
				c.estimators = append(c.estimators, Estimator{X0: x0, Y0: 0, HC: c.hc, VC: 0, C0: 0})
				return
			}
			k += sign
		}
		return
	}
	k := j + sign
	for k >= 0 && k < p.ny {
		n := p.cellAt(i, k)
		if n.hc == patharena.CostMax && n.vc == patharena.CostMax {
			return
		}
		if n.hc == 0 && n.vc == 0 {
			y0 := p.ys[k]
			if sign < 0 {
				y0 = p.ys[k+1]
			}
			c.estimators = append(c.estimators, Estimator{X0: 0, Y0: y0, HC: 0, VC: c.vc, C0: 0})
			return
		}
		k += sign
	}
}

// prune applies domination pruning to every cell: an
// estimator e1 dominates e2 if e1 <= e2 everywhere in the tile. Comparison
// is sampled at the tile's corners plus each estimator's own origin
// clamped into the tile (the only points where the max of two convex
// piecewise-linear Manhattan functions can differ in sign), matching
// the per-axis worst-corner substitution for a
// floating origin.
func (p *Plane) prune() {
	for j := 0; j < p.ny; j++ {
		for i := 0; i < p.nx; i++ {
			c := p.cellAt(i, j)
			r := p.rectOf(i, j)
			c.estimators = pruneDominated(c.estimators, rectF{r.X0, r.Y0, r.X1, r.Y1})
		}
	}
}

type rectF struct{ x0, y0, x1, y1 int64 }

func clampI64(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func pruneDominated(ests []Estimator, r rectF) []Estimator {
	if len(ests) <= 1 {
		return ests
	}
	samples := samplePoints(ests, r)
	keep := make([]bool, len(ests))
	for i := range keep {
		keep[i] = true
	}
	for i, ei := range ests {
		if !keep[i] {
			continue
		}
		for k, ek := range ests {
			if i == k || !keep[k] {
				continue
			}
			if dominatesAt(ei, ek, samples) {
				keep[k] = false
			}
		}
	}
	out := ests[:0]
	for i, e := range ests {
		if keep[i] {
			out = append(out, e)
		}
	}
	return out
}

// samplePoints returns the four tile corners plus every estimator's own
// origin clamped into the tile, on both axes independently.
func samplePoints(ests []Estimator, r rectF) [][2]int64 {
	pts := [][2]int64{{r.x0, r.y0}, {r.x1, r.y0}, {r.x0, r.y1}, {r.x1, r.y1}}
	for _, e := range ests {
		cx := clampI64(e.X0, r.x0, r.x1)
		cy := clampI64(e.Y0, r.y0, r.y1)
		pts = append(pts,
			[2]int64{cx, r.y0}, [2]int64{cx, r.y1},
			[2]int64{r.x0, cy}, [2]int64{r.x1, cy},
			[2]int64{cx, cy},
		)
	}
	return pts
}

func dominatesAt(a, b Estimator, pts [][2]int64) bool {
	for _, pt := range pts {
		if eval(a, pt) > eval(b, pt) {
			return false
		}
	}
	return true
}

func eval(e Estimator, pt [2]int64) int64 {
	dx := abs64(pt[0] - e.X0)
	dy := abs64(pt[1] - e.Y0)
	return patharena.AddSat(patharena.AddSat(patharena.MulSat(dx, e.HC), patharena.MulSat(dy, e.VC)), e.C0)
}
