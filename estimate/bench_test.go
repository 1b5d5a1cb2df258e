// Package estimate_test provides benchmarks for the estimation plane's
// hot paths: the corner-graph Dijkstra build and the per-point query.
package estimate_test

import (
	"context"
	"testing"

	"github.com/vlsicore/mzrouter/celldb"
	"github.com/vlsicore/mzrouter/estimate"
	"github.com/vlsicore/mzrouter/hintplane"
	"github.com/vlsicore/mzrouter/tile"
)

// Benchmark sinks prevent accidental dead-code elimination in
// microbenchmarks.
var (
	benchSinkCost  int64
	benchSinkPlane *estimate.Plane
)

func benchInputs(b *testing.B) (*hintplane.Planes, []celldb.Shape, tile.Rect) {
	b.Helper()
	db := celldb.NewMemDB(nil, nil)
	universe := tile.Rect{X0: -500, Y0: -500, X1: 500, Y1: 500}
	hints, err := hintplane.Build(db, universe, false)
	if err != nil {
		b.Fatal(err)
	}
	// A spread of destination rectangles so the grid has a few hundred
	// corners for Dijkstra to relax.
	var dests []celldb.Shape
	for i := int64(0); i < 12; i++ {
		dests = append(dests, celldb.Shape{
			Rect:  tile.Rect{X0: i*40 - 480, Y0: i*20 - 240, X1: i*40 - 476, Y1: i*20 - 236},
			Layer: "m1",
		})
	}
	return hints, dests, universe
}

// BenchmarkBuild measures the full estimation-plane build, dominated by
// the tile-corner Dijkstra relaxation and estimator compilation.
func BenchmarkBuild(b *testing.B) {
	st := simpleStyle()
	db := celldb.NewMemDB(nil, nil)
	hints, dests, universe := benchInputs(b)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p, err := estimate.Build(context.Background(), st, db, hints, universe, dests)
		if err != nil {
			b.Fatal(err)
		}
		benchSinkPlane = p
	}
}

// BenchmarkEstimatedCost measures the query path: cell lookup by binary
// search plus evaluation of every surviving estimator.
func BenchmarkEstimatedCost(b *testing.B) {
	st := simpleStyle()
	db := celldb.NewMemDB(nil, nil)
	hints, dests, universe := benchInputs(b)
	p, err := estimate.Build(context.Background(), st, db, hints, universe, dests)
	if err != nil {
		b.Fatal(err)
	}
	pts := make([]tile.Point, 128)
	for i := range pts {
		pts[i] = tile.Point{X: int64(i*13)%900 - 450, Y: int64(i*29)%900 - 450}
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		benchSinkCost = p.EstimatedCost(pts[i%len(pts)])
	}
}
