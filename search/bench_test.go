package search

import (
	"context"
	"testing"

	"github.com/vlsicore/mzrouter/blockage"
	"github.com/vlsicore/mzrouter/celldb"
	"github.com/vlsicore/mzrouter/estimate"
	"github.com/vlsicore/mzrouter/extend"
	"github.com/vlsicore/mzrouter/hintplane"
	"github.com/vlsicore/mzrouter/numline"
	"github.com/vlsicore/mzrouter/tile"
	"github.com/vlsicore/mzrouter/walkcomplete"
)

// Benchmark sink prevents accidental dead-code elimination.
var benchSinkResult Result

// BenchmarkRunDirectRoute measures one full search — seed, window blooms,
// extensions, completion — against a pre-built blockage and estimate, the
// closest thing to a steady-state routing call. Driver construction is
// inside the timed region because a Driver is single-use.
func BenchmarkRunDirectRoute(b *testing.B) {
	st := searchStyle()
	db := celldb.NewMemDB(nil, nil)
	universe := tile.Rect{X0: -5, Y0: -5, X1: 15, Y1: 5}
	hints, err := hintplane.Build(db, universe, false)
	if err != nil {
		b.Fatal(err)
	}
	dests := []celldb.Shape{{Rect: tile.Rect{X0: 10, Y0: 0, X1: 11, Y1: 1}, Layer: "m1"}}
	blk, err := blockage.NewBuilder(st, db, hints, universe, dests)
	if err != nil {
		b.Fatal(err)
	}
	if err := blk.Generate(context.Background(), universe); err != nil {
		b.Fatal(err)
	}
	destX, destY := numline.New(), numline.New()
	destX.Insert(10)
	destX.Insert(11)
	destY.Insert(0)
	destY.Insert(1)
	ec := &extend.Context{Style: st, Blocks: blk, Hints: hints, DestX: destX, DestY: destY}
	est, err := estimate.Build(context.Background(), st, db, hints, universe, dests)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d := NewDriver(ec, est, st, walkcomplete.Complete)
		d.Seed([]Start{{Point: tile.Point{X: 0, Y: 0}, Layer: "m1"}})
		_, res, err := d.Run(context.Background())
		if err != nil {
			b.Fatal(err)
		}
		benchSinkResult = res
	}
}
