package mzrouter_test

import (
	"context"
	"fmt"

	"github.com/vlsicore/mzrouter/celldb"
	"github.com/vlsicore/mzrouter/mzrouter"
	"github.com/vlsicore/mzrouter/style"
	"github.com/vlsicore/mzrouter/tile"
)

// Route a single-layer net across an empty cell: the cheapest completion
// lands on the near boundary of the destination area.
func ExampleRouter_Route() {
	st := &style.Style{
		Layers: map[string]*style.RouteLayer{
			"m1": {Name: "m1", HCost: 1, VCost: 1},
		},
		Types: map[string]*style.RouteType{
			"m1": {
				Layer: "m1", Width: 1, Active: true,
				Bloat:   map[celldb.TileType]int64{},
				Spacing: map[celldb.TileType]int64{},
			},
		},
		Contacts:        map[string]*style.RouteContact{},
		Penalty:         style.Penalty{M: 1, E: 1},
		WWidth:          100,
		WRate:           10,
		BloomDeltaCost:  50,
		BoundsIncrement: -1,
		MaxWalkLength:   -1,
		Estimate:        true,
	}

	db := celldb.NewMemDB(nil, nil)
	starts := []celldb.Shape{{Rect: tile.Rect{X0: 0, Y0: 0, X1: 1, Y1: 1}, Layer: "m1"}}
	dests := []celldb.Shape{{Rect: tile.Rect{X0: 10, Y0: 0, X1: 11, Y1: 1}, Layer: "m1"}}

	r, err := mzrouter.Initialise(context.Background(), db, starts, dests,
		tile.Rect{X0: -5, Y0: -5, X1: 15, Y1: 5}, st)
	if err != nil {
		fmt.Println(err)
		return
	}
	status, path, err := r.Route(context.Background())
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(status, path[0].Cost)
	// Output:
	// SUCCESS 9
}
