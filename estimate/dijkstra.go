package estimate

import (
	"container/heap"
	"context"

	"github.com/vlsicore/mzrouter/patharena"
)

// vertexID is (i,j) packed as i + j*(nx+1), one per grid-line intersection.
type vertexID int

func (p *Plane) vid(i, j int) vertexID { return vertexID(i + j*(p.nx+1)) }

// pqItem is one entry of the Dijkstra frontier heap.
type pqItem struct {
	v    vertexID
	cost int64
}

type priorityQueue []pqItem

func (q priorityQueue) Len() int            { return len(q) }
func (q priorityQueue) Less(i, j int) bool  { return q[i].cost < q[j].cost }
func (q priorityQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *priorityQueue) Push(x interface{}) { *q = append(*q, x.(pqItem)) }
func (q *priorityQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// dijkstra computes every grid corner's cost-to-destination: seeded with 0 at every lower-left
// corner of every EST_DEST tile, relax tile-corner vertices in cost order
// over the tile-edge graph. Returns cost0 indexed by vertexID, or nil if
// ctx is cancelled mid-run.
func dijkstra(ctx context.Context, p *Plane) []int64 {
	nv := (p.nx + 1) * (p.ny + 1)
	cost0 := make([]int64, nv)
	for i := range cost0 {
		cost0[i] = patharena.CostMax
	}
	visited := make([]bool, nv)

	pq := &priorityQueue{}
	heap.Init(pq)
	seed := func(v vertexID, c int64) {
		if c < cost0[v] {
			cost0[v] = c
			heap.Push(pq, pqItem{v: v, cost: c})
		}
	}

	for j := 0; j < p.ny; j++ {
		for i := 0; i < p.nx; i++ {
			if p.cellAt(i, j).hc == 0 && p.cellAt(i, j).vc == 0 {
				seed(p.vid(i, j), 0)
			}
		}
	}

	steps := 0
	for pq.Len() > 0 {
		if steps%1024 == 0 && ctx.Err() != nil {
			return nil
		}
		steps++
		top := heap.Pop(pq).(pqItem)
		i, j := int(top.v)%(p.nx+1), int(top.v)/(p.nx+1)
		if visited[top.v] {
			continue
		}
		visited[top.v] = true

		// Relax the up to four tile edges incident to (i,j).
		if i+1 <= p.nx {
			w := p.horizontalEdgeWeight(i, j)
			if w >= 0 {
				seed(p.vid(i+1, j), patharena.AddSat(top.cost, w))
			}
		}
		if i-1 >= 0 {
			w := p.horizontalEdgeWeight(i-1, j)
			if w >= 0 {
				seed(p.vid(i-1, j), patharena.AddSat(top.cost, w))
			}
		}
		if j+1 <= p.ny {
			w := p.verticalEdgeWeight(i, j)
			if w >= 0 {
				seed(p.vid(i, j+1), patharena.AddSat(top.cost, w))
			}
		}
		if j-1 >= 0 {
			w := p.verticalEdgeWeight(i, j-1)
			if w >= 0 {
				seed(p.vid(i, j-1), patharena.AddSat(top.cost, w))
			}
		}
	}
	return cost0
}

// horizontalEdgeWeight returns the weight of the horizontal edge from grid
// point (i,j) to (i+1,j): its length times the minimum h_cost of the two
// cells it borders (the cell above row j and below row j, whichever
// exist). Returns -1 if neither bordering cell
// exists (edge at the universe's own corner row).
func (p *Plane) horizontalEdgeWeight(i, j int) int64 {
	length := p.xs[i+1] - p.xs[i]
	best := int64(-1)
	if j-1 >= 0 {
		best = p.cellAt(i, j-1).hc
	}
	if j < p.ny {
		hc := p.cellAt(i, j).hc
		if best < 0 || hc < best {
			best = hc
		}
	}
	if best < 0 {
		return -1
	}
	return patharena.MulSat(length, best)
}

// verticalEdgeWeight mirrors horizontalEdgeWeight for the vertical edge
// from (i,j) to (i,j+1), using v_cost of the cells left/right of column i.
func (p *Plane) verticalEdgeWeight(i, j int) int64 {
	length := p.ys[j+1] - p.ys[j]
	best := int64(-1)
	if i-1 >= 0 {
		best = p.cellAt(i-1, j).vc
	}
	if i < p.nx {
		vc := p.cellAt(i, j).vc
		if best < 0 || vc < best {
			best = vc
		}
	}
	if best < 0 {
		return -1
	}
	return patharena.MulSat(length, best)
}
