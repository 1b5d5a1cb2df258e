// Package search implements the windowed best-first driver: a
// single best-first search whose frontier is split across three priority
// heaps plus a completion heap and four LIFO focus stacks, so that paths
// the extenders mark as locally promising (a walk, a downhill jog, a
// straight continuation) run immediately instead of competing for heap
// admission, while the remaining frontier is paced by a shrinking
// distance-to-go window.
package search

import (
	"container/heap"
	"context"
	"fmt"
	"log/slog"

	"github.com/vlsicore/mzrouter/estimate"
	"github.com/vlsicore/mzrouter/extend"
	"github.com/vlsicore/mzrouter/patharena"
	"github.com/vlsicore/mzrouter/style"
	"github.com/vlsicore/mzrouter/tile"
)

// Result is the outcome of a Run call.
type Result int

const (
	// Found means the completion heap holds at least one finished path:
	// either the window has reached the goal (window_max_togo == 0), or the
	// search stopped (frontier drained or bloom_limit hit) with a
	// completion already in hand.
	Found Result = iota
	// Exhausted means every stack and heap drained without completing.
	Exhausted
	// BloomLimitReached means the configured bloom_limit was hit before
	// any path completed.
	BloomLimitReached
	// Interrupted means ctx was cancelled mid-search.
	Interrupted
)

// WalkCompleter runs the walk-completion routine for a path
// popped off the walk stack, returning the COMPLETE successor it produces
// (false if no fitting candidate exists and the walk is a dead end). It is
// supplied by the walkcomplete package; search depends only on this narrow
// function type to avoid an import cycle.
type WalkCompleter func(ctx context.Context, ec *extend.Context, a *patharena.Arena, id patharena.PathID) (patharena.PathRecord, bool, error)

// Start is one seed point: a starting
// terminal's candidate initial point on a compatible active route layer.
type Start struct {
	Point tile.Point
	Layer string
}

// Driver owns one routing call's full search state: the arena, point hash,
// three windowing heaps, completion heap, and four focus stacks. A Driver
// is single-use; callers construct a fresh one (or Reset an existing one)
// per route() call, matching the arena's own bulk-reclamation discipline.
type Driver struct {
	ec        *extend.Context
	est       *estimate.Plane
	arena     *patharena.Arena
	hash      *patharena.PointHash
	completer WalkCompleter

	penalty    style.Penalty
	wRate      int64
	wWidth     int64
	bloomDelta int64
	bloomLimit int64

	near   maxItemHeap  // mzMaxToGoHeap, keyed by Togo, max on top: paths the window has not reached yet.
	window itemHeap     // mzMinCostHeap, keyed by Cost+Togo: the paths currently in-window.
	far    farHeapSlice // mzMinAdjCostHeap: paths farther from the goal than the window.
	done   itemHeap     // completion heap, keyed by Cost.

	walkStack, downhillStack, straightStack, bloomStack stack

	numBlooms     int64
	bloomMaxCost  int64
	windowMinToGo int64
	windowMaxToGo int64

	// log, when set, receives a Debug record per bloom decision (the
	// style file's verbosity-2 level). Nil disables the call entirely.
	log *slog.Logger
}

// SetLogger enables per-decision Debug logging on the driver.
func (d *Driver) SetLogger(l *slog.Logger) { d.log = l }

// NewDriver constructs a Driver ready for Seed and Run. st supplies the
// window-shift rate, penalty, bloom delta and limit.
func NewDriver(ec *extend.Context, est *estimate.Plane, st *style.Style, completer WalkCompleter) *Driver {
	return &Driver{
		ec:         ec,
		est:        est,
		arena:      patharena.New(1024),
		hash:       patharena.NewPointHash(),
		completer:  completer,
		penalty:    st.Penalty,
		wRate:      st.WRate,
		wWidth:     st.WWidth,
		bloomDelta: st.BloomDeltaCost,
		bloomLimit: st.BloomLimit,
	}
}

// Arena exposes the underlying arena so a caller can Reconstruct the
// winning path once Run returns.
func (d *Driver) Arena() *patharena.Arena { return d.arena }

// Blooms returns how many window blooms this search has run, for the
// verbosity-1 phase summary.
func (d *Driver) Blooms() int64 { return d.numBlooms }

// Touched returns how many distinct point/layer/orientation triples the
// search has reached, for the verbosity-1 phase summary.
func (d *Driver) Touched() int { return d.hash.Len() }

// Seed enqueues a flattened list of starting points already expanded by
// connectivity and filtered to compatible active layers; that expansion
// is the mzrouter façade's job, not the search driver's.
func (d *Driver) Seed(starts []Start) {
	var minInitial int64 = patharena.CostMax
	seedIDs := make([]patharena.PathID, 0, len(starts))
	for _, s := range starts {
		rec := patharena.PathRecord{
			Point:      s.Point,
			RouteLayer: s.Layer,
			Orient:     patharena.Start,
			Cost:       0,
			Togo:       d.est.EstimatedCost(s.Point),
			Mask:       patharena.AllFourDirections,
			Back:       patharena.NoPath,
		}
		id := d.arena.Alloc(rec)
		if !d.hash.Offer(d.arena, id) {
			continue
		}
		if rec.Togo < minInitial {
			minInitial = rec.Togo
		}
		seedIDs = append(seedIDs, id)
	}
	if minInitial == patharena.CostMax {
		minInitial = 0
	}
	for _, id := range seedIDs {
		d.near.push(id, d.arena.Get(id).Togo)
	}
	// The window starts at the start, with the configured initial width;
	// each subsequent bloom slides it by wRate from both ends.
	d.windowMinToGo = minInitial
	d.windowMaxToGo = patharena.AddSat(minInitial, d.wWidth)
}

func clampSub(v, rate int64) int64 {
	v -= rate
	if v < 0 {
		return 0
	}
	return v
}

// windowShift runs the inner while-stacks-are-empty loop: shift the
// window, promote/demote between heaps, and pop
// exactly one path onto the bloom stack. Returns the Result the caller
// should report immediately (Found or BloomLimitReached), or -1 if the
// bloom stack now has work and the main loop should simply continue.
func (d *Driver) windowShift() Result {
	const keepGoing Result = -1
	for d.walkStack.empty() && d.downhillStack.empty() && d.straightStack.empty() && d.bloomStack.empty() {
		if d.near.Len() == 0 && d.window.Len() == 0 && d.far.Len() == 0 {
			return Exhausted
		}
		d.windowMinToGo = clampSub(d.windowMinToGo, d.wRate)
		d.windowMaxToGo = clampSub(d.windowMaxToGo, d.wRate)

		if d.windowMaxToGo == 0 && d.done.Len() > 0 {
			return Found
		}

		for {
			top, ok := d.near.peek()
			if !ok || top.key < d.windowMinToGo {
				break
			}
			it, _ := d.near.pop()
			rec := d.arena.Get(it.id)
			d.window.push(it.id, patharena.AddSat(rec.Cost, rec.Togo))
		}
		// Demote every in-window path whose togo now exceeds the window's
		// upper edge. The window heap is ordered by cost, not togo, so
		// this is a full partition pass, not a peel-the-top loop.
		var kept itemHeap
		for _, it := range d.window {
			rec := d.arena.Get(it.id)
			if rec.Togo > d.windowMaxToGo {
				adj := patharena.AddSat(rec.Cost, d.penalty.Apply(rec.Togo-d.windowMaxToGo))
				d.far.push(farItem{id: it.id, cost: rec.Cost, togo: rec.Togo, key: adj})
				continue
			}
			kept = append(kept, it)
		}
		if len(kept) != len(d.window) {
			d.window = kept
			heap.Init(&d.window)
		}

		winTop, winOK := d.window.peek()
		farTop, farOK := d.far.peek()
		var chosen patharena.PathID
		switch {
		case winOK && farOK:
			if winTop.key <= currentAdjCost(farTop, d.windowMaxToGo, d.penalty.Apply) {
				d.window.pop()
				chosen = winTop.id
			} else {
				d.far.pop()
				chosen = farTop.id
			}
		case winOK:
			d.window.pop()
			chosen = winTop.id
		case farOK:
			d.far.pop()
			chosen = farTop.id
		default:
			continue // nothing promoted into range yet; window keeps shifting.
		}

		cost := d.arena.Get(chosen).Cost
		if d.log != nil {
			rec := d.arena.Get(chosen)
			d.log.Debug("bloom",
				"x", rec.Point.X, "y", rec.Point.Y, "layer", rec.RouteLayer,
				"cost", rec.Cost, "togo", rec.Togo,
				"window_min", d.windowMinToGo, "window_max", d.windowMaxToGo)
		}
		d.bloomStack.push(chosen)
		d.bloomMaxCost = patharena.AddSat(cost, d.bloomDelta)
		d.numBlooms++
		if d.bloomLimit > 0 && d.numBlooms > d.bloomLimit {
			return BloomLimitReached
		}
	}
	return keepGoing
}

// next chooses the path the main loop will extend, in stack priority
// order: walk, downhill, straight, bloom.
func (d *Driver) next() (patharena.PathID, bool) {
	if id, ok := d.walkStack.pop(); ok {
		return id, true
	}
	if id, ok := d.downhillStack.pop(); ok {
		return id, true
	}
	if id, ok := d.straightStack.pop(); ok {
		return id, true
	}
	return d.bloomStack.pop()
}

// stale reports whether id's record has been superseded by a strictly
// cheaper path reaching the same point/layer/orientation since id was
// queued. Only a strictly cheaper entry invalidates id; a tie leaves
// either one equally valid to extend.
func (d *Driver) stale(id patharena.PathID) bool {
	rec := d.arena.Get(id)
	best, ok := d.hash.BestCost(patharena.KeyOf(rec))
	return !ok || best < rec.Cost
}

// offer admits one successor produced by an extender: compute its
// estimated_togo, try the point hash, and on acceptance route it onto the
// correct stack or heap.
func (d *Driver) offer(succ patharena.PathRecord) {
	succ.Togo = d.est.EstimatedCost(succ.Point)
	id := d.arena.Alloc(succ)
	if !d.hash.Offer(d.arena, id) {
		return
	}

	switch {
	case succ.Mask == patharena.Complete:
		d.done.push(id, succ.Cost)
	case succ.Mask.AnyWalk():
		d.walkStack.push(id)
	default:
		parent := d.arena.Get(succ.Back)
		total := patharena.AddSat(succ.Cost, succ.Togo)
		switch {
		case total <= d.bloomMaxCost && succ.Orient == parent.Orient:
			d.straightStack.push(id)
		case total <= d.bloomMaxCost && succ.Togo < parent.Togo:
			d.downhillStack.push(id)
		default:
			d.near.push(id, succ.Togo)
		}
	}
}

// expand runs every extender against the path at id and
// offers each successor it produces. A path's own Mask gates which
// extenders actually fire (Extend/ExtendContact no-op on a disabled bit),
// so every call here is unconditional.
func (d *Driver) expand(ctx context.Context, id patharena.PathID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := d.ec.Blocks.EnsureGenerated(ctx, d.arena.Get(id).Point); err != nil {
		return err
	}

	for _, dir := range [...]extend.Direction{extend.DirRight, extend.DirLeft, extend.DirUp, extend.DirDown} {
		succs, err := extend.Extend(ctx, d.ec, d.arena, id, dir)
		if err != nil {
			return fmt.Errorf("search: %w", err)
		}
		for _, s := range succs {
			d.offer(s)
		}
	}
	for _, lr := range [...]bool{true, false} {
		succs, err := extend.ExtendContact(ctx, d.ec, d.arena, id, lr)
		if err != nil {
			return fmt.Errorf("search: %w", err)
		}
		for _, s := range succs {
			d.offer(s)
		}
	}
	return nil
}

// completeWalk runs the walk completer on a path popped off the walk
// stack and offers its COMPLETE successor, if any.
func (d *Driver) completeWalk(ctx context.Context, id patharena.PathID) error {
	succ, ok, err := d.completer(ctx, d.ec, d.arena, id)
	if err != nil {
		return fmt.Errorf("search: walk completion: %w", err)
	}
	if ok {
		d.offer(succ)
	}
	return nil
}

// Run drives the search to completion, interruption, or exhaustion.
// On Found, the cheapest completed path's
// PathID is returned so the caller can Arena().Reconstruct it.
func (d *Driver) Run(ctx context.Context) (patharena.PathID, Result, error) {
	steps := 0
	for {
		if steps%256 == 0 {
			if err := ctx.Err(); err != nil {
				// Interruption still surfaces the best completed path
				// found so far, if any.
				if top, ok := d.done.peek(); ok {
					return top.id, Interrupted, nil
				}
				return patharena.NoPath, Interrupted, nil
			}
		}
		steps++

		if d.walkStack.empty() && d.downhillStack.empty() && d.straightStack.empty() && d.bloomStack.empty() {
			switch r := d.windowShift(); r {
			case Found:
				top, _ := d.done.peek()
				return top.id, Found, nil
			case Exhausted, BloomLimitReached:
				if top, ok := d.done.peek(); ok {
					return top.id, Found, nil
				}
				return patharena.NoPath, r, nil
			}
		}

		id, ok := d.next()
		if !ok {
			if top, ok := d.done.peek(); ok {
				return top.id, Found, nil
			}
			return patharena.NoPath, Exhausted, nil
		}
		if d.stale(id) {
			continue
		}

		rec := d.arena.Get(id)
		if rec.Mask.AnyWalk() {
			if err := d.completeWalk(ctx, id); err != nil {
				return patharena.NoPath, Interrupted, err
			}
			continue
		}
		if err := d.expand(ctx, id); err != nil {
			return patharena.NoPath, Interrupted, err
		}
	}
}
