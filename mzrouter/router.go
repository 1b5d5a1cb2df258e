// Package mzrouter is the procedural façade over the routing core: bind a
// style and a cell database with Initialise, optionally precompute the
// estimation plane with BuildEstimate, run the search with Route, and
// release per-call state with Clean.
package mzrouter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/vlsicore/mzrouter/blockage"
	"github.com/vlsicore/mzrouter/celldb"
	"github.com/vlsicore/mzrouter/estimate"
	"github.com/vlsicore/mzrouter/extend"
	"github.com/vlsicore/mzrouter/hintplane"
	"github.com/vlsicore/mzrouter/numline"
	"github.com/vlsicore/mzrouter/patharena"
	"github.com/vlsicore/mzrouter/search"
	"github.com/vlsicore/mzrouter/style"
	"github.com/vlsicore/mzrouter/tile"
	"github.com/vlsicore/mzrouter/walkcomplete"
)

// Sentinel errors for the bad-configuration taxonomy: all are surfaced
// synchronously from Initialise, before any routing starts.
var (
	ErrNoStarts        = errors.New("mzrouter: no start shapes")
	ErrNoDestinations  = errors.New("mzrouter: no destination shapes")
	ErrShapeLayer      = errors.New("mzrouter: terminal shape on an inactive or undeclared layer")
	ErrConcurrentRoute = errors.New("mzrouter: concurrent Route calls against one Router")
)

// Status is the outcome of a Route call.
type Status int

const (
	// StatusSuccess means the window reached the goal and the cheapest
	// completed path is returned.
	StatusSuccess Status = iota
	// StatusCurrentBest means the search was interrupted but at least one
	// completion had been found; the best so far is returned.
	StatusCurrentBest
	// StatusInterrupted means the search was interrupted before any
	// completion; no path is returned.
	StatusInterrupted
	// StatusFailure means the search exhausted its frontier or budget
	// without completing. A normal "no route" outcome, not an error.
	StatusFailure
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "SUCCESS"
	case StatusCurrentBest:
		return "CURRENT_BEST"
	case StatusInterrupted:
		return "INTERRUPTED"
	case StatusFailure:
		return "FAILURE"
	default:
		return fmt.Sprintf("STATUS(%d)", int(s))
	}
}

// PathStep is one node of the returned route, copied out of the search
// arena so it remains valid after Clean. Steps run from the destination
// back to the start.
type PathStep struct {
	Point  tile.Point
	Layer  string
	Orient patharena.Orientation
	Cost   int64
}

// Option configures a Router at Initialise time.
type Option func(*Router)

// WithLogger injects the logger the verbosity style option feeds:
// verbosity 1 emits an Info summary per routing phase, verbosity 2
// additionally emits Debug per search decision. The default logger
// discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(r *Router) { r.log = l }
}

// Router is one bound routing problem: a style, a cell database, the
// caller's start and destination shapes, and the planes derived from
// them. Routers are not safe for concurrent Route calls; the guard mutex
// turns a violated contract into ErrConcurrentRoute rather than silent
// data corruption.
type Router struct {
	st     *style.Style
	db     celldb.CellDB
	hints  *hintplane.Planes
	blocks *blockage.Builder
	est    *estimate.Plane
	ec     *extend.Context

	starts   []celldb.Shape
	dests    []celldb.Shape
	universe tile.Rect

	log *slog.Logger
	mu  sync.Mutex
}

// Initialise binds a routing style to a cell database and the caller's
// terminals: it validates the shapes against the style, flattens the
// hint/fence/rotate planes, allocates the blockage builder, and seeds the
// destination-coordinate number lines. The estimation plane is built
// lazily (or explicitly via BuildEstimate).
func Initialise(ctx context.Context, db celldb.CellDB, starts, dests []celldb.Shape, bounding tile.Rect, st *style.Style, opts ...Option) (*Router, error) {
	if err := st.Validate(); err != nil {
		return nil, err
	}
	if len(starts) == 0 {
		return nil, ErrNoStarts
	}
	if len(dests) == 0 {
		return nil, ErrNoDestinations
	}
	if bounding.Empty() {
		return nil, tile.ErrEmptyRect
	}
	for _, c := range []int64{bounding.X0, bounding.Y0, bounding.X1, bounding.Y1} {
		if err := tile.CheckCoord(c); err != nil {
			return nil, err
		}
	}

	active := make(map[string]bool)
	for _, name := range st.ActiveLayers() {
		active[name] = true
	}
	for _, sh := range append(append([]celldb.Shape{}, starts...), dests...) {
		if !active[sh.Layer] {
			return nil, fmt.Errorf("%w: %q", ErrShapeLayer, sh.Layer)
		}
	}

	r := &Router{
		st:       st,
		db:       db,
		starts:   starts,
		dests:    dests,
		universe: bounding,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}

	hints, err := hintplane.Build(db, bounding, st.TopHintsOnly)
	if err != nil {
		return nil, err
	}
	r.hints = hints

	blocks, err := blockage.NewBuilder(st, db, hints, bounding, dests)
	if err != nil {
		return nil, err
	}
	r.blocks = blocks

	destX, destY := numline.New(), numline.New()
	for _, d := range dests {
		destX.Insert(d.Rect.X0)
		destX.Insert(d.Rect.X1)
		destY.Insert(d.Rect.Y0)
		destY.Insert(d.Rect.Y1)
	}

	r.ec = &extend.Context{
		Style:  st,
		Blocks: blocks,
		Hints:  hints,
		DestX:  destX,
		DestY:  destY,
	}

	// Pre-generate blockage around every terminal so the destination-area
	// and walk tiles exist before the first extension runs; everything
	// beyond this grows incrementally as the search reaches it.
	for _, sh := range append(append([]celldb.Shape{}, starts...), dests...) {
		p := tile.Point{X: sh.Rect.X0, Y: sh.Rect.Y0}
		if err := blocks.EnsureGenerated(ctx, p); err != nil {
			return nil, err
		}
	}

	if r.st.Verbosity >= 1 {
		r.log.Info("mzrouter initialised",
			"starts", len(starts), "destinations", len(dests),
			"layers", len(st.ActiveLayers()), "contacts", len(st.ActiveContacts()))
	}
	return r, nil
}

// BuildEstimate populates the estimation plane. Route calls this lazily
// when the caller has not; calling it explicitly lets the caller place the
// (potentially slow) Dijkstra run where it wants.
func (r *Router) BuildEstimate(ctx context.Context) error {
	if !r.st.Estimate {
		r.est = estimate.Zero(r.universe)
		return nil
	}
	p, err := estimate.Build(ctx, r.st, r.db, r.hints, r.universe, r.dests)
	if err != nil {
		return err
	}
	r.est = p
	if r.st.Verbosity >= 1 {
		r.log.Info("estimation plane built")
	}
	return nil
}

// Route runs the windowed search and returns the outcome plus the winning
// path (destination back to start), nil when no completion exists. A "no
// route" outcome is StatusFailure with a nil error; an error return means
// the routing call itself could not proceed.
func (r *Router) Route(ctx context.Context) (Status, []PathStep, error) {
	if !r.mu.TryLock() {
		return StatusFailure, nil, ErrConcurrentRoute
	}
	defer r.mu.Unlock()

	if r.est == nil {
		if err := r.BuildEstimate(ctx); err != nil {
			return routeStatusOnErr(err), nil, squashCtxErr(err)
		}
	}

	seeds, err := r.seedStarts()
	if err != nil {
		return StatusFailure, nil, err
	}
	if len(seeds) == 0 {
		return StatusFailure, nil, nil
	}

	driver := search.NewDriver(r.ec, r.est, r.st, walkcomplete.Complete)
	if r.st.Verbosity >= 2 {
		driver.SetLogger(r.log)
	}
	driver.Seed(seeds)
	if r.st.Verbosity >= 1 {
		r.log.Info("search seeded", "seeds", len(seeds))
	}

	id, res, err := driver.Run(ctx)
	if err != nil {
		if ctxDone(err) {
			if id != patharena.NoPath {
				return StatusCurrentBest, r.copyPath(driver, id), nil
			}
			return StatusInterrupted, nil, nil
		}
		return StatusFailure, nil, err
	}

	status := StatusFailure
	switch res {
	case search.Found:
		status = StatusSuccess
	case search.Interrupted:
		if id != patharena.NoPath {
			status = StatusCurrentBest
		} else {
			status = StatusInterrupted
		}
	}

	var path []PathStep
	if id != patharena.NoPath {
		path = r.copyPath(driver, id)
	}
	if r.st.Verbosity >= 1 {
		r.log.Info("search finished",
			"status", status.String(), "blooms", driver.Blooms(),
			"points", driver.Touched(), "path_len", len(path))
	}
	return status, path, nil
}

// seedStarts runs the seed step: each start shape contributes its
// lower-left corner on its own layer, and, when expandEndpoints is set,
// the lower-left corner of every tile electrically connected to the
// shape's node, on every active layer whose bloat table interacts with
// that tile's material.
func (r *Router) seedStarts() ([]search.Start, error) {
	seen := make(map[search.Start]bool)
	var out []search.Start
	add := func(p tile.Point, layer string) {
		if !r.universe.Contains(p) {
			return
		}
		s := search.Start{Point: p, Layer: layer}
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}

	for _, sh := range r.starts {
		add(tile.Point{X: sh.Rect.X0, Y: sh.Rect.Y0}, sh.Layer)

		if !r.st.ExpandEndpoints || sh.Node == "" {
			continue
		}
		conn, err := r.db.ConnectedGeometry(sh.Node)
		if err != nil {
			return nil, fmt.Errorf("mzrouter: expanding start node %q: %w", sh.Node, err)
		}
		for _, ct := range conn {
			for _, name := range r.st.ActiveLayers() {
				if _, ok := r.st.Types[name].BloatFor(ct.Type); ok {
					add(tile.Point{X: ct.Rect.X0, Y: ct.Rect.Y0}, name)
				}
			}
		}
	}
	return out, nil
}

// copyPath copies the winning back-chain out of the search arena into
// caller-owned PathSteps.
func (r *Router) copyPath(d *search.Driver, id patharena.PathID) []PathStep {
	recs := d.Arena().Reconstruct(id)
	out := make([]PathStep, len(recs))
	for i, rec := range recs {
		out[i] = PathStep{Point: rec.Point, Layer: rec.RouteLayer, Orient: rec.Orient, Cost: rec.Cost}
	}
	return out
}

// Clean discards every plane and cached bound built since Initialise,
// returning the Router to its style-bound-but-unpopulated state. The next
// Route call regenerates blockage and the estimate from scratch.
func (r *Router) Clean() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.est = nil
	return r.blocks.ClearCache()
}

func ctxDone(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func routeStatusOnErr(err error) Status {
	if ctxDone(err) {
		return StatusInterrupted
	}
	return StatusFailure
}

// squashCtxErr maps a context cancellation to nil: interruption is a
// Status, not an error, per the error taxonomy.
func squashCtxErr(err error) error {
	if ctxDone(err) {
		return nil
	}
	return err
}
