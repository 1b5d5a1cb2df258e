package blockage

import (
	"github.com/vlsicore/mzrouter/celldb"
	"github.com/vlsicore/mzrouter/hintplane"
	"github.com/vlsicore/mzrouter/style"
	"github.com/vlsicore/mzrouter/tile"
)

// routeEntry is one active route-type's pair of blockage planes, whether it
// belongs to a layer or to a contact. Contact entries additionally carry
// their two residue layer names, needed by the per-residue SAMENODE
// recheck before a blocked paint is skipped.
type routeEntry struct {
	name      string
	rt        *style.RouteType
	h, v      *tile.Plane
	isContact bool
	residues  [2]string
}

// pendingWalk is one walk tile queued by walk generation, held
// back until enumeration finishes: a walk painted early would change
// what subsequent enumerations find.
type pendingWalk struct {
	entry *routeEntry
	rect  tile.Rect
	typ   tile.Type
}

// Builder derives blockage planes for every active route-type and contact
// type over a shared coordinate universe, fed by a read-only CellDB and a
// flattened set of hint/fence/rotate planes.
type Builder struct {
	style *style.Style
	db    celldb.CellDB
	hints *hintplane.Planes

	universe tile.Rect
	entries  map[string]*routeEntry

	// destShapes are the caller-supplied destination terminals (the
	// destination cell): one SAMENODE-like
	// DEST_AREA rectangle per shape, keyed by the shape's route layer.
	destShapes []celldb.Shape

	// bounds tracks the INBOUNDS/GENBLOCK split driving incremental
	// generation. A Space tile here means GENBLOCK (not yet
	// generated, the plane's initial state); a Blocked tile means INBOUNDS
	// (blockage already current). The inverted sense lets a fresh Builder
	// start with an all-GENBLOCK plane for free, matching tile.NewPlane's
	// all-Space initial state.
	bounds *tile.Plane

	// generated is the bounding rectangle over which blockage has already
	// been produced at least once; the zero Rect means nothing yet. Driven
	// at rectangle granularity rather than per-tile since
	// repainting an already-generated region is idempotent.
	generated tile.Rect
	hasGen    bool

	boundsIncrement int64
	maxWalkLength   int64
	contextRadius   int64

	pending []pendingWalk
}

// defaultBoundsIncrementFactor and defaultMaxWalkFactor pick the "auto"
// (-1) style-file values from the design rules: a multiple of
// the widest active route-type's width, since that is the only design-rule
// distance every blockage plane shares.
const (
	defaultBoundsIncrementFactor = 20
	defaultMaxWalkFactor         = 4
)

// widestActiveWidth returns the widest Width among active route-types and
// active contacts, used to derive the "auto" bounds-increment and
// max-walk-length values and as a safety floor when none are active.
func widestActiveWidth(st *style.Style) int64 {
	var w int64 = 1
	for _, name := range st.ActiveLayers() {
		if rt := st.Types[name]; rt.Width > w {
			w = rt.Width
		}
	}
	for _, name := range st.ActiveContacts() {
		if rc := st.Contacts[name]; rc.RT.Width > w {
			w = rc.RT.Width
		}
	}
	return w
}

// maxSpacing returns the largest spacing distance declared across every
// active route-type's spacing table; NewBuilder adds the widest active
// width to it to get the context radius by which a build
// area is expanded before generating blockage (a tile just
// outside the literal query area can still influence blockage inside it
// through a spacing rule).
func maxSpacing(st *style.Style) int64 {
	var m int64
	for _, name := range st.ActiveLayers() {
		for _, d := range st.Types[name].Spacing {
			if d > m {
				m = d
			}
		}
	}
	for _, name := range st.ActiveContacts() {
		for _, d := range st.Contacts[name].RT.Spacing {
			if d > m {
				m = d
			}
		}
	}
	return m
}

const (
	genblock = tile.Space
	inbounds = tile.Blocked
)

// Plane returns the horizontal and vertical blockage planes for the named
// active route-type or contact, and whether that name was found.
func (b *Builder) Plane(name string) (h, v *tile.Plane, ok bool) {
	e, found := b.entries[name]
	if !found {
		return nil, nil, false
	}
	return e.h, e.v, true
}
