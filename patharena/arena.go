package patharena

import (
	"github.com/vlsicore/mzrouter/tile"
)

// Orientation is the arrival orientation of a partial path at its entry
// point: H/V distinguish a
// horizontal-arrival from a vertical-arrival at the same point (they carry
// different future jog costs), O/X mark a left-right or up-down contact
// drop, and Start marks the seed path before any extension has run.
type Orientation int8

const (
	Start Orientation = iota
	Horizontal
	Vertical
	ContactLR
	ContactUD
	Blocked
)

func (o Orientation) String() string {
	switch o {
	case Start:
		return "START"
	case Horizontal:
		return "H"
	case Vertical:
		return "V"
	case ContactLR:
		return "O"
	case ContactUD:
		return "X"
	case Blocked:
		return "BLOCKED"
	default:
		return "?"
	}
}

// ExtendMask is the bit set restricting which successors an
// extender will generate from a given partial path.
type ExtendMask uint16

const (
	Right ExtendMask = 1 << iota
	Left
	Up
	Down
	UDContacts
	LRContacts
	WalkRight
	WalkLeft
	WalkUp
	WalkDown
	WalkLRContact
	WalkUDContact
	Complete
)

// AllFourDirections is the mask granted to every seed path: all four
// directions plus both contact orientations.
const AllFourDirections = Right | Left | Up | Down | UDContacts | LRContacts

// AnyWalk reports whether m names a walk-completion reason (directional
// or contact), the set that forces a successor's mask to be exactly that
// walk.
func (m ExtendMask) AnyWalk() bool {
	const walkBits = WalkRight | WalkLeft | WalkUp | WalkDown | WalkLRContact | WalkUDContact
	return m&walkBits != 0
}

// PathID references a PathRecord within an Arena. The zero value is never
// a valid live record (see Arena.New).
type PathID int32

// NoPath is the sentinel "no back-pointer" value, used by the seed paths.
const NoPath PathID = -1

// PathRecord is one partial-path node: an immutable snapshot produced
// exactly once by an extender and then immutable, so no structural
// cycles can exist.
type PathRecord struct {
	Point      tile.Point
	RouteLayer string
	Orient     Orientation
	Cost       int64 // accumulated_cost
	Togo       int64 // estimated_togo
	Mask       ExtendMask
	Back       PathID

	// InRotate and LastJogPoint carry state the extenders need to compute
	// successor segment and jog costs without re-walking the back-chain:
	// whether Point lies inside a rotate region, and the point of the most
	// recent orientation change on this layer (the contact extenders
	// reject a drop when a previous jog lies closer than width+spacing).
	InRotate     bool
	LastJogPoint tile.Point

	// LastContactName and LastContactPoint record the most recent contact
	// placed along this path (empty/zero if none yet), the nearest-prior
	// reference the contact extenders use for the spacing-DRC rule against
	// a same-type contact placed too close.
	LastContactName  string
	LastContactPoint tile.Point
}

// Arena is a growable slab of PathRecords allocated during one routing
// call and freed in bulk (Reset) once the best path has been copied to
// caller-owned storage.
type Arena struct {
	records []PathRecord // index 0 unused, mirrors tile.Plane's slab convention
}

// New returns an empty Arena with capacity hint preallocated.
func New(capacityHint int) *Arena {
	if capacityHint < 16 {
		capacityHint = 16
	}
	return &Arena{records: make([]PathRecord, 1, capacityHint)}
}

// Alloc appends rec to the arena and returns its PathID.
func (a *Arena) Alloc(rec PathRecord) PathID {
	a.records = append(a.records, rec)
	return PathID(len(a.records) - 1)
}

// Get returns a pointer to the record at id. The pointer is invalidated by
// the next Alloc (the backing slice may be reallocated); callers that need
// to retain a record across an Alloc must copy it.
func (a *Arena) Get(id PathID) *PathRecord {
	return &a.records[id]
}

// Len returns the number of records ever allocated in this arena's
// lifetime (including records since superseded in the point hash).
func (a *Arena) Len() int { return len(a.records) - 1 }

// Reset discards every record, reclaiming the arena for reuse by a
// subsequent routing call without reallocating the backing array.
func (a *Arena) Reset() {
	a.records = a.records[:1]
}

// Reconstruct walks the back-chain from id to the seed (Back == NoPath),
// returning records from destination back to start. The arena may be
// Reset immediately after; Reconstruct copies every record it visits.
func (a *Arena) Reconstruct(id PathID) []PathRecord {
	var out []PathRecord
	for id != NoPath {
		out = append(out, *a.Get(id))
		id = a.Get(id).Back
	}
	return out
}
