package extend

import (
	"github.com/vlsicore/mzrouter/blockage"
	"github.com/vlsicore/mzrouter/hintplane"
	"github.com/vlsicore/mzrouter/numline"
	"github.com/vlsicore/mzrouter/style"
)

// Reason is the bitmask recording why
// an extender stopped at a given point, which in turn drives the
// successor extend-mask policy.
type Reason uint16

const (
	Jog Reason = 1 << iota
	AlignOther
	Contact
	AlignGoal
	Hint
	RotBefore
	RotInside
	Bounds
	Walk
	WalkLRC
	WalkUDC
	Done
)

// Has reports whether r includes every bit set in f.
func (r Reason) Has(f Reason) bool { return r&f == f && f != 0 }

// Direction is one of the four cardinal extension directions.
type Direction int

const (
	DirRight Direction = iota
	DirLeft
	DirUp
	DirDown
)

func (d Direction) horizontal() bool { return d == DirRight || d == DirLeft }

// sign returns +1 for the increasing-coordinate directions (Right, Up) and
// -1 for the decreasing ones (Left, Down).
func (d Direction) sign() int64 {
	if d == DirRight || d == DirUp {
		return 1
	}
	return -1
}

func (d Direction) String() string {
	switch d {
	case DirRight:
		return "RIGHT"
	case DirLeft:
		return "LEFT"
	case DirUp:
		return "UP"
	default:
		return "DOWN"
	}
}

// Context bundles the read-only inputs every extender consults: the
// resolved style (layer costs, route types, contacts), the blockage
// builder (per-route-type planes plus incremental generation), the
// flattened global hint/rotate planes, and the destination-boundary
// number lines the ALIGNGOAL reason tests against.
type Context struct {
	Style  *style.Style
	Blocks *blockage.Builder
	Hints  *hintplane.Planes
	DestX  *numline.NumberLine
	DestY  *numline.NumberLine
}
