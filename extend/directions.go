package extend

import (
	"context"
	"fmt"

	"github.com/vlsicore/mzrouter/patharena"
	"github.com/vlsicore/mzrouter/tile"
)

// directionMask returns the single ExtendMask bit that must be set on a
// path record for d's extender to run at all.
func directionMask(d Direction) patharena.ExtendMask {
	switch d {
	case DirRight:
		return patharena.Right
	case DirLeft:
		return patharena.Left
	case DirUp:
		return patharena.Up
	default:
		return patharena.Down
	}
}

// walkExtendMask maps the tile type an extender just landed on to the
// single walk mask bit a walk-reason successor must
// carry exactly, or 0 if t is not a walk tile.
func walkExtendMask(t tile.Type) patharena.ExtendMask {
	switch t {
	case tile.WalkLeft:
		return patharena.WalkLeft
	case tile.WalkRight:
		return patharena.WalkRight
	case tile.WalkTop:
		return patharena.WalkUp
	case tile.WalkBottom:
		return patharena.WalkDown
	case tile.ContactWalkAboveLR, tile.ContactWalkBelowLR:
		return patharena.WalkLRContact
	case tile.ContactWalkAboveUD, tile.ContactWalkBelowUD:
		return patharena.WalkUDContact
	default:
		return 0
	}
}

// successorMask decides which extensions the successor path keeps enabled.
func successorMask(reason Reason, dir Direction, landingType tile.Type) patharena.ExtendMask {
	if reason.Has(Done) {
		return patharena.Complete
	}
	if wm := walkExtendMask(landingType); wm != 0 {
		return wm
	}

	mask := directionMask(dir)
	if reason.Has(Jog) || reason.Has(AlignGoal) || reason.Has(Hint) || reason.Has(RotInside) {
		if dir.horizontal() {
			mask |= patharena.Up | patharena.Down
		} else {
			mask |= patharena.Right | patharena.Left
		}
	}
	if reason.Has(AlignOther) || reason.Has(Contact) || reason.Has(AlignGoal) || reason.Has(Hint) || reason.Has(RotInside) {
		mask |= patharena.UDContacts | patharena.LRContacts
	}
	return mask
}

// orientFor returns the arrival orientation a successor of dir carries.
func orientFor(dir Direction) patharena.Orientation {
	if dir.horizontal() {
		return patharena.Horizontal
	}
	return patharena.Vertical
}

// Extend runs the directional extender named by dir against the path at
// from, returning its single successor (or none if dir is disabled on
// that path, the direction runs off the universe edge, or the landing
// tile is BLOCKED). One interesting point is produced per call; the
// reason bitmask drives cost and the successor's extend_mask.
func Extend(ctx context.Context, ec *Context, a *patharena.Arena, from patharena.PathID, dir Direction) ([]patharena.PathRecord, error) {
	rec := a.Get(from)
	if rec.Mask&directionMask(dir) == 0 {
		return nil, nil
	}

	newPt, reason, landingType, ok, err := scanDirection(ctx, ec, rec.RouteLayer, rec.Point, dir)
	if err != nil {
		return nil, fmt.Errorf("extend %s on %s: %w", dir, rec.RouteLayer, err)
	}
	if !ok {
		return nil, nil
	}

	newOrient := orientFor(dir)
	inRotate := reason.Has(RotInside)
	overLayer := reason.Has(AlignOther)

	cost := rec.Cost
	cost = patharena.AddSat(cost, segmentCost(ec, rec.RouteLayer, rec.Point, newPt, dir.horizontal(), inRotate, overLayer))
	cost = patharena.AddSat(cost, jogCost(ec, rec.RouteLayer, rec.Orient, newOrient))
	cost = patharena.AddSat(cost, hintCost(ec, rec.RouteLayer, rec.Point, newPt, dir.horizontal()))

	if landingType == tile.SameNode && rec.Cost == 0 {
		cost = 0
	}

	lastJog := rec.LastJogPoint
	if newOrient != rec.Orient && rec.Orient != patharena.Start {
		lastJog = rec.Point
	}

	succ := patharena.PathRecord{
		Point:            newPt,
		RouteLayer:       rec.RouteLayer,
		Orient:           newOrient,
		Cost:             cost,
		Mask:             successorMask(reason, dir, landingType),
		Back:             from,
		InRotate:         inRotate,
		LastJogPoint:     lastJog,
		LastContactName:  rec.LastContactName,
		LastContactPoint: rec.LastContactPoint,
	}
	return []patharena.PathRecord{succ}, nil
}
