package walkcomplete

import (
	"context"
	"errors"
	"fmt"

	"github.com/vlsicore/mzrouter/extend"
	"github.com/vlsicore/mzrouter/patharena"
	"github.com/vlsicore/mzrouter/style"
	"github.com/vlsicore/mzrouter/tile"
)

// ErrNotAWalk indicates Complete was handed a path whose extend mask names
// no walk, a caller bug (the search driver only routes walk-masked paths
// here).
var ErrNotAWalk = errors.New("walkcomplete: path carries no walk mask")

// Complete runs the walk-completion routine for the path at id and returns
// its COMPLETE successor. ok is false when the walk turns out to be a dead
// end (the walk tile was repainted since the path was queued, or no
// contact fits at the point); that is a normal pruning outcome, not an
// error.
//
// Complete satisfies search.WalkCompleter.
func Complete(ctx context.Context, ec *extend.Context, a *patharena.Arena, id patharena.PathID) (patharena.PathRecord, bool, error) {
	if err := ctx.Err(); err != nil {
		return patharena.PathRecord{}, false, err
	}
	rec := a.Get(id)
	switch {
	case rec.Mask&(patharena.WalkRight|patharena.WalkLeft|patharena.WalkUp|patharena.WalkDown) != 0:
		return completeDirectional(ec, a, id)
	case rec.Mask&patharena.WalkLRContact != 0:
		return completeContact(ec, a, id, true)
	case rec.Mask&patharena.WalkUDContact != 0:
		return completeContact(ec, a, id, false)
	default:
		return patharena.PathRecord{}, false, fmt.Errorf("%w: mask %#x at (%d,%d)", ErrNotAWalk, rec.Mask, rec.Point.X, rec.Point.Y)
	}
}

// completeDirectional paints the straight final leg: from the path's point
// across the walk tile to the near edge of the abutting destination area.
// The walk type encodes which side the destination lies on — a WALK_LEFT
// tile sits to the left of its destination area, so the leg travels right,
// and so on.
func completeDirectional(ec *extend.Context, a *patharena.Arena, id patharena.PathID) (patharena.PathRecord, bool, error) {
	rec := a.Get(id)
	h, v, ok := ec.Blocks.Plane(rec.RouteLayer)
	if !ok {
		return patharena.PathRecord{}, false, fmt.Errorf("walkcomplete: unknown route layer %q", rec.RouteLayer)
	}

	horizontal := rec.Mask&(patharena.WalkLeft|patharena.WalkRight) != 0
	pl := h
	if !horizontal {
		pl = v
	}
	tid, err := pl.PointLocate(rec.Point)
	if err != nil {
		return patharena.PathRecord{}, false, nil
	}
	wt := pl.Tile(tid)
	if !wt.Type.IsWalk() {
		// The tile was repainted (e.g. BLOCKED by a later generation pass)
		// after this path was queued; the walk no longer exists.
		return patharena.PathRecord{}, false, nil
	}

	target := rec.Point
	switch {
	case rec.Mask&patharena.WalkLeft != 0:
		target.X = wt.Rect.X1
	case rec.Mask&patharena.WalkRight != 0:
		target.X = wt.Rect.X0 - 1
	case rec.Mask&patharena.WalkUp != 0:
		target.Y = wt.Rect.Y0 - 1
	default: // WalkDown
		target.Y = wt.Rect.Y1
	}

	lid, err := pl.PointLocate(target)
	if err != nil || pl.Tile(lid).Type != tile.DestArea {
		return patharena.PathRecord{}, false, nil
	}

	rl := ec.Style.Layers[rec.RouteLayer]
	length := abs64(target.X-rec.Point.X) + abs64(target.Y-rec.Point.Y)
	cost := patharena.AddSat(rec.Cost, patharena.MulSat(length, rl.CostFor(horizontal, rec.InRotate)))

	orient := patharena.Vertical
	if horizontal {
		orient = patharena.Horizontal
	}
	if orient != rec.Orient && rec.Orient != patharena.Start {
		cost = patharena.AddSat(cost, rl.JogCost)
	}

	succ := patharena.PathRecord{
		Point:            target,
		RouteLayer:       rec.RouteLayer,
		Orient:           orient,
		Cost:             cost,
		Mask:             patharena.Complete,
		Back:             id,
		InRotate:         rec.InRotate,
		LastJogPoint:     rec.LastJogPoint,
		LastContactName:  rec.LastContactName,
		LastContactPoint: rec.LastContactPoint,
	}
	return succ, true, nil
}

// completeContact drops the one contact that finishes a contact walk: the
// first active contact incident to the path's layer that fits at the
// point and clears DRC. Candidates come from ContactsOn in its sorted
// order, so "first" is deterministic.
func completeContact(ec *extend.Context, a *patharena.Arena, id patharena.PathID, lr bool) (patharena.PathRecord, bool, error) {
	rec := a.Get(id)

	var chosen *style.RouteContact
	var chosenOther string
	for _, rc := range ec.Style.ContactsOn(rec.RouteLayer) {
		other, ok := contactFinishes(ec, rec, rc, lr)
		if !ok {
			continue
		}
		chosen = rc
		chosenOther = other
		break
	}
	if chosen == nil {
		return patharena.PathRecord{}, false, nil
	}

	cost := patharena.AddSat(rec.Cost, chosen.Cost)
	orient := patharena.ContactLR
	if !lr {
		orient = patharena.ContactUD
	}
	succ := patharena.PathRecord{
		Point:            rec.Point,
		RouteLayer:       chosenOther,
		Orient:           orient,
		Cost:             cost,
		Mask:             patharena.Complete,
		Back:             id,
		InRotate:         rec.InRotate,
		LastJogPoint:     rec.LastJogPoint,
		LastContactName:  chosen.Name,
		LastContactPoint: rec.Point,
	}
	return succ, true, nil
}

// contactFinishes reports whether dropping rc at rec's point completes the
// route: the contact's own blockage plane has room, the drop clears the
// same-type-contact and prior-jog DRC distances, and the other residue's
// plane reads DEST_AREA at the point.
func contactFinishes(ec *extend.Context, rec *patharena.PathRecord, rc *style.RouteContact, lr bool) (other string, ok bool) {
	square := rc.RT.Length == 0 || rc.RT.Length == rc.RT.Width
	if !square {
		elongatedUD := rc.RT.Length > rc.RT.Width
		if lr == elongatedUD {
			return "", false
		}
	}

	ch, cv, found := ec.Blocks.Plane(rc.Name)
	if !found {
		return "", false
	}
	plane := ch
	if !lr {
		plane = cv
	}
	tid, err := plane.PointLocate(rec.Point)
	if err != nil {
		return "", false
	}
	ct := plane.Tile(tid)
	if ct.Type != tile.Space && ct.Type != tile.SameNode {
		return "", false
	}
	if !fitsContact(ct.Rect, rc.RT.Width, rc.RT.Length) {
		return "", false
	}

	threshold := rc.RT.Width + maxSpacing(rc)
	if rec.LastContactName == rc.Name {
		dx := abs64(rec.Point.X - rec.LastContactPoint.X)
		dy := abs64(rec.Point.Y - rec.LastContactPoint.Y)
		if dx < threshold && dy < threshold {
			return "", false
		}
	}
	if rec.Orient != patharena.Start {
		jx := abs64(rec.Point.X - rec.LastJogPoint.X)
		jy := abs64(rec.Point.Y - rec.LastJogPoint.Y)
		if jx < threshold && jy < threshold {
			return "", false
		}
	}

	other, found = rc.OtherResidue(rec.RouteLayer)
	if !found {
		return "", false
	}
	oh, ov, found := ec.Blocks.Plane(other)
	if !found {
		return "", false
	}
	op := oh
	if !lr {
		op = ov
	}
	oid, err := op.PointLocate(rec.Point)
	if err != nil || op.Tile(oid).Type != tile.DestArea {
		return "", false
	}
	return other, true
}

func fitsContact(r tile.Rect, width, length int64) bool {
	if length <= 0 {
		length = width
	}
	w := r.X1 - r.X0
	h := r.Y1 - r.Y0
	return (w >= width && h >= length) || (w >= length && h >= width)
}

func maxSpacing(rc *style.RouteContact) int64 {
	var m int64
	for _, d := range rc.RT.Spacing {
		if d > m {
			m = d
		}
	}
	return m
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
