package extend

import (
	"context"
	"fmt"

	"github.com/vlsicore/mzrouter/patharena"
	"github.com/vlsicore/mzrouter/style"
	"github.com/vlsicore/mzrouter/tile"
)

// ExtendContact attempts a contact drop for every active
// contact incident to the path's current layer that supports the
// requested placement orientation: lr=true selects LR-plane contacts
// (rec.Mask's LRContacts bit), lr=false selects UD-plane contacts
// (UDContacts). Returns one successor per contact that fits and clears
// DRC; a contact that fails any rule is silently skipped, same as a
// directional extender running off the universe edge.
func ExtendContact(ctx context.Context, ec *Context, a *patharena.Arena, from patharena.PathID, lr bool) ([]patharena.PathRecord, error) {
	rec := a.Get(from)
	want := patharena.LRContacts
	if !lr {
		want = patharena.UDContacts
	}
	if rec.Mask&want == 0 {
		return nil, nil
	}

	var out []patharena.PathRecord
	for _, rc := range ec.Style.ContactsOn(rec.RouteLayer) {
		succ, ok, err := tryContact(ec, a, from, rc, lr)
		if err != nil {
			return nil, fmt.Errorf("extend contact %s: %w", rc.Name, err)
		}
		if ok {
			out = append(out, succ)
		}
	}
	return out, nil
}

// tryContact applies the contact-placement rules (orientation, fit,
// same-type-contact spacing, prior-jog spacing, successor layer) for one contact type
// at the path's current point.
func tryContact(ec *Context, a *patharena.Arena, from patharena.PathID, rc *style.RouteContact, lr bool) (patharena.PathRecord, bool, error) {
	rec := a.Get(from)

	ch, cv, ok := ec.Blocks.Plane(rc.Name)
	if !ok {
		return patharena.PathRecord{}, false, nil
	}
	contactLR, contactUD := contactPlacements(rc)
	if (lr && !contactLR) || (!lr && !contactUD) {
		return patharena.PathRecord{}, false, nil
	}

	plane := ch
	if !lr {
		plane = cv
	}
	id, err := plane.PointLocate(rec.Point)
	if err != nil {
		return patharena.PathRecord{}, false, nil
	}
	t := plane.Tile(id)
	if t.Type != tile.Space && t.Type != tile.SameNode {
		return patharena.PathRecord{}, false, nil
	}
	length := rc.RT.Length
	if length <= 0 {
		length = rc.RT.Width
	}
	if !fitsContact(t.Rect, rc.RT.Width, length) {
		return patharena.PathRecord{}, false, nil
	}

	threshold := rc.RT.Width + maxContactSpacing(rc)
	if rec.LastContactName == rc.Name {
		dx, dy := abs64(rec.Point.X-rec.LastContactPoint.X), abs64(rec.Point.Y-rec.LastContactPoint.Y)
		if dx < threshold && dy < threshold {
			return patharena.PathRecord{}, false, nil // rule 3: same-type contact too close
		}
	}
	if rec.Orient != patharena.Start {
		jx, jy := abs64(rec.Point.X-rec.LastJogPoint.X), abs64(rec.Point.Y-rec.LastJogPoint.Y)
		if jx < threshold && jy < threshold {
			return patharena.PathRecord{}, false, nil // rule 4: too close to a prior jog
		}
	}

	otherName, ok := rc.OtherResidue(rec.RouteLayer)
	if !ok {
		return patharena.PathRecord{}, false, nil
	}
	oh, ov, ok := ec.Blocks.Plane(otherName)
	if !ok {
		return patharena.PathRecord{}, false, nil
	}
	otherPlane := oh
	if !lr {
		otherPlane = ov
	}
	oid, err := otherPlane.PointLocate(rec.Point)
	if err != nil {
		return patharena.PathRecord{}, false, nil
	}
	landingType := otherPlane.Tile(oid).Type

	cost := patharena.AddSat(rec.Cost, rc.Cost)
	if landingType == tile.SameNode && rec.Cost == 0 {
		cost = 0
	}

	newOrient := patharena.ContactLR
	if !lr {
		newOrient = patharena.ContactUD
	}

	mask := patharena.AllFourDirections
	switch {
	case landingType == tile.DestArea:
		mask = patharena.Complete
	default:
		if wm := walkExtendMask(landingType); wm != 0 {
			mask = wm
		}
	}

	succ := patharena.PathRecord{
		Point:            rec.Point,
		RouteLayer:       otherName,
		Orient:           newOrient,
		Cost:             cost,
		Mask:             mask,
		Back:             from,
		InRotate:         rec.InRotate,
		LastJogPoint:     rec.LastJogPoint,
		LastContactName:  rc.Name,
		LastContactPoint: rec.Point,
	}
	return succ, true, nil
}

// contactPlacements reports whether rc may be dropped as a left-right
// and/or up-down placement: square contacts (Length unset or equal to
// Width) can go either way, an elongated contact only along the
// orientation perpendicular to its long axis. Mirrors
// blockage.contactOrientations, which operates on an already-built
// routeEntry rather than a bare style.RouteContact.
func contactPlacements(rc *style.RouteContact) (lr, ud bool) {
	if rc.RT.Length == 0 || rc.RT.Length == rc.RT.Width {
		return true, true
	}
	if rc.RT.Length > rc.RT.Width {
		return false, true
	}
	return true, false
}

// fitsContact reports whether r is large enough to hold a contact
// footprint in either orientation.
func fitsContact(r tile.Rect, width, length int64) bool {
	w, h := r.X1-r.X0, r.Y1-r.Y0
	return (w >= width && h >= length) || (w >= length && h >= width)
}

// maxContactSpacing returns the widest declared spacing distance in the
// contact's own route-type spacing table, used alongside its width as the
// DRC proximity threshold against nearby same-type contacts and jogs.
func maxContactSpacing(rc *style.RouteContact) int64 {
	var m int64
	for _, d := range rc.RT.Spacing {
		if d > m {
			m = d
		}
	}
	return m
}
