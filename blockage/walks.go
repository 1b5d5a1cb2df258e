package blockage

import (
	"github.com/vlsicore/mzrouter/tile"
)

// flushPendingWalks paints every queued walk tile into both planes of its
// route-entry and clears the queue. Kept separate from generation so the
// destination-area enumeration and the walk enumeration never observe a
// walk tile painted by an earlier iteration of the same pass
// during the same pass.
func (b *Builder) flushPendingWalks() error {
	pending := b.pending
	b.pending = nil
	for _, w := range pending {
		if err := b.paintBoth(w.entry, w.rect, w.typ); err != nil {
			return err
		}
	}
	return nil
}

type walkDir struct {
	typ   tile.Type
	strip func(da tile.Rect, depth int64) tile.Rect
}

// walkDirs gives, per cardinal direction, the walk type painted when a
// SAMENODE tile abuts a DEST_AREA tile on that edge and the probe strip
// (depth-bounded by maxWalkLength) used to find it.
var walkDirs = [4]walkDir{
	{tile.WalkLeft, func(da tile.Rect, d int64) tile.Rect {
		return tile.Rect{X0: da.X0 - d, Y0: da.Y0, X1: da.X0, Y1: da.Y1}
	}},
	{tile.WalkRight, func(da tile.Rect, d int64) tile.Rect {
		return tile.Rect{X0: da.X1, Y0: da.Y0, X1: da.X1 + d, Y1: da.Y1}
	}},
	{tile.WalkTop, func(da tile.Rect, d int64) tile.Rect {
		return tile.Rect{X0: da.X0, Y0: da.Y1, X1: da.X1, Y1: da.Y1 + d}
	}},
	{tile.WalkBottom, func(da tile.Rect, d int64) tile.Rect {
		return tile.Rect{X0: da.X0, Y0: da.Y0 - d, X1: da.X1, Y1: da.Y0}
	}},
}

// generateWalks runs walk generation over area: for every active
// (non-contact) route-entry's DEST_AREA tiles, queue directional walks for
// abutting SAMENODE geometry and contact walks for every incident contact
// whose blockage plane has room.
func (b *Builder) generateWalks(area tile.Rect) error {
	for _, e := range b.entries {
		if e.isContact {
			continue
		}
		if err := b.directionalWalks(e, area); err != nil {
			return err
		}
		if err := b.contactWalks(e, area); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) directionalWalks(e *routeEntry, area tile.Rect) error {
	var innerErr error
	cb := func(_ tile.ID, da tile.Rect, _ tile.Type) bool {
		for _, wd := range walkDirs {
			strip := wd.strip(da, b.maxWalkLength)
			strip = b.universe.Intersect(strip)
			if strip.Empty() {
				continue
			}
			scanErr := e.h.AreaEnumerate(strip, tile.Is(tile.SameNode), func(_ tile.ID, r tile.Rect, _ tile.Type) bool {
				ov := r.Intersect(strip)
				if ov.Empty() {
					return true
				}
				b.pending = append(b.pending, pendingWalk{entry: e, rect: ov, typ: wd.typ})
				return true
			})
			if scanErr != nil {
				innerErr = scanErr
				return false
			}
		}
		return true
	}
	if err := e.h.AreaEnumerate(area, tile.Is(tile.DestArea), cb); err != nil {
		return err
	}
	return innerErr
}

// contactWalks runs contact-walk generation for route-entry e's
// DEST_AREA tiles: every active contact incident to e is scanned for
// SPACE/SAMENODE room to fit its footprint, and on success a walk tile —
// meaning "drop this contact here to complete" — is queued in the *other*
// residue's planes. The contact's own fit is checked against its own
// blockage plane before queuing, since a SAMENODE on one residue does not
// imply the contact itself fits.
func (b *Builder) contactWalks(e *routeEntry, area tile.Rect) error {
	for _, rc := range b.style.ContactsOn(e.name) {
		other, ok := rc.OtherResidue(e.name)
		if !ok {
			continue
		}
		otherEntry, ok := b.entries[other]
		if !ok {
			continue
		}
		contactEntry, ok := b.entries[rc.Name]
		if !ok {
			continue
		}
		below := rc.Layer1 == e.name
		lr, ud := contactOrientations(contactEntry)

		var innerErr error
		cb := func(_ tile.ID, da tile.Rect, _ tile.Type) bool {
			fitErr := contactEntry.h.AreaEnumerate(da, func(t tile.Type) bool {
				return t == tile.Space || t == tile.SameNode
			}, func(_ tile.ID, r tile.Rect, _ tile.Type) bool {
				if !fitsContact(r, contactEntry.rt.Width, contactEntry.rt.Length) {
					return true
				}
				ov := r.Intersect(da)
				if ov.Empty() {
					return true
				}
				if lr {
					typ := tile.ContactWalkAboveLR
					if below {
						typ = tile.ContactWalkBelowLR
					}
					b.pending = append(b.pending, pendingWalk{entry: otherEntry, rect: ov, typ: typ})
				}
				if ud {
					typ := tile.ContactWalkAboveUD
					if below {
						typ = tile.ContactWalkBelowUD
					}
					b.pending = append(b.pending, pendingWalk{entry: otherEntry, rect: ov, typ: typ})
				}
				return true
			})
			if fitErr != nil {
				innerErr = fitErr
				return false
			}
			return true
		}
		if err := e.h.AreaEnumerate(area, tile.Is(tile.DestArea), cb); err != nil {
			return err
		}
		if innerErr != nil {
			return innerErr
		}
	}
	return nil
}

// contactOrientations reports whether a contact may be placed as a
// left-right (LR) and/or up-down (UD) drop. A square contact (Length == 0
// or Length == Width) can be placed either way; an elongated contact is
// only placed along its long axis's perpendicular drop orientation.
func contactOrientations(e *routeEntry) (lr, ud bool) {
	if e.rt.Length == 0 || e.rt.Length == e.rt.Width {
		return true, true
	}
	if e.rt.Length > e.rt.Width {
		return false, true
	}
	return true, false
}

// fitsContact reports whether r is large enough to hold a contact of the
// given width/length footprint (length 0 means a square contact of side
// width).
func fitsContact(r tile.Rect, width, length int64) bool {
	if length <= 0 {
		length = width
	}
	w := r.X1 - r.X0
	h := r.Y1 - r.Y0
	return (w >= width && h >= length) || (w >= length && h >= width)
}
