package tile

// Predicate reports whether a tile type matches an AreaEnumerate query.
type Predicate func(Type) bool

// Any is a Predicate that matches every type.
func Any(Type) bool { return true }

// Is returns a Predicate matching exactly t.
func Is(t Type) Predicate { return func(got Type) bool { return got == t } }

// OneOf returns a Predicate matching any of types.
func OneOf(types ...Type) Predicate {
	set := make(map[Type]struct{}, len(types))
	for _, t := range types {
		set[t] = struct{}{}
	}
	return func(got Type) bool { _, ok := set[got]; return ok }
}

// Callback is invoked once per enumerated tile with its rectangle and type.
// Returning false requests early abort of the enumeration.
type Callback func(id ID, r Rect, t Type) (keepGoing bool)

// AreaEnumerate yields every tile intersecting area whose type matches
// predicate, each exactly once, in slab order (deterministic for a given
// build sequence). Intersection-only tiles are yielded with
// their full rectangle, not clipped to area, since callers (the blockage
// builder, the extenders) need the tile's real extent to compute bloats,
// walk depths, and stopping coordinates.
func (p *Plane) AreaEnumerate(area Rect, predicate Predicate, cb Callback) error {
	if area.Empty() {
		return ErrEmptyRect
	}
	if predicate == nil {
		predicate = Any
	}
	for i := 1; i < len(p.slab); i++ {
		t := &p.slab[i]
		if t.free || !t.Rect.Intersects(area) {
			continue
		}
		if !predicate(t.Type) {
			continue
		}
		if !cb(ID(i), t.Rect, t.Type) {
			return nil
		}
	}
	return nil
}
