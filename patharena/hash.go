package patharena

// PointKey is the search's dedup key: a path reaching the same point
// on the same layer with the same arrival orientation is discarded unless
// it beats the stored cost. Orientation is part of the key because a
// horizontal-arrival and a vertical-arrival at the same point carry
// different future jog costs.
type PointKey struct {
	X, Y   int64
	Layer  string
	Orient Orientation
}

// KeyOf builds a PointKey from a PathRecord.
func KeyOf(r *PathRecord) PointKey {
	return PointKey{X: r.Point.X, Y: r.Point.Y, Layer: r.RouteLayer, Orient: r.Orient}
}

// PointHash is the sole mechanism preventing the search from re-doing
// work: it stores, per PointKey, the best cost any path has
// reached that point/layer/orientation with, and the PathID of the
// record that achieved it. Only the cost is ever compared; the
// superseded PathRecord becomes garbage immediately and is reclaimed in
// bulk by the Arena's next Reset.
type PointHash struct {
	best map[PointKey]entry
}

type entry struct {
	cost int64
	id   PathID
}

// NewPointHash returns an empty PointHash.
func NewPointHash() *PointHash {
	return &PointHash{best: make(map[PointKey]entry)}
}

// Offer reports whether id's record beats (or is the first to reach) its
// PointKey, and if so records it as the new best and returns true. A
// caller that gets false must discard id's record; the stored entry's
// cost always equals the minimum cost over every path that ever reached
// that triple.
func (h *PointHash) Offer(a *Arena, id PathID) bool {
	r := a.Get(id)
	key := KeyOf(r)
	cur, ok := h.best[key]
	if ok && cur.cost <= r.Cost {
		return false
	}
	h.best[key] = entry{cost: r.Cost, id: id}
	return true
}

// BestCost returns the best cost recorded for key, and whether any path
// has reached it at all.
func (h *PointHash) BestCost(key PointKey) (int64, bool) {
	e, ok := h.best[key]
	return e.cost, ok
}

// Len reports how many distinct point/layer/orientation triples have been
// touched during the search.
func (h *PointHash) Len() int { return len(h.best) }

// Reset clears the hash for reuse across routing calls.
func (h *PointHash) Reset() { h.best = make(map[PointKey]entry) }
