// Package hintplane flattens the cell hierarchy's user-authored MAGNET,
// FENCE, and ROTATE annotations into five global tile planes, painted
// once per routing call: hint and rotate in both strip orientations, plus
// a single fence plane that the blockage builder later translates into
// per-layer blockage.
package hintplane
