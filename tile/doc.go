// Package tile implements the corner-stitched tile plane: a 2-D spatial
// index that decomposes a rectangular universe into non-overlapping tiles,
// each carrying a type and four neighbor links (LB, BR, TR, TL), and
// supports point-location, ordered area enumeration, and table-driven
// painting that keeps the tiling maximal along the plane's strip direction.
//
// Tiles live in a single growable slab per Plane and are referenced by
// 32-bit ID, never by pointer — this sidesteps the lifetime and cycle
// issues of the classic pointer-linked corner-stitching structure (see
// DESIGN.md, "tile" section) while keeping the same neighbor-walk query
// shape: PointLocate starts from a hint tile and follows neighbor links
// toward the query point, falling back to a bounded linear scan if the
// neighbor graph ever fails to converge (it always should; the fallback
// exists purely so a caller bug in Paint never turns into an infinite loop
// or a wrong answer).
//
// Every Plane has an Identity naming whether it is a
// blockage plane for a given route-type/orientation, a hint/fence/rotate
// plane, the bounds plane, or the estimation plane — used only for logging
// and for panic messages, never for control flow.
package tile
