// Package numline implements an ordered set of int64 coordinates with
// MIN/MAX sentinels, used by the router to record every x- and
// y-coordinate that bounds a destination area, and by the extenders to
// test whether a candidate extension point aligns with one of those
// coordinates. Bracket, returning the pair of adjacent entries
// surrounding a query, is the primary operation; membership is the
// degenerate case where both ends of the pair coincide.
package numline
