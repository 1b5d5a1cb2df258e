// Package walkcomplete converts a partial path that has entered a walk
// tile into a finished route: a straight final leg into the destination
// area for the four directional walks, or a single contact drop for the
// two contact walks. Completion is deterministic — no further branching
// happens once a path carries a walk mask.
package walkcomplete
