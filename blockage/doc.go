// Package blockage derives, per active route-type and per active contact
// type, horizontal- and vertical-strip blockage planes tagged SPACE,
// SAMENODE, the directional and contact walk types, DEST_AREA, and
// BLOCKED. Planes are generated incrementally: a bounds plane tracks
// where blockage is current, and the extenders request enlargement as the
// search approaches an ungenerated edge.
package blockage
