// Package celldb defines the narrow, read-only interface the router core
// consumes from the painted cell database. It never mutates anything; it
// only answers "what is painted in this rectangle" and "what subcells
// overlap this rectangle" questions for the blockage builder, the
// hint/fence/rotate flattener, and the estimation plane.
package celldb
