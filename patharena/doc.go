// Package patharena implements the partial-path record and its supporting
// arena allocator, point-hash, and saturating cost arithmetic.
//
// Partial paths are allocated from a growing slab and referenced by
// PathID, never by pointer: records are freed in bulk once the winning
// path has been copied out, so no partial-path reference may outlive the
// routing call that produced it.
package patharena
