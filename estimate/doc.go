// Package estimate builds the admissible lower-bound cost-to-go oracle
// that guides the windowed search: a coarse grid decomposition over the
// bounding rectangle, tagged with per-direction travel costs, with every
// corner's shortest distance to a destination area computed by a single
// Dijkstra run and compiled into a pruned set of linear estimators per
// cell. A uniform grid is its own trivial spatial index, so this package
// has no need of tile.Plane's split/merge machinery.
package estimate
