// Package mzrouter is a cost-driven maze router for multi-layer VLSI
// layout: given start and destination terminal shapes on a painted cell
// database, it finds a design-rule-clean wire path across the active
// routing layers, dropping contacts between layers where that is cheaper.
//
// The module is organized one concern per package:
//
//	tile/         — corner-stitched tile planes (point-locate, enumerate, paint)
//	numline/      — sorted coordinate set with bracketing lookup
//	celldb/       — the read-only cell-database interface the core consumes
//	style/        — routing style: layers, contacts, costs, search tuning
//	hintplane/    — flattened global hint/fence/rotate planes
//	blockage/     — per-route-type blockage planes, built incrementally
//	estimate/     — Dijkstra-seeded admissible cost-to-go estimators
//	patharena/    — arena-allocated partial-path records and the point hash
//	extend/       — the four directional and two contact extenders
//	search/       — the windowed best-first driver (heaps, stacks, window)
//	walkcomplete/ — deterministic final-leg completion
//	mzrouter/     — the procedural façade: Initialise, BuildEstimate, Route, Clean
//
// Start with the mzrouter subpackage; everything else is plumbing it ties
// together.
package mzrouter
