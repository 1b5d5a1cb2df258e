// Package style defines the routing style: route layers, route types,
// route contacts, and the tunable search parameters (window width and
// rate, overshoot penalty, bloom delta and limit, bounds increment, walk
// length, verbosity). A style is parsed from a YAML document via Load and
// validated (unknown layer names, missing spacings, contacts whose
// residues are not both declared) before mzrouter.Initialise ever builds
// a plane.
package style
