package style

import (
	"errors"
	"sort"

	"github.com/vlsicore/mzrouter/celldb"
)

// Sentinel errors for style parsing and validation, surfaced
// synchronously so routing never starts on a bad configuration.
var (
	ErrUnknownLayer       = errors.New("style: reference to undeclared layer")
	ErrUnknownContact     = errors.New("style: reference to undeclared contact")
	ErrMissingSpacing     = errors.New("style: no spacing entry for a layer pair")
	ErrContactBadResidues = errors.New("style: contact residues are not both declared layers")
	ErrInvalidPenalty     = errors.New("style: penalty exponent out of range")
	ErrInvalidWindow      = errors.New("style: wWidth/wRate must be positive")
	ErrNoActiveLayer      = errors.New("style: style has no active route layer")
)

// RouteLayer is the per-layer material record: named, with per-direction
// wire costs, an over-route cost charged
// when an extension crosses a different active layer's geometry, a jog
// cost, a hint-alignment cost multiplier, and a minimum wire width.
type RouteLayer struct {
	Name     string `yaml:"name"`
	HCost    int64  `yaml:"h_cost"`
	VCost    int64  `yaml:"v_cost"`
	JogCost  int64  `yaml:"jog_cost"`
	HintCost int64  `yaml:"hint_cost"`
	OverCost int64  `yaml:"over_cost"`
	MinWidth int64  `yaml:"min_width"`

	// Contacts lists the names of RouteContact records incident to this
	// layer, populated by Style.resolve after all contacts are parsed.
	Contacts []string `yaml:"-"`
}

// CostFor returns the layer's per-unit-length cost for horizontal or
// vertical travel, swapped when the segment lies inside a rotate region.
func (rl *RouteLayer) CostFor(horizontal, inRotate bool) int64 {
	if horizontal != inRotate {
		return rl.HCost
	}
	return rl.VCost
}

// RouteType is the per-layer physical record: wire width and length, a
// bloat table mapping each database tile
// type to the distance it inflates into this route-type's blockage plane
// (negative means no interaction), and a spacing table used the same way
// for the SAMENODE-trimming rule.
type RouteType struct {
	Layer  string `yaml:"layer"`
	Width  int64  `yaml:"width"`
	Length int64  `yaml:"length"` // for non-square contacts; 0 means square == Width
	Active bool   `yaml:"active"`

	Bloat   map[celldb.TileType]int64 `yaml:"bloat"`
	Spacing map[celldb.TileType]int64 `yaml:"spacing"`
}

// BloatFor returns the bloat distance for database tile type t, and
// whether t interacts with this route-type at all (a negative or absent
// entry means "no interaction").
func (rt *RouteType) BloatFor(t celldb.TileType) (int64, bool) {
	d, ok := rt.Bloat[t]
	if !ok || d < 0 {
		return 0, false
	}
	return d, true
}

// SpacingFor returns the SAMENODE-trimming spacing distance for database
// tile type t, and whether it interacts at all.
func (rt *RouteType) SpacingFor(t celldb.TileType) (int64, bool) {
	d, ok := rt.Spacing[t]
	if !ok || d < 0 {
		return 0, false
	}
	return d, true
}

// RouteContact is the two-layer junction record: the two layers it
// joins, its own RouteType (width,
// length, bloats, blockage planes), and a per-placement cost.
type RouteContact struct {
	Name     string `yaml:"name"`
	Layer1   string `yaml:"layer1"`
	Layer2   string `yaml:"layer2"`
	Cost     int64  `yaml:"cost"`
	Active   bool   `yaml:"active"`
	RT       RouteType `yaml:"route_type"`
}

// OtherResidue returns the layer on the opposite side of the contact
// from layer, used by the contact extenders to compute the successor
// layer.
func (rc *RouteContact) OtherResidue(layer string) (string, bool) {
	switch layer {
	case rc.Layer1:
		return rc.Layer2, true
	case rc.Layer2:
		return rc.Layer1, true
	default:
		return "", false
	}
}

// Penalty is the overshoot-penalty fraction m/2^e used by the search
// driver's min_adj_cost heap.
type Penalty struct {
	M int64 `yaml:"m"`
	E uint  `yaml:"e"`
}

// Apply scales an overshoot distance by m/2^e.
func (p Penalty) Apply(overshoot int64) int64 {
	return (overshoot * p.M) >> p.E
}

// Style is the fully parsed and validated routing style: the style
// file's recognised options plus the layer/type/contact tables they
// configure.
type Style struct {
	Layers   map[string]*RouteLayer   `yaml:"layers"`
	Types    map[string]*RouteType    `yaml:"types"` // keyed by layer name
	Contacts map[string]*RouteContact `yaml:"contacts"`

	Penalty          Penalty `yaml:"penalty"`
	WWidth           int64   `yaml:"w_width"`
	WRate            int64   `yaml:"w_rate"`
	BloomDeltaCost   int64   `yaml:"bloom_delta_cost"`
	BoundsIncrement  int64   `yaml:"bounds_increment"` // -1 => auto
	Estimate         bool    `yaml:"estimate"`
	ExpandEndpoints  bool    `yaml:"expand_endpoints"`
	TopHintsOnly     bool    `yaml:"top_hints_only"`
	MaxWalkLength    int64   `yaml:"max_walk_length"` // -1 => auto
	Verbosity        int     `yaml:"verbosity"`       // 0, 1, or 2
	BloomLimit       int64   `yaml:"bloom_limit"`     // 0 => unlimited
}

// ActiveLayers returns the names of every layer whose RouteType is active,
// in a deterministic (sorted) order.
func (s *Style) ActiveLayers() []string {
	names := make([]string, 0, len(s.Types))
	for name, rt := range s.Types {
		if rt.Active {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// ActiveContacts returns the names of every active contact, sorted.
func (s *Style) ActiveContacts() []string {
	names := make([]string, 0, len(s.Contacts))
	for name, rc := range s.Contacts {
		if rc.Active {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// ContactsOn returns every active contact incident to layer.
func (s *Style) ContactsOn(layer string) []*RouteContact {
	var out []*RouteContact
	for _, name := range s.ActiveContacts() {
		rc := s.Contacts[name]
		if rc.Layer1 == layer || rc.Layer2 == layer {
			out = append(out, rc)
		}
	}
	return out
}
