package style

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// defaults for every style-file option: wWidth/wRate
// have no sane zero value, estimate/expandEndpoints default on, the rest
// default to "auto" (-1) or "unlimited" (0).
func defaults() *Style {
	return &Style{
		Layers:          map[string]*RouteLayer{},
		Types:           map[string]*RouteType{},
		Contacts:        map[string]*RouteContact{},
		Penalty:         Penalty{M: 1, E: 1},
		WWidth:          100,
		WRate:           10,
		BloomDeltaCost:  50,
		BoundsIncrement: -1,
		Estimate:        true,
		ExpandEndpoints: true,
		TopHintsOnly:    false,
		MaxWalkLength:   -1,
		Verbosity:       0,
		BloomLimit:      0,
	}
}

// Load decodes a style-file YAML document from r, applies the defaults
// above for any field the document omits, and validates the result before
// returning it. On error the returned *Style is nil: bad configuration
// is surfaced synchronously and routing never starts.
func Load(r io.Reader) (*Style, error) {
	s := defaults()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(s); err != nil && err != io.EOF {
		return nil, fmt.Errorf("style: decode: %w", err)
	}
	if err := s.resolve(); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// resolve back-fills RouteType.Layer (from the map key, if the document
// left it blank) and RouteLayer.Contacts (every contact incident to a
// layer), so callers need not repeat the layer name in both places.
func (s *Style) resolve() error {
	for name, rt := range s.Types {
		if rt.Layer == "" {
			rt.Layer = name
		}
	}
	for name, rc := range s.Contacts {
		if rc.Name == "" {
			rc.Name = name
		}
		for _, layerName := range []string{rc.Layer1, rc.Layer2} {
			rl, ok := s.Layers[layerName]
			if !ok {
				continue // reported by Validate
			}
			rl.Contacts = append(rl.Contacts, rc.Name)
		}
	}
	return nil
}

// Validate runs the bad-configuration checks: unknown
// layer names, missing spacing entries, and contacts whose residues are
// not both declared layers.
func (s *Style) Validate() error {
	if s.WWidth <= 0 || s.WRate <= 0 {
		return ErrInvalidWindow
	}
	if s.Penalty.E > 62 {
		return ErrInvalidPenalty
	}
	for typeName, rt := range s.Types {
		if _, ok := s.Layers[rt.Layer]; !ok {
			return fmt.Errorf("%w: route type %q references layer %q", ErrUnknownLayer, typeName, rt.Layer)
		}
		if !rt.Active {
			continue
		}
		for dbType, bloat := range rt.Bloat {
			if bloat < 0 {
				continue // explicit "no interaction"; spacing is irrelevant
			}
			if _, ok := rt.Spacing[dbType]; !ok {
				return fmt.Errorf("%w: route type %q has a bloat entry for %q with no matching spacing entry", ErrMissingSpacing, typeName, dbType)
			}
		}
	}
	for _, rc := range s.Contacts {
		_, ok1 := s.Layers[rc.Layer1]
		_, ok2 := s.Layers[rc.Layer2]
		if !ok1 || !ok2 {
			return fmt.Errorf("%w: contact %q residues %q/%q", ErrContactBadResidues, rc.Name, rc.Layer1, rc.Layer2)
		}
	}
	if len(s.ActiveLayers()) == 0 {
		return ErrNoActiveLayer
	}
	return nil
}
