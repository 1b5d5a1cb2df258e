package celldb

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/vlsicore/mzrouter/tile"
)

// fixtureTile and fixtureSubcell are the YAML wire shapes for MemDB test
// fixtures: small hand-authored cell databases used by the blockage,
// estimate, and mzrouter test suites, following the same
// yaml-descriptor-to-runtime-object pattern.
type fixtureTile struct {
	Rect [4]int64 `yaml:"rect"` // x0,y0,x1,y1
	Type string   `yaml:"type"`
	Node string   `yaml:"node,omitempty"`
}

type fixtureSubcell struct {
	Rect        [4]int64 `yaml:"rect"`
	Destination bool     `yaml:"destination,omitempty"`
}

type fixtureAnnotation struct {
	Rect    [4]int64 `yaml:"rect"`
	Kind    string   `yaml:"kind"` // magnet, fence, rotate
	Outside bool     `yaml:"outside,omitempty"`
	Top     bool     `yaml:"top,omitempty"`
}

type fixtureDoc struct {
	Tiles       []fixtureTile       `yaml:"tiles"`
	Subcells    []fixtureSubcell    `yaml:"subcells"`
	Annotations []fixtureAnnotation `yaml:"annotations"`
}

// annotationEntry pairs an Annotation with whether it was authored on the
// top cell, so Annotations can honor topOnly without a second slice.
type annotationEntry struct {
	Annotation
	top bool
}

// MemDB is an in-memory CellDB backed by a flat slice of painted tiles and
// subcells, suitable for unit tests and small routing scenarios.
// Iteration is a linear intersection scan; MemDB is not meant
// for production-scale cells.
type MemDB struct {
	tiles       []PaintedTile
	subcells    []Subcell
	annotations []annotationEntry
}

// NewMemDB builds a MemDB directly from in-memory slices.
func NewMemDB(tiles []PaintedTile, subcells []Subcell) *MemDB {
	return &MemDB{tiles: tiles, subcells: subcells}
}

// LoadFixtureYAML decodes a fixture document of the form:
//
//	tiles:
//	  - rect: [0, -2, 10, 2]
//	    type: m1
//	    node: startnet
//	subcells:
//	  - rect: [40, -5, 60, 5]
//	    destination: true
//
// into a ready-to-use MemDB.
func LoadFixtureYAML(r io.Reader) (*MemDB, error) {
	var doc fixtureDoc
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	db := &MemDB{
		tiles:    make([]PaintedTile, 0, len(doc.Tiles)),
		subcells: make([]Subcell, 0, len(doc.Subcells)),
	}
	for _, ft := range doc.Tiles {
		db.tiles = append(db.tiles, PaintedTile{
			Rect: tile.Rect{X0: ft.Rect[0], Y0: ft.Rect[1], X1: ft.Rect[2], Y1: ft.Rect[3]},
			Type: TileType(ft.Type),
			Node: ft.Node,
		})
	}
	for _, fs := range doc.Subcells {
		db.subcells = append(db.subcells, Subcell{
			Rect:          tile.Rect{X0: fs.Rect[0], Y0: fs.Rect[1], X1: fs.Rect[2], Y1: fs.Rect[3]},
			IsDestination: fs.Destination,
		})
	}
	for _, fa := range doc.Annotations {
		kind, err := parseAnnotationKind(fa.Kind)
		if err != nil {
			return nil, err
		}
		db.annotations = append(db.annotations, annotationEntry{
			Annotation: Annotation{
				Rect:    tile.Rect{X0: fa.Rect[0], Y0: fa.Rect[1], X1: fa.Rect[2], Y1: fa.Rect[3]},
				Kind:    kind,
				Outside: fa.Outside,
			},
			top: fa.Top,
		})
	}
	return db, nil
}

func parseAnnotationKind(s string) (AnnotationKind, error) {
	switch s {
	case "magnet":
		return Magnet, nil
	case "fence":
		return Fence, nil
	case "rotate":
		return Rotate, nil
	default:
		return 0, fmt.Errorf("celldb: unknown annotation kind %q", s)
	}
}

func (m *MemDB) Iterate(area tile.Rect, cb func(PaintedTile) bool) error {
	for _, t := range m.tiles {
		if t.Rect.Intersects(area) {
			if !cb(t) {
				return nil
			}
		}
	}
	return nil
}

func (m *MemDB) Subcells(area tile.Rect, cb func(Subcell) bool) error {
	for _, s := range m.subcells {
		if s.Rect.Intersects(area) {
			if !cb(s) {
				return nil
			}
		}
	}
	return nil
}

func (m *MemDB) ConnectedGeometry(node string) ([]PaintedTile, error) {
	if node == "" {
		return nil, nil
	}
	var out []PaintedTile
	for _, t := range m.tiles {
		if t.Node == node {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *MemDB) Annotations(area tile.Rect, topOnly bool, cb func(Annotation) bool) error {
	for _, a := range m.annotations {
		if topOnly && !a.top {
			continue
		}
		if a.Rect.Intersects(area) {
			if !cb(a.Annotation) {
				return nil
			}
		}
	}
	return nil
}
