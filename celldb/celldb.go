package celldb

import (
	"errors"

	"github.com/vlsicore/mzrouter/tile"
)

// ErrNotLoaded indicates a DB handle was used before its backing cell was
// successfully opened.
var ErrNotLoaded = errors.New("celldb: cell database not loaded")

// TileType names a material/geometry tag as painted in the external cell
// database (metal1, poly, a subcell's bounding box, a fence region, ...).
// It is opaque to the router core beyond equality comparison and use as a
// bloat/spacing table key (style.RouteType.Bloat, style.RouteType.Spacing).
type TileType string

// SubcellTileType is the reserved bloat/spacing-table key a style file uses
// to declare whether a route-type may cross over an unexpanded subcell
// (the estimation plane treats subcells as solid obstacles only when
// every active route-type declares a negative spacing against SUBCELL,
// i.e. over-the-cell routing is forbidden everywhere).
// It is never emitted by CellDB.Iterate; it exists only
// as a style.RouteType.Spacing key.
const SubcellTileType TileType = "SUBCELL"

// PaintedTile is one rectangle of database geometry, as handed to the
// blockage builder by Iterate.
type PaintedTile struct {
	Rect tile.Rect
	Type TileType
	// Node identifies the electrical node this tile belongs to, if any;
	// tiles sharing a Node with a start or destination terminal are part of
	// that terminal's SAMENODE-expanded geometry when start expansion
	// walks electrical connectivity.
	Node string
}

// Subcell is an unexpanded child-cell instance overlapping the build area,
// as consumed by the blockage builder's subcell pass.
type Subcell struct {
	Rect          tile.Rect
	IsDestination bool
}

// Shape is a start or destination terminal shape supplied by the caller of
// mzrouter.Initialise.
type Shape struct {
	Rect   tile.Rect
	Layer  string // route-layer name the shape sits on
	Node   string // electrical node identifier, for connectivity expansion
}

// AnnotationKind distinguishes the three kinds of user-authored routing
// hints the hint/fence/rotate flattener consumes.
type AnnotationKind int

const (
	// Magnet is a hint region: paths accumulate reduced cost for
	// traveling parallel to it.
	Magnet AnnotationKind = iota
	// Fence confines or excludes routing, per Outside.
	Fence
	// Rotate swaps a region's horizontal/vertical per-unit costs.
	Rotate
)

// Annotation is one user-authored hint/fence/rotate region from the cell
// hierarchy.
type Annotation struct {
	Rect    tile.Rect
	Kind    AnnotationKind
	Outside bool // Fence only: true means the region excludes routing from outside it
}

// CellDB is the read-only interface the router core consumes. All methods
// must be synchronous and either succeed or report failure; the
// cell-database read path never yields (no blocking I/O behind this
// interface; a real implementation must pre-load or cache).
type CellDB interface {
	// Iterate calls cb once per painted tile intersecting area, in any
	// order, stopping early if cb returns false. It must not be called
	// concurrently with a mutation of the underlying cell; that is the
	// caller's contract.
	Iterate(area tile.Rect, cb func(PaintedTile) bool) error

	// Subcells calls cb once per child-cell instance intersecting area.
	Subcells(area tile.Rect, cb func(Subcell) bool) error

	// ConnectedGeometry returns every PaintedTile electrically connected to
	// node, used by the seed phase's start expansion.
	ConnectedGeometry(node string) ([]PaintedTile, error)

	// Annotations calls cb once per hint/fence/rotate annotation
	// intersecting area. When topOnly is true only annotations authored on
	// the top cell are visited (the style file's topHintsOnly flag).
	Annotations(area tile.Rect, topOnly bool, cb func(Annotation) bool) error
}
