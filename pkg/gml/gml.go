package gml

import (
	"sync"

	"github.com/beetlebugorg/gml/internal/crs"
	"github.com/beetlebugorg/gml/internal/dialect"
	"github.com/beetlebugorg/gml/internal/geometry"
	"github.com/beetlebugorg/gml/internal/parser"
)

// Version identifies a GML dialect.
type Version = dialect.Version

// Supported GML versions.
const (
	VersionUnknown = dialect.Unknown
	GML21          = dialect.GML21
	GML30          = dialect.GML30
	GML31          = dialect.GML31
	GML32          = dialect.GML32
)

// ParseVersion parses "2.1.2", "3.1", "gml32" and similar spellings.
func ParseVersion(s string) (Version, error) {
	return dialect.ParseVersion(s)
}

// Geometry model. The types are shared with the internal packages so that
// values flow between parser and writer without conversion.
type (
	Geometry            = geometry.Geometry
	Kind                = geometry.Kind
	Property            = geometry.Property
	Point               = geometry.Point
	LineString          = geometry.LineString
	LinearRing          = geometry.LinearRing
	Ring                = geometry.Ring
	Curve               = geometry.Curve
	OrientableCurve     = geometry.OrientableCurve
	CompositeCurve      = geometry.CompositeCurve
	Polygon             = geometry.Polygon
	Surface             = geometry.Surface
	PolyhedralSurface   = geometry.PolyhedralSurface
	TriangulatedSurface = geometry.TriangulatedSurface
	Tin                 = geometry.Tin
	CompositeSurface    = geometry.CompositeSurface
	OrientableSurface   = geometry.OrientableSurface
	Solid               = geometry.Solid
	CompositeSolid      = geometry.CompositeSolid
	MultiPoint          = geometry.MultiPoint
	MultiCurve          = geometry.MultiCurve
	MultiLineString     = geometry.MultiLineString
	MultiSurface        = geometry.MultiSurface
	MultiPolygon        = geometry.MultiPolygon
	MultiSolid          = geometry.MultiSolid
	MultiGeometry       = geometry.MultiGeometry
	GeometricComplex    = geometry.GeometricComplex
	Envelope            = geometry.Envelope
	Reference           = geometry.Reference

	// CRS is a coordinate reference system handle.
	CRS = crs.CRS
	// CRSResolver maps srsName values to CRS handles.
	CRSResolver = crs.Resolver
	// CRSDefinition registers an additional system with a CRSResolver.
	CRSDefinition = crs.Definition
	// Hierarchy is the geometry part of an application schema.
	Hierarchy = dialect.Hierarchy
)

// Geometry kinds.
const (
	KindPoint               = geometry.KindPoint
	KindLineString          = geometry.KindLineString
	KindCurve               = geometry.KindCurve
	KindOrientableCurve     = geometry.KindOrientableCurve
	KindCompositeCurve      = geometry.KindCompositeCurve
	KindLinearRing          = geometry.KindLinearRing
	KindRing                = geometry.KindRing
	KindPolygon             = geometry.KindPolygon
	KindSurface             = geometry.KindSurface
	KindCompositeSurface    = geometry.KindCompositeSurface
	KindOrientableSurface   = geometry.KindOrientableSurface
	KindPolyhedralSurface   = geometry.KindPolyhedralSurface
	KindTriangulatedSurface = geometry.KindTriangulatedSurface
	KindTin                 = geometry.KindTin
	KindSolid               = geometry.KindSolid
	KindCompositeSolid      = geometry.KindCompositeSolid
	KindMultiPoint          = geometry.KindMultiPoint
	KindMultiCurve          = geometry.KindMultiCurve
	KindMultiLineString     = geometry.KindMultiLineString
	KindMultiSurface        = geometry.KindMultiSurface
	KindMultiPolygon        = geometry.KindMultiPolygon
	KindMultiSolid          = geometry.KindMultiSolid
	KindMultiGeometry       = geometry.KindMultiGeometry
	KindGeometricComplex    = geometry.KindGeometricComplex
	KindEnvelope            = geometry.KindEnvelope
	KindReference           = geometry.KindReference
)

// NewCRSResolver returns a resolver preloaded with the built-in
// definitions.
func NewCRSResolver() *CRSResolver {
	return crs.NewResolver()
}

// NewHierarchy creates an application-schema hierarchy extending version v.
func NewHierarchy(v Version) *dialect.StaticHierarchy {
	return dialect.NewStaticHierarchy(v)
}

// Document is a parsed GML document.
//
// The embedded parser document gives access to the top-level geometries,
// the detected version and the id registry. The spatial index is built on
// first use.
type Document struct {
	*parser.Document

	indexOnce sync.Once
	index     *GeometryIndex
}

func wrapDocument(doc *parser.Document) *Document {
	if doc == nil {
		return nil
	}
	return &Document{Document: doc}
}

// Index returns the spatial index over the identified geometries of the
// document.
func (d *Document) Index() *GeometryIndex {
	d.indexOnce.Do(func() {
		d.index = BuildIndex(d)
	})
	return d.index
}

// Query returns the identified geometries whose bounds intersect b.
func (d *Document) Query(b Bounds) []Entry {
	return d.Index().Query(b)
}

// Kinds returns the number of top-level geometries per kind.
func (d *Document) Kinds() map[Kind]int {
	counts := make(map[Kind]int)
	for _, g := range d.Geometries {
		counts[g.Kind()]++
	}
	return counts
}
