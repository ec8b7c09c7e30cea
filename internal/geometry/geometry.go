// Package geometry is the in-memory geometry model shared by the GML readers
// and writers.
//
// The model is a closed set of pointer types implementing Geometry. Member
// slots are typed by the abstract GML group they accept (CurveGeometry,
// SurfaceGeometry, ...), and *Reference implements all of them, so an xlink
// can stand wherever an inline geometry could.
//
// Values are built once by a reader and treated as immutable afterwards.
package geometry

import (
	"encoding/xml"

	"github.com/beetlebugorg/gml/internal/crs"
)

// Geometry is implemented by every variant of the model.
type Geometry interface {
	Kind() Kind
	// ID returns the document identifier, "" when absent.
	ID() string
	// CRS returns the coordinate reference system, nil when unknown.
	CRS() *crs.CRS
	// Properties returns standard and application properties in document
	// order.
	Properties() []Property
	// TypeName returns the element name the geometry was read from. The zero
	// value means the GML element of Kind.
	TypeName() xml.Name

	common() *Base
}

// Base carries the attributes common to all geometries.
type Base struct {
	GID     string
	SRS     *crs.CRS
	Props   []Property
	Element xml.Name
}

func (b *Base) ID() string             { return b.GID }
func (b *Base) CRS() *crs.CRS          { return b.SRS }
func (b *Base) Properties() []Property { return b.Props }
func (b *Base) TypeName() xml.Name     { return b.Element }
func (b *Base) common() *Base          { return b }

// Attach sets the element name and properties of g. Readers call it once the
// structural content has been built.
func Attach(g Geometry, element xml.Name, props []Property) {
	b := g.common()
	b.Element = element
	b.Props = props
}

// Property is a standard GML property (gml:name, gml:description, ...) or
// an application-schema property with simple content.
type Property struct {
	Name      xml.Name
	Value     string
	Href      string
	CodeSpace string
}

// Primitive is implemented by the values accepted in a
// gml:geometricPrimitiveProperty.
type Primitive interface {
	Geometry
	primitive()
}

// PointGeometry is implemented by *Point and *Reference.
type PointGeometry interface {
	Primitive
	point()
}

// CurveGeometry is implemented by the values accepted in a
// gml:curveProperty.
type CurveGeometry interface {
	Primitive
	curve()
}

// RingGeometry is implemented by the values accepted in gml:exterior and
// gml:interior of a polygon.
type RingGeometry interface {
	CurveGeometry
	ring()
}

// SurfaceGeometry is implemented by the values accepted in a
// gml:surfaceProperty.
type SurfaceGeometry interface {
	Primitive
	surface()
}

// SolidGeometry is implemented by the values accepted in a
// gml:solidProperty.
type SolidGeometry interface {
	Primitive
	solid()
}

// Point is a single position.
//
// A point read from a gml:pointProperty with an xlink inside a control point
// list has Ref set and no coordinates.
type Point struct {
	Base
	Coords []float64
	Ref    *Reference
}

func (*Point) Kind() Kind { return KindPoint }
func (*Point) primitive() {}
func (*Point) point()     {}

// Dimension returns the number of ordinates.
func (p *Point) Dimension() int { return len(p.Coords) }

// X returns the first ordinate.
func (p *Point) X() float64 { return p.ordinate(0) }

// Y returns the second ordinate.
func (p *Point) Y() float64 { return p.ordinate(1) }

// Z returns the third ordinate, 0 for 2D points.
func (p *Point) Z() float64 { return p.ordinate(2) }

func (p *Point) ordinate(i int) float64 {
	if i < len(p.Coords) {
		return p.Coords[i]
	}
	return 0
}

// Equal reports whether p and o have the same ordinates.
func (p *Point) Equal(o *Point) bool {
	if len(p.Coords) != len(o.Coords) {
		return false
	}
	for i := range p.Coords {
		if p.Coords[i] != o.Coords[i] {
			return false
		}
	}
	return true
}

// Dimension returns the coordinate dimension of a point list, taken from
// its first point with coordinates.
func Dimension(points []*Point) int {
	for _, p := range points {
		if len(p.Coords) > 0 {
			return len(p.Coords)
		}
	}
	return 0
}
