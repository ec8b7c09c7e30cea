package geometry

import (
	"github.com/beetlebugorg/gml/internal/crs"
)

type MultiPoint struct {
	Base
	Members []PointGeometry
}

func (*MultiPoint) Kind() Kind { return KindMultiPoint }

type MultiCurve struct {
	Base
	Members []CurveGeometry
}

func (*MultiCurve) Kind() Kind { return KindMultiCurve }

// MultiLineString is the GML 2 aggregate of line strings. GML 3.2 dropped
// the element; writers targeting it emit a MultiCurve.
type MultiLineString struct {
	Base
	Members []CurveGeometry
}

func (*MultiLineString) Kind() Kind { return KindMultiLineString }

type MultiSurface struct {
	Base
	Members []SurfaceGeometry
}

func (*MultiSurface) Kind() Kind { return KindMultiSurface }

// MultiPolygon is the GML 2 aggregate of polygons. GML 3.2 writers emit a
// MultiSurface instead.
type MultiPolygon struct {
	Base
	Members []SurfaceGeometry
}

func (*MultiPolygon) Kind() Kind { return KindMultiPolygon }

type MultiSolid struct {
	Base
	Members []SolidGeometry
}

func (*MultiSolid) Kind() Kind { return KindMultiSolid }

// MultiGeometry is a heterogeneous aggregate.
type MultiGeometry struct {
	Base
	Members []Geometry
}

func (*MultiGeometry) Kind() Kind { return KindMultiGeometry }

// GeometricComplex is a set of primitives sharing boundaries.
type GeometricComplex struct {
	Base
	Members []Primitive
}

func (*GeometricComplex) Kind() Kind { return KindGeometricComplex }

// Envelope is an axis-aligned bounding box. It never has an id.
type Envelope struct {
	Base
	Min []float64
	Max []float64
}

func (*Envelope) Kind() Kind { return KindEnvelope }

// NewEnvelope returns an envelope in srs.
func NewEnvelope(srs *crs.CRS, lower, upper []float64) *Envelope {
	return &Envelope{Base: Base{SRS: srs}, Min: lower, Max: upper}
}

// Members returns the members of an aggregate or complex as a plain slice,
// or nil when g has none.
func Members(g Geometry) []Geometry {
	var out []Geometry
	switch v := g.(type) {
	case *MultiPoint:
		for _, m := range v.Members {
			out = append(out, m)
		}
	case *MultiCurve:
		for _, m := range v.Members {
			out = append(out, m)
		}
	case *MultiLineString:
		for _, m := range v.Members {
			out = append(out, m)
		}
	case *MultiSurface:
		for _, m := range v.Members {
			out = append(out, m)
		}
	case *MultiPolygon:
		for _, m := range v.Members {
			out = append(out, m)
		}
	case *MultiSolid:
		for _, m := range v.Members {
			out = append(out, m)
		}
	case *MultiGeometry:
		out = append(out, v.Members...)
	case *GeometricComplex:
		for _, m := range v.Members {
			out = append(out, m)
		}
	case *CompositeCurve:
		for _, m := range v.Members {
			out = append(out, m)
		}
	case *CompositeSurface:
		for _, m := range v.Members {
			out = append(out, m)
		}
	case *CompositeSolid:
		for _, m := range v.Members {
			out = append(out, m)
		}
	}
	return out
}
