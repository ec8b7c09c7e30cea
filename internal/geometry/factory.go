package geometry

import (
	"github.com/beetlebugorg/gml/internal/crs"
)

// NewPoint creates a point.
func NewPoint(id string, srs *crs.CRS, coords ...float64) *Point {
	return &Point{Base: Base{GID: id, SRS: srs}, Coords: coords}
}

// NewPoints groups a flat ordinate list into points of dimension dim.
// Trailing ordinates that do not fill a point are dropped.
func NewPoints(srs *crs.CRS, dim int, flat ...float64) []*Point {
	if dim <= 0 {
		return nil
	}
	points := make([]*Point, 0, len(flat)/dim)
	for i := 0; i+dim <= len(flat); i += dim {
		coords := make([]float64, dim)
		copy(coords, flat[i:i+dim])
		points = append(points, &Point{Base: Base{SRS: srs}, Coords: coords})
	}
	return points
}

// NewLineString creates a line string.
func NewLineString(id string, srs *crs.CRS, points []*Point) *LineString {
	return &LineString{Base: Base{GID: id, SRS: srs}, Points: points}
}

// NewLinearRing creates a linear ring.
func NewLinearRing(id string, srs *crs.CRS, points []*Point) *LinearRing {
	return &LinearRing{Base: Base{GID: id, SRS: srs}, Points: points}
}

// NewPolygon creates a polygon. A nil or empty interiors slice is stored as
// nil.
func NewPolygon(id string, srs *crs.CRS, exterior RingGeometry, interiors []RingGeometry) *Polygon {
	if len(interiors) == 0 {
		interiors = nil
	}
	return &Polygon{Base: Base{GID: id, SRS: srs}, Exterior: exterior, Interiors: interiors}
}

// NewCurve creates a segmented curve.
func NewCurve(id string, srs *crs.CRS, segments ...Segment) *Curve {
	return &Curve{Base: Base{GID: id, SRS: srs}, Segments: segments}
}

// NewMultiPoint creates a multi point.
func NewMultiPoint(id string, srs *crs.CRS, members ...PointGeometry) *MultiPoint {
	return &MultiPoint{Base: Base{GID: id, SRS: srs}, Members: members}
}

// NewMultiLineString creates a multi line string.
func NewMultiLineString(id string, srs *crs.CRS, members ...CurveGeometry) *MultiLineString {
	return &MultiLineString{Base: Base{GID: id, SRS: srs}, Members: members}
}

// NewMultiPolygon creates a multi polygon.
func NewMultiPolygon(id string, srs *crs.CRS, members ...SurfaceGeometry) *MultiPolygon {
	return &MultiPolygon{Base: Base{GID: id, SRS: srs}, Members: members}
}
