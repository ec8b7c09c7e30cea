package gml

import (
	"github.com/ctessum/geom"

	"github.com/beetlebugorg/gml/internal/geometry"
)

// ToleranceSimplifier removes vertices of line strings and polygon rings
// that lie within Tolerance of the simplified shape, without introducing
// self intersections. It is meant for WriteOptions.Simplifier.
//
// Only two-dimensional LineStrings, Polygons with LinearRing boundaries and
// the MultiLineString, MultiCurve, MultiPolygon and MultiSurface aggregates
// of those are simplified. Any other geometry, and any ring that would
// collapse below four positions, is returned unchanged.
type ToleranceSimplifier struct {
	Tolerance float64
}

// Simplify implements Simplifier.
func (s ToleranceSimplifier) Simplify(g Geometry) (Geometry, error) {
	if s.Tolerance <= 0 {
		return g, nil
	}
	switch v := g.(type) {
	case *geometry.LineString:
		return s.lineString(v), nil
	case *geometry.Polygon:
		return s.polygon(v), nil
	case *geometry.MultiLineString:
		out := *v
		out.Members = s.curves(v.Members)
		return &out, nil
	case *geometry.MultiCurve:
		out := *v
		out.Members = s.curves(v.Members)
		return &out, nil
	case *geometry.MultiPolygon:
		out := *v
		out.Members = s.surfaces(v.Members)
		return &out, nil
	case *geometry.MultiSurface:
		out := *v
		out.Members = s.surfaces(v.Members)
		return &out, nil
	}
	return g, nil
}

func (s ToleranceSimplifier) curves(members []geometry.CurveGeometry) []geometry.CurveGeometry {
	out := make([]geometry.CurveGeometry, len(members))
	for i, m := range members {
		out[i] = m
		if ls, ok := m.(*geometry.LineString); ok {
			out[i] = s.lineString(ls)
		}
	}
	return out
}

func (s ToleranceSimplifier) surfaces(members []geometry.SurfaceGeometry) []geometry.SurfaceGeometry {
	out := make([]geometry.SurfaceGeometry, len(members))
	for i, m := range members {
		out[i] = m
		if p, ok := m.(*geometry.Polygon); ok {
			out[i] = s.polygon(p)
		}
	}
	return out
}

func (s ToleranceSimplifier) lineString(ls *geometry.LineString) *geometry.LineString {
	path, ok := planar(ls.Points)
	if !ok || len(path) < 3 {
		return ls
	}
	simplified := geom.LineString(path).Simplify(s.Tolerance).(geom.LineString)
	if len(simplified) < 2 || len(simplified) == len(path) {
		return ls
	}
	out := *ls
	out.Points = fromPlanar(ls.SRS, simplified)
	return &out
}

func (s ToleranceSimplifier) polygon(p *geometry.Polygon) *geometry.Polygon {
	all := p.Interiors
	if p.Exterior != nil {
		all = append([]geometry.RingGeometry{p.Exterior}, p.Interiors...)
	}
	rings := make([]*geometry.LinearRing, 0, len(all))
	var poly geom.Polygon
	for _, r := range all {
		lr, ok := r.(*geometry.LinearRing)
		if !ok {
			return p
		}
		path, ok := planar(lr.Points)
		if !ok || len(path) < 4 {
			return p
		}
		rings = append(rings, lr)
		poly = append(poly, path)
	}
	if len(poly) == 0 {
		return p
	}
	simplified := poly.Simplify(s.Tolerance).(geom.Polygon)

	out := *p
	out.Exterior = nil
	out.Interiors = nil
	for i, path := range simplified {
		ring := rings[i]
		if len(path) >= 4 && len(path) < len(ring.Points) {
			r := *ring
			r.Points = fromPlanar(ring.SRS, path)
			ring = &r
		}
		if i == 0 && p.Exterior != nil {
			out.Exterior = ring
			continue
		}
		out.Interiors = append(out.Interiors, ring)
	}
	return &out
}

// planar converts 2D control points. ok is false when any point is a
// reference, carries an id or has another dimension.
func planar(points []*geometry.Point) ([]geom.Point, bool) {
	path := make([]geom.Point, len(points))
	for i, p := range points {
		if p.Ref != nil || p.GID != "" || len(p.Coords) != 2 {
			return nil, false
		}
		path[i] = geom.Point{X: p.Coords[0], Y: p.Coords[1]}
	}
	return path, true
}

func fromPlanar(srs *CRS, path []geom.Point) []*geometry.Point {
	points := make([]*geometry.Point, len(path))
	for i, p := range path {
		points[i] = geometry.NewPoint("", srs, p.X, p.Y)
	}
	return points
}
