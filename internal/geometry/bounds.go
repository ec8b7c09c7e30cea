package geometry

import (
	"math"
)

// Walk calls fn for g and every geometry nested in it, depth first. It
// descends into resolved references but not into unresolved ones. Walk
// stops early when fn returns false.
func Walk(g Geometry, fn func(Geometry) bool) bool {
	if g == nil {
		return true
	}
	if !fn(g) {
		return false
	}
	var children []Geometry
	switch v := g.(type) {
	case *Reference:
		if v.Resolved() {
			t, _ := v.Resolve()
			children = append(children, t)
		}
	case *OrientableCurve:
		children = appendNonNil(children, v.BaseCurve)
	case *OrientableSurface:
		children = appendNonNil(children, v.BaseSurface)
	case *Ring:
		for _, m := range v.Members {
			children = append(children, m)
		}
	case *Polygon:
		children = appendNonNil(children, v.Exterior)
		for _, r := range v.Interiors {
			children = append(children, r)
		}
	case *Surface:
		for _, p := range v.Patches {
			ext, ints := PatchRings(p)
			children = appendNonNil(children, ext)
			for _, r := range ints {
				children = append(children, r)
			}
		}
	case *PolyhedralSurface:
		for _, p := range v.Patches {
			children = appendNonNil(children, p.Exterior)
			for _, r := range p.Interiors {
				children = append(children, r)
			}
		}
	case *TriangulatedSurface:
		for _, p := range v.Patches {
			children = appendNonNil(children, p.Exterior)
		}
	case *Solid:
		children = appendNonNil(children, v.Exterior)
		for _, s := range v.Interiors {
			children = append(children, s)
		}
	case *Curve:
		for _, s := range v.Segments {
			if oc, ok := s.(*OffsetCurve); ok {
				children = appendNonNil(children, oc.BaseCurve)
			}
		}
	default:
		children = Members(g)
	}
	for _, c := range children {
		if !Walk(c, fn) {
			return false
		}
	}
	return true
}

func appendNonNil(list []Geometry, g Geometry) []Geometry {
	if g == nil {
		return list
	}
	return append(list, g)
}

// CurvePoints returns the control points of a curve or ring in traversal
// order. Joints shared by consecutive members or segments appear once.
// Unresolved references contribute nothing.
func CurvePoints(c Geometry) []*Point {
	switch v := Deref(c).(type) {
	case *LineString:
		return v.Points
	case *LinearRing:
		return v.Points
	case *Curve:
		var out []*Point
		for _, s := range v.Segments {
			out = join(out, s.ControlPoints())
		}
		return out
	case *OrientableCurve:
		pts := CurvePoints(v.BaseCurve)
		if !v.Reversed {
			return pts
		}
		out := make([]*Point, len(pts))
		for i, p := range pts {
			out[len(pts)-1-i] = p
		}
		return out
	case *CompositeCurve:
		var out []*Point
		for _, m := range v.Members {
			out = join(out, CurvePoints(m))
		}
		return out
	case *Ring:
		var out []*Point
		for _, m := range v.Members {
			out = join(out, CurvePoints(m))
		}
		return out
	}
	return nil
}

func join(a, b []*Point) []*Point {
	if len(a) > 0 && len(b) > 0 && a[len(a)-1].Equal(b[0]) {
		b = b[1:]
	}
	return append(a, b...)
}

// ControlPoints returns every position of g, including those of nested
// geometries, in document order.
func ControlPoints(g Geometry) []*Point {
	var out []*Point
	Walk(g, func(n Geometry) bool {
		switch v := n.(type) {
		case *Point:
			if v.Ref == nil {
				out = append(out, v)
			}
		case *LineString:
			out = append(out, v.Points...)
		case *LinearRing:
			out = append(out, v.Points...)
		case *Curve:
			for _, s := range v.Segments {
				if _, ok := s.(*OffsetCurve); ok {
					continue
				}
				out = append(out, s.ControlPoints()...)
			}
		case *Tin:
			out = append(out, v.ControlPoints...)
		case *Surface:
			for _, p := range v.Patches {
				if grid, ok := Gridded(p); ok {
					out = append(out, grid.Points()...)
				}
			}
		case *Envelope:
			out = append(out, &Point{Coords: v.Min}, &Point{Coords: v.Max})
		}
		return true
	})
	return out
}

// Bounds returns the envelope of g in its own CRS. ok is false when g has no
// positions.
func Bounds(g Geometry) (env *Envelope, ok bool) {
	if e, isEnv := g.(*Envelope); isEnv {
		return e, len(e.Min) > 0
	}
	pts := ControlPoints(g)
	dim := Dimension(pts)
	if dim == 0 {
		return nil, false
	}
	lo := make([]float64, dim)
	hi := make([]float64, dim)
	for i := range lo {
		lo[i] = math.Inf(1)
		hi[i] = math.Inf(-1)
	}
	for _, p := range pts {
		for i := 0; i < dim && i < len(p.Coords); i++ {
			lo[i] = math.Min(lo[i], p.Coords[i])
			hi[i] = math.Max(hi[i], p.Coords[i])
		}
	}
	return NewEnvelope(g.CRS(), lo, hi), true
}
