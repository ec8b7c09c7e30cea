package writer

import (
	"strings"

	"github.com/beetlebugorg/gml/internal/crs"
	"github.com/beetlebugorg/gml/internal/geometry"
)

// gml2Writer writes GML 2.1.2 simple features. Curves and surfaces that
// reduce to simple features are linearized; everything else is rejected
// with ErrUnsupportedGeometry.
type gml2Writer struct {
	*encoder
}

func (w *gml2Writer) Write(g geometry.Geometry) error {
	g, err := w.prepare(g)
	if err != nil {
		return err
	}
	if err := w.geometry(g); err != nil {
		return err
	}
	return w.w.Err()
}

func (w *gml2Writer) geometry(g geometry.Geometry) error {
	saved := w.scope
	defer func() { w.scope = saved }()

	switch v := g.(type) {
	case *geometry.Point:
		return w.point(v)
	case *geometry.LineString:
		return w.coordinates(v, "LineString", v.Points)
	case *geometry.Curve, *geometry.OrientableCurve:
		points := geometry.CurvePoints(g)
		if err := w.resolvedPoints(g, points); err != nil {
			return err
		}
		return w.coordinates(g, "LineString", points)
	case *geometry.LinearRing:
		return w.coordinates(v, "LinearRing", v.Points)
	case *geometry.Ring:
		points := geometry.CurvePoints(v)
		if err := w.resolvedPoints(g, points); err != nil {
			return err
		}
		return w.coordinates(v, "LinearRing", points)
	case *geometry.Polygon:
		return w.polygon(v, v.Exterior, v.Interiors)
	case *geometry.Surface:
		if len(v.Patches) != 1 {
			return w.unsupported(g, "only single patch surfaces have a simple feature encoding")
		}
		exterior, interiors := geometry.PatchRings(v.Patches[0])
		if exterior == nil {
			return w.unsupported(g, v.Patches[0].PatchKind().String()+" patches have no simple feature encoding")
		}
		return w.polygon(v, exterior, interiors)
	case *geometry.PolyhedralSurface:
		return w.polyhedral(v)
	case *geometry.OrientableSurface:
		base := geometry.Deref(v.BaseSurface)
		if _, ok := base.(*geometry.Reference); ok {
			return w.unsupported(g, "unresolved base surface")
		}
		return w.geometry(base)
	case *geometry.MultiPoint:
		return w.members(v, "MultiPoint", "pointMember")
	case *geometry.MultiCurve:
		return w.members(v, "MultiLineString", "lineStringMember")
	case *geometry.MultiLineString:
		return w.members(v, "MultiLineString", "lineStringMember")
	case *geometry.MultiSurface:
		return w.members(v, "MultiPolygon", "polygonMember")
	case *geometry.MultiPolygon:
		return w.members(v, "MultiPolygon", "polygonMember")
	case *geometry.MultiGeometry:
		return w.members(v, "MultiGeometry", "geometryMember")
	case *geometry.Envelope:
		return w.box(v)
	}
	return w.unsupported(g, "no GML 2 encoding")
}

func (w *gml2Writer) inline(g geometry.Geometry) error {
	return w.geometry(g)
}

// resolvedPoints rejects linearized curves with unresolved parts.
func (w *gml2Writer) resolvedPoints(g geometry.Geometry, points []*geometry.Point) error {
	if len(points) == 0 {
		return w.unsupported(g, "curve has no resolvable control points")
	}
	for _, p := range points {
		if p.Ref != nil {
			return w.unsupported(g, "control point references have no GML 2 encoding")
		}
	}
	return nil
}

func (w *gml2Writer) point(p *geometry.Point) error {
	if p.Ref != nil {
		return w.unsupported(p, "control point references have no GML 2 encoding")
	}
	coords, err := w.transform(p.CRS(), p.Coords)
	if err != nil {
		return err
	}
	w.start(p, "Point", true)
	w.standardProperties(p)
	w.w.StartElement(w.ns, "coord")
	for i, axis := range []string{"X", "Y", "Z"} {
		if i >= len(coords) {
			break
		}
		w.floatElement(axis, coords[i])
	}
	w.w.EndElement()
	w.trailingProperties(p)
	w.w.EndElement()
	return nil
}

// coordinates writes g as the element local holding one coordinates
// element.
func (w *gml2Writer) coordinates(g geometry.Geometry, local string, points []*geometry.Point) error {
	tuples := make([]string, 0, len(points))
	for _, p := range points {
		if p.Ref != nil {
			return w.unsupported(g, "control point references have no GML 2 encoding")
		}
		coords, err := w.transform(pointCRS(p, g.CRS()), p.Coords)
		if err != nil {
			return err
		}
		tuples = append(tuples, joinFloats(coords, ","))
	}
	w.start(g, local, true)
	w.standardProperties(g)
	w.w.StartElement(w.ns, "coordinates")
	w.w.Attr("", "decimal", ".")
	w.w.Attr("", "cs", ",")
	w.w.Attr("", "ts", " ")
	w.w.Characters(strings.Join(tuples, " "))
	w.w.EndElement()
	w.trailingProperties(g)
	w.w.EndElement()
	return nil
}

func pointCRS(p *geometry.Point, def *crs.CRS) *crs.CRS {
	if p.CRS() != nil {
		return p.CRS()
	}
	return def
}

func (w *gml2Writer) polygon(g geometry.Geometry, exterior geometry.RingGeometry, interiors []geometry.RingGeometry) error {
	w.start(g, "Polygon", true)
	w.standardProperties(g)
	if exterior != nil {
		if err := w.property("outerBoundaryIs", exterior, w.inline); err != nil {
			return err
		}
	}
	for _, r := range interiors {
		if err := w.property("innerBoundaryIs", r, w.inline); err != nil {
			return err
		}
	}
	w.trailingProperties(g)
	w.w.EndElement()
	return nil
}

// polyhedral writes a polyhedral surface as a MultiPolygon of its patches.
func (w *gml2Writer) polyhedral(ps *geometry.PolyhedralSurface) error {
	w.start(ps, "MultiPolygon", true)
	w.standardProperties(ps)
	for _, p := range ps.Patches {
		w.w.StartElement(w.ns, "polygonMember")
		poly := geometry.NewPolygon("", ps.CRS(), p.Exterior, p.Interiors)
		if err := w.geometry(poly); err != nil {
			return err
		}
		w.w.EndElement()
	}
	w.trailingProperties(ps)
	w.w.EndElement()
	return nil
}

func (w *gml2Writer) members(g geometry.Geometry, local, member string) error {
	w.start(g, local, true)
	w.standardProperties(g)
	for _, m := range geometry.Members(g) {
		if err := w.property(member, m, w.inline); err != nil {
			return err
		}
	}
	w.trailingProperties(g)
	w.w.EndElement()
	return nil
}

func (w *gml2Writer) box(env *geometry.Envelope) error {
	lower, err := w.transform(env.CRS(), env.Min)
	if err != nil {
		return err
	}
	upper, err := w.transform(env.CRS(), env.Max)
	if err != nil {
		return err
	}
	w.start(env, "Box", false)
	w.w.StartElement(w.ns, "coordinates")
	w.w.Attr("", "decimal", ".")
	w.w.Attr("", "cs", ",")
	w.w.Attr("", "ts", " ")
	w.w.Characters(joinFloats(lower, ",") + " " + joinFloats(upper, ","))
	w.w.EndElement()
	w.w.EndElement()
	return nil
}
