package writer

import (
	"strconv"

	"github.com/beetlebugorg/gml/internal/crs"
	"github.com/beetlebugorg/gml/internal/dialect"
	"github.com/beetlebugorg/gml/internal/geometry"
)

// gml3Writer writes GML 3.0, 3.1 and 3.2.
type gml3Writer struct {
	*encoder
}

func (w *gml3Writer) Write(g geometry.Geometry) error {
	g, err := w.prepare(g)
	if err != nil {
		return err
	}
	if ref, ok := g.(*geometry.Reference); ok {
		target, err := ref.Resolve()
		if err != nil {
			return err
		}
		g = target
	}
	if err := w.geometry(g); err != nil {
		return err
	}
	return w.w.Err()
}

// geometry writes g as an inline element.
func (w *gml3Writer) geometry(g geometry.Geometry) error {
	saved := w.scope
	defer func() { w.scope = saved }()

	switch v := g.(type) {
	case *geometry.Point:
		return w.point(v)
	case *geometry.LineString:
		return w.lineString(v)
	case *geometry.Curve:
		return w.curve(v)
	case *geometry.OrientableCurve:
		return w.orientableCurve(v)
	case *geometry.CompositeCurve:
		return w.members(v, "CompositeCurve", "curveMember", true)
	case *geometry.LinearRing:
		return w.linearRing(v)
	case *geometry.Ring:
		return w.members(v, "Ring", "curveMember", w.identified(v))
	case *geometry.Polygon:
		return w.polygon(v)
	case *geometry.Surface:
		return w.surface(v, "Surface", "patches", v.Patches)
	case *geometry.PolyhedralSurface:
		patches := make([]geometry.Patch, len(v.Patches))
		for i, p := range v.Patches {
			patches[i] = p
		}
		return w.surface(v, "PolyhedralSurface", w.patchContainer("polygonPatches"), patches)
	case *geometry.TriangulatedSurface:
		patches := make([]geometry.Patch, len(v.Patches))
		for i, p := range v.Patches {
			patches[i] = p
		}
		return w.surface(v, "TriangulatedSurface", w.patchContainer("trianglePatches"), patches)
	case *geometry.Tin:
		return w.tin(v)
	case *geometry.OrientableSurface:
		return w.orientableSurface(v)
	case *geometry.CompositeSurface:
		return w.members(v, "CompositeSurface", "surfaceMember", true)
	case *geometry.Solid:
		return w.solid(v)
	case *geometry.CompositeSolid:
		return w.members(v, "CompositeSolid", "solidMember", true)
	case *geometry.MultiPoint:
		return w.members(v, "MultiPoint", "pointMember", true)
	case *geometry.MultiCurve:
		return w.members(v, "MultiCurve", "curveMember", true)
	case *geometry.MultiLineString:
		if w.version == dialect.GML32 {
			return w.members(v, "MultiCurve", "curveMember", true)
		}
		return w.members(v, "MultiLineString", "lineStringMember", true)
	case *geometry.MultiSurface:
		return w.members(v, "MultiSurface", "surfaceMember", true)
	case *geometry.MultiPolygon:
		if w.version == dialect.GML32 {
			return w.members(v, "MultiSurface", "surfaceMember", true)
		}
		return w.members(v, "MultiPolygon", "polygonMember", true)
	case *geometry.MultiSolid:
		return w.members(v, "MultiSolid", "solidMember", true)
	case *geometry.MultiGeometry:
		return w.members(v, "MultiGeometry", "geometryMember", true)
	case *geometry.GeometricComplex:
		return w.members(v, "GeometricComplex", "element", true)
	case *geometry.Envelope:
		return w.envelope(v)
	case *geometry.Reference:
		return w.unsupported(g, "a reference can only be written as a property value")
	}
	return w.unsupported(g, "no element for this geometry type")
}

// inline is the property callback writing a nested geometry.
func (w *gml3Writer) inline(g geometry.Geometry) error {
	return w.geometry(g)
}

func (w *gml3Writer) end(g geometry.Geometry) {
	w.trailingProperties(g)
	w.w.EndElement()
}

func (w *gml3Writer) point(p *geometry.Point) error {
	if p.Ref != nil {
		return w.unsupported(p, "control point reference outside a control point list")
	}
	w.start(p, "Point", true)
	w.standardProperties(p)
	if err := w.pos("pos", p, p.CRS()); err != nil {
		return err
	}
	w.end(p)
	return nil
}

// position returns the coordinates of p in the output CRS.
func (w *gml3Writer) position(p *geometry.Point, srs *crs.CRS) ([]float64, error) {
	if p.CRS() != nil {
		srs = p.CRS()
	}
	return w.transform(srs, p.Coords)
}

func (w *gml3Writer) pos(local string, p *geometry.Point, srs *crs.CRS) error {
	coords, err := w.position(p, srs)
	if err != nil {
		return err
	}
	w.vector(local, coords)
	return nil
}

// controlPoints writes a control point list. Plain positions become a
// posList (a pos sequence in GML 3.0); identified or referenced points need
// the verbose form.
func (w *gml3Writer) controlPoints(points []*geometry.Point, srs *crs.CRS) error {
	if verbose(points) {
		local := "pointProperty"
		if w.version == dialect.GML30 {
			local = "pointRep"
		}
		for _, p := range points {
			var err error
			switch {
			case p.Ref != nil:
				w.href(local, p.Ref.Href)
			case p.ID() != "":
				err = w.property(local, p, w.inline)
			default:
				err = w.pos("pos", p, srs)
			}
			if err != nil {
				return err
			}
		}
		return nil
	}
	if w.version == dialect.GML30 {
		for _, p := range points {
			if err := w.pos("pos", p, srs); err != nil {
				return err
			}
		}
		return nil
	}
	if len(points) == 0 {
		return nil
	}
	var flat []float64
	dim := 0
	for _, p := range points {
		coords, err := w.position(p, srs)
		if err != nil {
			return err
		}
		if dim == 0 {
			dim = len(coords)
		}
		flat = append(flat, coords...)
	}
	w.w.StartElement(w.ns, "posList")
	w.w.Attr("", "srsDimension", strconv.Itoa(dim))
	w.w.Characters(joinFloats(flat, " "))
	w.w.EndElement()
	return nil
}

func verbose(points []*geometry.Point) bool {
	for _, p := range points {
		if p.Ref != nil || p.ID() != "" {
			return true
		}
	}
	return false
}

func (w *gml3Writer) lineString(ls *geometry.LineString) error {
	w.start(ls, "LineString", true)
	w.standardProperties(ls)
	if err := w.controlPoints(ls.Points, ls.CRS()); err != nil {
		return err
	}
	w.end(ls)
	return nil
}

func (w *gml3Writer) linearRing(lr *geometry.LinearRing) error {
	w.start(lr, "LinearRing", w.identified(lr))
	w.standardProperties(lr)
	if err := w.controlPoints(lr.Points, lr.CRS()); err != nil {
		return err
	}
	w.end(lr)
	return nil
}

func (w *gml3Writer) curve(c *geometry.Curve) error {
	w.start(c, "Curve", true)
	w.standardProperties(c)
	w.w.StartElement(w.ns, "segments")
	for _, s := range c.Segments {
		if err := w.segment(s, c.CRS()); err != nil {
			return err
		}
	}
	w.w.EndElement()
	w.end(c)
	return nil
}

func orientation(reversed bool) string {
	if reversed {
		return "-"
	}
	return "+"
}

func (w *gml3Writer) orientableCurve(oc *geometry.OrientableCurve) error {
	w.start(oc, "OrientableCurve", true)
	w.w.Attr("", "orientation", orientation(oc.Reversed))
	w.standardProperties(oc)
	if err := w.property("baseCurve", oc.BaseCurve, w.inline); err != nil {
		return err
	}
	w.end(oc)
	return nil
}

// members writes a composite, ring or aggregate as one singular member
// property per member.
func (w *gml3Writer) members(g geometry.Geometry, local, member string, object bool) error {
	w.start(g, local, object)
	w.standardProperties(g)
	var members []geometry.Geometry
	if r, ok := g.(*geometry.Ring); ok {
		for _, m := range r.Members {
			members = append(members, m)
		}
	} else {
		members = geometry.Members(g)
	}
	for _, m := range members {
		if err := w.property(member, m, w.inline); err != nil {
			return err
		}
	}
	w.end(g)
	return nil
}

func (w *gml3Writer) polygon(p *geometry.Polygon) error {
	w.start(p, "Polygon", true)
	w.standardProperties(p)
	if err := w.rings(p.Exterior, p.Interiors); err != nil {
		return err
	}
	w.end(p)
	return nil
}

func (w *gml3Writer) rings(exterior geometry.RingGeometry, interiors []geometry.RingGeometry) error {
	if exterior != nil {
		if err := w.property("exterior", exterior, w.inline); err != nil {
			return err
		}
	}
	for _, r := range interiors {
		if err := w.property("interior", r, w.inline); err != nil {
			return err
		}
	}
	return nil
}

// patchContainer returns the patch container of polyhedral and
// triangulated surfaces; GML 3.2 renamed both to patches.
func (w *gml3Writer) patchContainer(local string) string {
	if w.version == dialect.GML32 {
		return "patches"
	}
	return local
}

func (w *gml3Writer) surface(g geometry.Geometry, local, container string, patches []geometry.Patch) error {
	w.start(g, local, true)
	w.standardProperties(g)
	w.w.StartElement(w.ns, container)
	for _, p := range patches {
		if err := w.patch(p, g.CRS()); err != nil {
			return err
		}
	}
	w.w.EndElement()
	w.end(g)
	return nil
}

// tin writes a Tin. The triangle patches container is required by the
// schema and is written empty when the Tin holds no triangles.
func (w *gml3Writer) tin(t *geometry.Tin) error {
	w.start(t, "Tin", true)
	w.standardProperties(t)
	w.w.StartElement(w.ns, w.patchContainer("trianglePatches"))
	for _, p := range t.Patches {
		if err := w.patch(p, t.CRS()); err != nil {
			return err
		}
	}
	w.w.EndElement()
	for _, lines := range []struct {
		local string
		sets  [][]*geometry.LineStringSegment
	}{
		{"stopLines", t.StopLines},
		{"breakLines", t.BreakLines},
	} {
		for _, set := range lines.sets {
			w.w.StartElement(w.ns, lines.local)
			for _, seg := range set {
				if err := w.segment(seg, t.CRS()); err != nil {
					return err
				}
			}
			w.w.EndElement()
		}
	}
	w.measure("maxLength", t.MaxLength)
	w.w.StartElement(w.ns, "controlPoint")
	if err := w.controlPoints(t.ControlPoints, t.CRS()); err != nil {
		return err
	}
	w.w.EndElement()
	w.end(t)
	return nil
}

func (w *gml3Writer) orientableSurface(surf *geometry.OrientableSurface) error {
	w.start(surf, "OrientableSurface", true)
	w.w.Attr("", "orientation", orientation(surf.Reversed))
	w.standardProperties(surf)
	if err := w.property("baseSurface", surf.BaseSurface, w.inline); err != nil {
		return err
	}
	w.end(surf)
	return nil
}

func (w *gml3Writer) solid(s *geometry.Solid) error {
	w.start(s, "Solid", true)
	w.standardProperties(s)
	if s.Exterior != nil {
		if err := w.property("exterior", s.Exterior, w.inline); err != nil {
			return err
		}
	}
	for _, in := range s.Interiors {
		if err := w.property("interior", in, w.inline); err != nil {
			return err
		}
	}
	w.end(s)
	return nil
}

func (w *gml3Writer) envelope(env *geometry.Envelope) error {
	lower, err := w.transform(env.CRS(), env.Min)
	if err != nil {
		return err
	}
	upper, err := w.transform(env.CRS(), env.Max)
	if err != nil {
		return err
	}
	w.start(env, "Envelope", false)
	if w.version == dialect.GML30 {
		w.vector("pos", lower)
		w.vector("pos", upper)
	} else {
		w.vector("lowerCorner", lower)
		w.vector("upperCorner", upper)
	}
	w.w.EndElement()
	return nil
}
