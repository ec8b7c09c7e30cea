package parser

import (
	"github.com/beetlebugorg/gml/internal/crs"
	"github.com/beetlebugorg/gml/internal/dialect"
	"github.com/beetlebugorg/gml/internal/geometry"
)

// readGML3 dispatches a classified GML 3.0, 3.1 or 3.2 element to its
// routine.
func (r *Reader) readGML3(el dialect.Element, def *crs.CRS) (geometry.Geometry, error) {
	switch el.Class {
	case dialect.ClassPoint:
		return r.point(el, def)
	case dialect.ClassCurve:
		return r.curve(el, def)
	case dialect.ClassRing:
		return r.ring(el, def)
	case dialect.ClassSurface:
		return r.surface(el, def)
	case dialect.ClassSolid:
		return r.solid(el, def)
	case dialect.ClassAggregate:
		return r.aggregate(el, def)
	case dialect.ClassComplex:
		return r.complex(el, def)
	case dialect.ClassEnvelope:
		return r.envelope(el, def)
	default:
		return nil, &geometry.ErrUnsupportedGeometry{
			Version: r.version.String(),
			Reason:  "implicit geometry 'gml:" + el.Base + "' is not supported",
		}
	}
}

// Typed entry points, used for inline property values.

func (r *Reader) readPoint(def *crs.CRS) (*geometry.Point, error) {
	el, err := r.classify("gml:Point", dialect.ClassPoint)
	if err != nil {
		return nil, err
	}
	if r.version == dialect.GML21 {
		return r.point2(el, def)
	}
	return r.point(el, def)
}

func (r *Reader) readCurve(def *crs.CRS) (geometry.CurveGeometry, error) {
	el, err := r.classify("gml:_Curve", dialect.ClassCurve)
	if err != nil {
		return nil, err
	}
	if r.version == dialect.GML21 {
		return r.lineString2(el, def)
	}
	return r.curve(el, def)
}

func (r *Reader) readLineString(def *crs.CRS) (geometry.CurveGeometry, error) {
	el, err := r.classify("gml:LineString", dialect.ClassCurve)
	if err != nil {
		return nil, err
	}
	if el.Base != "LineString" {
		return nil, r.c.Errorf("expected a gml:LineString element, found '%s'", el.Name.Local)
	}
	if r.version == dialect.GML21 {
		return r.lineString2(el, def)
	}
	return r.lineString(el, def)
}

func (r *Reader) readRing(def *crs.CRS) (geometry.RingGeometry, error) {
	el, err := r.classify("gml:_Ring", dialect.ClassRing)
	if err != nil {
		return nil, err
	}
	if r.version == dialect.GML21 {
		return r.linearRing2(el, def)
	}
	return r.ring(el, def)
}

func (r *Reader) readSurface(def *crs.CRS) (geometry.SurfaceGeometry, error) {
	el, err := r.classify("gml:_Surface", dialect.ClassSurface)
	if err != nil {
		return nil, err
	}
	if r.version == dialect.GML21 {
		return r.polygon2(el, def)
	}
	return r.surface(el, def)
}

func (r *Reader) readPolygon(def *crs.CRS) (geometry.SurfaceGeometry, error) {
	el, err := r.classify("gml:Polygon", dialect.ClassSurface)
	if err != nil {
		return nil, err
	}
	if el.Base != "Polygon" {
		return nil, r.c.Errorf("expected a gml:Polygon element, found '%s'", el.Name.Local)
	}
	if r.version == dialect.GML21 {
		return r.polygon2(el, def)
	}
	return r.polygon(el, def)
}

func (r *Reader) readSolid(def *crs.CRS) (geometry.SolidGeometry, error) {
	el, err := r.classify("gml:_Solid", dialect.ClassSolid)
	if err != nil {
		return nil, err
	}
	return r.solid(el, def)
}

func (r *Reader) readPrimitive(def *crs.CRS) (geometry.Primitive, error) {
	el, err := r.classify("gml:_GeometricPrimitive", dialect.ClassPoint, dialect.ClassCurve, dialect.ClassRing,
		dialect.ClassSurface, dialect.ClassSolid)
	if err != nil {
		return nil, err
	}
	g, err := r.readGML3(el, def)
	if err != nil {
		return nil, err
	}
	return g.(geometry.Primitive), nil
}

// readMember reads any geometry except an envelope.
func (r *Reader) readMember(def *crs.CRS) (geometry.Geometry, error) {
	el, err := r.classify("gml:_Geometry", dialect.ClassPoint, dialect.ClassCurve, dialect.ClassRing,
		dialect.ClassSurface, dialect.ClassSolid, dialect.ClassAggregate, dialect.ClassComplex, dialect.ClassImplicit)
	if err != nil {
		return nil, err
	}
	if r.version == dialect.GML21 {
		return r.readGML2(el, def)
	}
	return r.readGML3(el, def)
}

// Property readers.

func (r *Reader) readPointProperty(def *crs.CRS) (geometry.PointGeometry, error) {
	return property(r, geometry.KindPoint, func() (geometry.PointGeometry, error) {
		p, err := r.readPoint(def)
		if err != nil {
			return nil, err
		}
		return p, nil
	})
}

func (r *Reader) readCurveProperty(def *crs.CRS) (geometry.CurveGeometry, error) {
	return property(r, geometry.KindCurve, func() (geometry.CurveGeometry, error) { return r.readCurve(def) })
}

func (r *Reader) readRingProperty(def *crs.CRS) (geometry.RingGeometry, error) {
	return property(r, geometry.KindRing, func() (geometry.RingGeometry, error) { return r.readRing(def) })
}

func (r *Reader) readSurfaceProperty(def *crs.CRS) (geometry.SurfaceGeometry, error) {
	return property(r, geometry.KindSurface, func() (geometry.SurfaceGeometry, error) { return r.readSurface(def) })
}

func (r *Reader) readSolidProperty(def *crs.CRS) (geometry.SolidGeometry, error) {
	return property(r, geometry.KindSolid, func() (geometry.SolidGeometry, error) { return r.readSolid(def) })
}

// Points and curves.

func (r *Reader) point(el dialect.Element, def *crs.CRS) (*geometry.Point, error) {
	id, err := r.readID()
	if err != nil {
		return nil, err
	}
	srs := r.activeCRS(def)
	props, err := r.readStandardProperties()
	if err != nil {
		return nil, err
	}
	var coords []float64
	switch {
	case r.isGML("pos"):
		p, err := r.readPos(srs)
		if err != nil {
			return nil, err
		}
		coords, srs = p.Coords, p.SRS
	case r.isGML("coordinates"):
		points, err := r.readCoordinates(srs)
		if err != nil {
			return nil, err
		}
		if len(points) != 1 {
			return nil, r.c.Errorf("point coordinates must hold exactly one tuple, found %d", len(points))
		}
		coords = points[0].Coords
	case r.isGML("coord"):
		p, err := r.readCoord(srs)
		if err != nil {
			return nil, err
		}
		coords = p.Coords
	default:
		return nil, r.c.Errorf("expected 'gml:pos', 'gml:coordinates' or 'gml:coord' in '%s', found '%s'",
			el.Name.Local, r.c.LocalName())
	}
	if err := r.next(); err != nil {
		return nil, err
	}
	p := geometry.NewPoint(id, srs, coords...)
	return p, r.finish(p, el, props)
}

func (r *Reader) curve(el dialect.Element, def *crs.CRS) (geometry.CurveGeometry, error) {
	switch el.Base {
	case "LineString":
		return r.lineString(el, def)
	case "Curve":
		return r.segmentedCurve(el, def)
	case "OrientableCurve":
		return r.orientableCurve(el, def)
	default:
		return r.compositeCurve(el, def)
	}
}

func (r *Reader) lineString(el dialect.Element, def *crs.CRS) (*geometry.LineString, error) {
	id, err := r.readID()
	if err != nil {
		return nil, err
	}
	srs := r.activeCRS(def)
	props, err := r.readStandardProperties()
	if err != nil {
		return nil, err
	}
	points, err := r.readControlPoints(srs)
	if err != nil {
		return nil, err
	}
	if len(points) < 2 {
		return nil, r.invalid(geometry.KindLineString, id, "at least 2 control points required, found %d", len(points))
	}
	ls := geometry.NewLineString(id, srs, points)
	return ls, r.finish(ls, el, props)
}

func (r *Reader) segmentedCurve(el dialect.Element, def *crs.CRS) (*geometry.Curve, error) {
	id, err := r.readID()
	if err != nil {
		return nil, err
	}
	srs := r.activeCRS(def)
	props, err := r.readStandardProperties()
	if err != nil {
		return nil, err
	}
	if err := r.requireStart("segments"); err != nil {
		return nil, err
	}
	container := r.c.Name()
	if err := r.next(); err != nil {
		return nil, err
	}
	var segments []geometry.Segment
	for r.c.IsStartElement() {
		seg, err := r.readSegment(srs)
		if err != nil {
			return nil, err
		}
		segments = append(segments, seg)
		if err := r.next(); err != nil {
			return nil, err
		}
	}
	if err := r.requireEnd(container); err != nil {
		return nil, err
	}
	if len(segments) == 0 {
		return nil, r.invalid(geometry.KindCurve, id, "no curve segments")
	}
	if err := r.next(); err != nil {
		return nil, err
	}
	c := geometry.NewCurve(id, srs, segments...)
	return c, r.finish(c, el, props)
}

func (r *Reader) orientableCurve(el dialect.Element, def *crs.CRS) (*geometry.OrientableCurve, error) {
	id, err := r.readID()
	if err != nil {
		return nil, err
	}
	srs := r.activeCRS(def)
	reversed, err := r.orientation()
	if err != nil {
		return nil, err
	}
	props, err := r.readStandardProperties()
	if err != nil {
		return nil, err
	}
	if err := r.requireStart("baseCurve"); err != nil {
		return nil, err
	}
	base, err := r.readCurveProperty(srs)
	if err != nil {
		return nil, err
	}
	if err := r.next(); err != nil {
		return nil, err
	}
	oc := &geometry.OrientableCurve{Base: geometry.Base{GID: id, SRS: srs}, BaseCurve: base, Reversed: reversed}
	return oc, r.finish(oc, el, props)
}

// curveMembers reads one or more curveMember properties.
func (r *Reader) curveMembers(kind geometry.Kind, id string, srs *crs.CRS) ([]geometry.CurveGeometry, error) {
	var members []geometry.CurveGeometry
	for r.isGML("curveMember") {
		m, err := r.readCurveProperty(srs)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
		if err := r.next(); err != nil {
			return nil, err
		}
	}
	if len(members) == 0 {
		return nil, r.invalid(kind, id, "at least one curveMember required")
	}
	return members, nil
}

func (r *Reader) compositeCurve(el dialect.Element, def *crs.CRS) (*geometry.CompositeCurve, error) {
	id, err := r.readID()
	if err != nil {
		return nil, err
	}
	srs := r.activeCRS(def)
	props, err := r.readStandardProperties()
	if err != nil {
		return nil, err
	}
	members, err := r.curveMembers(geometry.KindCompositeCurve, id, srs)
	if err != nil {
		return nil, err
	}
	cc := &geometry.CompositeCurve{Base: geometry.Base{GID: id, SRS: srs}, Members: members}
	return cc, r.finish(cc, el, props)
}

// Rings.

func (r *Reader) ring(el dialect.Element, def *crs.CRS) (geometry.RingGeometry, error) {
	if el.Base == "LinearRing" {
		return r.linearRing(el, def)
	}
	id, err := r.readID()
	if err != nil {
		return nil, err
	}
	srs := r.activeCRS(def)
	props, err := r.readStandardProperties()
	if err != nil {
		return nil, err
	}
	members, err := r.curveMembers(geometry.KindRing, id, srs)
	if err != nil {
		return nil, err
	}
	ring := &geometry.Ring{Base: geometry.Base{GID: id, SRS: srs}, Members: members}
	if allInline(members) {
		if n := len(geometry.CurvePoints(ring)); n < 4 {
			return nil, r.invalid(geometry.KindRing, id, "at least 4 control points required, found %d", n)
		}
	}
	return ring, r.finish(ring, el, props)
}

// allInline reports whether no member is a reference.
func allInline(members []geometry.CurveGeometry) bool {
	for _, m := range members {
		if _, ok := m.(*geometry.Reference); ok {
			return false
		}
	}
	return true
}

func (r *Reader) linearRing(el dialect.Element, def *crs.CRS) (*geometry.LinearRing, error) {
	id, err := r.readID()
	if err != nil {
		return nil, err
	}
	srs := r.activeCRS(def)
	props, err := r.readStandardProperties()
	if err != nil {
		return nil, err
	}
	points, err := r.readControlPoints(srs)
	if err != nil {
		return nil, err
	}
	if len(points) < 4 {
		return nil, r.invalid(geometry.KindLinearRing, id, "at least 4 control points required, found %d", len(points))
	}
	lr := geometry.NewLinearRing(id, srs, points)
	return lr, r.finish(lr, el, props)
}

// Surfaces.

func (r *Reader) surface(el dialect.Element, def *crs.CRS) (geometry.SurfaceGeometry, error) {
	switch el.Base {
	case "Polygon":
		return r.polygon(el, def)
	case "Surface", "PolyhedralSurface", "TriangulatedSurface":
		return r.patchedSurface(el, def)
	case "Tin":
		return r.tin(el, def)
	case "OrientableSurface":
		return r.orientableSurface(el, def)
	default:
		return r.compositeSurface(el, def)
	}
}

func (r *Reader) polygon(el dialect.Element, def *crs.CRS) (*geometry.Polygon, error) {
	id, err := r.readID()
	if err != nil {
		return nil, err
	}
	srs := r.activeCRS(def)
	props, err := r.readStandardProperties()
	if err != nil {
		return nil, err
	}
	var exterior geometry.RingGeometry
	if r.isGML("exterior", "outerBoundaryIs") {
		if exterior, err = r.readRingProperty(srs); err != nil {
			return nil, err
		}
		if err := r.next(); err != nil {
			return nil, err
		}
	}
	var interiors []geometry.RingGeometry
	for r.isGML("interior", "innerBoundaryIs") {
		ring, err := r.readRingProperty(srs)
		if err != nil {
			return nil, err
		}
		interiors = append(interiors, ring)
		if err := r.next(); err != nil {
			return nil, err
		}
	}
	p := geometry.NewPolygon(id, srs, exterior, interiors)
	return p, r.finish(p, el, props)
}

// patchedSurface reads Surface, PolyhedralSurface and TriangulatedSurface.
func (r *Reader) patchedSurface(el dialect.Element, def *crs.CRS) (geometry.SurfaceGeometry, error) {
	id, err := r.readID()
	if err != nil {
		return nil, err
	}
	srs := r.activeCRS(def)
	props, err := r.readStandardProperties()
	if err != nil {
		return nil, err
	}
	base := geometry.Base{GID: id, SRS: srs}
	var s geometry.SurfaceGeometry
	switch el.Base {
	case "PolyhedralSurface":
		patches, err := r.readPatches(srs, "polygonPatches", "patches")
		if err != nil {
			return nil, err
		}
		ps := &geometry.PolyhedralSurface{Base: base}
		for _, p := range patches {
			pp, ok := p.(*geometry.PolygonPatch)
			if !ok {
				return nil, r.invalid(geometry.KindPolyhedralSurface, id, "patch %s is not a PolygonPatch", p.PatchKind())
			}
			ps.Patches = append(ps.Patches, pp)
		}
		s = ps
	case "TriangulatedSurface":
		triangles, err := r.readTriangles(srs, geometry.KindTriangulatedSurface, id)
		if err != nil {
			return nil, err
		}
		s = &geometry.TriangulatedSurface{Base: base, Patches: triangles}
	default:
		patches, err := r.readPatches(srs, "patches", "polygonPatches", "trianglePatches")
		if err != nil {
			return nil, err
		}
		s = &geometry.Surface{Base: base, Patches: patches}
	}
	return s, r.finish(s, el, props)
}

func (r *Reader) readTriangles(srs *crs.CRS, kind geometry.Kind, id string) ([]*geometry.Triangle, error) {
	patches, err := r.readPatchList(srs, kind == geometry.KindTin, "trianglePatches", "patches")
	if err != nil {
		return nil, err
	}
	triangles := make([]*geometry.Triangle, 0, len(patches))
	for _, p := range patches {
		t, ok := p.(*geometry.Triangle)
		if !ok {
			return nil, r.invalid(kind, id, "patch %s is not a Triangle", p.PatchKind())
		}
		triangles = append(triangles, t)
	}
	return triangles, nil
}

// tin reads a Tin. The triangle patches container is optional and may be
// empty.
func (r *Reader) tin(el dialect.Element, def *crs.CRS) (*geometry.Tin, error) {
	id, err := r.readID()
	if err != nil {
		return nil, err
	}
	srs := r.activeCRS(def)
	props, err := r.readStandardProperties()
	if err != nil {
		return nil, err
	}
	tin := &geometry.Tin{Base: geometry.Base{GID: id, SRS: srs}}
	if r.isGML("trianglePatches", "patches") {
		if tin.Patches, err = r.readTriangles(srs, geometry.KindTin, id); err != nil {
			return nil, err
		}
	}
	for _, lines := range []struct {
		local string
		dst   *[][]*geometry.LineStringSegment
	}{
		{"stopLines", &tin.StopLines},
		{"breakLines", &tin.BreakLines},
	} {
		for r.isGML(lines.local) {
			segs, err := r.readLineStringSegments(srs)
			if err != nil {
				return nil, err
			}
			*lines.dst = append(*lines.dst, segs)
			if err := r.next(); err != nil {
				return nil, err
			}
		}
	}
	if tin.MaxLength, err = r.readMeasure("maxLength"); err != nil {
		return nil, err
	}
	if err := r.next(); err != nil {
		return nil, err
	}
	if err := r.requireStart("controlPoint"); err != nil {
		return nil, err
	}
	cp := r.c.Name()
	if err := r.next(); err != nil {
		return nil, err
	}
	if tin.ControlPoints, err = r.readControlPoints(srs); err != nil {
		return nil, err
	}
	if err := r.requireEnd(cp); err != nil {
		return nil, err
	}
	if len(tin.ControlPoints) < 3 {
		return nil, r.invalid(geometry.KindTin, id, "at least 3 control points required, found %d", len(tin.ControlPoints))
	}
	if err := r.next(); err != nil {
		return nil, err
	}
	return tin, r.finish(tin, el, props)
}

// readLineStringSegments reads a stopLines or breakLines element.
func (r *Reader) readLineStringSegments(srs *crs.CRS) ([]*geometry.LineStringSegment, error) {
	container := r.c.Name()
	if err := r.next(); err != nil {
		return nil, err
	}
	var segs []*geometry.LineStringSegment
	for r.isGML("LineStringSegment") {
		seg, err := r.readSegment(srs)
		if err != nil {
			return nil, err
		}
		segs = append(segs, seg.(*geometry.LineStringSegment))
		if err := r.next(); err != nil {
			return nil, err
		}
	}
	return segs, r.requireEnd(container)
}

func (r *Reader) orientableSurface(el dialect.Element, def *crs.CRS) (*geometry.OrientableSurface, error) {
	id, err := r.readID()
	if err != nil {
		return nil, err
	}
	srs := r.activeCRS(def)
	reversed, err := r.orientation()
	if err != nil {
		return nil, err
	}
	props, err := r.readStandardProperties()
	if err != nil {
		return nil, err
	}
	if err := r.requireStart("baseSurface"); err != nil {
		return nil, err
	}
	base, err := r.readSurfaceProperty(srs)
	if err != nil {
		return nil, err
	}
	if err := r.next(); err != nil {
		return nil, err
	}
	surf := &geometry.OrientableSurface{Base: geometry.Base{GID: id, SRS: srs}, BaseSurface: base, Reversed: reversed}
	return surf, r.finish(surf, el, props)
}

func (r *Reader) compositeSurface(el dialect.Element, def *crs.CRS) (*geometry.CompositeSurface, error) {
	id, err := r.readID()
	if err != nil {
		return nil, err
	}
	srs := r.activeCRS(def)
	props, err := r.readStandardProperties()
	if err != nil {
		return nil, err
	}
	cs := &geometry.CompositeSurface{Base: geometry.Base{GID: id, SRS: srs}}
	for r.isGML("surfaceMember") {
		m, err := r.readSurfaceProperty(srs)
		if err != nil {
			return nil, err
		}
		cs.Members = append(cs.Members, m)
		if err := r.next(); err != nil {
			return nil, err
		}
	}
	if len(cs.Members) == 0 {
		return nil, r.invalid(geometry.KindCompositeSurface, id, "at least one surfaceMember required")
	}
	return cs, r.finish(cs, el, props)
}

// Solids.

func (r *Reader) solid(el dialect.Element, def *crs.CRS) (geometry.SolidGeometry, error) {
	id, err := r.readID()
	if err != nil {
		return nil, err
	}
	srs := r.activeCRS(def)
	props, err := r.readStandardProperties()
	if err != nil {
		return nil, err
	}
	base := geometry.Base{GID: id, SRS: srs}
	if el.Base == "CompositeSolid" {
		cs := &geometry.CompositeSolid{Base: base}
		for r.isGML("solidMember") {
			m, err := r.readSolidProperty(srs)
			if err != nil {
				return nil, err
			}
			cs.Members = append(cs.Members, m)
			if err := r.next(); err != nil {
				return nil, err
			}
		}
		if len(cs.Members) == 0 {
			return nil, r.invalid(geometry.KindCompositeSolid, id, "at least one solidMember required")
		}
		return cs, r.finish(cs, el, props)
	}
	s := &geometry.Solid{Base: base}
	if r.isGML("exterior") {
		if s.Exterior, err = r.readSurfaceProperty(srs); err != nil {
			return nil, err
		}
		if err := r.next(); err != nil {
			return nil, err
		}
	}
	for r.isGML("interior") {
		shell, err := r.readSurfaceProperty(srs)
		if err != nil {
			return nil, err
		}
		s.Interiors = append(s.Interiors, shell)
		if err := r.next(); err != nil {
			return nil, err
		}
	}
	return s, r.finish(s, el, props)
}

// Aggregates and complexes.

func (r *Reader) aggregate(el dialect.Element, def *crs.CRS) (geometry.Geometry, error) {
	id, err := r.readID()
	if err != nil {
		return nil, err
	}
	srs := r.activeCRS(def)
	props, err := r.readStandardProperties()
	if err != nil {
		return nil, err
	}
	base := geometry.Base{GID: id, SRS: srs}
	var g geometry.Geometry
	switch el.Base {
	case "MultiPoint":
		members, err := readMembers(r, "pointMember", "pointMembers", geometry.KindPoint, func() (geometry.PointGeometry, error) {
			p, err := r.readPoint(srs)
			if err != nil {
				return nil, err
			}
			return p, nil
		})
		if err != nil {
			return nil, err
		}
		g = &geometry.MultiPoint{Base: base, Members: members}
	case "MultiCurve":
		members, err := readMembers(r, "curveMember", "curveMembers", geometry.KindCurve, func() (geometry.CurveGeometry, error) {
			return r.readCurve(srs)
		})
		if err != nil {
			return nil, err
		}
		g = &geometry.MultiCurve{Base: base, Members: members}
	case "MultiLineString":
		members, err := readMembers(r, "lineStringMember", "", geometry.KindLineString, func() (geometry.CurveGeometry, error) {
			return r.readLineString(srs)
		})
		if err != nil {
			return nil, err
		}
		g = &geometry.MultiLineString{Base: base, Members: members}
	case "MultiSurface":
		members, err := readMembers(r, "surfaceMember", "surfaceMembers", geometry.KindSurface, func() (geometry.SurfaceGeometry, error) {
			return r.readSurface(srs)
		})
		if err != nil {
			return nil, err
		}
		g = &geometry.MultiSurface{Base: base, Members: members}
	case "MultiPolygon":
		members, err := readMembers(r, "polygonMember", "", geometry.KindPolygon, func() (geometry.SurfaceGeometry, error) {
			return r.readPolygon(srs)
		})
		if err != nil {
			return nil, err
		}
		g = &geometry.MultiPolygon{Base: base, Members: members}
	case "MultiSolid":
		members, err := readMembers(r, "solidMember", "solidMembers", geometry.KindSolid, func() (geometry.SolidGeometry, error) {
			return r.readSolid(srs)
		})
		if err != nil {
			return nil, err
		}
		g = &geometry.MultiSolid{Base: base, Members: members}
	default:
		members, err := readMembers(r, "geometryMember", "geometryMembers", geometry.KindGeometry, func() (geometry.Geometry, error) {
			return r.readMember(srs)
		})
		if err != nil {
			return nil, err
		}
		g = &geometry.MultiGeometry{Base: base, Members: members}
	}
	return g, r.finish(g, el, props)
}

func (r *Reader) complex(el dialect.Element, def *crs.CRS) (*geometry.GeometricComplex, error) {
	id, err := r.readID()
	if err != nil {
		return nil, err
	}
	srs := r.activeCRS(def)
	props, err := r.readStandardProperties()
	if err != nil {
		return nil, err
	}
	gc := &geometry.GeometricComplex{Base: geometry.Base{GID: id, SRS: srs}}
	for r.isGML("element") {
		m, err := property(r, geometry.KindGeometricPrimitive, func() (geometry.Primitive, error) {
			return r.readPrimitive(srs)
		})
		if err != nil {
			return nil, err
		}
		gc.Members = append(gc.Members, m)
		if err := r.next(); err != nil {
			return nil, err
		}
	}
	if len(gc.Members) == 0 {
		return nil, r.invalid(geometry.KindGeometricComplex, id, "at least one element required")
	}
	return gc, r.finish(gc, el, props)
}

// envelope reads a GML 3 Envelope. Envelopes carry no id and are not
// registered.
func (r *Reader) envelope(el dialect.Element, def *crs.CRS) (*geometry.Envelope, error) {
	_, explicit := r.c.Attr("", "srsName")
	srs := r.activeCRS(def)
	if err := r.next(); err != nil {
		return nil, err
	}
	var lower, upper *geometry.Point
	var err error
	switch {
	case r.isGML("lowerCorner"):
		if lower, err = r.readPos(srs); err != nil {
			return nil, err
		}
		if err := r.next(); err != nil {
			return nil, err
		}
		if err := r.requireStart("upperCorner"); err != nil {
			return nil, err
		}
		if upper, err = r.readPos(srs); err != nil {
			return nil, err
		}
		if err := r.next(); err != nil {
			return nil, err
		}
	case r.isGML("pos", "coord"):
		points, err := r.readControlPoints(srs)
		if err != nil {
			return nil, err
		}
		if len(points) != 2 {
			return nil, r.c.Errorf("envelope requires exactly 2 positions, found %d", len(points))
		}
		lower, upper = points[0], points[1]
	case r.isGML("coordinates"):
		points, err := r.readCoordinates(srs)
		if err != nil {
			return nil, err
		}
		if len(points) != 2 {
			return nil, r.c.Errorf("envelope coordinates must hold exactly 2 tuples, found %d", len(points))
		}
		lower, upper = points[0], points[1]
		if err := r.next(); err != nil {
			return nil, err
		}
	default:
		return nil, r.c.Errorf("expected 'gml:lowerCorner', 'gml:pos', 'gml:coord' or 'gml:coordinates' in '%s'", el.Name.Local)
	}
	if err := r.requireEnd(el.Name); err != nil {
		return nil, err
	}
	if !explicit && lower.SRS != nil {
		srs = lower.SRS
	}
	env := geometry.NewEnvelope(srs, lower.Coords, upper.Coords)
	geometry.Attach(env, el.Name, nil)
	return env, nil
}
