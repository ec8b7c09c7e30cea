package parser

import (
	"github.com/beetlebugorg/gml/internal/crs"
	"github.com/beetlebugorg/gml/internal/dialect"
	"github.com/beetlebugorg/gml/internal/geometry"
)

// readGML2 dispatches a classified GML 2.1 element. GML 2 knows only simple
// features: coordinates are given as coord or coordinates, aggregates only
// through singular member properties.
func (r *Reader) readGML2(el dialect.Element, def *crs.CRS) (geometry.Geometry, error) {
	switch el.Base {
	case "Point":
		return r.point2(el, def)
	case "LineString":
		return r.lineString2(el, def)
	case "LinearRing":
		return r.linearRing2(el, def)
	case "Polygon":
		return r.polygon2(el, def)
	case "Box":
		return r.box(el, def)
	default:
		return r.aggregate2(el, def)
	}
}

func (r *Reader) point2(el dialect.Element, def *crs.CRS) (*geometry.Point, error) {
	id, err := r.readID()
	if err != nil {
		return nil, err
	}
	srs := r.activeCRS(def)
	props, err := r.readStandardProperties()
	if err != nil {
		return nil, err
	}
	points, err := r.readTuples(srs)
	if err != nil {
		return nil, err
	}
	if len(points) != 1 {
		return nil, r.c.Errorf("'%s' requires exactly one coordinate tuple, found %d", el.Name.Local, len(points))
	}
	p := geometry.NewPoint(id, srs, points[0].Coords...)
	return p, r.finish(p, el, props)
}

func (r *Reader) lineString2(el dialect.Element, def *crs.CRS) (*geometry.LineString, error) {
	id, err := r.readID()
	if err != nil {
		return nil, err
	}
	srs := r.activeCRS(def)
	props, err := r.readStandardProperties()
	if err != nil {
		return nil, err
	}
	points, err := r.readTuples(srs)
	if err != nil {
		return nil, err
	}
	if len(points) < 2 {
		return nil, r.invalid(geometry.KindLineString, id, "at least 2 control points required, found %d", len(points))
	}
	ls := geometry.NewLineString(id, srs, points)
	return ls, r.finish(ls, el, props)
}

func (r *Reader) linearRing2(el dialect.Element, def *crs.CRS) (*geometry.LinearRing, error) {
	id, err := r.readID()
	if err != nil {
		return nil, err
	}
	srs := r.activeCRS(def)
	props, err := r.readStandardProperties()
	if err != nil {
		return nil, err
	}
	points, err := r.readTuples(srs)
	if err != nil {
		return nil, err
	}
	if len(points) < 4 {
		return nil, r.invalid(geometry.KindLinearRing, id, "at least 4 control points required, found %d", len(points))
	}
	lr := geometry.NewLinearRing(id, srs, points)
	return lr, r.finish(lr, el, props)
}

func (r *Reader) polygon2(el dialect.Element, def *crs.CRS) (*geometry.Polygon, error) {
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
	if r.isGML("outerBoundaryIs") {
		if exterior, err = r.readRingProperty(srs); err != nil {
			return nil, err
		}
		if err := r.next(); err != nil {
			return nil, err
		}
	}
	var interiors []geometry.RingGeometry
	for r.isGML("innerBoundaryIs") {
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

// box reads a GML 2 Box: exactly two tuples. Like an envelope it is not
// registered.
func (r *Reader) box(el dialect.Element, def *crs.CRS) (*geometry.Envelope, error) {
	srs := r.activeCRS(def)
	if err := r.next(); err != nil {
		return nil, err
	}
	points, err := r.readTuples(srs)
	if err != nil {
		return nil, err
	}
	if len(points) != 2 {
		return nil, r.c.Errorf("'%s' requires exactly 2 coordinate tuples, found %d", el.Name.Local, len(points))
	}
	if err := r.requireEnd(el.Name); err != nil {
		return nil, err
	}
	env := geometry.NewEnvelope(srs, points[0].Coords, points[1].Coords)
	geometry.Attach(env, el.Name, nil)
	return env, nil
}

func (r *Reader) aggregate2(el dialect.Element, def *crs.CRS) (geometry.Geometry, error) {
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
		members, err := readMembers(r, "pointMember", "", geometry.KindPoint, func() (geometry.PointGeometry, error) {
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
	case "MultiLineString":
		members, err := readMembers(r, "lineStringMember", "", geometry.KindLineString, func() (geometry.CurveGeometry, error) {
			return r.readLineString(srs)
		})
		if err != nil {
			return nil, err
		}
		g = &geometry.MultiLineString{Base: base, Members: members}
	case "MultiPolygon":
		members, err := readMembers(r, "polygonMember", "", geometry.KindPolygon, func() (geometry.SurfaceGeometry, error) {
			return r.readPolygon(srs)
		})
		if err != nil {
			return nil, err
		}
		g = &geometry.MultiPolygon{Base: base, Members: members}
	default:
		members, err := readMembers(r, "geometryMember", "", geometry.KindGeometry, func() (geometry.Geometry, error) {
			return r.readMember(srs)
		})
		if err != nil {
			return nil, err
		}
		g = &geometry.MultiGeometry{Base: base, Members: members}
	}
	return g, r.finish(g, el, props)
}
