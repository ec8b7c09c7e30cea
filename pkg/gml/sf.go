package gml

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkt"

	"github.com/beetlebugorg/gml/internal/geometry"
)

// ToSimpleFeatures converts g to the simple-features model of go-geom.
//
// Curves of any kind are linearized through their control points, so arcs
// and splines lose their interpolation. Surfaces become polygons or
// multipolygons of their planar patches, envelopes become rectangles and
// heterogeneous aggregates become geometry collections. Solids, Tins and
// gridded patches have no simple-features equivalent and fail with
// ErrUnsupportedGeometry.
//
// The SRID is set from the EPSG code of the geometry's CRS, when known.
func ToSimpleFeatures(g Geometry) (geom.T, error) {
	if g == nil {
		return nil, &geometry.ErrInvalidGeometry{Reason: "geometry is nil"}
	}
	c := sfConverter{layout: layoutOf(g)}
	t, err := c.convert(g)
	if err != nil {
		return nil, err
	}
	if srid := SRID(g.CRS()); srid != 0 {
		return geom.SetSRID(t, srid)
	}
	return t, nil
}

// MarshalWKT returns the well-known text of g's simple-features form.
func MarshalWKT(g Geometry) (string, error) {
	t, err := ToSimpleFeatures(g)
	if err != nil {
		return "", err
	}
	s, err := wkt.Marshal(t)
	if err != nil {
		return "", errors.Wrap(err, "marshal WKT")
	}
	return s, nil
}

// SRID returns the numeric EPSG code of c, 4326 for CRS:84 and 0 when the
// system has no EPSG code.
func SRID(c *CRS) int {
	code := c.Code()
	if code == "CRS:84" {
		return 4326
	}
	if !strings.HasPrefix(code, "EPSG:") {
		return 0
	}
	srid, err := strconv.Atoi(strings.TrimPrefix(code, "EPSG:"))
	if err != nil {
		return 0
	}
	return srid
}

func layoutOf(g Geometry) geom.Layout {
	switch geometry.Dimension(geometry.ControlPoints(g)) {
	case 3:
		return geom.XYZ
	case 4:
		return geom.XYZM
	}
	return geom.XY
}

type sfConverter struct {
	layout geom.Layout
}

func unsupported(g Geometry, reason string) error {
	return &geometry.ErrUnsupportedGeometry{Kind: g.Kind(), Reason: reason}
}

func (c sfConverter) convert(g Geometry) (geom.T, error) {
	switch v := geometry.Deref(g).(type) {
	case *geometry.Reference:
		return nil, &geometry.ErrUnresolvedReference{Href: v.Href}
	case *geometry.Point:
		if v.Ref != nil {
			return nil, &geometry.ErrUnresolvedReference{Href: v.Ref.Href}
		}
		return geom.NewPointFlat(c.layout, c.flat([]*geometry.Point{v})), nil
	case *geometry.LineString, *geometry.LinearRing, *geometry.Curve,
		*geometry.OrientableCurve, *geometry.CompositeCurve, *geometry.Ring:
		return c.lineString(v)
	case *geometry.Polygon:
		return c.polygon(v.Exterior, v.Interiors)
	case *geometry.Envelope:
		return c.envelope(v)
	case *geometry.OrientableSurface:
		return c.convert(v.BaseSurface)
	case *geometry.Surface, *geometry.PolyhedralSurface, *geometry.TriangulatedSurface,
		*geometry.CompositeSurface:
		polys, err := c.polygons(v)
		if err != nil {
			return nil, err
		}
		if len(polys) == 1 && v.Kind() == geometry.KindSurface {
			return polys[0], nil
		}
		return c.multiPolygon(polys)
	case *geometry.MultiPoint:
		mp := geom.NewMultiPoint(c.layout)
		for _, m := range v.Members {
			t, err := c.convert(m)
			if err != nil {
				return nil, err
			}
			if err := mp.Push(t.(*geom.Point)); err != nil {
				return nil, errors.Wrap(err, "build multipoint")
			}
		}
		return mp, nil
	case *geometry.MultiCurve:
		return c.multiLineString(v.Members)
	case *geometry.MultiLineString:
		return c.multiLineString(v.Members)
	case *geometry.MultiSurface, *geometry.MultiPolygon:
		var polys []*geom.Polygon
		for _, m := range geometry.Members(v) {
			ps, err := c.polygons(m)
			if err != nil {
				return nil, err
			}
			polys = append(polys, ps...)
		}
		return c.multiPolygon(polys)
	case *geometry.MultiGeometry, *geometry.GeometricComplex:
		gc := geom.NewGeometryCollection()
		for _, m := range geometry.Members(v) {
			t, err := c.convert(m)
			if err != nil {
				return nil, err
			}
			if err := gc.Push(t); err != nil {
				return nil, errors.Wrap(err, "build geometry collection")
			}
		}
		return gc, nil
	}
	return nil, unsupported(g, "no simple-features equivalent")
}

// flat returns the ordinates of points padded or cut to the layout stride.
func (c sfConverter) flat(points []*geometry.Point) []float64 {
	stride := c.layout.Stride()
	out := make([]float64, 0, stride*len(points))
	for _, p := range points {
		for i := 0; i < stride; i++ {
			if i < len(p.Coords) {
				out = append(out, p.Coords[i])
			} else {
				out = append(out, 0)
			}
		}
	}
	return out
}

func (c sfConverter) path(curve Geometry) ([]*geometry.Point, error) {
	points := geometry.CurvePoints(curve)
	if len(points) == 0 {
		return nil, &geometry.ErrInvalidGeometry{Kind: curve.Kind(), ID: curve.ID(), Reason: "curve has no resolved positions"}
	}
	for _, p := range points {
		if p.Ref != nil {
			return nil, &geometry.ErrUnresolvedReference{Href: p.Ref.Href}
		}
	}
	return points, nil
}

func (c sfConverter) lineString(curve Geometry) (*geom.LineString, error) {
	points, err := c.path(curve)
	if err != nil {
		return nil, err
	}
	return geom.NewLineStringFlat(c.layout, c.flat(points)), nil
}

func (c sfConverter) multiLineString(members []geometry.CurveGeometry) (*geom.MultiLineString, error) {
	mls := geom.NewMultiLineString(c.layout)
	for _, m := range members {
		ls, err := c.lineString(m)
		if err != nil {
			return nil, err
		}
		if err := mls.Push(ls); err != nil {
			return nil, errors.Wrap(err, "build multilinestring")
		}
	}
	return mls, nil
}

func (c sfConverter) polygon(exterior geometry.RingGeometry, interiors []geometry.RingGeometry) (*geom.Polygon, error) {
	if exterior == nil {
		return geom.NewPolygon(c.layout), nil
	}
	var flat []float64
	var ends []int
	for _, ring := range append([]geometry.RingGeometry{exterior}, interiors...) {
		points, err := c.path(ring)
		if err != nil {
			return nil, err
		}
		flat = append(flat, c.flat(points)...)
		ends = append(ends, len(flat))
	}
	return geom.NewPolygonFlat(c.layout, flat, ends), nil
}

// polygons returns the planar pieces of a surface.
func (c sfConverter) polygons(g Geometry) ([]*geom.Polygon, error) {
	switch v := geometry.Deref(g).(type) {
	case *geometry.Polygon:
		p, err := c.polygon(v.Exterior, v.Interiors)
		if err != nil {
			return nil, err
		}
		return []*geom.Polygon{p}, nil
	case *geometry.OrientableSurface:
		return c.polygons(v.BaseSurface)
	case *geometry.Surface:
		return c.patches(v, v.Patches)
	case *geometry.PolyhedralSurface:
		patches := make([]geometry.Patch, len(v.Patches))
		for i, p := range v.Patches {
			patches[i] = p
		}
		return c.patches(v, patches)
	case *geometry.TriangulatedSurface:
		patches := make([]geometry.Patch, len(v.Patches))
		for i, p := range v.Patches {
			patches[i] = p
		}
		return c.patches(v, patches)
	case *geometry.CompositeSurface:
		var out []*geom.Polygon
		for _, m := range v.Members {
			ps, err := c.polygons(m)
			if err != nil {
				return nil, err
			}
			out = append(out, ps...)
		}
		return out, nil
	case *geometry.Reference:
		return nil, &geometry.ErrUnresolvedReference{Href: v.Href}
	}
	return nil, unsupported(g, "no simple-features equivalent")
}

func (c sfConverter) patches(owner Geometry, patches []geometry.Patch) ([]*geom.Polygon, error) {
	out := make([]*geom.Polygon, 0, len(patches))
	for _, p := range patches {
		if _, ok := geometry.Gridded(p); ok {
			return nil, unsupported(owner, "gridded patches have no simple-features equivalent")
		}
		exterior, interiors := geometry.PatchRings(p)
		poly, err := c.polygon(exterior, interiors)
		if err != nil {
			return nil, err
		}
		out = append(out, poly)
	}
	return out, nil
}

func (c sfConverter) multiPolygon(polys []*geom.Polygon) (*geom.MultiPolygon, error) {
	mp := geom.NewMultiPolygon(c.layout)
	for _, p := range polys {
		if err := mp.Push(p); err != nil {
			return nil, errors.Wrap(err, "build multipolygon")
		}
	}
	return mp, nil
}

// envelope returns the rectangle spanned by the first two axes of env.
func (c sfConverter) envelope(env *geometry.Envelope) (*geom.Polygon, error) {
	if len(env.Min) < 2 || len(env.Max) < 2 {
		return nil, &geometry.ErrInvalidGeometry{Kind: geometry.KindEnvelope, Reason: "envelope needs at least two axes"}
	}
	x0, y0, x1, y1 := env.Min[0], env.Min[1], env.Max[0], env.Max[1]
	return geom.NewPolygonFlat(geom.XY, []float64{x0, y0, x1, y0, x1, y1, x0, y1, x0, y0}, []int{10}), nil
}
