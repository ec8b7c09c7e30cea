package writer

import (
	"strconv"

	"github.com/beetlebugorg/gml/internal/crs"
	"github.com/beetlebugorg/gml/internal/geometry"
)

// segment writes one curve segment. srs is the CRS of the enclosing curve.
func (w *gml3Writer) segment(s geometry.Segment, srs *crs.CRS) error {
	kind := s.SegmentKind()
	w.w.StartElement(w.ns, kind.String())
	if interp := kind.Interpolation(); interp != "" && kind != geometry.SegmentBSpline {
		w.w.Attr("", "interpolation", interp)
	}
	var err error
	switch v := s.(type) {
	case *geometry.Arc, *geometry.Circle, *geometry.ArcString,
		*geometry.Geodesic, *geometry.GeodesicString, *geometry.LineStringSegment:
		err = w.controlPoints(s.ControlPoints(), srs)
	case *geometry.ArcByBulge:
		if err = w.controlPoints(v.Points, srs); err == nil {
			w.floatElement("bulge", v.Bulge)
			w.vector("normal", v.Normal)
		}
	case *geometry.ArcStringByBulge:
		if err = w.controlPoints(v.Points, srs); err == nil {
			for _, b := range v.Bulges {
				w.floatElement("bulge", b)
			}
			for _, n := range v.Normals {
				w.vector("normal", n)
			}
		}
	case *geometry.ArcByCenterPoint:
		err = w.centerPoint(v.Center, v.Radius, v.StartAngle, v.EndAngle, srs)
	case *geometry.CircleByCenterPoint:
		err = w.centerPoint(v.Center, v.Radius, v.StartAngle, v.EndAngle, srs)
	case *geometry.Bezier:
		err = w.spline(v.Points, v.Degree, v.Knots, srs)
	case *geometry.BSpline:
		err = w.bspline(v, srs)
	case *geometry.CubicSpline:
		if err = w.controlPoints(v.Points, srs); err == nil {
			w.vector("vectorAtStart", v.VectorAtStart)
			w.vector("vectorAtEnd", v.VectorAtEnd)
		}
	case *geometry.Clothoid:
		err = w.clothoid(v, srs)
	case *geometry.OffsetCurve:
		if err = w.property("offsetBase", v.BaseCurve, w.inline); err == nil {
			w.measure("distance", v.Distance)
			if len(v.RefDirection) > 0 {
				w.vector("refDirection", v.RefDirection)
			}
		}
	default:
		return &geometry.ErrUnsupportedGeometry{Kind: geometry.KindCurve, Version: w.version.String(), Reason: "unknown segment " + kind.String()}
	}
	if err != nil {
		return err
	}
	w.w.EndElement()
	return nil
}

func (w *gml3Writer) centerPoint(center *geometry.Point, radius geometry.Measure, start, end *geometry.Measure, srs *crs.CRS) error {
	w.w.Attr("", "numArc", "1")
	if err := w.controlPoints([]*geometry.Point{center}, srs); err != nil {
		return err
	}
	w.measure("radius", radius)
	if start != nil {
		w.measure("startAngle", *start)
	}
	if end != nil {
		w.measure("endAngle", *end)
	}
	return nil
}

func (w *gml3Writer) bspline(s *geometry.BSpline, srs *crs.CRS) error {
	if s.Polynomial {
		w.w.Attr("", "interpolation", "polynomialSpline")
	} else {
		w.w.Attr("", "interpolation", "rationalSpline")
	}
	if s.KnotType != "" {
		w.w.Attr("", "knotType", s.KnotType)
	}
	return w.spline(s.Points, s.Degree, s.Knots, srs)
}

func (w *gml3Writer) spline(points []*geometry.Point, degree int, knots []geometry.Knot, srs *crs.CRS) error {
	if err := w.controlPoints(points, srs); err != nil {
		return err
	}
	w.intElement("degree", degree)
	for _, k := range knots {
		w.w.StartElement(w.ns, "knot")
		w.w.StartElement(w.ns, "Knot")
		w.floatElement("value", k.Value)
		w.textElement("multiplicity", strconv.Itoa(k.Multiplicity))
		w.floatElement("weight", k.Weight)
		w.w.EndElement()
		w.w.EndElement()
	}
	return nil
}

func (w *gml3Writer) clothoid(c *geometry.Clothoid, srs *crs.CRS) error {
	ap := c.RefLocation
	if ap.Location == nil {
		return &geometry.ErrInvalidGeometry{Kind: geometry.KindCurve, Reason: "clothoid without reference location"}
	}
	w.w.StartElement(w.ns, "refLocation")
	w.w.StartElement(w.ns, "AffinePlacement")
	if err := w.pos("location", ap.Location, srs); err != nil {
		return err
	}
	for _, d := range ap.RefDirections {
		w.vector("refDirection", d)
	}
	w.intElement("inDimension", ap.InDimension)
	w.intElement("outDimension", ap.OutDimension)
	w.w.EndElement()
	w.w.EndElement()
	w.floatElement("scaleFactor", c.ScaleFactor)
	w.floatElement("startParameter", c.StartParameter)
	w.floatElement("endParameter", c.EndParameter)
	return nil
}
