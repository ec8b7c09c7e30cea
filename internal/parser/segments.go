package parser

import (
	"strconv"

	"github.com/beetlebugorg/gml/internal/crs"
	"github.com/beetlebugorg/gml/internal/geometry"
)

// readSegment reads the curve segment the cursor is positioned on (GML 3.1.1
// clause 10.4). srs is the CRS of the enclosing curve.
func (r *Reader) readSegment(srs *crs.CRS) (geometry.Segment, error) {
	if r.c.Namespace() != r.ns {
		return nil, r.c.Errorf("expected a curve segment, found '%s'", r.c.LocalName())
	}
	switch name := r.c.LocalName(); name {
	case "Arc":
		points, err := r.segmentPoints(srs, geometry.SegmentArc, exactly(3))
		if err != nil {
			return nil, err
		}
		return &geometry.Arc{Points: points}, nil
	case "Circle":
		points, err := r.segmentPoints(srs, geometry.SegmentCircle, exactly(3))
		if err != nil {
			return nil, err
		}
		return &geometry.Circle{Points: points}, nil
	case "ArcString":
		points, err := r.segmentPoints(srs, geometry.SegmentArcString, oddAtLeast(3))
		if err != nil {
			return nil, err
		}
		return &geometry.ArcString{Points: points}, nil
	case "Geodesic":
		points, err := r.segmentPoints(srs, geometry.SegmentGeodesic, exactly(2))
		if err != nil {
			return nil, err
		}
		return &geometry.Geodesic{Points: points}, nil
	case "GeodesicString":
		points, err := r.segmentPoints(srs, geometry.SegmentGeodesicString, atLeast(2))
		if err != nil {
			return nil, err
		}
		return &geometry.GeodesicString{Points: points}, nil
	case "LineStringSegment":
		points, err := r.segmentPoints(srs, geometry.SegmentLineStringSegment, atLeast(2))
		if err != nil {
			return nil, err
		}
		return &geometry.LineStringSegment{Points: points}, nil
	case "ArcByBulge":
		return r.readArcByBulge(srs)
	case "ArcStringByBulge":
		return r.readArcStringByBulge(srs)
	case "ArcByCenterPoint":
		center, radius, start, end, err := r.readCenterPointArc(srs, geometry.SegmentArcByCenterPoint)
		if err != nil {
			return nil, err
		}
		return &geometry.ArcByCenterPoint{Center: center, Radius: radius, StartAngle: start, EndAngle: end}, nil
	case "CircleByCenterPoint":
		center, radius, start, end, err := r.readCenterPointArc(srs, geometry.SegmentCircleByCenterPoint)
		if err != nil {
			return nil, err
		}
		if start != nil && end != nil && start.Value != end.Value {
			return nil, r.c.Errorf("CircleByCenterPoint start angle %v and end angle %v differ", start.Value, end.Value)
		}
		return &geometry.CircleByCenterPoint{Center: center, Radius: radius, StartAngle: start, EndAngle: end}, nil
	case "Bezier":
		return r.readBezier(srs)
	case "BSpline":
		return r.readBSpline(srs)
	case "CubicSpline":
		return r.readCubicSpline(srs)
	case "Clothoid":
		return r.readClothoid(srs)
	case "OffsetCurve":
		return r.readOffsetCurve(srs)
	default:
		return nil, r.c.Errorf("unknown curve segment 'gml:%s'", name)
	}
}

// arity checks a control point count and describes the requirement.
type arity struct {
	ok   func(int) bool
	desc string
}

func exactly(n int) arity {
	return arity{func(c int) bool { return c == n }, "exactly " + strconv.Itoa(n)}
}

func atLeast(n int) arity {
	return arity{func(c int) bool { return c >= n }, "at least " + strconv.Itoa(n)}
}

func oddAtLeast(n int) arity {
	return arity{func(c int) bool { return c >= n && c%2 == 1 }, "an odd number (at least " + strconv.Itoa(n) + ") of"}
}

// startSegment validates the interpolation attribute of the current segment
// and moves to its first child.
func (r *Reader) startSegment(kind geometry.SegmentKind, allowed ...string) error {
	if len(allowed) == 0 {
		allowed = []string{kind.Interpolation()}
	}
	if _, err := r.checkAttr("interpolation", allowed...); err != nil {
		return err
	}
	return r.next()
}

// controlPoints reads the control points of a segment and checks their
// number.
func (r *Reader) controlPoints(srs *crs.CRS, kind geometry.SegmentKind, want arity) ([]*geometry.Point, error) {
	points, err := r.readControlPoints(srs)
	if err != nil {
		return nil, err
	}
	if !want.ok(len(points)) {
		return nil, r.c.Errorf("%s requires %s control points, found %d", kind, want.desc, len(points))
	}
	return points, nil
}

// segmentPoints reads a segment made of control points only.
func (r *Reader) segmentPoints(srs *crs.CRS, kind geometry.SegmentKind, want arity) ([]*geometry.Point, error) {
	name := r.c.Name()
	if err := r.startSegment(kind); err != nil {
		return nil, err
	}
	points, err := r.controlPoints(srs, kind, want)
	if err != nil {
		return nil, err
	}
	return points, r.requireEnd(name)
}

func (r *Reader) readArcByBulge(srs *crs.CRS) (*geometry.ArcByBulge, error) {
	name := r.c.Name()
	if err := r.startSegment(geometry.SegmentArcByBulge); err != nil {
		return nil, err
	}
	points, err := r.controlPoints(srs, geometry.SegmentArcByBulge, exactly(2))
	if err != nil {
		return nil, err
	}
	bulge, err := r.c.FloatElement(r.ns, "bulge")
	if err != nil {
		return nil, err
	}
	if err := r.next(); err != nil {
		return nil, err
	}
	normal, err := r.readVector("normal")
	if err != nil {
		return nil, err
	}
	if err := r.next(); err != nil {
		return nil, err
	}
	return &geometry.ArcByBulge{Points: points, Bulge: bulge, Normal: normal}, r.requireEnd(name)
}

func (r *Reader) readArcStringByBulge(srs *crs.CRS) (*geometry.ArcStringByBulge, error) {
	name := r.c.Name()
	if err := r.startSegment(geometry.SegmentArcStringByBulge); err != nil {
		return nil, err
	}
	points, err := r.controlPoints(srs, geometry.SegmentArcStringByBulge, atLeast(2))
	if err != nil {
		return nil, err
	}
	seg := &geometry.ArcStringByBulge{Points: points}
	for r.isGML("bulge") {
		v, err := r.c.ElementTextAsFloat()
		if err != nil {
			return nil, err
		}
		seg.Bulges = append(seg.Bulges, v)
		if err := r.next(); err != nil {
			return nil, err
		}
	}
	for r.isGML("normal") {
		v, err := r.readVector("normal")
		if err != nil {
			return nil, err
		}
		seg.Normals = append(seg.Normals, v)
		if err := r.next(); err != nil {
			return nil, err
		}
	}
	if len(seg.Bulges) != len(points)-1 || len(seg.Normals) != len(points)-1 {
		return nil, r.c.Errorf("ArcStringByBulge with %d control points requires %d bulges and normals, found %d and %d",
			len(points), len(points)-1, len(seg.Bulges), len(seg.Normals))
	}
	return seg, r.requireEnd(name)
}

func (r *Reader) readCenterPointArc(srs *crs.CRS, kind geometry.SegmentKind) (*geometry.Point, geometry.Measure, *geometry.Measure, *geometry.Measure, error) {
	var radius geometry.Measure
	name := r.c.Name()
	if err := r.startSegment(kind); err != nil {
		return nil, radius, nil, nil, err
	}
	points, err := r.controlPoints(srs, kind, exactly(1))
	if err != nil {
		return nil, radius, nil, nil, err
	}
	if radius, err = r.readMeasure("radius"); err != nil {
		return nil, radius, nil, nil, err
	}
	if err := r.next(); err != nil {
		return nil, radius, nil, nil, err
	}
	var angles [2]*geometry.Measure
	for i, local := range []string{"startAngle", "endAngle"} {
		if !r.isGML(local) {
			continue
		}
		m, err := r.readMeasure(local)
		if err != nil {
			return nil, radius, nil, nil, err
		}
		angles[i] = &m
		if err := r.next(); err != nil {
			return nil, radius, nil, nil, err
		}
	}
	return points[0], radius, angles[0], angles[1], r.requireEnd(name)
}

// readSpline reads the content shared by Bezier and BSpline: control
// points, degree and knots.
func (r *Reader) readSpline(srs *crs.CRS) ([]*geometry.Point, int, []geometry.Knot, error) {
	points, err := r.readControlPoints(srs)
	if err != nil {
		return nil, 0, nil, err
	}
	degree, err := r.c.PositiveIntElement(r.ns, "degree")
	if err != nil {
		return nil, 0, nil, err
	}
	if err := r.next(); err != nil {
		return nil, 0, nil, err
	}
	var knots []geometry.Knot
	for r.isGML("knot") {
		k, err := r.readKnot()
		if err != nil {
			return nil, 0, nil, err
		}
		knots = append(knots, k)
		if err := r.next(); err != nil {
			return nil, 0, nil, err
		}
	}
	return points, degree, knots, nil
}

// readKnot reads a knot property holding a Knot element.
func (r *Reader) readKnot() (geometry.Knot, error) {
	var k geometry.Knot
	if err := r.next(); err != nil {
		return k, err
	}
	if err := r.requireStart("Knot"); err != nil {
		return k, err
	}
	if err := r.next(); err != nil {
		return k, err
	}
	var err error
	if k.Value, err = r.c.FloatElement(r.ns, "value"); err != nil {
		return k, err
	}
	if err := r.next(); err != nil {
		return k, err
	}
	if k.Multiplicity, err = r.c.PositiveIntElement(r.ns, "multiplicity"); err != nil {
		return k, err
	}
	if err := r.next(); err != nil {
		return k, err
	}
	if k.Weight, err = r.c.FloatElement(r.ns, "weight"); err != nil {
		return k, err
	}
	if err := r.next(); err != nil {
		return k, err
	}
	if err := r.requireEnd(r.name("Knot")); err != nil {
		return k, err
	}
	if err := r.next(); err != nil {
		return k, err
	}
	return k, r.requireEnd(r.name("knot"))
}

func (r *Reader) readBezier(srs *crs.CRS) (*geometry.Bezier, error) {
	name := r.c.Name()
	if err := r.startSegment(geometry.SegmentBezier); err != nil {
		return nil, err
	}
	points, degree, knots, err := r.readSpline(srs)
	if err != nil {
		return nil, err
	}
	if len(knots) != 2 {
		return nil, r.c.Errorf("Bezier requires exactly 2 knots, found %d", len(knots))
	}
	return &geometry.Bezier{Points: points, Degree: degree, Knots: knots}, r.requireEnd(name)
}

func (r *Reader) readBSpline(srs *crs.CRS) (*geometry.BSpline, error) {
	name := r.c.Name()
	interpolation, err := r.checkAttr("interpolation", "polynomialSpline", "rationalSpline")
	if err != nil {
		return nil, err
	}
	knotType := r.c.AttrDefault("", "knotType", "")
	if err := r.next(); err != nil {
		return nil, err
	}
	points, degree, knots, err := r.readSpline(srs)
	if err != nil {
		return nil, err
	}
	if len(knots) < 2 {
		return nil, r.c.Errorf("BSpline requires at least 2 knots, found %d", len(knots))
	}
	return &geometry.BSpline{
		Points:     points,
		Degree:     degree,
		Knots:      knots,
		Polynomial: interpolation != "rationalSpline",
		KnotType:   knotType,
	}, r.requireEnd(name)
}

func (r *Reader) readCubicSpline(srs *crs.CRS) (*geometry.CubicSpline, error) {
	name := r.c.Name()
	if err := r.startSegment(geometry.SegmentCubicSpline); err != nil {
		return nil, err
	}
	points, err := r.controlPoints(srs, geometry.SegmentCubicSpline, atLeast(2))
	if err != nil {
		return nil, err
	}
	seg := &geometry.CubicSpline{Points: points}
	if seg.VectorAtStart, err = r.readVector("vectorAtStart"); err != nil {
		return nil, err
	}
	if err := r.next(); err != nil {
		return nil, err
	}
	if seg.VectorAtEnd, err = r.readVector("vectorAtEnd"); err != nil {
		return nil, err
	}
	if err := r.next(); err != nil {
		return nil, err
	}
	return seg, r.requireEnd(name)
}

func (r *Reader) readClothoid(srs *crs.CRS) (*geometry.Clothoid, error) {
	name := r.c.Name()
	if err := r.next(); err != nil {
		return nil, err
	}
	if err := r.requireStart("refLocation"); err != nil {
		return nil, err
	}
	if err := r.next(); err != nil {
		return nil, err
	}
	placement, err := r.readAffinePlacement(srs)
	if err != nil {
		return nil, err
	}
	if err := r.next(); err != nil {
		return nil, err
	}
	if err := r.requireEnd(r.name("refLocation")); err != nil {
		return nil, err
	}
	if err := r.next(); err != nil {
		return nil, err
	}
	seg := &geometry.Clothoid{RefLocation: placement}
	for _, f := range []struct {
		local string
		dst   *float64
	}{
		{"scaleFactor", &seg.ScaleFactor},
		{"startParameter", &seg.StartParameter},
		{"endParameter", &seg.EndParameter},
	} {
		v, err := r.c.FloatElement(r.ns, f.local)
		if err != nil {
			return nil, err
		}
		*f.dst = v
		if err := r.next(); err != nil {
			return nil, err
		}
	}
	return seg, r.requireEnd(name)
}

// readAffinePlacement reads an AffinePlacement element. inDimension must
// equal the number of refDirections and outDimension their dimension.
func (r *Reader) readAffinePlacement(srs *crs.CRS) (geometry.AffinePlacement, error) {
	var ap geometry.AffinePlacement
	if err := r.requireStart("AffinePlacement"); err != nil {
		return ap, err
	}
	if err := r.next(); err != nil {
		return ap, err
	}
	if err := r.requireStart("location"); err != nil {
		return ap, err
	}
	loc, err := r.readPos(srs)
	if err != nil {
		return ap, err
	}
	ap.Location = loc
	if err := r.next(); err != nil {
		return ap, err
	}
	for r.isGML("refDirection") {
		v, err := r.readVector("refDirection")
		if err != nil {
			return ap, err
		}
		if len(ap.RefDirections) > 0 && len(v) != len(ap.RefDirections[0]) {
			return ap, r.c.Errorf("refDirection has dimension %d, expected %d", len(v), len(ap.RefDirections[0]))
		}
		ap.RefDirections = append(ap.RefDirections, v)
		if err := r.next(); err != nil {
			return ap, err
		}
	}
	if len(ap.RefDirections) == 0 {
		return ap, r.c.Errorf("AffinePlacement requires at least one refDirection")
	}
	if ap.InDimension, err = r.c.PositiveIntElement(r.ns, "inDimension"); err != nil {
		return ap, err
	}
	if err := r.next(); err != nil {
		return ap, err
	}
	if ap.OutDimension, err = r.c.PositiveIntElement(r.ns, "outDimension"); err != nil {
		return ap, err
	}
	if err := r.next(); err != nil {
		return ap, err
	}
	if ap.InDimension != len(ap.RefDirections) {
		return ap, r.c.Errorf("inDimension %d does not match %d refDirections", ap.InDimension, len(ap.RefDirections))
	}
	if ap.OutDimension != len(ap.RefDirections[0]) {
		return ap, r.c.Errorf("outDimension %d does not match refDirection dimension %d", ap.OutDimension, len(ap.RefDirections[0]))
	}
	return ap, r.requireEnd(r.name("AffinePlacement"))
}

func (r *Reader) readOffsetCurve(srs *crs.CRS) (*geometry.OffsetCurve, error) {
	name := r.c.Name()
	if err := r.next(); err != nil {
		return nil, err
	}
	if err := r.requireStart("offsetBase"); err != nil {
		return nil, err
	}
	base, err := r.readCurveProperty(srs)
	if err != nil {
		return nil, err
	}
	if err := r.next(); err != nil {
		return nil, err
	}
	seg := &geometry.OffsetCurve{BaseCurve: base}
	if seg.Distance, err = r.readMeasure("distance"); err != nil {
		return nil, err
	}
	if err := r.next(); err != nil {
		return nil, err
	}
	if r.isGML("refDirection") {
		if seg.RefDirection, err = r.readVector("refDirection"); err != nil {
			return nil, err
		}
		if err := r.next(); err != nil {
			return nil, err
		}
	}
	return seg, r.requireEnd(name)
}
