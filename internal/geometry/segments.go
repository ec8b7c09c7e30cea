package geometry

// SegmentKind identifies a curve segment variant (ISO 19107 / GML 3.1.1
// clause 10.4).
type SegmentKind int

const (
	SegmentArc SegmentKind = iota + 1
	SegmentArcByBulge
	SegmentArcByCenterPoint
	SegmentArcString
	SegmentArcStringByBulge
	SegmentBezier
	SegmentBSpline
	SegmentCircle
	SegmentCircleByCenterPoint
	SegmentClothoid
	SegmentCubicSpline
	SegmentGeodesic
	SegmentGeodesicString
	SegmentLineStringSegment
	SegmentOffsetCurve
)

var segmentNames = map[SegmentKind]string{
	SegmentArc:                 "Arc",
	SegmentArcByBulge:          "ArcByBulge",
	SegmentArcByCenterPoint:    "ArcByCenterPoint",
	SegmentArcString:           "ArcString",
	SegmentArcStringByBulge:    "ArcStringByBulge",
	SegmentBezier:              "Bezier",
	SegmentBSpline:             "BSpline",
	SegmentCircle:              "Circle",
	SegmentCircleByCenterPoint: "CircleByCenterPoint",
	SegmentClothoid:            "Clothoid",
	SegmentCubicSpline:         "CubicSpline",
	SegmentGeodesic:            "Geodesic",
	SegmentGeodesicString:      "GeodesicString",
	SegmentLineStringSegment:   "LineStringSegment",
	SegmentOffsetCurve:         "OffsetCurve",
}

func (k SegmentKind) String() string {
	if s, ok := segmentNames[k]; ok {
		return s
	}
	return "UnknownSegment"
}

// Interpolation returns the value of the interpolation attribute fixed for
// segments of kind k, "" for kinds without one.
func (k SegmentKind) Interpolation() string {
	switch k {
	case SegmentArc, SegmentArcString, SegmentCircle:
		return "circularArc3Points"
	case SegmentArcByBulge, SegmentArcStringByBulge:
		return "circularArc2PointWithBulge"
	case SegmentArcByCenterPoint, SegmentCircleByCenterPoint:
		return "circularArcCenterPointWithRadius"
	case SegmentBezier, SegmentBSpline:
		return "polynomialSpline"
	case SegmentCubicSpline:
		return "cubicSpline"
	case SegmentGeodesic, SegmentGeodesicString:
		return "geodesic"
	case SegmentLineStringSegment:
		return "linear"
	}
	return ""
}

// Segment is one piece of a Curve.
type Segment interface {
	SegmentKind() SegmentKind
	// ControlPoints returns the positions defining the segment.
	ControlPoints() []*Point
}

// Measure is a value with a unit of measure.
type Measure struct {
	Value float64
	UOM   string
}

// Knot is a B-spline knot.
type Knot struct {
	Value        float64
	Multiplicity int
	Weight       float64
}

// Arc is a circular arc through three points.
type Arc struct{ Points []*Point }

func (*Arc) SegmentKind() SegmentKind  { return SegmentArc }
func (s *Arc) ControlPoints() []*Point { return s.Points }

// Circle is a full circle through three points.
type Circle struct{ Points []*Point }

func (*Circle) SegmentKind() SegmentKind  { return SegmentCircle }
func (s *Circle) ControlPoints() []*Point { return s.Points }

// ArcString is a sequence of arcs sharing end points; it has an odd number
// of at least three points.
type ArcString struct{ Points []*Point }

func (*ArcString) SegmentKind() SegmentKind  { return SegmentArcString }
func (s *ArcString) ControlPoints() []*Point { return s.Points }

// ArcByBulge is an arc between two points given by its bulge.
type ArcByBulge struct {
	Points []*Point
	Bulge  float64
	Normal []float64
}

func (*ArcByBulge) SegmentKind() SegmentKind  { return SegmentArcByBulge }
func (s *ArcByBulge) ControlPoints() []*Point { return s.Points }

// ArcStringByBulge is a sequence of bulge arcs; n points carry n-1 bulges
// and n-1 normals.
type ArcStringByBulge struct {
	Points  []*Point
	Bulges  []float64
	Normals [][]float64
}

func (*ArcStringByBulge) SegmentKind() SegmentKind  { return SegmentArcStringByBulge }
func (s *ArcStringByBulge) ControlPoints() []*Point { return s.Points }

// ArcByCenterPoint is an arc around a center point.
type ArcByCenterPoint struct {
	Center     *Point
	Radius     Measure
	StartAngle *Measure
	EndAngle   *Measure
}

func (*ArcByCenterPoint) SegmentKind() SegmentKind  { return SegmentArcByCenterPoint }
func (s *ArcByCenterPoint) ControlPoints() []*Point { return []*Point{s.Center} }

// CircleByCenterPoint is a full circle around a center point. Start and
// end angle, when both given, are equal.
type CircleByCenterPoint struct {
	Center     *Point
	Radius     Measure
	StartAngle *Measure
	EndAngle   *Measure
}

func (*CircleByCenterPoint) SegmentKind() SegmentKind  { return SegmentCircleByCenterPoint }
func (s *CircleByCenterPoint) ControlPoints() []*Point { return []*Point{s.Center} }

// Bezier is a polynomial spline with exactly two knots.
type Bezier struct {
	Points []*Point
	Degree int
	Knots  []Knot
}

func (*Bezier) SegmentKind() SegmentKind  { return SegmentBezier }
func (s *Bezier) ControlPoints() []*Point { return s.Points }

// BSpline is a polynomial or rational spline with at least two knots.
type BSpline struct {
	Points     []*Point
	Degree     int
	Knots      []Knot
	Polynomial bool
	KnotType   string
}

func (*BSpline) SegmentKind() SegmentKind  { return SegmentBSpline }
func (s *BSpline) ControlPoints() []*Point { return s.Points }

// CubicSpline is a cubic spline with tangent vectors at both ends.
type CubicSpline struct {
	Points        []*Point
	VectorAtStart []float64
	VectorAtEnd   []float64
}

func (*CubicSpline) SegmentKind() SegmentKind  { return SegmentCubicSpline }
func (s *CubicSpline) ControlPoints() []*Point { return s.Points }

// Geodesic is a geodesic between exactly two points.
type Geodesic struct{ Points []*Point }

func (*Geodesic) SegmentKind() SegmentKind  { return SegmentGeodesic }
func (s *Geodesic) ControlPoints() []*Point { return s.Points }

// GeodesicString is a chain of geodesics.
type GeodesicString struct{ Points []*Point }

func (*GeodesicString) SegmentKind() SegmentKind  { return SegmentGeodesicString }
func (s *GeodesicString) ControlPoints() []*Point { return s.Points }

// LineStringSegment is a linearly interpolated segment.
type LineStringSegment struct{ Points []*Point }

func (*LineStringSegment) SegmentKind() SegmentKind  { return SegmentLineStringSegment }
func (s *LineStringSegment) ControlPoints() []*Point { return s.Points }

// AffinePlacement positions a clothoid: Location is the origin, each
// RefDirection a target axis.
type AffinePlacement struct {
	Location      *Point
	RefDirections [][]float64
	InDimension   int
	OutDimension  int
}

// Clothoid is a spiral whose curvature changes linearly with arc length.
type Clothoid struct {
	RefLocation    AffinePlacement
	ScaleFactor    float64
	StartParameter float64
	EndParameter   float64
}

func (*Clothoid) SegmentKind() SegmentKind  { return SegmentClothoid }
func (s *Clothoid) ControlPoints() []*Point { return []*Point{s.RefLocation.Location} }

// OffsetCurve is a curve at constant distance from a base curve.
// RefDirection is nil when absent.
type OffsetCurve struct {
	BaseCurve    CurveGeometry
	Distance     Measure
	RefDirection []float64
}

func (*OffsetCurve) SegmentKind() SegmentKind  { return SegmentOffsetCurve }
func (s *OffsetCurve) ControlPoints() []*Point { return ControlPoints(s.BaseCurve) }
