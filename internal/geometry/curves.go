package geometry

// LineString is a curve with linear interpolation between its control
// points.
type LineString struct {
	Base
	Points []*Point
}

func (*LineString) Kind() Kind { return KindLineString }
func (*LineString) primitive() {}
func (*LineString) curve()     {}

// Curve is a curve composed of segments (gml:Curve).
type Curve struct {
	Base
	Segments []Segment
}

func (*Curve) Kind() Kind { return KindCurve }
func (*Curve) primitive() {}
func (*Curve) curve()     {}

// OrientableCurve is a curve with an orientation relative to its base
// curve.
type OrientableCurve struct {
	Base
	BaseCurve CurveGeometry
	Reversed  bool
}

func (*OrientableCurve) Kind() Kind { return KindOrientableCurve }
func (*OrientableCurve) primitive() {}
func (*OrientableCurve) curve()     {}

// CompositeCurve is a connected sequence of member curves.
type CompositeCurve struct {
	Base
	Members []CurveGeometry
}

func (*CompositeCurve) Kind() Kind { return KindCompositeCurve }
func (*CompositeCurve) primitive() {}
func (*CompositeCurve) curve()     {}

// LinearRing is a closed linear curve given by at least four control
// points.
type LinearRing struct {
	Base
	Points []*Point
}

func (*LinearRing) Kind() Kind { return KindLinearRing }
func (*LinearRing) primitive() {}
func (*LinearRing) curve()     {}
func (*LinearRing) ring()      {}

// Ring is a closed curve made of member curves (GML 3).
type Ring struct {
	Base
	Members []CurveGeometry
}

func (*Ring) Kind() Kind { return KindRing }
func (*Ring) primitive() {}
func (*Ring) curve()     {}
func (*Ring) ring()      {}
