package geometry

// Kind identifies a geometry variant. Every concrete kind is named after
// the GML element that encodes it.
type Kind int

const (
	KindUnknown Kind = iota
	KindPoint
	KindLineString
	KindCurve
	KindOrientableCurve
	KindCompositeCurve
	KindLinearRing
	KindRing
	KindPolygon
	KindSurface
	KindCompositeSurface
	KindOrientableSurface
	KindPolyhedralSurface
	KindTriangulatedSurface
	KindTin
	KindSolid
	KindCompositeSolid
	KindMultiPoint
	KindMultiCurve
	KindMultiLineString
	KindMultiSurface
	KindMultiPolygon
	KindMultiSolid
	KindMultiGeometry
	KindGeometricComplex
	KindEnvelope
	KindReference

	// Abstract kinds, only used as the super kind of a Reference.
	KindGeometricPrimitive
	KindGeometry
)

var kindNames = [...]string{
	KindUnknown:             "Unknown",
	KindPoint:               "Point",
	KindLineString:          "LineString",
	KindCurve:               "Curve",
	KindOrientableCurve:     "OrientableCurve",
	KindCompositeCurve:      "CompositeCurve",
	KindLinearRing:          "LinearRing",
	KindRing:                "Ring",
	KindPolygon:             "Polygon",
	KindSurface:             "Surface",
	KindCompositeSurface:    "CompositeSurface",
	KindOrientableSurface:   "OrientableSurface",
	KindPolyhedralSurface:   "PolyhedralSurface",
	KindTriangulatedSurface: "TriangulatedSurface",
	KindTin:                 "Tin",
	KindSolid:               "Solid",
	KindCompositeSolid:      "CompositeSolid",
	KindMultiPoint:          "MultiPoint",
	KindMultiCurve:          "MultiCurve",
	KindMultiLineString:     "MultiLineString",
	KindMultiSurface:        "MultiSurface",
	KindMultiPolygon:        "MultiPolygon",
	KindMultiSolid:          "MultiSolid",
	KindMultiGeometry:       "MultiGeometry",
	KindGeometricComplex:    "GeometricComplex",
	KindEnvelope:            "Envelope",
	KindReference:           "Reference",
	KindGeometricPrimitive:  "GeometricPrimitive",
	KindGeometry:            "Geometry",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindUnknown]
	}
	return kindNames[k]
}

// KindOf returns the kind whose GML element has the given local name.
func KindOf(local string) Kind {
	for k, name := range kindNames {
		if name == local && Kind(k) != KindUnknown {
			return Kind(k)
		}
	}
	return KindUnknown
}

// IsCurve reports whether values of kind k substitute for gml:_Curve.
func (k Kind) IsCurve() bool {
	switch k {
	case KindLineString, KindCurve, KindOrientableCurve, KindCompositeCurve:
		return true
	}
	return false
}

// IsRing reports whether values of kind k substitute for gml:_Ring.
func (k Kind) IsRing() bool {
	return k == KindLinearRing || k == KindRing
}

// IsSurface reports whether values of kind k substitute for gml:_Surface.
func (k Kind) IsSurface() bool {
	switch k {
	case KindPolygon, KindSurface, KindCompositeSurface, KindOrientableSurface,
		KindPolyhedralSurface, KindTriangulatedSurface, KindTin:
		return true
	}
	return false
}

// IsSolid reports whether values of kind k substitute for gml:_Solid.
func (k Kind) IsSolid() bool {
	return k == KindSolid || k == KindCompositeSolid
}

// IsPrimitive reports whether values of kind k substitute for
// gml:_GeometricPrimitive.
func (k Kind) IsPrimitive() bool {
	return k == KindPoint || k.IsCurve() || k.IsRing() || k.IsSurface() || k.IsSolid()
}

// IsAggregate reports whether k is one of the multi geometry kinds.
func (k Kind) IsAggregate() bool {
	return k >= KindMultiPoint && k <= KindMultiGeometry
}
