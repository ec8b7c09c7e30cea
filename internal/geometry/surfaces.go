package geometry

// Polygon is a planar surface bounded by one exterior and any number of
// interior rings. Exterior may be nil. Interiors is nil when the polygon has
// no holes.
type Polygon struct {
	Base
	Exterior  RingGeometry
	Interiors []RingGeometry
}

func (*Polygon) Kind() Kind { return KindPolygon }
func (*Polygon) primitive() {}
func (*Polygon) surface()   {}

// Surface is a surface composed of patches (gml:Surface).
type Surface struct {
	Base
	Patches []Patch
}

func (*Surface) Kind() Kind { return KindSurface }
func (*Surface) primitive() {}
func (*Surface) surface()   {}

// PolyhedralSurface is a surface made of polygon patches only.
type PolyhedralSurface struct {
	Base
	Patches []*PolygonPatch
}

func (*PolyhedralSurface) Kind() Kind { return KindPolyhedralSurface }
func (*PolyhedralSurface) primitive() {}
func (*PolyhedralSurface) surface()   {}

// TriangulatedSurface is a surface made of triangle patches only.
type TriangulatedSurface struct {
	Base
	Patches []*Triangle
}

func (*TriangulatedSurface) Kind() Kind { return KindTriangulatedSurface }
func (*TriangulatedSurface) primitive() {}
func (*TriangulatedSurface) surface()   {}

// Tin is a triangulated irregular network. Patches holds the triangles
// read with it and may be empty.
type Tin struct {
	Base
	Patches       []*Triangle
	StopLines     [][]*LineStringSegment
	BreakLines    [][]*LineStringSegment
	MaxLength     Measure
	ControlPoints []*Point
}

func (*Tin) Kind() Kind { return KindTin }
func (*Tin) primitive() {}
func (*Tin) surface()   {}

// CompositeSurface is a connected set of member surfaces.
type CompositeSurface struct {
	Base
	Members []SurfaceGeometry
}

func (*CompositeSurface) Kind() Kind { return KindCompositeSurface }
func (*CompositeSurface) primitive() {}
func (*CompositeSurface) surface()   {}

// OrientableSurface is a surface with an orientation relative to its base
// surface.
type OrientableSurface struct {
	Base
	BaseSurface SurfaceGeometry
	Reversed    bool
}

func (*OrientableSurface) Kind() Kind { return KindOrientableSurface }
func (*OrientableSurface) primitive() {}
func (*OrientableSurface) surface()   {}

// Solid is a volume bounded by an exterior shell and optional interior
// shells.
type Solid struct {
	Base
	Exterior  SurfaceGeometry
	Interiors []SurfaceGeometry
}

func (*Solid) Kind() Kind { return KindSolid }
func (*Solid) primitive() {}
func (*Solid) solid()     {}

// CompositeSolid is a connected set of member solids.
type CompositeSolid struct {
	Base
	Members []SolidGeometry
}

func (*CompositeSolid) Kind() Kind { return KindCompositeSolid }
func (*CompositeSolid) primitive() {}
func (*CompositeSolid) solid()     {}
