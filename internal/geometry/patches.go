package geometry

// PatchKind identifies a surface patch variant.
type PatchKind int

const (
	PatchPolygon PatchKind = iota + 1
	PatchTriangle
	PatchRectangle
	PatchCone
	PatchCylinder
	PatchSphere
)

func (k PatchKind) String() string {
	switch k {
	case PatchPolygon:
		return "PolygonPatch"
	case PatchTriangle:
		return "Triangle"
	case PatchRectangle:
		return "Rectangle"
	case PatchCone:
		return "Cone"
	case PatchCylinder:
		return "Cylinder"
	case PatchSphere:
		return "Sphere"
	}
	return "UnknownPatch"
}

// CurveTypes returns the horizontal and vertical curve types fixed for the
// gridded patch kinds.
func (k PatchKind) CurveTypes() (horizontal, vertical string) {
	switch k {
	case PatchCone, PatchCylinder:
		return "circularArc3Points", "linear"
	case PatchSphere:
		return "circularArc3Points", "circularArc3Points"
	}
	return "", ""
}

// Patch is one piece of a Surface.
type Patch interface {
	PatchKind() PatchKind
}

// PolygonPatch is a planar patch with the shape of a Polygon.
type PolygonPatch struct {
	Exterior  RingGeometry
	Interiors []RingGeometry
}

func (*PolygonPatch) PatchKind() PatchKind { return PatchPolygon }

// Triangle is a patch bounded by a ring of three vertices.
type Triangle struct {
	Exterior RingGeometry
}

func (*Triangle) PatchKind() PatchKind { return PatchTriangle }

// Rectangle is a patch bounded by a ring of four vertices.
type Rectangle struct {
	Exterior RingGeometry
}

func (*Rectangle) PatchKind() PatchKind { return PatchRectangle }

// GriddedPatch holds the control points of a gridded surface row by row.
type GriddedPatch struct {
	Rows [][]*Point
}

// NumRows returns the number of rows.
func (g *GriddedPatch) NumRows() int { return len(g.Rows) }

// NumColumns returns the number of points per row.
func (g *GriddedPatch) NumColumns() int {
	if len(g.Rows) == 0 {
		return 0
	}
	return len(g.Rows[0])
}

// Points returns all control points in row order.
func (g *GriddedPatch) Points() []*Point {
	var out []*Point
	for _, row := range g.Rows {
		out = append(out, row...)
	}
	return out
}

type Cone struct{ GriddedPatch }

func (*Cone) PatchKind() PatchKind { return PatchCone }

type Cylinder struct{ GriddedPatch }

func (*Cylinder) PatchKind() PatchKind { return PatchCylinder }

type Sphere struct{ GriddedPatch }

func (*Sphere) PatchKind() PatchKind { return PatchSphere }

// Gridded returns the grid of a cone, cylinder or sphere patch.
func Gridded(p Patch) (*GriddedPatch, bool) {
	switch v := p.(type) {
	case *Cone:
		return &v.GriddedPatch, true
	case *Cylinder:
		return &v.GriddedPatch, true
	case *Sphere:
		return &v.GriddedPatch, true
	}
	return nil, false
}

// PatchRings returns the exterior and interior rings of a polygonal patch.
// Gridded patches have none.
func PatchRings(p Patch) (RingGeometry, []RingGeometry) {
	switch v := p.(type) {
	case *PolygonPatch:
		return v.Exterior, v.Interiors
	case *Triangle:
		return v.Exterior, nil
	case *Rectangle:
		return v.Exterior, nil
	}
	return nil, nil
}
