package parser

import (
	"github.com/beetlebugorg/gml/internal/crs"
	"github.com/beetlebugorg/gml/internal/geometry"
)

// readPatches reads a patch container (patches, polygonPatches or
// trianglePatches) holding at least one patch. The cursor moves past the
// container's end tag.
func (r *Reader) readPatches(srs *crs.CRS, containers ...string) ([]geometry.Patch, error) {
	return r.readPatchList(srs, false, containers...)
}

// readPatchList is readPatches with an optional empty container.
func (r *Reader) readPatchList(srs *crs.CRS, allowEmpty bool, containers ...string) ([]geometry.Patch, error) {
	if !r.isGML(containers...) {
		return nil, r.c.Errorf("expected 'gml:%s', found '%s'", containers[0], r.c.LocalName())
	}
	container := r.c.Name()
	if err := r.next(); err != nil {
		return nil, err
	}
	var patches []geometry.Patch
	for r.c.IsStartElement() {
		p, err := r.readPatch(srs)
		if err != nil {
			return nil, err
		}
		patches = append(patches, p)
		if err := r.next(); err != nil {
			return nil, err
		}
	}
	if err := r.requireEnd(container); err != nil {
		return nil, err
	}
	if len(patches) == 0 && !allowEmpty {
		return nil, r.c.Errorf("'gml:%s' holds no patch", container.Local)
	}
	return patches, r.next()
}

// readPatch reads the surface patch the cursor is positioned on.
func (r *Reader) readPatch(srs *crs.CRS) (geometry.Patch, error) {
	if r.c.Namespace() != r.ns {
		return nil, r.c.Errorf("expected a surface patch, found '%s'", r.c.LocalName())
	}
	switch name := r.c.LocalName(); name {
	case "PolygonPatch":
		return r.readPolygonPatch(srs)
	case "Triangle":
		exterior, err := r.readPlanarPatch(srs, 4)
		if err != nil {
			return nil, err
		}
		return &geometry.Triangle{Exterior: exterior}, nil
	case "Rectangle":
		exterior, err := r.readPlanarPatch(srs, 5)
		if err != nil {
			return nil, err
		}
		return &geometry.Rectangle{Exterior: exterior}, nil
	case "Cone":
		g, err := r.readGriddedPatch(srs, geometry.PatchCone)
		if err != nil {
			return nil, err
		}
		return &geometry.Cone{GriddedPatch: *g}, nil
	case "Cylinder":
		g, err := r.readGriddedPatch(srs, geometry.PatchCylinder)
		if err != nil {
			return nil, err
		}
		return &geometry.Cylinder{GriddedPatch: *g}, nil
	case "Sphere":
		g, err := r.readGriddedPatch(srs, geometry.PatchSphere)
		if err != nil {
			return nil, err
		}
		return &geometry.Sphere{GriddedPatch: *g}, nil
	default:
		return nil, r.c.Errorf("unknown surface patch 'gml:%s'", name)
	}
}

func (r *Reader) readPolygonPatch(srs *crs.CRS) (*geometry.PolygonPatch, error) {
	name := r.c.Name()
	if _, err := r.checkAttr("interpolation", "planar"); err != nil {
		return nil, err
	}
	if err := r.next(); err != nil {
		return nil, err
	}
	patch := &geometry.PolygonPatch{}
	if r.isGML("exterior") {
		ring, err := r.readRingProperty(srs)
		if err != nil {
			return nil, err
		}
		patch.Exterior = ring
		if err := r.next(); err != nil {
			return nil, err
		}
	}
	for r.isGML("interior") {
		ring, err := r.readRingProperty(srs)
		if err != nil {
			return nil, err
		}
		patch.Interiors = append(patch.Interiors, ring)
		if err := r.next(); err != nil {
			return nil, err
		}
	}
	return patch, r.requireEnd(name)
}

// readPlanarPatch reads a Triangle or Rectangle: a single exterior ring.
// A LinearRing exterior must have exactly positions points.
func (r *Reader) readPlanarPatch(srs *crs.CRS, positions int) (geometry.RingGeometry, error) {
	name := r.c.Name()
	if _, err := r.checkAttr("interpolation", "planar"); err != nil {
		return nil, err
	}
	if err := r.next(); err != nil {
		return nil, err
	}
	if err := r.requireStart("exterior"); err != nil {
		return nil, err
	}
	ring, err := r.readRingProperty(srs)
	if err != nil {
		return nil, err
	}
	if lr, ok := ring.(*geometry.LinearRing); ok && len(lr.Points) != positions {
		return nil, r.c.Errorf("%s exterior must have exactly %d positions, found %d", name.Local, positions, len(lr.Points))
	}
	if err := r.next(); err != nil {
		return nil, err
	}
	return ring, r.requireEnd(name)
}

// readGriddedPatch reads the rows of a Cone, Cylinder or Sphere. The
// optional rows and columns elements must agree with the rows read.
func (r *Reader) readGriddedPatch(srs *crs.CRS, kind geometry.PatchKind) (*geometry.GriddedPatch, error) {
	name := r.c.Name()
	horizontal, vertical := kind.CurveTypes()
	if _, err := r.checkAttr("horizontalCurveType", horizontal); err != nil {
		return nil, err
	}
	if _, err := r.checkAttr("verticalCurveType", vertical); err != nil {
		return nil, err
	}
	if err := r.next(); err != nil {
		return nil, err
	}
	g := &geometry.GriddedPatch{}
	for r.isGML("row") {
		row := r.c.Name()
		if err := r.next(); err != nil {
			return nil, err
		}
		points, err := r.readControlPoints(srs)
		if err != nil {
			return nil, err
		}
		if err := r.requireEnd(row); err != nil {
			return nil, err
		}
		if len(g.Rows) > 0 && len(points) != len(g.Rows[0]) {
			return nil, r.c.Errorf("%s row %d has %d points, expected %d", name.Local, len(g.Rows)+1, len(points), len(g.Rows[0]))
		}
		g.Rows = append(g.Rows, points)
		if err := r.next(); err != nil {
			return nil, err
		}
	}
	if len(g.Rows) == 0 {
		return nil, r.c.Errorf("%s requires at least one row", name.Local)
	}
	for _, f := range []struct {
		local string
		want  int
	}{
		{"rows", g.NumRows()},
		{"columns", g.NumColumns()},
	} {
		if !r.isGML(f.local) {
			continue
		}
		n, err := r.c.PositiveIntElement(r.ns, f.local)
		if err != nil {
			return nil, err
		}
		if n != f.want {
			return nil, r.c.Errorf("%s declares %d %s, found %d", name.Local, n, f.local, f.want)
		}
		if err := r.next(); err != nil {
			return nil, err
		}
	}
	return g, r.requireEnd(name)
}
