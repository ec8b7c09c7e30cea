package writer

import (
	"github.com/beetlebugorg/gml/internal/crs"
	"github.com/beetlebugorg/gml/internal/geometry"
)

// patch writes one surface patch. srs is the CRS of the enclosing surface.
func (w *gml3Writer) patch(p geometry.Patch, srs *crs.CRS) error {
	kind := p.PatchKind()
	w.w.StartElement(w.ns, kind.String())
	if g, ok := geometry.Gridded(p); ok {
		if err := w.gridded(kind, g, srs); err != nil {
			return err
		}
		w.w.EndElement()
		return nil
	}
	w.w.Attr("", "interpolation", "planar")
	exterior, interiors := geometry.PatchRings(p)
	var err error
	switch kind {
	case geometry.PatchPolygon:
		err = w.rings(exterior, interiors)
	case geometry.PatchTriangle, geometry.PatchRectangle:
		if exterior == nil {
			return &geometry.ErrInvalidGeometry{Kind: geometry.KindSurface, Reason: kind.String() + " without exterior"}
		}
		err = w.property("exterior", exterior, w.inline)
	default:
		return &geometry.ErrUnsupportedGeometry{Kind: geometry.KindSurface, Version: w.version.String(), Reason: "unknown patch " + kind.String()}
	}
	if err != nil {
		return err
	}
	w.w.EndElement()
	return nil
}

func (w *gml3Writer) gridded(kind geometry.PatchKind, g *geometry.GriddedPatch, srs *crs.CRS) error {
	horizontal, vertical := kind.CurveTypes()
	w.w.Attr("", "horizontalCurveType", horizontal)
	w.w.Attr("", "verticalCurveType", vertical)
	for _, row := range g.Rows {
		w.w.StartElement(w.ns, "row")
		if err := w.controlPoints(row, srs); err != nil {
			return err
		}
		w.w.EndElement()
	}
	w.intElement("rows", g.NumRows())
	w.intElement("columns", g.NumColumns())
	return nil
}
