package gml

import (
	"github.com/dhconnelly/rtreego"

	"github.com/beetlebugorg/gml/internal/geometry"
)

// GeometryIndex provides spatial queries over the geometries of a document.
//
// Every identified geometry of the document (including ones nested inside
// other geometries) and every unidentified top-level geometry is indexed by
// its 2D bounds. Envelopes and unresolved references are not indexed.
//
// Example:
//
//	doc, _ := parser.Parse("city.gml")
//	for _, e := range doc.Query(gml.Bounds{MinX: 8.0, MinY: 48.0, MaxX: 9.0, MaxY: 49.0}) {
//	    fmt.Println(e.ID, e.Geometry.Kind())
//	}
type GeometryIndex struct {
	entries []*Entry
	rtree   *rtreego.Rtree
}

// Entry is one indexed geometry.
type Entry struct {
	ID       string   // gml:id, empty for unidentified top-level geometries
	Geometry Geometry // Indexed geometry
	Extent   Bounds   // 2D bounds in the geometry's own coordinates
}

// epsilon pads degenerate (point or axis-parallel) bounds; R-tree
// rectangles need positive lengths.
const epsilon = 1e-9

// Bounds implements rtreego.Spatial.
func (e *Entry) Bounds() rtreego.Rect {
	return rect(e.Extent)
}

func rect(b Bounds) rtreego.Rect {
	point := rtreego.Point{b.MinX, b.MinY}
	width, height := b.Width(), b.Height()
	if width < epsilon {
		width = epsilon
	}
	if height < epsilon {
		height = epsilon
	}
	r, _ := rtreego.NewRect(point, []float64{width, height})
	return r
}

// BuildIndex creates an index over the geometries of doc.
func BuildIndex(doc *Document) *GeometryIndex {
	// 2D, min=25 children, max=50 children
	idx := &GeometryIndex{rtree: rtreego.NewTree(2, 25, 50)}
	if doc == nil || doc.Document == nil {
		return idx
	}
	for _, id := range doc.IDs() {
		g, ok := doc.Geometry(id)
		if !ok {
			continue
		}
		idx.Insert(id, g)
	}
	for _, g := range doc.Geometries {
		if g.ID() == "" {
			idx.Insert("", g)
		}
	}
	return idx
}

// Insert adds g to the index. It reports false when g has no 2D bounds.
func (idx *GeometryIndex) Insert(id string, g Geometry) bool {
	switch g.Kind() {
	case geometry.KindEnvelope, geometry.KindReference:
		return false
	}
	b, ok := BoundsOf(g)
	if !ok {
		return false
	}
	e := &Entry{ID: id, Geometry: g, Extent: b}
	idx.entries = append(idx.entries, e)
	idx.rtree.Insert(e)
	return true
}

// Query returns the entries whose bounds intersect b, in insertion order.
func (idx *GeometryIndex) Query(b Bounds) []Entry {
	hits := idx.rtree.SearchIntersect(rect(b))
	found := make(map[*Entry]bool, len(hits))
	for _, s := range hits {
		e := s.(*Entry)
		// The padded rectangles may touch neighbours the exact bounds miss.
		if b.Intersects(e.Extent) {
			found[e] = true
		}
	}
	result := make([]Entry, 0, len(found))
	for _, e := range idx.entries {
		if found[e] {
			result = append(result, *e)
		}
	}
	return result
}

// Count returns the number of indexed geometries.
func (idx *GeometryIndex) Count() int {
	return len(idx.entries)
}

// Bounds returns the union of all indexed bounds. ok is false for an empty
// index.
func (idx *GeometryIndex) Bounds() (b Bounds, ok bool) {
	for i, e := range idx.entries {
		if i == 0 {
			b = e.Extent
			continue
		}
		b = b.Union(e.Extent)
	}
	return b, len(idx.entries) > 0
}
