package gml

import (
	"github.com/dhconnelly/rtreego"
	"github.com/pkg/errors"
)

// Collection is a set of documents with a spatial index over their extents.
//
// Queries first select the documents whose extent intersects the query
// bounds and then query the geometry index of each of them, so documents
// far from the area of interest are never indexed.
//
// Example:
//
//	coll, err := gml.LoadCollection("data", gml.NewParser(), gml.DefaultLoadOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, hit := range coll.Query(gml.Bounds{MinX: 8.0, MinY: 48.0, MaxX: 9.0, MaxY: 49.0}) {
//	    fmt.Println(hit.Document.SystemID, hit.ID)
//	}
type Collection struct {
	Documents []*Document

	extents []*extent
	rtree   *rtreego.Rtree
}

// Hit is a geometry found by a collection query.
type Hit struct {
	Entry
	Document *Document
}

// extent is the indexed bounding box of one document.
type extent struct {
	doc    *Document
	bounds Bounds
}

// Bounds implements rtreego.Spatial.
func (e *extent) Bounds() rtreego.Rect {
	return rect(e.bounds)
}

// NewCollection indexes the extents of docs. Documents without bounds are
// kept but never returned by queries.
func NewCollection(docs []*Document) *Collection {
	c := &Collection{rtree: rtreego.NewTree(2, 25, 50)}
	for _, doc := range docs {
		c.Add(doc)
	}
	return c
}

// LoadCollection discovers the GML documents under root and parses them in
// parallel.
//
// Documents that fail to parse are skipped and reported through
// opts.ErrorLog; an error is returned only when no document could be
// loaded.
func LoadCollection(root string, parser Parser, opts LoadOptions) (*Collection, error) {
	paths, err := DiscoverDocuments(root)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return NewCollection(nil), nil
	}
	opts.SkipErrors = true
	docs, err := ParseFilesParallel(paths, parser, opts)
	if err != nil && len(docs) == 0 {
		return nil, errors.Wrapf(err, "failed to load any documents (%d files)", len(paths))
	}
	return NewCollection(docs), nil
}

// Add appends doc to the collection.
func (c *Collection) Add(doc *Document) {
	if doc == nil {
		return
	}
	c.Documents = append(c.Documents, doc)
	b, ok := doc.Index().Bounds()
	if !ok {
		return
	}
	e := &extent{doc: doc, bounds: b}
	c.extents = append(c.extents, e)
	c.rtree.Insert(e)
}

// DocumentsIn returns the documents whose extent intersects b, in the order
// they were added.
func (c *Collection) DocumentsIn(b Bounds) []*Document {
	hits := c.rtree.SearchIntersect(rect(b))
	found := make(map[*extent]bool, len(hits))
	for _, s := range hits {
		e := s.(*extent)
		if b.Intersects(e.bounds) {
			found[e] = true
		}
	}
	var docs []*Document
	for _, e := range c.extents {
		if found[e] {
			docs = append(docs, e.doc)
		}
	}
	return docs
}

// Query returns the geometries of all documents whose bounds intersect b.
func (c *Collection) Query(b Bounds) []Hit {
	var hits []Hit
	for _, doc := range c.DocumentsIn(b) {
		for _, e := range doc.Query(b) {
			hits = append(hits, Hit{Entry: e, Document: doc})
		}
	}
	return hits
}

// Bounds returns the union of the document extents.
func (c *Collection) Bounds() (b Bounds, ok bool) {
	for i, e := range c.extents {
		if i == 0 {
			b = e.bounds
			continue
		}
		b = b.Union(e.bounds)
	}
	return b, len(c.extents) > 0
}
