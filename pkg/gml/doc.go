// Package gml reads and writes OGC Geography Markup Language geometries.
//
// GML 2.1.2, 3.0.1, 3.1.1 and 3.2.1 are supported on input and output. The
// package converts between versions, resolves xlink references between
// geometries (within a document and across documents), transforms
// coordinates between reference systems and exposes the result as a typed
// geometry model, a spatial index and simple-features (WKT) values.
//
// # Basic Usage
//
//	parser := gml.NewParser()
//	doc, err := parser.Parse("parcels.gml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("GML %s: %d geometries\n", doc.Version, len(doc.Geometries))
//
// The parser walks the whole document. Every GML geometry or envelope
// element found outside another geometry becomes one entry of
// Document.Geometries, so feature collections and application schemas can
// be read without knowing their feature types.
//
// # Single Geometries
//
// Unmarshal and Marshal work on one geometry element:
//
//	g, err := gml.Unmarshal([]byte(`
//	    <gml:LineString xmlns:gml="http://www.opengis.net/gml/3.2" gml:id="l1">
//	      <gml:posList>0 0 10 10 20 0</gml:posList>
//	    </gml:LineString>`), gml.DefaultParseOptions())
//
//	// A GML 2 LineString with gid="l1" and a gml:coordinates tuple list.
//	out, err := gml.Marshal(g, gml.WriteOptions{Version: gml.GML21})
//
// # Version Conversion
//
// WriteOptions selects the output version, an optional output CRS and an
// optional simplifier:
//
//	err := gml.Encode(os.Stdout, g, gml.WriteOptions{
//	    Version:    gml.GML32,
//	    OutputCRS:  "EPSG:25832",
//	    Simplifier: gml.ToleranceSimplifier{Tolerance: 0.5},
//	})
//
// Geometries that have no encoding in the target version (a Solid in GML
// 2.1, a Clothoid in GML 3.1) fail with ErrUnsupportedGeometry. GML 3.2
// requires a gml:id on every geometry object; unidentified geometries get a
// generated "GEOMETRY_<uuid>" id.
//
// Geometries sharing one ExportedIDs set are written once: a later property
// holding an already written geometry becomes an xlink:href stub.
//
// # References
//
// xlink:href properties are read as Reference values. Local references
// resolve against the document's id registry; references into other
// documents resolve through ParseOptions.Cache:
//
//	opts := gml.DefaultParseOptions()
//	opts.Cache = gml.NewDocumentCache(0)
//	doc, err := parser.ParseWithOptions("district.gml", opts)
//	if err := doc.ResolveReferences(); err != nil {
//	    // every unresolved reference is listed
//	}
//
// # Spatial Queries
//
// Each document lazily builds an R-tree over the bounds of its geometries:
//
//	for _, e := range doc.Query(gml.Bounds{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100}) {
//	    fmt.Println(e.ID, e.Geometry.Kind())
//	}
//
// A Collection indexes the extents of many documents and queries only the
// documents that overlap:
//
//	coll, err := gml.LoadCollection("data", parser, gml.DefaultLoadOptions())
//	hits := coll.Query(gml.Bounds{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100})
//
// # Batch Processing
//
// ParseFilesParallel and ConvertFilesParallel process many documents on a
// bounded worker pool, with progress reporting and error aggregation.
//
// # Error Handling
//
// Errors are wrapped with context. The typed errors (StructuralError,
// ErrDimensionMismatch, ErrUnsupportedGeometry, ...) are found with
// errors.As or the IsXxx helpers:
//
//	if _, err := parser.Parse("broken.gml"); gml.IsStructural(err) {
//	    loc, _ := gml.ErrorLocation(err)
//	    fmt.Printf("malformed GML at %s\n", loc)
//	}
package gml
