package main

import (
	"fmt"
	"log"
	"os"

	"github.com/pkg/errors"

	"github.com/beetlebugorg/gml/pkg/gml"
)

func safeParseDocument(path string) (*gml.Document, error) {
	parser := gml.NewParser()

	doc, err := parser.Parse(path)
	if err != nil {
		// Check if file exists
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("document not found: %s", path)
		}

		// Report where the document is broken
		if loc, ok := gml.ErrorLocation(err); ok {
			log.Printf("Failed to parse %s at line %d, column %d: %v", path, loc.Line, loc.Column, err)
		} else {
			log.Printf("Failed to parse %s: %v", path, err)
		}
		return nil, err
	}

	if len(doc.Geometries) == 0 {
		log.Printf("Warning: %s contains no geometries", path)
	}

	// Resolve every xlink:href, reporting all dangling ones together
	if err := doc.ResolveReferences(); err != nil {
		log.Printf("Warning: %s has unresolved references: %v", path, err)
	}

	return doc, nil
}

func main() {
	doc, err := safeParseDocument("city.gml")
	if err != nil {
		log.Printf("Error: %v", err)
		return
	}
	fmt.Printf("Successfully loaded %s: %d geometries\n", doc.SystemID, len(doc.Geometries))

	// Classify errors from a single geometry
	_, err = gml.Unmarshal([]byte(`<gml:LineString xmlns:gml="http://www.opengis.net/gml">
  <gml:posList>0 0</gml:posList>
</gml:LineString>`), gml.DefaultParseOptions())
	switch {
	case gml.IsInvalidGeometry(err):
		log.Printf("Expected invalid geometry: %v", err)
	case gml.IsStructural(err):
		log.Printf("Malformed document: %v", err)
	case err != nil:
		log.Printf("Other error: %v", err)
	}

	// Try to parse a non-existent document
	_, err = safeParseDocument("missing.gml")
	if err != nil {
		log.Printf("Expected error: %v", err)
	}
}
