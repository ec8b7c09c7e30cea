package main

import (
	"fmt"
	"log"

	"github.com/beetlebugorg/gml/pkg/gml"
)

func main() {
	// Create parser
	parser := gml.NewParser()

	// Parse document
	doc, err := parser.Parse("city.gml")
	if err != nil {
		log.Fatal(err)
	}

	// Print document info
	fmt.Printf("Document: %s\n", doc.SystemID)
	fmt.Printf("Version: GML %s\n", doc.Version)
	fmt.Printf("Geometries: %d\n", len(doc.Geometries))
	for kind, n := range doc.Kinds() {
		fmt.Printf("  %s: %d\n", kind, n)
	}

	// Look up an identified geometry
	if g, ok := doc.Geometry("p1"); ok {
		fmt.Printf("p1 is a %s in %s\n", g.Kind(), g.CRS().Code())
	}

	// Get document bounds
	if b, ok := doc.Index().Bounds(); ok {
		fmt.Printf("Bounds: [%.4f,%.4f] to [%.4f,%.4f]\n",
			b.MinX, b.MinY, b.MaxX, b.MaxY)
	}
}
