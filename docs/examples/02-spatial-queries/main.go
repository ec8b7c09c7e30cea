package main

import (
	"fmt"
	"log"

	"github.com/beetlebugorg/gml/pkg/gml"
)

func main() {
	// Parse document
	parser := gml.NewParser()
	doc, err := parser.Parse("city.gml")
	if err != nil {
		log.Fatal(err)
	}

	// Define viewport
	viewport := gml.Bounds{
		MinX: 0, MaxX: 12,
		MinY: 0, MaxY: 12,
	}

	// Query R-tree index for geometries touching the viewport
	entries := doc.Query(viewport)

	fmt.Printf("Visible geometries: %d\n", len(entries))

	for _, e := range entries {
		fmt.Printf("  %s: %s [%.1f,%.1f %.1f,%.1f]\n",
			e.ID,
			e.Geometry.Kind(),
			e.Extent.MinX, e.Extent.MinY, e.Extent.MaxX, e.Extent.MaxY)
	}
}
