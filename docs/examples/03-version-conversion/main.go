package main

import (
	"fmt"
	"log"
	"os"

	"github.com/beetlebugorg/gml/pkg/gml"
)

func main() {
	// Parse a GML 3.2 geometry
	g, err := gml.Unmarshal([]byte(`<gml:LineString xmlns:gml="http://www.opengis.net/gml/3.2" gml:id="road">
  <gml:posList>0 0 1 0.1 2 -0.1 3 0 10 10</gml:posList>
</gml:LineString>`), gml.DefaultParseOptions())
	if err != nil {
		log.Fatal(err)
	}

	// Write it as GML 2
	opts := gml.DefaultWriteOptions()
	opts.Version = gml.GML21
	out, err := gml.Marshal(g, opts)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("GML 2.1.2:\n%s\n\n", out)

	// Simplify while writing GML 3.2
	opts = gml.DefaultWriteOptions()
	opts.Indent = "  "
	opts.Simplifier = gml.ToleranceSimplifier{Tolerance: 0.5}
	fmt.Println("GML 3.2.1, simplified:")
	if err := gml.Encode(os.Stdout, g, opts); err != nil {
		log.Fatal(err)
	}
	fmt.Println()

	// Well-known text for other tools
	wkt, err := gml.MarshalWKT(g)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("\nWKT: %s\n", wkt)
}
