package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/beetlebugorg/gml/pkg/gml"
)

func (a *app) queryCmd() *cobra.Command {
	var bbox []float64
	cmd := &cobra.Command{
		Use:   "query --bbox MINX,MINY,MAXX,MAXY IN...",
		Short: "List the geometries intersecting a bounding box",
		Long: `query loads the input documents concurrently and prints every identified
geometry, and every unidentified top-level geometry, whose 2D bounds
intersect the box. Coordinates are compared in each geometry's own CRS.`,
		Args:              cobra.MinimumNArgs(1),
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(bbox) != 4 {
				return errors.Errorf("--bbox needs 4 values, got %d", len(bbox))
			}
			b := gml.Bounds{MinX: bbox[0], MinY: bbox[1], MaxX: bbox[2], MaxY: bbox[3]}
			if b.MinX > b.MaxX || b.MinY > b.MaxY {
				return errors.New("--bbox minimum exceeds maximum")
			}
			return a.query(b, args)
		},
	}
	cmd.Flags().Float64SliceVar(&bbox, "bbox", nil, "query box as minx,miny,maxx,maxy")
	cmd.MarkFlagRequired("bbox")
	return cmd
}

func (a *app) query(b gml.Bounds, args []string) error {
	parse, err := a.parseOptions()
	if err != nil {
		return err
	}
	paths, err := inputs(args)
	if err != nil {
		return err
	}
	docs, loadErr := gml.ParseFilesParallel(paths, gml.NewParser(), a.loadOptions(parse))
	coll := gml.NewCollection(docs)
	for _, h := range coll.Query(b) {
		id := h.ID
		if id == "" {
			id = "-"
		}
		e := h.Extent
		fmt.Fprintf(a.out, "%s\t%s\t%s\t%g %g, %g %g\n", h.Document.SystemID, id, h.Geometry.Kind(), e.MinX, e.MinY, e.MaxX, e.MaxY)
	}
	return loadErr
}
