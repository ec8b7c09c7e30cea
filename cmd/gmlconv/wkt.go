package main

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/beetlebugorg/gml/pkg/gml"
)

func (a *app) wktCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wkt IN",
		Short: "Print the well-known text of each top-level geometry",
		Long: `wkt prints one line of well-known text per top-level geometry of the
input document. Curves are linearized through their control points.
Geometries without a simple-features equivalent are reported and skipped.`,
		Args:              cobra.ExactArgs(1),
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.wkt(args[0])
		},
	}
}

func (a *app) wkt(path string) error {
	parse, err := a.parseOptions()
	if err != nil {
		return err
	}
	parse.Cache = gml.NewDocumentCache(0)
	doc, err := gml.NewParser().ParseWithOptions(path, parse)
	if err != nil {
		return err
	}
	var result *multierror.Error
	for i, g := range doc.Geometries {
		s, err := gml.MarshalWKT(g)
		if err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "geometry %d", i))
			continue
		}
		fmt.Fprintln(a.out, s)
	}
	return result.ErrorOrNil()
}
