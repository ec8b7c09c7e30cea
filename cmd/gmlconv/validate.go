package main

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/beetlebugorg/gml/pkg/gml"
)

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate IN...",
		Short: "Check geometries and xlink references",
		Long: `validate parses each input with geometry validation enabled and resolves
every xlink reference, loading referenced local documents as needed. Each
document is reported as OK or with the list of its problems.`,
		Args:              cobra.MinimumNArgs(1),
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.validate(args)
		},
	}
}

func (a *app) validate(args []string) error {
	parse, err := a.parseOptions()
	if err != nil {
		return err
	}
	parse.ValidateGeometry = true
	parse.Cache = gml.NewDocumentCache(0)
	paths, err := inputs(args)
	if err != nil {
		return err
	}

	parser := gml.NewParser()
	failed := 0
	for _, path := range paths {
		if err := validateFile(parser, path, parse); err != nil {
			failed++
			fmt.Fprintf(a.out, "FAIL %s\n", path)
			if merr, ok := err.(*multierror.Error); ok {
				for _, e := range merr.Errors {
					fmt.Fprintf(a.out, "  %v\n", e)
				}
			} else {
				fmt.Fprintf(a.out, "  %v\n", err)
			}
			continue
		}
		fmt.Fprintf(a.out, "OK   %s\n", path)
	}
	if failed > 0 {
		return errors.Errorf("%d of %d documents failed validation", failed, len(paths))
	}
	return nil
}

func validateFile(parser gml.Parser, path string, opts gml.ParseOptions) error {
	doc, err := parser.ParseWithOptions(path, opts)
	if err != nil {
		return err
	}
	return doc.ResolveReferences()
}
