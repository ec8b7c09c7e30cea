package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/beetlebugorg/gml/pkg/gml"
)

func (a *app) convertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert IN...",
		Short: "Convert GML documents to another GML version or CRS",
		Long: `convert rewrites the geometries of each input document in the GML version
given by --to. A document with one geometry is written as that geometry;
several geometries are wrapped in a MultiGeometry.

With a single input file the result goes to --output, or to standard output
when no output is given. With several inputs, or a directory, --output names
the directory receiving one converted file per input.`,
		Args:              cobra.MinimumNArgs(1),
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.convert(cmd.Context(), args)
		},
	}
	flags := cmd.Flags()
	flags.StringP("output", "o", "", "output file, or output directory for several inputs")
	flags.String("to", "3.2", "GML version written (2.1, 3.0, 3.1, 3.2)")
	flags.String("srs", "", "transform coordinates into this CRS")
	flags.Float64("simplify", 0, "simplification tolerance in CRS units, 0 disables")
	flags.String("indent", "  ", "indentation of the output, empty for none")
	for _, name := range []string{"output", "to", "srs", "simplify", "indent"} {
		a.cfg.BindPFlag(name, flags.Lookup(name))
	}
	return cmd
}

func (a *app) writeOptions() (gml.WriteOptions, error) {
	version, err := gml.ParseVersion(a.cfg.GetString("to"))
	if err != nil {
		return gml.WriteOptions{}, err
	}
	r, err := a.resolver()
	if err != nil {
		return gml.WriteOptions{}, err
	}
	opts := gml.WriteOptions{
		Version:     version,
		OutputCRS:   a.cfg.GetString("srs"),
		CRSResolver: r,
		Indent:      a.cfg.GetString("indent"),
		Logger:      a.log,
	}
	if tol := a.cfg.GetFloat64("simplify"); tol > 0 {
		opts.Simplifier = gml.ToleranceSimplifier{Tolerance: tol}
	}
	return opts, nil
}

func (a *app) convert(ctx context.Context, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	parse, err := a.parseOptions()
	if err != nil {
		return err
	}
	write, err := a.writeOptions()
	if err != nil {
		return err
	}
	paths, err := inputs(args)
	if err != nil {
		return err
	}
	output := a.cfg.GetString("output")

	if len(paths) == 1 && len(args) == 1 && !isDir(output) {
		doc, err := gml.NewParser().ParseWithOptions(paths[0], parse)
		if err != nil {
			return err
		}
		if output == "" {
			if err := gml.EncodeDocument(a.out, doc, write); err != nil {
				return err
			}
			_, err := a.out.Write([]byte("\n"))
			return err
		}
		return a.convertFile(doc, output, write)
	}

	if output == "" {
		return errors.New("--output is required with several inputs")
	}
	jobs := make([]gml.ConvertJob, len(paths))
	for i, p := range paths {
		jobs[i] = gml.ConvertJob{
			Input:  p,
			Output: filepath.Join(output, filepath.Base(p)),
			Write:  write,
		}
	}
	opts := a.loadOptions(parse)
	opts.Progress = func(done, total int) {
		a.log.WithFields(logrus.Fields{"done": done, "total": total}).Info("Converting")
	}
	return gml.ConvertFilesParallel(ctx, jobs, opts)
}

func (a *app) convertFile(doc *gml.Document, output string, write gml.WriteOptions) error {
	f, err := os.Create(output)
	if err != nil {
		return errors.Wrap(err, "create output")
	}
	if err := gml.EncodeDocument(f, doc, write); err != nil {
		f.Close()
		return err
	}
	a.log.WithField("file", output).Info("Converted document")
	return f.Close()
}

func isDir(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
