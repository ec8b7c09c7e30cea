package gml

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// LoadOptions controls batch parsing and conversion.
type LoadOptions struct {
	// Workers is the number of documents processed concurrently.
	// If 0, defaults to runtime.NumCPU().
	Workers int

	// SkipErrors continues with the remaining documents when one fails. All
	// failures are reported together once the batch is done. When false, the
	// first failure cancels the batch.
	SkipErrors bool

	// Progress is an optional callback called after each document is
	// processed (successfully or with error) with the number processed so
	// far and the batch size. Calls are serialized.
	Progress func(done, total int)

	// ErrorLog is an optional writer receiving one line per failed
	// document.
	ErrorLog io.Writer

	// Parse configures parsing of every document.
	Parse ParseOptions

	// Logger receives debug output. Default: discarded.
	Logger logrus.FieldLogger
}

// DefaultLoadOptions returns load options with sensible defaults.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		Workers:    runtime.NumCPU(),
		SkipErrors: true,
		Parse:      DefaultParseOptions(),
	}
}

// ParseFilesParallel parses the given files concurrently.
//
// The returned documents keep the order of paths; documents that failed to
// parse are left out. With SkipErrors the error aggregates every failure,
// otherwise it is the first one.
//
// Example:
//
//	docs, err := gml.ParseFilesParallel(paths, gml.NewParser(), gml.LoadOptions{
//	    Workers:    8,
//	    SkipErrors: true,
//	    Progress: func(done, total int) {
//	        fmt.Printf("\rParsing: %d/%d", done, total)
//	    },
//	})
func ParseFilesParallel(paths []string, parser Parser, opts LoadOptions) ([]*Document, error) {
	docs := make([]*Document, len(paths))
	err := runBatch(context.Background(), len(paths), opts, func(_ context.Context, i int) (string, error) {
		doc, err := parser.ParseWithOptions(paths[i], opts.Parse)
		docs[i] = doc
		return paths[i], err
	})
	result := make([]*Document, 0, len(docs))
	for _, doc := range docs {
		if doc != nil {
			result = append(result, doc)
		}
	}
	return result, err
}

// ConvertJob converts one GML file.
type ConvertJob struct {
	Input  string       // Source document
	Output string       // Destination file, created or truncated
	Write  WriteOptions // Target version, CRS and simplification
}

// ConvertFilesParallel runs the conversion jobs concurrently. Each output
// holds the geometries of its input as described for EncodeDocument.
// Cancelling ctx stops jobs that have not started yet.
func ConvertFilesParallel(ctx context.Context, jobs []ConvertJob, opts LoadOptions) error {
	parser := NewParser()
	return runBatch(ctx, len(jobs), opts, func(_ context.Context, i int) (string, error) {
		job := jobs[i]
		return job.Input, convertFile(parser, job, opts)
	})
}

func convertFile(parser Parser, job ConvertJob, opts LoadOptions) error {
	doc, err := parser.ParseWithOptions(job.Input, opts.Parse)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(job.Output); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "create output directory")
		}
	}
	f, err := os.Create(job.Output)
	if err != nil {
		return errors.Wrap(err, "create output")
	}
	if job.Write.Logger == nil {
		job.Write.Logger = opts.Logger
	}
	if err := EncodeDocument(f, doc, job.Write); err != nil {
		f.Close()
		return errors.Wrapf(err, "encode %s", job.Output)
	}
	return f.Close()
}

// runBatch runs task for indexes 0..n-1 on a bounded worker pool. task
// returns the name used for the item in error reports.
func runBatch(ctx context.Context, n int, opts LoadOptions, task func(context.Context, int) (string, error)) error {
	if n == 0 {
		return nil
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var (
		mu     sync.Mutex
		done   int
		result *multierror.Error
	)
	finish := func(name string, err error) error {
		mu.Lock()
		defer mu.Unlock()
		done++
		if opts.Progress != nil {
			opts.Progress(done, n)
		}
		if err == nil {
			return nil
		}
		err = errors.Wrap(err, name)
		log.WithField("file", name).WithError(err).Debug("Batch item failed")
		if opts.ErrorLog != nil {
			fmt.Fprintf(opts.ErrorLog, "Error processing document: %v\n", err)
		}
		if !opts.SkipErrors {
			return err
		}
		result = multierror.Append(result, err)
		return nil
	}

	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			name, err := task(gctx, i)
			return finish(name, err)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return result.ErrorOrNil()
}

// DiscoverDocuments returns the .gml and .xml files below root in lexical
// order.
func DiscoverDocuments(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".gml", ".xml":
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "walk directory")
	}
	return paths, nil
}
