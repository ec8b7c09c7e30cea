package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/beetlebugorg/gml/pkg/gml"
)

// Parse a directory of documents concurrently
func loadAll(dir string) ([]*gml.Document, error) {
	paths, err := gml.DiscoverDocuments(dir)
	if err != nil {
		return nil, err
	}

	opts := gml.DefaultLoadOptions()
	opts.ErrorLog = os.Stderr
	opts.Progress = func(done, total int) {
		fmt.Printf("\rParsed %d/%d", done, total)
	}
	docs, err := gml.ParseFilesParallel(paths, gml.NewParser(), opts)
	fmt.Println()
	return docs, err
}

// Convert every document to GML 2, sharing referenced documents
func convertAll(ctx context.Context, docs []*gml.Document, outDir string) error {
	opts := gml.DefaultLoadOptions()
	opts.Workers = 4
	opts.Parse.Cache = gml.NewDocumentCache(128)

	write := gml.DefaultWriteOptions()
	write.Version = gml.GML21

	jobs := make([]gml.ConvertJob, len(docs))
	for i, doc := range docs {
		jobs[i] = gml.ConvertJob{
			Input:  doc.SystemID,
			Output: filepath.Join(outDir, filepath.Base(doc.SystemID)),
			Write:  write,
		}
	}
	return gml.ConvertFilesParallel(ctx, jobs, opts)
}

func main() {
	fmt.Println("=== Loading documents ===")
	docs, err := loadAll("data")
	if err != nil {
		// Failed documents are skipped; the rest are usable
		log.Printf("Some documents failed: %v", err)
	}
	fmt.Printf("Documents loaded: %d\n", len(docs))

	fmt.Println("\n=== Converting to GML 2 ===")
	if err := convertAll(context.Background(), docs, "out"); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Done")
}
