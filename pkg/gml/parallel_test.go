package gml

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const brokenDoc = `<gml:Point xmlns:gml="http://www.opengis.net/gml"><gml:pos>1 x</gml:pos></gml:Point>`

func batchFiles(t *testing.T) (dir string, paths []string) {
	t.Helper()
	dir = t.TempDir()
	paths = []string{
		writeFile(t, dir, "city.gml", cityDoc),
		writeFile(t, dir, "broken.gml", brokenDoc),
		writeFile(t, dir, "line.gml", lineString32),
	}
	return dir, paths
}

func TestParseFilesParallel(t *testing.T) {
	_, paths := batchFiles(t)

	var mu sync.Mutex
	var progress []int
	var errLog bytes.Buffer
	docs, err := ParseFilesParallel(paths, NewParser(), LoadOptions{
		Workers:    2,
		SkipErrors: true,
		ErrorLog:   &errLog,
		Progress: func(done, total int) {
			mu.Lock()
			defer mu.Unlock()
			assert.Equal(t, 3, total)
			progress = append(progress, done)
		},
		Parse: DefaultParseOptions(),
	})

	require.Error(t, err)
	merr, ok := err.(*multierror.Error)
	require.True(t, ok, "%T", err)
	require.Len(t, merr.Errors, 1)
	assert.Contains(t, merr.Errors[0].Error(), "broken.gml")
	assert.Contains(t, errLog.String(), "broken.gml")

	require.Len(t, docs, 2)
	assert.Equal(t, paths[0], docs[0].SystemID)
	assert.Equal(t, paths[2], docs[1].SystemID)
	assert.Equal(t, []int{1, 2, 3}, progress)
}

func TestParseFilesParallelStopOnError(t *testing.T) {
	_, paths := batchFiles(t)
	opts := DefaultLoadOptions()
	opts.SkipErrors = false
	opts.Workers = 1

	docs, err := ParseFilesParallel(paths, NewParser(), opts)
	require.Error(t, err)
	_, isMulti := err.(*multierror.Error)
	assert.False(t, isMulti)
	assert.Contains(t, err.Error(), "broken.gml")
	assert.LessOrEqual(t, len(docs), 2)

	docs, err = ParseFilesParallel(nil, NewParser(), opts)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestConvertFilesParallel(t *testing.T) {
	dir, paths := batchFiles(t)
	out := filepath.Join(dir, "out")
	jobs := []ConvertJob{
		{Input: paths[0], Output: filepath.Join(out, "city2.gml"), Write: WriteOptions{Version: GML21}},
		{Input: paths[2], Output: filepath.Join(out, "line30.gml"), Write: WriteOptions{Version: GML30}},
	}
	require.NoError(t, ConvertFilesParallel(context.Background(), jobs, DefaultLoadOptions()))

	data, err := os.ReadFile(jobs[0].Output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<gml:MultiGeometry")
	assert.Contains(t, string(data), `gid="poly1"`)

	doc, err := NewParser().Parse(jobs[1].Output)
	require.NoError(t, err)
	assert.Equal(t, GML31, doc.Version)
	require.Len(t, doc.Geometries, 1)
	assert.Equal(t, "l1", doc.Geometries[0].ID())

	bad := []ConvertJob{{Input: paths[1], Output: filepath.Join(out, "broken.gml")}}
	err = ConvertFilesParallel(context.Background(), bad, DefaultLoadOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.gml")
}

func TestConvertFilesParallelCancelled(t *testing.T) {
	dir, paths := batchFiles(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	jobs := []ConvertJob{{Input: paths[0], Output: filepath.Join(dir, "never.gml")}}
	err := ConvertFilesParallel(ctx, jobs, DefaultLoadOptions())
	require.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, jobs[0].Output)
}

func TestDiscoverDocuments(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	a := writeFile(t, dir, "a.gml", cityDoc)
	b := writeFile(t, filepath.Join(dir, "sub"), "b.XML", cityDoc)
	writeFile(t, dir, "notes.txt", "not gml")

	paths, err := DiscoverDocuments(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, paths)

	_, err = DiscoverDocuments(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
