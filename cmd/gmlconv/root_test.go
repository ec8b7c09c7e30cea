package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cityDoc = `<?xml version="1.0" encoding="UTF-8"?>
<app:City xmlns:app="urn:app" xmlns:gml="http://www.opengis.net/gml">
  <app:member>
    <gml:Point gml:id="p1" srsName="EPSG:4326"><gml:pos>1 1</gml:pos></gml:Point>
  </app:member>
  <app:member>
    <gml:LineString gml:id="l1"><gml:posList>10 10 20 20</gml:posList></gml:LineString>
  </app:member>
  <app:member>
    <gml:Polygon gml:id="poly1">
      <gml:exterior>
        <gml:LinearRing><gml:posList>0 0 5 0 5 5 0 5 0 0</gml:posList></gml:LinearRing>
      </gml:exterior>
    </gml:Polygon>
  </app:member>
</app:City>`

const lineString32 = `<gml:LineString xmlns:gml="http://www.opengis.net/gml/3.2" gml:id="l1">
  <gml:posList>0 0 10 10 20 0</gml:posList>
</gml:LineString>`

const danglingDoc = `<gml:MultiPoint xmlns:gml="http://www.opengis.net/gml" xmlns:xlink="http://www.w3.org/1999/xlink" gml:id="mp">
  <gml:pointMember xlink:href="#nowhere"/>
</gml:MultiPoint>`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// run executes gmlconv with args and returns standard output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestWKT(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "city.gml", cityDoc)

	out, err := run(t, "wkt", path)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"POINT (1 1)",
		"LINESTRING (10 10, 20 20)",
		"POLYGON ((0 0, 5 0, 5 5, 0 5, 0 0))",
	}, strings.Split(strings.TrimSpace(out), "\n"))
}

func TestInfo(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "city.gml", cityDoc)
	writeFile(t, dir, "line.gml", lineString32)

	out, err := run(t, "info", "--workers", "2", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "version:    GML 3.1.1")
	assert.Contains(t, out, "geometries: 3 (LineString 1, Point 1, Polygon 1)")
	assert.Contains(t, out, "bounds:     0 0, 20 20")
	assert.Contains(t, out, "version:    GML 3.2.1")
	assert.Less(t, strings.Index(out, "city.gml"), strings.Index(out, "line.gml"))
}

func TestConvertStdout(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "line.gml", lineString32)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"gml2", []string{"--to", "2.1"}, []string{`gid="l1"`, "0,0 10,10 20,0"}},
		{"gml31", []string{"--to", "3.1", "--indent", ""}, []string{`xmlns:gml="http://www.opengis.net/gml"`, "0 0 10 10 20 0"}},
		{"simplified", []string{"--simplify", "20"}, []string{">0 0 20 0<"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, append([]string{"convert", path}, tt.args...)...)
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestConvertDirectory(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in")
	outDir := filepath.Join(dir, "out")
	require.NoError(t, os.Mkdir(in, 0o755))
	writeFile(t, in, "city.gml", cityDoc)
	writeFile(t, in, "line.gml", lineString32)

	_, err := run(t, "convert", in, "--to", "2.1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--output")

	_, err = run(t, "convert", in, "--to", "2.1", "-o", outDir)
	require.NoError(t, err)
	for _, name := range []string{"city.gml", "line.gml"} {
		data, err := os.ReadFile(filepath.Join(outDir, name))
		require.NoError(t, err)
		assert.Contains(t, string(data), "gml:coordinates")
	}
}

func TestConvertFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "line.gml", lineString32)
	target := filepath.Join(dir, "line31.gml")

	out, err := run(t, "convert", path, "--to", "3.1", "-o", target)
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = run(t, "info", target)
	require.NoError(t, err)
	assert.Contains(t, out, "version:    GML 3.1.1")
}

func TestConvertInvalidVersion(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "line.gml", lineString32)

	_, err := run(t, "convert", path, "--to", "4.0")
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "city.gml", cityDoc)
	bad := writeFile(t, dir, "dangling.gml", danglingDoc)

	out, err := run(t, "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "OK   "+good)

	out, err = run(t, "validate", good, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 documents failed validation")
	assert.Contains(t, out, "FAIL "+bad)
	assert.Contains(t, out, "nowhere")
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	config := writeFile(t, dir, "gmlconv.yaml", `log-level: debug
substitutions:
  - namespace: urn:app
    element: Site
    base: Point
    properties: [height]
`)
	path := writeFile(t, dir, "sites.gml", `<app:Sites xmlns:app="urn:app" xmlns:gml="http://www.opengis.net/gml">
  <app:Site gml:id="s1"><gml:pos>1 2</gml:pos><app:height>12</app:height></app:Site>
</app:Sites>`)

	out, err := run(t, "wkt", path)
	require.NoError(t, err)
	assert.Empty(t, strings.TrimSpace(out))

	out, err = run(t, "--config", config, "wkt", path)
	require.NoError(t, err)
	assert.Equal(t, "POINT (1 2)\n", out)

	_, err = run(t, "--config", filepath.Join(dir, "missing.yaml"), "wkt", path)
	require.Error(t, err)
}

func TestInputs(t *testing.T) {
	dir := t.TempDir()
	_, err := inputs([]string{dir})
	require.Error(t, err)

	_, err = inputs([]string{filepath.Join(dir, "missing.gml")})
	require.Error(t, err)

	writeFile(t, dir, "a.gml", cityDoc)
	writeFile(t, dir, "notes.txt", "x")
	paths, err := inputs([]string{dir})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.gml")}, paths)
}

func TestQuery(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "city.gml", cityDoc)

	out, err := run(t, "query", "--bbox", "0,0,2,2", path)
	require.NoError(t, err)
	assert.Equal(t, path+"\tp1\tPoint\t1 1, 1 1\n"+path+"\tpoly1\tPolygon\t0 0, 5 5\n", out)

	out, err = run(t, "query", "--bbox", "30,30,40,40", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	tests := [][]string{
		{"query", path},
		{"query", "--bbox", "1,2,3", path},
		{"query", "--bbox", "5,5,0,0", path},
	}
	for _, args := range tests {
		_, err := run(t, args...)
		assert.Error(t, err, "args %v", args)
	}
}
