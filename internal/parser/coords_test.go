package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beetlebugorg/gml/internal/geometry"
)

func TestCoordinateEncodingsEquivalent(t *testing.T) {
	want := [][]float64{{0, 0}, {1, 1}, {2, 0}}
	tests := []struct {
		name    string
		content string
	}{
		{"posList", `<gml:posList>0 0 1 1 2 0</gml:posList>`},
		{"pos", `<gml:pos>0 0</gml:pos><gml:pos>1 1</gml:pos><gml:pos>2 0</gml:pos>`},
		{"coordinates", `<gml:coordinates>0,0 1,1 2,0</gml:coordinates>`},
		{"coordinates custom separators", `<gml:coordinates cs=" " ts=";">0 0;1 1; 2 0</gml:coordinates>`},
		{"coord", `<gml:coord><gml:X>0</gml:X><gml:Y>0</gml:Y></gml:coord><gml:coord><gml:X>1</gml:X><gml:Y>1</gml:Y></gml:coord>` +
			`<gml:coord><gml:X>2</gml:X><gml:Y>0</gml:Y></gml:coord>`},
		{"pointProperty", `<gml:pos>0 0</gml:pos><gml:pointProperty><gml:Point><gml:pos>1 1</gml:pos></gml:Point></gml:pointProperty>` +
			`<gml:pointRep><gml:Point><gml:pos>2 0</gml:pos></gml:Point></gml:pointRep>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustRead(t, `<gml:LineString `+nsGML+`>`+tt.content+`</gml:LineString>`)
			assert.Equal(t, want, coordsOf(g.(*geometry.LineString).Points))
		})
	}
}

func TestControlPointReference(t *testing.T) {
	g := mustRead(t, `<gml:LineString `+nsGML+`><gml:pos>0 0</gml:pos><gml:pointProperty xlink:href="#p9"/></gml:LineString>`)
	points := g.(*geometry.LineString).Points
	require.Len(t, points, 2)
	require.NotNil(t, points[1].Ref)
	assert.Equal(t, "#p9", points[1].Ref.Href)
	assert.Empty(t, points[1].Coords)
}

func TestDimension(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		want    [][]float64
		wantErr bool
	}{
		{
			name: "srsDimension",
			doc:  `<gml:LineString ` + nsGML + `><gml:posList srsDimension="3">0 0 0 1 1 1</gml:posList></gml:LineString>`,
			want: [][]float64{{0, 0, 0}, {1, 1, 1}},
		},
		{
			name: "dimension attribute",
			doc:  `<gml:LineString ` + nsGML + `><gml:posList dimension="3">0 0 0 1 1 1</gml:posList></gml:LineString>`,
			want: [][]float64{{0, 0, 0}, {1, 1, 1}},
		},
		{
			name: "from CRS",
			doc:  `<gml:LineString srsName="EPSG:4979" ` + nsGML + `><gml:posList>0 0 0 1 1 1</gml:posList></gml:LineString>`,
			want: [][]float64{{0, 0, 0}, {1, 1, 1}},
		},
		{
			name: "default",
			doc:  `<gml:LineString ` + nsGML + `><gml:posList>0 0 0 1 1 1</gml:posList></gml:LineString>`,
			want: [][]float64{{0, 0}, {0, 1}, {1, 1}},
		},
		{
			name:    "posList not a multiple",
			doc:     `<gml:LineString ` + nsGML + `><gml:posList srsDimension="3">0 0 0 1</gml:posList></gml:LineString>`,
			wantErr: true,
		},
		{
			name:    "pos with explicit dimension",
			doc:     `<gml:Point ` + nsGML + `><gml:pos srsDimension="3">1 2</gml:pos></gml:Point>`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _, err := readString(tt.doc, DefaultParseOptions())
			if tt.wantErr {
				var mismatch *ErrDimensionMismatch
				require.True(t, errors.As(err, &mismatch), "got %v", err)
				assert.Equal(t, 3, mismatch.Dimension)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, coordsOf(geometry.ControlPoints(g)))
		})
	}
}

func TestDefaultDimensionOption(t *testing.T) {
	opts := DefaultParseOptions()
	opts.DefaultDimension = 3
	g, _, err := readString(`<gml:LineString `+nsGML+`><gml:posList>0 0 0 1 1 1</gml:posList></gml:LineString>`, opts)
	require.NoError(t, err)
	assert.Len(t, g.(*geometry.LineString).Points, 2)
}

func TestPosWithoutDimension(t *testing.T) {
	// A pos without srsDimension takes all its values.
	g := mustRead(t, `<gml:Point srsName="EPSG:4326" `+nsGML+`><gml:pos>1 2 3</gml:pos></gml:Point>`)
	assert.Equal(t, []float64{1, 2, 3}, g.(*geometry.Point).Coords)
}

func TestCoordinatesDecimal(t *testing.T) {
	_, _, err := readString(`<gml:Point `+nsGML+`><gml:coordinates decimal="," cs=";">1,5;2,5</gml:coordinates></gml:Point>`,
		DefaultParseOptions())
	var unsupported *ErrUnsupportedFormat
	require.True(t, errors.As(err, &unsupported), "got %v", err)

	g := mustRead(t, `<gml:Point `+nsGML+`><gml:coordinates decimal=".">1.5,2.5</gml:coordinates></gml:Point>`)
	assert.Equal(t, []float64{1.5, 2.5}, g.(*geometry.Point).Coords)
}

func TestCoord(t *testing.T) {
	tests := []struct {
		name string
		xml  string
		want []float64
	}{
		{"x", `<gml:X>1</gml:X>`, []float64{1}},
		{"xy", `<gml:X>1</gml:X><gml:Y>2</gml:Y>`, []float64{1, 2}},
		{"xyz", `<gml:X>1</gml:X><gml:Y>2</gml:Y><gml:Z>3</gml:Z>`, []float64{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustRead(t, `<gml:Point `+nsGML+`><gml:coord>`+tt.xml+`</gml:coord></gml:Point>`)
			assert.Equal(t, tt.want, g.(*geometry.Point).Coords)
		})
	}

	_, _, err := readString(`<gml:Point `+nsGML+`><gml:coord><gml:Y>1</gml:Y></gml:coord></gml:Point>`, DefaultParseOptions())
	require.Error(t, err)
}

func TestInvalidNumber(t *testing.T) {
	_, _, err := readString(`<gml:Point `+nsGML+`><gml:pos>1 abc</gml:pos></gml:Point>`, DefaultParseOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "abc")
}

func TestSplit(t *testing.T) {
	tests := []struct {
		s, sep string
		want   []string
	}{
		{"a,b,c", ",", []string{"a", "b", "c"}},
		{" a , b ,, c ", ",", []string{"a", "b", "c"}},
		{"a  b\n\tc", " ", []string{"a", "b", "c"}},
		{"", ",", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, split(tt.s, tt.sep), "split(%q, %q)", tt.s, tt.sep)
	}
}
