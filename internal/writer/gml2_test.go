package writer

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beetlebugorg/gml/internal/dialect"
	"github.com/beetlebugorg/gml/internal/geometry"
)

func gml2() Options { return Options{Version: dialect.GML21} }

func square(id string) *geometry.LinearRing {
	return geometry.NewLinearRing(id, nil, geometry.NewPoints(nil, 2, 0, 0, 1, 0, 1, 1, 0, 0))
}

func TestEncodeGML2Point(t *testing.T) {
	out := encode(t, geometry.NewPoint("p1", nil, 1, 2), gml2())
	assert.Contains(t, out, `gid="p1"`)
	assert.Contains(t, out, `<gml:coord><gml:X>1</gml:X><gml:Y>2</gml:Y></gml:coord>`)
	assert.NotContains(t, out, "gml:id")

	got := parse(t, out, dialect.GML21)
	assert.Equal(t, "p1", got.ID())
	assert.Equal(t, []float64{1, 2}, got.(*geometry.Point).Coords)
}

func TestEncodeGML2Polygon(t *testing.T) {
	poly := geometry.NewPolygon("poly1", nil, square("r1"), []geometry.RingGeometry{square("")})
	out := encode(t, poly, gml2())
	assert.Contains(t, out, `<gml:outerBoundaryIs><gml:LinearRing gid="r1"><gml:coordinates decimal="." cs="," ts=" ">0,0 1,0 1,1 0,0</gml:coordinates></gml:LinearRing></gml:outerBoundaryIs>`)
	assert.Contains(t, out, `<gml:innerBoundaryIs>`)

	got := parse(t, out, dialect.GML21).(*geometry.Polygon)
	assert.Equal(t, "poly1", got.ID())
	assert.Len(t, got.Interiors, 1)
	assert.Equal(t, coordsOf(poly), coordsOf(got))
}

func TestEncodeGML2Linearized(t *testing.T) {
	curve := geometry.NewCurve("c1", nil,
		&geometry.LineStringSegment{Points: geometry.NewPoints(nil, 2, 0, 0, 1, 1)},
		&geometry.LineStringSegment{Points: geometry.NewPoints(nil, 2, 1, 1, 2, 0)},
	)
	out := encode(t, curve, gml2())
	got := parse(t, out, dialect.GML21)
	require.Equal(t, geometry.KindLineString, got.Kind())
	assert.Equal(t, "c1", got.ID())
	assert.Equal(t, [][]float64{{0, 0}, {1, 1}, {2, 0}}, coordsOf(got))

	oc := &geometry.OrientableCurve{Base: geometry.Base{GID: "oc1"}, BaseCurve: curve, Reversed: true}
	got = parse(t, encode(t, oc, gml2()), dialect.GML21)
	assert.Equal(t, [][]float64{{2, 0}, {1, 1}, {0, 0}}, coordsOf(got))

	surface := &geometry.Surface{Base: geometry.Base{GID: "s1"}, Patches: []geometry.Patch{
		&geometry.PolygonPatch{Exterior: square("")},
	}}
	got = parse(t, encode(t, surface, gml2()), dialect.GML21)
	assert.Equal(t, geometry.KindPolygon, got.Kind())
	assert.Equal(t, "s1", got.ID())

	ps := &geometry.PolyhedralSurface{Base: geometry.Base{GID: "ps1"}, Patches: []*geometry.PolygonPatch{
		{Exterior: square("")},
		{Exterior: square("")},
	}}
	got = parse(t, encode(t, ps, gml2()), dialect.GML21)
	require.Equal(t, geometry.KindMultiPolygon, got.Kind())
	assert.Len(t, got.(*geometry.MultiPolygon).Members, 2)
}

func TestEncodeGML2Aggregates(t *testing.T) {
	ls := geometry.NewLineString("", nil, geometry.NewPoints(nil, 2, 0, 0, 1, 1))
	mc := &geometry.MultiCurve{Base: geometry.Base{GID: "mc1"}, Members: []geometry.CurveGeometry{ls}}
	out := encode(t, mc, gml2())
	assert.Contains(t, out, `<gml:MultiLineString`)
	assert.Contains(t, out, `<gml:lineStringMember>`)
	assert.Equal(t, geometry.KindMultiLineString, parse(t, out, dialect.GML21).Kind())

	ms := &geometry.MultiSurface{Members: []geometry.SurfaceGeometry{geometry.NewPolygon("", nil, square(""), nil)}}
	out = encode(t, ms, gml2())
	assert.Contains(t, out, `<gml:polygonMember>`)
	assert.Equal(t, geometry.KindMultiPolygon, parse(t, out, dialect.GML21).Kind())

	p := geometry.NewPoint("p1", nil, 1, 2)
	mg := &geometry.MultiGeometry{Members: []geometry.Geometry{p, p}}
	out = encode(t, mg, gml2())
	assert.Contains(t, out, `xlink:href="#p1"`)
}

func TestEncodeGML2Box(t *testing.T) {
	env := geometry.NewEnvelope(nil, []float64{0, 1}, []float64{2, 3})
	out := encode(t, env, gml2())
	assert.Contains(t, out, `<gml:Box`)
	assert.Contains(t, out, `>0,1 2,3</gml:coordinates>`)

	got := parse(t, out, dialect.GML21).(*geometry.Envelope)
	assert.Equal(t, []float64{0, 1}, got.Min)
	assert.Equal(t, []float64{2, 3}, got.Max)
}

func TestEncodeGML2Unsupported(t *testing.T) {
	tests := []struct {
		name string
		g    geometry.Geometry
	}{
		{"solid", &geometry.Solid{Base: geometry.Base{GID: "s1"}}},
		{"composite solid", &geometry.CompositeSolid{}},
		{"composite surface", &geometry.CompositeSurface{}},
		{"composite curve", &geometry.CompositeCurve{}},
		{"tin", &geometry.Tin{}},
		{"triangulated surface", &geometry.TriangulatedSurface{}},
		{"multi solid", &geometry.MultiSolid{}},
		{"geometric complex", &geometry.GeometricComplex{}},
		{"reference", geometry.NewReference(geometry.KindPoint, "#p1", "", nil)},
		{"point reference", &geometry.Point{Ref: geometry.NewReference(geometry.KindPoint, "#p1", "", nil)}},
		{"gridded surface", &geometry.Surface{Patches: []geometry.Patch{&geometry.Cone{}}}},
		{"multi patch surface", &geometry.Surface{Patches: []geometry.Patch{
			&geometry.PolygonPatch{Exterior: square("")},
			&geometry.PolygonPatch{Exterior: square("")},
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := Encode(&buf, tt.g, gml2())
			var unsupported *geometry.ErrUnsupportedGeometry
			require.True(t, errors.As(err, &unsupported), "%v", err)
			assert.Equal(t, "2.1.2", unsupported.Version)
		})
	}
}
