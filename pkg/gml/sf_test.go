package gml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"

	"github.com/beetlebugorg/gml/internal/geometry"
)

func TestMarshalWKT(t *testing.T) {
	square := func() *geometry.LinearRing {
		return geometry.NewLinearRing("", nil, geometry.NewPoints(nil, 2, 0, 0, 1, 0, 1, 1, 0, 0))
	}
	tests := []struct {
		name string
		g    Geometry
		want string
	}{
		{
			name: "point",
			g:    geometry.NewPoint("", nil, 1, 2),
			want: "POINT (1 2)",
		},
		{
			name: "point 3d",
			g:    geometry.NewPoint("", nil, 1, 2, 3),
			want: "POINT Z (1 2 3)",
		},
		{
			name: "curve linearized",
			g: geometry.NewCurve("", nil,
				&geometry.LineStringSegment{Points: geometry.NewPoints(nil, 2, 0, 0, 1, 1)},
				&geometry.Arc{Points: geometry.NewPoints(nil, 2, 1, 1, 2, 2, 3, 1)},
			),
			want: "LINESTRING (0 0, 1 1, 2 2, 3 1)",
		},
		{
			name: "polygon with hole",
			g:    geometry.NewPolygon("", nil, square(), []geometry.RingGeometry{square()}),
			want: "POLYGON ((0 0, 1 0, 1 1, 0 0), (0 0, 1 0, 1 1, 0 0))",
		},
		{
			name: "single patch surface",
			g: &geometry.Surface{Patches: []geometry.Patch{
				&geometry.PolygonPatch{Exterior: square()},
			}},
			want: "POLYGON ((0 0, 1 0, 1 1, 0 0))",
		},
		{
			name: "polyhedral surface",
			g: &geometry.PolyhedralSurface{Patches: []*geometry.PolygonPatch{
				{Exterior: square()},
				{Exterior: square()},
			}},
			want: "MULTIPOLYGON (((0 0, 1 0, 1 1, 0 0)), ((0 0, 1 0, 1 1, 0 0)))",
		},
		{
			name: "multipoint",
			g: geometry.NewMultiPoint("", nil,
				geometry.NewPoint("", nil, 1, 2),
				geometry.NewPoint("", nil, 3, 4),
			),
			want: "MULTIPOINT (1 2, 3 4)",
		},
		{
			name: "multicurve",
			g: &geometry.MultiCurve{Members: []geometry.CurveGeometry{
				geometry.NewLineString("", nil, geometry.NewPoints(nil, 2, 0, 0, 1, 1)),
			}},
			want: "MULTILINESTRING ((0 0, 1 1))",
		},
		{
			name: "envelope",
			g:    geometry.NewEnvelope(nil, []float64{0, 0}, []float64{2, 1}),
			want: "POLYGON ((0 0, 2 0, 2 1, 0 1, 0 0))",
		},
		{
			name: "collection",
			g: &geometry.MultiGeometry{Members: []geometry.Geometry{
				geometry.NewPoint("", nil, 1, 2),
				geometry.NewLineString("", nil, geometry.NewPoints(nil, 2, 3, 4, 5, 6)),
			}},
			want: "GEOMETRYCOLLECTION (POINT (1 2), LINESTRING (3 4, 5 6))",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MarshalWKT(tt.g)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToSimpleFeaturesSRID(t *testing.T) {
	g, err := Unmarshal([]byte(`<gml:Point xmlns:gml="http://www.opengis.net/gml" srsName="urn:ogc:def:crs:EPSG::25832"><gml:pos>1 2</gml:pos></gml:Point>`), DefaultParseOptions())
	require.NoError(t, err)
	sf, err := ToSimpleFeatures(g)
	require.NoError(t, err)
	assert.Equal(t, 25832, sf.SRID())
	assert.Equal(t, geom.XY, sf.Layout())

	resolver := NewCRSResolver()
	assert.Equal(t, 4326, SRID(resolver.Resolve("CRS:84")))
	assert.Equal(t, 0, SRID(resolver.Resolve("urn:example:local")))
	assert.Equal(t, 0, SRID(nil))
}

func TestToSimpleFeaturesUnsupported(t *testing.T) {
	unresolved := geometry.NewReference(geometry.KindPoint, "#missing", "", nil)
	tests := []struct {
		name  string
		g     Geometry
		check func(error) bool
	}{
		{"solid", &geometry.Solid{}, IsUnsupportedGeometry},
		{"tin", &geometry.Tin{ControlPoints: geometry.NewPoints(nil, 2, 0, 0, 1, 0, 0, 1)}, IsUnsupportedGeometry},
		{"unresolved reference", unresolved, IsUnresolvedReference},
		{"nil", nil, IsInvalidGeometry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToSimpleFeatures(tt.g)
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error: %v", err)
		})
	}
}
