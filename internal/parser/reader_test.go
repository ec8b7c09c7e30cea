package parser

import (
	"encoding/xml"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beetlebugorg/gml/internal/dialect"
	"github.com/beetlebugorg/gml/internal/geometry"
	"github.com/beetlebugorg/gml/internal/xmlcursor"
)

const (
	nsGML   = `xmlns:gml="http://www.opengis.net/gml" xmlns:xlink="http://www.w3.org/1999/xlink"`
	nsGML32 = `xmlns:gml="http://www.opengis.net/gml/3.2" xmlns:xlink="http://www.w3.org/1999/xlink"`
)

func readString(doc string, opts ParseOptions) (geometry.Geometry, *Registry, error) {
	return ParseGeometry(xmlcursor.NewString(doc), opts)
}

func mustRead(t *testing.T, doc string) geometry.Geometry {
	t.Helper()
	g, _, err := readString(doc, DefaultParseOptions())
	require.NoError(t, err)
	require.NotNil(t, g)
	return g
}

func coordsOf(points []*geometry.Point) [][]float64 {
	out := make([][]float64, len(points))
	for i, p := range points {
		out[i] = p.Coords
	}
	return out
}

func TestReadPoint(t *testing.T) {
	g, reg, err := readString(`<gml:Point gml:id="p1" srsName="EPSG:4326" `+nsGML+`><gml:pos>1 2</gml:pos></gml:Point>`,
		DefaultParseOptions())
	require.NoError(t, err)

	p, ok := g.(*geometry.Point)
	require.True(t, ok)
	assert.Equal(t, "p1", p.ID())
	assert.Equal(t, []float64{1, 2}, p.Coords)
	assert.Equal(t, "EPSG:4326", p.CRS().Name())
	assert.Equal(t, xml.Name{Space: dialect.NamespaceGML, Local: "Point"}, p.TypeName())

	stored, ok := reg.Get("p1")
	require.True(t, ok)
	assert.Same(t, p, stored)
}

func TestLineStringArity(t *testing.T) {
	_, _, err := readString(`<gml:LineString gml:id="l" `+nsGML+`><gml:pos>0 0</gml:pos></gml:LineString>`,
		DefaultParseOptions())
	require.Error(t, err)
	var invalid *geometry.ErrInvalidGeometry
	require.True(t, errors.As(err, &invalid), "got %v", err)
	assert.Equal(t, geometry.KindLineString, invalid.Kind)
	assert.Equal(t, "l", invalid.ID)

	g := mustRead(t, `<gml:LineString gml:id="l" `+nsGML+`><gml:pos>0 0</gml:pos><gml:pos>1 1</gml:pos></gml:LineString>`)
	assert.Len(t, g.(*geometry.LineString).Points, 2)
}

func TestLinearRingArity(t *testing.T) {
	tests := []struct {
		name    string
		posList string
		wantErr bool
	}{
		{"three points", "0 0 1 0 0 0", true},
		{"four points", "0 0 1 0 1 1 0 0", false},
		{"five points", "0 0 1 0 1 1 0 1 0 0", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := `<gml:Polygon gml:id="poly" ` + nsGML + `><gml:exterior><gml:LinearRing>` +
				`<gml:posList>` + tt.posList + `</gml:posList></gml:LinearRing></gml:exterior></gml:Polygon>`
			g, _, err := readString(doc, DefaultParseOptions())
			if tt.wantErr {
				var invalid *geometry.ErrInvalidGeometry
				require.True(t, errors.As(err, &invalid), "got %v", err)
				assert.Equal(t, geometry.KindLinearRing, invalid.Kind)
				return
			}
			require.NoError(t, err)
			p := g.(*geometry.Polygon)
			assert.IsType(t, &geometry.LinearRing{}, p.Exterior)
			assert.Nil(t, p.Interiors)
		})
	}
}

func TestRingCurveMembers(t *testing.T) {
	ring := func(posList string) string {
		return `<gml:Polygon ` + nsGML + `><gml:exterior><gml:Ring><gml:curveMember><gml:LineString>` +
			`<gml:posList>` + posList + `</gml:posList></gml:LineString></gml:curveMember></gml:Ring></gml:exterior></gml:Polygon>`
	}

	_, _, err := readString(ring("0 0 1 0 0 0"), DefaultParseOptions())
	var invalid *geometry.ErrInvalidGeometry
	require.True(t, errors.As(err, &invalid), "got %v", err)
	assert.Equal(t, geometry.KindRing, invalid.Kind)

	g := mustRead(t, ring("0 0 1 0 1 1 0 0"))
	r := g.(*geometry.Polygon).Exterior.(*geometry.Ring)
	require.Len(t, r.Members, 1)
	assert.Len(t, geometry.CurvePoints(r), 4)

	// References are not counted.
	g = mustRead(t, `<gml:Polygon `+nsGML+`><gml:exterior><gml:Ring><gml:curveMember xlink:href="#c1"/>`+
		`</gml:Ring></gml:exterior></gml:Polygon>`)
	r = g.(*geometry.Polygon).Exterior.(*geometry.Ring)
	assert.IsType(t, &geometry.Reference{}, r.Members[0])
}

func TestPropertyReference(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"href", `<gml:exterior xlink:href="#r1"/>`, false},
		{"href and inline", `<gml:exterior xlink:href="#r1"><gml:LinearRing><gml:posList>0 0 1 0 1 1 0 0</gml:posList></gml:LinearRing></gml:exterior>`, true},
		{"neither", `<gml:exterior></gml:exterior>`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, reg, err := readString(`<gml:Polygon gml:id="p" `+nsGML+`>`+tt.content+`</gml:Polygon>`, DefaultParseOptions())
			if tt.wantErr {
				var structural *xmlcursor.StructuralError
				require.True(t, errors.As(err, &structural), "got %v", err)
				return
			}
			require.NoError(t, err)
			ref, ok := g.(*geometry.Polygon).Exterior.(*geometry.Reference)
			require.True(t, ok)
			assert.Equal(t, "#r1", ref.Href)
			assert.Equal(t, geometry.KindRing, ref.Super)
			assert.False(t, ref.Resolved())
			assert.Len(t, reg.Pending(), 1)
		})
	}
}

func TestMultiPointMembers(t *testing.T) {
	g := mustRead(t, `<gml:MultiPoint gml:id="mp" `+nsGML+`>`+
		`<gml:pointMember><gml:Point><gml:pos>0 0</gml:pos></gml:Point></gml:pointMember>`+
		`<gml:pointMembers><gml:Point><gml:pos>1 1</gml:pos></gml:Point><gml:Point><gml:pos>2 2</gml:pos></gml:Point></gml:pointMembers>`+
		`</gml:MultiPoint>`)
	mp := g.(*geometry.MultiPoint)
	require.Len(t, mp.Members, 3)
	assert.Equal(t, []float64{2, 2}, mp.Members[2].(*geometry.Point).Coords)

	_, _, err := readString(`<gml:MultiPoint `+nsGML+`>`+
		`<gml:pointMembers><gml:Point><gml:pos>1 1</gml:pos></gml:Point></gml:pointMembers>`+
		`<gml:pointMember><gml:Point><gml:pos>0 0</gml:pos></gml:Point></gml:pointMember>`+
		`</gml:MultiPoint>`, DefaultParseOptions())
	var structural *xmlcursor.StructuralError
	require.True(t, errors.As(err, &structural), "got %v", err)

	g = mustRead(t, `<gml:MultiCurve gml:id="empty" `+nsGML+`/>`)
	assert.Empty(t, g.(*geometry.MultiCurve).Members)
}

func TestCompositeRequiresMembers(t *testing.T) {
	_, _, err := readString(`<gml:CompositeCurve gml:id="cc" `+nsGML+`></gml:CompositeCurve>`, DefaultParseOptions())
	var invalid *geometry.ErrInvalidGeometry
	require.True(t, errors.As(err, &invalid), "got %v", err)
	assert.Equal(t, geometry.KindCompositeCurve, invalid.Kind)
}

func TestGML2Polygon(t *testing.T) {
	g := mustRead(t, `<gml:Polygon gid="p" xmlns:gml="http://www.opengis.net/gml"><gml:outerBoundaryIs><gml:LinearRing>`+
		`<gml:coordinates>0,0 1,0 1,1 0,0</gml:coordinates></gml:LinearRing></gml:outerBoundaryIs></gml:Polygon>`)
	p := g.(*geometry.Polygon)
	assert.Equal(t, "p", p.ID())
	assert.Nil(t, p.Interiors)
	assert.Equal(t, [][]float64{{0, 0}, {1, 0}, {1, 1}, {0, 0}}, coordsOf(p.Exterior.(*geometry.LinearRing).Points))
}

func TestGML2MultiGeometry(t *testing.T) {
	opts := DefaultParseOptions()
	opts.Version = dialect.GML21
	g, _, err := readString(`<gml:MultiGeometry xmlns:gml="http://www.opengis.net/gml">`+
		`<gml:geometryMember><gml:Point><gml:coord><gml:X>1</gml:X><gml:Y>2</gml:Y></gml:coord></gml:Point></gml:geometryMember>`+
		`<gml:geometryMember><gml:LineString><gml:coordinates>0,0 1,1</gml:coordinates></gml:LineString></gml:geometryMember>`+
		`</gml:MultiGeometry>`, opts)
	require.NoError(t, err)
	mg := g.(*geometry.MultiGeometry)
	require.Len(t, mg.Members, 2)
	assert.Equal(t, []float64{1, 2}, mg.Members[0].(*geometry.Point).Coords)
	assert.Len(t, mg.Members[1].(*geometry.LineString).Points, 2)
}

func TestGML32PosList(t *testing.T) {
	g := mustRead(t, `<gml:LineString gml:id="l" srsName="urn:ogc:def:crs:EPSG::4326" srsDimension="2" `+nsGML32+`>`+
		`<gml:posList>0 0 1 1 2 2 3 3</gml:posList></gml:LineString>`)
	ls := g.(*geometry.LineString)
	assert.Len(t, ls.Points, 4)
	assert.Equal(t, dialect.NamespaceGML32, ls.TypeName().Space)
	assert.Equal(t, "EPSG:4326", ls.CRS().Code())
}

func TestInvalidIdentifier(t *testing.T) {
	_, _, err := readString(`<gml:Point gml:id="1abc" `+nsGML+`><gml:pos>1 2</gml:pos></gml:Point>`, DefaultParseOptions())
	var invalid *ErrInvalidIdentifier
	require.True(t, errors.As(err, &invalid), "got %v", err)
	assert.Equal(t, "1abc", invalid.ID)
}

func TestImplicitGeometryUnsupported(t *testing.T) {
	_, _, err := readString(`<gml:Grid gml:id="g" dimension="2" `+nsGML+`><gml:limits/></gml:Grid>`, DefaultParseOptions())
	var unsupported *geometry.ErrUnsupportedGeometry
	require.True(t, errors.As(err, &unsupported), "got %v", err)
}

func TestUnknownElement(t *testing.T) {
	opts := DefaultParseOptions()
	opts.Version = dialect.GML31
	_, _, err := readString(`<gml:Feature `+nsGML+`/>`, opts)
	var unknown *dialect.ErrUnknownElement
	require.True(t, errors.As(err, &unknown), "got %v", err)
}

func TestCursorPostcondition(t *testing.T) {
	c := xmlcursor.NewString(`<root ` + nsGML + `><gml:Point gml:id="p"><gml:name>n</gml:name>` +
		`<gml:pos>1 2</gml:pos></gml:Point><after/></root>`)
	require.NoError(t, c.Start())
	_, err := c.NextTag()
	require.NoError(t, err)

	r := NewReader(c, dialect.GML31, nil, DefaultParseOptions())
	_, err = r.Read(nil)
	require.NoError(t, err)
	assert.True(t, c.IsEndElement())
	assert.Equal(t, "Point", c.LocalName())

	_, err = c.NextTag()
	require.NoError(t, err)
	assert.Equal(t, "after", c.LocalName())
}

func TestStandardProperties(t *testing.T) {
	g := mustRead(t, `<gml:Point gml:id="p" `+nsGML+`><gml:description>A point</gml:description>`+
		`<gml:name codeSpace="urn:names">P1</gml:name><gml:name>Alias</gml:name><gml:pos>1 2</gml:pos></gml:Point>`)
	props := g.Properties()
	require.Len(t, props, 3)
	assert.Equal(t, "description", props[0].Name.Local)
	assert.Equal(t, "A point", props[0].Value)
	assert.Equal(t, "urn:names", props[1].CodeSpace)
	assert.Equal(t, "Alias", props[2].Value)
}

func TestApplicationSchema(t *testing.T) {
	site := xml.Name{Space: "urn:app", Local: "Site"}
	height := xml.Name{Space: "urn:app", Local: "height"}
	h := dialect.NewStaticHierarchy(dialect.GML31)
	require.NoError(t, h.Substitute(site, "Point"))
	h.DeclareProperties(site, height)

	opts := DefaultParseOptions()
	opts.Hierarchy = h
	g, _, err := readString(`<app:Site xmlns:app="urn:app" gml:id="s1" `+nsGML+`>`+
		`<gml:pos>1 2</gml:pos><app:height>12</app:height></app:Site>`, opts)
	require.NoError(t, err)
	assert.Equal(t, site, g.TypeName())
	assert.Equal(t, geometry.KindPoint, g.Kind())
	require.Len(t, g.Properties(), 1)
	assert.Equal(t, "12", g.Properties()[0].Value)

	// The schema enforces the order of standard properties.
	_, _, err = readString(`<gml:Point `+nsGML+`><gml:name>n</gml:name><gml:description>d</gml:description>`+
		`<gml:pos>1 2</gml:pos></gml:Point>`, opts)
	var structural *xmlcursor.StructuralError
	require.True(t, errors.As(err, &structural), "got %v", err)

	// Undeclared elements are rejected.
	_, _, err = readString(`<app:Other xmlns:app="urn:app" `+nsGML+`/>`, opts)
	var unknown *dialect.ErrUnknownElement
	require.True(t, errors.As(err, &unknown), "got %v", err)
}

func TestOrientableCurve(t *testing.T) {
	tests := []struct {
		attr     string
		reversed bool
	}{
		{"", true},
		{` orientation="-"`, true},
		{` orientation="+"`, false},
	}
	for _, tt := range tests {
		g := mustRead(t, `<gml:OrientableCurve gml:id="oc"`+tt.attr+` `+nsGML+`><gml:baseCurve xlink:href="#c1"/></gml:OrientableCurve>`)
		oc := g.(*geometry.OrientableCurve)
		assert.Equal(t, tt.reversed, oc.Reversed, "orientation %q", tt.attr)
		assert.IsType(t, &geometry.Reference{}, oc.BaseCurve)
	}

	_, _, err := readString(`<gml:OrientableCurve orientation="x" `+nsGML+`><gml:baseCurve xlink:href="#c1"/></gml:OrientableCurve>`,
		DefaultParseOptions())
	require.Error(t, err)
}

func TestEnvelope(t *testing.T) {
	g, reg, err := readString(`<gml:Envelope srsName="EPSG:4326" `+nsGML+`><gml:lowerCorner>0 1</gml:lowerCorner>`+
		`<gml:upperCorner>2 3</gml:upperCorner></gml:Envelope>`, DefaultParseOptions())
	require.NoError(t, err)
	env := g.(*geometry.Envelope)
	assert.Equal(t, []float64{0, 1}, env.Min)
	assert.Equal(t, []float64{2, 3}, env.Max)
	assert.Equal(t, "EPSG:4326", env.CRS().Name())
	assert.Zero(t, reg.Len())

	// Without its own srsName the envelope takes the CRS of its first position.
	g = mustRead(t, `<gml:Envelope `+nsGML+`><gml:pos srsName="EPSG:3857">0 1</gml:pos><gml:pos>2 3</gml:pos></gml:Envelope>`)
	assert.Equal(t, "EPSG:3857", g.CRS().Name())

	_, _, err = readString(`<gml:Envelope `+nsGML+`><gml:pos>0 1</gml:pos></gml:Envelope>`, DefaultParseOptions())
	require.Error(t, err)
}

func TestBox(t *testing.T) {
	g := mustRead(t, `<gml:Box srsName="EPSG:4326" xmlns:gml="http://www.opengis.net/gml"><gml:coordinates>0,0 2,3</gml:coordinates></gml:Box>`)
	env := g.(*geometry.Envelope)
	assert.Equal(t, []float64{2, 3}, env.Max)
	assert.Equal(t, "Box", env.TypeName().Local)
}

func TestSolid(t *testing.T) {
	g := mustRead(t, `<gml:Solid gml:id="s" `+nsGML+`><gml:exterior><gml:CompositeSurface>`+
		`<gml:surfaceMember><gml:Polygon><gml:exterior><gml:LinearRing><gml:posList srsDimension="3">0 0 0 1 0 0 1 1 0 0 0 0</gml:posList>`+
		`</gml:LinearRing></gml:exterior></gml:Polygon></gml:surfaceMember>`+
		`<gml:surfaceMember xlink:href="#other"/>`+
		`</gml:CompositeSurface></gml:exterior></gml:Solid>`)
	s := g.(*geometry.Solid)
	cs := s.Exterior.(*geometry.CompositeSurface)
	require.Len(t, cs.Members, 2)
	ring := cs.Members[0].(*geometry.Polygon).Exterior.(*geometry.LinearRing)
	assert.Equal(t, []float64{1, 0, 0}, ring.Points[1].Coords)
}

func TestGeometricComplex(t *testing.T) {
	g := mustRead(t, `<gml:GeometricComplex gml:id="gc" `+nsGML+`>`+
		`<gml:element><gml:Point gml:id="a"><gml:pos>0 0</gml:pos></gml:Point></gml:element>`+
		`<gml:element xlink:href="#b"/></gml:GeometricComplex>`)
	gc := g.(*geometry.GeometricComplex)
	require.Len(t, gc.Members, 2)
	assert.Equal(t, geometry.KindGeometricPrimitive, gc.Members[1].(*geometry.Reference).Super)

	_, _, err := readString(`<gml:GeometricComplex `+nsGML+`><gml:element><gml:MultiPoint/></gml:element></gml:GeometricComplex>`,
		DefaultParseOptions())
	require.Error(t, err)
}
