package writer

import (
	"bytes"
	"encoding/xml"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beetlebugorg/gml/internal/crs"
	"github.com/beetlebugorg/gml/internal/dialect"
	"github.com/beetlebugorg/gml/internal/geometry"
	"github.com/beetlebugorg/gml/internal/parser"
	"github.com/beetlebugorg/gml/internal/xmlcursor"
)

const nsGML = `xmlns:gml="http://www.opengis.net/gml"`

func parse(t *testing.T, doc string, v dialect.Version) geometry.Geometry {
	t.Helper()
	opts := parser.DefaultParseOptions()
	opts.Version = v
	g, _, err := parser.ParseGeometry(xmlcursor.New(strings.NewReader(doc), ""), opts)
	require.NoError(t, err, doc)
	return g
}

func encode(t *testing.T, g geometry.Geometry, opts Options) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, g, opts))
	return buf.String()
}

func coordsOf(g geometry.Geometry) [][]float64 {
	var out [][]float64
	for _, p := range geometry.ControlPoints(g) {
		out = append(out, p.Coords)
	}
	return out
}

func TestEncodeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		// kind after a GML 3.2 round trip when it differs
		kind32 geometry.Kind
		// kind after a GML 2.1 round trip when it differs
		kind21 geometry.Kind
		// not expressible in GML 2.1
		no21 bool
	}{
		{
			name: "point",
			doc:  `<gml:Point ` + nsGML + ` gml:id="p1" srsName="EPSG:4326"><gml:pos>1 2</gml:pos></gml:Point>`,
		},
		{
			name: "point 3d",
			doc:  `<gml:Point ` + nsGML + ` gml:id="p3"><gml:pos srsDimension="3">1 2 3</gml:pos></gml:Point>`,
		},
		{
			name: "multi point",
			doc: `<gml:MultiPoint ` + nsGML + ` gml:id="mp1">
				<gml:pointMember><gml:Point gml:id="mp1a"><gml:pos>1 2</gml:pos></gml:Point></gml:pointMember>
				<gml:pointMember><gml:Point><gml:pos>3 4</gml:pos></gml:Point></gml:pointMember>
			</gml:MultiPoint>`,
		},
		{
			name: "line string 3d",
			doc:  `<gml:LineString ` + nsGML + ` gml:id="l1"><gml:posList srsDimension="3">0 0 1 1 1 2 2 0 3</gml:posList></gml:LineString>`,
		},
		{
			name: "polygon with hole",
			doc: `<gml:Polygon ` + nsGML + ` gml:id="poly1">
				<gml:exterior><gml:LinearRing gml:id="ring1"><gml:posList>0 0 10 0 10 10 0 10 0 0</gml:posList></gml:LinearRing></gml:exterior>
				<gml:interior><gml:LinearRing><gml:posList>2 2 4 2 4 4 2 2</gml:posList></gml:LinearRing></gml:interior>
			</gml:Polygon>`,
		},
		{
			name: "envelope",
			doc:  `<gml:Envelope ` + nsGML + ` srsName="EPSG:25832"><gml:lowerCorner>0 1</gml:lowerCorner><gml:upperCorner>2 3</gml:upperCorner></gml:Envelope>`,
		},
		{
			name: "linear curve",
			doc: `<gml:Curve ` + nsGML + ` gml:id="c2"><gml:segments>
				<gml:LineStringSegment interpolation="linear"><gml:posList>0 0 1 1 2 0</gml:posList></gml:LineStringSegment>
			</gml:segments></gml:Curve>`,
			kind21: geometry.KindLineString,
		},
		{
			name: "curve",
			no21: true,
			doc: `<gml:Curve ` + nsGML + ` gml:id="c1"><gml:segments>
				<gml:LineStringSegment interpolation="linear"><gml:posList>0 0 1 1</gml:posList></gml:LineStringSegment>
				<gml:Arc interpolation="circularArc3Points"><gml:posList>1 1 2 2 3 1</gml:posList></gml:Arc>
			</gml:segments></gml:Curve>`,
		},
		{
			name: "orientable curve",
			no21: true,
			doc: `<gml:OrientableCurve ` + nsGML + ` gml:id="oc1" orientation="-"><gml:baseCurve>
				<gml:LineString gml:id="l2"><gml:posList>0 0 5 5</gml:posList></gml:LineString>
			</gml:baseCurve></gml:OrientableCurve>`,
		},
		{
			name: "multi line string",
			doc: `<gml:MultiLineString ` + nsGML + ` gml:id="mls1">
				<gml:lineStringMember><gml:LineString><gml:posList>0 0 1 1</gml:posList></gml:LineString></gml:lineStringMember>
				<gml:lineStringMember><gml:LineString><gml:posList>2 2 3 3</gml:posList></gml:LineString></gml:lineStringMember>
			</gml:MultiLineString>`,
			kind32: geometry.KindMultiCurve,
		},
		{
			name: "multi polygon",
			doc: `<gml:MultiPolygon ` + nsGML + `><gml:polygonMember><gml:Polygon>
				<gml:exterior><gml:LinearRing><gml:posList>0 0 1 0 1 1 0 0</gml:posList></gml:LinearRing></gml:exterior>
			</gml:Polygon></gml:polygonMember></gml:MultiPolygon>`,
			kind32: geometry.KindMultiSurface,
		},
		{
			name: "surface",
			doc: `<gml:Surface ` + nsGML + ` gml:id="s1"><gml:patches>
				<gml:PolygonPatch interpolation="planar"><gml:exterior><gml:LinearRing><gml:posList>0 0 1 0 1 1 0 0</gml:posList></gml:LinearRing></gml:exterior></gml:PolygonPatch>
			</gml:patches></gml:Surface>`,
			kind21: geometry.KindPolygon,
		},
		{
			name: "tin",
			no21: true,
			doc: `<gml:Tin ` + nsGML + ` gml:id="t1">
				<gml:stopLines><gml:LineStringSegment interpolation="linear"><gml:posList>0 0 1 1</gml:posList></gml:LineStringSegment></gml:stopLines>
				<gml:maxLength uom="m">10</gml:maxLength>
				<gml:controlPoint><gml:posList>0 0 1 0 0 1</gml:posList></gml:controlPoint>
			</gml:Tin>`,
		},
	}
	for _, tt := range tests {
		src := parse(t, tt.doc, dialect.Unknown)
		versions := []dialect.Version{dialect.GML30, dialect.GML31, dialect.GML32}
		if !tt.no21 {
			versions = append(versions, dialect.GML21)
		}
		for _, v := range versions {
			t.Run(tt.name+"/"+v.String(), func(t *testing.T) {
				out := encode(t, src, Options{Version: v})
				got := parse(t, out, v)

				want := src.Kind()
				if v == dialect.GML32 && tt.kind32 != geometry.KindUnknown {
					want = tt.kind32
				}
				if v == dialect.GML21 && tt.kind21 != geometry.KindUnknown {
					want = tt.kind21
				}
				assert.Equal(t, want, got.Kind(), out)
				if src.ID() != "" {
					assert.Equal(t, src.ID(), got.ID())
				}
				assert.Equal(t, coordsOf(src), coordsOf(got))
				assert.Equal(t, src.CRS().Name(), got.CRS().Name())
			})
		}
	}
}

func TestEncodeGML32(t *testing.T) {
	ls := geometry.NewLineString("", nil, geometry.NewPoints(nil, 2, 0, 0, 1, 1))
	mls := geometry.NewMultiLineString("", nil, ls)

	n := 0
	out := encode(t, mls, Options{Version: dialect.GML32, NewID: func() string {
		n++
		return "GEOMETRY_" + string(rune('0'+n))
	}})
	assert.Contains(t, out, `xmlns:gml="http://www.opengis.net/gml/3.2"`)
	assert.Contains(t, out, `<gml:MultiCurve`)
	assert.Contains(t, out, `gml:id="GEOMETRY_1"`)
	assert.Contains(t, out, `<gml:curveMember>`)
	assert.Contains(t, out, `gml:id="GEOMETRY_2"`)
	assert.Contains(t, out, `<gml:posList srsDimension="2">0 0 1 1</gml:posList>`)
	assert.NotContains(t, out, "lineStringMember")

	out = encode(t, ls, DefaultOptions())
	assert.Contains(t, out, `gml:id="GEOMETRY_`)
}

func TestEncodeRingsHaveNoIDIn32(t *testing.T) {
	ring := geometry.NewLinearRing("r1", nil, geometry.NewPoints(nil, 2, 0, 0, 1, 0, 1, 1, 0, 0))
	poly := geometry.NewPolygon("p1", nil, ring, nil)

	out := encode(t, poly, Options{Version: dialect.GML32})
	assert.Contains(t, out, `gml:id="p1"`)
	assert.NotContains(t, out, `r1`)

	out = encode(t, poly, Options{Version: dialect.GML31})
	assert.Contains(t, out, `gml:id="r1"`)
}

func TestEncodeGML30(t *testing.T) {
	ls := geometry.NewLineString("l1", nil, geometry.NewPoints(nil, 2, 0, 0, 1, 1))
	out := encode(t, ls, Options{Version: dialect.GML30})
	assert.Contains(t, out, `<gml:pos>0 0</gml:pos><gml:pos>1 1</gml:pos>`)
	assert.NotContains(t, out, "posList")

	env := geometry.NewEnvelope(nil, []float64{0, 1}, []float64{2, 3})
	out = encode(t, env, Options{Version: dialect.GML30})
	assert.Contains(t, out, `<gml:Envelope`)
	assert.Contains(t, out, `<gml:pos>0 1</gml:pos><gml:pos>2 3</gml:pos>`)

	out = encode(t, env, Options{Version: dialect.GML31})
	assert.Contains(t, out, `<gml:lowerCorner>0 1</gml:lowerCorner><gml:upperCorner>2 3</gml:upperCorner>`)
	assert.NotContains(t, out, "gml:id")
}

func TestEncodeXLinkDedup(t *testing.T) {
	p := geometry.NewPoint("p1", nil, 1, 2)
	mg := &geometry.MultiGeometry{Base: geometry.Base{GID: "mg1"}, Members: []geometry.Geometry{p, p}}

	out := encode(t, mg, Options{Version: dialect.GML31})
	assert.Equal(t, 1, strings.Count(out, `gml:id="p1"`))
	assert.Contains(t, out, `<gml:geometryMember xmlns:xlink="http://www.w3.org/1999/xlink" xlink:href="#p1"></gml:geometryMember>`)

	got := parse(t, out, dialect.GML31)
	require.Len(t, got.(*geometry.MultiGeometry).Members, 2)
}

func TestEncodeSharedExportedIDs(t *testing.T) {
	var buf bytes.Buffer
	sink := xmlcursor.NewWriter(&buf)
	ids := NewIDSet()
	w := New(sink, Options{Version: dialect.GML31, Exported: ids})

	p := geometry.NewPoint("p1", nil, 1, 2)
	require.NoError(t, w.Write(p))
	require.NoError(t, w.Write(geometry.NewMultiPoint("mp1", nil, p)))
	require.NoError(t, sink.Flush())

	assert.True(t, ids.Contains("p1"))
	assert.True(t, ids.Contains("mp1"))
	assert.Equal(t, 2, ids.Len())
	assert.Equal(t, 1, strings.Count(buf.String(), `gml:id="p1"`))
	assert.Contains(t, buf.String(), `xlink:href="#p1"`)
	assert.Equal(t, dialect.GML31, w.Version())
}

func TestEncodeReference(t *testing.T) {
	ref := geometry.NewReference(geometry.KindPoint, "other.gml#p9", "", nil)
	mp := geometry.NewMultiPoint("mp1", nil, ref)

	out := encode(t, mp, Options{Version: dialect.GML31})
	assert.Contains(t, out, `xlink:href="other.gml#p9"`)

	var buf bytes.Buffer
	err := Encode(&buf, ref, Options{Version: dialect.GML31})
	var unresolved *geometry.ErrUnresolvedReference
	assert.True(t, errors.As(err, &unresolved))
}

func TestEncodeProperties(t *testing.T) {
	p := geometry.NewPoint("p1", nil, 1, 2)
	geometry.Attach(p, xml31("Point"), []geometry.Property{
		{Name: xml31("name"), Value: "Tower", CodeSpace: "urn:names"},
		{Name: appName("height"), Value: "42"},
	})

	out := encode(t, p, Options{Version: dialect.GML32})
	name := strings.Index(out, `<gml:name codeSpace="urn:names">Tower</gml:name>`)
	pos := strings.Index(out, `<gml:pos>`)
	height := strings.Index(out, `>42</`)
	require.True(t, name > 0 && pos > 0 && height > 0, out)
	assert.Less(t, name, pos)
	assert.Less(t, pos, height)
	assert.Contains(t, out, `xmlns:ns1="urn:app"`)
}

func TestEncodeApplicationElement(t *testing.T) {
	p := geometry.NewPoint("p1", nil, 1, 2)
	geometry.Attach(p, appName("Point"), nil)
	out := encode(t, p, Options{Version: dialect.GML31})
	assert.True(t, strings.HasPrefix(out, `<ns1:Point xmlns:ns1="urn:app"`), out)

	geometry.Attach(p, appName("Position"), nil)
	out = encode(t, p, Options{Version: dialect.GML31})
	assert.True(t, strings.HasPrefix(out, `<gml:Point`), out)
}

func TestEncodeSRSNameScope(t *testing.T) {
	r := crs.NewResolver()
	srs := r.Resolve("EPSG:4326")
	mp := geometry.NewMultiPoint("mp1", srs,
		geometry.NewPoint("a", srs, 1, 2),
		geometry.NewPoint("b", r.Resolve("EPSG:25832"), 500000, 0),
	)
	out := encode(t, mp, Options{Version: dialect.GML31})
	assert.Equal(t, 1, strings.Count(out, `srsName="EPSG:4326"`))
	assert.Equal(t, 1, strings.Count(out, `srsName="EPSG:25832"`))
}

func TestEncodeOutputCRS(t *testing.T) {
	r := crs.NewResolver()
	p := geometry.NewPoint("p1", r.Resolve("EPSG:4326"), 9, 0)

	out := encode(t, p, Options{Version: dialect.GML31, OutputCRS: "EPSG:25832", Resolver: r})
	assert.Contains(t, out, `srsName="EPSG:25832"`)
	got := parse(t, out, dialect.GML31).(*geometry.Point)
	assert.InDelta(t, 500000, got.X(), 1e-3)
	assert.InDelta(t, 0, got.Y(), 1e-3)

	// Without a source CRS nothing is transformed.
	plain := geometry.NewPoint("p2", nil, 9, 0)
	out = encode(t, plain, Options{Version: dialect.GML31, OutputCRS: "EPSG:25832"})
	assert.Contains(t, out, `<gml:pos>9 0</gml:pos>`)
	assert.NotContains(t, out, "srsName")
}

func TestEncodeOutputCRSAxisOrder(t *testing.T) {
	r := crs.NewResolver()
	latLon := geometry.NewPoint("p1", r.Resolve("urn:ogc:def:crs:EPSG::4326"), 52.5, 13.4)
	lonLat := geometry.NewPoint("p2", r.Resolve("EPSG:4326"), 13.4, 52.5)

	for _, p := range []*geometry.Point{latLon, lonLat} {
		out := encode(t, p, Options{Version: dialect.GML32, OutputCRS: "EPSG:3857", Resolver: r})
		got := parse(t, out, dialect.GML32).(*geometry.Point)
		assert.InDelta(t, 1491681.18, got.X(), 0.01, out)
		assert.InDelta(t, 6891041.72, got.Y(), 0.01, out)
	}

	out := encode(t, lonLat, Options{Version: dialect.GML32, OutputCRS: "urn:ogc:def:crs:EPSG::4326", Resolver: r})
	assert.Contains(t, out, `srsName="urn:ogc:def:crs:EPSG::4326"`)
	assert.Contains(t, out, `<gml:pos>52.5 13.4</gml:pos>`)
}

func TestEncodeTinPatches(t *testing.T) {
	tin := &geometry.Tin{
		Base:          geometry.Base{GID: "t1"},
		ControlPoints: geometry.NewPoints(nil, 2, 0, 0, 1, 0, 0, 1),
	}
	tests := []struct {
		version   dialect.Version
		container string
	}{
		{dialect.GML30, "trianglePatches"},
		{dialect.GML31, "trianglePatches"},
		{dialect.GML32, "patches"},
	}
	for _, tt := range tests {
		t.Run(tt.version.String(), func(t *testing.T) {
			out := encode(t, tin, Options{Version: tt.version})
			assert.Contains(t, out, `<gml:`+tt.container+`></gml:`+tt.container+`>`)
			assert.Less(t, strings.Index(out, tt.container), strings.Index(out, "controlPoint"))

			got := parse(t, out, tt.version).(*geometry.Tin)
			assert.Empty(t, got.Patches)
			assert.Len(t, got.ControlPoints, 3)
		})
	}

	tin.Patches = []*geometry.Triangle{{Exterior: square("")}}
	out := encode(t, tin, Options{Version: dialect.GML31})
	assert.Contains(t, out, `<gml:trianglePatches><gml:Triangle`)
	assert.Len(t, parse(t, out, dialect.GML31).(*geometry.Tin).Patches, 1)
}

func TestEncodeUnknownOutputCRS(t *testing.T) {
	p := geometry.NewPoint("p1", crs.NewResolver().Resolve("EPSG:4326"), 9, 0)
	var buf bytes.Buffer
	err := Encode(&buf, p, Options{Version: dialect.GML31, OutputCRS: "urn:local:crs"})
	var unk *crs.ErrUnknownCRS
	require.True(t, errors.As(err, &unk), "%v", err)
	assert.Equal(t, "urn:local:crs", unk.Name)
}

type replaceSimplifier struct {
	with  geometry.Geometry
	calls int
}

func (s *replaceSimplifier) Simplify(g geometry.Geometry) (geometry.Geometry, error) {
	s.calls++
	return s.with, nil
}

func TestEncodeSimplifier(t *testing.T) {
	s := &replaceSimplifier{with: geometry.NewPoint("simple", nil, 0, 0)}
	ls := geometry.NewLineString("l1", nil, geometry.NewPoints(nil, 2, 0, 0, 1, 1))

	out := encode(t, ls, Options{Version: dialect.GML31, Simplifier: s})
	assert.Contains(t, out, `gml:id="simple"`)
	assert.Equal(t, 1, s.calls)

	env := geometry.NewEnvelope(nil, []float64{0, 0}, []float64{1, 1})
	out = encode(t, env, Options{Version: dialect.GML31, Simplifier: s})
	assert.Contains(t, out, "Envelope")
	assert.Equal(t, 1, s.calls)
}

func TestEncodeNil(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, nil, DefaultOptions())
	var invalid *geometry.ErrInvalidGeometry
	assert.True(t, errors.As(err, &invalid))
}

func TestEncodeIndent(t *testing.T) {
	p := geometry.NewPoint("p1", nil, 1, 2)
	out := encode(t, p, Options{Version: dialect.GML31, Indent: "  "})
	assert.Contains(t, out, "\n  <gml:pos>1 2</gml:pos>\n")
}

func xml31(local string) xml.Name   { return dialect.GML31.Name(local) }
func appName(local string) xml.Name { return xml.Name{Space: "urn:app", Local: local} }
