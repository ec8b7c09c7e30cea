package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beetlebugorg/gml/internal/crs"
	"github.com/beetlebugorg/gml/internal/geometry"
	"github.com/beetlebugorg/gml/internal/xmlcursor"
)

// readControlPoints reads the control points starting at the current
// child: a posList, a coordinates element, or a run of pos, pointProperty,
// pointRep and coord elements. It stops on the first other event, which is
// where the cursor is left.
func (r *Reader) readControlPoints(srs *crs.CRS) ([]*geometry.Point, error) {
	switch {
	case r.isGML("posList"):
		points, err := r.readPosList(srs)
		if err != nil {
			return nil, err
		}
		return points, r.next()
	case r.isGML("coordinates"):
		points, err := r.readCoordinates(srs)
		if err != nil {
			return nil, err
		}
		return points, r.next()
	}
	var points []*geometry.Point
	for r.isGML("pos", "pointProperty", "pointRep", "coord") {
		var p *geometry.Point
		var err error
		switch r.c.LocalName() {
		case "pos":
			p, err = r.readPos(srs)
		case "coord":
			p, err = r.readCoord(srs)
		default:
			p, err = r.readControlPointProperty(srs)
		}
		if err != nil {
			return nil, err
		}
		points = append(points, p)
		if err := r.next(); err != nil {
			return nil, err
		}
	}
	return points, nil
}

// readTuples reads the GML 2 control point forms: a coordinates element or a
// run of coord elements.
func (r *Reader) readTuples(srs *crs.CRS) ([]*geometry.Point, error) {
	if r.isGML("coordinates") {
		points, err := r.readCoordinates(srs)
		if err != nil {
			return nil, err
		}
		return points, r.next()
	}
	var points []*geometry.Point
	for r.isGML("coord") {
		p, err := r.readCoord(srs)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
		if err := r.next(); err != nil {
			return nil, err
		}
	}
	return points, nil
}

// readControlPointProperty reads a pointProperty or pointRep inside a
// control point list. A reference yields a point without coordinates.
func (r *Reader) readControlPointProperty(srs *crs.CRS) (*geometry.Point, error) {
	g, err := r.readPointProperty(srs)
	if err != nil {
		return nil, err
	}
	if ref, ok := g.(*geometry.Reference); ok {
		return &geometry.Point{Base: geometry.Base{SRS: srs}, Ref: ref}, nil
	}
	return g.(*geometry.Point), nil
}

// dimension resolves the coordinate dimension of the current pos or posList:
// srsDimension (or the GML 3.0 dimension attribute), then the dimension of
// the active CRS, then the configured default.
func (r *Reader) dimension(srs *crs.CRS) (int, bool, error) {
	for _, attr := range []string{"srsDimension", "dimension"} {
		if v, ok := r.c.Attr("", attr); ok {
			d, valid := parsePositiveInt(v)
			if !valid {
				return 0, false, r.c.Errorf("invalid %s '%s'", attr, v)
			}
			return d, true, nil
		}
	}
	if d := srs.Dimension(); d > 0 {
		return d, false, nil
	}
	return r.defDim, false, nil
}

// readPos reads a single direct position (pos, lowerCorner, location...).
// All tokens form one point; an explicit srsDimension must match their
// number.
func (r *Reader) readPos(srs *crs.CRS) (*geometry.Point, error) {
	srs = r.activeCRS(srs)
	dim, explicit, err := r.dimension(srs)
	if err != nil {
		return nil, err
	}
	loc := r.c.Location()
	values, err := r.readDoubles()
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, r.c.Errorf("empty position")
	}
	if explicit && len(values) != dim {
		return nil, &ErrDimensionMismatch{Location: loc, Count: len(values), Dimension: dim}
	}
	return geometry.NewPoint("", srs, values...), nil
}

// readPosList reads a posList and groups its tokens by the resolved
// dimension.
func (r *Reader) readPosList(srs *crs.CRS) ([]*geometry.Point, error) {
	srs = r.activeCRS(srs)
	dim, _, err := r.dimension(srs)
	if err != nil {
		return nil, err
	}
	loc := r.c.Location()
	values, err := r.readDoubles()
	if err != nil {
		return nil, err
	}
	if len(values)%dim != 0 {
		return nil, &ErrDimensionMismatch{Location: loc, Count: len(values), Dimension: dim}
	}
	return geometry.NewPoints(srs, dim, values...), nil
}

// readVector reads a whitespace separated list of doubles (normal,
// refDirection, vectorAtStart...).
func (r *Reader) readVector(local string) ([]float64, error) {
	if err := r.requireStart(local); err != nil {
		return nil, err
	}
	values, err := r.readDoubles()
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, r.c.Errorf("empty vector 'gml:%s'", local)
	}
	return values, nil
}

func (r *Reader) readDoubles() ([]float64, error) {
	text, err := r.c.ElementText()
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(text)
	values := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, r.c.Errorf("value '%s' cannot be parsed as a double", f)
		}
		values = append(values, v)
	}
	return values, nil
}

// readCoordinates reads a delimited coordinates element. Only '.' is
// supported as decimal separator.
func (r *Reader) readCoordinates(srs *crs.CRS) ([]*geometry.Point, error) {
	decimal := r.c.AttrDefault("", "decimal", ".")
	if decimal != "." {
		return nil, &ErrUnsupportedFormat{
			Location: r.c.Location(),
			Format:   fmt.Sprintf("decimal separator '%s' in gml:coordinates", decimal),
		}
	}
	cs := r.c.AttrDefault("", "cs", ",")
	ts := r.c.AttrDefault("", "ts", " ")
	text, err := r.c.ElementText()
	if err != nil {
		return nil, err
	}
	var points []*geometry.Point
	for _, tuple := range split(text, ts) {
		parts := split(tuple, cs)
		if len(parts) == 0 {
			continue
		}
		coords := make([]float64, len(parts))
		for i, part := range parts {
			v, err := strconv.ParseFloat(part, 64)
			if err != nil {
				return nil, r.c.Errorf("value '%s' cannot be parsed as a double", part)
			}
			coords[i] = v
		}
		points = append(points, geometry.NewPoint("", srs, coords...))
	}
	return points, nil
}

// split cuts s at sep and drops empty pieces. A whitespace separator
// matches any run of whitespace.
func split(s, sep string) []string {
	if strings.TrimSpace(sep) == "" {
		return strings.Fields(s)
	}
	var out []string
	for _, p := range strings.Split(s, sep) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// readCoord reads a coord element: X, then optional Y, then optional Z.
// Anything after that is skipped.
func (r *Reader) readCoord(srs *crs.CRS) (*geometry.Point, error) {
	if err := r.next(); err != nil {
		return nil, err
	}
	x, err := r.c.FloatElement(r.ns, "X")
	if err != nil {
		return nil, err
	}
	coords := []float64{x}
	if err := r.next(); err != nil {
		return nil, err
	}
	for _, axis := range []string{"Y", "Z"} {
		if !r.isGML(axis) {
			break
		}
		v, err := r.c.ElementTextAsFloat()
		if err != nil {
			return nil, err
		}
		coords = append(coords, v)
		if err := r.next(); err != nil {
			return nil, err
		}
	}
	for r.c.IsStartElement() {
		if err := r.c.Skip(); err != nil {
			return nil, err
		}
		if err := r.next(); err != nil {
			return nil, err
		}
	}
	if err := r.c.Require(xmlcursor.EndElement, r.ns, "coord"); err != nil {
		return nil, err
	}
	return geometry.NewPoint("", srs, coords...), nil
}

// readMeasure reads a measure element with its uom attribute.
func (r *Reader) readMeasure(local string) (geometry.Measure, error) {
	if err := r.requireStart(local); err != nil {
		return geometry.Measure{}, err
	}
	m := geometry.Measure{UOM: r.c.AttrDefault("", "uom", "")}
	v, err := r.c.ElementTextAsFloat()
	if err != nil {
		return geometry.Measure{}, err
	}
	m.Value = v
	return m, nil
}
