// Package writer encodes the geometry model as GML 2.1, 3.0, 3.1 or 3.2.
//
// A writer emits one geometry element per Write call into an
// xmlcursor.Writer sink. Ids already written are remembered in an
// ExportedIDs set; a later property holding a geometry with such an id is
// written as an xlink:href stub instead of repeating the geometry.
package writer

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/beetlebugorg/gml/internal/crs"
	"github.com/beetlebugorg/gml/internal/dialect"
	"github.com/beetlebugorg/gml/internal/geometry"
	"github.com/beetlebugorg/gml/internal/xmlcursor"
)

// Writer writes geometries as GML elements.
//
// A Writer keeps its sink and its exported-id set between calls and is not
// safe for concurrent use. Use one writer per goroutine.
type Writer interface {
	// Write writes g as one element. It fails with
	// geometry.ErrUnsupportedGeometry when g has no encoding in the
	// writer's version.
	Write(g geometry.Geometry) error

	// Version returns the GML version written.
	Version() dialect.Version
}

// Simplifier rewrites a geometry before it is written. It is never applied
// to envelopes or geometric complexes.
type Simplifier interface {
	Simplify(g geometry.Geometry) (geometry.Geometry, error)
}

// ExportedIDs is the set of ids already written to the output.
type ExportedIDs interface {
	Contains(id string) bool
	Add(id string)
}

// IDSet is a map-backed ExportedIDs, safe for concurrent use so that it can
// be shared by several writers of one output.
type IDSet struct {
	mu  sync.RWMutex
	ids map[string]struct{}
}

// NewIDSet creates an empty set.
func NewIDSet() *IDSet {
	return &IDSet{ids: make(map[string]struct{})}
}

// Contains reports whether id has been added.
func (s *IDSet) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[id]
	return ok
}

// Add records id.
func (s *IDSet) Add(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids[id] = struct{}{}
}

// Len returns the number of ids in the set.
func (s *IDSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

// Options configures a writer
type Options struct {
	// Version is the GML version to write.
	// Default: GML 3.2
	Version dialect.Version

	// OutputCRS is the system all coordinates are transformed into. Empty
	// keeps the coordinates of each geometry as they are.
	OutputCRS string

	// Resolver supplies CRS definitions. Default: the built-in definitions.
	Resolver *crs.Resolver

	// Simplifier, if set, rewrites each geometry passed to Write.
	Simplifier Simplifier

	// Exported is the set of ids already written. Default: a new IDSet.
	Exported ExportedIDs

	// NewID generates the ids GML 3.2 requires on geometries without one.
	// Default: "GEOMETRY_" followed by a random UUID.
	NewID func() string

	// Indent, if set, pretty prints the output of Encode.
	Indent string

	// Logger receives debug output. Default: discarded.
	Logger logrus.FieldLogger
}

// DefaultOptions returns writer options with defaults
func DefaultOptions() Options {
	return Options{Version: dialect.GML32}
}

func (o Options) withDefaults() Options {
	if o.Version == dialect.Unknown {
		o.Version = dialect.GML32
	}
	if o.Resolver == nil {
		o.Resolver = crs.NewResolver()
	}
	if o.Exported == nil {
		o.Exported = NewIDSet()
	}
	if o.NewID == nil {
		o.NewID = func() string { return "GEOMETRY_" + uuid.NewString() }
	}
	if o.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		l.SetLevel(logrus.WarnLevel)
		o.Logger = l
	}
	return o
}

// New creates a writer for opts.Version on top of sink.
func New(sink *xmlcursor.Writer, opts Options) Writer {
	e := newEncoder(sink, opts.withDefaults())
	if e.version == dialect.GML21 {
		return &gml2Writer{encoder: e}
	}
	return &gml3Writer{encoder: e}
}

// Encode writes g to w as a single GML element.
func Encode(w io.Writer, g geometry.Geometry, opts Options) error {
	sink := xmlcursor.NewWriter(w)
	if opts.Indent != "" {
		sink.Indent("", opts.Indent)
	}
	if err := New(sink, opts).Write(g); err != nil {
		return err
	}
	return sink.Flush()
}

// encoder holds the state shared by the version specific writers.
type encoder struct {
	w        *xmlcursor.Writer
	version  dialect.Version
	ns       string
	out      *crs.CRS
	tf       *crs.Transformer
	simplify Simplifier
	exported ExportedIDs
	newID    func() string
	log      logrus.FieldLogger

	// scope is the CRS announced by the innermost enclosing srsName.
	scope *crs.CRS
}

func newEncoder(sink *xmlcursor.Writer, opts Options) *encoder {
	e := &encoder{
		w:        sink,
		version:  opts.Version,
		ns:       opts.Version.Namespace(),
		simplify: opts.Simplifier,
		exported: opts.Exported,
		newID:    opts.NewID,
		log:      opts.Logger.WithField("version", opts.Version.String()),
	}
	sink.SetPrefix("gml", e.ns)
	sink.SetPrefix("xlink", dialect.NamespaceXLink)
	if e.out = opts.Resolver.Resolve(opts.OutputCRS); e.out != nil {
		tf, err := opts.Resolver.NewTransformer(e.out)
		if err != nil {
			e.log.WithField("crs", opts.OutputCRS).WithError(err).Debug("Cannot create transformer")
		}
		e.tf = tf
	}
	return e
}

// Version returns the GML version written.
func (e *encoder) Version() dialect.Version { return e.version }

// prepare applies the simplifier and resets the CRS scope for a top-level
// write.
func (e *encoder) prepare(g geometry.Geometry) (geometry.Geometry, error) {
	if g == nil {
		return nil, &geometry.ErrInvalidGeometry{Reason: "geometry is nil"}
	}
	e.scope = nil
	e.log.WithFields(logrus.Fields{"kind": g.Kind(), "id": g.ID()}).Debug("Writing geometry")
	if e.simplify == nil {
		return g, nil
	}
	switch g.(type) {
	case *geometry.Envelope, *geometry.GeometricComplex:
		return g, nil
	}
	return e.simplify.Simplify(g)
}

// transform converts a position from src into the output CRS. It is a
// no-op when either system is unset or both are equal.
func (e *encoder) transform(src *crs.CRS, coords []float64) ([]float64, error) {
	if e.out == nil || src == nil || src.Equal(e.out) {
		return coords, nil
	}
	if e.tf == nil {
		return nil, &crs.ErrUnknownCRS{Name: e.out.Name()}
	}
	return e.tf.Transform(src, coords)
}

// outputCRS returns the CRS g is written in.
func (e *encoder) outputCRS(g geometry.Geometry) *crs.CRS {
	srs := g.CRS()
	if srs != nil && e.out != nil {
		return e.out
	}
	return srs
}

// elementName returns the name to write g under when it is encoded as the
// GML element local. Application elements keep their own name as long as
// they are written as the kind they stand for.
func (e *encoder) elementName(g geometry.Geometry, local string) xml.Name {
	tn := g.TypeName()
	if tn.Local != "" && !dialect.IsGMLNamespace(tn.Space) && local == g.Kind().String() {
		return tn
	}
	return xml.Name{Space: e.ns, Local: local}
}

// start opens the element of g and writes its id and srsName. The id is
// only written for geometry objects; GML 3.2 requires one on each.
func (e *encoder) start(g geometry.Geometry, local string, object bool) {
	name := e.elementName(g, local)
	e.w.StartElement(name.Space, name.Local)
	if object {
		id := g.ID()
		if id == "" && e.version == dialect.GML32 {
			id = e.newID()
		}
		if id != "" {
			if e.version == dialect.GML21 {
				e.w.Attr("", "gid", id)
			} else {
				e.w.Attr(e.ns, "id", id)
			}
			e.exported.Add(id)
		}
	}
	if srs := e.outputCRS(g); srs != nil {
		if !srs.Equal(e.scope) {
			e.w.Attr("", "srsName", srs.Name())
		}
		e.scope = srs
	}
}

// href writes a property holding only an xlink:href.
func (e *encoder) href(local, href string) {
	e.w.StartElement(e.ns, local)
	e.w.Attr(dialect.NamespaceXLink, "href", href)
	e.w.EndElement()
}

// property writes the property local holding g. References and geometries
// already exported become xlink stubs; anything else is written inline.
func (e *encoder) property(local string, g geometry.Geometry, inline func(geometry.Geometry) error) error {
	if ref, ok := g.(*geometry.Reference); ok {
		e.href(local, ref.Href)
		return nil
	}
	if id := g.ID(); id != "" && e.identified(g) && e.exported.Contains(id) {
		e.href(local, "#"+id)
		return nil
	}
	e.w.StartElement(e.ns, local)
	if err := inline(g); err != nil {
		return err
	}
	e.w.EndElement()
	return nil
}

// identified reports whether g carries an id in the output version. Rings
// are not GML objects in 3.2.
func (e *encoder) identified(g geometry.Geometry) bool {
	return e.version != dialect.GML32 || !g.Kind().IsRing()
}

var standardProperties = map[string]bool{
	"metaDataProperty":     true,
	"description":          true,
	"descriptionReference": true,
	"identifier":           true,
	"name":                 true,
}

func isStandard(p geometry.Property) bool {
	return dialect.IsGMLNamespace(p.Name.Space) && standardProperties[p.Name.Local]
}

// standardProperties writes the standard GML properties of g in their
// original order. GML 2 only knows description and name.
func (e *encoder) standardProperties(g geometry.Geometry) {
	for _, p := range g.Properties() {
		if !isStandard(p) {
			continue
		}
		if e.version == dialect.GML21 && p.Name.Local != "description" && p.Name.Local != "name" {
			e.log.WithField("element", p.Name.Local).Debug("Property has no GML 2 encoding")
			continue
		}
		e.simpleProperty(xml.Name{Space: e.ns, Local: p.Name.Local}, p)
	}
}

// trailingProperties writes the application properties of g.
func (e *encoder) trailingProperties(g geometry.Geometry) {
	for _, p := range g.Properties() {
		if !isStandard(p) {
			e.simpleProperty(p.Name, p)
		}
	}
}

func (e *encoder) simpleProperty(name xml.Name, p geometry.Property) {
	e.w.StartElement(name.Space, name.Local)
	if p.Href != "" {
		e.w.Attr(dialect.NamespaceXLink, "href", p.Href)
	}
	if p.CodeSpace != "" {
		e.w.Attr("", "codeSpace", p.CodeSpace)
	}
	if p.Value != "" {
		e.w.Characters(p.Value)
	}
	e.w.EndElement()
}

// textElement writes <gml:local>text</gml:local>.
func (e *encoder) textElement(local, text string) {
	e.w.StartElement(e.ns, local)
	e.w.Characters(text)
	e.w.EndElement()
}

func (e *encoder) floatElement(local string, v float64) {
	e.textElement(local, formatFloat(v))
}

func (e *encoder) intElement(local string, v int) {
	e.textElement(local, strconv.Itoa(v))
}

func (e *encoder) measure(local string, m geometry.Measure) {
	e.w.StartElement(e.ns, local)
	if m.UOM != "" {
		e.w.Attr("", "uom", m.UOM)
	}
	e.w.Characters(formatFloat(m.Value))
	e.w.EndElement()
}

func (e *encoder) vector(local string, v []float64) {
	e.textElement(local, joinFloats(v, " "))
}

func (e *encoder) unsupported(g geometry.Geometry, reason string) error {
	return &geometry.ErrUnsupportedGeometry{Kind: g.Kind(), Version: e.version.String(), Reason: reason}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func joinFloats(values []float64, sep string) string {
	var sb strings.Builder
	for i, v := range values {
		if i > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(formatFloat(v))
	}
	return sb.String()
}
