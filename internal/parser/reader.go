package parser

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/beetlebugorg/gml/internal/crs"
	"github.com/beetlebugorg/gml/internal/dialect"
	"github.com/beetlebugorg/gml/internal/geometry"
	"github.com/beetlebugorg/gml/internal/xmlcursor"
)

// Reader is a recursive-descent geometry reader for one GML version.
//
// Every read method is entered with the cursor on the START_ELEMENT of the
// element it reads and returns with the cursor on the matching END_ELEMENT.
// The resulting geometry is registered under its id before the method
// returns. References are created eagerly and never resolved here.
type Reader struct {
	c        *xmlcursor.Cursor
	version  dialect.Version
	ns       string
	schema   dialect.Hierarchy
	registry *Registry
	crs      *crs.Resolver
	defDim   int
	log      logrus.FieldLogger
}

// NewReader creates a reader for GML version v on top of cursor c. The
// registry receives every identified geometry and every reference.
func NewReader(c *xmlcursor.Cursor, v dialect.Version, registry *Registry, opts ParseOptions) *Reader {
	opts = opts.withDefaults()
	if registry == nil {
		registry = NewRegistry(WithLogger(opts.Logger), WithDuplicateIDs(opts.AllowDuplicateIDs), WithFallback(opts.Fallback))
	}
	return &Reader{
		c:        c,
		version:  v,
		ns:       v.Namespace(),
		schema:   opts.Hierarchy,
		registry: registry,
		crs:      opts.CRSResolver,
		defDim:   opts.DefaultDimension,
		log:      opts.Logger.WithField("version", v.String()),
	}
}

// Version returns the GML version the reader parses.
func (r *Reader) Version() dialect.Version { return r.version }

// Registry returns the identifier registry of the reader.
func (r *Reader) Registry() *Registry { return r.registry }

// IsGeometry reports whether name is a geometry or envelope element of the
// reader's version.
func (r *Reader) IsGeometry(name xml.Name) bool {
	return dialect.IsGeometry(r.version, name, r.schema)
}

// Read reads the geometry or envelope element the cursor is positioned on.
// def is the CRS inherited from the enclosing context, nil for none.
func (r *Reader) Read(def *crs.CRS) (geometry.Geometry, error) {
	if err := r.c.Require(xmlcursor.StartElement, "", ""); err != nil {
		return nil, err
	}
	el, err := r.classify("geometry")
	if err != nil {
		return nil, err
	}
	if r.version == dialect.GML21 {
		return r.readGML2(el, def)
	}
	return r.readGML3(el, def)
}

// classify resolves the current element and checks that it belongs to one
// of the given classes. An empty class list accepts any geometry.
func (r *Reader) classify(expected string, classes ...dialect.Class) (dialect.Element, error) {
	el, err := dialect.Classify(r.version, r.c.Name(), r.schema)
	if err != nil {
		r.log.WithField("element", r.c.Name().Local).Debug("Unknown geometry element")
		return el, errors.WithMessagef(err, "at %s", r.c.Location())
	}
	if len(classes) == 0 {
		return el, nil
	}
	for _, cl := range classes {
		if el.Class == cl {
			return el, nil
		}
	}
	return el, r.c.Errorf("expected a %s element, found '%s'", expected, el.Name.Local)
}

// isGML reports whether the cursor is on a start element of the reader's
// namespace with one of the given local names.
func (r *Reader) isGML(locals ...string) bool {
	if !r.c.IsStartElement() || r.c.Namespace() != r.ns {
		return false
	}
	for _, l := range locals {
		if r.c.LocalName() == l {
			return true
		}
	}
	return false
}

func (r *Reader) next() error {
	_, err := r.c.NextTag()
	return err
}

func (r *Reader) name(local string) xml.Name {
	return xml.Name{Space: r.ns, Local: local}
}

func (r *Reader) requireStart(local string) error {
	return r.c.Require(xmlcursor.StartElement, r.ns, local)
}

func (r *Reader) requireEnd(name xml.Name) error {
	return r.c.Require(xmlcursor.EndElement, name.Space, name.Local)
}

// readID returns the gml:id of the current element, falling back to the
// GML 2 gid attribute.
func (r *Reader) readID() (string, error) {
	var id string
	if r.version != dialect.GML21 {
		id, _ = r.c.Attr(r.ns, "id")
	}
	if id == "" {
		id, _ = r.c.Attr("", "gid")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return "", nil
	}
	if !IsNCName(id) {
		return "", &ErrInvalidIdentifier{Location: r.c.Location(), ID: id}
	}
	return id, nil
}

// activeCRS returns the CRS named by the srsName of the current element, or
// def when there is none.
func (r *Reader) activeCRS(def *crs.CRS) *crs.CRS {
	name, ok := r.c.Attr("", "srsName")
	if !ok || strings.TrimSpace(name) == "" {
		return def
	}
	srs := r.crs.Resolve(name)
	if srs.Dimension() == 0 {
		r.log.WithField("crs", name).Debug("CRS has no known dimension")
	}
	return srs
}

// orientation reads the orientation attribute; "-" means reversed.
func (r *Reader) orientation() (bool, error) {
	switch v := strings.TrimSpace(r.c.AttrDefault("", "orientation", "-")); v {
	case "+":
		return false, nil
	case "-":
		return true, nil
	default:
		return false, r.c.Errorf("invalid orientation '%s', expected '+' or '-'", v)
	}
}

// checkAttr validates an attribute whose value is fixed to one of allowed.
// An absent attribute is accepted and reported as "".
func (r *Reader) checkAttr(local string, allowed ...string) (string, error) {
	v, ok := r.c.Attr("", local)
	if !ok {
		return "", nil
	}
	v = strings.TrimSpace(v)
	for _, a := range allowed {
		if v == a {
			return v, nil
		}
	}
	return "", r.c.Errorf("invalid %s '%s' on '%s', expected '%s'", local, v, r.c.LocalName(), strings.Join(allowed, "' or '"))
}

// invalid builds an ErrInvalidGeometry annotated with the current location.
func (r *Reader) invalid(kind geometry.Kind, id, format string, args ...interface{}) error {
	err := &geometry.ErrInvalidGeometry{Kind: kind, ID: id, Reason: fmt.Sprintf(format, args...)}
	return errors.WithMessagef(err, "at %s", r.c.Location())
}

// finish reads the trailing application properties of el, checks that the
// cursor is on the end tag of el, attaches name and properties to g and
// registers it.
func (r *Reader) finish(g geometry.Geometry, el dialect.Element, props []geometry.Property) error {
	props, err := r.readAdditionalProperties(el, props)
	if err != nil {
		return err
	}
	if err := r.requireEnd(el.Name); err != nil {
		return err
	}
	geometry.Attach(g, el.Name, props)
	if err := r.registry.Register(g.ID(), g); err != nil {
		return errors.WithMessagef(err, "at %s", r.c.Location())
	}
	return nil
}

// property reads a geometry property element: either an xlink:href, which
// yields a Reference of kind super and admits no content, or exactly one
// inline element read by inline. The cursor ends on the property's end tag.
func property[T geometry.Geometry](r *Reader, super geometry.Kind, inline func() (T, error)) (T, error) {
	var zero T
	name := r.c.Name()
	if href, ok := r.c.Attr(dialect.NamespaceXLink, "href"); ok && strings.TrimSpace(href) != "" {
		ref := r.registry.CreateReference(super, strings.TrimSpace(href), r.c.SystemID())
		ev, err := r.c.NextTag()
		if err != nil {
			return zero, err
		}
		if ev == xmlcursor.StartElement {
			return zero, r.c.Errorf("property '%s' has both an xlink:href and inline content", name.Local)
		}
		v, ok := geometry.Geometry(ref).(T)
		if !ok {
			return zero, r.c.Errorf("property '%s' cannot hold a reference", name.Local)
		}
		return v, nil
	}
	ev, err := r.c.NextTag()
	if err != nil {
		return zero, err
	}
	if ev != xmlcursor.StartElement {
		return zero, r.c.Errorf("property '%s' has neither an xlink:href nor an inline geometry", name.Local)
	}
	g, err := inline()
	if err != nil {
		return zero, err
	}
	if err := r.next(); err != nil {
		return zero, err
	}
	if err := r.requireEnd(name); err != nil {
		return zero, err
	}
	return g, nil
}

// readMembers reads a run of singular member properties followed by an
// optional plural container of inline members. plural may be empty.
func readMembers[T geometry.Geometry](r *Reader, single, plural string, super geometry.Kind, inline func() (T, error)) ([]T, error) {
	var members []T
	for r.isGML(single) {
		m, err := property(r, super, inline)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
		if err := r.next(); err != nil {
			return nil, err
		}
	}
	if plural == "" || !r.isGML(plural) {
		return members, nil
	}
	container := r.c.Name()
	if err := r.next(); err != nil {
		return nil, err
	}
	for r.c.IsStartElement() {
		m, err := inline()
		if err != nil {
			return nil, err
		}
		members = append(members, m)
		if err := r.next(); err != nil {
			return nil, err
		}
	}
	if err := r.requireEnd(container); err != nil {
		return nil, err
	}
	return members, r.next()
}

func parsePositiveInt(s string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	return v, err == nil && v > 0
}
