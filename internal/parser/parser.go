package parser

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/beetlebugorg/gml/internal/crs"
	"github.com/beetlebugorg/gml/internal/dialect"
	"github.com/beetlebugorg/gml/internal/geometry"
	"github.com/beetlebugorg/gml/internal/xmlcursor"
)

// Parser reads GML documents and extracts their geometries.
//
// A document is walked from its root; every geometry or envelope element
// found outside another geometry is read into Document.Geometries. The GML
// version is taken from ParseOptions or detected from the first geometry
// element (GML 3.1.1 clause 7.2, GML 2.1.2 clause 5.2).
type Parser interface {
	// Parse reads a GML file with default options.
	Parse(filename string) (*Document, error)

	// ParseWithOptions reads a GML file.
	ParseWithOptions(filename string, opts ParseOptions) (*Document, error)

	// ParseReader reads a GML document from r. systemID names the document
	// in errors and is the base URI of its references.
	ParseReader(r io.Reader, systemID string, opts ParseOptions) (*Document, error)

	// SupportedElements returns the geometry elements of version v.
	SupportedElements(v dialect.Version) []string
}

// ParseOptions configures parsing behavior
type ParseOptions struct {
	// Version forces the GML version. Unknown detects it from the document.
	Version dialect.Version

	// DefaultCRS is the CRS of geometries without an srsName in scope.
	// Empty means none.
	DefaultCRS string

	// DefaultDimension is the coordinate dimension used when neither an
	// srsDimension attribute nor the CRS give one.
	// Default: 2
	DefaultDimension int

	// Hierarchy is the geometry part of an application schema. When set it
	// decides which elements are geometries, and which trailing properties
	// they may carry.
	Hierarchy dialect.Hierarchy

	// CRSResolver maps srsName values to CRS handles. Default: the built-in
	// definitions.
	CRSResolver *crs.Resolver

	// AllowDuplicateIDs: if true, a second geometry with the same id replaces
	// the first instead of failing the parse.
	// Default: false
	AllowDuplicateIDs bool

	// ValidateGeometry: if true, check every geometry against the model
	// rules after parsing.
	// Default: true
	ValidateGeometry bool

	// Fallback resolves references into other documents.
	Fallback geometry.Resolver

	// Logger receives debug output. Default: discarded.
	Logger logrus.FieldLogger
}

// DefaultParseOptions returns parse options with defaults
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		DefaultDimension: 2,
		ValidateGeometry: true,
	}
}

func (o ParseOptions) withDefaults() ParseOptions {
	if o.DefaultDimension <= 0 {
		o.DefaultDimension = 2
	}
	if o.CRSResolver == nil {
		o.CRSResolver = crs.NewResolver()
	}
	if o.Logger == nil {
		o.Logger = discardLogger()
	}
	return o
}

func (o ParseOptions) registry() *Registry {
	return NewRegistry(WithLogger(o.Logger), WithDuplicateIDs(o.AllowDuplicateIDs), WithFallback(o.Fallback))
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.WarnLevel)
	return l
}

// defaultParser implements the Parser interface
type defaultParser struct {
}

// NewParser creates a new GML parser
func NewParser() Parser {
	return &defaultParser{}
}

// Parse reads a GML file with default options.
func (p *defaultParser) Parse(filename string) (*Document, error) {
	return p.ParseWithOptions(filename, DefaultParseOptions())
}

// ParseWithOptions reads a GML file.
func (p *defaultParser) ParseWithOptions(filename string, opts ParseOptions) (*Document, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}
	defer f.Close()
	return p.ParseReader(f, filename, opts)
}

// ParseReader reads a GML document from r.
func (p *defaultParser) ParseReader(r io.Reader, systemID string, opts ParseOptions) (*Document, error) {
	doc, err := ParseDocument(xmlcursor.New(r, systemID), opts)
	if err != nil {
		if systemID == "" {
			return nil, errors.Wrap(err, "failed to parse document")
		}
		return nil, errors.Wrapf(err, "failed to parse %s", systemID)
	}
	return doc, nil
}

// SupportedElements returns the geometry elements of version v.
func (p *defaultParser) SupportedElements(v dialect.Version) []string {
	return dialect.Elements(v)
}

// ParseDocument walks the document under c and reads every top-level
// geometry it contains.
//
// Without a configured version the document's version is detected from its
// geometries. The GML 3.2 namespace decides at once. In the namespace shared
// by GML 2.1, 3.0 and 3.1 a geometry without any version marker is read as
// GML 3.1 until the first marker is found: a Box or a gid attribute without
// gml:id switches the rest of the document to GML 2.1, while a gml:id or an
// element GML 2.1 lacks keeps GML 3.1.
func ParseDocument(c *xmlcursor.Cursor, opts ParseOptions) (*Document, error) {
	opts = opts.withDefaults()
	if err := c.Start(); err != nil {
		return nil, err
	}
	log := opts.Logger.WithField("file", c.SystemID())
	doc := &Document{
		SystemID: c.SystemID(),
		Root:     c.Name(),
		registry: opts.registry(),
	}
	def := opts.defaultCRS()
	version := opts.version()
	settled := version != dialect.Unknown
	var reader *Reader
	for {
		if c.IsStartElement() && !settled {
			if d := detect(c); d != dialect.Unknown {
				if reader != nil && d != version {
					log.WithField("version", d.String()).Debug("Switching GML version")
					reader = nil
				}
				version = d
				settled = decisive(c, d)
			}
		}
		if c.IsStartElement() {
			if reader == nil && version != dialect.Unknown {
				reader = NewReader(c, version, doc.registry, opts)
				log.WithField("version", version.String()).Debug("Detected GML version")
			}
			if reader != nil && reader.IsGeometry(c.Name()) {
				g, err := reader.Read(def)
				if err != nil {
					return nil, err
				}
				doc.Geometries = append(doc.Geometries, g)
			}
		}
		ev, err := c.Next()
		if err != nil {
			return nil, err
		}
		if ev == xmlcursor.EndDocument {
			break
		}
	}
	doc.Version = version

	if opts.ValidateGeometry {
		for i, g := range doc.Geometries {
			if err := ValidateGeometry(g); err != nil {
				return nil, errors.Wrapf(err, "geometry %d", i)
			}
		}
	}
	log.WithFields(logrus.Fields{
		"geometries": len(doc.Geometries),
		"ids":        doc.registry.Len(),
	}).Debug("Parsed document")
	return doc, nil
}

// ParseGeometry reads the single geometry element the cursor is on (or the
// root element when the cursor is at the start of a document). The cursor
// ends on the element's end tag.
func ParseGeometry(c *xmlcursor.Cursor, opts ParseOptions) (geometry.Geometry, *Registry, error) {
	opts = opts.withDefaults()
	if err := c.Start(); err != nil {
		return nil, nil, err
	}
	version := opts.version()
	if version == dialect.Unknown {
		if version = detect(c); version == dialect.Unknown {
			return nil, nil, &dialect.ErrUnknownElement{Name: c.Name(), Reason: "cannot detect the GML version"}
		}
	}
	def := opts.defaultCRS()
	registry := opts.registry()
	g, err := NewReader(c, version, registry, opts).Read(def)
	if err != nil {
		return nil, nil, err
	}
	if opts.ValidateGeometry {
		if err := ValidateGeometry(g); err != nil {
			return nil, nil, err
		}
	}
	return g, registry, nil
}

func (o ParseOptions) defaultCRS() *crs.CRS {
	return o.CRSResolver.Resolve(o.DefaultCRS)
}

// version returns the configured version, or the version of a hierarchy
// that declares one.
func (o ParseOptions) version() dialect.Version {
	if o.Version != dialect.Unknown {
		return o.Version
	}
	if h, ok := o.Hierarchy.(interface{ Version() dialect.Version }); ok {
		return h.Version()
	}
	return dialect.Unknown
}

// decisive reports whether the geometry element the cursor is on fixes the
// document version to v.
func decisive(c *xmlcursor.Cursor, v dialect.Version) bool {
	if v != dialect.GML31 {
		return true
	}
	if _, ok := c.Attr(dialect.NamespaceGML, "id"); ok {
		return true
	}
	return dialect.Lookup(dialect.GML21, c.LocalName()) == dialect.NotGeometry
}

// detect derives the version from the current element when it is a GML
// geometry element of any version.
func detect(c *xmlcursor.Cursor) dialect.Version {
	name := c.Name()
	if !dialect.IsGMLNamespace(name.Space) {
		return dialect.Unknown
	}
	if dialect.Lookup(dialect.GML21, name.Local) == dialect.NotGeometry &&
		dialect.Lookup(dialect.GML31, name.Local) == dialect.NotGeometry {
		return dialect.Unknown
	}
	return dialect.Detect(name, c.Attrs())
}
