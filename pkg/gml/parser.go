package gml

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/beetlebugorg/gml/internal/parser"
	"github.com/beetlebugorg/gml/internal/xmlcursor"
)

// Parser reads GML documents.
//
// Create a parser with NewParser and use Parse or ParseWithOptions to read
// files, or ParseReader for other sources.
type Parser interface {
	// Parse reads a GML file with default options.
	//
	// Every geometry or envelope element outside another geometry becomes
	// one entry of Document.Geometries, in document order.
	Parse(filename string) (*Document, error)

	// ParseWithOptions reads a GML file with custom options.
	ParseWithOptions(filename string, opts ParseOptions) (*Document, error)

	// ParseReader reads a GML document from r. systemID names the document
	// in errors and is the base URI of its xlink references.
	ParseReader(r io.Reader, systemID string, opts ParseOptions) (*Document, error)

	// SupportedElements returns the geometry elements known for version v.
	SupportedElements(v Version) []string
}

// NewParser creates a new GML parser.
//
// Example:
//
//	parser := gml.NewParser()
//	doc, err := parser.Parse("buildings.gml")
func NewParser() Parser {
	return &parserWrapper{
		internal: parser.NewParser(),
	}
}

// parserWrapper wraps the internal parser and converts types
type parserWrapper struct {
	internal parser.Parser
}

func (p *parserWrapper) Parse(filename string) (*Document, error) {
	return p.ParseWithOptions(filename, DefaultParseOptions())
}

func (p *parserWrapper) ParseWithOptions(filename string, opts ParseOptions) (*Document, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}
	defer f.Close()
	return p.ParseReader(f, filename, opts)
}

func (p *parserWrapper) ParseReader(r io.Reader, systemID string, opts ParseOptions) (*Document, error) {
	doc, err := p.internal.ParseReader(r, systemID, opts.internal(p))
	if err != nil {
		return nil, err
	}
	return wrapDocument(doc), nil
}

func (p *parserWrapper) SupportedElements(v Version) []string {
	return p.internal.SupportedElements(v)
}

// Unmarshal parses a single geometry element from data. References inside
// the geometry are left unresolved unless they point to ids within data.
//
// Example:
//
//	g, err := gml.Unmarshal([]byte(`<gml:Point xmlns:gml="http://www.opengis.net/gml">
//	    <gml:pos>1 2</gml:pos></gml:Point>`), gml.DefaultParseOptions())
func Unmarshal(data []byte, opts ParseOptions) (Geometry, error) {
	g, _, err := parser.ParseGeometry(xmlcursor.New(bytes.NewReader(data), ""), opts.internal(NewParser()))
	if err != nil {
		return nil, err
	}
	return g, nil
}
