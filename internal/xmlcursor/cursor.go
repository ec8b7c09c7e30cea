// Package xmlcursor provides a push-forward XML event cursor and a matching
// streaming sink.
//
// The cursor is positioned on exactly one event at a time. Parsing routines
// receive it on a START_ELEMENT and hand it back on the matching END_ELEMENT,
// which lets recursive-descent readers compose without look-behind.
package xmlcursor

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
)

// Event is the kind of the event the cursor is positioned on.
type Event int

const (
	// StartDocument is the state before the first token has been read.
	StartDocument Event = iota
	StartElement
	EndElement
	CharData
	EndDocument
)

func (e Event) String() string {
	switch e {
	case StartDocument:
		return "START_DOCUMENT"
	case StartElement:
		return "START_ELEMENT"
	case EndElement:
		return "END_ELEMENT"
	case CharData:
		return "CHARACTERS"
	case EndDocument:
		return "END_DOCUMENT"
	default:
		return fmt.Sprintf("Event(%d)", int(e))
	}
}

// Cursor is a forward-only view of an XML token stream.
type Cursor struct {
	dec      *xml.Decoder
	systemID string

	event Event
	name  xml.Name
	attrs []xml.Attr
	text  []byte
	line  int
	col   int

	open []xml.Name
}

// New creates a cursor reading from r. systemID names the document in
// error locations and serves as base URI for relative references.
func New(r io.Reader, systemID string) *Cursor {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charsetReader
	return &Cursor{dec: dec, systemID: systemID, line: 1, col: 1}
}

// NewString creates a cursor over an in-memory document.
func NewString(s string) *Cursor {
	return New(strings.NewReader(s), "")
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported charset %q", label)
	}
	return enc.NewDecoder().Reader(input), nil
}

// SystemID returns the document identifier given at construction.
func (c *Cursor) SystemID() string { return c.systemID }

// Event returns the current event.
func (c *Cursor) Event() Event { return c.event }

// Name returns the qualified name of the current start or end element.
func (c *Cursor) Name() xml.Name { return c.name }

// LocalName returns the local part of the current element name.
func (c *Cursor) LocalName() string { return c.name.Local }

// Namespace returns the namespace URI of the current element.
func (c *Cursor) Namespace() string { return c.name.Space }

// Attrs returns the attributes of the current start element.
func (c *Cursor) Attrs() []xml.Attr { return c.attrs }

// Text returns the character data of the current CHARACTERS event.
func (c *Cursor) Text() string { return string(c.text) }

// Depth returns the number of currently open elements.
func (c *Cursor) Depth() int { return len(c.open) }

// IsStartElement reports whether the cursor is on a START_ELEMENT.
func (c *Cursor) IsStartElement() bool { return c.event == StartElement }

// IsEndElement reports whether the cursor is on an END_ELEMENT.
func (c *Cursor) IsEndElement() bool { return c.event == EndElement }

// Location returns the position of the current event.
func (c *Cursor) Location() Location {
	return Location{SystemID: c.systemID, Line: c.line, Column: c.col}
}

// Errorf builds a StructuralError at the current location.
func (c *Cursor) Errorf(format string, args ...interface{}) error {
	return &StructuralError{Location: c.Location(), Msg: fmt.Sprintf(format, args...)}
}

// Attr returns the value of the attribute ns:local on the current start
// element. An empty ns matches only unqualified attributes.
func (c *Cursor) Attr(ns, local string) (string, bool) {
	for _, a := range c.attrs {
		if a.Name.Local == local && a.Name.Space == ns {
			return a.Value, true
		}
	}
	return "", false
}

// AttrDefault returns the attribute value or def when absent.
func (c *Cursor) AttrDefault(ns, local, def string) string {
	if v, ok := c.Attr(ns, local); ok {
		return v
	}
	return def
}

// Next advances by one event. Comments, processing instructions and
// directives are skipped.
func (c *Cursor) Next() (Event, error) {
	if c.event == EndDocument {
		return EndDocument, c.Errorf("read past end of document")
	}
	if c.event == EndElement && len(c.open) > 0 {
		c.open = c.open[:len(c.open)-1]
	}
	for {
		tok, err := c.dec.Token()
		c.line, c.col = c.dec.InputPos()
		if err == io.EOF {
			c.event = EndDocument
			c.name = xml.Name{}
			c.attrs = nil
			c.text = nil
			return c.event, nil
		}
		if err != nil {
			return c.event, &StructuralError{Location: c.Location(), Msg: err.Error()}
		}
		switch t := tok.(type) {
		case xml.StartElement:
			c.event = StartElement
			c.name = t.Name
			c.attrs = append([]xml.Attr(nil), t.Attr...)
			c.text = nil
			c.open = append(c.open, t.Name)
			return c.event, nil
		case xml.EndElement:
			c.event = EndElement
			c.name = t.Name
			c.attrs = nil
			c.text = nil
			return c.event, nil
		case xml.CharData:
			c.event = CharData
			c.text = append(c.text[:0], t...)
			return c.event, nil
		}
	}
}

// NextTag advances to the next START_ELEMENT or END_ELEMENT, skipping
// whitespace. Non-whitespace text is a structural error.
func (c *Cursor) NextTag() (Event, error) {
	for {
		ev, err := c.Next()
		if err != nil {
			return ev, err
		}
		switch ev {
		case StartElement, EndElement:
			return ev, nil
		case CharData:
			if len(bytes.TrimSpace(c.text)) != 0 {
				return ev, c.Errorf("unexpected text content %q", truncate(string(c.text)))
			}
		case EndDocument:
			return ev, c.Errorf("unexpected end of document")
		}
	}
}

// NextElement advances to the next START_ELEMENT or END_ELEMENT and ignores
// any text in between.
func (c *Cursor) NextElement() (Event, error) {
	for {
		ev, err := c.Next()
		if err != nil {
			return ev, err
		}
		switch ev {
		case StartElement, EndElement:
			return ev, nil
		case EndDocument:
			return ev, c.Errorf("unexpected end of document")
		}
	}
}

// Require checks that the cursor is on the given event. An empty ns or
// local matches any value.
func (c *Cursor) Require(ev Event, ns, local string) error {
	if c.event != ev {
		if c.event == StartElement || c.event == EndElement {
			return c.Errorf("expected %s %s, found %s %s", ev, qname(ns, local), c.event, qname(c.name.Space, c.name.Local))
		}
		return c.Errorf("expected %s %s, found %s", ev, qname(ns, local), c.event)
	}
	if ns != "" && c.name.Space != ns || local != "" && c.name.Local != local {
		return c.Errorf("expected %s %s, found %s", ev, qname(ns, local), qname(c.name.Space, c.name.Local))
	}
	return nil
}

// ElementText reads the text content of the current start element and
// leaves the cursor on its END_ELEMENT. Child elements are an error.
func (c *Cursor) ElementText() (string, error) {
	if err := c.Require(StartElement, "", ""); err != nil {
		return "", err
	}
	start := c.name
	var sb strings.Builder
	for {
		ev, err := c.Next()
		if err != nil {
			return "", err
		}
		switch ev {
		case CharData:
			sb.Write(c.text)
		case EndElement:
			return sb.String(), nil
		case StartElement:
			return "", c.Errorf("element %s must not contain child elements", qname(start.Space, start.Local))
		case EndDocument:
			return "", c.Errorf("unexpected end of document")
		}
	}
}

// ElementTextAsFloat parses the element text as a double.
func (c *Cursor) ElementTextAsFloat() (float64, error) {
	s, err := c.ElementText()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, c.Errorf("value '%s' cannot be parsed as a double", strings.TrimSpace(s))
	}
	return v, nil
}

// ElementTextAsPositiveInt parses the element text as an integer > 0.
func (c *Cursor) ElementTextAsPositiveInt() (int, error) {
	s, err := c.ElementText()
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return 0, c.Errorf("value '%s' is not a positive integer", strings.TrimSpace(s))
	}
	return v, nil
}

// FloatElement requires a start element ns:local and returns its text as a
// double. The cursor ends on the element's END_ELEMENT.
func (c *Cursor) FloatElement(ns, local string) (float64, error) {
	if err := c.Require(StartElement, ns, local); err != nil {
		return 0, err
	}
	return c.ElementTextAsFloat()
}

// PositiveIntElement is the integer counterpart of FloatElement.
func (c *Cursor) PositiveIntElement(ns, local string) (int, error) {
	if err := c.Require(StartElement, ns, local); err != nil {
		return 0, err
	}
	return c.ElementTextAsPositiveInt()
}

// Skip consumes the subtree of the current start element and leaves the
// cursor on its END_ELEMENT.
func (c *Cursor) Skip() error {
	if err := c.Require(StartElement, "", ""); err != nil {
		return err
	}
	depth := 1
	for depth > 0 {
		ev, err := c.Next()
		if err != nil {
			return err
		}
		switch ev {
		case StartElement:
			depth++
		case EndElement:
			depth--
		case EndDocument:
			return c.Errorf("unexpected end of document")
		}
	}
	return nil
}

// Start advances from the document prolog to the root element.
func (c *Cursor) Start() error {
	for c.event != StartElement {
		ev, err := c.Next()
		if err != nil {
			return err
		}
		if ev == EndDocument {
			return c.Errorf("document has no root element")
		}
	}
	return nil
}

func qname(ns, local string) string {
	if local == "" {
		local = "*"
	}
	if ns == "" {
		return "'" + local + "'"
	}
	return "'{" + ns + "}" + local + "'"
}

func truncate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 40 {
		return s[:40] + "..."
	}
	return s
}
