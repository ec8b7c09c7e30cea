package xmlcursor

import (
	"encoding/xml"
	"fmt"
	"io"
)

// Writer is a streaming XML sink with StAX-like semantics: attributes may be
// added to the most recently started element until content or another
// element is written. Errors are sticky and reported by Flush and Err.
type Writer struct {
	enc      *xml.Encoder
	pending  *xml.StartElement
	open     []xml.Name
	scopes   []map[string]string
	prefixes map[string]string
	next     int
	err      error
}

// NewWriter creates a sink writing to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		enc:      xml.NewEncoder(w),
		prefixes: make(map[string]string),
	}
}

// SetPrefix binds a preferred prefix to a namespace URI. Declarations are
// emitted on first use.
func (w *Writer) SetPrefix(prefix, ns string) {
	w.prefixes[ns] = prefix
}

// Indent enables pretty printing.
func (w *Writer) Indent(prefix, indent string) {
	w.enc.Indent(prefix, indent)
}

// Depth returns the number of open elements.
func (w *Writer) Depth() int { return len(w.open) }

// Err returns the first error encountered.
func (w *Writer) Err() error { return w.err }

// StartElement opens ns:local.
func (w *Writer) StartElement(ns, local string) {
	if w.err != nil {
		return
	}
	w.flushPending()
	w.scopes = append(w.scopes, nil)
	start := xml.StartElement{Name: xml.Name{Local: local}}
	w.pending = &start
	if ns != "" {
		start.Name.Local = w.qualify(ns) + ":" + local
	}
}

// Attr adds an attribute to the element most recently started.
func (w *Writer) Attr(ns, local, value string) {
	if w.err != nil {
		return
	}
	if w.pending == nil {
		w.err = fmt.Errorf("attribute %s written outside a start tag", local)
		return
	}
	name := local
	if ns != "" {
		name = w.qualify(ns) + ":" + local
	}
	w.pending.Attr = append(w.pending.Attr, xml.Attr{Name: xml.Name{Local: name}, Value: value})
}

// Characters writes escaped text content.
func (w *Writer) Characters(s string) {
	if w.err != nil {
		return
	}
	w.flushPending()
	if w.err == nil {
		w.err = w.enc.EncodeToken(xml.CharData(s))
	}
}

// EndElement closes the innermost open element.
func (w *Writer) EndElement() {
	if w.err != nil {
		return
	}
	w.flushPending()
	if w.err != nil {
		return
	}
	if len(w.open) == 0 {
		w.err = fmt.Errorf("end element without open element")
		return
	}
	name := w.open[len(w.open)-1]
	w.open = w.open[:len(w.open)-1]
	w.scopes = w.scopes[:len(w.scopes)-1]
	w.err = w.enc.EncodeToken(xml.EndElement{Name: name})
}

// Flush writes buffered output and returns the first error seen.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	w.flushPending()
	if w.err != nil {
		return w.err
	}
	return w.enc.Flush()
}

func (w *Writer) flushPending() {
	if w.pending == nil {
		return
	}
	start := *w.pending
	w.pending = nil
	w.open = append(w.open, start.Name)
	w.err = w.enc.EncodeToken(start)
}

// qualify returns the prefix for ns, declaring it on the pending element
// when no enclosing scope has done so.
func (w *Writer) qualify(ns string) string {
	prefix, ok := w.prefixes[ns]
	if !ok {
		w.next++
		prefix = fmt.Sprintf("ns%d", w.next)
		w.prefixes[ns] = prefix
	}
	for i := len(w.scopes) - 1; i >= 0; i-- {
		if bound, ok := w.scopes[i][prefix]; ok {
			if bound == ns {
				return prefix
			}
			break
		}
	}
	top := len(w.scopes) - 1
	if w.scopes[top] == nil {
		w.scopes[top] = make(map[string]string)
	}
	w.scopes[top][prefix] = ns
	w.pending.Attr = append(w.pending.Attr, xml.Attr{Name: xml.Name{Local: "xmlns:" + prefix}, Value: ns})
	return prefix
}
