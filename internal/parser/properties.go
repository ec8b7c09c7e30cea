package parser

import (
	"strings"

	"github.com/beetlebugorg/gml/internal/dialect"
	"github.com/beetlebugorg/gml/internal/geometry"
	"github.com/beetlebugorg/gml/internal/xmlcursor"
)

// standardProperties ranks the properties every GML object may carry before
// its content (gml:StandardObjectProperties).
var standardProperties = map[string]int{
	"metaDataProperty":     0,
	"description":          1,
	"descriptionReference": 2,
	"identifier":           3,
	"name":                 4,
}

// repeatable standard properties; the others occur at most once.
var repeatable = map[string]bool{
	"metaDataProperty": true,
	"name":             true,
}

// readStandardProperties moves the cursor past the start tag of the current
// element and consumes its standard properties. It returns with the cursor
// on the first other child or on the end tag.
//
// With an application schema in use the schema order is enforced.
func (r *Reader) readStandardProperties() ([]geometry.Property, error) {
	var props []geometry.Property
	last := -1
	for {
		ev, err := r.c.NextTag()
		if err != nil {
			return nil, err
		}
		if ev != xmlcursor.StartElement || r.c.Namespace() != r.ns {
			return props, nil
		}
		rank, ok := standardProperties[r.c.LocalName()]
		if !ok {
			return props, nil
		}
		if r.schema != nil && (rank < last || rank == last && !repeatable[r.c.LocalName()]) {
			return nil, r.c.Errorf("property 'gml:%s' is out of order", r.c.LocalName())
		}
		last = rank
		p, err := r.readSimpleProperty()
		if err != nil {
			return nil, err
		}
		props = append(props, p)
	}
}

// readAdditionalProperties consumes the trailing properties the application
// schema declares for el. Without a schema nothing is consumed.
func (r *Reader) readAdditionalProperties(el dialect.Element, props []geometry.Property) ([]geometry.Property, error) {
	if r.schema == nil {
		return props, nil
	}
	declared := r.schema.AdditionalProperties(el.Name)
	i := 0
	for r.c.IsStartElement() {
		for i < len(declared) && declared[i] != r.c.Name() {
			i++
		}
		if i == len(declared) {
			r.log.WithField("element", r.c.Name().Local).Debug("Property not declared by the application schema")
			return props, nil
		}
		p, err := r.readSimpleProperty()
		if err != nil {
			return nil, err
		}
		props = append(props, p)
		if err := r.next(); err != nil {
			return nil, err
		}
	}
	return props, nil
}

// readSimpleProperty captures the current element as a Property. Nested
// markup is skipped; only the element's own text is kept.
func (r *Reader) readSimpleProperty() (geometry.Property, error) {
	p := geometry.Property{Name: r.c.Name()}
	p.Href, _ = r.c.Attr(dialect.NamespaceXLink, "href")
	p.CodeSpace, _ = r.c.Attr("", "codeSpace")
	if p.Href != "" {
		r.log.WithField("href", p.Href).Debug("Found property reference")
	}
	var sb strings.Builder
	depth := 0
	for {
		ev, err := r.c.Next()
		if err != nil {
			return p, err
		}
		switch ev {
		case xmlcursor.CharData:
			if depth == 0 {
				sb.WriteString(r.c.Text())
			}
		case xmlcursor.StartElement:
			depth++
		case xmlcursor.EndElement:
			if depth == 0 {
				p.Value = strings.TrimSpace(sb.String())
				return p, nil
			}
			depth--
		case xmlcursor.EndDocument:
			return p, r.c.Errorf("unexpected end of document")
		}
	}
}
