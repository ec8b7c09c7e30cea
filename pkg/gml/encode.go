package gml

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/beetlebugorg/gml/internal/geometry"
	"github.com/beetlebugorg/gml/internal/writer"
)

// Encode writes g to w as one GML element of opts.Version.
//
// Example:
//
//	err := gml.Encode(os.Stdout, doc.Geometries[0], gml.WriteOptions{
//	    Version:   gml.GML32,
//	    OutputCRS: "EPSG:25832",
//	})
func Encode(w io.Writer, g Geometry, opts WriteOptions) error {
	return writer.Encode(w, g, opts.internal())
}

// Marshal returns the GML encoding of g.
func Marshal(g Geometry, opts WriteOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, g, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeDocument writes the geometries of doc to w as a single element.
//
// A document with one geometry is written as that geometry. Several
// geometries are wrapped in a MultiGeometry; envelopes, which cannot be
// members, are dropped.
func EncodeDocument(w io.Writer, doc *Document, opts WriteOptions) error {
	g, err := documentGeometry(doc, opts.Logger)
	if err != nil {
		return err
	}
	return Encode(w, g, opts)
}

func documentGeometry(doc *Document, log logrus.FieldLogger) (Geometry, error) {
	if doc == nil || len(doc.Geometries) == 0 {
		return nil, errors.New("document has no geometries")
	}
	if len(doc.Geometries) == 1 {
		return doc.Geometries[0], nil
	}
	multi := &geometry.MultiGeometry{}
	for _, g := range doc.Geometries {
		if g.Kind() == geometry.KindEnvelope {
			if log != nil {
				log.WithField("file", doc.SystemID).Debug("Dropping envelope from geometry collection")
			}
			continue
		}
		multi.Members = append(multi.Members, g)
	}
	if len(multi.Members) == 1 {
		return multi.Members[0], nil
	}
	return multi, nil
}
