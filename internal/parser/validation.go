package parser

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/beetlebugorg/gml/internal/geometry"
)

// ValidateGeometry checks g and everything nested in it against the model
// rules: arity of control points, closed rings and finite coordinates.
func ValidateGeometry(g geometry.Geometry) error {
	if g == nil {
		return &geometry.ErrInvalidGeometry{Reason: "geometry is nil"}
	}
	return geometry.Validate(g)
}

// ValidateDocument validates every top-level geometry of doc and reports
// all failures together.
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return errors.New("document is nil")
	}
	var result *multierror.Error
	for i, g := range doc.Geometries {
		if err := ValidateGeometry(g); err != nil {
			result = multierror.Append(result, errors.WithMessagef(err, "geometry %d", i))
		}
	}
	return result.ErrorOrNil()
}
