package gml

import (
	"github.com/pkg/errors"

	"github.com/beetlebugorg/gml/internal/crs"
	"github.com/beetlebugorg/gml/internal/dialect"
	"github.com/beetlebugorg/gml/internal/geometry"
	"github.com/beetlebugorg/gml/internal/parser"
	"github.com/beetlebugorg/gml/internal/xmlcursor"
)

// Error types returned by the parser and the writer. Errors are wrapped with
// context on their way out; use errors.As or the Is helpers below to find
// the typed error.
type (
	// StructuralError reports input that violates the GML grammar.
	StructuralError = xmlcursor.StructuralError
	// Location is a position in a source document.
	Location = xmlcursor.Location

	ErrUnsupportedFormat   = parser.ErrUnsupportedFormat
	ErrDimensionMismatch   = parser.ErrDimensionMismatch
	ErrInvalidIdentifier   = parser.ErrInvalidIdentifier
	ErrUnsupportedGeometry = geometry.ErrUnsupportedGeometry
	ErrUnresolvedReference = geometry.ErrUnresolvedReference
	ErrDuplicateID         = geometry.ErrDuplicateID
	ErrInvalidGeometry     = geometry.ErrInvalidGeometry
	ErrUnknownElement      = dialect.ErrUnknownElement
	ErrUnknownCRS          = crs.ErrUnknownCRS
	ErrTransformation      = crs.ErrTransformation
)

// IsStructural reports whether err is or wraps a StructuralError.
func IsStructural(err error) bool {
	var target *StructuralError
	return errors.As(err, &target)
}

// IsUnsupportedGeometry reports whether err is or wraps an
// ErrUnsupportedGeometry.
func IsUnsupportedGeometry(err error) bool {
	var target *ErrUnsupportedGeometry
	return errors.As(err, &target)
}

// IsUnresolvedReference reports whether err is or wraps an
// ErrUnresolvedReference.
func IsUnresolvedReference(err error) bool {
	var target *ErrUnresolvedReference
	return errors.As(err, &target)
}

// IsDuplicateID reports whether err is or wraps an ErrDuplicateID.
func IsDuplicateID(err error) bool {
	var target *ErrDuplicateID
	return errors.As(err, &target)
}

// IsInvalidGeometry reports whether err is or wraps an ErrInvalidGeometry.
func IsInvalidGeometry(err error) bool {
	var target *ErrInvalidGeometry
	return errors.As(err, &target)
}

// IsUnknownCRS reports whether err is or wraps an ErrUnknownCRS.
func IsUnknownCRS(err error) bool {
	var target *ErrUnknownCRS
	return errors.As(err, &target)
}

// ErrorLocation returns the source location of the first structural,
// dimension or identifier error in err's chain.
func ErrorLocation(err error) (Location, bool) {
	var se *StructuralError
	if errors.As(err, &se) {
		return se.Location, true
	}
	var dm *ErrDimensionMismatch
	if errors.As(err, &dm) {
		return dm.Location, true
	}
	var id *ErrInvalidIdentifier
	if errors.As(err, &id) {
		return id.Location, true
	}
	var uf *ErrUnsupportedFormat
	if errors.As(err, &uf) {
		return uf.Location, true
	}
	return Location{}, false
}
