package parser

import (
	"fmt"

	"github.com/beetlebugorg/gml/internal/xmlcursor"
)

// ErrUnsupportedFormat indicates a recognized but unimplemented encoding
// variant, such as a decimal separator other than '.'.
type ErrUnsupportedFormat struct {
	Location xmlcursor.Location
	Format   string
}

func (e *ErrUnsupportedFormat) Error() string {
	return fmt.Sprintf("unsupported format at %s: %s", e.Location, e.Format)
}

// ErrDimensionMismatch indicates a coordinate list whose length is not a
// multiple of the coordinate dimension.
type ErrDimensionMismatch struct {
	Location  xmlcursor.Location
	Count     int
	Dimension int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch at %s: %d ordinates cannot be grouped into positions of dimension %d",
		e.Location, e.Count, e.Dimension)
}

// ErrInvalidIdentifier indicates an id that is not a valid NCName.
type ErrInvalidIdentifier struct {
	Location xmlcursor.Location
	ID       string
}

func (e *ErrInvalidIdentifier) Error() string {
	return fmt.Sprintf("invalid identifier '%s' at %s: must be an NCName", e.ID, e.Location)
}
