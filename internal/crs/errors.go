package crs

import (
	"fmt"
)

// ErrUnknownCRS indicates a CRS name that cannot be resolved to a
// definition, or a transformation for which no transformer exists.
type ErrUnknownCRS struct {
	Name string
}

func (e *ErrUnknownCRS) Error() string {
	return fmt.Sprintf("unknown CRS: %s", e.Name)
}

// ErrTransformation indicates a failure while transforming coordinates.
type ErrTransformation struct {
	From, To string
	Err      error
}

func (e *ErrTransformation) Error() string {
	return fmt.Sprintf("transformation %s -> %s failed: %v", e.From, e.To, e.Err)
}

func (e *ErrTransformation) Unwrap() error { return e.Err }
