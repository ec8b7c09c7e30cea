package geometry

import (
	"fmt"
)

// ErrUnsupportedGeometry indicates a geometry kind with no representation
// in the active GML version.
type ErrUnsupportedGeometry struct {
	Kind    Kind
	Version string
	Reason  string
}

func (e *ErrUnsupportedGeometry) Error() string {
	msg := fmt.Sprintf("unsupported geometry %s", e.Kind)
	if e.Version != "" {
		msg += " in GML " + e.Version
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// ErrUnresolvedReference indicates an xlink whose target never appeared.
type ErrUnresolvedReference struct {
	Href   string
	Reason string
}

func (e *ErrUnresolvedReference) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("unresolved reference '%s': %s", e.Href, e.Reason)
	}
	return fmt.Sprintf("unresolved reference '%s'", e.Href)
}

// ErrDuplicateID indicates a second object registered under an id already
// in use.
type ErrDuplicateID struct {
	ID string
}

func (e *ErrDuplicateID) Error() string {
	return fmt.Sprintf("duplicate id '%s'", e.ID)
}

// ErrInvalidGeometry indicates a geometry that violates a model rule.
type ErrInvalidGeometry struct {
	Kind   Kind
	ID     string
	Reason string
}

func (e *ErrInvalidGeometry) Error() string {
	switch {
	case e.ID != "":
		return fmt.Sprintf("invalid geometry (%v '%s'): %s", e.Kind, e.ID, e.Reason)
	case e.Kind != KindUnknown:
		return fmt.Sprintf("invalid geometry (%v): %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("invalid geometry: %s", e.Reason)
}
