package xmlcursor

import (
	"fmt"
)

// Location identifies a position in a source document.
type Location struct {
	SystemID string
	Line     int
	Column   int
}

func (l Location) String() string {
	if l.SystemID != "" {
		return fmt.Sprintf("%s:%d:%d", l.SystemID, l.Line, l.Column)
	}
	return fmt.Sprintf("line %d, column %d", l.Line, l.Column)
}

// StructuralError indicates that the cursor met an element or event other
// than the one the grammar requires at this point.
type StructuralError struct {
	Location Location
	Msg      string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("structural error at %s: %s", e.Location, e.Msg)
}
