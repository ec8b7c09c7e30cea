package dialect

import (
	"encoding/xml"
	"fmt"
)

// ErrUnknownElement indicates an element that is neither a known GML
// geometry element nor declared by the application schema.
type ErrUnknownElement struct {
	Name   xml.Name
	Reason string
}

func (e *ErrUnknownElement) Error() string {
	return fmt.Sprintf("invalid geometry element '{%s}%s': %s", e.Name.Space, e.Name.Local, e.Reason)
}
