package dialect

import (
	"encoding/xml"
	"sync"
)

// Hierarchy is the geometry part of an application schema. It overrides the
// static element tables: elements it does not declare are rejected.
type Hierarchy interface {
	// Substitution returns the local name of the concrete GML element that
	// name substitutes for.
	Substitution(name xml.Name) (string, bool)

	// AdditionalProperties returns the properties the schema declares after
	// the GML content of name, in declaration order.
	AdditionalProperties(name xml.Name) []xml.Name
}

// StaticHierarchy is a map-backed Hierarchy. It declares every GML element
// of its version, so only application elements need registering.
type StaticHierarchy struct {
	version Version

	mu    sync.RWMutex
	subst map[xml.Name]string
	props map[xml.Name][]xml.Name
}

// NewStaticHierarchy creates a hierarchy on top of the core GML elements of
// version v.
func NewStaticHierarchy(v Version) *StaticHierarchy {
	return &StaticHierarchy{
		version: v,
		subst:   make(map[xml.Name]string),
		props:   make(map[xml.Name][]xml.Name),
	}
}

// Version returns the GML version the hierarchy extends.
func (h *StaticHierarchy) Version() Version { return h.version }

// Substitute declares name as substitutable for the GML element base.
func (h *StaticHierarchy) Substitute(name xml.Name, base string) error {
	if Lookup(h.version, base) == NotGeometry {
		return &ErrUnknownElement{Name: h.version.Name(base), Reason: "cannot be substituted"}
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subst[name] = base
	return nil
}

// DeclareProperties sets the additional properties of element name.
func (h *StaticHierarchy) DeclareProperties(name xml.Name, props ...xml.Name) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.props[name] = append([]xml.Name(nil), props...)
}

// Substitution implements Hierarchy.
func (h *StaticHierarchy) Substitution(name xml.Name) (string, bool) {
	h.mu.RLock()
	base, ok := h.subst[name]
	h.mu.RUnlock()
	if ok {
		return base, true
	}
	if name.Space == h.version.Namespace() && Lookup(h.version, name.Local) != NotGeometry {
		return name.Local, true
	}
	return "", false
}

// AdditionalProperties implements Hierarchy.
func (h *StaticHierarchy) AdditionalProperties(name xml.Name) []xml.Name {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.props[name]
}
