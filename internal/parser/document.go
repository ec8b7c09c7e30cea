package parser

import (
	"encoding/xml"
	"math"

	"github.com/beetlebugorg/gml/internal/dialect"
	"github.com/beetlebugorg/gml/internal/geometry"
)

// Document is a parsed GML document: its top-level geometries in document
// order and the registry of every identified object found while reading
// them.
type Document struct {
	SystemID   string              // Base URI of the document's references
	Root       xml.Name            // Root element
	Version    dialect.Version     // Detected or configured GML version
	Geometries []geometry.Geometry // Public - top-level geometries
	registry   *Registry           // Private - id table and pending references
}

// Registry returns the document's id registry.
func (d *Document) Registry() *Registry {
	return d.registry
}

// Geometry returns the object registered under id.
func (d *Document) Geometry(id string) (geometry.Geometry, bool) {
	if d.registry == nil {
		return nil, false
	}
	return d.registry.Get(id)
}

// IDs returns the registered ids in registration order.
func (d *Document) IDs() []string {
	if d.registry == nil {
		return nil
	}
	return d.registry.IDs()
}

// References returns the xlink references created while parsing.
func (d *Document) References() []*geometry.Reference {
	if d.registry == nil {
		return nil
	}
	return d.registry.Pending()
}

// ResolveReferences resolves every reference of the document. All
// unresolvable references are reported together.
func (d *Document) ResolveReferences() error {
	if d.registry == nil {
		return nil
	}
	return d.registry.ResolveAll()
}

// Bounds returns the union of the bounds of all top-level geometries. ok is
// false when no geometry has positions. The envelope takes the CRS of the
// first geometry with bounds; CRS differences are ignored.
func (d *Document) Bounds() (env *geometry.Envelope, ok bool) {
	for _, g := range d.Geometries {
		b, has := geometry.Bounds(g)
		if !has {
			continue
		}
		if env == nil {
			env = geometry.NewEnvelope(b.CRS(), append([]float64(nil), b.Min...), append([]float64(nil), b.Max...))
			continue
		}
		for i := 0; i < len(env.Min) && i < len(b.Min); i++ {
			env.Min[i] = math.Min(env.Min[i], b.Min[i])
			env.Max[i] = math.Max(env.Max[i], b.Max[i])
		}
	}
	return env, env != nil
}
