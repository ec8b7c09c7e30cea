package parser

import (
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/beetlebugorg/gml/internal/geometry"
)

// Registry tracks the identified geometries of a document and the
// references created while reading it.
//
// Geometries are registered only after their element has been read
// completely, so references are never resolved during parsing. Call
// ResolveAll (or resolve individual references) once the document is done.
type Registry struct {
	log             logrus.FieldLogger
	allowDuplicates bool
	fallback        geometry.Resolver

	mu      sync.RWMutex
	objects map[string]geometry.Geometry
	order   []string
	pending []*geometry.Reference
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithDuplicateIDs makes Register replace an existing entry instead of
// failing with ErrDuplicateID.
func WithDuplicateIDs(allow bool) RegistryOption {
	return func(r *Registry) { r.allowDuplicates = allow }
}

// WithFallback sets the resolver used for hrefs that point into other
// documents.
func WithFallback(f geometry.Resolver) RegistryOption {
	return func(r *Registry) { r.fallback = f }
}

// WithLogger sets the registry logger.
func WithLogger(l logrus.FieldLogger) RegistryOption {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		log:     discardLogger(),
		objects: make(map[string]geometry.Geometry),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register stores g under id. An empty id is ignored.
func (r *Registry) Register(id string, g geometry.Geometry) error {
	if id == "" {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.objects[id]; exists {
		if !r.allowDuplicates {
			return &geometry.ErrDuplicateID{ID: id}
		}
		r.log.WithField("id", id).Debug("Replacing geometry with duplicate id")
	} else {
		r.order = append(r.order, id)
	}
	r.objects[id] = g
	return nil
}

// Get returns the geometry registered under id.
func (r *Registry) Get(id string) (geometry.Geometry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.objects[id]
	return g, ok
}

// IDs returns the registered ids in registration order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Len returns the number of registered geometries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.objects)
}

// CreateReference returns an unresolved reference bound to this registry
// and records it as pending.
func (r *Registry) CreateReference(super geometry.Kind, href, baseURI string) *geometry.Reference {
	ref := geometry.NewReference(super, href, baseURI, r)
	r.mu.Lock()
	r.pending = append(r.pending, ref)
	r.mu.Unlock()
	r.log.WithFields(logrus.Fields{"href": href, "kind": super}).Debug("Found geometry reference")
	return ref
}

// Pending returns every reference created so far, resolved or not.
func (r *Registry) Pending() []*geometry.Reference {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*geometry.Reference(nil), r.pending...)
}

// Resolve implements geometry.Resolver. Fragment-only hrefs, and hrefs
// whose document part equals baseURI, are looked up locally; everything
// else goes to the fallback resolver.
func (r *Registry) Resolve(href, baseURI string) (geometry.Geometry, error) {
	doc, frag := splitHref(href)
	if doc == "" || doc == baseURI {
		if g, ok := r.Get(frag); ok {
			return g, nil
		}
		return nil, &geometry.ErrUnresolvedReference{Href: href, Reason: "no object with id '" + frag + "'"}
	}
	if r.fallback == nil {
		return nil, &geometry.ErrUnresolvedReference{Href: href, Reason: "reference into another document"}
	}
	return r.fallback.Resolve(href, baseURI)
}

// ResolveAll resolves every pending reference and reports all failures at
// once.
func (r *Registry) ResolveAll() error {
	var result *multierror.Error
	for _, ref := range r.Pending() {
		if _, err := ref.Resolve(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

func splitHref(href string) (doc, frag string) {
	if i := strings.IndexByte(href, '#'); i >= 0 {
		return href[:i], href[i+1:]
	}
	return "", href
}
