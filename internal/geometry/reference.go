package geometry

import (
	"strings"
	"sync"
)

// Resolver looks up the geometry an xlink href points at.
type Resolver interface {
	Resolve(href, baseURI string) (Geometry, error)
}

// Reference stands in for a geometry given by an xlink:href. Nothing is
// looked up when the reference is created; Resolve performs the lookup on
// first use and caches the result.
type Reference struct {
	Base
	// Super is the kind the referencing property accepts.
	Super   Kind
	Href    string
	BaseURI string

	resolver Resolver
	mu       sync.Mutex
	target   Geometry
}

// NewReference creates an unresolved reference.
func NewReference(super Kind, href, baseURI string, r Resolver) *Reference {
	return &Reference{Super: super, Href: href, BaseURI: baseURI, resolver: r}
}

func (*Reference) Kind() Kind { return KindReference }
func (*Reference) primitive() {}
func (*Reference) point()     {}
func (*Reference) curve()     {}
func (*Reference) ring()      {}
func (*Reference) surface()   {}
func (*Reference) solid()     {}

// Fragment returns the part of the href after '#', or the whole href when
// it has no fragment.
func (r *Reference) Fragment() string {
	if i := strings.IndexByte(r.Href, '#'); i >= 0 {
		return r.Href[i+1:]
	}
	return r.Href
}

// IsLocal reports whether the href points into the same document.
func (r *Reference) IsLocal() bool {
	return strings.HasPrefix(r.Href, "#")
}

// Resolved reports whether Resolve has succeeded before.
func (r *Reference) Resolved() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.target != nil
}

// Resolve returns the referenced geometry. It fails with
// ErrUnresolvedReference when the target does not exist or is not of the
// super kind.
func (r *Reference) Resolve() (Geometry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.target != nil {
		return r.target, nil
	}
	if r.resolver == nil {
		return nil, &ErrUnresolvedReference{Href: r.Href, Reason: "no resolver"}
	}
	g, err := r.resolver.Resolve(r.Href, r.BaseURI)
	if err != nil {
		return nil, err
	}
	if !Accepts(r.Super, g.Kind()) {
		return nil, &ErrUnresolvedReference{
			Href:   r.Href,
			Reason: "target is a " + g.Kind().String() + ", expected " + r.Super.String(),
		}
	}
	r.target = g
	return g, nil
}

// Accepts reports whether a property typed by super accepts a value of
// kind k.
func Accepts(super, k Kind) bool {
	switch super {
	case KindGeometry:
		return k != KindEnvelope && k != KindUnknown
	case KindGeometricPrimitive:
		return k.IsPrimitive()
	case KindCurve:
		return k.IsCurve() || k.IsRing()
	case KindRing:
		return k.IsRing()
	case KindSurface:
		return k.IsSurface()
	case KindSolid:
		return k.IsSolid()
	default:
		return super == k
	}
}

// Deref returns the target of g when g is a resolvable reference and g
// itself otherwise.
func Deref(g Geometry) Geometry {
	if ref, ok := g.(*Reference); ok {
		if t, err := ref.Resolve(); err == nil {
			return t
		}
	}
	return g
}
