package crs

import (
	"strings"
	"sync"

	"github.com/ctessum/geom/proj"
)

// Definition describes a coordinate reference system known to a Resolver.
type Definition struct {
	// Code is the normalized identifier, e.g. "EPSG:25832".
	Code string
	// Proj4 is a proj4 or WKT definition understood by proj.Parse.
	Proj4 string
	// Dimension is the native number of ordinates per position.
	Dimension int
}

// Geographic reports whether the definition is a longitude/latitude system.
func (d Definition) Geographic() bool {
	p := strings.ToLower(d.Proj4)
	return strings.Contains(p, "+proj=longlat") || strings.Contains(p, "+proj=latlong") ||
		strings.HasPrefix(strings.TrimSpace(p), "geogcs[")
}

// builtin covers the systems most GML producers emit.
var builtin = []Definition{
	{"EPSG:4326", "+proj=longlat +datum=WGS84 +no_defs", 2},
	{"CRS:84", "+proj=longlat +datum=WGS84 +no_defs", 2},
	{"EPSG:4979", "+proj=longlat +datum=WGS84 +no_defs", 3},
	{"EPSG:4258", "+proj=longlat +ellps=GRS80 +no_defs", 2},
	{"EPSG:4269", "+proj=longlat +ellps=GRS80 +no_defs", 2},
	{"EPSG:4267", "+proj=longlat +ellps=clrk66 +no_defs", 2},
	{"EPSG:3857", "+proj=merc +a=6378137 +b=6378137 +lat_ts=0 +lon_0=0 +x_0=0 +y_0=0 +k=1 +units=m +no_defs", 2},
	{"EPSG:25832", "+proj=utm +zone=32 +ellps=GRS80 +units=m +no_defs", 2},
	{"EPSG:25833", "+proj=utm +zone=33 +ellps=GRS80 +units=m +no_defs", 2},
	{"EPSG:32632", "+proj=utm +zone=32 +datum=WGS84 +units=m +no_defs", 2},
	{"EPSG:32633", "+proj=utm +zone=33 +datum=WGS84 +units=m +no_defs", 2},
	{"EPSG:31467", "+proj=tmerc +lat_0=0 +lon_0=9 +k=1 +x_0=3500000 +y_0=0 +ellps=bessel +units=m +no_defs", 2},
	{"EPSG:5555", "+proj=utm +zone=32 +ellps=GRS80 +units=m +no_defs", 3},
	{"EPSG:5556", "+proj=utm +zone=33 +ellps=GRS80 +units=m +no_defs", 3},
}

// Resolver maps CRS names to handles and builds transformers. It is safe
// for concurrent use.
type Resolver struct {
	mu   sync.RWMutex
	defs map[string]Definition
	srs  map[string]*proj.SR
}

// NewResolver returns a resolver preloaded with the built-in definitions.
func NewResolver() *Resolver {
	r := &Resolver{
		defs: make(map[string]Definition),
		srs:  make(map[string]*proj.SR),
	}
	for _, d := range builtin {
		r.defs[d.Code] = d
	}
	return r
}

// Register adds or replaces a definition. The code is normalized first, so
// any accepted spelling may be used.
func (r *Resolver) Register(def Definition) error {
	if code := Normalize(def.Code); code != "" {
		def.Code = code
	}
	if _, err := proj.Parse(def.Proj4); err != nil {
		return &ErrTransformation{From: def.Code, To: def.Code, Err: err}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defs[def.Code] = def
	delete(r.srs, def.Code)
	return nil
}

// Resolve returns a handle for name. It never fails: a name without a known
// definition yields a handle with unknown dimension, matching the lazy way
// documents reference systems. An empty name yields nil.
//
// A geographic system named in URN or OGC URL form is latitude first.
func (r *Resolver) Resolve(name string) *CRS {
	if name == "" {
		return nil
	}
	c := &CRS{name: name, code: Normalize(name)}
	r.mu.RLock()
	if d, ok := r.defs[c.key()]; ok {
		c.dim = d.Dimension
		c.latLon = d.Geographic() && authorityAxes(name)
	}
	r.mu.RUnlock()
	return c
}

// Lookup is the strict form of Resolve.
func (r *Resolver) Lookup(name string) (*CRS, error) {
	c := r.Resolve(name)
	if c == nil || !r.Known(c) {
		return nil, &ErrUnknownCRS{Name: name}
	}
	return c, nil
}

// Known reports whether a definition exists for c.
func (r *Resolver) Known(c *CRS) bool {
	if c == nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.defs[c.key()]
	return ok
}

func (c *CRS) key() string {
	if c.code != "" {
		return c.code
	}
	return c.name
}

func (r *Resolver) spatialRef(c *CRS) (*proj.SR, error) {
	key := c.key()
	r.mu.RLock()
	sr, ok := r.srs[key]
	def, known := r.defs[key]
	r.mu.RUnlock()
	if ok {
		return sr, nil
	}
	if !known {
		return nil, &ErrUnknownCRS{Name: c.Name()}
	}
	sr, err := proj.Parse(def.Proj4)
	if err != nil {
		return nil, &ErrTransformation{From: c.Name(), To: c.Name(), Err: err}
	}
	r.mu.Lock()
	r.srs[key] = sr
	r.mu.Unlock()
	return sr, nil
}

// Transformer converts positions from any known system into one target
// system.
type Transformer struct {
	r        *Resolver
	target   *CRS
	targetSR *proj.SR

	mu    sync.Mutex
	cache map[string]proj.Transformer
}

// NewTransformer builds a transformer into target. It fails with
// ErrUnknownCRS when target has no definition.
func (r *Resolver) NewTransformer(target *CRS) (*Transformer, error) {
	sr, err := r.spatialRef(target)
	if err != nil {
		return nil, err
	}
	return &Transformer{
		r:        r,
		target:   target,
		targetSR: sr,
		cache:    make(map[string]proj.Transformer),
	}, nil
}

// Target returns the output system.
func (t *Transformer) Target() *CRS { return t.target }

// Transform converts one position from src into the target system. The
// first two ordinates are projected; any further ordinates pass through.
// Latitude-first positions are swapped before projecting from src and
// after projecting into the target. The input slice is never modified.
func (t *Transformer) Transform(src *CRS, coords []float64) ([]float64, error) {
	if src == nil || src.Equal(t.target) || len(coords) < 2 {
		return coords, nil
	}
	x, y := coords[0], coords[1]
	if src.LatLon() {
		x, y = y, x
	}
	if !src.SameSystem(t.target) {
		fn, err := t.transformerFrom(src)
		if err != nil {
			return nil, err
		}
		if x, y, err = fn(x, y); err != nil {
			return nil, &ErrTransformation{From: src.Name(), To: t.target.Name(), Err: err}
		}
	}
	if t.target.LatLon() {
		x, y = y, x
	}
	out := make([]float64, len(coords))
	out[0], out[1] = x, y
	copy(out[2:], coords[2:])
	return out, nil
}

func (t *Transformer) transformerFrom(src *CRS) (proj.Transformer, error) {
	key := src.key()
	t.mu.Lock()
	defer t.mu.Unlock()
	if fn, ok := t.cache[key]; ok {
		return fn, nil
	}
	sr, err := t.r.spatialRef(src)
	if err != nil {
		return nil, err
	}
	fn, err := sr.NewTransform(t.targetSR)
	if err != nil {
		return nil, &ErrTransformation{From: src.Name(), To: t.target.Name(), Err: err}
	}
	t.cache[key] = fn
	return fn, nil
}
