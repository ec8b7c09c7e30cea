package gml

import (
	"path/filepath"
	"strings"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"

	"github.com/beetlebugorg/gml/internal/geometry"
)

// DefaultCacheSize is the number of documents a DocumentCache created with
// a non-positive size holds.
const DefaultCacheSize = 64

// DocumentCache keeps parsed documents with a least-recently-used eviction
// policy.
//
// Its main use is resolving xlink:href values that point into other
// documents: set ParseOptions.Cache and every referenced document is parsed
// once, on first dereference, and shared by all documents referring to it.
// Concurrent requests for the same document share one load.
//
// Example:
//
//	cache := gml.NewDocumentCache(16)
//	opts := gml.DefaultParseOptions()
//	opts.Cache = cache
//	doc, err := parser.ParseWithOptions("district.gml", opts)
//	...
//	err = doc.ResolveReferences() // loads buildings.gml for "buildings.gml#b1"
type DocumentCache struct {
	docs   *lru.Cache
	loads  singleflight.Group
	hits   atomic.Int64
	misses atomic.Int64
}

// CacheStats reports cache usage.
type CacheStats struct {
	Documents int   // Documents currently cached
	Hits      int64 // Get calls answered from the cache
	Misses    int64 // Get calls that ran the loader
}

// NewDocumentCache creates a cache holding up to size documents. A size of 0
// or less selects DefaultCacheSize.
func NewDocumentCache(size int) *DocumentCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	docs, err := lru.New(size)
	if err != nil {
		// lru.New only fails for non-positive sizes.
		panic(err)
	}
	return &DocumentCache{docs: docs}
}

// Get returns the document cached under uri, or loads and caches it with
// loader. Load errors are not cached.
func (c *DocumentCache) Get(uri string, loader func() (*Document, error)) (*Document, error) {
	if v, ok := c.docs.Get(uri); ok {
		c.hits.Add(1)
		return v.(*Document), nil
	}
	v, err, _ := c.loads.Do(uri, func() (interface{}, error) {
		if v, ok := c.docs.Get(uri); ok {
			return v, nil
		}
		c.misses.Add(1)
		doc, err := loader()
		if err != nil {
			return nil, errors.Wrapf(err, "load %s", uri)
		}
		c.docs.Add(uri, doc)
		return doc, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Document), nil
}

// Add stores doc under uri, replacing any cached document.
func (c *DocumentCache) Add(uri string, doc *Document) {
	c.docs.Add(uri, doc)
}

// Remove evicts the document cached under uri. It reports whether one was
// cached.
func (c *DocumentCache) Remove(uri string) bool {
	return c.docs.Remove(uri)
}

// Clear evicts every document.
func (c *DocumentCache) Clear() {
	c.docs.Purge()
}

// Stats returns a snapshot of the cache usage.
func (c *DocumentCache) Stats() CacheStats {
	return CacheStats{
		Documents: c.docs.Len(),
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
	}
}

// Resolver returns a geometry resolver that loads the document part of an
// href with p through the cache and looks up its fragment. Relative document
// paths are taken relative to the directory of the referring document.
func (c *DocumentCache) Resolver(p Parser, opts ParseOptions) geometry.Resolver {
	return &cacheResolver{cache: c, parser: p, opts: opts}
}

type cacheResolver struct {
	cache  *DocumentCache
	parser Parser
	opts   ParseOptions
}

func (r *cacheResolver) Resolve(href, baseURI string) (geometry.Geometry, error) {
	target, frag := splitHref(href)
	if target == "" {
		return nil, &geometry.ErrUnresolvedReference{Href: href, Reason: "no document part"}
	}
	if strings.Contains(target, "://") && !strings.HasPrefix(target, "file://") {
		return nil, &geometry.ErrUnresolvedReference{Href: href, Reason: "only local documents are loaded"}
	}
	path := documentPath(target, baseURI)
	doc, err := r.cache.Get(path, func() (*Document, error) {
		return r.parser.ParseWithOptions(path, r.opts)
	})
	if err != nil {
		return nil, &geometry.ErrUnresolvedReference{Href: href, Reason: err.Error()}
	}
	g, ok := doc.Geometry(frag)
	if !ok {
		return nil, &geometry.ErrUnresolvedReference{Href: href, Reason: "no object with id '" + frag + "' in " + path}
	}
	return g, nil
}

func splitHref(href string) (doc, frag string) {
	if i := strings.IndexByte(href, '#'); i >= 0 {
		return href[:i], href[i+1:]
	}
	return href, ""
}

// documentPath maps a referenced document to a file path.
func documentPath(target, baseURI string) string {
	target = filepath.FromSlash(strings.TrimPrefix(target, "file://"))
	if filepath.IsAbs(target) || baseURI == "" {
		return filepath.Clean(target)
	}
	base := filepath.FromSlash(strings.TrimPrefix(baseURI, "file://"))
	return filepath.Join(filepath.Dir(base), target)
}
