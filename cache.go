package fst

import (
	"bytes"

	lru "github.com/hashicorp/golang-lru"
)

// ProgramCache caches already-deserialized FSTs by content digest, so a
// process that repeatedly re-Reads the same dictionary bytes (a
// hot-reloaded config dictionary, say) only pays the decode cost once.
// One cache may be shared by any number of callers.
//
// Grounded on the teacher's NodeCache/NewNodeCache (node_cache.go),
// retargeted from caching tree nodes keyed by storage hash to caching
// whole compiled programs keyed by Digest().
type ProgramCache struct {
	cache *lru.ARCCache
}

// NewProgramCache creates an LRU-based program cache holding up to size
// entries.
func NewProgramCache(size int) (*ProgramCache, error) {
	c, err := lru.NewARC(size)
	if err != nil {
		return nil, err
	}
	return &ProgramCache{cache: c}, nil
}

// Get retrieves the FST cached under digest, if any.
func (c *ProgramCache) Get(digest string) (*FST, bool) {
	v, ok := c.cache.Get(digest)
	if !ok {
		return nil, false
	}
	return v.(*FST), true
}

// Add caches f under digest, evicting an entry chosen by the ARC policy
// if the cache is full.
func (c *ProgramCache) Add(digest string, f *FST) {
	c.cache.Add(digest, f)
}

// Contains reports whether digest is already cached, without affecting
// recency.
func (c *ProgramCache) Contains(digest string) bool {
	return c.cache.Contains(digest)
}

// ReadCached decodes bytes Read would decode, but returns a cached FST if
// one was already cached under the data's digest, storing a freshly
// decoded one under that digest otherwise.
func ReadCached(cache *ProgramCache, digest string, data []byte) (*FST, error) {
	if f, ok := cache.Get(digest); ok {
		return f, nil
	}
	f, err := Read(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	cache.Add(digest, f)
	return f, nil
}
