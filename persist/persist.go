// Package persist defines the storage interface a compiled FST's
// serialized bytes can be published to and fetched from by content
// digest (see fst.FST.Digest), plus a trivial in-memory implementation
// for tests. Grounded on the teacher's top-level Persist interface
// (pub.go), unchanged in shape: only the thing being stored (a whole
// compiled program's bytes, rather than one tree node's bytes) differs.
package persist

import (
	"context"
	"fmt"
	"sync"
)

// Persist makes named byte blobs durable. The name is expected to be a
// content digest, so Store is idempotent: storing the same name twice is
// a no-op on the second call.
type Persist interface {
	// Store makes bytes accessible by name, if not already stored.
	Store(ctx context.Context, name string, bytes []byte) error
	// Load retrieves the previously-stored bytes by name.
	Load(ctx context.Context, name string) ([]byte, error)
}

// InMemory is a Persist backed by a plain guarded map, useful in tests
// and for small dictionaries that don't need real durability. Grounded
// on the teacher's in_memory_store.go.
type InMemory struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

// NewInMemory returns an empty in-memory Persist.
func NewInMemory() *InMemory {
	return &InMemory{blobs: make(map[string][]byte)}
}

func (p *InMemory) Store(_ context.Context, name string, bytes []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.blobs[name]; ok {
		return nil
	}
	cp := make([]byte, len(bytes))
	copy(cp, bytes)
	p.blobs[name] = cp
	return nil
}

func (p *InMemory) Load(_ context.Context, name string) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	b, ok := p.blobs[name]
	if !ok {
		return nil, fmt.Errorf("persist: no such blob: %s", name)
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	return cp, nil
}
