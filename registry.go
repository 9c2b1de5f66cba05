package fst

// registry deduplicates states by structural equivalence during
// construction. It is scoped to a single build and discarded afterward;
// nothing it holds survives into the compiled program. Grounded on the
// teacher's NodeCache (node_cache.go), reshaped from a cross-session LRU
// of persisted nodes into a plain construction-time hash-bucket index —
// entries here are never evicted, since a build never revisits a state
// once it has moved past the depth that produced it.
type registry struct {
	buckets map[uint64][]*state
}

func newRegistry() *registry {
	return &registry{buckets: make(map[uint64][]*state)}
}

// freeze returns the canonical frozen state structurally equivalent to
// s. If none exists yet for its signature bucket, a clone of s is
// registered as that canonical instance and added to m (assigning it
// the next id and making it reachable from compile's state walk), per
// the original's `if (!s) { s = ...; m->addState(s); ... }`
// (original_source/fst.h).
func (r *registry) freeze(m *mast, s *state) *state {
	bucket := r.buckets[s.hcode]
	for _, cand := range bucket {
		if cand.equal(s) {
			return cand
		}
	}
	frozen := s.clone()
	m.addState(frozen)
	r.buckets[s.hcode] = append(bucket, frozen)
	return frozen
}
