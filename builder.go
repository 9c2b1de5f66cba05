package fst

import (
	"bytes"
	"sort"
)

// Pair associates an input byte string with the int32 output BuildFST
// should emit when that exact string is matched.
type Pair struct {
	In  []byte
	Out int32
}

// NewPair is a convenience constructor for building a Pair from a string key.
func NewPair(key string, out int32) Pair {
	return Pair{In: []byte(key), Out: out}
}

// mast is the minimized automaton produced by buildMAST: a root state plus
// every other state reachable from it, in the order they were frozen. It
// exists only to hand off to the compiler; nothing outside this file and
// compiler.go needs to know its shape.
type mast struct {
	initial *state
	states  []*state
}

func (m *mast) addState(s *state) {
	s.id = len(m.states)
	m.states = append(m.states, s)
}

func commonPrefixLen(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

// buildMAST performs the incremental construction of §4.1: a ring buffer
// of mutable states, one per input-length depth, is walked forward as
// sorted pairs are consumed. Whenever a later pair diverges from the
// previous one, the now-untouchable suffix of the previous pair is
// frozen into the registry (deduplicating against any structurally
// identical state already seen) and spliced onto its parent; the new
// pair's own suffix is then grown in the vacated buffer slots.
//
// sorted pairs must already be sorted ascending by In; buildMAST does not
// sort and does not deduplicate identical keys beyond what §4.1's output
// redistribution handles.
func buildMAST(sorted []Pair) *mast {
	maxLen := 0
	for _, p := range sorted {
		if len(p.In) > maxLen {
			maxLen = len(p.In)
		}
	}

	buf := make([]*state, maxLen+1)
	for i := range buf {
		buf[i] = newState()
	}

	reg := newRegistry()
	m := &mast{}

	var prev []byte
	for _, pair := range sorted {
		in, out := pair.In, pair.Out
		wasZero := out == 0
		p := commonPrefixLen(in, prev)

		// Freeze the divergent tail of prev: everything beyond the shared
		// prefix can no longer change, so dedupe and splice it onto its
		// parent, then reset the slot for reuse by the new suffix.
		for i := len(prev); i > p; i-- {
			frozen := reg.freeze(m, buf[i])
			buf[i].reset()
			buf[i-1].setTransition(prev[i-1], frozen)
		}

		// Grow the new suffix through the vacated slots, including the edge
		// for the last byte of in, so that output redistribution by a later
		// pair sees every edge along this path. Each of these edges is
		// rewired to its frozen successor by the freeze step above on a
		// later iteration (via prev[i-1]) or by the closing flush below.
		for i := p + 1; i <= len(in); i++ {
			buf[i-1].setTransition(in[i-1], buf[i])
		}

		if !bytes.Equal(in, prev) {
			buf[len(in)].final = true
		}

		// Redistribute output along the shared prefix: the new pair may
		// disagree with an already-placed output, in which case that
		// output has to move one edge further out (onto every edge
		// leaving the next state, and onto this state's tail if it is
		// itself accepting).
		for j := 1; j < p+1; j++ {
			ch := in[j-1]
			existing := buf[j-1].outputFor(ch)
			if existing == out {
				out = 0
				break
			}
			outSuff := existing
			buf[j-1].removeOutput(ch)
			for tch := range buf[j].trans {
				buf[j].setOutput(tch, outSuff)
			}
			if buf[j].final && outSuff != 0 {
				buf[j].addTail(outSuff)
			}
		}

		if !bytes.Equal(in, prev) {
			// The residual replaces anything the redistribution above
			// pushed onto the new edge.
			buf[p].removeOutput(in[p])
			buf[p].setOutput(in[p], out)
		} else if wasZero || out != 0 {
			buf[len(in)].addTail(out)
		}

		prev = in
	}

	for i := len(prev); i > 0; i-- {
		frozen := reg.freeze(m, buf[i])
		buf[i-1].setTransition(prev[i-1], frozen)
	}

	// The root is the unique entry point and is never deduplicated: there
	// is only ever one of it, so registering it in the registry would be
	// pointless work. It is added last, after every other reachable state,
	// so its id is the highest and its transitions' targets already have
	// addresses by the time compile reaches it.
	m.addState(buf[0])
	m.initial = buf[0]

	return m
}

func sortPairs(pairs []Pair) []Pair {
	sorted := make([]Pair, len(pairs))
	copy(sorted, pairs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i].In, sorted[j].In) < 0
	})
	return sorted
}

// BuildFST builds, compiles, and returns a queryable FST from pairs. pairs
// need not be sorted; BuildFST sorts a copy internally.
func BuildFST(pairs []Pair) (*FST, error) {
	return buildFST(sortPairs(pairs))
}

// BuildFSTSorted is a fast path for callers who can already guarantee
// pairs is sorted ascending by In: it skips the sort, nothing else.
// Passing unsorted input produces an FST with undefined query behavior.
func BuildFSTSorted(pairs []Pair) (*FST, error) {
	return buildFST(pairs)
}

func buildFST(sorted []Pair) (f *FST, err error) {
	defer func() {
		if r := recover(); r != nil {
			f = nil
			err = compileErrorFromPanic(r)
		}
	}()
	m := buildMAST(sorted)
	prog, cerr := compile(m)
	if cerr != nil {
		return nil, cerr
	}
	return &FST{prog: prog}, nil
}
