package fst

import (
	"bytes"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFSTBasicChain(t *testing.T) {
	f, err := BuildFST([]Pair{
		NewPair("a", 1),
		NewPair("ab", 2),
		NewPair("abc", 3),
	})
	require.NoError(t, err)

	assert.Equal(t, []int32{1}, f.Search([]byte("a")))
	assert.Equal(t, []int32{2}, f.Search([]byte("ab")))
	assert.Equal(t, []int32{3}, f.Search([]byte("abc")))
	assert.Nil(t, f.Search([]byte("abcd")))

	lens, outs := f.CommonPrefixSearch([]byte("abcd"))
	assert.Equal(t, []int{1, 2, 3}, lens)
	assert.Equal(t, [][]int32{{1}, {2}, {3}}, outs)
}

func TestBuildFSTDuplicateKeysCollapseToTail(t *testing.T) {
	f, err := BuildFST([]Pair{
		NewPair("すもも", 333),
		NewPair("すもも", 444),
		NewPair("すもももももも", 333),
		NewPair("世界", 222),
		NewPair("こんにちは", 111),
	})
	require.NoError(t, err)

	got := f.Search([]byte("すもも"))
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	assert.Equal(t, []int32{333, 444}, got)

	assert.Equal(t, []int32{333}, f.Search([]byte("すもももももも")))
	assert.Equal(t, []int32{222}, f.Search([]byte("世界")))
	assert.Equal(t, []int32{111}, f.Search([]byte("こんにちは")))
	assert.Nil(t, f.Search([]byte("すも")))
}

func TestBuildFSTEmptyInput(t *testing.T) {
	f, err := BuildFST(nil)
	require.NoError(t, err)

	assert.Nil(t, f.Search([]byte("anything")))
	length, outs := f.PrefixSearch([]byte("anything"))
	assert.Equal(t, -1, length)
	assert.Nil(t, outs)
	lens, allOuts := f.CommonPrefixSearch([]byte("anything"))
	assert.Nil(t, lens)
	assert.Nil(t, allOuts)
}

func TestBuildFSTZeroOutputIsPreserved(t *testing.T) {
	f, err := BuildFST([]Pair{NewPair("x", 0)})
	require.NoError(t, err)

	assert.Equal(t, []int32{0}, f.Search([]byte("x")))
	assert.Nil(t, f.Search([]byte("y")))
}

func TestBuildFSTPrefixOfAnotherKey(t *testing.T) {
	f, err := BuildFST([]Pair{
		NewPair("foo", 10),
		NewPair("foobar", 20),
	})
	require.NoError(t, err)

	lens, outs := f.CommonPrefixSearch([]byte("foobarbaz"))
	assert.Equal(t, []int{3, 6}, lens)
	assert.Equal(t, [][]int32{{10}, {20}}, outs)

	length, got := f.PrefixSearch([]byte("foobarbaz"))
	assert.Equal(t, 6, length)
	assert.Equal(t, []int32{20}, got)
}

func TestBuildFSTUnsortedInputIsSortedInternally(t *testing.T) {
	sortedBuilt, err := BuildFST([]Pair{
		NewPair("abc", 3),
		NewPair("a", 1),
		NewPair("ab", 2),
	})
	require.NoError(t, err)

	presorted, err := BuildFSTSorted([]Pair{
		NewPair("a", 1),
		NewPair("ab", 2),
		NewPair("abc", 3),
	})
	require.NoError(t, err)

	for _, key := range []string{"a", "ab", "abc", "abcd"} {
		assert.Equal(t, presorted.Search([]byte(key)), sortedBuilt.Search([]byte(key)), key)
	}
}

func TestFSTRoundTripViaCodec(t *testing.T) {
	f, err := BuildFST([]Pair{
		NewPair("a", 1),
		NewPair("ab", 2),
		NewPair("abc", 3),
		NewPair("すもも", 333),
		NewPair("すもも", 444),
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	reread, err := Read(&buf)
	require.NoError(t, err)

	for _, key := range []string{"a", "ab", "abc", "abcd", "すもも", "x"} {
		assert.Equal(t, f.Search([]byte(key)), reread.Search([]byte(key)), key)
	}
}

func TestCommonPrefixSearchLengthsAreStrictlyIncreasing(t *testing.T) {
	f, err := BuildFST([]Pair{
		NewPair("foo", 10),
		NewPair("foobar", 20),
		NewPair("foobarbaz", 30),
	})
	require.NoError(t, err)

	lens, _ := f.CommonPrefixSearch([]byte("foobarbazqux"))
	for i := 1; i < len(lens); i++ {
		assert.Less(t, lens[i-1], lens[i])
	}
}

func TestMinimizationDeduplicatesSharedSuffixes(t *testing.T) {
	// "cat" and "bat" share the suffix "at" with identical outputs, so the
	// minimized automaton must fold the shared tail into one frozen state
	// rather than building it twice.
	m := buildMAST(sortPairs([]Pair{NewPair("bat", 1), NewPair("cat", 1)}))

	// Structural minimality (spec §8 property 6): no two distinct frozen
	// states may be structurally equal.
	for i := range m.states {
		for j := range m.states {
			if i == j {
				continue
			}
			assert.False(t, m.states[i].equal(m.states[j]),
				"states %d and %d are structurally equal but were not deduplicated", i, j)
		}
	}

	// Without suffix sharing, "bat"+"cat" would need 4 states each; with
	// the shared "at"->final tail, far fewer frozen states are required.
	assert.Less(t, len(m.states), 7)

	prog, err := compile(m)
	require.NoError(t, err)
	f := &FST{prog: prog}
	assert.Equal(t, []int32{1}, f.Search([]byte("bat")))
	assert.Equal(t, []int32{1}, f.Search([]byte("cat")))
}
