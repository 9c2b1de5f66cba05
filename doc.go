/*
Package fst builds a Minimal Acyclic Subsequential Transducer (MAST) from
a set of (byte-string, int32) pairs and compiles it into a compact linear
bytecode program that answers exact-match, longest-prefix-match, and
common-prefix queries against it.

Construction

BuildFST sorts its input and then walks it once, incrementally growing a
ring buffer of mutable states and freezing the ones that can no longer
change into a registry keyed by an incremental structural signature. Two
states that end up with identical outgoing transitions, outputs, tail
sets, and finality are folded into the same frozen state — this is what
keeps the automaton minimal: shared suffixes across many keys collapse
into shared subgraphs rather than being duplicated.

This follows the incremental construction technique described by Daciuk,
Mihov, Watson and Watson, "Incremental Construction of Minimal Acyclic
Finite-State Automata" (Computational Linguistics, 2000), extended with
per-edge outputs in the style of Mohri's subsequential transducers, so
that the result is a transducer rather than a plain acceptor.

Compilation and execution

Compile turns the minimized automaton into a flat instruction stream: a
small virtual machine walks it byte by byte against a query, matching
transitions and accumulating outputs, recording a snapshot every time it
passes through an accepting state. Search, PrefixSearch and
CommonPrefixSearch are thin wrappers over that walk.

A built FST is immutable and safe for concurrent read-only use by any
number of goroutines; nothing in this package mutates a *FST after
BuildFST, BuildFSTSorted or Read returns it.

Persistence and caching

Write and Read exchange a compact, versioned-by-convention byte format.
The optional fst/persist subpackages let a serialized FST be published to
and fetched from a blob store by content digest (FST.Digest), and
ProgramCache avoids repeatedly decoding the same bytes.
*/
package fst
