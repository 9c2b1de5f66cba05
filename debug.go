package fst

import (
	"fmt"
	"strings"
)

// Disassemble renders a compiled program as one line per instruction:
// its index, opcode mnemonic, character (if any), resolved jump target,
// and output/tail fields. Intended for debugging and bug reports, not a
// stable contract — the exact text may change between releases.
//
// Grounded on the teacher's (*mastNode).string/dump text walk in
// lib.go and the reference implementation's FST::toString disassembler.
func (f *FST) Disassemble() string {
	var b strings.Builder
	cells := f.prog.cells
	for i := 0; i < len(cells); {
		c := cells[i]
		fmt.Fprintf(&b, "%4d: %-12s ch=%#02x", i, mnemonic(c.op), c.ch)
		i++
		switch c.op {
		case opAccept, opAcceptBreak:
			if c.ch != 0 {
				to := cells[i].v32
				from := cells[i+1].v32
				fmt.Fprintf(&b, " tail=data[%d:%d]", from, to)
				i += 2
			}
		case opMatch, opBreak:
			if c.jump != 0 {
				fmt.Fprintf(&b, " jump=+%d -> %d", c.jump, i-1+int(c.jump))
			} else {
				ext := cells[i].v32
				fmt.Fprintf(&b, " jump=+%d -> %d", ext, i+int(ext))
				i++
			}
		case opOutput, opOutputBreak:
			out := cells[i].v32
			i++
			fmt.Fprintf(&b, " out=%d", out)
			if c.jump != 0 {
				fmt.Fprintf(&b, " jump=+%d -> %d", c.jump, i-1+int(c.jump))
			} else {
				ext := cells[i].v32
				fmt.Fprintf(&b, " jump=+%d -> %d", ext, i+int(ext))
				i++
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func mnemonic(op uint8) string {
	switch op {
	case opAccept:
		return "ACCEPT"
	case opAcceptBreak:
		return "ACCEPT_BREAK"
	case opMatch:
		return "MATCH"
	case opBreak:
		return "BREAK"
	case opOutput:
		return "OUTPUT"
	case opOutputBreak:
		return "OUTPUT_BREAK"
	default:
		return "?"
	}
}

// Dot renders m as a Graphviz digraph: one node per state, one edge per
// transition labeled with the matched byte and its output, double
// circles for accepting states. Grounded on the reference
// implementation's Mast::dot and the teacher's (*mastNode).string walk.
func (m *mast) Dot() string {
	var b strings.Builder
	b.WriteString("digraph fst {\n\trankdir=LR;\n")
	for _, s := range m.states {
		shape := "circle"
		if s.final {
			shape = "doublecircle"
		}
		fmt.Fprintf(&b, "\t%d [shape=%s];\n", s.id, shape)
		for _, ch := range s.sortedBytesDesc() {
			next := s.trans[ch]
			out := s.outputFor(ch)
			label := fmt.Sprintf("%q", string(ch))
			if out != 0 {
				label = fmt.Sprintf("%q/%d", string(ch), out)
			}
			fmt.Fprintf(&b, "\t%d -> %d [label=%s];\n", s.id, next.id, label)
		}
		if tail := s.sortedTail(); len(tail) > 0 {
			fmt.Fprintf(&b, "\t// state %d tail: %v\n", s.id, tail)
		}
	}
	b.WriteString("}\n")
	return b.String()
}
