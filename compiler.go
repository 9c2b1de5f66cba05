package fst

import (
	"fmt"
	"math"
)

// program is a compiled, linear instruction stream ready for the VM, plus
// the side data array the Accept/AcceptBreak instructions slice into for
// tail (duplicate-key) output.
type program struct {
	cells []cell
	data  []int32
}

// compile turns a minimized MAST into a linear instruction stream, per
// §4.3: states are visited in ascending id order (children before their
// parents, since a state's id is assigned only once every one of its
// outgoing edges is frozen), each state's outgoing edges are emitted in
// descending byte order, addresses are resolved backward against edges
// already emitted, and the whole stream is reversed at the end so that
// execution proceeds forward from the root.
func compile(m *mast) (*program, error) {
	prog := make([]cell, 0, len(m.states)*2)
	var data []int32
	addr := make(map[int]int, len(m.states))

	for _, s := range m.states {
		chs := s.sortedBytesDesc()
		for idx, ch := range chs {
			next := s.trans[ch]
			out := s.outputFor(ch)

			to, ok := addr[next.id]
			if !ok {
				return nil, fmt.Errorf("fst: compile: address for state %d undefined while emitting edge %#x from state %d", next.id, ch, s.id)
			}
			jump := len(prog) - to + 1

			isBreak := idx == 0
			op := chooseOp(isBreak, out != 0)

			extJump := false
			if jump > math.MaxUint16 {
				extJump = true
				prog = append(prog, cell{kind: cellRaw, v32: int32(jump)})
				jump = 0
			}
			if out != 0 {
				prog = append(prog, cell{kind: cellRaw, v32: out})
			}
			c := cell{kind: cellOp, op: op, ch: ch}
			if !extJump {
				c.jump = uint16(jump)
			}
			prog = append(prog, c)
		}

		if s.final {
			ch := byte(0)
			if tail := s.sortedTail(); len(tail) > 0 {
				from := int32(len(data))
				data = append(data, tail...)
				to := int32(len(data))
				prog = append(prog, cell{kind: cellRaw, v32: from})
				prog = append(prog, cell{kind: cellRaw, v32: to})
				ch = 1
			}
			op := opAcceptBreak
			if len(s.trans) != 0 {
				op = opAccept
			}
			prog = append(prog, cell{kind: cellOp, op: op, ch: ch})
		}

		addr[s.id] = len(prog)
	}

	reverse(prog)

	return &program{cells: prog, data: data}, nil
}

func chooseOp(isBreak, hasOutput bool) uint8 {
	switch {
	case hasOutput && isBreak:
		return opOutputBreak
	case hasOutput:
		return opOutput
	case isBreak:
		return opBreak
	default:
		return opMatch
	}
}

func reverse(cells []cell) {
	for i, j := 0, len(cells)-1; i < j; i, j = i+1, j-1 {
		cells[i], cells[j] = cells[j], cells[i]
	}
}

// compileErrorFromPanic turns an internal invariant-violation panic (the
// kind Compile/buildFST never expect to actually observe) into a regular
// error, per §7: no panic escapes the package.
func compileErrorFromPanic(r interface{}) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("fst: internal invariant violation: %w", err)
	}
	return fmt.Errorf("fst: internal invariant violation: %v", r)
}
