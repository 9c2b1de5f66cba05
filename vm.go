package fst

// Configuration is a snapshot the VM records each time it passes through
// an accepting instruction: how far into the input it had read (Head)
// and which outputs (one, or several for a duplicate-key tail) apply at
// that point.
type Configuration struct {
	PC      int
	Head    int
	Outputs []int32
}

// run executes prog against input from pc=0, hd=0, recording a
// Configuration at every Accept/AcceptBreak instruction it passes
// through. The returned bool reports whether the run ended in
// acceptance at hd == len(input): the caller (Search etc.) still gets
// every intermediate Configuration even when the final answer is "no
// match", which is what CommonPrefixSearch and PrefixSearch need.
func (p *program) run(input []byte) ([]Configuration, bool) {
	var snap []Configuration
	pc, hd := 0, 0
	var out int32
	var lastOp uint8

loop:
	for pc < len(p.cells) && hd <= len(input) {
		c := p.cells[pc]
		lastOp = c.op

		switch c.op {
		case opMatch, opBreak:
			if hd == len(input) {
				break loop
			}
			if c.ch != input[hd] {
				if c.op == opBreak {
					return snap, false
				}
				if c.jump == 0 {
					pc++
				}
				pc++
				continue
			}
			if c.jump > 0 {
				pc += int(c.jump)
			} else {
				pc++
				pc += int(p.cells[pc].v32)
			}
			hd++

		case opOutput, opOutputBreak:
			if hd == len(input) {
				break loop
			}
			if c.ch != input[hd] {
				if c.op == opOutputBreak {
					return snap, false
				}
				if c.jump == 0 {
					pc++
				}
				pc += 2
				continue
			}
			pc++
			out = p.cells[pc].v32
			if c.jump > 0 {
				pc += int(c.jump)
			} else {
				pc++
				pc += int(p.cells[pc].v32)
			}
			hd++

		case opAccept, opAcceptBreak:
			cfg := Configuration{PC: pc, Head: hd}
			pc++
			if c.ch == 0 {
				cfg.Outputs = []int32{out}
			} else {
				to := p.cells[pc].v32
				pc++
				from := p.cells[pc].v32
				pc++
				cfg.Outputs = append([]int32(nil), p.data[from:to]...)
			}
			snap = append(snap, cfg)
			if c.op == opAcceptBreak || hd == len(input) {
				break loop
			}

		default:
			return snap, false
		}
	}

	if hd != len(input) {
		return snap, false
	}
	if lastOp != opAccept && lastOp != opAcceptBreak {
		return snap, false
	}
	return snap, true
}

// FST is a compiled, immutable finite state transducer ready for
// querying. The zero value is not usable; obtain one from BuildFST,
// BuildFSTSorted, or Read.
type FST struct {
	prog *program
}

// Search reports the outputs associated with an exact match of input, or
// nil if input is not a key in the dictionary. When input was inserted
// more than once with differing outputs, all of them are returned in
// ascending order.
func (f *FST) Search(input []byte) []int32 {
	snap, ok := f.prog.run(input)
	if !ok || len(snap) == 0 {
		return nil
	}
	return snap[len(snap)-1].Outputs
}

// PrefixSearch finds the longest prefix of input that is a key in the
// dictionary, returning its length and outputs. It returns (-1, nil) if
// no prefix of input matches.
func (f *FST) PrefixSearch(input []byte) (int, []int32) {
	snap, _ := f.prog.run(input)
	if len(snap) == 0 {
		return -1, nil
	}
	last := snap[len(snap)-1]
	return last.Head, last.Outputs
}

// CommonPrefixSearch finds every prefix of input that is a key in the
// dictionary, shortest first, returning their lengths and outputs in
// parallel slices.
func (f *FST) CommonPrefixSearch(input []byte) ([]int, [][]int32) {
	snap, _ := f.prog.run(input)
	if len(snap) == 0 {
		return nil, nil
	}
	lens := make([]int, len(snap))
	outs := make([][]int32, len(snap))
	for i, c := range snap {
		lens[i] = c.Head
		outs[i] = c.Outputs
	}
	return lens, outs
}
