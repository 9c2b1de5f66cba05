package fst

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// Write serializes f to w in the format described by §4.5: an
// 8-byte-length-prefixed data array, followed by an 8-byte count of
// logical instructions and then each instruction in turn (opcode byte,
// character byte, and whatever raw fields that opcode carries).
//
// Unlike the reference implementation this is derived from, the
// Output/OutputBreak case here always runs to completion instead of
// falling through into an error path; there was never a reason for it
// to error, every field it needs is always present.
func (f *FST) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)

	if err := writeUint64(bw, uint64(len(f.prog.data))); err != nil {
		return fmt.Errorf("fst: write data length: %w", err)
	}
	for _, v := range f.prog.data {
		if err := writeUint32(bw, uint32(v)); err != nil {
			return fmt.Errorf("fst: write data value: %w", err)
		}
	}

	n := 0
	for _, c := range f.prog.cells {
		if c.kind == cellOp {
			n++
		}
	}
	if err := writeUint64(bw, uint64(n)); err != nil {
		return fmt.Errorf("fst: write program length: %w", err)
	}

	cells := f.prog.cells
	for i := 0; i < len(cells); {
		c := cells[i]
		if err := writeUint8(bw, c.op); err != nil {
			return fmt.Errorf("fst: write opcode: %w", err)
		}
		if err := writeUint8(bw, c.ch); err != nil {
			return fmt.Errorf("fst: write char: %w", err)
		}
		i++

		switch c.op {
		case opAccept, opAcceptBreak:
			if c.ch == 0 {
				continue
			}
			to := cells[i].v32
			i++
			from := cells[i].v32
			i++
			if err := writeUint32(bw, uint32(to)); err != nil {
				return fmt.Errorf("fst: write tail to: %w", err)
			}
			if err := writeUint32(bw, uint32(from)); err != nil {
				return fmt.Errorf("fst: write tail from: %w", err)
			}

		case opMatch, opBreak:
			if err := writeUint16(bw, c.jump); err != nil {
				return fmt.Errorf("fst: write jump: %w", err)
			}
			if c.jump == 0 {
				if err := writeUint32(bw, uint32(cells[i].v32)); err != nil {
					return fmt.Errorf("fst: write extended jump: %w", err)
				}
				i++
			}

		case opOutput, opOutputBreak:
			if err := writeUint16(bw, c.jump); err != nil {
				return fmt.Errorf("fst: write jump: %w", err)
			}
			if err := writeUint32(bw, uint32(cells[i].v32)); err != nil {
				return fmt.Errorf("fst: write output: %w", err)
			}
			i++
			if c.jump == 0 {
				if err := writeUint32(bw, uint32(cells[i].v32)); err != nil {
					return fmt.Errorf("fst: write extended jump: %w", err)
				}
				i++
			}

		default:
			return fmt.Errorf("fst: write: unknown opcode %d", c.op)
		}
	}

	return bw.Flush()
}

// Read deserializes an FST previously produced by Write.
func Read(r io.Reader) (*FST, error) {
	br := bufio.NewReader(r)

	dataLen, err := readUint64(br)
	if err != nil {
		return nil, fmt.Errorf("fst: read data length: %w", err)
	}
	data := make([]int32, dataLen)
	for i := range data {
		v, err := readUint32(br)
		if err != nil {
			return nil, fmt.Errorf("fst: read data value: %w", err)
		}
		data[i] = int32(v)
	}

	progLen, err := readUint64(br)
	if err != nil {
		return nil, fmt.Errorf("fst: read program length: %w", err)
	}

	var cells []cell
	for i := uint64(0); i < progLen; i++ {
		op, err := br.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("fst: read opcode: %w", err)
		}
		ch, err := br.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("fst: read char: %w", err)
		}

		switch op {
		case opAccept, opAcceptBreak:
			cells = append(cells, cell{kind: cellOp, op: op, ch: ch})
			if ch == 0 {
				continue
			}
			to, err := readUint32(br)
			if err != nil {
				return nil, fmt.Errorf("fst: read tail to: %w", err)
			}
			from, err := readUint32(br)
			if err != nil {
				return nil, fmt.Errorf("fst: read tail from: %w", err)
			}
			cells = append(cells, cell{kind: cellRaw, v32: int32(to)})
			cells = append(cells, cell{kind: cellRaw, v32: int32(from)})

		case opMatch, opBreak:
			jump, err := readUint16(br)
			if err != nil {
				return nil, fmt.Errorf("fst: read jump: %w", err)
			}
			cells = append(cells, cell{kind: cellOp, op: op, ch: ch, jump: jump})
			if jump == 0 {
				ext, err := readUint32(br)
				if err != nil {
					return nil, fmt.Errorf("fst: read extended jump: %w", err)
				}
				cells = append(cells, cell{kind: cellRaw, v32: int32(ext)})
			}

		case opOutput, opOutputBreak:
			jump, err := readUint16(br)
			if err != nil {
				return nil, fmt.Errorf("fst: read jump: %w", err)
			}
			outv, err := readUint32(br)
			if err != nil {
				return nil, fmt.Errorf("fst: read output: %w", err)
			}
			cells = append(cells, cell{kind: cellOp, op: op, ch: ch, jump: jump})
			cells = append(cells, cell{kind: cellRaw, v32: int32(outv)})
			if jump == 0 {
				ext, err := readUint32(br)
				if err != nil {
					return nil, fmt.Errorf("fst: read extended jump: %w", err)
				}
				cells = append(cells, cell{kind: cellRaw, v32: int32(ext)})
			}

		default:
			return nil, fmt.Errorf("fst: read: unknown opcode %d", op)
		}
	}

	return &FST{prog: &program{cells: cells, data: data}}, nil
}

func writeUint8(w io.Writer, v uint8) error {
	_, err := w.Write([]byte{v})
	return err
}

func writeUint16(w io.Writer, v uint16) error {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func writeUint32(w io.Writer, v uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func writeUint64(w io.Writer, v uint64) error {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func readUint16(r io.Reader) (uint16, error) {
	var b [2]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b[:]), nil
}

func readUint32(r io.Reader) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

func readUint64(r io.Reader) (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}
