package isa

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	ErrUnknownOpcode = errors.New("unknown opcode")
	ErrTruncated     = errors.New("truncated instruction")
)

// Append encodes ins onto dst: the opcode byte followed by each operand as a
// little-endian u64.
func Append(dst []byte, ins Instruction) []byte {
	dst = append(dst, byte(ins.Op))
	for i := range ins.Op.Operands() {
		dst = binary.LittleEndian.AppendUint64(dst, ins.Operands[i])
	}
	return dst
}

// Encode returns the encoding of a single instruction.
func Encode(ins Instruction) []byte {
	return Append(make([]byte, 0, ins.Size()), ins)
}

// EncodeAll concatenates the encodings of code.
func EncodeAll(code []Instruction) []byte {
	n := 0
	for _, ins := range code {
		n += ins.Size()
	}
	out := make([]byte, 0, n)
	for _, ins := range code {
		out = Append(out, ins)
	}
	return out
}

// Decode reads one instruction from the front of b and reports how many
// bytes it consumed.
func Decode(b []byte) (Instruction, int, error) {
	if len(b) == 0 {
		return Instruction{}, 0, ErrTruncated
	}
	op := Op(b[0])
	if !op.Valid() {
		return Instruction{}, 0, fmt.Errorf("%w %d", ErrUnknownOpcode, b[0])
	}
	ins := Instruction{Op: op}
	if len(b) < ins.Size() {
		return Instruction{}, 0, fmt.Errorf("%w: %s needs %d bytes, have %d", ErrTruncated, op, ins.Size(), len(b))
	}
	for i := range op.Operands() {
		ins.Operands[i] = binary.LittleEndian.Uint64(b[1+8*i:])
	}
	return ins, ins.Size(), nil
}

// DecodeAll decodes a whole code segment.
func DecodeAll(b []byte) ([]Instruction, error) {
	var code []Instruction
	for off := 0; off < len(b); {
		ins, n, err := Decode(b[off:])
		if err != nil {
			return nil, fmt.Errorf("at byte %d: %w", off, err)
		}
		code = append(code, ins)
		off += n
	}
	return code, nil
}
