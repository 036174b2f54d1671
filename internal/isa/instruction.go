package isa

import (
	"strconv"
	"strings"
)

// BadOperand is what Operand returns for a slot the opcode does not use.
const BadOperand = 0xBAD

// Instruction is an opcode plus its operand words. Slots past
// Op.Operands() are ignored.
type Instruction struct {
	Op       Op
	Operands [MaxOperands]uint64
}

// Make builds an instruction, panicking on an operand count mismatch.
func Make(op Op, operands ...uint64) Instruction {
	if len(operands) != op.Operands() {
		panic("isa: " + op.String() + " takes " + strconv.Itoa(op.Operands()) + " operands, got " + strconv.Itoa(len(operands)))
	}
	ins := Instruction{Op: op}
	copy(ins.Operands[:], operands)
	return ins
}

// Operand returns operand i, or BadOperand when i is out of range.
func (ins Instruction) Operand(i int) uint64 {
	if i < 0 || i >= ins.Op.Operands() {
		return BadOperand
	}
	return ins.Operands[i]
}

// String renders NAME(op1, op2) and NAME() for operand-less instructions.
func (ins Instruction) String() string {
	var sb strings.Builder
	sb.WriteString(ins.Op.String())
	sb.WriteByte('(')
	for i := range ins.Op.Operands() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.FormatUint(ins.Operands[i], 10))
	}
	sb.WriteByte(')')
	return sb.String()
}

// Size is the encoded length in bytes.
func (ins Instruction) Size() int {
	return 1 + 8*ins.Op.Operands()
}
