// Package isa describes the accumulator machine's instruction set: opcode
// numbers, mnemonics, operand counts and the binary encoding.
//
// Opcode values are a wire contract shared with the VM. Renumbering any of
// them requires bumping FormatVersion.
package isa

import "fmt"

// FormatVersion versions the opcode table and the binary encoding.
const FormatVersion = 1

// ABIVersion versions the Interrupt calling convention: WRITE prints the
// register, READ stores one value at the address held in the register.
const ABIVersion = 1

// MaxOperands bounds the operand slots of any instruction.
const MaxOperands = 4

// Op is an opcode byte.
type Op uint8

// An F prefix marks float operations, an I suffix an immediate operand.
const (
	Noop   Op = 0
	Load   Op = 1
	Set    Op = 2
	LoadBP Op = 3
	LoadI  Op = 4

	Push Op = 10
	Pop  Op = 11
	Call Op = 12
	Ret  Op = 13

	Negate    Op = 100
	Add       Op = 101
	Subtract  Op = 102
	Multiply  Op = 103
	Divide    Op = 104
	Remainder Op = 105

	AddI       Op = 106
	SubtractI  Op = 107
	MultiplyI  Op = 108
	DivideI    Op = 109
	RemainderI Op = 110

	FNegate   Op = 111
	FAdd      Op = 112
	FSubtract Op = 113
	FMultiply Op = 114
	FDivide   Op = 115

	FAddI      Op = 116
	FSubtractI Op = 117
	FMultiplyI Op = 118
	FDivideI   Op = 119

	Or     Op = 160
	And    Op = 161
	Xor    Op = 162
	Invert Op = 163

	Gt     Op = 164
	Lt     Op = 165
	GtEq   Op = 166
	LtEq   Op = 167
	Equals Op = 168
	Not    Op = 169

	OrI  Op = 170
	AndI Op = 171
	XorI Op = 172

	Jump            Op = 200
	BranchIfZero    Op = 201
	BranchIfNotZero Op = 202

	Interrupt Op = 255
)

type info struct {
	name     string
	operands uint8
}

var table = map[Op]info{
	Noop: {"NOOP", 0}, Load: {"LOAD", 1}, Set: {"SET", 1}, LoadBP: {"LOAD_BP", 0}, LoadI: {"LOAD_I", 1},

	Push: {"PUSH", 0}, Pop: {"POP", 0}, Call: {"CALL", 0}, Ret: {"RET", 0},

	Negate: {"NEGATE", 0}, Add: {"ADD", 1}, Subtract: {"SUBTRACT", 1},
	Multiply: {"MULTIPLY", 1}, Divide: {"DIVIDE", 1}, Remainder: {"REMAINDER", 1},
	AddI: {"ADD_I", 1}, SubtractI: {"SUBTRACT_I", 1}, MultiplyI: {"MULTIPLY_I", 1},
	DivideI: {"DIVIDE_I", 1}, RemainderI: {"REMAINDER_I", 1},

	FNegate: {"F_NEGATE", 1}, FAdd: {"F_ADD", 1}, FSubtract: {"F_SUBTRACT", 1},
	FMultiply: {"F_MULTIPLY", 1}, FDivide: {"F_DIVIDE", 1},
	FAddI: {"F_ADD_I", 1}, FSubtractI: {"F_SUBTRACT_I", 1},
	FMultiplyI: {"F_MULTIPLY_I", 1}, FDivideI: {"F_DIVIDE_I", 1},

	Or: {"OR", 1}, And: {"AND", 1}, Xor: {"XOR", 1}, Invert: {"INVERT", 0},
	Gt: {"GT", 1}, Lt: {"LT", 1}, GtEq: {"GTEQ", 1}, LtEq: {"LTEQ", 1},
	Equals: {"EQUALS", 1}, Not: {"NOT", 0},
	OrI: {"OR_I", 1}, AndI: {"AND_I", 1}, XorI: {"XOR_I", 1},

	Jump: {"JUMP", 1}, BranchIfZero: {"BRANCH_IF_ZERO", 1}, BranchIfNotZero: {"BRANCH_IF_NOT_ZERO", 1},

	Interrupt: {"INTERRUPT", 1},
}

var byName = func() map[string]Op {
	m := make(map[string]Op, len(table))
	for op, in := range table {
		m[in.name] = op
	}
	return m
}()

// Valid reports whether op is a defined opcode.
func (op Op) Valid() bool {
	_, ok := table[op]
	return ok
}

func (op Op) String() string {
	if in, ok := table[op]; ok {
		return in.name
	}
	return fmt.Sprintf("OP_%d", uint8(op))
}

// Operands is the number of operand words op takes.
func (op Op) Operands() int {
	return int(table[op].operands)
}

// Lookup finds an opcode by mnemonic.
func Lookup(name string) (Op, bool) {
	op, ok := byName[name]
	return op, ok
}

// Ops lists every defined opcode in ascending order.
func Ops() []Op {
	ops := make([]Op, 0, len(table))
	for i := 0; i < 256; i++ {
		if op := Op(i); op.Valid() {
			ops = append(ops, op)
		}
	}
	return ops
}

var floatOps = map[Op]Op{
	Negate: FNegate, Add: FAdd, Subtract: FSubtract, Multiply: FMultiply, Divide: FDivide,
	AddI: FAddI, SubtractI: FSubtractI, MultiplyI: FMultiplyI, DivideI: FDivideI,
}

// Float returns the float variant of an integer arithmetic op.
func (op Op) Float() (Op, bool) {
	f, ok := floatOps[op]
	return f, ok
}

var immediateOps = map[Op]Op{
	Add: AddI, Subtract: SubtractI, Multiply: MultiplyI, Divide: DivideI, Remainder: RemainderI,
	FAdd: FAddI, FSubtract: FSubtractI, FMultiply: FMultiplyI, FDivide: FDivideI,
	Or: OrI, And: AndI, Xor: XorI,
}

// Immediate returns the _I variant of op, if there is one.
func (op Op) Immediate() (Op, bool) {
	i, ok := immediateOps[op]
	return i, ok
}

// Syscall is an Interrupt service code.
type Syscall uint64

const (
	SysRead  Syscall = 0
	SysWrite Syscall = 1
)

func (s Syscall) String() string {
	switch s {
	case SysRead:
		return "READ"
	case SysWrite:
		return "WRITE"
	}
	return fmt.Sprintf("SYSCALL_%d", uint64(s))
}
