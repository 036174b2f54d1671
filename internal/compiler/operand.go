package compiler

import (
	"tokiwen/internal/isa"
	"tokiwen/internal/source"
)

// operandKind tags a placeholder operand. Only absolute operands are known
// while code is emitted; the rest resolve once the whole tree is walked.
type operandKind uint8

const (
	operandAbsolute     operandKind = iota // literal address or immediate
	operandIntermediate                    // byte offset inside the intermediate region
	operandHiddenLabel                     // compiler-made jump target
	operandUserLabel                       // `name:` from the source
	operandPooled                          // byte offset inside the string pool
)

type operand struct {
	kind  operandKind
	value uint64
	name  string
	span  source.Span
}

func absolute(v uint64) operand       { return operand{kind: operandAbsolute, value: v} }
func intermediate(off uint64) operand { return operand{kind: operandIntermediate, value: off} }
func hiddenLabel(id uint64) operand   { return operand{kind: operandHiddenLabel, value: id} }
func pooled(off uint64) operand       { return operand{kind: operandPooled, value: off} }
func userLabel(name string, span source.Span) operand {
	return operand{kind: operandUserLabel, name: name, span: span}
}

// layout is everything an operand may need to become a number.
type layout struct {
	intermediates uint64 // start of the intermediate region
	pool          uint64 // start of the string pool
	hidden        []uint64
	user          map[string]uint64
}

func (o operand) resolve(l *layout) (uint64, error) {
	switch o.kind {
	case operandIntermediate:
		return l.intermediates + o.value, nil
	case operandPooled:
		return l.pool + o.value, nil
	case operandHiddenLabel:
		return l.hidden[o.value], nil
	case operandUserLabel:
		idx, ok := l.user[o.name]
		if !ok {
			return isa.BadOperand, &LabelError{Name: o.name, Span: o.span}
		}
		return idx, nil
	default:
		return o.value, nil
	}
}

// pending is an instruction whose operands are still placeholders.
type pending struct {
	op       isa.Op
	operands []operand
	line     uint64
}

func (p pending) resolve(l *layout) (isa.Instruction, error) {
	ins := isa.Instruction{Op: p.op}
	for i := range p.op.Operands() {
		if i >= len(p.operands) {
			ins.Operands[i] = isa.BadOperand
			continue
		}
		v, err := p.operands[i].resolve(l)
		if err != nil {
			return ins, err
		}
		ins.Operands[i] = v
	}
	return ins, nil
}
