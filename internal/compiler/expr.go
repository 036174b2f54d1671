package compiler

import (
	"fmt"
	"math"

	"tokiwen/internal/ast"
	"tokiwen/internal/isa"
	"tokiwen/internal/types"
)

// An expression is compiled from its postfix form. Only one register
// exists: the newest value is live in it, older ones sit in their slots.
type componentKind uint8

const (
	componentOperand   componentKind = iota // variable or literal, loaded into the register
	componentUnary                          // consumes the live value
	componentBinary                         // left in its slot, right live
	componentAssign                         // plain `=`: stores the live value, keeps it live
	componentImmediate                      // left live, right folded into the opcode
)

type component struct {
	kind componentKind
	node *ast.Node
}

// contribution is the change in intermediate bytes once the component ran.
func (c component) contribution() int64 {
	n := c.node
	size := signed(n.Type.Size())
	switch c.kind {
	case componentOperand:
		return size
	case componentUnary:
		return size - signed(n.Child(0).Type.Size())
	case componentAssign:
		return size - signed(n.Right().Type.Size())
	case componentImmediate:
		return size - signed(n.Left().Type.Size())
	default:
		return size - signed(n.Left().Type.Size()) - signed(n.Right().Type.Size())
	}
}

func (c *compiler) flatten(out []component, n *ast.Node) []component {
	switch {
	case n.Kind == ast.KindIntToFloat && n.Child(0).Kind == ast.KindIntLiteral:
		return append(out, component{componentOperand, n})
	case n.Kind.IsUnary():
		out = c.flatten(out, n.Child(0))
		return append(out, component{componentUnary, n})
	case n.Kind == ast.KindAssignment:
		out = c.flatten(out, n.Right())
		return append(out, component{componentAssign, n})
	case n.Kind.IsBinary():
		out = c.flatten(out, n.Left())
		if _, ok := c.immediate(n); ok {
			return append(out, component{componentImmediate, n})
		}
		out = c.flatten(out, n.Right())
		return append(out, component{componentBinary, n})
	}
	return append(out, component{componentOperand, n})
}

// compileExpr leaves the value of tree live in the register.
func (c *compiler) compileExpr(tree *ast.Node) error {
	var size int64
	for _, comp := range c.flatten(nil, tree) {
		size += comp.contribution()
		c.data.ensure(size)
		if err := c.emitComponent(comp); err != nil {
			return err
		}
	}
	if c.data.depth() != 1 {
		return fmt.Errorf("%w: %s left %d values", ErrMalformedTree, tree.Kind, c.data.depth())
	}
	c.data.reset()
	return nil
}

func (c *compiler) emitComponent(comp component) error {
	n := comp.node
	switch comp.kind {
	case componentOperand:
		return c.emitOperand(n)
	case componentUnary:
		return c.emitUnary(n)
	case componentAssign:
		target, err := c.varAddress(n.Left())
		if err != nil {
			return err
		}
		c.emit(n, isa.Set, absolute(target))
		return nil
	case componentImmediate:
		op, err := opFor(n.Kind, n.Type)
		if err != nil {
			return err
		}
		imm, _ := op.Immediate()
		v, _ := c.immediate(n)
		c.data.pop()
		c.emit(n, imm, absolute(v))
		c.data.push(n)
		return nil
	default:
		return c.emitBinary(n)
	}
}

// spill stores the live value to its slot before the register is reused.
func (c *compiler) spill(n *ast.Node) {
	if c.data.depth() != 0 {
		c.emit(n, isa.Set, c.data.peek())
	}
}

func (c *compiler) emitOperand(n *ast.Node) error {
	switch n.Kind {
	case ast.KindVarIdentifier:
		addr, err := c.varAddress(n)
		if err != nil {
			return err
		}
		c.spill(n)
		c.emit(n, isa.Load, absolute(addr))
		// narrower values share memory with their neighbours
		if bits := n.Type.Bits(); bits < 64 {
			c.emit(n, isa.AndI, absolute(uint64(1)<<bits-1))
		}
	case ast.KindStringLiteral:
		c.spill(n)
		c.emit(n, isa.LoadI, pooled(c.data.intern(n.Str)))
	default:
		v, ok := literalBits(n)
		if !ok {
			return fmt.Errorf("%w: %s is not an operand", ErrMalformedTree, n.Kind)
		}
		c.spill(n)
		c.emit(n, isa.LoadI, absolute(v))
	}
	c.data.push(n)
	return nil
}

func (c *compiler) emitUnary(n *ast.Node) error {
	c.data.pop()
	switch n.Kind {
	case ast.KindIntToBoolean, ast.KindPointerToBoolean:
		c.emit(n, isa.Not)
		c.emit(n, isa.Not)
	case ast.KindIntToFloat:
		// literal operands are folded in flatten
		return &ConversionError{From: n.Child(0).Type.String(), To: n.Type.String(), Span: n.Span}
	case ast.KindBooleanToInt, ast.KindUnaryPlus:
	case ast.KindUnaryMinus:
		if types.IsFloat(n.Type) {
			c.emit(n, isa.FNegate, absolute(0))
		} else {
			c.emit(n, isa.Negate)
		}
	case ast.KindNot:
		c.emit(n, isa.Not)
	default:
		return fmt.Errorf("%w: unexpected unary %s", ErrMalformedTree, n.Kind)
	}
	c.data.push(n)
	return nil
}

// emitBinary computes X <- mem[left slot] op X.
// The operand read is 8 bytes wide, so a narrow left slot also sees the
// slots spilled above it.
func (c *compiler) emitBinary(n *ast.Node) error {
	c.data.pop()
	left := c.data.pop()

	switch {
	case n.Kind.IsCompoundAssignment():
		base, _ := n.Kind.CompoundBase()
		op, err := opFor(base, n.Type)
		if err != nil {
			return err
		}
		target, err := c.varAddress(n.Left())
		if err != nil {
			return err
		}
		c.emit(n, op, left)
		c.emit(n, isa.Set, absolute(target))
	case n.Kind == ast.KindNequals:
		c.emit(n, isa.Equals, left)
		c.emit(n, isa.Not)
	default:
		op, err := opFor(n.Kind, n.Type)
		if err != nil {
			return err
		}
		c.emit(n, op, left)
	}
	c.data.push(n)
	return nil
}

var binaryOps = map[ast.Kind]isa.Op{
	ast.KindSum:            isa.Add,
	ast.KindSubtraction:    isa.Subtract,
	ast.KindMultiplication: isa.Multiply,
	ast.KindDivision:       isa.Divide,
	ast.KindModulo:         isa.Remainder,
	ast.KindLt:             isa.Lt,
	ast.KindGt:             isa.Gt,
	ast.KindLteq:           isa.LtEq,
	ast.KindGteq:           isa.GtEq,
	ast.KindEquals:         isa.Equals,
	ast.KindAnd:            isa.And,
	ast.KindOr:             isa.Or,
}

// opFor picks the opcode of a binary operation whose result has type typ.
// Comparisons compare raw bits whatever the operand type.
func opFor(kind ast.Kind, typ *types.Type) (isa.Op, error) {
	op, ok := binaryOps[kind]
	if !ok {
		return isa.Noop, fmt.Errorf("%w: no opcode for %s", ErrMalformedTree, kind)
	}
	if kind.IsArithmetic() && types.IsFloat(typ) {
		if f, ok := op.Float(); ok {
			op = f
		}
	}
	return op, nil
}

// immediate reports the value an arithmetic node's right operand folds to
// when immediates are enabled.
func (c *compiler) immediate(n *ast.Node) (uint64, bool) {
	if !c.opts.Immediates || !n.Kind.IsArithmetic() {
		return 0, false
	}
	op, err := opFor(n.Kind, n.Type)
	if err != nil {
		return 0, false
	}
	if _, ok := op.Immediate(); !ok {
		return 0, false
	}
	r := n.Right()
	switch r.Kind {
	case ast.KindIntLiteral, ast.KindFloatLiteral, ast.KindIntToFloat:
		return literalBits(r)
	}
	return 0, false
}

// literalBits is the register image of a constant node.
func literalBits(n *ast.Node) (uint64, bool) {
	switch n.Kind {
	case ast.KindIntLiteral:
		return uint64(n.Int), true
	case ast.KindFloatLiteral:
		return math.Float64bits(n.Float), true
	case ast.KindBooleanLiteral:
		if n.Bool {
			return 1, true
		}
		return 0, true
	case ast.KindCharLiteral:
		return uint64(n.Char), true
	case ast.KindIntToFloat:
		if lit := n.Child(0); lit != nil && lit.Kind == ast.KindIntLiteral {
			return math.Float64bits(float64(lit.Int)), true
		}
	}
	return 0, false
}
