package ast

import (
	"fmt"

	"tokiwen/internal/source"
	"tokiwen/internal/symbols"
	"tokiwen/internal/types"
)

// Node is one tree node. Which payload fields are meaningful depends on Kind.
// Every node has a type; statements are Void.
type Node struct {
	Kind     Kind
	Type     *types.Type
	Span     source.Span
	Children []*Node

	Int   int64
	Float float64
	Bool  bool
	Char  byte
	Str   string // string literal value
	Name  string // identifier, label and goto names

	Var     symbols.VarID
	TypeRef symbols.TypeID
	Scope   symbols.ScopeID
}

// Child returns the i-th child or nil.
func (n *Node) Child(i int) *Node {
	if n == nil || i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

func (n *Node) Left() *Node  { return n.Child(0) }
func (n *Node) Right() *Node { return n.Child(1) }

func leaf(kind Kind, typ *types.Type, span source.Span) *Node {
	return &Node{Kind: kind, Type: typ, Span: span}
}

func NewNoop(span source.Span) *Node {
	return leaf(KindNoop, types.Void, span)
}

// NewVarIdentifier references a variable entry; typ is the entry's type.
func NewVarIdentifier(id symbols.VarID, name string, typ *types.Type, span source.Span) *Node {
	n := leaf(KindVarIdentifier, typ, span)
	n.Var, n.Name = id, name
	return n
}

func NewTypeIdentifier(id symbols.TypeID, name string, span source.Span) *Node {
	n := leaf(KindTypeIdentifier, types.Void, span)
	n.TypeRef, n.Name = id, name
	return n
}

func NewIntLiteral(v int64, span source.Span) *Node {
	n := leaf(KindIntLiteral, types.Int, span)
	n.Int = v
	return n
}

func NewFloatLiteral(v float64, span source.Span) *Node {
	n := leaf(KindFloatLiteral, types.Float, span)
	n.Float = v
	return n
}

func NewBooleanLiteral(v bool, span source.Span) *Node {
	n := leaf(KindBooleanLiteral, types.Boolean, span)
	n.Bool = v
	return n
}

func NewCharLiteral(v byte, span source.Span) *Node {
	n := leaf(KindCharLiteral, types.Char, span)
	n.Char = v
	return n
}

// NewStringLiteral is typed as a pointer to char.
func NewStringLiteral(v string, span source.Span) *Node {
	n := leaf(KindStringLiteral, types.PointerTo(types.Char), span)
	n.Str = v
	return n
}

// NewCoercion wraps child in a coercion node of the given kind.
func NewCoercion(kind Kind, child *Node, span source.Span) *Node {
	var typ *types.Type
	switch kind {
	case KindIntToFloat:
		typ = types.Float
	case KindIntToBoolean, KindPointerToBoolean:
		typ = types.Boolean
	case KindBooleanToInt:
		typ = types.Int
	default:
		panic(fmt.Errorf("ast: %s is not a coercion", kind))
	}
	return &Node{Kind: kind, Type: typ, Span: span, Children: []*Node{child}}
}

// NewUnary builds UnaryMinus, UnaryPlus or Not.
func NewUnary(kind Kind, operand *Node, span source.Span) *Node {
	var typ *types.Type
	switch kind {
	case KindUnaryMinus, KindUnaryPlus:
		typ = operand.Type
	case KindNot:
		typ = types.Boolean
	default:
		panic(fmt.Errorf("ast: %s is not a unary operator", kind))
	}
	return &Node{Kind: kind, Type: typ, Span: span, Children: []*Node{operand}}
}

// NewBinary builds a two-operand expression. Arithmetic takes the left
// operand's type, relational and logical operators are Boolean, assignments
// take the right operand's type.
func NewBinary(kind Kind, left, right *Node, span source.Span) *Node {
	var typ *types.Type
	switch {
	case kind.IsArithmetic():
		typ = left.Type
	case kind.IsRelational(), kind.IsLogical():
		typ = types.Boolean
	case kind.IsAssignment():
		typ = right.Type
	default:
		panic(fmt.Errorf("ast: %s is not a binary operator", kind))
	}
	return &Node{Kind: kind, Type: typ, Span: span, Children: []*Node{left, right}}
}

func stmt(kind Kind, span source.Span, children ...*Node) *Node {
	return &Node{Kind: kind, Type: types.Void, Span: span, Children: children}
}

// NewBlock wraps body and records the scope the block introduces.
func NewBlock(scope symbols.ScopeID, body *Node, span source.Span) *Node {
	n := stmt(KindBlock, span, body)
	n.Scope = scope
	return n
}

func NewSequence(head, tail *Node, span source.Span) *Node {
	return stmt(KindSequence, span, head, tail)
}

// NewStatement marks a statement boundary.
func NewStatement(child *Node, span source.Span) *Node {
	return stmt(KindStatement, span, child)
}

func NewDeclaration(typeID, varID *Node, span source.Span) *Node {
	return stmt(KindDeclaration, span, typeID, varID)
}

func NewDeclarationAssignment(typeID, varID, value *Node, span source.Span) *Node {
	return stmt(KindDeclarationAssignment, span, typeID, varID, value)
}

// NewConditional always has an else branch; pass a Noop when there is none.
func NewConditional(cond, then, els *Node, span source.Span) *Node {
	return stmt(KindConditional, span, cond, then, els)
}

func NewWhile(cond, body *Node, span source.Span) *Node {
	return stmt(KindWhile, span, cond, body)
}

func NewLabel(name string, span source.Span) *Node {
	n := stmt(KindLabel, span)
	n.Name = name
	return n
}

func NewGoto(name string, span source.Span) *Node {
	n := stmt(KindGoto, span)
	n.Name = name
	return n
}

func NewWrite(expr *Node, span source.Span) *Node {
	return stmt(KindWrite, span, expr)
}

func NewRead(target *Node, span source.Span) *Node {
	return stmt(KindRead, span, target)
}
