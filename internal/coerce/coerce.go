// Package coerce inserts the implicit conversions that make operand types
// agree before an operator node is built. It is the only place coercion
// nodes are created.
package coerce

import (
	"fmt"

	"tokiwen/internal/ast"
	"tokiwen/internal/source"
	"tokiwen/internal/types"
)

// ArithmeticOperands prepares the operands of + - * /.
func ArithmeticOperands(op ast.Kind, left, right *ast.Node, span source.Span) (*ast.Node, *ast.Node, error) {
	lt, rt := left.Type, right.Type
	for _, t := range []*types.Type{lt, rt} {
		if !types.IsArithmetic(t) {
			return nil, nil, fail(op, lt, rt, span, fmt.Sprintf(
				"Tried to perform arithmetic binary operation with non-arithmetic argument of type %s", t))
		}
	}
	if lt.Matches(rt) {
		return left, right, nil
	}
	if CanArithmetic(lt, rt) {
		return arithmetic(lt, rt, left, span), right, nil
	}
	if CanArithmetic(rt, lt) {
		return left, arithmetic(rt, lt, right, span), nil
	}
	return nil, nil, fail(op, lt, rt, span, fmt.Sprintf(
		"Can't coerce types %s and %s to match arithmetic operation. Maybe try casting them explicitly", lt, rt))
}

// IntegralOperands prepares the operands of %.
func IntegralOperands(op ast.Kind, left, right *ast.Node, span source.Span) (*ast.Node, *ast.Node, error) {
	lt, rt := left.Type, right.Type
	for _, t := range []*types.Type{lt, rt} {
		if !types.IsIntegral(t) {
			return nil, nil, fail(op, lt, rt, span, fmt.Sprintf(
				"Tried to perform integral binary operation with non-integral argument of type %s", t))
		}
	}
	if lt.Matches(rt) {
		return left, right, nil
	}
	if CanIntegral(lt, rt) {
		return integral(lt, rt, left, span), right, nil
	}
	if CanIntegral(rt, lt) {
		return left, integral(rt, lt, right, span), nil
	}
	return nil, nil, fail(op, lt, rt, span, fmt.Sprintf(
		"Can't coerce types %s and %s to match integral operation. Maybe try casting them explicitly", lt, rt))
}

// Operands prepares the operands of relational and equality operators.
func Operands(op ast.Kind, left, right *ast.Node, span source.Span) (*ast.Node, *ast.Node, error) {
	lt, rt := left.Type, right.Type
	switch {
	case lt.Matches(rt):
		return left, right, nil
	case CanArithmetic(lt, rt):
		return arithmetic(lt, rt, left, span), right, nil
	case CanArithmetic(rt, lt):
		return left, arithmetic(rt, lt, right, span), nil
	}
	return nil, nil, fail(op, lt, rt, span, fmt.Sprintf(
		"Can't coerce types %s and %s to match. Maybe try casting them explicitly", lt, rt))
}

// ToBoolean converts n for use as a truth value.
func ToBoolean(n *ast.Node, span source.Span) (*ast.Node, error) {
	return truth(ast.KindNoop, n, span)
}

func truth(op ast.Kind, n *ast.Node, span source.Span) (*ast.Node, error) {
	if !CanBeBoolean(n.Type) {
		return nil, fail(op, n.Type, nil, span, fmt.Sprintf("Can't coerce type %s to boolean", n.Type))
	}
	return toBoolean(n, span), nil
}

// To converts value to target for storing into a variable.
func To(target *types.Type, value *ast.Node, span source.Span) (*ast.Node, error) {
	return store(ast.KindAssignment, target, value, span)
}

func store(op ast.Kind, target *types.Type, value *ast.Node, span source.Span) (*ast.Node, error) {
	switch {
	case value.Type.Matches(target):
		return value, nil
	case target.Kind == types.KindBoolean:
		return truth(op, value, span)
	case CanArithmetic(value.Type, target):
		return arithmetic(value.Type, target, value, span), nil
	}
	return nil, fail(op, target, value.Type, span, fmt.Sprintf(
		"Can't assign value of type %s to variable of type %s", value.Type, target))
}

// Binary builds a coerced binary operator node of the given kind.
func Binary(kind ast.Kind, left, right *ast.Node, span source.Span) (*ast.Node, error) {
	var (
		l, r *ast.Node
		err  error
	)
	switch {
	case kind == ast.KindModulo:
		l, r, err = IntegralOperands(kind, left, right, span)
	case kind.IsArithmetic():
		l, r, err = ArithmeticOperands(kind, left, right, span)
	case kind.IsRelational():
		l, r, err = Operands(kind, left, right, span)
	case kind.IsLogical():
		if l, err = truth(kind, left, span); err == nil {
			r, err = truth(kind, right, span)
		}
	case kind.IsAssignment():
		return Assignment(kind, left, right, span)
	default:
		panic(fmt.Errorf("coerce: %s is not a binary operator", kind))
	}
	if err != nil {
		return nil, err
	}
	return ast.NewBinary(kind, l, r, span), nil
}

// Assignment builds plain or compound assignment to the variable node target.
// Compound forms check their arithmetic operation first; in every case the
// value ends up with the variable's type.
func Assignment(kind ast.Kind, target, value *ast.Node, span source.Span) (*ast.Node, error) {
	if base, ok := kind.CompoundBase(); ok {
		var err error
		if base == ast.KindModulo {
			_, _, err = IntegralOperands(kind, target, value, span)
		} else {
			_, _, err = ArithmeticOperands(kind, target, value, span)
		}
		if err != nil {
			return nil, err
		}
	}
	v, err := store(kind, target.Type, value, span)
	if err != nil {
		return nil, err
	}
	return ast.NewBinary(kind, target, v, span), nil
}

// Conditional coerces cond to a truth value.
func Conditional(cond, then, els *ast.Node, span source.Span) (*ast.Node, error) {
	c, err := truth(ast.KindConditional, cond, span)
	if err != nil {
		return nil, err
	}
	return ast.NewConditional(c, then, els, span), nil
}

func While(cond, body *ast.Node, span source.Span) (*ast.Node, error) {
	c, err := truth(ast.KindWhile, cond, span)
	if err != nil {
		return nil, err
	}
	return ast.NewWhile(c, body, span), nil
}
