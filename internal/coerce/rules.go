package coerce

import (
	"tokiwen/internal/ast"
	"tokiwen/internal/source"
	"tokiwen/internal/types"
)

// CanBeBoolean reports whether a value of t can be tested for truth.
func CanBeBoolean(t *types.Type) bool {
	return t.Kind == types.KindBoolean || t.Kind == types.KindInt || t.Kind == types.KindPointer
}

// CanIntegral reports the boolean to int widening, the only integral step.
func CanIntegral(from, to *types.Type) bool {
	return from.Kind == types.KindBoolean && to.Kind == types.KindInt
}

// CanArithmetic follows the boolean < int < float lattice.
func CanArithmetic(from, to *types.Type) bool {
	if CanIntegral(from, to) {
		return true
	}
	return to.Kind == types.KindFloat && (from.Kind == types.KindInt || from.Kind == types.KindBoolean)
}

func integral(from, to *types.Type, n *ast.Node, span source.Span) *ast.Node {
	if from.Kind == types.KindBoolean && (to.Kind == types.KindInt || to.Kind == types.KindFloat) {
		return ast.NewCoercion(ast.KindBooleanToInt, n, span)
	}
	return n
}

// arithmetic applies at most one integral step and one float widening.
func arithmetic(from, to *types.Type, n *ast.Node, span source.Span) *ast.Node {
	n = integral(from, to, n, span)
	if n.Type.Kind == types.KindInt && to.Kind == types.KindFloat {
		return ast.NewCoercion(ast.KindIntToFloat, n, span)
	}
	return n
}

func toBoolean(n *ast.Node, span source.Span) *ast.Node {
	switch n.Type.Kind {
	case types.KindInt:
		return ast.NewCoercion(ast.KindIntToBoolean, n, span)
	case types.KindPointer:
		return ast.NewCoercion(ast.KindPointerToBoolean, n, span)
	}
	return n
}
