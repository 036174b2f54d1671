package coerce

import (
	"tokiwen/internal/ast"
	"tokiwen/internal/source"
	"tokiwen/internal/types"
)

// Error is a type error raised while building an operator node.
// Right is nil for single-operand failures.
type Error struct {
	Op    ast.Kind
	Left  *types.Type
	Right *types.Type
	Span  source.Span
	Msg   string
}

func (e *Error) Error() string { return e.Msg }

func fail(op ast.Kind, left, right *types.Type, span source.Span, msg string) *Error {
	return &Error{Op: op, Left: left, Right: right, Span: span, Msg: msg}
}
