package parser

import (
	"errors"

	"tokiwen/internal/coerce"
	"tokiwen/internal/diag"
	"tokiwen/internal/source"
	"tokiwen/internal/symbols"
)

// SyntaxError is a malformed token stream or a bad literal.
type SyntaxError struct {
	Code diag.Code
	Span source.Span
	Msg  string
}

func (e *SyntaxError) Error() string { return e.Msg }

// ErrorSpan extracts the source location carried by any parse failure.
func ErrorSpan(err error) (source.Span, bool) {
	var (
		se *SyntaxError
		de *symbols.DeclaredError
		ne *symbols.NotFoundError
		ce *coerce.Error
	)
	switch {
	case errors.As(err, &se):
		return se.Span, true
	case errors.As(err, &de):
		return de.Span, true
	case errors.As(err, &ne):
		return ne.Span, true
	case errors.As(err, &ce):
		return ce.Span, true
	}
	return source.Span{}, false
}

// ErrorCode maps a parse failure to its diagnostic code.
func ErrorCode(err error) diag.Code {
	var (
		se *SyntaxError
		de *symbols.DeclaredError
		ne *symbols.NotFoundError
		ce *coerce.Error
	)
	switch {
	case errors.As(err, &se):
		return se.Code
	case errors.As(err, &de):
		return diag.SemaVarRedeclared
	case errors.As(err, &ne):
		if ne.Namespace == symbols.NamespaceType {
			return diag.SemaTypeNotFound
		}
		return diag.SemaVarNotFound
	case errors.As(err, &ce):
		return diag.SemaTypeMismatch
	}
	return diag.UnknownCode
}
