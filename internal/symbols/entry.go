package symbols

import (
	"tokiwen/internal/source"
	"tokiwen/internal/types"
)

// Variable is a declared variable. Offset is its permanent flat address.
type Variable struct {
	Name   string
	Span   source.Span
	Type   TypeID
	Offset uint64
	Scope  ScopeID
	Func   *FunctionInfo
}

// FunctionInfo is carried by variables of function type. Nothing consumes it
// yet: calls are not part of the language.
type FunctionInfo struct {
	Return    TypeID
	Params    []VarID
	BodyScope ScopeID
}

// TypeEntry is a named type declared in some scope.
type TypeEntry struct {
	Name  string
	Span  source.Span
	Type  *types.Type
	Scope ScopeID
}

// Scope models a lexical scope with a parent-child hierarchy.
type Scope struct {
	Parent   ScopeID
	Span     source.Span
	Locals   map[string]VarID
	Types    map[string]TypeID
	Vars     []VarID // declaration order
	Children []ScopeID
}
