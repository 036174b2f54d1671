package types

import "fmt"

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindVoid Kind = iota
	KindError
	KindInt
	KindFloat
	KindBoolean
	KindChar
	KindFunction
	KindStruct
	KindPointer
)

func (k Kind) String() string {
	switch k {
	case KindVoid:
		return "void"
	case KindError:
		return "error"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBoolean:
		return "boolean"
	case KindChar:
		return "char"
	case KindFunction:
		return "function"
	case KindStruct:
		return "struct"
	case KindPointer:
		return "pointer"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Type is an immutable descriptor. Values are shared by pointer and never
// mutated after construction.
type Type struct {
	Kind Kind
	Elem *Type  // pointee for KindPointer
	Name string // for KindStruct
}

// Shared descriptors for the non-parametric kinds.
var (
	Void     = &Type{Kind: KindVoid}
	Error    = &Type{Kind: KindError}
	Int      = &Type{Kind: KindInt}
	Float    = &Type{Kind: KindFloat}
	Boolean  = &Type{Kind: KindBoolean}
	Char     = &Type{Kind: KindChar}
	Function = &Type{Kind: KindFunction}
)

// PointerTo describes a pointer to elem.
func PointerTo(elem *Type) *Type {
	return &Type{Kind: KindPointer, Elem: elem}
}

// MakeStruct describes a named struct. Struct support is unfinished: such
// types have no size and match nothing.
func MakeStruct(name string) *Type {
	return &Type{Kind: KindStruct, Name: name}
}

// Size reports the number of bytes a value of t occupies in flat memory.
func (t *Type) Size() uint64 {
	if t == nil {
		return 0
	}
	switch t.Kind {
	case KindInt, KindFloat, KindFunction, KindPointer:
		return 8
	case KindBoolean:
		return 4
	case KindChar:
		return 1
	default:
		return 0
	}
}

// Bits is Size in bits.
func (t *Type) Bits() uint64 {
	return t.Size() * 8
}

// Matches reports structural compatibility: the kind tags agree and pointers
// agree on their pointee. Structs never match.
func (t *Type) Matches(other *Type) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case KindPointer:
		return t.Elem.Matches(other.Elem)
	case KindStruct:
		return false
	default:
		return true
	}
}

func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case KindPointer:
		return t.Elem.String() + "*"
	case KindStruct:
		if t.Name != "" {
			return "struct " + t.Name
		}
	}
	return t.Kind.String()
}

// IsArithmetic reports whether t takes part in + - * /.
func IsArithmetic(t *Type) bool {
	if t == nil {
		return false
	}
	switch t.Kind {
	case KindInt, KindFloat, KindBoolean:
		return true
	}
	return false
}

// IsIntegral reports whether t takes part in %.
func IsIntegral(t *Type) bool {
	return t != nil && (t.Kind == KindInt || t.Kind == KindBoolean)
}

func IsPointer(t *Type) bool {
	return t != nil && t.Kind == KindPointer
}

func IsFloat(t *Type) bool {
	return t != nil && t.Kind == KindFloat
}
