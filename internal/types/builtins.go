package types

// Builtin pairs a built-in type name with its descriptor.
type Builtin struct {
	Name string
	Type *Type
}

// Builtins lists the language's predeclared types in a stable order.
func Builtins() []Builtin {
	return []Builtin{
		{Name: "int", Type: Int},
		{Name: "float", Type: Float},
		{Name: "boolean", Type: Boolean},
		{Name: "char", Type: Char},
		{Name: "function", Type: Function},
		{Name: "void", Type: Void},
	}
}
