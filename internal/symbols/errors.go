package symbols

import (
	"fmt"

	"tokiwen/internal/source"
)

// Namespace names the table namespace an error refers to.
type Namespace uint8

const (
	NamespaceVar Namespace = iota
	NamespaceType
)

func (n Namespace) String() string {
	if n == NamespaceType {
		return "Type"
	}
	return "Variable"
}

// DeclaredError reports a redeclaration within one scope.
type DeclaredError struct {
	Namespace Namespace
	Name      string
	Span      source.Span
	Previous  source.Span
}

func (e *DeclaredError) Error() string {
	return fmt.Sprintf("%s `%s` already declared in this context.", e.Namespace, e.Name)
}

// NotFoundError reports a name that no enclosing scope declares.
type NotFoundError struct {
	Namespace Namespace
	Name      string
	Span      source.Span
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s `%s` not found.", e.Namespace, e.Name)
}
