package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"tokiwen/internal/ast"
	"tokiwen/internal/source"
	"tokiwen/internal/types"
)

// CheckTreeInvariants runs a minimal set of invariants on a parsed tree:
// 1) every node has a type, statements are void
// 2) every non-empty span points at sf and lies within its content
// 3) binary and unary operands carry their declared arity
func CheckTreeInvariants(root *ast.Node, sf *source.File) error {
	if root == nil || sf == nil {
		return fmt.Errorf("nil tree or file")
	}
	size, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("file too large: %w", err)
	}
	var walk func(n *ast.Node) error
	walk = func(n *ast.Node) error {
		if n == nil {
			return fmt.Errorf("nil child")
		}
		if n.Type == nil {
			return fmt.Errorf("%s at %s has no type", n.Kind, n.Span)
		}
		if !n.Kind.IsExpr() && n.Type.Kind != types.KindVoid {
			return fmt.Errorf("statement %s has type %s", n.Kind, n.Type)
		}
		if !n.Span.Empty() {
			if n.Span.File != sf.ID {
				return fmt.Errorf("%s span points to file %d, want %d", n.Kind, n.Span.File, sf.ID)
			}
			if n.Span.End < n.Span.Start || n.Span.End > size {
				return fmt.Errorf("%s span %s outside file of %d bytes", n.Kind, n.Span, size)
			}
		}
		switch {
		case n.Kind.IsBinary() && len(n.Children) != 2:
			return fmt.Errorf("binary %s has %d operands", n.Kind, len(n.Children))
		case n.Kind.IsUnary() && len(n.Children) != 1:
			return fmt.Errorf("unary %s has %d operands", n.Kind, len(n.Children))
		}
		for _, c := range n.Children {
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(root)
}
