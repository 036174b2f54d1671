package parser

import (
	"testing"

	"tokiwen/internal/ast"
	"tokiwen/internal/source"
	"tokiwen/internal/symbols"
	"tokiwen/internal/types"
)

var loc source.Span

// newTestFacade seeds the root scope with the type test_t (an int) and the
// variable test_var of that type.
func newTestFacade(t *testing.T, src string) *Facade {
	t.Helper()
	f := New(src)
	table := f.Table()
	testT, err := table.InsertType(table.Root(), "test_t", loc, types.Int)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := table.InsertVariable(table.Root(), "test_var", loc, testT); err != nil {
		t.Fatal(err)
	}
	return f
}

func parseOK(t *testing.T, src string) Result {
	t.Helper()
	res := newTestFacade(t, src).Parse()
	if !res.Success {
		t.Fatalf("parse %q: %s", src, res.Message)
	}
	return res
}

func parseFail(t *testing.T, src string) Result {
	t.Helper()
	res := newTestFacade(t, src).Parse()
	if res.Success {
		t.Fatalf("parse %q: expected failure, got %s", src, res.AST)
	}
	return res
}

func expectTree(t *testing.T, src string, want *ast.Node) *ast.Node {
	t.Helper()
	got := parseOK(t, src).AST
	if !ast.Equal(got, want) {
		t.Fatalf("parse %q:\n got  %s\n want %s", src, got, want)
	}
	return got
}

// tree builders

func noop() *ast.Node                { return ast.NewNoop(loc) }
func stmt(n *ast.Node) *ast.Node     { return ast.NewStatement(n, loc) }
func seq(a, b *ast.Node) *ast.Node   { return ast.NewSequence(a, b, loc) }
func block(body *ast.Node) *ast.Node { return ast.NewBlock(symbols.NoScopeID, body, loc) }
func intLit(v int64) *ast.Node       { return ast.NewIntLiteral(v, loc) }
func floatLit(v float64) *ast.Node   { return ast.NewFloatLiteral(v, loc) }
func boolLit(v bool) *ast.Node       { return ast.NewBooleanLiteral(v, loc) }
func bin(k ast.Kind, l, r *ast.Node) *ast.Node {
	return ast.NewBinary(k, l, r, loc)
}
func coerced(k ast.Kind, n *ast.Node) *ast.Node { return ast.NewCoercion(k, n, loc) }
func intVar(name string) *ast.Node              { return ast.NewVarIdentifier(0, name, types.Int, loc) }
func typeID(name string) *ast.Node              { return ast.NewTypeIdentifier(0, name, loc) }

// program wraps statements into the root block's Sequence chain.
func program(items ...*ast.Node) *ast.Node {
	list := noop()
	for i := len(items) - 1; i >= 0; i-- {
		list = seq(items[i], list)
	}
	return block(list)
}
