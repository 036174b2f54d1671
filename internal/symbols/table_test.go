package symbols

import (
	"errors"
	"testing"

	"tokiwen/internal/source"
	"tokiwen/internal/types"
)

func TestDefaultTypes(t *testing.T) {
	table := NewTable(Hints{})
	for _, name := range []string{"int", "float", "boolean", "char", "function", "void"} {
		id, ok := table.DefaultType(name)
		if !ok {
			t.Fatalf("missing default type %q", name)
		}
		if got := table.TypeEntry(id).Type.String(); got != name {
			t.Fatalf("default %q resolves to %q", name, got)
		}
		if _, ok := table.LookupType(table.Root(), name); ok {
			t.Fatalf("built-in %q must not live in a scope", name)
		}
		if _, err := table.GetType(table.Root(), name, source.Span{}); err != nil {
			t.Fatalf("GetType(%q) must fall back to defaults: %v", name, err)
		}
	}
}

func TestOffsetsAreProgramWide(t *testing.T) {
	table := NewTable(Hints{})
	intT := table.MustDefaultType("int")
	boolT := table.MustDefaultType("boolean")
	charT := table.MustDefaultType("char")

	root := table.Root()
	a, _ := table.InsertVariable(root, "a", source.Span{}, boolT)
	inner := table.NewScope(root, source.Span{})
	b, _ := table.InsertVariable(inner, "b", source.Span{}, charT)
	innermost := table.NewScope(inner, source.Span{})
	c, _ := table.InsertVariable(innermost, "c", source.Span{}, intT)
	d, _ := table.InsertVariable(root, "d", source.Span{}, intT)

	want := map[VarID]uint64{a: 0, b: 4, c: 5, d: 13}
	for id, off := range want {
		if got := table.Var(id).Offset; got != off {
			t.Errorf("%s offset = %d, want %d", table.Var(id).Name, got, off)
		}
	}
	if table.DataSize() != 21 {
		t.Fatalf("data size = %d", table.DataSize())
	}
	if err := table.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestRedeclaration(t *testing.T) {
	table := NewTable(Hints{})
	intT := table.MustDefaultType("int")
	root := table.Root()
	if _, err := table.InsertVariable(root, "x", source.Span{}, intT); err != nil {
		t.Fatal(err)
	}
	_, err := table.InsertVariable(root, "x", source.Span{Start: 7}, intT)
	var declared *DeclaredError
	if !errors.As(err, &declared) {
		t.Fatalf("expected DeclaredError, got %v", err)
	}
	if err.Error() != "Variable `x` already declared in this context." {
		t.Fatalf("message: %s", err)
	}
	if table.DataSize() != 8 {
		t.Fatal("a failed insert must not allocate")
	}

	// Types and variables live in separate namespaces.
	if _, err := table.InsertType(root, "x", source.Span{}, types.Int); err != nil {
		t.Fatalf("type namespace is independent: %v", err)
	}
	if _, err := table.InsertType(root, "x", source.Span{}, types.Int); err == nil {
		t.Fatal("type redeclaration must fail")
	}
}

func TestShadowingAndVisibility(t *testing.T) {
	table := NewTable(Hints{})
	intT := table.MustDefaultType("int")
	root := table.Root()
	outer, _ := table.InsertVariable(root, "shadow", source.Span{}, intT)
	inner := table.NewScope(root, source.Span{})

	if id, ok := table.LookupVar(inner, "shadow"); !ok || id != outer {
		t.Fatal("outer variable must be visible from the inner scope")
	}
	shadow, err := table.InsertVariable(inner, "shadow", source.Span{}, intT)
	if err != nil {
		t.Fatalf("shadowing is legal: %v", err)
	}
	if id, _ := table.LookupVar(inner, "shadow"); id != shadow {
		t.Fatal("inner declaration must hide the outer one")
	}
	if id, _ := table.LookupVar(root, "shadow"); id != outer {
		t.Fatal("outer scope keeps its own entry")
	}

	local, _ := table.InsertVariable(inner, "local", source.Span{}, intT)
	if _, ok := table.LookupVar(root, "local"); ok {
		t.Fatal("inner variables are invisible outside")
	}
	_, err = table.GetVar(root, "local", source.Span{})
	var nf *NotFoundError
	if !errors.As(err, &nf) || err.Error() != "Variable `local` not found." {
		t.Fatalf("GetVar: %v", err)
	}
	if table.Var(local).Scope != inner {
		t.Fatal("entry must remember its scope")
	}
}

func TestVariablesPreOrder(t *testing.T) {
	table := NewTable(Hints{})
	intT := table.MustDefaultType("int")
	root := table.Root()
	s1 := table.NewScope(root, source.Span{})
	x, _ := table.InsertVariable(s1, "x", source.Span{}, intT)
	a, _ := table.InsertVariable(root, "a", source.Span{}, intT)
	s2 := table.NewScope(s1, source.Span{})
	y, _ := table.InsertVariable(s2, "y", source.Span{}, intT)
	b, _ := table.InsertVariable(root, "b", source.Span{}, intT)

	got := table.Variables(root)
	want := []VarID{a, b, x, y}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestGetTypeNotFound(t *testing.T) {
	table := NewTable(Hints{})
	_, err := table.GetType(table.Root(), "idk_t", source.Span{})
	if err == nil || err.Error() != "Type `idk_t` not found." {
		t.Fatalf("got %v", err)
	}
}

func TestInsertIntoUnknownScopePanics(t *testing.T) {
	table := NewTable(Hints{})
	intT := table.MustDefaultType("int")
	defer func() {
		if recover() == nil {
			t.Fatal("insert into a missing scope must panic")
		}
		if table.DataSize() != 0 {
			t.Fatalf("nothing may be allocated, got %d bytes", table.DataSize())
		}
	}()
	table.InsertVariable(ScopeID(42), "x", source.Span{}, intT)
}

func TestInsertIntoNestedScope(t *testing.T) {
	table := NewTable(Hints{})
	inner := table.NewScope(table.Root(), source.Span{})
	if _, err := table.InsertType(inner, "t", source.Span{}, types.Int); err != nil {
		t.Fatal(err)
	}
	if _, ok := table.LookupType(inner, "t"); !ok {
		t.Fatal("type declared in nested scope is not visible there")
	}
	if _, ok := table.LookupType(table.Root(), "t"); ok {
		t.Fatal("type leaked into the parent scope")
	}
}
