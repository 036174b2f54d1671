package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"tokiwen/internal/source"
	"tokiwen/internal/types"
)

// Hints provide optional capacity suggestions for the symbol table arenas.
type Hints struct{ Scopes, Vars uint }

// Table owns every scope, variable and type entry of one compilation.
// AST nodes refer to entries by ID; the table must outlive them.
type Table struct {
	Scopes   *Scopes
	Vars     *Vars
	Types    *TypeEntries
	alloc    *Allocator
	root     ScopeID
	defaults map[string]TypeID
}

// NewTable builds a table with a root scope and the built-in types seeded.
func NewTable(h Hints) *Table {
	scopeCap, err := safecast.Conv[uint32](h.Scopes)
	if err != nil {
		panic(fmt.Errorf("scope capacity overflow: %w", err))
	}
	varCap, err := safecast.Conv[uint32](h.Vars)
	if err != nil {
		panic(fmt.Errorf("var capacity overflow: %w", err))
	}
	t := &Table{
		Scopes:   NewScopes(scopeCap),
		Vars:     NewVars(varCap),
		Types:    NewTypeEntries(0),
		alloc:    &Allocator{},
		defaults: make(map[string]TypeID, 8),
	}
	t.root = t.Scopes.New(NoScopeID, source.Span{})
	t.initDefaultSymbols()
	return t
}

func (t *Table) initDefaultSymbols() {
	for _, b := range types.Builtins() {
		t.defaults[b.Name] = t.Types.New(TypeEntry{Name: b.Name, Type: b.Type, Scope: t.root})
	}
}

// Root returns the outermost scope.
func (t *Table) Root() ScopeID { return t.root }

// NewScope opens a child scope of parent.
func (t *Table) NewScope(parent ScopeID, span source.Span) ScopeID {
	if t.Scopes.Get(parent) == nil {
		panic(fmt.Errorf("symbols: parent scope %d does not exist", parent))
	}
	return t.Scopes.New(parent, span)
}

func (t *Table) mustScope(id ScopeID) *Scope {
	s := t.Scopes.Get(id)
	if s == nil {
		panic(fmt.Errorf("symbols: scope %d does not exist", id))
	}
	return s
}

// InsertVariable declares name in scope and assigns it the next flat offset.
// Redeclaring a name in the same scope fails without touching the table.
func (t *Table) InsertVariable(scope ScopeID, name string, span source.Span, typ TypeID) (VarID, error) {
	s := t.mustScope(scope)
	if prev, ok := s.Locals[name]; ok {
		return NoVarID, &DeclaredError{Namespace: NamespaceVar, Name: name, Span: span, Previous: t.Vars.Get(prev).Span}
	}
	entry := t.Types.Get(typ)
	if entry == nil {
		panic(fmt.Errorf("symbols: variable %q has no type entry", name))
	}
	id := t.Vars.New(Variable{
		Name:   name,
		Span:   span,
		Type:   typ,
		Offset: t.alloc.Alloc(entry.Type.Size()),
		Scope:  scope,
	})
	s.Locals[name] = id
	s.Vars = append(s.Vars, id)
	return id, nil
}

// InsertType declares a named type in scope. No offset is consumed.
func (t *Table) InsertType(scope ScopeID, name string, span source.Span, typ *types.Type) (TypeID, error) {
	s := t.mustScope(scope)
	if prev, ok := s.Types[name]; ok {
		return NoTypeID, &DeclaredError{Namespace: NamespaceType, Name: name, Span: span, Previous: t.Types.Get(prev).Span}
	}
	id := t.Types.New(TypeEntry{Name: name, Span: span, Type: typ, Scope: scope})
	s.Types[name] = id
	return id, nil
}

// LookupVar resolves name from scope outwards.
func (t *Table) LookupVar(scope ScopeID, name string) (VarID, bool) {
	for s := t.Scopes.Get(scope); s != nil; s = t.Scopes.Get(s.Parent) {
		if id, ok := s.Locals[name]; ok {
			return id, true
		}
	}
	return NoVarID, false
}

// LookupType resolves a declared type from scope outwards. Built-ins are not
// part of any scope; see DefaultType.
func (t *Table) LookupType(scope ScopeID, name string) (TypeID, bool) {
	for s := t.Scopes.Get(scope); s != nil; s = t.Scopes.Get(s.Parent) {
		if id, ok := s.Types[name]; ok {
			return id, true
		}
	}
	return NoTypeID, false
}

// DefaultType returns a built-in type entry.
func (t *Table) DefaultType(name string) (TypeID, bool) {
	id, ok := t.defaults[name]
	return id, ok
}

// MustDefaultType is DefaultType for names known to be built in.
func (t *Table) MustDefaultType(name string) TypeID {
	id, ok := t.defaults[name]
	if !ok {
		panic("symbols: no default type named " + name)
	}
	return id
}

// GetVar is LookupVar reporting a *NotFoundError.
func (t *Table) GetVar(scope ScopeID, name string, span source.Span) (VarID, error) {
	if id, ok := t.LookupVar(scope, name); ok {
		return id, nil
	}
	return NoVarID, &NotFoundError{Namespace: NamespaceVar, Name: name, Span: span}
}

// GetType resolves scoped types first and falls back to the built-ins.
func (t *Table) GetType(scope ScopeID, name string, span source.Span) (TypeID, error) {
	if id, ok := t.LookupType(scope, name); ok {
		return id, nil
	}
	if id, ok := t.defaults[name]; ok {
		return id, nil
	}
	return NoTypeID, &NotFoundError{Namespace: NamespaceType, Name: name, Span: span}
}

func (t *Table) Var(id VarID) *Variable { return t.Vars.Get(id) }
func (t *Table) TypeEntry(id TypeID) *TypeEntry { return t.Types.Get(id) }
func (t *Table) Scope(id ScopeID) *Scope { return t.Scopes.Get(id) }

// VarType returns the descriptor of a variable's declared type.
func (t *Table) VarType(id VarID) *types.Type {
	v := t.Vars.Get(id)
	if v == nil {
		return types.Error
	}
	if e := t.Types.Get(v.Type); e != nil {
		return e.Type
	}
	return types.Error
}

// DataSize is the number of bytes all declared variables occupy.
func (t *Table) DataSize() uint64 { return t.alloc.Used() }

// Walk visits scope and its descendants in pre-order, children in creation order.
func (t *Table) Walk(scope ScopeID, fn func(id ScopeID, s *Scope)) {
	s := t.Scopes.Get(scope)
	if s == nil {
		return
	}
	fn(scope, s)
	for _, child := range s.Children {
		t.Walk(child, fn)
	}
}

// Variables lists every variable under scope: pre-order over scopes,
// declaration order within a scope.
func (t *Table) Variables(scope ScopeID) []VarID {
	var out []VarID
	t.Walk(scope, func(_ ScopeID, s *Scope) {
		out = append(out, s.Vars...)
	})
	return out
}
