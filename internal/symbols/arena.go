package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"tokiwen/internal/source"
)

// Scopes stores all allocated scopes in a compact slice-based arena.
type Scopes struct {
	data []Scope
}

// NewScopes creates an arena with optional capacity hint.
func NewScopes(capacity uint32) *Scopes {
	if capacity == 0 {
		capacity = 16
	}
	return &Scopes{
		data: make([]Scope, 1, capacity+1), // index 0 reserved for NoScopeID
	}
}

// New allocates a new scope and links it under parent.
func (s *Scopes) New(parent ScopeID, span source.Span) ScopeID {
	value, err := safecast.Conv[uint32](len(s.data))
	if err != nil {
		panic(fmt.Errorf("scopes arena overflow: %w", err))
	}
	id := ScopeID(value)
	s.data = append(s.data, Scope{
		Parent: parent,
		Span:   span,
		Locals: make(map[string]VarID),
		Types:  make(map[string]TypeID),
	})
	if parentScope := s.Get(parent); parentScope != nil {
		parentScope.Children = append(parentScope.Children, id)
	}
	return id
}

// Get returns the scope pointer or nil if ID is invalid.
func (s *Scopes) Get(id ScopeID) *Scope {
	if !id.IsValid() || int(id) >= len(s.data) {
		return nil
	}
	return &s.data[id]
}

// Len reports total number of scopes excluding the sentinel.
func (s *Scopes) Len() int { return len(s.data) - 1 }

// Vars stores variable entries. Entries are never moved or freed, so a VarID
// stays valid for the table's lifetime.
type Vars struct {
	data []Variable
}

func NewVars(capacity uint32) *Vars {
	if capacity == 0 {
		capacity = 32
	}
	return &Vars{data: make([]Variable, 1, capacity+1)}
}

func (v *Vars) New(entry Variable) VarID {
	value, err := safecast.Conv[uint32](len(v.data))
	if err != nil {
		panic(fmt.Errorf("vars arena overflow: %w", err))
	}
	v.data = append(v.data, entry)
	return VarID(value)
}

func (v *Vars) Get(id VarID) *Variable {
	if !id.IsValid() || int(id) >= len(v.data) {
		return nil
	}
	return &v.data[id]
}

func (v *Vars) Len() int { return len(v.data) - 1 }

// TypeEntries stores named types.
type TypeEntries struct {
	data []TypeEntry
}

func NewTypeEntries(capacity uint32) *TypeEntries {
	if capacity == 0 {
		capacity = 8
	}
	return &TypeEntries{data: make([]TypeEntry, 1, capacity+1)}
}

func (t *TypeEntries) New(entry TypeEntry) TypeID {
	value, err := safecast.Conv[uint32](len(t.data))
	if err != nil {
		panic(fmt.Errorf("types arena overflow: %w", err))
	}
	t.data = append(t.data, entry)
	return TypeID(value)
}

func (t *TypeEntries) Get(id TypeID) *TypeEntry {
	if !id.IsValid() || int(id) >= len(t.data) {
		return nil
	}
	return &t.data[id]
}
