package symbols

// ScopeID identifies a scope in the table arena.
type ScopeID uint32

const (
	// NoScopeID marks the absence of a scope reference.
	NoScopeID ScopeID = 0
)

// IsValid reports whether the scope ID refers to an allocated scope.
func (id ScopeID) IsValid() bool { return id != NoScopeID }

// VarID identifies a variable entry inside the table arena.
type VarID uint32

const (
	// NoVarID marks the absence of a variable reference.
	NoVarID VarID = 0
)

// IsValid reports whether the variable ID refers to an allocated entry.
func (id VarID) IsValid() bool { return id != NoVarID }

// TypeID identifies a type entry inside the table arena.
type TypeID uint32

const (
	// NoTypeID marks the absence of a type entry reference.
	NoTypeID TypeID = 0
)

// IsValid reports whether the type ID refers to an allocated entry.
func (id TypeID) IsValid() bool { return id != NoTypeID }
