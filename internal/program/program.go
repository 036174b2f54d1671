// Package program holds a compiled program: the zeroed data segment, the
// resolved code and the debugging metadata tools need to step through it.
package program

import (
	"maps"
	"slices"

	"tokiwen/internal/isa"
	"tokiwen/internal/source"
)

// Variable describes one global slot in the data segment.
type Variable struct {
	Name       string      `msgpack:"name" json:"name"`
	Size       uint64      `msgpack:"size" json:"size"`
	Address    uint64      `msgpack:"address" json:"address"`
	DeclaredAt source.Span `msgpack:"-" json:"-"`
	Line       uint32      `msgpack:"line" json:"line"`
	Column     uint32      `msgpack:"column" json:"column"`
}

type Metadata struct {
	// Variables is keyed by data address.
	Variables map[uint64]Variable
	// StatementBoundaries lists, ascending, the instructions that start a statement.
	StatementBoundaries []uint64
	// SourceLines maps every instruction to the line that produced it.
	SourceLines []uint64
}

type Program struct {
	Data     []byte
	Code     []isa.Instruction
	Metadata Metadata
}

// IsBoundary reports whether instruction i starts a statement.
func (p *Program) IsBoundary(i uint64) bool {
	_, ok := slices.BinarySearch(p.Metadata.StatementBoundaries, i)
	return ok
}

// VariablesByAddress lists the variables in data order.
func (p *Program) VariablesByAddress() []Variable {
	addrs := slices.Sorted(maps.Keys(p.Metadata.Variables))
	vars := make([]Variable, 0, len(addrs))
	for _, a := range addrs {
		vars = append(vars, p.Metadata.Variables[a])
	}
	return vars
}

// Line returns the source line of instruction i, or 0.
func (p *Program) Line(i int) uint64 {
	if i < 0 || i >= len(p.Metadata.SourceLines) {
		return 0
	}
	return p.Metadata.SourceLines[i]
}

// Equal compares data, code and metadata.
func (p *Program) Equal(o *Program) bool {
	if !slices.Equal(p.Data, o.Data) || !slices.Equal(p.Code, o.Code) {
		return false
	}
	if !slices.Equal(p.Metadata.StatementBoundaries, o.Metadata.StatementBoundaries) ||
		!slices.Equal(p.Metadata.SourceLines, o.Metadata.SourceLines) {
		return false
	}
	return maps.EqualFunc(p.Metadata.Variables, o.Metadata.Variables, func(a, b Variable) bool {
		return a.Name == b.Name && a.Size == b.Size && a.Address == b.Address && a.Line == b.Line && a.Column == b.Column
	})
}
