// Package compiler turns a typed, scoped tree into accumulator bytecode.
//
// Code is emitted in one walk with symbolic operands (intermediate slots,
// hidden and user labels, pooled strings). A second pass resolves them once
// the watermark of the intermediate region and every label are known.
package compiler

import (
	"errors"
	"fmt"
	"slices"

	"tokiwen/internal/ast"
	"tokiwen/internal/isa"
	"tokiwen/internal/program"
	"tokiwen/internal/source"
	"tokiwen/internal/symbols"
	"tokiwen/internal/trace"
)

// ErrMalformedTree reports a tree the parser could not have produced.
var ErrMalformedTree = errors.New("malformed tree")

// LabelError reports a goto whose label is not declared anywhere.
type LabelError struct {
	Name string
	Span source.Span
}

func (e *LabelError) Error() string {
	return fmt.Sprintf("Label %s referenced but not defined.", e.Name)
}

// ConversionError reports a coercion the instruction set cannot perform at
// run time. Only constant operands are converted, at compile time.
type ConversionError struct {
	From, To string
	Span     source.Span
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("Cannot convert %s to %s at run time; only constants are converted.", e.From, e.To)
}

// Options tunes code generation.
type Options struct {
	// Immediates folds a literal right operand of + - * / % into the _I
	// form of the opcode instead of spilling it.
	Immediates bool
	// Files resolves spans to source lines. Without it every line is 0.
	Files  *source.FileSet
	Tracer trace.Tracer
}

type compiler struct {
	table *symbols.Table
	opts  Options
	data  *dataManager
	code  []pending

	hidden []uint64
	user   map[string]uint64

	boundaries map[uint64]struct{}
}

// Compile generates the program for root, which must be the Block the
// parser returned together with table.
func Compile(root *ast.Node, table *symbols.Table, opts Options) (*program.Program, error) {
	span := trace.Begin(opts.Tracer, trace.ScopePass, "compile", 0)

	c := &compiler{
		table:      table,
		opts:       opts,
		data:       newDataManager(),
		user:       make(map[string]uint64),
		boundaries: make(map[uint64]struct{}),
	}
	prog, err := c.run(root)
	if err != nil {
		span.End("error")
		return nil, err
	}
	span.End(fmt.Sprintf("%d instructions", len(prog.Code)))
	return prog, nil
}

func (c *compiler) run(root *ast.Node) (*program.Program, error) {
	if root == nil || root.Kind != ast.KindBlock {
		return nil, fmt.Errorf("%w: root is not a block", ErrMalformedTree)
	}
	if err := c.setupVariables(root.Scope); err != nil {
		return nil, err
	}
	if err := c.compile(root); err != nil {
		return nil, err
	}
	return c.finish()
}

// setupVariables registers every variable under scope, pre-order over scopes.
// The table already assigned the addresses; the totals must agree.
func (c *compiler) setupVariables(scope symbols.ScopeID) error {
	for _, id := range c.table.Variables(scope) {
		v := c.table.Var(id)
		start := c.position(v.Span)
		c.data.addVariable(program.Variable{
			Name:       v.Name,
			Size:       c.table.VarType(id).Size(),
			Address:    v.Offset,
			DeclaredAt: v.Span,
			Line:       start.Line,
			Column:     start.Col,
		})
	}
	if scope == c.table.Root() && c.data.varSize != c.table.DataSize() {
		return fmt.Errorf("%w: variables take %d bytes, table allocated %d",
			ErrMalformedTree, c.data.varSize, c.table.DataSize())
	}
	return nil
}

func (c *compiler) position(sp source.Span) source.LineCol {
	if c.opts.Files == nil || c.opts.Files.Get(sp.File) == nil {
		return source.LineCol{}
	}
	start, _ := c.opts.Files.Resolve(sp)
	return start
}

func (c *compiler) emit(n *ast.Node, op isa.Op, operands ...operand) {
	c.code = append(c.code, pending{
		op:       op,
		operands: operands,
		line:     uint64(c.position(n.Span).Line),
	})
}

func (c *compiler) here() uint64 { return uint64(len(c.code)) }

func (c *compiler) markBoundary() { c.boundaries[c.here()] = struct{}{} }

// newLabel allocates a hidden label; bind sets it later.
func (c *compiler) newLabel() uint64 {
	c.hidden = append(c.hidden, 0)
	return uint64(len(c.hidden) - 1)
}

func (c *compiler) bind(label uint64) { c.hidden[label] = c.here() }

func (c *compiler) finish() (*program.Program, error) {
	l := &layout{
		intermediates: c.data.intermediatesStart(),
		pool:          c.data.poolStart(),
		hidden:        c.hidden,
		user:          c.user,
	}
	prog := &program.Program{
		Data: c.data.segment(),
		Code: make([]isa.Instruction, 0, len(c.code)),
		Metadata: program.Metadata{
			Variables:   c.data.vars,
			SourceLines: make([]uint64, 0, len(c.code)),
		},
	}
	for _, p := range c.code {
		ins, err := p.resolve(l)
		if err != nil {
			return nil, err
		}
		prog.Code = append(prog.Code, ins)
		prog.Metadata.SourceLines = append(prog.Metadata.SourceLines, p.line)
	}
	prog.Metadata.StatementBoundaries = make([]uint64, 0, len(c.boundaries))
	for b := range c.boundaries {
		prog.Metadata.StatementBoundaries = append(prog.Metadata.StatementBoundaries, b)
	}
	slices.Sort(prog.Metadata.StatementBoundaries)
	return prog, nil
}
