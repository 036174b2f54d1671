package compiler

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/nalgeon/be"

	"tokiwen/internal/isa"
	"tokiwen/internal/parser"
	"tokiwen/internal/program"
)

func compileSource(t *testing.T, src string, opts Options) (*program.Program, error) {
	t.Helper()
	f := parser.New(src)
	res := f.Parse()
	if !res.Success {
		t.Fatalf("parse %q: %s", src, res.Message)
	}
	opts.Files = f.Files()
	return Compile(res.AST, res.Table, opts)
}

func mustCompile(t *testing.T, src string, opts Options) *program.Program {
	t.Helper()
	p, err := compileSource(t, src, opts)
	if err != nil {
		t.Fatalf("compile %q: %v", src, err)
	}
	return p
}

func listing(p *program.Program) []string {
	out := make([]string, len(p.Code))
	for i, ins := range p.Code {
		out[i] = ins.String()
	}
	return out
}

func TestLiteralStatement(t *testing.T) {
	p := mustCompile(t, "1024;", Options{})
	be.Equal(t, p.Code, []isa.Instruction{isa.Make(isa.LoadI, 1024)})
	be.Equal(t, len(p.Data), 8)
	be.Equal(t, p.Metadata.StatementBoundaries, []uint64{0})
	be.Equal(t, p.Metadata.SourceLines, []uint64{1})
}

func TestEmptyProgram(t *testing.T) {
	p := mustCompile(t, "", Options{})
	be.Equal(t, len(p.Code), 0)
	be.Equal(t, len(p.Data), 0)
	be.Equal(t, len(p.Metadata.StatementBoundaries), 0)
}

func TestWhileShape(t *testing.T) {
	p := mustCompile(t, "while(true) 2;", Options{})
	be.Equal(t, listing(p), []string{
		"LOAD_I(1)",
		"BRANCH_IF_ZERO(4)",
		"LOAD_I(2)",
		"JUMP(0)",
	})
	be.Equal(t, p.Metadata.StatementBoundaries, []uint64{0, 1, 2})
}

func TestConditional(t *testing.T) {
	p := mustCompile(t, "int a; if (a) a = 1; else a = 2;", Options{})
	be.Equal(t, listing(p), []string{
		"LOAD(0)",
		"NOT()",
		"NOT()",
		"BRANCH_IF_ZERO(7)",
		"LOAD_I(1)",
		"SET(0)",
		"JUMP(9)",
		"LOAD_I(2)",
		"SET(0)",
	})
	be.Equal(t, p.Metadata.StatementBoundaries, []uint64{0, 3, 4, 7})
}

func TestConditionalWithoutElse(t *testing.T) {
	p := mustCompile(t, "boolean b; if (b) write 1;", Options{})
	be.Equal(t, listing(p), []string{
		"LOAD(0)",
		"AND_I(4294967295)",
		"BRANCH_IF_ZERO(6)",
		"LOAD_I(1)",
		"INTERRUPT(1)",
		"JUMP(6)",
	})
}

func TestUnresolvedGoto(t *testing.T) {
	_, err := compileSource(t, "goto nowhere;", Options{})
	be.Err(t, err, "Label nowhere referenced but not defined.")

	var le *LabelError
	be.True(t, errors.As(err, &le))
	be.Equal(t, le.Name, "nowhere")
}

func TestForwardGoto(t *testing.T) {
	p := mustCompile(t, "goto end; write 1; end: write 2;", Options{})
	be.Equal(t, listing(p), []string{
		"JUMP(3)",
		"LOAD_I(1)",
		"INTERRUPT(1)",
		"LOAD_I(2)",
		"INTERRUPT(1)",
	})
}

func TestBackwardGotoIntoLabelAtStart(t *testing.T) {
	p := mustCompile(t, "top: write 1; goto top;", Options{})
	be.Equal(t, listing(p), []string{
		"LOAD_I(1)",
		"INTERRUPT(1)",
		"JUMP(0)",
	})
}

func TestIndependentCompilesAgree(t *testing.T) {
	const src = `
int a = 3;
float f = 2;
while (a > 0) {
	a -= 1;
	f = f * 1.5;
	if (a == 1) goto done;
}
done: write f;
`
	first := mustCompile(t, src, Options{})
	second := mustCompile(t, src, Options{})
	be.Equal(t, first.Code, second.Code)
	be.Equal(t, first.Data, second.Data)
	be.True(t, first.Equal(second))
}

func TestVariableArithmetic(t *testing.T) {
	p := mustCompile(t, "int a = 2; int b = a + 3;", Options{})
	// two globals, so intermediates start at 16
	be.Equal(t, listing(p), []string{
		"LOAD_I(2)",
		"SET(0)",
		"LOAD(0)",
		"SET(16)",
		"LOAD_I(3)",
		"ADD(16)",
		"SET(8)",
	})
	be.Equal(t, len(p.Data), 32)
	be.Equal(t, p.Metadata.StatementBoundaries, []uint64{0, 2})
}

func TestImmediates(t *testing.T) {
	p := mustCompile(t, "int a = 2; int b = a + 3;", Options{Immediates: true})
	be.Equal(t, listing(p), []string{
		"LOAD_I(2)",
		"SET(0)",
		"LOAD(0)",
		"ADD_I(3)",
		"SET(8)",
	})
	be.Equal(t, len(p.Data), 24)
}

func TestNestedOperandsSpill(t *testing.T) {
	p := mustCompile(t, "int a; int b; int c; write a * (b - c);", Options{})
	// globals take 24 bytes
	be.Equal(t, listing(p), []string{
		"LOAD(0)",
		"SET(24)",
		"LOAD(8)",
		"SET(32)",
		"LOAD(16)",
		"SUBTRACT(32)",
		"MULTIPLY(24)",
		"INTERRUPT(1)",
	})
	be.Equal(t, len(p.Data), 24+24)
}

func TestFloatArithmetic(t *testing.T) {
	p := mustCompile(t, "float f = 1; f = f * 2.5;", Options{})
	be.Equal(t, listing(p), []string{
		fmt.Sprintf("LOAD_I(%d)", math.Float64bits(1)),
		"SET(0)",
		"LOAD(0)",
		"SET(8)",
		fmt.Sprintf("LOAD_I(%d)", math.Float64bits(2.5)),
		"F_MULTIPLY(8)",
		"SET(0)",
	})
}

func TestChainedAssignment(t *testing.T) {
	p := mustCompile(t, "int a; int b; a = b = 7;", Options{})
	be.Equal(t, listing(p), []string{
		"LOAD_I(7)",
		"SET(8)",
		"SET(0)",
	})
	be.Equal(t, p.Metadata.StatementBoundaries, []uint64{0})
	be.Equal(t, len(p.Data), 16+8)
}

func TestCompoundAssignment(t *testing.T) {
	p := mustCompile(t, "int a; a += 2;", Options{})
	be.Equal(t, listing(p), []string{
		"LOAD(0)",
		"SET(8)",
		"LOAD_I(2)",
		"ADD(8)",
		"SET(0)",
	})
}

func TestNotEquals(t *testing.T) {
	p := mustCompile(t, "int a; write a != 1;", Options{})
	be.Equal(t, listing(p), []string{
		"LOAD(0)",
		"SET(8)",
		"LOAD_I(1)",
		"EQUALS(8)",
		"NOT()",
		"INTERRUPT(1)",
	})
}

func TestNegate(t *testing.T) {
	p := mustCompile(t, "int a; float f; write -a; write -f;", Options{})
	be.Equal(t, listing(p), []string{
		"LOAD(0)",
		"NEGATE()",
		"INTERRUPT(1)",
		"LOAD(8)",
		"F_NEGATE(0)",
		"INTERRUPT(1)",
	})
}

func TestNarrowLoadsAreMasked(t *testing.T) {
	p := mustCompile(t, "char c = 'a'; write c;", Options{})
	be.Equal(t, listing(p), []string{
		"LOAD_I(97)",
		"SET(0)",
		"LOAD(0)",
		"AND_I(255)",
		"INTERRUPT(1)",
	})
}

func TestRead(t *testing.T) {
	p := mustCompile(t, "int x; int y; read y;", Options{})
	be.Equal(t, listing(p), []string{
		"LOAD_I(8)",
		"INTERRUPT(0)",
	})
}

func TestStringPool(t *testing.T) {
	p := mustCompile(t, `write "hi"; write "hi";`, Options{})
	// one 8 byte intermediate, then the pool
	be.Equal(t, listing(p), []string{
		"LOAD_I(8)",
		"INTERRUPT(1)",
		"LOAD_I(8)",
		"INTERRUPT(1)",
	})
	be.Equal(t, p.Data, []byte{0, 0, 0, 0, 0, 0, 0, 0, 'h', 'i', 0})
}

func TestStringPoolSurvivesNarrowSpills(t *testing.T) {
	p := mustCompile(t, "write \"hi\"; boolean b; write b == ('a' == 'b');", Options{})
	be.Equal(t, p.Code[0].Op, isa.LoadI)
	pool := p.Code[0].Operand(0)
	be.Equal(t, pool, uint64(len(p.Data)-3))
	be.Equal(t, string(p.Data[pool:]), "hi\x00")

	// slots stay type sized: the char spill sits right after the boolean one
	be.Equal(t, listing(p)[1:], []string{
		"INTERRUPT(1)",
		"LOAD(0)",
		"AND_I(4294967295)",
		"SET(4)",
		"LOAD_I(97)",
		"SET(8)",
		"LOAD_I(98)",
		"EQUALS(8)",
		"EQUALS(4)",
		"INTERRUPT(1)",
	})
	for i, ins := range p.Code {
		if ins.Op != isa.Set {
			continue
		}
		if end := ins.Operand(0) + 8; end > pool {
			t.Fatalf("instruction %d %s stores up to byte %d, pool starts at %d", i, ins, end, pool)
		}
	}
}

func TestNoPoolNoPadding(t *testing.T) {
	p := mustCompile(t, "char c = 'a';", Options{})
	// one char global plus the one byte slot of the literal
	be.Equal(t, len(p.Data), 2)
}

func TestVariableMetadata(t *testing.T) {
	p := mustCompile(t, "int a;\n{\n  boolean b;\n}\nchar c;\n", Options{})
	be.Equal(t, p.VariablesByAddress(), []program.Variable{
		{Name: "a", Size: 8, Address: 0, DeclaredAt: p.Metadata.Variables[0].DeclaredAt, Line: 1, Column: 5},
		{Name: "b", Size: 4, Address: 8, DeclaredAt: p.Metadata.Variables[8].DeclaredAt, Line: 3, Column: 11},
		{Name: "c", Size: 1, Address: 12, DeclaredAt: p.Metadata.Variables[12].DeclaredAt, Line: 5, Column: 6},
	})
	be.Equal(t, len(p.Data), 13)
}

func TestSourceLines(t *testing.T) {
	p := mustCompile(t, "int a = 1;\nwrite a;\n", Options{})
	be.Equal(t, p.Metadata.SourceLines, []uint64{1, 1, 2, 2})
	be.Equal(t, p.Metadata.StatementBoundaries, []uint64{0, 2})
}

func TestIntToFloatNeedsConstant(t *testing.T) {
	_, err := compileSource(t, "float f; int a;\nwrite f + a;", Options{})
	var ce *ConversionError
	be.True(t, errors.As(err, &ce))
	be.Equal(t, ce.From, "int")
	be.Equal(t, ce.To, "float")

	p := mustCompile(t, "float f = 1;", Options{})
	be.Equal(t, p.Code[0], isa.Make(isa.LoadI, math.Float64bits(1)))
}

func TestRejectsNonBlockRoot(t *testing.T) {
	f := parser.New("1;")
	res := f.Parse()
	be.True(t, res.Success)
	_, err := Compile(res.AST.Child(0), res.Table, Options{})
	be.Err(t, err, ErrMalformedTree)
}
