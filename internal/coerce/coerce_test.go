package coerce

import (
	"errors"
	"testing"

	"github.com/nalgeon/be"

	"tokiwen/internal/ast"
	"tokiwen/internal/source"
	"tokiwen/internal/types"
)

var sp source.Span

func lit(t *types.Type) *ast.Node {
	switch t.Kind {
	case types.KindInt:
		return ast.NewIntLiteral(1, sp)
	case types.KindFloat:
		return ast.NewFloatLiteral(1, sp)
	case types.KindBoolean:
		return ast.NewBooleanLiteral(true, sp)
	case types.KindChar:
		return ast.NewCharLiteral('c', sp)
	case types.KindPointer:
		return ast.NewStringLiteral("s", sp)
	}
	panic("no literal for " + t.String())
}

func TestArithmeticClosure(t *testing.T) {
	lattice := []*types.Type{types.Boolean, types.Int, types.Float}
	rank := map[types.Kind]int{types.KindBoolean: 0, types.KindInt: 1, types.KindFloat: 2}
	for _, lt := range lattice {
		for _, rt := range lattice {
			t.Run(lt.String()+"+"+rt.String(), func(t *testing.T) {
				n, err := Binary(ast.KindSum, lit(lt), lit(rt), sp)
				be.Err(t, err, nil)
				wider := lt
				if rank[rt.Kind] > rank[lt.Kind] {
					wider = rt
				}
				be.Equal(t, n.Type.Kind, wider.Kind)
				be.Equal(t, n.Left().Type.Kind, n.Right().Type.Kind)
			})
		}
	}
}

func TestArithmeticShapes(t *testing.T) {
	cases := []struct {
		left, right *types.Type
		want        string
	}{
		{types.Int, types.Float, "Sum[float](IntToFloat[float](IntLiteral[int](1)), FloatLiteral[float](1))"},
		{types.Int, types.Boolean, "Sum[int](IntLiteral[int](1), BooleanToInt[int](BooleanLiteral[boolean](true)))"},
		{types.Float, types.Boolean, "Sum[float](FloatLiteral[float](1), IntToFloat[float](BooleanToInt[int](BooleanLiteral[boolean](true))))"},
		{types.Int, types.Int, "Sum[int](IntLiteral[int](1), IntLiteral[int](1))"},
	}
	for _, tc := range cases {
		n, err := Binary(ast.KindSum, lit(tc.left), lit(tc.right), sp)
		be.Err(t, err, nil)
		be.Equal(t, n.String(), tc.want)
	}
}

func TestArithmeticRejects(t *testing.T) {
	_, err := Binary(ast.KindMultiplication, lit(types.Char), lit(types.Int), sp)
	var cerr *Error
	be.True(t, errors.As(err, &cerr))
	be.Equal(t, cerr.Op, ast.KindMultiplication)
	be.Equal(t, err.Error(), "Tried to perform arithmetic binary operation with non-arithmetic argument of type char")

	_, err = Binary(ast.KindSum, lit(types.PointerTo(types.Char)), lit(types.Int), sp)
	be.Err(t, err, "non-arithmetic argument of type char*")
}

func TestModulo(t *testing.T) {
	n, err := Binary(ast.KindModulo, lit(types.Boolean), lit(types.Int), sp)
	be.Err(t, err, nil)
	be.Equal(t, n.Left().Kind, ast.KindBooleanToInt)

	_, err = Binary(ast.KindModulo, lit(types.Float), lit(types.Int), sp)
	be.Err(t, err, "Tried to perform integral binary operation with non-integral argument of type float")
}

func TestRelational(t *testing.T) {
	n, err := Binary(ast.KindLt, lit(types.Char), lit(types.Char), sp)
	be.Err(t, err, nil)
	be.Equal(t, n.Type, types.Boolean)

	n, err = Binary(ast.KindEquals, lit(types.Float), lit(types.Int), sp)
	be.Err(t, err, nil)
	be.Equal(t, n.Right().Kind, ast.KindIntToFloat)

	_, err = Binary(ast.KindNequals, lit(types.Char), lit(types.Int), sp)
	be.Err(t, err, "Can't coerce types char and int to match")
}

func TestLogical(t *testing.T) {
	n, err := Binary(ast.KindAnd, lit(types.Int), lit(types.Int), sp)
	be.Err(t, err, nil)
	be.Equal(t, n.String(), "And[boolean](IntToBoolean[boolean](IntLiteral[int](1)), IntToBoolean[boolean](IntLiteral[int](1)))")

	n, err = Binary(ast.KindOr, lit(types.PointerTo(types.Char)), lit(types.Boolean), sp)
	be.Err(t, err, nil)
	be.Equal(t, n.Left().Kind, ast.KindPointerToBoolean)
	be.Equal(t, n.Right().Kind, ast.KindBooleanLiteral)

	_, err = Binary(ast.KindOr, lit(types.Float), lit(types.Boolean), sp)
	be.Err(t, err, "Can't coerce type float to boolean")
}

func TestConditions(t *testing.T) {
	body := ast.NewNoop(sp)
	n, err := Conditional(lit(types.Int), body, body, sp)
	be.Err(t, err, nil)
	be.Equal(t, n.Child(0).Kind, ast.KindIntToBoolean)

	_, err = While(lit(types.Char), body, sp)
	var cerr *Error
	be.True(t, errors.As(err, &cerr))
	be.Equal(t, cerr.Op, ast.KindWhile)
}

func TestAssignment(t *testing.T) {
	x := ast.NewVarIdentifier(1, "x", types.Float, sp)
	n, err := Assignment(ast.KindAssignment, x, lit(types.Int), sp)
	be.Err(t, err, nil)
	be.Equal(t, n.Type, types.Float)
	be.Equal(t, n.Right().Kind, ast.KindIntToFloat)

	i := ast.NewVarIdentifier(2, "i", types.Int, sp)
	_, err = Assignment(ast.KindAssignment, i, lit(types.Float), sp)
	be.Err(t, err, "Can't assign value of type float to variable of type int")

	_, err = Assignment(ast.KindSumAssignment, i, lit(types.Float), sp)
	be.Err(t, err, "Can't assign value of type float to variable of type int")

	_, err = Assignment(ast.KindModuloAssignment, x, lit(types.Int), sp)
	be.Err(t, err, "non-integral argument of type float")

	b := ast.NewVarIdentifier(3, "b", types.Boolean, sp)
	n, err = Assignment(ast.KindAssignment, b, lit(types.Int), sp)
	be.Err(t, err, nil)
	be.Equal(t, n.Right().Kind, ast.KindIntToBoolean)
}
