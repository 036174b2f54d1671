package parser

import (
	"tokiwen/internal/ast"
	"tokiwen/internal/token"
)

// Таблица приоритетов для бинарных операторов
// Чем больше число, тем выше приоритет
const (
	precAssignment     = 1 // = += -= *= /= %=
	precLogicalOr      = 2 // ||
	precLogicalAnd     = 3 // &&
	precEquality       = 4 // == !=
	precComparison     = 5 // < <= > >=
	precAdditive       = 6 // + -
	precMultiplicative = 7 // * / %
)

// binaryOp возвращает вид узла, приоритет и правоассоциативность оператора.
func binaryOp(kind token.Kind) (op ast.Kind, prec int, rightAssoc bool) {
	switch kind {
	case token.Assign:
		return ast.KindAssignment, precAssignment, true
	case token.PlusAssign:
		return ast.KindSumAssignment, precAssignment, true
	case token.MinusAssign:
		return ast.KindSubtractionAssignment, precAssignment, true
	case token.StarAssign:
		return ast.KindMultiplicationAssignment, precAssignment, true
	case token.SlashAssign:
		return ast.KindDivisionAssignment, precAssignment, true
	case token.PercentAssign:
		return ast.KindModuloAssignment, precAssignment, true

	case token.OrOr:
		return ast.KindOr, precLogicalOr, false
	case token.AndAnd:
		return ast.KindAnd, precLogicalAnd, false

	case token.EqEq:
		return ast.KindEquals, precEquality, false
	case token.BangEq:
		return ast.KindNequals, precEquality, false

	case token.Lt:
		return ast.KindLt, precComparison, false
	case token.Gt:
		return ast.KindGt, precComparison, false
	case token.LtEq:
		return ast.KindLteq, precComparison, false
	case token.GtEq:
		return ast.KindGteq, precComparison, false

	case token.Plus:
		return ast.KindSum, precAdditive, false
	case token.Minus:
		return ast.KindSubtraction, precAdditive, false
	case token.Star:
		return ast.KindMultiplication, precMultiplicative, false
	case token.Slash:
		return ast.KindDivision, precMultiplicative, false
	case token.Percent:
		return ast.KindModulo, precMultiplicative, false
	}
	return ast.KindNoop, -1, false // не бинарный оператор
}

func unaryOp(kind token.Kind) (ast.Kind, bool) {
	switch kind {
	case token.Plus:
		return ast.KindUnaryPlus, true
	case token.Minus:
		return ast.KindUnaryMinus, true
	case token.Bang:
		return ast.KindNot, true
	}
	return ast.KindNoop, false
}
