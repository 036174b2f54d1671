package ast

import "fmt"

// Kind is the closed set of node variants.
type Kind uint8

const (
	KindNoop Kind = iota

	KindVarIdentifier
	KindTypeIdentifier

	KindIntLiteral
	KindFloatLiteral
	KindBooleanLiteral
	KindCharLiteral
	KindStringLiteral

	KindIntToFloat
	KindIntToBoolean
	KindBooleanToInt
	KindPointerToBoolean

	KindUnaryMinus
	KindUnaryPlus
	KindNot

	KindSum
	KindSubtraction
	KindMultiplication
	KindDivision
	KindModulo

	KindLt
	KindGt
	KindLteq
	KindGteq
	KindEquals
	KindNequals
	KindAnd
	KindOr

	KindAssignment
	KindSumAssignment
	KindSubtractionAssignment
	KindMultiplicationAssignment
	KindDivisionAssignment
	KindModuloAssignment

	KindBlock
	KindSequence
	KindStatement
	KindDeclaration
	KindDeclarationAssignment
	KindConditional
	KindWhile
	KindLabel
	KindGoto
	KindWrite
	KindRead

	kindCount
)

var kindNames = [kindCount]string{
	KindNoop:                     "Noop",
	KindVarIdentifier:            "VarIdentifier",
	KindTypeIdentifier:           "TypeIdentifier",
	KindIntLiteral:               "IntLiteral",
	KindFloatLiteral:             "FloatLiteral",
	KindBooleanLiteral:           "BooleanLiteral",
	KindCharLiteral:              "CharLiteral",
	KindStringLiteral:            "StringLiteral",
	KindIntToFloat:               "IntToFloat",
	KindIntToBoolean:             "IntToBoolean",
	KindBooleanToInt:             "BooleanToInt",
	KindPointerToBoolean:         "PointerToBoolean",
	KindUnaryMinus:               "UnaryMinus",
	KindUnaryPlus:                "UnaryPlus",
	KindNot:                      "Not",
	KindSum:                      "Sum",
	KindSubtraction:              "Subtraction",
	KindMultiplication:           "Multiplication",
	KindDivision:                 "Division",
	KindModulo:                   "Modulo",
	KindLt:                       "Lt",
	KindGt:                       "Gt",
	KindLteq:                     "Lteq",
	KindGteq:                     "Gteq",
	KindEquals:                   "Equals",
	KindNequals:                  "Nequals",
	KindAnd:                      "And",
	KindOr:                       "Or",
	KindAssignment:               "Assignment",
	KindSumAssignment:            "SumAssignment",
	KindSubtractionAssignment:    "SubtractionAssignment",
	KindMultiplicationAssignment: "MultiplicationAssignment",
	KindDivisionAssignment:       "DivisionAssignment",
	KindModuloAssignment:         "ModuloAssignment",
	KindBlock:                    "Block",
	KindSequence:                 "Sequence",
	KindStatement:                "Statement",
	KindDeclaration:              "Declaration",
	KindDeclarationAssignment:    "DeclarationAssignment",
	KindConditional:              "Conditional",
	KindWhile:                    "While",
	KindLabel:                    "Label",
	KindGoto:                     "Goto",
	KindWrite:                    "Write",
	KindRead:                     "Read",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

func (k Kind) IsLiteral() bool {
	return k >= KindIntLiteral && k <= KindStringLiteral
}

func (k Kind) IsCoercion() bool {
	return k >= KindIntToFloat && k <= KindPointerToBoolean
}

// IsUnary covers coercions and the unary operators.
func (k Kind) IsUnary() bool {
	return k >= KindIntToFloat && k <= KindNot
}

// IsBinary covers every two-operand expression except plain assignment.
func (k Kind) IsBinary() bool {
	return k >= KindSum && k <= KindModuloAssignment && k != KindAssignment
}

func (k Kind) IsArithmetic() bool {
	return k >= KindSum && k <= KindModulo
}

func (k Kind) IsRelational() bool {
	return k >= KindLt && k <= KindNequals
}

func (k Kind) IsLogical() bool {
	return k == KindAnd || k == KindOr
}

// IsAssignment covers plain and compound assignment.
func (k Kind) IsAssignment() bool {
	return k >= KindAssignment && k <= KindModuloAssignment
}

func (k Kind) IsCompoundAssignment() bool {
	return k > KindAssignment && k <= KindModuloAssignment
}

// IsExpr reports whether nodes of kind k produce a value.
func (k Kind) IsExpr() bool {
	return k == KindVarIdentifier || (k >= KindIntLiteral && k <= KindModuloAssignment)
}

// CompoundBase maps a compound assignment to the arithmetic operation it applies.
func (k Kind) CompoundBase() (Kind, bool) {
	switch k {
	case KindSumAssignment:
		return KindSum, true
	case KindSubtractionAssignment:
		return KindSubtraction, true
	case KindMultiplicationAssignment:
		return KindMultiplication, true
	case KindDivisionAssignment:
		return KindDivision, true
	case KindModuloAssignment:
		return KindModulo, true
	}
	return k, false
}
