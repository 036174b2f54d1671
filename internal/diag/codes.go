package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexUnterminatedChar   Code = 1003
	LexBadNumber          Code = 1004
	LexBadEscape          Code = 1005
	LexBadChar            Code = 1006

	// Синтаксические
	SynInfo             Code = 2000
	SynUnexpectedToken  Code = 2001
	SynExpectSemicolon  Code = 2002
	SynExpectExpression Code = 2003
	SynExpectIdentifier Code = 2004
	SynUnclosedParen    Code = 2005
	SynUnclosedBrace    Code = 2006
	SynNotAssignable    Code = 2007
	SynBadLiteral       Code = 2008

	// Имена и типы
	SemaInfo            Code = 3000
	SemaVarRedeclared   Code = 3001
	SemaTypeNotFound    Code = 3002
	SemaVarNotFound     Code = 3003
	SemaTypeMismatch    Code = 3004
	SemaLabelRedeclared Code = 3005
	SemaUnsupportedType Code = 3006

	// Кодогенерация
	GenInfo            Code = 4000
	GenUnresolvedLabel Code = 4001
	GenInternal        Code = 4002
	GenConversion      Code = 4003

	IOLoadFileError  Code = 5001
	IOWriteFileError Code = 5002
	IOCacheError     Code = 5003

	PrjManifestInvalid Code = 6001
	PrjUnknownKey      Code = 6002
	PrjNoSources       Code = 6003
)

var codeDescription = map[Code]string{
	UnknownCode:           "Unknown error",
	LexInfo:               "Lexical information",
	LexUnknownChar:        "Unknown character",
	LexUnterminatedString: "Unterminated string literal",
	LexUnterminatedChar:   "Unterminated char literal",
	LexBadNumber:          "Malformed number literal",
	LexBadEscape:          "Unknown escape sequence",
	LexBadChar:            "Char literal must hold exactly one character",

	SynInfo:             "Syntax information",
	SynUnexpectedToken:  "Unexpected token",
	SynExpectSemicolon:  "Expected ';'",
	SynExpectExpression: "Expected expression",
	SynExpectIdentifier: "Expected identifier",
	SynUnclosedParen:    "Unclosed parenthesis",
	SynUnclosedBrace:    "Unclosed block",
	SynNotAssignable:    "Left side of assignment is not a variable",
	SynBadLiteral:       "Literal out of range",

	SemaInfo:            "Semantic information",
	SemaVarRedeclared:   "Variable already declared",
	SemaTypeNotFound:    "Type not found",
	SemaVarNotFound:     "Variable not found",
	SemaTypeMismatch:    "Operand types cannot be coerced",
	SemaLabelRedeclared: "Label already defined",
	SemaUnsupportedType: "Type is not supported by the code generator",

	GenInfo:            "Code generation information",
	GenUnresolvedLabel: "Label referenced but not defined",
	GenInternal:        "Internal code generator error",
	GenConversion:      "Conversion has no instruction",

	IOLoadFileError:  "Failed to read source file",
	IOWriteFileError: "Failed to write output file",
	IOCacheError:     "Compile cache unavailable",

	PrjManifestInvalid: "Invalid tokiwen.toml",
	PrjUnknownKey:      "Unknown manifest key",
	PrjNoSources:       "Project has no sources",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("GEN%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
