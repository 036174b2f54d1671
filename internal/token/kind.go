package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// IntLit represents an integer literal.
	IntLit
	// FloatLit represents a float literal (dotted or with exponent).
	FloatLit
	// CharLit represents a single-quoted char literal.
	CharLit
	// StringLit represents a double-quoted string literal.
	StringLit

	// KwIf represents the 'if' keyword.
	KwIf
	// KwElse represents the 'else' keyword.
	KwElse
	// KwWhile represents the 'while' keyword.
	KwWhile
	// KwGoto represents the 'goto' keyword.
	KwGoto
	// KwWrite represents the 'write' keyword.
	KwWrite
	// KwRead represents the 'read' keyword.
	KwRead
	// KwTrue represents the 'true' keyword.
	KwTrue
	// KwFalse represents the 'false' keyword.
	KwFalse

	Assign        // =
	Plus          // +
	Minus         // -
	Star          // *
	Slash         // /
	Percent       // %
	LBrace        // {
	RBrace        // }
	Bang          // !
	Semicolon     // ;
	LParen        // (
	RParen        // )
	Lt            // <
	Gt            // >
	Colon         // :
	PlusAssign    // +=
	MinusAssign   // -=
	StarAssign    // *=
	SlashAssign   // /=
	PercentAssign // %=
	GtEq          // >=
	LtEq          // <=
	EqEq          // ==
	BangEq        // !=
	AndAnd        // &&
	OrOr          // ||

	kindCount
)

var kindNames = [kindCount]string{
	Invalid:       "Invalid",
	EOF:           "EOF",
	Ident:         "Ident",
	IntLit:        "IntLit",
	FloatLit:      "FloatLit",
	CharLit:       "CharLit",
	StringLit:     "StringLit",
	KwIf:          "KwIf",
	KwElse:        "KwElse",
	KwWhile:       "KwWhile",
	KwGoto:        "KwGoto",
	KwWrite:       "KwWrite",
	KwRead:        "KwRead",
	KwTrue:        "KwTrue",
	KwFalse:       "KwFalse",
	Assign:        "Assign",
	Plus:          "Plus",
	Minus:         "Minus",
	Star:          "Star",
	Slash:         "Slash",
	Percent:       "Percent",
	LBrace:        "LBrace",
	RBrace:        "RBrace",
	Bang:          "Bang",
	Semicolon:     "Semicolon",
	LParen:        "LParen",
	RParen:        "RParen",
	Lt:            "Lt",
	Gt:            "Gt",
	Colon:         "Colon",
	PlusAssign:    "PlusAssign",
	MinusAssign:   "MinusAssign",
	StarAssign:    "StarAssign",
	SlashAssign:   "SlashAssign",
	PercentAssign: "PercentAssign",
	GtEq:          "GtEq",
	LtEq:          "LtEq",
	EqEq:          "EqEq",
	BangEq:        "BangEq",
	AndAnd:        "AndAnd",
	OrOr:          "OrOr",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Unknown"
}
