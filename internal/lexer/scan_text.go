package lexer

import (
	"tokiwen/internal/diag"
	"tokiwen/internal/token"
)

func isEscapable(b byte) bool {
	switch b {
	case 'n', 'r', 't', 'v', 'f', '\\', '"', '\'':
		return true
	}
	return false
}

// scanString читает строку в двойных кавычках. Перевод строки внутри запрещён.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // "
	bad := false

	for {
		if lx.cursor.EOF() || lx.cursor.Peek() == '\n' {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
		}
		ch := lx.cursor.Bump()
		if ch == '"' {
			break
		}
		if ch == '\\' {
			escStart := lx.cursor.Mark() - 1
			if e := lx.cursor.Peek(); !isEscapable(e) {
				if e != 0 && e != '\n' {
					lx.cursor.Bump()
				}
				lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(escStart), "unknown escape sequence")
				bad = true
				continue
			}
			lx.cursor.Bump()
		}
	}

	sp := lx.cursor.SpanFrom(start)
	if bad {
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp)}
}

// scanChar читает 'a' или '\n'. Значение символа занимает ровно один байт.
func (lx *Lexer) scanChar() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '

	invalid := func(code diag.Code, msg string) token.Token {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(code, sp, msg)
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}

	ch := lx.cursor.Peek()
	switch {
	case lx.cursor.EOF() || ch == '\n':
		return invalid(diag.LexUnterminatedChar, "unterminated char literal")
	case ch == '\'':
		lx.cursor.Bump()
		return invalid(diag.LexBadChar, "empty char literal")
	case ch == '\\':
		lx.cursor.Bump()
		if !isEscapable(lx.cursor.Peek()) {
			lx.skipToQuote()
			return invalid(diag.LexBadEscape, "unknown escape sequence")
		}
		lx.cursor.Bump()
	case ch >= utf8RuneSelf:
		lx.skipToQuote()
		return invalid(diag.LexBadChar, "char literal must be a single byte")
	default:
		lx.cursor.Bump()
	}

	if !lx.cursor.Eat('\'') {
		if lx.skipToQuote() {
			return invalid(diag.LexBadChar, "char literal holds more than one character")
		}
		return invalid(diag.LexUnterminatedChar, "unterminated char literal")
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.CharLit, Span: sp, Text: lx.text(sp)}
}

// skipToQuote съедает всё до закрывающей кавычки на этой строке.
func (lx *Lexer) skipToQuote() bool {
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '\n':
			return false
		case '\'':
			lx.cursor.Bump()
			return true
		}
		lx.cursor.Bump()
	}
	return false
}
