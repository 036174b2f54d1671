package lexer

import (
	"tokiwen/internal/diag"
	"tokiwen/internal/token"
)

// scanNumber читает целые и вещественные литералы: 42, 2.71828, .5, 7.3e-3, 1e1.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	isFloat := false

	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	// дробная часть: точка и хотя бы одна цифра после неё
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDec(b1) {
		isFloat = true
		lx.cursor.Bump()
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}

	// экспонента
	if ch := lx.cursor.Peek(); ch == 'e' || ch == 'E' {
		isFloat = true
		lx.cursor.Bump()
		if ch := lx.cursor.Peek(); ch == '+' || ch == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexBadNumber, sp, "expected digit after exponent")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
		}
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}

	// 12abc: буквы сразу после числа
	if isIdentStartByte(lx.cursor.Peek()) {
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadNumber, sp, "invalid number literal "+lx.text(sp))
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}

	sp := lx.cursor.SpanFrom(start)
	kind := token.IntLit
	if isFloat {
		kind = token.FloatLit
	}
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}
