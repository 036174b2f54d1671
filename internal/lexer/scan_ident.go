package lexer

import (
	"tokiwen/internal/diag"
	"tokiwen/internal/token"
)

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	// Быстрый ASCII-путь
	if b := lx.cursor.Peek(); b < utf8RuneSelf {
		lx.cursor.Bump()
		for !lx.cursor.EOF() {
			b = lx.cursor.Peek()
			if b < utf8RuneSelf {
				if !isIdentContinueByte(b) {
					break
				}
				lx.cursor.Bump()
				continue
			}
			r, size := lx.peekRune()
			if !isIdentContinueRune(r) {
				break
			}
			lx.cursor.Advance(size)
		}
	} else {
		r, size := lx.peekRune()
		if !isIdentStartRune(r) {
			lx.cursor.Advance(max(size, 1))
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnknownChar, sp, "unknown character "+lx.text(sp))
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
		}
		lx.cursor.Advance(size)
		for !lx.cursor.EOF() {
			r, size = lx.peekRune()
			if !isIdentContinueRune(r) {
				break
			}
			lx.cursor.Advance(size)
		}
	}

	sp := lx.cursor.SpanFrom(start)
	lex := lx.text(sp)
	if k, ok := lx.opts.Keywords.Lookup(lex); ok {
		return token.Token{Kind: k, Span: sp, Text: lex}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: lex}
}
