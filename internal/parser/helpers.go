package parser

import (
	"fmt"

	"tokiwen/internal/diag"
	"tokiwen/internal/source"
	"tokiwen/internal/token"
)

// peekN смотрит на n-й токен вперёд, не потребляя его.
func (p *Parser) peekN(n int) token.Token {
	for len(p.look) <= n {
		p.look = append(p.look, p.lx.Next())
	}
	return p.look[n]
}

func (p *Parser) peek() token.Token { return p.peekN(0) }

func (p *Parser) at(k token.Kind) bool { return p.peek().Kind == k }

// advance съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.peek()
	p.look = p.look[1:]
	if tok.Kind != token.EOF {
		p.lastSpan = tok.Span
	}
	return tok
}

// diagSpan выбирает span для диагностики; на EOF указываем сразу за последним токеном.
func (p *Parser) diagSpan() source.Span {
	tok := p.peek()
	if tok.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return tok.Span
}

// expect ожидает конкретный токен, иначе синтаксическая ошибка.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.unexpected(code, msg)
	return token.Token{Kind: token.Invalid, Span: p.diagSpan()}, false
}

// unexpected reports the token under the cursor. A scanner error wins over
// the grammar's complaint because it is the root cause.
func (p *Parser) unexpected(code diag.Code, msg string) bool {
	if tok := p.peek(); tok.Kind == token.Invalid && p.lexErr.first != nil {
		p.err = p.lexErr.first
		return false
	}
	text := p.peek().Text
	if p.at(token.EOF) {
		text = "end of file"
	}
	return p.fail(&SyntaxError{Code: code, Span: p.diagSpan(), Msg: fmt.Sprintf("%s, got %q", msg, text)})
}

// fail records the first error and reports it. Always returns false so call
// sites can `return nil, p.fail(err)`.
func (p *Parser) fail(err error) bool {
	if p.err != nil {
		return false
	}
	p.err = err
	if p.opts.Reporter != nil {
		sp, _ := ErrorSpan(err)
		p.opts.Reporter.Report(ErrorCode(err), diag.SevError, sp, err.Error(), nil)
	}
	return false
}
