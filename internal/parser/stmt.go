package parser

import (
	"fmt"

	"tokiwen/internal/ast"
	"tokiwen/internal/coerce"
	"tokiwen/internal/diag"
	"tokiwen/internal/source"
	"tokiwen/internal/token"
	"tokiwen/internal/trace"
)

// parseStmtList читает элементы до end и собирает правостороннюю цепочку
// Sequence, которая всегда заканчивается Noop.
func (p *Parser) parseStmtList(end token.Kind) (*ast.Node, bool) {
	var items []*ast.Node
	for !p.at(end) {
		if p.at(token.EOF) {
			return nil, p.unexpected(diag.SynUnclosedBrace, "expected '}' to close block")
		}
		item, ok := p.parseItem()
		if !ok {
			return nil, false
		}
		items = append(items, item)
	}

	list := ast.NewNoop(p.diagSpan())
	for i := len(items) - 1; i >= 0; i-- {
		list = ast.NewSequence(items[i], list, items[i].Span.Cover(list.Span))
	}
	return list, true
}

// parseItem: метка, блок или оператор. Метки и блоки в Statement не оборачиваются.
func (p *Parser) parseItem() (*ast.Node, bool) {
	switch {
	case p.at(token.Ident) && p.peekN(1).Kind == token.Colon:
		return p.parseLabel()
	case p.at(token.LBrace):
		return p.parseBlock()
	default:
		return p.parseStatement()
	}
}

func (p *Parser) parseLabel() (*ast.Node, bool) {
	name := p.advance()
	colon := p.advance()
	if _, dup := p.labels[name.Text]; dup {
		return nil, p.fail(&SyntaxError{
			Code: diag.SemaLabelRedeclared,
			Span: name.Span,
			Msg:  fmt.Sprintf("Label `%s` already declared.", name.Text),
		})
	}
	p.labels[name.Text] = name.Span
	return ast.NewLabel(name.Text, name.Span.Cover(colon.Span)), true
}

func (p *Parser) parseBlock() (*ast.Node, bool) {
	open := p.advance()
	scope := p.pushScope(open.Span)
	body, ok := p.parseStmtList(token.RBrace)
	if !ok {
		return nil, false
	}
	closeTok, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close block")
	if !ok {
		return nil, false
	}
	p.popScope()
	span := open.Span.Cover(closeTok.Span)
	p.table.Scope(scope).Span = span
	return ast.NewBlock(scope, body, span), true
}

// parseBody разбирает тело if/while: блок или одиночный оператор.
func (p *Parser) parseBody() (*ast.Node, bool) {
	if p.at(token.LBrace) {
		return p.parseBlock()
	}
	return p.parseStatement()
}

// parseStatement returns the construct wrapped in a Statement boundary.
func (p *Parser) parseStatement() (*ast.Node, bool) {
	tok := p.peek()
	sp := trace.Begin(p.opts.Tracer, trace.ScopeNode, "stmt", 0).WithExtra("token", tok.Kind.String())

	var (
		n  *ast.Node
		ok bool
	)
	switch tok.Kind {
	case token.Semicolon:
		p.advance()
		n, ok = ast.NewNoop(tok.Span), true
	case token.KwIf:
		n, ok = p.parseIf()
	case token.KwWhile:
		n, ok = p.parseWhile()
	case token.KwGoto:
		n, ok = p.parseGoto()
	case token.KwWrite:
		n, ok = p.parseWrite()
	case token.KwRead:
		n, ok = p.parseRead()
	case token.Ident:
		if p.peekN(1).Kind == token.Ident {
			n, ok = p.parseDeclaration()
			break
		}
		n, ok = p.parseExprStmt()
	default:
		n, ok = p.parseExprStmt()
	}
	if !ok {
		sp.End("error")
		return nil, false
	}
	sp.End(n.Kind.String())
	return ast.NewStatement(n, n.Span), true
}

func (p *Parser) expectSemicolon() bool {
	_, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';'")
	return ok
}

func (p *Parser) parseExprStmt() (*ast.Node, bool) {
	expr, ok := p.parseExpr()
	if !ok || !p.expectSemicolon() {
		return nil, false
	}
	return expr, true
}

// parseDeclaration: `type name;` или `type name = expr;`
func (p *Parser) parseDeclaration() (*ast.Node, bool) {
	typeTok := p.advance()
	nameTok := p.advance()

	if p.at(token.Assign) {
		p.advance()
		value, ok := p.parseExpr()
		if !ok || !p.expectSemicolon() {
			return nil, false
		}
		n, err := p.DeclareAssignVar(typeTok.Text, typeTok.Span, nameTok.Text, nameTok.Span, value)
		if err != nil {
			return nil, p.fail(err)
		}
		return n, true
	}

	if !p.expectSemicolon() {
		return nil, false
	}
	n, err := p.DeclareVar(typeTok.Text, typeTok.Span, nameTok.Text, nameTok.Span)
	if err != nil {
		return nil, p.fail(err)
	}
	return n, true
}

// parseCondition: `( expr )`
func (p *Parser) parseCondition() (*ast.Node, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '('"); !ok {
		return nil, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'"); !ok {
		return nil, false
	}
	return cond, true
}

// parseIf: висячий else достаётся ближайшему if.
func (p *Parser) parseIf() (*ast.Node, bool) {
	kw := p.advance()
	cond, ok := p.parseCondition()
	if !ok {
		return nil, false
	}
	then, ok := p.parseBody()
	if !ok {
		return nil, false
	}
	els := ast.NewNoop(p.diagSpan())
	if p.at(token.KwElse) {
		p.advance()
		if els, ok = p.parseBody(); !ok {
			return nil, false
		}
	}
	n, err := coerce.Conditional(cond, then, els, kw.Span.Cover(p.lastSpan))
	if err != nil {
		return nil, p.fail(err)
	}
	return n, true
}

func (p *Parser) parseWhile() (*ast.Node, bool) {
	kw := p.advance()
	cond, ok := p.parseCondition()
	if !ok {
		return nil, false
	}
	body, ok := p.parseBody()
	if !ok {
		return nil, false
	}
	n, err := coerce.While(cond, body, kw.Span.Cover(p.lastSpan))
	if err != nil {
		return nil, p.fail(err)
	}
	return n, true
}

// parseGoto: метка может быть объявлена ниже, проверяет компилятор.
func (p *Parser) parseGoto() (*ast.Node, bool) {
	kw := p.advance()
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected label name after 'goto'")
	if !ok || !p.expectSemicolon() {
		return nil, false
	}
	return ast.NewGoto(name.Text, kw.Span.Cover(name.Span)), true
}

func (p *Parser) parseWrite() (*ast.Node, bool) {
	kw := p.advance()
	expr, ok := p.parseExpr()
	if !ok || !p.expectSemicolon() {
		return nil, false
	}
	return ast.NewWrite(expr, kw.Span.Cover(expr.Span)), true
}

func (p *Parser) parseRead() (*ast.Node, bool) {
	kw := p.advance()
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected variable name after 'read'")
	if !ok || !p.expectSemicolon() {
		return nil, false
	}
	target, err := p.UseVar(name.Text, name.Span)
	if err != nil {
		return nil, p.fail(err)
	}
	return ast.NewRead(target, kw.Span.Cover(name.Span)), true
}

func spanOf(nodes ...*ast.Node) source.Span {
	sp := nodes[0].Span
	for _, n := range nodes[1:] {
		sp = sp.Cover(n.Span)
	}
	return sp
}
