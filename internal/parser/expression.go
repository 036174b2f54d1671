package parser

import (
	"tokiwen/internal/ast"
	"tokiwen/internal/coerce"
	"tokiwen/internal/diag"
	"tokiwen/internal/literal"
	"tokiwen/internal/source"
	"tokiwen/internal/token"
)

// parseExpr - главная точка входа для парсинга выражений
func (p *Parser) parseExpr() (*ast.Node, bool) {
	return p.parseBinaryExpr(precAssignment)
}

// parseBinaryExpr реализует Pratt parsing для бинарных операторов
// minPrec - минимальный приоритет для текущего уровня
func (p *Parser) parseBinaryExpr(minPrec int) (*ast.Node, bool) {
	left, ok := p.parseUnaryExpr()
	if !ok {
		return nil, false
	}

	for {
		op, prec, rightAssoc := binaryOp(p.peek().Kind)
		if prec < minPrec {
			return left, true
		}
		opTok := p.advance()

		if op.IsAssignment() && left.Kind != ast.KindVarIdentifier {
			return nil, p.fail(&SyntaxError{
				Code: diag.SynNotAssignable,
				Span: opTok.Span,
				Msg:  "left side of '" + opTok.Text + "' must be a variable",
			})
		}

		nextMinPrec := prec + 1
		if rightAssoc {
			nextMinPrec = prec
		}
		right, ok := p.parseBinaryExpr(nextMinPrec)
		if !ok {
			return nil, false
		}

		n, err := coerce.Binary(op, left, right, spanOf(left, right))
		if err != nil {
			return nil, p.fail(err)
		}
		left = n
	}
}

// parseUnaryExpr обрабатывает префиксы + - ! (применяются справа налево)
func (p *Parser) parseUnaryExpr() (*ast.Node, bool) {
	type prefixOp struct {
		op   ast.Kind
		span source.Span
	}
	var prefixes []prefixOp
	for {
		op, ok := unaryOp(p.peek().Kind)
		if !ok {
			break
		}
		prefixes = append(prefixes, prefixOp{op: op, span: p.advance().Span})
	}

	expr, ok := p.parsePrimaryExpr()
	if !ok {
		return nil, false
	}
	for i := len(prefixes) - 1; i >= 0; i-- {
		expr = ast.NewUnary(prefixes[i].op, expr, prefixes[i].span.Cover(expr.Span))
	}
	return expr, true
}

func (p *Parser) parsePrimaryExpr() (*ast.Node, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.Ident:
		p.advance()
		n, err := p.UseVar(tok.Text, tok.Span)
		if err != nil {
			return nil, p.fail(err)
		}
		return n, true
	case token.LParen:
		p.advance()
		inner, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'"); !ok {
			return nil, false
		}
		return inner, true
	case token.KwTrue, token.KwFalse:
		p.advance()
		return ast.NewBooleanLiteral(tok.Kind == token.KwTrue, tok.Span), true
	case token.IntLit, token.FloatLit, token.CharLit, token.StringLit:
		p.advance()
		return p.parseLiteral(tok)
	}
	return nil, p.unexpected(diag.SynExpectExpression, "expected expression")
}

func (p *Parser) parseLiteral(tok token.Token) (*ast.Node, bool) {
	var (
		n   *ast.Node
		err error
	)
	switch tok.Kind {
	case token.IntLit:
		var v int64
		if v, err = literal.ParseInt(tok.Text); err == nil {
			n = ast.NewIntLiteral(v, tok.Span)
		}
	case token.FloatLit:
		var v float64
		if v, err = literal.ParseFloat(tok.Text); err == nil {
			n = ast.NewFloatLiteral(v, tok.Span)
		}
	case token.CharLit:
		var v byte
		if v, err = literal.ParseChar(tok.Text); err == nil {
			n = ast.NewCharLiteral(v, tok.Span)
		}
	case token.StringLit:
		var v string
		if v, err = literal.ParseString(tok.Text); err == nil {
			n = ast.NewStringLiteral(v, tok.Span)
		}
	}
	if err != nil {
		return nil, p.fail(&SyntaxError{Code: diag.SynBadLiteral, Span: tok.Span, Msg: err.Error()})
	}
	return n, true
}
