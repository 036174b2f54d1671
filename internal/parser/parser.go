package parser

import (
	"tokiwen/internal/ast"
	"tokiwen/internal/diag"
	"tokiwen/internal/lexer"
	"tokiwen/internal/source"
	"tokiwen/internal/symbols"
	"tokiwen/internal/token"
	"tokiwen/internal/trace"
)

type Options struct {
	Reporter diag.Reporter       // может быть nil
	Keywords *token.KeywordTable // nil means the default spellings
	Tracer   trace.Tracer        // node-level spans for every statement
}

// Parser хранит состояние парсера на один файл. Разбор останавливается на первой ошибке.
type Parser struct {
	lx       *lexer.Lexer
	lexErr   *lexCapture
	file     *source.File
	table    *symbols.Table
	scope    symbols.ScopeID
	labels   map[string]source.Span
	opts     Options
	look     []token.Token // буфер предпросмотра, нужен для `name:` и `type name`
	lastSpan source.Span
	err      error
}

// NewParser prepares a parser over file. Declarations go into table, starting at
// its root scope, so callers may pre-seed the root before parsing.
func NewParser(file *source.File, table *symbols.Table, opts Options) *Parser {
	capture := &lexCapture{next: opts.Reporter}
	return &Parser{
		lx:     lexer.New(file, lexer.Options{Reporter: capture, Keywords: opts.Keywords}),
		lexErr: capture,
		file:   file,
		table:  table,
		scope:  table.Root(),
		labels: make(map[string]source.Span),
		opts:   opts,
	}
}

// ParseFile parses file into table in one go.
func ParseFile(file *source.File, table *symbols.Table, opts Options) (*ast.Node, error) {
	return NewParser(file, table, opts).Parse()
}

// Table exposes the symbol table the parser declares into.
func (p *Parser) Table() *symbols.Table { return p.table }

// Parse builds the typed tree for the whole file. The root is a Block bound to
// the table's root scope.
func (p *Parser) Parse() (*ast.Node, error) {
	span := trace.Begin(p.opts.Tracer, trace.ScopePass, "parse", 0)
	defer span.End("")

	start := p.peek().Span
	body, ok := p.parseStmtList(token.EOF)
	if !ok {
		span.WithExtra("error", p.err.Error())
		return nil, p.err
	}
	return ast.NewBlock(p.table.Root(), body, start.Cover(p.lastSpan)), nil
}

// lexCapture remembers the first scanner error so the parser can surface it
// instead of a generic "unexpected token".
type lexCapture struct {
	next  diag.Reporter
	first *SyntaxError
}

func (c *lexCapture) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	if sev >= diag.SevError && c.first == nil {
		c.first = &SyntaxError{Code: code, Span: primary, Msg: msg}
	}
	if c.next != nil {
		c.next.Report(code, sev, primary, msg, notes)
	}
}
