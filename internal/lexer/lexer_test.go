package lexer_test

import (
	"strings"
	"testing"

	"tokiwen/internal/diag"
	"tokiwen/internal/lexer"
	"tokiwen/internal/source"
	"tokiwen/internal/token"
)

type testReporter struct {
	messages []string
	codes    []diag.Code
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.messages = append(r.messages, msg)
	r.codes = append(r.codes, code)
}

func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.tkw", []byte(input))
	file := fs.Get(fileID)
	reporter := &testReporter{}
	opts := lexer.Options{Reporter: reporter}
	return lexer.New(file, opts), reporter
}

func collectAllTokens(lx *lexer.Lexer) []token.Token {
	var tokens []token.Token
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			break
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = tok.Kind.String() + "(" + tok.Text + ")"
	}
	return strings.Join(parts, " ")
}

func expectTokens(t *testing.T, input string, expected []token.Kind) {
	t.Helper()
	lx, reporter := makeTestLexer(input)
	tokens := collectAllTokens(lx)
	if len(reporter.messages) > 0 {
		t.Fatalf("unexpected errors for %q: %v", input, reporter.messages)
	}
	if len(tokens) != len(expected) {
		t.Fatalf("token count mismatch for %q: got %d, want %d\n%s", input, len(tokens), len(expected), tokensToString(tokens))
	}
	for i, tok := range tokens {
		if tok.Kind != expected[i] {
			t.Errorf("token %d of %q: got %v, want %v", i, input, tok.Kind, expected[i])
		}
	}
}

func expectSingleToken(t *testing.T, input string, kind token.Kind, text string) {
	t.Helper()
	lx, reporter := makeTestLexer(input)
	tok := lx.Next()
	if len(reporter.messages) > 0 {
		t.Fatalf("unexpected errors for %q: %v", input, reporter.messages)
	}
	if tok.Kind != kind || tok.Text != text {
		t.Fatalf("for %q: got %v(%q), want %v(%q)", input, tok.Kind, tok.Text, kind, text)
	}
	if next := lx.Next(); next.Kind != token.EOF {
		t.Fatalf("for %q: trailing token %v", input, next.Kind)
	}
}

func expectError(t *testing.T, input string, code diag.Code) {
	t.Helper()
	lx, reporter := makeTestLexer(input)
	_ = collectAllTokens(lx)
	for _, c := range reporter.codes {
		if c == code {
			return
		}
	}
	t.Fatalf("for %q: expected %s, got %v", input, code.ID(), reporter.messages)
}

func TestOperators(t *testing.T) {
	expectTokens(t, "= + - * / % { } ! ; ( ) < > :", []token.Kind{
		token.Assign, token.Plus, token.Minus, token.Star, token.Slash, token.Percent,
		token.LBrace, token.RBrace, token.Bang, token.Semicolon, token.LParen, token.RParen,
		token.Lt, token.Gt, token.Colon,
	})
	expectTokens(t, "+= -= *= /= %= >= <= == != && ||", []token.Kind{
		token.PlusAssign, token.MinusAssign, token.StarAssign, token.SlashAssign, token.PercentAssign,
		token.GtEq, token.LtEq, token.EqEq, token.BangEq, token.AndAnd, token.OrOr,
	})
	// жадность: "a==b" это три токена, а не четыре
	expectTokens(t, "a==b", []token.Kind{token.Ident, token.EqEq, token.Ident})
	expectTokens(t, "!!x", []token.Kind{token.Bang, token.Bang, token.Ident})
}

func TestNumbers(t *testing.T) {
	expectSingleToken(t, "1024", token.IntLit, "1024")
	expectSingleToken(t, "2.71828", token.FloatLit, "2.71828")
	expectSingleToken(t, "7.3e-3", token.FloatLit, "7.3e-3")
	expectSingleToken(t, "1e1", token.FloatLit, "1e1")
	expectSingleToken(t, ".5", token.FloatLit, ".5")
	expectTokens(t, "x = 1+2;", []token.Kind{token.Ident, token.Assign, token.IntLit, token.Plus, token.IntLit, token.Semicolon})

	expectError(t, "1e", diag.LexBadNumber)
	expectError(t, "12abc", diag.LexBadNumber)
}

func TestIdentifiersAndKeywords(t *testing.T) {
	expectTokens(t, "if else while goto write read true false", []token.Kind{
		token.KwIf, token.KwElse, token.KwWhile, token.KwGoto,
		token.KwWrite, token.KwRead, token.KwTrue, token.KwFalse,
	})
	expectSingleToken(t, "int", token.Ident, "int")
	expectSingleToken(t, "_tmp1", token.Ident, "_tmp1")
	expectSingleToken(t, "ifx", token.Ident, "ifx")
	expectSingleToken(t, "переменная", token.Ident, "переменная")
}

func TestRemappedKeywords(t *testing.T) {
	kt := token.DefaultKeywords()
	if err := kt.Set(token.KwWhile, "mientras"); err != nil {
		t.Fatal(err)
	}
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.tkw", []byte("mientras while")))
	lx := lexer.New(file, lexer.Options{Keywords: kt})
	if a, b := lx.Next(), lx.Next(); a.Kind != token.KwWhile || b.Kind != token.KwWhile {
		t.Fatalf("got %v %v", a.Kind, b.Kind)
	}
}

func TestStringsAndChars(t *testing.T) {
	expectSingleToken(t, `"hello"`, token.StringLit, `"hello"`)
	expectSingleToken(t, `"a\n\t\"b\\"`, token.StringLit, `"a\n\t\"b\\"`)
	expectSingleToken(t, `'a'`, token.CharLit, `'a'`)
	expectSingleToken(t, `'\n'`, token.CharLit, `'\n'`)
	expectSingleToken(t, `'\''`, token.CharLit, `'\''`)

	expectError(t, `"abc`, diag.LexUnterminatedString)
	expectError(t, "\"ab\ncd\"", diag.LexUnterminatedString)
	expectError(t, `"\q"`, diag.LexBadEscape)
	expectError(t, `'ab'`, diag.LexBadChar)
	expectError(t, `''`, diag.LexBadChar)
	expectError(t, `'a`, diag.LexUnterminatedChar)
}

func TestCommentsAndWhitespace(t *testing.T) {
	expectTokens(t, "int x; // комментарий\n\t write x; //", []token.Kind{
		token.Ident, token.Ident, token.Semicolon, token.KwWrite, token.Ident, token.Semicolon,
	})
	expectTokens(t, "x / y", []token.Kind{token.Ident, token.Slash, token.Ident})
}

func TestUnknownChar(t *testing.T) {
	lx, reporter := makeTestLexer("a @ b")
	tokens := collectAllTokens(lx)
	if len(tokens) != 3 || tokens[1].Kind != token.Invalid {
		t.Fatalf("got %s", tokensToString(tokens))
	}
	if len(reporter.codes) != 1 || reporter.codes[0] != diag.LexUnknownChar {
		t.Fatalf("codes: %v", reporter.codes)
	}
}

func TestPeekAndSpans(t *testing.T) {
	lx, _ := makeTestLexer("ab  +=")
	if lx.Peek().Kind != token.Ident {
		t.Fatal("peek must see ident")
	}
	first := lx.Next()
	if first.Span.Start != 0 || first.Span.End != 2 {
		t.Fatalf("ident span %v", first.Span)
	}
	op := lx.Next()
	if op.Kind != token.PlusAssign || op.Span.Start != 4 || op.Span.End != 6 {
		t.Fatalf("op %v span %v", op.Kind, op.Span)
	}
	for range 3 {
		if lx.Next().Kind != token.EOF {
			t.Fatal("EOF must be sticky")
		}
	}
}
