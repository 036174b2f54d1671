package parser

import (
	"fmt"
	"os"

	"tokiwen/internal/ast"
	"tokiwen/internal/diag"
	"tokiwen/internal/source"
	"tokiwen/internal/symbols"
	"tokiwen/internal/token"
	"tokiwen/internal/trace"
)

// Result is what a Facade parse hands back. On failure AST is nil and
// Message holds the first error prefixed with its position.
type Result struct {
	Success     bool
	Message     string
	AST         *ast.Node
	Table       *symbols.Table
	Err         error
	Diagnostics *diag.Bag
}

// Facade is the one-call entry point: source text in, typed tree out.
type Facade struct {
	files    *source.FileSet
	file     *source.File
	table    *symbols.Table
	keywords *token.KeywordTable
	tracer   trace.Tracer
}

// New wraps src as a virtual file. The symbol table already exists, so
// callers may declare into Table() before calling Parse.
func New(src string) *Facade {
	return NewNamed("input.tkw", []byte(src))
}

// NewNamed is New with a file name for positions in messages.
func NewNamed(name string, src []byte) *Facade {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, src)
	return &Facade{
		files:    fs,
		file:     fs.Get(id),
		table:    symbols.NewTable(symbols.Hints{}),
		keywords: token.DefaultKeywords(),
	}
}

// SetKeyword adds spelling as an alternative for keyword kw.
func (f *Facade) SetKeyword(kw token.Kind, spelling string) error {
	return f.keywords.Set(kw, spelling)
}

// Debug routes statement-level parse tracing to stderr when level > 0.
func (f *Facade) Debug(level int) {
	if level <= 0 {
		f.tracer = nil
		return
	}
	f.tracer = trace.NewStreamTracer(os.Stderr, trace.LevelDebug, trace.FormatText)
}

// SetTracer routes parse tracing to t.
func (f *Facade) SetTracer(t trace.Tracer) { f.tracer = t }

func (f *Facade) Table() *symbols.Table  { return f.table }
func (f *Facade) Files() *source.FileSet { return f.files }
func (f *Facade) File() *source.File     { return f.file }

func (f *Facade) Parse() Result {
	bag := diag.NewBag(16)
	tree, err := ParseFile(f.file, f.table, Options{
		Reporter: diag.BagReporter{Bag: bag},
		Keywords: f.keywords,
		Tracer:   f.tracer,
	})
	if f.tracer != nil {
		_ = f.tracer.Flush()
	}
	res := Result{Table: f.table, Diagnostics: bag}
	if err != nil {
		res.Err = err
		res.Message = err.Error()
		if sp, ok := ErrorSpan(err); ok {
			start, _ := f.files.Resolve(sp)
			res.Message = fmt.Sprintf("%s:%d:%d: %s", f.file.Path, start.Line, start.Col, err.Error())
		}
		return res
	}
	res.Success = true
	res.AST = tree
	return res
}
