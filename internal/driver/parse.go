package driver

import (
	"tokiwen/internal/ast"
	"tokiwen/internal/diag"
	"tokiwen/internal/parser"
	"tokiwen/internal/source"
	"tokiwen/internal/symbols"
	"tokiwen/internal/token"
	"tokiwen/internal/trace"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	AST     *ast.Node
	Table   *symbols.Table
	Bag     *diag.Bag
}

// Failed reports whether the file has no usable tree.
func (r *ParseResult) Failed() bool { return r.AST == nil || r.Bag.HasErrors() }

func Parse(path string, maxDiagnostics int, keywords *token.KeywordTable, tracer trace.Tracer) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return parseLoaded(fs, fs.Get(fileID), diag.NewBag(maxDiagnostics), keywords, tracer), nil
}

// parseLoaded parses an already loaded file. The parser stops at the first
// error and reports it to bag, so the tree is nil exactly when bag has one.
func parseLoaded(fs *source.FileSet, file *source.File, bag *diag.Bag, keywords *token.KeywordTable, tracer trace.Tracer) *ParseResult {
	table := symbols.NewTable(symbols.Hints{})
	tree, err := parser.ParseFile(file, table, parser.Options{
		Reporter: diag.BagReporter{Bag: bag},
		Keywords: keywords,
		Tracer:   tracer,
	})
	res := &ParseResult{FileSet: fs, File: file, Table: table, Bag: bag}
	if err != nil {
		// errors that never reached the reporter still need a diagnostic
		if !bag.HasErrors() {
			sp, _ := parser.ErrorSpan(err)
			bag.Add(diag.NewError(parser.ErrorCode(err), sp, err.Error()))
		}
		return res
	}
	res.AST = tree
	return res
}
