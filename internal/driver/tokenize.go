package driver

import (
	"tokiwen/internal/diag"
	"tokiwen/internal/lexer"
	"tokiwen/internal/source"
	"tokiwen/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize scans one file. Scanner problems land in Bag; the returned error
// is only for files that could not be read.
func Tokenize(path string, maxDiagnostics int, keywords *token.KeywordTable) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(file, lexer.Options{
		Reporter: diag.BagReporter{Bag: bag},
		Keywords: keywords,
	})

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  lx.All(),
		Bag:     bag,
	}, nil
}
