package fuzztests

import (
	"errors"
	"slices"
	"testing"
	"time"

	"tokiwen/internal/compiler"
	"tokiwen/internal/diag"
	"tokiwen/internal/parser"
	"tokiwen/internal/source"
	"tokiwen/internal/symbols"
	"tokiwen/internal/testkit"
)

// pipelineTimeout bounds one input; exceeding it means a loop in error
// handling or label resolution.
const pipelineTimeout = 5 * time.Second

func FuzzPipeline(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clamp(input)

		done := make(chan struct{})
		var failure string
		go func() {
			defer close(done)
			failure = runPipeline(input)
		}()

		select {
		case <-done:
			if failure != "" {
				t.Fatal(failure)
			}
		case <-time.After(pipelineTimeout):
			t.Fatalf("pipeline hung on %d bytes of input", len(input))
		}
	})
}

// runPipeline returns a description of the first broken invariant, or "".
func runPipeline(input []byte) string {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("fuzz.tkw", input))

	bag := diag.NewBag(16)
	table := symbols.NewTable(symbols.Hints{})
	tree, err := parser.ParseFile(file, table, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if err != nil {
		if tree != nil {
			return "parser returned a tree together with an error"
		}
		return ""
	}
	if err := testkit.CheckTreeInvariants(tree, file); err != nil {
		return "tree invariant: " + err.Error()
	}

	prog, err := compiler.Compile(tree, table, compiler.Options{Files: fs})
	if err != nil {
		var le *compiler.LabelError
		var ce *compiler.ConversionError
		if errors.As(err, &le) || errors.As(err, &ce) {
			return ""
		}
		return "compile: " + err.Error()
	}
	if len(prog.Metadata.SourceLines) != len(prog.Code) {
		return "one source line per instruction"
	}
	if !slices.IsSorted(prog.Metadata.StatementBoundaries) {
		return "statement boundaries out of order"
	}
	for _, b := range prog.Metadata.StatementBoundaries {
		if b > uint64(len(prog.Code)) {
			return "statement boundary past the end of code"
		}
	}
	return ""
}
