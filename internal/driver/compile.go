package driver

import (
	"context"
	"errors"
	"fmt"

	"tokiwen/internal/compiler"
	"tokiwen/internal/diag"
	"tokiwen/internal/observ"
	"tokiwen/internal/program"
	"tokiwen/internal/source"
	"tokiwen/internal/token"
	"tokiwen/internal/trace"
)

// Options configure the per-file pipeline.
type Options struct {
	MaxDiagnostics int
	Keywords       *token.KeywordTable // nil means the default spellings
	Immediates     bool
	Jobs           int        // CompileFiles parallelism, <= 0 means GOMAXPROCS
	Cache          *DiskCache // nil disables the compile cache
}

// Unit is one compiled file. On a cache hit AST and Table are nil and only
// Program is filled in.
type Unit struct {
	Path    string
	FileSet *source.FileSet
	File    *source.File
	Parse   *ParseResult
	Program *program.Program
	Bag     *diag.Bag
	Cached  bool
	Timing  observ.Report
}

// Failed reports whether the unit produced no program.
func (u *Unit) Failed() bool { return u.Program == nil || u.Bag.HasErrors() }

// CompileFile runs tokenize, parse and compile over one file. The returned
// error is only for files that could not be read; everything else is a
// diagnostic in Unit.Bag.
func CompileFile(ctx context.Context, path string, opts Options) (*Unit, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return compileLoaded(ctx, fs, fs.Get(fileID), opts), nil
}

// CompileSource compiles in-memory source under a display name.
func CompileSource(ctx context.Context, name string, src []byte, opts Options) *Unit {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, src)
	return compileLoaded(ctx, fs, fs.Get(id), opts)
}

func compileLoaded(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) *Unit {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeFile, file.Path, 0)
	timer := observ.NewTimer()

	unit := &Unit{
		Path:    file.Path,
		FileSet: fs,
		File:    file,
		Bag:     diag.NewBag(opts.MaxDiagnostics),
	}
	defer func() {
		unit.Timing = timer.Report()
		switch {
		case unit.Cached:
			span.End("cached")
		case unit.Failed():
			span.End("failed")
		default:
			span.End(fmt.Sprintf("%d instructions", len(unit.Program.Code)))
		}
	}()

	key := cacheKey(file, opts)
	if opts.Cache != nil {
		done := timer.Begin("cache")
		prog, ok, err := opts.Cache.Get(key)
		switch {
		case err != nil:
			diag.ReportWarning(diag.BagReporter{Bag: unit.Bag}, diag.IOCacheError, source.Span{},
				fmt.Sprintf("compile cache: %v", err)).Emit()
			done("error")
		case ok:
			trace.Point(tracer, trace.ScopeFile, "cache_hit", file.Path, span.ID())
			unit.Program = prog
			unit.Cached = true
			done("hit")
			return unit
		default:
			done("miss")
		}
	}

	done := timer.Begin("parse")
	unit.Parse = parseLoaded(fs, file, unit.Bag, opts.Keywords, tracer)
	done("")
	if unit.Parse.Failed() {
		return unit
	}

	done = timer.Begin("compile")
	prog, err := compiler.Compile(unit.Parse.AST, unit.Parse.Table, compiler.Options{
		Immediates: opts.Immediates,
		Files:      fs,
		Tracer:     tracer,
	})
	done("")
	if err != nil {
		unit.Bag.Add(compileDiagnostic(err))
		return unit
	}
	unit.Program = prog

	if opts.Cache != nil {
		if err := opts.Cache.Put(key, file.Path, prog); err != nil {
			diag.ReportWarning(diag.BagReporter{Bag: unit.Bag}, diag.IOCacheError, source.Span{},
				fmt.Sprintf("compile cache: %v", err)).Emit()
		}
	}
	return unit
}

func compileDiagnostic(err error) diag.Diagnostic {
	var le *compiler.LabelError
	if errors.As(err, &le) {
		return diag.NewError(diag.GenUnresolvedLabel, le.Span, le.Error())
	}
	var ce *compiler.ConversionError
	if errors.As(err, &ce) {
		return diag.NewError(diag.GenConversion, ce.Span, ce.Error())
	}
	return diag.NewError(diag.GenInternal, source.Span{}, err.Error())
}
