package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"tokiwen/internal/diag"
	"tokiwen/internal/source"
	"tokiwen/internal/trace"
)

// FileEvent reports per-file progress out of CompileFiles.
type FileEvent struct {
	Index int
	Path  string
	Done  bool
	Unit  *Unit // set when Done
}

// CompileFiles compiles every path in parallel. Each file gets its own
// FileSet and symbol table; programs are independent. Results keep the
// order of paths. A file that cannot be read yields a unit with an
// IO diagnostic instead of failing the batch.
func CompileFiles(ctx context.Context, paths []string, opts Options, progress func(FileEvent)) ([]*Unit, error) {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, "compile_files", 0)
	defer span.End("")

	units := make([]*Unit, len(paths))
	if len(paths) == 0 {
		return units, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	for i, path := range paths {
		g.Go(func() error {
			// Проверка отмены
			if err := gctx.Err(); err != nil {
				return err
			}
			if progress != nil {
				progress(FileEvent{Index: i, Path: path})
			}

			unit, err := CompileFile(gctx, path, opts)
			if err != nil {
				unit = &Unit{Path: path, Bag: diag.NewBag(opts.MaxDiagnostics)}
				unit.Bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, "failed to load file: "+err.Error()))
			}
			// индекс i уникален для каждой горутины, мьютекс не нужен
			units[i] = unit

			if progress != nil {
				progress(FileEvent{Index: i, Path: path, Done: true, Unit: unit})
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return units, err
	}
	return units, nil
}
