// Package buildpipeline runs the compile command: parallel per-file
// compiles with progress events, then output writing.
package buildpipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tokiwen/internal/driver"
)

// ErrCompileFailed is returned when at least one unit has errors.
var ErrCompileFailed = errors.New("compilation failed")

// CompileRequest configures the shared compilation pipeline.
type CompileRequest struct {
	Files    []string
	BaseDir  string // progress and output paths are shown relative to it
	Options  driver.Options
	Progress ProgressSink
}

// CompileResult captures compiled units and stage timings.
type CompileResult struct {
	Units   []*driver.Unit
	Display []string
	Timings Timings
}

// Failed counts units with errors.
func (r CompileResult) Failed() int {
	n := 0
	for _, u := range r.Units {
		if u == nil || u.Failed() {
			n++
		}
	}
	return n
}

// Compile runs every file through the driver. A unit with errors does not
// stop the others; the caller gets ErrCompileFailed after all of them ran.
func Compile(ctx context.Context, req *CompileRequest) (CompileResult, error) {
	var result CompileResult
	if ctx == nil {
		ctx = context.Background()
	}
	if req == nil {
		return result, fmt.Errorf("missing compile request")
	}
	if len(req.Files) == 0 {
		return result, fmt.Errorf("no source files")
	}

	result.Display = DisplayPaths(req.Files, req.BaseDir)
	emitQueued(req.Progress, result.Display)
	emitStage(req.Progress, StageCompile, StatusWorking, nil, 0)

	started := time.Now()
	units, err := driver.CompileFiles(ctx, req.Files, req.Options, func(ev driver.FileEvent) {
		if req.Progress == nil {
			return
		}
		name := result.Display[ev.Index]
		if !ev.Done {
			req.Progress.OnEvent(Event{File: name, Stage: StageParse, Status: StatusWorking})
			return
		}
		status := StatusDone
		switch {
		case ev.Unit.Failed():
			status = StatusError
		case ev.Unit.Cached:
			status = StatusCached
		}
		req.Progress.OnEvent(Event{File: name, Stage: StageCompile, Status: status})
	})
	result.Units = units
	elapsed := time.Since(started)
	if err != nil {
		emitStage(req.Progress, StageCompile, StatusError, err, elapsed)
		return result, err
	}
	recordUnitTimings(&result)
	result.Timings.Set(StageCompile, elapsed)

	if n := result.Failed(); n > 0 {
		err = fmt.Errorf("%w: %d of %d files", ErrCompileFailed, n, len(units))
		emitStage(req.Progress, StageCompile, StatusError, err, elapsed)
		return result, err
	}
	emitStage(req.Progress, StageCompile, StatusDone, nil, elapsed)
	return result, nil
}

// recordUnitTimings sums the per-file parse phases. Files run in parallel, so
// the sum may exceed wall time.
func recordUnitTimings(result *CompileResult) {
	for _, u := range result.Units {
		if u == nil {
			continue
		}
		for _, p := range u.Timing.Phases {
			if p.Name == "parse" {
				result.Timings.Add(StageParse, durationFromMillis(p.DurationMS))
			}
		}
	}
}

func durationFromMillis(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}
