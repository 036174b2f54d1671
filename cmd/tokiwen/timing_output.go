package main

import (
	"fmt"
	"io"
	"time"

	"tokiwen/internal/buildpipeline"
)

// printStageTimings prints wall time per stage. Parse time is summed over
// files and may exceed the compile wall time.
func printStageTimings(out io.Writer, timings buildpipeline.Timings) {
	if out == nil {
		return
	}
	stages := []struct {
		stage buildpipeline.Stage
		label string
	}{
		{buildpipeline.StageParse, "parsed"},
		{buildpipeline.StageCompile, "compiled"},
		{buildpipeline.StageEmit, "written"},
	}
	for _, s := range stages {
		if !timings.Has(s.stage) {
			continue
		}
		if _, err := fmt.Fprintf(out, "%-8s %.1f ms\n", s.label, toMillis(timings.Duration(s.stage))); err != nil {
			panic(err)
		}
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
