package buildpipeline

import (
	"fmt"
	"time"
)

// Stage describes a high-level pipeline phase.
type Stage string

const (
	// StageParse covers scanning and parsing.
	StageParse Stage = "parse"
	// StageCompile is code generation.
	StageCompile Stage = "compile"
	// StageEmit writes outputs to disk.
	StageEmit Stage = "emit"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the task is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the task is currently working.
	StatusWorking Status = "working"
	// StatusCached indicates the result came from the compile cache.
	StatusCached Status = "cached"
	// StatusDone indicates the task is done.
	StatusDone Status = "done"
	// StatusError indicates the task encountered an error.
	StatusError Status = "error"
)

// Event reports progress for a file (or for the overall pipeline when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// Format selects what Emit writes for each program.
type Format string

const (
	// FormatObject is the msgpack object file read back by disasm.
	FormatObject Format = "object"
	// FormatBinary is the bare encoded code segment.
	FormatBinary Format = "binary"
	// FormatListing is the human readable listing.
	FormatListing Format = "listing"
	// FormatJSON is the JSON export for the editor.
	FormatJSON Format = "json"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatObject, FormatBinary, FormatListing, FormatJSON:
		return f, nil
	case "":
		return FormatObject, nil
	}
	return "", fmt.Errorf("unknown output format %q (expected object, binary, listing or json)", s)
}

// Ext is the file extension used for outputs of this format.
func (f Format) Ext() string {
	switch f {
	case FormatBinary:
		return ".bin"
	case FormatListing:
		return ".lst"
	case FormatJSON:
		return ".json"
	default:
		return ".tko"
	}
}

// Timings holds stage durations.
type Timings struct {
	stages map[Stage]time.Duration
}

func (t *Timings) ensure() {
	if t.stages == nil {
		t.stages = make(map[Stage]time.Duration)
	}
}

// Set stores a duration for the given stage.
func (t *Timings) Set(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	t.ensure()
	t.stages[stage] = dur
}

// Add accumulates dur onto the given stage.
func (t *Timings) Add(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	t.ensure()
	t.stages[stage] += dur
}

// Has reports whether a duration for stage is recorded.
func (t Timings) Has(stage Stage) bool {
	if t.stages == nil {
		return false
	}
	_, ok := t.stages[stage]
	return ok
}

// Duration returns the recorded duration for stage.
func (t Timings) Duration(stage Stage) time.Duration {
	if t.stages == nil {
		return 0
	}
	return t.stages[stage]
}

// Sum returns the sum of durations across the provided stages.
func (t Timings) Sum(stages ...Stage) time.Duration {
	if t.stages == nil {
		return 0
	}
	var total time.Duration
	for _, stage := range stages {
		total += t.stages[stage]
	}
	return total
}
