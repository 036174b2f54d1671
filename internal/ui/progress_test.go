package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"

	"tokiwen/internal/buildpipeline"
)

func newTestModel(files ...string) *progressModel {
	m := NewProgressModel("compile", files, nil).(*progressModel)
	clock := time.Unix(0, 0)
	m.now = func() time.Time {
		clock = clock.Add(2 * time.Millisecond)
		return clock
	}
	return m
}

func TestProgressModelTracksFiles(t *testing.T) {
	m := newTestModel("a.tkw", "b.tkw", "c.tkw")

	m.apply(buildpipeline.Event{File: "a.tkw", Stage: buildpipeline.StageParse, Status: buildpipeline.StatusWorking})
	if got := m.rows[0].label(); got != "parsing" {
		t.Fatalf("label = %q, want parsing", got)
	}
	if got := m.fraction(); got < 0.09 || got > 0.11 {
		t.Fatalf("fraction after one parse = %v", got)
	}

	m.apply(buildpipeline.Event{File: "a.tkw", Stage: buildpipeline.StageCompile, Status: buildpipeline.StatusDone})
	m.apply(buildpipeline.Event{File: "b.tkw", Stage: buildpipeline.StageCompile, Status: buildpipeline.StatusCached})
	m.apply(buildpipeline.Event{File: "c.tkw", Stage: buildpipeline.StageCompile, Status: buildpipeline.StatusError})
	m.apply(buildpipeline.Event{File: "unknown.tkw", Stage: buildpipeline.StageCompile, Status: buildpipeline.StatusDone})

	if got := m.fraction(); got != 1.0 {
		t.Fatalf("fraction = %v, want 1", got)
	}
	if m.rows[0].took != 2*time.Millisecond {
		t.Fatalf("took = %v, want 2ms", m.rows[0].took)
	}
	if c := m.counts(); c != (counts{compiled: 2, cached: 1, failed: 1}) {
		t.Fatalf("counts = %+v", c)
	}
	summary := m.summary()
	if !strings.Contains(summary, "2/3 compiled") || !strings.Contains(summary, "1 from cache") || !strings.Contains(summary, "1 failed") {
		t.Fatalf("unexpected summary %q", summary)
	}
}

func TestProgressModelPhase(t *testing.T) {
	m := newTestModel("a.tkw")
	m.apply(buildpipeline.Event{Stage: buildpipeline.StageEmit, Status: buildpipeline.StatusWorking})
	if m.phase != "writing" {
		t.Fatalf("phase = %q", m.phase)
	}
	view := m.View()
	if !strings.Contains(view, "compile · writing") || !strings.Contains(view, "a.tkw") || !strings.Contains(view, "queued") {
		t.Fatalf("view missing header or file:\n%s", view)
	}

	m.done = true
	if view := m.View(); strings.Contains(view, "writing") {
		t.Fatalf("finished view still shows the phase:\n%s", view)
	}
}

func TestTruncate(t *testing.T) {
	for _, value := range []string{"abcdefghijklmnop", "短い名前です短い名前です"} {
		got := truncate(value, 10)
		if runewidth.StringWidth(got) > 10 || !strings.HasSuffix(got, "...") {
			t.Fatalf("truncate(%q) = %q", value, got)
		}
		if !strings.HasPrefix(value, strings.TrimSuffix(got, "...")) {
			t.Fatalf("truncate(%q) = %q is not a prefix", value, got)
		}
	}
	if got := truncate("ok", 10); got != "ok" {
		t.Fatalf("short strings stay: %q", got)
	}
}
