package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestStreamRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)

	pass := Begin(tr, ScopePass, "parse", 0)
	stmt := Begin(tr, ScopeNode, "stmt", pass.ID())
	stmt.End("")
	pass.WithExtra("file", "a.tkw").End("ok")

	out := buf.String()
	if strings.Contains(out, "stmt") {
		t.Fatalf("node span leaked at phase level:\n%s", out)
	}
	if !strings.Contains(out, "→ parse") || !strings.Contains(out, "← parse (ok) {file=a.tkw}") {
		t.Fatalf("missing pass span:\n%s", out)
	}
}

func TestNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	Point(tr, ScopeFile, "cache_hit", "main.tkw", 0)

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if got["kind"] != "point" || got["scope"] != "file" || got["detail"] != "main.tkw" {
		t.Fatalf("unexpected event %v", got)
	}
}

func TestRingKeepsNewest(t *testing.T) {
	r := NewRingTracer(2, LevelError)
	for _, name := range []string{"a", "b", "c"} {
		Begin(r, ScopeNode, name, 0)
	}
	snap := r.Snapshot()
	if len(snap) != 2 || snap[0].Name != "b" || snap[1].Name != "c" {
		t.Fatalf("snapshot = %+v", snap)
	}
}

func TestNewBothExposesRing(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	Begin(tr, ScopePass, "compile", 0).End("")
	ring := RingOf(tr)
	if ring == nil || len(ring.Snapshot()) != 2 {
		t.Fatalf("ring missing or empty: %v", ring)
	}
	if !strings.Contains(buf.String(), "compile") {
		t.Fatalf("stream missing events: %q", buf.String())
	}
}

func TestNilAndDisabledAreInert(t *testing.T) {
	sp := Begin(nil, ScopePass, "x", 0)
	if sp.End("") != 0 || sp.ID() != 0 {
		t.Fatal("nil tracer produced a live span")
	}
	if FromContext(context.Background()) != Nop {
		t.Fatal("empty context should give Nop")
	}
	ctx := WithTracer(context.Background(), nil)
	if FromContext(ctx) != Nop {
		t.Fatal("nil tracer should be stored as Nop")
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
