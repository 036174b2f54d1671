package buildpipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"tokiwen/internal/driver"
	"tokiwen/internal/program"
)

func TestDisplayPath(t *testing.T) {
	base := t.TempDir()
	if got := DisplayPath(filepath.Join(base, "src", "a.tkw"), base); got != "src/a.tkw" {
		t.Fatalf("DisplayPath = %q", got)
	}
	if got := DisplayPath("x/b.tkw", ""); got != "x/b.tkw" {
		t.Fatalf("DisplayPath without base = %q", got)
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		display string
		format  Format
		want    string
	}{
		{"src/a.tkw", FormatObject, filepath.Join("out", "src", "a.tko")},
		{"main.tkw", FormatListing, filepath.Join("out", "main.lst")},
		{"../up/x.tkw", FormatJSON, filepath.Join("out", "x.json")},
	}
	for _, tt := range tests {
		if got := OutputPath(tt.display, "out", tt.format); got != tt.want {
			t.Errorf("OutputPath(%q) = %q, want %q", tt.display, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat(""); err != nil || f != FormatObject {
		t.Fatalf("empty format should default to object, got %q %v", f, err)
	}
	if _, err := ParseFormat("elf"); err == nil {
		t.Fatalf("unknown format accepted")
	}
}

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) OnEvent(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) last(file string) Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	var st Status
	for _, ev := range r.events {
		if ev.File == file {
			st = ev.Status
		}
	}
	return st
}

func TestCompileAndEmit(t *testing.T) {
	base := t.TempDir()
	good := filepath.Join(base, "good.tkw")
	bad := filepath.Join(base, "bad.tkw")
	if err := os.WriteFile(good, []byte("int a = 1; write a;"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte("goto nowhere;"), 0o644); err != nil {
		t.Fatal(err)
	}

	rec := &recorder{}
	res, err := Compile(context.Background(), &CompileRequest{
		Files:    []string{good, bad},
		BaseDir:  base,
		Options:  driver.Options{MaxDiagnostics: 8},
		Progress: rec,
	})
	if !errors.Is(err, ErrCompileFailed) {
		t.Fatalf("err = %v, want ErrCompileFailed", err)
	}
	if res.Failed() != 1 {
		t.Fatalf("Failed() = %d", res.Failed())
	}
	if rec.last("good.tkw") != StatusDone || rec.last("bad.tkw") != StatusError {
		t.Fatalf("unexpected progress: good=%s bad=%s", rec.last("good.tkw"), rec.last("bad.tkw"))
	}

	outDir := filepath.Join(base, "build")
	outputs, err := Emit(context.Background(), &EmitRequest{Result: &res, OutDir: outDir, Format: FormatObject})
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if len(outputs) != 1 || outputs[0].Path != filepath.Join(outDir, "good.tko") {
		t.Fatalf("outputs = %+v", outputs)
	}
	f, err := os.Open(outputs[0].Path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	prog, err := program.ReadObject(f)
	if err != nil {
		t.Fatalf("ReadObject: %v", err)
	}
	if !prog.Equal(res.Units[0].Program) {
		t.Fatalf("object file does not round trip")
	}
	if !res.Timings.Has(StageEmit) || !res.Timings.Has(StageCompile) {
		t.Fatalf("missing stage timings")
	}
}
