package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"tokiwen/internal/diag"
	"tokiwen/internal/source"
)

// TestJSONBasic проверяет базовое JSON форматирование
func TestJSONBasic(t *testing.T) {
	bag, fs := oneDiagnostic("dir/test.tkw", "int x;\nwrite \"oops;\n", 13, 19)

	var buf bytes.Buffer
	opts := JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
		IncludeNotes:     true,
	}
	if err := JSON(&buf, bag, fs, opts); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, buf.String())
	}
	if output.Count != 1 || len(output.Diagnostics) != 1 {
		t.Fatalf("expected one diagnostic, got %+v", output)
	}
	d := output.Diagnostics[0]
	if d.Severity != "ERROR" || d.Code != "LEX1002" {
		t.Errorf("unexpected severity/code: %s %s", d.Severity, d.Code)
	}
	want := LocationJSON{File: "test.tkw", StartByte: 13, EndByte: 19, StartLine: 2, StartCol: 7, EndLine: 2, EndCol: 13}
	if d.Location != want {
		t.Errorf("location = %+v, want %+v", d.Location, want)
	}
	if len(d.Notes) != 1 || d.Notes[0].Message != "declared here" {
		t.Errorf("notes = %+v", d.Notes)
	}
}

func TestJSONMax(t *testing.T) {
	bag := diag.NewBag(10)
	for range 3 {
		bag.Add(diag.NewError(diag.GenInternal, source.Span{}, "boom"))
	}
	out := BuildDiagnosticsOutput(bag, nil, JSONOpts{Max: 2})
	if out.Count != 2 || !out.Truncated || out.Errors != 2 {
		t.Fatalf("unexpected output: %+v", out)
	}
	if out.Diagnostics[0].Location.File != "" {
		t.Fatalf("diagnostic without a file should have an empty path")
	}
}

func TestCollectAcrossSources(t *testing.T) {
	first, fs1 := oneDiagnostic("a.tkw", "write \"x;\n", 6, 9)
	second := diag.NewBag(10)
	fs2 := source.NewFileSet()
	id := fs2.AddVirtual("b.tkw", []byte("int a;\n"))
	second.Add(diag.New(diag.SevWarning, diag.PrjUnknownKey, source.Span{File: id, Start: 4, End: 5}, "unused"))

	out := Collect([]Source{{Bag: first, Files: fs1}, {Bag: nil}, {Bag: second, Files: fs2}}, JSONOpts{PathMode: PathModeBasename})
	if out.Count != 2 || out.Errors != 1 || out.Warnings != 1 || out.Truncated {
		t.Fatalf("unexpected totals: %+v", out)
	}
	if out.Diagnostics[0].Location.File != "a.tkw" || out.Diagnostics[1].Location.File != "b.tkw" {
		t.Fatalf("diagnostics out of source order: %+v", out.Diagnostics)
	}
	if out.Diagnostics[1].Location.StartLine != 0 {
		t.Fatalf("positions were not requested")
	}

	capped := Collect([]Source{{Bag: first, Files: fs1}, {Bag: second, Files: fs2}}, JSONOpts{Max: 1})
	if capped.Count != 1 || !capped.Truncated {
		t.Fatalf("Max not applied across sources: %+v", capped)
	}
}
