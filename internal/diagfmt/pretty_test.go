package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"tokiwen/internal/diag"
	"tokiwen/internal/source"
)

func oneDiagnostic(path, content string, start, end uint32) (*diag.Bag, *source.FileSet) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(path, []byte(content))
	bag := diag.NewBag(10)
	d := diag.New(diag.SevError, diag.LexUnterminatedString,
		source.Span{File: fileID, Start: start, End: end}, "Unterminated string literal")
	bag.Add(d.WithNote(source.Span{File: fileID, Start: 0, End: 3}, "declared here"))
	return bag, fs
}

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	bag, fs := oneDiagnostic("/home/user/project/src/test.tkw", "int x;\nwrite \"oops;\n", 13, 19)

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"absolute", PathModeAbsolute, "/home/user/project/src/test.tkw:2:7:"},
		{"relative", PathModeRelative, "src/test.tkw:2:7:"},
		{"basename", PathModeBasename, "test.tkw:2:7:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode, BaseDir: "/home/user/project"})
			output := buf.String()
			if !strings.Contains(output, tt.contains) {
				t.Errorf("expected %q in:\n%s", tt.contains, output)
			}
			for _, want := range []string{"ERROR", "LEX1002", "Unterminated string literal"} {
				if !strings.Contains(output, want) {
					t.Errorf("expected %q in:\n%s", want, output)
				}
			}
		})
	}
}

func TestPrettySnippet(t *testing.T) {
	bag, fs := oneDiagnostic("a.tkw", "int x;\nwrite \"oops;\nwrite x;\n", 13, 19)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1, ShowNotes: true})
	want := strings.Join([]string{
		"a.tkw:2:7: ERROR LEX1002: Unterminated string literal",
		"1 | int x;",
		"2 | write \"oops;",
		"  |       ^~~~~~",
		"3 | write x;",
		"  note: a.tkw:1:1: declared here",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestUnderlineWideCharacters(t *testing.T) {
	// "日本" takes four columns before the marked byte range
	text := "日本 = 1"
	got := underline(text, uint32(len("日本 "))+1, source.LineCol{Line: 1, Col: uint32(len("日本 =")) + 1}, 1)
	if got != "     ^" {
		t.Fatalf("underline = %q", got)
	}
}

func TestPrettyWithoutFile(t *testing.T) {
	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, "failed to load file"))
	var buf bytes.Buffer
	Pretty(&buf, bag, nil, PrettyOpts{})
	if got := buf.String(); got != "ERROR IO5001: failed to load file\n" {
		t.Fatalf("got %q", got)
	}
}
