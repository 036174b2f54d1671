package project

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"tokiwen/internal/diag"
	"tokiwen/internal/token"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), "[package]\nname = \"demo\"\n")
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got, ok, err := FindProjectRoot(nested)
	if err != nil || !ok {
		t.Fatalf("FindProjectRoot: ok=%v err=%v", ok, err)
	}
	want, _ := filepath.Abs(root)
	if got != want {
		t.Fatalf("root = %q, want %q", got, want)
	}
}

func TestLoadReportsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestName)
	writeFile(t, path, `
[package]
name = "demo"
colour = "blue"

[build]
sources = ["main.tkw"]
immediates = true
`)
	bag := diag.NewBag(10)
	m, err := Load(path, diag.BagReporter{Bag: bag})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Config.Package.Name != "demo" || !m.Config.Build.Immediates {
		t.Fatalf("unexpected config: %+v", m.Config)
	}
	if m.Config.Build.Format != "object" || m.Config.Build.OutDir != "build" {
		t.Fatalf("defaults not kept: %+v", m.Config.Build)
	}
	items := bag.Items()
	if len(items) != 1 || items[0].Code != diag.PrjUnknownKey {
		t.Fatalf("expected one unknown key warning, got %+v", items)
	}
	if !strings.Contains(items[0].Message, "package.colour") {
		t.Fatalf("warning should name the key: %q", items[0].Message)
	}
	if bag.HasErrors() {
		t.Fatalf("unknown keys must not be errors")
	}
}

func TestLoadRejectsBadManifests(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"missing name", "[build]\nout_dir = \"x\"\n", ErrPackageNameMissing},
		{"bad format", "[package]\nname = \"x\"\n[build]\nformat = \"elf\"\n", ErrUnknownFormat},
		{"bad keyword", "[package]\nname = \"x\"\n[keywords]\nunless = \"si\"\n", ErrUnknownKeyword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ManifestName)
			writeFile(t, path, tt.content)
			_, err := Load(path, nil)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadRejectsInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ManifestName)
	writeFile(t, path, "[package\nname=")
	if _, err := Load(path, nil); err == nil || !strings.Contains(err.Error(), "failed to parse TOML") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestSourceFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "b.tkw"), "")
	writeFile(t, filepath.Join(root, "src", "a.tkw"), "")
	writeFile(t, filepath.Join(root, "src", "notes.txt"), "")
	writeFile(t, filepath.Join(root, "extra.tkw"), "")

	m := &Manifest{Root: root, Config: DefaultConfig("demo")}
	m.Config.Build.Sources = []string{"src", "extra.tkw", "src/a.tkw"}
	files, err := m.SourceFiles()
	if err != nil {
		t.Fatalf("SourceFiles: %v", err)
	}
	want := []string{
		filepath.Join(root, "extra.tkw"),
		filepath.Join(root, "src", "a.tkw"),
		filepath.Join(root, "src", "b.tkw"),
	}
	if !slices.Equal(files, want) {
		t.Fatalf("files = %v, want %v", files, want)
	}
}

func TestApplyKeywords(t *testing.T) {
	m := &Manifest{Config: DefaultConfig("demo")}
	m.Config.Keywords = map[string]string{"if": "si", "while": "mientras"}
	kt := token.DefaultKeywords()
	if err := m.ApplyKeywords(kt); err != nil {
		t.Fatalf("ApplyKeywords: %v", err)
	}
	if kind, ok := kt.Lookup("si"); !ok || kind != token.KwIf {
		t.Fatalf("si should map to if, got %v %v", kind, ok)
	}
	if kind, ok := kt.Lookup("if"); !ok || kind != token.KwIf {
		t.Fatalf("default spelling should still be accepted")
	}
}

func TestWriteDefaultRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteDefault(dir, "demo")
	if err != nil {
		t.Fatalf("WriteDefault: %v", err)
	}
	m, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Config.Package.Name != "demo" || !slices.Equal(m.Config.Build.Sources, []string{"src"}) {
		t.Fatalf("unexpected config: %+v", m.Config)
	}
	if _, err := WriteDefault(dir, "demo"); err == nil {
		t.Fatalf("second WriteDefault should refuse to overwrite")
	}
}
