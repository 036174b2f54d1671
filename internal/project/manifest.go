package project

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"tokiwen/internal/diag"
	"tokiwen/internal/source"
	"tokiwen/internal/token"
)

// SourceExt is the extension of tokiwen source files.
const SourceExt = ".tkw"

// Output formats accepted in [build].format.
var Formats = []string{"object", "binary", "listing", "json"}

var (
	ErrPackageNameMissing = errors.New("missing [package].name")
	ErrUnknownFormat      = errors.New("unknown [build].format")
	ErrUnknownKeyword     = errors.New("unknown keyword in [keywords]")
)

type Config struct {
	Package  PackageConfig     `toml:"package"`
	Build    BuildConfig       `toml:"build"`
	Keywords map[string]string `toml:"keywords"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

type BuildConfig struct {
	Sources    []string `toml:"sources"`
	OutDir     string   `toml:"out_dir"`
	Format     string   `toml:"format"`
	Immediates bool     `toml:"immediates"`
	Jobs       int      `toml:"jobs"`
}

// Manifest is a decoded tokiwen.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// DefaultConfig is what `tokiwen init` writes.
func DefaultConfig(name string) Config {
	return Config{
		Package: PackageConfig{Name: name},
		Build: BuildConfig{
			Sources: []string{"src"},
			OutDir:  "build",
			Format:  "object",
		},
	}
}

// Load decodes the manifest at path. Keys the schema does not know are
// reported to r as warnings; a malformed file is an error.
func Load(path string, r diag.Reporter) (*Manifest, error) {
	cfg := DefaultConfig("")
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrPackageNameMissing)
	}
	if !slices.Contains(Formats, cfg.Build.Format) {
		return nil, fmt.Errorf("%s: %w %q (expected one of %s)", path, ErrUnknownFormat, cfg.Build.Format, strings.Join(Formats, ", "))
	}
	for kw := range cfg.Keywords {
		if _, ok := token.KeywordByName(kw); !ok {
			return nil, fmt.Errorf("%s: %w: %q", path, ErrUnknownKeyword, kw)
		}
	}
	if r != nil {
		for _, key := range meta.Undecoded() {
			diag.ReportWarning(r, diag.PrjUnknownKey, source.Span{},
				fmt.Sprintf("%s: unknown key %q is ignored", path, key.String())).Emit()
		}
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, nil
}

// Discover finds and loads the manifest above startDir. ok is false when
// there is none.
func Discover(startDir string, r diag.Reporter) (m *Manifest, ok bool, err error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err = Load(path, r)
	return m, true, err
}

// ApplyKeywords remaps kt according to [keywords].
func (m *Manifest) ApplyKeywords(kt *token.KeywordTable) error {
	for _, kw := range slices.Sorted(maps.Keys(m.Config.Keywords)) {
		kind, _ := token.KeywordByName(kw)
		if err := kt.Set(kind, m.Config.Keywords[kw]); err != nil {
			return fmt.Errorf("%s: [keywords].%s: %w", m.Path, kw, err)
		}
	}
	return nil
}

// SourceFiles expands [build].sources into .tkw files, sorted and unique.
func (m *Manifest) SourceFiles() ([]string, error) {
	var files []string
	for _, entry := range m.Config.Build.Sources {
		p := filepath.Join(m.Root, filepath.FromSlash(entry))
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("%s: [build].sources: %w", m.Path, err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && filepath.Ext(path) == SourceExt {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("%s: [build].sources: %w", m.Path, err)
		}
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}

// OutDir is [build].out_dir resolved against the project root.
func (m *Manifest) OutDir() string {
	return filepath.Join(m.Root, filepath.FromSlash(m.Config.Build.OutDir))
}

// WriteDefault creates dir/tokiwen.toml for a new project. An existing
// manifest is never overwritten.
func WriteDefault(dir, name string) (string, error) {
	path := filepath.Join(dir, ManifestName)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%s already exists", path)
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(DefaultConfig(name)); err != nil {
		return "", fmt.Errorf("%s: failed to encode TOML: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
