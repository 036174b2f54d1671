package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"tokiwen/internal/buildpipeline"
	"tokiwen/internal/diagfmt"
	"tokiwen/internal/driver"
	"tokiwen/internal/project"
	"tokiwen/internal/token"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] [file.tkw|directory ...]",
	Short: "Compile tokiwen sources into bytecode",
	Long: `Compile translates tokiwen sources into accumulator bytecode.
Without arguments the project around the working directory is compiled
using the sources, output directory and keywords of its tokiwen.toml.
Command line flags override the manifest.`,
	RunE: runCompile,
}

func init() {
	compileCmd.Flags().StringP("out", "o", "", "output directory (default: [build].out_dir or ./build)")
	compileCmd.Flags().String("format", "", "output format (object|binary|listing|json)")
	compileCmd.Flags().Bool("immediates", false, "fold literal right operands into *_I opcodes")
	compileCmd.Flags().Int("jobs", 0, "max parallel compiles (0=auto)")
	compileCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	compileCmd.Flags().Bool("no-cache", false, "do not read or write the compile cache")
	compileCmd.Flags().String("diagnostics-format", "pretty", "diagnostics output format (pretty|json)")
}

// compileSettings is the manifest merged with the command line.
type compileSettings struct {
	files      []string
	baseDir    string
	outDir     string
	format     buildpipeline.Format
	immediates bool
	jobs       int
	keywords   *token.KeywordTable
	title      string
}

func runCompile(cmd *cobra.Command, args []string) error {
	settings, err := resolveCompileSettings(cmd, args)
	if err != nil {
		return err
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	diagFormat, err := cmd.Flags().GetString("diagnostics-format")
	if err != nil {
		return fmt.Errorf("failed to get diagnostics-format flag: %w", err)
	}
	if diagFormat != "pretty" && diagFormat != "json" {
		return fmt.Errorf("unknown diagnostics format: %s", diagFormat)
	}

	opts := driver.Options{
		MaxDiagnostics: maxDiagnostics,
		Keywords:       settings.keywords,
		Immediates:     settings.immediates,
		Jobs:           settings.jobs,
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	if !noCache {
		cache, cacheErr := driver.OpenDiskCache("tokiwen")
		if cacheErr != nil {
			fmt.Fprintf(os.Stderr, "warning: compile cache disabled: %v\n", cacheErr)
		} else {
			opts.Cache = cache
		}
	}

	req := &buildpipeline.CompileRequest{
		Files:   settings.files,
		BaseDir: settings.baseDir,
		Options: opts,
	}
	ctx := cmd.Context()

	var result buildpipeline.CompileResult
	if !quiet && diagFormat == "pretty" && shouldUseTUI(mode, len(settings.files)) {
		display := buildpipeline.DisplayPaths(settings.files, settings.baseDir)
		result, err = runCompileWithUI(ctx, settings.title, display, req)
	} else {
		result, err = buildpipeline.Compile(ctx, req)
	}

	if reportErr := reportUnits(cmd, result, settings.baseDir, diagFormat); reportErr != nil {
		return reportErr
	}
	if err != nil {
		if errors.Is(err, buildpipeline.ErrCompileFailed) {
			return err
		}
		return fmt.Errorf("compile failed: %w", err)
	}

	outputs, err := buildpipeline.Emit(ctx, &buildpipeline.EmitRequest{
		Result: &result,
		OutDir: settings.outDir,
		Format: settings.format,
	})
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if !quiet {
		for _, out := range outputs {
			fmt.Fprintf(os.Stdout, "%s -> %s\n", buildpipeline.DisplayPath(out.Source, settings.baseDir), buildpipeline.DisplayPath(out.Path, settings.baseDir))
		}
	}
	if showTimings {
		printStageTimings(os.Stdout, result.Timings)
		if len(result.Units) == 1 && result.Units[0] != nil {
			printUnitPhases(os.Stdout, result.Units[0])
		}
	}
	return nil
}

// resolveCompileSettings picks the sources and merges manifest defaults with
// explicitly set flags.
func resolveCompileSettings(cmd *cobra.Command, args []string) (*compileSettings, error) {
	s := &compileSettings{
		baseDir: workingDir(),
		outDir:  "build",
		format:  buildpipeline.FormatObject,
	}

	var m *project.Manifest
	var err error
	if len(args) == 0 {
		m, err = loadManifest(cmd, s.baseDir)
		if err != nil {
			return nil, err
		}
		if m == nil {
			return nil, fmt.Errorf("no %s found; pass source files or run `tokiwen init`", project.ManifestName)
		}
		s.files, err = m.SourceFiles()
		if err != nil {
			return nil, err
		}
		if len(s.files) == 0 {
			return nil, fmt.Errorf("%s: no %s files in [build].sources", m.Path, project.SourceExt)
		}
		s.baseDir = m.Root
	} else {
		s.files, err = collectSources(args)
		if err != nil {
			return nil, err
		}
		s.keywords, m, err = keywordsFor(cmd, s.files[0])
		if err != nil {
			return nil, err
		}
	}

	s.title = "compiling"
	if m != nil {
		s.title = "compiling " + m.Config.Package.Name
		if len(args) == 0 {
			s.outDir = m.OutDir()
			if len(m.Config.Keywords) > 0 {
				s.keywords = token.DefaultKeywords()
				if err := m.ApplyKeywords(s.keywords); err != nil {
					return nil, err
				}
			}
		}
		if m.Config.Build.Format != "" {
			s.format, err = buildpipeline.ParseFormat(m.Config.Build.Format)
			if err != nil {
				return nil, err
			}
		}
		s.immediates = m.Config.Build.Immediates
		s.jobs = m.Config.Build.Jobs
	}

	flags := cmd.Flags()
	if flags.Changed("out") {
		out, _ := flags.GetString("out")
		s.outDir = out
	}
	if flags.Changed("format") {
		value, _ := flags.GetString("format")
		s.format, err = buildpipeline.ParseFormat(value)
		if err != nil {
			return nil, err
		}
	}
	if flags.Changed("immediates") {
		s.immediates, _ = flags.GetBool("immediates")
	}
	if flags.Changed("jobs") {
		s.jobs, _ = flags.GetInt("jobs")
	}
	if !filepath.IsAbs(s.outDir) {
		s.outDir = filepath.Join(workingDir(), s.outDir)
	}
	return s, nil
}

// reportUnits prints the diagnostics of every unit, in source order.
func reportUnits(cmd *cobra.Command, result buildpipeline.CompileResult, baseDir, format string) error {
	if format == "json" {
		sources := make([]diagfmt.Source, 0, len(result.Units))
		for _, u := range result.Units {
			if u != nil {
				sources = append(sources, diagfmt.Source{Bag: u.Bag, Files: u.FileSet})
			}
		}
		return diagfmt.JSONAll(os.Stderr, sources, diagfmt.JSONOpts{
			IncludePositions: true,
			BaseDir:          baseDir,
			IncludeNotes:     true,
		})
	}
	for _, u := range result.Units {
		if u == nil {
			continue
		}
		printDiagnostics(cmd, u.Bag, u.FileSet, baseDir)
	}
	return nil
}

func printUnitPhases(out *os.File, u *driver.Unit) {
	for _, p := range u.Timing.Phases {
		if p.Note != "" {
			fmt.Fprintf(out, "  %-8s %.2f ms (%s)\n", p.Name, p.DurationMS, p.Note)
			continue
		}
		fmt.Fprintf(out, "  %-8s %.2f ms\n", p.Name, p.DurationMS)
	}
}
