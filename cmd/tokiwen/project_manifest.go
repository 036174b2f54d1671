package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"tokiwen/internal/diag"
	"tokiwen/internal/project"
	"tokiwen/internal/token"
)

// loadManifest looks for tokiwen.toml from startDir upwards. A missing
// manifest is not an error: m is nil then. Manifest warnings are printed.
func loadManifest(cmd *cobra.Command, startDir string) (*project.Manifest, error) {
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	bag := diag.NewBag(maxDiagnostics)
	m, ok, err := project.Discover(startDir, diag.BagReporter{Bag: bag})
	printDiagnostics(cmd, bag, nil, "")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return m, nil
}

// keywordsFor returns the keyword table of the project around path, or nil
// for the default spellings.
func keywordsFor(cmd *cobra.Command, path string) (*token.KeywordTable, *project.Manifest, error) {
	dir := filepath.Dir(path)
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	m, err := loadManifest(cmd, dir)
	if err != nil || m == nil {
		return nil, m, err
	}
	if len(m.Config.Keywords) == 0 {
		return nil, m, nil
	}
	kt := token.DefaultKeywords()
	if err := m.ApplyKeywords(kt); err != nil {
		return nil, m, err
	}
	return kt, m, nil
}

func workingDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}
