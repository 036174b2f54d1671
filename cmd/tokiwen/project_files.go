package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"tokiwen/internal/project"
)

// collectSources expands command line arguments: files are taken as given,
// directories contribute every .tkw file below them.
func collectSources(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && filepath.Ext(path) == project.SourceExt {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no %s files found", project.SourceExt)
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}
