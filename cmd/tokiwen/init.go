package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"tokiwen/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new tokiwen project",
	Long: `Initialize a new tokiwen project by creating a manifest (tokiwen.toml)
and an entry point (src/main.tkw). If [path|name] is omitted, initializes
the current directory. A non-existing name creates the directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

const defaultMain = `// factorial of n
int n = 5;
int acc = 1;
while (n > 1) {
    acc *= n;
    n -= 1;
}
write acc;
`

func runInit(cmd *cobra.Command, args []string) error {
	target := workingDir()
	if len(args) == 1 && args[0] != "." {
		if filepath.IsAbs(args[0]) {
			target = args[0]
		} else {
			target = filepath.Join(target, args[0])
		}
	}

	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err = os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	name := strings.TrimSpace(filepath.Base(target))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "tokiwen-project"
	}

	manifestPath, err := project.WriteDefault(target, name)
	if err != nil {
		return fmt.Errorf("project already initialized or not writable: %w", err)
	}

	srcDir := filepath.Join(target, "src")
	if err := os.MkdirAll(srcDir, 0o755); err != nil {
		return err
	}
	mainPath := filepath.Join(srcDir, "main"+project.SourceExt)
	createdMain := false
	if _, err := os.Stat(mainPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(mainPath, []byte(defaultMain), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", mainPath, err)
		}
		createdMain = true
	}

	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if quiet {
		return nil
	}
	rel := target
	if r, err := filepath.Rel(workingDir(), target); err == nil {
		rel = r
	}
	fmt.Fprintf(os.Stdout, "Initialized tokiwen project in %s\n", rel)
	fmt.Fprintf(os.Stdout, "  - %s\n", filepath.Base(manifestPath))
	if createdMain {
		fmt.Fprintf(os.Stdout, "  - src/main%s\n", project.SourceExt)
	} else {
		fmt.Fprintf(os.Stdout, "  - src/main%s (existing)\n", project.SourceExt)
	}
	return nil
}
