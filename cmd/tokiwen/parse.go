package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tokiwen/internal/diagfmt"
	"tokiwen/internal/driver"
	"tokiwen/internal/trace"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.tkw",
	Short: "Parse a tokiwen source file and print its tree",
	Long: `Parse builds the typed syntax tree of a tokiwen source file and prints it.
The line format is the compact one-line dump used by the golden tests.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json|line)")
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json", "line":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	keywords, _, err := keywordsFor(cmd, filePath)
	if err != nil {
		return err
	}

	result, err := driver.Parse(filePath, maxDiagnostics, keywords, trace.FromContext(cmd.Context()))
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	printDiagnostics(cmd, result.Bag, result.FileSet, workingDir())
	if result.Failed() {
		return fmt.Errorf("%s: parse failed", filePath)
	}

	switch format {
	case "json":
		return diagfmt.FormatASTJSON(os.Stdout, result.AST)
	case "line":
		_, err = fmt.Fprintln(os.Stdout, result.AST.String())
		return err
	default:
		return diagfmt.FormatASTPretty(os.Stdout, result.AST, result.FileSet)
	}
}
