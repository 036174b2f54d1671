package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tokiwen/internal/diagfmt"
	"tokiwen/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.tkw",
	Short: "Tokenize a tokiwen source file",
	Long:  `Tokenize breaks a tokiwen source file into tokens, using the keyword spellings of the enclosing project`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	keywords, _, err := keywordsFor(cmd, filePath)
	if err != nil {
		return err
	}

	result, err := driver.Tokenize(filePath, maxDiagnostics, keywords)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Выводим диагностику в stderr, если есть
	printDiagnostics(cmd, result.Bag, result.FileSet, workingDir())

	switch format {
	case "pretty":
		err = diagfmt.FormatTokensPretty(os.Stdout, result.Tokens, result.FileSet)
	case "json":
		err = diagfmt.FormatTokensJSON(os.Stdout, result.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return fmt.Errorf("%s: scanner errors", filePath)
	}
	return nil
}
