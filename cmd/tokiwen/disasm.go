package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tokiwen/internal/program"
)

var disasmCmd = &cobra.Command{
	Use:   "disasm [flags] file.tko",
	Short: "Print the listing of a compiled object file",
	Long:  `Disasm reads an object file written by compile and prints it as a listing or as JSON`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDisasm,
}

func init() {
	disasmCmd.Flags().String("format", "listing", "output format (listing|json)")
}

func runDisasm(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	p, err := program.ReadObject(bufio.NewReader(f))
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	switch format {
	case "listing":
		return p.WriteListing(os.Stdout, program.ListingOptions{Color: useColor(cmd, os.Stdout)})
	case "json":
		return p.WriteJSON(os.Stdout)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
