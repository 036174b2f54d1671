package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tokiwen/internal/diag"
	"tokiwen/internal/diagfmt"
	"tokiwen/internal/prof"
	"tokiwen/internal/source"
	"tokiwen/internal/trace"
	"tokiwen/internal/version"
)

var rootCmd = &cobra.Command{
	Use:           "tokiwen",
	Short:         "tokiwen compiler and toolchain",
	Long:          `tokiwen compiles a small imperative language into accumulator bytecode`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Set by the pre-run hook, finished once the command ends.
var (
	traceCleanup func()
	profSession  *prof.Session
)

// main registers subcommands and persistent flags, then executes the root
// command. Any error exits with status 1.
func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(disasmCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")

	rootCmd.PersistentFlags().String("trace", "", "write a trace stream to a file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace mode (stream|ring|both)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "events kept by the ring tracer")
	rootCmd.PersistentFlags().Duration("trace-heartbeat", 0, "emit a heartbeat event at this interval (0 disables)")

	rootCmd.PersistentFlags().String("cpuprofile", "", "write a CPU profile of the toolchain to file")
	rootCmd.PersistentFlags().String("memprofile", "", "write a heap profile of the toolchain to file")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to file")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		cleanup, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		traceCleanup = cleanup
		session, err := startProfiling(cmd)
		if err != nil {
			return err
		}
		profSession = session
		return nil
	}

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		dumpTraceRing(rootCmd)
	}
	if stopErr := profSession.Stop(); stopErr != nil {
		fmt.Fprintf(os.Stderr, "profile: %v\n", stopErr)
	}
	if traceCleanup != nil {
		traceCleanup()
	}
	if err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves --color for output going to f.
func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false
	}
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
}

// printDiagnostics writes the bag to stderr when it holds anything worth showing.
func printDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet, baseDir string) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	bag.Sort()
	diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.PrettyOpts{
		Color:     useColor(cmd, os.Stderr),
		Context:   2,
		BaseDir:   baseDir,
		ShowNotes: true,
	})
}

// dumpTraceRing prints the buffered events of a ring tracer after a failure.
func dumpTraceRing(cmd *cobra.Command) {
	ctx := cmd.Context()
	if ctx == nil {
		return
	}
	ring := trace.RingOf(trace.FromContext(ctx))
	if ring == nil {
		return
	}
	fmt.Fprintln(os.Stderr, "trace: last events before failure")
	if err := ring.Dump(os.Stderr, trace.FormatText); err != nil {
		fmt.Fprintf(os.Stderr, "trace: dump error: %v\n", err)
	}
}
