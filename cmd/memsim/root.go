package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/memsim/internal/logger"
	"github.com/joshuapare/memsim/internal/term"
	"github.com/joshuapare/memsim/sim/printer"
)

// Environment variables read at startup.
const (
	envLogAlloc = "MEMSIM_LOG_ALLOC" // trace every placement to stderr
	envLogLevel = "MEMSIM_LOG_LEVEL" // write logs at this level to MEMSIM_LOG_DIR
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "memsim",
	Short: "Simulate segmented and paged memory allocation",
	Long: `memsim simulates a fixed-size memory divided into equal blocks.
Processes are placed either as contiguous segments (first, best or worst fit)
or as pages in any free blocks, and the tool reports usage, internal and
external fragmentation, segment and page tables, and a memory map.`,
	Version:           version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return setupLogging() },
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

// setupLogging turns on slog output when asked to by the environment.
func setupLogging() error {
	if os.Getenv(envLogAlloc) != "" {
		return logger.Init(logger.Options{
			Enabled: true,
			Writer:  os.Stderr,
			Level:   slog.LevelDebug,
		})
	}
	if name := os.Getenv(envLogLevel); name != "" {
		level, ok := logger.ParseLevel(name)
		if !ok {
			printVerbose("Unknown %s %q, logging at info\n", envLogLevel, name)
		}
		return logger.Init(logger.Options{Enabled: true, Level: level})
	}
	return nil
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// newPrinter builds a printer for stdout from the global flags.
func newPrinter() *printer.Printer {
	opts := printer.DefaultOptions()
	if jsonOut {
		opts.Format = printer.FormatJSON
	}
	opts.Color = !noColor && term.IsTerminal(os.Stdout)
	return printer.New(os.Stdout, opts)
}
