package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/memsim/internal/logger"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Parse flags first (before positional args)
	args := os.Args[1:]
	debugMode := false

	// Extract --debug/-d flag
	filteredArgs := make([]string, 0, len(args))
	for _, arg := range args {
		if arg == "--debug" || arg == "-d" {
			debugMode = true
		} else {
			filteredArgs = append(filteredArgs, arg)
		}
	}

	// Initialize logger (must be before any logging calls)
	if err := logger.Init(logger.Options{
		Enabled: debugMode,
		Level:   slog.LevelDebug,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to init logging: %v\n", err)
	}

	if len(filteredArgs) > 0 {
		switch filteredArgs[0] {
		case "--help", "-h":
			printHelp()
			os.Exit(0)
		case "--version", "-v":
			fmt.Printf("memexplorer %s\n", version)
			fmt.Printf("  commit: %s\n", commit)
			fmt.Printf("  built: %s\n", date)
			os.Exit(0)
		}
	}

	opts, err := parseArgs(filteredArgs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		printUsage()
		os.Exit(1)
	}
	logger.Info("starting memexplorer", "total", opts.Total, "block", opts.Block, "mode", opts.Mode, "debug", debugMode)

	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}

	logger.Info("memexplorer exited normally")
}

// parseArgs maps [total block [mode [strategy]]] to Options.
func parseArgs(args []string) (Options, error) {
	var opts Options
	switch len(args) {
	case 0:
	case 1:
		return opts, fmt.Errorf("block size missing after total %s", args[0])
	case 2, 3, 4:
		opts.Total, opts.Block = args[0], args[1]
		if len(args) > 2 {
			opts.Mode = args[2]
		}
		if len(args) > 3 {
			opts.Strategy = args[3]
		}
	default:
		return opts, fmt.Errorf("too many arguments")
	}
	return opts, nil
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: memexplorer [options] [total block [mode [strategy]]]\n")
	fmt.Fprintf(os.Stderr, "Try 'memexplorer --help' for more information.\n")
}

func printHelp() {
	fmt.Println("memexplorer - Interactive memory allocation simulator")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  memexplorer [options] [total block [mode [strategy]]]")
	fmt.Println()
	fmt.Println("DESCRIPTION:")
	fmt.Println("  Launches a terminal UI that places processes in a simulated memory")
	fmt.Println("  using segmentation (first, best or worst fit) or paging, and shows")
	fmt.Println("  the memory map, usage, fragmentation and segment or page tables.")
	fmt.Println()
	fmt.Println("  Keys:")
	fmt.Println("    c    Configure total and block size")
	fmt.Println("    a    Add processes (name:size, comma separated)")
	fmt.Println("    f    Free a process by id")
	fmt.Println("    s    Cycle fit strategy")
	fmt.Println("    m    Switch between segmentation and paging")
	fmt.Println("    y    Copy stats as JSON")
	fmt.Println("    ?    Show help")
	fmt.Println("    q    Quit")
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -d, --debug    Enable debug logging to ~/.memsim/logs/")
	fmt.Println("  -h, --help     Show this help message")
	fmt.Println("  -v, --version  Show version information")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  memexplorer")
	fmt.Println("  memexplorer 1024 64 paging")
	fmt.Println("  memexplorer 100 10 segmentation best")
	fmt.Println()
	fmt.Println("For scripted runs, use the 'memsim' command instead.")
}
