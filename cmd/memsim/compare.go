package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/joshuapare/memsim/sim/scenario"
)

func init() {
	rootCmd.AddCommand(newCompareCmd())
}

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <scenario.json>",
		Short: "Replay a scenario under every strategy and mode",
		Long: `The compare command replays the same scenario under first, best and
worst fit segmentation and under paging, and prints how many processes each
placed along with usage and fragmentation side by side.

Example:
  memsim compare fragmented.json
  memsim compare fragmented.json --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd.Context(), args)
		},
	}
	return cmd
}

func runCompare(ctx context.Context, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	sc, err := scenario.LoadFile(args[0])
	if err != nil {
		return err
	}

	out, err := scenario.NewRunner().Compare(ctx, sc)
	if err != nil {
		return err
	}
	if quiet {
		return nil
	}
	return newPrinter().PrintComparison(out)
}
