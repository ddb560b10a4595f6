package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/joshuapare/memsim/sim/scenario"
	"github.com/joshuapare/memsim/sim/session"
)

var (
	runVerify bool
	runMap    bool
)

func init() {
	cmd := newRunCmd()
	cmd.Flags().BoolVar(&runVerify, "verify", false, "Check block ownership after every step")
	cmd.Flags().BoolVar(&runMap, "map", false, "Print the final memory map and tables")
	rootCmd.AddCommand(cmd)
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <scenario.json>",
		Short: "Replay a scenario file",
		Long: `The run command configures memory from a scenario file and replays its
allocate and free steps in order. Allocation failures are reported per step
and do not stop the run.

Example:
  memsim run fragmented.json
  memsim run fragmented.json --map --verify
  memsim run fragmented.json --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(cmd.Context(), args)
		},
	}
	return cmd
}

func runScenario(ctx context.Context, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	path := args[0]
	printVerbose("Loading scenario: %s\n", path)

	sc, err := scenario.LoadFile(path)
	if err != nil {
		return err
	}

	s := session.New()
	res, err := scenario.NewRunner(scenario.WithVerify(runVerify)).Run(ctx, s, sc)
	if err != nil {
		return err
	}
	if quiet {
		return nil
	}

	p := newPrinter()
	if jsonOut {
		if runMap {
			return printJSON(struct {
				Result  *scenario.Result `json:"result"`
				Records any              `json:"records"`
				Map     any              `json:"map"`
			}{res, s.Records(), s.Spans()})
		}
		return p.PrintResult(res)
	}

	if err := p.PrintResult(res); err != nil {
		return err
	}
	if runMap {
		printInfo("\n")
		return p.PrintSession(s)
	}
	return nil
}
