package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/memsim/sim/alloc"
	"github.com/joshuapare/memsim/sim/session"
	"github.com/joshuapare/memsim/sim/store"
)

var (
	simTotal    string
	simBlock    string
	simMode     string
	simStrategy string
	simProcs    []string
	simFree     []int
	simVerify   bool
)

func init() {
	cmd := newSimulateCmd()
	cmd.Flags().StringVar(&simTotal, "total", "", "Total memory in KB (required)")
	cmd.Flags().StringVar(&simBlock, "block", "", "Block (page) size in KB (required)")
	cmd.Flags().StringVar(&simMode, "mode", "segmentation", "Mode: segmentation or paging")
	cmd.Flags().StringVar(&simStrategy, "strategy", "firstFit", "Fit strategy: firstFit, bestFit or worstFit")
	cmd.Flags().StringArrayVar(&simProcs, "proc", nil, "Process as name:size or size (repeatable)")
	cmd.Flags().IntSliceVar(&simFree, "free", nil, "Process ids to free after placing the batch")
	cmd.Flags().BoolVar(&simVerify, "verify", false, "Check block ownership against records")
	_ = cmd.MarkFlagRequired("total")
	_ = cmd.MarkFlagRequired("block")
	rootCmd.AddCommand(cmd)
}

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Place one batch of processes and show the result",
		Long: `The simulate command configures memory, places every --proc in order,
frees the ids given with --free, and prints usage, fragmentation, the
memory map and the segment or page table.

Example:
  memsim simulate --total 100 --block 10 --proc editor:25 --proc shell:15
  memsim simulate --total 100 --block 10 --strategy best --proc 20 --proc 30 --free 1
  memsim simulate --total 64 --block 4 --mode paging --proc 10 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate()
		},
	}
	return cmd
}

func runSimulate() error {
	cfg, err := session.ParseConfig(simTotal, simBlock, simMode)
	if err != nil {
		return err
	}
	strategy, err := alloc.ParseStrategy(simStrategy)
	if err != nil {
		return err
	}
	reqs, err := parseProcs(simProcs)
	if err != nil {
		return err
	}

	s := session.New()
	if _, err := s.Apply(cfg); err != nil {
		return err
	}
	printVerbose("Configured %dKB in %d blocks of %dKB (%s)\n",
		cfg.TotalBytes, cfg.TotalBlocks, cfg.BlockSize, cfg.Mode)

	var allocErr error
	if len(reqs) > 0 {
		recs, err := s.SubmitBatch(reqs, strategy)
		printVerbose("Placed %d of %d processes\n", len(recs), len(reqs))
		if err != nil {
			if !errors.Is(err, alloc.ErrInsufficientMemory) && !errors.Is(err, alloc.ErrInvalidSize) {
				return err
			}
			allocErr = err
		}
	}

	for _, id := range simFree {
		if err := s.Deallocate(store.ProcessID(id)); err != nil {
			return err
		}
		printVerbose("Freed process %d\n", id)
	}

	if simVerify {
		if err := s.Verify(); err != nil {
			return fmt.Errorf("verify: %w", err)
		}
		printVerbose("Verification passed\n")
	}

	if !quiet {
		if err := newPrinter().PrintSession(s); err != nil {
			return err
		}
	}
	return allocErr
}

// parseProcs turns --proc arguments into requests.
func parseProcs(args []string) ([]session.Request, error) {
	reqs := make([]session.Request, 0, len(args))
	for _, arg := range args {
		r, err := session.ParseRequest(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid --proc %q: %w", arg, err)
		}
		reqs = append(reqs, r)
	}
	return reqs, nil
}
