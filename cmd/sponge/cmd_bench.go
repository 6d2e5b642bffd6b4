package main

import (
	"fmt"

	"github.com/driftlab/sponge/internal/bench"
	"github.com/spf13/cobra"
)

var benchFlags struct {
	dir string
}

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run scenario suites against a throwaway sponge",
	Long: `Loads YAML scenarios from a directory and replays their scripted
assessments against a fresh sponge each, checking the expectations
recorded in the scenario (staging, vetoes, contraction, disagreement
rate bounds).`,
	RunE: runBench,
}

func init() {
	benchCmd.Flags().StringVar(&benchFlags.dir, "dir", "scenarios", "directory of scenario YAML files")
}

func runBench(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	scenarios, err := bench.LoadDir(benchFlags.dir)
	if err != nil {
		return err
	}
	if len(scenarios) == 0 {
		return fmt.Errorf("no scenarios found in %s", benchFlags.dir)
	}

	runner := bench.NewRunner(logger)
	results := make([]*bench.Result, 0, len(scenarios))
	failed := false

	for _, sc := range scenarios {
		res, err := runner.Run(cmd.Context(), sc)
		if err != nil {
			return err
		}
		if !res.Passed() {
			failed = true
		}
		results = append(results, res)
	}

	fmt.Fprint(cmd.OutOrStdout(), bench.Summary(results))
	if failed {
		return fmt.Errorf("scenario failures")
	}
	return nil
}
