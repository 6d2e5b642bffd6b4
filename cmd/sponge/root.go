package main

import (
	"fmt"

	"github.com/driftlab/sponge/internal/buildconfig"
	"github.com/driftlab/sponge/internal/config"
	"github.com/driftlab/sponge/internal/llm"
	"github.com/driftlab/sponge/internal/service"
	"github.com/driftlab/sponge/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootFlags struct {
	statePath  string
	historyDir string
	verbose    bool
}

var rootCmd = &cobra.Command{
	Use:   "sponge",
	Short: "Inspect and converse with a persistent belief-revision agent",
	Long: `sponge manages an agent personality that forms topic-scoped opinions,
shifts them in proportion to evidence quality, and survives restarts.

State lives in a single JSON file; every superseded version is archived
immutably alongside it.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.Load()
	},
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (%s)", buildconfig.Version(), buildconfig.Commit())

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.statePath, "state", "", "path to the live state file (default from STATE_PATH)")
	pf.StringVar(&rootFlags.historyDir, "history", "", "path to the version archive dir (default from HISTORY_DIR)")
	pf.BoolVarP(&rootFlags.verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(shellCmd, stateCmd, resetCmd, benchCmd)
}

func newLogger() *zap.Logger {
	if rootFlags.verbose {
		logger, _ := zap.NewDevelopment()
		return logger
	}
	return zap.NewNop()
}

func statePath() string {
	if rootFlags.statePath != "" {
		return rootFlags.statePath
	}
	return config.StatePath()
}

func historyDir() string {
	if rootFlags.historyDir != "" {
		return rootFlags.historyDir
	}
	return config.HistoryDir()
}

func newService(logger *zap.Logger) (*service.SpongeService, error) {
	llmClient, err := llm.NewClient(config.LLMProvider(), config.LLMAPIKey())
	if err != nil {
		return nil, fmt.Errorf("initialize LLM client: %w", err)
	}

	stateStore := store.NewStateStore(statePath(), historyDir(), logger)
	svc, err := service.NewSpongeService(stateStore, llmClient, logger)
	if err != nil {
		return nil, err
	}
	svc.CoolingPeriod = config.CoolingPeriod()
	svc.ReflectionInterval = config.ReflectionInterval()
	svc.DecayRate = config.DecayRate()
	return svc, nil
}
