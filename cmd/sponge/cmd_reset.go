package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Replace the persisted state with a fresh seed aggregate",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		defer func() { _ = logger.Sync() }()

		svc, err := newService(logger)
		if err != nil {
			return err
		}

		if err := svc.Reset(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "sponge reset to fresh seed")
		return nil
	},
}
