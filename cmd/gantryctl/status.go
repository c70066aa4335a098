package main

import (
	"github.com/spf13/cobra"

	"github.com/gantryio/gantry/internal/report"
	"github.com/gantryio/gantry/internal/runner"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the results persisted by the most recent sync",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			p, err := runner.New(logger).Status(cmd.Context(), flagRoot)
			if err != nil {
				return err
			}
			return printProject(report.Build(p))
		},
	}
}
