package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gantryio/gantry/internal/report"
	"github.com/gantryio/gantry/internal/runner"
)

func syncCmd() *cobra.Command {
	var force bool
	var changed []string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Run a requirement synchronization pass",
		Long: `Refreshes every component's file and test status, recomputes
requirements for affected components, and persists the results.

Without --changed, only status-derived differences drive the pass; use
--changed to name components whose backing files were edited, or --force
to recompute everything.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			p, err := runner.New(logger).Sync(cmd.Context(), flagRoot, force, changed)
			if err != nil {
				return err
			}
			return printProject(report.Build(p))
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Clear and recompute every requirement")
	cmd.Flags().StringSliceVar(&changed, "changed", nil, "Component names or ids known to have changed")
	return cmd
}

// printProject renders a completion report per the --output flag.
func printProject(r report.Project) error {
	switch outputFmt {
	case "json":
		out, err := r.JSON()
		if err != nil {
			return err
		}
		fmt.Println(out)
	case "table":
		fmt.Print(r.Text())
	default:
		return fmt.Errorf("unknown output format %q (use table or json)", outputFmt)
	}
	return nil
}
