package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gantryio/gantry/internal/report"
	"github.com/gantryio/gantry/internal/runner"
)

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the dependency graph for cycles",
		Long: `Walks the declared dependency edges and reports every cycle found.
Exits non-zero when the graph is cyclic; dependency requirements are
meaningless until the cycles are removed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			p, cycles, err := runner.New(logger).Validate(flagRoot)
			if err != nil {
				return err
			}

			r := report.BuildCycles(p, cycles)
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

			if !r.Valid {
				return fmt.Errorf("dependency graph has cycles")
			}
			return nil
		},
	}
}
