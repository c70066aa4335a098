// gantryctl is the command-line surface of the requirement sync engine.
//
// Usage:
//
//	gantryctl sync              # incremental sync of the current project
//	gantryctl sync --force      # full recomputation
//	gantryctl status            # last persisted results
//	gantryctl validate          # dependency cycle check
//	gantryctl watch             # sync on file changes
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version   = "dev"
	outputFmt string
	flagRoot  string
	verbose   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gantryctl",
		Short: "Track component completion requirements",
		Long: `gantryctl synchronizes and reports the completion requirements of the
components declared in a project's gantry.yaml: specifications, code,
tests, dependency satisfaction, and descendant completeness.`,
		Version:      version,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "table", "Output format: table, json")
	rootCmd.PersistentFlags().StringVarP(&flagRoot, "root", "C", ".", "Project root (directory containing gantry.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(syncCmd())
	rootCmd.AddCommand(statusCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(watchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger builds the CLI logger: human-readable, stderr only.
func newLogger() (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}
