package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gantryio/gantry/internal/project"
	"github.com/gantryio/gantry/internal/runner"
	"github.com/gantryio/gantry/internal/watch"
)

func watchCmd() *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run incremental syncs on file changes",
		Long: `Watches the project tree and runs an incremental sync whenever a
component's artifact files change, accumulating edits over a debounce
window so save bursts produce a single pass. Stop with Ctrl-C.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			// The watcher needs the resolver and component set up front;
			// each triggered sync reloads the definition itself.
			p, err := project.Load(flagRoot)
			if err != nil {
				return err
			}

			run := runner.New(logger)
			handler := func(ctx context.Context, changed []string) {
				if _, err := run.Sync(ctx, flagRoot, false, changed); err != nil {
					logger.Error("sync failed", zap.Error(err))
					return
				}
				logger.Info("sync complete", zap.Int("changed", len(changed)))
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logger.Info("watching project", zap.String("root", flagRoot))
			err = watch.New(p, debounce, handler, logger).Run(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "Quiet period before a triggered sync")
	return cmd
}
