package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"pycheck/internal/config"
	"pycheck/internal/watch"
	"pycheck/pkg/domain"
	"pycheck/pkg/logger"
)

// watchCommand constructs the 'watch' subcommand: an initial dispatch
// followed by a re-dispatch whenever a watched file's content changes.
// Arguments forward verbatim on every run, exactly as with 'check'.
func watchCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:                "watch [targets...]",
		Short:              "Re-runs the checkers whenever the targets change",
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			w, err := watch.New(newDispatcher(cfg), args, cfg.DefaultTarget, watch.NewOptions(cfg),
				func(run domain.Run) {
					writeReport(ctx, cfg, run)
				})
			if err != nil {
				return err
			}

			logger.Info(ctx, "watching for changes, press ctrl-c to stop")

			return w.Watch(ctx)
		},
	}

	return cmd
}
