package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"pycheck/internal/config"
)

// checkCommand constructs the 'check' subcommand: one synchronous dispatch of
// the given targets to every configured checker. Flag parsing is disabled so
// every argument, flags included, forwards to the tools verbatim.
func checkCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:                "check [targets...]",
		Short:              "Runs the configured checkers against the targets (default target when none given)",
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			run, err := newDispatcher(cfg).Run(ctx, args)
			writeReport(ctx, cfg, run)
			if err != nil {
				return err
			}
			if code := run.ExitCode(); code != 0 {
				return &exitError{code: code}
			}

			return nil
		},
	}

	return cmd
}
