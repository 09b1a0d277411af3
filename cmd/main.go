// Package main provides the CLI entrypoint for pycheck. It wires subcommands
// (check, watch, tools), loads configuration, and initializes logging.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pycheck/internal/config"
	"pycheck/internal/dispatch"
	"pycheck/pkg/checker"
	"pycheck/pkg/checker/execcheck"
	"pycheck/pkg/domain"
	"pycheck/pkg/logger"
	"pycheck/pkg/report"
)

// exitError carries a specific process exit code out of a subcommand so main
// can propagate the external tool's exit code exactly.
type exitError struct{ code int }

func (e *exitError) Error() string { return fmt.Sprintf("exit code %d", e.code) }

// newCheckers builds one subprocess-backed checker per configured tool. In
// text mode the tools' output streams to stdout as it is produced; json mode
// keeps stdout clean for the report.
func newCheckers(cfg *config.Config) []checker.Checker {
	var mirror io.Writer
	if cfg.Run.Format == config.FormatText && !cfg.Run.Quiet {
		mirror = os.Stdout
	}

	checkers := make([]checker.Checker, 0, len(cfg.Checkers))
	for _, cc := range cfg.Checkers {
		checkers = append(checkers, execcheck.New(execcheck.Options{
			Name:    cc.Name,
			Command: cc.Command,
			Args:    cc.Args,
			Timeout: cfg.Run.Timeout,
			Mirror:  mirror,
		}))
	}

	return checkers
}

// newDispatcher assembles the dispatcher from configuration.
func newDispatcher(cfg *config.Config) *dispatch.Dispatcher {
	return dispatch.New(cfg.DefaultTarget, newCheckers(cfg), dispatch.NewOptions(cfg))
}

// writeReport renders a finished run to stdout in the configured format.
func writeReport(ctx context.Context, cfg *config.Config, run domain.Run) {
	var err error
	if cfg.Run.Format == config.FormatJSON {
		err = report.WriteJSON(os.Stdout, run)
	} else {
		err = report.WriteText(os.Stdout, run)
	}
	if err != nil {
		logger.Error(ctx, "could not write report", zap.Error(err))
	}
}

// main sets up the root Cobra command, loads configuration and logging, and
// registers subcommands before executing the CLI.
func main() {
	rootCmd := &cobra.Command{
		Use:   "pycheck",
		Short: "Dispatches check targets to external type checkers",
	}

	// there is no way to access flags before command execution in cobra.
	// configPath here is parsed using the standard flags package.
	// following line is just added to prevent errors when Cobra is parsing the flags.
	rootCmd.PersistentFlags().StringP("config", "c", "pycheck.yml", "Config File Path")

	configPath := flag.String("c", "pycheck.yml", "The config file path")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "could not load config:", err)
		os.Exit(1)
	}

	logger.Setup(cfg.Environment)

	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			logger.Sync(ctx)

			panic(p)
		}
	}()

	rootCmd.AddCommand(
		checkCommand(cfg),
		watchCommand(cfg),
		toolsCommand(cfg),
	)

	err = rootCmd.Execute()
	logger.Sync(ctx)
	if err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code) //nolint: gocritic
		}

		os.Exit(1)
	}
}
