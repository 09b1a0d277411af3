// Package dispatch resolves check targets and runs the configured checkers
// over them, aggregating the per-checker outcomes into a single run.
package dispatch

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"pycheck/internal/config"
	"pycheck/pkg/checker"
	"pycheck/pkg/domain"
	"pycheck/pkg/logger"
)

// Options configure how a dispatcher runs its checkers.
type Options struct {
	// Parallel runs the checkers concurrently. Results keep checker
	// configuration order either way.
	Parallel bool
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{Parallel: cfg.Run.Parallel}
}

// Dispatcher runs every configured checker over a resolved target list.
type Dispatcher struct {
	options       Options
	defaultTarget string
	checkers      []checker.Checker
}

// New creates a Dispatcher over the given checkers. defaultTarget is
// dispatched when the caller supplies no arguments.
func New(defaultTarget string, checkers []checker.Checker, options Options) *Dispatcher {
	return &Dispatcher{
		options:       options,
		defaultTarget: defaultTarget,
		checkers:      checkers,
	}
}

// Run resolves the targets from the caller-supplied args and dispatches them
// to every checker. A checker exiting non-zero is recorded in the run, not
// returned as an error; the returned error reports invocations that could
// not complete at all (missing binary, timeout). Even then the run carries
// the results gathered so far, and Run.ExitCode stays non-zero.
func (d *Dispatcher) Run(ctx context.Context, args []string) (domain.Run, error) {
	run := domain.Run{
		ID:        domain.NewRunID(),
		Targets:   ResolveTargets(args, d.defaultTarget),
		StartedAt: time.Now(),
	}
	ctx = logger.WithFields(ctx, zap.String("runID", run.ID.String()))

	logger.Debug(ctx, "dispatching targets",
		zap.Strings("targets", run.Targets),
		zap.Int("checkers", len(d.checkers)),
		zap.Bool("parallel", d.options.Parallel))

	var err error
	if d.options.Parallel && len(d.checkers) > 1 {
		run.Results, err = d.runParallel(ctx, run.Targets)
	} else {
		run.Results, err = d.runSerial(ctx, run.Targets)
	}
	run.Duration = time.Since(run.StartedAt)

	logger.Debug(ctx, "dispatch finished",
		zap.Int("exitCode", run.ExitCode()),
		zap.Duration("duration", run.Duration))

	return run, err
}

// runSerial runs the checkers one after another in configuration order and
// stops at the first invocation that could not complete.
func (d *Dispatcher) runSerial(ctx context.Context, targets []string) ([]domain.CheckResult, error) {
	results := make([]domain.CheckResult, 0, len(d.checkers))
	for _, c := range d.checkers {
		res, err := c.Run(ctx, targets)
		results = append(results, res)
		if err != nil {
			logger.Error(ctx, "checker could not run",
				zap.String("checker", c.Name()), zap.Error(err))

			return results, err
		}
	}

	return results, nil
}

// runParallel runs all checkers concurrently. The first invocation that
// cannot complete cancels the rest; results stay in configuration order.
func (d *Dispatcher) runParallel(ctx context.Context, targets []string) ([]domain.CheckResult, error) {
	results := make([]domain.CheckResult, len(d.checkers))

	g, gctx := errgroup.WithContext(ctx)
	for i, c := range d.checkers {
		i, c := i, c
		g.Go(func() error {
			res, err := c.Run(gctx, targets)
			results[i] = res
			if err != nil {
				logger.Error(gctx, "checker could not run",
					zap.String("checker", c.Name()), zap.Error(err))
			}

			return err
		})
	}

	return results, g.Wait()
}
