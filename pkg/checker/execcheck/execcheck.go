// Package execcheck provides a checker.Checker implementation that invokes
// an external tool as a subprocess via os/exec.
package execcheck

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"time"

	"github.com/go-faster/errors"

	"pycheck/pkg/checker"
	"pycheck/pkg/domain"
	"pycheck/pkg/serrors"
)

// Options configure a single external checker.
type Options struct {
	// Name is the configured display name of the tool (e.g. "mypy").
	Name string
	// Command is the executable to invoke, resolved against PATH when it
	// contains no path separator.
	Command string
	// Args are extra arguments placed before the targets on the command line.
	Args []string
	// Dir is the working directory for the tool; empty means inherit.
	Dir string
	// Timeout bounds a single invocation. Zero means no bound beyond the
	// caller's context.
	Timeout time.Duration
	// Mirror, when non-nil, receives the tool's combined output as it is
	// produced, in addition to it being captured for parsing.
	Mirror io.Writer
}

// Checker runs one external tool as a subprocess. It is safe for concurrent
// use; each Run spawns an independent process.
type Checker struct {
	options Options
}

// New constructs a subprocess-backed checker from the given options.
func New(options Options) *Checker {
	return &Checker{options: options}
}

// Name returns the configured name of the tool.
func (c *Checker) Name() string { return c.options.Name }

// Run invokes the tool with the configured extra args followed by the
// targets, exactly as given. The tool's exit code becomes the result's exit
// code; diagnostics are parsed from its combined stdout and stderr.
func (c *Checker) Run(ctx context.Context, targets []string) (domain.CheckResult, error) {
	res := domain.CheckResult{Checker: c.options.Name}

	runCtx := ctx
	if c.options.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.options.Timeout)
		defer cancel()
	}

	argv := make([]string, 0, len(c.options.Args)+len(targets))
	argv = append(argv, c.options.Args...)
	argv = append(argv, targets...)

	var buf bytes.Buffer
	out := io.Writer(&buf)
	if c.options.Mirror != nil {
		out = io.MultiWriter(&buf, c.options.Mirror)
	}

	cmd := exec.CommandContext(runCtx, c.options.Command, argv...)
	cmd.Dir = c.options.Dir
	cmd.Stdout = out
	cmd.Stderr = out

	start := time.Now()
	runErr := cmd.Run()
	res.Duration = time.Since(start)
	res.Output = buf.String()
	res.Diagnostics = checker.ParseDiagnostics(res.Output)

	if runErr == nil {
		res.Status = domain.CheckStatusPassed

		return res, nil
	}

	// context expiry surfaces as a killed process; report it as what it is
	// rather than as a signal exit.
	if runCtx.Err() != nil {
		serr := serrors.Wrap(serrors.ErrTimeout, runCtx.Err(), "checker %q timed out", c.options.Name)
		if errors.Is(runCtx.Err(), context.Canceled) {
			serr = serrors.Wrap(serrors.ErrCanceled, runCtx.Err(), "checker %q canceled", c.options.Name)
		}
		res.Status = domain.CheckStatusError
		res.Err = serr.Error()

		return res, serr
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) && exitErr.ExitCode() >= 0 {
		res.Status = domain.CheckStatusFailed
		res.ExitCode = exitErr.ExitCode()

		return res, nil
	}

	var serr error
	if errors.Is(runErr, exec.ErrNotFound) {
		serr = serrors.Wrap(serrors.ErrToolNotFound, runErr, "checker %q not found", c.options.Command)
	} else {
		serr = errors.Wrap(runErr, "running checker")
	}
	res.Status = domain.CheckStatusError
	res.Err = serr.Error()

	return res, serr
}

// Ensure Checker conforms to the checker.Checker interface at compile time.
var _ checker.Checker = (*Checker)(nil)
