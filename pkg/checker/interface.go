// Package checker defines the abstraction over external static checking
// tools and the parsing of the diagnostics they print. Implementations run a
// tool against a target list and report the outcome without interpreting the
// targets themselves.
package checker

import (
	"context"
	"pycheck/pkg/domain"
)

// Checker is the abstraction for an external checking tool. Implementations
// must pass the targets through to the tool verbatim: same order, no
// elements added, removed or modified.
type Checker interface {
	// Name returns the configured name of the tool, used in logs and reports.
	Name() string
	// Run invokes the tool against the given targets. A tool that runs to
	// completion but exits non-zero is a FAILED result, not an error; the
	// returned error is reserved for invocations that could not complete
	// (missing binary, timeout, cancellation).
	Run(ctx context.Context, targets []string) (domain.CheckResult, error)
}
