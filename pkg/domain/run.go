package domain

import (
	"time"

	"github.com/google/uuid"
)

// RunID uniquely identifies a single dispatch run. It wraps uuid.UUID to
// provide type safety at the domain layer.
type RunID uuid.UUID

// NewRunID generates a fresh run identifier.
func NewRunID() RunID { return RunID(uuid.New()) }

// String returns the canonical textual form of the run ID.
func (id RunID) String() string { return uuid.UUID(id).String() }

// CheckStatus represents the outcome of a single checker invocation.
type CheckStatus string

const (
	// CheckStatusPassed indicates the checker ran and exited zero.
	CheckStatusPassed CheckStatus = "PASSED"
	// CheckStatusFailed indicates the checker ran to completion but exited
	// non-zero, typically because it found problems in the targets.
	CheckStatusFailed CheckStatus = "FAILED"
	// CheckStatusError indicates the checker could not be run at all
	// (missing binary, timeout, canceled).
	CheckStatusError CheckStatus = "ERROR"
)

// Severity classifies a single diagnostic line reported by a checker.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityNote    Severity = "note"
)

// Diagnostic is one finding reported by a checker against a target file.
type Diagnostic struct {
	// Path is the file the diagnostic refers to, as printed by the tool.
	Path string `json:"path"`
	// Line is the 1-based line number, 0 when the tool did not report one.
	Line int `json:"line"`
	// Column is the 1-based column number, 0 when not reported.
	Column int `json:"column,omitempty"`
	// Severity is the tool-reported severity class.
	Severity Severity `json:"severity"`
	// Message is the human-readable finding text.
	Message string `json:"message"`
	// Code is the tool's error code for the finding (e.g. "arg-type"),
	// empty when the tool does not print one.
	Code string `json:"code,omitempty"`
}

// CheckResult is the outcome of running one configured checker over the
// resolved target list.
type CheckResult struct {
	// Checker is the configured name of the tool that produced this result.
	Checker string `json:"checker"`
	// Status is the lifecycle outcome of the invocation.
	Status CheckStatus `json:"status"`
	// ExitCode is the tool's process exit code. It is meaningful only when
	// Status is PASSED or FAILED.
	ExitCode int `json:"exitCode"`
	// Diagnostics are the findings parsed from the tool's output.
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
	// Output is the tool's combined stdout and stderr.
	Output string `json:"-"`
	// Err holds the reason when Status is ERROR.
	Err string `json:"error,omitempty"`
	// Duration is the wall-clock time the invocation took.
	Duration time.Duration `json:"duration"`
}

// Run represents one complete dispatch: the resolved targets and the result
// of every configured checker against them.
type Run struct {
	// ID correlates all log lines and reports belonging to this run.
	ID RunID `json:"id"`
	// Targets is the resolved target list, exactly as dispatched.
	Targets []string `json:"targets"`
	// Results holds one entry per configured checker, in configuration order.
	Results []CheckResult `json:"results"`
	// StartedAt is when the dispatch began.
	StartedAt time.Time `json:"startedAt"`
	// Duration is the total wall-clock time of the dispatch.
	Duration time.Duration `json:"duration"`
}

// ExitCode returns the process exit code for the whole run: the first
// non-zero checker exit code in configuration order, or zero when every
// checker passed. Checkers that errored before producing an exit code count
// as exit code 1.
func (r Run) ExitCode() int {
	for _, res := range r.Results {
		if res.Status == CheckStatusError {
			return 1
		}
		if res.ExitCode != 0 {
			return res.ExitCode
		}
	}

	return 0
}

// Failed reports whether any checker in the run did not pass.
func (r Run) Failed() bool { return r.ExitCode() != 0 }
