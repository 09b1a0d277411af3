// Package report renders a dispatch run either as a short human-readable
// summary or as a machine-readable JSON document.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"pycheck/pkg/checker"
	"pycheck/pkg/domain"
)

// WriteText writes a per-checker summary followed by an overall line. Tool
// output itself is streamed during the run, so the text report stays short.
func WriteText(w io.Writer, run domain.Run) error {
	failed := 0
	for _, res := range run.Results {
		switch res.Status {
		case domain.CheckStatusPassed:
			if _, err := fmt.Fprintf(w, "%s: passed (%s)\n",
				res.Checker, res.Duration.Round(time.Millisecond)); err != nil {
				return errors.Wrap(err, "writing report")
			}
		case domain.CheckStatusFailed:
			failed++
			nErr := checker.CountBySeverity(res.Diagnostics, domain.SeverityError)
			if _, err := fmt.Fprintf(w, "%s: failed (exit %d, %d errors, %s)\n",
				res.Checker, res.ExitCode, nErr, res.Duration.Round(time.Millisecond)); err != nil {
				return errors.Wrap(err, "writing report")
			}
		case domain.CheckStatusError:
			failed++
			if _, err := fmt.Fprintf(w, "%s: error (%s)\n", res.Checker, res.Err); err != nil {
				return errors.Wrap(err, "writing report")
			}
		}
	}

	if _, err := fmt.Fprintf(w, "pycheck: %d checker(s), %d failed (%s)\n",
		len(run.Results), failed, run.Duration.Round(time.Millisecond)); err != nil {
		return errors.Wrap(err, "writing report")
	}

	return nil
}

// WriteJSON writes the run as a single JSON document. Durations are reported
// in milliseconds, timestamps in RFC 3339.
func WriteJSON(w io.Writer, run domain.Run) error {
	e := &jx.Encoder{}

	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(run.ID.String()) })
		e.Field("targets", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, t := range run.Targets {
					e.Str(t)
				}
			})
		})
		e.Field("startedAt", func(e *jx.Encoder) { e.Str(run.StartedAt.UTC().Format(time.RFC3339)) })
		e.Field("durationMs", func(e *jx.Encoder) { e.Int64(run.Duration.Milliseconds()) })
		e.Field("exitCode", func(e *jx.Encoder) { e.Int(run.ExitCode()) })
		e.Field("results", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, res := range run.Results {
					encodeResult(e, res)
				}
			})
		})
	})

	if _, err := w.Write(append(e.Bytes(), '\n')); err != nil {
		return errors.Wrap(err, "writing report")
	}

	return nil
}

func encodeResult(e *jx.Encoder, res domain.CheckResult) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("checker", func(e *jx.Encoder) { e.Str(res.Checker) })
		e.Field("status", func(e *jx.Encoder) { e.Str(string(res.Status)) })
		e.Field("exitCode", func(e *jx.Encoder) { e.Int(res.ExitCode) })
		e.Field("durationMs", func(e *jx.Encoder) { e.Int64(res.Duration.Milliseconds()) })
		if res.Err != "" {
			e.Field("error", func(e *jx.Encoder) { e.Str(res.Err) })
		}
		if len(res.Diagnostics) > 0 {
			e.Field("diagnostics", func(e *jx.Encoder) {
				e.Arr(func(e *jx.Encoder) {
					for _, d := range res.Diagnostics {
						encodeDiagnostic(e, d)
					}
				})
			})
		}
	})
}

func encodeDiagnostic(e *jx.Encoder, d domain.Diagnostic) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("path", func(e *jx.Encoder) { e.Str(d.Path) })
		e.Field("line", func(e *jx.Encoder) { e.Int(d.Line) })
		if d.Column > 0 {
			e.Field("column", func(e *jx.Encoder) { e.Int(d.Column) })
		}
		e.Field("severity", func(e *jx.Encoder) { e.Str(string(d.Severity)) })
		e.Field("message", func(e *jx.Encoder) { e.Str(d.Message) })
		if d.Code != "" {
			e.Field("code", func(e *jx.Encoder) { e.Str(d.Code) })
		}
	})
}
