package report_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"pycheck/pkg/domain"
	"pycheck/pkg/report"
)

func sampleRun() domain.Run {
	return domain.Run{
		ID:        domain.NewRunID(),
		Targets:   []string{"--strict", "a.py"},
		StartedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Duration:  750 * time.Millisecond,
		Results: []domain.CheckResult{
			{
				Checker:  "mypy",
				Status:   domain.CheckStatusFailed,
				ExitCode: 1,
				Duration: 600 * time.Millisecond,
				Diagnostics: []domain.Diagnostic{
					{
						Path:     "a.py",
						Line:     3,
						Column:   9,
						Severity: domain.SeverityError,
						Message:  "Incompatible return value",
						Code:     "return-value",
					},
				},
			},
			{
				Checker:  "pyright",
				Status:   domain.CheckStatusPassed,
				Duration: 700 * time.Millisecond,
			},
		},
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteText(&buf, sampleRun()))

	out := buf.String()
	require.Contains(t, out, "mypy: failed (exit 1, 1 errors, 600ms)")
	require.Contains(t, out, "pyright: passed (700ms)")
	require.Contains(t, out, "pycheck: 2 checker(s), 1 failed (750ms)")
}

func TestWriteTextErroredChecker(t *testing.T) {
	run := domain.Run{
		Results: []domain.CheckResult{
			{Checker: "ghost", Status: domain.CheckStatusError, Err: "checker not found"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, report.WriteText(&buf, run))
	require.Contains(t, buf.String(), "ghost: error (checker not found)")
	require.Contains(t, buf.String(), "1 checker(s), 1 failed")
}

func TestWriteJSON(t *testing.T) {
	run := sampleRun()

	var buf bytes.Buffer
	require.NoError(t, report.WriteJSON(&buf, run))

	// the document must be valid JSON and carry the run verbatim
	var doc struct {
		ID         string   `json:"id"`
		Targets    []string `json:"targets"`
		StartedAt  string   `json:"startedAt"`
		DurationMs int64    `json:"durationMs"`
		ExitCode   int      `json:"exitCode"`
		Results    []struct {
			Checker     string `json:"checker"`
			Status      string `json:"status"`
			ExitCode    int    `json:"exitCode"`
			Diagnostics []struct {
				Path     string `json:"path"`
				Line     int    `json:"line"`
				Column   int    `json:"column"`
				Severity string `json:"severity"`
				Message  string `json:"message"`
				Code     string `json:"code"`
			} `json:"diagnostics"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	require.Equal(t, run.ID.String(), doc.ID)
	require.Equal(t, []string{"--strict", "a.py"}, doc.Targets)
	require.Equal(t, "2026-08-01T12:00:00Z", doc.StartedAt)
	require.Equal(t, int64(750), doc.DurationMs)
	require.Equal(t, 1, doc.ExitCode)

	require.Len(t, doc.Results, 2)
	require.Equal(t, "mypy", doc.Results[0].Checker)
	require.Equal(t, "FAILED", doc.Results[0].Status)
	require.Len(t, doc.Results[0].Diagnostics, 1)
	require.Equal(t, "return-value", doc.Results[0].Diagnostics[0].Code)
	require.Empty(t, doc.Results[1].Diagnostics, "passed checker should omit diagnostics")
}
