package checker

import (
	"bufio"
	"regexp"
	"strconv"
	"strings"

	"pycheck/pkg/domain"
)

// diagnosticRe matches the line format shared by mypy, pyright and most
// Python linters:
//
//	path:line: error: message
//	path:line:col: warning: message  [code]
var diagnosticRe = regexp.MustCompile(
	`^(.+?):(\d+)(?::(\d+))?:\s+(error|warning|note):\s+(.*?)(?:\s+\[([\w-]+)\])?\s*$`,
)

// ParseDiagnostics extracts structured diagnostics from a tool's combined
// output. Lines that do not match the common diagnostic format (summary
// lines, tracebacks, progress output) are ignored.
func ParseDiagnostics(output string) []domain.Diagnostic {
	var diags []domain.Diagnostic

	sc := bufio.NewScanner(strings.NewReader(output))
	// some tools print very long single-line messages
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		m := diagnosticRe.FindStringSubmatch(sc.Text())
		if m == nil {
			continue
		}

		line, _ := strconv.Atoi(m[2])
		col := 0
		if m[3] != "" {
			col, _ = strconv.Atoi(m[3])
		}

		diags = append(diags, domain.Diagnostic{
			Path:     m[1],
			Line:     line,
			Column:   col,
			Severity: domain.Severity(m[4]),
			Message:  m[5],
			Code:     m[6],
		})
	}

	return diags
}

// CountBySeverity returns how many of the given diagnostics carry the given
// severity.
func CountBySeverity(diags []domain.Diagnostic, sev domain.Severity) int {
	n := 0
	for _, d := range diags {
		if d.Severity == sev {
			n++
		}
	}

	return n
}
