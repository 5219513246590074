package extract

import (
	"regexp"
	"strings"

	"hookscope/internal/config"
)

// PythonTraceback extracts interpreter tracebacks as indivisible units.
//
// The pass runs a two-state machine: SCANNING emits severity-matching
// lines individually; a traceback-opening line switches to
// IN_TRACEBACK, which buffers every line until the terminating
// "SomeError: ..." line, at which point the whole buffered block is
// flushed verbatim as one unit.
type PythonTraceback struct{}

var (
	tracebackOpenRe = regexp.MustCompile(`^Traceback \(most recent call last\):`)

	// A traceback terminates on "NameError: ...", "custom.ValueError",
	// "SomeException" and similar exception-name lines.
	tracebackEndRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*(Error|Exception)\b.*`)
)

// Extract runs the single-pass state machine over raw.
func (p *PythonTraceback) Extract(raw string, limits config.Limits) Result {
	res := Result{}
	lines := splitLines(raw)

	inTraceback := false
	var buffer []string

	flush := func() {
		if len(buffer) == 0 {
			return
		}
		if len(res.Errors) < limits.MaxErrors {
			res.Errors = append(res.Errors, strings.Join(buffer, "\n"))
		}
		buffer = nil
	}

	for _, line := range lines {
		if inTraceback {
			buffer = append(buffer, line)
			if tracebackEndRe.MatchString(line) {
				flush()
				inTraceback = false
			}
			continue
		}

		if tracebackOpenRe.MatchString(line) {
			inTraceback = true
			buffer = append(buffer, line)
			continue
		}

		switch {
		case isErrorLine(line):
			if len(res.Errors) < limits.MaxErrors {
				res.Errors = append(res.Errors, truncateLine(line, limits.MaxLineLen))
			}
		case isWarningLine(line):
			if len(res.Warnings) < limits.WarnCap {
				res.Warnings = append(res.Warnings, truncateLine(line, limits.MaxLineLen))
			}
		}
	}

	// An unterminated traceback at end of input is flushed as-is,
	// never silently dropped.
	flush()
	return res
}
