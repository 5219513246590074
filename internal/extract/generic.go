package extract

import (
	"fmt"

	"hookscope/internal/config"
)

// genericFallbackLines is the bounded sample emitted when no line
// matches a severity keyword.
const genericFallbackLines = 10

// Generic keeps severity-matching lines from any output. It is the
// strategy for unclassified commands and the fallback for families
// without a dedicated implementation.
type Generic struct{}

// Extract keeps error and warning lines up to the configured caps,
// collapsing runs of duplicates. When nothing matches, the first ten
// lines of input are returned as a sample rather than nothing.
func (g *Generic) Extract(raw string, limits config.Limits) Result {
	res := Result{}
	lines := splitLines(raw)

	seen := make(map[string]int)
	// collapsed records, in first-seen order, the lines that exceeded
	// the duplicate cap. Emitting notes from this slice instead of the
	// map keeps the result identical across runs.
	var collapsed []string

	count := func(line string) bool {
		seen[line]++
		if seen[line] == limits.DupesCap+1 {
			collapsed = append(collapsed, line)
		}
		return seen[line] <= limits.DupesCap
	}

	for _, line := range lines {
		switch {
		case isErrorLine(line):
			if count(line) && len(res.Errors) < limits.MaxErrors {
				res.Errors = append(res.Errors, truncateLine(line, limits.MaxLineLen))
			}
		case isWarningLine(line):
			if count(line) && len(res.Warnings) < limits.WarnCap {
				res.Warnings = append(res.Warnings, truncateLine(line, limits.MaxLineLen))
			}
		}
	}

	for _, line := range collapsed {
		res.Warnings = appendBounded(res.Warnings, limits.WarnCap,
			fmt.Sprintf("[%d more occurrences of: %s]", seen[line]-limits.DupesCap, truncateLine(line, 80)))
	}

	if len(res.Errors) == 0 && len(res.Warnings) == 0 {
		for i, line := range lines {
			if i >= genericFallbackLines {
				break
			}
			res.RawSnippet = append(res.RawSnippet, truncateLine(line, limits.MaxLineLen))
		}
	}
	return res
}

func appendBounded(dst []string, limit int, s string) []string {
	if len(dst) >= limit {
		return dst
	}
	return append(dst, s)
}
