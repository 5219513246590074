// Package extract distills unbounded raw tool output into a bounded,
// severity-focused summary. One extraction strategy exists per output
// family; every strategy is a single forward pass over the input and
// degrades to a documented fallback instead of failing on malformed
// input.
package extract

import (
	"strings"

	"hookscope/internal/classify"
	"hookscope/internal/config"
)

// Result is the bounded, structured distillation of one command's raw
// output.
type Result struct {
	// Errors holds ordered error blocks. A multi-line unit (a full
	// traceback) occupies a single element.
	Errors []string

	// Warnings holds ordered warning lines.
	Warnings []string

	// RawSnippet is a bounded sample of the input, used when nothing
	// matched a severity pattern.
	RawSnippet []string

	// Fields holds structured values pulled from vendor error blocks
	// (error_code, path, error_type).
	Fields map[string]string
}

// Empty reports whether the result carries nothing at all.
func (r Result) Empty() bool {
	return len(r.Errors) == 0 && len(r.Warnings) == 0 &&
		len(r.RawSnippet) == 0 && len(r.Fields) == 0
}

// Extractor produces a bounded result from raw output.
type Extractor interface {
	Extract(raw string, limits config.Limits) Result
}

// Registry resolves a family to its extraction strategy. Unknown
// families resolve to the generic extractor at registration time,
// never by runtime probing.
type Registry struct {
	byFamily map[classify.Family]Extractor
	fallback Extractor
}

// NewRegistry returns a registry with all built-in strategies bound.
func NewRegistry() *Registry {
	generic := &Generic{}
	return &Registry{
		byFamily: map[classify.Family]Extractor{
			classify.FamilyGeneric:        generic,
			classify.FamilyPackageManager: &PackageManager{},
			classify.FamilyPython:         &PythonTraceback{},
			classify.FamilyNode:           &NodeStack{},
		},
		fallback: generic,
	}
}

// Get returns the extractor for a family, falling back to generic.
func (r *Registry) Get(family classify.Family) Extractor {
	if e, ok := r.byFamily[family]; ok {
		return e
	}
	return r.fallback
}

// severityKeywords are matched case-insensitively against each line.
var severityKeywords = []string{
	"error", "fail", "exception", "fatal", "critical",
}

var warningKeywords = []string{
	"warning", "warn",
}

// isErrorLine reports whether a line carries an error-grade keyword.
func isErrorLine(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range severityKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// isWarningLine reports whether a line carries a warning-grade keyword.
func isWarningLine(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range warningKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// truncateLine bounds a single line to max runes, marking the cut.
func truncateLine(line string, max int) string {
	if max <= 0 || len(line) <= max {
		return line
	}
	if max <= 3 {
		return line[:max]
	}
	return line[:max-3] + "..."
}

// splitLines splits raw output without allocating per-line copies of
// the trailing newline.
func splitLines(raw string) []string {
	raw = strings.TrimSuffix(raw, "\n")
	if raw == "" {
		return nil
	}
	return strings.Split(raw, "\n")
}
