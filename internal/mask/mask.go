// Package mask redacts credential-shaped substrings from text destined
// for the agent's context window or, when explicitly enabled, for the
// persisted raw logs.
package mask

import "regexp"

// Placeholder replaces every masked match.
const Placeholder = "[REDACTED]"

// PatternSetVersion identifies the built-in pattern list. Bump it when
// the list below changes so logs can record which set was in effect.
const PatternSetVersion = 1

// defaultPatterns is the versioned credential pattern set. Order
// matters: assignments are matched before bare token shapes so the
// whole "KEY=value" pair is replaced, not just the value.
var defaultPatterns = []*regexp.Regexp{
	// KEY=value / key: value credential assignments.
	regexp.MustCompile(`(?i)\b(api[_-]?key|secret|password|passwd|token|auth)\s*[=:]\s*['"]?[A-Za-z0-9_\-./+]{8,}['"]?`),
	// Authorization: Bearer <token>
	regexp.MustCompile(`(?i)\bbearer\s+[A-Za-z0-9_\-.~+/]{16,}=*`),
	// OpenAI / Anthropic style secret keys.
	regexp.MustCompile(`\bsk-[A-Za-z0-9_\-]{16,}\b`),
	// GitHub tokens (classic and fine-grained).
	regexp.MustCompile(`\b(ghp|gho|ghu|ghs|ghr)_[A-Za-z0-9]{36,}\b`),
	regexp.MustCompile(`\bgithub_pat_[A-Za-z0-9_]{22,}\b`),
	// AWS access key ids.
	regexp.MustCompile(`\b(AKIA|ASIA)[0-9A-Z]{16}\b`),
	// JWTs: three dot-separated base64url segments.
	regexp.MustCompile(`\beyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}\b`),
}

// Masker replaces credential-shaped substrings with Placeholder.
type Masker struct {
	patterns []*regexp.Regexp
}

// New returns a masker with the built-in pattern set.
func New() *Masker {
	return &Masker{patterns: defaultPatterns}
}

// NewWithPatterns returns a masker with a custom pattern set,
// falling back to the built-in set when none are given.
func NewWithPatterns(patterns []*regexp.Regexp) *Masker {
	if len(patterns) == 0 {
		return New()
	}
	return &Masker{patterns: patterns}
}

// Apply returns text with every credential-shaped match replaced.
func (m *Masker) Apply(text string) string {
	for _, re := range m.patterns {
		text = re.ReplaceAllString(text, Placeholder)
	}
	return text
}
