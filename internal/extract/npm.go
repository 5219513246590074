package extract

import (
	"regexp"
	"strings"

	"hookscope/internal/config"
)

// PackageManager extracts structured vendor error blocks from npm-style
// output (npm ERR! lines and their yarn/pnpm equivalents).
type PackageManager struct{}

var (
	npmCodeRe = regexp.MustCompile(`(?i)\b(?:err!?|error)\s+code\s+(\S+)`)
	npmPathRe = regexp.MustCompile(`(?i)\b(?:err!?|error)\s+path\s+(\S+)`)
	npmTypeRe = regexp.MustCompile(`(?i)\b(?:err!?|error)\s+(errno|syscall|summary)\s+(\S.*)`)
)

// noise lines carry no diagnostic value and are excluded from the
// summary (pointers to the full log file, blank ERR! continuations).
var npmNoiseMarkers = []string{
	"a complete log of this run",
	"-debug.log",
	"-debug-0.log",
}

// pmFallbackLines caps the unstructured fallback output.
const pmFallbackLines = 20

// Extract scans for an error-code line, a path line, and an error-type
// line. When any structured marker is found it emits a synthesized
// code/path/type header followed by the raw vendor error lines minus
// noise; otherwise it keeps up to 20 raw matching lines.
func (p *PackageManager) Extract(raw string, limits config.Limits) Result {
	res := Result{}
	lines := splitLines(raw)

	fields := map[string]string{}
	var vendor []string

	for _, line := range lines {
		if m := npmCodeRe.FindStringSubmatch(line); m != nil {
			if _, ok := fields["error_code"]; !ok {
				fields["error_code"] = m[1]
			}
		}
		if m := npmPathRe.FindStringSubmatch(line); m != nil {
			if _, ok := fields["path"]; !ok {
				fields["path"] = m[1]
			}
		}
		if m := npmTypeRe.FindStringSubmatch(line); m != nil {
			if _, ok := fields["error_type"]; !ok {
				fields["error_type"] = strings.TrimSpace(m[2])
			}
		}

		if isVendorErrorLine(line) && !isNpmNoise(line) {
			if len(vendor) < limits.MaxErrorSnippetLines {
				vendor = append(vendor, truncateLine(line, limits.MaxLineLen))
			}
		}
	}

	if len(fields) > 0 {
		res.Fields = fields
		header := buildPMHeader(fields)
		res.Errors = append([]string{header}, vendor...)
		return res
	}

	// No structured marker: fall back to raw matching lines.
	for _, line := range lines {
		if len(res.Errors) >= pmFallbackLines {
			break
		}
		if isVendorErrorLine(line) || isErrorLine(line) {
			res.Errors = append(res.Errors, truncateLine(line, limits.MaxLineLen))
		}
	}
	return res
}

// isVendorErrorLine matches the vendor error prefix forms.
func isVendorErrorLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	lower := strings.ToLower(trimmed)
	for _, prefix := range []string{"npm err!", "npm error"} {
		if strings.HasPrefix(lower, prefix) {
			// A bare continuation ("npm ERR!" and nothing else) is noise.
			rest := strings.TrimSpace(trimmed[len(prefix):])
			return rest != ""
		}
	}
	return strings.HasPrefix(lower, "error ") || strings.HasPrefix(lower, "err!")
}

func isNpmNoise(line string) bool {
	lower := strings.ToLower(line)
	for _, marker := range npmNoiseMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// buildPMHeader synthesizes the one-line summary header from the
// structured fields that were found.
func buildPMHeader(fields map[string]string) string {
	parts := []string{}
	if v, ok := fields["error_code"]; ok {
		parts = append(parts, "code="+v)
	}
	if v, ok := fields["path"]; ok {
		parts = append(parts, "path="+v)
	}
	if v, ok := fields["error_type"]; ok {
		parts = append(parts, "type="+v)
	}
	return "package manager error: " + strings.Join(parts, " ")
}
