package extract

import (
	"regexp"
	"strings"

	"hookscope/internal/config"
)

// NodeStack extracts error headers and their "at ..." stack frames from
// Node-style runtime output.
type NodeStack struct{}

var (
	// Error headers: "TypeError: x is not a function",
	// "UnhandledPromiseRejection: ...", "Error: connect ECONNREFUSED".
	nodeErrorHeaderRe = regexp.MustCompile(`^\s*(\w*(Error|Exception)|UnhandledPromiseRejection)\b.*:`)

	nodeFrameRe = regexp.MustCompile(`^\s+at\s+\S`)
)

const (
	// nodeFrameCap bounds the frames kept per stack.
	nodeFrameCap = 15

	// nodeVendorCarveOut frames are always kept, even when they point
	// into bundled dependency code.
	nodeVendorCarveOut = 3
)

// Extract keeps each error header plus up to 15 of its frames. The
// first 3 frames survive unconditionally; beyond that, frames pointing
// into node_modules are suppressed to reduce noise. A non-frame line
// ends the stack and is itself emitted when it looks like an error.
func (n *NodeStack) Extract(raw string, limits config.Limits) Result {
	res := Result{}
	lines := splitLines(raw)

	inStack := false
	framesSeen := 0
	framesKept := 0

	emit := func(line string) {
		if len(res.Errors) < limits.MaxErrors {
			res.Errors = append(res.Errors, truncateLine(line, limits.MaxLineLen))
		}
	}

	for _, line := range lines {
		if inStack {
			if nodeFrameRe.MatchString(line) {
				framesSeen++
				// Suppressed vendored frames do not consume the cap:
				// app frames after a long vendored run are still kept.
				if framesKept >= nodeFrameCap {
					continue
				}
				if framesSeen > nodeVendorCarveOut && isVendoredFrame(line) {
					continue
				}
				emit(line)
				framesKept++
				continue
			}

			// Non-frame line ends the stack.
			inStack = false
			framesSeen = 0
			framesKept = 0
			if nodeErrorHeaderRe.MatchString(line) {
				emit(line)
				inStack = true
				continue
			}
			if isErrorLine(line) {
				emit(line)
			} else if isWarningLine(line) && len(res.Warnings) < limits.WarnCap {
				res.Warnings = append(res.Warnings, truncateLine(line, limits.MaxLineLen))
			}
			continue
		}

		if nodeErrorHeaderRe.MatchString(line) {
			emit(line)
			inStack = true
			framesSeen = 0
			framesKept = 0
			continue
		}

		switch {
		case isErrorLine(line):
			emit(line)
		case isWarningLine(line):
			if len(res.Warnings) < limits.WarnCap {
				res.Warnings = append(res.Warnings, truncateLine(line, limits.MaxLineLen))
			}
		}
	}
	return res
}

func isVendoredFrame(line string) bool {
	return strings.Contains(line, "node_modules/") ||
		strings.Contains(line, `node_modules\`)
}
