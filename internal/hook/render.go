package hook

import (
	"fmt"
	"strings"

	"hookscope/internal/classify"
	"hookscope/internal/extract"
)

// RenderSummary formats an extraction result as the bounded text the
// agent sees in place of the raw output. An empty result renders as an
// empty string, which the dispatcher turns into no stdout at all.
func RenderSummary(command string, family classify.Family, res extract.Result) string {
	if res.Empty() {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "── output summary (%s) ──\n", family)
	if cmd := headerCommand(command); cmd != "" {
		fmt.Fprintf(&b, "command: %s\n", cmd)
	}

	if len(res.Fields) > 0 {
		for _, key := range []string{"error_code", "path", "error_type"} {
			if v, ok := res.Fields[key]; ok {
				fmt.Fprintf(&b, "%s: %s\n", key, v)
			}
		}
	}

	if len(res.Errors) > 0 {
		fmt.Fprintf(&b, "errors (%d):\n", len(res.Errors))
		for _, e := range res.Errors {
			writeBlock(&b, e)
		}
	}

	if len(res.Warnings) > 0 {
		fmt.Fprintf(&b, "warnings (%d):\n", len(res.Warnings))
		for _, w := range res.Warnings {
			writeBlock(&b, w)
		}
	}

	if len(res.RawSnippet) > 0 {
		b.WriteString("no errors or warnings matched; first lines of output:\n")
		for _, line := range res.RawSnippet {
			writeBlock(&b, line)
		}
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// headerCommand trims the command for the summary header, keeping it
// to a single bounded line.
func headerCommand(command string) string {
	const max = 60
	cmd := strings.TrimSpace(command)
	if i := strings.IndexByte(cmd, '\n'); i >= 0 {
		cmd = cmd[:i]
	}
	if len(cmd) > max {
		cmd = cmd[:max] + "..."
	}
	return cmd
}

// writeBlock indents a (possibly multi-line) unit under its section.
func writeBlock(b *strings.Builder, block string) {
	for _, line := range strings.Split(block, "\n") {
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteString("\n")
	}
}
