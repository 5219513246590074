package hook

import (
	"strings"
	"testing"

	"hookscope/internal/classify"
	"hookscope/internal/extract"
)

func TestRenderSummary_EmptyResultRendersNothing(t *testing.T) {
	if got := RenderSummary("ls", classify.FamilyGeneric, extract.Result{}); got != "" {
		t.Errorf("empty result rendered %q", got)
	}
}

func TestRenderSummary_SectionsAndFieldOrder(t *testing.T) {
	res := extract.Result{
		Errors:   []string{"error: one", "line a\nline b"},
		Warnings: []string{"warning: careful"},
		Fields: map[string]string{
			"error_type": "ENOENT",
			"error_code": "E404",
			"path":       "/tmp/x",
		},
	}
	got := RenderSummary("npm install", classify.FamilyPackageManager, res)

	if !strings.Contains(got, "output summary (package-manager)") {
		t.Errorf("missing header: %q", got)
	}
	if !strings.Contains(got, "command: npm install") {
		t.Errorf("command missing from header:\n%s", got)
	}
	// Fields render in a fixed order regardless of map iteration.
	codeIdx := strings.Index(got, "error_code: E404")
	pathIdx := strings.Index(got, "path: /tmp/x")
	typeIdx := strings.Index(got, "error_type: ENOENT")
	if codeIdx < 0 || pathIdx < 0 || typeIdx < 0 || !(codeIdx < pathIdx && pathIdx < typeIdx) {
		t.Errorf("field order wrong:\n%s", got)
	}
	if !strings.Contains(got, "  line a\n  line b") {
		t.Errorf("multi-line unit not indented as a block:\n%s", got)
	}
}

func TestRenderSummary_CommandBoundedToOneLine(t *testing.T) {
	res := extract.Result{Errors: []string{"error: boom"}}
	long := "npm install " + strings.Repeat("left-pad ", 20) + "\nsecond line"
	got := RenderSummary(long, classify.FamilyPackageManager, res)

	for _, line := range strings.Split(got, "\n") {
		if strings.HasPrefix(line, "command: ") {
			if len(line) > len("command: ")+63 {
				t.Errorf("command line too long: %q", line)
			}
			if strings.Contains(line, "second line") {
				t.Errorf("command line crossed a newline: %q", line)
			}
			return
		}
	}
	t.Fatalf("no command line rendered:\n%s", got)
}

func TestRenderSummary_SnippetSection(t *testing.T) {
	res := extract.Result{RawSnippet: []string{"first", "second"}}
	got := RenderSummary("ls", classify.FamilyGeneric, res)
	if !strings.Contains(got, "first lines of output") {
		t.Errorf("snippet section missing:\n%s", got)
	}
}
