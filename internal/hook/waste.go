package hook

import (
	"strings"

	"hookscope/internal/config"
)

// WasteEstimate is the advisory result for a pre-execution check.
type WasteEstimate struct {
	Pattern string // the matched high-waste pattern
	Tokens  int    // estimated token cost of running it unquieted
}

// EstimateWaste reports whether command matches a configured high-waste
// pattern that is not already quieted. A quieting flag anywhere in the
// command suppresses the warning for an otherwise-matching command.
// Flags are compared against whole whitespace-delimited words, so "-q"
// quiets "npm install -q" but not "npm install jquery-qtip".
func EstimateWaste(command string, waste config.WasteConfig) (WasteEstimate, bool) {
	words := strings.Fields(command)
	for _, flag := range waste.QuietFlags {
		for _, word := range words {
			if word == flag {
				return WasteEstimate{}, false
			}
		}
	}

	// Costliest pattern wins; ties go to the longer, then the
	// lexicographically smaller pattern, so the pick is stable across
	// runs regardless of map order.
	best := WasteEstimate{}
	for pattern, tokens := range waste.Patterns {
		if !strings.Contains(command, pattern) {
			continue
		}
		switch {
		case tokens > best.Tokens:
		case tokens == best.Tokens && len(pattern) > len(best.Pattern):
		case tokens == best.Tokens && len(pattern) == len(best.Pattern) && pattern < best.Pattern:
		default:
			continue
		}
		best = WasteEstimate{Pattern: pattern, Tokens: tokens}
	}
	return best, best.Pattern != ""
}

// EstimateTokens approximates the token count of text with the common
// four-characters-per-token heuristic.
func EstimateTokens(text string) int {
	if len(text) == 0 {
		return 0
	}
	return (len(text) + 3) / 4
}
