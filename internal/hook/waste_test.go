package hook

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hookscope/internal/config"
)

func TestEstimateWaste_Match(t *testing.T) {
	waste := config.DefaultConfig().Waste

	est, ok := EstimateWaste("cd app && npm install", waste)
	assert.True(t, ok)
	assert.Equal(t, "npm install", est.Pattern)
	assert.Equal(t, waste.Patterns["npm install"], est.Tokens)
}

func TestEstimateWaste_NoMatch(t *testing.T) {
	_, ok := EstimateWaste("git status", config.DefaultConfig().Waste)
	assert.False(t, ok)
}

// A quieting flag suppresses the warning for an otherwise-matching command.
func TestEstimateWaste_QuietFlagSuppresses(t *testing.T) {
	waste := config.DefaultConfig().Waste

	for _, cmd := range []string{
		"npm install --silent",
		"npm install -q",
		"pip install requests --quiet",
		"npm install 2>/dev/null",
	} {
		_, ok := EstimateWaste(cmd, waste)
		assert.False(t, ok, "command %q should be quieted", cmd)
	}
}

// Quiet flags match whole words only; a flag appearing inside an
// ordinary argument must not suppress the warning.
func TestEstimateWaste_FlagInsideWordDoesNotQuiet(t *testing.T) {
	waste := config.DefaultConfig().Waste

	est, ok := EstimateWaste("npm install jquery-qtip", waste)
	assert.True(t, ok, "-q inside jquery-qtip is not a quiet flag")
	assert.Equal(t, "npm install", est.Pattern)

	_, ok = EstimateWaste("pip install --quieter-maybe requests", waste)
	assert.True(t, ok, "--quiet inside --quieter-maybe is not a quiet flag")
}

func TestEstimateWaste_EqualCostTiebreakIsDeterministic(t *testing.T) {
	waste := config.WasteConfig{
		Patterns: map[string]int{
			"npm install": 4000,
			"npm i":       4000,
			"install":     4000,
		},
	}
	for i := 0; i < 50; i++ {
		est, ok := EstimateWaste("npm install left-pad", waste)
		assert.True(t, ok)
		assert.Equal(t, "npm install", est.Pattern, "run %d", i)
	}
}

func TestEstimateWaste_PicksCostliestPattern(t *testing.T) {
	waste := config.WasteConfig{
		Patterns: map[string]int{
			"npm":         100,
			"npm install": 4000,
		},
	}
	est, ok := EstimateWaste("npm install left-pad", waste)
	assert.True(t, ok)
	assert.Equal(t, "npm install", est.Pattern)
	assert.Equal(t, 4000, est.Tokens)
}

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, EstimateTokens(""))
	assert.Equal(t, 1, EstimateTokens("abc"))
	assert.Equal(t, 1, EstimateTokens("abcd"))
	assert.Equal(t, 2, EstimateTokens("abcde"))
}
