// Package config loads hookscope configuration from the project's
// .hookscope directory. A missing, unreadable, or malformed config file
// is never an error: hooks must keep working with defaults rather than
// block the tool call they observe.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all hookscope configuration.
type Config struct {
	// MaskSecrets controls masking of agent-bound summary text.
	MaskSecrets bool `yaml:"mask_secrets" json:"mask_secrets"`

	// MaskInRaw additionally masks the persisted raw log copy. Off by
	// default: raw logs are a faithful, complete record.
	MaskInRaw bool `yaml:"mask_in_raw" json:"mask_in_raw"`

	// RetentionDays is the age past which raw logs are swept.
	RetentionDays int `yaml:"retention_days" json:"retention_days"`

	Limits Limits      `yaml:"limits" json:"limits"`
	Waste  WasteConfig `yaml:"waste" json:"waste"`
}

// Limits bounds the size of every extraction result.
type Limits struct {
	MaxErrors            int `yaml:"max_errors" json:"max_errors"`
	MaxErrorSnippetLines int `yaml:"max_error_snippet_lines" json:"max_error_snippet_lines"`
	WarnCap              int `yaml:"warn_cap" json:"warn_cap"`
	DupesCap             int `yaml:"dupes_cap" json:"dupes_cap"`
	MaxLineLen           int `yaml:"max_line_len" json:"max_line_len"`
}

// WasteConfig maps high-waste command substrings to estimated token
// costs, plus the flags that mark a matching command as already quiet.
type WasteConfig struct {
	Patterns   map[string]int `yaml:"patterns" json:"patterns"`
	QuietFlags []string       `yaml:"quiet_flags" json:"quiet_flags"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		MaskSecrets:   true,
		MaskInRaw:     false,
		RetentionDays: 14,
		Limits: Limits{
			MaxErrors:            50,
			MaxErrorSnippetLines: 15,
			WarnCap:              10,
			DupesCap:             3,
			MaxLineLen:           500,
		},
		Waste: WasteConfig{
			Patterns: map[string]int{
				"npm install":   4000,
				"npm ci":        4000,
				"yarn install":  4000,
				"pnpm install":  3000,
				"pip install":   3000,
				"cargo build":   5000,
				"go test ./...": 2500,
				"npm run build": 3500,
				"mvn install":   6000,
				"gradle build":  5000,
			},
			QuietFlags: []string{
				"--quiet", "--silent", "-q", "2>/dev/null", "--no-progress",
			},
		},
	}
}

// Load reads configuration from path, merged over defaults. Load never
// fails: any problem reading or parsing the file yields the defaults.
func Load(path string) *Config {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	parsed := DefaultConfig()
	if strings.HasSuffix(path, ".json") {
		err = json.Unmarshal(data, parsed)
	} else {
		err = yaml.Unmarshal(data, parsed)
	}
	if err != nil {
		return cfg
	}

	parsed.normalize()
	return parsed
}

// LoadDir loads configuration from the conventional locations under
// dir, preferring config.yaml over config.json.
func LoadDir(dir string) *Config {
	for _, name := range []string{"config.yaml", "config.json"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return DefaultConfig()
}

// normalize backfills zero or negative limits so a partially specified
// config file cannot disable the bounds.
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.RetentionDays <= 0 {
		c.RetentionDays = def.RetentionDays
	}
	if c.Limits.MaxErrors <= 0 {
		c.Limits.MaxErrors = def.Limits.MaxErrors
	}
	if c.Limits.MaxErrorSnippetLines <= 0 {
		c.Limits.MaxErrorSnippetLines = def.Limits.MaxErrorSnippetLines
	}
	if c.Limits.WarnCap <= 0 {
		c.Limits.WarnCap = def.Limits.WarnCap
	}
	if c.Limits.DupesCap <= 0 {
		c.Limits.DupesCap = def.Limits.DupesCap
	}
	if c.Limits.MaxLineLen <= 0 {
		c.Limits.MaxLineLen = def.Limits.MaxLineLen
	}
	if len(c.Waste.Patterns) == 0 {
		c.Waste.Patterns = def.Waste.Patterns
	}
	if len(c.Waste.QuietFlags) == 0 {
		c.Waste.QuietFlags = def.Waste.QuietFlags
	}
}
