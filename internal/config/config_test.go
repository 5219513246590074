package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_MalformedFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{{{not yaml"), 0644))

	cfg := Load(path)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_YAMLOverridesMergeOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `
mask_in_raw: true
retention_days: 7
limits:
  max_errors: 5
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	cfg := Load(path)
	assert.True(t, cfg.MaskInRaw)
	assert.Equal(t, 7, cfg.RetentionDays)
	assert.Equal(t, 5, cfg.Limits.MaxErrors)
	// Unspecified limits keep their defaults.
	assert.Equal(t, DefaultConfig().Limits.MaxLineLen, cfg.Limits.MaxLineLen)
	assert.NotEmpty(t, cfg.Waste.Patterns)
}

func TestLoad_JSONByExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	body := `{"retention_days": 3, "limits": {"warn_cap": 2}}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	cfg := Load(path)
	assert.Equal(t, 3, cfg.RetentionDays)
	assert.Equal(t, 2, cfg.Limits.WarnCap)
}

func TestLoad_ZeroLimitsBackfilled(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("retention_days: -1\n"), 0644))

	cfg := Load(path)
	assert.Equal(t, DefaultConfig().RetentionDays, cfg.RetentionDays)
}

func TestLoadDir_PrefersYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("retention_days: 5\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"retention_days": 9}`), 0644))

	cfg := LoadDir(dir)
	assert.Equal(t, 5, cfg.RetentionDays)
}

func TestResolvePaths_Layout(t *testing.T) {
	p := ResolvePaths("/tmp/proj")
	assert.Equal(t, "/tmp/proj/.hookscope", p.Base)
	assert.Equal(t, "/tmp/proj/.hookscope/logs", p.Logs)
	assert.Equal(t, "/tmp/proj/.hookscope/cache/session", p.SessionPointer())
	assert.Equal(t, "/tmp/proj/.hookscope/cache/stats-abc.json", p.StatsFile("abc"))
	assert.Equal(t, "/tmp/proj/.hookscope/state/ratelimit.json", p.RateLimitFile())
}

func TestResolvePaths_EnvFallback(t *testing.T) {
	t.Setenv(ProjectRootEnv, "/srv/work")
	p := ResolvePaths("")
	assert.Equal(t, "/srv/work/.hookscope", p.Base)
}
