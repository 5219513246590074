package config

import (
	"os"
	"path/filepath"
)

// ProjectRootEnv locates the project whose tool invocations are being
// observed. The hosting agent exports it for every hook process.
const ProjectRootEnv = "CLAUDE_PROJECT_DIR"

// Paths resolves the on-disk layout under a project root.
type Paths struct {
	Base  string // <root>/.hookscope
	Logs  string // raw output files
	Cache string // session pointer + stats
	State string // rate limiter state
}

// ResolvePaths returns the hookscope directory layout for root. An
// empty root falls back to ProjectRootEnv, then the working directory.
func ResolvePaths(root string) Paths {
	if root == "" {
		root = os.Getenv(ProjectRootEnv)
	}
	if root == "" {
		if cwd, err := os.Getwd(); err == nil {
			root = cwd
		} else {
			root = "."
		}
	}
	base := filepath.Join(root, ".hookscope")
	return Paths{
		Base:  base,
		Logs:  filepath.Join(base, "logs"),
		Cache: filepath.Join(base, "cache"),
		State: filepath.Join(base, "state"),
	}
}

// SessionPointer is the well-known file naming the current session id.
func (p Paths) SessionPointer() string {
	return filepath.Join(p.Cache, "session")
}

// StatsFile returns the stats record path for a session id.
func (p Paths) StatsFile(sessionID string) string {
	return filepath.Join(p.Cache, "stats-"+sessionID+".json")
}

// RateLimitFile is the installation-wide rate limiter state file.
func (p Paths) RateLimitFile() string {
	return filepath.Join(p.State, "ratelimit.json")
}

// DiagnosticLog is the hook's own rotating debug log.
func (p Paths) DiagnosticLog() string {
	return filepath.Join(p.Base, "hookscope.log")
}
