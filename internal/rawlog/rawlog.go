// Package rawlog persists every observed command output losslessly and
// sweeps records past the retention window.
package rawlog

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// tokenLen is how many hex characters of the command digest go into
// the filename. 48 bits keeps accidental collisions negligible while
// keeping names short.
const tokenLen = 12

// Persister writes raw output records into a log directory.
type Persister struct {
	dir string
}

// NewPersister creates a persister writing into dir.
func NewPersister(dir string) *Persister {
	return &Persister{dir: dir}
}

// FileName derives the deterministic record name for a command at a
// point in time: UTC timestamp plus a digest token of the command, so
// repeated runs of the same command in the same second still collide
// only with themselves, and different commands never overwrite each
// other's records.
func FileName(command string, at time.Time) string {
	sum := sha256.Sum256([]byte(command))
	token := hex.EncodeToString(sum[:])[:tokenLen]
	return fmt.Sprintf("%s-%s.log", at.UTC().Format("20060102-150405"), token)
}

// Write persists content verbatim and returns the record path. The
// record is written once and never mutated or truncated afterwards.
func (p *Persister) Write(command, content string, at time.Time) (string, error) {
	if err := os.MkdirAll(p.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create log directory: %w", err)
	}

	path := filepath.Join(p.dir, FileName(command, at))
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write raw log: %w", err)
	}
	return path, nil
}

// Sweep deletes records in dir whose modification time is older than
// retentionDays. A missing directory is a no-op. Age is judged by
// mtime, never by parsing file names, so foreign files in the
// directory cannot break the sweep. Returns the number of deletions.
func Sweep(dir string, retentionDays int, now time.Time) (int, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read log directory: %w", err)
	}

	cutoff := now.Add(-time.Duration(retentionDays) * 24 * time.Hour)
	deleted := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(dir, entry.Name())); err == nil {
				deleted++
			}
		}
	}
	return deleted, nil
}
