// Package statefile provides crash-safe persistence for small state
// files shared across overlapping hook processes. Every write goes
// through a temp-file-then-rename swap, so readers never observe a
// partially written file and a racing writer can at worst clobber a
// peer's fully written value, never corrupt it.
package statefile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store reads and atomically replaces one JSON state file.
type Store[T any] struct {
	path string
}

// NewStore creates a store for the state file at path.
func NewStore[T any](path string) *Store[T] {
	return &Store[T]{path: path}
}

// Path returns the target state file path.
func (s *Store[T]) Path() string {
	return s.path
}

// Read returns the current value. The second return is false when the
// state file does not exist, which callers treat as "use the zero
// state" rather than an error.
func (s *Store[T]) Read() (T, bool, error) {
	var val T

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return val, false, nil
	}
	if err != nil {
		return val, false, fmt.Errorf("failed to read state file: %w", err)
	}

	if err := json.Unmarshal(data, &val); err != nil {
		return val, false, fmt.Errorf("failed to parse state file: %w", err)
	}
	return val, true, nil
}

// Write atomically replaces the state file with val.
//
// Protocol: marshal, write to a uniquely named temp file in the target
// directory (rename must not cross filesystems), chmod 0600 before any
// payload bytes land, then rename over the target. The temp file is
// removed on every error path.
func (s *Store[T]) Write(val T) error {
	data, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}
	tmpPath := tmp.Name()

	// Restrict permissions before the payload is written. Some
	// filesystems silently widen this to 0644; that is tolerated.
	_ = tmp.Chmod(0600)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp state file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to swap state file: %w", err)
	}

	// Post-swap check: the target must exist and be non-empty.
	info, err := os.Stat(s.path)
	if err != nil {
		return fmt.Errorf("state file missing after swap: %w", err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("state file empty after swap: %s", s.path)
	}
	return nil
}

// Update applies fn to the current value and writes the result when fn
// reports a change. fn receives the current value and whether the state
// file existed; returning false skips the write.
func (s *Store[T]) Update(fn func(cur T, exists bool) (T, bool)) error {
	cur, exists, err := s.Read()
	if err != nil {
		// A corrupt state file is replaced, not fatal: proceed from
		// the zero value so the next write repairs it.
		var zero T
		cur, exists = zero, false
	}

	next, write := fn(cur, exists)
	if !write {
		return nil
	}
	return s.Write(next)
}
