// Package session accumulates per-session statistics: commands
// processed and an estimate of the tokens kept out of the agent's
// context window by summarization.
package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"hookscope/internal/config"
	"hookscope/internal/statefile"
)

// Stats is the persisted per-session record. It is mutated additively
// by every processed event and reported once at session end; ending a
// session never deletes it.
type Stats struct {
	SessionStart      time.Time `json:"session_start"`
	CommandsProcessed int       `json:"commands_processed"`
	OriginalTokens    int       `json:"original_tokens"`
	TokensSaved       int       `json:"tokens_saved"`
}

// pointer is the well-known record naming the current session.
type pointer struct {
	SessionID string `json:"session_id"`
}

// Context carries the explicit session identity and stats location for
// one hook process. It is loaded once and passed to every component
// that needs it; nothing reads ambient session state.
type Context struct {
	ID    string
	stats *statefile.Store[Stats]
}

// Begin generates a new session id, writes it to the pointer file, and
// seeds a zeroed stats record.
func Begin(paths config.Paths, now time.Time) (*Context, error) {
	id := uuid.NewString()

	ptr := statefile.NewStore[pointer](paths.SessionPointer())
	if err := ptr.Write(pointer{SessionID: id}); err != nil {
		return nil, fmt.Errorf("failed to write session pointer: %w", err)
	}

	ctx := &Context{
		ID:    id,
		stats: statefile.NewStore[Stats](paths.StatsFile(id)),
	}
	if err := ctx.stats.Write(Stats{SessionStart: now}); err != nil {
		return nil, fmt.Errorf("failed to seed session stats: %w", err)
	}
	return ctx, nil
}

// Load resolves the current session from the pointer file. The second
// return is false when no session is active.
func Load(paths config.Paths) (*Context, bool, error) {
	ptr := statefile.NewStore[pointer](paths.SessionPointer())
	cur, exists, err := ptr.Read()
	if err != nil {
		return nil, false, err
	}
	if !exists || cur.SessionID == "" {
		return nil, false, nil
	}
	return &Context{
		ID:    cur.SessionID,
		stats: statefile.NewStore[Stats](paths.StatsFile(cur.SessionID)),
	}, true, nil
}

// Record adds one processed command and the token delta between the
// original and sanitized output to the stats record.
func (c *Context) Record(original, sanitized string) error {
	origTokens := CountTokens(original)
	saved := origTokens - CountTokens(sanitized)
	if saved < 0 {
		saved = 0
	}

	return c.stats.Update(func(cur Stats, exists bool) (Stats, bool) {
		if !exists {
			cur.SessionStart = time.Now()
		}
		cur.CommandsProcessed++
		cur.OriginalTokens += origTokens
		cur.TokensSaved += saved
		return cur, true
	})
}

// Stats returns the current record. A missing record reads as zeroed.
func (c *Context) Stats() (Stats, error) {
	cur, _, err := c.stats.Read()
	return cur, err
}

// Report renders the human-readable session summary.
func (c *Context) Report() (string, error) {
	stats, err := c.Stats()
	if err != nil {
		return "", err
	}

	// +1 protects the percentage against a zero denominator.
	pct := float64(stats.TokensSaved) / float64(stats.OriginalTokens+1) * 100

	var b strings.Builder
	fmt.Fprintf(&b, "session %s\n", c.ID)
	if !stats.SessionStart.IsZero() {
		fmt.Fprintf(&b, "  started:   %s\n", stats.SessionStart.Format(time.RFC3339))
	}
	fmt.Fprintf(&b, "  commands:  %d\n", stats.CommandsProcessed)
	fmt.Fprintf(&b, "  tokens in: %d\n", stats.OriginalTokens)
	fmt.Fprintf(&b, "  saved:     %d (%.1f%%)\n", stats.TokensSaved, pct)
	return b.String(), nil
}

// CountTokens estimates tokens as whitespace-delimited words.
func CountTokens(text string) int {
	return len(strings.Fields(text))
}
