package statefile

import (
	"time"
)

// RateState is the persisted rate-limiter record.
type RateState struct {
	LastRequestEpoch int64 `json:"last_request_epoch"`
}

// RateLimiter enforces a cooldown window across processes using the
// atomic store. Absence of the state file means not limited.
type RateLimiter struct {
	store *Store[RateState]
}

// NewRateLimiter creates a rate limiter backed by the state file at path.
func NewRateLimiter(path string) *RateLimiter {
	return &RateLimiter{store: NewStore[RateState](path)}
}

// Allow reports whether an action may proceed at now, and records the
// request time when it may. Writers race benignly: every writer follows
// the same read-decide-swap sequence, so the worst outcome is more than
// one writer passing for a single decision, never a corrupt file.
func (r *RateLimiter) Allow(now time.Time, cooldown time.Duration) (bool, error) {
	cur, exists, err := r.store.Read()
	if err != nil {
		// Unreadable state fails open; the write below repairs it.
		exists = false
	}

	if exists {
		last := time.Unix(cur.LastRequestEpoch, 0)
		if now.Sub(last) < cooldown {
			return false, nil
		}
	}

	if err := r.store.Write(RateState{LastRequestEpoch: now.Unix()}); err != nil {
		return true, err
	}
	return true, nil
}
