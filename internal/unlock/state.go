// Package unlock holds the process-wide unlock window. The window is the
// single source of truth for the gate's locked/unlocked distinction: no
// separate boolean flag exists, and no timer ever fires a lock transition.
// Expiry is evaluated lazily by readers against an injected clock.
package unlock

import (
	"sync"
	"time"

	"github.com/vaultgate/vaultgate/internal/model"
)

// State records until when the gate is unlocked. The zero until value
// means locked. State starts locked and lives for the process lifetime.
type State struct {
	clock model.Clock

	mu    sync.Mutex
	until time.Time
}

// NewState creates a locked State using the given clock.
func NewState(clock model.Clock) *State {
	return &State{clock: clock}
}

// UnlockFor opens the window for the given TTL and returns its end.
// Any prior window is replaced outright; the new expiry is an absolute
// reset, never an extension of what was there before. The TTL is assumed
// to be validated by the caller.
func (s *State) UnlockFor(ttl time.Duration) time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.until = s.clock.Now().Add(ttl)
	return s.until
}

// LockNow closes the window unconditionally. It always succeeds,
// regardless of current state.
func (s *State) LockNow() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.until = time.Time{}
}

// UnlockedUntil returns the end of the current window and whether one is
// set. This is a pure read: whether the instant has already passed is the
// caller's decision, which keeps the comparison against "now" at the read
// sites where a clock is in hand.
func (s *State) UnlockedUntil() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.until, !s.until.IsZero()
}

// IsUnlocked reports whether the gate is unlocked at the given instant.
func (s *State) IsUnlocked(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.until.IsZero() && now.Before(s.until)
}
