package model

import "time"

// Clock abstracts wall-clock time for components that evaluate unlock
// expiry, so tests can drive the gate with a synthetic clock.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock backed by time.Now.
type SystemClock struct{}

// Now returns the current wall-clock time.
func (SystemClock) Now() time.Time {
	return time.Now()
}
