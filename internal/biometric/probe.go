// Package biometric abstracts the host platform's biometric challenge.
// A darwin implementation drives Touch ID through the LocalAuthentication
// framework; every other platform gets a stub that reports the capability
// as unavailable. The concrete probe is picked at build time via build
// constraints on New.
package biometric

import (
	"context"
	"errors"
)

var (
	// ErrNotAvailable is returned when the platform offers no biometric
	// capability.
	ErrNotAvailable = errors.New("biometric: not available on this platform")
	// ErrDeclined is returned when the platform challenge fails, is
	// declined or is cancelled by the user. Cancellation is not reported
	// as a distinct state.
	ErrDeclined = errors.New("biometric: challenge declined")
)

// Probe detects and drives the platform biometric capability.
//
// Available is side-effect free and cheap enough to call on every status
// query. Prompt blocks until the platform challenge resolves and honors
// ctx cancellation; implementations never expose biometric template data.
type Probe interface {
	Available() bool
	Prompt(ctx context.Context, reason string) error
}
