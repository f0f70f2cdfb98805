//go:build !darwin || !cgo

package biometric

import "context"

// UnsupportedProbe is the stub for platforms without a biometric
// integration. Available always reports false; callers are expected to
// guard Prompt behind it.
type UnsupportedProbe struct{}

// New creates the stub biometric probe.
func New() *UnsupportedProbe {
	return &UnsupportedProbe{}
}

// Available always reports false.
func (*UnsupportedProbe) Available() bool {
	return false
}

// Prompt always fails with ErrNotAvailable.
func (*UnsupportedProbe) Prompt(_ context.Context, _ string) error {
	return ErrNotAvailable
}
