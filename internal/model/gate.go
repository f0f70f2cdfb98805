package model

import "time"

// TTL bounds for unlock requests. Values outside the range are rejected,
// never clamped; an omitted TTL falls back to DefaultUnlockTTL.
const (
	MinUnlockTTL     = 10 * time.Second
	MaxUnlockTTL     = time.Hour
	DefaultUnlockTTL = 5 * time.Minute
)

// PIN length bounds, in characters.
const (
	MinPINLength = 4
	MaxPINLength = 32
)

// Biometric prompt reason bounds. An omitted reason falls back to
// DefaultPromptReason.
const (
	MaxReasonLength     = 120
	DefaultPromptReason = "Unlock protected data"
)

// GateStatus describes the externally visible state of the gate.
// UnlockedUntil is nil while the gate is locked, including the case where
// a previous window has already lapsed.
type GateStatus struct {
	UnlockedUntil *time.Time
	CanBiometric  bool
	PINEnabled    bool
}
