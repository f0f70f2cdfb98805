package service

import (
	"context"
	"fmt"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/vaultgate/vaultgate/internal/biometric"
	"github.com/vaultgate/vaultgate/internal/logger"
	"github.com/vaultgate/vaultgate/internal/model"
	"github.com/vaultgate/vaultgate/internal/unlock"
)

// Credentials defines the slice of the credential store the gate uses.
type Credentials interface {
	SetPIN(ctx context.Context, pin string) error
	VerifyPIN(ctx context.Context, pin string) bool
	Clear(ctx context.Context) error
	HasPIN(ctx context.Context) bool
}

// Gate orchestrates PIN and biometric verification against the unlock
// window. It has two logical states, locked and unlocked-until, both
// derived entirely from the unlock state; the gate keeps no state of its
// own beyond the mutex below.
type Gate struct {
	credentials Credentials
	state       *unlock.State
	probe       biometric.Probe
	clock       model.Clock
	logger      *logger.Logger

	// mu serializes credential-coupled mutations (set, clear, and the
	// verify-then-unlock pair) so a PIN clear racing a PIN unlock can
	// never leave the window open under a removed secret. The biometric
	// prompt deliberately runs outside this lock.
	mu sync.Mutex
}

// NewGate creates a Gate over the given collaborators.
func NewGate(
	credentials Credentials,
	state *unlock.State,
	probe biometric.Probe,
	clock model.Clock,
	logger *logger.Logger,
) *Gate {
	return &Gate{
		credentials: credentials,
		state:       state,
		probe:       probe,
		clock:       clock,
		logger:      logger,
	}
}

// Status reports the current gate posture: the unlock window end if one
// is still ahead of the clock, biometric availability and whether a PIN
// is configured. A lapsed window reads as locked without any prior call
// having observed it.
func (g *Gate) Status(ctx context.Context) model.GateStatus {
	status := model.GateStatus{
		CanBiometric: g.probe.Available(),
		PINEnabled:   g.credentials.HasPIN(ctx),
	}

	if until, ok := g.state.UnlockedUntil(); ok && g.clock.Now().Before(until) {
		status.UnlockedUntil = &until
	}

	return status
}

// SetPIN validates and stores a new PIN, replacing any existing one.
func (g *Gate) SetPIN(ctx context.Context, pin string) error {
	if err := validatePIN(pin); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.credentials.SetPIN(ctx, pin); err != nil {
		return fmt.Errorf("failed to set PIN: %w", err)
	}

	return nil
}

// ClearPIN removes the stored PIN and forces a relock: an unlock obtained
// with a credential that no longer exists cannot be trusted, so the
// window closes even if its TTL has not lapsed.
func (g *Gate) ClearPIN(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.credentials.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear PIN: %w", err)
	}
	g.state.LockNow()

	g.logger.Info("Gate service: PIN cleared, gate relocked")
	return nil
}

// UnlockWithPIN verifies pin and, on success, opens the unlock window for
// ttl. A zero ttl selects the default. On any failure the window is left
// untouched; unlocking happens only as the terminal step of a fully
// successful verification.
func (g *Gate) UnlockWithPIN(ctx context.Context, pin string, ttl time.Duration) (time.Time, error) {
	if err := validatePIN(pin); err != nil {
		return time.Time{}, err
	}
	ttl, err := normalizeTTL(ttl)
	if err != nil {
		return time.Time{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.credentials.HasPIN(ctx) {
		return time.Time{}, model.ErrPINNotSet
	}
	if !g.credentials.VerifyPIN(ctx, pin) {
		g.logger.Info("Gate service: PIN verification failed")
		return time.Time{}, model.ErrInvalidPIN
	}

	until := g.state.UnlockFor(ttl)
	g.logger.Info("Gate service: unlocked via PIN",
		"unlocked_until", until.Format(time.RFC3339))
	return until, nil
}

// UnlockWithBiometric runs the platform challenge and, on success, opens
// the unlock window for ttl. The prompt suspends without holding any gate
// or unlock-state lock, so status queries and lock requests proceed while
// it is outstanding. A LockNow racing an in-flight prompt resolves by
// completion order, last writer wins: if the lock lands after the
// prompt's unlock the gate stays locked, and the other way around it
// stays unlocked.
func (g *Gate) UnlockWithBiometric(ctx context.Context, ttl time.Duration, reason string) (time.Time, error) {
	ttl, err := normalizeTTL(ttl)
	if err != nil {
		return time.Time{}, err
	}
	reason, err = normalizeReason(reason)
	if err != nil {
		return time.Time{}, err
	}

	if !g.probe.Available() {
		return time.Time{}, model.ErrBiometricUnavailable
	}

	if err := g.probe.Prompt(ctx, reason); err != nil {
		g.logger.Info("Gate service: biometric challenge failed", "error", err.Error())
		return time.Time{}, model.ErrBiometricDeclined
	}

	until := g.state.UnlockFor(ttl)
	g.logger.Info("Gate service: unlocked via biometric",
		"unlocked_until", until.Format(time.RFC3339))
	return until, nil
}

// LockNow closes the unlock window immediately. It always succeeds.
func (g *Gate) LockNow() {
	g.state.LockNow()
	g.logger.Info("Gate service: locked")
}

func validatePIN(pin string) error {
	length := utf8.RuneCountInString(pin)
	if length < model.MinPINLength || length > model.MaxPINLength {
		return model.NewValidationError("pin",
			fmt.Sprintf("length must be between %d and %d characters", model.MinPINLength, model.MaxPINLength))
	}
	for _, r := range pin {
		if !unicode.IsPrint(r) {
			return model.NewValidationError("pin", "must contain only printable characters")
		}
	}
	return nil
}

// normalizeTTL applies the default for an omitted TTL and rejects
// out-of-range values instead of clamping them, keeping caller
// expectations explicit.
func normalizeTTL(ttl time.Duration) (time.Duration, error) {
	if ttl == 0 {
		return model.DefaultUnlockTTL, nil
	}
	if ttl < model.MinUnlockTTL || ttl > model.MaxUnlockTTL {
		return 0, model.NewValidationError("ttl_ms",
			fmt.Sprintf("must be between %d and %d milliseconds",
				model.MinUnlockTTL.Milliseconds(), model.MaxUnlockTTL.Milliseconds()))
	}
	return ttl, nil
}

func normalizeReason(reason string) (string, error) {
	if reason == "" {
		return model.DefaultPromptReason, nil
	}
	if utf8.RuneCountInString(reason) > model.MaxReasonLength {
		return "", model.NewValidationError("reason",
			fmt.Sprintf("length must be at most %d characters", model.MaxReasonLength))
	}
	return reason, nil
}
