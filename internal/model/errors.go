package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNoCredential is returned by a CredentialStore when no PIN
	// credential is stored.
	ErrNoCredential = errors.New("no stored credential")
	// ErrPINNotSet is returned on PIN unlock attempts while no PIN is
	// configured.
	ErrPINNotSet = errors.New("PIN not set")
	// ErrInvalidPIN is returned when PIN verification fails.
	ErrInvalidPIN = errors.New("invalid PIN")
	// ErrBiometricUnavailable is returned when a biometric unlock is
	// requested on a platform without the capability.
	ErrBiometricUnavailable = errors.New("biometric unavailable")
	// ErrBiometricDeclined is returned when the platform challenge fails,
	// is declined or is cancelled by the user.
	ErrBiometricDeclined = errors.New("biometric declined")
)

// ValidationError reports malformed or out-of-range input. It is raised
// before any state mutation, so a request failing validation leaves the
// gate exactly as it was.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a ValidationError for the given input field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
