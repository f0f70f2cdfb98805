package handler

import (
	"errors"
	"net/http"

	"github.com/vaultgate/vaultgate/internal/model"
)

// writeError maps a domain error to an HTTP status and a structured
// {success:false, error} body. Every failure the gate can produce is
// recovered here; nothing is thrown across the boundary, and internal
// details never leave the process.
func (h *Gate) writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFromError(err), resultResponse{
		Success: false,
		Error:   messageFromError(err),
	})
}

func statusFromError(err error) int {
	var validationErr *model.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest
	}

	switch {
	case errors.Is(err, model.ErrPINNotSet):
		return http.StatusPreconditionFailed
	case errors.Is(err, model.ErrInvalidPIN), errors.Is(err, model.ErrBiometricDeclined):
		return http.StatusForbidden
	case errors.Is(err, model.ErrBiometricUnavailable):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func messageFromError(err error) string {
	var validationErr *model.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Error()
	}

	switch {
	case errors.Is(err, model.ErrPINNotSet):
		return "PIN not set"
	case errors.Is(err, model.ErrInvalidPIN):
		return "Invalid PIN"
	case errors.Is(err, model.ErrBiometricDeclined):
		return "Biometric verification failed"
	case errors.Is(err, model.ErrBiometricUnavailable):
		return "Biometric unavailable on this platform"
	default:
		return "internal server error"
	}
}
