package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vaultgate/vaultgate/internal/model"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "validation error",
			err:  model.NewValidationError("ttl_ms", "must be between 10000 and 3600000 milliseconds"),
			want: http.StatusBadRequest,
		},
		{
			name: "PIN not set",
			err:  model.ErrPINNotSet,
			want: http.StatusPreconditionFailed,
		},
		{
			name: "invalid PIN",
			err:  model.ErrInvalidPIN,
			want: http.StatusForbidden,
		},
		{
			name: "biometric declined",
			err:  model.ErrBiometricDeclined,
			want: http.StatusForbidden,
		},
		{
			name: "biometric unavailable",
			err:  model.ErrBiometricUnavailable,
			want: http.StatusConflict,
		},
		{
			name: "unknown error",
			err:  errors.New("database gone"),
			want: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}

func TestMessageFromError_HidesInternalDetails(t *testing.T) {
	msg := messageFromError(errors.New("pq: connection refused on 10.0.0.5"))
	assert.Equal(t, "internal server error", msg)
}

func TestMessageFromError_WrappedDomainError(t *testing.T) {
	wrapped := errors.Join(errors.New("verify"), model.ErrInvalidPIN)
	assert.Equal(t, "Invalid PIN", messageFromError(wrapped))
	assert.Equal(t, http.StatusForbidden, statusFromError(wrapped))
}
