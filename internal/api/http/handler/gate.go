package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/vaultgate/vaultgate/internal/logger"
	"github.com/vaultgate/vaultgate/internal/model"
)

// GateService defines the gate operations exposed over the API.
type GateService interface {
	Status(ctx context.Context) model.GateStatus
	SetPIN(ctx context.Context, pin string) error
	ClearPIN(ctx context.Context) error
	UnlockWithPIN(ctx context.Context, pin string, ttl time.Duration) (time.Time, error)
	UnlockWithBiometric(ctx context.Context, ttl time.Duration, reason string) (time.Time, error)
	LockNow()
}

// Gate handles HTTP endpoints for the sensitive-access gate.
type Gate struct {
	gateService GateService
	logger      *logger.Logger
}

// NewGate creates a new Gate handler.
func NewGate(gateService GateService, logger *logger.Logger) *Gate {
	return &Gate{
		gateService: gateService,
		logger:      logger,
	}
}

type statusResponse struct {
	UnlockedUntil *time.Time `json:"unlocked_until"`
	CanBiometric  bool       `json:"can_biometric"`
	PINEnabled    bool       `json:"pin_enabled"`
	ServerTime    time.Time  `json:"server_time"`
}

type setPINRequest struct {
	PIN string `json:"pin"`
}

type unlockPINRequest struct {
	PIN   string `json:"pin"`
	TTLMs int64  `json:"ttl_ms"`
}

type unlockBiometricRequest struct {
	TTLMs  int64  `json:"ttl_ms"`
	Reason string `json:"reason"`
}

type unlockResponse struct {
	Success       bool       `json:"success"`
	UnlockedUntil *time.Time `json:"unlocked_until,omitempty"`
	Error         string     `json:"error,omitempty"`
}

type resultResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Status returns the gate posture plus the server clock, so callers can
// render expiry countdowns without depending on their own clock.
func (h *Gate) Status(w http.ResponseWriter, r *http.Request) {
	status := h.gateService.Status(r.Context())

	writeJSON(w, http.StatusOK, statusResponse{
		UnlockedUntil: status.UnlockedUntil,
		CanBiometric:  status.CanBiometric,
		PINEnabled:    status.PINEnabled,
		ServerTime:    time.Now(),
	})
}

// SetPIN stores a new PIN, replacing any existing one.
func (h *Gate) SetPIN(w http.ResponseWriter, r *http.Request) {
	var req setPINRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, model.NewValidationError("body", "malformed request body"))
		return
	}

	if err := h.gateService.SetPIN(r.Context(), req.PIN); err != nil {
		h.logger.Error("Gate handler: set PIN failed", "error", err.Error())
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resultResponse{Success: true})
}

// ClearPIN deletes the stored PIN and relocks the gate.
func (h *Gate) ClearPIN(w http.ResponseWriter, r *http.Request) {
	if err := h.gateService.ClearPIN(r.Context()); err != nil {
		h.logger.Error("Gate handler: clear PIN failed", "error", err.Error())
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resultResponse{Success: true})
}

// UnlockWithPIN verifies the submitted PIN and opens the unlock window.
func (h *Gate) UnlockWithPIN(w http.ResponseWriter, r *http.Request) {
	var req unlockPINRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, model.NewValidationError("body", "malformed request body"))
		return
	}

	until, err := h.gateService.UnlockWithPIN(r.Context(), req.PIN, time.Duration(req.TTLMs)*time.Millisecond)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, unlockResponse{Success: true, UnlockedUntil: &until})
}

// UnlockWithBiometric runs the platform challenge and opens the unlock
// window on success.
func (h *Gate) UnlockWithBiometric(w http.ResponseWriter, r *http.Request) {
	var req unlockBiometricRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, model.NewValidationError("body", "malformed request body"))
		return
	}

	until, err := h.gateService.UnlockWithBiometric(r.Context(), time.Duration(req.TTLMs)*time.Millisecond, req.Reason)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, unlockResponse{Success: true, UnlockedUntil: &until})
}

// LockNow closes the unlock window immediately.
func (h *Gate) LockNow(w http.ResponseWriter, r *http.Request) {
	h.gateService.LockNow()

	writeJSON(w, http.StatusOK, resultResponse{Success: true})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
