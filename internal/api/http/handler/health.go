package handler

import (
	"context"
	"net/http"

	"github.com/vaultgate/vaultgate/internal/logger"
)

// Pinger checks liveness of the persistence backend.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health handles the liveness endpoint.
type Health struct {
	pinger Pinger
	logger *logger.Logger
}

// NewHealth creates a new Health handler.
func NewHealth(pinger Pinger, logger *logger.Logger) *Health {
	return &Health{
		pinger: pinger,
		logger: logger,
	}
}

// Live reports whether the server and its database are reachable.
func (h *Health) Live(w http.ResponseWriter, r *http.Request) {
	if err := h.pinger.Ping(r.Context()); err != nil {
		h.logger.Error("Health handler: database ping failed", "error", err.Error())
		writeJSON(w, http.StatusServiceUnavailable, resultResponse{Success: false, Error: "database unavailable"})
		return
	}

	writeJSON(w, http.StatusOK, resultResponse{Success: true})
}
