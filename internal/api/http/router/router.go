package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vaultgate/vaultgate/internal/api/http/handler"
	"github.com/vaultgate/vaultgate/internal/api/http/middleware"
	"github.com/vaultgate/vaultgate/internal/logger"
)

// Router wires the gate handlers and middleware into an HTTP route table.
type Router struct {
	gateService handler.GateService
	pinger      handler.Pinger
	logger      *logger.Logger
}

// New creates a new Router instance over the gate service and the
// database pinger used by the health endpoint.
func New(gateService handler.GateService, pinger handler.Pinger, logger *logger.Logger) *Router {
	return &Router{
		gateService: gateService,
		pinger:      pinger,
		logger:      logger,
	}
}

// Register builds the route table with request logging applied to every
// endpoint.
func (r *Router) Register() *mux.Router {
	logging := middleware.NewLogging(r.logger)

	gateHandler := handler.NewGate(r.gateService, r.logger)
	healthHandler := handler.NewHealth(r.pinger, r.logger)

	m := mux.NewRouter()
	m.Use(logging.Handle)

	m.HandleFunc("/health", healthHandler.Live).Methods(http.MethodGet)

	api := m.PathPrefix("/api/gate").Subrouter()
	api.HandleFunc("/status", gateHandler.Status).Methods(http.MethodGet)
	api.HandleFunc("/unlock/pin", gateHandler.UnlockWithPIN).Methods(http.MethodPost)
	api.HandleFunc("/unlock/biometric", gateHandler.UnlockWithBiometric).Methods(http.MethodPost)
	api.HandleFunc("/pin", gateHandler.SetPIN).Methods(http.MethodPost)
	api.HandleFunc("/pin", gateHandler.ClearPIN).Methods(http.MethodDelete)
	api.HandleFunc("/lock", gateHandler.LockNow).Methods(http.MethodPost)

	return m
}
