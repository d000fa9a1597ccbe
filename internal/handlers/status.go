package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"gitlab.com/rt2-ephem.net/internal/core/ports/primary"
	"gitlab.com/rt2-ephem.net/internal/handlers/response"
)

// ConnectionCounter reports how many protocol clients are connected.
type ConnectionCounter interface {
	ActiveConnections() int
}

// StatusHandler handles liveness and status API requests
type StatusHandler struct {
	serviceName string
	startedAt   time.Time
	connections ConnectionCounter
	logger      primary.Logger
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(serviceName string, connections ConnectionCounter, logger primary.Logger) *StatusHandler {
	return &StatusHandler{
		serviceName: serviceName,
		startedAt:   time.Now(),
		connections: connections,
		logger:      logger,
	}
}

// RegisterRoutes registers the API routes for StatusHandler
func (h *StatusHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/healthz", h.Healthz).Methods("GET")
	router.HandleFunc("/api/status", h.Status).Methods("GET")
}

// StatusResponse is the /api/status body
type StatusResponse struct {
	Service           string  `json:"service"`
	StartedAt         string  `json:"started_at"`
	UptimeSeconds     float64 `json:"uptime_seconds"`
	ActiveConnections int     `json:"active_connections"`
}

// Healthz answers liveness probes
func (h *StatusHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Status reports service identity, uptime and the live connection count
func (h *StatusHandler) Status(w http.ResponseWriter, r *http.Request) {
	response.WriteSuccess(w, StatusResponse{
		Service:           h.serviceName,
		StartedAt:         h.startedAt.UTC().Format(time.RFC3339),
		UptimeSeconds:     time.Since(h.startedAt).Seconds(),
		ActiveConnections: h.connections.ActiveConnections(),
	})
}
