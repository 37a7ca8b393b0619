package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/vehiclefin/financing-offer/pkg/postgres"
)

// HealthHandler serves liveness and readiness probes over HTTP.
type HealthHandler struct {
	service string
	db      postgres.Pinger
	logger  *slog.Logger
}

// NewHealthHandler creates a health check HTTP handler. db may be nil when
// no database is in use.
func NewHealthHandler(service string, db postgres.Pinger, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{service: service, db: db, logger: logger}
}

// RegisterRoutes attaches health-check routes to the given router.
func (h *HealthHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/healthz", h.liveness).Methods(http.MethodGet)
	r.HandleFunc("/readyz", h.readiness).Methods(http.MethodGet)
}

func (h *HealthHandler) liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": h.service,
	})
}

func (h *HealthHandler) readiness(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := postgres.HealthCheck(ctx, h.db); err != nil {
			h.logger.WarnContext(r.Context(), "readiness check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status":  "unavailable",
				"service": h.service,
			})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ready",
		"service": h.service,
	})
}
