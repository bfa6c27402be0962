package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// ReadinessTimeout bounds a readiness probe
const ReadinessTimeout = 2 * time.Second

// HealthResponse represents the response for health endpoints
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Pinger is anything the readiness probe can reach, such as the database pool
type Pinger interface {
	Ping(ctx context.Context) error
}

// HandleHealthz provides a basic liveness check
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}

// HandleReadyz reports ready once every dependency answers a ping. A service
// running on files has no dependencies and is always ready.
func HandleReadyz(deps ...Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), ReadinessTimeout)
		defer cancel()

		for _, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				slog.Error(LogMsgReadinessFailed, "error", err)
				respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
					Status:  "unavailable",
					Message: "dependency unreachable",
				})
				return
			}
		}
		respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}
