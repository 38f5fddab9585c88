package appstate

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/skillcoder/cni-repair-controller/internal/infra/pinger"
)

type statusResponse struct {
	State     string                        `json:"state"`
	Uptime    string                        `json:"uptime"`
	StartTime time.Time                     `json:"startTime"`
	UptimeSec float64                       `json:"uptimeSeconds"`
	Pingers   map[string]*pinger.Statistics `json:"pingers"`
}

// HandleLive returns an http.HandlerFunc for the /live endpoint
func HandleLive(
	logger *slog.Logger,
	appState healthChecker,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := logger.With("traceID", middleware.GetReqID(ctx))

		if !appState.IsHealthy() {
			w.WriteHeader(http.StatusServiceUnavailable)
			logger.DebugContext(ctx, "liveness check failed")

			return
		}

		w.WriteHeader(http.StatusOK)
		logger.DebugContext(ctx, "liveness check passed")
	}
}

// HandleReady returns an http.HandlerFunc for the /ready endpoint
func HandleReady(
	logger *slog.Logger,
	appState readyChecker,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := logger.With("traceID", middleware.GetReqID(ctx))

		if !appState.IsReady() {
			w.WriteHeader(http.StatusServiceUnavailable)
			logger.DebugContext(ctx, "readiness check failed")

			return
		}

		w.WriteHeader(http.StatusOK)
		logger.DebugContext(ctx, "readiness check passed")
	}
}

// HandleStatus returns an http.HandlerFunc for the /-/status endpoint
func HandleStatus(
	logger *slog.Logger,
	appState statusGetter,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := logger.With("traceID", middleware.GetReqID(ctx))

		state := appState.GetState()
		uptime := appState.GetUptime()

		response := statusResponse{
			State:     string(state),
			Uptime:    uptime.String(),
			StartTime: appState.GetStartTime(),
			UptimeSec: uptime.Seconds(),
			Pingers:   appState.GetAllStats(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.ErrorContext(ctx, "failed to encode status response", "reason", err)

			return
		}

		logger.DebugContext(ctx, "status response sent", "state", string(state))
	}
}
