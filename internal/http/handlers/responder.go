package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/nba-dashboard-service/internal/domain"
	"github.com/preston-bernstein/nba-dashboard-service/internal/http/requestutil"
	"github.com/preston-bernstein/nba-dashboard-service/internal/logging"
	"github.com/preston-bernstein/nba-dashboard-service/internal/providers"
)

const msgUpstreamUnavailable = "upstream data unavailable"

type errorBody struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
	Retryable bool   `json:"retryable"`
}

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error(logger, "failed to encode response", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	writeErrorBody(w, r, status, message, false, logger)
}

func writeErrorBody(w http.ResponseWriter, r *http.Request, status int, message string, retryable bool, logger *slog.Logger) {
	reqID := requestutil.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get(requestutil.HeaderRequestID)
	}
	writeJSON(w, status, errorBody{Error: message, RequestID: reqID, Retryable: retryable}, logger)
}

// writeServiceError maps a service failure onto a status code.
// Missing entities are 404; provider failures are 502 and retryable.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	if nf, ok := domain.AsNotFound(err); ok {
		writeError(w, r, http.StatusNotFound, nf.Error(), logger)
		return
	}
	if ctxErr := r.Context().Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		writeErrorBody(w, r, http.StatusServiceUnavailable, "request cancelled", true, logger)
		return
	}
	if providers.IsTransportError(err) {
		logging.Warn(logger, "upstream fetch failed", "error", err)
		writeErrorBody(w, r, http.StatusBadGateway, msgUpstreamUnavailable, true, logger)
		return
	}
	logging.Error(logger, "request failed", err)
	writeError(w, r, http.StatusInternalServerError, "internal error", logger)
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string, logger *slog.Logger) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", logger)
	return false
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
