package proxy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/preston-bernstein/nba-dashboard-service/internal/http/requestutil"
	"github.com/preston-bernstein/nba-dashboard-service/internal/logging"
	"github.com/preston-bernstein/nba-dashboard-service/internal/providers"
)

// QueryEndpoint names the query parameter carrying the provider sub-path.
const QueryEndpoint = "endpoint"

// Fetcher is the upstream the handler forwards to.
type Fetcher interface {
	Fetch(ctx context.Context, endpoint string) ([]byte, error)
	State() string
}

// Handler forwards endpoint requests to the provider and relays the raw JSON.
type Handler struct {
	upstream    Fetcher
	clientToken string
	logger      *slog.Logger
}

// NewHandler constructs a Handler. An empty clientToken disables caller auth.
func NewHandler(upstream Fetcher, clientToken string, logger *slog.Logger) *Handler {
	return &Handler{
		upstream:    upstream,
		clientToken: clientToken,
		logger:      logger,
	}
}

// ServeHTTP handles GET and POST requests carrying ?endpoint=<sub-path>.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context(), h.logger)
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET, POST, OPTIONS")
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed", logger)
		return
	}
	if !h.authorize(r) {
		logging.Warn(logger, "proxy unauthorized",
			logging.FieldPath, r.URL.Path,
			"client_ip", requestutil.ClientIP(r),
		)
		writeError(w, http.StatusUnauthorized, "Unauthorized", logger)
		return
	}

	endpoint := strings.TrimSpace(r.URL.Query().Get(QueryEndpoint))
	if endpoint == "" {
		writeError(w, http.StatusBadRequest, "Missing endpoint parameter", logger)
		return
	}
	endpoint = strings.TrimPrefix(endpoint, "/")
	if !validEndpoint(endpoint) {
		logging.Warn(logger, "proxy rejected endpoint", logging.FieldEndpoint, endpoint)
		writeError(w, http.StatusBadRequest, "Invalid endpoint parameter", logger)
		return
	}

	body, err := h.upstream.Fetch(r.Context(), endpoint)
	if err != nil {
		logging.Error(logger, "proxy upstream failed", err, logging.FieldEndpoint, endpoint)
		writeError(w, http.StatusInternalServerError, clientMessage(err), logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		logging.Warn(logger, "proxy response write failed", "error", err)
		return
	}
	logging.Info(logger, "proxy served",
		logging.FieldEndpoint, endpoint,
		"bytes", len(body),
	)
}

// Health reports liveness and the upstream breaker state.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	state := "unknown"
	if h.upstream != nil {
		state = h.upstream.State()
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "upstream": state}, logging.FromContext(r.Context(), h.logger))
}

// NotFound answers unmatched routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Not found", logging.FromContext(r.Context(), h.logger))
}

func (h *Handler) authorize(r *http.Request) bool {
	if h.clientToken == "" {
		return true
	}
	return r.Header.Get("Authorization") == "Bearer "+h.clientToken
}

// validEndpoint accepts relative provider paths only, so a caller cannot
// redirect the key to another host or climb out of the base path.
func validEndpoint(endpoint string) bool {
	if endpoint == "" || strings.Contains(endpoint, "://") || strings.Contains(endpoint, "..") {
		return false
	}
	return !strings.ContainsAny(endpoint, "?#\\ \t\r\n")
}

// clientMessage describes err without upstream detail beyond the status code.
func clientMessage(err error) string {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "NBA API temporarily unavailable"
	}
	if rlErr, ok := providers.AsRateLimitError(err); ok {
		return fmt.Sprintf("NBA API error: %d", rlErr.StatusCode)
	}
	if fErr, ok := providers.AsFetchError(err); ok && fErr.StatusCode > 0 && fErr.StatusCode != http.StatusOK {
		return fmt.Sprintf("NBA API error: %d", fErr.StatusCode)
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "Internal server error"
}

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error(logger, "failed to encode response", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	writeJSON(w, status, map[string]string{"error": message}, logger)
}
