package proxy

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/preston-bernstein/nba-dashboard-service/internal/http/middleware"
	"github.com/preston-bernstein/nba-dashboard-service/internal/metrics"
)

// Path is where the proxy is mounted, matching the dashboard's default PROXY_URL.
const Path = "/nba-api-proxy"

// NewRouter mounts the proxy handler with permissive CORS.
func NewRouter(h *Handler, logger *slog.Logger, recorder *metrics.Recorder) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logging(logger, recorder))
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowOrigin:     "*",
		AllowMethods:    "GET, POST, OPTIONS",
		AllowHeaders:    "Content-Type, Authorization, X-Client-Info, Apikey",
		PreflightStatus: http.StatusOK,
	}))
	r.NotFound(h.NotFound)

	r.Get("/health", h.Health)
	r.Handle(Path, h)
	r.Handle("/", h)
	return r
}
