package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/preston-bernstein/nba-dashboard-service/internal/http/handlers"
	"github.com/preston-bernstein/nba-dashboard-service/internal/http/middleware"
	"github.com/preston-bernstein/nba-dashboard-service/internal/metrics"
)

// RouterConfig carries the cross-cutting settings for the dashboard router.
type RouterConfig struct {
	Logger     *slog.Logger
	Recorder   *metrics.Recorder
	CORSOrigin string
}

// NewRouter registers the dashboard API on a chi router.
func NewRouter(h *handlers.Handler, cfg RouterConfig) nethttp.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logging(cfg.Logger, cfg.Recorder))
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowOrigin:     cfg.CORSOrigin,
		AllowMethods:    "GET, OPTIONS",
		AllowHeaders:    "Content-Type, Authorization, X-Request-ID",
		PreflightStatus: nethttp.StatusNoContent,
	}))
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)

	r.Route("/api", func(r chi.Router) {
		r.Get("/teams", h.Teams)
		r.Get("/teams/{id}", h.Team)
		r.Get("/teams/{id}/roster", h.TeamRoster)
		r.Get("/teams/{id}/schedule", h.TeamSchedule)
		r.Get("/players", h.Players)
		r.Get("/players/{id}", h.Player)
		r.Get("/schedule", h.Schedule)
		r.Get("/cba", h.CBA)
	})
	return r
}
