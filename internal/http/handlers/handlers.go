package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	appgames "github.com/preston-bernstein/nba-dashboard-service/internal/app/games"
	appplayers "github.com/preston-bernstein/nba-dashboard-service/internal/app/players"
	appteams "github.com/preston-bernstein/nba-dashboard-service/internal/app/teams"
	"github.com/preston-bernstein/nba-dashboard-service/internal/domain/cba"
	"github.com/preston-bernstein/nba-dashboard-service/internal/domain/players"
	"github.com/preston-bernstein/nba-dashboard-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-dashboard-service/internal/logging"
	"github.com/preston-bernstein/nba-dashboard-service/internal/warmup"
)

// ParamID is the chi URL parameter holding an entity id.
const ParamID = "id"

// Handler serves the dashboard's JSON API.
type Handler struct {
	teams    *appteams.Service
	players  *appplayers.Service
	games    *appgames.Service
	logger   *slog.Logger
	statusFn func() warmup.Status
}

// PlayerDetail is a player with its team, when the team is known.
type PlayerDetail struct {
	Player players.Player `json:"player"`
	Team   *teams.Team    `json:"team,omitempty"`
}

// NewHandler constructs a Handler. statusFn may be nil, in which case the
// service always reports ready.
func NewHandler(teamSvc *appteams.Service, playerSvc *appplayers.Service, gameSvc *appgames.Service, logger *slog.Logger, statusFn func() warmup.Status) *Handler {
	return &Handler{
		teams:    teamSvc,
		players:  playerSvc,
		games:    gameSvc,
		logger:   logger,
		statusFn: statusFn,
	}
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports whether the caches have been warmed.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	if h.statusFn == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeErrorBody(w, r, http.StatusServiceUnavailable, msg, true, h.logger)
}

// Teams lists teams, optionally filtered by conference and a name/city search.
func (h *Handler) Teams(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	items, err := h.teams.Teams(r.Context())
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	q := r.URL.Query()
	out := appteams.Filter(items, appteams.Query{
		Conference: q.Get("conference"),
		Search:     q.Get("q"),
	})
	writeJSON(w, http.StatusOK, out, logger)
}

// Team returns a single team.
func (h *Handler) Team(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	id, ok := pathID(w, r, logger)
	if !ok {
		return
	}
	team, err := h.teams.TeamByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	writeJSON(w, http.StatusOK, team, logger)
}

// TeamRoster returns a team's active players labelled starter or bench.
// Unknown teams are 404 rather than an empty roster.
func (h *Handler) TeamRoster(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	id, ok := pathID(w, r, logger)
	if !ok {
		return
	}
	if _, err := h.teams.TeamByID(r.Context(), id); err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	roster, err := h.players.Roster(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	writeJSON(w, http.StatusOK, roster, logger)
}

// TeamSchedule returns the games a team plays in, filtered by view.
func (h *Handler) TeamSchedule(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	id, ok := pathID(w, r, logger)
	if !ok {
		return
	}
	if _, err := h.teams.TeamByID(r.Context(), id); err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	h.writeSchedule(w, r, id, logger)
}

// Players lists active players, optionally filtered by position and name search.
func (h *Handler) Players(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	items, err := h.players.Players(r.Context())
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	q := r.URL.Query()
	out := appplayers.Filter(items, appplayers.Query{
		Position: q.Get("position"),
		Search:   q.Get("q"),
	})
	writeJSON(w, http.StatusOK, out, logger)
}

// Player returns a player and, when it resolves, the player's team.
func (h *Handler) Player(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	id, ok := pathID(w, r, logger)
	if !ok {
		return
	}
	player, err := h.players.PlayerByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	detail := PlayerDetail{Player: player}
	if team, err := h.teams.TeamByID(r.Context(), player.TeamID); err == nil {
		detail.Team = &team
	} else {
		logging.Warn(logger, "player team unavailable",
			logging.FieldTeamID, player.TeamID,
			"error", err,
		)
	}
	writeJSON(w, http.StatusOK, detail, logger)
}

// Schedule lists season games, optionally for one team and filtered by view.
func (h *Handler) Schedule(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	h.writeSchedule(w, r, strings.TrimSpace(r.URL.Query().Get("teamId")), logger)
}

// CBA returns the static collective bargaining agreement rules.
func (h *Handler) CBA(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, cba.Rules(), loggerFromContext(r, h.logger))
}

func (h *Handler) writeSchedule(w http.ResponseWriter, r *http.Request, teamID string, logger *slog.Logger) {
	items, err := h.games.Schedule(r.Context(), teamID)
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	view := appgames.ParseView(r.URL.Query().Get("view"))
	writeJSON(w, http.StatusOK, appgames.Filter(items, view), logger)
}

func pathID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (string, bool) {
	id := strings.TrimSpace(chi.URLParam(r, ParamID))
	if id == "" || strings.ContainsAny(id, " \t/") {
		writeError(w, r, http.StatusBadRequest, "invalid id", logger)
		return "", false
	}
	return id, true
}

// NotFound answers unmatched routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, "not found", loggerFromContext(r, h.logger))
}

// MethodNotAllowed answers matched routes called with an unsupported method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", loggerFromContext(r, h.logger))
}
