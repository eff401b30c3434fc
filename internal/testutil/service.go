package testutil

import (
	"time"

	"github.com/preston-bernstein/nba-dashboard-service/internal/app/games"
	"github.com/preston-bernstein/nba-dashboard-service/internal/app/players"
	"github.com/preston-bernstein/nba-dashboard-service/internal/app/teams"
	"github.com/preston-bernstein/nba-dashboard-service/internal/metrics"
	"github.com/preston-bernstein/nba-dashboard-service/internal/store"
	"github.com/preston-bernstein/nba-dashboard-service/internal/teststubs"
)

const (
	// TestSeason is the season passed to services built by NewServices.
	TestSeason = "2025"
	// TestScheduleSeason is the schedule season passed to services built by NewServices.
	TestScheduleSeason = "2025REG"
)

// Services groups the dashboard services built over a single session.
type Services struct {
	Session *store.Session
	Teams   *teams.Service
	Players *players.Service
	Games   *games.Service
}

// NewServices wires every dashboard service to src over a fresh session.
// rec may be nil.
func NewServices(src *teststubs.StubSource, rec *metrics.Recorder) Services {
	session := store.NewSession(rec)
	teamSvc := teams.NewService(src, session.Teams, nil)
	return Services{
		Session: session,
		Teams:   teamSvc,
		Players: players.NewService(src, session, TestSeason, nil),
		Games:   games.NewService(src, teamSvc, TestScheduleSeason, time.UTC, nil),
	}
}
