package teststubs

import (
	"context"
	"sync/atomic"

	"github.com/preston-bernstein/nba-dashboard-service/internal/providers/sportsdata"
)

// StubSource is a counting test double for every provider fetch the services use.
// When Gate is set, each fetch blocks until Gate is closed or ctx ends.
type StubSource struct {
	Teams    []sportsdata.Team
	Players  []sportsdata.Player
	Stats    []sportsdata.PlayerSeasonStats
	Schedule []sportsdata.Game

	TeamsErr    error
	PlayersErr  error
	StatsErr    error
	ScheduleErr error

	Gate chan struct{}

	TeamCalls     atomic.Int32
	PlayerCalls   atomic.Int32
	StatsCalls    atomic.Int32
	ScheduleCalls atomic.Int32

	// Seasons records the last season passed to stats and schedule fetches.
	StatsSeason    atomic.Value
	ScheduleSeason atomic.Value
}

// FetchTeams returns configured teams and error while tracking calls.
func (s *StubSource) FetchTeams(ctx context.Context) ([]sportsdata.Team, error) {
	s.TeamCalls.Add(1)
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return s.Teams, s.TeamsErr
}

// FetchPlayers returns configured players and error while tracking calls.
func (s *StubSource) FetchPlayers(ctx context.Context) ([]sportsdata.Player, error) {
	s.PlayerCalls.Add(1)
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return s.Players, s.PlayersErr
}

// FetchPlayerSeasonStats returns configured stats and error while tracking calls.
func (s *StubSource) FetchPlayerSeasonStats(ctx context.Context, season string) ([]sportsdata.PlayerSeasonStats, error) {
	s.StatsCalls.Add(1)
	s.StatsSeason.Store(season)
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return s.Stats, s.StatsErr
}

// FetchSchedule returns configured games and error while tracking calls.
func (s *StubSource) FetchSchedule(ctx context.Context, season string) ([]sportsdata.Game, error) {
	s.ScheduleCalls.Add(1)
	s.ScheduleSeason.Store(season)
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return s.Schedule, s.ScheduleErr
}

func (s *StubSource) wait(ctx context.Context) error {
	if s.Gate == nil {
		return nil
	}
	select {
	case <-s.Gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Celtics returns the Boston team record used across tests.
func Celtics() sportsdata.Team {
	return sportsdata.Team{
		TeamID:         2,
		Key:            "BOS",
		City:           "Boston",
		Name:           "Celtics",
		Conference:     "Eastern",
		Division:       "Atlantic",
		PrimaryColor:   "#007A33",
		SecondaryColor: "#BA9653",
	}
}

// ActivePlayer returns an active player record on teamID.
func ActivePlayer(id, teamID int) sportsdata.Player {
	return sportsdata.Player{PlayerID: id, FirstName: "First", LastName: "Last", Position: "SG", TeamID: teamID, Status: sportsdata.PlayerStatusActive}
}
