package fixture

import (
	"context"
	"time"

	"github.com/preston-bernstein/nba-dashboard-service/internal/providers/sportsdata"
	"github.com/preston-bernstein/nba-dashboard-service/internal/timeutil"
)

const providerTimeLayout = "2006-01-02T15:04:05"

// Source returns a static set of provider records useful for local runs and tests.
// It satisfies the same fetch methods as the proxy client.
type Source struct {
	now func() time.Time
}

// New creates a fixture source with a time source.
func New() *Source {
	return &Source{
		now: time.Now,
	}
}

func intPtr(v int) *int { return &v }

// FetchTeams returns a deterministic set of teams. Orlando omits its conference.
func (s *Source) FetchTeams(ctx context.Context) ([]sportsdata.Team, error) {
	_ = ctx
	return []sportsdata.Team{
		{TeamID: 2, Key: "BOS", City: "Boston", Name: "Celtics", Conference: "Eastern", Division: "Atlantic", PrimaryColor: "#007A33", SecondaryColor: "#BA9653"},
		{TeamID: 27, Key: "LAL", City: "Los Angeles", Name: "Lakers", Conference: "Western", Division: "Pacific", PrimaryColor: "#552583", SecondaryColor: "#FDB927"},
		{TeamID: 10, Key: "GS", City: "Golden State", Name: "Warriors", Conference: "Western", Division: "Pacific", PrimaryColor: "#1D428A", SecondaryColor: "#FFC72C"},
		{TeamID: 21, Key: "MIA", City: "Miami", Name: "Heat", Conference: "Eastern", Division: "Southeast", PrimaryColor: "#98002E", SecondaryColor: "#F9A01B"},
		{TeamID: 24, Key: "ORL", City: "Orlando", Name: "Magic"},
	}, nil
}

// FetchPlayers returns a deterministic set of players, including one inactive record.
func (s *Source) FetchPlayers(ctx context.Context) ([]sportsdata.Player, error) {
	_ = ctx
	return []sportsdata.Player{
		{PlayerID: 1001, FirstName: "Jayson", LastName: "Tatum", Position: "SF", Jersey: intPtr(0), TeamID: 2, Height: intPtr(80), Weight: intPtr(210), BirthDate: "1998-03-03T00:00:00", Status: "Active"},
		{PlayerID: 1002, FirstName: "Jaylen", LastName: "Brown", Position: "SG", Jersey: intPtr(7), TeamID: 2, Height: intPtr(78), Weight: intPtr(223), BirthDate: "1996-10-24T00:00:00", Status: "Active"},
		{PlayerID: 1003, FirstName: "Jrue", LastName: "Holiday", Position: "PG", Jersey: intPtr(4), TeamID: 2, Height: intPtr(76), Weight: intPtr(205), BirthDate: "1990-06-12T00:00:00", Status: "Active"},
		{PlayerID: 1004, FirstName: "Kristaps", LastName: "Porzingis", Position: "C", Jersey: intPtr(8), TeamID: 2, Height: intPtr(86), Weight: intPtr(240), BirthDate: "1995-08-02T00:00:00", Status: "Active"},
		{PlayerID: 1005, FirstName: "Derrick", LastName: "White", Position: "SG", Jersey: intPtr(9), TeamID: 2, Height: intPtr(76), Weight: intPtr(190), BirthDate: "1994-07-02T00:00:00", Status: "Active"},
		{PlayerID: 1006, FirstName: "Al", LastName: "Horford", Position: "C", Jersey: intPtr(42), TeamID: 2, Height: intPtr(81), Weight: intPtr(240), BirthDate: "1986-06-03T00:00:00", Status: "Active"},
		{PlayerID: 1007, FirstName: "Payton", LastName: "Pritchard", Position: "PG", Jersey: intPtr(11), TeamID: 2, Height: intPtr(73), Weight: intPtr(195), BirthDate: "1998-01-28T00:00:00", Status: "Active"},
		{PlayerID: 1008, FirstName: "Retired", LastName: "Veteran", Position: "PF", TeamID: 2, Status: "Inactive"},
		{PlayerID: 2001, FirstName: "LeBron", LastName: "James", Position: "SF", Jersey: intPtr(23), TeamID: 27, Height: intPtr(81), Weight: intPtr(250), BirthDate: "1984-12-30T00:00:00", Status: "Active"},
		{PlayerID: 2002, FirstName: "Anthony", LastName: "Davis", Position: "PF", Jersey: intPtr(3), TeamID: 27, Height: intPtr(82), Weight: intPtr(253), BirthDate: "1993-03-11T00:00:00", Status: "Active"},
		{PlayerID: 3001, FirstName: "Stephen", LastName: "Curry", Position: "PG", Jersey: intPtr(30), TeamID: 10, Height: intPtr(74), Weight: intPtr(185), BirthDate: "1988-03-14T00:00:00", Status: "Active"},
		{PlayerID: 4001, FirstName: "Bam", LastName: "Adebayo", Position: "C", Jersey: intPtr(13), TeamID: 21, Height: intPtr(81), Weight: intPtr(255), BirthDate: "1997-07-18T00:00:00", Status: "Active"},
		{PlayerID: 5001, FirstName: "Paolo", LastName: "Banchero", Position: "F", TeamID: 24, Status: "Active"},
	}, nil
}

// FetchPlayerSeasonStats returns season totals for most fixture players. The season is ignored.
func (s *Source) FetchPlayerSeasonStats(ctx context.Context, season string) ([]sportsdata.PlayerSeasonStats, error) {
	_ = ctx
	_ = season
	return []sportsdata.PlayerSeasonStats{
		{PlayerID: 1001, Games: 41, Points: 820, Rebounds: 340, Assists: 197, FieldGoalsPercentage: 46.8, ThreePointersPercentage: 37.2, FreeThrowsPercentage: 83.3},
		{PlayerID: 1002, Games: 40, Points: 930, Rebounds: 220, Assists: 150, FieldGoalsPercentage: 49.1, ThreePointersPercentage: 35.4, FreeThrowsPercentage: 70.3},
		{PlayerID: 1003, Games: 38, Points: 464, Rebounds: 205, Assists: 182, FieldGoalsPercentage: 48, ThreePointersPercentage: 42.9, FreeThrowsPercentage: 83.3},
		{PlayerID: 1004, Games: 30, Points: 600, Rebounds: 216, Assists: 60, FieldGoalsPercentage: 51.6, ThreePointersPercentage: 37.5, FreeThrowsPercentage: 85.8},
		{PlayerID: 1005, Games: 41, Points: 631, Rebounds: 172, Assists: 213, FieldGoalsPercentage: 46.1, ThreePointersPercentage: 39.6, FreeThrowsPercentage: 90.1},
		{PlayerID: 1006, Games: 0},
		{PlayerID: 2001, Games: 39, Points: 994, Rebounds: 284, Assists: 324, FieldGoalsPercentage: 54, ThreePointersPercentage: 41, FreeThrowsPercentage: 75},
		{PlayerID: 2002, Games: 40, Points: 984, Rebounds: 504, Assists: 140, FieldGoalsPercentage: 55.6, ThreePointersPercentage: 27.1, FreeThrowsPercentage: 81.6},
		{PlayerID: 3001, Games: 42, Points: 1130, Rebounds: 189, Assists: 214, FieldGoalsPercentage: 45, ThreePointersPercentage: 40.8, FreeThrowsPercentage: 92.3},
		{PlayerID: 4001, Games: 37, Points: 714, Rebounds: 381, Assists: 144, FieldGoalsPercentage: 52.1, ThreePointersPercentage: 0, FreeThrowsPercentage: 75.5},
	}, nil
}

// FetchSchedule returns games around the current time: two final, one live and two upcoming.
// Times are naive Eastern timestamps, like the provider's. The season is ignored.
func (s *Source) FetchSchedule(ctx context.Context, season string) ([]sportsdata.Game, error) {
	_ = ctx
	_ = season

	base := s.now().In(timeutil.LoadLocation(timeutil.ProviderZone)).Truncate(time.Hour)
	at := func(offset time.Duration) string {
		return base.Add(offset).Format(providerTimeLayout)
	}

	return []sportsdata.Game{
		{GameID: 9001, HomeTeamID: 2, AwayTeamID: 21, DateTime: at(-48 * time.Hour), Status: "Final", HomeTeamScore: intPtr(118), AwayTeamScore: intPtr(101), StadiumID: intPtr(2)},
		{GameID: 9002, HomeTeamID: 27, AwayTeamID: 10, DateTime: at(-24 * time.Hour), Status: "Final", HomeTeamScore: intPtr(109), AwayTeamScore: intPtr(112), StadiumID: intPtr(27)},
		{GameID: 9003, HomeTeamID: 21, AwayTeamID: 24, DateTime: at(0), Status: "InProgress", HomeTeamScore: intPtr(54), AwayTeamScore: intPtr(50)},
		{GameID: 9004, HomeTeamID: 10, AwayTeamID: 2, DateTime: at(24 * time.Hour), Status: "Scheduled"},
		{GameID: 9005, HomeTeamID: 99, AwayTeamID: 27, DateTime: at(72 * time.Hour), Status: "Scheduled"},
	}, nil
}
