package sportsdata

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/nba-dashboard-service/internal/domain/games"
	"github.com/preston-bernstein/nba-dashboard-service/internal/domain/players"
	"github.com/preston-bernstein/nba-dashboard-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-dashboard-service/internal/timeutil"
)

// MapTeam converts a provider team into the dashboard view.
// Wins and losses are not reported by the teams endpoint and stay zero.
func MapTeam(t Team) teams.Team {
	return teams.Team{
		ID:             strconv.Itoa(t.TeamID),
		Name:           t.Name,
		City:           t.City,
		Abbreviation:   t.Key,
		Conference:     mapConference(t.Conference),
		Division:       orDefault(t.Division, defaultDivision),
		LogoURL:        t.WikipediaLogoURL,
		PrimaryColor:   orDefault(t.PrimaryColor, defaultPrimaryColor),
		SecondaryColor: orDefault(t.SecondaryColor, defaultSecondaryColor),
	}
}

// MapTeams converts every provider team, preserving order.
func MapTeams(in []Team) []teams.Team {
	out := make([]teams.Team, 0, len(in))
	for _, t := range in {
		out = append(out, MapTeam(t))
	}
	return out
}

// IndexStats keys season stats by player id. Later duplicates win.
func IndexStats(in []PlayerSeasonStats) map[int]PlayerSeasonStats {
	out := make(map[int]PlayerSeasonStats, len(in))
	for _, s := range in {
		out[s.PlayerID] = s
	}
	return out
}

// MapActivePlayers keeps Active players in source order and joins their stats.
func MapActivePlayers(in []Player, stats map[int]PlayerSeasonStats) []players.Player {
	out := make([]players.Player, 0, len(in))
	for _, p := range in {
		if p.Status != PlayerStatusActive {
			continue
		}
		var s *PlayerSeasonStats
		if found, ok := stats[p.PlayerID]; ok {
			s = &found
		}
		out = append(out, MapPlayer(p, s))
	}
	return out
}

// MapPlayer converts a provider player. A nil stats record yields zero stats.
func MapPlayer(p Player, stats *PlayerSeasonStats) players.Player {
	return players.Player{
		ID:           strconv.Itoa(p.PlayerID),
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Position:     mapPosition(p.Position),
		JerseyNumber: intOrZero(p.Jersey),
		TeamID:       strconv.Itoa(p.TeamID),
		Height:       FormatHeight(p.Height),
		Weight:       formatWeight(p.Weight),
		BirthDate:    p.BirthDate,
		PhotoURL:     p.PhotoURL,
		Stats:        MapStats(stats),
	}
}

// MapStats derives per-game averages rounded to one decimal.
// Zero games played yields zero averages.
func MapStats(s *PlayerSeasonStats) players.Stats {
	if s == nil {
		return players.Stats{}
	}
	out := players.Stats{
		FieldGoalPercentage: s.FieldGoalsPercentage,
		ThreePercentage:     s.ThreePointersPercentage,
		FreeThrowPercentage: s.FreeThrowsPercentage,
	}
	if s.Games > 0 {
		games := float64(s.Games)
		out.PPG = roundTenth(s.Points / games)
		out.RPG = roundTenth(s.Rebounds / games)
		out.APG = roundTenth(s.Assists / games)
	}
	return out
}

// MapGame converts a provider game. teamsByID resolves the home city for the
// venue; loc is the display zone for date and time.
func MapGame(g Game, teamsByID map[string]teams.Team, loc *time.Location) games.Game {
	if loc == nil {
		loc = time.UTC
	}
	out := games.Game{
		ID:         strconv.Itoa(g.GameID),
		HomeTeamID: strconv.Itoa(g.HomeTeamID),
		AwayTeamID: strconv.Itoa(g.AwayTeamID),
		Time:       unknownTime,
		Status:     MapStatus(g.Status),
		HomeScore:  copyInt(g.HomeTeamScore),
		AwayScore:  copyInt(g.AwayTeamScore),
		Venue:      unknownVenue,
	}
	if start, err := timeutil.ParseProviderTime(g.DateTime); err == nil {
		local := start.In(loc)
		out.Date = timeutil.FormatDate(local)
		out.Time = timeutil.FormatClock(local)
	}
	if home, ok := teamsByID[out.HomeTeamID]; ok {
		out.Venue = home.City + " Arena"
	}
	return out
}

// MapStatus maps provider status strings. Anything unrecognized is scheduled.
func MapStatus(status string) games.GameStatus {
	switch status {
	case "Final":
		return games.StatusCompleted
	case "InProgress":
		return games.StatusLive
	default:
		return games.StatusScheduled
	}
}

// FormatHeight renders inches as feet'inches". Missing or non-positive values use the default.
func FormatHeight(inches *int) string {
	if inches == nil || *inches <= 0 {
		return defaultHeight
	}
	return fmt.Sprintf(`%d'%d"`, *inches/12, *inches%12)
}

func mapConference(raw string) teams.Conference {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "western", "west":
		return teams.ConferenceWestern
	case "eastern", "east":
		return teams.ConferenceEastern
	default:
		return teams.Conference(defaultConference)
	}
}

func mapPosition(raw string) players.Position {
	candidate := players.Position(strings.ToUpper(strings.TrimSpace(raw)))
	for _, p := range players.Positions {
		if p == candidate {
			return p
		}
	}
	return players.PositionPointGuard
}

func formatWeight(pounds *int) string {
	if pounds == nil || *pounds <= 0 {
		return defaultWeight
	}
	return strconv.Itoa(*pounds)
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
