package games

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	domaingames "github.com/preston-bernstein/nba-dashboard-service/internal/domain/games"
	"github.com/preston-bernstein/nba-dashboard-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-dashboard-service/internal/logging"
	"github.com/preston-bernstein/nba-dashboard-service/internal/providers/sportsdata"
)

// Source fetches raw schedule records.
type Source interface {
	FetchSchedule(ctx context.Context, season string) ([]sportsdata.Game, error)
}

// TeamIndex resolves cached teams by id for venue synthesis.
type TeamIndex interface {
	Index(ctx context.Context) (map[string]teams.Team, error)
}

// Service builds the schedule. The schedule itself is never cached.
type Service struct {
	source Source
	teams  TeamIndex
	season string
	loc    *time.Location
	logger *slog.Logger
}

// NewService constructs a Service. season selects the schedule (e.g. "2025REG");
// loc is the display zone for game dates and times.
func NewService(source Source, teamIndex TeamIndex, season string, loc *time.Location, logger *slog.Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{source: source, teams: teamIndex, season: season, loc: loc, logger: logger}
}

// Schedule fetches the season's games and, when teamID is non-empty, keeps
// only games that team plays in. Either fetch failing fails the call.
func (s *Service) Schedule(ctx context.Context, teamID string) ([]domaingames.Game, error) {
	var (
		raw  []sportsdata.Game
		byID map[string]teams.Team
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		raw, err = s.source.FetchSchedule(gctx, s.season)
		return err
	})
	g.Go(func() error {
		var err error
		byID, err = s.teams.Index(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]domaingames.Game, 0, len(raw))
	for _, rg := range raw {
		game := sportsdata.MapGame(rg, byID, s.loc)
		if teamID != "" && !game.Involves(teamID) {
			continue
		}
		out = append(out, game)
	}

	logging.Info(logging.FromContext(ctx, s.logger), "schedule built",
		"season", s.season,
		logging.FieldTeamID, teamID,
		logging.FieldCount, len(out),
	)
	return out, nil
}

// View selects which games a schedule listing shows.
type View string

const (
	ViewAll       View = "all"
	ViewCompleted View = "completed"
	ViewUpcoming  View = "upcoming"
)

// ParseView maps raw to a View; anything unrecognized is ViewAll.
func ParseView(raw string) View {
	switch View(strings.ToLower(strings.TrimSpace(raw))) {
	case ViewCompleted:
		return ViewCompleted
	case ViewUpcoming:
		return ViewUpcoming
	default:
		return ViewAll
	}
}

// Filter keeps games matching view and returns them stably sorted by date.
// Upcoming means not completed, so live games are included. Games without a
// date sort last.
func Filter(items []domaingames.Game, view View) []domaingames.Game {
	out := make([]domaingames.Game, 0, len(items))
	for _, g := range items {
		switch view {
		case ViewCompleted:
			if g.Status != domaingames.StatusCompleted {
				continue
			}
		case ViewUpcoming:
			if g.Status == domaingames.StatusCompleted {
				continue
			}
		}
		out = append(out, g)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Date, out[j].Date
		if a == "" || b == "" {
			return a != "" && b == ""
		}
		return a < b
	})
	return out
}
