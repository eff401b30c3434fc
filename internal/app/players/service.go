package players

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/preston-bernstein/nba-dashboard-service/internal/domain"
	"github.com/preston-bernstein/nba-dashboard-service/internal/domain/players"
	"github.com/preston-bernstein/nba-dashboard-service/internal/logging"
	"github.com/preston-bernstein/nba-dashboard-service/internal/providers/sportsdata"
	"github.com/preston-bernstein/nba-dashboard-service/internal/store"
)

const startersPerRoster = 5

// Source fetches raw player and season stats records.
type Source interface {
	FetchPlayers(ctx context.Context) ([]sportsdata.Player, error)
	FetchPlayerSeasonStats(ctx context.Context, season string) ([]sportsdata.PlayerSeasonStats, error)
}

// Service serves active players joined with season stats from the session cache.
type Service struct {
	source  Source
	session *store.Session
	season  string
	logger  *slog.Logger
}

// NewService constructs a Service. season selects the stats season (e.g. "2025").
func NewService(source Source, session *store.Session, season string, logger *slog.Logger) *Service {
	return &Service{source: source, session: session, season: season, logger: logger}
}

// Players returns active players with derived stats. A stats failure is logged
// and downgraded to empty stats; a players failure propagates.
func (s *Service) Players(ctx context.Context) ([]players.Player, error) {
	return s.session.Players.Get(ctx, s.load)
}

// PlayerByID returns the player with id or a NotFoundError.
func (s *Service) PlayerByID(ctx context.Context, id string) (players.Player, error) {
	items, err := s.Players(ctx)
	if err != nil {
		return players.Player{}, err
	}
	for _, p := range items {
		if p.ID == id {
			return p, nil
		}
	}
	return players.Player{}, domain.NewNotFound("player", id)
}

// Roster returns teamID's players in source order. The first five are
// starters and the rest bench; this is positional, not depth-chart data.
func (s *Service) Roster(ctx context.Context, teamID string) ([]players.RosterPlayer, error) {
	items, err := s.Players(ctx)
	if err != nil {
		return nil, err
	}
	roster := make([]players.RosterPlayer, 0)
	for _, p := range items {
		if p.TeamID != teamID {
			continue
		}
		status := players.RosterBench
		if len(roster) < startersPerRoster {
			status = players.RosterStarter
		}
		roster = append(roster, players.RosterPlayer{Player: p, Status: status})
	}
	return roster, nil
}

// Loaded reports whether players are cached.
func (s *Service) Loaded() bool {
	return s.session.Players.Loaded()
}

func (s *Service) load(ctx context.Context) ([]players.Player, error) {
	var (
		raw   []sportsdata.Player
		stats map[int]sportsdata.PlayerSeasonStats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		raw, err = s.source.FetchPlayers(gctx)
		return err
	})
	g.Go(func() error {
		stats = s.seasonStats(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	mapped := sportsdata.MapActivePlayers(raw, stats)
	logging.Info(logging.FromContext(ctx, s.logger), "players cached",
		logging.FieldCache, store.CachePlayers,
		logging.FieldCount, len(mapped),
		"with_stats", len(stats),
	)
	return mapped, nil
}

// seasonStats never fails: errors are logged and yield an empty, uncached set.
func (s *Service) seasonStats(ctx context.Context) map[int]sportsdata.PlayerSeasonStats {
	stats, err := s.session.Stats.Get(ctx, func(ctx context.Context) (map[int]sportsdata.PlayerSeasonStats, error) {
		raw, err := s.source.FetchPlayerSeasonStats(ctx, s.season)
		if err != nil {
			return nil, err
		}
		return sportsdata.IndexStats(raw), nil
	})
	if err != nil {
		logging.Warn(logging.FromContext(ctx, s.logger), "player stats unavailable",
			logging.FieldCache, store.CacheStats,
			"season", s.season,
			"err", err,
		)
		return map[int]sportsdata.PlayerSeasonStats{}
	}
	return stats
}

// Query narrows a player listing. Empty fields (or "all") match everything.
type Query struct {
	Position string
	Search   string
}

// Filter applies q to items, preserving order.
func Filter(items []players.Player, q Query) []players.Player {
	position := strings.TrimSpace(q.Position)
	if strings.EqualFold(position, "all") {
		position = ""
	}
	search := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]players.Player, 0, len(items))
	for _, p := range items {
		if position != "" && !strings.EqualFold(string(p.Position), position) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.FirstName), search) &&
			!strings.Contains(strings.ToLower(p.LastName), search) {
			continue
		}
		out = append(out, p)
	}
	return out
}
