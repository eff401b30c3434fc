package teams

import (
	"context"
	"log/slog"
	"strings"

	"github.com/preston-bernstein/nba-dashboard-service/internal/domain"
	"github.com/preston-bernstein/nba-dashboard-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-dashboard-service/internal/logging"
	"github.com/preston-bernstein/nba-dashboard-service/internal/providers/sportsdata"
	"github.com/preston-bernstein/nba-dashboard-service/internal/store"
)

// Source fetches raw team records.
type Source interface {
	FetchTeams(ctx context.Context) ([]sportsdata.Team, error)
}

// Service serves teams from the session cache, fetching them once on first use.
type Service struct {
	source Source
	cache  *store.Slot[[]teams.Team]
	logger *slog.Logger
}

// NewService constructs a Service backed by source and the given cache slot.
func NewService(source Source, cache *store.Slot[[]teams.Team], logger *slog.Logger) *Service {
	return &Service{source: source, cache: cache, logger: logger}
}

// Teams returns every team. Transport errors propagate unchanged and are not cached.
func (s *Service) Teams(ctx context.Context) ([]teams.Team, error) {
	return s.cache.Get(ctx, s.load)
}

// TeamByID returns the team with id or a NotFoundError.
func (s *Service) TeamByID(ctx context.Context, id string) (teams.Team, error) {
	items, err := s.Teams(ctx)
	if err != nil {
		return teams.Team{}, err
	}
	for _, t := range items {
		if t.ID == id {
			return t, nil
		}
	}
	return teams.Team{}, domain.NewNotFound("team", id)
}

// Index returns teams keyed by id.
func (s *Service) Index(ctx context.Context) (map[string]teams.Team, error) {
	items, err := s.Teams(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]teams.Team, len(items))
	for _, t := range items {
		byID[t.ID] = t
	}
	return byID, nil
}

// Loaded reports whether teams are cached.
func (s *Service) Loaded() bool {
	return s.cache.Loaded()
}

func (s *Service) load(ctx context.Context) ([]teams.Team, error) {
	raw, err := s.source.FetchTeams(ctx)
	if err != nil {
		return nil, err
	}
	mapped := sportsdata.MapTeams(raw)
	logging.Info(logging.FromContext(ctx, s.logger), "teams cached",
		logging.FieldCache, store.CacheTeams,
		logging.FieldCount, len(mapped),
	)
	return mapped, nil
}

// Query narrows a team listing. Empty fields (or "all") match everything.
type Query struct {
	Conference string
	Search     string
}

// Filter applies q to items, preserving order.
func Filter(items []teams.Team, q Query) []teams.Team {
	conference := strings.TrimSpace(q.Conference)
	if strings.EqualFold(conference, "all") {
		conference = ""
	}
	search := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]teams.Team, 0, len(items))
	for _, t := range items {
		if conference != "" && !strings.EqualFold(string(t.Conference), conference) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(t.Name), search) &&
			!strings.Contains(strings.ToLower(t.City), search) {
			continue
		}
		out = append(out, t)
	}
	return out
}
