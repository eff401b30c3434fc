package store

import (
	"github.com/preston-bernstein/nba-dashboard-service/internal/domain/players"
	"github.com/preston-bernstein/nba-dashboard-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-dashboard-service/internal/metrics"
	"github.com/preston-bernstein/nba-dashboard-service/internal/providers/sportsdata"
)

// Cache slot names.
const (
	CacheTeams   = "teams"
	CachePlayers = "players"
	CacheStats   = "stats"
)

// Session owns the three process-lifetime caches. There is no eviction,
// invalidation or TTL: a fresh Session is the only way to observe new data.
type Session struct {
	Teams   *Slot[[]teams.Team]
	Players *Slot[[]players.Player]
	Stats   *Slot[map[int]sportsdata.PlayerSeasonStats]
}

// NewSession builds a Session with empty slots.
func NewSession(recorder *metrics.Recorder) *Session {
	return &Session{
		Teams:   NewSlot(CacheTeams, recorder, CloneSlice[teams.Team]),
		Players: NewSlot(CachePlayers, recorder, CloneSlice[players.Player]),
		Stats:   NewSlot(CacheStats, recorder, CloneMap[int, sportsdata.PlayerSeasonStats]),
	}
}
