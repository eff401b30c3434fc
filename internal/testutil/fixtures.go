package testutil

import (
	"context"

	"github.com/preston-bernstein/nba-dashboard-service/internal/providers/fixture"
	"github.com/preston-bernstein/nba-dashboard-service/internal/teststubs"
)

// SeededSource returns a counting stub loaded with the fixture provider's records.
func SeededSource() *teststubs.StubSource {
	ctx := context.Background()
	fx := fixture.New()
	src := &teststubs.StubSource{}
	src.Teams, _ = fx.FetchTeams(ctx)
	src.Players, _ = fx.FetchPlayers(ctx)
	src.Stats, _ = fx.FetchPlayerSeasonStats(ctx, "")
	src.Schedule, _ = fx.FetchSchedule(ctx, "")
	return src
}
