package teststubs

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestStubSourceTracksCalls(t *testing.T) {
	err := errors.New("boom")
	s := &StubSource{TeamsErr: err}
	if _, got := s.FetchTeams(context.Background()); !errors.Is(got, err) {
		t.Fatalf("expected error passthrough, got %v", got)
	}
	_, _ = s.FetchPlayerSeasonStats(context.Background(), "2025")
	_, _ = s.FetchSchedule(context.Background(), "2025REG")

	if s.TeamCalls.Load() != 1 || s.StatsCalls.Load() != 1 || s.ScheduleCalls.Load() != 1 {
		t.Fatalf("expected one call each")
	}
	if s.StatsSeason.Load() != "2025" || s.ScheduleSeason.Load() != "2025REG" {
		t.Fatalf("expected seasons to be recorded")
	}
}

func TestStubSourceGateRespectsContext(t *testing.T) {
	s := &StubSource{Gate: make(chan struct{})}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := s.FetchPlayers(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}

	close(s.Gate)
	if _, err := s.FetchPlayers(context.Background()); err != nil {
		t.Fatalf("expected open gate to pass, got %v", err)
	}
}

func TestFixtureHelpers(t *testing.T) {
	if Celtics().Key != "BOS" {
		t.Fatalf("unexpected team")
	}
	if p := ActivePlayer(1, 2); p.Status != "Active" || p.TeamID != 2 {
		t.Fatalf("unexpected player %+v", p)
	}
}
