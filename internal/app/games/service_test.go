package games

import (
	"context"
	"errors"
	"testing"
	"time"

	apiteams "github.com/preston-bernstein/nba-dashboard-service/internal/app/teams"
	domaingames "github.com/preston-bernstein/nba-dashboard-service/internal/domain/games"
	"github.com/preston-bernstein/nba-dashboard-service/internal/metrics"
	"github.com/preston-bernstein/nba-dashboard-service/internal/providers"
	"github.com/preston-bernstein/nba-dashboard-service/internal/providers/sportsdata"
	"github.com/preston-bernstein/nba-dashboard-service/internal/store"
	"github.com/preston-bernstein/nba-dashboard-service/internal/teststubs"
)

func intPtr(v int) *int { return &v }

func newService(src *teststubs.StubSource) *Service {
	session := store.NewSession(metrics.NewRecorder())
	teamSvc := apiteams.NewService(src, session.Teams, nil)
	return NewService(src, teamSvc, "2025REG", time.UTC, nil)
}

func scheduleSource() *teststubs.StubSource {
	return &teststubs.StubSource{
		Teams: []sportsdata.Team{teststubs.Celtics()},
		Schedule: []sportsdata.Game{
			{GameID: 1, HomeTeamID: 2, AwayTeamID: 21, DateTime: "2025-01-10T19:30:00Z", Status: "Final", HomeTeamScore: intPtr(110), AwayTeamScore: intPtr(99)},
			{GameID: 2, HomeTeamID: 27, AwayTeamID: 10, DateTime: "2025-01-11T22:00:00Z", Status: "InProgress"},
			{GameID: 3, HomeTeamID: 21, AwayTeamID: 2, DateTime: "2025-01-12T00:00:00Z", Status: "Scheduled"},
			{GameID: 4, HomeTeamID: 2, AwayTeamID: 27, Status: "Postponed"},
		},
	}
}

func TestScheduleMapsStatusesAndVenue(t *testing.T) {
	src := scheduleSource()
	svc := newService(src)

	got, err := svc.Schedule(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected all games, got %d", len(got))
	}
	wantStatus := []domaingames.GameStatus{
		domaingames.StatusCompleted,
		domaingames.StatusLive,
		domaingames.StatusScheduled,
		domaingames.StatusScheduled,
	}
	for i, want := range wantStatus {
		if got[i].Status != want {
			t.Fatalf("game %d expected %s, got %s", i, want, got[i].Status)
		}
	}
	if got[0].Venue != "Boston Arena" || got[1].Venue != "TBD" {
		t.Fatalf("unexpected venues %s %s", got[0].Venue, got[1].Venue)
	}
	if got[0].Date != "2025-01-10" || got[0].Time != "7:30 PM" {
		t.Fatalf("unexpected date/time %s %s", got[0].Date, got[0].Time)
	}
	if got[0].HomeScore == nil || *got[0].HomeScore != 110 || got[1].HomeScore != nil {
		t.Fatalf("unexpected scores")
	}
	if src.ScheduleSeason.Load() != "2025REG" {
		t.Fatalf("expected schedule season passed through")
	}
}

func TestScheduleFiltersByTeam(t *testing.T) {
	svc := newService(scheduleSource())

	got, err := svc.Schedule(context.Background(), "2")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 games involving team 2, got %d", len(got))
	}
	for _, g := range got {
		if !g.Involves("2") {
			t.Fatalf("unexpected game %+v", g)
		}
	}
}

func TestScheduleIsNotCachedButTeamsAre(t *testing.T) {
	src := scheduleSource()
	svc := newService(src)

	for i := 0; i < 2; i++ {
		if _, err := svc.Schedule(context.Background(), ""); err != nil {
			t.Fatalf("unexpected error %v", err)
		}
	}
	if src.ScheduleCalls.Load() != 2 {
		t.Fatalf("expected schedule fetched per call, got %d", src.ScheduleCalls.Load())
	}
	if src.TeamCalls.Load() != 1 {
		t.Fatalf("expected teams cached, got %d fetches", src.TeamCalls.Load())
	}
}

func TestScheduleFailsWhenEitherFetchFails(t *testing.T) {
	src := scheduleSource()
	src.ScheduleErr = &providers.FetchError{Endpoint: "SchedulesBasic/2025REG", StatusCode: 500}
	if _, err := newService(src).Schedule(context.Background(), ""); !providers.IsTransportError(err) {
		t.Fatalf("expected schedule error, got %v", err)
	}

	src = scheduleSource()
	teamsErr := &providers.NetworkError{Endpoint: "AllTeams", Err: errors.New("dial")}
	src.TeamsErr = teamsErr
	if _, err := newService(src).Schedule(context.Background(), ""); !errors.Is(err, teamsErr) {
		t.Fatalf("expected teams error, got %v", err)
	}
}

func TestParseView(t *testing.T) {
	cases := map[string]View{
		"":          ViewAll,
		"all":       ViewAll,
		"Completed": ViewCompleted,
		"upcoming":  ViewUpcoming,
		"weird":     ViewAll,
	}
	for input, want := range cases {
		if got := ParseView(input); got != want {
			t.Fatalf("view %q expected %s, got %s", input, want, got)
		}
	}
}

func TestFilterByViewSortsByDate(t *testing.T) {
	items := []domaingames.Game{
		{ID: "late", Date: "2025-01-20", Status: domaingames.StatusScheduled},
		{ID: "nodate", Status: domaingames.StatusScheduled},
		{ID: "done", Date: "2025-01-01", Status: domaingames.StatusCompleted},
		{ID: "live", Date: "2025-01-05", Status: domaingames.StatusLive},
		{ID: "same", Date: "2025-01-20", Status: domaingames.StatusScheduled},
	}

	ids := func(gs []domaingames.Game) []string {
		out := make([]string, 0, len(gs))
		for _, g := range gs {
			out = append(out, g.ID)
		}
		return out
	}
	check := func(view View, want []string) {
		t.Helper()
		got := ids(Filter(items, view))
		if len(got) != len(want) {
			t.Fatalf("view %s expected %v, got %v", view, want, got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("view %s expected %v, got %v", view, want, got)
			}
		}
	}

	check(ViewAll, []string{"done", "live", "late", "same", "nodate"})
	check(ViewCompleted, []string{"done"})
	check(ViewUpcoming, []string{"live", "late", "same", "nodate"})
}
