package sportsdata

import "strings"

const (
	EndpointTeams   = "AllTeams"
	EndpointPlayers = "Players"
)

// PlayerSeasonStatsEndpoint returns the season stats path for season (e.g. "2025").
func PlayerSeasonStatsEndpoint(season string) string {
	return "PlayerSeasonStats/" + season
}

// ScheduleEndpoint returns the schedule path for season (e.g. "2025REG").
func ScheduleEndpoint(season string) string {
	return "SchedulesBasic/" + season
}

var statsMarkers = []string{"PlayerSeasonStats", "PlayerGameStats"}

// IsStatsEndpoint reports whether path names a statistics resource.
func IsStatsEndpoint(path string) bool {
	for _, marker := range statsMarkers {
		if strings.Contains(path, marker) {
			return true
		}
	}
	return false
}

// UpstreamBase picks the statistics or scores base for path.
func UpstreamBase(path, scoresBase, statsBase string) string {
	if IsStatsEndpoint(path) {
		return statsBase
	}
	return scoresBase
}
