package games

// GameStatus is the dashboard lifecycle state of a game.
type GameStatus string

const (
	StatusScheduled GameStatus = "scheduled"
	StatusLive      GameStatus = "live"
	StatusCompleted GameStatus = "completed"
)

// Game is the dashboard view of a scheduled or played game.
// Scores are nil until the provider reports them.
type Game struct {
	ID         string     `json:"id"`
	HomeTeamID string     `json:"homeTeamId"`
	AwayTeamID string     `json:"awayTeamId"`
	Date       string     `json:"date"`
	Time       string     `json:"time"`
	Status     GameStatus `json:"status"`
	HomeScore  *int       `json:"homeScore,omitempty"`
	AwayScore  *int       `json:"awayScore,omitempty"`
	Venue      string     `json:"venue"`
}

// Involves reports whether teamID plays in the game, home or away.
func (g Game) Involves(teamID string) bool {
	return g.HomeTeamID == teamID || g.AwayTeamID == teamID
}
