package players

// Position is one of the five enumerated basketball positions.
type Position string

const (
	PositionPointGuard    Position = "PG"
	PositionShootingGuard Position = "SG"
	PositionSmallForward  Position = "SF"
	PositionPowerForward  Position = "PF"
	PositionCenter        Position = "C"
)

// Positions lists every valid Position in display order.
var Positions = []Position{
	PositionPointGuard,
	PositionShootingGuard,
	PositionSmallForward,
	PositionPowerForward,
	PositionCenter,
}

// Player is the dashboard view of an active player.
type Player struct {
	ID           string   `json:"id"`
	FirstName    string   `json:"firstName"`
	LastName     string   `json:"lastName"`
	Position     Position `json:"position"`
	JerseyNumber int      `json:"jerseyNumber"`
	TeamID       string   `json:"teamId"`
	Height       string   `json:"height"`
	Weight       string   `json:"weight"`
	BirthDate    string   `json:"birthDate"`
	PhotoURL     string   `json:"photoUrl"`
	Stats        Stats    `json:"stats"`
}

// Stats holds per-game averages and shooting percentages for a season.
type Stats struct {
	PPG                 float64 `json:"ppg"`
	RPG                 float64 `json:"rpg"`
	APG                 float64 `json:"apg"`
	FieldGoalPercentage float64 `json:"fg_percentage"`
	ThreePercentage     float64 `json:"three_percentage"`
	FreeThrowPercentage float64 `json:"ft_percentage"`
}

// RosterStatus labels a player's place on a team roster.
type RosterStatus string

const (
	RosterStarter RosterStatus = "starter"
	RosterBench   RosterStatus = "bench"
	RosterInjured RosterStatus = "injured"
)

// RosterPlayer is a Player with a roster status.
type RosterPlayer struct {
	Player
	Status RosterStatus `json:"status"`
}
