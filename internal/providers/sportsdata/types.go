package sportsdata

const providerName = "sportsdata"

// Team is the provider's team record.
type Team struct {
	TeamID           int    `json:"TeamID"`
	Key              string `json:"Key"`
	City             string `json:"City"`
	Name             string `json:"Name"`
	Conference       string `json:"Conference"`
	Division         string `json:"Division"`
	PrimaryColor     string `json:"PrimaryColor"`
	SecondaryColor   string `json:"SecondaryColor"`
	WikipediaLogoURL string `json:"WikipediaLogoUrl"`
}

// Player is the provider's player record. Height is in inches.
type Player struct {
	PlayerID  int    `json:"PlayerID"`
	FirstName string `json:"FirstName"`
	LastName  string `json:"LastName"`
	Position  string `json:"Position"`
	Jersey    *int   `json:"Jersey"`
	TeamID    int    `json:"TeamID"`
	Height    *int   `json:"Height"`
	Weight    *int   `json:"Weight"`
	BirthDate string `json:"BirthDate"`
	PhotoURL  string `json:"PhotoUrl"`
	Status    string `json:"Status"`
}

// PlayerSeasonStats holds a player's season totals. Totals may be fractional.
type PlayerSeasonStats struct {
	PlayerID                int     `json:"PlayerID"`
	Games                   int     `json:"Games"`
	Points                  float64 `json:"Points"`
	Rebounds                float64 `json:"Rebounds"`
	Assists                 float64 `json:"Assists"`
	FieldGoalsPercentage    float64 `json:"FieldGoalsPercentage"`
	ThreePointersPercentage float64 `json:"ThreePointersPercentage"`
	FreeThrowsPercentage    float64 `json:"FreeThrowsPercentage"`
}

// Game is the provider's schedule record.
type Game struct {
	GameID        int    `json:"GameID"`
	HomeTeamID    int    `json:"HomeTeamID"`
	AwayTeamID    int    `json:"AwayTeamID"`
	DateTime      string `json:"DateTime"`
	Status        string `json:"Status"`
	HomeTeamScore *int   `json:"HomeTeamScore"`
	AwayTeamScore *int   `json:"AwayTeamScore"`
	StadiumID     *int   `json:"StadiumID"`
}

// PlayerStatusActive marks players included in listings.
const PlayerStatusActive = "Active"
