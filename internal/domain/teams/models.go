package teams

// Conference groups teams into the two NBA halves.
type Conference string

const (
	ConferenceEastern Conference = "Eastern"
	ConferenceWestern Conference = "Western"
)

// Team is the dashboard view of a franchise.
// Wins and Losses are never populated from provider data and are always zero.
type Team struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	City           string     `json:"city"`
	Abbreviation   string     `json:"abbreviation"`
	Conference     Conference `json:"conference"`
	Division       string     `json:"division"`
	LogoURL        string     `json:"logoUrl"`
	PrimaryColor   string     `json:"primaryColor"`
	SecondaryColor string     `json:"secondaryColor"`
	Wins           int        `json:"wins"`
	Losses         int        `json:"losses"`
}
