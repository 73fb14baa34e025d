package models

// Team is one side of a canonical match.
type Team struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	Score     int    `json:"score"`
}

// Match is the provider-agnostic record every upstream payload is coerced into.
type Match struct {
	ID       string `json:"id"`
	HomeTeam Team   `json:"homeTeam"`
	AwayTeam Team   `json:"awayTeam"`
	Status   string `json:"status"`
	Time     string `json:"time"`
	League   string `json:"league"`
	Venue    string `json:"venue"`
}

// Defaults applied when a provider omits a field.
const (
	DefaultStatus   = "Scheduled"
	DefaultTime     = "TBD"
	DefaultLeague   = "Sports"
	DefaultVenue    = "TBD"
	DefaultHomeName = "Home Team"
	DefaultAwayName = "Away Team"
)

// HasValidScores reports whether both scores are non-negative.
func (m *Match) HasValidScores() bool {
	return m.HomeTeam.Score >= 0 && m.AwayTeam.Score >= 0
}
