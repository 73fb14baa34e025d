package models

import "github.com/shopspring/decimal"

// TeamStats holds aggregate team statistics for a single match.
type TeamStats struct {
	FieldGoalPercentage  decimal.Decimal `json:"fieldGoalPercentage"`
	ThreePointPercentage decimal.Decimal `json:"threePointPercentage"`
	FreeThrowPercentage  decimal.Decimal `json:"freeThrowPercentage"`
	Rebounds             int             `json:"rebounds"`
	Assists              int             `json:"assists"`
	Steals               int             `json:"steals"`
	Blocks               int             `json:"blocks"`
	Turnovers            int             `json:"turnovers"`
}

// PlayerLine is a player's box score line.
type PlayerLine struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Points   int    `json:"points"`
	Rebounds int    `json:"rebounds"`
	Assists  int    `json:"assists"`
}

// TeamDetails extends Team with statistics and top performers.
type TeamDetails struct {
	Team
	Stats   TeamStats    `json:"stats"`
	Players []PlayerLine `json:"players"`
}

// GameLogEntry is a single play-by-play event.
type GameLogEntry struct {
	Time  string `json:"time"`
	Event string `json:"event"`
}

// MatchDetails is the drill-down record for a single match.
type MatchDetails struct {
	ID         string         `json:"id"`
	HomeTeam   TeamDetails    `json:"homeTeam"`
	AwayTeam   TeamDetails    `json:"awayTeam"`
	Status     string         `json:"status"`
	Time       string         `json:"time"`
	League     string         `json:"league"`
	Venue      string         `json:"venue"`
	Attendance string         `json:"attendance"`
	Officials  []string       `json:"officials"`
	GameLog    []GameLogEntry `json:"gameLog"`
}
