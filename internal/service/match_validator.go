package service

import (
	"fmt"

	"github.com/yourusername/sports-companion/internal/models"
)

// MatchValidator checks canonical matches for the invariants the processor promises
type MatchValidator struct{}

// NewMatchValidator creates a new match validator
func NewMatchValidator() *MatchValidator {
	return &MatchValidator{}
}

// ValidateMatch validates a single match for required fields and constraints
func (v *MatchValidator) ValidateMatch(m *models.Match) []string {
	var errors []string

	if m.ID == "" {
		errors = append(errors, "id is required")
	}
	if m.HomeTeam.Name == "" {
		errors = append(errors, "home team name is required")
	}
	if m.AwayTeam.Name == "" {
		errors = append(errors, "away team name is required")
	}
	if m.HomeTeam.ID == "" || m.AwayTeam.ID == "" {
		errors = append(errors, "team ids are required")
	}
	if !m.HasValidScores() {
		errors = append(errors, fmt.Sprintf("scores must be non-negative, got %d-%d", m.HomeTeam.Score, m.AwayTeam.Score))
	}
	if m.Status == "" || m.Time == "" || m.League == "" || m.Venue == "" {
		errors = append(errors, "status, time, league and venue must be filled")
	}

	return errors
}

// ValidateBatch validates every match and checks id uniqueness across the batch
func (v *MatchValidator) ValidateBatch(matches []models.Match) []string {
	var errors []string
	seen := make(map[string]bool, len(matches))

	for i := range matches {
		for _, e := range v.ValidateMatch(&matches[i]) {
			errors = append(errors, fmt.Sprintf("match %d: %s", i, e))
		}
		if id := matches[i].ID; id != "" {
			if seen[id] {
				errors = append(errors, fmt.Sprintf("match %d: duplicate id %q", i, id))
			}
			seen[id] = true
		}
	}

	return errors
}
