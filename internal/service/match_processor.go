package service

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"

	"github.com/yourusername/sports-companion/internal/datasource"
	"github.com/yourusername/sports-companion/internal/models"
)

// MatchProcessor canonicalizes provider records into models.Match values
type MatchProcessor struct {
	newID  func() string
	logger *logrus.Logger
}

// NewMatchProcessor creates a new match processor
func NewMatchProcessor(logger *logrus.Logger) *MatchProcessor {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &MatchProcessor{
		newID:  uuid.NewString,
		logger: logger,
	}
}

// Process converts raw records in order. Missing ids are synthesized and duplicate
// ids are suffixed so every id in the result is unique. Nil input yields an empty slice.
func (p *MatchProcessor) Process(raw []datasource.RawMatch) []models.Match {
	matches := make([]models.Match, 0, len(raw))
	seen := make(map[string]bool, len(raw))

	for _, r := range raw {
		m := p.ProcessOne(r)
		if seen[m.ID] {
			original := m.ID
			m.ID = uniqueID(original, seen)
			p.logger.WithFields(logrus.Fields{"id": original, "renamed": m.ID}).Debug("duplicate match id")
		}
		seen[m.ID] = true
		matches = append(matches, m)
	}

	return matches
}

// ProcessOne converts a single raw record, filling documented defaults.
func (p *MatchProcessor) ProcessOne(r datasource.RawMatch) models.Match {
	id := strings.TrimSpace(r.ID)
	if id == "" {
		id = p.newID()
	}

	return models.Match{
		ID:       id,
		HomeTeam: normalizeTeam(r.Home, models.DefaultHomeName),
		AwayTeam: normalizeTeam(r.Away, models.DefaultAwayName),
		Status:   orDefault(r.Status, models.DefaultStatus),
		Time:     orDefault(r.Time, models.DefaultTime),
		League:   orDefault(r.League, models.DefaultLeague),
		Venue:    orDefault(r.Venue, models.DefaultVenue),
	}
}

func normalizeTeam(t datasource.RawTeam, defaultName string) models.Team {
	name := orDefault(t.Name, defaultName)
	return models.Team{
		ID:        orDefault(t.ID, name),
		Name:      name,
		ShortName: orDefault(t.ShortName, ShortName(name)),
		Score:     CoerceScore(t.Score),
	}
}

// CoerceScore converts a provider score to a non-negative int.
// Anything non-numeric becomes 0; fractions are truncated.
func CoerceScore(v any) int {
	switch s := v.(type) {
	case nil, bool:
		return 0
	case string:
		v = strings.TrimSpace(s)
	case json.Number:
		v = s.String()
	}

	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0
	}
	if f >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int(f)
}

// ShortName returns the first three characters of name, upper-cased.
func ShortName(name string) string {
	runes := []rune(strings.TrimSpace(name))
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return strings.ToUpper(string(runes))
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

func uniqueID(id string, seen map[string]bool) string {
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d", id, n)
		if !seen[candidate] {
			return candidate
		}
	}
}
