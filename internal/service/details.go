package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/sports-companion/internal/cache"
	"github.com/yourusername/sports-companion/internal/metrics"
	"github.com/yourusername/sports-companion/internal/models"
	"github.com/yourusername/sports-companion/internal/notify"
	"github.com/yourusername/sports-companion/internal/sport"
)

// DetailsService serves drill-down records for a single match.
type DetailsService struct {
	cache    *cache.FreshnessCache
	notifier notify.Notifier
	logger   *logrus.Logger
}

// NewDetailsService creates a new details service. freshness may be nil.
func NewDetailsService(freshness *cache.FreshnessCache, notifier notify.Notifier, logger *logrus.Logger) *DetailsService {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	if notifier == nil {
		notifier = notify.Nop
	}
	return &DetailsService{cache: freshness, notifier: notifier, logger: logger}
}

// FetchMatchDetails returns the details for matchID, or nil after notifying the user.
func (s *DetailsService) FetchMatchDetails(ctx context.Context, matchID string) *models.MatchDetails {
	details, err := s.load(ctx, matchID)
	if err != nil {
		s.logger.WithError(err).WithField("match_id", matchID).Error("Error fetching match details")
		metrics.RecordNotification(string(notify.LevelError))
		s.notifier.Notify(ctx, MsgDetailsFailed, notify.LevelError)
		return nil
	}
	return details
}

func (s *DetailsService) load(ctx context.Context, matchID string) (*models.MatchDetails, error) {
	id := strings.TrimSpace(matchID)
	if id == "" {
		return nil, models.ErrInvalidMatchID
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("load details for %s: %w", id, err)
	}

	details := sampleDetails(id)
	if m, ok := s.lookup(ctx, id); ok {
		overlayMatch(details, m)
	}
	return details, nil
}

// lookup searches the cached batches of every sport for id.
func (s *DetailsService) lookup(ctx context.Context, id string) (models.Match, bool) {
	if s.cache == nil {
		return models.Match{}, false
	}
	for _, key := range sport.All() {
		entry, ok := s.cache.Read(ctx, key)
		if !ok {
			continue
		}
		for _, m := range entry.Data {
			if m.ID == id {
				return m, true
			}
		}
	}
	return models.Match{}, false
}

func overlayMatch(d *models.MatchDetails, m models.Match) {
	d.HomeTeam.Team = m.HomeTeam
	d.AwayTeam.Team = m.AwayTeam
	d.Status = m.Status
	d.Time = m.Time
	d.League = m.League
	d.Venue = m.Venue
}

func pct(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleDetails(id string) *models.MatchDetails {
	return &models.MatchDetails{
		ID: id,
		HomeTeam: models.TeamDetails{
			Team: models.Team{ID: "team1", Name: models.DefaultHomeName, ShortName: ShortName(models.DefaultHomeName), Score: 102},
			Stats: models.TeamStats{
				FieldGoalPercentage:  pct("48.5"),
				ThreePointPercentage: pct("36.2"),
				FreeThrowPercentage:  pct("82.1"),
				Rebounds:             42,
				Assists:              24,
				Steals:               8,
				Blocks:               5,
				Turnovers:            12,
			},
			Players: []models.PlayerLine{
				{ID: "p1", Name: "Player 1", Points: 28, Rebounds: 7, Assists: 5},
				{ID: "p2", Name: "Player 2", Points: 22, Rebounds: 4, Assists: 8},
				{ID: "p3", Name: "Player 3", Points: 18, Rebounds: 10, Assists: 2},
			},
		},
		AwayTeam: models.TeamDetails{
			Team: models.Team{ID: "team2", Name: models.DefaultAwayName, ShortName: ShortName(models.DefaultAwayName), Score: 98},
			Stats: models.TeamStats{
				FieldGoalPercentage:  pct("45.2"),
				ThreePointPercentage: pct("32.8"),
				FreeThrowPercentage:  pct("75.6"),
				Rebounds:             38,
				Assists:              21,
				Steals:               6,
				Blocks:               3,
				Turnovers:            15,
			},
			Players: []models.PlayerLine{
				{ID: "p4", Name: "Player 4", Points: 32, Rebounds: 5, Assists: 7},
				{ID: "p5", Name: "Player 5", Points: 19, Rebounds: 8, Assists: 4},
				{ID: "p6", Name: "Player 6", Points: 14, Rebounds: 6, Assists: 9},
			},
		},
		Status:     "Final",
		Time:       "Q4 00:00",
		League:     sport.Basketball.League(),
		Venue:      "Staples Center",
		Attendance: "18,997",
		Officials:  []string{"Referee 1", "Referee 2", "Referee 3"},
		GameLog: []models.GameLogEntry{
			{Time: "Q1 11:30", Event: "Jump ball: Home Team vs. Away Team - Home Team gains possession"},
			{Time: "Q1 11:10", Event: "Player 1 makes 2-pt jump shot from 15 ft"},
			{Time: "Q1 10:52", Event: "Player 4 misses 3-pt jump shot from 25 ft"},
			{Time: "Q1 10:50", Event: "Player 3 defensive rebound"},
		},
	}
}
