package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/sports-companion/internal/sport"
)

const (
	footballSourceName     = "thesportsdb"
	defaultFootballBaseURL = "https://www.thesportsdb.com/api/v1/json"
	defaultSportsDBKey     = "3"
	statusInProgress       = "In Progress"
	statusScheduled        = "Scheduled"
)

// FootballClient implements Provider for TheSportsDB daily events
type FootballClient struct {
	fetcher Fetcher
	baseURL string
	apiKey  string
	enabled bool
	now     func() time.Time
	logger  *logrus.Logger
}

type sportsDBEventsResponse struct {
	Events []sportsDBEvent `json:"events"`
}

type sportsDBEvent struct {
	IDEvent      string `json:"idEvent"`
	StrHomeTeam  string `json:"strHomeTeam"`
	StrAwayTeam  string `json:"strAwayTeam"`
	IDHomeTeam   string `json:"idHomeTeam"`
	IDAwayTeam   string `json:"idAwayTeam"`
	IntHomeScore any    `json:"intHomeScore"`
	IntAwayScore any    `json:"intAwayScore"`
	StrStatus    string `json:"strStatus"`
	StrProgress  string `json:"strProgress"`
	StrLeague    string `json:"strLeague"`
	StrVenue     string `json:"strVenue"`
	StrTime      string `json:"strTime"`
}

// NewFootballClient creates a new TheSportsDB client. An empty key uses the public test key.
func NewFootballClient(fetcher Fetcher, baseURL, apiKey string, enabled bool, logger *logrus.Logger) *FootballClient {
	if baseURL == "" {
		baseURL = defaultFootballBaseURL
	}
	if strings.TrimSpace(apiKey) == "" {
		apiKey = defaultSportsDBKey
	}
	return &FootballClient{
		fetcher: fetcher,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  strings.TrimSpace(apiKey),
		enabled: enabled,
		now:     time.Now,
		logger:  ensureLogger(logger),
	}
}

// FetchMatches retrieves today's soccer events
func (c *FootballClient) FetchMatches(ctx context.Context) ([]RawMatch, error) {
	if !c.enabled {
		return nil, NewDataSourceError(footballSourceName, ErrCodeProviderDisabled, dataSourceDisabledMsg, nil)
	}

	params := url.Values{}
	params.Set("d", c.now().UTC().Format("2006-01-02"))
	params.Set("s", "Soccer")
	endpoint := fmt.Sprintf("%s/%s/eventsday.php?%s", c.baseURL, url.PathEscape(c.apiKey), params.Encode())

	body, err := c.fetcher.Get(ctx, footballSourceName, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var payload sportsDBEventsResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, NewDataSourceError(footballSourceName, ErrCodeMalformedResponse, "failed to parse events response", err)
	}

	// events is null when nothing is scheduled
	matches := make([]RawMatch, 0, len(payload.Events))
	for _, e := range payload.Events {
		matches = append(matches, mapFootballEvent(e))
	}

	c.logger.WithFields(logrus.Fields{
		"source":  footballSourceName,
		"matches": len(matches),
	}).Debug("fetched football events")

	return matches, nil
}

// Name returns the data source name
func (c *FootballClient) Name() string {
	return footballSourceName
}

// Sport returns football
func (c *FootballClient) Sport() sport.Key {
	return sport.Football
}

// IsEnabled returns whether the data source is enabled
func (c *FootballClient) IsEnabled() bool {
	return c.enabled
}

func mapFootballEvent(e sportsDBEvent) RawMatch {
	m := RawMatch{
		Home: RawTeam{
			ID:    strings.TrimSpace(e.IDHomeTeam),
			Name:  strings.TrimSpace(e.StrHomeTeam),
			Score: scoreValue(e.IntHomeScore),
		},
		Away: RawTeam{
			ID:    strings.TrimSpace(e.IDAwayTeam),
			Name:  strings.TrimSpace(e.StrAwayTeam),
			Score: scoreValue(e.IntAwayScore),
		},
		Status: footballStatus(e),
		Time:   kickoffTime(e.StrTime),
		League: strings.TrimSpace(e.StrLeague),
		Venue:  strings.TrimSpace(e.StrVenue),
	}
	if id := strings.TrimSpace(e.IDEvent); id != "" {
		m.ID = footballSourceName + "-" + id
	}
	return m
}

func footballStatus(e sportsDBEvent) string {
	if s := strings.TrimSpace(e.StrStatus); s != "" {
		return s
	}
	if s := strings.TrimSpace(e.StrProgress); s != "" {
		return s
	}
	if scoreValue(e.IntHomeScore) != nil || scoreValue(e.IntAwayScore) != nil {
		return statusInProgress
	}
	return statusScheduled
}

// scoreValue returns nil for null or blank scores.
func scoreValue(v any) any {
	if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
		return nil
	}
	return v
}

// kickoffTime trims "19:45:00" to "19:45" and passes anything else through.
func kickoffTime(raw string) string {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse("15:04:05", raw); err == nil {
		return t.Format("15:04")
	}
	return raw
}
