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
	basketballSourceName     = "balldontlie"
	defaultBasketballBaseURL = "https://api.balldontlie.io/v1"
	basketballTimezone       = "America/New_York"
)

// BasketballClient implements Provider for the balldontlie games endpoint
type BasketballClient struct {
	fetcher Fetcher
	baseURL string
	apiKey  string
	enabled bool
	loc     *time.Location
	now     func() time.Time
	logger  *logrus.Logger
}

type balldontlieGamesResponse struct {
	Data []balldontlieGame `json:"data"`
}

type balldontlieGame struct {
	ID               int64           `json:"id"`
	Date             string          `json:"date"`
	Status           string          `json:"status"`
	Period           int             `json:"period"`
	Time             string          `json:"time"`
	HomeTeam         balldontlieTeam `json:"home_team"`
	VisitorTeam      balldontlieTeam `json:"visitor_team"`
	HomeTeamScore    any             `json:"home_team_score"`
	VisitorTeamScore any             `json:"visitor_team_score"`
}

type balldontlieTeam struct {
	ID           int64  `json:"id"`
	Abbreviation string `json:"abbreviation"`
	FullName     string `json:"full_name"`
	Name         string `json:"name"`
	City         string `json:"city"`
}

// NewBasketballClient creates a new balldontlie client
func NewBasketballClient(fetcher Fetcher, baseURL, apiKey string, enabled bool, logger *logrus.Logger) *BasketballClient {
	if baseURL == "" {
		baseURL = defaultBasketballBaseURL
	}
	return &BasketballClient{
		fetcher: fetcher,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		enabled: enabled,
		loc:     resolveLocation(basketballTimezone),
		now:     time.Now,
		logger:  ensureLogger(logger),
	}
}

// FetchMatches retrieves today's games
func (c *BasketballClient) FetchMatches(ctx context.Context) ([]RawMatch, error) {
	if !c.enabled {
		return nil, NewDataSourceError(basketballSourceName, ErrCodeProviderDisabled, dataSourceDisabledMsg, nil)
	}

	params := url.Values{}
	params.Set("dates[]", c.now().In(c.loc).Format("2006-01-02"))
	params.Set("per_page", "100")
	endpoint := c.baseURL + "/games?" + params.Encode()

	var headers map[string]string
	if key := strings.TrimSpace(c.apiKey); key != "" {
		headers = map[string]string{"Authorization": key}
	}

	body, err := c.fetcher.Get(ctx, basketballSourceName, endpoint, headers)
	if err != nil {
		return nil, err
	}

	var payload balldontlieGamesResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, NewDataSourceError(basketballSourceName, ErrCodeMalformedResponse, "failed to parse games response", err)
	}

	matches := make([]RawMatch, 0, len(payload.Data))
	for _, g := range payload.Data {
		matches = append(matches, mapBasketballGame(g))
	}

	c.logger.WithFields(logrus.Fields{
		"source":  basketballSourceName,
		"matches": len(matches),
	}).Debug("fetched basketball games")

	return matches, nil
}

// Name returns the data source name
func (c *BasketballClient) Name() string {
	return basketballSourceName
}

// Sport returns basketball
func (c *BasketballClient) Sport() sport.Key {
	return sport.Basketball
}

// IsEnabled returns whether the data source is enabled
func (c *BasketballClient) IsEnabled() bool {
	return c.enabled
}

func mapBasketballGame(g balldontlieGame) RawMatch {
	m := RawMatch{
		Home:   mapBasketballTeam(g.HomeTeam, g.HomeTeamScore),
		Away:   mapBasketballTeam(g.VisitorTeam, g.VisitorTeamScore),
		Status: basketballStatus(g),
		Time:   strings.TrimSpace(g.Time),
		League: sport.Basketball.League(),
	}
	if g.ID > 0 {
		m.ID = fmt.Sprintf("%s-%d", basketballSourceName, g.ID)
	}
	return m
}

func mapBasketballTeam(t balldontlieTeam, score any) RawTeam {
	rt := RawTeam{
		Name:      strings.TrimSpace(t.FullName),
		ShortName: strings.TrimSpace(t.Abbreviation),
	}
	if rt.Name == "" {
		rt.Name = strings.TrimSpace(strings.TrimSpace(t.City) + " " + strings.TrimSpace(t.Name))
	}
	if t.ID > 0 {
		rt.ID = fmt.Sprintf("%d", t.ID)
	}
	rt.Score = scoreValue(score)
	return rt
}

// basketballStatus prefers the provider status, then the running period.
func basketballStatus(g balldontlieGame) string {
	if s := strings.TrimSpace(g.Status); s != "" {
		return s
	}
	if g.Period > 0 {
		return fmt.Sprintf("Q%d", g.Period)
	}
	return ""
}

func resolveLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

func ensureLogger(logger *logrus.Logger) *logrus.Logger {
	if logger != nil {
		return logger
	}
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}
