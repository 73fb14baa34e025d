package datasource

import (
	"context"
	"encoding/json"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/sports-companion/internal/sport"
)

const (
	cricketSourceName     = "cricapi"
	defaultCricketBaseURL = "https://api.cricapi.com/v1"
	// PlaceholderAPIKey is the unfilled value shipped in sample configuration.
	PlaceholderAPIKey = "YOUR_API_KEY_HERE"
)

var (
	leadingRuns = regexp.MustCompile(`^\s*(\d+)`)
	teamLabel   = regexp.MustCompile(`^(.*?)\s*\[([^\]]+)\]\s*$`)
)

// CricketClient implements Provider for the CricAPI cricScore feed
type CricketClient struct {
	fetcher Fetcher
	baseURL string
	apiKey  string
	enabled bool
	logger  *logrus.Logger
}

type cricAPIResponse struct {
	Status string           `json:"status"`
	Reason string           `json:"reason"`
	Data   []cricScoreMatch `json:"data"`
}

type cricScoreMatch struct {
	ID          string `json:"id"`
	DateTimeGMT string `json:"dateTimeGMT"`
	MatchType   string `json:"matchType"`
	Status      string `json:"status"`
	MS          string `json:"ms"`
	T1          string `json:"t1"`
	T2          string `json:"t2"`
	T1S         string `json:"t1s"`
	T2S         string `json:"t2s"`
	Series      string `json:"series"`
}

// NewCricketClient creates a new CricAPI client
func NewCricketClient(fetcher Fetcher, baseURL, apiKey string, enabled bool, logger *logrus.Logger) *CricketClient {
	if baseURL == "" {
		baseURL = defaultCricketBaseURL
	}
	return &CricketClient{
		fetcher: fetcher,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		enabled: enabled,
		logger:  ensureLogger(logger),
	}
}

// HasUsableKey reports whether key is non-blank and not the sample placeholder.
func HasUsableKey(key string) bool {
	key = strings.TrimSpace(key)
	return key != "" && key != PlaceholderAPIKey
}

// FetchMatches retrieves current matches. It fails without touching the network
// when no usable API key is configured.
func (c *CricketClient) FetchMatches(ctx context.Context) ([]RawMatch, error) {
	if !c.enabled {
		return nil, NewDataSourceError(cricketSourceName, ErrCodeProviderDisabled, dataSourceDisabledMsg, nil)
	}
	if !HasUsableKey(c.apiKey) {
		return nil, NewDataSourceError(cricketSourceName, ErrCodeMissingCredential, "cricket API key is not configured", nil)
	}

	params := url.Values{}
	params.Set("apikey", strings.TrimSpace(c.apiKey))
	endpoint := c.baseURL + "/cricScore?" + params.Encode()

	body, err := c.fetcher.Get(ctx, cricketSourceName, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var payload cricAPIResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, NewDataSourceError(cricketSourceName, ErrCodeMalformedResponse, "failed to parse cricScore response", err)
	}
	if !strings.EqualFold(payload.Status, "success") {
		reason := payload.Reason
		if reason == "" {
			reason = "status " + strconv.Quote(payload.Status)
		}
		return nil, NewDataSourceError(cricketSourceName, ErrCodeMalformedResponse, "provider rejected request: "+reason, nil)
	}

	matches := make([]RawMatch, 0, len(payload.Data))
	for _, m := range payload.Data {
		matches = append(matches, mapCricketMatch(m))
	}

	c.logger.WithFields(logrus.Fields{
		"source":  cricketSourceName,
		"matches": len(matches),
	}).Debug("fetched cricket scores")

	return matches, nil
}

// Name returns the data source name
func (c *CricketClient) Name() string {
	return cricketSourceName
}

// Sport returns cricket
func (c *CricketClient) Sport() sport.Key {
	return sport.Cricket
}

// IsEnabled returns whether the data source is enabled
func (c *CricketClient) IsEnabled() bool {
	return c.enabled
}

// ParseRuns extracts the leading run count from a score such as "245/6 (50 ov)".
// Unparseable input yields 0.
func ParseRuns(score string) int {
	match := leadingRuns.FindStringSubmatch(score)
	if match == nil {
		return 0
	}
	runs, err := strconv.Atoi(match[1])
	if err != nil {
		return 0
	}
	return runs
}

// SplitTeamLabel splits "India [IND]" into its name and short name.
func SplitTeamLabel(label string) (name, short string) {
	label = strings.TrimSpace(label)
	if m := teamLabel.FindStringSubmatch(label); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	return label, ""
}

func mapCricketMatch(m cricScoreMatch) RawMatch {
	homeName, homeShort := SplitTeamLabel(m.T1)
	awayName, awayShort := SplitTeamLabel(m.T2)

	rm := RawMatch{
		ID: strings.TrimSpace(m.ID),
		Home: RawTeam{
			Name:      homeName,
			ShortName: homeShort,
			Score:     ParseRuns(m.T1S),
		},
		Away: RawTeam{
			Name:      awayName,
			ShortName: awayShort,
			Score:     ParseRuns(m.T2S),
		},
		Status: cricketStatus(m),
		Time:   cricketStartTime(m.DateTimeGMT),
		League: strings.TrimSpace(m.Series),
	}
	if rm.League == "" {
		rm.League = sport.Cricket.League()
	}
	return rm
}

func cricketStatus(m cricScoreMatch) string {
	if s := strings.TrimSpace(m.Status); s != "" {
		return s
	}
	switch strings.ToLower(strings.TrimSpace(m.MS)) {
	case "fixture":
		return statusScheduled
	case "live":
		return "Live"
	case "result":
		return "Final"
	}
	return ""
}

func cricketStartTime(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	for _, layout := range []string{"2006-01-02T15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("15:04") + " GMT"
		}
	}
	return raw
}
