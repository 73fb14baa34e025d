package datasource

import (
	"context"

	"github.com/yourusername/sports-companion/internal/sport"
)

// Provider fetches one sport's matches from a single upstream shape.
// Results are provider-shaped; canonicalization happens afterwards in the processor.
type Provider interface {
	// FetchMatches retrieves today's matches from the upstream provider
	FetchMatches(ctx context.Context) ([]RawMatch, error)

	// Name returns the name of the data source
	Name() string

	// Sport returns the canonical sport served by this provider
	Sport() sport.Key

	// IsEnabled returns whether this data source is currently enabled
	IsEnabled() bool
}

// Fetcher performs a bounded GET and returns the response body.
type Fetcher interface {
	Get(ctx context.Context, source, url string, headers map[string]string) ([]byte, error)
}

// RawTeam is one side of a provider record. Empty strings mean the provider omitted the field.
type RawTeam struct {
	ID        string
	Name      string
	ShortName string
	Score     any // number, numeric string or nil
}

// RawMatch is a provider-shaped match record that has not been canonicalized yet.
type RawMatch struct {
	ID     string
	Home   RawTeam
	Away   RawTeam
	Status string
	Time   string
	League string
	Venue  string
}

const dataSourceDisabledMsg = "data source is disabled"
