package models

import "time"

// Source records where a batch of matches came from.
type Source string

const (
	SourceNetwork   Source = "network"
	SourceCache     Source = "cache"
	SourceSynthetic Source = "synthetic"
)

// Batch is the result of one live scores request.
type Batch struct {
	Sport     string    `json:"sport"`
	Source    Source    `json:"source"`
	Matches   []Match   `json:"matches"`
	FetchedAt time.Time `json:"fetchedAt"`
	// Stale is set when a cached batch older than the freshness TTL was served.
	Stale bool `json:"stale"`
}

// IsLive reports whether the batch was fetched from an upstream provider.
func (b *Batch) IsLive() bool {
	return b.Source == SourceNetwork
}

// Len returns the number of matches in the batch.
func (b *Batch) Len() int {
	return len(b.Matches)
}
