package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/sports-companion/internal/models"
	"github.com/yourusername/sports-companion/internal/sport"
)

const (
	// KeyPrefix namespaces the per-sport entries in the shared store.
	KeyPrefix = "liveScores_cache_"
	// DefaultTTL is the advisory freshness window.
	DefaultTTL = 60 * time.Second
)

// Entry is the stored form of one sport's last successful fetch.
type Entry struct {
	Sport     string         `json:"sport"`
	Timestamp int64          `json:"timestamp"` // epoch milliseconds
	Data      []models.Match `json:"data"`
}

// FetchedAt returns the entry timestamp as a time.
func (e *Entry) FetchedAt() time.Time {
	return time.UnixMilli(e.Timestamp)
}

// storedEntry is decoded first so presence of timestamp and the array shape can be checked.
type storedEntry struct {
	Sport     string          `json:"sport"`
	Timestamp *int64          `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// FreshnessCache remembers the last good batch per sport. It never returns errors:
// unreadable entries are treated as absent and failed writes are logged.
type FreshnessCache struct {
	store  Store
	ttl    time.Duration
	now    func() time.Time
	logger *logrus.Logger
}

// NewFreshnessCache wraps store with the given advisory TTL
func NewFreshnessCache(store Store, ttl time.Duration, logger *logrus.Logger) *FreshnessCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &FreshnessCache{
		store:  store,
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
	}
}

// Key returns the store key for a sport
func Key(s sport.Key) string {
	return KeyPrefix + string(s)
}

// TTL returns the advisory freshness window
func (c *FreshnessCache) TTL() time.Duration {
	return c.ttl
}

// Read returns the stored entry for a sport when it is present and well formed.
func (c *FreshnessCache) Read(ctx context.Context, s sport.Key) (*Entry, bool) {
	raw, found, err := c.store.Get(ctx, Key(s))
	if err != nil {
		c.logger.WithError(err).WithField("sport", s).Warn("cache read failed")
		return nil, false
	}
	if !found {
		return nil, false
	}

	entry, ok := decodeEntry(raw)
	if !ok {
		c.logger.WithField("sport", s).Warn("ignoring corrupt cache entry")
		return nil, false
	}
	return entry, true
}

// Write replaces the entry for a sport with matches stamped now.
func (c *FreshnessCache) Write(ctx context.Context, s sport.Key, matches []models.Match) {
	if matches == nil {
		matches = []models.Match{}
	}
	entry := Entry{
		Sport:     string(s),
		Timestamp: c.now().UnixMilli(),
		Data:      matches,
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		c.logger.WithError(err).WithField("sport", s).Warn("cache encode failed")
		return
	}
	if err := c.store.Set(ctx, Key(s), raw); err != nil {
		c.logger.WithError(err).WithField("sport", s).Warn("cache write failed")
	}
}

// Age returns how long ago the entry was written; negative ages are reported as zero.
func (c *FreshnessCache) Age(e *Entry) time.Duration {
	age := c.now().Sub(e.FetchedAt())
	if age < 0 {
		return 0
	}
	return age
}

// IsFresh reports whether the entry is within the TTL.
func (c *FreshnessCache) IsFresh(e *Entry) bool {
	return c.Age(e) <= c.ttl
}

// Reset deletes every sport's entry.
func (c *FreshnessCache) Reset(ctx context.Context) {
	keys := make([]string, 0, len(sport.All()))
	for _, s := range sport.All() {
		keys = append(keys, Key(s))
	}
	if err := c.store.Delete(ctx, keys...); err != nil {
		c.logger.WithError(err).Warn("cache reset failed")
	}
}

// Ping reports whether the backing store is reachable.
func (c *FreshnessCache) Ping(ctx context.Context) error {
	return c.store.Ping(ctx)
}

func decodeEntry(raw []byte) (*Entry, bool) {
	var stored storedEntry
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, false
	}
	if stored.Timestamp == nil {
		return nil, false
	}
	trimmed := bytes.TrimSpace(stored.Data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false
	}

	var matches []models.Match
	if err := json.Unmarshal(trimmed, &matches); err != nil {
		return nil, false
	}
	return &Entry{
		Sport:     stored.Sport,
		Timestamp: *stored.Timestamp,
		Data:      matches,
	}, true
}
