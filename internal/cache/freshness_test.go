package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/sports-companion/internal/models"
	"github.com/yourusername/sports-companion/internal/sport"
)

type failingStore struct {
	*MemoryStore
	setErr error
	getErr error
}

func (s *failingStore) Set(ctx context.Context, key string, value []byte) error {
	if s.setErr != nil {
		return s.setErr
	}
	return s.MemoryStore.Set(ctx, key, value)
}

func (s *failingStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if s.getErr != nil {
		return nil, false, s.getErr
	}
	return s.MemoryStore.Get(ctx, key)
}

func sampleMatches() []models.Match {
	return []models.Match{
		{
			ID:       "m1",
			HomeTeam: models.Team{ID: "lal", Name: "Lakers", ShortName: "LAL", Score: 101},
			AwayTeam: models.Team{ID: "bos", Name: "Celtics", ShortName: "BOS", Score: 99},
			Status:   "Final",
			Time:     "TBD",
			League:   "NBA",
			Venue:    "Crypto.com Arena",
		},
	}
}

func newTestCache(store Store, now time.Time) *FreshnessCache {
	c := NewFreshnessCache(store, time.Minute, nil)
	c.now = func() time.Time { return now }
	return c
}

func TestFreshnessCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	now := time.UnixMilli(1_700_000_000_000)
	c := newTestCache(NewMemoryStore(), now)

	c.Write(ctx, sport.Basketball, sampleMatches())

	entry, ok := c.Read(ctx, sport.Basketball)
	require.True(t, ok)
	assert.Equal(t, "basketball", entry.Sport)
	assert.Equal(t, now.UnixMilli(), entry.Timestamp)
	assert.Equal(t, sampleMatches(), entry.Data)
	assert.True(t, c.IsFresh(entry))
	assert.Zero(t, c.Age(entry))

	_, ok = c.Read(ctx, sport.Cricket)
	assert.False(t, ok, "entries are keyed per sport")
}

func TestFreshnessCacheUsesDocumentedKey(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	c := newTestCache(store, time.Now())

	c.Write(ctx, sport.Football, sampleMatches())

	raw, found, err := store.Get(ctx, "liveScores_cache_football")
	require.NoError(t, err)
	require.True(t, found)
	assert.Contains(t, string(raw), `"timestamp":`)
	assert.Contains(t, string(raw), `"data":[`)
}

func TestFreshnessCacheStaleEntryStillReadable(t *testing.T) {
	ctx := context.Background()
	written := time.UnixMilli(1_700_000_000_000)
	c := newTestCache(NewMemoryStore(), written)
	c.Write(ctx, sport.Basketball, sampleMatches())

	c.now = func() time.Time { return written.Add(90 * time.Second) }

	entry, ok := c.Read(ctx, sport.Basketball)
	require.True(t, ok)
	assert.False(t, c.IsFresh(entry))
	assert.Equal(t, 90*time.Second, c.Age(entry))
}

func TestFreshnessCacheCorruptEntriesAreAbsent(t *testing.T) {
	ctx := context.Background()
	tests := map[string]string{
		"not json":          `{{{`,
		"missing timestamp": `{"sport":"basketball","data":[]}`,
		"data not array":    `{"sport":"basketball","timestamp":1,"data":{"id":"x"}}`,
		"data null":         `{"sport":"basketball","timestamp":1,"data":null}`,
		"string timestamp":  `{"sport":"basketball","timestamp":"yesterday","data":[]}`,
		"bad match shape":   `{"sport":"basketball","timestamp":1,"data":[{"homeTeam":"lakers"}]}`,
	}

	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			store := NewMemoryStore()
			require.NoError(t, store.Set(ctx, Key(sport.Basketball), []byte(raw)))

			entry, ok := newTestCache(store, time.Now()).Read(ctx, sport.Basketball)
			assert.False(t, ok)
			assert.Nil(t, entry)
		})
	}
}

func TestFreshnessCacheEmptyArrayIsValid(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, Key(sport.Cricket), []byte(`{"sport":"cricket","timestamp":5,"data":[]}`)))

	entry, ok := newTestCache(store, time.Now()).Read(ctx, sport.Cricket)
	require.True(t, ok)
	assert.Empty(t, entry.Data)
}

func TestFreshnessCacheWriteFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{MemoryStore: NewMemoryStore(), setErr: errors.New("quota exceeded")}
	c := newTestCache(store, time.Now())

	assert.NotPanics(t, func() { c.Write(ctx, sport.Basketball, sampleMatches()) })
	_, ok := c.Read(ctx, sport.Basketball)
	assert.False(t, ok)
}

func TestFreshnessCacheReadFailureIsAbsent(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{MemoryStore: NewMemoryStore(), getErr: errors.New("connection reset")}

	_, ok := newTestCache(store, time.Now()).Read(ctx, sport.Basketball)
	assert.False(t, ok)
}

func TestFreshnessCacheLastWriteWins(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(NewMemoryStore(), time.Now())

	c.Write(ctx, sport.Basketball, sampleMatches())
	c.Write(ctx, sport.Basketball, nil)

	entry, ok := c.Read(ctx, sport.Basketball)
	require.True(t, ok)
	assert.Empty(t, entry.Data)
}

func TestFreshnessCacheReset(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(NewMemoryStore(), time.Now())
	for _, s := range sport.All() {
		c.Write(ctx, s, sampleMatches())
	}

	c.Reset(ctx)

	for _, s := range sport.All() {
		_, ok := c.Read(ctx, s)
		assert.False(t, ok, "sport %s", s)
	}
}

func TestFreshnessCacheDefaultTTL(t *testing.T) {
	assert.Equal(t, DefaultTTL, NewFreshnessCache(NewMemoryStore(), 0, nil).TTL())
}
