package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/sports-companion/internal/cache"
	"github.com/yourusername/sports-companion/internal/datasource"
	"github.com/yourusername/sports-companion/internal/logger"
	"github.com/yourusername/sports-companion/internal/metrics"
	"github.com/yourusername/sports-companion/internal/models"
	"github.com/yourusername/sports-companion/internal/notify"
	"github.com/yourusername/sports-companion/internal/sport"
)

// State names logged while serving a request.
const (
	StateNormalizing            = "normalizing"
	StateFetching               = "fetching"
	StateProcessing             = "processing"
	StateSuccess                = "success"
	StateFallingBackToCache     = "falling_back_to_cache"
	StateFallingBackToSynthetic = "falling_back_to_synthetic"
)

// ErrNoMatches is returned internally when a provider answers with nothing usable.
var ErrNoMatches = errors.New("provider returned no matches")

// AggregatorConfig holds the tunables of the fallback chain
type AggregatorConfig struct {
	DefaultSport   sport.Key
	SyntheticCount int
}

// ProviderStatus describes one configured provider
type ProviderStatus struct {
	Sport    string `json:"sport"`
	League   string `json:"league"`
	Provider string `json:"provider"`
	Enabled  bool   `json:"enabled"`
}

// Aggregator is the single entry point for live scores. It always answers:
// network first, then the freshness cache, then synthetic matches.
type Aggregator struct {
	providers map[sport.Key]datasource.Provider
	processor *MatchProcessor
	validator *MatchValidator
	cache     *cache.FreshnessCache
	synthetic *SyntheticGenerator
	notifier  notify.Notifier
	cfg       AggregatorConfig
	log       *logger.AggregatorLogger
	now       func() time.Time
}

// NewAggregator creates a new aggregator
func NewAggregator(
	providers map[sport.Key]datasource.Provider,
	processor *MatchProcessor,
	freshness *cache.FreshnessCache,
	synthetic *SyntheticGenerator,
	notifier notify.Notifier,
	cfg AggregatorConfig,
	log *logrus.Logger,
) *Aggregator {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	if processor == nil {
		processor = NewMatchProcessor(log)
	}
	if synthetic == nil {
		synthetic = NewSyntheticGenerator()
	}
	if notifier == nil {
		notifier = notify.Nop
	}
	if cfg.DefaultSport == "" {
		cfg.DefaultSport = sport.Default
	}
	if cfg.SyntheticCount <= 0 {
		cfg.SyntheticCount = DefaultSyntheticCount
	}

	return &Aggregator{
		providers: providers,
		processor: processor,
		validator: NewMatchValidator(),
		cache:     freshness,
		synthetic: synthetic,
		notifier:  notifier,
		cfg:       cfg,
		log:       logger.NewAggregatorLogger(log),
		now:       time.Now,
	}
}

// FetchLiveScores returns the best available matches for a sport. It never fails
// and never returns an empty batch; the Source field records which tier answered.
func (a *Aggregator) FetchLiveScores(ctx context.Context, sportName string) models.Batch {
	requestID := uuid.NewString()

	a.log.LogState(requestID, sportName, StateNormalizing)
	key := a.Normalize(sportName)

	matches, providerName, err := a.fetch(ctx, requestID, key)
	if err == nil {
		a.log.LogState(requestID, key.String(), StateSuccess)
		return a.record(models.Batch{
			Sport:     key.String(),
			Source:    models.SourceNetwork,
			Matches:   matches,
			FetchedAt: a.now(),
		})
	}

	a.log.LogProviderFailure(requestID, key.String(), providerName, datasource.Code(err), datasource.StatusCode(err), err)
	a.notify(ctx, UserMessage(err), notify.LevelError)

	a.log.LogState(requestID, key.String(), StateFallingBackToCache)
	if batch, ok := a.fromCache(ctx, requestID, key); ok {
		return a.record(batch)
	}

	a.log.LogState(requestID, key.String(), StateFallingBackToSynthetic)
	return a.record(a.fromSynthetic(ctx, requestID, key))
}

// Normalize resolves a free-form sport name; blank input selects the configured default.
func (a *Aggregator) Normalize(sportName string) sport.Key {
	if sportName == "" {
		return a.cfg.DefaultSport
	}
	return sport.Normalize(sportName)
}

// Providers lists the configured providers in display order
func (a *Aggregator) Providers() []ProviderStatus {
	statuses := make([]ProviderStatus, 0, len(a.providers))
	for key, p := range a.providers {
		statuses = append(statuses, ProviderStatus{
			Sport:    key.String(),
			League:   key.League(),
			Provider: p.Name(),
			Enabled:  p.IsEnabled(),
		})
	}
	order := make(map[string]int)
	for i, k := range sport.All() {
		order[k.String()] = i
	}
	sort.Slice(statuses, func(i, j int) bool {
		return order[statuses[i].Sport] < order[statuses[j].Sport]
	})
	return statuses
}

func (a *Aggregator) fetch(ctx context.Context, requestID string, key sport.Key) ([]models.Match, string, error) {
	a.log.LogState(requestID, key.String(), StateFetching)

	provider, ok := a.providers[key]
	if !ok || provider == nil {
		return nil, "none", datasource.NewDataSourceError(key.String(), datasource.ErrCodeProviderDisabled,
			fmt.Sprintf("no provider configured for %s", key), nil)
	}

	start := a.now()
	raw, err := provider.FetchMatches(ctx)
	elapsed := a.now().Sub(start)
	if err != nil {
		metrics.RecordProviderRequest(provider.Name(), datasource.Code(err), elapsed)
		return nil, provider.Name(), err
	}
	metrics.RecordProviderRequest(provider.Name(), "ok", elapsed)

	a.log.LogState(requestID, key.String(), StateProcessing)
	matches := a.processor.Process(raw)
	if len(matches) == 0 {
		return nil, provider.Name(), ErrNoMatches
	}
	if problems := a.validator.ValidateBatch(matches); len(problems) > 0 {
		a.log.WithField("problems", problems).Warn("processed batch failed validation")
	}

	if a.cache != nil {
		a.cache.Write(ctx, key, matches)
	}
	a.log.LogFetchSuccess(requestID, key.String(), provider.Name(), len(matches), elapsed.Milliseconds())

	return matches, provider.Name(), nil
}

func (a *Aggregator) fromCache(ctx context.Context, requestID string, key sport.Key) (models.Batch, bool) {
	if a.cache == nil {
		return models.Batch{}, false
	}

	entry, ok := a.cache.Read(ctx, key)
	if !ok || len(entry.Data) == 0 {
		metrics.RecordCacheLookup(key.String(), "miss", 0)
		return models.Batch{}, false
	}

	age := a.cache.Age(entry)
	stale := !a.cache.IsFresh(entry)
	result := "fresh"
	if stale {
		result = "stale"
	}
	metrics.RecordCacheLookup(key.String(), result, age)

	a.log.LogFallback(requestID, key.String(), string(models.SourceCache), len(entry.Data), stale, age.Milliseconds())
	a.notify(ctx, MsgUsingCachedData, notify.LevelInfo)

	return models.Batch{
		Sport:     key.String(),
		Source:    models.SourceCache,
		Matches:   entry.Data,
		FetchedAt: entry.FetchedAt(),
		Stale:     stale,
	}, true
}

func (a *Aggregator) fromSynthetic(ctx context.Context, requestID string, key sport.Key) models.Batch {
	matches := a.synthetic.Generate(key, a.cfg.SyntheticCount)
	metrics.RecordSyntheticMatches(key.String(), len(matches))

	a.log.LogFallback(requestID, key.String(), string(models.SourceSynthetic), len(matches), false, 0)
	a.log.WithField("pool", describePool(key)).Debug("generated synthetic matches")
	a.notify(ctx, MsgUsingSampleData, notify.LevelWarning)

	return models.Batch{
		Sport:     key.String(),
		Source:    models.SourceSynthetic,
		Matches:   matches,
		FetchedAt: a.now(),
	}
}

func (a *Aggregator) notify(ctx context.Context, message string, level notify.Level) {
	metrics.RecordNotification(string(level))
	a.notifier.Notify(ctx, message, level)
}

func (a *Aggregator) record(b models.Batch) models.Batch {
	metrics.RecordLiveScoreRequest(b.Sport, string(b.Source), len(b.Matches))
	return b
}
