package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/yourusername/sports-companion/internal/cache"
	"github.com/yourusername/sports-companion/internal/config"
	"github.com/yourusername/sports-companion/internal/datasource"
	"github.com/yourusername/sports-companion/internal/notify"
	"github.com/yourusername/sports-companion/internal/service"
	"github.com/yourusername/sports-companion/internal/sport"
)

// app holds the long-lived objects shared by every command.
type app struct {
	store      cache.Store
	freshness  *cache.FreshnessCache
	fetcher    *datasource.TimedHTTPClient
	aggregator *service.Aggregator
	details    *service.DetailsService
}

func newApp(cfg *config.Config, notifier notify.Notifier, log *logrus.Logger) (*app, error) {
	store, err := cache.NewStore(cfg.Cache)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache store: %w", err)
	}
	freshness := cache.NewFreshnessCache(store, cfg.Cache.TTL(), log)

	factory := datasource.NewFactory(cfg, log)
	fetcher := datasource.NewTimedHTTPClient(factory.HTTPClientConfig(), log)
	providers, err := factory.NewProviders(fetcher)
	if err != nil {
		return nil, multierr.Append(err, store.Close())
	}

	aggregator := service.NewAggregator(
		providers,
		service.NewMatchProcessor(log),
		freshness,
		service.NewSyntheticGenerator(),
		notifier,
		service.AggregatorConfig{
			DefaultSport:   sport.Normalize(cfg.App.DefaultSport),
			SyntheticCount: cfg.Synthetic.MatchCount,
		},
		log,
	)

	return &app{
		store:      store,
		freshness:  freshness,
		fetcher:    fetcher,
		aggregator: aggregator,
		details:    service.NewDetailsService(freshness, notifier, log),
	}, nil
}

func (a *app) Close() error {
	return multierr.Combine(a.fetcher.Close(), a.store.Close())
}
