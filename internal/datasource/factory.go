package datasource

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/sports-companion/internal/config"
	"github.com/yourusername/sports-companion/internal/sport"
)

// Factory creates Provider implementations based on configuration
type Factory struct {
	logger *logrus.Logger
	config *config.Config
}

// NewFactory creates a new data source factory
func NewFactory(cfg *config.Config, logger *logrus.Logger) *Factory {
	return &Factory{
		logger: logger,
		config: cfg,
	}
}

// HTTPClientConfig derives the timed fetcher settings from configuration
func (f *Factory) HTTPClientConfig() HTTPClientConfig {
	h := f.config.HTTP
	cfg := DefaultHTTPClientConfig()
	cfg.Timeout = h.Timeout()
	cfg.MaxRetries = h.MaxRetries
	cfg.RetryWaitMin = h.RetryWaitMin()
	cfg.RetryWaitMax = h.RetryWaitMax()
	cfg.RateLimit = h.RateLimit
	if h.UserAgent != "" {
		cfg.UserAgent = h.UserAgent
	}
	return cfg
}

// NewProvider creates the provider for one sport
func (f *Factory) NewProvider(key sport.Key, fetcher Fetcher) (Provider, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("fetcher is required")
	}

	p := f.config.Providers
	switch key {
	case sport.Basketball:
		return NewBasketballClient(fetcher, p.Basketball.BaseURL, p.Basketball.APIKey, p.Basketball.Enabled, f.logger), nil
	case sport.Football:
		return NewFootballClient(fetcher, p.Football.BaseURL, p.Football.APIKey, p.Football.Enabled, f.logger), nil
	case sport.Cricket:
		return NewCricketClient(fetcher, p.Cricket.BaseURL, p.Cricket.APIKey, p.Cricket.Enabled, f.logger), nil
	default:
		return nil, fmt.Errorf("unknown sport: %s", key)
	}
}

// NewProviders creates one provider per supported sport
func (f *Factory) NewProviders(fetcher Fetcher) (map[sport.Key]Provider, error) {
	providers := make(map[sport.Key]Provider, len(sport.All()))
	for _, key := range sport.All() {
		p, err := f.NewProvider(key, fetcher)
		if err != nil {
			return nil, err
		}
		providers[key] = p
	}
	return providers, nil
}
