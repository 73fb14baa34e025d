package datasource

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/sports-companion/internal/config"
	"github.com/yourusername/sports-companion/internal/sport"
)

func TestFactoryBuildsProviderPerSport(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)
	cfg.Providers.Cricket.Enabled = false

	f := NewFactory(cfg, nil)
	providers, err := f.NewProviders(&countingFetcher{})
	require.NoError(t, err)
	require.Len(t, providers, 3)

	for key, p := range providers {
		assert.Equal(t, key, p.Sport())
	}
	assert.Equal(t, "balldontlie", providers[sport.Basketball].Name())
	assert.Equal(t, "thesportsdb", providers[sport.Football].Name())
	assert.False(t, providers[sport.Cricket].IsEnabled())
}

func TestFactoryRejectsMissingFetcher(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)

	_, err = NewFactory(cfg, nil).NewProvider(sport.Basketball, nil)
	assert.Error(t, err)
	_, err = NewFactory(cfg, nil).NewProvider(sport.Key("curling"), &countingFetcher{})
	assert.Error(t, err)
}

func TestFactoryHTTPClientConfig(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)
	cfg.HTTP.TimeoutMS = 2500

	hc := NewFactory(cfg, nil).HTTPClientConfig()
	assert.Equal(t, 2500*time.Millisecond, hc.Timeout)
	assert.Zero(t, hc.MaxRetries)
	assert.Equal(t, int64(defaultMaxBodyBytes), hc.MaxBodyBytes)
}
