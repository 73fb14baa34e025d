package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegistry(t *testing.T) {
	registry := GetRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
	assert.Same(t, registry, InitRegistry())
}

func TestRecordLiveScoreRequest(t *testing.T) {
	InitRegistry()
	before := testutil.ToFloat64(LiveScoreRequestsTotal.WithLabelValues("cricket", "synthetic"))

	RecordLiveScoreRequest("cricket", "synthetic", 3)

	assert.Equal(t, before+1, testutil.ToFloat64(LiveScoreRequestsTotal.WithLabelValues("cricket", "synthetic")))
	assert.Equal(t, float64(3), testutil.ToFloat64(MatchesServed.WithLabelValues("cricket")))
}

func TestRecordProviderRequest(t *testing.T) {
	InitRegistry()
	before := testutil.ToFloat64(ProviderRequestsTotal.WithLabelValues("balldontlie", "timeout"))

	assert.NotPanics(t, func() {
		RecordProviderRequest("balldontlie", "timeout", 10*time.Second)
	})
	assert.Equal(t, before+1, testutil.ToFloat64(ProviderRequestsTotal.WithLabelValues("balldontlie", "timeout")))
}

func TestRecordCacheLookup(t *testing.T) {
	InitRegistry()

	RecordCacheLookup("football", "stale", 90*time.Second)
	assert.Equal(t, float64(90), testutil.ToFloat64(CacheAgeSeconds.WithLabelValues("football")))

	RecordCacheLookup("football", "miss", 0)
	assert.Equal(t, float64(90), testutil.ToFloat64(CacheAgeSeconds.WithLabelValues("football")), "a miss leaves the age untouched")
}

func TestHandlerExposesMetrics(t *testing.T) {
	InitRegistry()
	RecordNotification("warning")
	RecordSyntheticMatches("basketball", 3)
	RecordScheduledPoll("basketball", "network")
	RecordHTTPRequest("/api/v1/scores", http.StatusOK, 5*time.Millisecond)
	SetWebsocketClients(2)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "sports_companion_notifications_total")
	assert.Contains(t, string(body), "sports_companion_websocket_clients 2")
}
