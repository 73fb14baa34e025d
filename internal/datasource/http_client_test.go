package datasource

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHTTPClient(timeout time.Duration) *TimedHTTPClient {
	cfg := DefaultHTTPClientConfig()
	cfg.Timeout = timeout
	cfg.RateLimit = 0
	return NewTimedHTTPClient(cfg, nil)
}

func TestTimedHTTPClientReturnsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "secret", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	body, err := newTestHTTPClient(time.Second).Get(context.Background(), "test", server.URL, map[string]string{
		"Authorization": "secret",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))
}

func TestTimedHTTPClientHTTPErrorCarriesStatus(t *testing.T) {
	for _, status := range []int{http.StatusInternalServerError, http.StatusTooManyRequests, http.StatusUnauthorized} {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			http.Error(w, "upstream says no", status)
		}))

		_, err := newTestHTTPClient(time.Second).Get(context.Background(), "test", server.URL, nil)
		server.Close()

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrHTTPStatus))
		assert.Equal(t, status, StatusCode(err))
		assert.Equal(t, ErrCodeHTTPError, Code(err))
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "default client makes exactly one attempt")
	}
}

func TestTimedHTTPClientTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	start := time.Now()
	_, err := newTestHTTPClient(50*time.Millisecond).Get(context.Background(), "test", server.URL, nil)
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTimeout), "got %v", err)
	assert.Less(t, elapsed, time.Second, "request must be abandoned at the deadline")
}

func TestTimedHTTPClientNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newTestHTTPClient(time.Second).Get(context.Background(), "test", url, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNetwork), "got %v", err)
	assert.Equal(t, 0, StatusCode(err))
}

func TestTimedHTTPClientBodyLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 64)))
	}))
	defer server.Close()

	cfg := DefaultHTTPClientConfig()
	cfg.RateLimit = 0
	cfg.MaxBodyBytes = 16
	_, err := NewTimedHTTPClient(cfg, nil).Get(context.Background(), "test", server.URL, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedResponse))
}

func TestTimedHTTPClientCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestHTTPClient(time.Second).Get(ctx, "test", "http://127.0.0.1:1", nil)
	require.Error(t, err)
	_, ok := AsDataSourceError(err)
	assert.True(t, ok)
}

func TestTimedHTTPClientLimiterWaitCountsTowardTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	cfg := DefaultHTTPClientConfig()
	cfg.Timeout = 300 * time.Millisecond
	cfg.RateLimit = 1
	client := NewTimedHTTPClient(cfg, nil)

	const calls = 4
	var (
		wg       sync.WaitGroup
		timeouts int32
		slowest  int64
	)
	for i := 0; i < calls; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			start := time.Now()
			_, err := client.Get(context.Background(), "test", server.URL, nil)
			elapsed := int64(time.Since(start))
			for {
				cur := atomic.LoadInt64(&slowest)
				if elapsed <= cur || atomic.CompareAndSwapInt64(&slowest, cur, elapsed) {
					break
				}
			}
			if err != nil {
				assert.True(t, errors.Is(err, ErrTimeout), "got %v", err)
				atomic.AddInt32(&timeouts, 1)
			}
		}()
	}
	wg.Wait()

	assert.GreaterOrEqual(t, atomic.LoadInt32(&timeouts), int32(calls-1), "only the burst token is served in time")
	assert.Less(t, time.Duration(atomic.LoadInt64(&slowest)), time.Second, "queued calls must not outlive the deadline")
}
