package datasource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout      = 10 * time.Second
	defaultMaxBodyBytes = 5 << 20
	errorBodyPreview    = 512
)

// HTTPClientConfig holds configuration for HTTP clients
type HTTPClientConfig struct {
	Timeout      time.Duration
	MaxRetries   int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	RateLimit    float64 // requests per second, zero disables limiting
	MaxBodyBytes int64
	UserAgent    string
}

// DefaultHTTPClientConfig returns recommended defaults
func DefaultHTTPClientConfig() HTTPClientConfig {
	return HTTPClientConfig{
		Timeout:      defaultTimeout,
		MaxRetries:   0, // one attempt; polling provides repetition
		RetryWaitMin: 100 * time.Millisecond,
		RetryWaitMax: 2 * time.Second,
		RateLimit:    10.0,
		MaxBodyBytes: defaultMaxBodyBytes,
		UserAgent:    "sports-companion/1.0",
	}
}

// TimedHTTPClient issues GET requests that are abandoned once the deadline passes.
// It is safe for concurrent use.
type TimedHTTPClient struct {
	client       *retryablehttp.Client
	limiter      *rate.Limiter
	timeout      time.Duration
	maxBodyBytes int64
	userAgent    string
	logger       *logrus.Logger
}

// NewTimedHTTPClient creates a new timed HTTP client
func NewTimedHTTPClient(cfg HTTPClientConfig, logger *logrus.Logger) *TimedHTTPClient {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultMaxBodyBytes
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.MaxRetries
	retryClient.RetryWaitMin = cfg.RetryWaitMin
	retryClient.RetryWaitMax = cfg.RetryWaitMax
	retryClient.CheckRetry = customRetryPolicy()
	// keep the final response so the status code survives exhausted retries
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil

	limit := rate.Inf
	burst := 1
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
		if b := int(cfg.RateLimit); b > burst {
			burst = b
		}
	}

	return &TimedHTTPClient{
		client:       retryClient,
		limiter:      rate.NewLimiter(limit, burst),
		timeout:      cfg.Timeout,
		maxBodyBytes: cfg.MaxBodyBytes,
		userAgent:    cfg.UserAgent,
		logger:       logger,
	}
}

// Timeout returns the per-request deadline.
func (c *TimedHTTPClient) Timeout() time.Duration {
	return c.timeout
}

// Get performs one GET bounded by the client timeout and returns the body.
// Failures are always *DataSourceError values tagged with source.
func (c *TimedHTTPClient) Get(ctx context.Context, source, url string, headers map[string]string) ([]byte, error) {
	parent := ctx
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	// the limiter queue counts against the deadline
	if err := c.limiter.Wait(ctx); err != nil {
		if parent.Err() != nil {
			return nil, NewDataSourceError(source, ErrCodeNetworkError, "rate limiter wait aborted", err)
		}
		return nil, NewDataSourceError(source, ErrCodeTimeout,
			fmt.Sprintf("rate limiter wait exceeded %s", c.timeout), err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, NewDataSourceError(source, ErrCodeNetworkError, "failed to build request", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return nil, c.classify(ctx, source, err)
	}
	defer resp.Body.Close()

	c.logger.WithFields(logrus.Fields{
		"source":      source,
		"status":      resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("upstream response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		preview, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyPreview))
		return nil, NewHTTPStatusError(source, resp.StatusCode, strings.TrimSpace(string(preview)))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes+1))
	if err != nil {
		return nil, c.classify(ctx, source, err)
	}
	if int64(len(body)) > c.maxBodyBytes {
		return nil, NewDataSourceError(source, ErrCodeMalformedResponse,
			fmt.Sprintf("response body exceeds %d bytes", c.maxBodyBytes), nil)
	}

	return body, nil
}

// Close closes any resources held by the client
func (c *TimedHTTPClient) Close() error {
	c.client.HTTPClient.CloseIdleConnections()
	return nil
}

func (c *TimedHTTPClient) classify(ctx context.Context, source string, err error) *DataSourceError {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return NewDataSourceError(source, ErrCodeTimeout,
			fmt.Sprintf("request exceeded %s", c.timeout), err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return NewDataSourceError(source, ErrCodeTimeout,
			fmt.Sprintf("request exceeded %s", c.timeout), err)
	}
	return NewDataSourceError(source, ErrCodeNetworkError, "request failed", err)
}

// customRetryPolicy defines which HTTP responses should trigger a retry
func customRetryPolicy() retryablehttp.CheckRetry {
	return func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		if err != nil {
			// Retry on network errors
			return true, err
		}

		// Retry on rate limit (429) and gateway errors
		switch resp.StatusCode {
		case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway,
			http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true, nil
		}

		return false, nil
	}
}
