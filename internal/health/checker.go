// Package health serves the liveness and readiness probes of the companion service.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// Pinger defines the interface for checking a dependency's connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp,omitempty"`
	Version   string `json:"version,omitempty"`
}

// ReadyResponse represents the JSON response for readiness check endpoints.
type ReadyResponse struct {
	Status   string            `json:"status"`
	Service  string            `json:"service"`
	Checks   map[string]string `json:"checks,omitempty"`
	Duration string            `json:"duration,omitempty"`
}

// Config holds the configuration for the health checker.
type Config struct {
	ServiceName  string
	Version      string
	Logger       *logrus.Logger
	Dependencies map[string]Pinger
	PingTimeout  time.Duration
}

// Checker answers /health, /ready and /live.
type Checker struct {
	serviceName string
	version     string
	deps        map[string]Pinger
	pingTimeout time.Duration
	logger      *logrus.Logger
	mu          sync.RWMutex
	ready       bool
}

// NewChecker creates a checker that starts out not ready.
func NewChecker(cfg Config) *Checker {
	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	deps := make(map[string]Pinger, len(cfg.Dependencies))
	for name, p := range cfg.Dependencies {
		if p != nil {
			deps[name] = p
		}
	}

	return &Checker{
		serviceName: cfg.ServiceName,
		version:     cfg.Version,
		deps:        deps,
		pingTimeout: timeout,
		logger:      cfg.Logger,
	}
}

// SetReady marks the service as ready to accept traffic.
func (c *Checker) SetReady(ready bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ready = ready
}

// IsReady returns whether the service is ready.
func (c *Checker) IsReady() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ready
}

// Register mounts the probe endpoints on r.
func (c *Checker) Register(r chi.Router) {
	r.Get("/health", c.handleHealth)
	r.Get("/ready", c.handleReady)
	r.Get("/live", c.handleLive)
}

func (c *Checker) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Service:   c.serviceName,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   c.version,
	})
}

func (c *Checker) handleLive(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Service: c.serviceName,
	})
}

// handleReady reports not_ready until SetReady(true) and while any dependency fails its ping.
func (c *Checker) handleReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	checks := make(map[string]string, len(c.deps)+1)
	allHealthy := true

	if !c.IsReady() {
		allHealthy = false
		checks["service"] = "not_ready"
	} else {
		checks["service"] = "ok"
	}

	for name, dep := range c.deps {
		ctx, cancel := context.WithTimeout(r.Context(), c.pingTimeout)
		err := dep.Ping(ctx)
		cancel()

		if err != nil {
			allHealthy = false
			checks[name] = fmt.Sprintf("error: %v", err)
			if c.logger != nil {
				c.logger.WithError(err).WithField("dependency", name).Warn("readiness check failed")
			}
			continue
		}
		checks[name] = "ok"
	}

	response := ReadyResponse{
		Service:  c.serviceName,
		Checks:   checks,
		Duration: time.Since(start).String(),
	}

	status := http.StatusOK
	response.Status = "ok"
	if !allHealthy {
		status = http.StatusServiceUnavailable
		response.Status = "not_ready"
	}
	writeJSON(w, status, response)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
