// Package api exposes live scores, match details and notifications over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/sports-companion/internal/health"
	"github.com/yourusername/sports-companion/internal/models"
	"github.com/yourusername/sports-companion/internal/service"
)

// ScoresService is the live score entry point consumed by the handlers.
type ScoresService interface {
	FetchLiveScores(ctx context.Context, sport string) models.Batch
	Providers() []service.ProviderStatus
}

// DetailsService loads a single match's drill-down record.
type DetailsService interface {
	FetchMatchDetails(ctx context.Context, matchID string) *models.MatchDetails
}

// Options wires the router's dependencies. Nil optional fields disable their routes.
type Options struct {
	Scores         ScoresService
	Details        DetailsService
	Health         *health.Checker
	Notifications  http.Handler
	Metrics        http.Handler
	MetricsPath    string
	CORSOrigins    []string
	RequestTimeout time.Duration
	Logger         *logrus.Logger
}

// NewRouter builds the HTTP handler tree.
func NewRouter(opts Options) http.Handler {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 30 * time.Second
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}

	h := NewHandler(opts.Scores, opts.Details, opts.Logger)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(RequestLogger(opts.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	if opts.Health != nil {
		opts.Health.Register(r)
	}
	if opts.Metrics != nil {
		path := opts.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Method(http.MethodGet, path, opts.Metrics)
	}
	if opts.Notifications != nil {
		r.Method(http.MethodGet, "/ws/notifications", opts.Notifications)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(opts.RequestTimeout))

		r.Get("/scores", h.GetScores)
		r.Get("/scores/{sport}", h.GetScores)
		r.Get("/matches/{matchID}", h.GetMatchDetails)
		r.Get("/sports", h.GetSports)
	})

	return r
}
