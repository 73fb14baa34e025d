package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/yourusername/sports-companion/internal/api"
	"github.com/yourusername/sports-companion/internal/health"
	"github.com/yourusername/sports-companion/internal/metrics"
	"github.com/yourusername/sports-companion/internal/notify"
	"github.com/yourusername/sports-companion/internal/scheduler"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API, notification hub and polling scheduler",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func serve() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := notify.NewHub(appLog)
	go hub.Run(ctx)

	a, err := newApp(cfg, notify.Multi{notify.NewLogNotifier(appLog), hub}, appLog)
	if err != nil {
		return err
	}

	checker := health.NewChecker(health.Config{
		ServiceName:  cfg.App.Name,
		Version:      Version,
		Logger:       appLog,
		Dependencies: map[string]health.Pinger{"cache": a.freshness},
	})

	opts := api.Options{
		Scores:        a.aggregator,
		Details:       a.details,
		Health:        checker,
		Notifications: http.HandlerFunc(hub.ServeWS),
		CORSOrigins:   cfg.Server.CORSOrigins,
		Logger:        appLog,
	}
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		opts.Metrics = metrics.Handler()
		opts.MetricsPath = cfg.Metrics.Path
	}

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      api.NewRouter(opts),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	var sched *scheduler.Scheduler
	if cfg.Polling.Enabled {
		sched = scheduler.NewScheduler(a.aggregator, appLog)
		if err := sched.SchedulePolling(cfg.Polling.Interval(), cfg.Polling.Sports); err != nil {
			return multierr.Append(fmt.Errorf("failed to schedule polling: %w", err), a.Close())
		}
		if err := sched.Start(); err != nil {
			return multierr.Append(fmt.Errorf("failed to start scheduler: %w", err), a.Close())
		}
		go sched.Warm(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		appLog.WithFields(logrus.Fields{
			"addr":    srv.Addr,
			"polling": cfg.Polling.Enabled,
			"metrics": cfg.Metrics.Enabled,
		}).Info("Sports companion API starting")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	checker.SetReady(true)

	var serveErr error
	select {
	case <-ctx.Done():
		appLog.Info("Shutdown signal received")
	case serveErr = <-errCh:
		appLog.WithError(serveErr).Error("API server stopped")
	}
	checker.SetReady(false)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err = multierr.Combine(serveErr, srv.Shutdown(shutdownCtx))
	if sched != nil {
		err = multierr.Append(err, sched.Stop(shutdownCtx))
	}
	err = multierr.Append(err, a.Close())

	if err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	appLog.Info("Sports companion stopped")
	return nil
}
