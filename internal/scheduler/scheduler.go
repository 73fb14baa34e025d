// Package scheduler polls the aggregator on a fixed interval so the freshness cache stays warm.
package scheduler

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"

	"github.com/yourusername/sports-companion/internal/metrics"
	"github.com/yourusername/sports-companion/internal/models"
	"github.com/yourusername/sports-companion/internal/sport"
)

// MinInterval is the shortest polling interval accepted.
const MinInterval = 5 * time.Second

// Warmer fetches live scores for a sport. *service.Aggregator satisfies it.
type Warmer interface {
	FetchLiveScores(ctx context.Context, sport string) models.Batch
}

// Scheduler manages the polling job
type Scheduler struct {
	cron      *cron.Cron
	warmer    Warmer
	logger    *logrus.Logger
	mu        sync.RWMutex
	isRunning bool
	jobIDs    []cron.EntryID
	sports    []sport.Key
	interval  time.Duration
}

// NewScheduler creates a new scheduler
func NewScheduler(warmer Warmer, logger *logrus.Logger) *Scheduler {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		warmer: warmer,
		logger: logger,
		jobIDs: make([]cron.EntryID, 0),
	}
}

// NormalizeSports maps names to canonical keys, dropping duplicates and keeping first-seen order.
func NormalizeSports(names []string) []sport.Key {
	return lo.Uniq(lo.Map(names, func(name string, _ int) sport.Key {
		return sport.Normalize(name)
	}))
}

// SchedulePolling schedules a cache-warming run for sports every interval.
func (s *Scheduler) SchedulePolling(interval time.Duration, sports []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}
	if len(sports) == 0 {
		return fmt.Errorf("no sports to poll")
	}
	if interval < MinInterval {
		interval = MinInterval
	}

	s.sports = NormalizeSports(sports)
	s.interval = interval

	entryID, err := s.cron.AddFunc(fmt.Sprintf("@every %s", interval), s.pollJob(interval, s.sports))
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithFields(logrus.Fields{
		"interval": interval.String(),
		"sports":   s.sports,
	}).Info("Scheduled live score polling")

	return nil
}

// pollJob works on its own copy of sports and never takes the scheduler lock.
func (s *Scheduler) pollJob(interval time.Duration, sports []sport.Key) func() {
	sports = append([]sport.Key(nil), sports...)
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), interval-time.Second)
		defer cancel()
		s.warm(ctx, sports)
	}
}

// Warm fetches every scheduled sport concurrently and returns the batches in sport order.
func (s *Scheduler) Warm(ctx context.Context) []models.Batch {
	s.mu.RLock()
	sports := append([]sport.Key(nil), s.sports...)
	s.mu.RUnlock()

	return s.warm(ctx, sports)
}

func (s *Scheduler) warm(ctx context.Context, sports []sport.Key) []models.Batch {
	p := pool.NewWithResults[models.Batch]().WithMaxGoroutines(len(sports) + 1)
	for _, key := range sports {
		key := key // per-iteration copy; go directive is < 1.22
		p.Go(func() models.Batch {
			return s.warmer.FetchLiveScores(ctx, key.String())
		})
	}
	batches := p.Wait()

	bySport := lo.KeyBy(batches, func(b models.Batch) string { return b.Sport })
	ordered := make([]models.Batch, 0, len(sports))
	for _, key := range sports {
		b, ok := bySport[key.String()]
		if !ok {
			continue
		}
		ordered = append(ordered, b)
		metrics.RecordScheduledPoll(b.Sport, string(b.Source))
		s.logger.WithFields(logrus.Fields{
			"sport":   b.Sport,
			"source":  b.Source,
			"matches": len(b.Matches),
			"stale":   b.Stale,
		}).Debug("Polled live scores")
	}
	return ordered
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}
	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")

	return nil
}

// Stop waits for a running job to finish, then stops the scheduler
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	done := s.cron.Stop().Done()
	s.isRunning = false
	s.mu.Unlock()

	select {
	case <-done:
	case <-ctx.Done():
		return fmt.Errorf("scheduler stop: %w", ctx.Err())
	}
	s.logger.Info("Scheduler stopped")

	return nil
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Sports returns the sports polled on each run
func (s *Scheduler) Sports() []sport.Key {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]sport.Key(nil), s.sports...)
}

// Interval returns the polling interval
func (s *Scheduler) Interval() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.interval
}

// GetNextRun returns the time of the next scheduled run
func (s *Scheduler) GetNextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning || len(s.jobIDs) == 0 {
		return time.Time{}
	}

	nextRun := time.Time{}
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() && (nextRun.IsZero() || entry.Next.Before(nextRun)) {
			nextRun = entry.Next
		}
	}

	return nextRun
}
