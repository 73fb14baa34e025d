package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/sports-companion/internal/models"
	"github.com/yourusername/sports-companion/internal/sport"
)

type fakeWarmer struct {
	mu    sync.Mutex
	calls []string
}

func (w *fakeWarmer) FetchLiveScores(_ context.Context, name string) models.Batch {
	w.mu.Lock()
	w.calls = append(w.calls, name)
	w.mu.Unlock()
	return models.Batch{
		Sport:   name,
		Source:  models.SourceSynthetic,
		Matches: []models.Match{{ID: name + "-1"}},
	}
}

func (w *fakeWarmer) Calls() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.calls...)
}

func TestNormalizeSports(t *testing.T) {
	got := NormalizeSports([]string{"NBA", "soccer", "basketball", "cricket", "football"})
	assert.Equal(t, []sport.Key{sport.Basketball, sport.Football, sport.Cricket}, got)
}

func TestSchedulePollingValidates(t *testing.T) {
	s := NewScheduler(&fakeWarmer{}, nil)

	assert.Error(t, s.SchedulePolling(time.Minute, nil))
	assert.Error(t, s.Start(), "nothing scheduled yet")

	require.NoError(t, s.SchedulePolling(time.Second, []string{"cricket"}))
	assert.Equal(t, MinInterval, s.Interval())
	assert.Equal(t, []sport.Key{sport.Cricket}, s.Sports())
}

func TestWarmFetchesEverySportInOrder(t *testing.T) {
	warmer := &fakeWarmer{}
	s := NewScheduler(warmer, nil)
	require.NoError(t, s.SchedulePolling(30*time.Second, []string{"cricket", "nba", "soccer"}))

	batches := s.Warm(context.Background())

	require.Len(t, batches, 3)
	assert.Equal(t, "cricket", batches[0].Sport)
	assert.Equal(t, "basketball", batches[1].Sport)
	assert.Equal(t, "football", batches[2].Sport)
	assert.ElementsMatch(t, []string{"cricket", "basketball", "football"}, warmer.Calls())
}

func TestStartStop(t *testing.T) {
	s := NewScheduler(&fakeWarmer{}, nil)
	require.NoError(t, s.SchedulePolling(time.Minute, []string{"basketball"}))

	require.NoError(t, s.Start())
	assert.True(t, s.IsRunning())
	assert.Error(t, s.Start())
	assert.Error(t, s.SchedulePolling(time.Minute, []string{"cricket"}))

	next := s.GetNextRun()
	assert.False(t, next.IsZero())
	assert.WithinDuration(t, time.Now().Add(time.Minute), next, 2*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
	assert.False(t, s.IsRunning())
	assert.True(t, s.GetNextRun().IsZero())
	assert.NoError(t, s.Stop(ctx))
}

type blockingWarmer struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (w *blockingWarmer) FetchLiveScores(_ context.Context, name string) models.Batch {
	w.once.Do(func() { close(w.started) })
	<-w.release
	return models.Batch{Sport: name, Source: models.SourceNetwork}
}

func TestPollJobDoesNotNeedSchedulerLock(t *testing.T) {
	warmer := &fakeWarmer{}
	s := NewScheduler(warmer, nil)
	job := s.pollJob(MinInterval, []sport.Key{sport.Football})

	s.mu.Lock()
	done := make(chan struct{})
	go func() {
		job()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("poll job blocked on the scheduler lock")
	}
	s.mu.Unlock()

	assert.Equal(t, []string{"football"}, warmer.Calls())
}

func TestStopWaitsForRunningPoll(t *testing.T) {
	warmer := &blockingWarmer{started: make(chan struct{}), release: make(chan struct{})}
	s := NewScheduler(warmer, nil)

	id, err := s.cron.AddFunc("@every 1s", s.pollJob(MinInterval, []sport.Key{sport.Basketball}))
	require.NoError(t, err)
	s.jobIDs = append(s.jobIDs, id)
	require.NoError(t, s.Start())

	select {
	case <-warmer.started:
	case <-time.After(3 * time.Second):
		t.Fatal("poll never started")
	}

	stopped := make(chan error, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		stopped <- s.Stop(ctx)
	}()

	assert.Eventually(t, func() bool { return !s.IsRunning() }, time.Second, 10*time.Millisecond)
	close(warmer.release)

	select {
	case err := <-stopped:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("stop did not return after the poll finished")
	}
}
