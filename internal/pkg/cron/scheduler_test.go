package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/idempotency"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunsImmediatelyAndOnInterval(t *testing.T) {
	s := NewScheduler()
	var runs atomic.Int32
	s.AddJob("tick", 10*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	s.Start(context.Background())
	assert.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, 5*time.Millisecond)
	s.Stop()

	after := runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, runs.Load(), "no runs after Stop")
}

func TestScheduler_StopWithoutStart(t *testing.T) {
	assert.NotPanics(t, func() { NewScheduler().Stop() })
}

func TestScheduler_RunOnceContinuesAfterFailure(t *testing.T) {
	s := NewScheduler()
	var order []string
	s.AddJob("first", time.Hour, func(ctx context.Context) error {
		order = append(order, "first")
		return errors.New("boom")
	})
	s.AddJob("second", time.Hour, func(ctx context.Context) error {
		order = append(order, "second")
		return nil
	})

	s.RunOnce(context.Background())
	assert.Equal(t, []string{"first", "second"}, order)
}

type fakeCoordinator struct {
	idempotency.Coordinator
	maxAge time.Duration
}

func (f *fakeCoordinator) ReleaseStale(ctx context.Context, maxAge time.Duration) (int64, error) {
	f.maxAge = maxAge
	return 2, nil
}

func TestIdempotencyJobs_ReleaseStaleKeys(t *testing.T) {
	coordinator := &fakeCoordinator{}
	s := NewScheduler()
	NewIdempotencyJobs(coordinator, 30*time.Minute).RegisterJobs(s, time.Hour)

	s.RunOnce(context.Background())
	require.Equal(t, 30*time.Minute, coordinator.maxAge)
}
