package cron

import (
	"context"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/idempotency"
)

// IdempotencyJobs keeps keys from staying in started forever after a crashed send.
type IdempotencyJobs struct {
	coordinator idempotency.Coordinator
	staleAfter  time.Duration
}

func NewIdempotencyJobs(coordinator idempotency.Coordinator, staleAfter time.Duration) *IdempotencyJobs {
	return &IdempotencyJobs{coordinator: coordinator, staleAfter: staleAfter}
}

func (j *IdempotencyJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("release_stale_idempotency_keys", interval, j.ReleaseStaleKeys)
}

func (j *IdempotencyJobs) ReleaseStaleKeys(ctx context.Context) error {
	_, err := j.coordinator.ReleaseStale(ctx, j.staleAfter)
	return err
}
