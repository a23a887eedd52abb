package idempotency

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/idempotency"
)

type CoordinatorImpl struct {
	keyRepo idempotency.KeyRepository
}

func NewCoordinator(keyRepo idempotency.KeyRepository) idempotency.Coordinator {
	return &CoordinatorImpl{keyRepo: keyRepo}
}

// Do runs fn at most once per key. An empty key runs fn untracked.
//
// A key that already succeeded replays its stored result without calling fn.
// A key that is still started yields ErrInProgress; callers do not wait.
// A failed key is claimed again and fn is retried.
func (c *CoordinatorImpl) Do(ctx context.Context, key, endpoint string, fn func(ctx context.Context) (string, error)) (idempotency.Outcome, error) {
	if key == "" {
		resultPath, err := fn(ctx)
		if err != nil {
			return idempotency.Outcome{}, err
		}
		return idempotency.Outcome{ResultPath: resultPath}, nil
	}

	replay, err := c.claim(ctx, key, endpoint)
	if err != nil {
		return idempotency.Outcome{}, err
	}
	if replay != nil {
		return *replay, nil
	}

	resultPath, err := fn(ctx)
	if err != nil {
		// The caller's context may already be gone; the key must still leave started.
		if markErr := c.keyRepo.MarkFailed(context.WithoutCancel(ctx), key); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark idempotency key failed", "key", key, "endpoint", endpoint, "error", markErr)
		}
		return idempotency.Outcome{}, err
	}

	if err := c.keyRepo.MarkSucceeded(context.WithoutCancel(ctx), key, resultPath); err != nil {
		return idempotency.Outcome{}, fmt.Errorf("record idempotent result: %w", err)
	}
	return idempotency.Outcome{ResultPath: resultPath}, nil
}

// claim makes this caller the owner of key in started state. A non-nil outcome
// means the key already succeeded and must be replayed instead.
func (c *CoordinatorImpl) claim(ctx context.Context, key, endpoint string) (*idempotency.Outcome, error) {
	existing, err := c.keyRepo.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		_, created, err := c.keyRepo.InsertStarted(ctx, key, endpoint)
		if err != nil {
			return nil, err
		}
		if created {
			return nil, nil
		}
		// Lost the insert race; judge the winner's row.
		existing, err = c.keyRepo.GetByKey(ctx, key)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, idempotency.ErrInProgress
		}
	}

	if existing.Endpoint != endpoint {
		return nil, idempotency.ErrEndpointMismatch
	}

	switch existing.Status {
	case idempotency.StatusSucceeded:
		outcome := idempotency.Outcome{Replayed: true}
		if existing.ResultPath != nil {
			outcome.ResultPath = *existing.ResultPath
		}
		return &outcome, nil
	case idempotency.StatusFailed:
		restarted, err := c.keyRepo.RestartFailed(ctx, key)
		if err != nil {
			return nil, err
		}
		if !restarted {
			return nil, idempotency.ErrInProgress
		}
		slog.InfoContext(ctx, "Retrying failed idempotent operation", "key", key, "endpoint", endpoint)
		return nil, nil
	default:
		return nil, idempotency.ErrInProgress
	}
}

func (c *CoordinatorImpl) List(ctx context.Context, filter idempotency.KeyFilter) ([]idempotency.KeyResponse, int64, error) {
	keys, total, err := c.keyRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]idempotency.KeyResponse, 0, len(keys))
	for _, k := range keys {
		out = append(out, idempotency.ToKeyResponse(k))
	}
	return out, total, nil
}

func (c *CoordinatorImpl) Get(ctx context.Context, id string) (idempotency.KeyResponse, error) {
	k, err := c.keyRepo.GetByID(ctx, id)
	if err != nil {
		return idempotency.KeyResponse{}, err
	}
	return idempotency.ToKeyResponse(k), nil
}

// ReleaseStale implements idempotency.Coordinator.
func (c *CoordinatorImpl) ReleaseStale(ctx context.Context, maxAge time.Duration) (int64, error) {
	released, err := c.keyRepo.FailStale(ctx, time.Now().Add(-maxAge))
	if err != nil {
		return 0, err
	}
	if released > 0 {
		slog.WarnContext(ctx, "Released stale idempotency keys", "count", released, "max_age", maxAge)
	}
	return released, nil
}
