package idempotency

import (
	"context"
	"time"
)

// Coordinator collapses duplicate invocations of one operation that share a client key.
type Coordinator interface {
	Do(ctx context.Context, key, endpoint string, fn func(ctx context.Context) (resultPath string, err error)) (Outcome, error)
	List(ctx context.Context, filter KeyFilter) ([]KeyResponse, int64, error)
	Get(ctx context.Context, id string) (KeyResponse, error)
	// ReleaseStale fails keys whose owner has not finished within maxAge so they can be retried.
	ReleaseStale(ctx context.Context, maxAge time.Duration) (int64, error)
}
