package idempotency

import (
	"context"
	"time"
)

type KeyRepository interface {
	GetByKey(ctx context.Context, key string) (*Key, error)
	GetByID(ctx context.Context, id string) (Key, error)
	// InsertStarted creates the key in started state. created is false when the key
	// already existed, in which case nothing is written.
	InsertStarted(ctx context.Context, key, endpoint string) (k Key, created bool, err error)
	// RestartFailed moves a failed key back to started; false if it was not failed.
	RestartFailed(ctx context.Context, key string) (bool, error)
	MarkSucceeded(ctx context.Context, key string, resultPath string) error
	MarkFailed(ctx context.Context, key string) error
	// FailStale moves keys left in started since before cutoff to failed.
	FailStale(ctx context.Context, cutoff time.Time) (int64, error)
	List(ctx context.Context, filter KeyFilter) ([]Key, int64, error)
}
