package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/idempotency"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type idempotencyKeyRepositoryImpl struct {
	db *database.DB
}

func NewIdempotencyKeyRepository(db *database.DB) idempotency.KeyRepository {
	return &idempotencyKeyRepositoryImpl{db: db}
}

const idempotencyKeyColumns = `id, key, endpoint, status, result_path, created_at, updated_at`

func scanIdempotencyKey(row pgx.Row) (idempotency.Key, error) {
	var k idempotency.Key
	err := row.Scan(&k.ID, &k.Key, &k.Endpoint, &k.Status, &k.ResultPath, &k.CreatedAt, &k.UpdatedAt)
	return k, err
}

// GetByKey implements idempotency.KeyRepository.
func (r *idempotencyKeyRepositoryImpl) GetByKey(ctx context.Context, key string) (*idempotency.Key, error) {
	q := GetQuerier(ctx, r.db)

	k, err := scanIdempotencyKey(q.QueryRow(ctx,
		`SELECT `+idempotencyKeyColumns+` FROM idempotency_keys WHERE key = $1`, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get idempotency key: %w", err)
	}
	return &k, nil
}

// GetByID implements idempotency.KeyRepository.
func (r *idempotencyKeyRepositoryImpl) GetByID(ctx context.Context, id string) (idempotency.Key, error) {
	q := GetQuerier(ctx, r.db)

	k, err := scanIdempotencyKey(q.QueryRow(ctx,
		`SELECT `+idempotencyKeyColumns+` FROM idempotency_keys WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return idempotency.Key{}, idempotency.ErrKeyNotFound
		}
		return idempotency.Key{}, fmt.Errorf("failed to get idempotency key %s: %w", id, err)
	}
	return k, nil
}

// InsertStarted implements idempotency.KeyRepository.
// The unique key constraint decides concurrent first uses: exactly one insert wins.
func (r *idempotencyKeyRepositoryImpl) InsertStarted(ctx context.Context, key, endpoint string) (idempotency.Key, bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO idempotency_keys (id, key, endpoint, status)
		VALUES ($1, $2, $3, 'started')
		ON CONFLICT (key) DO NOTHING
		RETURNING ` + idempotencyKeyColumns

	k, err := scanIdempotencyKey(q.QueryRow(ctx, query, uuid.Must(uuid.NewV7()).String(), key, endpoint))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return idempotency.Key{}, false, nil
		}
		return idempotency.Key{}, false, fmt.Errorf("failed to insert idempotency key: %w", err)
	}
	return k, true, nil
}

// RestartFailed implements idempotency.KeyRepository.
func (r *idempotencyKeyRepositoryImpl) RestartFailed(ctx context.Context, key string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE idempotency_keys
		SET status = 'started', result_path = NULL, updated_at = NOW()
		WHERE key = $1 AND status = 'failed'
	`, key)
	if err != nil {
		return false, fmt.Errorf("failed to restart idempotency key: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// MarkSucceeded implements idempotency.KeyRepository.
func (r *idempotencyKeyRepositoryImpl) MarkSucceeded(ctx context.Context, key string, resultPath string) error {
	return r.setStatus(ctx, key, idempotency.StatusSucceeded, &resultPath)
}

// MarkFailed implements idempotency.KeyRepository.
func (r *idempotencyKeyRepositoryImpl) MarkFailed(ctx context.Context, key string) error {
	return r.setStatus(ctx, key, idempotency.StatusFailed, nil)
}

// FailStale implements idempotency.KeyRepository.
func (r *idempotencyKeyRepositoryImpl) FailStale(ctx context.Context, cutoff time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE idempotency_keys
		SET status = 'failed', updated_at = NOW()
		WHERE status = 'started' AND updated_at < $1
	`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to release stale idempotency keys: %w", err)
	}
	return tag.RowsAffected(), nil
}

// setStatus only moves keys out of started; succeeded is terminal.
func (r *idempotencyKeyRepositoryImpl) setStatus(ctx context.Context, key string, status idempotency.Status, resultPath *string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE idempotency_keys
		SET status = $1, result_path = $2, updated_at = NOW()
		WHERE key = $3 AND status = 'started'
	`, status, resultPath, key)
	if err != nil {
		return fmt.Errorf("failed to mark idempotency key %s: %w", status, err)
	}
	if tag.RowsAffected() == 0 {
		return idempotency.ErrKeyNotFound
	}
	return nil
}

// List implements idempotency.KeyRepository.
func (r *idempotencyKeyRepositoryImpl) List(ctx context.Context, filter idempotency.KeyFilter) ([]idempotency.Key, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := ""
	var args []interface{}
	if filter.Status != nil {
		where = "WHERE status = $1"
		args = append(args, *filter.Status)
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM idempotency_keys `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count idempotency keys: %w", err)
	}

	limit, offset := pageOffset(filter.Page, filter.Limit)
	query := fmt.Sprintf(`SELECT %s FROM idempotency_keys %s ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d`,
		idempotencyKeyColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list idempotency keys: %w", err)
	}
	defer rows.Close()

	var keys []idempotency.Key
	for rows.Next() {
		k, err := scanIdempotencyKey(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan idempotency key: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate idempotency keys: %w", err)
	}
	return keys, total, nil
}
