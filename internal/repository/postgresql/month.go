package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/period"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type monthRepositoryImpl struct {
	db *database.DB
}

func NewMonthRepository(db *database.DB) period.MonthRepository {
	return &monthRepositoryImpl{db: db}
}

// GetByYearMonth implements period.MonthRepository.
func (r *monthRepositoryImpl) GetByYearMonth(ctx context.Context, year, month int) (period.MonthInfo, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, year, month, working_days FROM months WHERE year = $1 AND month = $2`

	var m period.MonthInfo
	err := q.QueryRow(ctx, query, year, month).Scan(&m.ID, &m.Year, &m.Month, &m.WorkingDays)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return period.MonthInfo{}, period.ErrMonthInfoNotFound
		}
		return period.MonthInfo{}, fmt.Errorf("failed to get month info %d-%02d: %w", year, month, err)
	}
	return m, nil
}
