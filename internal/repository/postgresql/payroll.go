package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
)

type summaryRepositoryImpl struct {
	db *database.DB
}

func NewSummaryRepository(db *database.DB) payroll.SummaryRepository {
	return &summaryRepositoryImpl{db: db}
}

// SummarizeTeam implements payroll.SummaryRepository.
// Components and vacations are grouped before joining so that neither multiplies the other.
func (r *summaryRepositoryImpl) SummarizeTeam(ctx context.Context, managerID string, year, month int) ([]payroll.EmployeeMonthSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH components AS (
			SELECT
				employee_id,
				SUM(CASE WHEN type = 'bonus' THEN amount ELSE 0 END) AS bonus_total,
				SUM(CASE WHEN type = 'adjustment' THEN amount ELSE 0 END) AS adjustment_total
			FROM salary_components
			WHERE year = $2 AND month = $3
			GROUP BY employee_id
		),
		vacation_days AS (
			SELECT employee_id, SUM(days_taken) AS days
			FROM vacations
			WHERE year = $2 AND month = $3
			GROUP BY employee_id
		)
		SELECT
			e.id,
			e.first_name,
			e.last_name,
			e.cnp,
			e.base_salary,
			COALESCE(c.bonus_total, 0) AS bonus_total,
			COALESCE(c.adjustment_total, 0) AS adjustment_total,
			COALESCE(v.days, 0)::int AS vacation_days
		FROM employees e
		LEFT JOIN components c ON c.employee_id = e.id
		LEFT JOIN vacation_days v ON v.employee_id = e.id
		WHERE e.manager_id = $1
		ORDER BY e.id
	`

	rows, err := q.Query(ctx, query, managerID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize team of %s: %w", managerID, err)
	}
	defer rows.Close()

	var summaries []payroll.EmployeeMonthSummary
	for rows.Next() {
		var s payroll.EmployeeMonthSummary
		if err := rows.Scan(
			&s.EmployeeID, &s.FirstName, &s.LastName, &s.CNP,
			&s.BaseSalary, &s.BonusTotal, &s.AdjustmentTotal, &s.VacationDays,
		); err != nil {
			return nil, fmt.Errorf("failed to scan summary row: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate summary rows: %w", err)
	}
	return summaries, nil
}
