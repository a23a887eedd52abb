package payroll

import "context"

// SummaryRepository aggregates salary components and vacations for a manager's direct reports.
type SummaryRepository interface {
	SummarizeTeam(ctx context.Context, managerID string, year, month int) ([]EmployeeMonthSummary, error)
}
