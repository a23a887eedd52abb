package payroll

import "context"

// AggregationService is a pure read over a manager's team for one period.
type AggregationService interface {
	Summarize(ctx context.Context, managerID string, year, month int) ([]EmployeeMonthSummary, error)
	// TeamSummary is the read-only preview of what the manager CSV will contain.
	TeamSummary(ctx context.Context, req SummaryRequest) ([]SummaryRowResponse, error)
}
