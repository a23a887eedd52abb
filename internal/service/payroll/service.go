package payroll

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
)

type AggregationServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	summaryRepo  payroll.SummaryRepository
}

func NewAggregationService(
	employeeRepo employee.EmployeeRepository,
	summaryRepo payroll.SummaryRepository,
) payroll.AggregationService {
	return &AggregationServiceImpl{
		employeeRepo: employeeRepo,
		summaryRepo:  summaryRepo,
	}
}

// Summarize returns one row per direct report of managerID for the period,
// ordered by employee id. Month info is not checked here.
func (s *AggregationServiceImpl) Summarize(ctx context.Context, managerID string, year, month int) ([]payroll.EmployeeMonthSummary, error) {
	if _, err := s.employeeRepo.GetByID(ctx, managerID); err != nil {
		return nil, err
	}

	rows, err := s.summaryRepo.SummarizeTeam(ctx, managerID, year, month)
	if err != nil {
		return nil, fmt.Errorf("summarize team %s for %d-%02d: %w", managerID, year, month, err)
	}

	slices.SortStableFunc(rows, func(a, b payroll.EmployeeMonthSummary) int {
		return strings.Compare(a.EmployeeID, b.EmployeeID)
	})
	return rows, nil
}

// TeamSummary implements payroll.AggregationService.
func (s *AggregationServiceImpl) TeamSummary(ctx context.Context, req payroll.SummaryRequest) ([]payroll.SummaryRowResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rows, err := s.Summarize(ctx, req.ManagerID, req.Year, req.Month)
	if err != nil {
		return nil, err
	}

	out := make([]payroll.SummaryRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, payroll.ToSummaryRowResponse(r, req.IncludeBonuses))
	}
	return out, nil
}
