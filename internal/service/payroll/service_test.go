package payroll

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

type fakeSummaryRepo struct {
	rows  []payroll.EmployeeMonthSummary
	err   error
	calls int
}

func (f *fakeSummaryRepo) SummarizeTeam(ctx context.Context, managerID string, year, month int) ([]payroll.EmployeeMonthSummary, error) {
	f.calls++
	out := make([]payroll.EmployeeMonthSummary, len(f.rows))
	copy(out, f.rows)
	return out, f.err
}

func TestSummarize_UnknownManager(t *testing.T) {
	summaries := &fakeSummaryRepo{}
	svc := NewAggregationService(&fakeEmployeeRepo{employees: map[string]employee.Employee{}}, summaries)

	_, err := svc.Summarize(context.Background(), "missing", 2025, 6)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	assert.Zero(t, summaries.calls)
}

func TestSummarize_SortedByEmployeeID(t *testing.T) {
	summaries := &fakeSummaryRepo{rows: []payroll.EmployeeMonthSummary{
		{EmployeeID: "c", BaseSalary: decimal.NewFromInt(1)},
		{EmployeeID: "a", BaseSalary: decimal.NewFromInt(2)},
		{EmployeeID: "b", BaseSalary: decimal.NewFromInt(3)},
	}}
	svc := NewAggregationService(&fakeEmployeeRepo{employees: map[string]employee.Employee{"m": {ID: "m"}}}, summaries)

	rows, err := svc.Summarize(context.Background(), "m", 2025, 6)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{rows[0].EmployeeID, rows[1].EmployeeID, rows[2].EmployeeID})

	// repeated calls agree
	again, err := svc.Summarize(context.Background(), "m", 2025, 6)
	require.NoError(t, err)
	assert.Equal(t, rows, again)
}

func TestSummarize_RepositoryError(t *testing.T) {
	boom := errors.New("connection reset")
	svc := NewAggregationService(
		&fakeEmployeeRepo{employees: map[string]employee.Employee{"m": {ID: "m"}}},
		&fakeSummaryRepo{err: boom},
	)

	_, err := svc.Summarize(context.Background(), "m", 2025, 6)
	assert.ErrorIs(t, err, boom)
}

func TestTeamSummary_AppliesBonusChoice(t *testing.T) {
	summaries := &fakeSummaryRepo{rows: []payroll.EmployeeMonthSummary{
		{EmployeeID: "a", BaseSalary: decimal.NewFromInt(5000), BonusTotal: decimal.NewFromInt(300), AdjustmentTotal: decimal.Zero},
	}}
	const managerID = "0190a5b2-0000-7000-8000-000000000001"
	svc := NewAggregationService(&fakeEmployeeRepo{employees: map[string]employee.Employee{managerID: {ID: managerID}}}, summaries)

	with, err := svc.TeamSummary(context.Background(), payroll.SummaryRequest{ManagerID: managerID, Year: 2025, Month: 6, IncludeBonuses: true})
	require.NoError(t, err)
	require.Len(t, with, 1)
	assert.Equal(t, "5300", with[0].GrossSalary.String())

	without, err := svc.TeamSummary(context.Background(), payroll.SummaryRequest{ManagerID: managerID, Year: 2025, Month: 6})
	require.NoError(t, err)
	assert.Equal(t, "5000", without[0].GrossSalary.String())
	assert.True(t, without[0].BonusTotal.IsZero())

	_, err = svc.TeamSummary(context.Background(), payroll.SummaryRequest{ManagerID: "m", Year: 2025, Month: 0})
	assert.Error(t, err)
}
