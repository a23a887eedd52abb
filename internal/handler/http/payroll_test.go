package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAggregationService struct {
	payroll.AggregationService
	last payroll.SummaryRequest
}

func (f *fakeAggregationService) TeamSummary(ctx context.Context, req payroll.SummaryRequest) ([]payroll.SummaryRowResponse, error) {
	f.last = req
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return []payroll.SummaryRowResponse{{EmployeeID: "a", GrossSalary: decimal.NewFromInt(5300)}}, nil
}

func TestPayrollHandler_GetTeamSummary(t *testing.T) {
	f := newRouterFixture(t)
	base := "/api/v1/reports-generation/managers/" + testManagerID + "/summary"

	rec := f.do(t, http.MethodGet, base+"?year=2025&month=6&includeBonuses=true", user.RoleManager, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, f.aggregation.last.IncludeBonuses)
	assert.Equal(t, testManagerID, f.aggregation.last.ManagerID)
	assert.Len(t, decodeBody(t, rec).Data, 1)

	rec = f.do(t, http.MethodGet, base+"?year=2025&month=6", user.RoleManager, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, f.aggregation.last.IncludeBonuses)

	rec = f.do(t, http.MethodGet, base+"?year=2025&month=6&includeBonuses=false", user.RoleManager, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, f.aggregation.last.IncludeBonuses)

	rec = f.do(t, http.MethodGet, base+"?year=2025", user.RoleManager, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodGet, base+"?year=2025&month=6", user.RoleEmployee, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
