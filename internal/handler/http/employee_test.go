package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeService struct {
	employee.EmployeeService
	lastAssign employee.AssignManagerRequest
}

func (f *fakeEmployeeService) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	if id != testManagerID {
		return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
	}
	return employee.EmployeeResponse{ID: id, FirstName: "Maria"}, nil
}

func (f *fakeEmployeeService) AssignManager(ctx context.Context, req employee.AssignManagerRequest) (employee.EmployeeResponse, error) {
	f.lastAssign = req
	if err := employee.ValidateManager(req.EmployeeID, req.ManagerID); err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.EmployeeResponse{ID: req.EmployeeID, ManagerID: req.ManagerID}, nil
}

func TestEmployeeHandler_GetByID(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/employees/"+testManagerID, user.RoleManager, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/v1/employees/other", user.RoleManager, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEmployeeHandler_AssignManager(t *testing.T) {
	f := newRouterFixture(t)
	const empID = "0190a5b2-0000-7000-8000-00000000000a"
	target := "/api/v1/employees/" + empID + "/manager"
	body := `{"managerId":"` + testManagerID + `"}`

	rec := f.doBody(t, http.MethodPut, target, user.RoleManager, nil, body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.doBody(t, http.MethodPut, target, user.RoleOwner, nil, body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, empID, f.employees.lastAssign.EmployeeID)
	require.NotNil(t, f.employees.lastAssign.ManagerID)
	assert.Equal(t, testManagerID, *f.employees.lastAssign.ManagerID)

	rec = f.doBody(t, http.MethodPut, target, user.RoleOwner, nil, `{"managerId":"`+empID+`"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.doBody(t, http.MethodPut, target, user.RoleOwner, nil, `{`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
