package employee

import (
	"context"
	"errors"
	"log/slog"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{employeeRepo: employeeRepo}
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToEmployeeResponse(e), nil
}

// ListTeam implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListTeam(ctx context.Context, managerID string) ([]employee.EmployeeResponse, error) {
	if _, err := s.employeeRepo.GetByID(ctx, managerID); err != nil {
		return nil, err
	}

	team, err := s.employeeRepo.ListSubordinates(ctx, managerID)
	if err != nil {
		return nil, err
	}

	out := make([]employee.EmployeeResponse, 0, len(team))
	for _, e := range team {
		out = append(out, employee.ToEmployeeResponse(e))
	}
	return out, nil
}

// AssignManager implements employee.EmployeeService.
func (s *EmployeeServiceImpl) AssignManager(ctx context.Context, req employee.AssignManagerRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := employee.ValidateManager(req.EmployeeID, req.ManagerID); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.ManagerID != nil {
		if _, err := s.employeeRepo.GetByID(ctx, *req.ManagerID); err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return employee.EmployeeResponse{}, employee.ErrManagerNotFound
			}
			return employee.EmployeeResponse{}, err
		}
	}

	if err := s.employeeRepo.SetManager(ctx, req.EmployeeID, req.ManagerID); err != nil {
		return employee.EmployeeResponse{}, err
	}

	updated, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.InfoContext(ctx, "Manager assigned", "employee_id", req.EmployeeID, "manager_id", req.ManagerID)
	return employee.ToEmployeeResponse(updated), nil
}
