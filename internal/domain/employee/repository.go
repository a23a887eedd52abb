package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	// ListSubordinates returns the direct reports of managerID ordered by id.
	ListSubordinates(ctx context.Context, managerID string) ([]Employee, error)
	SetManager(ctx context.Context, employeeID string, managerID *string) error
}
