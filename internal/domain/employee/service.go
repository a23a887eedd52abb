package employee

import "context"

// EmployeeService is the narrow slice of employee management reporting depends on.
type EmployeeService interface {
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)

	// ListTeam returns the direct reports of managerID.
	ListTeam(ctx context.Context, managerID string) ([]EmployeeResponse, error)

	// AssignManager rejects self-assignment and unknown managers.
	AssignManager(ctx context.Context, req AssignManagerRequest) (EmployeeResponse, error)
}
