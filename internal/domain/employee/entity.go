package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is owned by the CRUD side of the system; reporting reads it and only
// ever changes the manager assignment.
// ManagerID is nil for root managers.
type Employee struct {
	ID         string
	FirstName  string
	LastName   string
	Email      string
	CNP        string
	HireDate   time.Time
	BaseSalary decimal.Decimal
	ManagerID  *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// ValidateManager rejects an employee being assigned as its own manager.
func ValidateManager(employeeID string, managerID *string) error {
	if managerID != nil && *managerID == employeeID {
		return ErrSelfManager
	}
	return nil
}
