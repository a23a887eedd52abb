package employee

import (
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type EmployeeResponse struct {
	ID         string          `json:"id"`
	FirstName  string          `json:"firstName"`
	LastName   string          `json:"lastName"`
	Email      string          `json:"email"`
	HireDate   time.Time       `json:"hireDate"`
	BaseSalary decimal.Decimal `json:"baseSalary"`
	ManagerID  *string         `json:"managerId,omitempty"`
}

func ToEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID,
		FirstName:  e.FirstName,
		LastName:   e.LastName,
		Email:      e.Email,
		HireDate:   e.HireDate,
		BaseSalary: e.BaseSalary,
		ManagerID:  e.ManagerID,
	}
}

// AssignManagerRequest moves an employee under a new manager. A nil ManagerID makes them a root manager.
type AssignManagerRequest struct {
	EmployeeID string  `json:"-"`
	ManagerID  *string `json:"managerId"`
}

func (r *AssignManagerRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employeeId", Message: "must be a valid UUID"})
	}
	if r.ManagerID != nil && !validator.IsValidUUID(*r.ManagerID) {
		errs = append(errs, validator.ValidationError{Field: "managerId", Message: "must be a valid UUID"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
