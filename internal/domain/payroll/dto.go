package payroll

import (
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type SummaryRowResponse struct {
	EmployeeID      string          `json:"employeeId"`
	FirstName       string          `json:"firstName"`
	LastName        string          `json:"lastName"`
	CNP             string          `json:"cnp"`
	BaseSalary      decimal.Decimal `json:"baseSalary"`
	BonusTotal      decimal.Decimal `json:"bonusTotal"`
	AdjustmentTotal decimal.Decimal `json:"adjustmentTotal"`
	GrossSalary     decimal.Decimal `json:"grossSalary"`
	VacationDays    int             `json:"vacationDays"`
}

type SummaryRequest struct {
	ManagerID      string
	Year           int
	Month          int
	IncludeBonuses bool
}

func (r *SummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ManagerID) {
		errs = append(errs, validator.ValidationError{Field: "managerId", Message: "must be a valid UUID"})
	}
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if r.Year < 2000 || r.Year > 9999 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be between 2000 and 9999"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToSummaryRowResponse exposes a summary row with gross computed for the caller's bonus choice.
func ToSummaryRowResponse(s EmployeeMonthSummary, includeBonuses bool) SummaryRowResponse {
	return SummaryRowResponse{
		EmployeeID:      s.EmployeeID,
		FirstName:       s.FirstName,
		LastName:        s.LastName,
		CNP:             s.CNP,
		BaseSalary:      s.BaseSalary,
		BonusTotal:      s.Bonus(includeBonuses),
		AdjustmentTotal: s.AdjustmentTotal,
		GrossSalary:     s.Gross(includeBonuses),
		VacationDays:    s.VacationDays,
	}
}
