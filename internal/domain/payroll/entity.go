package payroll

import (
	"github.com/shopspring/decimal"
)

// ComponentType enum
type ComponentType string

const (
	ComponentTypeBase       ComponentType = "base"
	ComponentTypeBonus      ComponentType = "bonus"
	ComponentTypeAdjustment ComponentType = "adjustment"
)

// SalaryComponent - at most one row per (employee, year, month, type).
// Adjustments may be negative.
type SalaryComponent struct {
	ID         string
	EmployeeID string
	Year       int
	Month      int
	Type       ComponentType
	Amount     decimal.Decimal
	Note       *string
}

// Vacation - one row per (employee, year, month)
type Vacation struct {
	ID         string
	EmployeeID string
	Year       int
	Month      int
	DaysTaken  int
}

// EmployeeMonthSummary is one subordinate's aggregated financials for a period.
type EmployeeMonthSummary struct {
	EmployeeID      string
	FirstName       string
	LastName        string
	CNP             string
	BaseSalary      decimal.Decimal
	BonusTotal      decimal.Decimal
	AdjustmentTotal decimal.Decimal
	VacationDays    int
}

// Bonus returns the bonus that counts toward gross, zero when bonuses are excluded.
func (s EmployeeMonthSummary) Bonus(includeBonuses bool) decimal.Decimal {
	if !includeBonuses {
		return decimal.Zero
	}
	return s.BonusTotal
}

// Gross is base + bonus + adjustment.
func (s EmployeeMonthSummary) Gross(includeBonuses bool) decimal.Decimal {
	return s.BaseSalary.Add(s.Bonus(includeBonuses)).Add(s.AdjustmentTotal)
}
