package report

import (
	"fmt"
	"strconv"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/period"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/render"
	"github.com/shopspring/decimal"
)

var managerCSVHeaders = []string{
	"employee_id",
	"first_name",
	"last_name",
	"cnp",
	"gross_salary_month",
	"base_salary",
	"bonus_total",
	"adjustment_total",
	"working_days",
	"vacation_days",
}

// BuildManagerCSV renders one row per summary. Money has two decimals and
// working_days is repeated on every row.
func BuildManagerCSV(rows []payroll.EmployeeMonthSummary, monthInfo period.MonthInfo, includeBonuses bool) ([]byte, error) {
	records := make([][]string, 0, len(rows))
	workingDays := strconv.Itoa(monthInfo.WorkingDays)

	for _, r := range rows {
		records = append(records, []string{
			r.EmployeeID,
			r.FirstName,
			r.LastName,
			r.CNP,
			r.Gross(includeBonuses).StringFixed(2),
			r.BaseSalary.StringFixed(2),
			r.Bonus(includeBonuses).StringFixed(2),
			r.AdjustmentTotal.StringFixed(2),
			workingDays,
			strconv.Itoa(r.VacationDays),
		})
	}

	out, err := render.CSV(managerCSVHeaders, records)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", report.ErrRenderFailed, err)
	}
	return out, nil
}

// SlipFields is everything printed on an employee's salary slip.
type SlipFields struct {
	Period       period.Period
	EmployeeID   string
	Name         string
	CNP          string
	HireDate     time.Time
	ManagerName  string
	BaseSalary   decimal.Decimal
	Bonus        decimal.Decimal
	Adjustment   decimal.Decimal
	Gross        decimal.Decimal
	WorkingDays  int
	VacationDays int
}

// BuildEmployeePDF renders the slip encrypted with the employee's CNP, or with
// fallbackPassword when the CNP is empty.
func BuildEmployeePDF(f SlipFields, fallbackPassword string) ([]byte, error) {
	password := f.CNP
	if password == "" {
		password = fallbackPassword
	}

	lines := []render.Field{
		{Label: "Employee ID", Value: f.EmployeeID},
		{Label: "Name", Value: f.Name},
		{Label: "CNP", Value: f.CNP},
		{Label: "Hire Date", Value: f.HireDate.Format(time.DateOnly)},
		{Label: "Manager", Value: f.ManagerName},
		{Label: "Base Salary", Value: f.BaseSalary.StringFixed(2)},
		{Label: "Bonus Total", Value: f.Bonus.StringFixed(2)},
		{Label: "Adjustment Total", Value: f.Adjustment.StringFixed(2)},
		{Label: "Gross Salary", Value: f.Gross.StringFixed(2)},
		{Label: "Working Days", Value: strconv.Itoa(f.WorkingDays)},
		{Label: "Vacation Days", Value: strconv.Itoa(f.VacationDays)},
	}

	out, err := render.PDF("Salary Slip - "+f.Period.String(), lines, password)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", report.ErrRenderFailed, err)
	}
	return out, nil
}
