package period

import "fmt"

// MonthInfo carries the per-period facts shared by every employee, one row per (year, month).
type MonthInfo struct {
	ID          string
	Year        int
	Month       int
	WorkingDays int
}

// Period identifies one payroll cycle.
type Period struct {
	Year  int
	Month int
}

// String renders the period the way report paths and mail subjects expect it: 2025-06.
func (p Period) String() string {
	return fmt.Sprintf("%d-%02d", p.Year, p.Month)
}

func (p Period) Valid() bool {
	return p.Month >= 1 && p.Month <= 12 && p.Year >= 2000 && p.Year <= 9999
}
