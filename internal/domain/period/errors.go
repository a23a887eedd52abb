package period

import "errors"

var (
	ErrMonthInfoNotFound = errors.New("month info not found for period")
	ErrInvalidPeriod     = errors.New("invalid payroll period")
)
