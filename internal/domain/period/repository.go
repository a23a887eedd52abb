package period

import "context"

type MonthRepository interface {
	GetByYearMonth(ctx context.Context, year, month int) (MonthInfo, error)
}
