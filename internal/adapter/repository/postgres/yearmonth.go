package postgres

import (
	"time"

	"github.com/iho/finsim/internal/domain"
)

// Month boundaries are stored as (year int, month int) column pairs so
// they stay comparable and indexable without a date parse. Optional
// boundaries use nullable columns, both NULL or both set.

func timeMonth(m int) time.Month {
	return time.Month(m)
}

func ymNullable(ym *domain.YearMonth) (*int, *int) {
	if ym == nil {
		return nil, nil
	}
	year := ym.Year
	month := int(ym.Month)
	return &year, &month
}

func ymFromNullable(year, month *int) *domain.YearMonth {
	if year == nil || month == nil {
		return nil
	}
	return &domain.YearMonth{Year: *year, Month: timeMonth(*month)}
}
