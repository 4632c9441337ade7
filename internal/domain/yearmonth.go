package domain

import (
	"fmt"
	"time"
)

// YearMonth identifies a single calendar month on the projection timeline.
type YearMonth struct {
	Year  int
	Month time.Month
}

// NewYearMonth creates a YearMonth.
func NewYearMonth(year int, month time.Month) YearMonth {
	return YearMonth{Year: year, Month: month}
}

func (ym YearMonth) index() int {
	return ym.Year*12 + int(ym.Month) - 1
}

// IsZero reports whether the YearMonth is unset.
func (ym YearMonth) IsZero() bool {
	return ym.Year == 0 && ym.Month == 0
}

// Before reports whether ym is strictly earlier than other.
func (ym YearMonth) Before(other YearMonth) bool {
	return ym.index() < other.index()
}

// After reports whether ym is strictly later than other.
func (ym YearMonth) After(other YearMonth) bool {
	return ym.index() > other.index()
}

// Equal reports whether ym and other name the same month.
func (ym YearMonth) Equal(other YearMonth) bool {
	return ym.index() == other.index()
}

// AddMonths returns the YearMonth n months after ym. n may be negative.
func (ym YearMonth) AddMonths(n int) YearMonth {
	idx := ym.index() + n
	return YearMonth{Year: idx / 12, Month: time.Month(idx%12 + 1)}
}

// MonthsSince returns the number of whole months from other to ym.
// Negative when ym is earlier than other.
func (ym YearMonth) MonthsSince(other YearMonth) int {
	return ym.index() - other.index()
}

// Date returns the first day of the month in UTC.
func (ym YearMonth) Date() time.Time {
	return time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, time.UTC)
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// ParseYearMonth parses the "2006-01" wire form.
func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return YearMonth{}, fmt.Errorf("invalid year-month %q: %w", s, err)
	}
	return YearMonth{Year: t.Year(), Month: t.Month()}, nil
}
