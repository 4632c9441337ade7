package domain

import (
	"testing"
	"time"
)

func TestYearMonth_AddMonths(t *testing.T) {
	tests := []struct {
		name string
		ym   YearMonth
		n    int
		want YearMonth
	}{
		{
			name: "within year",
			ym:   NewYearMonth(2024, time.March),
			n:    4,
			want: NewYearMonth(2024, time.July),
		},
		{
			name: "year rollover",
			ym:   NewYearMonth(2024, time.November),
			n:    3,
			want: NewYearMonth(2025, time.February),
		},
		{
			name: "multiple years",
			ym:   NewYearMonth(2024, time.January),
			n:    25,
			want: NewYearMonth(2026, time.February),
		},
		{
			name: "negative",
			ym:   NewYearMonth(2024, time.January),
			n:    -1,
			want: NewYearMonth(2023, time.December),
		},
		{
			name: "zero",
			ym:   NewYearMonth(2024, time.May),
			n:    0,
			want: NewYearMonth(2024, time.May),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.ym.AddMonths(tt.n)
			if !got.Equal(tt.want) {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestYearMonth_MonthsSince(t *testing.T) {
	tests := []struct {
		name string
		ym   YearMonth
		from YearMonth
		want int
	}{
		{
			name: "same month",
			ym:   NewYearMonth(2024, time.May),
			from: NewYearMonth(2024, time.May),
			want: 0,
		},
		{
			name: "across year boundary",
			ym:   NewYearMonth(2025, time.February),
			from: NewYearMonth(2024, time.November),
			want: 3,
		},
		{
			name: "negative when earlier",
			ym:   NewYearMonth(2024, time.January),
			from: NewYearMonth(2024, time.June),
			want: -5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ym.MonthsSince(tt.from); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestYearMonth_Ordering(t *testing.T) {
	early := NewYearMonth(2024, time.December)
	late := NewYearMonth(2025, time.January)

	if !early.Before(late) {
		t.Error("expected 2024-12 before 2025-01")
	}
	if !late.After(early) {
		t.Error("expected 2025-01 after 2024-12")
	}
	if early.After(late) || late.Before(early) {
		t.Error("ordering is inconsistent")
	}
}

func TestYearMonth_Date(t *testing.T) {
	ym := NewYearMonth(2024, time.May)
	want := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)

	if !ym.Date().Equal(want) {
		t.Errorf("expected %s, got %s", want, ym.Date())
	}
}

func TestYearMonth_String(t *testing.T) {
	if s := NewYearMonth(2024, time.May).String(); s != "2024-05" {
		t.Errorf("expected 2024-05, got %s", s)
	}
}
