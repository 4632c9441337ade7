package domain

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func ymPtr(year int, month time.Month) *YearMonth {
	ym := NewYearMonth(year, month)
	return &ym
}

func TestTransaction_AppliesAt(t *testing.T) {
	horizonEnd := NewYearMonth(2030, time.December)

	tests := []struct {
		name string
		tx   Transaction
		ym   YearMonth
		want bool
	}{
		{
			name: "one_time fires on start month",
			tx:   Transaction{Kind: TransactionKindOneTime, Start: NewYearMonth(2024, time.May)},
			ym:   NewYearMonth(2024, time.May),
			want: true,
		},
		{
			name: "one_time does not fire after start",
			tx:   Transaction{Kind: TransactionKindOneTime, Start: NewYearMonth(2024, time.May)},
			ym:   NewYearMonth(2024, time.June),
			want: false,
		},
		{
			name: "regular fires every month with frequency 1",
			tx:   Transaction{Kind: TransactionKindRegular, Start: NewYearMonth(2024, time.January), Frequency: 1},
			ym:   NewYearMonth(2024, time.July),
			want: true,
		},
		{
			name: "regular respects frequency",
			tx:   Transaction{Kind: TransactionKindRegular, Start: NewYearMonth(2024, time.January), Frequency: 3},
			ym:   NewYearMonth(2024, time.February),
			want: false,
		},
		{
			name: "regular fires on frequency multiples",
			tx:   Transaction{Kind: TransactionKindRegular, Start: NewYearMonth(2024, time.January), Frequency: 3},
			ym:   NewYearMonth(2024, time.July),
			want: true,
		},
		{
			name: "regular does not fire before start",
			tx:   Transaction{Kind: TransactionKindRegular, Start: NewYearMonth(2024, time.June), Frequency: 1},
			ym:   NewYearMonth(2024, time.May),
			want: false,
		},
		{
			name: "regular stops after end",
			tx:   Transaction{Kind: TransactionKindRegular, Start: NewYearMonth(2024, time.January), End: ymPtr(2024, time.June), Frequency: 1},
			ym:   NewYearMonth(2024, time.July),
			want: false,
		},
		{
			name: "regular fires on inclusive end month",
			tx:   Transaction{Kind: TransactionKindRegular, Start: NewYearMonth(2024, time.January), End: ymPtr(2024, time.June), Frequency: 1},
			ym:   NewYearMonth(2024, time.June),
			want: true,
		},
		{
			name: "missing end runs to horizon end",
			tx:   Transaction{Kind: TransactionKindRegular, Start: NewYearMonth(2024, time.January), Frequency: 1},
			ym:   horizonEnd,
			want: true,
		},
		{
			name: "zero frequency treated as monthly",
			tx:   Transaction{Kind: TransactionKindRegular, Start: NewYearMonth(2024, time.January), Frequency: 0},
			ym:   NewYearMonth(2024, time.February),
			want: true,
		},
		{
			name: "negative frequency treated as monthly",
			tx:   Transaction{Kind: TransactionKindRegular, Start: NewYearMonth(2024, time.January), Frequency: -4},
			ym:   NewYearMonth(2024, time.March),
			want: true,
		},
		{
			name: "mortgage_interest fires like regular",
			tx:   Transaction{Kind: TransactionKindMortgageInterest, Start: NewYearMonth(2024, time.January), Frequency: 1},
			ym:   NewYearMonth(2025, time.March),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tx.AppliesAt(tt.ym, horizonEnd); got != tt.want {
				t.Errorf("AppliesAt(%s) = %v, want %v", tt.ym, got, tt.want)
			}
		})
	}
}

func TestTransaction_RecurringAmountAt_Compounding(t *testing.T) {
	// 12 monthly periods at the monthly-equivalent of 12% annual growth
	// must reconstruct the annual rate exactly: 1000 * 1.12 = 1120.
	tx := Transaction{
		Kind:             TransactionKindRegular,
		Amount:           decimal.NewFromInt(1000),
		Start:            NewYearMonth(2024, time.January),
		Frequency:        1,
		AnnualGrowthRate: decimal.NewFromFloat(0.12),
	}

	got := tx.RecurringAmountAt(NewYearMonth(2025, time.January))
	want := 1120.00

	if diff := math.Abs(got.InexactFloat64() - want); diff > 0.01 {
		t.Errorf("expected %.2f, got %s", want, got)
	}
}

func TestTransaction_RecurringAmountAt_NoGrowth(t *testing.T) {
	tx := Transaction{
		Kind:      TransactionKindRegular,
		Amount:    decimal.NewFromInt(500),
		Start:     NewYearMonth(2024, time.January),
		Frequency: 1,
	}

	got := tx.RecurringAmountAt(NewYearMonth(2027, time.June))
	if !got.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected 500, got %s", got)
	}
}

func TestTransaction_RecurringAmountAt_FirstPeriod(t *testing.T) {
	tx := Transaction{
		Kind:             TransactionKindRegular,
		Amount:           decimal.NewFromInt(1000),
		Start:            NewYearMonth(2024, time.January),
		Frequency:        1,
		AnnualGrowthRate: decimal.NewFromFloat(0.12),
	}

	got := tx.RecurringAmountAt(NewYearMonth(2024, time.January))
	if diff := math.Abs(got.InexactFloat64() - 1000); diff > 1e-9 {
		t.Errorf("expected 1000 at first occurrence, got %s", got)
	}
}

func TestTransaction_PeriodsElapsed_RespectsFrequency(t *testing.T) {
	tx := Transaction{
		Kind:      TransactionKindRegular,
		Start:     NewYearMonth(2024, time.January),
		Frequency: 3,
	}

	tests := []struct {
		ym   YearMonth
		want int
	}{
		{NewYearMonth(2024, time.January), 0},
		{NewYearMonth(2024, time.April), 1},
		{NewYearMonth(2024, time.July), 2},
		{NewYearMonth(2025, time.January), 4},
	}

	for _, tt := range tests {
		if got := tx.PeriodsElapsed(tt.ym); got != tt.want {
			t.Errorf("PeriodsElapsed(%s) = %d, want %d", tt.ym, got, tt.want)
		}
	}
}

func TestTransaction_MortgageInterestOn(t *testing.T) {
	tx := Transaction{
		Kind:               TransactionKindMortgageInterest,
		AnnualInterestRate: decimal.NewFromFloat(0.02),
	}

	got := tx.MortgageInterestOn(decimal.NewFromInt(-200000))

	// 200000 * ((1.02)^(1/12) - 1) = 330.38, charged as an outflow.
	want := -330.38
	if diff := math.Abs(got.InexactFloat64() - want); diff > 0.01 {
		t.Errorf("expected %.2f, got %s", want, got)
	}
}

func TestTransaction_TaxableBase(t *testing.T) {
	explicit := decimal.NewFromInt(80000)

	tests := []struct {
		name string
		tx   Transaction
		want decimal.Decimal
	}{
		{
			name: "explicit taxable amount wins",
			tx:   Transaction{Amount: decimal.NewFromInt(100000), TaxableAmount: &explicit},
			want: explicit,
		},
		{
			name: "falls back to amount",
			tx:   Transaction{Amount: decimal.NewFromInt(100000)},
			want: decimal.NewFromInt(100000),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tx.TaxableBase(); !got.Equal(tt.want) {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}
