package domain

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestAccount_ActiveAt(t *testing.T) {
	tests := []struct {
		name    string
		account Account
		ym      YearMonth
		want    bool
	}{
		{
			name:    "no window is always active",
			account: Account{},
			ym:      NewYearMonth(2024, time.May),
			want:    true,
		},
		{
			name:    "before open",
			account: Account{ActiveFrom: ymPtr(2025, time.January)},
			ym:      NewYearMonth(2024, time.December),
			want:    false,
		},
		{
			name:    "on open boundary",
			account: Account{ActiveFrom: ymPtr(2025, time.January)},
			ym:      NewYearMonth(2025, time.January),
			want:    true,
		},
		{
			name:    "after close",
			account: Account{ActiveUntil: ymPtr(2025, time.June)},
			ym:      NewYearMonth(2025, time.July),
			want:    false,
		},
		{
			name:    "on close boundary",
			account: Account{ActiveUntil: ymPtr(2025, time.June)},
			ym:      NewYearMonth(2025, time.June),
			want:    true,
		},
		{
			name: "inside closed window",
			account: Account{
				ActiveFrom:  ymPtr(2024, time.March),
				ActiveUntil: ymPtr(2026, time.March),
			},
			ym:   NewYearMonth(2025, time.January),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.account.ActiveAt(tt.ym); got != tt.want {
				t.Errorf("ActiveAt(%s) = %v, want %v", tt.ym, got, tt.want)
			}
		})
	}
}

func TestMonthlyFactor_ReconstructsAnnualRate(t *testing.T) {
	rates := []float64{0.01, 0.02, 0.05, 0.12, -0.03}

	for _, annual := range rates {
		factor := MonthlyFactor(decimal.NewFromFloat(annual)).InexactFloat64()
		yearly := math.Pow(factor, 12)

		if diff := math.Abs(yearly - (1 + annual)); diff > 1e-9 {
			t.Errorf("annual %.2f: 12 monthly factors give %.12f", annual, yearly)
		}
	}
}

func TestMonthlyRate_ZeroAnnual(t *testing.T) {
	if r := MonthlyRate(decimal.Zero); !r.IsZero() {
		t.Errorf("expected zero monthly rate, got %s", r)
	}
}

func TestValidAccountKind(t *testing.T) {
	for _, k := range []AccountKind{
		AccountKindGeneric, AccountKindBank, AccountKindRealEstate,
		AccountKindMortgage, AccountKindPortfolio,
	} {
		if !ValidAccountKind(k) {
			t.Errorf("expected %q to be valid", k)
		}
	}

	if ValidAccountKind("savings") {
		t.Error("expected unknown kind to be invalid")
	}
}
