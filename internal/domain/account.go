package domain

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// AccountKind classifies what an account represents.
type AccountKind string

const (
	AccountKindGeneric    AccountKind = "generic"
	AccountKindBank       AccountKind = "bank"
	AccountKindRealEstate AccountKind = "real_estate"
	AccountKindMortgage   AccountKind = "mortgage"
	AccountKindPortfolio  AccountKind = "portfolio"
)

// ValidAccountKind reports whether k is a known account kind.
func ValidAccountKind(k AccountKind) bool {
	switch k {
	case AccountKindGeneric, AccountKindBank, AccountKindRealEstate,
		AccountKindMortgage, AccountKindPortfolio:
		return true
	}
	return false
}

// Account is a named balance with a growth rate and an optional active
// window. Outside the window the balance is frozen.
type Account struct {
	ID               string
	ScenarioID       string
	Name             string
	Kind             AccountKind
	AnnualGrowthRate decimal.Decimal
	InitialBalance   decimal.Decimal
	ActiveFrom       *YearMonth
	ActiveUntil      *YearMonth
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ActiveAt reports whether the account is inside its active window.
// A missing boundary is open-ended.
func (a *Account) ActiveAt(ym YearMonth) bool {
	if a.ActiveFrom != nil && ym.Before(*a.ActiveFrom) {
		return false
	}
	if a.ActiveUntil != nil && ym.After(*a.ActiveUntil) {
		return false
	}
	return true
}

// MonthlyGrowthFactor returns the per-month balance multiplier derived
// once from the annual growth rate.
func (a *Account) MonthlyGrowthFactor() decimal.Decimal {
	return MonthlyFactor(a.AnnualGrowthRate)
}

// MonthlyFactor converts an annual rate into the equivalent monthly
// compounding factor (1+annual)^(1/12).
func MonthlyFactor(annualRate decimal.Decimal) decimal.Decimal {
	return decimal.NewFromFloat(math.Pow(1+annualRate.InexactFloat64(), 1.0/12.0))
}

// MonthlyRate converts an annual rate into the equivalent monthly rate
// (1+annual)^(1/12) - 1.
func MonthlyRate(annualRate decimal.Decimal) decimal.Decimal {
	return MonthlyFactor(annualRate).Sub(decimal.NewFromInt(1))
}
