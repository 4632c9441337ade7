package domain

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind is the tagged variant over transaction behavior.
type TransactionKind string

const (
	TransactionKindOneTime          TransactionKind = "one_time"
	TransactionKindRegular          TransactionKind = "regular"
	TransactionKindMortgageInterest TransactionKind = "mortgage_interest"
)

// ValidTransactionKind reports whether k is a known transaction kind.
func ValidTransactionKind(k TransactionKind) bool {
	switch k {
	case TransactionKindOneTime, TransactionKindRegular, TransactionKindMortgageInterest:
		return true
	}
	return false
}

// PairRole marks which leg of a double-entry pair a transaction is.
// The debit leg carries the positive amount on the receiving account,
// the credit leg the negative amount on the paying account.
type PairRole string

const (
	PairRoleNone   PairRole = ""
	PairRoleDebit  PairRole = "debit"
	PairRoleCredit PairRole = "credit"
)

// Transaction is a dated, possibly recurring cash movement against an
// account. Double-entry transfers exist as two linked legs sharing a
// PairID; a mortgage_interest transaction has no stored amount, its
// value is recomputed each period from the referenced mortgage
// account's projected balance.
type Transaction struct {
	ID                 string
	ScenarioID         string
	AccountID          string
	Name               string
	Kind               TransactionKind
	Amount             decimal.Decimal
	Start              YearMonth
	End                *YearMonth
	Frequency          int
	AnnualGrowthRate   decimal.Decimal
	Taxable            bool
	TaxableAmount      *decimal.Decimal
	PairID             *string
	PairRole           PairRole
	CounterAccountID   *string
	MortgageAccountID  *string
	AnnualInterestRate decimal.Decimal
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// EffectiveFrequency returns the recurrence interval in months.
// Stored zero or negative values from legacy data are treated as 1.
func (t *Transaction) EffectiveFrequency() int {
	if t.Frequency <= 0 {
		return 1
	}
	return t.Frequency
}

// EffectiveEnd returns the last month the transaction can fire,
// falling back to the horizon end when no end date is stored.
func (t *Transaction) EffectiveEnd(horizonEnd YearMonth) YearMonth {
	if t.End != nil {
		return *t.End
	}
	return horizonEnd
}

// AppliesAt reports whether the transaction fires in the given month.
// A one_time transaction fires only in its start month; recurring
// kinds fire on every frequency-th month inside [start, end].
func (t *Transaction) AppliesAt(ym, horizonEnd YearMonth) bool {
	if t.Kind == TransactionKindOneTime {
		return ym.Equal(t.Start)
	}
	if ym.Before(t.Start) || ym.After(t.EffectiveEnd(horizonEnd)) {
		return false
	}
	return ym.MonthsSince(t.Start)%t.EffectiveFrequency() == 0
}

// PeriodsElapsed returns how many recurrence periods have completed by
// the given month.
func (t *Transaction) PeriodsElapsed(ym YearMonth) int {
	months := ym.MonthsSince(t.Start)
	if months <= 0 {
		return 0
	}
	return months / t.EffectiveFrequency()
}

// RecurringAmountAt returns the grown amount of a one_time or regular
// transaction for the given month. Growth compounds geometrically at
// the transaction's own rate, independent of the parent account.
func (t *Transaction) RecurringAmountAt(ym YearMonth) decimal.Decimal {
	if t.Kind != TransactionKindRegular || t.AnnualGrowthRate.IsZero() {
		return t.Amount
	}
	monthlyGrowth := math.Pow(1+t.AnnualGrowthRate.InexactFloat64(), 1.0/12.0) - 1
	factor := math.Pow(1+monthlyGrowth, float64(t.PeriodsElapsed(ym)))
	return t.Amount.Mul(decimal.NewFromFloat(factor))
}

// MortgageInterestOn returns the interest charge for one period on the
// given live mortgage balance: abs(balance) times the monthly rate,
// negated because the charge is an outflow on the paying account.
func (t *Transaction) MortgageInterestOn(balance decimal.Decimal) decimal.Decimal {
	monthlyRate := MonthlyRate(t.AnnualInterestRate)
	return balance.Abs().Mul(monthlyRate).Neg()
}

// TaxableBase returns the amount that counts toward taxable income,
// falling back to the stored amount when no explicit taxable amount is
// set.
func (t *Transaction) TaxableBase() decimal.Decimal {
	if t.TaxableAmount != nil {
		return *t.TaxableAmount
	}
	return t.Amount
}
