package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalancePoint is one (date, value) sample of an account balance or the
// cross-account wealth total.
type BalancePoint struct {
	Date  time.Time
	Value decimal.Decimal
}

// CashFlowLine is one detail line of a monthly cash flow bucket.
type CashFlowLine struct {
	Transaction string
	Account     string
	Amount      decimal.Decimal
}

// MonthlyCashFlow buckets the transactions fired in one month.
type MonthlyCashFlow struct {
	Date           time.Time
	Income         decimal.Decimal
	Expenses       decimal.Decimal
	Taxes          decimal.Decimal
	Net            decimal.Decimal
	IncomeDetails  []CashFlowLine
	ExpenseDetails []CashFlowLine
}

// YearlyCashFlow rolls a calendar year of monthly cash flows up and
// keeps the constituent months, ordered by date, for drill-down.
type YearlyCashFlow struct {
	Year     int
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Taxes    decimal.Decimal
	Net      decimal.Decimal
	Months   []MonthlyCashFlow
}

// YearlyTaxes is the tax engine output for one calendar year. Wealth is
// nil when the horizon contains no December sample for the year.
type YearlyTaxes struct {
	Year        int
	Net         decimal.Decimal
	Wealth      *decimal.Decimal
	IncomeTax   decimal.Decimal
	WealthTax   decimal.Decimal
	BaseTax     decimal.Decimal
	PersonalTax decimal.Decimal
	LocalTax    decimal.Decimal
	FederalTax  decimal.Decimal
	TotalAll    decimal.Decimal
}

// Projection is the full result of one simulation run. Account balance
// histories are keyed by account name.
type Projection struct {
	AccountBalances map[string][]BalancePoint
	TotalWealth     []BalancePoint
	CashFlows       []MonthlyCashFlow
	YearlyCashFlows []YearlyCashFlow
	Taxes           []YearlyTaxes
}
