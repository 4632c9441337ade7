package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxBracket is one tranche of a progressive tax schedule. Cap is the
// width of the tranche; a nil Cap marks the unbounded terminal bracket.
type TaxBracket struct {
	Cap  *decimal.Decimal
	Rate decimal.Decimal
}

// FederalTaxRow is one sampled row of the federal interpolation table:
// at Income the tax is Base, growing by Per100 for every 100 of income
// until the next row.
type FederalTaxRow struct {
	Income decimal.Decimal
	Base   decimal.Decimal
	Per100 decimal.Decimal
}

// TaxProfile holds the progressive schedules and local multipliers used
// by the tax engine.
type TaxProfile struct {
	ID              string
	Name            string
	IncomeBrackets  []TaxBracket
	WealthBrackets  []TaxBracket
	FederalRows     []FederalTaxRow
	MunicipalFactor decimal.Decimal
	CantonalFactor  decimal.Decimal
	ChurchFactor    decimal.Decimal
	PersonalTax     decimal.Decimal
	HouseholdSize   int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// LocalFactor returns the combined municipal, cantonal and church
// multiplier applied to the base tax.
func (p *TaxProfile) LocalFactor() decimal.Decimal {
	return p.MunicipalFactor.Add(p.CantonalFactor).Add(p.ChurchFactor)
}

// ValidateBrackets checks that a bracket list has positive tranche
// widths, non-decreasing rates and exactly one unbounded terminal
// bracket. Caps are widths, not thresholds, so no ordering is imposed
// on them.
func ValidateBrackets(brackets []TaxBracket) error {
	if len(brackets) == 0 {
		return ErrInvalidBrackets
	}
	prevRate := decimal.Zero
	for i, b := range brackets {
		if b.Rate.LessThan(prevRate) {
			return ErrInvalidBrackets
		}
		prevRate = b.Rate
		if b.Cap == nil {
			if i != len(brackets)-1 {
				return ErrInvalidBrackets
			}
			continue
		}
		if b.Cap.LessThanOrEqual(decimal.Zero) {
			return ErrInvalidBrackets
		}
	}
	if brackets[len(brackets)-1].Cap != nil {
		return ErrInvalidBrackets
	}
	return nil
}

// Validate checks the whole profile.
func (p *TaxProfile) Validate() error {
	if err := ValidateBrackets(p.IncomeBrackets); err != nil {
		return err
	}
	if err := ValidateBrackets(p.WealthBrackets); err != nil {
		return err
	}
	if len(p.FederalRows) == 0 {
		return ErrInvalidFederalTable
	}
	prev := decimal.NewFromInt(-1)
	for _, row := range p.FederalRows {
		if row.Income.LessThanOrEqual(prev) {
			return ErrInvalidFederalTable
		}
		prev = row.Income
	}
	if p.HouseholdSize < 0 {
		return ErrInvalidTaxProfile
	}
	return nil
}

func capOf(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func rate(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

// DefaultTaxProfile is the documented fallback used when a scenario has
// no tax profile attached. Figures approximate a mid-size Swiss
// municipality for a single-person household.
func DefaultTaxProfile() *TaxProfile {
	return &TaxProfile{
		ID:   "default",
		Name: "Default profile",
		IncomeBrackets: []TaxBracket{
			{Cap: capOf(6700), Rate: rate(0)},
			{Cap: capOf(4700), Rate: rate(0.02)},
			{Cap: capOf(4700), Rate: rate(0.03)},
			{Cap: capOf(7800), Rate: rate(0.04)},
			{Cap: capOf(9500), Rate: rate(0.05)},
			{Cap: capOf(10900), Rate: rate(0.06)},
			{Cap: capOf(12400), Rate: rate(0.07)},
			{Cap: capOf(47900), Rate: rate(0.08)},
			{Cap: capOf(31200), Rate: rate(0.09)},
			{Cap: capOf(32500), Rate: rate(0.10)},
			{Cap: capOf(51300), Rate: rate(0.11)},
			{Cap: capOf(34600), Rate: rate(0.12)},
			{Cap: nil, Rate: rate(0.13)},
		},
		WealthBrackets: []TaxBracket{
			{Cap: capOf(77000), Rate: rate(0)},
			{Cap: capOf(231000), Rate: rate(0.0005)},
			{Cap: capOf(385000), Rate: rate(0.001)},
			{Cap: capOf(770000), Rate: rate(0.0015)},
			{Cap: capOf(1540000), Rate: rate(0.002)},
			{Cap: capOf(1617000), Rate: rate(0.0025)},
			{Cap: nil, Rate: rate(0.003)},
		},
		FederalRows: []FederalTaxRow{
			{Income: decimal.NewFromInt(17800), Base: rate(0), Per100: rate(0.77)},
			{Income: decimal.NewFromInt(31600), Base: rate(131.65), Per100: rate(0.88)},
			{Income: decimal.NewFromInt(41400), Base: rate(217.90), Per100: rate(2.64)},
			{Income: decimal.NewFromInt(55200), Base: rate(582.20), Per100: rate(2.97)},
			{Income: decimal.NewFromInt(72500), Base: rate(1096.00), Per100: rate(5.94)},
			{Income: decimal.NewFromInt(78100), Base: rate(1428.60), Per100: rate(6.60)},
			{Income: decimal.NewFromInt(103600), Base: rate(3111.60), Per100: rate(8.80)},
			{Income: decimal.NewFromInt(134600), Base: rate(5839.60), Per100: rate(11.00)},
			{Income: decimal.NewFromInt(176000), Base: rate(10393.60), Per100: rate(13.20)},
			{Income: decimal.NewFromInt(755200), Base: rate(86848.00), Per100: rate(11.50)},
		},
		MunicipalFactor: rate(1.19),
		CantonalFactor:  rate(0.98),
		ChurchFactor:    rate(0.10),
		PersonalTax:     decimal.NewFromInt(24),
		HouseholdSize:   1,
	}
}
