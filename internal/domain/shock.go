package domain

import "github.com/shopspring/decimal"

// AssetClass names the group of accounts or transactions a stress shock
// applies to.
type AssetClass string

const (
	AssetClassPortfolio        AssetClass = "portfolio"
	AssetClassRealEstate       AssetClass = "real_estate"
	AssetClassMortgageInterest AssetClass = "mortgage_interest"
	AssetClassIncomeTax        AssetClass = "income_tax"
	AssetClassInflation        AssetClass = "inflation"
)

// ValidAssetClass reports whether c is a known asset class.
func ValidAssetClass(c AssetClass) bool {
	switch c {
	case AssetClassPortfolio, AssetClassRealEstate, AssetClassMortgageInterest,
		AssetClassIncomeTax, AssetClassInflation:
		return true
	}
	return false
}

// Shock is a bounded perturbation applied to a snapshot clone before a
// re-simulation. Rate classes add DeltaPct to the relevant annual rate,
// the inflation class multiplies cash amounts by (1+DeltaPct), and the
// income_tax class scales the local-tax factors. The optional window
// filters entities by their effective start date; a missing boundary is
// open-ended.
type Shock struct {
	AssetClass  AssetClass
	DeltaPct    decimal.Decimal
	WindowStart *YearMonth
	WindowEnd   *YearMonth
}

// InWindow reports whether an effective date falls inside the shock
// window.
func (s *Shock) InWindow(ym YearMonth) bool {
	if s.WindowStart != nil && ym.Before(*s.WindowStart) {
		return false
	}
	if s.WindowEnd != nil && ym.After(*s.WindowEnd) {
		return false
	}
	return true
}

// Validate checks the shock shape.
func (s *Shock) Validate() error {
	if !ValidAssetClass(s.AssetClass) {
		return ErrUnknownAssetClass
	}
	return nil
}
