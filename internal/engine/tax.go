package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finsim/internal/domain"
)

// maxRecurrenceExpansions bounds per-transaction recurrence expansion
// so a malformed date range cannot stall a run.
const maxRecurrenceExpansions = 1000

var (
	oneHundred = decimal.NewFromInt(100)

	// Marginal federal rate applied above the last table row.
	federalTopMarginalRate = decimal.NewFromFloat(0.115)
)

// ProgressiveTax consumes amount through ascending brackets. Each
// bracket taxes a slice of min(remaining, cap) at its rate; the
// unbounded terminal bracket takes whatever remains.
func ProgressiveTax(amount decimal.Decimal, brackets []domain.TaxBracket) decimal.Decimal {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	remaining := amount
	total := decimal.Zero

	for _, b := range brackets {
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}
		slice := remaining
		if b.Cap != nil && b.Cap.LessThan(remaining) {
			slice = *b.Cap
		}
		total = total.Add(slice.Mul(b.Rate))
		remaining = remaining.Sub(slice)
	}

	return total
}

// FederalTax interpolates the federal table: below the first row the
// first row's per-100 slope extrapolates downward (clamped at zero),
// within the table each row's base grows by per100 for every 100 of
// income up to the next row, and at or beyond the last row the last
// base plus a fixed 11.5% marginal rate on the excess applies.
func FederalTax(income decimal.Decimal, rows []domain.FederalTaxRow) decimal.Decimal {
	if len(rows) == 0 || income.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	last := rows[len(rows)-1]
	if income.GreaterThanOrEqual(last.Income) {
		excess := income.Sub(last.Income)
		return last.Base.Add(excess.Mul(federalTopMarginalRate))
	}

	row := rows[0]
	for i := 1; i < len(rows); i++ {
		if rows[i].Income.GreaterThan(income) {
			break
		}
		row = rows[i]
	}

	tax := row.Base.Add(income.Sub(row.Income).Div(oneHundred).Mul(row.Per100))
	if tax.IsNegative() {
		return decimal.Zero
	}
	return tax
}

// taxableIncomeForYear sums the taxable base of every transaction
// flagged taxable, expanded across its recurrence within the calendar
// year. Expansion is capped per transaction as a guard against
// malformed date ranges.
func taxableIncomeForYear(snap *domain.Snapshot, year int) decimal.Decimal {
	total := decimal.Zero

	for _, tx := range snap.Transactions {
		if !tx.Taxable {
			continue
		}

		if tx.Kind == domain.TransactionKindOneTime {
			if tx.Start.Year == year {
				total = total.Add(tx.TaxableBase())
			}
			continue
		}

		end := tx.EffectiveEnd(snap.Scenario.End)
		freq := tx.EffectiveFrequency()
		expansions := 0

		for ym := tx.Start; !ym.After(end) && expansions < maxRecurrenceExpansions; ym = ym.AddMonths(freq) {
			expansions++
			if ym.Year > year {
				break
			}
			if ym.Year == year {
				total = total.Add(tx.TaxableBase())
			}
		}
	}

	return total
}

// decemberWealth returns the total-wealth sample for December of the
// year, or nil when the horizon has no December that year.
func decemberWealth(wealth []domain.BalancePoint, year int) *decimal.Decimal {
	for _, point := range wealth {
		if point.Date.Year() == year && point.Date.Month() == time.December {
			v := point.Value
			return &v
		}
	}
	return nil
}

// computeYearlyTaxes runs the tax engine for every calendar year the
// horizon touches. This is the single authoritative source of the
// total tax figure.
func computeYearlyTaxes(snap *domain.Snapshot, profile *domain.TaxProfile, wealth []domain.BalancePoint) []domain.YearlyTaxes {
	var out []domain.YearlyTaxes

	for year := snap.Scenario.Start.Year; year <= snap.Scenario.End.Year; year++ {
		income := taxableIncomeForYear(snap, year)
		yearWealth := decemberWealth(wealth, year)

		incomeTax := ProgressiveTax(income, profile.IncomeBrackets)
		wealthTax := decimal.Zero
		if yearWealth != nil {
			wealthTax = ProgressiveTax(*yearWealth, profile.WealthBrackets)
		}
		baseTax := incomeTax.Add(wealthTax)

		personalTax := profile.PersonalTax.Mul(decimal.NewFromInt(int64(profile.HouseholdSize)))
		localTax := baseTax.Mul(profile.LocalFactor()).Add(personalTax)
		federalTax := FederalTax(income, profile.FederalRows)

		out = append(out, domain.YearlyTaxes{
			Year:        year,
			Net:         income,
			Wealth:      yearWealth,
			IncomeTax:   incomeTax,
			WealthTax:   wealthTax,
			BaseTax:     baseTax,
			PersonalTax: personalTax,
			LocalTax:    localTax,
			FederalTax:  federalTax,
			TotalAll:    localTax.Add(federalTax),
		})
	}

	return out
}
