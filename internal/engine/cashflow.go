package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finsim/internal/domain"
)

// isExpense buckets a fired transaction: mortgage interest is always an
// expense, explicit double-entry legs categorize by role, everything
// else by the sign of the applied amount.
func isExpense(tx *domain.Transaction, amount decimal.Decimal) bool {
	switch {
	case tx.Kind == domain.TransactionKindMortgageInterest:
		return true
	case tx.PairRole == domain.PairRoleCredit:
		return true
	case tx.PairRole == domain.PairRoleDebit:
		return false
	default:
		return amount.IsNegative()
	}
}

type monthBuilder struct {
	date           time.Time
	income         decimal.Decimal
	expenses       decimal.Decimal
	incomeDetails  []domain.CashFlowLine
	expenseDetails []domain.CashFlowLine
}

func newMonthBuilder(date time.Time) *monthBuilder {
	return &monthBuilder{
		date:     date,
		income:   decimal.Zero,
		expenses: decimal.Zero,
	}
}

func (b *monthBuilder) add(tx *domain.Transaction, accountName string, amount decimal.Decimal) {
	line := domain.CashFlowLine{
		Transaction: tx.Name,
		Account:     accountName,
		Amount:      amount,
	}

	if isExpense(tx, amount) {
		b.expenses = b.expenses.Add(amount.Abs())
		b.expenseDetails = append(b.expenseDetails, line)
		return
	}

	b.income = b.income.Add(amount)
	b.incomeDetails = append(b.incomeDetails, line)
}

func (b *monthBuilder) build() domain.MonthlyCashFlow {
	return domain.MonthlyCashFlow{
		Date:           b.date,
		Income:         b.income,
		Expenses:       b.expenses,
		Taxes:          decimal.Zero,
		Net:            b.income.Sub(b.expenses),
		IncomeDetails:  b.incomeDetails,
		ExpenseDetails: b.expenseDetails,
	}
}

// stampDecemberTaxes posts each year's computed total tax onto that
// year's December cash flow so the monthly and yearly nets carry the
// authoritative tax figure.
func stampDecemberTaxes(proj *domain.Projection) {
	byYear := make(map[int]domain.YearlyTaxes, len(proj.Taxes))
	for _, y := range proj.Taxes {
		byYear[y.Year] = y
	}

	for i := range proj.CashFlows {
		cf := &proj.CashFlows[i]
		if cf.Date.Month() != time.December {
			continue
		}
		y, ok := byYear[cf.Date.Year()]
		if !ok {
			continue
		}
		cf.Taxes = y.TotalAll
		cf.Net = cf.Income.Sub(cf.Expenses).Sub(cf.Taxes)
	}
}

// rollupYears sums monthly cash flows into calendar-year rollups,
// retaining the ordered constituent months for drill-down.
func rollupYears(months []domain.MonthlyCashFlow) []domain.YearlyCashFlow {
	var years []domain.YearlyCashFlow
	idx := make(map[int]int)

	for _, m := range months {
		year := m.Date.Year()
		i, ok := idx[year]
		if !ok {
			i = len(years)
			idx[year] = i
			years = append(years, domain.YearlyCashFlow{
				Year:     year,
				Income:   decimal.Zero,
				Expenses: decimal.Zero,
				Taxes:    decimal.Zero,
				Net:      decimal.Zero,
			})
		}
		y := &years[i]
		y.Income = y.Income.Add(m.Income)
		y.Expenses = y.Expenses.Add(m.Expenses)
		y.Taxes = y.Taxes.Add(m.Taxes)
		y.Net = y.Net.Add(m.Net)
		y.Months = append(y.Months, m)
	}

	return years
}
