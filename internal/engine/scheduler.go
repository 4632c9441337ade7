package engine

import (
	"github.com/shopspring/decimal"

	"github.com/iho/finsim/internal/domain"
)

// amountForPeriod is the single dispatch point over the transaction
// variant. A mortgage_interest transaction is evaluated against the
// projector's in-flight balance map, before this period's interest
// posts; its value is never stored.
func amountForPeriod(tx *domain.Transaction, ym domain.YearMonth, balances map[string]decimal.Decimal) decimal.Decimal {
	if tx.Kind == domain.TransactionKindMortgageInterest {
		balance := decimal.Zero
		if tx.MortgageAccountID != nil {
			balance = balances[*tx.MortgageAccountID]
		}
		return tx.MortgageInterestOn(balance)
	}
	return tx.RecurringAmountAt(ym)
}
