package engine

import (
	"github.com/shopspring/decimal"

	"github.com/iho/finsim/internal/domain"
)

// RunStress re-runs the projection against a shocked clone of the
// snapshot. Shocks apply in order to the same clone; persisted state is
// never touched, and an empty shock list reproduces the base run
// exactly.
func RunStress(snap *domain.Snapshot, shocks []domain.Shock) (*domain.Projection, error) {
	if snap == nil || snap.Scenario == nil {
		return nil, domain.ErrScenarioNotFound
	}

	shocked := snap.Clone()
	if shocked.TaxProfile == nil {
		shocked.TaxProfile = domain.DefaultTaxProfile()
	}

	for i := range shocks {
		if err := applyShock(shocked, &shocks[i]); err != nil {
			return nil, err
		}
	}

	return Run(shocked)
}

func applyShock(snap *domain.Snapshot, shock *domain.Shock) error {
	if err := shock.Validate(); err != nil {
		return err
	}

	switch shock.AssetClass {
	case domain.AssetClassPortfolio:
		shockAccountGrowth(snap, shock, domain.AccountKindPortfolio)
	case domain.AssetClassRealEstate:
		shockAccountGrowth(snap, shock, domain.AccountKindRealEstate)
	case domain.AssetClassMortgageInterest:
		for _, tx := range snap.Transactions {
			if tx.Kind != domain.TransactionKindMortgageInterest {
				continue
			}
			if !shock.InWindow(tx.Start) {
				continue
			}
			tx.AnnualInterestRate = tx.AnnualInterestRate.Add(shock.DeltaPct)
		}
	case domain.AssetClassInflation:
		factor := decimal.NewFromInt(1).Add(shock.DeltaPct)
		for _, tx := range snap.Transactions {
			if tx.Kind == domain.TransactionKindMortgageInterest {
				continue
			}
			if !shock.InWindow(tx.Start) {
				continue
			}
			tx.Amount = tx.Amount.Mul(factor)
			if tx.TaxableAmount != nil {
				scaled := tx.TaxableAmount.Mul(factor)
				tx.TaxableAmount = &scaled
			}
		}
	case domain.AssetClassIncomeTax:
		factor := decimal.NewFromInt(1).Add(shock.DeltaPct)
		profile := snap.TaxProfile
		profile.MunicipalFactor = profile.MunicipalFactor.Mul(factor)
		profile.CantonalFactor = profile.CantonalFactor.Mul(factor)
		profile.ChurchFactor = profile.ChurchFactor.Mul(factor)
	}

	return nil
}

func shockAccountGrowth(snap *domain.Snapshot, shock *domain.Shock, kind domain.AccountKind) {
	for _, acct := range snap.Accounts {
		if acct.Kind != kind {
			continue
		}
		effective := snap.Scenario.Start
		if acct.ActiveFrom != nil {
			effective = *acct.ActiveFrom
		}
		if !shock.InWindow(effective) {
			continue
		}
		acct.AnnualGrowthRate = acct.AnnualGrowthRate.Add(shock.DeltaPct)
	}
}
