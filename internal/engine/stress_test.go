package engine

import (
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finsim/internal/domain"
)

func stressFixture() *domain.Snapshot {
	mortgageID := "m"

	return &domain.Snapshot{
		Scenario: &domain.Scenario{
			ID:    "s1",
			Name:  "plan",
			Start: domain.NewYearMonth(2024, time.January),
			End:   domain.NewYearMonth(2026, time.December),
		},
		Accounts: []*domain.Account{
			{ID: "c", Name: "checking", Kind: domain.AccountKindBank, InitialBalance: decimal.NewFromInt(50000)},
			{
				ID:               "p",
				Name:             "portfolio",
				Kind:             domain.AccountKindPortfolio,
				InitialBalance:   decimal.NewFromInt(100000),
				AnnualGrowthRate: decimal.NewFromFloat(0.05),
			},
			{
				ID:               "h",
				Name:             "house",
				Kind:             domain.AccountKindRealEstate,
				InitialBalance:   decimal.NewFromInt(800000),
				AnnualGrowthRate: decimal.NewFromFloat(0.02),
			},
			{ID: "m", Name: "mortgage", Kind: domain.AccountKindMortgage, InitialBalance: decimal.NewFromInt(-500000)},
		},
		Transactions: []*domain.Transaction{
			{
				ID:        "salary",
				AccountID: "c",
				Name:      "salary",
				Kind:      domain.TransactionKindRegular,
				Amount:    decimal.NewFromInt(9000),
				Start:     domain.NewYearMonth(2024, time.January),
				Frequency: 1,
				Taxable:   true,
			},
			{
				ID:                 "interest",
				AccountID:          "c",
				Name:               "mortgage interest",
				Kind:               domain.TransactionKindMortgageInterest,
				Start:              domain.NewYearMonth(2024, time.January),
				Frequency:          1,
				MortgageAccountID:  &mortgageID,
				AnnualInterestRate: decimal.NewFromFloat(0.02),
			},
		},
		TaxProfile: domain.DefaultTaxProfile(),
	}
}

func finalWealth(proj *domain.Projection) decimal.Decimal {
	return proj.TotalWealth[len(proj.TotalWealth)-1].Value
}

func TestRunStress_EmptyShockListMatchesBase(t *testing.T) {
	snap := stressFixture()

	base, err := Run(snap)
	if err != nil {
		t.Fatalf("base run failed: %v", err)
	}

	stressed, err := RunStress(snap, nil)
	if err != nil {
		t.Fatalf("stress run failed: %v", err)
	}

	if !reflect.DeepEqual(base, stressed) {
		t.Error("empty shock list must reproduce the base result exactly")
	}
}

func TestRunStress_DoesNotMutateSnapshot(t *testing.T) {
	snap := stressFixture()
	originalGrowth := snap.Accounts[1].AnnualGrowthRate
	originalAmount := snap.Transactions[0].Amount
	originalMunicipal := snap.TaxProfile.MunicipalFactor

	shocks := []domain.Shock{
		{AssetClass: domain.AssetClassPortfolio, DeltaPct: decimal.NewFromFloat(-0.3)},
		{AssetClass: domain.AssetClassInflation, DeltaPct: decimal.NewFromFloat(0.1)},
		{AssetClass: domain.AssetClassIncomeTax, DeltaPct: decimal.NewFromFloat(0.05)},
	}

	if _, err := RunStress(snap, shocks); err != nil {
		t.Fatalf("stress run failed: %v", err)
	}

	if !snap.Accounts[1].AnnualGrowthRate.Equal(originalGrowth) {
		t.Error("portfolio growth rate mutated on the original snapshot")
	}
	if !snap.Transactions[0].Amount.Equal(originalAmount) {
		t.Error("transaction amount mutated on the original snapshot")
	}
	if !snap.TaxProfile.MunicipalFactor.Equal(originalMunicipal) {
		t.Error("tax profile mutated on the original snapshot")
	}
}

func TestRunStress_PortfolioShockLowersWealth(t *testing.T) {
	snap := stressFixture()

	base, err := Run(snap)
	if err != nil {
		t.Fatalf("base run failed: %v", err)
	}

	stressed, err := RunStress(snap, []domain.Shock{
		{AssetClass: domain.AssetClassPortfolio, DeltaPct: decimal.NewFromFloat(-0.04)},
	})
	if err != nil {
		t.Fatalf("stress run failed: %v", err)
	}

	if !finalWealth(stressed).LessThan(finalWealth(base)) {
		t.Errorf("expected lower end-of-horizon wealth under a negative portfolio shock: base %s, stressed %s",
			finalWealth(base), finalWealth(stressed))
	}
}

func TestRunStress_MortgageInterestShockRaisesExpenses(t *testing.T) {
	snap := stressFixture()

	base, err := Run(snap)
	if err != nil {
		t.Fatalf("base run failed: %v", err)
	}

	stressed, err := RunStress(snap, []domain.Shock{
		{AssetClass: domain.AssetClassMortgageInterest, DeltaPct: decimal.NewFromFloat(0.01)},
	})
	if err != nil {
		t.Fatalf("stress run failed: %v", err)
	}

	if !stressed.CashFlows[0].Expenses.GreaterThan(base.CashFlows[0].Expenses) {
		t.Errorf("expected higher first-month expenses: base %s, stressed %s",
			base.CashFlows[0].Expenses, stressed.CashFlows[0].Expenses)
	}
}

func TestRunStress_IncomeTaxShockScalesLocalTax(t *testing.T) {
	snap := stressFixture()

	base, err := Run(snap)
	if err != nil {
		t.Fatalf("base run failed: %v", err)
	}

	stressed, err := RunStress(snap, []domain.Shock{
		{AssetClass: domain.AssetClassIncomeTax, DeltaPct: decimal.NewFromFloat(0.1)},
	})
	if err != nil {
		t.Fatalf("stress run failed: %v", err)
	}

	if !stressed.Taxes[0].LocalTax.GreaterThan(base.Taxes[0].LocalTax) {
		t.Errorf("expected higher local tax: base %s, stressed %s",
			base.Taxes[0].LocalTax, stressed.Taxes[0].LocalTax)
	}
	// Federal tax is untouched by the local multiplier shock.
	if !stressed.Taxes[0].FederalTax.Equal(base.Taxes[0].FederalTax) {
		t.Errorf("federal tax should not move: base %s, stressed %s",
			base.Taxes[0].FederalTax, stressed.Taxes[0].FederalTax)
	}
}

func TestRunStress_WindowFiltersEntities(t *testing.T) {
	snap := stressFixture()

	// Window entirely before any entity's effective date: nothing may
	// change.
	windowEnd := domain.NewYearMonth(2023, time.December)
	base, err := Run(snap)
	if err != nil {
		t.Fatalf("base run failed: %v", err)
	}

	stressed, err := RunStress(snap, []domain.Shock{
		{
			AssetClass: domain.AssetClassPortfolio,
			DeltaPct:   decimal.NewFromFloat(-0.5),
			WindowEnd:  &windowEnd,
		},
	})
	if err != nil {
		t.Fatalf("stress run failed: %v", err)
	}

	if !finalWealth(stressed).Equal(finalWealth(base)) {
		t.Errorf("out-of-window shock must not change the result: base %s, stressed %s",
			finalWealth(base), finalWealth(stressed))
	}
}

func TestRunStress_UnknownAssetClass(t *testing.T) {
	snap := stressFixture()

	_, err := RunStress(snap, []domain.Shock{{AssetClass: "crypto"}})
	if err == nil {
		t.Error("expected error for unknown asset class")
	}
}

func TestRunStress_InflationShockScalesAmounts(t *testing.T) {
	snap := stressFixture()

	base, err := Run(snap)
	if err != nil {
		t.Fatalf("base run failed: %v", err)
	}

	stressed, err := RunStress(snap, []domain.Shock{
		{AssetClass: domain.AssetClassInflation, DeltaPct: decimal.NewFromFloat(0.1)},
	})
	if err != nil {
		t.Fatalf("stress run failed: %v", err)
	}

	wantIncome := base.CashFlows[0].Income.Mul(decimal.NewFromFloat(1.1))
	if !stressed.CashFlows[0].Income.Equal(wantIncome) {
		t.Errorf("expected first-month income %s, got %s", wantIncome, stressed.CashFlows[0].Income)
	}
}
