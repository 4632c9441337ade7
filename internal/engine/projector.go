package engine

import (
	"github.com/shopspring/decimal"

	"github.com/iho/finsim/internal/domain"
)

// Run projects a snapshot month by month over its full horizon and
// returns balance histories, cash-flow breakdowns and yearly tax
// figures. The snapshot is read-only for the duration of the run; every
// run is a full recompute from initial balances.
func Run(snap *domain.Snapshot) (*domain.Projection, error) {
	if snap == nil || snap.Scenario == nil {
		return nil, domain.ErrScenarioNotFound
	}
	if err := snap.Scenario.Validate(); err != nil {
		return nil, err
	}

	profile := snap.TaxProfile
	if profile == nil {
		profile = domain.DefaultTaxProfile()
	}

	p := newProjector(snap)
	proj := p.run()

	proj.Taxes = computeYearlyTaxes(snap, profile, proj.TotalWealth)
	stampDecemberTaxes(proj)
	proj.YearlyCashFlows = rollupYears(proj.CashFlows)

	return proj, nil
}

type projector struct {
	snap        *domain.Snapshot
	balances    map[string]decimal.Decimal
	factors     map[string]decimal.Decimal
	txByAccount map[string][]*domain.Transaction
}

func newProjector(snap *domain.Snapshot) *projector {
	p := &projector{
		snap:        snap,
		balances:    make(map[string]decimal.Decimal, len(snap.Accounts)),
		factors:     make(map[string]decimal.Decimal, len(snap.Accounts)),
		txByAccount: make(map[string][]*domain.Transaction),
	}

	for _, acct := range snap.Accounts {
		p.balances[acct.ID] = acct.InitialBalance
		// Monthly growth factor derived once per run.
		p.factors[acct.ID] = acct.MonthlyGrowthFactor()
	}

	for _, tx := range snap.Transactions {
		p.txByAccount[tx.AccountID] = append(p.txByAccount[tx.AccountID], tx)
	}

	return p
}

func (p *projector) run() *domain.Projection {
	proj := &domain.Projection{
		AccountBalances: make(map[string][]domain.BalancePoint, len(p.snap.Accounts)),
	}

	start := p.snap.Scenario.Start
	end := p.snap.Scenario.End

	for ym := start; !ym.After(end); ym = ym.AddMonths(1) {
		month := newMonthBuilder(ym.Date())

		for _, acct := range p.snap.Accounts {
			if !acct.ActiveAt(ym) {
				continue
			}

			p.balances[acct.ID] = p.balances[acct.ID].Mul(p.factors[acct.ID])

			for _, tx := range p.txByAccount[acct.ID] {
				if !tx.AppliesAt(ym, end) {
					continue
				}
				amount := amountForPeriod(tx, ym, p.balances)
				p.balances[acct.ID] = p.balances[acct.ID].Add(amount)
				month.add(tx, acct.Name, amount)
			}
		}

		// Frozen accounts keep their last sample and stay out of the
		// monthly total.
		total := decimal.Zero
		for _, acct := range p.snap.Accounts {
			if !acct.ActiveAt(ym) {
				continue
			}
			proj.AccountBalances[acct.Name] = append(proj.AccountBalances[acct.Name], domain.BalancePoint{
				Date:  ym.Date(),
				Value: p.balances[acct.ID],
			})
			total = total.Add(p.balances[acct.ID])
		}

		proj.TotalWealth = append(proj.TotalWealth, domain.BalancePoint{Date: ym.Date(), Value: total})
		proj.CashFlows = append(proj.CashFlows, month.build())
	}

	return proj
}
