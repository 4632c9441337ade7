package domain

// Snapshot is the immutable input of one simulation run: the scenario,
// its accounts and transactions, and the attached tax profile (nil when
// the scenario has none). The engine never mutates a snapshot; stress
// runs operate on a Clone.
type Snapshot struct {
	Scenario     *Scenario
	Accounts     []*Account
	Transactions []*Transaction
	TaxProfile   *TaxProfile
}

// Clone deep-copies the snapshot so shocks can perturb it without
// touching the original objects.
func (s *Snapshot) Clone() *Snapshot {
	clone := &Snapshot{}

	if s.Scenario != nil {
		sc := *s.Scenario
		if s.Scenario.TaxProfileID != nil {
			id := *s.Scenario.TaxProfileID
			sc.TaxProfileID = &id
		}
		clone.Scenario = &sc
	}

	clone.Accounts = make([]*Account, len(s.Accounts))
	for i, a := range s.Accounts {
		ac := *a
		if a.ActiveFrom != nil {
			ym := *a.ActiveFrom
			ac.ActiveFrom = &ym
		}
		if a.ActiveUntil != nil {
			ym := *a.ActiveUntil
			ac.ActiveUntil = &ym
		}
		clone.Accounts[i] = &ac
	}

	clone.Transactions = make([]*Transaction, len(s.Transactions))
	for i, t := range s.Transactions {
		tc := *t
		if t.End != nil {
			ym := *t.End
			tc.End = &ym
		}
		if t.TaxableAmount != nil {
			d := *t.TaxableAmount
			tc.TaxableAmount = &d
		}
		if t.PairID != nil {
			id := *t.PairID
			tc.PairID = &id
		}
		if t.CounterAccountID != nil {
			id := *t.CounterAccountID
			tc.CounterAccountID = &id
		}
		if t.MortgageAccountID != nil {
			id := *t.MortgageAccountID
			tc.MortgageAccountID = &id
		}
		clone.Transactions[i] = &tc
	}

	if s.TaxProfile != nil {
		tp := *s.TaxProfile
		tp.IncomeBrackets = cloneBrackets(s.TaxProfile.IncomeBrackets)
		tp.WealthBrackets = cloneBrackets(s.TaxProfile.WealthBrackets)
		tp.FederalRows = append([]FederalTaxRow(nil), s.TaxProfile.FederalRows...)
		clone.TaxProfile = &tp
	}

	return clone
}

func cloneBrackets(brackets []TaxBracket) []TaxBracket {
	out := make([]TaxBracket, len(brackets))
	for i, b := range brackets {
		out[i] = b
		if b.Cap != nil {
			c := *b.Cap
			out[i].Cap = &c
		}
	}
	return out
}
