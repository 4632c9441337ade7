package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finsim/internal/domain"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ScenarioResponse represents a scenario in API responses.
type ScenarioResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Start         string          `json:"start"`
	End           string          `json:"end"`
	InflationRate decimal.Decimal `json:"inflation_rate"`
	TaxProfileID  *string         `json:"tax_profile_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ScenarioFromDomain converts a domain scenario to a response.
func ScenarioFromDomain(s *domain.Scenario) *ScenarioResponse {
	return &ScenarioResponse{
		ID:            s.ID,
		Name:          s.Name,
		Start:         s.Start.String(),
		End:           s.End.String(),
		InflationRate: s.InflationRate,
		TaxProfileID:  s.TaxProfileID,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// ScenariosFromDomain converts domain scenarios to responses.
func ScenariosFromDomain(scenarios []*domain.Scenario) []*ScenarioResponse {
	result := make([]*ScenarioResponse, len(scenarios))
	for i, s := range scenarios {
		result[i] = ScenarioFromDomain(s)
	}
	return result
}

// ListScenariosResponse wraps a scenario page.
type ListScenariosResponse struct {
	Scenarios []*ScenarioResponse `json:"scenarios"`
	Total     int64               `json:"total"`
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID               string          `json:"id"`
	ScenarioID       string          `json:"scenario_id"`
	Name             string          `json:"name"`
	Kind             string          `json:"kind"`
	AnnualGrowthRate decimal.Decimal `json:"annual_growth_rate"`
	InitialBalance   decimal.Decimal `json:"initial_balance"`
	ActiveFrom       *string         `json:"active_from,omitempty"`
	ActiveUntil      *string         `json:"active_until,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:               a.ID,
		ScenarioID:       a.ScenarioID,
		Name:             a.Name,
		Kind:             string(a.Kind),
		AnnualGrowthRate: a.AnnualGrowthRate,
		InitialBalance:   a.InitialBalance,
		ActiveFrom:       formatOptionalYearMonth(a.ActiveFrom),
		ActiveUntil:      formatOptionalYearMonth(a.ActiveUntil),
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse wraps an account list.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID                 string           `json:"id"`
	ScenarioID         string           `json:"scenario_id"`
	AccountID          string           `json:"account_id"`
	Name               string           `json:"name"`
	Kind               string           `json:"kind"`
	Amount             decimal.Decimal  `json:"amount"`
	Start              string           `json:"start"`
	End                *string          `json:"end,omitempty"`
	Frequency          int              `json:"frequency"`
	AnnualGrowthRate   decimal.Decimal  `json:"annual_growth_rate"`
	Taxable            bool             `json:"taxable"`
	TaxableAmount      *decimal.Decimal `json:"taxable_amount,omitempty"`
	PairID             *string          `json:"pair_id,omitempty"`
	PairRole           string           `json:"pair_role,omitempty"`
	CounterAccountID   *string          `json:"counter_account_id,omitempty"`
	MortgageAccountID  *string          `json:"mortgage_account_id,omitempty"`
	AnnualInterestRate decimal.Decimal  `json:"annual_interest_rate"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:                 t.ID,
		ScenarioID:         t.ScenarioID,
		AccountID:          t.AccountID,
		Name:               t.Name,
		Kind:               string(t.Kind),
		Amount:             t.Amount,
		Start:              t.Start.String(),
		End:                formatOptionalYearMonth(t.End),
		Frequency:          t.Frequency,
		AnnualGrowthRate:   t.AnnualGrowthRate,
		Taxable:            t.Taxable,
		TaxableAmount:      t.TaxableAmount,
		PairID:             t.PairID,
		PairRole:           string(t.PairRole),
		CounterAccountID:   t.CounterAccountID,
		MortgageAccountID:  t.MortgageAccountID,
		AnnualInterestRate: t.AnnualInterestRate,
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(transactions []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(transactions))
	for i, t := range transactions {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// ListTransactionsResponse wraps a transaction list.
type ListTransactionsResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Total        int64                  `json:"total"`
}

// TaxProfileResponse represents a tax profile in API responses.
type TaxProfileResponse struct {
	ID              string             `json:"id"`
	Name            string             `json:"name"`
	IncomeBrackets  []TaxBracketDTO    `json:"income_brackets"`
	WealthBrackets  []TaxBracketDTO    `json:"wealth_brackets"`
	FederalRows     []FederalTaxRowDTO `json:"federal_rows"`
	MunicipalFactor decimal.Decimal    `json:"municipal_factor"`
	CantonalFactor  decimal.Decimal    `json:"cantonal_factor"`
	ChurchFactor    decimal.Decimal    `json:"church_factor"`
	PersonalTax     decimal.Decimal    `json:"personal_tax"`
	HouseholdSize   int                `json:"household_size"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// TaxProfileFromDomain converts a domain tax profile to a response.
func TaxProfileFromDomain(p *domain.TaxProfile) *TaxProfileResponse {
	return &TaxProfileResponse{
		ID:              p.ID,
		Name:            p.Name,
		IncomeBrackets:  bracketsFromDomain(p.IncomeBrackets),
		WealthBrackets:  bracketsFromDomain(p.WealthBrackets),
		FederalRows:     federalRowsFromDomain(p.FederalRows),
		MunicipalFactor: p.MunicipalFactor,
		CantonalFactor:  p.CantonalFactor,
		ChurchFactor:    p.ChurchFactor,
		PersonalTax:     p.PersonalTax,
		HouseholdSize:   p.HouseholdSize,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// TaxProfilesFromDomain converts domain tax profiles to responses.
func TaxProfilesFromDomain(profiles []*domain.TaxProfile) []*TaxProfileResponse {
	result := make([]*TaxProfileResponse, len(profiles))
	for i, p := range profiles {
		result[i] = TaxProfileFromDomain(p)
	}
	return result
}

// BalancePointResponse is one (date, value) sample.
type BalancePointResponse struct {
	Date  time.Time       `json:"date"`
	Value decimal.Decimal `json:"value"`
}

// CashFlowLineResponse is one detail line of a cash flow bucket.
type CashFlowLineResponse struct {
	Transaction string          `json:"transaction"`
	Account     string          `json:"account"`
	Amount      decimal.Decimal `json:"amount"`
}

// MonthlyCashFlowResponse buckets one month of flows.
type MonthlyCashFlowResponse struct {
	Date           time.Time              `json:"date"`
	Income         decimal.Decimal        `json:"income"`
	Expenses       decimal.Decimal        `json:"expenses"`
	Taxes          decimal.Decimal        `json:"taxes"`
	Net            decimal.Decimal        `json:"net"`
	IncomeDetails  []CashFlowLineResponse `json:"income_details,omitempty"`
	ExpenseDetails []CashFlowLineResponse `json:"expense_details,omitempty"`
}

// YearlyCashFlowResponse rolls a calendar year up.
type YearlyCashFlowResponse struct {
	Year     int                       `json:"year"`
	Income   decimal.Decimal           `json:"income"`
	Expenses decimal.Decimal           `json:"expenses"`
	Taxes    decimal.Decimal           `json:"taxes"`
	Net      decimal.Decimal           `json:"net"`
	Months   []MonthlyCashFlowResponse `json:"months"`
}

// YearlyTaxesResponse is one year of tax engine output.
type YearlyTaxesResponse struct {
	Year        int              `json:"year"`
	Net         decimal.Decimal  `json:"net"`
	Wealth      *decimal.Decimal `json:"wealth,omitempty"`
	IncomeTax   decimal.Decimal  `json:"income_tax"`
	WealthTax   decimal.Decimal  `json:"wealth_tax"`
	BaseTax     decimal.Decimal  `json:"base_tax"`
	PersonalTax decimal.Decimal  `json:"personal_tax"`
	LocalTax    decimal.Decimal  `json:"local_tax"`
	FederalTax  decimal.Decimal  `json:"federal_tax"`
	TotalAll    decimal.Decimal  `json:"total_all"`
}

// ProjectionResponse is the full simulation result.
type ProjectionResponse struct {
	AccountBalances map[string][]BalancePointResponse `json:"account_balances"`
	TotalWealth     []BalancePointResponse            `json:"total_wealth"`
	CashFlows       []MonthlyCashFlowResponse         `json:"cash_flows"`
	YearlyCashFlows []YearlyCashFlowResponse          `json:"yearly_cash_flows"`
	Taxes           []YearlyTaxesResponse             `json:"taxes"`
}

// ProjectionFromDomain converts a domain projection to a response.
func ProjectionFromDomain(p *domain.Projection) *ProjectionResponse {
	balances := make(map[string][]BalancePointResponse, len(p.AccountBalances))
	for name, points := range p.AccountBalances {
		balances[name] = balancePointsFromDomain(points)
	}

	cashFlows := make([]MonthlyCashFlowResponse, len(p.CashFlows))
	for i, cf := range p.CashFlows {
		cashFlows[i] = monthlyCashFlowFromDomain(cf)
	}

	yearly := make([]YearlyCashFlowResponse, len(p.YearlyCashFlows))
	for i, y := range p.YearlyCashFlows {
		months := make([]MonthlyCashFlowResponse, len(y.Months))
		for j, m := range y.Months {
			months[j] = monthlyCashFlowFromDomain(m)
		}
		yearly[i] = YearlyCashFlowResponse{
			Year:     y.Year,
			Income:   y.Income,
			Expenses: y.Expenses,
			Taxes:    y.Taxes,
			Net:      y.Net,
			Months:   months,
		}
	}

	taxes := make([]YearlyTaxesResponse, len(p.Taxes))
	for i, t := range p.Taxes {
		taxes[i] = YearlyTaxesResponse{
			Year:        t.Year,
			Net:         t.Net,
			Wealth:      t.Wealth,
			IncomeTax:   t.IncomeTax,
			WealthTax:   t.WealthTax,
			BaseTax:     t.BaseTax,
			PersonalTax: t.PersonalTax,
			LocalTax:    t.LocalTax,
			FederalTax:  t.FederalTax,
			TotalAll:    t.TotalAll,
		}
	}

	return &ProjectionResponse{
		AccountBalances: balances,
		TotalWealth:     balancePointsFromDomain(p.TotalWealth),
		CashFlows:       cashFlows,
		YearlyCashFlows: yearly,
		Taxes:           taxes,
	}
}

func balancePointsFromDomain(points []domain.BalancePoint) []BalancePointResponse {
	result := make([]BalancePointResponse, len(points))
	for i, p := range points {
		result[i] = BalancePointResponse{Date: p.Date, Value: p.Value}
	}
	return result
}

func monthlyCashFlowFromDomain(cf domain.MonthlyCashFlow) MonthlyCashFlowResponse {
	income := make([]CashFlowLineResponse, len(cf.IncomeDetails))
	for i, l := range cf.IncomeDetails {
		income[i] = CashFlowLineResponse{Transaction: l.Transaction, Account: l.Account, Amount: l.Amount}
	}
	expenses := make([]CashFlowLineResponse, len(cf.ExpenseDetails))
	for i, l := range cf.ExpenseDetails {
		expenses[i] = CashFlowLineResponse{Transaction: l.Transaction, Account: l.Account, Amount: l.Amount}
	}

	return MonthlyCashFlowResponse{
		Date:           cf.Date,
		Income:         cf.Income,
		Expenses:       cf.Expenses,
		Taxes:          cf.Taxes,
		Net:            cf.Net,
		IncomeDetails:  income,
		ExpenseDetails: expenses,
	}
}

func bracketsFromDomain(brackets []domain.TaxBracket) []TaxBracketDTO {
	out := make([]TaxBracketDTO, len(brackets))
	for i, b := range brackets {
		out[i] = TaxBracketDTO{Cap: b.Cap, Rate: b.Rate}
	}
	return out
}

func federalRowsFromDomain(rows []domain.FederalTaxRow) []FederalTaxRowDTO {
	out := make([]FederalTaxRowDTO, len(rows))
	for i, r := range rows {
		out[i] = FederalTaxRowDTO{Income: r.Income, Base: r.Base, Per100: r.Per100}
	}
	return out
}

func formatOptionalYearMonth(ym *domain.YearMonth) *string {
	if ym == nil {
		return nil
	}
	s := ym.String()
	return &s
}
