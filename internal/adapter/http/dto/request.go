package dto

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iho/finsim/internal/domain"
	"github.com/iho/finsim/internal/usecase"
)

// Months travel as "2006-01" strings on the wire.

// CreateScenarioRequest represents a request to create a scenario.
type CreateScenarioRequest struct {
	Name          string          `json:"name"`
	Start         string          `json:"start"`
	End           string          `json:"end"`
	InflationRate decimal.Decimal `json:"inflation_rate"`
	TaxProfileID  *string         `json:"tax_profile_id,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateScenarioRequest) ToUseCaseInput(userID string) (usecase.CreateScenarioInput, error) {
	start, err := domain.ParseYearMonth(r.Start)
	if err != nil {
		return usecase.CreateScenarioInput{}, err
	}
	end, err := domain.ParseYearMonth(r.End)
	if err != nil {
		return usecase.CreateScenarioInput{}, err
	}

	return usecase.CreateScenarioInput{
		UserID:        userID,
		Name:          r.Name,
		Start:         start,
		End:           end,
		InflationRate: r.InflationRate,
		TaxProfileID:  r.TaxProfileID,
	}, nil
}

// UpdateScenarioRequest represents a request to update a scenario.
type UpdateScenarioRequest struct {
	Name          string          `json:"name"`
	Start         string          `json:"start"`
	End           string          `json:"end"`
	InflationRate decimal.Decimal `json:"inflation_rate"`
	TaxProfileID  *string         `json:"tax_profile_id,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateScenarioRequest) ToUseCaseInput() (usecase.UpdateScenarioInput, error) {
	start, err := domain.ParseYearMonth(r.Start)
	if err != nil {
		return usecase.UpdateScenarioInput{}, err
	}
	end, err := domain.ParseYearMonth(r.End)
	if err != nil {
		return usecase.UpdateScenarioInput{}, err
	}

	return usecase.UpdateScenarioInput{
		Name:          r.Name,
		Start:         start,
		End:           end,
		InflationRate: r.InflationRate,
		TaxProfileID:  r.TaxProfileID,
	}, nil
}

// CreateAccountRequest represents a request to create or update an
// account.
type CreateAccountRequest struct {
	Name             string          `json:"name"`
	Kind             string          `json:"kind"`
	AnnualGrowthRate decimal.Decimal `json:"annual_growth_rate"`
	InitialBalance   decimal.Decimal `json:"initial_balance"`
	ActiveFrom       *string         `json:"active_from,omitempty"`
	ActiveUntil      *string         `json:"active_until,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() (usecase.CreateAccountInput, error) {
	activeFrom, err := parseOptionalYearMonth(r.ActiveFrom)
	if err != nil {
		return usecase.CreateAccountInput{}, err
	}
	activeUntil, err := parseOptionalYearMonth(r.ActiveUntil)
	if err != nil {
		return usecase.CreateAccountInput{}, err
	}

	return usecase.CreateAccountInput{
		Name:             r.Name,
		Kind:             domain.AccountKind(r.Kind),
		AnnualGrowthRate: r.AnnualGrowthRate,
		InitialBalance:   r.InitialBalance,
		ActiveFrom:       activeFrom,
		ActiveUntil:      activeUntil,
	}, nil
}

// CreateTransactionRequest represents a request to create a
// transaction. Setting counter_account_id makes the engine store a
// mirrored second leg on that account.
type CreateTransactionRequest struct {
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
	CounterAccountID   *string          `json:"counter_account_id,omitempty"`
	MortgageAccountID  *string          `json:"mortgage_account_id,omitempty"`
	AnnualInterestRate decimal.Decimal  `json:"annual_interest_rate"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransactionRequest) ToUseCaseInput() (usecase.CreateTransactionInput, error) {
	start, err := domain.ParseYearMonth(r.Start)
	if err != nil {
		return usecase.CreateTransactionInput{}, err
	}
	end, err := parseOptionalYearMonth(r.End)
	if err != nil {
		return usecase.CreateTransactionInput{}, err
	}

	return usecase.CreateTransactionInput{
		AccountID:          r.AccountID,
		Name:               r.Name,
		Kind:               domain.TransactionKind(r.Kind),
		Amount:             r.Amount,
		Start:              start,
		End:                end,
		Frequency:          r.Frequency,
		AnnualGrowthRate:   r.AnnualGrowthRate,
		Taxable:            r.Taxable,
		TaxableAmount:      r.TaxableAmount,
		CounterAccountID:   r.CounterAccountID,
		MortgageAccountID:  r.MortgageAccountID,
		AnnualInterestRate: r.AnnualInterestRate,
	}, nil
}

// UpdateTransactionRequest represents a request to update a single
// transaction. Pair legs cannot be updated through this request.
type UpdateTransactionRequest struct {
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
	MortgageAccountID  *string          `json:"mortgage_account_id,omitempty"`
	AnnualInterestRate decimal.Decimal  `json:"annual_interest_rate"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateTransactionRequest) ToUseCaseInput() (usecase.UpdateTransactionInput, error) {
	start, err := domain.ParseYearMonth(r.Start)
	if err != nil {
		return usecase.UpdateTransactionInput{}, err
	}
	end, err := parseOptionalYearMonth(r.End)
	if err != nil {
		return usecase.UpdateTransactionInput{}, err
	}

	return usecase.UpdateTransactionInput{
		AccountID:          r.AccountID,
		Name:               r.Name,
		Kind:               domain.TransactionKind(r.Kind),
		Amount:             r.Amount,
		Start:              start,
		End:                end,
		Frequency:          r.Frequency,
		AnnualGrowthRate:   r.AnnualGrowthRate,
		Taxable:            r.Taxable,
		TaxableAmount:      r.TaxableAmount,
		MortgageAccountID:  r.MortgageAccountID,
		AnnualInterestRate: r.AnnualInterestRate,
	}, nil
}

// ShockRequest represents one stress overlay.
type ShockRequest struct {
	AssetClass  string          `json:"asset_class"`
	DeltaPct    decimal.Decimal `json:"delta_pct"`
	WindowStart *string         `json:"window_start,omitempty"`
	WindowEnd   *string         `json:"window_end,omitempty"`
}

// StressRequest represents a request to run a stressed projection.
type StressRequest struct {
	Shocks []ShockRequest `json:"shocks"`
}

// ToDomain converts the shock list, validating window formats.
func (r *StressRequest) ToDomain() ([]domain.Shock, error) {
	shocks := make([]domain.Shock, 0, len(r.Shocks))
	for i, s := range r.Shocks {
		windowStart, err := parseOptionalYearMonth(s.WindowStart)
		if err != nil {
			return nil, fmt.Errorf("shock %d: %w", i, err)
		}
		windowEnd, err := parseOptionalYearMonth(s.WindowEnd)
		if err != nil {
			return nil, fmt.Errorf("shock %d: %w", i, err)
		}

		shocks = append(shocks, domain.Shock{
			AssetClass:  domain.AssetClass(s.AssetClass),
			DeltaPct:    s.DeltaPct,
			WindowStart: windowStart,
			WindowEnd:   windowEnd,
		})
	}
	return shocks, nil
}

// CreateTaxProfileRequest represents a request to create a tax profile.
type CreateTaxProfileRequest struct {
	Name            string             `json:"name"`
	IncomeBrackets  []TaxBracketDTO    `json:"income_brackets"`
	WealthBrackets  []TaxBracketDTO    `json:"wealth_brackets"`
	FederalRows     []FederalTaxRowDTO `json:"federal_rows"`
	MunicipalFactor decimal.Decimal    `json:"municipal_factor"`
	CantonalFactor  decimal.Decimal    `json:"cantonal_factor"`
	ChurchFactor    decimal.Decimal    `json:"church_factor"`
	PersonalTax     decimal.Decimal    `json:"personal_tax"`
	HouseholdSize   int                `json:"household_size"`
}

// TaxBracketDTO is one tranche of a progressive schedule. A null cap
// marks the unbounded terminal bracket.
type TaxBracketDTO struct {
	Cap  *decimal.Decimal `json:"cap"`
	Rate decimal.Decimal  `json:"rate"`
}

// FederalTaxRowDTO is one sampled row of the federal table.
type FederalTaxRowDTO struct {
	Income decimal.Decimal `json:"income"`
	Base   decimal.Decimal `json:"base"`
	Per100 decimal.Decimal `json:"per_100"`
}

// ToDomain converts to a domain tax profile.
func (r *CreateTaxProfileRequest) ToDomain() *domain.TaxProfile {
	return &domain.TaxProfile{
		Name:            r.Name,
		IncomeBrackets:  bracketsToDomain(r.IncomeBrackets),
		WealthBrackets:  bracketsToDomain(r.WealthBrackets),
		FederalRows:     federalRowsToDomain(r.FederalRows),
		MunicipalFactor: r.MunicipalFactor,
		CantonalFactor:  r.CantonalFactor,
		ChurchFactor:    r.ChurchFactor,
		PersonalTax:     r.PersonalTax,
		HouseholdSize:   r.HouseholdSize,
	}
}

func bracketsToDomain(brackets []TaxBracketDTO) []domain.TaxBracket {
	out := make([]domain.TaxBracket, len(brackets))
	for i, b := range brackets {
		out[i] = domain.TaxBracket{Cap: b.Cap, Rate: b.Rate}
	}
	return out
}

func federalRowsToDomain(rows []FederalTaxRowDTO) []domain.FederalTaxRow {
	out := make([]domain.FederalTaxRow, len(rows))
	for i, r := range rows {
		out[i] = domain.FederalTaxRow{Income: r.Income, Base: r.Base, Per100: r.Per100}
	}
	return out
}

func parseOptionalYearMonth(s *string) (*domain.YearMonth, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	ym, err := domain.ParseYearMonth(*s)
	if err != nil {
		return nil, err
	}
	return &ym, nil
}
