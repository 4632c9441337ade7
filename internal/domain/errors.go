package domain

import "errors"

var (
	// Scenario errors
	ErrScenarioNotFound = errors.New("scenario not found")
	ErrInvalidHorizon   = errors.New("scenario horizon is invalid")

	// Account errors
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidAccountKind = errors.New("unknown account kind")

	// Transaction errors
	ErrTransactionNotFound      = errors.New("transaction not found")
	ErrInvalidTransactionKind   = errors.New("unknown transaction kind")
	ErrInvalidFrequency         = errors.New("frequency must be positive")
	ErrMissingMortgageReference = errors.New("mortgage_interest transaction requires a mortgage account reference")
	ErrNotMortgageAccount       = errors.New("referenced account is not a mortgage account")
	ErrMissingCounterAccount    = errors.New("pair leg requires a counter account")
	ErrSameAccount              = errors.New("counter account must differ from the transaction account")
	ErrPairLegImmutable         = errors.New("pair legs cannot be updated, delete and recreate the pair")

	// Tax errors
	ErrTaxProfileNotFound  = errors.New("tax profile not found")
	ErrInvalidBrackets     = errors.New("bracket list must have positive widths, non-decreasing rates and one unbounded terminal bracket")
	ErrInvalidFederalTable = errors.New("federal table rows must ascend by income")
	ErrInvalidTaxProfile   = errors.New("tax profile is invalid")

	// Stress errors
	ErrUnknownAssetClass = errors.New("unknown stress asset class")

	// Auth errors
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)
