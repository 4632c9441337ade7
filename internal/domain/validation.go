package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors
var (
	ErrInvalidScenarioName = errors.New("invalid scenario name")
	ErrInvalidAccountName  = errors.New("invalid account name")
	ErrInvalidName         = errors.New("invalid transaction name")
)

// Validation constants
const (
	MaxNameLength = 255
	MinNameLength = 1
)

func validateName(name string, sentinel error) error {
	name = strings.TrimSpace(name)

	if len(name) < MinNameLength {
		return fmt.Errorf("%w: name cannot be empty", sentinel)
	}

	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", sentinel, MaxNameLength)
	}

	return nil
}

// ValidateScenario checks a scenario before it is persisted.
func ValidateScenario(s *Scenario) error {
	if err := validateName(s.Name, ErrInvalidScenarioName); err != nil {
		return err
	}
	return s.Validate()
}

// ValidateAccount checks an account before it is persisted.
func ValidateAccount(a *Account) error {
	if err := validateName(a.Name, ErrInvalidAccountName); err != nil {
		return err
	}
	if !ValidAccountKind(a.Kind) {
		return fmt.Errorf("%w: %q", ErrInvalidAccountKind, a.Kind)
	}
	if a.ActiveFrom != nil && a.ActiveUntil != nil && a.ActiveFrom.After(*a.ActiveUntil) {
		return ErrInvalidHorizon
	}
	return nil
}

// ValidateTransaction checks a transaction structurally before it is
// persisted. Structural failures are rejected here, at the repository
// boundary, never discovered mid-simulation. accountsByID holds the
// scenario's accounts for cross-entity checks.
func ValidateTransaction(t *Transaction, accountsByID map[string]*Account) error {
	if err := validateName(t.Name, ErrInvalidName); err != nil {
		return err
	}
	if !ValidTransactionKind(t.Kind) {
		return fmt.Errorf("%w: %q", ErrInvalidTransactionKind, t.Kind)
	}
	if t.Start.IsZero() {
		return ErrInvalidHorizon
	}
	if t.End != nil && t.End.Before(t.Start) {
		return ErrInvalidHorizon
	}
	if _, ok := accountsByID[t.AccountID]; !ok {
		return ErrAccountNotFound
	}

	if t.Kind != TransactionKindOneTime && t.Frequency <= 0 {
		return ErrInvalidFrequency
	}

	if t.Kind == TransactionKindMortgageInterest {
		if t.MortgageAccountID == nil {
			return ErrMissingMortgageReference
		}
		mortgage, ok := accountsByID[*t.MortgageAccountID]
		if !ok {
			return ErrAccountNotFound
		}
		if mortgage.Kind != AccountKindMortgage {
			return ErrNotMortgageAccount
		}
	}

	if t.CounterAccountID == nil {
		if t.PairID != nil || t.PairRole != PairRoleNone {
			return ErrMissingCounterAccount
		}
	} else {
		if *t.CounterAccountID == t.AccountID {
			return ErrSameAccount
		}
		if _, ok := accountsByID[*t.CounterAccountID]; !ok {
			return ErrAccountNotFound
		}
	}

	return nil
}
