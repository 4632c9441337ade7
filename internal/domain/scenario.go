package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Scenario is a user-defined financial plan with a fixed monthly horizon.
type Scenario struct {
	ID            string
	UserID        string
	Name          string
	Start         YearMonth
	End           YearMonth
	InflationRate decimal.Decimal
	TaxProfileID  *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate checks the scenario horizon. Both endpoints are inclusive.
func (s *Scenario) Validate() error {
	if s.Start.IsZero() || s.End.IsZero() {
		return ErrInvalidHorizon
	}
	if s.Start.After(s.End) {
		return ErrInvalidHorizon
	}
	return nil
}

// HorizonMonths returns the number of months in the horizon, endpoints
// inclusive.
func (s *Scenario) HorizonMonths() int {
	return s.End.MonthsSince(s.Start) + 1
}
