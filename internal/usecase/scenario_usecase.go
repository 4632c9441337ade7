package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finsim/internal/domain"
)

// ScenarioUseCase implements scenario CRUD.
type ScenarioUseCase struct {
	scenarioRepo   ScenarioRepository
	taxProfileRepo TaxProfileRepository
	idGen          IDGenerator
	invalidator    SimulationInvalidator
}

// NewScenarioUseCase creates a new ScenarioUseCase.
func NewScenarioUseCase(
	scenarioRepo ScenarioRepository,
	taxProfileRepo TaxProfileRepository,
	idGen IDGenerator,
	invalidator SimulationInvalidator,
) *ScenarioUseCase {
	return &ScenarioUseCase{
		scenarioRepo:   scenarioRepo,
		taxProfileRepo: taxProfileRepo,
		idGen:          idGen,
		invalidator:    invalidator,
	}
}

// CreateScenarioInput carries the fields of a new scenario.
type CreateScenarioInput struct {
	UserID        string
	Name          string
	Start         domain.YearMonth
	End           domain.YearMonth
	InflationRate decimal.Decimal
	TaxProfileID  *string
}

// Create validates and persists a new scenario.
func (uc *ScenarioUseCase) Create(ctx context.Context, input CreateScenarioInput) (*domain.Scenario, error) {
	now := time.Now().UTC()
	scenario := &domain.Scenario{
		ID:            uc.idGen.Generate(),
		UserID:        input.UserID,
		Name:          input.Name,
		Start:         input.Start,
		End:           input.End,
		InflationRate: input.InflationRate,
		TaxProfileID:  input.TaxProfileID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := domain.ValidateScenario(scenario); err != nil {
		return nil, err
	}

	if scenario.TaxProfileID != nil {
		if _, err := uc.taxProfileRepo.GetByID(ctx, *scenario.TaxProfileID); err != nil {
			return nil, err
		}
	}

	if err := uc.scenarioRepo.Create(ctx, scenario); err != nil {
		return nil, err
	}

	return scenario, nil
}

// Get returns a scenario owned by the given user.
func (uc *ScenarioUseCase) Get(ctx context.Context, userID, id string) (*domain.Scenario, error) {
	scenario, err := uc.scenarioRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if scenario.UserID != userID {
		return nil, domain.ErrScenarioNotFound
	}
	return scenario, nil
}

// List returns the user's scenarios with pagination.
func (uc *ScenarioUseCase) List(ctx context.Context, userID string, limit, offset int) ([]*domain.Scenario, error) {
	limit = clampLimit(limit)
	if offset < 0 {
		offset = 0
	}
	return uc.scenarioRepo.ListByUser(ctx, userID, limit, offset)
}

// UpdateScenarioInput carries the updatable fields of a scenario.
type UpdateScenarioInput struct {
	Name          string
	Start         domain.YearMonth
	End           domain.YearMonth
	InflationRate decimal.Decimal
	TaxProfileID  *string
}

// Update replaces the mutable fields of a scenario and drops its
// memoized projection.
func (uc *ScenarioUseCase) Update(ctx context.Context, userID, id string, input UpdateScenarioInput) (*domain.Scenario, error) {
	scenario, err := uc.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	scenario.Name = input.Name
	scenario.Start = input.Start
	scenario.End = input.End
	scenario.InflationRate = input.InflationRate
	scenario.TaxProfileID = input.TaxProfileID
	scenario.UpdatedAt = time.Now().UTC()

	if err := domain.ValidateScenario(scenario); err != nil {
		return nil, err
	}

	if scenario.TaxProfileID != nil {
		if _, err := uc.taxProfileRepo.GetByID(ctx, *scenario.TaxProfileID); err != nil {
			return nil, err
		}
	}

	if err := uc.scenarioRepo.Update(ctx, scenario); err != nil {
		return nil, err
	}

	uc.invalidate(ctx, userID, id)

	return scenario, nil
}

// Delete removes a scenario. Accounts and transactions cascade at the
// storage layer.
func (uc *ScenarioUseCase) Delete(ctx context.Context, userID, id string) error {
	if _, err := uc.Get(ctx, userID, id); err != nil {
		return err
	}

	if err := uc.scenarioRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.invalidate(ctx, userID, id)

	return nil
}

func (uc *ScenarioUseCase) invalidate(ctx context.Context, userID, scenarioID string) {
	if uc.invalidator == nil {
		return
	}
	// Invalidation failure is not fatal: the TTL bounds staleness.
	_ = uc.invalidator.Invalidate(ctx, userID, scenarioID)
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	default:
		return limit
	}
}
