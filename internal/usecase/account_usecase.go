package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finsim/internal/domain"
)

// AccountUseCase implements account CRUD within a scenario.
type AccountUseCase struct {
	scenarioRepo    ScenarioRepository
	accountRepo     AccountRepository
	transactionRepo TransactionRepository
	txManager       TransactionManager
	idGen           IDGenerator
	invalidator     SimulationInvalidator
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(
	scenarioRepo ScenarioRepository,
	accountRepo AccountRepository,
	transactionRepo TransactionRepository,
	txManager TransactionManager,
	idGen IDGenerator,
	invalidator SimulationInvalidator,
) *AccountUseCase {
	return &AccountUseCase{
		scenarioRepo:    scenarioRepo,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		txManager:       txManager,
		idGen:           idGen,
		invalidator:     invalidator,
	}
}

// CreateAccountInput carries the fields of a new account.
type CreateAccountInput struct {
	Name             string
	Kind             domain.AccountKind
	AnnualGrowthRate decimal.Decimal
	InitialBalance   decimal.Decimal
	ActiveFrom       *domain.YearMonth
	ActiveUntil      *domain.YearMonth
}

// Create validates and persists a new account inside the scenario.
func (uc *AccountUseCase) Create(ctx context.Context, userID, scenarioID string, input CreateAccountInput) (*domain.Account, error) {
	if err := uc.checkOwnership(ctx, userID, scenarioID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:               uc.idGen.Generate(),
		ScenarioID:       scenarioID,
		Name:             input.Name,
		Kind:             input.Kind,
		AnnualGrowthRate: input.AnnualGrowthRate,
		InitialBalance:   input.InitialBalance,
		ActiveFrom:       input.ActiveFrom,
		ActiveUntil:      input.ActiveUntil,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := domain.ValidateAccount(account); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	uc.invalidate(ctx, userID, scenarioID)

	return account, nil
}

// Get returns one account of a scenario owned by the user.
func (uc *AccountUseCase) Get(ctx context.Context, userID, scenarioID, id string) (*domain.Account, error) {
	if err := uc.checkOwnership(ctx, userID, scenarioID); err != nil {
		return nil, err
	}

	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if account.ScenarioID != scenarioID {
		return nil, domain.ErrAccountNotFound
	}
	return account, nil
}

// List returns every account of the scenario.
func (uc *AccountUseCase) List(ctx context.Context, userID, scenarioID string) ([]*domain.Account, error) {
	if err := uc.checkOwnership(ctx, userID, scenarioID); err != nil {
		return nil, err
	}
	return uc.accountRepo.ListByScenario(ctx, scenarioID)
}

// Update replaces the mutable fields of an account.
func (uc *AccountUseCase) Update(ctx context.Context, userID, scenarioID, id string, input CreateAccountInput) (*domain.Account, error) {
	account, err := uc.Get(ctx, userID, scenarioID, id)
	if err != nil {
		return nil, err
	}

	account.Name = input.Name
	account.Kind = input.Kind
	account.AnnualGrowthRate = input.AnnualGrowthRate
	account.InitialBalance = input.InitialBalance
	account.ActiveFrom = input.ActiveFrom
	account.ActiveUntil = input.ActiveUntil
	account.UpdatedAt = time.Now().UTC()

	if err := domain.ValidateAccount(account); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}

	uc.invalidate(ctx, userID, scenarioID)

	return account, nil
}

// Delete removes the account together with every transaction touching
// it, in one database transaction. Pair partners and mortgage interest
// charges referencing the account go with it so no dangling leg
// survives.
func (uc *AccountUseCase) Delete(ctx context.Context, userID, scenarioID, id string) error {
	if _, err := uc.Get(ctx, userID, scenarioID, id); err != nil {
		return err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := uc.transactionRepo.DeleteByAccount(ctx, tx, id); err != nil {
		return err
	}
	if err := uc.accountRepo.Delete(ctx, tx, id); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	uc.invalidate(ctx, userID, scenarioID)

	return nil
}

func (uc *AccountUseCase) checkOwnership(ctx context.Context, userID, scenarioID string) error {
	scenario, err := uc.scenarioRepo.GetByID(ctx, scenarioID)
	if err != nil {
		return err
	}
	if scenario.UserID != userID {
		return domain.ErrScenarioNotFound
	}
	return nil
}

func (uc *AccountUseCase) invalidate(ctx context.Context, userID, scenarioID string) {
	if uc.invalidator == nil {
		return
	}
	_ = uc.invalidator.Invalidate(ctx, userID, scenarioID)
}
