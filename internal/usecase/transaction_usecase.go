package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finsim/internal/domain"
)

// TransactionUseCase implements transaction CRUD, including the
// double-entry expansion of transfers into two mirrored legs.
type TransactionUseCase struct {
	scenarioRepo    ScenarioRepository
	accountRepo     AccountRepository
	transactionRepo TransactionRepository
	txManager       TransactionManager
	idGen           IDGenerator
	invalidator     SimulationInvalidator
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(
	scenarioRepo ScenarioRepository,
	accountRepo AccountRepository,
	transactionRepo TransactionRepository,
	txManager TransactionManager,
	idGen IDGenerator,
	invalidator SimulationInvalidator,
) *TransactionUseCase {
	return &TransactionUseCase{
		scenarioRepo:    scenarioRepo,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		txManager:       txManager,
		idGen:           idGen,
		invalidator:     invalidator,
	}
}

// CreateTransactionInput carries the fields of a new transaction.
type CreateTransactionInput struct {
	AccountID          string
	Name               string
	Kind               domain.TransactionKind
	Amount             decimal.Decimal
	Start              domain.YearMonth
	End                *domain.YearMonth
	Frequency          int
	AnnualGrowthRate   decimal.Decimal
	Taxable            bool
	TaxableAmount      *decimal.Decimal
	CounterAccountID   *string
	MortgageAccountID  *string
	AnnualInterestRate decimal.Decimal
}

// Create persists a new transaction. When a counter account is given
// the entry is written as two legs sharing a pair ID: the primary leg
// keeps the input amount and the counter leg carries its negation, so
// the transfer nets to zero across the scenario.
func (uc *TransactionUseCase) Create(ctx context.Context, userID, scenarioID string, input CreateTransactionInput) (*domain.Transaction, error) {
	if err := uc.checkOwnership(ctx, userID, scenarioID); err != nil {
		return nil, err
	}

	accounts, err := uc.accountsByID(ctx, scenarioID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	primary := &domain.Transaction{
		ID:                 uc.idGen.Generate(),
		ScenarioID:         scenarioID,
		AccountID:          input.AccountID,
		Name:               input.Name,
		Kind:               input.Kind,
		Amount:             input.Amount,
		Start:              input.Start,
		End:                input.End,
		Frequency:          input.Frequency,
		AnnualGrowthRate:   input.AnnualGrowthRate,
		Taxable:            input.Taxable,
		TaxableAmount:      input.TaxableAmount,
		CounterAccountID:   input.CounterAccountID,
		MortgageAccountID:  input.MortgageAccountID,
		AnnualInterestRate: input.AnnualInterestRate,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := domain.ValidateTransaction(primary, accounts); err != nil {
		return nil, err
	}

	if input.CounterAccountID == nil {
		if err := uc.transactionRepo.Create(ctx, primary); err != nil {
			return nil, err
		}
		uc.invalidate(ctx, userID, scenarioID)
		return primary, nil
	}

	counter := uc.pairLegs(primary, *input.CounterAccountID)

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := uc.transactionRepo.CreateTx(ctx, tx, primary); err != nil {
		return nil, err
	}
	if err := uc.transactionRepo.CreateTx(ctx, tx, counter); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	uc.invalidate(ctx, userID, scenarioID)

	return primary, nil
}

// pairLegs stamps a shared pair ID onto the primary leg and builds its
// mirrored counter leg. Roles follow the money: the account losing the
// amount is the credit side, the one receiving it the debit side.
func (uc *TransactionUseCase) pairLegs(primary *domain.Transaction, counterAccountID string) *domain.Transaction {
	pairID := uc.idGen.Generate()
	primary.PairID = &pairID
	if primary.Amount.IsNegative() {
		primary.PairRole = domain.PairRoleCredit
	} else {
		primary.PairRole = domain.PairRoleDebit
	}

	counter := *primary
	counter.ID = uc.idGen.Generate()
	counter.AccountID = counterAccountID
	counter.Amount = primary.Amount.Neg()
	counterOf := primary.AccountID
	counter.CounterAccountID = &counterOf
	if counter.Amount.IsNegative() {
		counter.PairRole = domain.PairRoleCredit
	} else {
		counter.PairRole = domain.PairRoleDebit
	}
	// Only one leg carries the taxable flag, otherwise a transfer
	// would count as income twice.
	counter.Taxable = false
	counter.TaxableAmount = nil

	return &counter
}

// Get returns one transaction of a scenario owned by the user.
func (uc *TransactionUseCase) Get(ctx context.Context, userID, scenarioID, id string) (*domain.Transaction, error) {
	if err := uc.checkOwnership(ctx, userID, scenarioID); err != nil {
		return nil, err
	}

	transaction, err := uc.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if transaction.ScenarioID != scenarioID {
		return nil, domain.ErrTransactionNotFound
	}
	return transaction, nil
}

// List returns every transaction of the scenario, pair legs included.
func (uc *TransactionUseCase) List(ctx context.Context, userID, scenarioID string) ([]*domain.Transaction, error) {
	if err := uc.checkOwnership(ctx, userID, scenarioID); err != nil {
		return nil, err
	}
	return uc.transactionRepo.ListByScenario(ctx, scenarioID)
}

// UpdateTransactionInput carries the replaceable fields of a single
// transaction.
type UpdateTransactionInput struct {
	AccountID          string
	Name               string
	Kind               domain.TransactionKind
	Amount             decimal.Decimal
	Start              domain.YearMonth
	End                *domain.YearMonth
	Frequency          int
	AnnualGrowthRate   decimal.Decimal
	Taxable            bool
	TaxableAmount      *decimal.Decimal
	MortgageAccountID  *string
	AnnualInterestRate decimal.Decimal
}

// Update replaces a transaction's fields after re-running structural
// validation. Pair legs are immutable; changing a transfer means
// deleting the pair and creating it again, which keeps both legs
// mirrored by construction.
func (uc *TransactionUseCase) Update(ctx context.Context, userID, scenarioID, id string, input UpdateTransactionInput) (*domain.Transaction, error) {
	existing, err := uc.Get(ctx, userID, scenarioID, id)
	if err != nil {
		return nil, err
	}
	if existing.PairID != nil {
		return nil, domain.ErrPairLegImmutable
	}

	accounts, err := uc.accountsByID(ctx, scenarioID)
	if err != nil {
		return nil, err
	}

	updated := &domain.Transaction{
		ID:                 existing.ID,
		ScenarioID:         existing.ScenarioID,
		AccountID:          input.AccountID,
		Name:               input.Name,
		Kind:               input.Kind,
		Amount:             input.Amount,
		Start:              input.Start,
		End:                input.End,
		Frequency:          input.Frequency,
		AnnualGrowthRate:   input.AnnualGrowthRate,
		Taxable:            input.Taxable,
		TaxableAmount:      input.TaxableAmount,
		MortgageAccountID:  input.MortgageAccountID,
		AnnualInterestRate: input.AnnualInterestRate,
		CreatedAt:          existing.CreatedAt,
		UpdatedAt:          time.Now().UTC(),
	}

	if err := domain.ValidateTransaction(updated, accounts); err != nil {
		return nil, err
	}

	if err := uc.transactionRepo.Update(ctx, updated); err != nil {
		return nil, err
	}

	uc.invalidate(ctx, userID, scenarioID)

	return updated, nil
}

// Delete removes a transaction. For a pair leg both legs go, inside
// one database transaction.
func (uc *TransactionUseCase) Delete(ctx context.Context, userID, scenarioID, id string) error {
	transaction, err := uc.Get(ctx, userID, scenarioID, id)
	if err != nil {
		return err
	}

	if transaction.PairID == nil {
		if err := uc.transactionRepo.Delete(ctx, id); err != nil {
			return err
		}
		uc.invalidate(ctx, userID, scenarioID)
		return nil
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := uc.transactionRepo.DeleteByPair(ctx, tx, *transaction.PairID); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	uc.invalidate(ctx, userID, scenarioID)

	return nil
}

func (uc *TransactionUseCase) accountsByID(ctx context.Context, scenarioID string) (map[string]*domain.Account, error) {
	accounts, err := uc.accountRepo.ListByScenario(ctx, scenarioID)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*domain.Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}
	return byID, nil
}

func (uc *TransactionUseCase) checkOwnership(ctx context.Context, userID, scenarioID string) error {
	scenario, err := uc.scenarioRepo.GetByID(ctx, scenarioID)
	if err != nil {
		return err
	}
	if scenario.UserID != userID {
		return domain.ErrScenarioNotFound
	}
	return nil
}

func (uc *TransactionUseCase) invalidate(ctx context.Context, userID, scenarioID string) {
	if uc.invalidator == nil {
		return
	}
	_ = uc.invalidator.Invalidate(ctx, userID, scenarioID)
}
