package usecase

import (
	"context"
	"time"

	"github.com/iho/finsim/internal/domain"
)

// ScenarioRepository defines data access for scenarios.
type ScenarioRepository interface {
	Create(ctx context.Context, scenario *domain.Scenario) error
	GetByID(ctx context.Context, id string) (*domain.Scenario, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Scenario, error)
	Update(ctx context.Context, scenario *domain.Scenario) error
	Delete(ctx context.Context, id string) error
}

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	ListByScenario(ctx context.Context, scenarioID string) ([]*domain.Account, error)
	Update(ctx context.Context, account *domain.Account) error
	Delete(ctx context.Context, tx Tx, id string) error
}

// TransactionRepository defines data access for scenario transactions.
type TransactionRepository interface {
	Create(ctx context.Context, transaction *domain.Transaction) error
	CreateTx(ctx context.Context, tx Tx, transaction *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	ListByScenario(ctx context.Context, scenarioID string) ([]*domain.Transaction, error)
	Update(ctx context.Context, transaction *domain.Transaction) error
	Delete(ctx context.Context, id string) error
	// DeleteByPair removes both legs of a double-entry pair.
	DeleteByPair(ctx context.Context, tx Tx, pairID string) error
	// DeleteByAccount removes every transaction touching the account:
	// its own, pair legs on the counter side, and mortgage_interest
	// transactions referencing it.
	DeleteByAccount(ctx context.Context, tx Tx, accountID string) error
}

// TaxProfileRepository defines data access for tax profiles.
type TaxProfileRepository interface {
	Create(ctx context.Context, profile *domain.TaxProfile) error
	GetByID(ctx context.Context, id string) (*domain.TaxProfile, error)
	List(ctx context.Context, limit, offset int) ([]*domain.TaxProfile, error)
}

// Tx represents a database transaction.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles database transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Tx, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations for computed projections.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Retrier retries an operation on transient failures. Only the
// snapshot-fetch step retries; the projection math never does.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// SimulationInvalidator drops the memoized projection for a scenario.
// Every mutating usecase calls it so the next read recomputes lazily.
type SimulationInvalidator interface {
	Invalidate(ctx context.Context, userID, scenarioID string) error
}
