package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/finsim/internal/domain"
	"github.com/iho/finsim/internal/usecase"
)

// AccountRepository implements account persistence.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new account repository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// Create inserts a new account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (id, scenario_id, name, kind, annual_growth_rate, initial_balance, active_from_year, active_from_month, active_until_year, active_until_month, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	fromYear, fromMonth := ymNullable(account.ActiveFrom)
	untilYear, untilMonth := ymNullable(account.ActiveUntil)

	_, err := r.pool.Exec(ctx, query,
		account.ID,
		account.ScenarioID,
		account.Name,
		string(account.Kind),
		account.AnnualGrowthRate,
		account.InitialBalance,
		fromYear,
		fromMonth,
		untilYear,
		untilMonth,
		account.CreatedAt,
		account.UpdatedAt,
	)

	return err
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	query := accountSelect + ` WHERE id = $1`

	account, err := scanAccount(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAccountNotFound
	}

	return account, err
}

// ListByScenario retrieves all accounts of a scenario in creation
// order.
func (r *AccountRepository) ListByScenario(ctx context.Context, scenarioID string) ([]*domain.Account, error) {
	query := accountSelect + ` WHERE scenario_id = $1 ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query, scenarioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

// Update replaces the mutable fields of an account.
func (r *AccountRepository) Update(ctx context.Context, account *domain.Account) error {
	query := `
		UPDATE accounts
		SET name = $2, kind = $3, annual_growth_rate = $4, initial_balance = $5, active_from_year = $6, active_from_month = $7, active_until_year = $8, active_until_month = $9, updated_at = $10
		WHERE id = $1
	`

	fromYear, fromMonth := ymNullable(account.ActiveFrom)
	untilYear, untilMonth := ymNullable(account.ActiveUntil)

	tag, err := r.pool.Exec(ctx, query,
		account.ID,
		account.Name,
		string(account.Kind),
		account.AnnualGrowthRate,
		account.InitialBalance,
		fromYear,
		fromMonth,
		untilYear,
		untilMonth,
		account.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

// Delete removes an account inside a database transaction. The caller
// clears dependent transactions first.
func (r *AccountRepository) Delete(ctx context.Context, tx usecase.Tx, id string) error {
	pgxTx, err := unwrapTx(tx)
	if err != nil {
		return err
	}

	tag, err := pgxTx.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

const accountSelect = `
	SELECT id, scenario_id, name, kind, annual_growth_rate, initial_balance, active_from_year, active_from_month, active_until_year, active_until_month, created_at, updated_at
	FROM accounts`

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		account               domain.Account
		kind                  string
		fromYear, fromMonth   *int
		untilYear, untilMonth *int
	)

	err := row.Scan(
		&account.ID,
		&account.ScenarioID,
		&account.Name,
		&kind,
		&account.AnnualGrowthRate,
		&account.InitialBalance,
		&fromYear,
		&fromMonth,
		&untilYear,
		&untilMonth,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	account.Kind = domain.AccountKind(kind)
	account.ActiveFrom = ymFromNullable(fromYear, fromMonth)
	account.ActiveUntil = ymFromNullable(untilYear, untilMonth)

	return &account, nil
}
