package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/finsim/internal/domain"
	"github.com/iho/finsim/internal/usecase"
)

// TransactionRepository implements scenario transaction persistence.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new transaction repository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const transactionInsert = `
	INSERT INTO transactions (id, scenario_id, account_id, name, kind, amount, start_year, start_month, end_year, end_month, frequency, annual_growth_rate, taxable, taxable_amount, pair_id, pair_role, counter_account_id, mortgage_account_id, annual_interest_rate, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
`

// Create inserts a new transaction outside any caller transaction.
func (r *TransactionRepository) Create(ctx context.Context, transaction *domain.Transaction) error {
	_, err := r.pool.Exec(ctx, transactionInsert, transactionArgs(transaction)...)
	return err
}

// CreateTx inserts a new transaction inside the caller's database
// transaction. Pair legs go through here so both legs land or neither.
func (r *TransactionRepository) CreateTx(ctx context.Context, tx usecase.Tx, transaction *domain.Transaction) error {
	pgxTx, err := unwrapTx(tx)
	if err != nil {
		return err
	}

	_, err = pgxTx.Exec(ctx, transactionInsert, transactionArgs(transaction)...)
	return err
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	query := transactionSelect + ` WHERE id = $1`

	transaction, err := scanTransaction(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTransactionNotFound
	}

	return transaction, err
}

// ListByScenario retrieves all transactions of a scenario in creation
// order, pair legs included.
func (r *TransactionRepository) ListByScenario(ctx context.Context, scenarioID string) ([]*domain.Transaction, error) {
	query := transactionSelect + ` WHERE scenario_id = $1 ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query, scenarioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*domain.Transaction
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, transaction)
	}

	return transactions, rows.Err()
}

// Update replaces the mutable fields of a transaction.
func (r *TransactionRepository) Update(ctx context.Context, transaction *domain.Transaction) error {
	query := `
		UPDATE transactions
		SET name = $2, kind = $3, amount = $4, start_year = $5, start_month = $6, end_year = $7, end_month = $8, frequency = $9, annual_growth_rate = $10, taxable = $11, taxable_amount = $12, counter_account_id = $13, mortgage_account_id = $14, annual_interest_rate = $15, updated_at = $16, account_id = $17
		WHERE id = $1
	`

	endYear, endMonth := ymNullable(transaction.End)

	tag, err := r.pool.Exec(ctx, query,
		transaction.ID,
		transaction.Name,
		string(transaction.Kind),
		transaction.Amount,
		transaction.Start.Year,
		int(transaction.Start.Month),
		endYear,
		endMonth,
		transaction.Frequency,
		transaction.AnnualGrowthRate,
		transaction.Taxable,
		transaction.TaxableAmount,
		transaction.CounterAccountID,
		transaction.MortgageAccountID,
		transaction.AnnualInterestRate,
		transaction.UpdatedAt,
		transaction.AccountID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// Delete removes a single transaction.
func (r *TransactionRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// DeleteByPair removes both legs of a double-entry pair.
func (r *TransactionRepository) DeleteByPair(ctx context.Context, tx usecase.Tx, pairID string) error {
	pgxTx, err := unwrapTx(tx)
	if err != nil {
		return err
	}

	_, err = pgxTx.Exec(ctx, `DELETE FROM transactions WHERE pair_id = $1`, pairID)
	return err
}

// DeleteByAccount removes every transaction touching the account: its
// own rows, mortgage interest charges referencing it, and complete
// pairs where either leg touches it.
func (r *TransactionRepository) DeleteByAccount(ctx context.Context, tx usecase.Tx, accountID string) error {
	pgxTx, err := unwrapTx(tx)
	if err != nil {
		return err
	}

	query := `
		DELETE FROM transactions
		WHERE account_id = $1
		   OR counter_account_id = $1
		   OR mortgage_account_id = $1
		   OR pair_id IN (
			SELECT pair_id FROM transactions
			WHERE pair_id IS NOT NULL AND (account_id = $1 OR counter_account_id = $1)
		   )
	`

	_, err = pgxTx.Exec(ctx, query, accountID)
	return err
}

const transactionSelect = `
	SELECT id, scenario_id, account_id, name, kind, amount, start_year, start_month, end_year, end_month, frequency, annual_growth_rate, taxable, taxable_amount, pair_id, pair_role, counter_account_id, mortgage_account_id, annual_interest_rate, created_at, updated_at
	FROM transactions`

func transactionArgs(t *domain.Transaction) []any {
	endYear, endMonth := ymNullable(t.End)

	return []any{
		t.ID,
		t.ScenarioID,
		t.AccountID,
		t.Name,
		string(t.Kind),
		t.Amount,
		t.Start.Year,
		int(t.Start.Month),
		endYear,
		endMonth,
		t.Frequency,
		t.AnnualGrowthRate,
		t.Taxable,
		t.TaxableAmount,
		t.PairID,
		string(t.PairRole),
		t.CounterAccountID,
		t.MortgageAccountID,
		t.AnnualInterestRate,
		t.CreatedAt,
		t.UpdatedAt,
	}
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		transaction           domain.Transaction
		kind, pairRole        string
		startYear, startMonth int
		endYear, endMonth     *int
	)

	err := row.Scan(
		&transaction.ID,
		&transaction.ScenarioID,
		&transaction.AccountID,
		&transaction.Name,
		&kind,
		&transaction.Amount,
		&startYear,
		&startMonth,
		&endYear,
		&endMonth,
		&transaction.Frequency,
		&transaction.AnnualGrowthRate,
		&transaction.Taxable,
		&transaction.TaxableAmount,
		&transaction.PairID,
		&pairRole,
		&transaction.CounterAccountID,
		&transaction.MortgageAccountID,
		&transaction.AnnualInterestRate,
		&transaction.CreatedAt,
		&transaction.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	transaction.Kind = domain.TransactionKind(kind)
	transaction.PairRole = domain.PairRole(pairRole)
	transaction.Start = domain.YearMonth{Year: startYear, Month: timeMonth(startMonth)}
	transaction.End = ymFromNullable(endYear, endMonth)

	return &transaction, nil
}
