package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/finsim/internal/domain"
)

// ScenarioRepository implements scenario persistence.
type ScenarioRepository struct {
	pool *pgxpool.Pool
}

// NewScenarioRepository creates a new scenario repository.
func NewScenarioRepository(pool *pgxpool.Pool) *ScenarioRepository {
	return &ScenarioRepository{pool: pool}
}

// Create inserts a new scenario.
func (r *ScenarioRepository) Create(ctx context.Context, scenario *domain.Scenario) error {
	query := `
		INSERT INTO scenarios (id, user_id, name, start_year, start_month, end_year, end_month, inflation_rate, tax_profile_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		scenario.ID,
		scenario.UserID,
		scenario.Name,
		scenario.Start.Year,
		int(scenario.Start.Month),
		scenario.End.Year,
		int(scenario.End.Month),
		scenario.InflationRate,
		scenario.TaxProfileID,
		scenario.CreatedAt,
		scenario.UpdatedAt,
	)

	return err
}

// GetByID retrieves a scenario by ID.
func (r *ScenarioRepository) GetByID(ctx context.Context, id string) (*domain.Scenario, error) {
	query := `
		SELECT id, user_id, name, start_year, start_month, end_year, end_month, inflation_rate, tax_profile_id, created_at, updated_at
		FROM scenarios
		WHERE id = $1
	`

	scenario, err := scanScenario(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrScenarioNotFound
	}

	return scenario, err
}

// ListByUser retrieves a page of one user's scenarios, newest first.
func (r *ScenarioRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Scenario, error) {
	query := `
		SELECT id, user_id, name, start_year, start_month, end_year, end_month, inflation_rate, tax_profile_id, created_at, updated_at
		FROM scenarios
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scenarios []*domain.Scenario
	for rows.Next() {
		scenario, err := scanScenario(rows)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, scenario)
	}

	return scenarios, rows.Err()
}

// Update replaces the mutable fields of a scenario.
func (r *ScenarioRepository) Update(ctx context.Context, scenario *domain.Scenario) error {
	query := `
		UPDATE scenarios
		SET name = $2, start_year = $3, start_month = $4, end_year = $5, end_month = $6, inflation_rate = $7, tax_profile_id = $8, updated_at = $9
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		scenario.ID,
		scenario.Name,
		scenario.Start.Year,
		int(scenario.Start.Month),
		scenario.End.Year,
		int(scenario.End.Month),
		scenario.InflationRate,
		scenario.TaxProfileID,
		scenario.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrScenarioNotFound
	}

	return nil
}

// Delete removes a scenario. Accounts and transactions cascade via
// foreign keys.
func (r *ScenarioRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM scenarios WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrScenarioNotFound
	}

	return nil
}

func scanScenario(row pgx.Row) (*domain.Scenario, error) {
	var (
		scenario              domain.Scenario
		startYear, startMonth int
		endYear, endMonth     int
		inflationRate         decimal.Decimal
	)

	err := row.Scan(
		&scenario.ID,
		&scenario.UserID,
		&scenario.Name,
		&startYear,
		&startMonth,
		&endYear,
		&endMonth,
		&inflationRate,
		&scenario.TaxProfileID,
		&scenario.CreatedAt,
		&scenario.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	scenario.Start = domain.YearMonth{Year: startYear, Month: timeMonth(startMonth)}
	scenario.End = domain.YearMonth{Year: endYear, Month: timeMonth(endMonth)}
	scenario.InflationRate = inflationRate

	return &scenario, nil
}
