package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/finsim/internal/domain"
)

// TaxProfileRepository implements tax profile persistence. Bracket and
// federal row schedules are small ordered lists read as a whole, so
// they live in JSONB columns instead of child tables.
type TaxProfileRepository struct {
	pool *pgxpool.Pool
}

// NewTaxProfileRepository creates a new tax profile repository.
func NewTaxProfileRepository(pool *pgxpool.Pool) *TaxProfileRepository {
	return &TaxProfileRepository{pool: pool}
}

// Create inserts a new tax profile.
func (r *TaxProfileRepository) Create(ctx context.Context, profile *domain.TaxProfile) error {
	query := `
		INSERT INTO tax_profiles (id, name, income_brackets, wealth_brackets, federal_rows, municipal_factor, cantonal_factor, church_factor, personal_tax, household_size, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	incomeBrackets, err := json.Marshal(profile.IncomeBrackets)
	if err != nil {
		return err
	}
	wealthBrackets, err := json.Marshal(profile.WealthBrackets)
	if err != nil {
		return err
	}
	federalRows, err := json.Marshal(profile.FederalRows)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, query,
		profile.ID,
		profile.Name,
		incomeBrackets,
		wealthBrackets,
		federalRows,
		profile.MunicipalFactor,
		profile.CantonalFactor,
		profile.ChurchFactor,
		profile.PersonalTax,
		profile.HouseholdSize,
		profile.CreatedAt,
		profile.UpdatedAt,
	)

	return err
}

// GetByID retrieves a tax profile by ID.
func (r *TaxProfileRepository) GetByID(ctx context.Context, id string) (*domain.TaxProfile, error) {
	query := taxProfileSelect + ` WHERE id = $1`

	profile, err := scanTaxProfile(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTaxProfileNotFound
	}

	return profile, err
}

// List retrieves a page of tax profiles by name.
func (r *TaxProfileRepository) List(ctx context.Context, limit, offset int) ([]*domain.TaxProfile, error) {
	query := taxProfileSelect + ` ORDER BY name, id LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*domain.TaxProfile
	for rows.Next() {
		profile, err := scanTaxProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}

	return profiles, rows.Err()
}

const taxProfileSelect = `
	SELECT id, name, income_brackets, wealth_brackets, federal_rows, municipal_factor, cantonal_factor, church_factor, personal_tax, household_size, created_at, updated_at
	FROM tax_profiles`

func scanTaxProfile(row pgx.Row) (*domain.TaxProfile, error) {
	var (
		profile        domain.TaxProfile
		incomeBrackets []byte
		wealthBrackets []byte
		federalRows    []byte
	)

	err := row.Scan(
		&profile.ID,
		&profile.Name,
		&incomeBrackets,
		&wealthBrackets,
		&federalRows,
		&profile.MunicipalFactor,
		&profile.CantonalFactor,
		&profile.ChurchFactor,
		&profile.PersonalTax,
		&profile.HouseholdSize,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(incomeBrackets, &profile.IncomeBrackets); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(wealthBrackets, &profile.WealthBrackets); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(federalRows, &profile.FederalRows); err != nil {
		return nil, err
	}

	return &profile, nil
}
