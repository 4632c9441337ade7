package usecase

import (
	"context"
	"time"

	"github.com/iho/finsim/internal/domain"
)

// TaxProfileUseCase implements tax profile management. Profiles are
// shared reference data, not owned per user, so there is no ownership
// check and no cache invalidation here. A scenario picks up a changed
// profile only through a new profile ID, existing profiles are
// immutable once created.
type TaxProfileUseCase struct {
	taxProfileRepo TaxProfileRepository
	idGen          IDGenerator
}

// NewTaxProfileUseCase creates a new TaxProfileUseCase.
func NewTaxProfileUseCase(taxProfileRepo TaxProfileRepository, idGen IDGenerator) *TaxProfileUseCase {
	return &TaxProfileUseCase{taxProfileRepo: taxProfileRepo, idGen: idGen}
}

// Create validates and persists a new tax profile.
func (uc *TaxProfileUseCase) Create(ctx context.Context, profile *domain.TaxProfile) (*domain.TaxProfile, error) {
	profile.ID = uc.idGen.Generate()
	now := time.Now().UTC()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	if err := profile.Validate(); err != nil {
		return nil, err
	}

	if err := uc.taxProfileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

// Get returns one tax profile.
func (uc *TaxProfileUseCase) Get(ctx context.Context, id string) (*domain.TaxProfile, error) {
	return uc.taxProfileRepo.GetByID(ctx, id)
}

// List returns tax profiles with pagination.
func (uc *TaxProfileUseCase) List(ctx context.Context, limit, offset int) ([]*domain.TaxProfile, error) {
	limit = clampLimit(limit)
	if offset < 0 {
		offset = 0
	}
	return uc.taxProfileRepo.List(ctx, limit, offset)
}
