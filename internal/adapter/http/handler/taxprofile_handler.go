package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/finsim/internal/adapter/http/dto"
	"github.com/iho/finsim/internal/domain"
	"github.com/iho/finsim/internal/usecase"
)

// TaxProfileService defines the behavior needed by TaxProfileHandler.
type TaxProfileService interface {
	Create(ctx context.Context, profile *domain.TaxProfile) (*domain.TaxProfile, error)
	Get(ctx context.Context, id string) (*domain.TaxProfile, error)
	List(ctx context.Context, limit, offset int) ([]*domain.TaxProfile, error)
}

// TaxProfileHandler handles tax profile HTTP requests.
type TaxProfileHandler struct {
	taxProfileUC TaxProfileService
}

// NewTaxProfileHandler creates a new TaxProfileHandler.
func NewTaxProfileHandler(taxProfileUC TaxProfileService) *TaxProfileHandler {
	return &TaxProfileHandler{taxProfileUC: taxProfileUC}
}

// Create creates a new tax profile.
func (h *TaxProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTaxProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	profile, err := h.taxProfileUC.Create(r.Context(), req.ToDomain())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create tax profile", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TaxProfileFromDomain(profile))
}

// Get retrieves a tax profile by ID.
func (h *TaxProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	profile, err := h.taxProfileUC.Get(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get tax profile", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TaxProfileFromDomain(profile))
}

// List lists tax profiles.
func (h *TaxProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", usecase.DefaultListLimit)
	offset := parseIntQuery(r, "offset", 0)

	profiles, err := h.taxProfileUC.List(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list tax profiles", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TaxProfilesFromDomain(profiles))
}
