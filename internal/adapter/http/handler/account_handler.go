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

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	Create(ctx context.Context, userID, scenarioID string, input usecase.CreateAccountInput) (*domain.Account, error)
	Get(ctx context.Context, userID, scenarioID, id string) (*domain.Account, error)
	List(ctx context.Context, userID, scenarioID string) ([]*domain.Account, error)
	Update(ctx context.Context, userID, scenarioID, id string, input usecase.CreateAccountInput) (*domain.Account, error)
	Delete(ctx context.Context, userID, scenarioID, id string) error
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountUC AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC AccountService) *AccountHandler {
	return &AccountHandler{accountUC: accountUC}
}

// Create creates a new account in a scenario.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user", "")
		return
	}

	var req dto.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	scenarioID := chi.URLParam(r, "scenarioID")
	account, err := h.accountUC.Create(r.Context(), userID, scenarioID, input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create account", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.AccountFromDomain(account))
}

// Get retrieves an account by ID.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user", "")
		return
	}

	scenarioID := chi.URLParam(r, "scenarioID")
	id := chi.URLParam(r, "id")

	account, err := h.accountUC.Get(r.Context(), userID, scenarioID, id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// List lists the accounts of a scenario.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user", "")
		return
	}

	scenarioID := chi.URLParam(r, "scenarioID")
	accounts, err := h.accountUC.List(r.Context(), userID, scenarioID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list accounts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListAccountsResponse{
		Accounts: dto.AccountsFromDomain(accounts),
		Total:    int64(len(accounts)),
	})
}

// Update replaces the mutable fields of an account.
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user", "")
		return
	}

	var req dto.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	scenarioID := chi.URLParam(r, "scenarioID")
	id := chi.URLParam(r, "id")

	account, err := h.accountUC.Update(r.Context(), userID, scenarioID, id, input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// Delete removes an account together with every transaction touching
// it.
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user", "")
		return
	}

	scenarioID := chi.URLParam(r, "scenarioID")
	id := chi.URLParam(r, "id")

	if err := h.accountUC.Delete(r.Context(), userID, scenarioID, id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete account", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
