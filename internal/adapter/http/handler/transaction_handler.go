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

// TransactionService defines the behavior needed by TransactionHandler.
type TransactionService interface {
	Create(ctx context.Context, userID, scenarioID string, input usecase.CreateTransactionInput) (*domain.Transaction, error)
	Get(ctx context.Context, userID, scenarioID, id string) (*domain.Transaction, error)
	List(ctx context.Context, userID, scenarioID string) ([]*domain.Transaction, error)
	Update(ctx context.Context, userID, scenarioID, id string, input usecase.UpdateTransactionInput) (*domain.Transaction, error)
	Delete(ctx context.Context, userID, scenarioID, id string) error
}

// TransactionHandler handles transaction-related HTTP requests.
type TransactionHandler struct {
	transactionUC TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionUC TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionUC: transactionUC}
}

// Create creates a new transaction, expanding transfers into a
// double-entry pair.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user", "")
		return
	}

	var req dto.CreateTransactionRequest
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
	transaction, err := h.transactionUC.Create(r.Context(), userID, scenarioID, input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(transaction))
}

// Get retrieves a transaction by ID.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user", "")
		return
	}

	scenarioID := chi.URLParam(r, "scenarioID")
	id := chi.URLParam(r, "id")

	transaction, err := h.transactionUC.Get(r.Context(), userID, scenarioID, id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(transaction))
}

// List lists the transactions of a scenario.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user", "")
		return
	}

	scenarioID := chi.URLParam(r, "scenarioID")
	transactions, err := h.transactionUC.List(r.Context(), userID, scenarioID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.TransactionsFromDomain(transactions),
		Total:        int64(len(transactions)),
	})
}

// Update replaces a transaction's fields. Pair legs are rejected with
// a conflict; a transfer is edited by recreating the pair.
func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user", "")
		return
	}

	var req dto.UpdateTransactionRequest
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

	transaction, err := h.transactionUC.Update(r.Context(), userID, scenarioID, id, input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(transaction))
}

// Delete removes a transaction, both legs for a pair.
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user", "")
		return
	}

	scenarioID := chi.URLParam(r, "scenarioID")
	id := chi.URLParam(r, "id")

	if err := h.transactionUC.Delete(r.Context(), userID, scenarioID, id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete transaction", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
