package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/iho/finsim/internal/adapter/http/dto"
	"github.com/iho/finsim/internal/adapter/http/middleware"
	"github.com/iho/finsim/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrScenarioNotFound),
		errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrTransactionNotFound),
		errors.Is(err, domain.ErrTaxProfileNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidHorizon),
		errors.Is(err, domain.ErrInvalidAccountKind),
		errors.Is(err, domain.ErrInvalidTransactionKind),
		errors.Is(err, domain.ErrInvalidFrequency),
		errors.Is(err, domain.ErrMissingMortgageReference),
		errors.Is(err, domain.ErrNotMortgageAccount),
		errors.Is(err, domain.ErrMissingCounterAccount),
		errors.Is(err, domain.ErrSameAccount),
		errors.Is(err, domain.ErrInvalidBrackets),
		errors.Is(err, domain.ErrInvalidFederalTable),
		errors.Is(err, domain.ErrInvalidTaxProfile),
		errors.Is(err, domain.ErrUnknownAssetClass),
		errors.Is(err, domain.ErrInvalidScenarioName),
		errors.Is(err, domain.ErrInvalidAccountName),
		errors.Is(err, domain.ErrInvalidName):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrPairLegImmutable):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}

// requestUserID extracts the authenticated user from the request
// context.
func requestUserID(r *http.Request) (string, bool) {
	user, ok := r.Context().Value(middleware.UserContextKey).(*domain.User)
	if !ok || user.ID == "" {
		return "", false
	}
	return user.ID, true
}
