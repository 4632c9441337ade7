package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/iho/finsim/internal/adapter/http/middleware"
	"github.com/iho/finsim/internal/domain"
)

// authedRequest builds a request carrying an authenticated user, the
// way the auth middleware would hand it to a handler.
func authedRequest(method, target string, body io.Reader, userID string) *http.Request {
	req := httptest.NewRequest(method, target, body)
	if userID == "" {
		return req
	}
	ctx := context.WithValue(req.Context(), middleware.UserContextKey, &domain.User{ID: userID})
	return req.WithContext(ctx)
}

// withChiParams attaches URL parameters the way the chi router would.
func withChiParams(req *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestMapDomainError(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"scenario not found", domain.ErrScenarioNotFound, http.StatusNotFound},
		{"account not found", domain.ErrAccountNotFound, http.StatusNotFound},
		{"invalid horizon", domain.ErrInvalidHorizon, http.StatusBadRequest},
		{"invalid frequency", domain.ErrInvalidFrequency, http.StatusBadRequest},
		{"unknown asset class", domain.ErrUnknownAssetClass, http.StatusBadRequest},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := mapDomainError(tc.err); got != tc.expected {
				t.Fatalf("mapDomainError(%v) = %d, expected %d", tc.err, got, tc.expected)
			}
		})
	}
}

func TestParseIntQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=25&bad=abc", nil)

	if got := parseIntQuery(req, "limit", 50); got != 25 {
		t.Fatalf("expected 25, got %d", got)
	}
	if got := parseIntQuery(req, "bad", 50); got != 50 {
		t.Fatalf("expected fallback 50 for non-numeric value, got %d", got)
	}
	if got := parseIntQuery(req, "missing", 50); got != 50 {
		t.Fatalf("expected fallback 50 for missing value, got %d", got)
	}
}

func TestRequestUserID(t *testing.T) {
	req := authedRequest(http.MethodGet, "/", nil, "user-1")
	if id, ok := requestUserID(req); !ok || id != "user-1" {
		t.Fatalf("expected user-1, got %q ok=%v", id, ok)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := requestUserID(req); ok {
		t.Fatal("expected missing user to report not ok")
	}
}
