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

// ScenarioService defines the behavior needed by ScenarioHandler.
type ScenarioService interface {
	Create(ctx context.Context, input usecase.CreateScenarioInput) (*domain.Scenario, error)
	Get(ctx context.Context, userID, id string) (*domain.Scenario, error)
	List(ctx context.Context, userID string, limit, offset int) ([]*domain.Scenario, error)
	Update(ctx context.Context, userID, id string, input usecase.UpdateScenarioInput) (*domain.Scenario, error)
	Delete(ctx context.Context, userID, id string) error
}

// ScenarioHandler handles scenario-related HTTP requests.
type ScenarioHandler struct {
	scenarioUC ScenarioService
}

// NewScenarioHandler creates a new ScenarioHandler.
func NewScenarioHandler(scenarioUC ScenarioService) *ScenarioHandler {
	return &ScenarioHandler{scenarioUC: scenarioUC}
}

// Create creates a new scenario.
func (h *ScenarioHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user", "")
		return
	}

	var req dto.CreateScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput(userID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	scenario, err := h.scenarioUC.Create(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create scenario", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.ScenarioFromDomain(scenario))
}

// Get retrieves a scenario by ID.
func (h *ScenarioHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user", "")
		return
	}

	id := chi.URLParam(r, "scenarioID")
	scenario, err := h.scenarioUC.Get(r.Context(), userID, id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get scenario", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ScenarioFromDomain(scenario))
}

// List lists the user's scenarios.
func (h *ScenarioHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user", "")
		return
	}

	limit := parseIntQuery(r, "limit", usecase.DefaultListLimit)
	offset := parseIntQuery(r, "offset", 0)

	scenarios, err := h.scenarioUC.List(r.Context(), userID, limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list scenarios", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListScenariosResponse{
		Scenarios: dto.ScenariosFromDomain(scenarios),
		Total:     int64(len(scenarios)),
	})
}

// Update replaces the mutable fields of a scenario.
func (h *ScenarioHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user", "")
		return
	}

	var req dto.UpdateScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	id := chi.URLParam(r, "scenarioID")
	scenario, err := h.scenarioUC.Update(r.Context(), userID, id, input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update scenario", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ScenarioFromDomain(scenario))
}

// Delete removes a scenario.
func (h *ScenarioHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user", "")
		return
	}

	id := chi.URLParam(r, "scenarioID")
	if err := h.scenarioUC.Delete(r.Context(), userID, id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete scenario", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
