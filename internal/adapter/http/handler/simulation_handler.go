package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/finsim/internal/adapter/http/dto"
	"github.com/iho/finsim/internal/domain"
	"github.com/iho/finsim/internal/infrastructure/metrics"
)

// SimulationService defines the behavior needed by SimulationHandler.
type SimulationService interface {
	Simulate(ctx context.Context, userID, scenarioID string) (*domain.Projection, error)
	SimulateStress(ctx context.Context, userID, scenarioID string, shocks []domain.Shock) (*domain.Projection, error)
}

// SimulationHandler handles projection requests.
type SimulationHandler struct {
	simulationUC SimulationService
}

// NewSimulationHandler creates a new SimulationHandler.
func NewSimulationHandler(simulationUC SimulationService) *SimulationHandler {
	return &SimulationHandler{simulationUC: simulationUC}
}

// Simulate runs the base projection for a scenario.
func (h *SimulationHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user", "")
		return
	}

	scenarioID := chi.URLParam(r, "scenarioID")

	timer := metrics.SimulationTimer("base")
	projection, err := h.simulationUC.Simulate(r.Context(), userID, scenarioID)
	timer.ObserveDuration()
	if err != nil {
		metrics.SimulationFailed("base")
		writeError(w, mapDomainError(err), "simulation failed", err.Error())
		return
	}
	metrics.SimulationCompleted("base")

	writeJSON(w, http.StatusOK, dto.ProjectionFromDomain(projection))
}

// Stress runs a shocked projection for a scenario. The result is
// computed fresh on every call.
func (h *SimulationHandler) Stress(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user", "")
		return
	}

	var req dto.StressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	shocks, err := req.ToDomain()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	scenarioID := chi.URLParam(r, "scenarioID")

	timer := metrics.SimulationTimer("stress")
	projection, err := h.simulationUC.SimulateStress(r.Context(), userID, scenarioID, shocks)
	timer.ObserveDuration()
	if err != nil {
		metrics.SimulationFailed("stress")
		writeError(w, mapDomainError(err), "stress simulation failed", err.Error())
		return
	}
	metrics.SimulationCompleted("stress")

	writeJSON(w, http.StatusOK, dto.ProjectionFromDomain(projection))
}
