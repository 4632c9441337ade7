package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"

	adaptershttp "github.com/iho/finsim/internal/adapter/http"
	"github.com/iho/finsim/internal/adapter/http/dto"
	"github.com/iho/finsim/internal/adapter/http/handler"
	"github.com/iho/finsim/internal/adapter/repository/postgres"
	redisrepo "github.com/iho/finsim/internal/adapter/repository/redis"
	infraredis "github.com/iho/finsim/internal/infrastructure/redis"
	"github.com/iho/finsim/internal/usecase"
	"github.com/iho/finsim/tests/testutil"
)

// newTestServer wires the full stack against the test database and a
// real redis instance, with auth disabled so X-User-ID attributes
// requests.
func newTestServer(t *testing.T, ctx context.Context, testDB *testutil.TestDB) http.Handler {
	t.Helper()

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}
	redisClient, err := infraredis.NewClient(ctx, redisURL)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { redisClient.Close() })

	pool := testDB.Pool
	txManager := postgres.NewTxManager(pool)
	scenarioRepo := postgres.NewScenarioRepository(pool)
	accountRepo := postgres.NewAccountRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)
	taxProfileRepo := postgres.NewTaxProfileRepository(pool)
	cache := redisrepo.NewCache(redisClient)
	idGen := postgres.NewULIDGenerator()

	simulationUC := usecase.NewSimulationUseCase(
		scenarioRepo, accountRepo, transactionRepo, taxProfileRepo,
		cache, nil, time.Minute,
	)
	scenarioUC := usecase.NewScenarioUseCase(scenarioRepo, taxProfileRepo, idGen, simulationUC)
	accountUC := usecase.NewAccountUseCase(scenarioRepo, accountRepo, transactionRepo, txManager, idGen, simulationUC)
	transactionUC := usecase.NewTransactionUseCase(scenarioRepo, accountRepo, transactionRepo, txManager, idGen, simulationUC)
	taxProfileUC := usecase.NewTaxProfileUseCase(taxProfileRepo, idGen)

	return adaptershttp.NewRouter(adaptershttp.RouterConfig{
		ScenarioHandler:    handler.NewScenarioHandler(scenarioUC),
		AccountHandler:     handler.NewAccountHandler(accountUC),
		TransactionHandler: handler.NewTransactionHandler(transactionUC),
		TaxProfileHandler:  handler.NewTaxProfileHandler(taxProfileUC),
		SimulationHandler:  handler.NewSimulationHandler(simulationUC),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),
		DefaultUserID:      "local",
		Logger:             zerolog.Nop(),
	})
}

func doJSON(t *testing.T, router http.Handler, method, path, userID string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", userID)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestScenarioLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	router := newTestServer(t, ctx, testDB)

	// Create
	rec := doJSON(t, router, http.MethodPost, "/api/v1/scenarios/", "user-1", dto.CreateScenarioRequest{
		Name:  "retirement",
		Start: "2024-01",
		End:   "2030-12",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created dto.ScenarioResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if created.ID == "" || created.Start != "2024-01" {
		t.Fatalf("unexpected scenario: %+v", created)
	}

	// Get
	rec = doJSON(t, router, http.MethodGet, "/api/v1/scenarios/"+created.ID, "user-1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// Another user must not see it
	rec = doJSON(t, router, http.MethodGet, "/api/v1/scenarios/"+created.ID, "user-2", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign user, got %d", rec.Code)
	}

	// Update
	rec = doJSON(t, router, http.MethodPut, "/api/v1/scenarios/"+created.ID, "user-1", dto.UpdateScenarioRequest{
		Name:  "retirement-late",
		Start: "2024-01",
		End:   "2035-12",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var updated dto.ScenarioResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if updated.Name != "retirement-late" || updated.End != "2035-12" {
		t.Fatalf("unexpected updated scenario: %+v", updated)
	}

	// Delete
	rec = doJSON(t, router, http.MethodDelete, "/api/v1/scenarios/"+created.ID, "user-1", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/scenarios/"+created.ID, "user-1", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestScenarioValidation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	router := newTestServer(t, ctx, testDB)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/scenarios/", "user-1", dto.CreateScenarioRequest{
		Name:  "backwards",
		Start: "2030-01",
		End:   "2024-12",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for end before start, got %d: %s", rec.Code, rec.Body.String())
	}
}
