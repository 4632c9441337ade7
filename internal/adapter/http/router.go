package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/finsim/internal/adapter/http/handler"
	"github.com/iho/finsim/internal/adapter/http/middleware"
	"github.com/iho/finsim/internal/infrastructure/auth"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	ScenarioHandler    *handler.ScenarioHandler
	AccountHandler     *handler.AccountHandler
	TransactionHandler *handler.TransactionHandler
	TaxProfileHandler  *handler.TaxProfileHandler
	SimulationHandler  *handler.SimulationHandler
	HealthHandler      *handler.HealthHandler

	// JWTManager enables bearer authentication when set. When nil,
	// requests are attributed via the X-User-ID header with
	// DefaultUserID as the fallback.
	JWTManager    *auth.JWTManager
	DefaultUserID string

	Logger zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery)

	// Health and observability endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.JWTManager != nil {
			r.Use(middleware.AuthMiddleware(cfg.JWTManager))
		} else {
			r.Use(middleware.StaticUser(cfg.DefaultUserID))
		}

		// Scenarios
		r.Route("/scenarios", func(r chi.Router) {
			r.Post("/", cfg.ScenarioHandler.Create)
			r.Get("/", cfg.ScenarioHandler.List)

			r.Route("/{scenarioID}", func(r chi.Router) {
				r.Get("/", cfg.ScenarioHandler.Get)
				r.Put("/", cfg.ScenarioHandler.Update)
				r.Delete("/", cfg.ScenarioHandler.Delete)
				r.Get("/simulate", cfg.SimulationHandler.Simulate)
				r.Post("/stress", cfg.SimulationHandler.Stress)

				// Nested resources keep the scenario in the path so
				// handlers can enforce ownership on every access.
				r.Route("/accounts", func(r chi.Router) {
					r.Post("/", cfg.AccountHandler.Create)
					r.Get("/", cfg.AccountHandler.List)
					r.Get("/{id}", cfg.AccountHandler.Get)
					r.Put("/{id}", cfg.AccountHandler.Update)
					r.Delete("/{id}", cfg.AccountHandler.Delete)
				})

				r.Route("/transactions", func(r chi.Router) {
					r.Post("/", cfg.TransactionHandler.Create)
					r.Get("/", cfg.TransactionHandler.List)
					r.Get("/{id}", cfg.TransactionHandler.Get)
					r.Put("/{id}", cfg.TransactionHandler.Update)
					r.Delete("/{id}", cfg.TransactionHandler.Delete)
				})
			})
		})

		// Tax profiles
		r.Route("/tax-profiles", func(r chi.Router) {
			r.Post("/", cfg.TaxProfileHandler.Create)
			r.Get("/", cfg.TaxProfileHandler.List)
			r.Get("/{id}", cfg.TaxProfileHandler.Get)
		})
	})

	return r
}
