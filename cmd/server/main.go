package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/finsim/internal/adapter/http"
	"github.com/iho/finsim/internal/adapter/http/handler"
	postgresRepo "github.com/iho/finsim/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/finsim/internal/adapter/repository/redis"
	"github.com/iho/finsim/internal/infrastructure/auth"
	"github.com/iho/finsim/internal/infrastructure/config"
	"github.com/iho/finsim/internal/infrastructure/logger"
	"github.com/iho/finsim/internal/infrastructure/postgres"
	"github.com/iho/finsim/internal/infrastructure/redis"
	"github.com/iho/finsim/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	log.Logger = logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL: cfg.DatabaseURL,
		MaxConns:    cfg.DatabaseMaxConns,
		MinConns:    cfg.DatabaseMinConns,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	scenarioRepo := postgresRepo.NewScenarioRepository(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	transactionRepo := postgresRepo.NewTransactionRepository(pool)
	taxProfileRepo := postgresRepo.NewTaxProfileRepository(pool)
	cache := redisRepo.NewCache(redisClient)
	retrier := postgresRepo.NewRetrier(log.Logger)
	idGen := postgresRepo.NewULIDGenerator()

	// Initialize use cases. The simulation use case doubles as the
	// invalidator the mutating use cases call after each write.
	simulationUC := usecase.NewSimulationUseCase(
		scenarioRepo, accountRepo, transactionRepo, taxProfileRepo,
		cache, retrier, cfg.SimulationCacheTTL,
	)
	scenarioUC := usecase.NewScenarioUseCase(scenarioRepo, taxProfileRepo, idGen, simulationUC)
	accountUC := usecase.NewAccountUseCase(scenarioRepo, accountRepo, transactionRepo, txManager, idGen, simulationUC)
	transactionUC := usecase.NewTransactionUseCase(scenarioRepo, accountRepo, transactionRepo, txManager, idGen, simulationUC)
	taxProfileUC := usecase.NewTaxProfileUseCase(taxProfileRepo, idGen)

	// Optional JWT authentication
	var jwtManager *auth.JWTManager
	if cfg.AuthEnabled && cfg.JWTSecret != "" {
		jwtManager = auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
		log.Info().Msg("jwt authentication enabled")
	} else {
		log.Info().Str("default_user", cfg.DefaultUserID).Msg("authentication disabled")
	}

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		ScenarioHandler:    handler.NewScenarioHandler(scenarioUC),
		AccountHandler:     handler.NewAccountHandler(accountUC),
		TransactionHandler: handler.NewTransactionHandler(transactionUC),
		TaxProfileHandler:  handler.NewTaxProfileHandler(taxProfileUC),
		SimulationHandler:  handler.NewSimulationHandler(simulationUC),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),
		JWTManager:         jwtManager,
		DefaultUserID:      cfg.DefaultUserID,
		Logger:             log.Logger,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
