package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/iho/finsim/internal/domain"
	"github.com/iho/finsim/internal/engine"
)

// ErrCacheMiss is returned by Cache implementations when a key is
// absent.
var ErrCacheMiss = errors.New("cache miss")

// SimulationUseCase runs projections over repository snapshots and
// memoizes the base result per (user, scenario). Stress results are
// never cached.
type SimulationUseCase struct {
	scenarioRepo    ScenarioRepository
	accountRepo     AccountRepository
	transactionRepo TransactionRepository
	taxProfileRepo  TaxProfileRepository
	cache           Cache
	retrier         Retrier
	cacheTTL        time.Duration

	// Per-key locks serialize a recompute against a concurrent
	// mutation-triggered invalidation on the same scenario.
	locks sync.Map
}

// NewSimulationUseCase creates a new SimulationUseCase. cache and
// retrier may be nil; both are optional fast paths, not correctness.
func NewSimulationUseCase(
	scenarioRepo ScenarioRepository,
	accountRepo AccountRepository,
	transactionRepo TransactionRepository,
	taxProfileRepo TaxProfileRepository,
	cache Cache,
	retrier Retrier,
	cacheTTL time.Duration,
) *SimulationUseCase {
	if cacheTTL <= 0 {
		cacheTTL = DefaultSimulationCacheTTL
	}
	return &SimulationUseCase{
		scenarioRepo:    scenarioRepo,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		taxProfileRepo:  taxProfileRepo,
		cache:           cache,
		retrier:         retrier,
		cacheTTL:        cacheTTL,
	}
}

func simulationCacheKey(userID, scenarioID string) string {
	return fmt.Sprintf("simulation:%s:%s", userID, scenarioID)
}

func (uc *SimulationUseCase) keyLock(key string) *sync.Mutex {
	mu, _ := uc.locks.LoadOrStore(key, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Simulate returns the projection for a scenario, serving the memoized
// result when one survives since the last mutation.
func (uc *SimulationUseCase) Simulate(ctx context.Context, userID, scenarioID string) (*domain.Projection, error) {
	key := simulationCacheKey(userID, scenarioID)
	mu := uc.keyLock(key)
	mu.Lock()
	defer mu.Unlock()

	if uc.cache != nil {
		if data, err := uc.cache.Get(ctx, key); err == nil {
			var proj domain.Projection
			if err := json.Unmarshal(data, &proj); err == nil {
				return &proj, nil
			}
		}
	}

	snap, err := uc.fetchSnapshot(ctx, userID, scenarioID)
	if err != nil {
		return nil, err
	}

	proj, err := engine.Run(snap)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if data, err := json.Marshal(proj); err == nil {
			// A failed cache write only costs a recompute later.
			_ = uc.cache.Set(ctx, key, data, uc.cacheTTL)
		}
	}

	return proj, nil
}

// SimulateStress re-runs the pipeline against a shocked clone of the
// current base snapshot, never against cached state.
func (uc *SimulationUseCase) SimulateStress(ctx context.Context, userID, scenarioID string, shocks []domain.Shock) (*domain.Projection, error) {
	snap, err := uc.fetchSnapshot(ctx, userID, scenarioID)
	if err != nil {
		return nil, err
	}

	return engine.RunStress(snap, shocks)
}

// Invalidate drops the memoized projection for a scenario.
func (uc *SimulationUseCase) Invalidate(ctx context.Context, userID, scenarioID string) error {
	if uc.cache == nil {
		return nil
	}

	key := simulationCacheKey(userID, scenarioID)
	mu := uc.keyLock(key)
	mu.Lock()
	defer mu.Unlock()

	return uc.cache.Delete(ctx, key)
}

// fetchSnapshot loads the complete immutable input of one run before
// the month-stepping loop starts. This is the only step that may see
// transient failures, so it is the only step wrapped in the retrier.
func (uc *SimulationUseCase) fetchSnapshot(ctx context.Context, userID, scenarioID string) (*domain.Snapshot, error) {
	var snap *domain.Snapshot

	op := func() error {
		scenario, err := uc.scenarioRepo.GetByID(ctx, scenarioID)
		if err != nil {
			return err
		}
		if scenario.UserID != userID {
			return domain.ErrScenarioNotFound
		}

		accounts, err := uc.accountRepo.ListByScenario(ctx, scenarioID)
		if err != nil {
			return err
		}

		transactions, err := uc.transactionRepo.ListByScenario(ctx, scenarioID)
		if err != nil {
			return err
		}

		var profile *domain.TaxProfile
		if scenario.TaxProfileID != nil {
			profile, err = uc.taxProfileRepo.GetByID(ctx, *scenario.TaxProfileID)
			if err != nil {
				if !errors.Is(err, domain.ErrTaxProfileNotFound) {
					return err
				}
				// Dangling reference from legacy data: fall back to
				// the default profile inside the engine.
				profile = nil
			}
		}

		snap = &domain.Snapshot{
			Scenario:     scenario,
			Accounts:     accounts,
			Transactions: transactions,
			TaxProfile:   profile,
		}
		return nil
	}

	var err error
	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, op)
	} else {
		err = op()
	}
	if err != nil {
		return nil, err
	}

	return snap, nil
}
