package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/iho/finsim/internal/domain"
	"github.com/iho/finsim/internal/usecase"
)

// MockScenarioRepository is a mock implementation of ScenarioRepository.
type MockScenarioRepository struct {
	mu        sync.RWMutex
	scenarios map[string]*domain.Scenario

	CreateFunc     func(ctx context.Context, scenario *domain.Scenario) error
	GetByIDFunc    func(ctx context.Context, id string) (*domain.Scenario, error)
	ListByUserFunc func(ctx context.Context, userID string, limit, offset int) ([]*domain.Scenario, error)
	UpdateFunc     func(ctx context.Context, scenario *domain.Scenario) error
	DeleteFunc     func(ctx context.Context, id string) error
}

func NewMockScenarioRepository() *MockScenarioRepository {
	return &MockScenarioRepository{
		scenarios: make(map[string]*domain.Scenario),
	}
}

func (m *MockScenarioRepository) Create(ctx context.Context, scenario *domain.Scenario) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, scenario)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scenarios[scenario.ID] = scenario
	return nil
}

func (m *MockScenarioRepository) GetByID(ctx context.Context, id string) (*domain.Scenario, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.scenarios[id]; ok {
		return s, nil
	}
	return nil, domain.ErrScenarioNotFound
}

func (m *MockScenarioRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Scenario, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Scenario
	for _, s := range m.scenarios {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *MockScenarioRepository) Update(ctx context.Context, scenario *domain.Scenario) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, scenario)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.scenarios[scenario.ID]; !ok {
		return domain.ErrScenarioNotFound
	}
	m.scenarios[scenario.ID] = scenario
	return nil
}

func (m *MockScenarioRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.scenarios[id]; !ok {
		return domain.ErrScenarioNotFound
	}
	delete(m.scenarios, id)
	return nil
}

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc         func(ctx context.Context, account *domain.Account) error
	GetByIDFunc        func(ctx context.Context, id string) (*domain.Account, error)
	ListByScenarioFunc func(ctx context.Context, scenarioID string) ([]*domain.Account, error)
	UpdateFunc         func(ctx context.Context, account *domain.Account) error
	DeleteFunc         func(ctx context.Context, tx usecase.Tx, id string) error
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.accounts[id]; ok {
		return a, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) ListByScenario(ctx context.Context, scenarioID string) ([]*domain.Account, error) {
	if m.ListByScenarioFunc != nil {
		return m.ListByScenarioFunc(ctx, scenarioID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Account
	for _, a := range m.accounts {
		if a.ScenarioID == scenarioID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *MockAccountRepository) Update(ctx context.Context, account *domain.Account) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[account.ID]; !ok {
		return domain.ErrAccountNotFound
	}
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) Delete(ctx context.Context, tx usecase.Tx, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[id]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(m.accounts, id)
	return nil
}

// MockTransactionRepository is a mock implementation of TransactionRepository.
type MockTransactionRepository struct {
	mu           sync.RWMutex
	transactions map[string]*domain.Transaction

	CreateFunc          func(ctx context.Context, transaction *domain.Transaction) error
	CreateTxFunc        func(ctx context.Context, tx usecase.Tx, transaction *domain.Transaction) error
	GetByIDFunc         func(ctx context.Context, id string) (*domain.Transaction, error)
	ListByScenarioFunc  func(ctx context.Context, scenarioID string) ([]*domain.Transaction, error)
	UpdateFunc          func(ctx context.Context, transaction *domain.Transaction) error
	DeleteFunc          func(ctx context.Context, id string) error
	DeleteByPairFunc    func(ctx context.Context, tx usecase.Tx, pairID string) error
	DeleteByAccountFunc func(ctx context.Context, tx usecase.Tx, accountID string) error
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		transactions: make(map[string]*domain.Transaction),
	}
}

func (m *MockTransactionRepository) Create(ctx context.Context, transaction *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, transaction)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions[transaction.ID] = transaction
	return nil
}

func (m *MockTransactionRepository) CreateTx(ctx context.Context, tx usecase.Tx, transaction *domain.Transaction) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, transaction)
	}
	return m.Create(ctx, transaction)
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.transactions[id]; ok {
		return t, nil
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) ListByScenario(ctx context.Context, scenarioID string) ([]*domain.Transaction, error) {
	if m.ListByScenarioFunc != nil {
		return m.ListByScenarioFunc(ctx, scenarioID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Transaction
	for _, t := range m.transactions {
		if t.ScenarioID == scenarioID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *MockTransactionRepository) Update(ctx context.Context, transaction *domain.Transaction) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, transaction)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.transactions[transaction.ID]; !ok {
		return domain.ErrTransactionNotFound
	}
	m.transactions[transaction.ID] = transaction
	return nil
}

func (m *MockTransactionRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.transactions[id]; !ok {
		return domain.ErrTransactionNotFound
	}
	delete(m.transactions, id)
	return nil
}

func (m *MockTransactionRepository) DeleteByPair(ctx context.Context, tx usecase.Tx, pairID string) error {
	if m.DeleteByPairFunc != nil {
		return m.DeleteByPairFunc(ctx, tx, pairID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, t := range m.transactions {
		if t.PairID != nil && *t.PairID == pairID {
			delete(m.transactions, id)
		}
	}
	return nil
}

func (m *MockTransactionRepository) DeleteByAccount(ctx context.Context, tx usecase.Tx, accountID string) error {
	if m.DeleteByAccountFunc != nil {
		return m.DeleteByAccountFunc(ctx, tx, accountID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	pairs := make(map[string]bool)
	for id, t := range m.transactions {
		if m.touchesAccount(t, accountID) {
			if t.PairID != nil {
				pairs[*t.PairID] = true
			}
			delete(m.transactions, id)
		}
	}
	for id, t := range m.transactions {
		if t.PairID != nil && pairs[*t.PairID] {
			delete(m.transactions, id)
		}
	}
	return nil
}

func (m *MockTransactionRepository) touchesAccount(t *domain.Transaction, accountID string) bool {
	if t.AccountID == accountID {
		return true
	}
	if t.CounterAccountID != nil && *t.CounterAccountID == accountID {
		return true
	}
	if t.MortgageAccountID != nil && *t.MortgageAccountID == accountID {
		return true
	}
	return false
}

// MockTaxProfileRepository is a mock implementation of TaxProfileRepository.
type MockTaxProfileRepository struct {
	mu       sync.RWMutex
	profiles map[string]*domain.TaxProfile

	CreateFunc  func(ctx context.Context, profile *domain.TaxProfile) error
	GetByIDFunc func(ctx context.Context, id string) (*domain.TaxProfile, error)
	ListFunc    func(ctx context.Context, limit, offset int) ([]*domain.TaxProfile, error)
}

func NewMockTaxProfileRepository() *MockTaxProfileRepository {
	return &MockTaxProfileRepository{
		profiles: make(map[string]*domain.TaxProfile),
	}
}

func (m *MockTaxProfileRepository) Create(ctx context.Context, profile *domain.TaxProfile) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, profile)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[profile.ID] = profile
	return nil
}

func (m *MockTaxProfileRepository) GetByID(ctx context.Context, id string) (*domain.TaxProfile, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.profiles[id]; ok {
		return p, nil
	}
	return nil, domain.ErrTaxProfileNotFound
}

func (m *MockTaxProfileRepository) List(ctx context.Context, limit, offset int) ([]*domain.TaxProfile, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.TaxProfile
	for _, p := range m.profiles {
		out = append(out, p)
	}
	return out, nil
}

// MockTx is a mock implementation of Tx.
type MockTx struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Committed  bool
	RolledBack bool
}

func (m *MockTx) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	m.Committed = true
	return nil
}

func (m *MockTx) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	if !m.Committed {
		m.RolledBack = true
	}
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Tx, error)

	LastTx *MockTx
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Tx, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.LastTx = &MockTx{}
	return m.LastTx, nil
}

// MockIDGenerator is a mock implementation of IDGenerator. It hands
// out sequential IDs so tests can predict pair and leg IDs.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("id-%03d", m.counter)
}

// MockCache is a mock implementation of Cache.
type MockCache struct {
	mu   sync.RWMutex
	data map[string][]byte

	GetFunc    func(ctx context.Context, key string) ([]byte, error)
	SetFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error

	SetCalls    int
	DeleteCalls int
}

func NewMockCache() *MockCache {
	return &MockCache{
		data: make(map[string][]byte),
	}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return nil, usecase.ErrCacheMiss
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCalls++
	m.data[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls++
	delete(m.data, key)
	return nil
}

// MockRetrier is a mock implementation of Retrier that runs the
// operation once.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}

// MockInvalidator is a mock implementation of SimulationInvalidator.
type MockInvalidator struct {
	mu    sync.Mutex
	calls []string

	InvalidateFunc func(ctx context.Context, userID, scenarioID string) error
}

func NewMockInvalidator() *MockInvalidator {
	return &MockInvalidator{}
}

func (m *MockInvalidator) Invalidate(ctx context.Context, userID, scenarioID string) error {
	if m.InvalidateFunc != nil {
		return m.InvalidateFunc(ctx, userID, scenarioID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, userID+"/"+scenarioID)
	return nil
}

// Calls returns the recorded invalidation calls as "userID/scenarioID".
func (m *MockInvalidator) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}
