// Package mocks provides hand-rolled mock implementations of the usecase
// interfaces with overridable behavior per method.
package mocks

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finsight/internal/domain"
	"github.com/iho/finsight/internal/usecase"
)

// MockTransactionRepository is a mock implementation of TransactionRepository.
type MockTransactionRepository struct {
	mu           sync.RWMutex
	transactions []domain.Transaction

	GetAllFunc      func(ctx context.Context) ([]domain.Transaction, error)
	InsertBatchFunc func(ctx context.Context, txs []domain.Transaction) (int, error)
	ListFunc        func(ctx context.Context, limit, offset int) ([]domain.Transaction, error)
	CountFunc       func(ctx context.Context) (int64, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{}
}

// Seed preloads the in-memory ledger.
func (m *MockTransactionRepository) Seed(txs ...domain.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions = append(m.transactions, txs...)
}

func (m *MockTransactionRepository) GetAll(ctx context.Context) ([]domain.Transaction, error) {
	if m.GetAllFunc != nil {
		return m.GetAllFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Transaction, len(m.transactions))
	copy(out, m.transactions)
	return out, nil
}

func (m *MockTransactionRepository) InsertBatch(ctx context.Context, txs []domain.Transaction) (int, error) {
	if m.InsertBatchFunc != nil {
		return m.InsertBatchFunc(ctx, txs)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	inserted := 0
	for _, tx := range txs {
		if m.hasDuplicateLocked(tx) {
			continue
		}
		m.transactions = append(m.transactions, tx)
		inserted++
	}
	return inserted, nil
}

func (m *MockTransactionRepository) hasDuplicateLocked(tx domain.Transaction) bool {
	for _, existing := range m.transactions {
		if existing.Date.Equal(tx.Date) &&
			existing.Description == tx.Description &&
			existing.Amount.Equal(tx.Amount) {
			return true
		}
	}
	return false
}

func (m *MockTransactionRepository) List(ctx context.Context, limit, offset int) ([]domain.Transaction, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	if offset >= len(m.transactions) {
		return []domain.Transaction{}, nil
	}
	end := offset + limit
	if end > len(m.transactions) {
		end = len(m.transactions)
	}
	out := make([]domain.Transaction, end-offset)
	copy(out, m.transactions[offset:end])
	return out, nil
}

func (m *MockTransactionRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.transactions)), nil
}

// MockCache is a mock implementation of Cache that records call counts.
type MockCache struct {
	mu      sync.RWMutex
	entries map[string][]byte

	Gets    int
	Sets    int
	Flushes int

	GetFunc      func(ctx context.Context, key string) ([]byte, error)
	SetFunc      func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	FlushAllFunc func(ctx context.Context) error
}

func NewMockCache() *MockCache {
	return &MockCache{
		entries: make(map[string][]byte),
	}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	m.Gets++
	m.mu.Unlock()

	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.entries[key]
	if !ok {
		return nil, usecase.ErrCacheMiss
	}
	return val, nil
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	m.Sets++
	m.mu.Unlock()

	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

func (m *MockCache) FlushAll(ctx context.Context) error {
	m.mu.Lock()
	m.Flushes++
	m.mu.Unlock()

	if m.FlushAllFunc != nil {
		return m.FlushAllFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string][]byte)
	return nil
}

// MockStatementExtractor is a mock implementation of StatementExtractor.
type MockStatementExtractor struct {
	ExtractFunc func(ctx context.Context, document []byte) ([]domain.Transaction, error)
}

func NewMockStatementExtractor() *MockStatementExtractor {
	return &MockStatementExtractor{}
}

func (m *MockStatementExtractor) Extract(ctx context.Context, document []byte) ([]domain.Transaction, error) {
	if m.ExtractFunc != nil {
		return m.ExtractFunc(ctx, document)
	}
	return []domain.Transaction{}, nil
}

// MockCategorizer is a mock implementation of Categorizer.
type MockCategorizer struct {
	CategorizeFunc func(description string, amount decimal.Decimal) string
}

func NewMockCategorizer() *MockCategorizer {
	return &MockCategorizer{}
}

func (m *MockCategorizer) Categorize(description string, amount decimal.Decimal) string {
	if m.CategorizeFunc != nil {
		return m.CategorizeFunc(description, amount)
	}
	return domain.Uncategorized
}

// MockIDGenerator is a mock implementation of IDGenerator that issues
// sequential IDs.
type MockIDGenerator struct {
	mu   sync.Mutex
	next int

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
	m.next++
	return "tx-" + strconv.Itoa(m.next)
}
