package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finsight/internal/domain"
)

// ErrCacheMiss is returned by Cache.Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// TransactionRepository defines data access for the transaction ledger.
type TransactionRepository interface {
	// GetAll returns a full, consistent snapshot of the ledger.
	// Ordering is not guaranteed.
	GetAll(ctx context.Context) ([]domain.Transaction, error)
	// InsertBatch stores a batch, skipping duplicates, and reports how
	// many rows were actually inserted.
	InsertBatch(ctx context.Context, txs []domain.Transaction) (int, error)
	List(ctx context.Context, limit, offset int) ([]domain.Transaction, error)
	Count(ctx context.Context) (int64, error)
}

// Cache defines short-TTL memoization of aggregation results.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// FlushAll drops every cached entry. Called after each successful
	// batch insert.
	FlushAll(ctx context.Context) error
}

// StatementExtractor turns a raw statement document into transactions.
type StatementExtractor interface {
	Extract(ctx context.Context, document []byte) ([]domain.Transaction, error)
}

// Categorizer assigns a category to an unlabelled transaction.
type Categorizer interface {
	Categorize(description string, amount decimal.Decimal) string
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}
