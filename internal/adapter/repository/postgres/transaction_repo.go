// Package postgres implements the transaction ledger on PostgreSQL.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/finsight/internal/domain"
)

const selectColumns = `id, date, description, amount::text, COALESCE(category, ''), COALESCE(payment_method, '')`

// insertSQL relies on the unique (date, description, amount) index to make
// imports idempotent. Re-uploaded rows are silently skipped.
const insertSQL = `
	INSERT INTO transactions (id, date, description, amount, category, payment_method)
	VALUES ($1, $2, $3, $4::numeric, NULLIF($5, ''), NULLIF($6, ''))
	ON CONFLICT (date, description, amount) DO NOTHING`

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool    *pgxpool.Pool
	retrier *Retrier
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool, retrier *Retrier) *TransactionRepository {
	return &TransactionRepository{
		pool:    pool,
		retrier: retrier,
	}
}

// GetAll returns the full ledger.
func (r *TransactionRepository) GetAll(ctx context.Context) ([]domain.Transaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM transactions ORDER BY date, id`, selectColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	txs := []domain.Transaction{}
	for rows.Next() {
		tx, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	return txs, nil
}

// InsertBatch stores a batch atomically, skipping rows that collide with the
// dedup index, and reports how many rows were actually inserted.
func (r *TransactionRepository) InsertBatch(ctx context.Context, txs []domain.Transaction) (int, error) {
	inserted := 0

	err := r.retrier.Retry(ctx, func() error {
		inserted = 0

		dbTx, err := r.pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin batch insert: %w", err)
		}
		defer func() { _ = dbTx.Rollback(ctx) }()

		for _, tx := range txs {
			tag, err := dbTx.Exec(ctx, insertSQL,
				tx.ID,
				tx.Date,
				tx.Description,
				tx.Amount.String(),
				tx.Category,
				tx.PaymentMethod,
			)
			if err != nil {
				return fmt.Errorf("insert transaction %s: %w", tx.ID, err)
			}
			inserted += int(tag.RowsAffected())
		}

		return dbTx.Commit(ctx)
	})
	if err != nil {
		return 0, err
	}

	return inserted, nil
}

// List returns a page of transactions, newest first.
func (r *TransactionRepository) List(ctx context.Context, limit, offset int) ([]domain.Transaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM transactions ORDER BY date DESC, id DESC LIMIT $1 OFFSET $2`, selectColumns)

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	txs := []domain.Transaction{}
	for rows.Next() {
		tx, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	return txs, nil
}

// Count returns the total ledger size.
func (r *TransactionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}

	return count, nil
}

func scanTransaction(scan func(dest ...any) error) (domain.Transaction, error) {
	var (
		tx     domain.Transaction
		amount string
	)

	if err := scan(&tx.ID, &tx.Date, &tx.Description, &amount, &tx.Category, &tx.PaymentMethod); err != nil {
		return domain.Transaction{}, fmt.Errorf("scan transaction: %w", err)
	}

	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("parse stored amount %q: %w", amount, err)
	}
	tx.Amount = parsed

	return tx, nil
}
